package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
)

// DefaultErrorMessage is used when a failure carries no usable text.
const DefaultErrorMessage = "An error occurred"

const maxErrorBody = 64 << 10

// Error is the one failure shape callers of Client see.
type Error struct {
	// Status is the HTTP status code, or 0 when no response arrived.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Unauthorized reports whether the backend rejected the credential.
func (e *Error) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// SignOutFunc ends the current session.
type SignOutFunc func(ctx context.Context)

// RedirectFunc moves the user to path without admission checks.
type RedirectFunc func(path string)

// FaultHandler turns failed responses into *Error values and recovers from
// a rejected credential.
type FaultHandler struct {
	signOut  SignOutFunc
	redirect RedirectFunc
	logger   logging.Logger
}

func NewFaultHandler(signOut SignOutFunc, redirect RedirectFunc, l logging.Logger) *FaultHandler {
	return &FaultHandler{signOut: signOut, redirect: redirect, logger: l.With("module", "faults")}
}

// Check returns nil for 2xx responses and leaves them untouched. For any
// other status it consumes the body and returns an *Error.
func (h *FaultHandler) Check(req *http.Request, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(body, reasonPhrase(resp))}

	if resp.StatusCode == http.StatusUnauthorized && !IsAuthEndpoint(req.URL.Path) {
		ctx := req.Context()
		h.logger.Info(ctx, "credential rejected, ending session", "url_path", req.URL.Path)
		h.signOut(ctx)
		h.redirect(common.PathLogin)
	}

	return apiErr
}

// Transport wraps a failure that happened before any response arrived.
func (h *FaultHandler) Transport(req *http.Request, err error) error {
	h.logger.Warn(req.Context(), "request did not complete", "url_path", req.URL.Path, "error", err)
	return &Error{Status: 0, Message: DefaultErrorMessage, Err: err}
}

// errorMessage picks the backend's "error" field, then its "message" field,
// then the status text, then DefaultErrorMessage.
func errorMessage(body []byte, statusText string) string {
	var fields map[string]any
	if len(body) > 0 && json.Unmarshal(body, &fields) == nil {
		for _, key := range []string{"error", "message"} {
			if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	if statusText != "" {
		return statusText
	}
	return DefaultErrorMessage
}

// reasonPhrase extracts "Unauthorized" from a status line like "401 Unauthorized".
func reasonPhrase(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}
