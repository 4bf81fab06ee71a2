package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/schooldesk/internal/common"
)

// CredentialFunc returns the current bearer credential, if any.
type CredentialFunc func(ctx context.Context) (string, bool)

// IsAuthEndpoint reports whether path targets login or registration. Those
// calls are never augmented and their 401s never end the session.
func IsAuthEndpoint(path string) bool {
	path = strings.TrimRight(path, "/")
	return strings.HasSuffix(path, "/"+common.EndpointLogin) ||
		strings.HasSuffix(path, "/"+common.EndpointRegister)
}

// Augment returns req with the bearer header set, or req itself when there
// is nothing to add. The original request is never modified.
func Augment(req *http.Request, token string) *http.Request {
	if token == "" || IsAuthEndpoint(req.URL.Path) {
		return req
	}
	out := req.Clone(req.Context())
	out.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return out
}

// Augmenter is an http.RoundTripper applying Augment to every request.
type Augmenter struct {
	next       http.RoundTripper
	credential CredentialFunc
}

func NewAugmenter(next http.RoundTripper, credential CredentialFunc) *Augmenter {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Augmenter{next: next, credential: credential}
}

func (a *Augmenter) RoundTrip(req *http.Request) (*http.Response, error) {
	if IsAuthEndpoint(req.URL.Path) {
		return a.next.RoundTrip(req)
	}
	token, _ := a.credential(req.Context())
	return a.next.RoundTrip(Augment(req, token))
}
