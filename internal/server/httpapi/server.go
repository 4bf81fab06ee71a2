// Package httpapi is the REST API of the development backend.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
	"github.com/dmitrijs2005/schooldesk/internal/server/metrics"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EchoServer is the HTTP server wrapper.
type EchoServer struct {
	h      *handlers
	e      *echo.Echo
	logger logging.Logger
}

// NewEchoServer creates the API server.
func NewEchoServer(users UserService, l logging.Logger) *EchoServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	es := &EchoServer{h: &handlers{users: users}, e: e, logger: l.With("module", "httpapi")}
	e.HTTPErrorHandler = es.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(es.observe)

	es.registerRoutes(users)
	return es
}

func (es *EchoServer) registerRoutes(a Authenticator) {
	es.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := es.e.Group("/api")
	api.POST("/"+common.EndpointLogin, es.h.login)
	api.POST("/"+common.EndpointRegister, es.h.register)

	authed := api.Group("", RequireAuth(a))
	authed.GET("/"+common.EndpointMe, es.h.me)
	for _, role := range []string{common.RoleAdmin, common.RoleTeacher, common.RoleStudent} {
		authed.GET("/"+role+"/dashboard", es.h.dashboard(role), RequireRole(role))
	}
}

// observe logs each request and records its duration.
func (es *EchoServer) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
		es.logger.Debug(c.Request().Context(), "request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"duration", time.Since(start),
		)
		return nil
	}
}

// statusFor maps service errors onto HTTP statuses and client messages.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		return he.Code, msg
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "an account with this email already exists"
	case errors.Is(err, common.ErrorInvalidRole), errors.Is(err, common.ErrorInvalidEmail):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (es *EchoServer) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		es.logger.Error(c.Request().Context(), "request failed", "path", c.Request().URL.Path, "error", err)
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorBody{Error: msg})
}

// Handler exposes the router, mainly for tests.
func (es *EchoServer) Handler() http.Handler {
	return es.e
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (es *EchoServer) Run(ctx context.Context, addr string) error {
	es.e.Server.ReadHeaderTimeout = 10 * time.Second

	errCh := make(chan error, 1)
	go func() {
		es.logger.Info(ctx, "API listening", "address", addr)
		errCh <- es.e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		es.logger.Info(ctx, "API shutting down")
		return es.e.Shutdown(shutdownCtx)
	}
}
