package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/server/metrics"
	"github.com/dmitrijs2005/schooldesk/internal/server/models"
	"github.com/labstack/echo/v4"
)

const ContextKeyUser = "auth_user"

// Authenticator resolves a bearer token to an account.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

func UserFromContext(c echo.Context) (*models.User, bool) {
	u, ok := c.Get(ContextKeyUser).(*models.User)
	return u, ok && u != nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(common.AuthorizationHeaderName)
	if len(h) < len(common.BearerPrefix) || !strings.EqualFold(h[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(common.BearerPrefix):])
	return token, token != ""
}

func RequireAuth(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request())
			if !ok {
				metrics.AccessDeniedTotal.WithLabelValues("missing_token").Inc()
				return handleUnauth(c)
			}
			user, err := a.Authenticate(c.Request().Context(), token)
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("invalid_token").Inc()
				return handleUnauth(c)
			}
			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// RequireRole rejects accounts of another role with common.ErrorForbidden,
// which the error handler renders as 403.
func RequireRole(role string) echo.MiddlewareFunc {
	role = strings.ToLower(strings.TrimSpace(role))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := UserFromContext(c)
			if !ok {
				return handleUnauth(c)
			}
			if strings.ToLower(strings.TrimSpace(u.Role)) != role {
				metrics.AccessDeniedTotal.WithLabelValues("role").Inc()
				return common.ErrorForbidden
			}
			return next(c)
		}
	}
}

func handleUnauth(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorBody{Error: "unauthorized"})
}
