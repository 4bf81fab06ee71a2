package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/schooldesk/internal/common"
	"github.com/dmitrijs2005/schooldesk/internal/server/metrics"
	"github.com/dmitrijs2005/schooldesk/internal/server/models"
	"github.com/dmitrijs2005/schooldesk/internal/server/services"
	"github.com/labstack/echo/v4"
)

// UserService is what the handlers need from services.UserService.
type UserService interface {
	Authenticator
	Register(ctx context.Context, email, password, role string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
}

type errorBody struct {
	Error string `json:"error"`
}

type userBody struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserBody(u *models.User) userBody {
	return userBody{ID: u.ID, Email: u.Email, Role: u.Role}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userBody `json:"user"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=admin teacher student"`
}

type dashboardResponse struct {
	Dashboard string   `json:"dashboard"`
	Message   string   `json:"message"`
	User      userBody `json:"user"`
}

type handlers struct {
	users UserService
}

func (h *handlers) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sess, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("http", metrics.ResultFailure).Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("http", metrics.ResultError).Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("http", metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: sess.Token, User: toUserBody(sess.User)})
}

func (h *handlers) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, err := h.users.Register(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserBody(u))
}

func (h *handlers) me(c echo.Context) error {
	u, ok := UserFromContext(c)
	if !ok {
		return handleUnauth(c)
	}
	return c.JSON(http.StatusOK, toUserBody(u))
}

func (h *handlers) dashboard(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := UserFromContext(c)
		if !ok {
			return handleUnauth(c)
		}
		return c.JSON(http.StatusOK, dashboardResponse{
			Dashboard: role,
			Message:   "Welcome to the " + role + " dashboard, " + u.Email,
			User:      toUserBody(u),
		})
	}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
	}
	return nil
}
