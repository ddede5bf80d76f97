package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/product-catalog-api/internal/api/metrics"
	"github.com/catalogo/product-catalog-api/internal/api/middleware"
	"github.com/catalogo/product-catalog-api/internal/core/domain"
	"github.com/catalogo/product-catalog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new account. The role comes from the request body here
// but is constrained to the fixed set before it reaches the service.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates against the role pinned to the route by AttachRole and
// returns a signed token. The user payload never carries the password hash.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	role := middleware.AttachedRole(c)
	if role == "" {
		return echo.NewHTTPError(http.StatusInternalServerError, "login route missing role")
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(role, "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(role, "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
