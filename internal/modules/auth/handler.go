package auth

import (
	"errors"
	"net/http"

	"contactagenda/internal/domain"
	"contactagenda/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

// Register creates a new account and opens its first session.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		h.writeError(c, err, "REGISTRATION_FAILED", "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, toAuthResponse(result))
}

// Login authenticates with username and password.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		h.writeError(c, err, "LOGIN_FAILED", "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, toAuthResponse(result))
}

// Refresh rotates a refresh token and issues a new access/refresh pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken, c.ClientIP())
	if err != nil {
		h.writeError(c, err, "REFRESH_FAILED", "Failed to refresh session")
		return
	}

	response.Success(c, http.StatusOK, toAuthResponse(result))
}

// Logout revokes the presented refresh token. Always succeeds.
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken, c.ClientIP()); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed",
			map[string]string{ve.Field: ve.Message})
	case errors.Is(err, ErrDuplicateUsername):
		response.Error(c, http.StatusConflict, "DUPLICATE_USERNAME", "This username is already taken")
	case errors.Is(err, ErrDuplicateEmail):
		response.Error(c, http.StatusConflict, "DUPLICATE_EMAIL", "This email is already registered")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Username or password is incorrect")
	case errors.Is(err, ErrAccountInactive):
		response.Error(c, http.StatusUnauthorized, "ACCOUNT_INACTIVE", "User account is inactive")
	case errors.Is(err, ErrInvalidRefreshToken):
		response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is invalid")
	case errors.Is(err, ErrExpiredRefreshToken):
		response.Error(c, http.StatusUnauthorized, "EXPIRED_REFRESH_TOKEN", "Refresh token has expired")
	case errors.Is(err, ErrRevokedRefreshToken):
		response.Error(c, http.StatusUnauthorized, "REVOKED_REFRESH_TOKEN", "Refresh token has been revoked")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMessage)
	}
}

func toAuthResponse(r *Result) AuthResponse {
	return AuthResponse{
		UserID:       r.User.ID,
		Username:     r.User.Username,
		Email:        r.User.Email,
		FullName:     r.User.FullName,
		Roles:        r.Roles,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    r.ExpiresAt,
	}
}
