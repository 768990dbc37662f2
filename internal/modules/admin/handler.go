package admin

import (
	"errors"
	"net/http"

	"contactagenda/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the account administration endpoints; the caller
// wraps the group in JWT auth plus the Admin role check.
func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	users := adminGroup.Group("/users")
	{
		users.POST("/:id/deactivate", h.Deactivate)
		users.POST("/:id/activate", h.Activate)
	}
}

func (h *Handler) Deactivate(c *gin.Context) {
	user, err := h.service.DeactivateUser(c.Request.Context(), c.Param("id"), c.ClientIP())
	if err != nil {
		h.writeError(c, err, "DEACTIVATE_FAILED", "Failed to deactivate user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) Activate(c *gin.Context) {
	user, err := h.service.ActivateUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "ACTIVATE_FAILED", "Failed to activate user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) writeError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if errors.Is(err, ErrUserNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMessage)
}
