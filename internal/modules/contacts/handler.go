package contacts

import (
	"errors"
	"net/http"

	"contactagenda/internal/domain"
	"contactagenda/internal/pkg/response"
	"contactagenda/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the CRUD endpoints; the caller wraps the group in
// the JWT middleware.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/contacts")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.GetByID)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list contacts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contacts": rows})
}

func (h *Handler) GetByID(c *gin.Context) {
	contact, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "GET_FAILED", "Failed to get contact")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contact": contact})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	contact, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "CREATE_FAILED", "Failed to create contact")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"contact": contact})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	contact, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "UPDATE_FAILED", "Failed to update contact")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contact": contact})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "DELETE_FAILED", "Failed to delete contact")
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
	case errors.Is(err, ErrContactNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Contact not found")
	case errors.Is(err, ErrDuplicateEmail):
		response.Error(c, http.StatusConflict, "DUPLICATE_EMAIL", "A contact with this email already exists")
	default:
		response.Error(c, http.StatusInternalServerError, fallbackCode, fallbackMessage)
	}
}
