package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/rsvp/internal/httputil"
	"github.com/allisson/rsvp/internal/registration/http/dto"
	"github.com/allisson/rsvp/internal/registration/usecase"
)

// AdminHandler handles the read-only admin endpoints. Authentication is
// enforced by AdminAuthMiddleware upstream.
type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminUseCase usecase.AdminUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

// ListHandler retrieves registrations with pagination support.
// GET /v1/admin/registrations?offset=0&limit=50
// Returns 200 OK with the paginated registration list.
func (h *AdminHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	registrations, err := h.adminUseCase.ListRegistrations(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationsToListResponse(registrations))
}
