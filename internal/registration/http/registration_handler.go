// Package http provides HTTP handlers and middleware for the registration lifecycle.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/rsvp/internal/httputil"
	"github.com/allisson/rsvp/internal/registration/http/dto"
	"github.com/allisson/rsvp/internal/registration/usecase"
)

// RegistrationHandler handles the guest-facing registration endpoints. All
// manage endpoints authenticate solely through the capability token in the
// URL; there is no session or account concept.
type RegistrationHandler struct {
	registrationUseCase usecase.RegistrationUseCase
	logger              *slog.Logger
}

// NewRegistrationHandler creates a new registration handler.
func NewRegistrationHandler(
	registrationUseCase usecase.RegistrationUseCase,
	logger *slog.Logger,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUseCase: registrationUseCase,
		logger:              logger,
	}
}

// CreateHandler registers a new guest and emails the manage link.
// POST /v1/registrations
// Returns 201 Created with the registration ID. The manage link never appears
// in the response.
func (h *RegistrationHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	output, err := h.registrationUseCase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRegistrationResponse{
		ID:      output.RegistrationID.String(),
		Message: "Registration confirmed. Check your email for the manage link.",
	})
}

// GetHandler returns the registration a manage token resolves to.
// GET /v1/registrations/manage/:token
// Returns 200 OK, or a uniform 404 for any unresolvable token.
func (h *RegistrationHandler) GetHandler(c *gin.Context) {
	rawToken := c.Param("token")
	if rawToken == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("token cannot be empty"), h.logger)
		return
	}

	registration, err := h.registrationUseCase.GetByToken(c.Request.Context(), rawToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRegistrationToResponse(registration))
}

// UpdateHandler applies a partial update and rotates the manage token.
// PATCH /v1/registrations/manage/:token
// Returns 200 OK with the updated registration and the new manage URL. The
// token used for this request is revoked on success.
func (h *RegistrationHandler) UpdateHandler(c *gin.Context) {
	rawToken := c.Param("token")
	if rawToken == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("token cannot be empty"), h.logger)
		return
	}

	var req dto.UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Merge the partial request over the current state before validating the
	// full input. The extra resolution is read-only.
	current, err := h.registrationUseCase.GetByToken(c.Request.Context(), rawToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	output, err := h.registrationUseCase.UpdateByToken(c.Request.Context(), rawToken, req.MergeInto(current))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateRegistrationResponse{
		Registration: dto.MapRegistrationToResponse(output.Registration),
		ManageURL:    output.ManageURL,
	})
}

// CancelHandler cancels the registration and revokes all of its tokens.
// DELETE /v1/registrations/manage/:token
// Returns 204 No Content. Repeating the call yields the uniform 404 because
// every token was revoked by the first cancellation.
func (h *RegistrationHandler) CancelHandler(c *gin.Context) {
	rawToken := c.Param("token")
	if rawToken == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("token cannot be empty"), h.logger)
		return
	}

	if err := h.registrationUseCase.CancelByToken(c.Request.Context(), rawToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ResendHandler requests a fresh manage link by email.
// POST /v1/registrations/resend-link
// Always returns 202 Accepted with the same body, whether or not the email
// matches a registration.
func (h *RegistrationHandler) ResendHandler(c *gin.Context) {
	var req dto.ResendManageLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if req.Email == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("email cannot be empty"), h.logger)
		return
	}

	if err := h.registrationUseCase.ResendManageLink(c.Request.Context(), req.Email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, dto.ResendManageLinkResponse{
		Message: "If the email matches a registration, a new manage link has been sent.",
	})
}
