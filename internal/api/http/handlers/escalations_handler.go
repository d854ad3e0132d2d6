package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-gateway/internal/api/dto"
	"github.com/spec-kit/support-gateway/internal/observability"
	"github.com/spec-kit/support-gateway/internal/service"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

// EscalationsHandler serves the human-operator queue endpoints.
type EscalationsHandler struct {
	escalations *service.EscalationService
	metrics     *observability.Metrics
}

// NewEscalationsHandler constructs handler.
func NewEscalationsHandler(escalations *service.EscalationService, metrics *observability.Metrics) *EscalationsHandler {
	return &EscalationsHandler{escalations: escalations, metrics: metrics}
}

// List GET /v1/escalations?status=open|resolved.
func (h *EscalationsHandler) List(c *fiber.Ctx) error {
	h.metrics.RecordTool("list_escalations")
	rendered, err := h.escalations.ListRendered(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToolResponse{Response: rendered}})
}

// Respond POST /v1/escalations/:id/respond.
func (h *EscalationsHandler) Respond(c *fiber.Ctx) error {
	h.metrics.RecordTool("respond_escalation")
	ticketID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || ticketID <= 0 {
		return apperrors.NewInvalidParams("ticket id must be a positive integer", nil)
	}

	var req dto.RespondEscalationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidParams("invalid payload", nil)
	}
	if req.HumanResponse == "" {
		return apperrors.NewInvalidParams("human_response required", nil)
	}

	ack, err := h.escalations.Respond(c.UserContext(), ticketID, req.HumanResponse)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToolResponse{Response: ack}})
}
