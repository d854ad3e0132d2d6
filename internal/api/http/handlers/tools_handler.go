package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-gateway/internal/api/dto"
	"github.com/spec-kit/support-gateway/internal/observability"
	"github.com/spec-kit/support-gateway/internal/service"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

// ToolsHandler serves the agent-facing tool operations.
type ToolsHandler struct {
	supervisor *service.SupervisorService
	summaries  *service.SummaryService
	metrics    *observability.Metrics
	identity   string
}

// NewToolsHandler constructs handler.
func NewToolsHandler(supervisor *service.SupervisorService, summaries *service.SummaryService, metrics *observability.Metrics, identity string) *ToolsHandler {
	return &ToolsHandler{supervisor: supervisor, summaries: summaries, metrics: metrics, identity: identity}
}

// Validate GET /v1/validate. Returns the fixed configured identifier.
func (h *ToolsHandler) Validate(c *fiber.Ctx) error {
	h.metrics.RecordTool("validate")
	return c.JSON(fiber.Map{"data": dto.ValidateResponse{Identity: h.identity}})
}

// Supervisor POST /v1/supervisor.
func (h *ToolsHandler) Supervisor(c *fiber.Ctx) error {
	h.metrics.RecordTool("supervisor")
	var req dto.SupervisorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidParams("invalid payload", nil)
	}
	if req.Query == "" {
		return apperrors.NewInvalidParams("query required", nil)
	}

	response, err := h.supervisor.Route(c.UserContext(), req.Query, req.Intent, req.Priority, req.SearchEngine)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToolResponse{Response: response}})
}

// Summarize POST /v1/summarize.
func (h *ToolsHandler) Summarize(c *fiber.Ctx) error {
	h.metrics.RecordTool("summarize_url")
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidParams("invalid payload", nil)
	}
	if req.URL == "" {
		return apperrors.NewInvalidParams("url required", nil)
	}

	summary, err := h.summaries.SummarizeURL(c.UserContext(), req.URL, req.Sentences)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToolResponse{Response: summary}})
}
