package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-gateway/internal/api/dto"
	"github.com/spec-kit/support-gateway/internal/auth"
	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

// AuthHandler mints operator tokens.
type AuthHandler struct {
	tokens *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// OperatorToken POST /auth/operator/token. Guarded by the service token.
func (h *AuthHandler) OperatorToken(c *fiber.Ctx) error {
	var req dto.OperatorTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidParams("invalid payload", nil)
	}
	if req.Operator == "" {
		return apperrors.NewInvalidParams("operator required", nil)
	}

	token, expiresAt, err := h.tokens.GenerateToken(req.Operator)
	if err != nil {
		return apperrors.NewInternalError("failed to mint operator token", err)
	}
	return c.JSON(fiber.Map{"data": dto.OperatorTokenResponse{Token: token, ExpiresAt: expiresAt}})
}
