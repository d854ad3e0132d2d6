package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/support-gateway/pkg/util"
)

const principalKey = "auth_principal"

// SubjectType distinguishes caller classes.
type SubjectType string

const (
	// SubjectService is an automated caller presenting the static service token.
	SubjectService SubjectType = "service"
	// SubjectOperator is a human operator presenting a signed JWT.
	SubjectOperator SubjectType = "operator"
)

// Principal represents the authenticated caller.
type Principal struct {
	SubjectType SubjectType
	Operator    string
}

// AuthMiddleware validates bearer tokens and loads principals. Two token
// shapes are accepted: the static pre-shared service token, or an operator
// JWT signed by the configured secret.
type AuthMiddleware struct {
	serviceToken []byte
	tokens       *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(serviceToken string, tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{serviceToken: []byte(serviceToken), tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}
	token := parts[1]

	if len(m.serviceToken) > 0 &&
		subtle.ConstantTimeCompare([]byte(token), m.serviceToken) == 1 {
		c.Locals(principalKey, &Principal{SubjectType: SubjectService})
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	c.Locals(principalKey, &Principal{SubjectType: SubjectOperator, Operator: claims.Operator})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireService only passes callers holding the static service token.
func RequireService() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != SubjectService {
			return apperrors.NewUnauthorized("service token required")
		}
		return c.Next()
	}
}
