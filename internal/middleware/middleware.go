package middleware

import (
	"strings"

	"kitchen-planner/domain"
	"kitchen-planner/internal/api/presenters"
	"kitchen-planner/internal/utils"
	"kitchen-planner/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalPrincipal = "principal"
)

// AdminRoles may manage the kitchen.
var AdminRoles = []string{domain.RoleSuperAdmin, domain.RoleMiddleAdmin, domain.RoleLowAdmin}

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		RequireRoles(roles ...string) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := utils.GetConfig("CORS_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		principal, err := jwtService.GetPrincipalByToken(header)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals(LocalUserID, principal.UserID)
		c.Locals(LocalRole, principal.Role)
		c.Locals(LocalPrincipal, principal)
		return c.Next()
	}
}

func (m *middleware) RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrUserNotAllowed)
	}
}

func GetPrincipal(c *fiber.Ctx) (domain.Principal, bool) {
	principal, ok := c.Locals(LocalPrincipal).(domain.Principal)
	return principal, ok
}
