package middleware

import (
	authutils "attendance-backend/lib/utils/auth-utils"
	"attendance-backend/models"
	apimodels "attendance-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// ManagerRoleRequired gates the review surface. Managers and super admins
// pass, everyone else gets a uniform 403.
func ManagerRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).CanReviewRequests() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not available"))
		}
		return ctx.Next()
	}
}

func SuperAdminRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.UserRoleSuperAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not available"))
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		return sub.(string)
	}
	return ""
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if name, exist := claims["name"]; exist {
		return name.(string)
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}
