package middleware

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	apimodels "job-application-backend/models/api"
)

const adminHeader = "X-ADMIN"

// AdminRequired - доступ к админским ручкам только с заголовком X-ADMIN: 1
func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Get(adminHeader) != "1" {
			log.WithField("path", ctx.Path()).
				WithField("ip", ctx.IP()).
				Warn("попытка доступа к админским ручкам без прав")
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
