package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/config"
)

// Service is implemented by handlers that only need the database. Handlers
// with further collaborators (mailer, rate limiter, file store) take them as
// extra Init arguments.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB)
}
