package daemon

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/unilabvision/myuni/internal/config"
	"github.com/unilabvision/myuni/internal/db/controller/profile"
	"github.com/unilabvision/myuni/internal/db/models"
)

// seed creates the configured local admin account while no admin exists.
func seed(cfg *config.Config, db *gorm.DB) error {
	local := cfg.Auth.Local
	if local.AdminEmail == "" || local.AdminPassword == "" {
		return nil
	}

	count, err := profile.CountAdmins(db)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	_, err = profile.CreateLocal(db, local.AdminEmail, local.AdminPassword, cfg.Title, "Admin", models.RoleAdmin)
	if errors.Is(err, profile.ErrEmailExists) {
		log.Warn().Str("email", local.AdminEmail).Msg("admin email already used by a non admin account, not seeding")
		return nil
	}

	if err != nil {
		return err
	}

	log.Info().Str("email", local.AdminEmail).Msg("seeded local admin account")

	return nil
}
