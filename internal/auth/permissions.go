package auth

import "github.com/unilabvision/myuni/internal/db/models"

// CanManage reports whether p may modify a resource owned by ownerID.
// Admins may modify everything, users only what they own.
func CanManage(p *models.Profile, ownerID uint64) bool {
	if p == nil || !p.Active {
		return false
	}

	return p.IsAdmin() || (ownerID != 0 && p.ID == ownerID)
}

// CanAdminister reports whether p has access to the admin endpoints.
func CanAdminister(p *models.Profile) bool {
	return p != nil && p.Active && p.IsAdmin()
}
