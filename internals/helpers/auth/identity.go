package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"sekolahku_dashboard/internals/features/dashboard/core"
)

// Key Locals yang diisi middleware auth.
const (
	LocalUserID    = "user_id"
	LocalRole      = "userRole"
	LocalUserName  = "user_name"
	LocalProfileID = "profile_id"
	LocalKelasID   = "kelas_id"
	LocalToken     = "access_token"
)

func StoreIdentity(c *fiber.Ctx, id core.Identity) {
	c.Locals(LocalUserID, id.UserID)
	c.Locals(LocalRole, id.Role)
	if id.Name != "" {
		c.Locals(LocalUserName, id.Name)
	}
	if id.ProfileID != "" {
		c.Locals(LocalProfileID, id.ProfileID)
	}
	if id.KelasID != "" {
		c.Locals(LocalKelasID, id.KelasID)
	}
	if id.Token != "" {
		c.Locals(LocalToken, id.Token)
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return strings.TrimSpace(s)
}

// GetIdentity: identitas user dari Locals; error 401 kalau belum login.
func GetIdentity(c *fiber.Ctx) (core.Identity, error) {
	id := core.Identity{
		UserID:    localString(c, LocalUserID),
		Role:      localString(c, LocalRole),
		Name:      localString(c, LocalUserName),
		ProfileID: localString(c, LocalProfileID),
		KelasID:   localString(c, LocalKelasID),
		Token:     localString(c, LocalToken),
	}
	if id.IsZero() {
		return id, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id tidak ditemukan pada token")
	}
	return id, nil
}

func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }
