// internals/middlewares/auth/claim_utils.go
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"sekolahku_dashboard/internals/features/dashboard/core"
	usermodel "sekolahku_dashboard/internals/features/users/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx, allowCookie bool) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" && allowCookie {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	// toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

// validateTokenExpiry: exp wajib ada; angka atau string angka.
func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}
	exp, ok := pick.ToNumber(expVal)
	if !ok {
		return fmt.Errorf("invalid exp format")
	}
	expTime := time.Unix(int64(exp), 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

/* ======== Claims → Identity ======== */

func identityFromClaims(claims jwt.MapClaims) (core.Identity, error) {
	r := pick.Record(claims)
	id := core.Identity{
		UserID:    pick.ID(r, "id", "user_id", "sub"),
		Role:      usermodel.NormalizeRole(pick.String(r, "role")),
		Name:      pick.String(r, "user_name", "name", "nama"),
		ProfileID: pick.ID(r, "profile_id", "student_id", "teacher_id"),
		KelasID:   pick.ID(r, "kelas_id", "class_id"),
	}
	if id.IsZero() {
		return id, fmt.Errorf("no user id")
	}
	return id, nil
}
