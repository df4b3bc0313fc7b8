// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	helperAuth "sekolahku_dashboard/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool
	// toleransi jam server saat cek exp
	Skew time.Duration
	Log  *zap.Logger
}

// AuthJWT memverifikasi access token (HS256) lalu menyimpan identitas ke Locals.
// Token diterbitkan layanan auth lain; di sini hanya dibaca.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	skew := opts.Skew
	if skew == 0 {
		skew = 30 * time.Second
	}

	return func(c *fiber.Ctx) error {
		// 1) Authorization (atau cookie)
		tokenString, err := extractBearerToken(c, opts.AllowCookieFallback)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 2) Parse & verifikasi signature (claims dicek manual)
		if opts.Secret == "" {
			log.Error("JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(opts.Secret), nil
		}); err != nil {
			log.Warn("gagal parse token", zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 3) exp
		if err := validateTokenExpiry(claims, skew); err != nil {
			log.Warn("token expired", zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 4) identitas
		ident, err := identityFromClaims(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		ident.Token = tokenString
		helperAuth.StoreIdentity(c, ident)
		return c.Next()
	}
}
