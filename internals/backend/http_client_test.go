package backend

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_dashboard/internals/configs"
	"sekolahku_dashboard/internals/helpers/pick"
)

func startBackend(t *testing.T) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api")

	api.Get("/semesters", func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) != "Bearer rahasia" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
		}
		return c.JSON(fiber.Map{"success": true, "data": []fiber.Map{{"id": 1, "tahunAjaran": "2024/2025"}}})
	})
	api.Get("/classes", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"a": fiber.Map{"id": "k1"}, "b": fiber.Map{"id": "k2"}})
	})
	api.Get("/grades", func(c *fiber.Ctx) error {
		return c.JSON([]fiber.Map{{"id": "g1", "semesterId": c.Query("semesterId")}})
	})
	api.Post("/grades", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": false, "message": "Validasi gagal", "errors": fiber.Map{"nilai": []string{"wajib diisi"}}})
	})
	api.Put("/grades/:id", func(c *fiber.Ctx) error {
		var body map[string]any
		if err := c.BodyParser(&body); err != nil {
			return err
		}
		body["id"] = c.Params("id")
		return c.JSON(fiber.Map{"success": true, "message": "ok", "data": body})
	})
	api.Delete("/grades/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "code": "SEMESTER_NOT_FOUND", "message": "Semester tidak ditemukan"})
	})
	api.Post("/schedules", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false, "code": 409, "message": "Jadwal bentrok",
			"details": fiber.Map{"conflictScope": "kelas", "conflicts": []fiber.Map{{"hari": "Senin", "jamMulai": "08:00", "jamSelesai": "09:00", "kelasNama": "X IPA 1"}}},
		})
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String() + "/api"
}

func TestHTTPClient_ListUnwrapsEnvelope(t *testing.T) {
	c := NewHTTPClient(startBackend(t), WithTimeout(2*time.Second)).WithBearer("rahasia")

	raw, err := c.List(context.Background(), "semesters", nil)
	require.NoError(t, err)
	list := pick.Normalize(raw, "id")
	require.Len(t, list, 1)
	assert.Equal(t, "1", pick.ID(list[0], "id"))

	raw, err = c.List(context.Background(), "classes", nil)
	require.NoError(t, err)
	assert.Len(t, pick.Normalize(raw, "id"), 2)

	raw, err = c.List(context.Background(), "grades", Query{"semesterId": "1"})
	require.NoError(t, err)
	assert.Equal(t, "1", pick.String(pick.Normalize(raw)[0], "semesterId"))
}

func TestHTTPClient_Unauthorized(t *testing.T) {
	c := NewHTTPClient(startBackend(t)).WithBearer("salah")
	_, err := c.List(context.Background(), "semesters", nil)
	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 401, ae.Status)
}

func TestHTTPClient_Mutations(t *testing.T) {
	c := NewHTTPClient(startBackend(t))
	ctx := context.Background()

	res, err := c.Update(ctx, "grades", "g1", map[string]any{"nilai": 95})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "g1", pick.ID(res.Data.(map[string]any), "id"))

	_, err = c.Create(ctx, "grades", map[string]any{})
	ae, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, ae.Status)
	assert.Equal(t, []string{"wajib diisi"}, ae.FieldErrors()["nilai"])

	_, err = c.Delete(ctx, "grades", "g1")
	ae, ok = AsAPIError(err)
	require.True(t, ok)
	assert.True(t, ae.IsSemesterNotFound())

	_, err = c.Create(ctx, "schedules", map[string]any{"hari": "Senin"})
	ae, ok = AsAPIError(err)
	require.True(t, ok)
	assert.True(t, ae.IsConflict())
	scope, conflicts := ae.Conflicts()
	assert.Equal(t, "kelas", scope)
	assert.Len(t, pick.Normalize(conflicts), 1)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1/api", WithTimeout(500*time.Millisecond))
	_, err := c.List(context.Background(), "semesters", nil)
	assert.True(t, errors.Is(err, ErrUnavailable))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.List(ctx, "semesters", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_SelectsMode(t *testing.T) {
	assert.IsType(t, &LocalClient{}, New(configs.Config{BackendMode: configs.BackendModeLocal}, nil, nil))
	assert.IsType(t, &HTTPClient{}, New(configs.Config{BackendMode: configs.BackendModeHTTP, BackendBaseURL: "http://x"}, nil, nil))
	assert.Equal(t, "local", ModeLabel(NewLocalClient(nil)))
}
