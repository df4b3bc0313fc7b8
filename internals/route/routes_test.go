package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/configs"
	"sekolahku_dashboard/internals/features/dashboard/core"
	"sekolahku_dashboard/internals/features/dashboard/session"
	reportservice "sekolahku_dashboard/internals/features/school/reports/service"
	seeddashboard "sekolahku_dashboard/internals/seeds/dashboard"
	"sekolahku_dashboard/internals/storage"
)

const testSecret = "rahasia-test"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	client := backend.NewLocalClient(storage.NewMemoryStore())
	_, err := seeddashboard.SeedDashboardFromJSON(context.Background(), client, "../seeds/dashboard/data_dashboard.json", nil)
	require.NoError(t, err)

	cfg := configs.Config{
		AppName:         "test",
		JWTSecret:       testSecret,
		CorsOrigins:     []string{"http://localhost:5173"},
		RateLimitPerMin: 1000,
		BackendTimeout:  5 * time.Second,
	}
	deps := core.Deps{
		Client:   client,
		Sessions: session.NewRegistry(time.Minute, nil),
		Printer:  reportservice.NewMemoryPrinter(),
		School:   "SMA Sekolahku",
	}
	return NewApp(cfg, deps, nil)
}

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func studentToken(t *testing.T) string {
	return token(t, jwt.MapClaims{"id": "u-s1", "role": "siswa", "profile_id": "s1", "nama": "Ani"})
}

func teacherToken(t *testing.T) string {
	return token(t, jwt.MapClaims{"id": "u-t1", "role": "guru", "teacher_id": "t1", "nama": "Pak Budi"})
}

func homeroomToken(t *testing.T) string {
	return token(t, jwt.MapClaims{"id": "u-t1", "role": "walikelas", "teacher_id": "t1", "nama": "Pak Budi"})
}

func adminToken(t *testing.T) string {
	return token(t, jwt.MapClaims{"id": "u-admin", "role": "admin"})
}

func do(t *testing.T, app *fiber.App, method, path, tok, body string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	resp, body := do(t, newTestApp(t), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "local", body["backend_mode"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestAuthAndRoles(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/siswa/dashboard", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = do(t, app, http.MethodGet, "/api/siswa/dashboard", teacherToken(t), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/admin/dashboard", studentToken(t), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	expired := jwt.MapClaims{"id": "u-s1", "role": "siswa", "exp": time.Now().Add(-time.Hour).Unix()}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte(testSecret))
	require.NoError(t, err)
	resp, _ = do(t, app, http.MethodGet, "/api/siswa/dashboard", s, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStudentDashboard(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/siswa/dashboard", studentToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "1", data["selectedSemesterId"])
	assert.Equal(t, 85.0, data["averageGrade"])

	resp, body = do(t, app, http.MethodGet, "/api/siswa/dashboard?semesterId=99", studentToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	assert.Empty(t, data["grades"])
	assert.NotEmpty(t, data["errors"])
}

func TestTeacherGradeMutations(t *testing.T) {
	app := newTestApp(t)
	tok := teacherToken(t)

	dup := `{"jenis":"UTS","studentId":"s1","subjectId":"10","kelasId":"k1","nilai":70,"tanggal":"2024-10-01"}`
	resp, body := do(t, app, http.MethodPost, "/api/guru/nilai", tok, dup)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["errors"], "jenis")

	tugas := `{"jenis":"Tugas","studentId":"s1","subjectId":"10","kelasId":"k1","nilai":"90","tanggal":"2024-10-01"}`
	resp, body = do(t, app, http.MethodPost, "/api/guru/nilai", tok, tugas)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Len(t, data["grades"], 2)
	assert.Equal(t, 87.5, data["averageGrade"])

	resp, _ = do(t, app, http.MethodPost, "/api/guru/nilai", tok, "{bukan json")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAdminScheduleConflict(t *testing.T) {
	app := newTestApp(t)
	tok := adminToken(t)

	clash := `{"relationId":"r2","kelasId":"k1","hari":"Senin","jamMulai":"08:00","jamSelesai":"09:00"}`
	resp, body := do(t, app, http.MethodPost, "/api/admin/jadwal/", tok, clash)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	details := body["details"].(map[string]any)
	banner := details["banner"].(map[string]any)
	assert.NotEmpty(t, banner["entries"])

	ok := `{"relationId":"r2","kelasId":"k1","hari":"Selasa","jamMulai":"08:00","jamSelesai":"09:00"}`
	resp, body = do(t, app, http.MethodPost, "/api/admin/jadwal/", tok, ok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Len(t, data["rows"], 3)
	assert.Nil(t, data["banner"])

	resp, body = do(t, app, http.MethodGet, "/api/admin/jadwal/?kelasId=k1&hari=Selasa", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].(map[string]any)["rows"], 1)
}

func TestAdminUsersPaginated(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/api/admin/users/?per_page=2&page=2", adminToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	meta := body["pagination"].(map[string]any)
	assert.Equal(t, 4.0, meta["total"])
	assert.Equal(t, 2.0, meta["total_pages"])
	assert.Len(t, body["data"], 2)

	resp, body = do(t, app, http.MethodGet, "/api/admin/users/?role=siswa", adminToken(t), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 1)
}

func TestHomeroomReport(t *testing.T) {
	app := newTestApp(t)
	tok := homeroomToken(t)

	resp, _ := do(t, app, http.MethodGet, "/api/walikelas/rapor/s1", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="rapor-ani-1.json"`, resp.Header.Get("Content-Disposition"))

	resp, body := do(t, app, http.MethodGet, "/api/walikelas/rapor/s-lain", tok, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, body = do(t, app, http.MethodPatch, "/api/walikelas/nilai/g1/verifikasi", tok, `{"isVerified":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Nilai berhasil diverifikasi", body["message"])
}
