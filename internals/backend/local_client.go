package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"sekolahku_dashboard/internals/constants"
	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	schedmodel "sekolahku_dashboard/internals/features/school/schedules/model"
	schedservice "sekolahku_dashboard/internals/features/school/schedules/service"
	"sekolahku_dashboard/internals/helpers/pick"
	"sekolahku_dashboard/internals/storage"
)

// LocalClient: mode fallback di atas storage.Store. Satu key per resource,
// isinya list JSON dengan bentuk yang sama seperti response backend.
type LocalClient struct {
	store storage.Store
	mu    sync.Mutex
}

func NewLocalClient(store storage.Store) *LocalClient {
	return &LocalClient{store: store}
}

func keyFor(resource string) (string, error) {
	k := constants.StoreKey(resource)
	if k == "" {
		return "", &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "resource tidak dikenal: " + resource}
	}
	return k, nil
}

func (c *LocalClient) load(ctx context.Context, resource string) ([]pick.Record, error) {
	key, err := keyFor(resource)
	if err != nil {
		return nil, err
	}
	raw, err := storage.GetJSON(ctx, c.store, key)
	if err != nil {
		return nil, err
	}
	return pick.Normalize(raw, "id"), nil
}

func (c *LocalClient) save(ctx context.Context, resource string, list []pick.Record) error {
	key, err := keyFor(resource)
	if err != nil {
		return err
	}
	return storage.PutJSON(ctx, c.store, key, list)
}

func matches(r pick.Record, q Query) bool {
	for _, k := range q.keys() {
		want := q[k]
		if want == "" {
			continue
		}
		if pick.String(r, k) != want {
			return false
		}
	}
	return true
}

func (c *LocalClient) List(ctx context.Context, resource string, q Query) (any, error) {
	list, err := c.load(ctx, resource)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(list))
	for _, r := range list {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *LocalClient) Create(ctx context.Context, resource string, payload map[string]any) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := c.load(ctx, resource)
	if err != nil {
		return nil, err
	}
	rec := pick.Record{}
	for k, v := range payload {
		rec[k] = v
	}
	if pick.ID(rec, "id") == "" {
		rec["id"] = uuid.NewString()
	}
	if err := c.check(ctx, resource, rec); err != nil {
		return nil, err
	}

	list = append(list, rec)
	if err := c.save(ctx, resource, list); err != nil {
		return nil, err
	}
	return &Result{Success: true, Message: "Data berhasil dibuat", Data: rec}, nil
}

func (c *LocalClient) Update(ctx context.Context, resource, id string, payload map[string]any) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := c.load(ctx, resource)
	if err != nil {
		return nil, err
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return nil, notFound(resource)
	}

	rec := pick.Record{}
	for k, v := range list[idx] {
		rec[k] = v
	}
	for k, v := range payload {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	if err := c.check(ctx, resource, rec); err != nil {
		return nil, err
	}

	list[idx] = rec
	if err := c.save(ctx, resource, list); err != nil {
		return nil, err
	}
	return &Result{Success: true, Message: "Data berhasil diperbarui", Data: rec}, nil
}

func (c *LocalClient) Delete(ctx context.Context, resource, id string) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := c.load(ctx, resource)
	if err != nil {
		return nil, err
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return nil, notFound(resource)
	}
	list = append(list[:idx], list[idx+1:]...)
	if err := c.save(ctx, resource, list); err != nil {
		return nil, err
	}
	return &Result{Success: true, Message: "Data berhasil dihapus"}, nil
}

func indexOf(list []pick.Record, id string) int {
	for i, r := range list {
		if pick.ID(r, "id") == id {
			return i
		}
	}
	return -1
}

func notFound(resource string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Data " + resource + " tidak ditemukan"}
}

/* =========================================================
   Cek referensi & bentrok jadwal
========================================================= */

func (c *LocalClient) check(ctx context.Context, resource string, rec pick.Record) error {
	switch resource {
	case constants.ResourceGrades, constants.ResourceAttendance, constants.ResourceSchedules:
	default:
		return nil
	}

	if semID := pick.ID(rec, "semesterId"); semID != "" {
		ok, err := c.exists(ctx, constants.ResourceSemesters, semID)
		if err != nil {
			return err
		}
		if !ok {
			return &APIError{Status: http.StatusNotFound, Code: CodeSemesterNotFound, Message: "Semester tidak ditemukan"}
		}
	}

	if resource != constants.ResourceSchedules {
		return nil
	}

	if kelasID := pick.ID(rec, "kelasId"); kelasID != "" {
		ok, err := c.exists(ctx, constants.ResourceClasses, kelasID)
		if err != nil {
			return err
		}
		if !ok {
			return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Kelas tidak ditemukan"}
		}
	}
	return c.checkScheduleConflict(ctx, rec)
}

func (c *LocalClient) exists(ctx context.Context, resource, id string) (bool, error) {
	list, err := c.load(ctx, resource)
	if err != nil {
		return false, err
	}
	return indexOf(list, id) >= 0, nil
}

func (c *LocalClient) checkScheduleConflict(ctx context.Context, rec pick.Record) error {
	relations, err := c.load(ctx, constants.ResourceTeacherSubjects)
	if err != nil {
		return err
	}
	relByID := make(map[string]pick.Record, len(relations))
	for _, r := range relations {
		relByID[pick.ID(r, "id")] = r
	}

	candidate := withRelation(schedmodel.FromRecord(rec), relByID)
	if candidate.RelationID != "" {
		if _, ok := relByID[candidate.RelationID]; !ok {
			return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Relasi guru-mapel tidak ditemukan"}
		}
	}

	records, err := c.load(ctx, constants.ResourceSchedules)
	if err != nil {
		return err
	}
	existing := make([]schedmodel.Schedule, 0, len(records))
	for _, r := range records {
		existing = append(existing, withRelation(schedmodel.FromRecord(r), relByID))
	}

	scope, conflicts := schedservice.FindConflicts(existing, candidate)
	if len(conflicts) == 0 {
		return nil
	}

	lk, err := c.lookups(ctx)
	if err != nil {
		return err
	}
	details := make([]any, 0, len(conflicts))
	for _, s := range conflicts {
		details = append(details, map[string]any{
			"id":         s.ID,
			"hari":       s.Hari,
			"jamMulai":   s.JamMulai,
			"jamSelesai": s.JamSelesai,
			"kelasNama":  lk.KelasName(s.KelasID),
			"guruNama":   lk.TeacherName(s.TeacherID),
			"mapelNama":  lk.SubjectName(s.SubjectID),
		})
	}
	return &APIError{
		Status:  http.StatusConflict,
		Code:    CodeScheduleConflict,
		Message: fmt.Sprintf("Jadwal bentrok dengan %d jadwal lain", len(conflicts)),
		Details: map[string]any{"conflictScope": scope, "conflicts": details},
	}
}

// withRelation mengisi guru/mapel/kelas dari relasi jika jadwal hanya membawa relationId.
func withRelation(s schedmodel.Schedule, relByID map[string]pick.Record) schedmodel.Schedule {
	rel, ok := relByID[s.RelationID]
	if !ok {
		return s
	}
	if s.TeacherID == "" {
		s.TeacherID = pick.ID(rel, relmodel.TeacherIDPaths...)
	}
	if s.SubjectID == "" {
		s.SubjectID = pick.ID(rel, relmodel.SubjectIDPaths...)
	}
	if s.KelasID == "" {
		s.KelasID = pick.ID(rel, relmodel.KelasIDPaths...)
	}
	return s
}

func (c *LocalClient) lookups(ctx context.Context) (relmodel.Lookups, error) {
	teachers, err := c.load(ctx, constants.ResourceTeachers)
	if err != nil {
		return relmodel.Lookups{}, err
	}
	subjects, err := c.load(ctx, constants.ResourceSubjects)
	if err != nil {
		return relmodel.Lookups{}, err
	}
	classes, err := c.load(ctx, constants.ResourceClasses)
	if err != nil {
		return relmodel.Lookups{}, err
	}
	return relmodel.BuildLookups(teachers, subjects, classes), nil
}

// Seed mengganti isi satu resource (dipakai perintah seed).
func (c *LocalClient) Seed(ctx context.Context, resource string, raw any) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := pick.Normalize(raw, "id")
	if err := c.save(ctx, resource, list); err != nil {
		return 0, err
	}
	return len(list), nil
}

// ModeLabel untuk log startup.
func ModeLabel(c Client) string {
	switch c.(type) {
	case *LocalClient:
		return "local"
	case *HTTPClient:
		return "http"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", c), "*")
	}
}
