package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_dashboard/internals/backend/backendtest"
	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/features/dashboard/core"
	reportservice "sekolahku_dashboard/internals/features/school/reports/service"
)

func seed(t *testing.T) *backendtest.Recorder {
	t.Helper()
	grade := func(id, student, kelas, jenis string, nilai float64, verified bool) map[string]any {
		return map[string]any{"id": id, "studentId": student, "subjectId": "10", "kelasId": kelas, "semesterId": "1",
			"jenis": jenis, "nilai": nilai, "isVerified": verified, "tanggal": "2024-09-01"}
	}
	rec, err := backendtest.Seeded(map[string]any{
		constants.ResourceSemesters: []any{map[string]any{"id": "1", "semester": 1.0, "tahunAjaran": "2024/2025", "isActive": true,
			"tanggalMulai": "2024-07-15", "tanggalSelesai": "2024-12-20"}},
		constants.ResourceSubjects: []any{map[string]any{"id": "10", "nama": "Matematika"}},
		constants.ResourceTeachers: []any{map[string]any{"id": "t1", "userId": "u1", "nama": "Pak Budi"}},
		constants.ResourceClasses: []any{
			map[string]any{"id": "k1", "nama": "X IPA 1", "waliKelasId": "t1"},
			map[string]any{"id": "k2", "nama": "X IPA 2"},
		},
		constants.ResourceStudents: []any{
			map[string]any{"id": "s2", "nama": "Budi", "kelasId": "k1"},
			map[string]any{"id": "s1", "nama": "Ani", "kelasId": "k1", "nisn": "0012345678"},
			map[string]any{"id": "s3", "nama": "Citra", "kelasId": "k2"},
		},
		constants.ResourceGrades: []any{
			grade("g1", "s1", "k1", "UTS", 80, false),
			grade("g2", "s1", "k1", "Tugas", 90, true),
			grade("g3", "s2", "k1", "UTS", 70, false),
			grade("g4", "s3", "k2", "UTS", 60, false),
		},
		constants.ResourceAttendance: []any{
			map[string]any{"id": "a1", "studentId": "s1", "kelasId": "k1", "semesterId": "1", "status": "hadir"},
			map[string]any{"id": "a2", "studentId": "s1", "kelasId": "k1", "semesterId": "1", "status": "alfa"},
		},
	})
	require.NoError(t, err)
	return rec
}

func homeroom() core.Identity {
	return core.Identity{UserID: "u1", ProfileID: "t1", Role: constants.RoleHomeroom, Name: "Pak Budi"}
}

func TestLoad_ClassSummaries(t *testing.T) {
	rec := seed(t)
	d := New(rec, homeroom())
	require.NoError(t, d.Load(context.Background()))

	v := d.View()
	require.NotNil(t, v.Kelas)
	assert.Equal(t, "X IPA 1", v.Kelas.Nama)
	assert.Len(t, v.Grades, 3)
	assert.Equal(t, 2, v.Unverified)

	require.Len(t, v.Students, 2)
	ani := v.Students[0]
	assert.Equal(t, "Ani", ani.Nama)
	assert.Equal(t, 85.0, ani.AverageGrade)
	assert.Equal(t, 2, ani.GradeCount)
	assert.Equal(t, 1, ani.Unverified)
	assert.Equal(t, 50, ani.Attendance.Percentage)
	assert.Equal(t, "Budi", v.Students[1].Nama)
	assert.Equal(t, 0, v.Students[1].Attendance.Total)

	last, ok := rec.Last(backendtest.MethodList, constants.ResourceGrades)
	require.True(t, ok)
	assert.Equal(t, "k1", last.Query["kelasId"])
	assert.Equal(t, "1", last.Query["semesterId"])
}

func TestLoad_HomeroomProfileFoundByUserID(t *testing.T) {
	d := New(seed(t), core.Identity{UserID: "u1", Role: constants.RoleHomeroom})
	require.NoError(t, d.Load(context.Background()))

	v := d.View()
	require.NotNil(t, v.Kelas)
	assert.Equal(t, "X IPA 1", v.Kelas.Nama)
	assert.Len(t, v.Grades, 3)
}

func TestLoad_NotHomeroomTeacher(t *testing.T) {
	rec := seed(t)
	d := New(rec, core.Identity{UserID: "u2", ProfileID: "t2", Role: constants.RoleHomeroom})

	err := d.Load(context.Background())
	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailNotFound, f.Kind)
	assert.Equal(t, MsgNoHomeroomClass, f.Message)

	assert.Zero(t, rec.Calls(backendtest.MethodList, constants.ResourceGrades))
	v := d.View()
	assert.Nil(t, v.Kelas)
	assert.Equal(t, MsgNoHomeroomClass, v.Errors[constants.ResourceClasses])
}

func TestVerifyGrade(t *testing.T) {
	var changed []string
	rec := seed(t)
	d := New(rec, homeroom(), WithOnDataChange(func(kind string) { changed = append(changed, kind) }))
	ctx := context.Background()
	require.NoError(t, d.Load(ctx))

	require.NoError(t, d.VerifyGrade(ctx, "g1", true))
	last, ok := rec.Last(backendtest.MethodUpdate, constants.ResourceGrades)
	require.True(t, ok)
	assert.Equal(t, "g1", last.ID)
	assert.Equal(t, true, last.Payload["isVerified"])
	assert.Equal(t, 1, d.View().Unverified)
	assert.Equal(t, []string{core.KindGrades}, changed)
	require.NotNil(t, d.View().Notice)
	assert.Equal(t, core.LevelSuccess, d.View().Notice.Level)

	// nilai kelas lain tidak boleh disentuh
	err := d.VerifyGrade(ctx, "g4", true)
	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailNotFound, f.Kind)
	assert.Equal(t, 1, rec.Calls(backendtest.MethodUpdate, ""))
}

func TestPrintReport(t *testing.T) {
	printer := reportservice.NewMemoryPrinter()
	d := New(seed(t), homeroom(), WithPrinter(printer))
	ctx := context.Background()
	require.NoError(t, d.Load(ctx))

	_, err := d.PrintReport(ctx, "s3")
	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailNotFound, f.Kind)
	assert.Empty(t, printer.Printed())

	out, err := d.PrintReport(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "rapor-ani-1.json", out.Filename)

	printed := printer.Printed()
	require.Len(t, printed, 1)
	assert.Equal(t, "Pak Budi", printed[0]["waliKelas"])
	assert.Equal(t, "15 Juli 2024 - 20 Desember 2024", printed[0]["periode"])
	student := printed[0]["student"].(map[string]any)
	assert.Equal(t, "X IPA 1", student["kelasNama"])
}
