package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_dashboard/internals/backend/backendtest"
	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/features/dashboard/core"
	schedto "sekolahku_dashboard/internals/features/school/schedules/dto"
	semdto "sekolahku_dashboard/internals/features/school/semesters/dto"
	userdto "sekolahku_dashboard/internals/features/users/dto"
	"sekolahku_dashboard/internals/helpers/pick"
)

func seed(t *testing.T) *backendtest.Recorder {
	t.Helper()
	rec, err := backendtest.Seeded(map[string]any{
		constants.ResourceSemesters: []any{map[string]any{"id": "1", "semester": 1.0, "tahunAjaran": "2024/2025", "isActive": true,
			"tanggalMulai": "2024-07-15", "tanggalSelesai": "2024-12-20"}},
		constants.ResourceSubjects: []any{map[string]any{"id": "10", "nama": "Matematika"}},
		constants.ResourceClasses: []any{
			map[string]any{"id": "k1", "nama": "X IPA 1", "waliKelasId": "t1"},
			map[string]any{"id": "k2", "nama": "X IPA 2"},
		},
		constants.ResourceTeachers: []any{
			map[string]any{"id": "t1", "userId": "u-t1", "nama": "Pak Budi", "nip": "19800101"},
			map[string]any{"id": "t2", "userId": "u-t2", "nama": "Bu Sari", "nip": "19800102"},
		},
		constants.ResourceStudents: []any{map[string]any{"id": "s1", "userId": "u-s1", "nama": "Ani", "kelasId": "k1", "nisn": "0012345678"}},
		constants.ResourceUsers: []any{
			map[string]any{"id": "u-admin", "nama": "Admin", "email": "admin@sekolah.id", "role": "admin"},
			map[string]any{"id": "u-t1", "nama": "Pak Budi", "email": "budi@sekolah.id", "role": "guru"},
			map[string]any{"id": "u-t2", "nama": "Bu Sari", "email": "sari@sekolah.id", "role": "guru"},
			map[string]any{"id": "u-s1", "nama": "Ani", "email": "ani@sekolah.id", "role": "siswa"},
		},
		constants.ResourceTeacherSubjects: []any{
			map[string]any{"id": "r1", "teacherId": "t1", "subjectId": "10", "kelasId": "k1"},
			map[string]any{"id": "r2", "teacherId": "t2", "subjectId": "10", "kelasId": "k2"},
		},
		constants.ResourceSchedules: []any{
			map[string]any{"id": "sc1", "relationId": "r1", "kelasId": "k1", "semesterId": "1",
				"hari": "Senin", "jamMulai": "08:00", "jamSelesai": "09:00"},
		},
	})
	require.NoError(t, err)
	return rec
}

func loaded(t *testing.T, opts ...Option) (*Console, *backendtest.Recorder) {
	t.Helper()
	rec := seed(t)
	c := New(rec, core.Identity{UserID: "u-admin", Role: constants.RoleAdmin}, opts...)
	require.NoError(t, c.Load(context.Background()))
	return c, rec
}

func scheduleForm(r pick.Record) *schedto.ScheduleForm {
	return schedto.ScheduleFormFromRecord(r)
}

func TestLoad_ScheduleRows(t *testing.T) {
	c, rec := loaded(t)
	v := c.ScheduleView()

	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Pak Budi", v.Rows[0].TeacherName)
	assert.Equal(t, "X IPA 1", v.Rows[0].KelasName)
	assert.Equal(t, "1", v.SelectedID)
	assert.Len(t, v.Classes, 2)

	last, ok := rec.Last(backendtest.MethodList, constants.ResourceSchedules)
	require.True(t, ok)
	assert.Equal(t, "1", last.Query["semesterId"])

	c.SetFilter("k2", "")
	assert.Empty(t, c.ScheduleView().Rows)
	assert.Len(t, c.ScheduleView().Relations, 1)
	c.SetFilter("", "senin")
	assert.Equal(t, "Senin", c.ScheduleView().Hari)
	assert.Len(t, c.ScheduleView().Rows, 1)
}

func TestSubmitSchedule_EndBeforeStartRejectedLocally(t *testing.T) {
	c, rec := loaded(t)

	err := c.SubmitSchedule(context.Background(), scheduleForm(pick.Record{
		"kelasId": "k1", "relationId": "r1", "hari": "Selasa", "jamMulai": "10:00", "jamSelesai": "09:00",
	}))
	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailValidation, f.Kind)
	assert.Equal(t, []string{"jam selesai harus setelah jam mulai"}, f.Fields["jamSelesai"])
	assert.Zero(t, rec.Calls(backendtest.MethodCreate, ""))
	assert.Zero(t, rec.Calls(backendtest.MethodUpdate, ""))
}

func TestSubmitSchedule_ConflictBanner(t *testing.T) {
	c, rec := loaded(t)
	ctx := context.Background()

	err := c.SubmitSchedule(ctx, scheduleForm(pick.Record{
		"kelasId": "k1", "teacherId": "t2", "subjectId": "10", "hari": "Senin", "jamMulai": "08:30", "jamSelesai": "09:30",
	}))
	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailConflict, f.Kind)
	assert.Equal(t, 1, rec.Calls(backendtest.MethodCreate, constants.ResourceSchedules))

	v := c.ScheduleView()
	require.NotNil(t, v.Banner)
	assert.Equal(t, "kelas", v.Banner.Scope)
	assert.Equal(t, []string{"Senin • 08:00 - 09:00 • Kelas X IPA 1 • Guru Pak Budi • Mapel Matematika"}, v.Banner.Entries)
	assert.Len(t, v.Rows, 1)

	// jam 09:00 tepat setelah jadwal lama: tidak bentrok
	require.NoError(t, c.SubmitSchedule(ctx, scheduleForm(pick.Record{
		"kelasId": "k1", "teacherId": "t2", "subjectId": "10", "hari": "Senin", "jamMulai": "09:00", "jamSelesai": "10:00",
	})))
	v = c.ScheduleView()
	assert.Nil(t, v.Banner)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "09:00", v.Rows[1].JamMulai)
	last, _ := rec.Last(backendtest.MethodCreate, constants.ResourceSchedules)
	assert.Equal(t, "1", last.Payload["semesterId"])
}

func TestDeleteSchedule(t *testing.T) {
	var changed []string
	c, _ := loaded(t, WithOnDataChange(func(kind string) { changed = append(changed, kind) }))
	ctx := context.Background()

	err := c.DeleteSchedule(ctx, "nope")
	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailNotFound, f.Kind)

	require.NoError(t, c.DeleteSchedule(ctx, "sc1"))
	assert.Empty(t, c.ScheduleView().Rows)
	assert.Equal(t, []string{core.KindSchedules}, changed)
}

func TestHomeroomCandidates(t *testing.T) {
	c, _ := loaded(t)

	names := func(kelasID string) []string {
		out := []string{}
		for _, tch := range c.HomeroomCandidates(kelasID) {
			out = append(out, tch.Nama)
		}
		return out
	}
	assert.Equal(t, []string{"Bu Sari"}, names("k2"))
	assert.Equal(t, []string{"Bu Sari", "Pak Budi"}, names("k1"))
}

func TestCreateUser_Homeroom(t *testing.T) {
	c, rec := loaded(t)
	ctx := context.Background()

	form := func(kelasID, email string) userdto.UserForm {
		f, err := userdto.UserFormFromRecord(pick.Record{
			"role": "walikelas", "nama": "Ibu Rina", "email": email, "nip": "198001012", "kelasId": kelasID,
		})
		require.NoError(t, err)
		return f
	}

	err := c.CreateUser(ctx, form("k1", "sari@sekolah.id"))
	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailValidation, f.Kind)
	assert.Equal(t, []string{"kelas sudah memiliki wali kelas"}, f.Fields["kelasId"])
	assert.Equal(t, []string{"email sudah terdaftar"}, f.Fields["email"])
	assert.Zero(t, rec.Calls(backendtest.MethodCreate, ""))

	require.NoError(t, c.CreateUser(ctx, form("k2", "rina@sekolah.id")))
	assert.Equal(t, 1, rec.Calls(backendtest.MethodCreate, constants.ResourceUsers))
	assert.Equal(t, 1, rec.Calls(backendtest.MethodCreate, constants.ResourceTeachers))
	last, ok := rec.Last(backendtest.MethodUpdate, constants.ResourceClasses)
	require.True(t, ok)
	assert.Equal(t, "k2", last.ID)
	assert.NotEmpty(t, last.Payload["waliKelasId"])

	homerooms := c.Users(constants.RoleHomeroom)
	require.Len(t, homerooms, 2)
	assert.Equal(t, "Ibu Rina", homerooms[0].Nama)
	assert.Equal(t, "X IPA 2", homerooms[0].KelasNama)
	assert.Equal(t, "Pak Budi", homerooms[1].Nama)
}

func TestDeleteUser_ReleasesHomeroomClass(t *testing.T) {
	c, rec := loaded(t)
	ctx := context.Background()

	require.NoError(t, c.DeleteUser(ctx, "u-t1"))
	assert.Equal(t, 1, rec.Calls(backendtest.MethodDelete, constants.ResourceTeachers))
	assert.Equal(t, 1, rec.Calls(backendtest.MethodDelete, constants.ResourceUsers))

	_, found := c.findUser("u-t1")
	assert.False(t, found)
	for _, k := range c.Classes() {
		assert.Empty(t, k.WaliKelasID, k.ID)
	}

	err := c.DeleteUser(ctx, "u-t1")
	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailNotFound, f.Kind)
}

func TestSemesterAdmin(t *testing.T) {
	c, rec := loaded(t)
	ctx := context.Background()
	active := true

	err := c.CreateSemester(ctx, &semdto.SemesterCreateDTO{
		TahunAjaran: "2025-2026", Semester: 2, TanggalMulai: "2025-01-06", TanggalSelesai: "2025-06-20",
	})
	f, ok := core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailValidation, f.Kind)
	assert.Contains(t, f.Fields, "tahunAjaran")
	assert.Zero(t, rec.Calls(backendtest.MethodCreate, ""))

	require.NoError(t, c.CreateSemester(ctx, &semdto.SemesterCreateDTO{
		TahunAjaran: "2024/2025", Semester: 2, TanggalMulai: "2025-01-06", TanggalSelesai: "2025-06-20", IsActive: &active,
	}))
	list := c.Semesters()
	require.Len(t, list, 2)
	activeCount := 0
	for _, s := range list {
		if s.IsActive {
			activeCount++
			assert.Equal(t, "2024/2025 - Semester Genap", s.Metadata.Label(false))
		}
	}
	assert.Equal(t, 1, activeCount)

	err = c.UpdateSemester(ctx, "99", &semdto.SemesterUpdateDTO{IsActive: &active})
	f, ok = core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailNotFound, f.Kind)

	end := "2024-01-01"
	err = c.UpdateSemester(ctx, "1", &semdto.SemesterUpdateDTO{TanggalSelesai: &end})
	f, ok = core.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, core.FailValidation, f.Kind)
	assert.Equal(t, 1, rec.Calls(backendtest.MethodUpdate, constants.ResourceSemesters))
}
