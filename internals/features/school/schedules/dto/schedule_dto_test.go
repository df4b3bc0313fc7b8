package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "sekolahku_dashboard/internals/helpers"
)

func TestScheduleForm_EndMustBeAfterStart(t *testing.T) {
	f, err := DecodeScheduleForm([]byte(`{"kelasId":"k1","relationId":"r1","semesterId":"1","hari":"senin","jamMulai":"10:00","jamSelesai":"09:00"}`))
	require.NoError(t, err)

	verr := f.Validate(helper.NewValidator())
	fe, ok := helper.AsFieldError(verr)
	require.True(t, ok)
	assert.Equal(t, []string{"jam selesai harus setelah jam mulai"}, fe.Fields["jamSelesai"])

	f.JamSelesai = "10:00"
	assert.Error(t, f.Validate(helper.NewValidator()))

	f.JamSelesai = "11:30"
	assert.NoError(t, f.Validate(helper.NewValidator()))
	assert.Equal(t, "Senin", f.Hari)
}

func TestScheduleForm_RelationOrTeacherSubject(t *testing.T) {
	v := helper.NewValidator()

	f := &ScheduleForm{KelasID: "k1", SemesterID: "1", Hari: "Rabu", JamMulai: "07:00", JamSelesai: "08:30"}
	fields := helper.FieldErrors(f.Validate(v))
	assert.Contains(t, fields, "teacherId")
	assert.Contains(t, fields, "subjectId")

	f.TeacherID, f.SubjectID = "t1", "10"
	require.NoError(t, f.Validate(v))
	p := f.ToPayload()
	assert.Equal(t, "t1", p["teacherId"])
	assert.NotContains(t, p, "relationId")
}

func TestScheduleForm_DayAndTimeFormat(t *testing.T) {
	f := &ScheduleForm{KelasID: "k1", RelationID: "r1", SemesterID: "1", Hari: "Senen", JamMulai: "7.00", JamSelesai: "25:00"}
	fields := helper.FieldErrors(f.Validate(helper.NewValidator()))
	assert.Equal(t, []string{"pilihan tidak valid"}, fields["hari"])
	assert.Equal(t, []string{"format jam harus HH:MM"}, fields["jamMulai"])
	assert.Equal(t, []string{"format jam harus HH:MM"}, fields["jamSelesai"])

	f = &ScheduleForm{}
	fields = helper.FieldErrors(f.Validate(helper.NewValidator()))
	for _, k := range []string{"kelasId", "semesterId", "hari", "jamMulai", "jamSelesai"} {
		assert.Equal(t, []string{"wajib diisi"}, fields[k], k)
	}
}
