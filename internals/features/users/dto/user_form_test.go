package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_dashboard/internals/constants"
	helper "sekolahku_dashboard/internals/helpers"
)

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	fe, ok := helper.AsFieldError(err)
	require.True(t, ok, "expected field error, got %v", err)
	return fe.Fields
}

func TestDecodeUserForm_PicksVariantByRole(t *testing.T) {
	cases := map[string]any{
		`{"role":"admin"}`:     &AdminForm{},
		`{"role":"Guru"}`:      &TeacherForm{},
		`{"role":"teacher"}`:   &TeacherForm{},
		`{"role":"walikelas"}`: &HomeroomForm{},
		`{"role":"siswa"}`:     &StudentForm{},
	}
	for body, want := range cases {
		f, err := DecodeUserForm([]byte(body))
		require.NoError(t, err, body)
		assert.IsType(t, want, f, body)
	}

	_, err := DecodeUserForm([]byte(`{"nama":"x"}`))
	assert.Equal(t, []string{"wajib diisi"}, fieldsOf(t, err)["role"])

	_, err = DecodeUserForm([]byte(`{"role":"kepsek"}`))
	assert.Equal(t, []string{"pilihan tidak valid"}, fieldsOf(t, err)["role"])

	_, err = DecodeUserForm([]byte(`nope`))
	assert.Contains(t, fieldsOf(t, err), "_")
}

func TestStudentForm_RequiresNISNAndKelas(t *testing.T) {
	v := helper.NewValidator()
	f, err := DecodeUserForm([]byte(`{"role":"siswa","nama":"Ani Lestari","email":"ANI@sekolah.id"}`))
	require.NoError(t, err)

	fields := fieldsOf(t, f.Validate(v))
	assert.Equal(t, []string{"wajib diisi"}, fields["nisn"])
	assert.Equal(t, []string{"wajib diisi"}, fields["kelasId"])
	assert.NotContains(t, fields, "nip")

	f, _ = DecodeUserForm([]byte(`{"role":"siswa","nama":"Ani Lestari","email":"ani@sekolah.id","nisn":"12345","kelasId":"k1"}`))
	assert.Equal(t, []string{"panjang tidak sesuai"}, fieldsOf(t, f.Validate(v))["nisn"])

	f, _ = DecodeUserForm([]byte(`{"role":"siswa","nama":"Ani Lestari","email":"ANI@sekolah.id","nisn":"0012345678","kelasId":7}`))
	require.NoError(t, f.Validate(v))
	assert.Equal(t, "ani@sekolah.id", f.Account().Email)

	res, payload := f.Profile("u1")
	assert.Equal(t, constants.ResourceStudents, res)
	assert.Equal(t, "7", payload["kelasId"])
	assert.Equal(t, "0012345678", payload["nisn"])
	assert.Equal(t, constants.RoleStudent, f.UserPayload()["role"])
}

func TestTeacherAndHomeroomForms(t *testing.T) {
	v := helper.NewValidator()

	f, _ := DecodeUserForm([]byte(`{"role":"guru","nama":"Pak Budi","email":"budi@sekolah.id"}`))
	fields := fieldsOf(t, f.Validate(v))
	assert.Equal(t, []string{"wajib diisi"}, fields["nip"])
	assert.NotContains(t, fields, "kelasId")

	f, _ = DecodeUserForm([]byte(`{"role":"walikelas","nama":"Bu Sari","email":"sari@sekolah.id","nip":"198001012005"}`))
	assert.Equal(t, []string{"wajib diisi"}, fieldsOf(t, f.Validate(v))["kelasId"])

	f, _ = DecodeUserForm([]byte(`{"role":"walikelas","nama":"Bu Sari","email":"sari@sekolah.id","nip":"198001012005","kelasId":"k1"}`))
	require.NoError(t, f.Validate(v))
	assert.Equal(t, "k1", f.HomeroomKelasID())
	res, _ := f.Profile("u2")
	assert.Equal(t, constants.ResourceTeachers, res)

	f, _ = DecodeUserForm([]byte(`{"role":"admin","nama":"Admin","email":"bukan-email"}`))
	assert.Equal(t, []string{"format email tidak valid"}, fieldsOf(t, f.Validate(v))["email"])
	res, _ = f.Profile("u3")
	assert.Empty(t, res)
}
