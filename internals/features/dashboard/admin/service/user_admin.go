// file: internals/features/dashboard/admin/service/user_admin.go
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/features/dashboard/core"
	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	userdto "sekolahku_dashboard/internals/features/users/dto"
	usermodel "sekolahku_dashboard/internals/features/users/model"
	userservice "sekolahku_dashboard/internals/features/users/service"
	helper "sekolahku_dashboard/internals/helpers"
	"sekolahku_dashboard/internals/helpers/pick"
)

const MsgUserUnknown = "User tidak ditemukan."

// resultID: id record dari data response mutasi.
func resultID(res *backend.Result) string {
	if res == nil {
		return ""
	}
	if list := pick.Normalize(pick.Unwrap(res.Data), "id"); len(list) > 0 {
		return pick.ID(list[0], "id")
	}
	return ""
}

// Users: gabungan users + profil siswa/guru. role "" = semua.
func (c *Console) Users(role string) []usermodel.MergedUser {
	merged := userservice.Merge(c.users, c.students, c.teachers, c.classes)
	return userservice.FilterByRole(merged, role)
}

func (c *Console) findUser(userID string) (usermodel.MergedUser, bool) {
	for _, u := range userservice.Merge(c.users, c.students, c.teachers, c.classes) {
		if u.UserID == userID {
			return u, true
		}
	}
	return usermodel.MergedUser{}, false
}

func (c *Console) hasAccount(userID string) bool {
	for _, u := range c.users {
		if pick.ID(u, usermodel.IDPaths...) == userID {
			return true
		}
	}
	return false
}

func (c *Console) reloadPeople(ctx context.Context) {
	c.reloadReference(ctx, constants.ResourceUsers, &c.users, "id")
	c.reloadReference(ctx, constants.ResourceStudents, &c.students, "id")
	c.reloadReference(ctx, constants.ResourceTeachers, &c.teachers, relmodel.RefIDPaths...)
	c.reloadReference(ctx, constants.ResourceClasses, &c.classes, relmodel.RefIDPaths...)
}

// checkUserForm: aturan yang butuh data yang sudah dimuat (email unik, kelas valid,
// satu wali per kelas). self = user yang sedang diedit, kosong saat create.
func (c *Console) checkUserForm(form userdto.UserForm, self usermodel.MergedUser) error {
	fe := &helper.FieldError{Fields: map[string][]string{}}
	add := func(field, msg string) { fe.Fields[field] = append(fe.Fields[field], msg) }

	email := strings.ToLower(form.Account().Email)
	for _, u := range c.users {
		if pick.ID(u, usermodel.IDPaths...) == self.UserID && self.UserID != "" {
			continue
		}
		if strings.ToLower(pick.String(u, usermodel.EmailPaths...)) == email {
			add("email", "email sudah terdaftar")
			break
		}
	}

	_, profile := form.Profile(self.UserID)
	kelasID := pick.FirstNonEmpty(form.HomeroomKelasID(), pick.ID(profile, "kelasId"))
	if kelasID != "" {
		exists, wali := c.classHomeroom(kelasID)
		switch {
		case !exists:
			add("kelasId", "kelas tidak ditemukan")
		case form.HomeroomKelasID() != "" && wali != "" && wali != self.TeacherID:
			add("kelasId", "kelas sudah memiliki wali kelas")
		}
	}

	if len(fe.Fields) > 0 {
		return fe
	}
	return nil
}

func (c *Console) setHomeroom(ctx context.Context, kelasID, teacherID string) error {
	_, err := c.client.Update(ctx, constants.ResourceClasses, kelasID, map[string]any{"waliKelasId": teacherID})
	return err
}

// CreateUser: akun dulu, lalu profil sesuai role, lalu wali kelas.
func (c *Console) CreateUser(ctx context.Context, form userdto.UserForm) error {
	op := "tambah user"
	if err := form.Validate(c.validate); err != nil {
		return c.fail(op, err)
	}
	if err := c.checkUserForm(form, usermodel.MergedUser{}); err != nil {
		return c.fail(op, err)
	}

	res, err := c.client.Create(ctx, constants.ResourceUsers, form.UserPayload())
	if err != nil {
		return c.fail(op, err)
	}
	userID := resultID(res)
	log := c.log.With(zap.String("target_user_id", userID), zap.String("role", form.Role()))

	if resource, payload := form.Profile(userID); resource != "" {
		pres, err := c.client.Create(ctx, resource, payload)
		if err != nil {
			log.Error("profil gagal dibuat setelah akun tersimpan", zap.String("resource", resource), zap.Error(err))
			c.reloadPeople(ctx)
			return c.fail(op, err)
		}
		if kelasID := form.HomeroomKelasID(); kelasID != "" {
			if err := c.setHomeroom(ctx, kelasID, resultID(pres)); err != nil {
				c.reloadPeople(ctx)
				return c.fail(op, err)
			}
		}
	}

	c.reloadPeople(ctx)
	c.succeed(core.KindUsers, "User berhasil ditambahkan")
	return nil
}

func (c *Console) UpdateUser(ctx context.Context, id string, form userdto.UserForm) error {
	op := "update user"
	if err := requireID(id); err != nil {
		return c.fail(op, err)
	}
	current, ok := c.findUser(id)
	if !ok {
		return c.fail(op, &core.Failure{Kind: core.FailNotFound, Message: MsgUserUnknown})
	}
	if err := form.Validate(c.validate); err != nil {
		return c.fail(op, err)
	}
	if err := c.checkUserForm(form, current); err != nil {
		return c.fail(op, err)
	}

	if _, err := c.client.Update(ctx, constants.ResourceUsers, id, form.UserPayload()); err != nil {
		return c.fail(op, err)
	}

	teacherID := current.TeacherID
	if resource, payload := form.Profile(id); resource != "" {
		existing := current.StudentID
		if resource == constants.ResourceTeachers {
			existing = current.TeacherID
		}
		var err error
		if existing != "" {
			_, err = c.client.Update(ctx, resource, existing, payload)
		} else {
			var pres *backend.Result
			pres, err = c.client.Create(ctx, resource, payload)
			if resource == constants.ResourceTeachers {
				teacherID = resultID(pres)
			}
		}
		if err != nil {
			c.reloadPeople(ctx)
			return c.fail(op, err)
		}
	}

	// pindah / lepas kelas perwalian
	oldKelas := ""
	if current.Role == constants.RoleHomeroom {
		oldKelas = current.KelasID
	}
	newKelas := form.HomeroomKelasID()
	if oldKelas != "" && oldKelas != newKelas {
		if err := c.setHomeroom(ctx, oldKelas, ""); err != nil {
			c.log.Warn("lepas wali kelas gagal", zap.String("kelas_id", oldKelas), zap.Error(err))
		}
	}
	if newKelas != "" && newKelas != oldKelas && teacherID != "" {
		if err := c.setHomeroom(ctx, newKelas, teacherID); err != nil {
			c.reloadPeople(ctx)
			return c.fail(op, err)
		}
	}

	c.reloadPeople(ctx)
	c.succeed(core.KindUsers, "User berhasil diperbarui")
	return nil
}

// DeleteUser: profil dan status wali kelas dihapus sebelum akun.
func (c *Console) DeleteUser(ctx context.Context, id string) error {
	op := "hapus user"
	if err := requireID(id); err != nil {
		return c.fail(op, err)
	}
	current, ok := c.findUser(id)
	if !ok {
		return c.fail(op, &core.Failure{Kind: core.FailNotFound, Message: MsgUserUnknown})
	}

	if current.TeacherID != "" {
		if kelasID := c.homeroomOwner(current.TeacherID, ""); kelasID != "" {
			if err := c.setHomeroom(ctx, kelasID, ""); err != nil {
				return c.fail(op, err)
			}
		}
		if _, err := c.client.Delete(ctx, constants.ResourceTeachers, current.TeacherID); err != nil {
			return c.fail(op, err)
		}
	}
	if current.StudentID != "" {
		if _, err := c.client.Delete(ctx, constants.ResourceStudents, current.StudentID); err != nil {
			return c.fail(op, err)
		}
	}
	if c.hasAccount(id) {
		if _, err := c.client.Delete(ctx, constants.ResourceUsers, id); err != nil {
			c.reloadPeople(ctx)
			return c.fail(op, err)
		}
	}

	c.reloadPeople(ctx)
	c.succeed(core.KindUsers, "User berhasil dihapus")
	return nil
}
