// file: internals/features/dashboard/admin/service/semester_admin.go
package service

import (
	"context"

	"go.uber.org/zap"

	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/features/dashboard/core"
	semdto "sekolahku_dashboard/internals/features/school/semesters/dto"
	semmodel "sekolahku_dashboard/internals/features/school/semesters/model"
)

const MsgSemesterUnknown = "Semester tidak ditemukan."

func (c *Console) Semesters() []semmodel.View {
	return c.semesters.View().Options
}

func (c *Console) reloadSemesters(ctx context.Context) {
	raw, err := c.client.List(ctx, constants.ResourceSemesters, nil)
	c.sections.Set(constants.ResourceSemesters, err)
	if err != nil {
		c.log.Warn("reload gagal", zap.String("resource", constants.ResourceSemesters), zap.Error(err))
		return
	}
	c.semesters.Set(raw)
}

// deactivateOthers: hanya satu semester aktif; yang lain di-nonaktifkan.
func (c *Console) deactivateOthers(ctx context.Context, keepID string) {
	for _, m := range c.semesters.Resolver().List() {
		if m.ID == keepID || !m.IsActive {
			continue
		}
		if _, err := c.client.Update(ctx, constants.ResourceSemesters, m.ID, map[string]any{"isActive": false}); err != nil {
			c.log.Warn("nonaktifkan semester gagal", zap.String("semester_id", m.ID), zap.Error(err))
		}
	}
}

func (c *Console) CreateSemester(ctx context.Context, form *semdto.SemesterCreateDTO) error {
	op := "tambah semester"
	if err := form.Validate(c.validate); err != nil {
		return c.fail(op, err)
	}
	res, err := c.client.Create(ctx, constants.ResourceSemesters, form.ToPayload())
	if err != nil {
		return c.fail(op, err)
	}
	if form.WantsActive() {
		c.deactivateOthers(ctx, resultID(res))
	}
	c.reloadSemesters(ctx)
	c.succeed(core.KindSemesters, "Semester berhasil ditambahkan")
	return nil
}

func (c *Console) UpdateSemester(ctx context.Context, id string, form *semdto.SemesterUpdateDTO) error {
	op := "update semester"
	if err := requireID(id); err != nil {
		return c.fail(op, err)
	}
	current, ok := c.semesters.Resolver().Find(id)
	if !ok {
		return c.fail(op, &core.Failure{Kind: core.FailNotFound, Message: MsgSemesterUnknown})
	}
	if err := form.Validate(c.validate, current); err != nil {
		return c.fail(op, err)
	}
	if _, err := c.client.Update(ctx, constants.ResourceSemesters, id, form.ToPayload()); err != nil {
		return c.fail(op, err)
	}
	if form.IsActive != nil && *form.IsActive {
		c.deactivateOthers(ctx, id)
	}
	c.reloadSemesters(ctx)
	if err := c.loadSchedules(ctx); err != nil {
		c.log.Warn("reload jadwal gagal", zap.Error(err))
	}
	c.succeed(core.KindSemesters, "Semester berhasil diperbarui")
	return nil
}
