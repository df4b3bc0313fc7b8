// file: internals/features/dashboard/admin/service/schedule_manager.go
package service

import (
	"context"

	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/features/dashboard/core"
	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	relservice "sekolahku_dashboard/internals/features/school/relations/service"
	schedto "sekolahku_dashboard/internals/features/school/schedules/dto"
	schedmodel "sekolahku_dashboard/internals/features/school/schedules/model"
	schedservice "sekolahku_dashboard/internals/features/school/schedules/service"
	"sekolahku_dashboard/internals/helpers/pick"
)

type ClassOption struct {
	ID   string `json:"id"`
	Nama string `json:"nama"`
}

type ScheduleView struct {
	core.SemesterView
	KelasID   string               `json:"kelasId,omitempty"`
	Hari      string               `json:"hari,omitempty"`
	Days      []string             `json:"days"`
	Classes   []ClassOption        `json:"classes"`
	Relations []relmodel.Option    `json:"relations"`
	Rows      []schedservice.Row   `json:"rows"`
	Banner    *schedservice.Banner `json:"banner,omitempty"`
	Errors    map[string]string    `json:"errors,omitempty"`
	Notice    *core.Notice         `json:"notice,omitempty"`
}

func (c *Console) classOptions() []ClassOption {
	out := make([]ClassOption, 0, len(c.classes))
	for _, r := range c.classes {
		id := pick.ID(r, relmodel.RefIDPaths...)
		out = append(out, ClassOption{ID: id, Nama: pick.FirstNonEmpty(c.lookups.KelasName(id), id)})
	}
	return out
}

func (c *Console) ScheduleView() ScheduleView {
	return ScheduleView{
		SemesterView: c.semesters.View(),
		KelasID:      c.filter.KelasID,
		Hari:         c.filter.Hari,
		Days:         schedmodel.Days,
		Classes:      c.classOptions(),
		Relations:    relservice.FilterByClass(c.options, c.filter.KelasID),
		Rows:         schedservice.BuildRows(c.schedules, c.relByID, c.lookups, c.filter),
		Banner:       c.banner,
		Errors:       c.sections.Copy(),
		Notice:       c.notice,
	}
}

func (c *Console) loadSchedules(ctx context.Context) error {
	semID, err := c.semesters.Effective()
	if err != nil {
		c.schedules = nil
		c.sections.Set(constants.ResourceSchedules, err)
		f := core.Classify(err)
		c.notice = f.Notice()
		return f
	}
	raw, err := c.client.List(ctx, constants.ResourceSchedules, backend.Query{"semesterId": semID})
	if err != nil {
		c.log.Warn("load gagal", zap.String("resource", constants.ResourceSchedules),
			zap.String("semester_id", semID), zap.Error(err))
		c.schedules = nil
		c.sections.Set(constants.ResourceSchedules, err)
		f := core.Classify(err)
		c.notice = f.Notice()
		return f
	}
	c.sections.Clear(constants.ResourceSchedules)
	c.schedules = schedmodel.FromRaw(raw)
	return nil
}

func (c *Console) SelectSemester(ctx context.Context, id string) error {
	c.semesters.Select(pick.Stringify(id))
	c.banner = nil
	return c.loadSchedules(ctx)
}

// SetFilter: kelas/hari hanya menyaring tampilan, tanpa request. Hari tak dikenal = semua hari.
func (c *Console) SetFilter(kelasID, hari string) {
	c.filter.KelasID = kelasID
	c.filter.Hari, _ = schedmodel.ParseHari(hari)
}

// SubmitSchedule: create kalau form.ID kosong, selain itu update.
// Bentrok (409) disimpan sebagai banner sampai submit berikutnya.
func (c *Console) SubmitSchedule(ctx context.Context, form *schedto.ScheduleForm) error {
	op := "simpan jadwal"
	semID, _ := c.semesters.Effective()
	form.DefaultSemester(semID)
	if err := form.Validate(c.validate); err != nil {
		return c.fail(op, err)
	}

	payload := form.ToPayload()
	var err error
	if form.ID == "" {
		_, err = c.client.Create(ctx, constants.ResourceSchedules, payload)
	} else {
		_, err = c.client.Update(ctx, constants.ResourceSchedules, form.ID, payload)
	}
	if err != nil {
		f := core.Report(c.log, op, err)
		c.banner = f.Banner
		if f.Kind == core.FailSemesterNotFound {
			c.schedules = nil
			c.sections.Set(constants.ResourceSchedules, err)
		}
		c.notice = f.Notice()
		return f
	}

	c.banner = nil
	if err := c.loadSchedules(ctx); err != nil {
		c.log.Warn("reload jadwal gagal", zap.Error(err))
	}
	c.succeed(core.KindSchedules, "Jadwal berhasil disimpan")
	return nil
}

func (c *Console) DeleteSchedule(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return c.fail("hapus jadwal", err)
	}
	if _, err := c.client.Delete(ctx, constants.ResourceSchedules, id); err != nil {
		return c.fail("hapus jadwal", err)
	}
	c.banner = nil
	if err := c.loadSchedules(ctx); err != nil {
		c.log.Warn("reload jadwal gagal", zap.Error(err))
	}
	c.succeed(core.KindSchedules, "Jadwal berhasil dihapus")
	return nil
}
