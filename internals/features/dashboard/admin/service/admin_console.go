// file: internals/features/dashboard/admin/service/admin_console.go
package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/features/dashboard/core"
	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	relservice "sekolahku_dashboard/internals/features/school/relations/service"
	schedmodel "sekolahku_dashboard/internals/features/school/schedules/model"
	schedservice "sekolahku_dashboard/internals/features/school/schedules/service"
	helper "sekolahku_dashboard/internals/helpers"
	"sekolahku_dashboard/internals/helpers/pick"
)

type Option func(*Console)

func WithLogger(l *zap.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

func WithOnDataChange(f core.DataChangeFunc) Option {
	return func(c *Console) { c.onChange = f }
}

func WithValidator(v *validator.Validate) Option {
	return func(c *Console) { c.validate = v }
}

// Console admin: jadwal, semester, kelas, dan user dalam satu sesi.
type Console struct {
	client   backend.Client
	ident    core.Identity
	log      *zap.Logger
	validate *validator.Validate
	onChange core.DataChangeFunc

	semesters *core.Semesters
	classes   []pick.Record
	teachers  []pick.Record
	subjects  []pick.Record
	students  []pick.Record
	users     []pick.Record
	lookups   relmodel.Lookups
	options   []relmodel.Option
	relByID   map[string]relmodel.Option

	schedules []schedmodel.Schedule
	filter    schedservice.Filter
	banner    *schedservice.Banner

	sections core.Sections
	notice   *core.Notice
}

func New(client backend.Client, ident core.Identity, opts ...Option) *Console {
	c := &Console{
		client:    client,
		ident:     ident,
		log:       zap.NewNop(),
		validate:  helper.Validator(),
		semesters: core.NewSemesters(),
		relByID:   map[string]relmodel.Option{},
		sections:  core.Sections{},
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With(zap.String("dashboard", "admin"), zap.String("user_id", ident.UserID))
	return c
}

// Load: semua referensi paralel, lalu jadwal semester efektif.
func (c *Console) Load(ctx context.Context) error {
	if c.ident.IsZero() {
		return core.ErrNoIdentity
	}
	if err := c.loadReferences(ctx); err != nil {
		c.schedules = nil
		f := core.Classify(err)
		c.notice = f.Notice()
		return f
	}
	return c.loadSchedules(ctx)
}

func (c *Console) loadReferences(ctx context.Context) error {
	var (
		classes, teachers, subjects, students, users []pick.Record
		rawRels                                      any
	)
	fetch := func(resource string, dst *[]pick.Record, ids ...string) core.Loader {
		return core.Loader{Name: resource, Load: func(ctx context.Context) (err error) {
			*dst, err = core.Fetch(ctx, c.client, resource, nil, ids...)
			return err
		}}
	}
	failed, err := core.FanOut(ctx, c.log,
		core.Loader{Name: constants.ResourceSemesters, Required: true, Load: func(ctx context.Context) error {
			raw, err := c.client.List(ctx, constants.ResourceSemesters, nil)
			if err != nil {
				return err
			}
			c.semesters.Set(raw)
			return nil
		}},
		fetch(constants.ResourceClasses, &classes, relmodel.RefIDPaths...),
		fetch(constants.ResourceTeachers, &teachers, relmodel.RefIDPaths...),
		fetch(constants.ResourceSubjects, &subjects, relmodel.RefIDPaths...),
		fetch(constants.ResourceStudents, &students, "id"),
		fetch(constants.ResourceUsers, &users, "id"),
		core.Loader{Name: constants.ResourceTeacherSubjects, Load: func(ctx context.Context) (err error) {
			rawRels, err = c.client.List(ctx, constants.ResourceTeacherSubjects, nil)
			return err
		}},
	)

	keep := func(resource string, dst *[]pick.Record, src []pick.Record) {
		c.sections.Set(resource, failed[resource])
		if _, bad := failed[resource]; !bad {
			*dst = src
		}
	}
	c.sections.Set(constants.ResourceSemesters, failed[constants.ResourceSemesters])
	keep(constants.ResourceClasses, &c.classes, classes)
	keep(constants.ResourceTeachers, &c.teachers, teachers)
	keep(constants.ResourceSubjects, &c.subjects, subjects)
	keep(constants.ResourceStudents, &c.students, students)
	keep(constants.ResourceUsers, &c.users, users)

	c.lookups = relmodel.BuildLookups(c.teachers, c.subjects, c.classes)
	c.sections.Set(constants.ResourceTeacherSubjects, failed[constants.ResourceTeacherSubjects])
	if _, bad := failed[constants.ResourceTeacherSubjects]; !bad {
		c.options, c.relByID = relservice.BuildOptions(rawRels, c.lookups)
	}
	return err
}

// reloadReference: satu list referensi setelah mutasi.
func (c *Console) reloadReference(ctx context.Context, resource string, dst *[]pick.Record, ids ...string) {
	list, err := core.Fetch(ctx, c.client, resource, nil, ids...)
	c.sections.Set(resource, err)
	if err != nil {
		c.log.Warn("reload gagal", zap.String("resource", resource), zap.Error(err))
		return
	}
	*dst = list
	c.lookups = relmodel.BuildLookups(c.teachers, c.subjects, c.classes)
}

func (c *Console) fail(op string, err error) error {
	f := core.Report(c.log, op, err)
	if f.Kind == core.FailSemesterNotFound {
		c.schedules = nil
		c.sections.Set(constants.ResourceSchedules, err)
	}
	c.notice = f.Notice()
	return f
}

func (c *Console) succeed(kind, msg string) {
	c.onChange.Notify(kind)
	c.notice = core.SuccessNotice(msg)
}

func (c *Console) Notice() *core.Notice { return c.notice }

func (c *Console) Errors() map[string]string { return c.sections.Copy() }

func requireID(id string) error {
	if id == "" {
		return helper.NewFieldError("id", "wajib diisi")
	}
	return nil
}
