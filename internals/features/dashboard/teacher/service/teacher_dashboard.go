// file: internals/features/dashboard/teacher/service/teacher_dashboard.go
package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/features/dashboard/core"
	attdto "sekolahku_dashboard/internals/features/school/attendance/dto"
	attmodel "sekolahku_dashboard/internals/features/school/attendance/model"
	attservice "sekolahku_dashboard/internals/features/school/attendance/service"
	gradedto "sekolahku_dashboard/internals/features/school/grades/dto"
	grademodel "sekolahku_dashboard/internals/features/school/grades/model"
	gradeservice "sekolahku_dashboard/internals/features/school/grades/service"
	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	relservice "sekolahku_dashboard/internals/features/school/relations/service"
	usermodel "sekolahku_dashboard/internals/features/users/model"
	helper "sekolahku_dashboard/internals/helpers"
	"sekolahku_dashboard/internals/helpers/pick"
)

type Option func(*Dashboard)

func WithLogger(l *zap.Logger) Option {
	return func(d *Dashboard) {
		if l != nil {
			d.log = l
		}
	}
}

func WithOnDataChange(f core.DataChangeFunc) Option {
	return func(d *Dashboard) { d.onChange = f }
}

func WithValidator(v *validator.Validate) Option {
	return func(d *Dashboard) { d.validate = v }
}

// Dashboard guru: nilai & absensi yang diinput guru ini di semester efektif.
type Dashboard struct {
	client   backend.Client
	ident    core.Identity
	log      *zap.Logger
	validate *validator.Validate
	onChange core.DataChangeFunc

	semesters  *core.Semesters
	profile    usermodel.Teacher
	lookups    relmodel.Lookups
	options    []relmodel.Option
	students   []usermodel.Student
	rawRels    any
	grades     []grademodel.Grade
	attendance []attmodel.Attendance
	sections   core.Sections
	notice     *core.Notice
}

func New(client backend.Client, ident core.Identity, opts ...Option) *Dashboard {
	d := &Dashboard{
		client:    client,
		ident:     ident,
		log:       zap.NewNop(),
		validate:  helper.Validator(),
		semesters: core.NewSemesters(),
		sections:  core.Sections{},
	}
	for _, o := range opts {
		o(d)
	}
	d.log = d.log.With(zap.String("dashboard", "guru"), zap.String("user_id", ident.UserID))
	return d
}

// teacherID: id profil guru hasil resolve; token tanpa profile_id jatuh ke user id.
func (d *Dashboard) teacherID() string {
	return pick.FirstNonEmpty(d.profile.ID, d.ident.Subject())
}

// relationQuery: tanpa profile_id relasi diambil semua lalu difilter setelah profil diketahui.
func (d *Dashboard) relationQuery() backend.Query {
	if d.ident.ProfileID == "" {
		return nil
	}
	return backend.Query{"teacherId": d.ident.ProfileID}
}

/* =========================================================
   View
========================================================= */

type View struct {
	core.SemesterView
	Relations         []relmodel.Option     `json:"relations"`
	Grades            []grademodel.Grade    `json:"grades"`
	AverageGrade      float64               `json:"averageGrade"`
	Attendance        []attmodel.Attendance `json:"attendance"`
	AttendanceSummary attservice.Summary    `json:"attendanceSummary"`
	Errors            map[string]string     `json:"errors,omitempty"`
	Notice            *core.Notice          `json:"notice,omitempty"`
}

func (d *Dashboard) View() View {
	grades := append([]grademodel.Grade{}, d.grades...)
	attendance := append([]attmodel.Attendance{}, d.attendance...)
	return View{
		SemesterView:      d.semesters.View(),
		Relations:         append([]relmodel.Option{}, d.options...),
		Grades:            grades,
		AverageGrade:      gradeservice.Average(grades),
		Attendance:        attendance,
		AttendanceSummary: attservice.Summarize(attendance),
		Errors:            d.sections.Copy(),
		Notice:            d.notice,
	}
}

// FormOptions: pilihan relasi + siswa untuk form nilai/absensi.
type FormOptions struct {
	Relations []relmodel.Option   `json:"relations"`
	Students  []usermodel.Student `json:"students"`
}

// Options memfilter relasi milik guru berdasarkan kelas ("" = semua).
func (d *Dashboard) Options(kelasID string) FormOptions {
	out := FormOptions{
		Relations: append([]relmodel.Option{}, relservice.FilterByClass(d.options, kelasID)...),
		Students:  []usermodel.Student{},
	}
	for _, s := range d.students {
		if kelasID == "" || s.KelasID == kelasID {
			out.Students = append(out.Students, s)
		}
	}
	return out
}

/* =========================================================
   Load
========================================================= */

func (d *Dashboard) Load(ctx context.Context) error {
	if d.ident.IsZero() {
		return core.ErrNoIdentity
	}
	var teachers, subjects, classes []pick.Record
	failed, err := core.FanOut(ctx, d.log,
		core.Loader{Name: constants.ResourceSemesters, Required: true, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceSemesters, nil)
			if err != nil {
				return err
			}
			d.semesters.Set(raw)
			return nil
		}},
		core.Loader{Name: constants.ResourceTeacherSubjects, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceTeacherSubjects, d.relationQuery())
			if err != nil {
				return err
			}
			d.rawRels = raw
			return nil
		}},
		core.Loader{Name: constants.ResourceTeachers, Load: func(ctx context.Context) (err error) {
			teachers, err = core.Fetch(ctx, d.client, constants.ResourceTeachers, nil, relmodel.RefIDPaths...)
			return err
		}},
		core.Loader{Name: constants.ResourceSubjects, Load: func(ctx context.Context) (err error) {
			subjects, err = core.Fetch(ctx, d.client, constants.ResourceSubjects, nil, relmodel.RefIDPaths...)
			return err
		}},
		core.Loader{Name: constants.ResourceClasses, Load: func(ctx context.Context) (err error) {
			classes, err = core.Fetch(ctx, d.client, constants.ResourceClasses, nil, relmodel.RefIDPaths...)
			return err
		}},
		core.Loader{Name: constants.ResourceStudents, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceStudents, nil)
			if err != nil {
				return err
			}
			d.students = usermodel.StudentsFromRaw(raw)
			return nil
		}},
	)
	for _, name := range []string{
		constants.ResourceSemesters, constants.ResourceTeacherSubjects, constants.ResourceTeachers,
		constants.ResourceSubjects, constants.ResourceClasses, constants.ResourceStudents,
	} {
		d.sections.Set(name, failed[name])
	}

	// list yang gagal dimuat tetap memakai lookup sebelumnya
	if _, bad := failed[constants.ResourceTeachers]; !bad {
		d.lookups.Teachers = relmodel.NameMap(teachers)
		list := make([]usermodel.Teacher, 0, len(teachers))
		for _, r := range teachers {
			list = append(list, usermodel.TeacherFromRecord(r))
		}
		if t, ok := usermodel.FindTeacher(list, d.ident.Subject(), d.ident.UserID); ok {
			d.profile = t
		}
	}
	if _, bad := failed[constants.ResourceSubjects]; !bad {
		d.lookups.Subjects = relmodel.NameMap(subjects)
	}
	if _, bad := failed[constants.ResourceClasses]; !bad {
		d.lookups.Classes = relmodel.NameMap(classes)
	}
	if d.ident.Name != "" {
		if d.lookups.Teachers == nil {
			d.lookups.Teachers = map[string]string{}
		}
		if _, ok := d.lookups.Teachers[d.teacherID()]; !ok {
			d.lookups.Teachers[d.teacherID()] = d.ident.Name
		}
	}
	options, _ := relservice.BuildOptions(d.rawRels, d.lookups)
	d.options = relservice.FilterByTeacher(options, d.teacherID())

	if err != nil {
		d.clearPrimary()
		f := core.Classify(err)
		d.notice = f.Notice()
		return f
	}
	return d.loadPrimary(ctx)
}

func (d *Dashboard) clearPrimary() {
	d.grades = nil
	d.attendance = nil
}

func (d *Dashboard) studentNames() map[string]string {
	out := make(map[string]string, len(d.students))
	for _, s := range d.students {
		out[s.ID] = s.Nama
	}
	return out
}

func (d *Dashboard) loadPrimary(ctx context.Context) error {
	semID, err := d.semesters.Effective()
	if err != nil {
		d.clearPrimary()
		d.sections.Set(constants.ResourceGrades, err)
		d.sections.Set(constants.ResourceAttendance, err)
		f := core.Classify(err)
		d.notice = f.Notice()
		return f
	}

	q := backend.Query{"teacherId": d.teacherID(), "semesterId": semID}
	log := d.log.With(zap.String("semester_id", semID))
	students := d.studentNames()

	failed, err := core.FanOut(ctx, log,
		core.Loader{Name: constants.ResourceGrades, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceGrades, q)
			if err != nil {
				d.grades = nil
				return err
			}
			list := gradeservice.WithSubjectNames(grademodel.FromRaw(raw), d.lookups.Subjects)
			d.grades = gradeservice.WithStudentNames(list, students)
			return nil
		}},
		core.Loader{Name: constants.ResourceAttendance, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceAttendance, q)
			if err != nil {
				d.attendance = nil
				return err
			}
			list := attservice.WithSubjectNames(attmodel.FromRaw(raw), d.lookups.Subjects)
			d.attendance = attservice.WithStudentNames(list, students)
			return nil
		}},
	)
	d.sections.Set(constants.ResourceGrades, failed[constants.ResourceGrades])
	d.sections.Set(constants.ResourceAttendance, failed[constants.ResourceAttendance])
	if err != nil {
		return err
	}
	d.notice = nil
	for _, name := range []string{constants.ResourceGrades, constants.ResourceAttendance} {
		if e, ok := failed[name]; ok {
			f := core.Classify(e)
			d.notice = f.Notice()
			return f
		}
	}
	return nil
}

func (d *Dashboard) SelectSemester(ctx context.Context, id string) error {
	d.semesters.Select(pick.Stringify(id))
	return d.loadPrimary(ctx)
}

/* =========================================================
   Mutasi
========================================================= */

// fail: semester hilang di server → kosongkan nilai & absensi.
func (d *Dashboard) fail(op string, err error) error {
	f := core.Report(d.log, op, err)
	if f.Kind == core.FailSemesterNotFound {
		d.clearPrimary()
		d.sections.Set(constants.ResourceGrades, err)
		d.sections.Set(constants.ResourceAttendance, err)
	}
	d.notice = f.Notice()
	return f
}

// done: reload data utama lalu beri tahu komponen lain.
func (d *Dashboard) done(ctx context.Context, kind, msg string) error {
	if err := d.loadPrimary(ctx); err != nil {
		d.log.Warn("reload setelah mutasi gagal", zap.String("resource", kind), zap.Error(err))
	}
	d.onChange.Notify(kind)
	d.notice = core.SuccessNotice(msg)
	return nil
}

func (d *Dashboard) defaultSemester() string {
	id, _ := d.semesters.Effective()
	return id
}

func (d *Dashboard) CreateGrade(ctx context.Context, form gradedto.GradeForm) error {
	return d.saveGrade(ctx, "", form)
}

func (d *Dashboard) UpdateGrade(ctx context.Context, id string, form gradedto.GradeForm) error {
	if id == "" {
		return d.fail("update nilai", helper.NewFieldError("id", "wajib diisi"))
	}
	return d.saveGrade(ctx, id, form)
}

// saveGrade: validasi dulu, tanpa request kalau gagal. Cek UTS/UAS ganda hanya saat create.
func (d *Dashboard) saveGrade(ctx context.Context, id string, form gradedto.GradeForm) error {
	op := "simpan nilai"
	form.DefaultSemester(d.defaultSemester())
	if err := form.Validate(d.validate); err != nil {
		return d.fail(op, err)
	}
	if id == "" {
		if err := gradedto.EnsureUniqueExam(form, d.grades); err != nil {
			return d.fail(op, err)
		}
	}

	payload := form.ToPayload(d.teacherID())
	var err error
	if id == "" {
		_, err = d.client.Create(ctx, constants.ResourceGrades, payload)
	} else {
		_, err = d.client.Update(ctx, constants.ResourceGrades, id, payload)
	}
	if err != nil {
		return d.fail(op, err)
	}
	return d.done(ctx, core.KindGrades, "Nilai berhasil disimpan")
}

func (d *Dashboard) DeleteGrade(ctx context.Context, id string) error {
	if id == "" {
		return d.fail("hapus nilai", helper.NewFieldError("id", "wajib diisi"))
	}
	if _, err := d.client.Delete(ctx, constants.ResourceGrades, id); err != nil {
		return d.fail("hapus nilai", err)
	}
	return d.done(ctx, core.KindGrades, "Nilai berhasil dihapus")
}

func (d *Dashboard) CreateAttendance(ctx context.Context, form *attdto.AttendanceForm) error {
	return d.saveAttendance(ctx, "", form)
}

func (d *Dashboard) UpdateAttendance(ctx context.Context, id string, form *attdto.AttendanceForm) error {
	if id == "" {
		return d.fail("update absensi", helper.NewFieldError("id", "wajib diisi"))
	}
	return d.saveAttendance(ctx, id, form)
}

func (d *Dashboard) saveAttendance(ctx context.Context, id string, form *attdto.AttendanceForm) error {
	op := "simpan absensi"
	form.DefaultSemester(d.defaultSemester())
	if err := form.Validate(d.validate); err != nil {
		return d.fail(op, err)
	}
	payload := form.ToPayload(d.teacherID())
	var err error
	if id == "" {
		_, err = d.client.Create(ctx, constants.ResourceAttendance, payload)
	} else {
		_, err = d.client.Update(ctx, constants.ResourceAttendance, id, payload)
	}
	if err != nil {
		return d.fail(op, err)
	}
	return d.done(ctx, core.KindAttendance, "Absensi berhasil disimpan")
}

func (d *Dashboard) DeleteAttendance(ctx context.Context, id string) error {
	if id == "" {
		return d.fail("hapus absensi", helper.NewFieldError("id", "wajib diisi"))
	}
	if _, err := d.client.Delete(ctx, constants.ResourceAttendance, id); err != nil {
		return d.fail("hapus absensi", err)
	}
	return d.done(ctx, core.KindAttendance, "Absensi berhasil dihapus")
}
