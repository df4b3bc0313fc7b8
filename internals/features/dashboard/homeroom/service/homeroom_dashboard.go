// file: internals/features/dashboard/homeroom/service/homeroom_dashboard.go
package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/constants"
	"sekolahku_dashboard/internals/features/dashboard/core"
	attmodel "sekolahku_dashboard/internals/features/school/attendance/model"
	attservice "sekolahku_dashboard/internals/features/school/attendance/service"
	grademodel "sekolahku_dashboard/internals/features/school/grades/model"
	gradeservice "sekolahku_dashboard/internals/features/school/grades/service"
	relmodel "sekolahku_dashboard/internals/features/school/relations/model"
	reportmodel "sekolahku_dashboard/internals/features/school/reports/model"
	reportservice "sekolahku_dashboard/internals/features/school/reports/service"
	usermodel "sekolahku_dashboard/internals/features/users/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

const (
	MsgNoHomeroomClass   = "Anda belum ditetapkan sebagai wali kelas."
	MsgStudentNotInClass = "Siswa tidak terdaftar di kelas perwalian Anda."
	MsgGradeNotInClass   = "Nilai tidak ditemukan di kelas perwalian Anda."
)

var errNoHomeroomClass = errors.New("kelas perwalian tidak ditemukan")

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

func WithPrinter(p reportservice.Printer) Option {
	return func(d *Dashboard) { d.printer = p }
}

func WithSchool(name string) Option {
	return func(d *Dashboard) { d.school = name }
}

// Dashboard walikelas: rekap satu kelas perwalian + verifikasi nilai.
type Dashboard struct {
	client   backend.Client
	ident    core.Identity
	log      *zap.Logger
	onChange core.DataChangeFunc
	printer  reportservice.Printer
	school   string

	semesters  *core.Semesters
	profile    usermodel.Teacher
	kelas      pick.Record
	subjects   map[string]string
	students   []usermodel.Student
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
		printer:   reportservice.NewPDFPrinter(),
		semesters: core.NewSemesters(),
		subjects:  map[string]string{},
		sections:  core.Sections{},
	}
	for _, o := range opts {
		o(d)
	}
	d.log = d.log.With(zap.String("dashboard", "walikelas"), zap.String("user_id", ident.UserID))
	return d
}

// teacherID: id profil guru hasil resolve; token tanpa profile_id jatuh ke user id.
func (d *Dashboard) teacherID() string {
	return pick.FirstNonEmpty(d.profile.ID, d.ident.Subject())
}

func (d *Dashboard) kelasID() string { return pick.ID(d.kelas, "id") }

/* =========================================================
   View
========================================================= */

type KelasView struct {
	ID   string `json:"id"`
	Nama string `json:"nama"`
}

type StudentSummary struct {
	StudentID    string             `json:"studentId"`
	Nama         string             `json:"nama"`
	NISN         string             `json:"nisn,omitempty"`
	AverageGrade float64            `json:"averageGrade"`
	GradeCount   int                `json:"gradeCount"`
	Unverified   int                `json:"unverified"`
	Attendance   attservice.Summary `json:"attendance"`
}

type View struct {
	core.SemesterView
	Kelas             *KelasView            `json:"kelas,omitempty"`
	Students          []StudentSummary      `json:"students"`
	Grades            []grademodel.Grade    `json:"grades"`
	AverageGrade      float64               `json:"averageGrade"`
	Unverified        int                   `json:"unverified"`
	AttendanceSummary attservice.Summary    `json:"attendanceSummary"`
	Errors            map[string]string     `json:"errors,omitempty"`
	Notice            *core.Notice          `json:"notice,omitempty"`
	Attendance        []attmodel.Attendance `json:"attendance"`
}

func (d *Dashboard) summaries() []StudentSummary {
	out := make([]StudentSummary, 0, len(d.students))
	for _, s := range d.students {
		g := gradeservice.FilterByStudent(d.grades, s.ID)
		out = append(out, StudentSummary{
			StudentID:    s.ID,
			Nama:         s.Nama,
			NISN:         s.NISN,
			AverageGrade: gradeservice.Average(g),
			GradeCount:   len(g),
			Unverified:   gradeservice.CountUnverified(g),
			Attendance:   attservice.Summarize(attservice.FilterByStudent(d.attendance, s.ID)),
		})
	}
	return out
}

func (d *Dashboard) View() View {
	v := View{
		SemesterView:      d.semesters.View(),
		Students:          d.summaries(),
		Grades:            append([]grademodel.Grade{}, d.grades...),
		Attendance:        append([]attmodel.Attendance{}, d.attendance...),
		AverageGrade:      gradeservice.Average(d.grades),
		Unverified:        gradeservice.CountUnverified(d.grades),
		AttendanceSummary: attservice.Summarize(d.attendance),
		Errors:            d.sections.Copy(),
		Notice:            d.notice,
	}
	if d.kelas != nil {
		v.Kelas = &KelasView{ID: d.kelasID(), Nama: pick.String(d.kelas, relmodel.RefNamePaths...)}
	}
	return v
}

/* =========================================================
   Load
========================================================= */

// HomeroomClass: kelas pertama yang wali kelasnya = teacherID.
func HomeroomClass(classes []pick.Record, teacherID string) pick.Record {
	if teacherID == "" {
		return nil
	}
	for _, c := range classes {
		if pick.ID(c, usermodel.HomeroomTeacherPaths...) == teacherID {
			return c
		}
	}
	return nil
}

func (d *Dashboard) Load(ctx context.Context) error {
	if d.ident.IsZero() {
		return core.ErrNoIdentity
	}
	var classes, subjects, teachers []pick.Record
	failed, err := core.FanOut(ctx, d.log,
		core.Loader{Name: constants.ResourceSemesters, Required: true, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceSemesters, nil)
			if err != nil {
				return err
			}
			d.semesters.Set(raw)
			return nil
		}},
		core.Loader{Name: constants.ResourceClasses, Required: true, Load: func(ctx context.Context) (err error) {
			classes, err = core.Fetch(ctx, d.client, constants.ResourceClasses, nil, relmodel.RefIDPaths...)
			return err
		}},
		core.Loader{Name: constants.ResourceSubjects, Load: func(ctx context.Context) (err error) {
			subjects, err = core.Fetch(ctx, d.client, constants.ResourceSubjects, nil, relmodel.RefIDPaths...)
			return err
		}},
		core.Loader{Name: constants.ResourceTeachers, Load: func(ctx context.Context) (err error) {
			teachers, err = core.Fetch(ctx, d.client, constants.ResourceTeachers, nil, usermodel.IDPaths...)
			return err
		}},
	)
	for _, name := range []string{constants.ResourceSemesters, constants.ResourceClasses, constants.ResourceSubjects, constants.ResourceTeachers} {
		d.sections.Set(name, failed[name])
	}
	if _, bad := failed[constants.ResourceSubjects]; !bad {
		d.subjects = relmodel.NameMap(subjects)
	}
	if _, bad := failed[constants.ResourceTeachers]; !bad {
		list := make([]usermodel.Teacher, 0, len(teachers))
		for _, r := range teachers {
			list = append(list, usermodel.TeacherFromRecord(r))
		}
		if t, ok := usermodel.FindTeacher(list, d.ident.Subject(), d.ident.UserID); ok {
			d.profile = t
		}
	}
	if err != nil {
		d.clearPrimary()
		f := core.Classify(err)
		d.notice = f.Notice()
		return f
	}

	d.kelas = HomeroomClass(classes, d.teacherID())
	if d.kelas == nil {
		d.students = nil
		d.clearPrimary()
		d.sections[constants.ResourceClasses] = MsgNoHomeroomClass
		f := &core.Failure{Kind: core.FailNotFound, Message: MsgNoHomeroomClass, Err: errNoHomeroomClass}
		d.notice = f.Notice()
		return f
	}

	raw, err := d.client.List(ctx, constants.ResourceStudents, backend.Query{"kelasId": d.kelasID()})
	if err != nil {
		d.log.Warn("load gagal", zap.String("resource", constants.ResourceStudents), zap.Error(err))
		d.sections.Set(constants.ResourceStudents, err)
	} else {
		d.sections.Clear(constants.ResourceStudents)
		d.students = usermodel.StudentsFromRaw(raw)
		sort.SliceStable(d.students, func(i, j int) bool {
			return strings.ToLower(d.students[i].Nama) < strings.ToLower(d.students[j].Nama)
		})
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
	if d.kelas == nil {
		return &core.Failure{Kind: core.FailNotFound, Message: MsgNoHomeroomClass, Err: errNoHomeroomClass}
	}
	semID, err := d.semesters.Effective()
	if err != nil {
		d.clearPrimary()
		d.sections.Set(constants.ResourceGrades, err)
		d.sections.Set(constants.ResourceAttendance, err)
		f := core.Classify(err)
		d.notice = f.Notice()
		return f
	}

	q := backend.Query{"kelasId": d.kelasID(), "semesterId": semID}
	log := d.log.With(zap.String("semester_id", semID), zap.String("kelas_id", d.kelasID()))
	names := d.studentNames()

	failed, err := core.FanOut(ctx, log,
		core.Loader{Name: constants.ResourceGrades, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceGrades, q)
			if err != nil {
				d.grades = nil
				return err
			}
			list := gradeservice.WithSubjectNames(grademodel.FromRaw(raw), d.subjects)
			d.grades = gradeservice.WithStudentNames(list, names)
			return nil
		}},
		core.Loader{Name: constants.ResourceAttendance, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceAttendance, q)
			if err != nil {
				d.attendance = nil
				return err
			}
			list := attservice.WithSubjectNames(attmodel.FromRaw(raw), d.subjects)
			d.attendance = attservice.WithStudentNames(list, names)
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
   Verifikasi nilai
========================================================= */

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

// VerifyGrade: hanya nilai milik kelas perwalian yang sudah dimuat.
func (d *Dashboard) VerifyGrade(ctx context.Context, id string, verified bool) error {
	found := false
	for _, g := range d.grades {
		if g.ID == id {
			found = true
			break
		}
	}
	if !found {
		return d.fail("verifikasi nilai", &core.Failure{Kind: core.FailNotFound, Message: MsgGradeNotInClass})
	}
	if _, err := d.client.Update(ctx, constants.ResourceGrades, id, map[string]any{"isVerified": verified}); err != nil {
		return d.fail("verifikasi nilai", err)
	}
	if err := d.loadPrimary(ctx); err != nil {
		d.log.Warn("reload setelah verifikasi gagal", zap.Error(err))
	}
	d.onChange.Notify(core.KindGrades)
	if verified {
		d.notice = core.SuccessNotice("Nilai berhasil diverifikasi")
	} else {
		d.notice = core.SuccessNotice("Verifikasi nilai dibatalkan")
	}
	return nil
}

/* =========================================================
   Rapor per siswa
========================================================= */

func (d *Dashboard) PrintReport(ctx context.Context, studentID string) (*reportmodel.Output, error) {
	semID, err := d.semesters.Effective()
	if err != nil {
		return nil, core.Classify(err)
	}
	var st *usermodel.Student
	for i := range d.students {
		if d.students[i].ID == studentID {
			st = &d.students[i]
			break
		}
	}
	if st == nil {
		return nil, &core.Failure{Kind: core.FailNotFound, Message: MsgStudentNotInClass}
	}

	grades := gradeservice.FilterByStudent(d.grades, st.ID)
	kelasNama := pick.String(d.kelas, relmodel.RefNamePaths...)
	payload := reportservice.NewPayload(reportservice.Input{
		School:     d.school,
		Student:    reportservice.StudentInfo{ID: st.ID, Nama: st.Nama, NISN: st.NISN, KelasID: d.kelasID(), KelasName: kelasNama},
		Grades:     grades,
		Attendance: attservice.FilterByStudent(d.attendance, st.ID),
		Extra:      pick.Record{"waliKelas": d.ident.Name},
	})
	resolved := d.semesters.Resolver().Resolve(semID, nil)
	report := reportservice.Enrich(payload, resolved, reportservice.EmbeddedSemester(grades))

	out, err := d.printer.Print(ctx, report)
	if err != nil {
		return nil, d.fail("cetak rapor", err)
	}
	return out, nil
}
