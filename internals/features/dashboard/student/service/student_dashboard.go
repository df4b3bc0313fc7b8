// file: internals/features/dashboard/student/service/student_dashboard.go
package service

import (
	"context"

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

/* =========================================================
   Dashboard siswa / orang tua
   Tidak aman dipakai paralel; session registry yang menyerialkan.
========================================================= */

type Option func(*Dashboard)

func WithLogger(l *zap.Logger) Option {
	return func(d *Dashboard) {
		if l != nil {
			d.log = l
		}
	}
}

func WithPrinter(p reportservice.Printer) Option {
	return func(d *Dashboard) { d.printer = p }
}

func WithSchool(name string) Option {
	return func(d *Dashboard) { d.school = name }
}

type Dashboard struct {
	client  backend.Client
	ident   core.Identity
	log     *zap.Logger
	printer reportservice.Printer
	school  string

	semesters  *core.Semesters
	subjects   map[string]string
	classes    map[string]string
	profile    usermodel.Student
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
		classes:   map[string]string{},
		sections:  core.Sections{},
	}
	for _, o := range opts {
		o(d)
	}
	d.log = d.log.With(zap.String("dashboard", "siswa"), zap.String("user_id", ident.UserID))
	return d
}

/* =========================================================
   View
========================================================= */

type StudentView struct {
	ID        string `json:"id"`
	Nama      string `json:"nama"`
	NISN      string `json:"nisn,omitempty"`
	KelasID   string `json:"kelasId,omitempty"`
	KelasNama string `json:"kelasNama,omitempty"`
}

type View struct {
	core.SemesterView
	Student           StudentView                   `json:"student"`
	Grades            []grademodel.Grade            `json:"grades"`
	AverageGrade      float64                       `json:"averageGrade"`
	SubjectAverages   []gradeservice.SubjectAverage `json:"subjectAverages"`
	Attendance        []attmodel.Attendance         `json:"attendance"`
	AttendanceSummary attservice.Summary            `json:"attendanceSummary"`
	Errors            map[string]string             `json:"errors,omitempty"`
	Notice            *core.Notice                  `json:"notice,omitempty"`
}

// studentID: id profil hasil resolve; token tanpa profile_id jatuh ke user id.
func (d *Dashboard) studentID() string {
	return pick.FirstNonEmpty(d.profile.ID, d.ident.Subject())
}

func (d *Dashboard) student() StudentView {
	kelasID := pick.FirstNonEmpty(d.profile.KelasID, d.ident.KelasID)
	return StudentView{
		ID:        d.studentID(),
		Nama:      pick.FirstNonEmpty(d.profile.Nama, d.ident.Name),
		NISN:      d.profile.NISN,
		KelasID:   kelasID,
		KelasNama: d.classes[kelasID],
	}
}

func (d *Dashboard) View() View {
	grades := append([]grademodel.Grade{}, d.grades...)
	attendance := append([]attmodel.Attendance{}, d.attendance...)
	return View{
		SemesterView:      d.semesters.View(),
		Student:           d.student(),
		Grades:            grades,
		AverageGrade:      gradeservice.Average(grades),
		SubjectAverages:   gradeservice.AverageBySubject(grades),
		Attendance:        attendance,
		AttendanceSummary: attservice.Summarize(attendance),
		Errors:            d.sections.Copy(),
		Notice:            d.notice,
	}
}

/* =========================================================
   Load
========================================================= */

// Load: referensi (semester, mapel, kelas, profil) paralel, lalu nilai & absensi.
func (d *Dashboard) Load(ctx context.Context) error {
	if d.ident.IsZero() {
		return core.ErrNoIdentity
	}
	failed, err := core.FanOut(ctx, d.log,
		core.Loader{Name: constants.ResourceSemesters, Required: true, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceSemesters, nil)
			if err != nil {
				return err
			}
			d.semesters.Set(raw)
			return nil
		}},
		core.Loader{Name: constants.ResourceSubjects, Load: func(ctx context.Context) error {
			list, err := core.Fetch(ctx, d.client, constants.ResourceSubjects, nil, relmodel.RefIDPaths...)
			if err != nil {
				return err
			}
			d.subjects = relmodel.NameMap(list)
			return nil
		}},
		core.Loader{Name: constants.ResourceClasses, Load: func(ctx context.Context) error {
			list, err := core.Fetch(ctx, d.client, constants.ResourceClasses, nil, relmodel.RefIDPaths...)
			if err != nil {
				return err
			}
			d.classes = relmodel.NameMap(list)
			return nil
		}},
		core.Loader{Name: constants.ResourceStudents, Load: d.loadProfile},
	)
	for _, name := range []string{constants.ResourceSemesters, constants.ResourceSubjects, constants.ResourceClasses, constants.ResourceStudents} {
		d.sections.Set(name, failed[name])
	}
	if err != nil {
		d.clearPrimary()
		f := core.Classify(err)
		d.notice = f.Notice()
		return f
	}
	return d.loadPrimary(ctx)
}

// profil siswa: by id profil, kalau kosong by user id.
func (d *Dashboard) loadProfile(ctx context.Context) error {
	list, err := core.Fetch(ctx, d.client, constants.ResourceStudents, backend.Query{"id": d.ident.Subject()}, usermodel.IDPaths...)
	if err != nil {
		return err
	}
	if len(list) == 0 && d.ident.UserID != "" {
		if list, err = core.Fetch(ctx, d.client, constants.ResourceStudents, backend.Query{"userId": d.ident.UserID}, usermodel.IDPaths...); err != nil {
			return err
		}
	}
	if len(list) > 0 {
		d.profile = usermodel.StudentFromRecord(list[0])
	}
	return nil
}

func (d *Dashboard) clearPrimary() {
	d.grades = nil
	d.attendance = nil
}

// loadPrimary: nilai & absensi milik siswa di semester efektif.
// Daftar yang gagal dimuat dikosongkan, bukan dibiarkan basi.
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

	studentID := d.studentID()
	q := backend.Query{"studentId": studentID, "semesterId": semID}
	log := d.log.With(zap.String("semester_id", semID))

	failed, err := core.FanOut(ctx, log,
		core.Loader{Name: constants.ResourceGrades, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceGrades, q)
			if err != nil {
				d.grades = nil
				return err
			}
			list := gradeservice.FilterByStudent(grademodel.FromRaw(raw), studentID)
			d.grades = gradeservice.WithSubjectNames(list, d.subjects)
			return nil
		}},
		core.Loader{Name: constants.ResourceAttendance, Load: func(ctx context.Context) error {
			raw, err := d.client.List(ctx, constants.ResourceAttendance, q)
			if err != nil {
				d.attendance = nil
				return err
			}
			list := attservice.FilterByStudent(attmodel.FromRaw(raw), studentID)
			d.attendance = attservice.WithSubjectNames(list, d.subjects)
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

// SelectSemester mengganti pilihan semester lalu memuat ulang data utama.
func (d *Dashboard) SelectSemester(ctx context.Context, id string) error {
	d.semesters.Select(pick.Stringify(id))
	return d.loadPrimary(ctx)
}

/* =========================================================
   Rapor
========================================================= */

// PrintReport: payload rapor + metadata semester efektif → printer.
func (d *Dashboard) PrintReport(ctx context.Context) (*reportmodel.Output, error) {
	semID, err := d.semesters.Effective()
	if err != nil {
		return nil, core.Classify(err)
	}
	st := d.student()
	payload := reportservice.NewPayload(reportservice.Input{
		School: d.school,
		Student: reportservice.StudentInfo{
			ID: st.ID, Nama: st.Nama, NISN: st.NISN, KelasID: st.KelasID, KelasName: st.KelasNama,
		},
		Grades:     d.grades,
		Attendance: d.attendance,
	})
	resolved := d.semesters.Resolver().Resolve(semID, nil)
	report := reportservice.Enrich(payload, resolved, reportservice.EmbeddedSemester(d.grades))

	out, err := d.printer.Print(ctx, report)
	if err != nil {
		d.log.Error("cetak rapor gagal", zap.String("semester_id", semID), zap.Error(err))
		f := core.Classify(err)
		d.notice = f.Notice()
		return nil, f
	}
	return out, nil
}
