// file: internals/features/school/relations/service/relation_resolver.go
package service

import (
	"sekolahku_dashboard/internals/features/school/relations/model"
	"sekolahku_dashboard/internals/helpers/pick"
)

// Key tempat jadwal bisa menyimpan relasi yang sudah di-denormalisasi.
var EmbeddedRelationPaths = []string{
	"teacherSubject", "teacher_subject", "teacherSubjectClass", "teacher_subject_class",
	"relation", "relasi", "guruMapel", "pivot",
}

// Key id relasi pada record jadwal. Sengaja tidak memuat "id" (itu id jadwal).
var ScheduleRelationIDPaths = []string{
	"teacherSubjectId", "teacher_subject_id", "teacherSubjectClassId",
	"teacher_subject_class_id", "relationId", "relation_id", "relasiId",
}

// ambil id + nama yang menempel langsung di record (tanpa lookup)
func extract(r pick.Record) model.Option {
	return model.Option{
		TeacherID:   pick.ID(r, model.TeacherIDPaths...),
		SubjectID:   pick.ID(r, model.SubjectIDPaths...),
		KelasID:     pick.ID(r, model.KelasIDPaths...),
		TeacherName: pick.String(r, model.TeacherNamePaths...),
		SubjectName: pick.String(r, model.SubjectNamePaths...),
		KelasName:   pick.String(r, model.KelasNamePaths...),
	}
}

// isi field kosong di dst dari src
func merge(dst *model.Option, src model.Option) {
	fill := func(d *string, s string) {
		if *d == "" {
			*d = s
		}
	}
	fill(&dst.ID, src.ID)
	fill(&dst.TeacherID, src.TeacherID)
	fill(&dst.SubjectID, src.SubjectID)
	fill(&dst.KelasID, src.KelasID)
	fill(&dst.TeacherName, src.TeacherName)
	fill(&dst.SubjectName, src.SubjectName)
	fill(&dst.KelasName, src.KelasName)
	if dst.Relation == nil {
		dst.Relation = src.Relation
	}
}

// nama dari lookup hanya kalau tidak ada yang menempel di relasi
func finish(o *model.Option, lk model.Lookups) {
	if o.TeacherName == "" && o.TeacherID != "" {
		o.TeacherName = lk.TeacherName(o.TeacherID)
	}
	if o.SubjectName == "" && o.SubjectID != "" {
		o.SubjectName = lk.SubjectName(o.SubjectID)
	}
	if o.KelasName == "" && o.KelasID != "" {
		o.KelasName = lk.KelasName(o.KelasID)
	}
	o.Label = model.BuildLabel(o.TeacherName, o.SubjectName, o.KelasName)
}

// ResolveOption: relasi tanpa id ditolak (nil).
func ResolveOption(rel pick.Record, lk model.Lookups) *model.Option {
	if rel == nil {
		return nil
	}
	id := pick.ID(rel, model.RelationIDPaths...)
	if id == "" {
		return nil
	}
	o := extract(rel)
	o.ID = id
	o.Relation = rel
	finish(&o, lk)
	return &o
}

// BuildOptions menormalkan response relasi dan membuat map id → option.
// Id duplikat: yang pertama dipakai.
func BuildOptions(raw any, lk model.Lookups) ([]model.Option, map[string]model.Option) {
	records := pick.Normalize(raw, model.RelationIDPaths...)
	list := make([]model.Option, 0, len(records))
	byID := make(map[string]model.Option, len(records))
	for _, r := range records {
		o := ResolveOption(r, lk)
		if o == nil {
			continue
		}
		if _, dup := byID[o.ID]; dup {
			continue
		}
		byID[o.ID] = *o
		list = append(list, *o)
	}
	return list, byID
}

// ResolveTeacherSubjectInfo mencari info guru/mapel/kelas untuk satu jadwal:
//  1. relasi yang menempel di jadwal (beberapa alias key)
//  2. id relasi → map option
//  3. id/nama flat di record jadwal
//
// Tier yang lebih rendah hanya mengisi field yang masih kosong.
// Nil hanya jika tidak ada id maupun nama sama sekali.
func ResolveTeacherSubjectInfo(schedule pick.Record, byID map[string]model.Option, lk model.Lookups) *model.Option {
	if schedule == nil {
		return nil
	}

	var o model.Option

	if emb, ok := pick.Object(schedule, EmbeddedRelationPaths...); ok {
		o = extract(emb)
		o.ID = pick.ID(emb, model.RelationIDPaths...)
		o.Relation = emb
	}

	relID := pick.ID(schedule, ScheduleRelationIDPaths...)
	if relID == "" {
		relID = o.ID
	}
	if relID != "" {
		if opt, ok := byID[relID]; ok {
			merge(&o, opt)
		}
		if o.ID == "" {
			o.ID = relID
		}
	}

	merge(&o, extract(schedule))

	if o.IsEmpty() {
		return nil
	}
	finish(&o, lk)
	return &o
}

func FilterByClass(options []model.Option, kelasID string) []model.Option {
	if kelasID == "" {
		return options
	}
	out := make([]model.Option, 0, len(options))
	for _, o := range options {
		if pick.Equal(o.KelasID, kelasID) {
			out = append(out, o)
		}
	}
	return out
}

func FilterByTeacher(options []model.Option, teacherID string) []model.Option {
	if teacherID == "" {
		return options
	}
	out := make([]model.Option, 0, len(options))
	for _, o := range options {
		if pick.Equal(o.TeacherID, teacherID) {
			out = append(out, o)
		}
	}
	return out
}
