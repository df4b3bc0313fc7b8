// file: internals/features/dashboard/core/semester_state.go
package core

import (
	semmodel "sekolahku_dashboard/internals/features/school/semesters/model"
	semservice "sekolahku_dashboard/internals/features/school/semesters/service"
)

// Semesters: daftar semester + pilihan user untuk satu sesi dashboard.
// Semua orchestrator memakai state ini, jadi aturan default hanya ada di satu tempat.
type Semesters struct {
	resolver *semservice.Resolver
	selected string
}

func NewSemesters() *Semesters {
	return &Semesters{resolver: semservice.NewResolver(nil)}
}

// Set mengganti daftar semester dari response backend mentah.
func (s *Semesters) Set(raw any) {
	s.resolver = semservice.NewResolverFromRaw(raw)
}

func (s *Semesters) Resolver() *semservice.Resolver { return s.resolver }

// Select menyimpan pilihan eksplisit. "" = kembali ke aturan default.
func (s *Semesters) Select(id string) { s.selected = id }

func (s *Semesters) Selected() string { return s.selected }

func (s *Semesters) Effective() (string, error) {
	return s.resolver.Effective(s.selected)
}

// Metadata semester efektif; nil kalau tidak ada.
func (s *Semesters) Metadata() *semmodel.Metadata {
	id, err := s.Effective()
	if err != nil || id == "" {
		return nil
	}
	return s.resolver.Resolve(id, nil)
}

type SemesterView struct {
	SelectedID string          `json:"selectedSemesterId"`
	Selected   *semmodel.View  `json:"selectedSemester,omitempty"`
	Label      string          `json:"semesterLabel,omitempty"`
	Options    []semmodel.View `json:"semesters"`
}

func (s *Semesters) View() SemesterView {
	out := SemesterView{Options: []semmodel.View{}}
	for _, m := range s.resolver.List() {
		out.Options = append(out.Options, m.View())
	}
	id, err := s.Effective()
	if err != nil {
		out.SelectedID = s.selected
		return out
	}
	out.SelectedID = id
	if m := s.resolver.Resolve(id, nil); m != nil {
		v := m.View()
		out.Selected = &v
		out.Label = m.Label(false)
	}
	return out
}
