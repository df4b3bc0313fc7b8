package model

import (
	"strconv"
	"strings"
	"time"
)

const DatePlaceholder = "-"

var bulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate: format panjang id-ID ("15 Juli 2024"). String yang tidak bisa
// di-parse dikembalikan apa adanya.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return strconv.Itoa(t.Day()) + " " + bulan[t.Month()-1] + " " + strconv.Itoa(t.Year())
}
