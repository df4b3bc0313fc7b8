package dashboard

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"sekolahku_dashboard/internals/backend"
	"sekolahku_dashboard/internals/constants"
)

// urutan seed: referensi dulu, baru data yang menunjuk ke referensi
var seedOrder = []string{
	constants.ResourceSemesters,
	constants.ResourceClasses,
	constants.ResourceSubjects,
	constants.ResourceUsers,
	constants.ResourceTeachers,
	constants.ResourceStudents,
	constants.ResourceTeacherSubjects,
	constants.ResourceSchedules,
	constants.ResourceGrades,
	constants.ResourceAttendance,
}

// SeedDashboardFromJSON mengisi penyimpanan lokal dari file
// {"semesters": [...], "classes": [...], ...}. Resource yang ada di file
// menggantikan isi lama; yang tidak ada dibiarkan.
func SeedDashboardFromJSON(ctx context.Context, client *backend.LocalClient, filePath string, log *zap.Logger) (map[string]int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("📥 Membaca file seed", zap.String("file", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("baca file seed: %w", err)
	}
	var data map[string]any
	if err := sonic.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("decode file seed: %w", err)
	}
	return SeedDashboard(ctx, client, data, log)
}

func SeedDashboard(ctx context.Context, client *backend.LocalClient, data map[string]any, log *zap.Logger) (map[string]int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var unknown []string
	for k := range data {
		if constants.StoreKey(k) == "" {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("resource seed tidak dikenal: %v", unknown)
	}

	counts := map[string]int{}
	for _, resource := range seedOrder {
		raw, ok := data[resource]
		if !ok {
			continue
		}
		n, err := client.Seed(ctx, resource, raw)
		if err != nil {
			return counts, fmt.Errorf("seed %s: %w", resource, err)
		}
		counts[resource] = n
		log.Info("✅ Seed selesai", zap.String("resource", resource), zap.Int("jumlah", n))
	}
	return counts, nil
}
