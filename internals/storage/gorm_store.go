package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocalStoreRecord: satu dokumen per key di tabel dashboard_local_store.
type LocalStoreRecord struct {
	Key       string         `gorm:"column:store_key;type:varchar(120);primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"column:store_value;type:jsonb;not null"        json:"value"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"              json:"updated_at"`
}

func (LocalStoreRecord) TableName() string { return "dashboard_local_store" }

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

// Migrate membuat tabel jika belum ada.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&LocalStoreRecord{})
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec LocalStoreRecord
	err := s.db.WithContext(ctx).
		Where("store_key = ?", key).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

// Put: upsert by store_key.
func (s *GormStore) Put(ctx context.Context, key string, value []byte) error {
	rec := LocalStoreRecord{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"store_value", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("store_key = ?", key).
		Delete(&LocalStoreRecord{}).Error
}

func (s *GormStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&LocalStoreRecord{}).
		Order("store_key ASC").
		Pluck("store_key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}
