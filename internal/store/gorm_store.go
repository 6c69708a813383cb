package store

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumelab/internal/database"
	"resumelab/internal/resume"
	"resumelab/internal/style"
)

// GormStore 是草稿与样式的数据库实现，每个用户各一行 JSONB。
type GormStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormStore 构造数据库存储。
func NewGormStore(db *gorm.DB, logger *slog.Logger) *GormStore {
	return &GormStore{db: db, logger: logger}
}

// LoadDraft 读取草稿。无记录、版本不符或数据损坏时返回 nil 草稿。
func (s *GormStore) LoadDraft(userID uint) (*resume.Draft, error) {
	var row database.Draft
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load draft row: %w", err)
	}

	var d resume.Draft
	if decErr := decodeEnvelope(row.Blob, &d); decErr != nil {
		s.logger.Warn("draft blob unusable, treating as absent",
			slog.Uint64("user_id", uint64(userID)),
			slog.Any("error", decErr),
		)
		return nil, nil
	}
	return d.Normalized(), nil
}

// SaveDraft 写入草稿；归一化后为空则删除整行。
func (s *GormStore) SaveDraft(userID uint, d *resume.Draft) error {
	if d.IsEmpty() {
		// 硬删除：user_id 上有唯一索引，软删行会挡住后续重建。
		if err := s.db.Unscoped().Where("user_id = ?", userID).Delete(&database.Draft{}).Error; err != nil {
			return fmt.Errorf("delete draft row: %w", err)
		}
		return nil
	}

	blob, err := encodeEnvelope(d)
	if err != nil {
		return err
	}

	var row database.Draft
	err = s.db.Where("user_id = ?", userID).First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load draft row: %w", err)
	}
	row.UserID = userID
	row.Blob = datatypes.JSON(blob)
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("save draft row: %w", err)
	}
	return nil
}

// LoadStyle 读取样式配置。无记录或数据不可用时返回默认配置。
func (s *GormStore) LoadStyle(userID uint) (style.Config, error) {
	var row database.StylePref
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return style.DefaultConfig(), nil
	}
	if err != nil {
		return style.DefaultConfig(), fmt.Errorf("load style row: %w", err)
	}

	var cfg style.Config
	if decErr := decodeEnvelope(row.Blob, &cfg); decErr != nil {
		s.logger.Warn("style blob unusable, using defaults",
			slog.Uint64("user_id", uint64(userID)),
			slog.Any("error", decErr),
		)
		return style.DefaultConfig(), nil
	}
	return cfg.Normalized(), nil
}

// SaveStyle 写入样式配置。
func (s *GormStore) SaveStyle(userID uint, cfg style.Config) error {
	blob, err := encodeEnvelope(cfg.Normalized())
	if err != nil {
		return err
	}

	var row database.StylePref
	err = s.db.Where("user_id = ?", userID).First(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load style row: %w", err)
	}
	row.UserID = userID
	row.Blob = datatypes.JSON(blob)
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("save style row: %w", err)
	}
	return nil
}
