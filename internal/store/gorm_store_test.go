package store

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumelab/internal/database"
	"resumelab/internal/resume"
	"resumelab/internal/style"
)

func newGormTestStore(t *testing.T) (*GormStore, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.Draft{}, &database.StylePref{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGormStore(db, logger), db
}

func TestGormStore_DraftRoundTrip(t *testing.T) {
	s, _ := newGormTestStore(t)

	exps := []resume.Experience{{Role: "Engineer", Company: "Acme"}}
	draft := &resume.Draft{
		Header:      map[string]string{"headline": ""},
		Experiences: &exps,
	}
	if err := s.SaveDraft(1, draft); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadDraft(1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || got.Experiences == nil {
		t.Fatalf("draft = %+v", got)
	}
	if v, ok := got.Header["headline"]; !ok || v != "" {
		t.Fatalf("header override lost: %+v", got.Header)
	}
}

func TestGormStore_EmptyDraftDeletesRow(t *testing.T) {
	s, db := newGormTestStore(t)

	if err := s.SaveDraft(1, &resume.Draft{Header: map[string]string{"title": "x"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveDraft(1, nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}

	var count int64
	if err := db.Model(&database.Draft{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("row not deleted, count = %d", count)
	}
	if got, _ := s.LoadDraft(1); got != nil {
		t.Fatalf("draft = %+v", got)
	}
}

func TestGormStore_SaveDraftUpsertsSingleRow(t *testing.T) {
	s, db := newGormTestStore(t)

	for i := 0; i < 3; i++ {
		d := &resume.Draft{Header: map[string]string{"title": fmt.Sprintf("v%d", i)}}
		if err := s.SaveDraft(1, d); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	var count int64
	db.Model(&database.Draft{}).Where("user_id = ?", 1).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row per user, got %d", count)
	}
	got, _ := s.LoadDraft(1)
	if got.Header["title"] != "v2" {
		t.Fatalf("last write lost: %+v", got.Header)
	}
}

func TestGormStore_CorruptDraftBlobTreatedAsAbsent(t *testing.T) {
	s, db := newGormTestStore(t)

	row := database.Draft{UserID: 1, Blob: datatypes.JSON(`{"version":99,"data":{}}`)}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.LoadDraft(1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("unusable blob should read as absent: %+v", got)
	}
}

func TestGormStore_StyleDefaultsAndRoundTrip(t *testing.T) {
	s, _ := newGormTestStore(t)

	cfg, err := s.LoadStyle(1)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg.AccentColor != style.DefaultConfig().AccentColor {
		t.Fatalf("missing style should default: %+v", cfg)
	}

	cfg.AccentColor = "forest"
	cfg.LayoutMode = "two-column"
	if err := s.SaveStyle(1, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadStyle(1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.AccentColor != "forest" || got.LayoutMode != "two-column" {
		t.Fatalf("style = %+v", got)
	}
}

func TestGormStore_CorruptStyleBlobFallsBackToDefaults(t *testing.T) {
	s, db := newGormTestStore(t)

	row := database.StylePref{UserID: 1, Blob: datatypes.JSON(`not json`)}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.LoadStyle(1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.AccentColor != style.DefaultConfig().AccentColor {
		t.Fatalf("corrupt style should default: %+v", got)
	}
}
