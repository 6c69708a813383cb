package api

import (
	"context"
	"testing"

	"resumelab/internal/database"
)

func TestMarkPending_CreatesRowForFirstEnqueue(t *testing.T) {
	s := deadScheduler(t)

	if err := s.markPending(context.Background(), 1); err != nil {
		t.Fatalf("mark pending: %v", err)
	}

	var artifact database.Artifact
	if err := s.db.Where("user_id = ?", 1).First(&artifact).Error; err != nil {
		t.Fatalf("load artifact row: %v", err)
	}
	if artifact.Status != database.ArtifactStatusPending {
		t.Fatalf("status = %q", artifact.Status)
	}
	if artifact.PdfKey != "" {
		t.Fatalf("fresh row must not point at an object: %q", artifact.PdfKey)
	}
}

func TestMarkPending_KeepsLastGoodArtifact(t *testing.T) {
	s := deadScheduler(t)

	seed := database.Artifact{
		UserID:   2,
		PdfKey:   "artifacts/2/last.pdf",
		FileName: "resume.pdf",
		Status:   database.ArtifactStatusCompleted,
		Revision: 7,
	}
	if err := s.db.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := s.markPending(context.Background(), 2); err != nil {
		t.Fatalf("mark pending: %v", err)
	}

	var count int64
	s.db.Model(&database.Artifact{}).Where("user_id = ?", 2).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row per user, got %d", count)
	}

	var artifact database.Artifact
	if err := s.db.Where("user_id = ?", 2).First(&artifact).Error; err != nil {
		t.Fatalf("load artifact row: %v", err)
	}
	if artifact.Status != database.ArtifactStatusPending {
		t.Fatalf("status = %q", artifact.Status)
	}
	if artifact.PdfKey != "artifacts/2/last.pdf" {
		t.Fatalf("pdf_key must keep pointing at the last good object: %q", artifact.PdfKey)
	}
}
