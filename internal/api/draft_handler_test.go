package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumelab/internal/database"
	"resumelab/internal/resume"
	"resumelab/internal/state"
	"resumelab/internal/store"
)

// schedulerTestDB 给调度器一个只迁移了产物表的内存库。
func schedulerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_sched?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.Artifact{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// deadScheduler 指向打不开的 redis：修订号递增失败只会被记日志，
// 业务写入照常完成。
func deadScheduler(t *testing.T) *ArtifactScheduler {
	t.Helper()
	source := &state.Source{
		Redis: redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}),
	}
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: "127.0.0.1:0"})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewArtifactScheduler(client, schedulerTestDB(t), source, time.Second, logger)
}

func draftTestContext(t *testing.T, method, body string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	c.Request = httptest.NewRequest(method, "/v1/draft", reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	c.Set("userID", uint(1))
	return c, w
}

func TestPutSection_HeaderKeyPresentEmptyValue(t *testing.T) {
	drafts := store.NewMemoryStore()
	h := NewDraftHandler(drafts, deadScheduler(t))

	c, w := draftTestContext(t, http.MethodPut, `{"title": ""}`, gin.Params{{Key: "section", Value: "header"}})
	h.PutSection(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}

	got, err := drafts.LoadDraft(1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("draft not saved")
	}
	if v, ok := got.Header["title"]; !ok || v != "" {
		t.Fatalf("empty-string override lost: %+v", got.Header)
	}
}

func TestPutSection_UnknownSectionRejected(t *testing.T) {
	h := NewDraftHandler(store.NewMemoryStore(), deadScheduler(t))

	c, w := draftTestContext(t, http.MethodPut, `[]`, gin.Params{{Key: "section", Value: "hobbies"}})
	h.PutSection(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestPutSection_EmptyListIsAnOverride(t *testing.T) {
	drafts := store.NewMemoryStore()
	h := NewDraftHandler(drafts, deadScheduler(t))

	c, w := draftTestContext(t, http.MethodPut, `[]`, gin.Params{{Key: "section", Value: "experience"}})
	h.PutSection(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	got, _ := drafts.LoadDraft(1)
	if got == nil || got.Experiences == nil {
		t.Fatalf("empty list override lost: %+v", got)
	}
	if len(*got.Experiences) != 0 {
		t.Fatalf("experiences = %+v", *got.Experiences)
	}
}

func TestDeleteSection_LastOverrideDeletesDraft(t *testing.T) {
	drafts := store.NewMemoryStore()
	if err := drafts.SaveDraft(1, &resume.Draft{Header: map[string]string{"title": "x"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewDraftHandler(drafts, deadScheduler(t))

	c, w := draftTestContext(t, http.MethodDelete, "", gin.Params{{Key: "section", Value: "header"}})
	h.DeleteSection(c)
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if got, _ := drafts.LoadDraft(1); got != nil {
		t.Fatalf("empty shell persisted: %+v", got)
	}
}

func TestDeleteSection_NoDraftIsNoop(t *testing.T) {
	h := NewDraftHandler(store.NewMemoryStore(), deadScheduler(t))

	c, w := draftTestContext(t, http.MethodDelete, "", gin.Params{{Key: "section", Value: "skills"}})
	h.DeleteSection(c)
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestPutDraft_NormalizesEmptyToDeletion(t *testing.T) {
	drafts := store.NewMemoryStore()
	if err := drafts.SaveDraft(1, &resume.Draft{Header: map[string]string{"title": "x"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewDraftHandler(drafts, deadScheduler(t))

	c, w := draftTestContext(t, http.MethodPut, `{}`, nil)
	h.PutDraft(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if got, _ := drafts.LoadDraft(1); got != nil {
		t.Fatalf("empty put should delete draft, got %+v", got)
	}
}

func TestGetDraft_NullWhenMissing(t *testing.T) {
	h := NewDraftHandler(store.NewMemoryStore(), deadScheduler(t))

	c, w := draftTestContext(t, http.MethodGet, "", nil)
	h.GetDraft(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Draft *resume.Draft `json:"draft"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Draft != nil {
		t.Fatalf("draft = %+v", body.Draft)
	}
}
