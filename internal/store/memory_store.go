package store

import (
	"sync"

	"resumelab/internal/resume"
	"resumelab/internal/style"
)

// MemoryStore 是测试与离线渲染用的内存实现，走与数据库实现
// 相同的封套编解码路径。
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[uint][]byte
	styles map[uint][]byte
}

// NewMemoryStore 构造内存存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drafts: make(map[uint][]byte),
		styles: make(map[uint][]byte),
	}
}

func (s *MemoryStore) LoadDraft(userID uint) (*resume.Draft, error) {
	s.mu.RLock()
	blob, ok := s.drafts[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var d resume.Draft
	if err := decodeEnvelope(blob, &d); err != nil {
		return nil, nil
	}
	return d.Normalized(), nil
}

func (s *MemoryStore) SaveDraft(userID uint, d *resume.Draft) error {
	if d.IsEmpty() {
		s.mu.Lock()
		delete(s.drafts, userID)
		s.mu.Unlock()
		return nil
	}
	blob, err := encodeEnvelope(d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.drafts[userID] = blob
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) LoadStyle(userID uint) (style.Config, error) {
	s.mu.RLock()
	blob, ok := s.styles[userID]
	s.mu.RUnlock()
	if !ok {
		return style.DefaultConfig(), nil
	}
	var cfg style.Config
	if err := decodeEnvelope(blob, &cfg); err != nil {
		return style.DefaultConfig(), nil
	}
	return cfg.Normalized(), nil
}

func (s *MemoryStore) SaveStyle(userID uint, cfg style.Config) error {
	blob, err := encodeEnvelope(cfg.Normalized())
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.styles[userID] = blob
	s.mu.Unlock()
	return nil
}
