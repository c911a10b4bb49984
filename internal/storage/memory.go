package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore 是 Store 的进程内实现，语义与 gormStore 对齐
// （name 升序、id 升序消除并列、total 忽略分页）。
// 用于单元测试与无数据库的本地演示，不做持久化。
type MemoryStore struct {
	mu     sync.RWMutex
	topics map[string]Topic
	skills map[string]Skill
}

func NewMemory() *MemoryStore {
	return &MemoryStore{topics: make(map[string]Topic), skills: make(map[string]Skill)}
}

func (m *MemoryStore) FindTopic(_ context.Context, id string) (*Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.topics[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryStore) ListTopics(_ context.Context, f TopicFilter, p Page) ([]Topic, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []Topic
	for _, t := range m.topics {
		if f.Name != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.ParentID != "" && t.ParentTopicID != f.ParentID {
			continue
		}
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	total := int64(len(all))
	return pageSlice(all, p), total, nil
}

func (m *MemoryStore) CreateTopic(_ context.Context, t *Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics[t.ID] = *t
	return nil
}

func (m *MemoryStore) SaveTopic(_ context.Context, t *Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics[t.ID] = *t
	return nil
}

func (m *MemoryStore) DeleteTopic(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.topics[id]; !ok {
		return ErrNotFound
	}
	delete(m.topics, id)
	return nil
}

func (m *MemoryStore) TopicExists(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.topics[id]
	return ok, nil
}

func (m *MemoryStore) TopicHasSkills(_ context.Context, topicID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.skills {
		if s.TopicID == topicID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) FindSkill(_ context.Context, id string) (*Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.skills[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) ListSkills(_ context.Context, f SkillFilter, p Page) ([]Skill, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []Skill
	for _, s := range m.skills {
		if f.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.TopicID != "" && s.TopicID != f.TopicID {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	total := int64(len(all))
	return pageSlice(all, p), total, nil
}

func (m *MemoryStore) CreateSkill(_ context.Context, s *Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skills[s.ID] = *s
	return nil
}

func (m *MemoryStore) SaveSkill(_ context.Context, s *Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skills[s.ID] = *s
	return nil
}

func (m *MemoryStore) DeleteSkill(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.skills[id]; !ok {
		return ErrNotFound
	}
	delete(m.skills, id)
	return nil
}

// pageSlice 套用分页窗口；Limit<0 表示不限制，Limit==0 返回空（与 SQL LIMIT 0 一致）。
func pageSlice[T any](all []T, p Page) []T {
	off := p.Offset
	if off < 0 {
		off = 0
	}
	if off >= len(all) {
		return []T{}
	}
	rest := all[off:]
	if p.Limit < 0 {
		return rest
	}
	if p.Limit < len(rest) {
		return rest[:p.Limit]
	}
	return rest
}
