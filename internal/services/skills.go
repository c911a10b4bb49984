package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"skilldex/internal/config"
	"skilldex/internal/storage"
)

// DefaultDifficulty 是创建 Skill 时 difficulty 缺失/为空的默认值。
const DefaultDifficulty = "beginner"

// SkillService 管理挂在 Topic 下的叶子记录：Topic 引用完整性与查询语义。
type SkillService struct {
	store storage.Store
	cache *Cache
	page  config.PaginationConfig
}

func NewSkillService(store storage.Store, cache *Cache, cfg config.Config) *SkillService {
	return &SkillService{store: store, cache: cache, page: cfg.Pagination}
}

type SkillQuery struct {
	Name    string
	TopicID string
	Limit   int
	Offset  int
}

type SkillCreate struct {
	Name       string
	TopicID    string
	Difficulty string
}

// SkillUpdate 是部分更新输入：nil 表示字段未提供、保留旧值。
type SkillUpdate struct {
	Name       *string
	TopicID    *string
	Difficulty *string
}

func (s *SkillService) List(ctx context.Context, q SkillQuery) ([]storage.Skill, int64, error) {
	page := NormalizePage(q.Limit, q.Offset, s.page.MaxLimit)
	return s.store.ListSkills(ctx, storage.SkillFilter{Name: q.Name, TopicID: q.TopicID}, page)
}

func (s *SkillService) Get(ctx context.Context, id string) (*storage.Skill, error) {
	if sk := s.cache.GetSkill(ctx, id); sk != nil {
		return sk, nil
	}
	sk, err := s.store.FindSkill(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("Skill not found")
		}
		return nil, err
	}
	s.cache.PutSkill(ctx, sk)
	return sk, nil
}

// Create 要求名称与存在的 TopicID；difficulty 为空时落默认值。
func (s *SkillService) Create(ctx context.Context, in SkillCreate) (*storage.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation("Field 'name' is required")
	}
	topicID := strings.TrimSpace(in.TopicID)
	if topicID == "" {
		return nil, validation("Field 'topicID' is required")
	}
	// 已知弱点：存在性检查与写入之间无锁，并发删除 Topic 可能产生悬空引用
	ok, err := s.store.TopicExists(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validation("topicID not found")
	}
	difficulty := strings.TrimSpace(in.Difficulty)
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	sk := &storage.Skill{ID: uuid.NewString(), Name: name, TopicID: topicID, Difficulty: difficulty}
	if err := s.store.CreateSkill(ctx, sk); err != nil {
		return nil, err
	}
	return sk, nil
}

// Update 执行部分更新。合并后的 TopicID 无论是否变化都重新校验存在性
//（写时校验策略，保证每次落盘前引用有效）。
func (s *SkillService) Update(ctx context.Context, id string, in SkillUpdate) (*storage.Skill, error) {
	sk, err := s.store.FindSkill(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("Skill not found")
		}
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validation("Field 'name' is required")
		}
		sk.Name = name
	}
	if in.TopicID != nil {
		sk.TopicID = strings.TrimSpace(*in.TopicID)
	}
	if in.Difficulty != nil {
		// 显式置空不清除难度，保留旧值
		if d := strings.TrimSpace(*in.Difficulty); d != "" {
			sk.Difficulty = d
		}
	}
	ok, err := s.store.TopicExists(ctx, sk.TopicID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validation("topicID not found")
	}
	if err := s.store.SaveSkill(ctx, sk); err != nil {
		return nil, err
	}
	s.cache.DropSkill(ctx, id)
	return sk, nil
}

// Delete 无条件删除（Skill 没有下游依赖）。
func (s *SkillService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteSkill(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("Skill not found")
		}
		return err
	}
	s.cache.DropSkill(ctx, id)
	return nil
}
