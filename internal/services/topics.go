package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"skilldex/internal/config"
	"skilldex/internal/storage"
)

// TopicService 管理层级分类节点：父引用完整性、删除保护与查询语义。
type TopicService struct {
	store storage.Store
	cache *Cache
	page  config.PaginationConfig
}

func NewTopicService(store storage.Store, cache *Cache, cfg config.Config) *TopicService {
	return &TopicService{store: store, cache: cache, page: cfg.Pagination}
}

// TopicQuery 描述列表查询：名称子串（不区分大小写）、父级过滤与分页窗口。
type TopicQuery struct {
	Name     string
	ParentID string
	Limit    int
	Offset   int
}

// TopicCreate 是创建输入；Name 必填，其余可选。
type TopicCreate struct {
	Name          string
	Description   string
	ParentTopicID string
}

// TopicUpdate 是部分更新输入：nil 表示字段未提供、保留旧值；
// 非 nil 即使为空串也视为显式赋值。
type TopicUpdate struct {
	Name          *string
	Description   *string
	ParentTopicID *string
}

// List 返回分页后的条目以及忽略分页窗口的命中总数。
func (s *TopicService) List(ctx context.Context, q TopicQuery) ([]storage.Topic, int64, error) {
	page := NormalizePage(q.Limit, q.Offset, s.page.MaxLimit)
	return s.store.ListTopics(ctx, storage.TopicFilter{Name: q.Name, ParentID: q.ParentID}, page)
}

func (s *TopicService) Get(ctx context.Context, id string) (*storage.Topic, error) {
	if t := s.cache.GetTopic(ctx, id); t != nil {
		return t, nil
	}
	t, err := s.store.FindTopic(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("Topic not found")
		}
		return nil, err
	}
	s.cache.PutTopic(ctx, t)
	return t, nil
}

// Create 校验名称与父引用后持久化新 Topic，ID 由服务端生成。
func (s *TopicService) Create(ctx context.Context, in TopicCreate) (*storage.Topic, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation("Field 'name' is required")
	}
	parentID := strings.TrimSpace(in.ParentTopicID)
	if parentID != "" {
		// 已知弱点：存在性检查与写入之间无锁，并发删除父节点可能产生悬空引用
		ok, err := s.store.TopicExists(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, validation("parentTopicID not found")
		}
	}
	t := &storage.Topic{ID: uuid.NewString(), Name: name, Description: in.Description, ParentTopicID: parentID}
	if err := s.store.CreateTopic(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update 执行部分更新：提供的字段覆盖旧值，未提供的保持不变。
// 合并后的父引用无论是否变化都会重新校验存在性与环。
func (s *TopicService) Update(ctx context.Context, id string, in TopicUpdate) (*storage.Topic, error) {
	t, err := s.store.FindTopic(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, notFound("Topic not found")
		}
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validation("Field 'name' is required")
		}
		t.Name = name
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.ParentTopicID != nil {
		t.ParentTopicID = strings.TrimSpace(*in.ParentTopicID)
	}
	if t.ParentTopicID != "" {
		ok, err := s.store.TopicExists(ctx, t.ParentTopicID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, validation("parentTopicID not found")
		}
		if err := s.ensureNoCycle(ctx, id, t.ParentTopicID); err != nil {
			return nil, err
		}
	}
	if err := s.store.SaveTopic(ctx, t); err != nil {
		return nil, err
	}
	s.cache.DropTopic(ctx, id)
	return t, nil
}

// Delete 删除 Topic；仍有 Skill 引用时拒绝（删除保护）。
func (s *TopicService) Delete(ctx context.Context, id string) error {
	ok, err := s.store.TopicExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Topic not found")
	}
	has, err := s.store.TopicHasSkills(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return conflict("Topic has skills; move or delete skills first")
	}
	if err := s.store.DeleteTopic(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("Topic not found")
		}
		return err
	}
	s.cache.DropTopic(ctx, id)
	return nil
}

// ensureNoCycle 沿父链向上走，拒绝自引用与环。
// visited 集合兜底，防止库中已有环导致死循环。
func (s *TopicService) ensureNoCycle(ctx context.Context, id, parentID string) error {
	visited := map[string]struct{}{}
	cur := parentID
	for cur != "" {
		if cur == id {
			return validation("parentTopicID creates a cycle")
		}
		if _, seen := visited[cur]; seen {
			return nil
		}
		visited[cur] = struct{}{}
		p, err := s.store.FindTopic(ctx, cur)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		}
		cur = p.ParentTopicID
	}
	return nil
}
