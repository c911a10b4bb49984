package storage

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound 表示按 ID 查询的记录不存在。
var ErrNotFound = errors.New("record not found")

// TopicFilter/SkillFilter 描述列表查询条件；零值字段不参与过滤。
type TopicFilter struct {
	// 名称子串（不区分大小写）
	Name string
	// 父级 Topic 精确匹配
	ParentID string
}

type SkillFilter struct {
	Name    string
	TopicID string
}

// Page 描述分页窗口。Limit<=0 时按各实现的语义处理（SQL 直接下推）。
type Page struct {
	Limit  int
	Offset int
}

// Store 是持久化契约：纯查询与写入，不含业务规则。
// 所有列表结果按 name 升序排序，并按 id 升序消除并列，保证确定性；
// 返回的 total 为忽略分页窗口的命中总数。
type Store interface {
	FindTopic(ctx context.Context, id string) (*Topic, error)
	ListTopics(ctx context.Context, f TopicFilter, p Page) ([]Topic, int64, error)
	CreateTopic(ctx context.Context, t *Topic) error
	SaveTopic(ctx context.Context, t *Topic) error
	DeleteTopic(ctx context.Context, id string) error
	TopicExists(ctx context.Context, id string) (bool, error)
	TopicHasSkills(ctx context.Context, topicID string) (bool, error)

	FindSkill(ctx context.Context, id string) (*Skill, error)
	ListSkills(ctx context.Context, f SkillFilter, p Page) ([]Skill, int64, error)
	CreateSkill(ctx context.Context, s *Skill) error
	SaveSkill(ctx context.Context, s *Skill) error
	DeleteSkill(ctx context.Context, id string) error
}

// gormStore 基于 GORM 的 Store 实现（MySQL）。
type gormStore struct {
	db *gorm.DB
}

// New 包装一个已初始化的 *gorm.DB 为 Store。
func New(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) FindTopic(ctx context.Context, id string) (*Topic, error) {
	var t Topic
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *gormStore) ListTopics(ctx context.Context, f TopicFilter, p Page) ([]Topic, int64, error) {
	q := s.db.WithContext(ctx).Model(&Topic{})
	if f.Name != "" {
		// MySQL 默认排序规则下 LIKE 不区分大小写，与查询契约一致
		q = q.Where("name LIKE ?", "%"+escapeLike(f.Name)+"%")
	}
	if f.ParentID != "" {
		q = q.Where("parent_topic_id = ?", f.ParentID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []Topic
	if err := q.Order("name asc, id asc").Limit(p.Limit).Offset(p.Offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *gormStore) CreateTopic(ctx context.Context, t *Topic) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *gormStore) SaveTopic(ctx context.Context, t *Topic) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *gormStore) DeleteTopic(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Topic{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) TopicExists(ctx context.Context, id string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Topic{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *gormStore) TopicHasSkills(ctx context.Context, topicID string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Skill{}).Where("topic_id = ?", topicID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *gormStore) FindSkill(ctx context.Context, id string) (*Skill, error) {
	var sk Skill
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sk).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sk, nil
}

func (s *gormStore) ListSkills(ctx context.Context, f SkillFilter, p Page) ([]Skill, int64, error) {
	q := s.db.WithContext(ctx).Model(&Skill{})
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+escapeLike(f.Name)+"%")
	}
	if f.TopicID != "" {
		q = q.Where("topic_id = ?", f.TopicID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []Skill
	if err := q.Order("name asc, id asc").Limit(p.Limit).Offset(p.Offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *gormStore) CreateSkill(ctx context.Context, sk *Skill) error {
	return s.db.WithContext(ctx).Create(sk).Error
}

func (s *gormStore) SaveSkill(ctx context.Context, sk *Skill) error {
	return s.db.WithContext(ctx).Save(sk).Error
}

func (s *gormStore) DeleteSkill(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Skill{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// escapeLike 转义 LIKE 模式中的通配符，避免用户输入改变匹配语义。
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
