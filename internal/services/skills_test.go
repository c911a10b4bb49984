package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"skilldex/internal/storage"
)

func newSkillFixture(t *testing.T) (*SkillService, *storage.Topic, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemory()
	cfg := testCfg()
	topicSvc := NewTopicService(store, nil, cfg)
	topic, err := topicSvc.Create(context.Background(), TopicCreate{Name: "Math"})
	require.NoError(t, err)
	return NewSkillService(store, nil, cfg), topic, store
}

func TestSkillCreateValidation(t *testing.T) {
	svc, topic, _ := newSkillFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, SkillCreate{Name: "  ", TopicID: topic.ID})
	require.EqualError(t, err, "Field 'name' is required")

	_, err = svc.Create(ctx, SkillCreate{Name: "Addition"})
	require.EqualError(t, err, "Field 'topicID' is required")

	_, err = svc.Create(ctx, SkillCreate{Name: "Addition", TopicID: "missing"})
	require.EqualError(t, err, "topicID not found")
	kind, _ := KindOf(err)
	require.Equal(t, KindValidation, kind)
}

func TestSkillCreateDefaultsDifficulty(t *testing.T) {
	svc, topic, _ := newSkillFixture(t)
	ctx := context.Background()

	sk, err := svc.Create(ctx, SkillCreate{Name: "Addition", TopicID: topic.ID})
	require.NoError(t, err)
	require.Equal(t, DefaultDifficulty, sk.Difficulty)

	sk, err = svc.Create(ctx, SkillCreate{Name: "Subtraction", TopicID: topic.ID, Difficulty: "  "})
	require.NoError(t, err)
	require.Equal(t, DefaultDifficulty, sk.Difficulty)

	sk, err = svc.Create(ctx, SkillCreate{Name: "Division", TopicID: topic.ID, Difficulty: "advanced"})
	require.NoError(t, err)
	require.Equal(t, "advanced", sk.Difficulty)
}

func TestSkillCreateGetRoundTrip(t *testing.T) {
	svc, topic, _ := newSkillFixture(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, SkillCreate{Name: "Addition", TopicID: topic.ID, Difficulty: "beginner"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Addition", got.Name)
	require.Equal(t, topic.ID, got.TopicID)
	require.Equal(t, "beginner", got.Difficulty)
}

func TestSkillUpdatePartialMerge(t *testing.T) {
	svc, topic, store := newSkillFixture(t)
	ctx := context.Background()
	other := &storage.Topic{ID: "topic-other", Name: "Physics"}
	require.NoError(t, store.CreateTopic(ctx, other))

	sk, err := svc.Create(ctx, SkillCreate{Name: "Addition", TopicID: topic.ID})
	require.NoError(t, err)

	// 仅改名：topic 与难度保留
	name := "Column addition"
	got, err := svc.Update(ctx, sk.ID, SkillUpdate{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, got.Name)
	require.Equal(t, topic.ID, got.TopicID)
	require.Equal(t, DefaultDifficulty, got.Difficulty)

	// 迁移到其它 Topic
	dst := other.ID
	got, err = svc.Update(ctx, sk.ID, SkillUpdate{TopicID: &dst})
	require.NoError(t, err)
	require.Equal(t, other.ID, got.TopicID)

	// 难度显式置空：保留旧值
	empty := ""
	got, err = svc.Update(ctx, sk.ID, SkillUpdate{Difficulty: &empty})
	require.NoError(t, err)
	require.Equal(t, DefaultDifficulty, got.Difficulty)

	// 迁移到不存在的 Topic：校验失败
	missing := "missing"
	_, err = svc.Update(ctx, sk.ID, SkillUpdate{TopicID: &missing})
	require.EqualError(t, err, "topicID not found")
}

func TestSkillUpdateRevalidatesUnchangedTopic(t *testing.T) {
	svc, topic, store := newSkillFixture(t)
	ctx := context.Background()
	sk, err := svc.Create(ctx, SkillCreate{Name: "Addition", TopicID: topic.ID})
	require.NoError(t, err)

	// 绕过服务直接删掉 Topic，模拟并发窗口内的悬空引用
	require.NoError(t, store.DeleteTopic(ctx, topic.ID))

	// 即使本次更新不改 topicID，写时校验也会发现引用失效
	name := "Renamed"
	_, err = svc.Update(ctx, sk.ID, SkillUpdate{Name: &name})
	require.EqualError(t, err, "topicID not found")
}

func TestSkillDelete(t *testing.T) {
	svc, topic, _ := newSkillFixture(t)
	ctx := context.Background()
	sk, err := svc.Create(ctx, SkillCreate{Name: "Addition", TopicID: topic.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sk.ID))
	err = svc.Delete(ctx, sk.ID)
	kind, _ := KindOf(err)
	require.Equal(t, KindNotFound, kind)
}

func TestSkillListFilterByTopic(t *testing.T) {
	svc, topic, store := newSkillFixture(t)
	ctx := context.Background()
	other := &storage.Topic{ID: "topic-other", Name: "Physics"}
	require.NoError(t, store.CreateTopic(ctx, other))

	for _, s := range []SkillCreate{
		{Name: "Addition", TopicID: topic.ID},
		{Name: "addition tables", TopicID: topic.ID},
		{Name: "Optics", TopicID: other.ID},
	} {
		_, err := svc.Create(ctx, s)
		require.NoError(t, err)
	}

	items, total, err := svc.List(ctx, SkillQuery{TopicID: topic.ID, Limit: 50})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	require.Equal(t, "Addition", items[0].Name)

	items, total, err = svc.List(ctx, SkillQuery{Name: "ADD", Limit: 50})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
}
