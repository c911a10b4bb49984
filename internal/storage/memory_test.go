package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryListOrderingAndTieBreak(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	// 同名条目按 id 升序消除并列
	require.NoError(t, m.CreateTopic(ctx, &Topic{ID: "b", Name: "Algebra"}))
	require.NoError(t, m.CreateTopic(ctx, &Topic{ID: "a", Name: "Algebra"}))
	require.NoError(t, m.CreateTopic(ctx, &Topic{ID: "c", Name: "Calculus"}))

	items, total, err := m.ListTopics(ctx, TopicFilter{}, Page{Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Equal(t, []string{"a", "b", "c"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestMemoryPageWindow(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, m.CreateSkill(ctx, &Skill{ID: id, Name: "s" + id, TopicID: "t"}))
	}

	// offset 超出末尾返回空集，total 不受影响
	items, total, err := m.ListSkills(ctx, SkillFilter{}, Page{Limit: 10, Offset: 99})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Empty(t, items)

	// Limit 0 与 SQL LIMIT 0 一致返回空集
	items, _, err = m.ListSkills(ctx, SkillFilter{}, Page{Limit: 0})
	require.NoError(t, err)
	require.Empty(t, items)

	// 负 Limit 不限制条数
	items, _, err = m.ListSkills(ctx, SkillFilter{}, Page{Limit: -1})
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestMemoryTopicHasSkills(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.CreateTopic(ctx, &Topic{ID: "t1", Name: "Math"}))
	has, err := m.TopicHasSkills(ctx, "t1")
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, m.CreateSkill(ctx, &Skill{ID: "s1", Name: "Addition", TopicID: "t1"}))
	has, err = m.TopicHasSkills(ctx, "t1")
	require.NoError(t, err)
	require.True(t, has)

	require.NoError(t, m.DeleteSkill(ctx, "s1"))
	has, err = m.TopicHasSkills(ctx, "t1")
	require.NoError(t, err)
	require.False(t, has)
}

func TestMemoryNotFound(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	_, err := m.FindTopic(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, m.DeleteTopic(ctx, "missing"), ErrNotFound)
	_, err = m.FindSkill(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, m.DeleteSkill(ctx, "missing"), ErrNotFound)
}
