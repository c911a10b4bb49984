package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"skilldex/internal/config"
	"skilldex/internal/storage"
)

func testCfg() config.Config {
	return config.Config{Pagination: config.PaginationConfig{DefaultLimit: 50, MaxLimit: 200}}
}

func newTopicFixture() (*TopicService, *SkillService, *storage.MemoryStore) {
	store := storage.NewMemory()
	cfg := testCfg()
	return NewTopicService(store, nil, cfg), NewSkillService(store, nil, cfg), store
}

func TestTopicCreateRequiresName(t *testing.T) {
	svc, _, _ := newTopicFixture()
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), TopicCreate{Name: name})
		require.Error(t, err)
		kind, ok := KindOf(err)
		require.True(t, ok)
		require.Equal(t, KindValidation, kind)
	}
}

func TestTopicCreateRejectsUnknownParent(t *testing.T) {
	svc, _, _ := newTopicFixture()
	_, err := svc.Create(context.Background(), TopicCreate{Name: "Algebra", ParentTopicID: "missing"})
	require.Error(t, err)
	kind, _ := KindOf(err)
	require.Equal(t, KindValidation, kind)
	require.EqualError(t, err, "parentTopicID not found")
}

func TestTopicCreateGetRoundTrip(t *testing.T) {
	svc, _, _ := newTopicFixture()
	ctx := context.Background()
	created, err := svc.Create(ctx, TopicCreate{Name: "  Math  ", Description: "numbers"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Math", created.Name)

	// 返回的 ID 在后续 Get 间稳定
	for i := 0; i < 3; i++ {
		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)
		require.Equal(t, "Math", got.Name)
		require.Equal(t, "numbers", got.Description)
		require.Empty(t, got.ParentTopicID)
	}
}

func TestTopicGetNotFound(t *testing.T) {
	svc, _, _ := newTopicFixture()
	_, err := svc.Get(context.Background(), "missing")
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, KindNotFound, kind)
}

func TestTopicUpdatePartialMerge(t *testing.T) {
	svc, _, _ := newTopicFixture()
	ctx := context.Background()
	root, err := svc.Create(ctx, TopicCreate{Name: "Science"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, TopicCreate{Name: "Physics", Description: "old", ParentTopicID: root.ID})
	require.NoError(t, err)

	// 仅更新 description：name 与 parent 保持不变
	desc := "mechanics and more"
	got, err := svc.Update(ctx, child.ID, TopicUpdate{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "Physics", got.Name)
	require.Equal(t, desc, got.Description)
	require.Equal(t, root.ID, got.ParentTopicID)

	// 显式置空 parent：解除父引用
	empty := ""
	got, err = svc.Update(ctx, child.ID, TopicUpdate{ParentTopicID: &empty})
	require.NoError(t, err)
	require.Empty(t, got.ParentTopicID)
}

func TestTopicUpdateRejectsEmptyName(t *testing.T) {
	svc, _, _ := newTopicFixture()
	ctx := context.Background()
	topic, err := svc.Create(ctx, TopicCreate{Name: "Chemistry"})
	require.NoError(t, err)
	blank := "   "
	_, err = svc.Update(ctx, topic.ID, TopicUpdate{Name: &blank})
	kind, _ := KindOf(err)
	require.Equal(t, KindValidation, kind)
}

func TestTopicUpdateRejectsUnknownParent(t *testing.T) {
	svc, _, _ := newTopicFixture()
	ctx := context.Background()
	topic, err := svc.Create(ctx, TopicCreate{Name: "History"})
	require.NoError(t, err)
	missing := "missing"
	_, err = svc.Update(ctx, topic.ID, TopicUpdate{ParentTopicID: &missing})
	require.EqualError(t, err, "parentTopicID not found")
}

func TestTopicUpdateRejectsCycles(t *testing.T) {
	svc, _, _ := newTopicFixture()
	ctx := context.Background()
	a, err := svc.Create(ctx, TopicCreate{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, TopicCreate{Name: "B", ParentTopicID: a.ID})
	require.NoError(t, err)
	c, err := svc.Create(ctx, TopicCreate{Name: "C", ParentTopicID: b.ID})
	require.NoError(t, err)

	// 自引用
	self := a.ID
	_, err = svc.Update(ctx, a.ID, TopicUpdate{ParentTopicID: &self})
	require.EqualError(t, err, "parentTopicID creates a cycle")

	// 深层环：A 的父设为孙节点 C
	grandchild := c.ID
	_, err = svc.Update(ctx, a.ID, TopicUpdate{ParentTopicID: &grandchild})
	kind, _ := KindOf(err)
	require.Equal(t, KindValidation, kind)
}

func TestTopicDeleteGuard(t *testing.T) {
	topicSvc, skillSvc, _ := newTopicFixture()
	ctx := context.Background()

	// Math → Algebra → Addition，逐步验证删除保护
	math, err := topicSvc.Create(ctx, TopicCreate{Name: "Math"})
	require.NoError(t, err)
	algebra, err := topicSvc.Create(ctx, TopicCreate{Name: "Algebra", ParentTopicID: math.ID})
	require.NoError(t, err)
	addition, err := skillSvc.Create(ctx, SkillCreate{Name: "Addition", TopicID: math.ID})
	require.NoError(t, err)
	require.Equal(t, DefaultDifficulty, addition.Difficulty)

	// 仍有 Skill 引用：Conflict
	err = topicSvc.Delete(ctx, math.ID)
	kind, _ := KindOf(err)
	require.Equal(t, KindConflict, kind)

	// 删除 Skill 后即可删除
	require.NoError(t, skillSvc.Delete(ctx, addition.ID))
	require.NoError(t, topicSvc.Delete(ctx, algebra.ID))
	require.NoError(t, topicSvc.Delete(ctx, math.ID))

	err = topicSvc.Delete(ctx, math.ID)
	kind, _ = KindOf(err)
	require.Equal(t, KindNotFound, kind)
}

func TestTopicListSearchOrderAndTotal(t *testing.T) {
	svc, _, _ := newTopicFixture()
	ctx := context.Background()
	for _, name := range []string{"Linear Algebra", "algorithms", "Geometry", "Abstract Algebra"} {
		_, err := svc.Create(ctx, TopicCreate{Name: name})
		require.NoError(t, err)
	}

	// 子串搜索不区分大小写，按 name 升序返回
	items, total, err := svc.List(ctx, TopicQuery{Name: "alg", Limit: 50})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	require.Equal(t, "Abstract Algebra", items[0].Name)
	require.Equal(t, "Linear Algebra", items[1].Name)
	require.Equal(t, "algorithms", items[2].Name)

	// total 与分页窗口无关
	items, total, err = svc.List(ctx, TopicQuery{Name: "alg", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, items, 1)
	require.Equal(t, "Linear Algebra", items[0].Name)
}

func TestTopicListParentFilter(t *testing.T) {
	svc, _, _ := newTopicFixture()
	ctx := context.Background()
	root, err := svc.Create(ctx, TopicCreate{Name: "Root"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, TopicCreate{Name: "Child", ParentTopicID: root.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, TopicCreate{Name: "Loner"})
	require.NoError(t, err)

	items, total, err := svc.List(ctx, TopicQuery{ParentID: root.ID, Limit: 50})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "Child", items[0].Name)
}

func TestNormalizePageClamping(t *testing.T) {
	// limit 超上限截断、offset 负值归零
	p := NormalizePage(1000, -5, 200)
	require.Equal(t, 200, p.Limit)
	require.Equal(t, 0, p.Offset)

	// limit<=0 不做下限处理，原样下推
	p = NormalizePage(0, 10, 200)
	require.Equal(t, 0, p.Limit)
	p = NormalizePage(-3, 0, 200)
	require.Equal(t, -3, p.Limit)
}
