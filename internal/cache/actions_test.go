package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

const rootID = "11111111-2222-3333-4444-555555555555"

func TestKeys(t *testing.T) {
	assert.Equal(t, "page_content_"+rootID, PageContentKey(rootID))
	assert.Equal(t, "site_data_"+rootID, SiteDataKey(rootID))
}

func TestClearConfig(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	require.NoError(t, s.Set(ctx, SiteDataKey(rootID), []byte("{}")))
	require.NoError(t, s.Set(ctx, "page_content_other", []byte("{}")))

	cleared, err := ClearConfig(ctx, s, rootID)
	require.NoError(t, err)
	assert.Equal(t, []string{SiteDataKey(rootID)}, cleared)

	_, err = s.Get(ctx, "page_content_other")
	assert.NoError(t, err)

	cleared, err = ClearConfig(ctx, s, rootID)
	require.NoError(t, err)
	assert.Empty(t, cleared)
}

func TestClearConfigCanonicalizesRoot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	require.NoError(t, s.Set(ctx, PageContentKey(rootID), []byte("{}")))

	cleared, err := ClearConfig(ctx, s, "11111111222233334444555555555555")
	require.NoError(t, err)
	assert.Equal(t, []string{PageContentKey(rootID)}, cleared)
}

func TestRecordMapLoadSave(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	m := types.NewRecordMap()
	m.PutNode(&types.Node{ID: "p1", Type: types.NodeTypePage, Properties: map[string]types.Property{"title": types.Text("Hi")}})
	require.NoError(t, SaveRecordMap(ctx, s, "p1", m))

	got, err := LoadRecordMap(ctx, s, "p1")
	require.NoError(t, err)
	n, ok := got.Node("p1")
	require.True(t, ok)
	assert.Equal(t, "Hi", n.Title())
	assert.Contains(t, got.Alias.Block, "p1")

	_, err = LoadRecordMap(ctx, s, "absent")
	assert.ErrorIs(t, err, types.ErrCacheMiss)

	require.NoError(t, s.Set(ctx, PageContentKey("broken"), []byte("not json")))
	_, err = LoadRecordMap(ctx, s, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrCacheMiss)
}

type countingSource struct {
	calls  int
	result *types.RecordMap
	err    error
}

func (c *countingSource) GetRecordMap(context.Context, string) (*types.RecordMap, error) {
	c.calls++
	return c.result, c.err
}

func (c *countingSource) GetBlocks(context.Context, []string) (*types.RecordMap, error) {
	return types.NewRecordMap(), nil
}

func (c *countingSource) PageIDs(context.Context) ([]string, error) {
	return nil, nil
}

func TestSourceReadsThrough(t *testing.T) {
	ctx := context.Background()
	m := types.NewRecordMap()
	m.PutNode(&types.Node{ID: rootID})
	src := &countingSource{result: m}
	store := NewMemoryStore(0)
	cached := NewSource(src, store, nil)

	_, err := cached.GetRecordMap(ctx, "11111111222233334444555555555555")
	require.NoError(t, err)
	got, err := cached.GetRecordMap(ctx, rootID)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Contains(t, got.Block, rootID)
	_, err = store.Get(ctx, PageContentKey(rootID))
	assert.NoError(t, err)
}

func TestSourceSkipsEmptyAndErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	empty := &countingSource{result: types.NewRecordMap()}
	cached := NewSource(empty, store, nil)
	for range 2 {
		_, err := cached.GetRecordMap(ctx, types.PlaceholderID)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, empty.calls)

	boom := errors.New("boom")
	failing := NewSource(&countingSource{err: boom}, store, nil)
	_, err := failing.GetRecordMap(ctx, rootID)
	assert.ErrorIs(t, err, boom)
}
