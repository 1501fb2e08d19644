package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

const (
	rootID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	collID = "c0c0c0c0-0000-0000-0000-000000000000"
	viewID = "v0v0v0v0-0000-0000-0000-000000000000"
)

type recorded struct {
	path string
	body map[string]any
	r    *http.Request
}

func newServer(t *testing.T, handle func(path string, body map[string]any) (int, string)) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		calls = append(calls, recorded{path: r.URL.Path, body: body, r: r})
		status, resp := handle(r.URL.Path, body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)

	c := New(Config{
		BaseURL:    srv.URL + "/api/v3/",
		TokenV2:    "tok",
		ActiveUser: "user-1",
	})
	return c, &calls
}

const chunkOne = `{
	"recordMap": {"block": {
		"aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee": {"role": "reader", "value": {
			"id": "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", "type": "collection_view_page", "alive": true,
			"collection_id": "c0c0c0c0-0000-0000-0000-000000000000",
			"view_ids": ["v0v0v0v0-0000-0000-0000-000000000000"],
			"properties": {"title": [["Blog"]]}
		}}
	}},
	"cursor": {"stack": [[{"table": "block", "id": "x", "index": 0}]]}
}`

const chunkTwo = `{
	"recordMap": {
		"collection": {"c0c0c0c0-0000-0000-0000-000000000000": {"role": "reader", "value": {
			"id": "c0c0c0c0-0000-0000-0000-000000000000", "name": [["Posts"]],
			"schema": {"title": {"name": "Name", "type": "title"}}
		}}},
		"collection_view": {"v0v0v0v0-0000-0000-0000-000000000000": {"role": "reader", "value": {
			"id": "v0v0v0v0-0000-0000-0000-000000000000", "type": "table", "name": "All"
		}}}
	},
	"cursor": {"stack": []}
}`

const queryResp = `{
	"result": {"type": "reducer", "reducerResults": {
		"collection_group_results": {"type": "results", "blockIds": ["p1", "p2"], "hasMore": false}
	}},
	"recordMap": {"block": {
		"p1": {"role": "reader", "value": {"id": "p1", "type": "page", "alive": true,
			"properties": {"title": [["First", [["b"]]]]}, "created_time": 1704164645000}},
		"p2": {"role": "reader", "value": {"id": "p2", "type": "page", "alive": true,
			"properties": {"title": [["Second"]]}}}
	}}
}`

func TestGetPageLoadsChunksAndCollections(t *testing.T) {
	c, calls := newServer(t, func(path string, body map[string]any) (int, string) {
		switch path {
		case "/api/v3/loadPageChunk":
			if body["chunkNumber"].(float64) == 0 {
				return http.StatusOK, chunkOne
			}
			return http.StatusOK, chunkTwo
		case "/api/v3/queryCollection":
			return http.StatusOK, queryResp
		}
		return http.StatusNotFound, `{}`
	})

	m, err := c.GetPage(context.Background(), rootID)
	require.NoError(t, err)

	require.Len(t, *calls, 3)
	first := (*calls)[0]
	assert.Equal(t, rootID, first.body["pageId"])
	assert.EqualValues(t, 100, first.body["limit"])
	assert.Equal(t, false, first.body["verticalColumns"])
	cookie, err := first.r.Cookie("token_v2")
	require.NoError(t, err)
	assert.Equal(t, "tok", cookie.Value)
	assert.Equal(t, "user-1", first.r.Header.Get("x-notion-active-user-header"))

	second := (*calls)[1]
	assert.EqualValues(t, 1, second.body["chunkNumber"])
	assert.NotEmpty(t, second.body["cursor"].(map[string]any)["stack"])

	root, ok := m.Node(rootID)
	require.True(t, ok)
	assert.Equal(t, "Blog", root.Title())
	assert.Equal(t, "Posts", m.Collection[collID].Value.Name.PlainText())
	assert.Equal(t, types.ViewTypeTable, m.CollectionView[viewID].Value.Type)

	p1, ok := m.Node("p1")
	require.True(t, ok)
	assert.Equal(t, "First", p1.Title())
	assert.Equal(t, []string{"p1", "p2"}, m.PageIDs(collID, root.ViewIDs, 0))
	assert.Empty(t, m.DanglingRefs())
}

func TestGetPageSkipsFailedCollectionQuery(t *testing.T) {
	c, _ := newServer(t, func(path string, body map[string]any) (int, string) {
		if path == "/api/v3/loadPageChunk" {
			return http.StatusOK, `{"recordMap": {"block": {"x": {"value": {"id": "x", "type": "collection_view",
				"collection_id": "c", "view_ids": ["v"]}}}}, "cursor": {"stack": []}}`
		}
		return http.StatusInternalServerError, `{"errorId": "boom"}`
	})

	m, err := c.GetPage(context.Background(), "x")
	require.NoError(t, err)
	_, ok := m.Node("x")
	assert.True(t, ok)
	assert.Empty(t, m.CollectionQuery)
}

func TestGetPageStopsAtChunkLimit(t *testing.T) {
	var chunks int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chunks++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"recordMap": {"block": {"x": {"value": {"id": "x", "type": "text"}}}},
			"cursor": {"stack": [[{"table": "block", "id": "x", "index": 0}]]}
		}`))
	}))
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	c := New(Config{
		BaseURL: srv.URL + "/api/v3/",
		Logger:  slog.New(slog.NewTextHandler(&logs, nil)),
	})

	m, err := c.GetPage(context.Background(), rootID)
	require.NoError(t, err)
	assert.Equal(t, maxChunks, chunks)
	_, ok := m.Node("x")
	assert.True(t, ok)
	assert.Contains(t, logs.String(), "page chunk limit reached")
	assert.Contains(t, logs.String(), "page_id="+rootID)
}

func TestGetPageStatusError(t *testing.T) {
	c, _ := newServer(t, func(string, map[string]any) (int, string) {
		return http.StatusUnauthorized, `{"name":"UnauthorizedError"}`
	})

	_, err := c.GetPage(context.Background(), rootID)
	require.Error(t, err)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "loadPageChunk", statusErr.Endpoint)
}

func TestGetBlocks(t *testing.T) {
	c, calls := newServer(t, func(path string, body map[string]any) (int, string) {
		return http.StatusOK, `{"recordMap": {"block": {
			"b1": {"role": "reader", "value": {"id": "b1", "type": "text", "alive": true}},
			"b2": {"role": "reader", "value": {"id": "b2", "type": "image", "alive": true}}
		}}}`
	})

	m, err := c.GetBlocks(context.Background(), []string{"b1", "b2"})
	require.NoError(t, err)
	assert.Len(t, m.Block, 2)
	assert.Len(t, m.Alias.Block, 2)

	require.Len(t, *calls, 1)
	assert.Equal(t, "/api/v3/syncRecordValues", (*calls)[0].path)
	reqs := (*calls)[0].body["requests"].([]any)
	require.Len(t, reqs, 2)
	first := reqs[0].(map[string]any)
	assert.EqualValues(t, -1, first["version"])
	assert.Equal(t, map[string]any{"table": "block", "id": "b1"}, first["pointer"])
}

func TestGetBlocksEmptyInput(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1"})
	m, err := c.GetBlocks(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}
