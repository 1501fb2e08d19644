// Package legacy talks to the unofficial page/block-graph API. Its responses
// are already record maps, so the client only merges page chunks and attaches
// collection query results.
package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// Defaults.
const (
	DefaultBaseURL      = "https://www.notion.so/api/v3"
	DefaultUserTimeZone = "UTC"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "notionmap/1.0"
	chunkLimit       = 100
	maxChunks        = 50
	collectionLimit  = 999
)

// Endpoint names under the base URL.
const (
	endpointLoadPageChunk    = "loadPageChunk"
	endpointQueryCollection  = "queryCollection"
	endpointSyncRecordValues = "syncRecordValues"
)

// Config configures a Client. Zero values select the defaults.
type Config struct {
	BaseURL      string
	TokenV2      string
	ActiveUser   string
	UserTimeZone string
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

// Client is a client of the unofficial API.
type Client struct {
	baseURL    string
	tokenV2    string
	activeUser string
	timeZone   string
	http       *http.Client
	logger     *slog.Logger
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("legacy %s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// New creates a Client.
func New(cfg Config) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokenV2:    cfg.TokenV2,
		activeUser: cfg.ActiveUser,
		timeZone:   cfg.UserTimeZone,
		http:       cfg.HTTPClient,
		logger:     cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeZone == "" {
		c.timeZone = DefaultUserTimeZone
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.logger == nil {
		c.logger = slog.Default().With("component", "legacy")
	}
	return c
}

type cursor struct {
	Stack []json.RawMessage `json:"stack"`
}

type loadPageChunkRequest struct {
	PageID          string `json:"pageId"`
	Limit           int    `json:"limit"`
	Cursor          cursor `json:"cursor"`
	ChunkNumber     int    `json:"chunkNumber"`
	VerticalColumns bool   `json:"verticalColumns"`
}

type loadPageChunkResponse struct {
	RecordMap *types.RecordMap `json:"recordMap"`
	Cursor    cursor           `json:"cursor"`
}

// GetPage loads every chunk of a page and the query results of each
// collection view found in it. A failed collection query is logged and
// skipped.
func (c *Client) GetPage(ctx context.Context, pageID string) (*types.RecordMap, error) {
	m := types.NewRecordMap()

	cur := cursor{Stack: []json.RawMessage{}}
	for chunk := 0; ; chunk++ {
		if chunk == maxChunks {
			c.logger.WarnContext(ctx, "page chunk limit reached, record map is truncated",
				"page_id", pageID, "chunks", maxChunks)
			break
		}
		var resp loadPageChunkResponse
		req := loadPageChunkRequest{
			PageID:      pageID,
			Limit:       chunkLimit,
			Cursor:      cur,
			ChunkNumber: chunk,
		}
		if err := c.post(ctx, endpointLoadPageChunk, req, &resp); err != nil {
			return nil, fmt.Errorf("loading page %s: %w", pageID, err)
		}
		m.Merge(resp.RecordMap)
		if len(resp.Cursor.Stack) == 0 {
			break
		}
		cur = resp.Cursor
	}

	for _, id := range sortedKeys(m.Block) {
		n, _ := m.Node(id)
		if n == nil || n.CollectionID == "" {
			continue
		}
		for _, viewID := range n.ViewIDs {
			if err := c.queryCollection(ctx, m, n.CollectionID, viewID); err != nil {
				c.logger.WarnContext(ctx, "collection query failed",
					"collection_id", n.CollectionID, "view_id", viewID, "error", err)
			}
		}
	}
	return m, nil
}

type queryCollectionRequest struct {
	Collection     pointer `json:"collection"`
	CollectionView pointer `json:"collectionView"`
	Loader         loader  `json:"loader"`
}

type pointer struct {
	ID    string `json:"id"`
	Table string `json:"table,omitempty"`
}

type loader struct {
	Type         string             `json:"type"`
	Reducers     map[string]reducer `json:"reducers"`
	SearchQuery  string             `json:"searchQuery"`
	UserTimeZone string             `json:"userTimeZone"`
}

type reducer struct {
	Type  string `json:"type"`
	Limit int    `json:"limit"`
}

type queryCollectionResponse struct {
	Result struct {
		ReducerResults struct {
			CollectionGroupResults *types.GroupResults `json:"collection_group_results"`
		} `json:"reducerResults"`
	} `json:"result"`
	RecordMap *types.RecordMap `json:"recordMap"`
}

func (c *Client) queryCollection(ctx context.Context, m *types.RecordMap, collectionID, viewID string) error {
	req := queryCollectionRequest{
		Collection:     pointer{ID: collectionID},
		CollectionView: pointer{ID: viewID},
		Loader: loader{
			Type: "reducer",
			Reducers: map[string]reducer{
				"collection_group_results": {Type: "results", Limit: collectionLimit},
			},
			UserTimeZone: c.timeZone,
		},
	}
	var resp queryCollectionResponse
	if err := c.post(ctx, endpointQueryCollection, req, &resp); err != nil {
		return err
	}
	m.Merge(resp.RecordMap)
	if g := resp.Result.ReducerResults.CollectionGroupResults; g != nil {
		m.PutQuery(collectionID, viewID, &types.QueryResult{CollectionGroupResults: g})
	}
	return nil
}

type syncRequest struct {
	Pointer pointer `json:"pointer"`
	Version int     `json:"version"`
}

type syncRecordValuesRequest struct {
	Requests []syncRequest `json:"requests"`
}

type syncRecordValuesResponse struct {
	RecordMap *types.RecordMap `json:"recordMap"`
}

// GetBlocks fetches the given blocks in one request.
func (c *Client) GetBlocks(ctx context.Context, blockIDs []string) (*types.RecordMap, error) {
	m := types.NewRecordMap()
	if len(blockIDs) == 0 {
		return m, nil
	}
	req := syncRecordValuesRequest{Requests: make([]syncRequest, 0, len(blockIDs))}
	for _, id := range blockIDs {
		req.Requests = append(req.Requests, syncRequest{
			Pointer: pointer{Table: types.ParentTableBlock, ID: id},
			Version: -1,
		})
	}
	var resp syncRecordValuesResponse
	if err := c.post(ctx, endpointSyncRecordValues, req, &resp); err != nil {
		return nil, fmt.Errorf("syncing %d blocks: %w", len(blockIDs), err)
	}
	m.Merge(resp.RecordMap)
	return m, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)
	if c.tokenV2 != "" {
		req.AddCookie(&http.Cookie{Name: "token_v2", Value: c.tokenV2})
	}
	if c.activeUser != "" {
		req.Header.Set("x-notion-active-user-header", c.activeUser)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
