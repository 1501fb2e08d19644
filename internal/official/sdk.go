package official

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jomei/notionapi"
)

// API error codes mapped onto this package's error classes.
const (
	codeObjectNotFound  = "object_not_found"
	codeValidationError = "validation_error"
)

// Property names used by the published-rows query.
const (
	publishedStatusProperty = "status"
	publishedStatusValue    = "Published"
	publishedDateProperty   = "date"
)

// errNoBody is returned when the SDK reports success but no response body
// was recorded.
var errNoBody = errors.New("no response body recorded")

// SDKClient implements Client with the notionapi SDK. The SDK builds and
// sends requests, retries rate-limited calls, and decodes API errors.
// Successful responses are decoded from the raw body into this package's
// model, because the SDK's typed values drop nulls, rewrite dates, and
// reject property and block types it does not know.
type SDKClient struct {
	api *notionapi.Client
}

// NewSDKClient builds a client for the given integration token. A nil
// httpClient uses http.DefaultClient. An empty token is a setup failure.
func NewSDKClient(token string, httpClient *http.Client) (*SDKClient, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: integration token is empty", ErrSetup)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	recording := *httpClient
	recording.Transport = recordingTransport{next: httpClient.Transport}
	api := notionapi.NewClient(notionapi.Token(token), notionapi.WithHTTPClient(&recording))
	return &SDKClient{api: api}, nil
}

// RetrieveObject fetches one page.
func (c *SDKClient) RetrieveObject(ctx context.Context, id string) (*Page, error) {
	var out Page
	err := c.call(ctx, &out, func(ctx context.Context) error {
		_, err := c.api.Page.Get(ctx, notionapi.PageID(id))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve page %s: %w", id, err)
	}
	return &out, nil
}

// QueryCollection returns the first pageSize rows of a database.
func (c *SDKClient) QueryCollection(ctx context.Context, collectionID string, pageSize int) ([]Page, error) {
	return c.query(ctx, collectionID, &notionapi.DatabaseQueryRequest{PageSize: pageSize})
}

// QueryPublished returns rows whose status is Published, newest date first.
func (c *SDKClient) QueryPublished(ctx context.Context, databaseID string, pageSize int) ([]Page, error) {
	return c.query(ctx, databaseID, &notionapi.DatabaseQueryRequest{
		Filter: &notionapi.PropertyFilter{
			Property: publishedStatusProperty,
			Select:   &notionapi.SelectFilterCondition{Equals: publishedStatusValue},
		},
		Sorts: []notionapi.SortObject{
			{Property: publishedDateProperty, Direction: notionapi.SortOrderDESC},
		},
		PageSize: pageSize,
	})
}

func (c *SDKClient) query(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) ([]Page, error) {
	var out struct {
		Results []Page `json:"results"`
	}
	err := c.call(ctx, &out, func(ctx context.Context) error {
		_, err := c.api.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query database %s: %w", databaseID, err)
	}
	if out.Results == nil {
		return []Page{}, nil
	}
	return out.Results, nil
}

// ListChildren returns the first pageSize children of a block.
func (c *SDKClient) ListChildren(ctx context.Context, blockID string, pageSize int) ([]Block, error) {
	var out struct {
		Results []Block `json:"results"`
	}
	err := c.call(ctx, &out, func(ctx context.Context) error {
		_, err := c.api.Block.GetChildren(ctx, notionapi.BlockID(blockID), &notionapi.Pagination{PageSize: pageSize})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list children of %s: %w", blockID, err)
	}
	if out.Results == nil {
		return []Block{}, nil
	}
	return out.Results, nil
}

// call runs one SDK request and decodes the recorded body into out. Once the
// API has answered 200, an SDK error can only come from its own typed
// decoding and is ignored.
func (c *SDKClient) call(ctx context.Context, out any, send func(ctx context.Context) error) error {
	ctx, rec := withRecorder(ctx)
	err := send(ctx)
	if rec.status != http.StatusOK {
		if err == nil {
			return errNoBody
		}
		return classify(err)
	}
	if err := json.Unmarshal(rec.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// classify wraps API errors with the matching error class. Unknown errors
// pass through unchanged.
func classify(err error) error {
	var apiErr *notionapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch string(apiErr.Code) {
	case codeObjectNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case codeValidationError:
		return fmt.Errorf("%w: %w", ErrValidation, err)
	default:
		return err
	}
}

type recorderKey struct{}

// recorder holds the last response seen for one call. Rate-limit retries
// overwrite it, so it ends up holding the final answer.
type recorder struct {
	status int
	body   []byte
}

func withRecorder(ctx context.Context) (context.Context, *recorder) {
	rec := &recorder{}
	return context.WithValue(ctx, recorderKey{}, rec), rec
}

// recordingTransport copies response bodies into the recorder carried by the
// request context. Requests without a recorder pass through untouched.
type recordingTransport struct {
	next http.RoundTripper
}

func (t recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	res, err := next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	rec, ok := req.Context().Value(recorderKey{}).(*recorder)
	if !ok {
		return res, nil
	}
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	rec.status = res.StatusCode
	rec.body = body
	res.Body = io.NopCloser(bytes.NewReader(body))
	return res, nil
}
