package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// ClearConfig deletes the site data and root record map cached for rootID.
// It returns the keys that were present.
func ClearConfig(ctx context.Context, c types.Cache, rootID string) ([]string, error) {
	rootID = keyID(rootID)
	cleared := []string{}
	for _, key := range []string{SiteDataKey(rootID), PageContentKey(rootID)} {
		err := c.Delete(ctx, key)
		switch {
		case err == nil:
			cleared = append(cleared, key)
		case errors.Is(err, types.ErrCacheMiss):
		default:
			return cleared, err
		}
	}
	return cleared, nil
}

// LoadRecordMap reads the record map cached for id.
func LoadRecordMap(ctx context.Context, c types.Cache, id string) (*types.RecordMap, error) {
	data, err := c.Get(ctx, PageContentKey(id))
	if err != nil {
		return nil, err
	}
	m := types.NewRecordMap()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decoding cached record map %s: %w", id, err)
	}
	return m, nil
}

// SaveRecordMap caches m under id.
func SaveRecordMap(ctx context.Context, c types.Cache, id string, m *types.RecordMap) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding record map %s: %w", id, err)
	}
	return c.Set(ctx, PageContentKey(id), data)
}
