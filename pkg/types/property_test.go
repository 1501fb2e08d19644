package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyUnmarshalLegacyDecorations(t *testing.T) {
	var p Property
	err := json.Unmarshal([]byte(`[["Hello ",[["b"]]],["world"],["link",[["a","https://example.com"]]]]`), &p)
	require.NoError(t, err)

	assert.Equal(t, Property{{"Hello "}, {"world"}, {"link"}}, p)
	assert.Equal(t, "Hello worldlink", p.PlainText())
}

func TestPropertyRoundTripsPlainRuns(t *testing.T) {
	p := Property{{"a"}, {"b", "c"}}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[["a"],["b","c"]]`, string(data))
}

func TestPropertyHelpers(t *testing.T) {
	assert.Equal(t, Property{{"x"}}, Text("x"))
	assert.NotNil(t, Empty())
	assert.Len(t, Empty(), 0)
	assert.Equal(t, "", Property(nil).PlainText())
}

func TestTimestampJSON(t *testing.T) {
	t.Run("decodes RFC 3339 strings", func(t *testing.T) {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"2024-01-02T03:04:05.000Z"`), &ts))
		assert.Equal(t, int64(1704164645000), ts.UnixMilli())
	})

	t.Run("decodes epoch milliseconds", func(t *testing.T) {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`1704164645000`), &ts))
		assert.Equal(t, int64(1704164645000), ts.UnixMilli())
	})

	t.Run("encodes epoch milliseconds", func(t *testing.T) {
		data, err := json.Marshal(ParseTimestamp("2024-01-02T03:04:05Z"))
		require.NoError(t, err)
		assert.Equal(t, "1704164645000", string(data))
	})

	t.Run("zero timestamp is omitted from nodes", func(t *testing.T) {
		data, err := json.Marshal(Node{ID: "x", Type: NodeTypePage})
		require.NoError(t, err)
		assert.NotContains(t, string(data), "created_time")
	})

	t.Run("unparseable string is zero", func(t *testing.T) {
		assert.True(t, ParseTimestamp("yesterday").IsZero())
	})
}
