package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleRequest() Request {
	return Request{
		Columns:  []string{"Lot", "Yield (%)"},
		GoodBins: "1,2",
		Filters: []Filter{
			{Name: "Tester (w.tester)", Op: "LIKE", Value: "TT5003%"},
		},
		OrderBy: []Order{{Column: "v.lot", Direction: "ASC"}},
	}
}

func TestCanonicalHash_Deterministic(t *testing.T) {
	first, err := CanonicalHash(sampleRequest())
	require.NoError(t, err)
	second, err := CanonicalHash(sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded SHA-256
}

func TestCanonicalHash_SensitiveToContent(t *testing.T) {
	base, err := CanonicalHash(sampleRequest())
	require.NoError(t, err)

	changed := sampleRequest()
	changed.GoodBins = "1,2,3"
	other, err := CanonicalHash(changed)
	require.NoError(t, err)

	assert.NotEqual(t, base, other)
}

func TestCanonicalHash_SensitiveToOrder(t *testing.T) {
	// Column order is meaningful: it dictates SELECT order.
	a, err := CanonicalHash(Request{Columns: []string{"Lot", "Wafer ID"}})
	require.NoError(t, err)
	b, err := CanonicalHash(Request{Columns: []string{"Wafer ID", "Lot"}})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCanonicalHash_AbsentAndEmptySectionsEqual(t *testing.T) {
	a, err := CanonicalHash(Request{Columns: []string{"Lot"}})
	require.NoError(t, err)
	b, err := CanonicalHash(Request{Columns: []string{"Lot"}, Filters: []Filter{}, OrderBy: []Order{}})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCanonicalHash_UnicodeNormalization(t *testing.T) {
	// NFC and NFD spellings of the same text hash identically.
	nfc := Request{Columns: []string{"Lot"}, Filters: []Filter{
		{Name: "Lot (v.lot)", Op: "=", Value: "caf\u00e9"},
	}}
	nfd := Request{Columns: []string{"Lot"}, Filters: []Filter{
		{Name: "Lot (v.lot)", Op: "=", Value: "cafe\u0301"},
	}}

	a, err := CanonicalHash(nfc)
	require.NoError(t, err)
	b, err := CanonicalHash(nfd)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMarshalCanonical_SortedKeysNoHTMLEscape(t *testing.T) {
	got, err := marshalCanonical(map[string]any{
		"b": "x<y&z",
		"a": []any{1, true, "s"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,true,"s"],"b":"x<y&z"}`, string(got))
}

func TestRequest_YAMLRoundTrip(t *testing.T) {
	doc := `
columns:
  - Lot
  - Yield (%)
good_bins: "1,2"
distinct: true
filters:
  - name: Tester (w.tester)
    op: LIKE
    value: TT5003%
auto_range:
  start: 6
  end: 8
  count: true
aggregates:
  - func: SUM
    target: v.total
    alias: total_units
order_by:
  - column: v.lot
    direction: ASC
`
	var req Request
	require.NoError(t, yaml.Unmarshal([]byte(doc), &req))

	assert.Equal(t, []string{"Lot", "Yield (%)"}, req.Columns)
	assert.Equal(t, "1,2", req.GoodBins)
	assert.True(t, req.Distinct)
	require.Len(t, req.Filters, 1)
	assert.Equal(t, "TT5003%", req.Filters[0].Value)
	require.NotNil(t, req.AutoRange)
	assert.Equal(t, 6, req.AutoRange.Start)
	assert.Equal(t, 8, req.AutoRange.End)
	require.Len(t, req.Aggregates, 1)
	assert.Equal(t, "total_units", req.Aggregates[0].Alias)
	require.Len(t, req.OrderBy, 1)
	assert.Equal(t, "ASC", req.OrderBy[0].Direction)
}
