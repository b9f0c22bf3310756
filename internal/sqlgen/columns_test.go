package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waferq/waferq/internal/catalog"
	"github.com/waferq/waferq/internal/request"
)

// columnCatalog builds a synthetic catalog with scalar and aggregate
// columns.
func columnCatalog() *catalog.Catalog {
	return catalog.New([]catalog.ColumnSpec{
		{Name: "Lot", SQL: "v.lot", GroupKey: "v.lot"},
		{Name: "Loadboard", SQL: "w.loadbd", Alias: "PIB", GroupKey: "w.loadbd"},
		{Name: "Date Char", SQL: "to_char(w.end_time,'MON/DD/YYYY')", Alias: "date_1"},
		{
			Name:      "Yield",
			Template:  "ROUND(SUM(CASE WHEN {bin_col} IN ({good_bins}) THEN {total_col} ELSE 0 END) / NULLIF(SUM({total_col}), 0) * 100, 2)",
			Alias:     "YIELD",
			Aggregate: true,
		},
		{Name: "Record Count", SQL: "COUNT(*)", Alias: "Bin_Record_Count", Aggregate: true},
		{Name: "Broken Aggregate", Aggregate: true},
	}, nil)
}

func TestResolveColumns_ScalarColumn(t *testing.T) {
	res, err := ResolveColumns(columnCatalog(), request.Request{Columns: []string{"Lot"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"v.lot"}, res.Selects)
	assert.Equal(t, []string{"v.lot"}, res.GroupBy)
	assert.False(t, res.HasAggregate)
	assert.Empty(t, res.Aliases) // unaliased expressions are not referenceable
}

func TestResolveColumns_AliasedScalarRecordsAlias(t *testing.T) {
	res, err := ResolveColumns(columnCatalog(), request.Request{Columns: []string{"Loadboard"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"w.loadbd AS PIB"}, res.Selects)
	assert.Equal(t, "w.loadbd", res.Aliases["PIB"])
}

func TestResolveColumns_GroupKeyFallsBackToExpression(t *testing.T) {
	// Date Char has no explicit group key; its expression is used.
	res, err := ResolveColumns(columnCatalog(), request.Request{Columns: []string{"Date Char"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"to_char(w.end_time,'MON/DD/YYYY')"}, res.GroupBy)
}

func TestResolveColumns_TemplateSubstitution(t *testing.T) {
	res, err := ResolveColumns(columnCatalog(), request.Request{Columns: []string{"Yield"}}, []string{"1", "2"})
	require.NoError(t, err)

	want := "ROUND(SUM(CASE WHEN v.bin IN (1,2) THEN v.total ELSE 0 END) / NULLIF(SUM(v.total), 0) * 100, 2) AS YIELD"
	assert.Equal(t, []string{want}, res.Selects)
	assert.True(t, res.HasAggregate)
	assert.Empty(t, res.GroupBy)
}

func TestResolveColumns_EmptyGoodBinsBecomesNull(t *testing.T) {
	res, err := ResolveColumns(columnCatalog(), request.Request{Columns: []string{"Yield"}}, nil)
	require.NoError(t, err)
	assert.Contains(t, res.Selects[0], "v.bin IN (NULL)")
}

func TestResolveColumns_AggregateWithoutTemplate(t *testing.T) {
	_, err := ResolveColumns(columnCatalog(), request.Request{Columns: []string{"Broken Aggregate"}}, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeBadTemplate))
}

func TestResolveColumns_RequestOrderPreserved(t *testing.T) {
	res, err := ResolveColumns(columnCatalog(), request.Request{
		Columns: []string{"Record Count", "Lot"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"COUNT(*) AS Bin_Record_Count", "v.lot"}, res.Selects)
}

func TestResolveColumns_AutoRangeCounts(t *testing.T) {
	res, err := ResolveColumns(columnCatalog(), request.Request{
		AutoRange: &request.AutoRange{Start: 6, End: 8, Count: true},
	}, nil)
	require.NoError(t, err)

	require.Equal(t, []string{
		"SUM(CASE WHEN v.bin = 6 THEN v.total ELSE 0 END) AS bin_6count",
		"SUM(CASE WHEN v.bin = 7 THEN v.total ELSE 0 END) AS bin_7count",
		"SUM(CASE WHEN v.bin = 8 THEN v.total ELSE 0 END) AS bin_8count",
	}, res.Selects)
	assert.True(t, res.HasAggregate)
	assert.Empty(t, res.GroupBy)
}

func TestResolveColumns_AutoRangeCountBeforePercent(t *testing.T) {
	res, err := ResolveColumns(columnCatalog(), request.Request{
		AutoRange: &request.AutoRange{Start: 3, End: 3, Count: true, Percent: true},
	}, nil)
	require.NoError(t, err)

	require.Len(t, res.Selects, 2)
	assert.Contains(t, res.Selects[0], "AS bin_3count")
	assert.Contains(t, res.Selects[1], "AS bin3_pct")
	assert.Contains(t, res.Selects[1], "NULLIF(SUM(v.total), 0) * 100, 2)")
}

func TestResolveColumns_AutoRangeStartAfterEnd(t *testing.T) {
	_, err := ResolveColumns(columnCatalog(), request.Request{
		AutoRange: &request.AutoRange{Start: 9, End: 6, Count: true},
	}, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeBinRange))
}

func TestResolveColumns_CustomBinRows(t *testing.T) {
	res, err := ResolveColumns(columnCatalog(), request.Request{
		CustomBins: []request.CustomBin{
			{Bin: "12", Count: true},
			{Bin: " 5 ", Percent: true},
		},
	}, nil)
	require.NoError(t, err)

	require.Len(t, res.Selects, 2)
	assert.Contains(t, res.Selects[0], "AS bin_12count")
	assert.Contains(t, res.Selects[1], "AS bin5_pct")
}

func TestResolveColumns_InvalidCustomBinDroppedSilently(t *testing.T) {
	// Free-form rows that do not parse as integers are dropped, not
	// rejected; only the good-bins list is validated strictly.
	res, err := ResolveColumns(columnCatalog(), request.Request{
		CustomBins: []request.CustomBin{
			{Bin: "", Count: true},
			{Bin: "abc", Count: true},
			{Bin: "4", Count: true},
		},
	}, nil)
	require.NoError(t, err)
	require.Len(t, res.Selects, 1)
	assert.Contains(t, res.Selects[0], "AS bin_4count")
}

func TestResolveColumns_DuplicateAliasPassesThrough(t *testing.T) {
	// No silent renaming: two entries producing the same alias both land
	// in SELECT verbatim.
	cat := catalog.New([]catalog.ColumnSpec{
		{Name: "First", SQL: "v.lot", Alias: "dup", GroupKey: "v.lot"},
		{Name: "Second", SQL: "v.fablot", Alias: "dup", GroupKey: "v.fablot"},
	}, nil)

	res, err := ResolveColumns(cat, request.Request{Columns: []string{"First", "Second"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"v.lot AS dup", "v.fablot AS dup"}, res.Selects)
}

func TestResolveColumns_UnknownColumnSkipped(t *testing.T) {
	res, err := ResolveColumns(columnCatalog(), request.Request{
		Columns: []string{"Lot", "Not In Catalog"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"v.lot"}, res.Selects)
}
