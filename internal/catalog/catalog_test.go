package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ColumnOrder(t *testing.T) {
	cat := Default()

	names := cat.ColumnNames()
	require.Len(t, names, 18)
	assert.Equal(t, "Test Area", names[0])
	assert.Equal(t, "Affected Wafer Count per Lot (Distinct)", names[17])
}

func TestDefault_FilterOrder(t *testing.T) {
	cat := Default()

	names := cat.FilterNames()
	require.Len(t, names, 15)
	assert.Equal(t, "Program (v.program)", names[0])
	assert.Equal(t, "End Time To", names[14])
}

func TestDefault_DefaultColumnsExcludeWaferCount(t *testing.T) {
	cat := Default()

	defaults := cat.DefaultColumns()
	assert.Len(t, defaults, 17)
	assert.NotContains(t, defaults, "Affected Wafer Count per Lot (Distinct)")
}

func TestDefault_YieldColumnShape(t *testing.T) {
	cat := Default()

	spec, ok := cat.Column("Yield (%)")
	require.True(t, ok)
	assert.True(t, spec.Aggregate)
	assert.Equal(t, "YIELD", spec.Alias)
	assert.Empty(t, spec.SQL)
	assert.Contains(t, spec.Template, PlaceholderGoodBins)
	assert.Contains(t, spec.Template, PlaceholderBinCol)
	assert.Contains(t, spec.Template, PlaceholderTotalCol)
}

func TestDefault_AggregatesHaveNoGroupKey(t *testing.T) {
	cat := Default()
	for _, name := range cat.ColumnNames() {
		spec, _ := cat.Column(name)
		if spec.Aggregate {
			assert.Empty(t, spec.GroupKey, name)
		} else {
			assert.NotEmpty(t, spec.GroupKeyFor(), name)
		}
	}
}

func TestDefault_UpperBoundFlag(t *testing.T) {
	cat := Default()

	from, ok := cat.Filter("End Time From")
	require.True(t, ok)
	assert.False(t, from.UpperBound)

	to, ok := cat.Filter("End Time To")
	require.True(t, ok)
	assert.True(t, to.UpperBound)
	assert.Equal(t, KindDate, to.Kind)
}

func TestDefault_TesterSeedValue(t *testing.T) {
	cat := Default()

	tester, ok := cat.Filter("Tester (w.tester)")
	require.True(t, ok)
	assert.Equal(t, "LIKE", tester.DefaultOp)
	assert.Equal(t, "TT5003%", tester.DefaultValue)
}

func TestNew_DuplicateKeepsPositionTakesLastSpec(t *testing.T) {
	cat := New([]ColumnSpec{
		{Name: "A", SQL: "first"},
		{Name: "B", SQL: "b"},
		{Name: "A", SQL: "second"},
	}, nil)

	assert.Equal(t, []string{"A", "B"}, cat.ColumnNames())
	spec, _ := cat.Column("A")
	assert.Equal(t, "second", spec.SQL)
}

func TestGroupKeyFor_FallsBackToSQL(t *testing.T) {
	assert.Equal(t, "v.lot", ColumnSpec{SQL: "v.lot"}.GroupKeyFor())
	assert.Equal(t, "k", ColumnSpec{SQL: "v.lot", GroupKey: "k"}.GroupKeyFor())
}

func TestColumnNames_ReturnsCopy(t *testing.T) {
	cat := New([]ColumnSpec{{Name: "A", SQL: "a"}}, nil)
	names := cat.ColumnNames()
	names[0] = "mutated"
	assert.Equal(t, []string{"A"}, cat.ColumnNames())
}
