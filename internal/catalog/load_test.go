package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogDir(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.cue"), []byte(source), 0o644))
	return dir
}

func loadErrCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	return loadErr.Code
}

func TestLoad_FullCatalog(t *testing.T) {
	dir := writeCatalogDir(t, `
column: "Lot": {sql: "v.lot", group: "v.lot", default: true}
column: "Yield": {
	template:  "SUM(CASE WHEN {bin_col} IN ({good_bins}) THEN {total_col} ELSE 0 END)"
	alias:     "GOOD"
	aggregate: true
}
filter: "Lot (v.lot)": {column: "v.lot", kind: "text", default_op: "="}
filter: "End Time To": {
	column:      "w.end_time"
	kind:        "date"
	default_op:  "<="
	upper_bound: true
}
filter: "Probe Count": {
	column:     "probe_cnt"
	kind:       "numeric"
	default_op: "="
	operators: ["=", ">"]
}
`)

	cat, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Lot", "Yield"}, cat.ColumnNames())
	assert.Equal(t, []string{"Lot (v.lot)", "End Time To", "Probe Count"}, cat.FilterNames())

	lot, ok := cat.Column("Lot")
	require.True(t, ok)
	assert.Equal(t, "v.lot", lot.SQL)
	assert.Equal(t, "v.lot", lot.GroupKey)
	assert.True(t, lot.Default)

	yield, ok := cat.Column("Yield")
	require.True(t, ok)
	assert.True(t, yield.Aggregate)
	assert.Equal(t, "GOOD", yield.Alias)
	assert.Contains(t, yield.Template, PlaceholderGoodBins)

	to, ok := cat.Filter("End Time To")
	require.True(t, ok)
	assert.Equal(t, KindDate, to.Kind)
	assert.True(t, to.UpperBound)
	// No explicit operator list: the date vocabulary applies.
	assert.Equal(t, DateOperators, to.Operators)

	probe, ok := cat.Filter("Probe Count")
	require.True(t, ok)
	assert.Equal(t, []string{"=", ">"}, probe.Operators)
}

func TestLoad_KindDefaultsToText(t *testing.T) {
	dir := writeCatalogDir(t, `
filter: "Lot": {column: "v.lot"}
`)

	cat, err := Load(dir)
	require.NoError(t, err)

	lot, _ := cat.Filter("Lot")
	assert.Equal(t, KindText, lot.Kind)
	assert.Equal(t, TextOperators, lot.Operators)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, ErrCodeNotFound, loadErrCode(t, err))
}

func TestLoad_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "catalog.cue")
	require.NoError(t, os.WriteFile(file, []byte("column: {}"), 0o644))

	_, err := Load(file)
	assert.Equal(t, ErrCodeNotFound, loadErrCode(t, err))
}

func TestLoad_NoCUEFiles(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Equal(t, ErrCodeNoFiles, loadErrCode(t, err))
}

func TestLoad_EmptyDefinitions(t *testing.T) {
	dir := writeCatalogDir(t, `unrelated: 1`)
	_, err := Load(dir)
	assert.Equal(t, ErrCodeEmpty, loadErrCode(t, err))
}

func TestLoad_ScalarWithoutSQL(t *testing.T) {
	dir := writeCatalogDir(t, `
column: "Broken": {alias: "x"}
`)
	_, err := Load(dir)
	assert.Equal(t, ErrCodeBadColumn, loadErrCode(t, err))
	assert.Contains(t, err.Error(), "Broken")
}

func TestLoad_AggregateWithGroupKey(t *testing.T) {
	dir := writeCatalogDir(t, `
column: "Count": {sql: "COUNT(*)", aggregate: true, group: "v.lot"}
`)
	_, err := Load(dir)
	assert.Equal(t, ErrCodeBadColumn, loadErrCode(t, err))
}

func TestLoad_FilterWithoutColumn(t *testing.T) {
	dir := writeCatalogDir(t, `
filter: "Orphan": {kind: "text"}
`)
	_, err := Load(dir)
	assert.Equal(t, ErrCodeBadFilter, loadErrCode(t, err))
}

func TestLoad_UnknownKind(t *testing.T) {
	dir := writeCatalogDir(t, `
filter: "Lot": {column: "v.lot", kind: "fancy"}
`)
	_, err := Load(dir)
	assert.Equal(t, ErrCodeBadFilter, loadErrCode(t, err))
	assert.Contains(t, err.Error(), "fancy")
}
