package sqlgen

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/waferq/waferq/internal/catalog"
	"github.com/waferq/waferq/internal/request"
)

// Golden scenarios pin the exact rendered output. Run with -update to
// regenerate after an intentional change.
func TestAssemble_Golden(t *testing.T) {
	scenarios := []struct {
		name string
		req  request.Request
	}{
		{
			name: "scalar_yield_filter",
			req: request.Request{
				Columns:  []string{"Lot", "Yield (%)"},
				GoodBins: "1,2",
				Filters: []request.Filter{
					{Name: "Tester (w.tester)", Op: "LIKE", Value: "TT5003%"},
				},
				OrderBy: []request.Order{{Column: "v.lot", Direction: "ASC"}},
			},
		},
		{
			name: "auto_range_counts",
			req: request.Request{
				Columns:   []string{"Wafer ID"},
				AutoRange: &request.AutoRange{Start: 6, End: 8, Count: true},
			},
		},
		{
			name: "distinct_scalar",
			req: request.Request{
				Columns:  []string{"Lot", "Wafer ID"},
				Distinct: true,
				Filters: []request.Filter{
					{Name: "End Time From", Op: ">=", Value: "2024-01-01"},
				},
			},
		},
	}

	cat := catalog.Default()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			result, err := Assemble(cat, sc.req)
			require.NoError(t, err)

			g.Assert(t, sc.name, []byte(result.SQL))
			g.Assert(t, sc.name+"_preview", []byte(result.Preview))
		})
	}
}
