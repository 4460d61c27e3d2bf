package filters

import (
	"testing"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/document"
	"github.com/chazu/compass/pkg/geom"
	"github.com/chazu/compass/pkg/graph"
	"github.com/chazu/compass/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePoint(x, y string) Record {
	return Record{Kind: "point", Variant: "free", Params: Params{"x": x, "y": y}, Style: document.DefaultStyle()}
}

func reconstruct(records ...Record) (*document.Document, error) {
	return Reconstruct(ksegFormat, records, KSegBuilders(), construct.DefaultRegistry())
}

// valueOf returns the value of the holder built from record i, assuming
// every record yields a holder.
func valueOf(t *testing.T, d *document.Document, i int) value.Value {
	t.Helper()
	hs := d.Holders()
	require.Less(t, i, len(hs))
	return d.Value(hs[i])
}

func coordOf(t *testing.T, d *document.Document, i int) geom.Coordinate {
	t.Helper()
	p, ok := valueOf(t, d, i).(value.Point)
	require.True(t, ok, "record %d is %v", i, valueOf(t, d, i))
	return p.Coord
}

func TestReconstruct(t *testing.T) {
	named := freePoint("0", "0")
	named.Name = "A"
	d, err := reconstruct(
		named,
		freePoint("3", "4"),
		Record{Kind: "segment", Variant: "endpoints", Parents: []int{0, 1}, Style: document.DefaultStyle()},
		Record{Kind: "measure", Variant: "length", Parents: []int{2}, Params: Params{"x": "1", "y": "1"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())

	h, ok := d.Find("A")
	require.True(t, ok)
	assert.Equal(t, d.Holders()[0], h)

	label, ok := valueOf(t, d, 3).(value.TextLabel)
	require.True(t, ok)
	assert.Equal(t, "5", label.Text)
	assert.Equal(t, geom.Coordinate{X: 1, Y: 1}, label.Anchor)
}

func TestReconstructErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		record  int
		msg     string
	}{
		{
			name:    "parent out of range",
			records: []Record{freePoint("0", "0"), {Kind: "segment", Variant: "endpoints", Parents: []int{0, 1}}},
			record:  1,
			msg:     "parent index 1 out of range",
		},
		{
			name:    "negative parent",
			records: []Record{{Kind: "point", Variant: "mid", Parents: []int{-1}}},
			record:  0,
			msg:     "parent index -1 out of range",
		},
		{
			name:    "parent without object",
			records: []Record{{Kind: "loop"}, {Kind: "point", Variant: "mid", Parents: []int{0}}},
			record:  1,
			msg:     "parent 0 has no object",
		},
		{
			name:    "bad number",
			records: []Record{freePoint("abc", "0")},
			record:  0,
			msg:     `field "x"`,
		},
		{
			name:    "wrong parent count",
			records: []Record{freePoint("0", "0"), {Kind: "segment", Variant: "endpoints", Parents: []int{0}}},
			record:  1,
			msg:     "want 2 parents, got 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := reconstruct(tt.records...)
			assert.Nil(t, d)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.record, pe.Record)
			assert.Contains(t, pe.Error(), tt.msg)
		})
	}
}

func TestReconstructUnsupported(t *testing.T) {
	d, err := reconstruct(freePoint("0", "0"), Record{Kind: "widget", Variant: "spinning"})
	assert.Nil(t, d)
	var ue *UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "widget", ue.Kind)
	assert.Equal(t, `kseg: unsupported object "widget" of type "spinning"`, ue.Error())
}

func TestReconstructValidatesGraph(t *testing.T) {
	defer func(f func(*graph.Graph) error) { checkGraph = f }(checkGraph)

	calls := 0
	checkGraph = func(g *graph.Graph) error {
		calls++
		return graph.Check(g)
	}
	_, err := reconstruct(freePoint("0", "0"), freePoint("1", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	checkGraph = func(*graph.Graph) error { return graph.ErrCorrupt }
	d, err := reconstruct(freePoint("0", "0"))
	assert.Nil(t, d)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, -1, pe.Record)
	assert.ErrorIs(t, err, graph.ErrCorrupt)
}

func TestReconstructSkip(t *testing.T) {
	d, err := reconstruct(Record{Kind: "loop"}, freePoint("1", "2"))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, geom.Coordinate{X: 1, Y: 2}, coordOf(t, d, 0))
}

func TestIntersectionKinds(t *testing.T) {
	d, err := reconstruct(
		freePoint("-1", "0"),
		freePoint("1", "0"),
		freePoint("0", "-1"),
		freePoint("0", "1"),
		Record{Kind: "line", Variant: "two-points", Parents: []int{0, 1}},
		Record{Kind: "line", Variant: "two-points", Parents: []int{2, 3}},
		Record{Kind: "point", Variant: "intersection", Parents: []int{4, 5}},
	)
	require.NoError(t, err)
	c := coordOf(t, d, 6)
	assert.InDelta(t, 0, c.X, 1e-12)
	assert.InDelta(t, 0, c.Y, 1e-12)

	_, err = reconstruct(
		freePoint("-1", "0"),
		freePoint("1", "0"),
		freePoint("0", "-1"),
		freePoint("0", "1"),
		Record{Kind: "line", Variant: "two-points", Parents: []int{0, 1}},
		Record{Kind: "line", Variant: "two-points", Parents: []int{2, 3}},
		Record{Kind: "point", Variant: "intersection2", Parents: []int{4, 5}},
	)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Msg, "two lines have one intersection")
}

func TestParams(t *testing.T) {
	p := Params{"x": "1.5", "n": "3", "bad": "x"}
	f, err := p.Float("x")
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)
	n, err := p.Int("n")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = p.Float("missing")
	assert.EqualError(t, err, `missing field "missing"`)
	_, err = p.Int("bad")
	assert.Error(t, err)
	_, err = p.Coord("x", "bad")
	assert.Error(t, err)
}
