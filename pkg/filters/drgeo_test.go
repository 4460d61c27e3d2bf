package filters

import (
	"strings"
	"testing"

	"github.com/chazu/compass/pkg/construct"
	"github.com/chazu/compass/pkg/document"
	"github.com/chazu/compass/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const drgeoFigure = `<?xml version="1.0"?>
<drgenius>
<drgeo name="Figure 1" scale="30.000000" origin_x="0.000000" origin_y="0.000000" grid="False">
<boundingBox tl_x="-1" tl_y="1" br_x="1" br_y="-1"/>
<point id="A" type="Free" color="Red" thickness="Thick" style="Cross" masked="False" name="A">
<x>0.000000</x>
<y>0.000000</y>
</point>
<point id="B" type="Free" color="Black" thickness="Normal" style="Round" masked="True">
<x>4.000000</x>
<y>0.000000</y>
</point>
<segment id="S" type="2pts" color="Blue" thickness="Dashed" masked="False">
<parent ref="A"/>
<parent ref="B"/>
</segment>
<point id="M" type="Middle_segment" color="Green" thickness="Normal" style="Round" masked="False">
<parent ref="S"/>
</point>
<point id="P" type="On_curve" color="Green" thickness="Normal" style="RoundEmpty" masked="False">
<value>0.25</value>
<parent ref="S"/>
</point>
<numeric id="L" type="segment_length" color="Black" thickness="Normal" masked="False">
<x>1</x>
<y>2</y>
<parent ref="S"/>
</numeric>
<numeric id="V" type="value" color="Black" thickness="Normal" masked="False">
<x>0</x>
<y>3</y>
<value>3.14159</value>
</numeric>
</drgeo>
</drgenius>
`

func TestReadDrGeo(t *testing.T) {
	records, err := ReadDrGeo(strings.NewReader(drgeoFigure))
	require.NoError(t, err)
	require.Len(t, records, 7, "the bounding box is dropped")

	a := records[0]
	assert.Equal(t, "point", a.Kind)
	assert.Equal(t, "Free", a.Variant)
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, uint8(255), a.Style.Color.R)
	assert.Equal(t, 9, a.Style.Width)
	assert.Equal(t, document.PointCross, a.Style.Point)
	assert.True(t, a.Style.Shown)

	assert.False(t, records[1].Style.Shown)
	assert.Equal(t, 7, records[1].Style.Width)
	assert.Equal(t, []int{0, 1}, records[2].Parents)
	assert.Equal(t, document.PenDot, records[2].Style.Pen)
	assert.Equal(t, document.PointRoundEmpty, records[4].Style.Point)
	assert.Equal(t, "0.25", records[4].Params["value"])

	d, err := Reconstruct(drgeoFormat, records, DrGeoBuilders(), construct.DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, 7, d.Len())

	m := coordOf(t, d, 3)
	assert.InDelta(t, 2, m.X, 1e-12)
	assert.InDelta(t, 0, m.Y, 1e-12)
	p := coordOf(t, d, 4)
	assert.InDelta(t, 1, p.X, 1e-12)

	length, ok := valueOf(t, d, 5).(value.TextLabel)
	require.True(t, ok)
	assert.Equal(t, "4", length.Text)
	text, ok := valueOf(t, d, 6).(value.TextLabel)
	require.True(t, ok)
	assert.Equal(t, "3.14", text.Text)
}

func TestReadDrGeoErrors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		msg  string
	}{
		{"not xml", "<drgenius", "parse XML"},
		{"no figure", "<drgenius></drgenius>", "no figures"},
		{"macros only", "<drgenius><macro/></drgenius>", "macro file without figures"},
		{"forward reference", `<drgenius><drgeo><segment id="S" type="2pts"><parent ref="A"/></segment></drgeo></drgenius>`, `unknown parent "A"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDrGeo(strings.NewReader(tt.xml))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Contains(t, pe.Msg, tt.msg)
		})
	}
}

func TestDrGeoIntersection(t *testing.T) {
	figure := `<drgenius><drgeo>
<point id="O" type="Free"><x>0</x><y>0</y></point>
<point id="R" type="Free"><x>1</x><y>0</y></point>
<point id="Q" type="Free"><x>1</x><y>0</y></point>
<point id="T" type="Free"><x>2</x><y>0</y></point>
<circle id="C1" type="2pts"><parent ref="O"/><parent ref="R"/></circle>
<circle id="C2" type="2pts"><parent ref="Q"/><parent ref="T"/></circle>
<point id="I" type="Intersection" extra="%s"><parent ref="C1"/><parent ref="C2"/></point>
</drgeo></drgenius>`

	records, err := ReadDrGeo(strings.NewReader(strings.Replace(figure, "%s", "0", 1)))
	require.NoError(t, err)
	assert.Equal(t, "0", records[6].Params["extra"])
	d, err := Reconstruct(drgeoFormat, records, DrGeoBuilders(), construct.DefaultRegistry())
	require.NoError(t, err)
	i := coordOf(t, d, 6)
	assert.InDelta(t, 1, i.X*i.X+i.Y*i.Y, 1e-9, "on the first circle")

	records, err = ReadDrGeo(strings.NewReader(strings.Replace(figure, "%s", "5", 1)))
	require.NoError(t, err)
	_, err = Reconstruct(drgeoFormat, records, DrGeoBuilders(), construct.DefaultRegistry())
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 6, pe.Record)
	assert.Contains(t, pe.Msg, "intersection index 5")
}

func TestDrGeoUnsupported(t *testing.T) {
	figure := `<drgenius><drgeo>
<point id="A" type="Free"><x>0</x><y>0</y></point>
<point id="B" type="Free"><x>1</x><y>0</y></point>
<line id="L" type="2pts"><parent ref="A"/><parent ref="B"/></line>
<point id="P" type="On_curve"><value>0.5</value><parent ref="L"/></point>
</drgeo></drgenius>`
	records, err := ReadDrGeo(strings.NewReader(figure))
	require.NoError(t, err)
	_, err = Reconstruct(drgeoFormat, records, DrGeoBuilders(), construct.DefaultRegistry())
	var ue *UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "On_curve on line", ue.Variant)
}
