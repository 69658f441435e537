package routing

import (
	"testing"

	"github.com/alexanderramin/gantt/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestPathHit(t *testing.T) {
	p := Path{DependencyID: "d", Points: []geom.Point{geom.Pt(0, 8), geom.Pt(20, 8), geom.Pt(20, 40)}}

	assert.True(t, p.Hit(geom.Pt(10, 8)))
	assert.True(t, p.Hit(geom.Pt(10, 13.9)), "within half the hit width")
	assert.True(t, p.Hit(geom.Pt(25, 30)))
	assert.False(t, p.Hit(geom.Pt(10, 20)))
}

func TestHoverMarksOnlyTopPath(t *testing.T) {
	paths := []Path{
		{DependencyID: "under", Points: []geom.Point{geom.Pt(0, 8), geom.Pt(50, 8)}},
		{DependencyID: "over", Points: []geom.Point{geom.Pt(0, 10), geom.Pt(50, 10)}},
	}

	assert.Equal(t, "over", Hover(paths, geom.Pt(20, 9)))
	assert.False(t, paths[0].Hovered)
	assert.True(t, paths[1].Hovered)
	assert.Equal(t, HoverStrokeWidth, paths[1].Stroke())
	assert.Equal(t, StrokeWidth, paths[0].Stroke())

	assert.Equal(t, "", Hover(paths, geom.Pt(20, 100)))
	assert.False(t, paths[1].Hovered)
}
