package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentDistance(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)

	assert.InDelta(t, 0, SegmentDistance(Pt(5, 0), a, b), 1e-9)
	assert.InDelta(t, 3, SegmentDistance(Pt(5, 3), a, b), 1e-9)
	assert.InDelta(t, 5, SegmentDistance(Pt(13, 4), a, b), 1e-9, "past the end measures to the endpoint")
	assert.InDelta(t, 5, SegmentDistance(Pt(3, 4), a, a), 1e-9, "degenerate segment")
}

func TestRectContains(t *testing.T) {
	r := Rect{Min: Pt(0, 0), Max: Pt(10, 5)}
	assert.True(t, r.Contains(Pt(0, 0)))
	assert.True(t, r.Contains(Pt(9.9, 4.9)))
	assert.False(t, r.Contains(Pt(10, 2)))
	assert.False(t, r.Contains(Pt(-1, 2)))
	assert.Equal(t, 10.0, r.Width())
}
