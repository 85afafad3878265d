package signature

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteRejectedWhenEmpty(t *testing.T) {
	pad := NewDefaultPad()

	assert.Equal(t, StateEmpty, pad.State())
	_, err := pad.Complete()
	assert.ErrorIs(t, err, ErrEmptySignature)
}

func TestDownMoveUpProducesRaster(t *testing.T) {
	pad := NewDefaultPad()

	pad.PointerDown(Point{X: 10, Y: 10})
	assert.Equal(t, StateDrawing, pad.State())
	pad.PointerMove(Point{X: 60, Y: 40})
	pad.PointerMove(Point{X: 120, Y: 30})
	pad.PointerUp()
	assert.Equal(t, StateDirty, pad.State())

	data, err := pad.Complete()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultWidth, img.Bounds().Dx())
	assert.Equal(t, DefaultHeight, img.Bounds().Dy())

	// The trace actually painted something non-white.
	touched := false
	for x := 0; x < img.Bounds().Dx() && !touched; x++ {
		for y := 0; y < img.Bounds().Dy(); y++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || b != 0xffff {
				touched = true
				break
			}
		}
	}
	assert.True(t, touched)
}

func TestStrayMovesIgnoredBeforeDown(t *testing.T) {
	pad := NewDefaultPad()

	// Touch environments can deliver moves before the down event.
	pad.PointerMove(Point{X: 30, Y: 30})
	pad.PointerMove(Point{X: 90, Y: 90})
	pad.PointerUp()

	assert.Equal(t, StateEmpty, pad.State())
	_, err := pad.Complete()
	assert.ErrorIs(t, err, ErrEmptySignature)
}

func TestClearResetsToEmpty(t *testing.T) {
	pad := NewDefaultPad()

	pad.PointerDown(Point{X: 5, Y: 5})
	pad.PointerMove(Point{X: 50, Y: 50})
	pad.PointerUp()
	require.Equal(t, StateDirty, pad.State())

	pad.Clear()
	assert.Equal(t, StateEmpty, pad.State())
	_, err := pad.Complete()
	assert.ErrorIs(t, err, ErrEmptySignature)
}

func TestCoordinatesRelativeToBounds(t *testing.T) {
	// Two pads at different viewport offsets receive the same gesture in
	// their own local terms and must paint identical rasters.
	local := NewPad(image.Rect(0, 0, 200, 100))
	local.Replay([]Stroke{{{X: 10, Y: 20}, {X: 80, Y: 60}}})

	offset := NewPad(image.Rect(300, 150, 500, 250))
	offset.Replay([]Stroke{{{X: 310, Y: 170}, {X: 380, Y: 210}}})

	a, err := local.Complete()
	require.NoError(t, err)
	b, err := offset.Complete()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestReplayDeterministic(t *testing.T) {
	strokes := []Stroke{
		{{X: 12, Y: 40}, {X: 48, Y: 22}, {X: 90, Y: 70}},
		{{X: 100, Y: 50}, {X: 160, Y: 55}},
	}

	first := NewDefaultPad()
	first.Replay(strokes)
	a, err := first.Complete()
	require.NoError(t, err)

	second := NewDefaultPad()
	second.Replay(strokes)
	b, err := second.Complete()
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
