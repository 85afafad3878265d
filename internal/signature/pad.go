// Package signature implements the freehand signature surface: pointer
// events traced onto an off-screen raster, exported as PNG once the
// client validates.
package signature

import (
	"bytes"
	"errors"
	"image"

	"github.com/fogleman/gg"
)

// State of the pad. empty → drawing on pointer-down, drawing → dirty on
// pointer-up, dirty → empty on Clear.
type State int

const (
	StateEmpty State = iota
	StateDrawing
	StateDirty
)

var ErrEmptySignature = errors.New("aucune signature tracée")

const (
	strokeWidth = 2
	// Matches the dashboard canvas: full-width container, 200px tall.
	DefaultWidth  = 600
	DefaultHeight = 200
)

// Point is a pointer position in viewport coordinates. Mouse and touch
// sources feed the same three entry points; the pad translates against
// its own bounds, not the viewport origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous down-move-up trace.
type Stroke []Point

// Pad is an in-memory drawing surface. It is owned by a single
// interaction at a time and is not safe for concurrent use.
type Pad struct {
	bounds image.Rectangle
	dc     *gg.Context
	state  State
	lastX  float64
	lastY  float64
}

// NewPad creates a white pad whose top-left corner sits at the given
// viewport offset.
func NewPad(bounds image.Rectangle) *Pad {
	p := &Pad{bounds: bounds}
	p.reset()
	return p
}

// NewDefaultPad creates a pad at the origin with the dashboard's canvas
// dimensions.
func NewDefaultPad() *Pad {
	return NewPad(image.Rect(0, 0, DefaultWidth, DefaultHeight))
}

func (p *Pad) reset() {
	dc := gg.NewContext(p.bounds.Dx(), p.bounds.Dy())
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(strokeWidth)
	dc.SetLineCapRound()
	p.dc = dc
	p.state = StateEmpty
}

func (p *Pad) State() State { return p.state }

func (p *Pad) translate(pt Point) (float64, float64) {
	return pt.X - float64(p.bounds.Min.X), pt.Y - float64(p.bounds.Min.Y)
}

// PointerDown starts a stroke at the given viewport position.
func (p *Pad) PointerDown(pt Point) {
	p.lastX, p.lastY = p.translate(pt)
	p.state = StateDrawing
}

// PointerMove extends the current stroke. Stray moves arriving before
// any down event are dropped; touch screens deliver those.
func (p *Pad) PointerMove(pt Point) {
	if p.state != StateDrawing {
		return
	}
	x, y := p.translate(pt)
	p.dc.DrawLine(p.lastX, p.lastY, x, y)
	p.dc.Stroke()
	p.lastX, p.lastY = x, y
}

// PointerUp commits the current stroke.
func (p *Pad) PointerUp() {
	if p.state != StateDrawing {
		return
	}
	p.state = StateDirty
}

// Clear wipes the surface back to white and returns to the empty state.
func (p *Pad) Clear() {
	p.reset()
}

// Complete exports the raster as PNG. Only valid once at least one
// stroke has been committed.
func (p *Pad) Complete() ([]byte, error) {
	if p.state != StateDirty {
		return nil, ErrEmptySignature
	}
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Replay feeds recorded strokes through the pad, one down-move-up cycle
// per stroke. Empty strokes are skipped.
func (p *Pad) Replay(strokes []Stroke) {
	for _, s := range strokes {
		if len(s) == 0 {
			continue
		}
		p.PointerDown(s[0])
		for _, pt := range s[1:] {
			p.PointerMove(pt)
		}
		p.PointerUp()
	}
}
