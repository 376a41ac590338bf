package game

import (
	"math"

	"github.com/SeamusWaldron/cubesim"
)

// Drag is a pointer gesture that started on a sticker.
type Drag struct {
	Hit     cubesim.ClickedFace
	StartX  float64
	StartY  float64
	Preview *cubesim.Move // Set once the drag passes the preview distance
}

// PointerDown starts a drag on hit at screen point (x, y).
func (c *Controller) PointerDown(hit cubesim.ClickedFace, x, y float64) {
	c.drag = &Drag{Hit: hit, StartX: x, StartY: y}
}

// PointerMove updates the drag. Past the preview distance it records the
// turn the drag would make; past the commit distance it queues that turn
// and ends the drag. It returns the queued move, if any.
func (c *Controller) PointerMove(x, y float64) (cubesim.Move, bool) {
	d := c.drag
	if d == nil {
		return cubesim.Move{}, false
	}

	dx, dy := x-d.StartX, y-d.StartY
	dist := math.Hypot(dx, dy)
	if dist <= cubesim.DragPreviewDistance {
		return cubesim.Move{}, false
	}

	m, ok := cubesim.ResolveDrag(d.Hit, dx, dy)
	if !ok {
		c.drag = nil
		return cubesim.Move{}, false
	}
	d.Preview = &m

	if dist <= cubesim.DragCommitDistance {
		return cubesim.Move{}, false
	}

	c.drag = nil
	if !c.Turn(m) {
		return cubesim.Move{}, false
	}
	return m, true
}

// PointerUp ends the drag without turning.
func (c *Controller) PointerUp() {
	c.drag = nil
}

// CancelDrag drops any drag in progress.
func (c *Controller) CancelDrag() {
	c.drag = nil
}

// ActiveDrag returns the drag in progress, or nil.
func (c *Controller) ActiveDrag() *Drag {
	return c.drag
}
