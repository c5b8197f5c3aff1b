// Package interact handles pointer-driven pan and zoom.
package interact

import (
	"gioui.org/io/pointer"
	"gioui.org/layout"
)

// Camera maps world coordinates to screen coordinates through a pan
// offset and a uniform zoom.
type Camera struct {
	OffsetX float32
	OffsetY float32
	Zoom    float32

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera at the default view.
func NewCamera() *Camera {
	return &Camera{OffsetX: 40, OffsetY: 40, Zoom: 1.0}
}

// Reset restores the default view.
func (c *Camera) Reset() {
	c.OffsetX = 40
	c.OffsetY = 40
	c.Zoom = 1.0
}

// WorldToScreen converts world coordinates to screen pixels.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen pixels to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// HandleEvent processes pointer events: drag with the secondary or middle
// button pans, scrolling zooms around the cursor.
func (c *Camera) HandleEvent(gtx layout.Context, ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX = ev.Position.X
		c.lastY = ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return
		}
		factor := float32(1.1)
		if ev.Scroll.Y > 0 {
			factor = 1 / factor
		}
		c.ZoomBy(factor, ev.Position.X, ev.Position.Y)
	}
}

// ZoomBy zooms by a factor while keeping the world point under
// (centerX, centerY) fixed on screen.
func (c *Camera) ZoomBy(factor float32, centerX, centerY float32) {
	worldX, worldY := c.ScreenToWorld(centerX, centerY)

	c.Zoom *= factor
	if c.Zoom < 0.1 {
		c.Zoom = 0.1
	}
	if c.Zoom > 10 {
		c.Zoom = 10
	}

	newScreenX, newScreenY := c.WorldToScreen(worldX, worldY)
	c.OffsetX += centerX - newScreenX
	c.OffsetY += centerY - newScreenY
}

// FitBounds sets zoom and offset so the world rectangle fits on screen
// with the given pixel margin.
func (c *Camera) FitBounds(worldW, worldH float64, screenWidth, screenHeight, margin float32) {
	if worldW <= 0 || worldH <= 0 {
		return
	}

	availW := screenWidth - 2*margin
	availH := screenHeight - 2*margin
	zoomX := availW / float32(worldW)
	zoomY := availH / float32(worldH)

	c.Zoom = zoomX
	if zoomY < zoomX {
		c.Zoom = zoomY
	}
	if c.Zoom < 0.1 {
		c.Zoom = 0.1
	}
	if c.Zoom > 10 {
		c.Zoom = 10
	}

	c.OffsetX = screenWidth/2 - float32(worldW/2)*c.Zoom
	c.OffsetY = screenHeight/2 - float32(worldH/2)*c.Zoom
}
