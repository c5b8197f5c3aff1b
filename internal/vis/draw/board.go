// Package draw provides rendering primitives for the visualizer.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/interact"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/state"
)

var (
	ColorCellFree    = color.NRGBA{R: 45, G: 50, B: 56, A: 255}
	ColorCellBlocked = color.NRGBA{R: 90, G: 70, B: 60, A: 255}
	ColorCellBorder  = color.NRGBA{R: 30, G: 33, B: 38, A: 255}
)

// DrawBoard renders the obstacle map as a grid of filled cells.
func DrawBoard(gtx layout.Context, grid core.Grid, camera *interact.Camera) {
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			col := ColorCellFree
			if grid.Blocked(core.Location{Row: r, Col: c}) {
				col = ColorCellBlocked
			}
			drawCell(gtx, r, c, camera, col)
		}
	}
}

func drawCell(gtx layout.Context, row, col int, camera *interact.Camera, fill color.NRGBA) {
	x1, y1 := camera.WorldToScreen(float64(col)*state.CellSize, float64(row)*state.CellSize)
	x2, y2 := camera.WorldToScreen(float64(col+1)*state.CellSize, float64(row+1)*state.CellSize)

	rect := image.Rect(int(x1), int(y1), int(x2), int(y2))
	paint.FillShape(gtx.Ops, ColorCellBorder, clip.Rect(rect).Op())

	inner := image.Rect(int(x1)+1, int(y1)+1, int(x2)-1, int(y2)-1)
	if inner.Dx() > 0 && inner.Dy() > 0 {
		paint.FillShape(gtx.Ops, fill, clip.Rect(inner).Op())
	}
}

// DrawGoalMarkers draws a hollow circle in each agent's goal cell.
func DrawGoalMarkers(gtx layout.Context, goals []core.Location, camera *interact.Camera) {
	for i, goal := range goals {
		center := state.CellCenter(goal)
		x, y := camera.WorldToScreen(center.X, center.Y)
		r := float32(state.CellSize*0.3) * camera.Zoom

		col := AgentColor(i)
		col.A = 200
		drawCircleOutline(gtx, x, y, r, 2*camera.Zoom, col)
	}
}

func drawCircleOutline(gtx layout.Context, cx, cy, radius, stroke float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx+radius, cy))
	appendCircle(&path, cx, cy, radius)

	inner := radius - stroke
	if inner < 0 {
		inner = 0
	}
	path.MoveTo(f32.Pt(cx+inner, cy))
	appendCircle(&path, cx, cy, inner)

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// appendCircle traces a circle approximated by line segments, starting
// from the path's current position at angle zero.
func appendCircle(path *clip.Path, cx, cy, r float32) {
	const segments = 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / segments
		x := cx + r*float32(math.Cos(angle))
		y := cy + r*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()
}
