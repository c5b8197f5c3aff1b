package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/interact"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/state"
)

// DrawPathTrail draws a trail behind an agent, fading and thinning
// toward the older end.
func DrawPathTrail(gtx layout.Context, trail []state.Point, camera *interact.Camera, baseColor color.NRGBA, maxWidth float32) {
	n := len(trail)
	if n < 2 {
		return
	}

	for i := 0; i < n-1; i++ {
		col := baseColor
		col.A = uint8(50 + float64(i)/float64(n)*150)
		w := maxWidth * camera.Zoom * (0.3 + 0.7*float32(i)/float32(n))

		x1, y1 := camera.WorldToScreen(trail[i].X, trail[i].Y)
		x2, y2 := camera.WorldToScreen(trail[i+1].X, trail[i+1].Y)
		drawSegment(gtx, x1, y1, x2, y2, w, col)
	}
}

// DrawFuturePath draws the remaining route in a dimmed color.
func DrawFuturePath(gtx layout.Context, future []state.Point, camera *interact.Camera, col color.NRGBA) {
	if len(future) < 2 {
		return
	}
	dim := col
	dim.A = 80
	w := 1.5 * camera.Zoom

	for i := 0; i < len(future)-1; i++ {
		x1, y1 := camera.WorldToScreen(future[i].X, future[i].Y)
		x2, y2 := camera.WorldToScreen(future[i+1].X, future[i+1].Y)
		drawSegment(gtx, x1, y1, x2, y2, w, dim)
	}
}

// drawSegment fills the quad spanning a thick line from (x1,y1) to
// (x2,y2). Zero-length segments, such as wait moves, are skipped.
func drawSegment(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
