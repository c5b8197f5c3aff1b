package draw

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/interact"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/state"
)

// agentPalette cycles across agents so neighboring ids stay visually
// distinct.
var agentPalette = []color.NRGBA{
	{R: 100, G: 200, B: 255, A: 255},
	{R: 255, G: 150, B: 100, A: 255},
	{R: 150, G: 230, B: 120, A: 255},
	{R: 220, G: 120, B: 255, A: 255},
	{R: 255, G: 220, B: 100, A: 255},
	{R: 120, G: 160, B: 255, A: 255},
	{R: 255, G: 120, B: 160, A: 255},
	{R: 130, G: 220, B: 210, A: 255},
}

// AgentColor returns the display color for an agent id.
func AgentColor(agent int) color.NRGBA {
	return agentPalette[agent%len(agentPalette)]
}

// DrawAgents draws every agent as a filled circle at its interpolated
// position.
func DrawAgents(gtx layout.Context, positions []state.Point, camera *interact.Camera) {
	for i, pos := range positions {
		x, y := camera.WorldToScreen(pos.X, pos.Y)
		r := float32(state.CellSize*0.35) * camera.Zoom
		drawFilledCircle(gtx, x, y, r, AgentColor(i))
	}
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx+radius, cy))
	appendCircle(&path, cx, cy, radius)
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
