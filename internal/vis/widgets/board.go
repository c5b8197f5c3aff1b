// Package widgets provides the Gio UI widgets of the visualizer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/draw"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/interact"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/state"
)

// Board is the main 2D view: the grid, goal markers, path trails and the
// agents themselves.
type Board struct {
	state  *state.State
	camera *interact.Camera
	fitted bool
}

// NewBoard creates the board widget.
func NewBoard(st *state.State, camera *interact.Camera) *Board {
	return &Board{state: st, camera: camera}
}

// Layout renders the board.
func (b *Board) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	b.handlePointerEvents(gtx)

	inst := b.state.Instance
	if inst == nil {
		return layout.Dimensions{Size: bounds}
	}

	// Fit the whole grid on first layout, once the real size is known.
	if !b.fitted {
		b.camera.FitBounds(
			float64(inst.Map.Cols())*state.CellSize,
			float64(inst.Map.Rows())*state.CellSize,
			float32(bounds.X), float32(bounds.Y), 40)
		b.fitted = true
	}

	draw.DrawBoard(gtx, inst.Map, b.camera)
	draw.DrawGoalMarkers(gtx, inst.Goals, b.camera)

	if b.state.Solution != nil {
		for i := range b.state.Solution.Paths {
			col := draw.AgentColor(i)
			draw.DrawFuturePath(gtx, b.state.PathFuture(i), b.camera, col)
			draw.DrawPathTrail(gtx, b.state.PathHistory(i), b.camera, col, 3)
		}
		draw.DrawAgents(gtx, b.state.CurrentPositions(), b.camera)
	}

	return layout.Dimensions{Size: bounds}
}

func (b *Board) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, b)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: b,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			b.camera.HandleEvent(gtx, pe)
		}
	}
}
