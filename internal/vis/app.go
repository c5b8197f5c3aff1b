// Package vis implements a Gio-based playback visualizer for solved
// multi-agent pathfinding instances.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/interact"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/state"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis/widgets"
)

// App is the visualization application.
type App struct {
	state    *state.State
	theme    *material.Theme
	board    *widgets.Board
	timeline *widgets.Timeline
	camera   *interact.Camera
}

// NewApp creates the application for a solved instance.
func NewApp(inst *core.Instance, sol *core.Solution) *App {
	st := state.NewState(inst, sol)
	camera := interact.NewCamera()

	return &App{
		state:    st,
		theme:    material.NewTheme(),
		board:    widgets.NewBoard(st, camera),
		timeline: widgets.NewTimeline(st),
		camera:   camera,
	}
}

// Run drives the window event loop until the window closes.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKey(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKey(e key.Event) {
	pb := a.state.Playback
	switch e.Name {
	case key.NameSpace:
		pb.TogglePlay()
	case key.NameLeftArrow:
		pb.StepBack()
	case key.NameRightArrow:
		pb.StepForward()
	case key.NameHome:
		pb.Reset()
	case key.NameUpArrow:
		pb.SetSpeed(pb.Speed * 2)
	case key.NameDownArrow:
		pb.SetSpeed(pb.Speed / 2)
	case "R":
		a.camera.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.board.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
