package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/planets/render"
)

type action int

const (
	actionZoomIn action = iota
	actionZoomOut
	actionSpeedUp
	actionSlowDown
	actionTogglePause
)

// inputSnapshot is the part of one frame's input the simulator reacts to.
type inputSnapshot struct {
	wheelY      float64
	justPressed []ebiten.Key

	// Set while the debug overlay owns the pointer or the keyboard.
	mouseCaptured    bool
	keyboardCaptured bool
}

var keyActions = map[ebiten.Key]action{
	ebiten.KeyPeriod: actionSpeedUp,
	ebiten.KeyComma:  actionSlowDown,
	ebiten.KeyP:      actionTogglePause,
}

func readInput(mouseCaptured, keyboardCaptured bool) inputSnapshot {
	_, wheelY := ebiten.Wheel()
	return inputSnapshot{
		wheelY:           wheelY,
		justPressed:      inpututil.AppendJustPressedKeys(nil),
		mouseCaptured:    mouseCaptured,
		keyboardCaptured: keyboardCaptured,
	}
}

// actions translates raw input into simulator commands, in a fixed order: zoom first,
// then keys in the order they were reported.
func (in inputSnapshot) actions() []action {
	var actions []action
	if !in.mouseCaptured {
		switch {
		case in.wheelY > 0:
			actions = append(actions, actionZoomIn)
		case in.wheelY < 0:
			actions = append(actions, actionZoomOut)
		}
	}
	if in.keyboardCaptured {
		return actions
	}
	for _, key := range in.justPressed {
		if a, ok := keyActions[key]; ok {
			actions = append(actions, a)
		}
	}
	return actions
}

type timeControl interface {
	SpeedUp()
	SlowDown()
	TogglePause()
}

func apply(actions []action, sim timeControl, camera *render.Camera) {
	for _, a := range actions {
		switch a {
		case actionZoomIn:
			camera.ZoomIn()
		case actionZoomOut:
			camera.ZoomOut()
		case actionSpeedUp:
			sim.SpeedUp()
		case actionSlowDown:
			sim.SlowDown()
		case actionTogglePause:
			sim.TogglePause()
		}
	}
}
