package engine

import (
	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/scene"
)

// Action is something a key press asks the engine to do.
type Action int

const (
	ActionStepBackFrame Action = iota
	ActionAdvanceFrame
	ActionToggleAnimation
	ActionResetInspection
	ActionToggleGrid
	ActionFrameObjects
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
)

var actionNames = map[Action]string{
	ActionStepBackFrame:   "step-back",
	ActionAdvanceFrame:    "advance",
	ActionToggleAnimation: "toggle",
	ActionResetInspection: "reset",
	ActionToggleGrid:      "grid",
	ActionFrameObjects:    "frame",
	ActionOrbitLeft:       "orbit-left",
	ActionOrbitRight:      "orbit-right",
	ActionOrbitUp:         "orbit-up",
	ActionOrbitDown:       "orbit-down",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// DefaultKeyBindings returns the viewer's key map: B/N step through keyframes, V toggles playback,
// R returns to the bind pose, G toggles the grid, Space frames the objects and WASD orbits.
//
// Returns:
//   - map[uint32]Action: a fresh key map the caller may modify
func DefaultKeyBindings() map[uint32]Action {
	return map[uint32]Action{
		common.KeyB:     ActionStepBackFrame,
		common.KeyN:     ActionAdvanceFrame,
		common.KeyV:     ActionToggleAnimation,
		common.KeyR:     ActionResetInspection,
		common.KeyG:     ActionToggleGrid,
		common.KeySpace: ActionFrameObjects,
		common.KeyA:     ActionOrbitLeft,
		common.KeyD:     ActionOrbitRight,
		common.KeyW:     ActionOrbitUp,
		common.KeyS:     ActionOrbitDown,
	}
}

// apply performs the action on s. It must run on the tick goroutine.
func (a Action) apply(s scene.Scene) {
	switch a {
	case ActionStepBackFrame:
		s.Dispatch(animator.EventStepBackFrame)
	case ActionAdvanceFrame:
		s.Dispatch(animator.EventAdvanceFrame)
	case ActionToggleAnimation:
		s.Dispatch(animator.EventToggle)
	case ActionResetInspection:
		s.Dispatch(animator.EventResetInspection)
	case ActionToggleGrid:
		s.SetGridEnabled(!s.GridEnabled())
	case ActionFrameObjects:
		s.FrameObjects()
	default:
		ctrl := s.Camera().Controller()
		if ctrl == nil {
			return
		}
		switch a {
		case ActionOrbitLeft:
			ctrl.OrbitLeft()
		case ActionOrbitRight:
			ctrl.OrbitRight()
		case ActionOrbitUp:
			ctrl.OrbitUp()
		case ActionOrbitDown:
			ctrl.OrbitDown()
		}
	}
}
