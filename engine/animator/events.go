package animator

import (
	"github.com/pkg/errors"
)

// Event is an edge-triggered playback command coming from a key press or a remote client.
type Event int

const (
	// EventAdvanceFrame calls AdvanceFrame.
	EventAdvanceFrame Event = iota

	// EventStepBackFrame calls StepBackFrame.
	EventStepBackFrame

	// EventToggle calls Toggle.
	EventToggle

	// EventResetInspection calls ResetInspection.
	EventResetInspection
)

// String returns the command name used on the wire.
func (e Event) String() string {
	switch e {
	case EventAdvanceFrame:
		return "advance"
	case EventStepBackFrame:
		return "back"
	case EventToggle:
		return "toggle"
	case EventResetInspection:
		return "reset"
	default:
		return "unknown"
	}
}

// ParseEvent maps a command name to an Event.
//
// Parameters:
//   - name: "advance", "back", "toggle" or "reset"
//
// Returns:
//   - Event: the event
//   - error: an error for unknown names
func ParseEvent(name string) (Event, error) {
	switch name {
	case "advance":
		return EventAdvanceFrame, nil
	case "back":
		return EventStepBackFrame, nil
	case "toggle":
		return EventToggle, nil
	case "reset":
		return EventResetInspection, nil
	}
	return 0, errors.Errorf("animator: unknown event %q", name)
}

// Apply delivers e to a. It must be called from the goroutine that ticks a.
//
// Parameters:
//   - a: the animator
//   - e: the event
func Apply(a Animator, e Event) {
	switch e {
	case EventAdvanceFrame:
		a.AdvanceFrame()
	case EventStepBackFrame:
		a.StepBackFrame()
	case EventToggle:
		a.Toggle()
	case EventResetInspection:
		a.ResetInspection()
	}
}

// String returns the configuration name of the policy.
func (p PausePolicy) String() string {
	if p == PauseFreeze {
		return "freeze"
	}
	return "accumulate"
}

// ParsePausePolicy maps a configuration name to a PausePolicy.
//
// Parameters:
//   - name: "accumulate" or "freeze"; empty selects PauseAccumulate
//
// Returns:
//   - PausePolicy: the policy
//   - error: an error for unknown names
func ParsePausePolicy(name string) (PausePolicy, error) {
	switch name {
	case "", "accumulate":
		return PauseAccumulate, nil
	case "freeze":
		return PauseFreeze, nil
	}
	return PauseAccumulate, errors.Errorf("animator: unknown pause policy %q", name)
}

// String returns the configuration name of the policy.
func (p WrapPolicy) String() string {
	if p == WrapLoop {
		return "loop"
	}
	return "single"
}

// ParseWrapPolicy maps a configuration name to a WrapPolicy.
//
// Parameters:
//   - name: "single" or "loop"; empty selects WrapSingle
//
// Returns:
//   - WrapPolicy: the policy
//   - error: an error for unknown names
func ParseWrapPolicy(name string) (WrapPolicy, error) {
	switch name {
	case "", "single":
		return WrapSingle, nil
	case "loop":
		return WrapLoop, nil
	}
	return WrapSingle, errors.Errorf("animator: unknown wrap policy %q", name)
}
