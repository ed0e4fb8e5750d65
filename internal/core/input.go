package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionFlap               // Space, Up, W - flap impulse
	ActionToggleDebug        // D - debug overlay / collision toggle
	ActionRestart            // R - new episode after game over
	ActionQuit               // Q, Ctrl+C - exit
	ActionPause              // P, Esc - pause/unpause
)

// allActions lists every real action in mask bit order.
var allActions = []Action{ActionFlap, ActionToggleDebug, ActionRestart, ActionQuit, ActionPause}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionToggleDebug:
		return "ToggleDebug"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// bit returns the mask bit for a; ActionNone has none.
func (a Action) bit() uint8 {
	if a <= ActionNone || int(a) > len(allActions) {
		return 0
	}
	return 1 << uint(a-1)
}

// InputFrame is the set of actions triggered during one tick.
// It has set semantics: pressing flap twice in one tick is one flap.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// InputOf builds a frame holding the given actions.
func InputOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Mask packs the frame into a bitmask for compact storage.
func (f InputFrame) Mask() uint8 {
	var m uint8
	for a, on := range f.Actions {
		if on {
			m |= a.bit()
		}
	}
	return m
}

// InputFromMask is the inverse of Mask.
func InputFromMask(m uint8) InputFrame {
	f := NewInputFrame()
	for _, a := range allActions {
		if m&a.bit() != 0 {
			f.Set(a)
		}
	}
	return f
}
