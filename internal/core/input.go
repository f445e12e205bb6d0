package core

import "strings"

// Action is a player intent. Key bindings live in the platform layer and
// games only ever see actions.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionSelect // pick the tile under the cursor
	ActionCancel // drop the pending selection
	ActionRestart
	ActionQuit
	ActionPause
	ActionBack

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionSelect:  "Select",
	ActionCancel:  "Cancel",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionBack:    "Back",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the set of actions collected during one platform tick.
// It is a value type; copies do not share state.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set adds a to the frame. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear drops every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// String lists the triggered actions, e.g. "[Up Select]".
func (f InputFrame) String() string {
	var names []string
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}
