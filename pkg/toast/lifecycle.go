package toast

// State is the lifecycle position of a tracked toast.
type State string

const (
	// StateActive toasts are visible and may auto-dismiss.
	StateActive State = "active"
	// StateDismissing toasts are hidden and waiting out the grace delay.
	StateDismissing State = "dismissing"
	// StateRemoved is terminal; removed toasts are no longer tracked.
	StateRemoved State = "removed"
)

type event string

const (
	eventNotify  event = "notify"
	eventUpdate  event = "update"
	eventDismiss event = "dismiss"
	eventRemove  event = "remove"
)

// transitions is keyed by [from][event]. Anything missing is rejected.
var transitions = map[State]map[event]State{
	StateActive: {
		eventNotify:  StateActive,
		eventUpdate:  StateActive,
		eventDismiss: StateDismissing,
	},
	StateDismissing: {
		eventNotify: StateActive,
		eventUpdate: StateDismissing,
		eventRemove: StateRemoved,
	},
}

// next returns the state reached from s on ev, and false if ev is not allowed.
func (s State) next(ev event) (State, bool) {
	to, ok := transitions[s][ev]
	return to, ok
}
