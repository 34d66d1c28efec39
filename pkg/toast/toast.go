package toast

import "time"

// Variant selects how a toast is styled.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

const (
	// DefaultDuration is how long a toast stays visible when no duration is given.
	DefaultDuration = 5 * time.Second

	// DefaultGraceDelay is the time between dismissal and removal, matching
	// the exit animation of the rendered toast.
	DefaultGraceDelay = 300 * time.Millisecond

	// Infinite disables auto-dismiss. Any negative duration has the same effect.
	Infinite time.Duration = -1
)

// Action is an optional call-to-action rendered inside a toast.
type Action struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Toast is a snapshot of a tracked notification.
type Toast struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Variant     Variant       `json:"variant"`
	Action      *Action       `json:"action,omitempty"`
	Duration    time.Duration `json:"duration"`
	Visible     bool          `json:"visible"`
	State       State         `json:"state"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Persistent reports whether the toast never auto-dismisses.
func (t Toast) Persistent() bool {
	return t.Duration < 0
}

// Input is a partial toast. Zero-valued fields are treated as unset and are
// not merged into an existing toast.
type Input struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	Action      *Action
	Duration    time.Duration
}

// merge copies the set fields of in onto t.
func (t *Toast) merge(in Input) {
	if in.Title != "" {
		t.Title = in.Title
	}
	if in.Description != "" {
		t.Description = in.Description
	}
	if in.Variant != "" {
		t.Variant = in.Variant
	}
	if in.Action != nil {
		a := *in.Action
		t.Action = &a
	}
	if in.Duration != 0 {
		t.Duration = in.Duration
	}
}

// clone returns a copy that shares no pointers with t.
func (t Toast) clone() Toast {
	if t.Action != nil {
		a := *t.Action
		t.Action = &a
	}
	return t
}
