package toast

import "errors"

// ErrRegistryClosed is reported by Registry.Check once the registry is closed.
var ErrRegistryClosed = errors.New("toast registry is closed")
