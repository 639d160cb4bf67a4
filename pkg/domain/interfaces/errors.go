package interfaces

import "errors"

// ErrNotFound is wrapped by every repository backend when the requested
// entity does not exist, so that callers can detect a miss without knowing
// which backend they talk to.
var ErrNotFound = errors.New("not found")
