package state

import (
	"github.com/google/uuid"
)

// newID names a committed drawable. IDs only need to be unique within a
// process; they show up in logs and on the remote wire.
func newID() string {
	return uuid.NewString()
}
