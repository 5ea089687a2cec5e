// Package guard refuses to provision hosts where the pipeline would be unsafe
// or redundant.
package guard

import (
	"fmt"

	"github.com/conn-castle/allsky-automount/internal/messages"
)

// RootUID is the privileged account's user id.
const RootUID = 0

// PreconditionError reports a host or invocation the tool refuses to run on.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// Check returns a PreconditionError when uid is root or when the
// incompatible-platform marker exists. The root check runs first.
// markerPath is only used in the error message.
func Check(uid int, markerPath string, markerExists bool) error {
	if uid == RootUID {
		return &PreconditionError{Reason: messages.GuardRunAsRoot}
	}
	if markerExists {
		return &PreconditionError{Reason: fmt.Sprintf(messages.GuardMarkerPresentFmt, markerPath)}
	}
	return nil
}
