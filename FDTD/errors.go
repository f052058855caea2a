package FDTD

import (
	"fmt"

	"github.com/notargets/gofdtd/FDTD/materials"
)

// ErrConfiguration is shared with the materials package so one errors.Is check
// covers every validation failure of the model.
var ErrConfiguration = materials.ErrConfiguration

/*
ResourceError reports an allocation that cannot be satisfied. The allocation
methods raise it with panic since a model that does not fit must abort the run.
*/
type ResourceError struct {
	What   string
	Bytes  uint64
	Limit  uint64
	Reason string
}

func (e *ResourceError) Error() string {
	if e.Limit != 0 {
		return fmt.Sprintf("fdtd: cannot allocate %s: %s (need %d bytes, limit %d)", e.What, e.Reason, e.Bytes, e.Limit)
	}
	return fmt.Sprintf("fdtd: cannot allocate %s: %s", e.What, e.Reason)
}
