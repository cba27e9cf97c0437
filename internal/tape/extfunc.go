package tape

import "github.com/revad-ml/revad/internal/chunklog"

// Func is an external function: an opaque callback spliced into the
// recording, invoked when the backward replay reaches the point where it
// was pushed. The callback may read and seed gradients on the tape; data is
// whatever was handed to PushExternalFunction.
type Func func(t *Tape, data any)

// extRecord pins an external function to the recording by snapshotting the
// Jacobian and statement cursors at push time. Replay propagates adjoints
// down to exactly that point before invoking fn.
type extRecord struct {
	fn      Func
	data    any
	release func(any)

	jac  chunklog.Mark
	stmt chunklog.Mark
}

// PushExternalFunction records fn at the current end of the tape. The tape
// takes ownership of data: when a reset discards the record, release is
// called with it (a nil release skips the cleanup). During replay the
// record is invoked but stays recorded.
func (t *Tape) PushExternalFunction(fn Func, data any, release func(any)) {
	if fn == nil {
		panic("tape: external function must not be nil")
	}
	t.extfuncs.Reserve(1)
	t.extfuncs.Append(extRecord{
		fn:      fn,
		data:    data,
		release: release,
		jac:     t.jacobians.Mark(),
		stmt:    t.statements.Mark(),
	})
}
