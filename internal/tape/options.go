package tape

// Default chunk sizes for the three recording logs. Statement and Jacobian
// chunks are sized for long recordings; external functions are rare, so
// their log uses a much smaller chunk.
const (
	DefaultStatementChunkSize        = 1 << 21
	DefaultJacobianChunkSize         = 1 << 21
	DefaultExternalFunctionChunkSize = 1000
)

// Options configures a Tape at construction time. Start from
// DefaultOptions and override fields as needed:
//
//	opts := tape.DefaultOptions()
//	opts.JacobianChunkSize = 1 << 16
//	t := tape.NewWithOptions(opts)
type Options struct {
	// StatementChunkSize is the per-chunk capacity of the statement log.
	StatementChunkSize int

	// JacobianChunkSize is the per-chunk capacity of the Jacobian entry
	// log. It bounds the argument count of a single statement: an
	// expression with more active arguments than fit in one chunk cannot
	// be recorded.
	JacobianChunkSize int

	// ExternalFunctionChunkSize is the per-chunk capacity of the external
	// function log.
	ExternalFunctionChunkSize int

	// SkipZeroAdjoint skips the argument loop of statements whose drained
	// adjoint is exactly zero. The Jacobian cursor still advances, so the
	// replayed gradients are unchanged; only work is saved. The test is an
	// exact floating-point comparison: a value that cancelled to zero mid
	// computation is treated the same as one that was never seeded.
	SkipZeroAdjoint bool

	// SkipZeroCoefficients elides Jacobian entries whose coefficient is
	// exactly zero. A zero coefficient contributes nothing to any adjoint,
	// so eliding it only shortens the log.
	SkipZeroCoefficients bool

	// DropNonFiniteCoefficients elides Jacobian entries whose coefficient
	// is NaN or infinite instead of recording them. When false such
	// coefficients pass through and poison the adjoints they reach, which
	// makes the source of the non-finite value visible in the result.
	DropNonFiniteCoefficients bool
}

// DefaultOptions returns the configuration a plain New uses.
func DefaultOptions() Options {
	return Options{
		StatementChunkSize:        DefaultStatementChunkSize,
		JacobianChunkSize:         DefaultJacobianChunkSize,
		ExternalFunctionChunkSize: DefaultExternalFunctionChunkSize,
		SkipZeroAdjoint:           true,
		SkipZeroCoefficients:      true,
		DropNonFiniteCoefficients: false,
	}
}
