package worker

import "github.com/pkg/errors"

// Per-job failure causes. Each carries its own diagnostic so the job record
// tells the user what actually went wrong; none of them are retried.
var (
	// ErrInputTooLarge: the mounted view could not be created and the input
	// is over the buffered-copy ceiling, so copying it into the workspace
	// would exhaust the residency budget.
	ErrInputTooLarge = errors.New("input too large to stage: mount failed and file exceeds the buffered-copy ceiling")

	// ErrOutputUnreadable: the engine reported success but the produced
	// output could not be read back from the workspace.
	ErrOutputUnreadable = errors.New("burned output unreadable")
)
