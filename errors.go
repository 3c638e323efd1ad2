package sky

import (
	"github.com/pkg/errors"

	"github.com/ChristopherRabotin/sky/vsop"
)

var (
	// ErrOutOfRange is reported when a value falls outside its valid domain, such as
	// a coordinate ratio beyond [-1, 1] or an unparseable angle.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrNotConverged is reported when an iterative solver hits its iteration cap.
	ErrNotConverged = errors.New("solver did not converge")
	// ErrNoData is reported when the coefficient tables a calculator needs are not
	// loaded. It is the error of the vsop package.
	ErrNoData = vsop.ErrNoData
	// ErrUnknownBody is returned when a body name cannot be resolved.
	ErrUnknownBody = errors.New("unknown body")
)
