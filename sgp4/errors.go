package sgp4

import "github.com/pkg/errors"

// Error is a propagation failure code. The numbering follows the usual SGP4
// return codes.
type Error int

// Propagation failures.
const (
	ErrEccentricity          Error = 1
	ErrMeanMotion            Error = 2
	ErrPerturbedEccentricity Error = 3
	ErrSemiLatusRectum       Error = 4
	ErrDecayed               Error = 6
)

func (e Error) Error() string {
	return ErrorString(int(e))
}

// ErrorString returns the message of a propagation code, 0 being success.
func ErrorString(code int) string {
	switch code {
	case 0:
		return "Success"
	case 1, 3:
		return "Eccentricity >= 1.0 or < -0.001"
	case 2:
		return "Mean motion less than 0.0"
	case 4:
		return "Semi-latus rectum < 0.0"
	case 6:
		return "Satellite has decayed"
	default:
		return "Unknown error"
	}
}

var (
	// ErrFormat is returned for a TLE whose columns cannot be read.
	ErrFormat = errors.New("malformed TLE")
	// ErrChecksum is returned when the last column of a TLE line does not match the
	// checksum of the line.
	ErrChecksum = errors.New("TLE checksum mismatch")
)
