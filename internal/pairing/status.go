package pairing

// Status classifies the outcome of a pairing solve, mirroring the wire
// vocabulary consumed by downstream tooling.
type Status string

const (
	StatusOptimal      Status = "OPTIMAL"
	StatusFeasible     Status = "FEASIBLE"
	StatusModelSat     Status = "MODEL_SAT"
	StatusInfeasible   Status = "INFEASIBLE"
	StatusModelInvalid Status = "MODEL_INVALID"
	StatusUnknown      Status = "UNKNOWN"
)

// Success reports whether the solve produced a usable assignment.
func (s Status) Success() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Fail reports whether the solve is terminal without a result.
func (s Status) Fail() bool {
	return s == StatusInfeasible || s == StatusModelInvalid || s == StatusUnknown
}
