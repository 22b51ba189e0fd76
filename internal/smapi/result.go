package smapi

import (
	"fmt"
	"strings"
)

// Overall return codes reported by this package.
const (
	// OverallOK means the SMAPI call succeeded.
	OverallOK = 0
	// OverallSMAPIFailed means SMAPI ran and returned a non-zero rc.
	OverallSMAPIFailed = 1
	// OverallInvocationFailed means smcli could not be run at all.
	OverallInvocationFailed = 2
)

// Result is the structured outcome of one SMAPI call.
type Result struct {
	OverallRC int      `json:"overallRC" yaml:"overallRC"`
	RC        int      `json:"rc" yaml:"rc"`
	RS        int      `json:"rs" yaml:"rs"`
	Errno     int      `json:"errno" yaml:"errno"`
	Response  []string `json:"response,omitempty" yaml:"response,omitempty"`
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.OverallRC == OverallOK }

// SubmissionError is returned when SMAPI rejects a request.
type SubmissionError struct {
	API    string
	Result Result
}

func (e *SubmissionError) Error() string {
	msg := fmt.Sprintf("%s failed: overallRC %d, rc %d, rs %d", e.API, e.Result.OverallRC, e.Result.RC, e.Result.RS)
	if len(e.Result.Response) > 0 {
		msg += ": " + strings.Join(e.Result.Response, "; ")
	}
	return msg
}

// InvocationError is returned when the SMAPI client could not be run.
type InvocationError struct {
	API string
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("failed to invoke %s: %v", e.API, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// StagingError is returned when the directory entry could not be written
// to its staging file.
type StagingError struct {
	Err error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("failed to stage directory entry: %v", e.Err)
}

func (e *StagingError) Unwrap() error { return e.Err }
