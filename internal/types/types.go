// Package types defines the result record shared by the derivation
// engine and every presentation surface.
package types

import "strings"

// Method labels reported in a Result.
const (
	MethodSubstitution  = "Integration by Substitution"
	MethodBasicPatterns = "Basic Standard Patterns"
)

// Result is the full record of one derivation: the problem statement,
// the technique label, the ordered justification steps, the answer,
// the differentiation back-check and run metadata. Failures carry an
// ErrorMessage instead of an answer; partially populated narration
// fields are kept as far as the derivation progressed.
type Result struct {
	Given        string   `json:"given"`
	Method       string   `json:"method"`
	Steps        []string `json:"steps"`
	FinalAnswer  string   `json:"final_answer"`
	Verification string   `json:"verification"`
	Summary      Summary  `json:"summary"`
	IsSuccess    bool     `json:"is_success"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// Summary holds display-form run metadata. It is populated only on
// success.
type Summary struct {
	Runtime    string `json:"Runtime,omitempty"`
	Iterations string `json:"Iterations,omitempty"`
	Timestamp  string `json:"Timestamp,omitempty"`
}

// ClockTime returns the time-of-day portion of the timestamp, which is
// what compact displays show.
func (s Summary) ClockTime() string {
	if i := strings.IndexByte(s.Timestamp, ' '); i >= 0 {
		return s.Timestamp[i+1:]
	}
	return s.Timestamp
}
