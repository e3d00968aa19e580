// Package workflow implements the calibration decision workflow for scancal.
// It threads an immutable State through the flow engine to turn the raw
// signals recovered from a decoded calibration barcode into a calibration
// outcome.
package workflow

import (
	"scancal/pkg/caseconv"
)

// Outcome is the terminal result of a calibration evaluation.
type Outcome string

// Calibration outcomes.
const (
	// OutcomeCalibrated indicates the scan came through without case
	// interference; the device is usable as configured.
	OutcomeCalibrated Outcome = "calibrated"
	// OutcomeCapsLock indicates caps-lock conversion: the operator should
	// disable caps lock on the host and rescan.
	OutcomeCapsLock Outcome = "caps_lock"
	// OutcomePartialConversion indicates exactly one of the two case
	// heuristics fired, pointing at a partial keyboard-layer conversion.
	OutcomePartialConversion Outcome = "partial_conversion"
	// OutcomeFailed indicates the analysis itself could not run; see
	// State.Err for the cause.
	OutcomeFailed Outcome = "failed"
)

// State is the environment value threaded through the calibration flow.
// Steps replace it rather than mutate it; the zero values of the result
// fields mean "not yet determined".
type State struct {
	Cells            []string
	Script           caseconv.Script
	ReportedCapsLock *bool

	UpperConversion   bool
	LowerConversion   bool
	CapsLockIndicated bool

	Outcome Outcome
	Err     error
}

// FlowEnvironment marks State as a flow environment.
func (State) FlowEnvironment() {}

func (s State) failed() bool {
	return s.Err != nil
}

func (s State) resolved() bool {
	return s.Outcome != ""
}
