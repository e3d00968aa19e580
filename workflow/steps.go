package workflow

import (
	"fmt"

	"scancal/pkg/caseconv"
	"scancal/pkg/flow"
)

// runDetector performs the case-conversion analysis and records its three
// signals on the state. Analysis errors are captured in State.Err rather than
// raised, so the flow can route them to a failure outcome.
func runDetector(s State) *flow.Step[State] {
	d := caseconv.NewDetector(s.Cells, s.Script, s.ReportedCapsLock)

	upper, err := d.UpperCaseConversionDetected()
	if err != nil {
		s.Err = fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
		return flow.Start(s)
	}

	lower, err := d.LowerCaseConversionDetected()
	if err != nil {
		s.Err = fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
		return flow.Start(s)
	}

	indicated, err := d.CapsLockIndicator()
	if err != nil {
		s.Err = fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
		return flow.Start(s)
	}

	s.UpperConversion = upper
	s.LowerConversion = lower
	s.CapsLockIndicated = indicated
	return flow.Start(s)
}

func markFailed(s State) *flow.Step[State] {
	s.Outcome = OutcomeFailed
	return flow.Start(s)
}

func flagCapsLock(s State) *flow.Step[State] {
	s.Outcome = OutcomeCapsLock
	return flow.Start(s)
}

func flagPartialConversion(s State) *flow.Step[State] {
	s.Outcome = OutcomePartialConversion
	return flow.Start(s)
}

// finalizeOutcome resolves any state that no branch claimed as calibrated.
func finalizeOutcome(s State) *flow.Step[State] {
	if !s.resolved() {
		s.Outcome = OutcomeCalibrated
	}
	return flow.Start(s)
}

func keep(s State) *flow.Step[State] {
	return flow.Start(s)
}
