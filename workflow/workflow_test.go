package workflow_test

import (
	"errors"
	"testing"

	"scancal/pkg/caseconv"
	"scancal/pkg/segment"
	"scancal/workflow"
)

// full layout windows: expected-lower cells at 56..81, expected-upper at 29..54.
func calibrationCells(lowerWindow, upperWindow rune) []string {
	cells := make([]string, segment.LayoutLength)
	for i := range cells {
		cells[i] = "0"
	}
	for i := 0; i < 26; i++ {
		cells[56+i] = string(lowerWindow)
		cells[29+i] = string(upperWindow)
	}
	return cells
}

func boolPtr(v bool) *bool {
	return &v
}

func TestEvaluateCalibrated(t *testing.T) {
	state, err := workflow.Evaluate(workflow.State{
		Cells:  calibrationCells('a', 'A'),
		Script: caseconv.ScriptLatin,
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if state.Outcome != workflow.OutcomeCalibrated {
		t.Errorf("outcome = %q, want %q", state.Outcome, workflow.OutcomeCalibrated)
	}
	if state.UpperConversion || state.LowerConversion || state.CapsLockIndicated {
		t.Errorf("clean scan raised signals: %+v", state)
	}
}

func TestEvaluateCapsLock(t *testing.T) {
	state, err := workflow.Evaluate(workflow.State{
		Cells:  calibrationCells('A', 'a'),
		Script: caseconv.ScriptLatin,
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if state.Outcome != workflow.OutcomeCapsLock {
		t.Errorf("outcome = %q, want %q", state.Outcome, workflow.OutcomeCapsLock)
	}
	if !state.UpperConversion || !state.LowerConversion || !state.CapsLockIndicated {
		t.Errorf("expected all signals set: %+v", state)
	}
}

func TestEvaluatePartialConversion(t *testing.T) {
	// Only the expected-lower window comes back converted.
	state, err := workflow.Evaluate(workflow.State{
		Cells:  calibrationCells('A', 'A'),
		Script: caseconv.ScriptLatin,
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if state.Outcome != workflow.OutcomePartialConversion {
		t.Errorf("outcome = %q, want %q", state.Outcome, workflow.OutcomePartialConversion)
	}
}

func TestEvaluateReportedOverride(t *testing.T) {
	// Fully converted scan, but the host reports caps lock off: the
	// indicator is overridden, and with both heuristics agreeing there is
	// no partial conversion either.
	state, err := workflow.Evaluate(workflow.State{
		Cells:            calibrationCells('A', 'a'),
		Script:           caseconv.ScriptLatin,
		ReportedCapsLock: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if state.CapsLockIndicated {
		t.Error("reported state should override the indicator")
	}
	if !state.UpperConversion || !state.LowerConversion {
		t.Errorf("heuristic signals should survive the override: %+v", state)
	}
	if state.Outcome != workflow.OutcomeCalibrated {
		t.Errorf("outcome = %q, want %q", state.Outcome, workflow.OutcomeCalibrated)
	}
}

func TestEvaluateMalformedSegment(t *testing.T) {
	cells := make([]string, 10)
	for i := range cells {
		cells[i] = "0"
	}

	state, err := workflow.Evaluate(workflow.State{
		Cells:  cells,
		Script: caseconv.ScriptLatin,
	})

	if state.Outcome != workflow.OutcomeFailed {
		t.Errorf("outcome = %q, want %q", state.Outcome, workflow.OutcomeFailed)
	}
	if !errors.Is(err, workflow.ErrAnalysisFailed) {
		t.Errorf("error = %v, want ErrAnalysisFailed", err)
	}
	if !errors.Is(err, caseconv.ErrMalformedSegment) {
		t.Errorf("error = %v, want wrapped ErrMalformedSegment", err)
	}
}

func TestEvaluateUnknownScript(t *testing.T) {
	state, err := workflow.Evaluate(workflow.State{
		Cells:  calibrationCells('A', 'a'),
		Script: caseconv.Script("Klingon"),
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if state.Outcome != workflow.OutcomeCalibrated {
		t.Errorf("outcome = %q, want %q", state.Outcome, workflow.OutcomeCalibrated)
	}
}
