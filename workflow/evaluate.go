package workflow

import (
	"scancal/pkg/flow"
)

// Evaluate runs the calibration decision flow over the given state: detector
// analysis first, then outcome routing. Each branch predicate observes the
// materialized state after analysis, and only the selected consequence runs.
// The returned error mirrors State.Err for callers that prefer error flow.
func Evaluate(state State) (State, error) {
	final := flow.Continue(state).
		Do(runDetector).
		If(State.failed).
		Then(markFailed).
		Else(keep).
		ElseIf(capsLockIndicated).
		Then(flagCapsLock).
		Else(keep).
		ElseIf(partialConversion).
		Then(flagPartialConversion).
		Else(keep).
		Do(finalizeOutcome).
		End()

	return final, final.Err
}

func capsLockIndicated(s State) bool {
	return !s.resolved() && s.CapsLockIndicated
}

// partialConversion holds when exactly one of the two heuristics fired.
func partialConversion(s State) bool {
	return !s.resolved() && s.UpperConversion != s.LowerConversion
}
