package workflow

import "errors"

// Sentinel errors for workflow evaluation.
var (
	ErrAnalysisFailed = errors.New("calibration analysis failed")
)
