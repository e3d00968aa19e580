package caseconv

import (
	"fmt"
	"math"
	"unicode/utf8"

	"scancal/pkg/segment"
)

// Sample geometry over the fixed calibration barcode layout. Two windows of
// 26 cells each are read relative to the end of the payload: one laid out in
// lower case, one in upper case. A character observed in the opposite family
// counts as a deviation.
const (
	sampleSize      = 26
	lowerSampleBase = 55
	upperSampleBase = 28

	// conversionThreshold is the deviation fraction above which (strictly)
	// a sample indicates case conversion.
	conversionThreshold = 0.65
)

// Detector infers whether the host keyboard applied case conversion while a
// calibration barcode was scanned. It is constructed per classification call
// from the decoded segment cells, the active script, and the caps-lock state
// reported by the host, if any.
//
// Reads re-run the analysis each time; inputs are immutable, so repeated reads
// are idempotent and the recomputation is cheap by design of the layout.
type Detector struct {
	segment  []string
	script   Script
	capsLock *bool
}

// NewDetector creates a Detector. An empty script defaults to Latin. capsLock
// carries the host-reported caps-lock state: nil means unknown.
func NewDetector(cells []string, script Script, capsLock *bool) *Detector {
	if script == "" {
		script = ScriptLatin
	}
	return &Detector{
		segment:  cells,
		script:   script,
		capsLock: capsLock,
	}
}

// UpperCaseConversionDetected reports whether more than 65% of the sample
// positions laid out in lower case were observed in the script's upper-case
// family. Unknown scripts never indicate conversion.
func (d *Detector) UpperCaseConversionDetected() (bool, error) {
	if !Known(d.script) {
		return false, nil
	}
	upperHits, _, err := d.sample()
	if err != nil {
		return false, err
	}
	return exceedsThreshold(upperHits), nil
}

// LowerCaseConversionDetected reports whether more than 65% of the sample
// positions laid out in upper case were observed in the script's lower-case
// family. Unknown scripts never indicate conversion.
func (d *Detector) LowerCaseConversionDetected() (bool, error) {
	if !Known(d.script) {
		return false, nil
	}
	_, lowerHits, err := d.sample()
	if err != nil {
		return false, err
	}
	return exceedsThreshold(lowerHits), nil
}

// CapsLockIndicator reports whether caps lock is probably active. A state
// reported by the host environment takes precedence verbatim; otherwise the
// indicator is the conjunction of the two heuristic signals.
func (d *Detector) CapsLockIndicator() (bool, error) {
	if d.capsLock != nil {
		return *d.capsLock, nil
	}
	if !Known(d.script) {
		return false, nil
	}

	upperHits, lowerHits, err := d.sample()
	if err != nil {
		return false, err
	}
	return exceedsThreshold(upperHits) && exceedsThreshold(lowerHits), nil
}

// sample walks both 26-cell windows and counts opposite-family observations:
// upperHits counts expected-lower cells found in the upper family, lowerHits
// counts expected-upper cells found in the lower family.
func (d *Detector) sample() (upperHits, lowerHits int, err error) {
	families := scriptFamilies[d.script]

	adjustment := segment.LayoutLength - len(d.segment)
	lowerOffset := lowerSampleBase - adjustment
	upperOffset := upperSampleBase - adjustment

	for i := 1; i <= sampleSize; i++ {
		expectedLower, err := d.cell(i + lowerOffset)
		if err != nil {
			return 0, 0, err
		}
		if families.inUpper(expectedLower) {
			upperHits++
		}

		expectedUpper, err := d.cell(i + upperOffset)
		if err != nil {
			return 0, 0, err
		}
		if families.inLower(expectedUpper) {
			lowerHits++
		}
	}

	return upperHits, lowerHits, nil
}

func (d *Detector) cell(idx int) (rune, error) {
	if idx < 0 || idx >= len(d.segment) {
		return 0, fmt.Errorf(
			"%w: sample position %d outside %d cells",
			ErrMalformedSegment, idx, len(d.segment),
		)
	}

	cell := d.segment[idx]
	r, size := utf8.DecodeRuneInString(cell)
	if r == utf8.RuneError && size <= 1 {
		return 0, fmt.Errorf("%w: cell %d is not a valid character", ErrMalformedSegment, idx)
	}
	if size != len(cell) {
		return 0, fmt.Errorf("%w: cell %d holds more than one character", ErrMalformedSegment, idx)
	}

	return r, nil
}

// exceedsThreshold compares the deviation fraction at the threshold's own
// precision, so 17/26 rounds to 0.65 and stays below while 18/26 exceeds.
func exceedsThreshold(hits int) bool {
	fraction := math.Round(float64(hits)/sampleSize*100) / 100
	return fraction > conversionThreshold
}
