// Package segment converts decoded calibration payloads into the fixed
// character layout consumed by calibration analysis. The decoding layer hands
// over the payload as plain text; analysis operates on an ordered sequence of
// single-character cells whose positions follow the calibration barcode layout.
package segment

import "strings"

// LayoutLength is the nominal cell count of a full calibration barcode payload.
const LayoutLength = 82

// Cells splits a decoded payload into single-character cells, one per code
// point. Trailing carriage return and line feed characters appended by scanner
// keyboard wedges are stripped; everything else is preserved positionally.
func Cells(payload string) []string {
	payload = strings.TrimRight(payload, "\r\n")

	cells := make([]string, 0, LayoutLength)
	for _, r := range payload {
		cells = append(cells, string(r))
	}
	return cells
}

// Complete reports whether cells covers the full calibration layout.
func Complete(cells []string) bool {
	return len(cells) >= LayoutLength
}
