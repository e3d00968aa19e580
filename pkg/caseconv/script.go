// Package caseconv implements the case-conversion heuristic for barcode
// scanner calibration. Some host keyboards silently convert character case
// (Caps Lock, script switching layers) while a scan is typed in; the detector
// compares characters recovered from a decoded calibration barcode against the
// case families of the active writing script to infer whether that happened.
package caseconv

// Script identifies a writing system with defined upper- and lower-case
// code-point families. The set is closed: scripts outside it never indicate
// case conversion.
type Script string

// Supported calibration scripts.
const (
	ScriptLatin      Script = "Latin"
	ScriptCyrillic   Script = "Cyrillic"
	ScriptGreek      Script = "Greek"
	ScriptArmenian   Script = "Armenian"
	ScriptGeorgian   Script = "Georgian"
	ScriptAdlam      Script = "Adlam"
	ScriptWarangCiti Script = "WarangCiti"
	ScriptOsage      Script = "Osage"
	ScriptGlagolitic Script = "Glagolitic"
	ScriptDeseret    Script = "Deseret"
	ScriptHebrew     Script = "Hebrew"
	ScriptCherokee   Script = "Cherokee"
	ScriptCoptic     Script = "Coptic"
)

type span struct {
	lo, hi rune
}

func (s span) contains(r rune) bool {
	return r >= s.lo && r <= s.hi
}

// caseFamilies binds a script to its case membership rules. Most scripts use
// one contiguous range per family. Cherokee's lower family spans two disjoint
// blocks. Coptic interleaves both families in a single range, split by code
// point parity: even code points are capitals, odd are smalls.
type caseFamilies struct {
	upper      []span
	lower      []span
	interleave *span
}

func (f caseFamilies) inUpper(r rune) bool {
	if f.interleave != nil {
		return f.interleave.contains(r) && isEven(r)
	}
	for _, s := range f.upper {
		if s.contains(r) {
			return true
		}
	}
	return false
}

func (f caseFamilies) inLower(r rune) bool {
	if f.interleave != nil {
		return f.interleave.contains(r) && !isEven(r)
	}
	for _, s := range f.lower {
		if s.contains(r) {
			return true
		}
	}
	return false
}

func isEven(r rune) bool {
	return r%2 == 0
}

var latinCapitals = span{0x0041, 0x005A}

var scriptFamilies = map[Script]caseFamilies{
	ScriptLatin: {
		upper: []span{latinCapitals},
		lower: []span{{0x0061, 0x007A}},
	},
	ScriptCyrillic: {
		upper: []span{{0x0410, 0x042F}},
		lower: []span{{0x0430, 0x044F}},
	},
	ScriptGreek: {
		upper: []span{{0x0391, 0x03A9}},
		lower: []span{{0x03B1, 0x03C9}},
	},
	ScriptArmenian: {
		upper: []span{{0x0531, 0x0556}},
		lower: []span{{0x0561, 0x0586}},
	},
	// Old Georgian alphabets: Asomtavruli capitals, Nuskhuri smalls.
	ScriptGeorgian: {
		upper: []span{{0x10A0, 0x10C5}},
		lower: []span{{0x2D00, 0x2D25}},
	},
	ScriptAdlam: {
		upper: []span{{0x1E900, 0x1E921}},
		lower: []span{{0x1E922, 0x1E943}},
	},
	ScriptWarangCiti: {
		upper: []span{{0x118A0, 0x118BF}},
		lower: []span{{0x118C0, 0x118DF}},
	},
	ScriptOsage: {
		upper: []span{{0x104B0, 0x104D3}},
		lower: []span{{0x104D8, 0x104FB}},
	},
	ScriptGlagolitic: {
		upper: []span{{0x2C00, 0x2C2F}},
		lower: []span{{0x2C30, 0x2C5F}},
	},
	ScriptDeseret: {
		upper: []span{{0x10400, 0x10427}},
		lower: []span{{0x10428, 0x1044F}},
	},
	// Hebrew keyboards switch to Latin capitals under Caps Lock, so the
	// "upper" family is the Latin capital range, not a Hebrew block.
	ScriptHebrew: {
		upper: []span{latinCapitals},
		lower: []span{{0x05D0, 0x05EA}},
	},
	ScriptCherokee: {
		upper: []span{{0x13A0, 0x13F5}},
		lower: []span{{0xAB70, 0xABBF}, {0x13F8, 0x13FD}},
	},
	ScriptCoptic: {
		interleave: &span{0x2C80, 0x2CE3},
	},
}

// Known reports whether script is part of the fixed calibration set.
func Known(script Script) bool {
	_, ok := scriptFamilies[script]
	return ok
}
