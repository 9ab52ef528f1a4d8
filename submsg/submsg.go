// Package submsg resolves the repeated-section grammar inside a GRIB2
// message into its constituent submessages. The grammar and its error set
// are a direct transcription of original_source/src/parser.rs's
// get_submessages: a "group" of sections 4 through 7, optionally preceded
// by a new section 3 (and, less often, a fresh section 2), with section 2
// and section 3 values carried forward as defaults across repeated groups
// when a later group omits them.
package submsg

import (
	"github.com/nimbusgrib/grib2/griberr"
	"github.com/nimbusgrib/grib2/scan"
)

// NoSection2 is the sentinel S2 value for a submessage with no section 2 in
// scope: no local use section has appeared in the message up to and
// including its group. A group that omits section 2 after an earlier one
// appeared inherits that earlier section's index instead.
const NoSection2 = -1

// Submessage is a resolved section 4-7 group together with the section 2
// and section 3 in effect for it, held as indices into the descriptor slice
// passed to Resolve. A Submessage is only valid as long as that slice does.
type Submessage struct {
	S2, S3, S4, S5, S6, S7 int
}

// Resolve walks descriptors — the section 1 through 7 descriptors of a
// single message, in source order — and returns every submessage it
// contains, applying the section-2/section-3 default-carry-forward grammar.
//
// It returns griberr.WrongIteration if a section number appears where the
// grammar does not allow it, griberr.NoGridDefinition if a section 4 (or
// the implicit end of the message) is reached with no section 3 in scope,
// and griberr.IterationEndedUnexpectedly if the descriptor sequence ends
// in the middle of a group the grammar expects to be complete.
func Resolve(descriptors []scan.Descriptor) ([]Submessage, error) {
	pos := 0

	check := func(expected uint8) (int, error) {
		if pos >= len(descriptors) {
			return 0, griberr.IterationEndedUnexpectedly
		}
		idx := pos
		if descriptors[idx].Number != expected {
			return 0, &griberr.WrongIteration{Index: idx}
		}
		pos++
		return idx, nil
	}

	if _, err := check(1); err != nil {
		return nil, err
	}

	sect2Default := NoSection2
	sect3Default := -1
	var out []Submessage

	for {
		if pos >= len(descriptors) {
			// The descriptor slice never includes section 8 (scan already
			// consumed and validated the "7777" sentinel); reaching the end
			// here is the grammar's normal termination, equivalent to the
			// original parser observing section 8 as the final entry.
			if sect3Default == -1 {
				return nil, &griberr.NoGridDefinition{Index: len(descriptors)}
			}
			return out, nil
		}

		switch descriptors[pos].Number {
		case 2:
			idx2 := pos
			pos++
			idx3, err := check(3)
			if err != nil {
				return nil, err
			}
			idx4, err := check(4)
			if err != nil {
				return nil, err
			}
			idx5, err := check(5)
			if err != nil {
				return nil, err
			}
			idx6, err := check(6)
			if err != nil {
				return nil, err
			}
			idx7, err := check(7)
			if err != nil {
				return nil, err
			}
			sect2Default, sect3Default = idx2, idx3
			out = append(out, Submessage{S2: idx2, S3: idx3, S4: idx4, S5: idx5, S6: idx6, S7: idx7})

		case 3:
			idx3 := pos
			pos++
			idx4, err := check(4)
			if err != nil {
				return nil, err
			}
			idx5, err := check(5)
			if err != nil {
				return nil, err
			}
			idx6, err := check(6)
			if err != nil {
				return nil, err
			}
			idx7, err := check(7)
			if err != nil {
				return nil, err
			}
			sect3Default = idx3
			out = append(out, Submessage{S2: sect2Default, S3: idx3, S4: idx4, S5: idx5, S6: idx6, S7: idx7})

		case 4:
			if sect3Default == -1 {
				return nil, &griberr.NoGridDefinition{Index: pos}
			}
			idx4 := pos
			pos++
			idx5, err := check(5)
			if err != nil {
				return nil, err
			}
			idx6, err := check(6)
			if err != nil {
				return nil, err
			}
			idx7, err := check(7)
			if err != nil {
				return nil, err
			}
			out = append(out, Submessage{S2: sect2Default, S3: sect3Default, S4: idx4, S5: idx5, S6: idx6, S7: idx7})

		default:
			return nil, &griberr.WrongIteration{Index: pos}
		}
	}
}
