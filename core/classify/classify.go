// Package classify implements the single rule every reconciliation
// operation shares: deciding whether a text cell represents completed
// translation work relative to its reference cell.
package classify

// Class is the classification of a text cell relative to a reference cell.
type Class int

const (
	// Untranslated means nobody has touched the row yet: the text is
	// empty or byte-for-byte equal to the reference.
	Untranslated Class = iota

	// Translated means a translator wrote something that differs from
	// the reference.
	Translated
)

// String implements fmt.Stringer.
func (c Class) String() string {
	if c == Translated {
		return "translated"
	}
	return "untranslated"
}

// Classify compares a current text cell against its reference cell.
//
// The only signal used is equality to the reference: text equal to some
// other source (a patch, a master file) is still Translated here, because
// only the reference tells us whether the row has been worked on. Pure and
// total over all string inputs.
func Classify(current, reference string) Class {
	if current == "" || current == reference {
		return Untranslated
	}
	return Translated
}
