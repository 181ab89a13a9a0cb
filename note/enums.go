package note

import "fmt"

// UncertaintyType distinguishes the two recognized sources of uncertainty
// in a note's ledger.
type UncertaintyType string

const (
	// UncertaintyEpistemic is reducible uncertainty from limited knowledge,
	// such as an under-sampled input distribution.
	UncertaintyEpistemic UncertaintyType = "epistemic"

	// UncertaintyAleatory is irreducible uncertainty from inherent
	// randomness in the process under assessment.
	UncertaintyAleatory UncertaintyType = "aleatory"
)

// IsValid returns true if the uncertainty type is a recognized value.
func (u UncertaintyType) IsValid() bool {
	switch u {
	case UncertaintyEpistemic, UncertaintyAleatory:
		return true
	default:
		return false
	}
}

// String returns the string representation of the uncertainty type.
func (u UncertaintyType) String() string {
	return string(u)
}

// ControlClass categorizes a control by the phase of a hazard it addresses.
type ControlClass string

const (
	// ControlPrevent covers controls that stop a hazard from occurring.
	ControlPrevent ControlClass = "prevent"

	// ControlDetect covers controls that surface a hazard once it occurs.
	ControlDetect ControlClass = "detect"

	// ControlContain covers controls that limit the blast radius of a
	// hazard in progress.
	ControlContain ControlClass = "contain"

	// ControlRecover covers controls that restore service after a hazard.
	ControlRecover ControlClass = "recover"
)

// IsValid returns true if the control class is a recognized value.
func (c ControlClass) IsValid() bool {
	switch c {
	case ControlPrevent, ControlDetect, ControlContain, ControlRecover:
		return true
	default:
		return false
	}
}

// String returns the string representation of the control class.
func (c ControlClass) String() string {
	return string(c)
}

// ParseControlClass parses a string into a ControlClass value.
// Returns an error if the string is not a valid control class.
func ParseControlClass(s string) (ControlClass, error) {
	c := ControlClass(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid control class: %q", s)
	}
	return c, nil
}

// AllControlClasses returns all valid control classes in hazard-phase order.
func AllControlClasses() []ControlClass {
	return []ControlClass{ControlPrevent, ControlDetect, ControlContain, ControlRecover}
}
