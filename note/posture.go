package note

import "fmt"

// Posture is the qualitative release-risk label derived from triage inputs.
type Posture string

const (
	// PostureGreen indicates release risk is acceptable without conditions.
	PostureGreen Posture = "green"

	// PostureAmber indicates release is conditional on active controls and
	// follow-up investigation.
	PostureAmber Posture = "amber"

	// PostureRed indicates release must be blocked until the hazard is
	// re-triaged.
	PostureRed Posture = "red"
)

// postureRanks orders postures by severity for comparisons and folds.
var postureRanks = map[Posture]int{
	PostureGreen: 0,
	PostureAmber: 1,
	PostureRed:   2,
}

// IsValid returns true if the posture is a recognized value.
func (p Posture) IsValid() bool {
	switch p {
	case PostureGreen, PostureAmber, PostureRed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the posture.
func (p Posture) String() string {
	return string(p)
}

// Rank returns the severity rank of the posture, green lowest and red
// highest. Returns -1 for invalid postures.
func (p Posture) Rank() int {
	if r, ok := postureRanks[p]; ok {
		return r
	}
	return -1
}

// ParsePosture parses a string into a Posture value.
// Returns an error if the string is not a valid posture.
func ParsePosture(s string) (Posture, error) {
	p := Posture(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid posture: %q", s)
	}
	return p, nil
}

// AllPostures returns all valid postures in order from green to red.
func AllPostures() []Posture {
	return []Posture{PostureGreen, PostureAmber, PostureRed}
}
