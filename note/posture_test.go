package note

import "testing"

func TestPostureIsValid(t *testing.T) {
	tests := []struct {
		posture Posture
		want    bool
	}{
		{PostureGreen, true},
		{PostureAmber, true},
		{PostureRed, true},
		{Posture(""), false},
		{Posture("purple"), false},
		{Posture("GREEN"), false},
	}

	for _, tt := range tests {
		if got := tt.posture.IsValid(); got != tt.want {
			t.Errorf("Posture(%q).IsValid() = %v, want %v", tt.posture, got, tt.want)
		}
	}
}

func TestPostureRank(t *testing.T) {
	tests := []struct {
		posture Posture
		want    int
	}{
		{PostureGreen, 0},
		{PostureAmber, 1},
		{PostureRed, 2},
		{Posture("purple"), -1},
	}

	for _, tt := range tests {
		if got := tt.posture.Rank(); got != tt.want {
			t.Errorf("Posture(%q).Rank() = %d, want %d", tt.posture, got, tt.want)
		}
	}
}

func TestParsePosture(t *testing.T) {
	for _, p := range AllPostures() {
		got, err := ParsePosture(p.String())
		if err != nil {
			t.Errorf("ParsePosture(%q) returned error: %v", p, err)
		}
		if got != p {
			t.Errorf("ParsePosture(%q) = %q, want %q", p, got, p)
		}
	}

	if _, err := ParsePosture("purple"); err == nil {
		t.Error("ParsePosture(\"purple\") should return error")
	}
}

func TestUncertaintyTypeIsValid(t *testing.T) {
	tests := []struct {
		typ  UncertaintyType
		want bool
	}{
		{UncertaintyEpistemic, true},
		{UncertaintyAleatory, true},
		{UncertaintyType(""), false},
		{UncertaintyType("ontological"), false},
	}

	for _, tt := range tests {
		if got := tt.typ.IsValid(); got != tt.want {
			t.Errorf("UncertaintyType(%q).IsValid() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestControlClassIsValid(t *testing.T) {
	for _, c := range AllControlClasses() {
		if !c.IsValid() {
			t.Errorf("ControlClass(%q).IsValid() = false, want true", c)
		}
	}
	if ControlClass("mitigate").IsValid() {
		t.Error("ControlClass(\"mitigate\").IsValid() = true, want false")
	}
}

func TestParseControlClass(t *testing.T) {
	got, err := ParseControlClass("detect")
	if err != nil {
		t.Fatalf("ParseControlClass(\"detect\") returned error: %v", err)
	}
	if got != ControlDetect {
		t.Errorf("ParseControlClass(\"detect\") = %q, want %q", got, ControlDetect)
	}

	if _, err := ParseControlClass("mitigate"); err == nil {
		t.Error("ParseControlClass(\"mitigate\") should return error")
	}
}
