package models

import "testing"

func TestOptionIsValid(t *testing.T) {
	tests := []struct {
		name   string
		option Option
		want   bool
	}{
		{name: "option A", option: OptionA, want: true},
		{name: "option D", option: OptionD, want: true},
		{name: "lowercase", option: Option("a"), want: false},
		{name: "empty", option: Option(""), want: false},
		{name: "out of range", option: Option("E"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.option.IsValid(); got != tt.want {
				t.Errorf("Option(%q).IsValid() = %v, want %v", tt.option, got, tt.want)
			}
		})
	}
}

func TestQuestionOptionText(t *testing.T) {
	q := Question{
		OptionA: "aspirin",
		OptionB: "paracetamol",
		OptionC: "ibuprofen",
		OptionD: "codeine",
	}

	tests := []struct {
		option Option
		want   string
	}{
		{OptionA, "aspirin"},
		{OptionB, "paracetamol"},
		{OptionC, "ibuprofen"},
		{OptionD, "codeine"},
		{Option("X"), ""},
	}

	for _, tt := range tests {
		if got := q.OptionText(tt.option); got != tt.want {
			t.Errorf("OptionText(%q) = %q, want %q", tt.option, got, tt.want)
		}
	}
}

func TestValidCategory(t *testing.T) {
	valid := []string{CategoryTechnical, CategoryCurrentAffairs, CategoryCaseLaw}
	for _, c := range valid {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false, want true", c)
		}
	}

	invalid := []string{"", "Technical", "general", "current affairs"}
	for _, c := range invalid {
		if ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = true, want false", c)
		}
	}
}

func TestAttemptModeIsValid(t *testing.T) {
	for _, m := range []AttemptMode{ModeFlashcard, ModeFullTest, ModeDaily} {
		if !m.IsValid() {
			t.Errorf("AttemptMode(%q).IsValid() = false, want true", m)
		}
	}
	if AttemptMode("exam").IsValid() {
		t.Error("AttemptMode(\"exam\").IsValid() = true, want false")
	}
}
