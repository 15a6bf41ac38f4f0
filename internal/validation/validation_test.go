package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "user@example.com", false},
		{"valid with plus", "user+tag@example.co.uk", false},
		{"empty", "", true},
		{"missing domain", "user@", true},
		{"missing at", "userexample.com", true},
		{"whitespace only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "longenough", false},
		{"exactly 8", "12345678", false},
		{"too short", "short", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOption(t *testing.T) {
	tests := []struct {
		name    string
		option  string
		wantErr bool
	}{
		{"uppercase A", "A", false},
		{"lowercase d", "d", false},
		{"empty", "", true},
		{"out of range", "E", true},
		{"word", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOption(tt.option)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOption(%q) error = %v, wantErr %v", tt.option, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDifficulty(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		wantErr    bool
	}{
		{"min", 1, false},
		{"max", 5, false},
		{"zero", 0, true},
		{"too high", 6, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDifficulty(tt.difficulty)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDifficulty(%d) error = %v, wantErr %v", tt.difficulty, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantErr  bool
	}{
		{"technical", "technical", false},
		{"current affairs", "current_affairs", false},
		{"case law", "case_law", false},
		{"unknown", "trivia", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategory(tt.category)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCategory(%q) error = %v, wantErr %v", tt.category, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "email", Message: "email is required"}
	if err.Error() != "email: email is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}
