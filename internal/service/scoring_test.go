package service

import "testing"

func TestPercentScore(t *testing.T) {
	tests := []struct {
		name    string
		correct int
		total   int
		want    float64
	}{
		{"all correct", 20, 20, 100},
		{"half", 5, 10, 50},
		{"repeating decimal", 1, 3, 33.33},
		{"two thirds", 2, 3, 66.67},
		{"zero total", 0, 0, 0},
		{"none correct", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentScore(tt.correct, tt.total); got != tt.want {
				t.Errorf("PercentScore(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
			}
		})
	}
}

func TestTestScore(t *testing.T) {
	tests := []struct {
		name         string
		correct      int
		wrong        int
		wantScore    float64
		wantNegative float64
		wantFinal    float64
	}{
		{"mixed with unanswered", 6, 3, 6.0, 0.75, 5.25},
		{"all correct", 100, 0, 100, 0, 100},
		{"all wrong", 0, 100, 0, 25, -25},
		{"nothing answered", 0, 0, 0, 0, 0},
		{"single wrong", 0, 1, 0, 0.25, -0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, negative, final := TestScore(tt.correct, tt.wrong)
			if score != tt.wantScore || negative != tt.wantNegative || final != tt.wantFinal {
				t.Errorf("TestScore(%d, %d) = (%v, %v, %v), want (%v, %v, %v)",
					tt.correct, tt.wrong, score, negative, final,
					tt.wantScore, tt.wantNegative, tt.wantFinal)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{5.25, 5.25},
		{0.125, 0.13},
		{-0.125, -0.13},
		{100.0 / 3, 33.33},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
