package service

import "math"

// Marks per full-test question
const (
	MarksPerCorrect      = 1.0
	NegativeMarkPerWrong = 0.25
)

// Round2 rounds to two decimal places, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PercentScore is the flashcard/daily score: correct answers as a
// percentage of the total, rounded to two decimals. Zero totals score
// zero.
func PercentScore(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(correct) / float64(total) * 100)
}

// TestScore computes full-test marks with negative marking. Unanswered
// questions earn nothing and cost nothing.
func TestScore(correct, wrong int) (score, negative, final float64) {
	score = Round2(float64(correct) * MarksPerCorrect)
	negative = Round2(float64(wrong) * NegativeMarkPerWrong)
	final = Round2(score - negative)
	return score, negative, final
}

// ChapterScore is the per-chapter slice of a full-test result
type ChapterScore struct {
	Chapter    string  `json:"chapter"`
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Wrong      int     `json:"wrong"`
	Unanswered int     `json:"unanswered"`
	Score      float64 `json:"score"`
}
