package models

import "time"

// Option identifies one of the four answer options of a question
type Option string

// Answer options
const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// IsValid reports whether the option is one of A/B/C/D
func (o Option) IsValid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Question categories
const (
	CategoryTechnical      = "technical"
	CategoryCurrentAffairs = "current_affairs"
	CategoryCaseLaw        = "case_law"
)

// ValidCategory reports whether s is a known question category
func ValidCategory(s string) bool {
	switch s {
	case CategoryTechnical, CategoryCurrentAffairs, CategoryCaseLaw:
		return true
	}
	return false
}

// Question is an immutable entry in the master question bank.
// Questions are created only by bulk import and never mutated.
type Question struct {
	ID            int64
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption Option
	Explanation   string
	Chapter       string
	Category      string
	Difficulty    int
	CreatedAt     time.Time
}

// OptionText returns the text of the given option, or "" for an invalid option
func (q *Question) OptionText(o Option) string {
	switch o {
	case OptionA:
		return q.OptionA
	case OptionB:
		return q.OptionB
	case OptionC:
		return q.OptionC
	case OptionD:
		return q.OptionD
	}
	return ""
}
