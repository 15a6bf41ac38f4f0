package models

import "time"

// DateFormat is the calendar-date key for daily tests (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// DailyTest is the shared question set for one calendar date.
// At most one exists per date; all users attempt the same set.
type DailyTest struct {
	ID        int64
	TestDate  string
	CreatedAt time.Time
}

// DailyTestQuestion is one ordered slot in a daily test's question set
type DailyTestQuestion struct {
	ID          int64
	DailyTestID int64
	QuestionID  int64
	Position    int
}
