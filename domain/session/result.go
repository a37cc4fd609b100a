// Package session holds completed practice-session records.
package session

import (
	"time"

	"github.com/google/uuid"

	"studyplan/domain/timer"
)

// Result is one finished practice session.
type Result struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	Mode            timer.Mode `json:"mode" db:"mode"`
	TotalQuestions  int        `json:"total_questions" db:"total_questions"`
	Answered        int        `json:"answered" db:"answered"`
	Correct         int        `json:"correct" db:"correct"`
	DurationSeconds int        `json:"duration_seconds" db:"duration_seconds"`
	TakenAt         time.Time  `json:"taken_at" db:"taken_at"`
}

// Score returns percent correct over all questions, 0 for an empty session.
func (r *Result) Score() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.TotalQuestions) * 100
}

// StudyMinutes returns the session length in whole minutes, rounding up so a
// short session still counts toward the daily goal.
func (r *Result) StudyMinutes() int {
	if r.DurationSeconds <= 0 {
		return 0
	}
	return (r.DurationSeconds + 59) / 60
}
