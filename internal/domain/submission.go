package domain

import "time"

// MaxSubmissionLen is the submission text limit in characters.
const MaxSubmissionLen = 280

// Submission is one free-text interpretation of the current word.
// Word records which word the interpretation was made against, so a
// submission can never be misattributed across a rollover.
type Submission struct {
	ID        string    `json:"id"`
	Word      string    `json:"word"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}
