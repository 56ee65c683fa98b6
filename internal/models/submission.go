package models

import "time"

// Submission records a student's hand-in for an assignment. At most one
// exists per (assignment, student) pair; resubmission mutates it in place.
type Submission struct {
	ID           string    `db:"id" json:"id"`
	AssignmentID string    `db:"assignment_id" json:"assignment_id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	StudentName  string    `db:"student_name" json:"student_name"`
	FileURL      string    `db:"file_url" json:"file_url"`
	SubmittedAt  time.Time `db:"submitted_at" json:"submitted_at"`
	Grade        string    `db:"grade" json:"grade"`
}
