package models

import "time"

// Assignment belongs to exactly one course. DueDate is stored exactly as
// supplied; past dates are accepted.
type Assignment struct {
	ID          string    `db:"id" json:"id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	DueDate     string    `db:"due_date" json:"due_date"`
	FileURL     string    `db:"file_url" json:"file_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// StudentAssignment annotates an assignment with the requesting student's own
// submission state. Other students' submissions never influence it. For
// instructors and admins the annotation fields stay nil and drop out of the
// JSON shape, leaving the plain assignment.
type StudentAssignment struct {
	Assignment
	IsSubmitted   *bool   `json:"isSubmitted,omitempty"`
	SubmissionURL *string `json:"submission_url,omitempty"`
	Grade         *string `json:"grade,omitempty"`
}
