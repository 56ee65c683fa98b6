package models

import "time"

// Enrollment links one student to one course. At most one exists per
// (student, course) pair, enforced by a unique constraint in the store.
type Enrollment struct {
	ID         string    `db:"id" json:"id"`
	StudentID  string    `db:"student_id" json:"student_id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
}
