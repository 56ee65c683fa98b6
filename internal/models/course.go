package models

import "time"

// Course is the owning aggregate for lectures, assignments and enrollments.
// InstructorName is a point-in-time snapshot taken at creation; it is not
// kept in sync with later user renames.
type Course struct {
	ID             string    `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	InstructorID   string    `db:"instructor_id" json:"instructor_id"`
	InstructorName string    `db:"instructor_name" json:"instructor_name"`
	ThumbnailURL   string    `db:"thumbnail_url" json:"thumbnail_url"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
