package models

import "time"

// Lecture belongs to exactly one course. Position is instructor-supplied;
// duplicates and gaps are permitted.
type Lecture struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Title     string    `db:"title" json:"title"`
	VideoURL  string    `db:"video_url" json:"video_url"`
	Duration  int       `db:"duration" json:"duration"`
	Position  int       `db:"position" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
