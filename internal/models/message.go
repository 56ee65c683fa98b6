package models

import "time"

// Message is an append-only chat entry for a course. Sender fields are
// snapshots of the actor at post time. Seq breaks timestamp ties in
// insertion order.
type Message struct {
	ID         string    `db:"id" json:"id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	SenderID   string    `db:"sender_id" json:"sender_id"`
	SenderName string    `db:"sender_name" json:"sender_name"`
	SenderRole Role      `db:"sender_role" json:"sender_role"`
	Body       string    `db:"message" json:"message"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
	Seq        int64     `db:"seq" json:"-"`
}
