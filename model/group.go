package model

import "time"

// Group is a topic a post can be filed under. The slug is the group's URL
// identity and must be unique.
type Group struct {
	Id          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
