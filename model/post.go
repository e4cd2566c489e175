package model

import "time"

type Post struct {
	Id            int64     `json:"id"`
	Author        *User     `json:"author"`
	Group         *Group    `json:"group,omitempty"` // nil for ungrouped posts
	Text          string    `json:"text"`
	ImageBlobName string    `json:"imageBlobName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CanEdit reports whether user may modify the post. Only the author may.
func (p *Post) CanEdit(user *User) bool {
	return user != nil && p.Author != nil && user.Id == p.Author.Id
}

type Comment struct {
	Id        int64     `json:"id"`
	PostId    int64     `json:"-"`
	Author    *User     `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
