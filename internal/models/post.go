package models

import "time"

// Post is a message published by a user
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	ID        string    `json:"id" db:"id"`         // snowflake ID
	Message   string    `json:"message" db:"message"`
	Sender    string    `json:"sender" db:"sender"` // ID автора
}

// Comment is a reply attached to a post
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	Sender    string    `json:"sender" db:"sender"`
	Content   string    `json:"content" db:"content"`
}
