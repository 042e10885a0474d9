package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username or email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrTokenAlreadyExists indicates that the same refresh token string is already stored
	ErrTokenAlreadyExists = errors.New("refresh token already exists")

	// ErrPostNotFound indicates that post was not found
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound indicates that comment was not found
	ErrCommentNotFound = errors.New("comment not found")
)
