package api

import "time"

// User публичное представление пользователя; пароль и его хеш не передаются
type User struct {
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
}

// CreateUserRequest тело POST /users
type CreateUserRequest = RegisterRequest

// UpdateUserRequest тело PUT /users/{id}; отсутствующие поля не меняются
type UpdateUserRequest struct {
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// DeleteUserResponse ответ DELETE /users/{id}
type DeleteUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// Post представляет пост
type Post struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
}

// PostRequest тело POST /post и PUT /post/{id}
type PostRequest struct {
	Message string `json:"message"`
}

// DeletePostResponse ответ DELETE /post/{id}
type DeletePostResponse struct {
	Message string `json:"message"`
	PostID  string `json:"postId"`
}

// Comment представляет комментарий
type Comment struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
}

// CreateCommentRequest тело POST /comments
type CreateCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

// UpdateCommentRequest тело PUT /comments/{id}
type UpdateCommentRequest struct {
	Content string `json:"content"`
}
