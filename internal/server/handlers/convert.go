package handlers

import (
	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toAPIUsers(users []*models.User) []*api.User {
	out := make([]*api.User, 0, len(users))
	for _, u := range users {
		out = append(out, toAPIUser(u))
	}
	return out
}

func toAPIPost(p *models.Post) *api.Post {
	return &api.Post{
		ID:        p.ID,
		Message:   p.Message,
		Sender:    p.Sender,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toAPIPosts(posts []*models.Post) []*api.Post {
	out := make([]*api.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, toAPIPost(p))
	}
	return out
}

func toAPIComment(c *models.Comment) *api.Comment {
	return &api.Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		Sender:    c.Sender,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toAPIComments(comments []*models.Comment) []*api.Comment {
	out := make([]*api.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, toAPIComment(c))
	}
	return out
}
