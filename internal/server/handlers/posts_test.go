package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iudanet/socialhub/internal/apperr"
	"github.com/iudanet/socialhub/internal/models"
	"github.com/iudanet/socialhub/pkg/api"
)

// fakePosts хранит посты в памяти
type fakePosts struct {
	posts  map[string]*models.Post
	order  []string
	nextID int
	err    error
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: make(map[string]*models.Post)}
}

func (f *fakePosts) Create(_ context.Context, actorID, message string) (*models.Post, error) {
	if message == "" {
		return nil, apperr.New(apperr.KindValidation, "message is required")
	}
	f.nextID++
	p := &models.Post{ID: strconv.Itoa(f.nextID), Sender: actorID, Message: message}
	f.posts[p.ID] = p
	f.order = append(f.order, p.ID)
	return p, nil
}

func (f *fakePosts) List(_ context.Context, sender string) ([]*models.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Post
	for _, id := range f.order {
		p, ok := f.posts[id]
		if !ok || (sender != "" && p.Sender != sender) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePosts) Get(_ context.Context, id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}
	return p, nil
}

func (f *fakePosts) Update(ctx context.Context, id, actorID, message string) (*models.Post, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Sender != actorID {
		return nil, apperr.New(apperr.KindForbidden, "you can only modify your own posts")
	}
	p.Message = message
	return p, nil
}

func (f *fakePosts) Delete(ctx context.Context, id, actorID string) error {
	p, err := f.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Sender != actorID {
		return apperr.New(apperr.KindForbidden, "you can only delete your own posts")
	}
	delete(f.posts, id)
	return nil
}

func newPostRouter(t *testing.T, posts PostService) http.Handler {
	h := NewPostHandler(zaptest.NewLogger(t), posts)
	r := chi.NewRouter()
	r.Post("/post", h.Create)
	r.Get("/post", h.List)
	r.Get("/post/{id}", h.Get)
	r.Put("/post/{id}", h.Update)
	r.Delete("/post/{id}", h.Delete)
	return r
}

func TestPostHandler_CreateAndGet(t *testing.T) {
	router := newPostRouter(t, newFakePosts())

	rec := doRequest(t, router, http.MethodPost, "/post", api.PostRequest{Message: "hello"}, testUserID)
	require.Equal(t, http.StatusCreated, rec.Code)

	post := decodeResponse[api.Post](t, rec)
	assert.Equal(t, "hello", post.Message)
	assert.Equal(t, testUserID, post.Sender)

	rec = doRequest(t, router, http.MethodGet, "/post/"+post.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, post.ID, decodeResponse[api.Post](t, rec).ID)

	rec = doRequest(t, router, http.MethodGet, "/post/404", nil, "")
	requireError(t, rec, http.StatusNotFound, "post not found")
}

func TestPostHandler_CreateValidation(t *testing.T) {
	router := newPostRouter(t, newFakePosts())

	rec := doRequest(t, router, http.MethodPost, "/post", api.PostRequest{}, testUserID)
	requireError(t, rec, http.StatusBadRequest, "message is required")

	rec = doRequest(t, router, http.MethodPost, "/post", api.PostRequest{Message: "hi"}, "")
	requireError(t, rec, http.StatusUnauthorized, "no token provided")
}

func TestPostHandler_ListFilter(t *testing.T) {
	posts := newFakePosts()
	router := newPostRouter(t, posts)

	doRequest(t, router, http.MethodPost, "/post", api.PostRequest{Message: "one"}, testUserID)
	doRequest(t, router, http.MethodPost, "/post", api.PostRequest{Message: "two"}, otherUserID)

	rec := doRequest(t, router, http.MethodGet, "/post", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeResponse[[]api.Post](t, rec), 2)

	rec = doRequest(t, router, http.MethodGet, "/post?userId="+otherUserID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	filtered := decodeResponse[[]api.Post](t, rec)
	require.Len(t, filtered, 1)
	assert.Equal(t, "two", filtered[0].Message)

	rec = doRequest(t, router, http.MethodGet, "/post?userId=nobody", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	posts.err = apperr.Internal(errors.New("connection reset"))
	rec = doRequest(t, router, http.MethodGet, "/post", nil, "")
	requireError(t, rec, http.StatusInternalServerError, "internal server error")
}

func TestPostHandler_UpdateAndDelete(t *testing.T) {
	router := newPostRouter(t, newFakePosts())

	rec := doRequest(t, router, http.MethodPost, "/post", api.PostRequest{Message: "draft"}, testUserID)
	post := decodeResponse[api.Post](t, rec)

	rec = doRequest(t, router, http.MethodPut, "/post/"+post.ID, api.PostRequest{Message: "stolen"}, otherUserID)
	requireError(t, rec, http.StatusForbidden, "you can only modify your own posts")

	rec = doRequest(t, router, http.MethodPut, "/post/"+post.ID, api.PostRequest{Message: "final"}, testUserID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "final", decodeResponse[api.Post](t, rec).Message)

	rec = doRequest(t, router, http.MethodDelete, "/post/"+post.ID, nil, otherUserID)
	requireError(t, rec, http.StatusForbidden, "")

	rec = doRequest(t, router, http.MethodDelete, "/post/"+post.ID, nil, testUserID)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse[api.DeletePostResponse](t, rec)
	assert.Equal(t, "post deleted successfully", resp.Message)
	assert.Equal(t, post.ID, resp.PostID)

	rec = doRequest(t, router, http.MethodDelete, "/post/"+post.ID, nil, testUserID)
	requireError(t, rec, http.StatusNotFound, "post not found")
}
