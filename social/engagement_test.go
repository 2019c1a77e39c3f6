package social

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamoslabs/redesocial/model"
	"github.com/vamoslabs/redesocial/store"
	"github.com/vamoslabs/redesocial/utils"
)

func newEngagementFixture(t *testing.T) (*store.FakePostStore, *EngagementService) {
	users := store.NewFakeUserStore()
	posts := store.NewFakePostStore()
	ctx := context.Background()
	require.NoError(t, users.Put(ctx, model.NewUser("user-a", "Alice", "alice@example.com")))
	require.NoError(t, posts.Put(ctx, &model.Post{
		Id:       "post-1",
		UserId:   "user-a",
		Date:     "2021-10-01T10:00:00Z",
		Likes:    []string{},
		Comments: []model.Comment{},
	}))
	return posts, NewEngagementService(users, posts)
}

func TestToggleLikeTwiceRestoresMembership(t *testing.T) {
	posts, service := newEngagementFixture(t)
	ctx := context.Background()

	liked, err := service.ToggleLike(ctx, "post-1", "user-a")
	require.NoError(t, err)
	assert.True(t, liked)

	post, _ := posts.Get(ctx, "post-1")
	assert.Equal(t, []string{"user-a"}, post.Likes)

	liked, err = service.ToggleLike(ctx, "post-1", "user-a")
	require.NoError(t, err)
	assert.False(t, liked)

	post, _ = posts.Get(ctx, "post-1")
	assert.Empty(t, post.Likes)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	_, service := newEngagementFixture(t)

	_, err := service.ToggleLike(context.Background(), "ghost", "user-a")
	assert.True(t, utils.IsKind(err, utils.ErrorKindNotFound))
}

func TestToggleLikeUnknownUser(t *testing.T) {
	_, service := newEngagementFixture(t)

	_, err := service.ToggleLike(context.Background(), "post-1", "ghost")
	assert.True(t, utils.IsKind(err, utils.ErrorKindNotFound))
}

func TestAddCommentRejectsShortText(t *testing.T) {
	posts, service := newEngagementFixture(t)
	ctx := context.Background()

	for _, text := range []string{"", "a", "  a  ", " \t "} {
		err := service.AddComment(ctx, "post-1", "user-a", text)
		assert.True(t, utils.IsKind(err, utils.ErrorKindInvalidInput), "text %q", text)
	}

	post, _ := posts.Get(ctx, "post-1")
	assert.Empty(t, post.Comments)
}

func TestAddCommentAppendsWithServerTimestamp(t *testing.T) {
	posts, service := newEngagementFixture(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, service.AddComment(ctx, "post-1", "user-a", "  boa foto!  "))

	post, _ := posts.Get(ctx, "post-1")
	require.Len(t, post.Comments, 1)
	comment := post.Comments[0]
	assert.Equal(t, "user-a", comment.UserId)
	// Display name is denormalized at comment time.
	assert.Equal(t, "Alice", comment.UserName)
	assert.Equal(t, "boa foto!", comment.Coment)

	stamp, err := time.Parse(time.RFC3339, comment.Date)
	require.NoError(t, err)
	assert.True(t, stamp.After(before))
}

func TestAddCommentIsAppendOnly(t *testing.T) {
	posts, service := newEngagementFixture(t)
	ctx := context.Background()

	require.NoError(t, service.AddComment(ctx, "post-1", "user-a", "primeiro"))
	require.NoError(t, service.AddComment(ctx, "post-1", "user-a", "segundo"))

	post, _ := posts.Get(ctx, "post-1")
	require.Len(t, post.Comments, 2)
	assert.Equal(t, "primeiro", post.Comments[0].Coment)
	assert.Equal(t, "segundo", post.Comments[1].Coment)
}
