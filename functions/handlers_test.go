package functions

import (
	"bytes"
	"context"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamoslabs/redesocial/model"
	"github.com/vamoslabs/redesocial/utils"
)

func TestToggleFollowHandlerRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "user-a", "Alice", "alice@example.com")
	seedUser(t, f, "user-b", "Bruno", "bruno@example.com")

	event := authedEvent("user-a")
	event.PathParameters["followId"] = "user-b"

	response, err := f.deps.ToggleFollow(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "Usuário seguido com sucesso", decodeBody(t, response).Message)

	response, err = f.deps.ToggleFollow(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, "Usuário deixado de seguir com sucesso", decodeBody(t, response).Message)

	actor, _ := f.users.Get(ctx, "user-a")
	target, _ := f.users.Get(ctx, "user-b")
	assert.Empty(t, actor.Following)
	assert.Equal(t, 0, target.Followers)
}

func TestToggleFollowHandlerRejectsSelf(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "user-a", "Alice", "alice@example.com")

	event := authedEvent("user-a")
	event.PathParameters["followId"] = "user-a"

	response, err := f.deps.ToggleFollow(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Usuário não pode seguir a si mesmo.", decodeBody(t, response).Message)
}

func TestPostCommentHandlerRejectsShortText(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "user-a", "Alice", "alice@example.com")
	seedPost(t, f, "post-1", "user-a", "2021-10-01T10:00:00Z")

	event := authedEvent("user-a")
	event.PathParameters["postId"] = "post-1"
	event.Body = `{"coment":"a"}`

	response, err := f.deps.PostComment(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Comentário não é válido.", decodeBody(t, response).Message)
}

func TestToggleLikeHandlerUnknownPost(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "user-a", "Alice", "alice@example.com")

	event := authedEvent("user-a")
	event.PathParameters["postId"] = "ghost"

	response, err := f.deps.ToggleLike(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Publicação não encontrada.", decodeBody(t, response).Message)
}

func TestCreatePostIncrementsCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "user-a", "Alice", "alice@example.com")

	event := authedEvent("user-a")
	body, contentType := multipartBody(t, map[string]string{
		"description": "minha primeira publicação",
	}, "foto.jpg", []byte("fake-jpeg-bytes"))
	event.Body = body
	event.IsBase64Encoded = true
	event.Headers["Content-Type"] = contentType

	response, err := f.deps.CreatePost(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "Publicação criada com sucesso!", decodeBody(t, response).Message)

	user, _ := f.users.Get(ctx, "user-a")
	assert.Equal(t, 1, user.Posts)
}

func TestCreatePostRejectsBadExtension(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "user-a", "Alice", "alice@example.com")

	event := authedEvent("user-a")
	body, contentType := multipartBody(t, map[string]string{
		"description": "minha primeira publicação",
	}, "script.exe", []byte("nope"))
	event.Body = body
	event.IsBase64Encoded = true
	event.Headers["Content-Type"] = contentType

	response, err := f.deps.CreatePost(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Extensão informada do arquivo não é válida", decodeBody(t, response).Message)
}

func TestFindFeedByUserIdEnvelope(t *testing.T) {
	f := newFixture(t)
	setEnv(t, utils.EnvFeedPageSize, "2")
	f.deps = NewDepsWith(f.identity, f.users, f.posts, f.media)

	ctx := context.Background()
	seedUser(t, f, "user-a", "Alice", "alice@example.com")
	seedPost(t, f, "post-1", "user-a", "2021-10-01T10:00:00Z")
	seedPost(t, f, "post-2", "user-a", "2021-10-02T10:00:00Z")
	seedPost(t, f, "post-3", "user-a", "2021-10-03T10:00:00Z")

	event := authedEvent("user-a")
	response, err := f.deps.FindFeedByUserId(ctx, event)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	page := decodePage(t, response)
	assert.Equal(t, float64(2), page["count"])
	require.NotEmpty(t, page["lastKey"])

	// Chain the opaque token back, unmodified.
	next := authedEvent("user-a")
	next.QueryStringParameters["lastKey"] = page["lastKey"].(string)
	response, err = f.deps.FindFeedByUserId(ctx, next)
	require.NoError(t, err)
	nextPage := decodePage(t, response)
	assert.Equal(t, float64(1), nextPage["count"])
	assert.Nil(t, nextPage["lastKey"])
}

func TestHomeFeedUnknownCaller(t *testing.T) {
	f := newFixture(t)

	response, err := f.deps.HomeFeed(context.Background(), authedEvent("ghost"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Usuário não encontrado.", decodeBody(t, response).Message)
}

func seedPost(t *testing.T, f *testFixture, id, userId, date string) {
	t.Helper()
	require.NoError(t, f.posts.Put(context.Background(), &model.Post{
		Id: id, UserId: userId, Date: date,
	}))
}

func decodePage(t *testing.T, response events.APIGatewayProxyResponse) map[string]interface{} {
	t.Helper()
	body := decodeBody(t, response)
	page, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	return page
}

// multipartBody builds a base64 encoded multipart payload, the shape API
// Gateway hands binary bodies to the function in.
func multipartBody(t *testing.T, values map[string]string, filename string, content []byte) (string, string) {
	t.Helper()
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)
	for name, value := range values {
		require.NoError(t, writer.WriteField(name, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return base64.StdEncoding.EncodeToString(buffer.Bytes()), writer.FormDataContentType()
}
