package functions

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamoslabs/redesocial/utils"
)

func TestMeResolvesAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "user-a", "Alice", "alice@example.com")

	user, _ := f.users.Get(ctx, "user-a")
	user.Avatar = "avatar-key"
	require.NoError(t, f.users.Update(ctx, user))

	response, err := f.deps.Me(ctx, authedEvent("user-a"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	data := decodeBody(t, response).Data.(map[string]interface{})
	assert.Equal(t, "Alice", data["name"])
	assert.Equal(t, "https://fake-media/avatar-bucket/avatar-key", data["avatar"])
}

func TestMeUnknownCaller(t *testing.T) {
	f := newFixture(t)

	response, err := f.deps.Me(context.Background(), authedEvent("ghost"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Usuário não encontrado.", decodeBody(t, response).Message)
}

func TestUpdateUserChangesNameAndAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "user-a", "Alice", "alice@example.com")

	event := authedEvent("user-a")
	body, contentType := multipartBody(t, map[string]string{"name": "Alice Souza"},
		"nova.png", []byte("png-bytes"))
	event.Body = body
	event.IsBase64Encoded = true
	event.Headers["Content-Type"] = contentType

	response, err := f.deps.UpdateUser(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "Usuário alterado com sucesso!", decodeBody(t, response).Message)

	user, _ := f.users.Get(ctx, "user-a")
	assert.Equal(t, "Alice Souza", user.Name)
	assert.NotEmpty(t, user.Avatar)
}

func TestSearchUsersRequiresFilter(t *testing.T) {
	f := newFixture(t)

	event := authedEvent("user-a")
	event.PathParameters["filter"] = "ab"

	response, err := f.deps.SearchUsers(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Filtro não informado.", decodeBody(t, response).Message)
}

func TestSearchUsersRejectsBadCursor(t *testing.T) {
	f := newFixture(t)

	event := authedEvent("user-a")
	event.PathParameters["filter"] = "maria"
	event.QueryStringParameters["lastKey"] = "!!!"

	response, err := f.deps.SearchUsers(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Chave de paginação inválida.", decodeBody(t, response).Message)
}

func TestSearchUsersPaginatedEnvelope(t *testing.T) {
	f := newFixture(t)
	setEnv(t, utils.EnvSearchPageSize, "1")
	ctx := context.Background()
	seedUser(t, f, "id-1", "Maria Silva", "maria@example.com")
	seedUser(t, f, "id-2", "Mariana Souza", "mariana@example.com")

	event := authedEvent("user-a")
	event.PathParameters["filter"] = "Maria"

	response, err := f.deps.SearchUsers(ctx, event)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	page := decodePage(t, response)
	assert.Equal(t, float64(1), page["count"])
	require.NotEmpty(t, page["lastKey"])

	next := authedEvent("user-a")
	next.PathParameters["filter"] = "Maria"
	next.QueryStringParameters["lastKey"] = page["lastKey"].(string)

	response, err = f.deps.SearchUsers(ctx, next)
	require.NoError(t, err)
	nextPage := decodePage(t, response)
	assert.Equal(t, float64(1), nextPage["count"])
	assert.Nil(t, nextPage["lastKey"])
}

func TestGetUserByIdRequiresPathParameter(t *testing.T) {
	f := newFixture(t)

	response, err := f.deps.GetUserById(context.Background(), authedEvent("user-a"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Usuário não encontrado.", decodeBody(t, response).Message)
}
