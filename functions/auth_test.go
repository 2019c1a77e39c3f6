package functions

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamoslabs/redesocial/utils"
)

func TestRegisterInvalidEmailTouchesNoCollaborator(t *testing.T) {
	f := newFixture(t)

	response, err := f.deps.Register(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"name":"Maria Silva","email":"not-an-email","password":"Passw0rd123"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	body := decodeBody(t, response)
	assert.Equal(t, "Email inválido", body.Message)
	assert.Equal(t, utils.ErrorKindInvalidInput, body.Code)
	assert.Empty(t, f.identity.Calls)
}

func TestRegisterInvalidPasswordAndName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	response, _ := f.deps.Register(ctx, events.APIGatewayProxyRequest{
		Body: `{"name":"Maria","email":"maria@example.com","password":"short"}`,
	})
	assert.Equal(t, "Senha inválida", decodeBody(t, response).Message)

	response, _ = f.deps.Register(ctx, events.APIGatewayProxyRequest{
		Body: `{"name":" m ","email":"maria@example.com","password":"Passw0rd123"}`,
	})
	assert.Equal(t, "Nome inválido", decodeBody(t, response).Message)

	assert.Empty(t, f.identity.Calls)
}

func TestRegisterMissingEnvShortCircuits(t *testing.T) {
	f := newFixture(t)
	unsetEnv(t, utils.EnvUserPoolId)

	response, err := f.deps.Register(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"name":"Maria Silva","email":"maria@example.com","password":"Passw0rd123"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.Equal(t, utils.ErrorKindConfigMissing, decodeBody(t, response).Code)
	assert.Empty(t, f.identity.Calls)
}

func TestRegisterSuccess(t *testing.T) {
	f := newFixture(t)

	response, err := f.deps.Register(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"name":"Maria Silva","email":"maria@example.com","password":"Passw0rd123"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "Usuário cadastrado com sucesso!", decodeBody(t, response).Message)
	assert.Equal(t, []string{"SignUp"}, f.identity.Calls)
}

func TestConfirmEmailCreatesUserRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.identity.Subs["maria@example.com"] = "sub-maria"

	response, err := f.deps.ConfirmEmail(ctx, events.APIGatewayProxyRequest{
		Body: `{"name":"Maria Silva","email":"maria@example.com","verificationCode":"123456"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	user, err := f.users.Get(ctx, "sub-maria")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Maria Silva", user.Name)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.Equal(t, 0, user.Followers)
	assert.Equal(t, 0, user.Posts)
	assert.Empty(t, user.Following)
}

func TestLoginRequiresBothFields(t *testing.T) {
	f := newFixture(t)

	response, err := f.deps.Login(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"login":"maria@example.com"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "Parâmetros de entrada inválidos", decodeBody(t, response).Message)
	assert.Empty(t, f.identity.Calls)
}

func TestLoginReturnsTokenSet(t *testing.T) {
	f := newFixture(t)

	response, err := f.deps.Login(context.Background(), events.APIGatewayProxyRequest{
		Body: `{"login":"maria@example.com","password":"Passw0rd123"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, response.StatusCode)
	body := decodeBody(t, response)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["accessToken"])
	assert.Equal(t, []string{"Login"}, f.identity.Calls)
}
