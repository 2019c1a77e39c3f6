package functions

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
	"github.com/vamoslabs/redesocial/cognito"
	"github.com/vamoslabs/redesocial/mediastore"
	"github.com/vamoslabs/redesocial/model"
	"github.com/vamoslabs/redesocial/store"
	"github.com/vamoslabs/redesocial/utils"
)

// testFixture bundles the fakes behind a Deps, with every required env set.
type testFixture struct {
	identity *cognito.FakeIdentityService
	users    *store.FakeUserStore
	posts    *store.FakePostStore
	media    *mediastore.FakeMediaStore
	deps     *Deps
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()
	setEnv(t, utils.EnvUserPoolId, "pool-id")
	setEnv(t, utils.EnvUserPoolClientId, "client-id")
	setEnv(t, utils.EnvUserTable, "user-table")
	setEnv(t, utils.EnvPostTable, "post-table")
	setEnv(t, utils.EnvAvatarBucket, "avatar-bucket")
	setEnv(t, utils.EnvPostBucket, "post-bucket")

	identity := cognito.NewFakeIdentityService()
	users := store.NewFakeUserStore()
	posts := store.NewFakePostStore()
	media := mediastore.NewFakeMediaStore()
	return &testFixture{
		identity: identity,
		users:    users,
		posts:    posts,
		media:    media,
		deps:     NewDepsWith(identity, users, posts, media),
	}
}

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	previous, existed := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if existed {
			os.Setenv(key, previous)
		} else {
			os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	previous, existed := os.LookupEnv(key)
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() {
		if existed {
			os.Setenv(key, previous)
		}
	})
}

// authedEvent builds a proxy event carrying the resolved caller sub, the
// shape the Cognito authorizer produces.
func authedEvent(sub string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{
		RequestContext: events.APIGatewayProxyRequestContext{
			Authorizer: map[string]interface{}{
				"claims": map[string]interface{}{"sub": sub},
			},
		},
		PathParameters:        map[string]string{},
		QueryStringParameters: map[string]string{},
		Headers:               map[string]string{},
	}
}

// decodeBody parses the uniform response envelope.
func decodeBody(t *testing.T, response events.APIGatewayProxyResponse) utils.DefaultResponseBody {
	t.Helper()
	body := utils.DefaultResponseBody{}
	require.NoError(t, json.Unmarshal([]byte(response.Body), &body))
	return body
}

func seedUser(t *testing.T, f *testFixture, id, name, email string) {
	t.Helper()
	require.NoError(t, f.users.Put(context.Background(), model.NewUser(id, name, email)))
}
