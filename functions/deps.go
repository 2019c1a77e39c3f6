// Package functions contains the Lambda handlers behind every API Gateway
// endpoint. Each handler validates its required environment first, then the
// caller's input, delegates to the domain packages and formats the uniform
// response envelope.
package functions

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/vamoslabs/redesocial/cognito"
	"github.com/vamoslabs/redesocial/feed"
	"github.com/vamoslabs/redesocial/mediastore"
	"github.com/vamoslabs/redesocial/social"
	"github.com/vamoslabs/redesocial/store"
	"github.com/vamoslabs/redesocial/utils"
)

// Handler is the shape shared by every endpoint.
type Handler = func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Deps carries the collaborators shared by all handlers. One instance is
// built per cold start; handlers themselves stay stateless.
type Deps struct {
	Identity   cognito.IdentityService
	Users      store.UserStore
	Posts      store.PostStore
	Media      mediastore.MediaStore
	Follow     *social.FollowService
	Engagement *social.EngagementService
	Feed       *feed.Assembler
}

// NewDeps wires the real collaborators. Table names are read from the
// environment here but not validated: each handler gates on its own
// required envs before any collaborator call, so a misconfigured function
// answers 500 instead of failing at cold start.
func NewDeps(ctx context.Context) (*Deps, error) {
	identity, err := cognito.NewCognitoService(ctx)
	if err != nil {
		return nil, err
	}
	client, err := store.NewDynamoClient(ctx)
	if err != nil {
		return nil, err
	}
	media, err := mediastore.NewS3MediaStore()
	if err != nil {
		return nil, err
	}

	users := store.NewDynamoUserStore(client, os.Getenv(utils.EnvUserTable))
	posts := store.NewDynamoPostStore(client, os.Getenv(utils.EnvPostTable))
	return NewDepsWith(identity, users, posts, media), nil
}

// NewDepsWith wires the domain services over the given collaborators.
// Tests pass fakes here.
func NewDepsWith(identity cognito.IdentityService, users store.UserStore, posts store.PostStore, media mediastore.MediaStore) *Deps {
	return &Deps{
		Identity:   identity,
		Users:      users,
		Posts:      posts,
		Media:      media,
		Follow:     social.NewFollowService(users),
		Engagement: social.NewEngagementService(users, posts),
		Feed:       feed.NewAssembler(posts, media, feed.PageSizeFromEnv()),
	}
}
