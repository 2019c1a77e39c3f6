package functions

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/vamoslabs/redesocial/utils"
)

// FindFeedByUserId returns one page of a single author's timeline, newest
// first. Without a userId path parameter it serves the caller's own
// timeline.
func (d *Deps) FindFeedByUserId(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvUserTable, utils.EnvPostTable, utils.EnvPostBucket)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	userId := event.PathParameters["userId"]
	if userId == "" {
		userId = utils.GetUserIdFromEvent(event)
	}
	if userId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	fallback := "Erro ao buscar o feed de publicações! Tente novamente ou contacte o administrador do sistema."
	user, err := d.Users.Get(ctx, userId)
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}
	if user == nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	page, err := d.Feed.UserTimeline(ctx, userId, envs[utils.EnvPostBucket],
		event.QueryStringParameters["lastKey"])
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}
	return utils.FormatDataResponse(page), nil
}

// HomeFeed returns one page of posts from the caller and everyone the
// caller follows. Ordering across authors is best effort, see
// feed.Assembler.HomeFeed.
func (d *Deps) HomeFeed(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvUserTable, utils.EnvPostTable, utils.EnvPostBucket)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	userId := utils.GetUserIdFromEvent(event)
	if userId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	fallback := "Erro ao buscar o feed da home! Tente novamente ou contacte o administrador do sistema."
	user, err := d.Users.Get(ctx, userId)
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}
	if user == nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	page, err := d.Feed.HomeFeed(ctx, user, envs[utils.EnvPostBucket],
		event.QueryStringParameters["lastKey"])
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}
	return utils.FormatDataResponse(page), nil
}
