package functions

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/vamoslabs/redesocial/utils"
)

// ToggleFollow flips the follow edge between the caller and the user in the
// path. Adding or removing depends on the current state, see
// social.FollowService.
func (d *Deps) ToggleFollow(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := utils.ValidateEnvs(utils.EnvUserTable); err != nil {
		return formatHandlerError(err, ""), nil
	}

	userId := utils.GetUserIdFromEvent(event)
	if userId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário logado não encontrado."), nil
	}
	followId := event.PathParameters["followId"]
	if followId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário a ser seguido não encontrado."), nil
	}

	following, err := d.Follow.Toggle(ctx, userId, followId)
	if err != nil {
		return formatHandlerError(err,
			"Erro ao seguir/deixar de seguir usuario! Tente novamente ou contacte o administrador do sistema."), nil
	}
	if following {
		return utils.FormatDefaultResponse(http.StatusOK, "Usuário seguido com sucesso"), nil
	}
	return utils.FormatDefaultResponse(http.StatusOK, "Usuário deixado de seguir com sucesso"), nil
}
