package functions

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/vamoslabs/redesocial/utils"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login authenticates against the identity provider and returns the issued
// token set.
func (d *Deps) Login(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvUserPoolId, utils.EnvUserPoolClientId)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	request := loginRequest{}
	if event.Body == "" || json.Unmarshal([]byte(event.Body), &request) != nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Parâmetros de entrada inválidos"), nil
	}
	if request.Login == "" || request.Password == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Parâmetros de entrada inválidos"), nil
	}

	result, err := d.Identity.Login(ctx, envs[utils.EnvUserPoolClientId], request.Login, request.Password)
	if err != nil {
		return formatHandlerError(err,
			"Erro ao autenticar usuario! Tente novamente ou contacte o administrador do sistema."), nil
	}
	return utils.FormatDataResponse(result), nil
}
