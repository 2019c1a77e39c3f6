package functions

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/vamoslabs/redesocial/model"
	"github.com/vamoslabs/redesocial/utils"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type confirmEmailRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type changePasswordRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
	Password         string `json:"password"`
}

// Register signs a new account up with the identity provider. The user
// record itself is only created after email confirmation.
func (d *Deps) Register(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvUserPoolId, utils.EnvUserPoolClientId)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	if event.Body == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Parâmetros de entrada inválidos"), nil
	}
	request := registerRequest{}
	if err := json.Unmarshal([]byte(event.Body), &request); err != nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Parâmetros de entrada inválidos"), nil
	}

	if !utils.IsValidEmail(request.Email) {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Email inválido"), nil
	}
	if !utils.IsValidPassword(request.Password) {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Senha inválida"), nil
	}
	if !utils.IsValidName(request.Name) {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Nome inválido"), nil
	}

	if _, err := d.Identity.SignUp(ctx, envs[utils.EnvUserPoolClientId], request.Email, request.Password); err != nil {
		return formatHandlerError(err,
			"Erro ao cadastrar usuario! Tente novamente ou contacte o administrador do sistema."), nil
	}
	return utils.FormatDefaultResponse(http.StatusOK, "Usuário cadastrado com sucesso!"), nil
}

// ConfirmEmail confirms the sign up code and creates the user record with
// zeroed counters. The subject id is resolved through an admin lookup since
// the caller is not authenticated yet.
func (d *Deps) ConfirmEmail(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvUserPoolId, utils.EnvUserPoolClientId, utils.EnvUserTable)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	if event.Body == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Parâmetros de entrada inválidos"), nil
	}
	request := confirmEmailRequest{}
	if err := json.Unmarshal([]byte(event.Body), &request); err != nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Parâmetros de entrada inválidos"), nil
	}

	if !utils.IsValidEmail(request.Email) {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Email inválido"), nil
	}
	if request.VerificationCode == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Código de verificação inválido"), nil
	}
	if !utils.IsValidName(request.Name) {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Nome inválido"), nil
	}

	fallback := "Erro ao confirmar email do usuario! Tente novamente ou contacte o administrador do sistema."
	if err := d.Identity.ConfirmSignUp(ctx, envs[utils.EnvUserPoolClientId], request.Email, request.VerificationCode); err != nil {
		return formatHandlerError(err, fallback), nil
	}
	sub, err := d.Identity.AdminGetUserSub(ctx, envs[utils.EnvUserPoolId], request.Email)
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}
	if err := d.Users.Put(ctx, model.NewUser(sub, request.Name, request.Email)); err != nil {
		return formatHandlerError(err, fallback), nil
	}
	return utils.FormatDefaultResponse(http.StatusOK, "Usuário verificado com sucesso!"), nil
}

// ForgotPassword starts the code based password reset flow.
func (d *Deps) ForgotPassword(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvUserPoolId, utils.EnvUserPoolClientId)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	request := forgotPasswordRequest{}
	if event.Body == "" || json.Unmarshal([]byte(event.Body), &request) != nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Parâmetros de entrada inválidos"), nil
	}
	if !utils.IsValidEmail(request.Email) {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Email inválido"), nil
	}

	if err := d.Identity.ForgotPassword(ctx, envs[utils.EnvUserPoolClientId], request.Email); err != nil {
		return formatHandlerError(err,
			"Erro ao solicitar troca de senha! Tente novamente ou contacte o administrador do sistema."), nil
	}
	return utils.FormatDefaultResponse(http.StatusOK, "Solicitação de troca de senha enviada com sucesso!"), nil
}

// ChangePassword completes the reset flow with the emailed code.
func (d *Deps) ChangePassword(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvUserPoolId, utils.EnvUserPoolClientId)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	request := changePasswordRequest{}
	if event.Body == "" || json.Unmarshal([]byte(event.Body), &request) != nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Parâmetros de entrada inválidos"), nil
	}
	if !utils.IsValidEmail(request.Email) {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Email inválido"), nil
	}
	if request.VerificationCode == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Código de verificação inválido"), nil
	}
	if !utils.IsValidPassword(request.Password) {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Senha inválida"), nil
	}

	if err := d.Identity.ConfirmForgotPassword(ctx, envs[utils.EnvUserPoolClientId],
		request.Email, request.VerificationCode, request.Password); err != nil {
		return formatHandlerError(err,
			"Erro ao alterar senha do usuario! Tente novamente ou contacte o administrador do sistema."), nil
	}
	return utils.FormatDefaultResponse(http.StatusOK, "Senha alterada com sucesso!"), nil
}
