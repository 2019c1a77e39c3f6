package functions

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/vamoslabs/redesocial/model"
	"github.com/vamoslabs/redesocial/store"
	"github.com/vamoslabs/redesocial/utils"
	Logger "github.com/vamoslabs/redesocial/utils/log"
)

// defaultSearchPageSize matches the original scan limit for user search.
const defaultSearchPageSize = 5

// userPage is the paginated envelope of a user search.
type userPage struct {
	Count   int          `json:"count"`
	LastKey string       `json:"lastKey,omitempty"`
	Data    []model.User `json:"data"`
}

// Me returns the authenticated caller's profile, avatar resolved to a URL.
func (d *Deps) Me(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvAvatarBucket, utils.EnvUserTable)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	userId := utils.GetUserIdFromEvent(event)
	if userId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	fallback := "Erro ao buscar dados do usuario! Tente novamente ou contacte o administrador do sistema."
	user, err := d.Users.Get(ctx, userId)
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}
	if user == nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	if user.Avatar != "" {
		url, err := d.Media.GetImageURL(envs[utils.EnvAvatarBucket], user.Avatar)
		if err != nil {
			return formatHandlerError(err, fallback), nil
		}
		user.Avatar = url
	}
	return utils.FormatDataResponse(user), nil
}

// UpdateUser edits the caller's display name and/or avatar from a multipart
// form. Both fields are optional; present fields are validated.
func (d *Deps) UpdateUser(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvAvatarBucket, utils.EnvUserTable)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	userId := utils.GetUserIdFromEvent(event)
	if userId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	fallback := "Erro ao atualizar dados do usuario! Tente novamente ou contacte o administrador do sistema."
	user, err := d.Users.Get(ctx, userId)
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}
	if user == nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	form, err := utils.ParseMultipartForm(event)
	if err != nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Parâmetros de entrada inválidos"), nil
	}

	if name, ok := form.Values["name"]; ok && name != "" {
		if !utils.IsValidName(name) {
			return utils.FormatDefaultResponse(http.StatusBadRequest, "Nome inválido"), nil
		}
		user.Name = name
	}

	if file, ok := form.Files["file"]; ok {
		if !utils.IsAllowedImageFile(file.Filename) {
			return utils.FormatDefaultResponse(http.StatusBadRequest,
				"Extensão informada do arquivo não é válida"), nil
		}
		key, err := d.Media.SaveImage(envs[utils.EnvAvatarBucket], "avatar", file.Filename, bytes.NewReader(file.Content))
		if err != nil {
			return formatHandlerError(err, fallback), nil
		}
		user.Avatar = key
	}

	if err := d.Users.Update(ctx, user); err != nil {
		return formatHandlerError(err, fallback), nil
	}
	return utils.FormatDefaultResponse(http.StatusOK, "Usuário alterado com sucesso!"), nil
}

// GetUserById returns any user's public profile by subject id.
func (d *Deps) GetUserById(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvAvatarBucket, utils.EnvUserTable)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	userId := event.PathParameters["userId"]
	if userId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	fallback := "Erro ao buscar dados do usuario por id! Tente novamente ou contacte o administrador do sistema."
	user, err := d.Users.Get(ctx, userId)
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}
	if user == nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	if user.Avatar != "" {
		url, err := d.Media.GetImageURL(envs[utils.EnvAvatarBucket], user.Avatar)
		if err != nil {
			return formatHandlerError(err, fallback), nil
		}
		user.Avatar = url
	}
	return utils.FormatDataResponse(user), nil
}

// SearchUsers scans for users whose name or email contains the filter,
// paginated by an opaque lastKey token.
func (d *Deps) SearchUsers(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvAvatarBucket, utils.EnvUserTable)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	filter := event.PathParameters["filter"]
	if len(filter) < 3 {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Filtro não informado."), nil
	}

	cursor, err := store.DecodeUserCursor(event.QueryStringParameters["lastKey"])
	if err != nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Chave de paginação inválida."), nil
	}

	fallback := "Erro ao buscar dados usuário por nome ou email! Tente novamente ou contacte o administrador do sistema."
	result, err := d.Users.Search(ctx, filter, cursor, searchPageSize())
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}

	page := userPage{Count: len(result.Items), Data: result.Items}
	if result.LastKey != nil {
		page.LastKey = store.EncodeCursor(result.LastKey)
	}

	// Same policy as the feeds: one unresolvable avatar never fails the page.
	avatarBucket := envs[utils.EnvAvatarBucket]
	for i := range page.Data {
		user := &page.Data[i]
		if user.Avatar == "" {
			continue
		}
		url, err := d.Media.GetImageURL(avatarBucket, user.Avatar)
		if err != nil {
			Logger.Log.Warn("fail to resolve avatar url for user ", user.CognitoId, ": ", err)
			user.Avatar = ""
			continue
		}
		user.Avatar = url
	}
	return utils.FormatDataResponse(page), nil
}

func searchPageSize() int {
	raw := os.Getenv(utils.EnvSearchPageSize)
	if raw == "" {
		return defaultSearchPageSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return defaultSearchPageSize
	}
	return size
}
