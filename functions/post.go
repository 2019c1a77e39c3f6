package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/vamoslabs/redesocial/model"
	"github.com/vamoslabs/redesocial/utils"
)

// minDescriptionLength is the minimum trimmed post caption size.
const minDescriptionLength = 5

type postCommentRequest struct {
	Coment string `json:"coment"`
}

// CreatePost stores a new publication from a multipart form (description
// plus image) and increments the author's posts counter. The counter lives
// on a second record: its write is independent, and a failure there is
// surfaced as retryable with the post already persisted.
func (d *Deps) CreatePost(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	envs, err := utils.ValidateEnvs(utils.EnvUserTable, utils.EnvPostTable, utils.EnvPostBucket)
	if err != nil {
		return formatHandlerError(err, ""), nil
	}

	userId := utils.GetUserIdFromEvent(event)
	if userId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}

	fallback := "Erro ao criar publicação! Tente novamente ou contacte o administrador do sistema."
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

	description := form.Values["description"]
	if len(strings.TrimSpace(description)) < minDescriptionLength {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Descrição inválida"), nil
	}
	file, ok := form.Files["file"]
	if !ok || !utils.IsAllowedImageFile(file.Filename) {
		return utils.FormatDefaultResponse(http.StatusBadRequest,
			"Extensão informada do arquivo não é válida"), nil
	}

	imageKey, err := d.Media.SaveImage(envs[utils.EnvPostBucket], "post", file.Filename, bytes.NewReader(file.Content))
	if err != nil {
		return formatHandlerError(err, fallback), nil
	}

	post := &model.Post{
		Id:          uuid.NewString(),
		UserId:      userId,
		Description: description,
		Date:        time.Now().UTC().Format(time.RFC3339),
		Image:       imageKey,
		Likes:       []string{},
		Comments:    []model.Comment{},
	}
	if err := d.Posts.Put(ctx, post); err != nil {
		return formatHandlerError(err, fallback), nil
	}

	// Second, independent write: the denormalized posts counter.
	user.Posts = user.Posts + 1
	if err := d.Users.Update(ctx, user); err != nil {
		return formatHandlerError(utils.WrapApiError(err, utils.ErrorKindRetryable, fallback), fallback), nil
	}
	return utils.FormatDefaultResponse(http.StatusOK, "Publicação criada com sucesso!"), nil
}

// ToggleLike flips the caller's like on the post in the path.
func (d *Deps) ToggleLike(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := utils.ValidateEnvs(utils.EnvUserTable, utils.EnvPostTable); err != nil {
		return formatHandlerError(err, ""), nil
	}

	userId := utils.GetUserIdFromEvent(event)
	if userId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}
	postId := event.PathParameters["postId"]
	if postId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Publicação não encontrada."), nil
	}

	liked, err := d.Engagement.ToggleLike(ctx, postId, userId)
	if err != nil {
		return formatHandlerError(err,
			"Erro ao curtir/descurtir a publicação! Tente novamente ou contacte o administrador do sistema."), nil
	}
	if liked {
		return utils.FormatDefaultResponse(http.StatusOK, "Like adicionado com sucesso!"), nil
	}
	return utils.FormatDefaultResponse(http.StatusOK, "Like removido com sucesso!"), nil
}

// PostComment appends a comment to the post in the path.
func (d *Deps) PostComment(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if _, err := utils.ValidateEnvs(utils.EnvUserTable, utils.EnvPostTable); err != nil {
		return formatHandlerError(err, ""), nil
	}

	userId := utils.GetUserIdFromEvent(event)
	if userId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Usuário não encontrado."), nil
	}
	postId := event.PathParameters["postId"]
	if postId == "" {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Publicação não encontrada."), nil
	}

	request := postCommentRequest{}
	if event.Body == "" || json.Unmarshal([]byte(event.Body), &request) != nil {
		return utils.FormatDefaultResponse(http.StatusBadRequest, "Comentário não é válido."), nil
	}

	if err := d.Engagement.AddComment(ctx, postId, userId, request.Coment); err != nil {
		return formatHandlerError(err,
			"Erro ao comentar na publicação! Tente novamente ou contacte o administrador do sistema."), nil
	}
	return utils.FormatDefaultResponse(http.StatusOK, "Comentário adicionado com sucesso!"), nil
}
