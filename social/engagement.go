package social

import (
	"context"
	"strings"
	"time"

	"github.com/vamoslabs/redesocial/model"
	"github.com/vamoslabs/redesocial/store"
	"github.com/vamoslabs/redesocial/utils"
)

// MinCommentLength is the minimum trimmed comment size.
const MinCommentLength = 2

// EngagementService flips like membership and appends comments on posts.
// Unlike the follow toggle, every mutation here touches a single record, so
// there is no dual-write window.
type EngagementService struct {
	users store.UserStore
	posts store.PostStore
}

func NewEngagementService(users store.UserStore, posts store.PostStore) *EngagementService {
	return &EngagementService{users: users, posts: posts}
}

// ToggleLike adds the user to the post's likes when absent and removes it
// when present, returning whether the post is liked afterwards.
func (s *EngagementService) ToggleLike(ctx context.Context, postId, userId string) (bool, error) {
	user, err := s.users.Get(ctx, userId)
	if err != nil {
		return false, utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao curtir/descurtir a publicação! Tente novamente ou contacte o administrador do sistema.")
	}
	if user == nil {
		return false, utils.NewApiError(utils.ErrorKindNotFound, "Usuário não encontrado.")
	}

	post, err := s.posts.Get(ctx, postId)
	if err != nil {
		return false, utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao curtir/descurtir a publicação! Tente novamente ou contacte o administrador do sistema.")
	}
	if post == nil {
		return false, utils.NewApiError(utils.ErrorKindNotFound, "Publicação não encontrada.")
	}

	liked := !utils.ContainsString(post.Likes, userId)
	if liked {
		post.Likes = append(post.Likes, userId)
	} else {
		post.Likes = utils.RemoveString(post.Likes, userId)
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return false, utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao curtir/descurtir a publicação! Tente novamente ou contacte o administrador do sistema.")
	}
	return liked, nil
}

// AddComment appends a comment with the actor's current display name and a
// server assigned timestamp. Comments have no edit or delete path.
func (s *EngagementService) AddComment(ctx context.Context, postId, userId, text string) error {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinCommentLength {
		return utils.NewApiError(utils.ErrorKindInvalidInput, "Comentário não é válido.")
	}

	user, err := s.users.Get(ctx, userId)
	if err != nil {
		return utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao comentar na publicação! Tente novamente ou contacte o administrador do sistema.")
	}
	if user == nil {
		return utils.NewApiError(utils.ErrorKindNotFound, "Usuário não encontrado.")
	}

	post, err := s.posts.Get(ctx, postId)
	if err != nil {
		return utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao comentar na publicação! Tente novamente ou contacte o administrador do sistema.")
	}
	if post == nil {
		return utils.NewApiError(utils.ErrorKindNotFound, "Publicação não encontrada.")
	}

	post.Comments = append(post.Comments, model.Comment{
		UserId:   userId,
		UserName: user.Name,
		Date:     time.Now().UTC().Format(time.RFC3339),
		Coment:   trimmed,
	})

	if err := s.posts.Update(ctx, post); err != nil {
		return utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao comentar na publicação! Tente novamente ou contacte o administrador do sistema.")
	}
	return nil
}
