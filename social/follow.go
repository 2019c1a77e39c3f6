// Package social implements the relationship and engagement togglers: the
// follow edge with its denormalized counters, post like membership, and the
// append-only comment sequence.
package social

import (
	"context"

	"github.com/vamoslabs/redesocial/store"
	"github.com/vamoslabs/redesocial/utils"
)

// FollowService flips the follow edge between two users and keeps the
// denormalized followers counter on the target in step.
//
// Known weakness, kept on purpose: the toggle is a read-modify-write over
// two records with no conditional write and no cross-record transaction.
// Two concurrent toggles on the same pair can lose updates, and a failure
// between the two writes leaves the edge and the counter inconsistent. The
// partial failure case is surfaced as a retryable error, never swallowed.
type FollowService struct {
	users store.UserStore
}

func NewFollowService(users store.UserStore) *FollowService {
	return &FollowService{users: users}
}

// Toggle adds the follow edge when absent and removes it when present,
// returning whether the actor follows the target afterwards. Self-follow is
// always rejected, regardless of state.
func (s *FollowService) Toggle(ctx context.Context, actorId, targetId string) (bool, error) {
	if actorId == targetId {
		return false, utils.NewApiError(utils.ErrorKindInvalidInput,
			"Usuário não pode seguir a si mesmo.")
	}

	actor, err := s.users.Get(ctx, actorId)
	if err != nil {
		return false, utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao seguir/deixar de seguir usuário! Tente novamente ou contacte o administrador do sistema.")
	}
	if actor == nil {
		return false, utils.NewApiError(utils.ErrorKindNotFound, "Usuário logado não encontrado.")
	}

	target, err := s.users.Get(ctx, targetId)
	if err != nil {
		return false, utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao seguir/deixar de seguir usuário! Tente novamente ou contacte o administrador do sistema.")
	}
	if target == nil {
		return false, utils.NewApiError(utils.ErrorKindNotFound, "Usuário a ser seguido não encontrado.")
	}

	following := !utils.ContainsString(actor.Following, targetId)
	if following {
		actor.Following = append(actor.Following, targetId)
		target.Followers = target.Followers + 1
	} else {
		actor.Following = utils.RemoveString(actor.Following, targetId)
		target.Followers = target.Followers - 1
	}

	if err := s.users.Update(ctx, actor); err != nil {
		// Nothing committed yet, plain failure.
		return false, utils.WrapApiError(err, utils.ErrorKindInternal,
			"Erro ao seguir/deixar de seguir usuário! Tente novamente ou contacte o administrador do sistema.")
	}
	if err := s.users.Update(ctx, target); err != nil {
		// The actor side is already committed; the followers counter on the
		// target is now off by one until a retry lands.
		return false, utils.WrapApiError(err, utils.ErrorKindRetryable,
			"Erro ao seguir/deixar de seguir usuário! Tente novamente ou contacte o administrador do sistema.")
	}
	return following, nil
}
