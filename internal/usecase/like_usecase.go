package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/daniyarm/rosterhub/internal/domain/contract"
	usecasecontract "github.com/daniyarm/rosterhub/internal/usecase/contract"
)

// ErrSelfLike is returned when a user tries to like themselves.
var ErrSelfLike = errors.New("cannot like your own profile")

// LikeUsecase records clicker-style peer likes: each click appends, nothing
// is ever un-liked.
type LikeUsecase struct {
	userRepo contract.IUserRepository
}

var _ usecasecontract.ILikeUseCase = (*LikeUsecase)(nil)

// NewLikeUsecase creates a new LikeUsecase instance.
func NewLikeUsecase(userRepo contract.IUserRepository) *LikeUsecase {
	return &LikeUsecase{userRepo: userRepo}
}

// AddLike appends targetID to the actor's likes and actorID to the target's
// likedBy as one paired write by the actor. The record owner never writes
// its own likedBy.
func (uc *LikeUsecase) AddLike(ctx context.Context, actorID, targetID string) error {
	if actorID == "" || targetID == "" {
		return errors.New("both actor and target are required")
	}
	if actorID == targetID {
		return ErrSelfLike
	}
	if err := uc.userRepo.AddLikePair(ctx, actorID, targetID); err != nil {
		return fmt.Errorf("failed to record like: %w", err)
	}
	return nil
}
