package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-frames-backend/internal/entity"
)

type UserService interface {
	GetOrFetchUser(ctx context.Context, fid string) (*entity.User, error)
}

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error
	Find(ctx context.Context, fid string) (*entity.User, error)
}

type userService struct {
	userRepo userRepo
	identity IdentityService
}

func NewUserService(userRepo userRepo, identity IdentityService) UserService {
	return &userService{
		userRepo: userRepo,
		identity: identity,
	}
}

// GetOrFetchUser - serves the profile from the local cache, falling back to
// the identity API and caching the result.
func (that *userService) GetOrFetchUser(ctx context.Context, fid string) (*entity.User, error) {
	user, err := that.userRepo.Find(ctx, fid)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("could not get user by fid: %w", err)
	}

	user, err = that.identity.GetProfileByFID(ctx, fid)
	if err != nil {
		return nil, fmt.Errorf("could not fetch profile: %w", err)
	}

	if err = that.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	return user, nil
}
