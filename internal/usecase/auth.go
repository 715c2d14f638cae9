package usecase

import (
	"context"
	"errors"

	"servicebook/internal/domain/user"
	"servicebook/internal/pkg/errs"
)

var ErrProfileNotFound = errs.Mark(errors.New("No user profile found in database"), errs.ErrNotFound)

type LoginInfo struct {
	UID     string
	Role    user.Role
	Profile user.Profile
}

type AuthUseCase interface {
	// LoginInfo reports who the caller is. expectedRole is honoured only
	// for customer and worker; anything else is ignored.
	LoginInfo(ctx context.Context, actor user.Identity, expectedRole string) (*LoginInfo, error)
}

type authUseCaseImpl struct{}

func NewAuthUseCase() AuthUseCase {
	return &authUseCaseImpl{}
}

func (a *authUseCaseImpl) LoginInfo(_ context.Context, actor user.Identity, expectedRole string) (*LoginInfo, error) {
	if !actor.IsKnown() {
		return nil, ErrProfileNotFound
	}
	expected := user.Role(expectedRole)
	if (expected == user.RoleCustomer || expected == user.RoleWorker) && actor.Role != expected {
		return nil, errs.Permission("This account is not a " + expectedRole + " account.")
	}
	return &LoginInfo{UID: actor.UID, Role: actor.Role, Profile: actor.Profile}, nil
}
