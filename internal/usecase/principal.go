package usecase

import (
	"context"
	"errors"
	"strings"

	"servicebook/internal/domain/user"
	"servicebook/internal/pkg/errs"
	"servicebook/internal/pkg/jwt"
	"servicebook/internal/usecase/shared"
)

var (
	ErrMissingToken    = errs.Mark(errors.New("missing bearer token"), errs.ErrAuthentication)
	ErrTokenValidation = errs.Mark(errors.New("invalid or expired token"), errs.ErrAuthentication)
)

// PrincipalVerifier turns a bearer token into the caller's identity. The
// role always comes from stored profiles.
type PrincipalVerifier interface {
	Verify(ctx context.Context, bearer string) (user.Identity, error)
}

type principalVerifierImpl struct {
	jwtService *jwt.Service
	store      shared.DocumentStore
}

func NewPrincipalVerifier(jwtService *jwt.Service, store shared.DocumentStore) PrincipalVerifier {
	return &principalVerifierImpl{
		jwtService: jwtService,
		store:      store,
	}
}

func (v *principalVerifierImpl) Verify(ctx context.Context, bearer string) (user.Identity, error) {
	token := strings.TrimSpace(bearer)
	if token == "" {
		return user.Identity{}, ErrMissingToken
	}
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return user.Identity{}, errs.Mark(errs.Wrap(err, "verify token"), ErrTokenValidation)
	}
	id, err := shared.ResolveIdentity(ctx, v.store, claims.UID())
	if err != nil {
		return user.Identity{}, errs.Internal(err, "resolve identity")
	}
	return id, nil
}
