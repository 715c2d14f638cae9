package shared

import (
	"context"

	"servicebook/internal/domain/user"
	"servicebook/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// LoadProfile reads users/{namespace}/{uid}. ok is false when absent.
func LoadProfile(ctx context.Context, store DocumentStore, role user.Role, uid string) (user.Profile, bool, error) {
	snap, err := store.Get(ctx, ProfilePath(role, uid))
	if err != nil {
		return nil, false, err
	}
	if !snap.Exists() {
		return nil, false, nil
	}
	p, ok := snap.Value.(map[string]any)
	if !ok {
		return user.Profile{}, true, nil
	}
	return user.Profile(p), true, nil
}

// ResolveIdentity reads every profile namespace concurrently and picks the
// first match in user.ResolutionOrder.
func ResolveIdentity(ctx context.Context, store DocumentStore, uid string) (user.Identity, error) {
	if uid == "" {
		return user.Identity{}, errs.Authentication("missing uid")
	}
	profiles := make([]user.Profile, len(user.ResolutionOrder))
	found := make([]bool, len(user.ResolutionOrder))

	g, gctx := errgroup.WithContext(ctx)
	for i, role := range user.ResolutionOrder {
		g.Go(func() error {
			p, ok, err := LoadProfile(gctx, store, role, uid)
			if err != nil {
				return err
			}
			profiles[i], found[i] = p, ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return user.Identity{}, errs.Wrap(err, "resolve role")
	}

	hits := make(map[user.Role]user.Profile)
	for i, role := range user.ResolutionOrder {
		if found[i] {
			hits[role] = profiles[i]
		}
	}
	return user.Resolve(uid, hits), nil
}
