package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"servicebook/internal/infra"
	"servicebook/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one string key per leaf plus a sorted set of every leaf
// path, scanned lexicographically to read a subtree.
//
// Conflicts are detected with two revision counters per path. A write at W
// bumps self:W, and sub:A for W and each of its ancestors. An operation that
// reads or replaces P watches sub:P and self of every ancestor of P, so only
// writes that overlap P's subtree abort it.
type RedisStore struct {
	client      *redis.Client
	logger      *slog.Logger
	prefix      string
	maxAttempts int
}

var _ shared.DocumentStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, logger *slog.Logger, prefix string, maxAttempts int) *RedisStore {
	if prefix == "" {
		prefix = "sb"
	}
	return &RedisStore{client: client, logger: logger, prefix: prefix, maxAttempts: maxAttempts}
}

func (s *RedisStore) leafKey(path string) string    { return s.prefix + ":doc:" + path }
func (s *RedisStore) indexKey() string              { return s.prefix + ":paths" }
func (s *RedisStore) subRevKey(path string) string  { return s.prefix + ":rev:sub:" + path }
func (s *RedisStore) selfRevKey(path string) string { return s.prefix + ":rev:self:" + path }

// watchKeys lists the revision keys guarding the subtrees at paths.
func (s *RedisStore) watchKeys(paths ...[]string) []string {
	seen := map[string]struct{}{}
	var keys []string
	add := func(k string) {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	for _, segs := range paths {
		add(s.subRevKey(strings.Join(segs, "/")))
		for _, a := range ancestors(segs) {
			add(s.selfRevKey(a))
		}
	}
	return keys
}

func writeSegs(writes []write) [][]string {
	out := make([][]string, len(writes))
	for i, w := range writes {
		out[i] = w.segs
	}
	return out
}

func (s *RedisStore) Get(ctx context.Context, path string) (shared.Snapshot, error) {
	segs, err := splitPath(path)
	if err != nil {
		return shared.Snapshot{}, err
	}
	p := strings.Join(segs, "/")
	v, err := s.read(ctx, s.client, p)
	if err != nil {
		return shared.Snapshot{}, infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to read document", err)
	}
	return shared.Snapshot{Path: p, Value: v}, nil
}

func (s *RedisStore) Update(ctx context.Context, ws shared.WriteSet) error {
	writes, err := prepare(ws)
	if err != nil {
		return err
	}
	return s.watch(ctx, "update", s.watchKeys(writeSegs(writes)...), func(tx *redis.Tx) error {
		return s.commit(ctx, tx, writes)
	})
}

func (s *RedisStore) UpdateIf(ctx context.Context, guard shared.Guard, ws shared.WriteSet) error {
	segs, err := splitPath(guard.Path)
	if err != nil {
		return err
	}
	expect, err := normalize(guard.Expect)
	if err != nil {
		return err
	}
	writes, err := prepare(ws)
	if err != nil {
		return err
	}
	keys := s.watchKeys(append(writeSegs(writes), segs)...)
	return s.watch(ctx, "update_if", keys, func(tx *redis.Tx) error {
		cur, rerr := s.read(ctx, tx, strings.Join(segs, "/"))
		if rerr != nil {
			return rerr
		}
		if !sameValue(cur, expect) {
			return shared.ErrGuardFailed
		}
		return s.commit(ctx, tx, writes)
	})
}

func (s *RedisStore) Transaction(ctx context.Context, path string, fn shared.TxnFunc) (any, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	p := strings.Join(segs, "/")
	var committed any
	err = s.watch(ctx, "transaction", s.watchKeys(segs), func(tx *redis.Tx) error {
		cur, rerr := s.read(ctx, tx, p)
		if rerr != nil {
			return rerr
		}
		next, abort := fn(deepCopy(cur))
		if abort {
			committed = cur
			return nil
		}
		nv, nerr := normalize(next)
		if nerr != nil {
			return nerr
		}
		committed = nv
		return s.commit(ctx, tx, []write{{segs: segs, path: p, value: nv}})
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

func (s *RedisStore) NewKey() string {
	return newKey()
}

func (s *RedisStore) watch(ctx context.Context, op string, keys []string, fn func(tx *redis.Tx) error) error {
	err := retry(ctx, op, s.maxAttempts, isTxFailed, func() error {
		return s.client.Watch(ctx, fn, keys...)
	})
	if err == nil || errors.Is(err, shared.ErrGuardFailed) || errors.Is(err, shared.ErrInvalidPath) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "document "+op+" failed", err)
}

func isTxFailed(err error) bool {
	return errors.Is(err, redis.TxFailedErr)
}

// members lists leaf paths at or below path.
func (s *RedisStore) members(ctx context.Context, c redis.Cmdable, path string) ([]string, error) {
	out, err := c.ZRangeByLex(ctx, s.indexKey(), &redis.ZRangeBy{
		Min: "[" + path + "/",
		Max: "(" + path + "0", // '0' sorts right after '/'
	}).Result()
	if err != nil {
		return nil, err
	}
	if err := c.ZScore(ctx, s.indexKey(), path).Err(); err == nil {
		out = append(out, path)
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}
	return out, nil
}

func (s *RedisStore) read(ctx context.Context, c redis.Cmdable, path string) (any, error) {
	paths, err := s.members(ctx, c, path)
	if err != nil || len(paths) == 0 {
		return nil, err
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = s.leafKey(p)
	}
	vals, err := c.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	leaves := make(map[string]any, len(paths))
	for i, raw := range vals {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(str), &v); err != nil {
			return nil, err
		}
		leaves[paths[i]] = v
	}
	return unflatten(path, leaves), nil
}

// commit folds the writes into one set of deletions and one set of leaf
// writes, then applies both in a single MULTI.
func (s *RedisStore) commit(ctx context.Context, tx *redis.Tx, writes []write) error {
	dels := map[string]struct{}{}
	sets := map[string]any{}

	for _, w := range writes {
		existing, err := s.members(ctx, tx, w.path)
		if err != nil {
			return err
		}
		for _, p := range existing {
			dels[p] = struct{}{}
		}
		for p := range sets {
			if p == w.path || strings.HasPrefix(p, w.path+"/") {
				delete(sets, p)
				dels[p] = struct{}{}
			}
		}
		if w.value == nil {
			continue
		}
		for _, a := range ancestors(w.segs) {
			delete(sets, a)
			dels[a] = struct{}{}
		}
		leaves := map[string]any{}
		flatten(w.path, w.value, leaves)
		for p, v := range leaves {
			sets[p] = v
			delete(dels, p)
		}
	}

	_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(dels) > 0 {
			keys := make([]string, 0, len(dels))
			members := make([]any, 0, len(dels))
			for p := range dels {
				keys = append(keys, s.leafKey(p))
				members = append(members, p)
			}
			pipe.Del(ctx, keys...)
			pipe.ZRem(ctx, s.indexKey(), members...)
		}
		if len(sets) > 0 {
			zs := make([]redis.Z, 0, len(sets))
			for p, v := range sets {
				raw, err := json.Marshal(v)
				if err != nil {
					return err
				}
				pipe.Set(ctx, s.leafKey(p), raw, 0)
				zs = append(zs, redis.Z{Score: 0, Member: p})
			}
			pipe.ZAdd(ctx, s.indexKey(), zs...)
		}
		for _, k := range s.bumpKeys(writes) {
			pipe.Incr(ctx, k)
		}
		return nil
	})
	return err
}

// bumpKeys lists the revision keys a commit of writes must increment.
func (s *RedisStore) bumpKeys(writes []write) []string {
	seen := map[string]struct{}{}
	var keys []string
	add := func(k string) {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	for _, w := range writes {
		add(s.selfRevKey(w.path))
		add(s.subRevKey(w.path))
		for _, a := range ancestors(w.segs) {
			add(s.subRevKey(a))
		}
	}
	return keys
}
