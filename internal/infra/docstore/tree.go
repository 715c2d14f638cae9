package docstore

import (
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"servicebook/internal/pkg/errs"
	"servicebook/internal/usecase/shared"
)

// normalize turns any JSON-encodable value into a tree of map[string]any,
// string, float64 and bool. Slices become maps keyed by index. Nil entries
// and empty maps are dropped, so the result is nil when nothing remains.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errs.Wrap(err, "encode document value")
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.Wrap(err, "decode document value")
	}
	return prune(out), nil
}

func prune(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if p := prune(child); p == nil {
				delete(t, k)
			} else {
				t[k] = p
			}
		}
		if len(t) == 0 {
			return nil
		}
		return t
	case []any:
		m := make(map[string]any, len(t))
		for i, child := range t {
			if p := prune(child); p != nil {
				m[strconv.Itoa(i)] = p
			}
		}
		if len(m) == 0 {
			return nil
		}
		return m
	default:
		return v
	}
}

func splitPath(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, shared.ErrInvalidPath
	}
	segs := strings.Split(path, "/")
	for _, s := range segs {
		if s == "" || strings.ContainsAny(s, ".#$[]") {
			return nil, errs.Wrapf(shared.ErrInvalidPath, "%q", path)
		}
	}
	return segs, nil
}

type write struct {
	segs  []string
	path  string
	value any
}

// prepare validates and normalizes a write-set. Writes come back ordered
// parent-first so a deeper path in the same set lands on top of its
// ancestor.
func prepare(ws shared.WriteSet) ([]write, error) {
	out := make([]write, 0, len(ws))
	for p, v := range ws {
		segs, err := splitPath(p)
		if err != nil {
			return nil, err
		}
		nv, err := normalize(v)
		if err != nil {
			return nil, errs.Wrapf(err, "path %s", p)
		}
		out = append(out, write{segs: segs, path: strings.Join(segs, "/"), value: nv})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].segs) != len(out[j].segs) {
			return len(out[i].segs) < len(out[j].segs)
		}
		return out[i].path < out[j].path
	})
	return out, nil
}

func getAt(root map[string]any, segs []string) any {
	var cur any = root
	for _, s := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[s]
		if !ok {
			return nil
		}
	}
	return cur
}

// setAt writes v at segs, creating parents as needed. A nil v removes the
// node and prunes parents left empty.
func setAt(root map[string]any, segs []string, v any) {
	if v == nil {
		deleteAt(root, segs)
		return
	}
	cur := root
	for _, s := range segs[:len(segs)-1] {
		next, ok := cur[s].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[s] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = v
}

func deleteAt(m map[string]any, segs []string) bool {
	if len(segs) == 1 {
		delete(m, segs[0])
		return len(m) == 0
	}
	child, ok := m[segs[0]].(map[string]any)
	if !ok {
		return len(m) == 0
	}
	if deleteAt(child, segs[1:]) {
		delete(m, segs[0])
	}
	return len(m) == 0
}

func deepCopy(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, child := range m {
		out[k] = deepCopy(child)
	}
	return out
}

// flatten lists every leaf under v keyed by absolute path.
func flatten(path string, v any, out map[string]any) {
	if m, ok := v.(map[string]any); ok {
		for k, child := range m {
			flatten(path+"/"+k, child, out)
		}
		return
	}
	if v != nil {
		out[path] = v
	}
}

// unflatten rebuilds the value at base from leaves keyed by absolute path.
func unflatten(base string, leaves map[string]any) any {
	if v, ok := leaves[base]; ok {
		return v
	}
	root := map[string]any{}
	prefix := base + "/"
	for p, v := range leaves {
		rel, ok := strings.CutPrefix(p, prefix)
		if !ok {
			continue
		}
		setAt(root, strings.Split(rel, "/"), v)
	}
	if len(root) == 0 {
		return nil
	}
	return root
}

// ancestors returns every proper prefix of segs, shortest first.
func ancestors(segs []string) []string {
	out := make([]string, 0, len(segs)-1)
	for i := 1; i < len(segs); i++ {
		out = append(out, strings.Join(segs[:i], "/"))
	}
	return out
}

func sameValue(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
