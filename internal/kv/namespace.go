package kv

import "context"

type namespaced struct {
	next   Store
	prefix string
}

// Namespace prefixes every key passed to next with prefix + ":".
// An empty prefix returns next unchanged.
func Namespace(next Store, prefix string) Store {
	if prefix == "" {
		return next
	}
	return &namespaced{next: next, prefix: prefix + ":"}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.next.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.next.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	return n.next.SetIfAbsent(ctx, n.prefix+key, value)
}

func (n *namespaced) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return n.next.Update(ctx, n.prefix+key, fn)
}
