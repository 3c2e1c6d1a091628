package storage

import (
	"context"

	"github.com/crucial707/forum-web/internal/session"
)

// Namespaced prefixes every key so that many clients can share one backend.
type Namespaced struct {
	base   session.Storage
	prefix string
}

// Namespace returns a view of base whose keys live under ns.
func Namespace(base session.Storage, ns string) *Namespaced {
	return &Namespaced{base: base, prefix: ns + ":"}
}

func (n *Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.base.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.base.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.base.Delete(ctx, n.prefix+key)
}
