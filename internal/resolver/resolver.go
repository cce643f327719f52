// Package resolver turns opaque author references into display names, with
// per-session caching and a per-cycle cap on remote lookups.
package resolver

import (
	"context"

	"go.uber.org/zap"

	"github.com/openmind-services/helpdesk-dashboard/internal/cache"
)

// LookupClient performs one remote name lookup. "" with a nil error means
// the reference exists but has no usable name.
type LookupClient interface {
	LookupUserName(ctx context.Context, ref string) (string, error)
}

// Resolver resolves batches of author references. Positive results are
// cached for the session; negative results are not, so a later cycle
// retries them. Remote lookups are capped per cycle to bound request
// volume; references beyond the cap stay unresolved for that cycle and the
// builder falls back to a placeholder.
type Resolver struct {
	client LookupClient
	names  cache.NameCache
	limit  int
	logger *zap.Logger
}

// New builds a resolver. limit is the maximum number of remote lookups per
// fetch cycle; values <= 0 fall back to 30.
func New(client LookupClient, names cache.NameCache, limit int, logger *zap.Logger) *Resolver {
	if limit <= 0 {
		limit = 30
	}
	return &Resolver{client: client, names: names, limit: limit, logger: logger}
}

// ResolveBatch resolves the distinct non-empty references of one fetch
// cycle. Lookups are issued sequentially; cache hits do not count against
// the cap. The returned map holds only successful resolutions.
func (r *Resolver) ResolveBatch(ctx context.Context, refs []string) map[string]string {
	resolved := make(map[string]string)
	remoteCalls := 0

	for _, ref := range distinct(refs) {
		if name, ok := r.names.Get(ctx, ref); ok {
			resolved[ref] = name
			continue
		}
		if remoteCalls >= r.limit {
			continue
		}
		remoteCalls++

		name, err := r.client.LookupUserName(ctx, ref)
		if err != nil {
			r.logger.Debug("author lookup failed", zap.String("ref", ref), zap.Error(err))
			continue
		}
		if name == "" {
			continue
		}
		resolved[ref] = name
		r.names.Set(ctx, ref, name)
	}

	r.logger.Debug("resolved author names",
		zap.Int("requested", len(refs)),
		zap.Int("resolved", len(resolved)),
		zap.Int("remote_calls", remoteCalls))
	return resolved
}

// Reset clears the session name cache.
func (r *Resolver) Reset(ctx context.Context) {
	r.names.Reset(ctx)
}

func distinct(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
