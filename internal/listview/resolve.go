package listview

import (
	"context"

	"ams-console/internal/source"

	"go.uber.org/zap"
)

// Resolver maps foreign-key ids to display names using a reference snapshot
// fetched once at view mount. Resolution is a pure lookup; no network call
// happens per row.
type Resolver struct {
	names       map[int64]string
	placeholder string
}

// NewResolver builds a Resolver over rows. key and name extract the id and
// display name of one reference record; placeholder is returned for ids with
// no match ("-" or "N/A" depending on the entity).
func NewResolver[T any](rows []T, key func(T) int64, name func(T) string, placeholder string) *Resolver {
	names := make(map[int64]string, len(rows))
	for _, r := range rows {
		names[key(r)] = name(r)
	}
	return &Resolver{names: names, placeholder: placeholder}
}

// EmptyResolver resolves nothing; every lookup yields the placeholder.
// Views start with one so matchers are safe before references load.
func EmptyResolver(placeholder string) *Resolver {
	return &Resolver{names: map[int64]string{}, placeholder: placeholder}
}

// Resolve prefers the denormalized inline name when the server sent one,
// falls back to the snapshot lookup, and finally to the placeholder.
func (r *Resolver) Resolve(inline *string, id *int64) string {
	if inline != nil && *inline != "" {
		return *inline
	}
	return r.Name(id)
}

// Name looks id up in the snapshot.
func (r *Resolver) Name(id *int64) string {
	if id != nil {
		if n, ok := r.names[*id]; ok {
			return n
		}
	}
	return r.placeholder
}

// LoadSnapshot fetches a full reference collection. Failures are isolated:
// the error is logged and an empty snapshot is returned so one failing
// reference never blocks the view from rendering.
func LoadSnapshot[T any](ctx context.Context, src Source[T], log *zap.SugaredLogger) []T {
	page, err := src.List(ctx, source.Query{})
	if err != nil {
		if log != nil {
			log.Warnw("reference collection unavailable", "error", err)
		}
		return nil
	}
	return page.Rows
}
