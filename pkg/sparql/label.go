package sparql

import (
	"context"
	"fmt"
	"sync"

	"github.com/lyrelab/intertext/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const defaultPrefetchParallel = 4

// LabelResolver resolves human-readable labels for external ids. Lookups try
// the preferred language first, then the fallback language, and finally fall
// back to the id itself. Results are memoized for the lifetime of the
// resolver; the cache is never invalidated mid-run.
type LabelResolver struct {
	client   QueryRunner
	prefLang string
	fallback string
	parallel int

	mu    sync.Mutex
	cache map[string]string
}

// QueryRunner is the slice of the client the resolver needs.
type QueryRunner interface {
	Select(ctx context.Context, query string) (Rows, error)
}

// NewLabelResolverParams defines the configuration for a LabelResolver.
//
// PreferredLang and FallbackLang default to "en" and "de". PrefetchParallel
// bounds the fan-out of Prefetch (default 4).
type NewLabelResolverParams struct {
	Client           QueryRunner
	PreferredLang    string
	FallbackLang     string
	PrefetchParallel int
}

// NewLabelResolver creates a resolver backed by the given query client.
func NewLabelResolver(params NewLabelResolverParams) *LabelResolver {
	prefLang := params.PreferredLang
	if prefLang == "" {
		prefLang = "en"
	}
	fallback := params.FallbackLang
	if fallback == "" {
		fallback = "de"
	}
	parallel := params.PrefetchParallel
	if parallel <= 0 {
		parallel = defaultPrefetchParallel
	}
	return &LabelResolver{
		client:   params.Client,
		prefLang: prefLang,
		fallback: fallback,
		parallel: parallel,
		cache:    make(map[string]string),
	}
}

// LabelOf returns the label for an id. A fetch failure or a missing label is
// not an error: the id itself is returned (and cached) instead, so callers
// always get usable text.
func (r *LabelResolver) LabelOf(ctx context.Context, id string) string {
	r.mu.Lock()
	if label, ok := r.cache[id]; ok {
		r.mu.Unlock()
		return label
	}
	r.mu.Unlock()

	label := r.fetch(ctx, id)

	r.mu.Lock()
	r.cache[id] = label
	r.mu.Unlock()
	return label
}

// Prefetch warms the cache for a batch of ids with bounded parallel lookups.
// Failures are absorbed; subsequent LabelOf calls return the cached fallback.
func (r *LabelResolver) Prefetch(ctx context.Context, ids []string) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)
	for _, id := range ids {
		g.Go(func() error {
			r.LabelOf(gCtx, id)
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()
}

func (r *LabelResolver) fetch(ctx context.Context, id string) string {
	for _, lang := range []string{r.prefLang, r.fallback} {
		query := fmt.Sprintf(`
          SELECT ?l WHERE {
            wd:%s rdfs:label ?l .
            FILTER(LANG(?l)=%q)
          } LIMIT 1
        `, id, lang)
		rows, err := r.client.Select(ctx, query)
		if err != nil {
			logger.Warn("[Labels] Lookup failed, using id as label", "id", id, "lang", lang, "error", err)
			return id
		}
		if len(rows) > 0 {
			if label, ok := rows[0].Value("l"); ok {
				return label
			}
		}
	}
	return id
}
