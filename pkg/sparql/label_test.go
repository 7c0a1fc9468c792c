package sparql

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

// queryFunc adapts a function to the QueryRunner interface.
type queryFunc func(ctx context.Context, query string) (Rows, error)

func (f queryFunc) Select(ctx context.Context, query string) (Rows, error) {
	return f(ctx, query)
}

func TestLabelOf_Memoizes(t *testing.T) {
	var calls int
	r := NewLabelResolver(NewLabelResolverParams{
		Client: queryFunc(func(ctx context.Context, query string) (Rows, error) {
			calls++
			return Rows{{"l": "Sappho"}}, nil
		}),
	})

	for i := 0; i < 3; i++ {
		if got := r.LabelOf(context.Background(), "Q17892"); got != "Sappho" {
			t.Fatalf("expected label Sappho, got %q", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single upstream lookup, got %d", calls)
	}
}

func TestLabelOf_FallbackLanguage(t *testing.T) {
	r := NewLabelResolver(NewLabelResolverParams{
		PreferredLang: "en",
		FallbackLang:  "de",
		Client: queryFunc(func(ctx context.Context, query string) (Rows, error) {
			if strings.Contains(query, `"en"`) {
				return nil, nil
			}
			return Rows{{"l": "Die Räuber"}}, nil
		}),
	})

	if got := r.LabelOf(context.Background(), "Q155629"); got != "Die Räuber" {
		t.Fatalf("expected fallback language label, got %q", got)
	}
}

func TestLabelOf_IDOnFailure(t *testing.T) {
	var calls int
	r := NewLabelResolver(NewLabelResolverParams{
		Client: queryFunc(func(ctx context.Context, query string) (Rows, error) {
			calls++
			return nil, errors.New("endpoint down")
		}),
	})

	if got := r.LabelOf(context.Background(), "Q42"); got != "Q42" {
		t.Fatalf("expected id as label on failure, got %q", got)
	}
	// The fallback is cached too; a broken endpoint is not re-queried per use.
	if got := r.LabelOf(context.Background(), "Q42"); got != "Q42" {
		t.Fatalf("expected cached id fallback, got %q", got)
	}
	if calls != 1 {
		t.Fatalf("expected a single failed lookup, got %d", calls)
	}
}

func TestLabelOf_IDWhenNoLabelInAnyLanguage(t *testing.T) {
	var langs []string
	r := NewLabelResolver(NewLabelResolverParams{
		PreferredLang: "en",
		FallbackLang:  "de",
		Client: queryFunc(func(ctx context.Context, query string) (Rows, error) {
			for _, lang := range []string{`"en"`, `"de"`} {
				if strings.Contains(query, lang) {
					langs = append(langs, lang)
				}
			}
			return nil, nil
		}),
	})

	if got := r.LabelOf(context.Background(), "Q999"); got != "Q999" {
		t.Fatalf("expected id fallback, got %q", got)
	}
	if len(langs) != 2 {
		t.Fatalf("expected both languages tried, got %v", langs)
	}
}

func TestPrefetch_WarmsCache(t *testing.T) {
	var calls atomic.Int64
	r := NewLabelResolver(NewLabelResolverParams{
		PrefetchParallel: 2,
		Client: queryFunc(func(ctx context.Context, query string) (Rows, error) {
			calls.Add(1)
			return Rows{{"l": "x"}}, nil
		}),
	})

	r.Prefetch(context.Background(), []string{"Q1", "Q2", "Q3"})
	before := calls.Load()
	for _, id := range []string{"Q1", "Q2", "Q3"} {
		r.LabelOf(context.Background(), id)
	}
	if got := calls.Load(); got != before {
		t.Fatalf("expected no lookups after prefetch, got %d new", got-before)
	}
}
