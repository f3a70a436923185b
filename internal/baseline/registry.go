// Package baseline resolves named baseline figures for estimate instructions.
package baseline

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownBaseline is returned when a reference is known neither to the
// remote registry nor to the built-in presets.
var ErrUnknownBaseline = eris.New("unknown baseline reference")

// Presets are the documented reference figures the estimators were
// calibrated against.
var Presets = map[string]int{
	"jleague_urawa_omiya": 820000,  // annual J.League attendance, Urawa + Omiya
	"saitama_2025_q1":     2936600, // Saitama visitors, 2025 Jan-Mar
}

const (
	defaultTimeout     = 2 * time.Second
	defaultCacheSize   = 256
	defaultCacheTTL    = 10 * time.Minute
	defaultConcurrency = 4
)

// Options configures a Registry. A blank URL disables remote lookups.
type Options struct {
	URL         string
	Timeout     time.Duration
	CacheSize   int
	CacheTTL    time.Duration
	Concurrency int
}

// Registry looks baselines up in a remote registry with an expiring cache in
// front, falling back to Presets.
type Registry struct {
	url         string
	client      *http.Client
	cache       *expirable.LRU[string, int]
	concurrency int
}

type baselineResponse struct {
	Ref   string `json:"ref"`
	Value int    `json:"value"`
}

// New creates a Registry. Zero option values take defaults.
func New(opts Options) *Registry {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	r := &Registry{
		url:         opts.URL,
		cache:       expirable.NewLRU[string, int](opts.CacheSize, nil, opts.CacheTTL),
		concurrency: opts.Concurrency,
	}
	if r.url != "" {
		r.client = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return r
}

// Resolve returns the value for ref.
func (r *Registry) Resolve(ctx context.Context, ref string) (int, error) {
	if v, ok := r.cache.Get(ref); ok {
		return v, nil
	}

	if r.client != nil {
		v, err := r.fetch(ctx, ref)
		if err == nil {
			r.cache.Add(ref, v)
			return v, nil
		}
		if ctx.Err() != nil {
			return 0, eris.Wrap(ctx.Err(), "baseline: resolve")
		}
		zap.L().Debug("baseline: remote lookup failed, using presets",
			zap.String("ref", ref), zap.Error(err))
	}

	if v, ok := Presets[ref]; ok {
		return v, nil
	}
	return 0, eris.Wrapf(ErrUnknownBaseline, "baseline: ref %q", ref)
}

// ResolveAll resolves refs concurrently. Unknown refs are left out of the
// returned map; only context cancellation is reported as an error.
func (r *Registry) ResolveAll(ctx context.Context, refs []string) (map[string]int, error) {
	result := make(map[string]int, len(refs))
	if len(refs) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if _, dup := seen[ref]; dup || ref == "" {
			continue
		}
		seen[ref] = struct{}{}

		ref := ref
		g.Go(func() error {
			v, err := r.Resolve(gctx, ref)
			if err != nil {
				if eris.Is(err, ErrUnknownBaseline) {
					return nil
				}
				return err
			}
			mu.Lock()
			result[ref] = v
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Registry) fetch(ctx context.Context, ref string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url+"/baselines/"+url.PathEscape(ref), nil)
	if err != nil {
		return 0, eris.Wrap(err, "baseline: build request")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, eris.Wrap(err, "baseline: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, eris.Errorf("baseline: registry returned status %d", resp.StatusCode)
	}

	var br baselineResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return 0, eris.Wrap(err, "baseline: decode response")
	}
	return br.Value, nil
}
