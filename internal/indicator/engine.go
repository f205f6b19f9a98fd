package indicator

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Engine runs the indicator catalog over one evaluation context. Indicators
// only read the shared context and write their own slot, so parallel
// evaluation needs no locking.
type Engine struct {
	catalog  []Indicator
	svc      Services
	log      *slog.Logger
	parallel int
}

type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithParallelism bounds concurrent indicator evaluation. Zero or one keeps
// the run sequential.
func WithParallelism(n int) Option {
	return func(e *Engine) { e.parallel = n }
}

// WithCatalog replaces the default catalog, for tests that exercise a
// subset.
func WithCatalog(catalog []Indicator) Option {
	return func(e *Engine) { e.catalog = catalog }
}

// New builds an engine over the full catalog.
func New(svc Services, opts ...Option) *Engine {
	e := &Engine{
		catalog: Catalog(),
		svc:     svc,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run evaluates every cataloged indicator and returns one result per entry,
// catalog order. A misbehaving indicator is recovered into a zero-score
// result; nothing escapes as a fault.
func (e *Engine) Run(ctx context.Context, ec *Context) []Result {
	results := make([]Result, len(e.catalog))
	if e.parallel > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.parallel)
		for i, ind := range e.catalog {
			g.Go(func() error {
				results[i] = e.evaluate(gctx, ind, ec)
				return nil
			})
		}
		_ = g.Wait()
		return results
	}
	for i, ind := range e.catalog {
		results[i] = e.evaluate(ctx, ind, ec)
	}
	return results
}

func (e *Engine) evaluate(ctx context.Context, ind Indicator, ec *Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("indicator panicked", "code", ind.Code, "panic", r)
			res = Result{Code: ind.Code, Score: 0, Message: "The indicator could not be evaluated"}
		}
	}()
	res = ind.Eval(ctx, ec, e.svc)
	if res.Score < 0 {
		res.Score = 0
	}
	if res.Score > 100 {
		res.Score = 100
	}
	e.log.Debug("indicator evaluated", "code", ind.Code, "score", res.Score)
	return res
}
