package fieldlayout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cespare/xxhash/v2"
	loamAdapter "github.com/flexile/fieldlayout/pkg/adapters/loam"
	"github.com/flexile/fieldlayout/pkg/adapters/memory"
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/forms"
	"github.com/flexile/fieldlayout/pkg/grouping"
	"github.com/flexile/fieldlayout/pkg/observability"
	"github.com/flexile/fieldlayout/pkg/ports"
	"github.com/flexile/fieldlayout/pkg/schema"
)

// Engine is the high-level entry point of the library.
// It is safe for concurrent use as long as its adapters are.
type Engine struct {
	loader       ports.FormLoader
	cache        ports.LayoutCache
	logger       *slog.Logger
	metrics      *observability.Metrics
	dir          string
	defaultPairs []grouping.Pair
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom FormLoader.
func WithLoader(l ports.FormLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithDirectory loads forms from a directory of YAML, JSON or Markdown documents.
// Ignored when WithLoader is also given.
func WithDirectory(dir string) Option {
	return func(e *Engine) {
		e.dir = dir
	}
}

// WithCache enables layout caching.
func WithCache(c ports.LayoutCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records engine activity on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithDefaultPairs replaces forms.DefaultPairs for forms that declare no pairs
// and for ad hoc grouping.
func WithDefaultPairs(pairs []grouping.Pair) Option {
	return func(e *Engine) {
		e.defaultPairs = pairs
	}
}

// New initializes an Engine.
// Without WithLoader or WithDirectory it serves the built-in forms.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{defaultPairs: forms.DefaultPairs}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if eng.dir != "" {
			loader, err := loamAdapter.Open(eng.dir)
			if err != nil {
				return nil, err
			}
			eng.loader = loader
		} else {
			builtin, err := memory.NewLoader(forms.Builtin()...)
			if err != nil {
				return nil, fmt.Errorf("failed to load built-in forms: %w", err)
			}
			eng.loader = builtin
		}
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return eng, nil
}

// Forms returns the IDs of the available forms.
func (e *Engine) Forms(ctx context.Context) ([]string, error) {
	return e.loader.ListForms(ctx)
}

// Form returns a form definition with its effective pair rules.
func (e *Engine) Form(ctx context.Context, id string) (domain.Form, error) {
	form, err := e.loader.GetForm(ctx, id)
	if err != nil {
		return domain.Form{}, err
	}
	if len(form.Pairs) == 0 {
		form.Pairs = append([]grouping.Pair(nil), e.defaultPairs...)
	}
	return form, nil
}

// Layout returns the grouped layout of a form, from the cache when the form
// has not changed since it was computed.
func (e *Engine) Layout(ctx context.Context, id string) (domain.Layout, error) {
	form, err := e.Form(ctx, id)
	if err != nil {
		return domain.Layout{}, err
	}

	fingerprint, err := Fingerprint(form)
	if err != nil {
		return domain.Layout{}, err
	}
	key := form.ID + ":" + fingerprint

	if e.cache != nil {
		cached, err := e.cache.Get(ctx, key)
		switch {
		case err == nil:
			e.metrics.ObserveCache(observability.CacheHit)
			e.logger.Debug("layout cache hit", "form", form.ID, "fingerprint", fingerprint)
			return cached, nil
		case errors.Is(err, domain.ErrLayoutNotCached):
			e.metrics.ObserveCache(observability.CacheMiss)
		default:
			e.metrics.ObserveCache(observability.CacheError)
			e.logger.Warn("layout cache lookup failed", "form", form.ID, "error", err)
		}
	}

	layout := e.group(form.ID, form.Fields, form.Pairs)
	layout.Fingerprint = fingerprint
	e.metrics.ObserveLayout(form.ID)
	e.logger.Debug("layout computed", "form", form.ID, "groups", len(layout.Groups))

	if e.cache != nil {
		if err := e.cache.Put(ctx, key, layout); err != nil {
			e.logger.Warn("layout cache store failed", "form", form.ID, "error", err)
		}
	}

	return layout, nil
}

// Group lays out an ad hoc list of fields. Nil pairs mean the default pairs;
// an empty, non-nil slice disables pairing.
func (e *Engine) Group(fields []domain.Field, pairs []grouping.Pair) domain.Layout {
	if pairs == nil {
		pairs = e.defaultPairs
	}
	return e.group("", fields, pairs)
}

func (e *Engine) group(formID string, fields []domain.Field, pairs []grouping.Pair) domain.Layout {
	layout := domain.NewLayout(formID, fields, pairs)

	paired := 0
	for _, g := range layout.Groups {
		if g.Paired {
			paired++
		}
	}
	e.metrics.ObserveGroups(paired, len(layout.Groups)-paired)
	return layout
}

// Validate checks submitted values against a form.
// Validation failures are returned as *schema.AggregateError.
func (e *Engine) Validate(ctx context.Context, id string, values map[string]any) error {
	form, err := e.Form(ctx, id)
	if err != nil {
		return err
	}
	err = schema.Validate(form, values)
	e.metrics.ObserveValidation(form.ID, err == nil)
	if err != nil {
		e.logger.Debug("form validation failed", "form", form.ID, "errors", len(schema.ValidationErrors(err)))
	}
	return err
}

// Loader returns the underlying FormLoader used by the engine.
func (e *Engine) Loader() ports.FormLoader {
	return e.loader
}

// Fingerprint hashes the parts of a form that affect its layout.
func Fingerprint(form domain.Form) (string, error) {
	data, err := json.Marshal(struct {
		Fields []domain.Field  `json:"fields"`
		Pairs  []grouping.Pair `json:"pairs"`
	}{form.Fields, form.Pairs})
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint form %s: %w", form.ID, err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
