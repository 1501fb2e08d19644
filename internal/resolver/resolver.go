// Package resolver is the adapter facade. It picks the official or legacy
// source once per process, validates identifiers, runs the database and page
// fallbacks, and returns record maps. Benign misses come back as empty record
// maps, never as errors.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mesh-intelligence/notionmap/internal/assemble"
	"github.com/mesh-intelligence/notionmap/internal/ident"
	"github.com/mesh-intelligence/notionmap/internal/legacy"
	"github.com/mesh-intelligence/notionmap/internal/official"
	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// TracerName names the tracer spans are recorded under.
const TracerName = "notionmap/resolver"

// Source names used in logs and span attributes.
const (
	SourceOfficial = "official"
	SourceLegacy   = "legacy"
)

// LegacyClient is the capability set the resolver needs from the legacy
// source.
type LegacyClient interface {
	GetPage(ctx context.Context, pageID string) (*types.RecordMap, error)
	GetBlocks(ctx context.Context, blockIDs []string) (*types.RecordMap, error)
}

// Options customize a Resolver. Nil fields select the defaults.
type Options struct {
	// NewOfficial builds the official client. Defaults to the SDK client.
	NewOfficial func(token string) (official.Client, error)

	// NewLegacy builds the legacy client. Defaults to legacy.New.
	NewLegacy func(cfg types.Config) LegacyClient

	Logger *slog.Logger
	Tracer trace.Tracer
}

// Resolver implements types.Source. It is safe for concurrent use.
type Resolver struct {
	cfg     types.Config
	rootID  string
	opts    Options
	logger  *slog.Logger
	tracer  trace.Tracer
	current atomic.Pointer[handle]
}

// handle is the selected source. Exactly one of the clients is set.
type handle struct {
	name     string
	official official.Client
	legacy   LegacyClient
}

// New creates a Resolver. No client is built until the first call.
func New(cfg types.Config, opts Options) *Resolver {
	if opts.NewOfficial == nil {
		opts.NewOfficial = func(token string) (official.Client, error) {
			c, err := official.NewSDKClient(token, nil)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
	}
	if opts.NewLegacy == nil {
		opts.NewLegacy = func(cfg types.Config) LegacyClient {
			return legacy.New(legacy.Config{TokenV2: cfg.TokenV2, ActiveUser: cfg.ActiveUser})
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "resolver")
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	rootID, _ := ident.Canonicalize(cfg.RootID)
	return &Resolver{cfg: cfg, rootID: rootID, opts: opts, logger: logger, tracer: tracer}
}

// Source reports which source is selected, or "" before the first call.
func (r *Resolver) Source() string {
	if h := r.current.Load(); h != nil {
		return h.name
	}
	return ""
}

// source returns the selected handle, building it on first use. Racing
// callers may each build one; the first stored wins and the rest are
// discarded.
func (r *Resolver) source(ctx context.Context) *handle {
	if h := r.current.Load(); h != nil {
		return h
	}
	h := r.build(ctx)
	if r.current.CompareAndSwap(nil, h) {
		r.logger.InfoContext(ctx, "notion source selected", "source", h.name)
		return h
	}
	return r.current.Load()
}

func (r *Resolver) build(ctx context.Context) *handle {
	if r.cfg.UseOfficialAPI && r.cfg.IntegrationToken != "" {
		c, err := r.opts.NewOfficial(r.cfg.IntegrationToken)
		if err == nil {
			return &handle{name: SourceOfficial, official: c}
		}
		r.logger.WarnContext(ctx, "official client unavailable, using legacy source", "error", err)
	}
	return r.legacyHandle()
}

func (r *Resolver) legacyHandle() *handle {
	return &handle{name: SourceLegacy, legacy: r.opts.NewLegacy(r.cfg)}
}

// demote permanently replaces an official handle with a legacy one and
// returns the handle now in effect.
func (r *Resolver) demote(ctx context.Context, from *handle, cause error) *handle {
	if from.legacy != nil {
		return from
	}
	to := r.legacyHandle()
	if r.current.CompareAndSwap(from, to) {
		r.logger.WarnContext(ctx, "official source setup failed, falling back to legacy for the process lifetime",
			"error", cause)
		return to
	}
	return r.current.Load()
}

func (r *Resolver) walker(c official.Client) *assemble.Walker {
	return assemble.NewWalker(c, r.cfg.EffectivePageSize(), r.logger)
}

// GetRecordMap resolves id to a record map. The placeholder id and ids that
// cannot be canonicalized yield an empty record map without contacting any
// source, as does an id that no fallback tier can find.
func (r *Resolver) GetRecordMap(ctx context.Context, id string) (*types.RecordMap, error) {
	ctx, span := r.tracer.Start(ctx, "resolver.get_record_map")
	defer span.End()

	if id == types.PlaceholderID {
		r.logger.DebugContext(ctx, "placeholder id, returning empty record map")
		return types.NewRecordMap(), nil
	}
	canonical, ok := ident.Canonicalize(id)
	if !ok {
		r.logger.DebugContext(ctx, "invalid id, returning empty record map", "id", id)
		return types.NewRecordMap(), nil
	}

	h := r.source(ctx)
	span.SetAttributes(attribute.String("notion.id", canonical))

	m, err := r.getRecordMap(ctx, h, canonical)
	span.SetAttributes(attribute.String("notion.source", r.Source()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("notion.blocks", len(m.Block)))
	return m, nil
}

func (r *Resolver) getRecordMap(ctx context.Context, h *handle, id string) (*types.RecordMap, error) {
	if h.official != nil {
		s, err := r.resolveShape(ctx, h.official, id)
		if err == nil {
			if s == nil {
				r.logger.DebugContext(ctx, "id not found in any tier, returning empty record map", "id", id)
				return types.NewRecordMap(), nil
			}
			return s.assemble(), nil
		}
		if !errors.Is(err, official.ErrSetup) {
			return nil, err
		}
		h = r.demote(ctx, h, err)
	}
	return h.legacy.GetPage(ctx, id)
}
