package machine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// UnknownVariantPolicy decides what Produce does with an unrecognised variant.
type UnknownVariantPolicy string

const (
	// PolicyFallback substitutes the default variant and logs a warning.
	PolicyFallback UnknownVariantPolicy = "fallback"

	// PolicyReject returns ErrUnknownVariant.
	PolicyReject UnknownVariantPolicy = "reject"
)

// ParsePolicy converts a policy name to an UnknownVariantPolicy.
// An empty string selects PolicyFallback.
func ParsePolicy(s string) (UnknownVariantPolicy, error) {
	switch p := UnknownVariantPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyFallback:
		return PolicyFallback, nil
	case PolicyReject:
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Options configures a Registry.
type Options struct {
	// Prototypes holds construction settings per Variant. Variants without
	// an entry are built from a zero PrototypeSpec.
	Prototypes map[Variant]PrototypeSpec

	// DefaultVariant is produced when PolicyFallback meets an unknown variant.
	DefaultVariant Variant

	// UnknownVariant selects the unknown-variant policy. Empty means PolicyFallback.
	UnknownVariant UnknownVariantPolicy

	// Now overrides the clock used to stamp prototype calibration.
	Now func() time.Time
}

// Registry holds one prototype per Variant and produces machines by
// cloning them.
//
// Prototypes are built once by Initialize and never mutated afterwards,
// so Produce only needs a read lock and is safe for concurrent use.
// The registry keeps no reference to the machines it produces.
type Registry struct {
	opts       Options
	prototypes map[Variant]*Machine // nil until Initialize succeeds
	mu         sync.RWMutex         // Protects prototypes
	logger     Logger

	produced  map[Variant]*atomic.Int64
	fallbacks atomic.Int64
}

// NewRegistry creates a new, uninitialised machine registry.
// Initialize must be called before Produce.
func NewRegistry(opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	produced := make(map[Variant]*atomic.Int64, len(variantNames))
	for _, v := range AllVariants() {
		produced[v] = new(atomic.Int64)
	}
	return &Registry{
		opts:     opts,
		logger:   noopLogger{},
		produced: produced,
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Initialize constructs exactly one prototype per known Variant.
//
// Any construction failure aborts initialisation and leaves the registry
// unusable; callers should treat it as fatal. Calling Initialize on an
// initialised registry returns ErrAlreadyInitialized.
func (r *Registry) Initialize(ctx context.Context) error {
	policy, err := ParsePolicy(string(r.opts.UnknownVariant))
	if err != nil {
		return err
	}
	if !r.opts.DefaultVariant.IsValid() {
		return fmt.Errorf("default variant: %w: %d", ErrUnknownVariant, int(r.opts.DefaultVariant))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.prototypes != nil {
		return ErrAlreadyInitialized
	}

	now := r.opts.Now()
	prototypes := make(map[Variant]*Machine, len(variantNames))
	for _, v := range AllVariants() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("initializing prototypes: %w", err)
		}
		proto, err := newPrototype(v, r.opts.Prototypes[v], now)
		if err != nil {
			return fmt.Errorf("building %s prototype: %w", v, err)
		}
		prototypes[v] = proto
		r.logger.Debug("prototype built", "variant", v.String(), "id", proto.ID, "name", proto.Name)
	}

	r.opts.UnknownVariant = policy
	r.prototypes = prototypes

	r.logger.Info("machine registry initialised",
		"prototypes", len(prototypes),
		"default_variant", r.opts.DefaultVariant.String(),
		"unknown_variant", string(policy),
	)
	return nil
}

// Produce returns a new machine cloned from the prototype for v.
//
// An unknown v is handled by the configured policy: PolicyFallback
// produces the default variant instead, PolicyReject returns
// ErrUnknownVariant. The returned machine is owned by the caller and
// shares no mutable state with the prototype.
func (r *Registry) Produce(v Variant) (*Machine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.prototypes == nil {
		return nil, ErrNotInitialized
	}

	proto, ok := r.prototypes[v]
	if !ok {
		if r.opts.UnknownVariant == PolicyReject {
			return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
		}
		r.logger.Warn("unknown variant requested, using default",
			"requested", int(v),
			"default", r.opts.DefaultVariant.String(),
		)
		r.fallbacks.Add(1)
		v = r.opts.DefaultVariant
		proto = r.prototypes[v]
	}

	m := proto.Clone()
	r.produced[v].Add(1)

	r.logger.Debug("machine produced", "variant", v.String(), "id", m.ID)
	return m, nil
}

// ProduceByID produces a machine from an integer variant identifier.
func (r *Registry) ProduceByID(id int) (*Machine, error) {
	return r.Produce(Variant(id))
}

// ProduceByName produces a machine from a variant name or decimal identifier.
// Names that are neither are treated as unknown variants under the
// registry's policy.
func (r *Registry) ProduceByName(name string) (*Machine, error) {
	v, err := ParseVariant(name)
	if err != nil {
		if r.Count() == 0 {
			return nil, ErrNotInitialized
		}
		if r.policy() == PolicyReject {
			return nil, err
		}
		if v.IsValid() {
			// unparseable name: ParseVariant returned the zero Variant
			v = Variant(-1)
		}
	}
	return r.Produce(v)
}

func (r *Registry) policy() UnknownVariantPolicy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.opts.UnknownVariant
}

// Count returns the number of prototypes held.
// It is zero before Initialize.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.prototypes)
}

// Variants returns the variants held by the registry in identifier order.
func (r *Registry) Variants() []Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variants := make([]Variant, 0, len(r.prototypes))
	for v := range r.prototypes {
		variants = append(variants, v)
	}
	slices.Sort(variants)
	return variants
}

// Stats returns registry statistics for monitoring.
type Stats struct {
	Prototypes int
	Produced   map[Variant]int64
	Fallbacks  int64
}

// Stats returns current registry statistics.
func (r *Registry) Stats() Stats {
	stats := Stats{
		Prototypes: r.Count(),
		Produced:   make(map[Variant]int64, len(r.produced)),
		Fallbacks:  r.fallbacks.Load(),
	}
	for v, n := range r.produced {
		stats.Produced[v] = n.Load()
	}
	return stats
}
