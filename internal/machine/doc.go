// Package machine provides the prototype Machine Registry for Brew Core.
//
// The Registry builds one exemplar ("prototype") per coffee machine
// Variant at startup. Every machine handed to a caller afterwards is a
// clone of the matching prototype, so the variant's construction path
// (settings validation, calibration) runs exactly once per process.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                        Machine Registry                         │
//	│                                                                 │
//	│  ┌──────────────────┐   Clone()   ┌──────────────────────────┐  │
//	│  │    Prototypes    │────────────▶│   Produced Machines      │  │
//	│  │  (registry.go)   │             │   (owned by the caller)  │  │
//	│  │                  │             │                          │  │
//	│  │ • simple         │             │ • fresh ID               │  │
//	│  │ • complex        │             │ • deep-copied settings   │  │
//	│  │ • espresso       │             │ • Brew(w)                │  │
//	│  └──────────────────┘             └──────────────────────────┘  │
//	│           ▲                                                     │
//	│           │ newPrototype() (prototype.go)                       │
//	└───────────│─────────────────────────────────────────────────────┘
//	            │
//	┌──────────────────────┐
//	│  config.yaml         │
//	│  prototypes: {...}   │
//	└──────────────────────┘
//
// # Key Types
//
//   - Variant: closed set of machine kinds (simple, complex, espresso)
//   - Machine: a prototype or a produced machine
//   - PrototypeSpec: construction settings for one Variant
//   - UnknownVariantPolicy: fallback to the default variant, or reject
//
// # Usage
//
//	registry := machine.NewRegistry(machine.Options{
//	    DefaultVariant: machine.VariantSimple,
//	    UnknownVariant: machine.PolicyFallback,
//	})
//	registry.SetLogger(log)
//
//	if err := registry.Initialize(ctx); err != nil {
//	    return err
//	}
//
//	m, err := registry.Produce(machine.VariantEspresso)
//	if err != nil {
//	    return err
//	}
//	m.Brew(os.Stdout) // Brewing espresso!
//
//	again := m.Clone()
//	again.Brew(os.Stdout) // Brewing espresso!
//
// # Thread Safety
//
// Prototypes are read-only once Initialize returns. Produce takes a read
// lock only and is safe for concurrent use. Produced machines are not
// safe for concurrent use; each belongs to a single caller.
package machine
