package main

import (
	"fmt"

	"github.com/nerrad567/brew-core/internal/infrastructure/config"
	"github.com/nerrad567/brew-core/internal/machine"
)

// registryOptions converts loaded configuration into machine.Options,
// resolving variant names against the registry's variant set.
func registryOptions(cfg *config.Config) (machine.Options, error) {
	defaultVariant, err := machine.ParseVariant(cfg.Registry.DefaultVariant)
	if err != nil {
		return machine.Options{}, fmt.Errorf("registry.default_variant: %w", err)
	}

	policy, err := machine.ParsePolicy(cfg.Registry.UnknownVariant)
	if err != nil {
		return machine.Options{}, fmt.Errorf("registry.unknown_variant: %w", err)
	}

	prototypes := make(map[machine.Variant]machine.PrototypeSpec, len(cfg.Prototypes))
	for name, pc := range cfg.Prototypes {
		v, err := machine.ParseVariant(name)
		if err != nil {
			return machine.Options{}, fmt.Errorf("prototypes.%s: %w", name, err)
		}
		if _, dup := prototypes[v]; dup {
			return machine.Options{}, fmt.Errorf("prototypes.%s: variant %s configured twice", name, v)
		}
		prototypes[v] = machine.PrototypeSpec{
			Name:        pc.Name,
			Settings:    pc.Settings,
			Accessories: pc.Accessories,
		}
	}

	return machine.Options{
		Prototypes:     prototypes,
		DefaultVariant: defaultVariant,
		UnknownVariant: policy,
	}, nil
}
