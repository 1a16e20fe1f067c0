package machine

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Machine is a coffee machine produced by the Registry.
//
// A Machine is either a prototype (owned by the Registry, never mutated)
// or a produced instance (owned exclusively by the caller). Produced
// instances share no mutable state with their prototype or each other.
type Machine struct {
	ID           string    `json:"id"`
	Variant      Variant   `json:"variant"`
	Name         string    `json:"name"`
	Settings     Settings  `json:"settings,omitempty"`
	Accessories  []string  `json:"accessories,omitempty"`
	BrewCount    int       `json:"brew_count"`
	CalibratedAt time.Time `json:"calibrated_at"`
	ClonedFrom   string    `json:"cloned_from,omitempty"`
}

// Settings holds variant-specific brew settings as a nested map.
//
// Examples:
//
//	Simple:   {"cup_ml": 200, "strength": "medium"}
//	Complex:  {"cup_ml": 250, "grinder": {"burr": "conical", "steps": 40}}
//	Espresso: {"pressure_bar": 9, "shots": 2, "profile": [92, 93, 94]}
//
// Values must be nil, strings, booleans, numbers, []any or map[string]any
// so that DeepCopy can clone them completely.
type Settings map[string]any

// Message returns the completion line for the machine's variant.
func (m *Machine) Message() string {
	switch m.Variant {
	case VariantSimple:
		return "Brewing simple coffee!"
	case VariantComplex:
		return "Brewing complex coffee!"
	case VariantEspresso:
		return "Brewing espresso!"
	default:
		return fmt.Sprintf("Brewing %s!", m.Variant)
	}
}

// Brew performs the variant's brew and writes the completion line to w.
// It increments BrewCount on the machine it is called on.
func (m *Machine) Brew(w io.Writer) error {
	m.BrewCount++
	if _, err := fmt.Fprintln(w, m.Message()); err != nil {
		return fmt.Errorf("brewing %s: %w", m.Variant, err)
	}
	return nil
}

// Clone duplicates the machine without re-running prototype construction.
// The duplicate gets a fresh ID, records its source in ClonedFrom and
// starts with a zero BrewCount. Cloning a produced machine behaves the
// same as producing from the prototype it came from.
func (m *Machine) Clone() *Machine {
	if m == nil {
		return nil
	}
	cpy := m.DeepCopy()
	cpy.ID = uuid.NewString()
	cpy.ClonedFrom = m.ID
	cpy.BrewCount = 0
	return cpy
}

// DeepCopy creates a complete independent copy of the Machine, ID included.
// All map and slice fields are cloned so modifications to the copy
// do not affect the original.
func (m *Machine) DeepCopy() *Machine {
	if m == nil {
		return nil
	}

	cpy := *m // Shallow copy of value fields

	cpy.Settings = deepCopyMap(m.Settings)

	if m.Accessories != nil {
		cpy.Accessories = make([]string, len(m.Accessories))
		copy(cpy.Accessories, m.Accessories)
	}

	return &cpy
}

// deepCopyMap creates a deep copy of a map[string]any.
// Nested maps and slices are recursively copied.
func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cpy := make(map[string]any, len(m))
	for k, v := range m {
		cpy[k] = deepCopyValue(v)
	}
	return cpy
}

// deepCopyValue recursively copies a value, handling nested maps and slices.
func deepCopyValue(v any) any {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case Settings:
		return Settings(deepCopyMap(val))
	case []any:
		cpy := make([]any, len(val))
		for i, elem := range val {
			cpy[i] = deepCopyValue(elem)
		}
		return cpy
	default:
		// Primitives (string, bool, int, float64, etc.) are safe to copy by value
		return v
	}
}
