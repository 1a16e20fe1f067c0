package machine

import (
	"fmt"
	"strconv"
	"strings"
)

// Variant identifies one of the known coffee machine kinds.
//
// The set is closed: every Variant has exactly one prototype in a
// Registry, and the integer values are stable identifiers that callers
// may pass on the command line.
type Variant int

// Known variants, in identifier order.
const (
	VariantSimple Variant = iota
	VariantComplex
	VariantEspresso
)

// variantNames maps each Variant to its canonical name.
var variantNames = map[Variant]string{
	VariantSimple:   "simple",
	VariantComplex:  "complex",
	VariantEspresso: "espresso",
}

// AllVariants returns every known Variant in identifier order.
func AllVariants() []Variant {
	return []Variant{VariantSimple, VariantComplex, VariantEspresso}
}

// String returns the canonical name, or "variant(N)" for unknown values.
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// IsValid reports whether v is one of the known variants.
func (v Variant) IsValid() bool {
	_, ok := variantNames[v]
	return ok
}

// VariantFromID converts an integer identifier to a Variant.
// Unknown identifiers are returned as-is with ok=false so that the
// Registry can apply its unknown-variant policy.
func VariantFromID(id int) (v Variant, ok bool) {
	v = Variant(id)
	return v, v.IsValid()
}

// ParseVariant resolves a canonical name (case-insensitive) or a decimal
// identifier to a Variant.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, name := range variantNames {
		if name == s {
			return v, nil
		}
	}
	if id, err := strconv.Atoi(s); err == nil {
		if v, ok := VariantFromID(id); ok {
			return v, nil
		}
		return Variant(id), fmt.Errorf("%w: %d", ErrUnknownVariant, id)
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}
