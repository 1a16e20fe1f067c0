package machine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxNameLength is the maximum length of a machine display name.
const MaxNameLength = 100

// PrototypeSpec describes how to construct the prototype for one Variant.
// A zero PrototypeSpec is valid and yields the variant's default name.
type PrototypeSpec struct {
	Name        string
	Settings    Settings
	Accessories []string
}

// defaultNames are used when a PrototypeSpec leaves Name empty.
var defaultNames = map[Variant]string{
	VariantSimple:   "Simple Coffee Machine",
	VariantComplex:  "Complex Coffee Machine",
	VariantEspresso: "Espresso Machine",
}

// newPrototype runs the full construction path for a Variant: settings
// validation, defaulting and calibration. Produced machines never repeat
// this; they are cloned from the result.
func newPrototype(v Variant, spec PrototypeSpec, now time.Time) (*Machine, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}

	name := strings.TrimSpace(spec.Name)
	if name == "" {
		name = defaultNames[v]
	}
	if len(name) > MaxNameLength {
		return nil, fmt.Errorf("%w: %s name exceeds %d characters", ErrInvalidPrototype, v, MaxNameLength)
	}

	if err := validateSettings(spec.Settings, "settings"); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPrototype, v, err)
	}

	for i, acc := range spec.Accessories {
		if strings.TrimSpace(acc) == "" {
			return nil, fmt.Errorf("%w: %s accessory %d is empty", ErrInvalidPrototype, v, i)
		}
	}

	proto := &Machine{
		ID:           uuid.NewString(),
		Variant:      v,
		Name:         name,
		Settings:     deepCopyMap(spec.Settings),
		CalibratedAt: now.UTC(),
	}
	if spec.Accessories != nil {
		proto.Accessories = make([]string, len(spec.Accessories))
		copy(proto.Accessories, spec.Accessories)
	}
	return proto, nil
}

// validateSettings rejects values that DeepCopy cannot clone, which would
// otherwise leak shared state between produced machines.
func validateSettings(m map[string]any, path string) error {
	for k, v := range m {
		if k == "" {
			return fmt.Errorf("%s has an empty key", path)
		}
		if err := validateValue(v, path+"."+k); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(v any, path string) error {
	switch val := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	case map[string]any:
		return validateSettings(val, path)
	case Settings:
		return validateSettings(val, path)
	case []any:
		for i, elem := range val {
			if err := validateValue(elem, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%s has unsupported type %T", path, v)
	}
}
