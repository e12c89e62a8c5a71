package schema

import (
	"fmt"
	"regexp"
)

// identifierPattern is shared by field names, relationship names and
// aliases. Max length is checked separately so the message can say so.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const maxIdentifierLen = 64

// reservedFieldNames are managed by the platform and cannot be declared
// on newly created fields.
var reservedFieldNames = map[string]bool{
	"id":                 true,
	"created_date":       true,
	"last_modified_date": true,
}

// ValidIdentifier reports whether name satisfies the shared identifier
// format rule.
func ValidIdentifier(name string) bool {
	return name != "" && len(name) <= maxIdentifierLen && identifierPattern.MatchString(name)
}

// CheckIdentifier returns a violation for the given attribute if name
// breaks the identifier rule, or nil.
func CheckIdentifier(attr, name string) *Violation {
	if name == "" {
		return &Violation{Field: attr, Rule: "required", Message: attr + " is required"}
	}
	if len(name) > maxIdentifierLen {
		return &Violation{
			Field: attr, Rule: "max_length",
			Message: fmt.Sprintf("%s must be at most %d characters", attr, maxIdentifierLen),
		}
	}
	if !identifierPattern.MatchString(name) {
		return &Violation{
			Field: attr, Rule: "format",
			Message: attr + " must start with a letter or underscore and contain only letters, digits and underscores",
		}
	}
	return nil
}

// IsReservedFieldName reports whether name is platform-managed.
func IsReservedFieldName(name string) bool {
	return reservedFieldNames[name]
}

// Validate runs the pure attribute-bag validation pass for a field type.
// Every check runs; violations accumulate and none short-circuits another.
// An empty result means the bag is valid for the type.
//
// The type must be a catalog member; an unknown id panics like MustConfig.
// Callers handling untrusted input gate with KnownType first and report
// the unknown type as their own violation.
func Validate(t FieldTypeID, attrs AttributeBag) []Violation {
	cfg := MustConfig(t)

	var out []Violation

	// 1. Required attributes. Missing keys, nil and empty strings are
	// absent; numeric zero is a present value.
	for _, attr := range cfg.Validation.Required {
		if isAbsent(attrs[attr]) {
			out = append(out, Violation{
				Field: attr, Rule: "required",
				Message: fmt.Sprintf("%s is required for type %s", attr, t),
			})
		}
	}

	// 2. Length bounds.
	if length, ok := numericAttr(attrs, AttrLength); ok {
		if cfg.Validation.MinLength > 0 && length < float64(cfg.Validation.MinLength) {
			out = append(out, Violation{
				Field: AttrLength, Rule: "min",
				Message: fmt.Sprintf("length must be at least %d", cfg.Validation.MinLength),
			})
		}
		if cfg.Validation.MaxLength > 0 && length > float64(cfg.Validation.MaxLength) {
			out = append(out, Violation{
				Field: AttrLength, Rule: "max",
				Message: fmt.Sprintf("length must be at most %d", cfg.Validation.MaxLength),
			})
		}
	}

	// 3. Precision and scale bounds.
	precision, hasPrecision := numericAttr(attrs, AttrPrecision)
	scale, hasScale := numericAttr(attrs, AttrScale)
	if hasPrecision {
		if cfg.Validation.MinPrecision > 0 && precision < float64(cfg.Validation.MinPrecision) {
			out = append(out, Violation{
				Field: AttrPrecision, Rule: "min",
				Message: fmt.Sprintf("precision must be at least %d", cfg.Validation.MinPrecision),
			})
		}
		if cfg.Validation.MaxPrecision > 0 && precision > float64(cfg.Validation.MaxPrecision) {
			out = append(out, Violation{
				Field: AttrPrecision, Rule: "max",
				Message: fmt.Sprintf("precision must be at most %d", cfg.Validation.MaxPrecision),
			})
		}
	}
	if hasScale && cfg.Validation.MaxScale > 0 && scale > float64(cfg.Validation.MaxScale) {
		out = append(out, Violation{
			Field: AttrScale, Rule: "max",
			Message: fmt.Sprintf("scale must be at most %d", cfg.Validation.MaxScale),
		})
	}

	// 4. Scale can never exceed precision, whatever the type declares.
	if hasPrecision && hasScale && scale > precision {
		out = append(out, Violation{
			Field: AttrScale, Rule: "scale_precision",
			Message: "scale cannot exceed precision",
		})
	}

	// 5. Incompatible attribute pairs, scoped to the trigger attribute.
	for _, rule := range cfg.Incompatible {
		if !valueEqual(attrs[rule.Attr], rule.Value) {
			continue
		}
		for _, conflict := range rule.Values {
			if valueEqual(attrs[rule.ConflictsWith], conflict) {
				msg := rule.Message
				if msg == "" {
					msg = fmt.Sprintf("%s=%v conflicts with %s=%v",
						rule.Attr, rule.Value, rule.ConflictsWith, conflict)
				}
				out = append(out, Violation{Field: rule.Attr, Rule: "conflict", Message: msg})
				break
			}
		}
	}

	return out
}

// ValidateNewField is the top-level gate for creating a field: identifier
// format, reserved-name denylist, then the type-specific pass.
func ValidateNewField(t FieldTypeID, attrs AttributeBag) []Violation {
	var out []Violation

	name, _ := attrs[AttrName].(string)
	if v := CheckIdentifier(AttrName, name); v != nil {
		out = append(out, *v)
	} else if IsReservedFieldName(name) {
		out = append(out, Violation{
			Field: AttrName, Rule: "reserved",
			Message: fmt.Sprintf("%s is a reserved field name", name),
		})
	}

	return append(out, Validate(t, attrs)...)
}

// isAbsent implements the shared absence rule: missing, nil, or empty
// string. Zero is present.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// numericAttr extracts a numeric attribute if present. Absent values
// (including empty strings from cleared form inputs) report ok=false.
func numericAttr(attrs AttributeBag, key string) (float64, bool) {
	v, exists := attrs[key]
	if !exists || isAbsent(v) {
		return 0, false
	}
	return toFloat64(v)
}

// toFloat64 converts the numeric scalar shapes a decoded JSON bag can hold.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

// valueEqual compares bag scalars loosely enough that 1 and 1.0 match
// after a JSON round trip, without treating absent as equal to anything.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	if af, aok := toFloat64(a); aok {
		if bf, bok := toFloat64(b); bok {
			return af == bf
		}
		return false
	}
	return a == b
}
