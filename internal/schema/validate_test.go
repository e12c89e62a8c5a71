package schema

import "testing"

func findViolation(violations []Violation, field, rule string) *Violation {
	for i := range violations {
		if violations[i].Field == field && violations[i].Rule == rule {
			return &violations[i]
		}
	}
	return nil
}

func TestValidateStringLengthWithinBounds(t *testing.T) {
	violations := Validate(TypeString, AttributeBag{AttrLength: float64(300)})
	if len(violations) != 0 {
		t.Fatalf("length 300 should be valid for string, got %v", violations)
	}

	violations = Validate(TypeString, AttributeBag{AttrLength: float64(70000)})
	if findViolation(violations, AttrLength, "max") == nil {
		t.Fatalf("length 70000 should exceed string max, got %v", violations)
	}

	violations = Validate(TypeString, AttributeBag{AttrLength: float64(0)})
	if findViolation(violations, AttrLength, "min") == nil {
		t.Fatalf("length 0 should be below string min, got %v", violations)
	}
}

func TestValidateDecimalPrecisionBelowMin(t *testing.T) {
	violations := Validate(TypeDecimal, AttributeBag{AttrPrecision: float64(0)})
	if findViolation(violations, AttrPrecision, "min") == nil {
		t.Fatalf("precision 0 should be below decimal min, got %v", violations)
	}
}

func TestValidateScaleNeverExceedsPrecision(t *testing.T) {
	// The rule holds for every type, not just decimal.
	for _, typ := range []FieldTypeID{TypeDecimal, TypeFloat, TypeString} {
		violations := Validate(typ, AttributeBag{
			AttrPrecision: float64(5),
			AttrScale:     float64(8),
		})
		if findViolation(violations, AttrScale, "scale_precision") == nil {
			t.Fatalf("%s: scale 8 > precision 5 should violate, got %v", typ, violations)
		}
	}

	violations := Validate(TypeDecimal, AttributeBag{
		AttrPrecision: float64(8),
		AttrScale:     float64(5),
	})
	if findViolation(violations, AttrScale, "scale_precision") != nil {
		t.Fatalf("scale 5 <= precision 8 should pass, got %v", violations)
	}
}

func TestValidateZeroIsPresent(t *testing.T) {
	// Scale 0 is a value, not an absence: no required or bound violation.
	violations := Validate(TypeDecimal, AttributeBag{
		AttrPrecision: float64(10),
		AttrScale:     float64(0),
	})
	if len(violations) != 0 {
		t.Fatalf("precision=10 scale=0 should be valid, got %v", violations)
	}
}

func TestValidateRequiredAbsentVariants(t *testing.T) {
	// enum requires a picklist: missing key, nil and empty string are all absent.
	for name, bag := range map[string]AttributeBag{
		"missing": {},
		"nil":     {AttrPicklist: nil},
		"empty":   {AttrPicklist: ""},
	} {
		violations := Validate(TypeEnum, bag)
		if findViolation(violations, AttrPicklist, "required") == nil {
			t.Fatalf("%s picklist should violate required, got %v", name, violations)
		}
	}

	violations := Validate(TypeEnum, AttributeBag{AttrPicklist: "red,green,blue"})
	if findViolation(violations, AttrPicklist, "required") != nil {
		t.Fatalf("present picklist should pass, got %v", violations)
	}
}

func TestValidateReferenceRequiresTarget(t *testing.T) {
	violations := Validate(TypeReference, AttributeBag{})
	if findViolation(violations, AttrRefTable, "required") == nil {
		t.Fatalf("reference without ref_table should violate, got %v", violations)
	}
	if findViolation(violations, AttrRefField, "required") == nil {
		t.Fatalf("reference without ref_field should violate, got %v", violations)
	}

	violations = Validate(TypeReference, AttributeBag{
		AttrRefTable: "contacts",
		AttrRefField: "id",
	})
	if len(violations) != 0 {
		t.Fatalf("complete reference should pass, got %v", violations)
	}
}

func TestValidatePrimaryKeyNullableConflict(t *testing.T) {
	violations := Validate(TypeID, AttributeBag{
		AttrIsPrimaryKey: true,
		AttrAllowNull:    true,
	})
	v := findViolation(violations, AttrAllowNull, "conflict")
	if v == nil {
		t.Fatalf("primary key + allow null should conflict on allow_null, got %v", violations)
	}

	violations = Validate(TypeID, AttributeBag{
		AttrIsPrimaryKey: true,
		AttrAllowNull:    false,
	})
	if findViolation(violations, AttrAllowNull, "conflict") != nil {
		t.Fatalf("non-null primary key should pass, got %v", violations)
	}
}

func TestValidateAccumulatesAllViolations(t *testing.T) {
	// One bag, several independent problems: all reported at once.
	violations := Validate(TypeDecimal, AttributeBag{
		AttrPrecision: float64(0),
		AttrScale:     float64(40),
	})
	if findViolation(violations, AttrPrecision, "min") == nil {
		t.Fatalf("missing precision violation: %v", violations)
	}
	if findViolation(violations, AttrScale, "max") == nil {
		t.Fatalf("missing scale max violation: %v", violations)
	}
	if findViolation(violations, AttrScale, "scale_precision") == nil {
		t.Fatalf("missing scale>precision violation: %v", violations)
	}
}

func TestValidateDeterminism(t *testing.T) {
	bag := AttributeBag{
		AttrPrecision:    float64(0),
		AttrScale:        float64(40),
		AttrIsPrimaryKey: true,
		AttrAllowNull:    true,
	}
	first := Validate(TypeDecimal, bag)
	second := Validate(TypeDecimal, bag)
	if len(first) != len(second) {
		t.Fatalf("violation count changed between identical calls: %d vs %d", len(first), len(second))
	}
	for _, v := range first {
		if findViolation(second, v.Field, v.Rule) == nil {
			t.Fatalf("violation %s/%s missing from second run", v.Field, v.Rule)
		}
	}
}

func TestValidateNewFieldNameRules(t *testing.T) {
	violations := ValidateNewField(TypeString, AttributeBag{AttrName: "created_date"})
	if findViolation(violations, AttrName, "reserved") == nil {
		t.Fatalf("created_date should be reserved, got %v", violations)
	}

	violations = ValidateNewField(TypeString, AttributeBag{AttrName: "9lives"})
	if findViolation(violations, AttrName, "format") == nil {
		t.Fatalf("leading digit should violate format, got %v", violations)
	}

	violations = ValidateNewField(TypeString, AttributeBag{})
	if findViolation(violations, AttrName, "required") == nil {
		t.Fatalf("missing name should violate, got %v", violations)
	}

	long := "f"
	for len(long) <= maxIdentifierLen {
		long += "f"
	}
	violations = ValidateNewField(TypeString, AttributeBag{AttrName: long})
	if findViolation(violations, AttrName, "max_length") == nil {
		t.Fatalf("65-char name should violate, got %v", violations)
	}

	violations = ValidateNewField(TypeString, AttributeBag{AttrName: "_display_name"})
	if len(violations) != 0 {
		t.Fatalf("valid name should pass, got %v", violations)
	}
}

func TestValidIdentifier(t *testing.T) {
	for _, good := range []string{"a", "_x", "field_1", "CamelCase"} {
		if !ValidIdentifier(good) {
			t.Fatalf("%q should be a valid identifier", good)
		}
	}
	for _, bad := range []string{"", "1field", "with space", "dash-ed", "ünïcode"} {
		if ValidIdentifier(bad) {
			t.Fatalf("%q should not be a valid identifier", bad)
		}
	}
}

func TestValidatePanicsOnUnknownType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown type")
		}
	}()
	Validate("flux_capacitor", AttributeBag{})
}
