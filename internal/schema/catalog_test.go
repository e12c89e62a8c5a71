package schema

import "testing"

func TestCatalogTotality(t *testing.T) {
	if len(fieldTypeConfigs) != len(AllFieldTypes) {
		t.Fatalf("catalog has %d entries for %d declared types", len(fieldTypeConfigs), len(AllFieldTypes))
	}
	for _, id := range AllFieldTypes {
		cfg, err := Config(id)
		if err != nil {
			t.Fatalf("no catalog entry for %s: %v", id, err)
		}
		if cfg.Type != id {
			t.Fatalf("catalog entry for %s reports type %s", id, cfg.Type)
		}
		if cfg.Label == "" {
			t.Fatalf("catalog entry for %s has no label", id)
		}
	}
}

func TestConfigUnknownType(t *testing.T) {
	_, err := Config("flux_capacitor")
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	typeErr, ok := err.(*UnknownTypeError)
	if !ok {
		t.Fatalf("expected *UnknownTypeError, got %T", err)
	}
	if typeErr.Type != "flux_capacitor" {
		t.Fatalf("error carries wrong type: %s", typeErr.Type)
	}
}

func TestMustConfigPanicsOnUnknownType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown type")
		}
	}()
	MustConfig("flux_capacitor")
}

func TestTypesSupportedByEngineDeclarationOrder(t *testing.T) {
	supported := TypesSupportedByEngine(EngineMySQL)
	if len(supported) == 0 {
		t.Fatal("mysql should support at least one type")
	}

	// The result must be a subsequence of AllFieldTypes.
	i := 0
	for _, id := range supported {
		for i < len(AllFieldTypes) && AllFieldTypes[i] != id {
			i++
		}
		if i == len(AllFieldTypes) {
			t.Fatalf("type %s out of declaration order", id)
		}
	}

	// Determinism: a second call yields the identical slice.
	again := TypesSupportedByEngine(EngineMySQL)
	if len(again) != len(supported) {
		t.Fatalf("second call returned %d types, first %d", len(again), len(supported))
	}
	for i := range supported {
		if supported[i] != again[i] {
			t.Fatalf("order changed between calls at index %d", i)
		}
	}
}

func TestNativeTypePartiality(t *testing.T) {
	// Geometry is modeled as Postgres-only.
	if native, ok := NativeType(TypeGeometry, EngineMySQL); ok {
		t.Fatalf("geometry should not map on mysql, got %q", native)
	}
	native, ok := NativeType(TypeGeometry, EnginePostgreSQL)
	if !ok || native == "" {
		t.Fatalf("geometry should map on postgresql, got %q ok=%v", native, ok)
	}

	// mysql must not list geometry among its supported types.
	for _, id := range TypesSupportedByEngine(EngineMySQL) {
		if id == TypeGeometry {
			t.Fatal("mysql supported types include geometry")
		}
	}

	if _, ok := NativeType("flux_capacitor", EnginePostgreSQL); ok {
		t.Fatal("unknown type should not resolve a native type")
	}
	if _, ok := NativeType(TypeString, "dbase"); ok {
		t.Fatal("unknown engine should not resolve a native type")
	}
}

func TestEnabledControlsUnknownTypeIsAllFalse(t *testing.T) {
	controls := EnabledControls("flux_capacitor")
	if controls != (ControlSet{}) {
		t.Fatalf("expected zero control set, got %+v", controls)
	}
}

func TestDefaultAttributesReturnsCopy(t *testing.T) {
	first := DefaultAttributes(TypeString)
	if first[AttrLength] != 255 {
		t.Fatalf("string default length should be 255, got %v", first[AttrLength])
	}
	first[AttrLength] = 9999

	second := DefaultAttributes(TypeString)
	if second[AttrLength] != 255 {
		t.Fatalf("catalog defaults were mutated through a returned bag: %v", second[AttrLength])
	}
}

func TestSupportsCapability(t *testing.T) {
	if !SupportsCapability(TypeID, CapAutoIncrement) {
		t.Fatal("id should support auto increment")
	}
	if !SupportsCapability(TypeDecimal, CapPrecision) {
		t.Fatal("decimal should support precision")
	}
	if SupportsCapability(TypeBoolean, CapPicklist) {
		t.Fatal("boolean should not support picklist")
	}
	if SupportsCapability("flux_capacitor", CapDefault) {
		t.Fatal("unknown type should support nothing")
	}
}
