package schema

// Config returns the catalog entry for a field type. An unknown identifier
// is an integration bug (enumeration drift), reported as *UnknownTypeError.
func Config(t FieldTypeID) (*FieldTypeConfig, error) {
	cfg, ok := configByType[t]
	if !ok {
		return nil, &UnknownTypeError{Type: t}
	}
	return cfg, nil
}

// MustConfig is Config for call sites that already hold a validated type.
func MustConfig(t FieldTypeID) *FieldTypeConfig {
	cfg, err := Config(t)
	if err != nil {
		panic(err)
	}
	return cfg
}

// KnownType reports whether t is in the catalog.
func KnownType(t FieldTypeID) bool {
	_, ok := configByType[t]
	return ok
}

// EnabledControls returns the control flags for a type. Malformed input
// yields an all-false set rather than an error, so form rendering never
// fails on a stale identifier.
func EnabledControls(t FieldTypeID) ControlSet {
	cfg, ok := configByType[t]
	if !ok {
		return ControlSet{}
	}
	return cfg.Controls
}

// DefaultAttributes returns a copy of the type's default attribute overlay.
// Callers merge it over prior state (form defaults first, then these, then
// explicit user edits).
func DefaultAttributes(t FieldTypeID) AttributeBag {
	cfg, ok := configByType[t]
	if !ok {
		return AttributeBag{}
	}
	out := make(AttributeBag, len(cfg.Defaults))
	for k, v := range cfg.Defaults {
		out[k] = v
	}
	return out
}

// SupportsCapability reports a single capability flag for a type.
func SupportsCapability(t FieldTypeID, c Capability) bool {
	cfg, ok := configByType[t]
	if !ok {
		return false
	}
	switch c {
	case CapLength:
		return cfg.Capabilities.SupportsLength
	case CapPrecision:
		return cfg.Capabilities.SupportsPrecision
	case CapAutoIncrement:
		return cfg.Capabilities.SupportsAutoIncrement
	case CapPrimaryKey:
		return cfg.Capabilities.SupportsPrimaryKey
	case CapForeignKey:
		return cfg.Capabilities.SupportsForeignKey
	case CapDefault:
		return cfg.Capabilities.SupportsDefault
	case CapPicklist:
		return cfg.Capabilities.SupportsPicklist
	}
	return false
}

// TypesSupportedByEngine filters the catalog to types with a native mapping
// for the given engine, in catalog declaration order.
func TypesSupportedByEngine(engine StorageEngine) []FieldTypeID {
	var out []FieldTypeID
	for _, t := range AllFieldTypes {
		if _, ok := configByType[t].NativeTypes[engine]; ok {
			out = append(out, t)
		}
	}
	return out
}

// NativeType resolves the engine-native type string for a field type.
// ok=false means the type is not representable on that engine; callers
// must disable the type, not fall back silently.
func NativeType(t FieldTypeID, engine StorageEngine) (string, bool) {
	cfg, exists := configByType[t]
	if !exists {
		return "", false
	}
	native, ok := cfg.NativeTypes[engine]
	return native, ok
}

// KnownEngine reports whether the engine identifier is one the catalog
// carries mappings for.
func KnownEngine(engine StorageEngine) bool {
	for _, e := range StorageEngines {
		if e == engine {
			return true
		}
	}
	return false
}
