package schema

import "fmt"

// FieldTypeID names the logical data kind of a column as declared in the
// console, independent of any storage engine.
type FieldTypeID string

const (
	TypeID                FieldTypeID = "id"
	TypeManual            FieldTypeID = "manual"
	TypeString            FieldTypeID = "string"
	TypeText              FieldTypeID = "text"
	TypeInteger           FieldTypeID = "integer"
	TypeBigInt            FieldTypeID = "bigint"
	TypeFloat             FieldTypeID = "float"
	TypeDouble            FieldTypeID = "double"
	TypeDecimal           FieldTypeID = "decimal"
	TypeBoolean           FieldTypeID = "boolean"
	TypeBinary            FieldTypeID = "binary"
	TypeDate              FieldTypeID = "date"
	TypeTime              FieldTypeID = "time"
	TypeDatetime          FieldTypeID = "datetime"
	TypeTimestamp         FieldTypeID = "timestamp"
	TypeTimestampOnCreate FieldTypeID = "timestamp_on_create"
	TypeTimestampOnUpdate FieldTypeID = "timestamp_on_update"
	TypeUserID            FieldTypeID = "user_id"
	TypeUserIDOnCreate    FieldTypeID = "user_id_on_create"
	TypeUserIDOnUpdate    FieldTypeID = "user_id_on_update"
	TypeReference         FieldTypeID = "reference"
	TypeUUID              FieldTypeID = "uuid"
	TypeEnum              FieldTypeID = "enum"
	TypeJSON              FieldTypeID = "json"
	TypeGeometry          FieldTypeID = "geometry"
)

// StorageEngine identifies a target database technology. The engine only
// consults the static native-type tables; it never checks reachability.
type StorageEngine string

const (
	EngineMySQL      StorageEngine = "mysql"
	EnginePostgreSQL StorageEngine = "postgresql"
	EngineSQLServer  StorageEngine = "sqlserver"
	EngineOracle     StorageEngine = "oracle"
	EngineMongoDB    StorageEngine = "mongodb"
	EngineSnowflake  StorageEngine = "snowflake"
)

// StorageEngines lists every known engine.
var StorageEngines = []StorageEngine{
	EngineMySQL, EnginePostgreSQL, EngineSQLServer,
	EngineOracle, EngineMongoDB, EngineSnowflake,
}

// Attribute keys of a field attribute bag. The form layer submits bags as
// flat maps keyed by these names.
const (
	AttrName          = "name"
	AttrLabel         = "label"
	AttrLength        = "length"
	AttrPrecision     = "precision"
	AttrScale         = "scale"
	AttrFixedLength   = "fixed_length"
	AttrAllowNull     = "allow_null"
	AttrAutoIncrement = "auto_increment"
	AttrIsPrimaryKey  = "is_primary_key"
	AttrIsForeignKey  = "is_foreign_key"
	AttrIsUnique      = "is_unique"
	AttrIsIndex       = "is_index"
	AttrDefaultValue  = "default_value"
	AttrPicklist      = "picklist"
	AttrDBFunction    = "db_function"
	AttrDBType        = "db_type"
	AttrRefTable      = "ref_table"
	AttrRefField      = "ref_field"
	AttrValidation    = "validation"
)

// AttributeBag is the caller-owned key-value map of a field's current
// attribute values. Values are plain scalars (string, float64, int, bool)
// as decoded from JSON; the engine never retains a bag.
type AttributeBag map[string]any

// ControlSet flags which auxiliary inputs the console enables for a type.
type ControlSet struct {
	Length        bool `json:"length"`
	Precision     bool `json:"precision"`
	Scale         bool `json:"scale"`
	FixedLength   bool `json:"fixed_length"`
	AutoIncrement bool `json:"auto_increment"`
	DefaultValue  bool `json:"default_value"`
	Picklist      bool `json:"picklist"`
	DBFunctions   bool `json:"db_functions"`
	CustomType    bool `json:"custom_type"`
}

// Capability names a per-type support flag.
type Capability string

const (
	CapLength        Capability = "length"
	CapPrecision     Capability = "precision"
	CapAutoIncrement Capability = "auto_increment"
	CapPrimaryKey    Capability = "primary_key"
	CapForeignKey    Capability = "foreign_key"
	CapDefault       Capability = "default"
	CapPicklist      Capability = "picklist"
)

// CapabilityFlags records what a field type supports.
type CapabilityFlags struct {
	SupportsLength        bool `json:"supports_length"`
	SupportsPrecision     bool `json:"supports_precision"`
	SupportsAutoIncrement bool `json:"supports_auto_increment"`
	SupportsPrimaryKey    bool `json:"supports_primary_key"`
	SupportsForeignKey    bool `json:"supports_foreign_key"`
	SupportsDefault       bool `json:"supports_default"`
	SupportsPicklist      bool `json:"supports_picklist"`
}

// ValidationRules holds the numeric bounds and required attributes a type
// declares. Zero bounds mean "no bound declared".
type ValidationRules struct {
	MinLength    int      `json:"min_length,omitempty"`
	MaxLength    int      `json:"max_length,omitempty"`
	MinPrecision int      `json:"min_precision,omitempty"`
	MaxPrecision int      `json:"max_precision,omitempty"`
	MaxScale     int      `json:"max_scale,omitempty"`
	Required     []string `json:"required,omitempty"`
}

// IncompatibleRule declares that a trigger attribute value conflicts with
// another attribute holding one of the listed values. Violations are scoped
// to the trigger attribute.
type IncompatibleRule struct {
	Attr          string `json:"attr"`
	Value         any    `json:"value"`
	ConflictsWith string `json:"conflicts_with"`
	Values        []any  `json:"values"`
	Message       string `json:"message,omitempty"`
}

// FieldTypeConfig is the full capability record for one field type.
type FieldTypeConfig struct {
	Type         FieldTypeID              `json:"type"`
	Label        string                   `json:"label"`
	Controls     ControlSet               `json:"controls"`
	Defaults     AttributeBag             `json:"defaults,omitempty"`
	Validation   ValidationRules          `json:"validation"`
	Incompatible []IncompatibleRule       `json:"incompatible,omitempty"`
	NativeTypes  map[StorageEngine]string `json:"native_types,omitempty"`
	Capabilities CapabilityFlags          `json:"capabilities"`
}

// Violation is a single field-scoped validation failure. Violations are
// returned as data, never raised.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// UnknownTypeError reports a field type identifier outside the closed
// catalog. It signals an integration bug upstream, not bad user input.
type UnknownTypeError struct {
	Type FieldTypeID
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown field type: %q", string(e.Type))
}

// UnknownKindError reports a relationship kind outside the closed set.
type UnknownKindError struct {
	Kind RelationshipKind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown relationship kind: %q", string(e.Kind))
}
