package schema

import "fmt"

// AllFieldTypes lists every field type in catalog declaration order. The
// order is stable and drives UI grouping, so new types go at the end of
// their family, not alphabetically.
var AllFieldTypes = []FieldTypeID{
	TypeID, TypeManual, TypeString, TypeText,
	TypeInteger, TypeBigInt, TypeFloat, TypeDouble, TypeDecimal,
	TypeBoolean, TypeBinary,
	TypeDate, TypeTime, TypeDatetime, TypeTimestamp,
	TypeTimestampOnCreate, TypeTimestampOnUpdate,
	TypeUserID, TypeUserIDOnCreate, TypeUserIDOnUpdate,
	TypeReference, TypeUUID, TypeEnum, TypeJSON, TypeGeometry,
}

// pkNullRule is shared by every type that can be a primary key: a nullable
// column cannot back a primary key.
var pkNullRule = IncompatibleRule{
	Attr:          AttrAllowNull,
	Value:         true,
	ConflictsWith: AttrIsPrimaryKey,
	Values:        []any{true},
	Message:       "a primary key column cannot allow null",
}

// fieldTypeConfigs is the capability catalog: one entry per FieldTypeID,
// in AllFieldTypes order. Totality is asserted in init.
var fieldTypeConfigs = []FieldTypeConfig{
	{
		Type:     TypeID,
		Label:    "ID",
		Controls: ControlSet{AutoIncrement: true},
		Defaults: AttributeBag{
			AttrAllowNull:     false,
			AttrAutoIncrement: true,
			AttrIsPrimaryKey:  true,
		},
		Incompatible: []IncompatibleRule{pkNullRule},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "INT AUTO_INCREMENT",
			EnginePostgreSQL: "SERIAL",
			EngineSQLServer:  "INT IDENTITY(1,1)",
			EngineOracle:     "NUMBER(10)",
			EngineMongoDB:    "objectId",
			EngineSnowflake:  "NUMBER AUTOINCREMENT",
		},
		Capabilities: CapabilityFlags{
			SupportsAutoIncrement: true,
			SupportsPrimaryKey:    true,
		},
	},
	{
		Type:       TypeManual,
		Label:      "Manual Entry",
		Controls:   ControlSet{CustomType: true, DefaultValue: true, DBFunctions: true},
		Defaults:   AttributeBag{AttrAllowNull: true},
		Validation: ValidationRules{Required: []string{AttrDBType}},
		// No native mapping: the storage type is whatever db_type says.
		Capabilities: CapabilityFlags{SupportsDefault: true},
	},
	{
		Type:  TypeString,
		Label: "String",
		Controls: ControlSet{
			Length:       true, FixedLength: true,
			DefaultValue: true, DBFunctions: true,
		},
		Defaults: AttributeBag{
			AttrAllowNull: true,
			AttrLength:    255,
		},
		Validation:   ValidationRules{MinLength: 1, MaxLength: 65535},
		Incompatible: []IncompatibleRule{pkNullRule},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "VARCHAR",
			EnginePostgreSQL: "VARCHAR",
			EngineSQLServer:  "NVARCHAR",
			EngineOracle:     "VARCHAR2",
			EngineMongoDB:    "string",
			EngineSnowflake:  "VARCHAR",
		},
		Capabilities: CapabilityFlags{
			SupportsLength:     true,
			SupportsPrimaryKey: true,
			SupportsForeignKey: true,
			SupportsDefault:    true,
		},
	},
	{
		Type:     TypeText,
		Label:    "Text",
		Controls: ControlSet{DBFunctions: true},
		Defaults: AttributeBag{AttrAllowNull: true},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "TEXT",
			EnginePostgreSQL: "TEXT",
			EngineSQLServer:  "NVARCHAR(MAX)",
			EngineOracle:     "CLOB",
			EngineMongoDB:    "string",
			EngineSnowflake:  "TEXT",
		},
	},
	{
		Type:  TypeInteger,
		Label: "Integer",
		Controls: ControlSet{
			AutoIncrement: true, DefaultValue: true, DBFunctions: true,
		},
		Defaults:     AttributeBag{AttrAllowNull: true},
		Incompatible: []IncompatibleRule{pkNullRule},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "INT",
			EnginePostgreSQL: "INTEGER",
			EngineSQLServer:  "INT",
			EngineOracle:     "NUMBER(10)",
			EngineMongoDB:    "int",
			EngineSnowflake:  "INTEGER",
		},
		Capabilities: CapabilityFlags{
			SupportsAutoIncrement: true,
			SupportsPrimaryKey:    true,
			SupportsForeignKey:    true,
			SupportsDefault:       true,
		},
	},
	{
		Type:  TypeBigInt,
		Label: "Big Integer",
		Controls: ControlSet{
			AutoIncrement: true, DefaultValue: true, DBFunctions: true,
		},
		Defaults:     AttributeBag{AttrAllowNull: true},
		Incompatible: []IncompatibleRule{pkNullRule},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "BIGINT",
			EnginePostgreSQL: "BIGINT",
			EngineSQLServer:  "BIGINT",
			EngineOracle:     "NUMBER(19)",
			EngineMongoDB:    "long",
			EngineSnowflake:  "BIGINT",
		},
		Capabilities: CapabilityFlags{
			SupportsAutoIncrement: true,
			SupportsPrimaryKey:    true,
			SupportsForeignKey:    true,
			SupportsDefault:       true,
		},
	},
	{
		Type:       TypeFloat,
		Label:      "Float",
		Controls:   ControlSet{Precision: true, DefaultValue: true, DBFunctions: true},
		Defaults:   AttributeBag{AttrAllowNull: true},
		Validation: ValidationRules{MinPrecision: 1, MaxPrecision: 24},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "FLOAT",
			EnginePostgreSQL: "REAL",
			EngineSQLServer:  "REAL",
			EngineOracle:     "BINARY_FLOAT",
			EngineMongoDB:    "double",
			EngineSnowflake:  "FLOAT4",
		},
		Capabilities: CapabilityFlags{SupportsPrecision: true, SupportsDefault: true},
	},
	{
		Type:       TypeDouble,
		Label:      "Double",
		Controls:   ControlSet{Precision: true, DefaultValue: true, DBFunctions: true},
		Defaults:   AttributeBag{AttrAllowNull: true},
		Validation: ValidationRules{MinPrecision: 1, MaxPrecision: 53},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "DOUBLE",
			EnginePostgreSQL: "DOUBLE PRECISION",
			EngineSQLServer:  "FLOAT",
			EngineOracle:     "BINARY_DOUBLE",
			EngineMongoDB:    "double",
			EngineSnowflake:  "DOUBLE",
		},
		Capabilities: CapabilityFlags{SupportsPrecision: true, SupportsDefault: true},
	},
	{
		Type:  TypeDecimal,
		Label: "Decimal",
		Controls: ControlSet{
			Precision:    true, Scale: true,
			DefaultValue: true, DBFunctions: true,
		},
		Defaults: AttributeBag{
			AttrAllowNull: true,
			AttrPrecision: 10,
			AttrScale:     0,
		},
		Validation: ValidationRules{MinPrecision: 1, MaxPrecision: 65, MaxScale: 30},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "DECIMAL",
			EnginePostgreSQL: "NUMERIC",
			EngineSQLServer:  "DECIMAL",
			EngineOracle:     "NUMBER",
			EngineMongoDB:    "decimal",
			EngineSnowflake:  "NUMBER",
		},
		Capabilities: CapabilityFlags{SupportsPrecision: true, SupportsDefault: true},
	},
	{
		Type:     TypeBoolean,
		Label:    "Boolean",
		Controls: ControlSet{DefaultValue: true},
		Defaults: AttributeBag{AttrAllowNull: true},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "TINYINT(1)",
			EnginePostgreSQL: "BOOLEAN",
			EngineSQLServer:  "BIT",
			EngineOracle:     "NUMBER(1)",
			EngineMongoDB:    "bool",
			EngineSnowflake:  "BOOLEAN",
		},
		Capabilities: CapabilityFlags{SupportsDefault: true},
	},
	{
		Type:       TypeBinary,
		Label:      "Binary",
		Controls:   ControlSet{Length: true, FixedLength: true},
		Defaults:   AttributeBag{AttrAllowNull: true},
		Validation: ValidationRules{MinLength: 1, MaxLength: 65535},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "VARBINARY",
			EnginePostgreSQL: "BYTEA",
			EngineSQLServer:  "VARBINARY(MAX)",
			EngineOracle:     "BLOB",
			EngineMongoDB:    "binData",
			EngineSnowflake:  "BINARY",
		},
		Capabilities: CapabilityFlags{SupportsLength: true},
	},
	{
		Type:     TypeDate,
		Label:    "Date",
		Controls: ControlSet{DefaultValue: true, DBFunctions: true},
		Defaults: AttributeBag{AttrAllowNull: true},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "DATE",
			EnginePostgreSQL: "DATE",
			EngineSQLServer:  "DATE",
			EngineOracle:     "DATE",
			EngineMongoDB:    "date",
			EngineSnowflake:  "DATE",
		},
		Capabilities: CapabilityFlags{SupportsDefault: true},
	},
	{
		Type:     TypeTime,
		Label:    "Time",
		Controls: ControlSet{DefaultValue: true, DBFunctions: true},
		Defaults: AttributeBag{AttrAllowNull: true},
		// Oracle and MongoDB have no standalone time-of-day type.
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "TIME",
			EnginePostgreSQL: "TIME",
			EngineSQLServer:  "TIME",
			EngineSnowflake:  "TIME",
		},
		Capabilities: CapabilityFlags{SupportsDefault: true},
	},
	{
		Type:     TypeDatetime,
		Label:    "Datetime",
		Controls: ControlSet{DefaultValue: true, DBFunctions: true},
		Defaults: AttributeBag{AttrAllowNull: true},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "DATETIME",
			EnginePostgreSQL: "TIMESTAMP",
			EngineSQLServer:  "DATETIME2",
			EngineOracle:     "DATE",
			EngineMongoDB:    "date",
			EngineSnowflake:  "TIMESTAMP_NTZ",
		},
		Capabilities: CapabilityFlags{SupportsDefault: true},
	},
	{
		Type:     TypeTimestamp,
		Label:    "Timestamp",
		Controls: ControlSet{DefaultValue: true, DBFunctions: true},
		Defaults: AttributeBag{AttrAllowNull: true},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "TIMESTAMP",
			EnginePostgreSQL: "TIMESTAMPTZ",
			EngineSQLServer:  "DATETIMEOFFSET",
			EngineOracle:     "TIMESTAMP",
			EngineMongoDB:    "timestamp",
			EngineSnowflake:  "TIMESTAMP_TZ",
		},
		Capabilities: CapabilityFlags{SupportsDefault: true},
	},
	{
		Type:  TypeTimestampOnCreate,
		Label: "Timestamp (on create)",
		Defaults: AttributeBag{
			AttrAllowNull:  false,
			AttrDBFunction: "CURRENT_TIMESTAMP",
		},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "TIMESTAMP",
			EnginePostgreSQL: "TIMESTAMPTZ",
			EngineSQLServer:  "DATETIMEOFFSET",
			EngineOracle:     "TIMESTAMP",
			EngineMongoDB:    "timestamp",
			EngineSnowflake:  "TIMESTAMP_TZ",
		},
	},
	{
		Type:  TypeTimestampOnUpdate,
		Label: "Timestamp (on update)",
		Defaults: AttributeBag{
			AttrAllowNull:  false,
			AttrDBFunction: "CURRENT_TIMESTAMP",
		},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "TIMESTAMP",
			EnginePostgreSQL: "TIMESTAMPTZ",
			EngineSQLServer:  "DATETIMEOFFSET",
			EngineOracle:     "TIMESTAMP",
			EngineMongoDB:    "timestamp",
			EngineSnowflake:  "TIMESTAMP_TZ",
		},
	},
	{
		Type:     TypeUserID,
		Label:    "User ID",
		Controls: ControlSet{DefaultValue: true},
		Defaults: AttributeBag{AttrAllowNull: true},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "INT",
			EnginePostgreSQL: "INTEGER",
			EngineSQLServer:  "INT",
			EngineOracle:     "NUMBER(10)",
			EngineMongoDB:    "int",
			EngineSnowflake:  "INTEGER",
		},
		Capabilities: CapabilityFlags{SupportsForeignKey: true, SupportsDefault: true},
	},
	{
		Type:     TypeUserIDOnCreate,
		Label:    "User ID (on create)",
		Defaults: AttributeBag{AttrAllowNull: false},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "INT",
			EnginePostgreSQL: "INTEGER",
			EngineSQLServer:  "INT",
			EngineOracle:     "NUMBER(10)",
			EngineMongoDB:    "int",
			EngineSnowflake:  "INTEGER",
		},
	},
	{
		Type:     TypeUserIDOnUpdate,
		Label:    "User ID (on update)",
		Defaults: AttributeBag{AttrAllowNull: false},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "INT",
			EnginePostgreSQL: "INTEGER",
			EngineSQLServer:  "INT",
			EngineOracle:     "NUMBER(10)",
			EngineMongoDB:    "int",
			EngineSnowflake:  "INTEGER",
		},
	},
	{
		Type:     TypeReference,
		Label:    "Reference",
		Controls: ControlSet{DefaultValue: true, DBFunctions: true},
		Defaults: AttributeBag{
			AttrAllowNull:    true,
			AttrIsForeignKey: true,
		},
		Validation: ValidationRules{Required: []string{AttrRefTable, AttrRefField}},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "INT",
			EnginePostgreSQL: "INTEGER",
			EngineSQLServer:  "INT",
			EngineOracle:     "NUMBER(10)",
			EngineMongoDB:    "objectId",
			EngineSnowflake:  "INTEGER",
		},
		Capabilities: CapabilityFlags{SupportsForeignKey: true, SupportsDefault: true},
	},
	{
		Type:         TypeUUID,
		Label:        "UUID",
		Controls:     ControlSet{DefaultValue: true, DBFunctions: true},
		Defaults:     AttributeBag{AttrAllowNull: true},
		Incompatible: []IncompatibleRule{pkNullRule},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "CHAR(36)",
			EnginePostgreSQL: "UUID",
			EngineSQLServer:  "UNIQUEIDENTIFIER",
			EngineOracle:     "RAW(16)",
			EngineMongoDB:    "uuid",
			EngineSnowflake:  "VARCHAR(36)",
		},
		Capabilities: CapabilityFlags{
			SupportsPrimaryKey: true,
			SupportsForeignKey: true,
			SupportsDefault:    true,
		},
	},
	{
		Type:       TypeEnum,
		Label:      "Enum",
		Controls:   ControlSet{Picklist: true, DefaultValue: true},
		Defaults:   AttributeBag{AttrAllowNull: true},
		Validation: ValidationRules{Required: []string{AttrPicklist}},
		// Only engines with a native enumerated type; elsewhere the console
		// offers string + picklist validation instead.
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:     "ENUM",
			EngineMongoDB:   "string",
			EngineSnowflake: "VARCHAR",
		},
		Capabilities: CapabilityFlags{SupportsPicklist: true, SupportsDefault: true},
	},
	{
		Type:     TypeJSON,
		Label:    "JSON",
		Controls: ControlSet{DefaultValue: true},
		Defaults: AttributeBag{AttrAllowNull: true},
		NativeTypes: map[StorageEngine]string{
			EngineMySQL:      "JSON",
			EnginePostgreSQL: "JSONB",
			EngineSQLServer:  "NVARCHAR(MAX)",
			EngineMongoDB:    "object",
			EngineSnowflake:  "VARIANT",
		},
		Capabilities: CapabilityFlags{SupportsDefault: true},
	},
	{
		Type:     TypeGeometry,
		Label:    "Geometry",
		Defaults: AttributeBag{AttrAllowNull: true},
		NativeTypes: map[StorageEngine]string{
			EnginePostgreSQL: "GEOMETRY",
		},
	},
}

// configByType indexes the catalog. Built once in init, never mutated.
var configByType map[FieldTypeID]*FieldTypeConfig

func init() {
	configByType = make(map[FieldTypeID]*FieldTypeConfig, len(fieldTypeConfigs))
	for i := range fieldTypeConfigs {
		cfg := &fieldTypeConfigs[i]
		if _, dup := configByType[cfg.Type]; dup {
			panic(fmt.Sprintf("schema: duplicate catalog entry for %q", cfg.Type))
		}
		configByType[cfg.Type] = cfg
	}
	// The catalog must be total: one config per declared type.
	for _, t := range AllFieldTypes {
		if _, ok := configByType[t]; !ok {
			panic(fmt.Sprintf("schema: no catalog entry for field type %q", t))
		}
	}
	if len(fieldTypeConfigs) != len(AllFieldTypes) {
		panic("schema: catalog entry not listed in AllFieldTypes")
	}
}
