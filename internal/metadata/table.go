package metadata

import "dbforge-admin/internal/schema"

// FieldDef is a declared column on a service table. Attributes holds the
// auxiliary values the capability catalog governs (length, precision,
// allow_null, default_value, ...), flat, as the form submits them.
type FieldDef struct {
	Name       string                   `json:"name"`
	Label      string                   `json:"label,omitempty"`
	Type       schema.FieldTypeID       `json:"type"`
	Attributes schema.AttributeBag      `json:"attributes,omitempty"`
	Rules      []*schema.ExpressionRule `json:"rules,omitempty"`
}

// Bag returns the field's attribute bag with its name merged in, ready to
// hand to the resolution engine.
func (f *FieldDef) Bag() schema.AttributeBag {
	bag := make(schema.AttributeBag, len(f.Attributes)+1)
	for k, v := range f.Attributes {
		bag[k] = v
	}
	bag[schema.AttrName] = f.Name
	return bag
}

// RelationshipDef is a declared relationship on a service table.
type RelationshipDef struct {
	Kind       schema.RelationshipKind       `json:"kind"`
	Attributes schema.RelationshipAttributes `json:"attributes"`
}

// TableDef is the schema metadata for one table of a service.
type TableDef struct {
	Name          string            `json:"name"`
	Label         string            `json:"label,omitempty"`
	Description   string            `json:"description,omitempty"`
	Fields        []FieldDef        `json:"fields"`
	Relationships []RelationshipDef `json:"relationships,omitempty"`
}

// GetField returns a pointer to the field with the given name, or nil.
func (t *TableDef) GetField(name string) *FieldDef {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// HasField reports whether the table declares a field with the name.
func (t *TableDef) HasField(name string) bool {
	return t.GetField(name) != nil
}

// GetRelationship returns the relationship with the given name, or nil.
func (t *TableDef) GetRelationship(name string) *RelationshipDef {
	for i := range t.Relationships {
		if t.Relationships[i].Attributes.Name == name {
			return &t.Relationships[i]
		}
	}
	return nil
}

// FieldNames returns all declared field names in declaration order.
func (t *TableDef) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}
