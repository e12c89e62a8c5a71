package admin

import (
	"testing"

	"dbforge-admin/internal/metadata"
	"dbforge-admin/internal/schema"
)

func findFieldViolation(violations []schema.Violation, field, rule string) *schema.Violation {
	for i := range violations {
		if violations[i].Field == field && violations[i].Rule == rule {
			return &violations[i]
		}
	}
	return nil
}

func TestCheckFieldUnknownType(t *testing.T) {
	h := &Handler{}
	svc := &metadata.Service{Name: "db", Type: schema.EnginePostgreSQL}

	violations := h.checkField(svc, &metadata.FieldDef{Name: "flux", Type: "flux_capacitor"}, true)
	if len(violations) != 1 {
		t.Fatalf("unknown type should yield exactly one violation, got %v", violations)
	}
	if violations[0].Field != "type" || violations[0].Rule != "enum" {
		t.Fatalf("unknown type should report type/enum, got %+v", violations[0])
	}
}

func TestCheckFieldEngineGate(t *testing.T) {
	h := &Handler{}
	pg := &metadata.Service{Name: "db", Type: schema.EnginePostgreSQL}
	my := &metadata.Service{Name: "legacy", Type: schema.EngineMySQL}
	field := &metadata.FieldDef{Name: "location", Type: schema.TypeGeometry}

	if violations := h.checkField(pg, field, true); len(violations) != 0 {
		t.Fatalf("geometry on postgresql should pass, got %v", violations)
	}

	violations := h.checkField(my, field, true)
	if findFieldViolation(violations, "type", "engine") == nil {
		t.Fatalf("geometry on mysql should report an engine violation, got %v", violations)
	}
}

func TestCheckFieldReservedNameOnlyForNewFields(t *testing.T) {
	h := &Handler{}
	svc := &metadata.Service{Name: "db", Type: schema.EnginePostgreSQL}
	field := &metadata.FieldDef{Name: "created_date", Type: schema.TypeDatetime}

	violations := h.checkField(svc, field, true)
	if findFieldViolation(violations, schema.AttrName, "reserved") == nil {
		t.Fatalf("new field with reserved name should violate, got %v", violations)
	}

	if violations := h.checkField(svc, field, false); len(violations) != 0 {
		t.Fatalf("updating an existing reserved-name field should pass, got %v", violations)
	}
}

func TestCheckFieldExpressionCompileGate(t *testing.T) {
	h := &Handler{}
	svc := &metadata.Service{Name: "db", Type: schema.EnginePostgreSQL}

	field := &metadata.FieldDef{
		Name: "price",
		Type: schema.TypeDecimal,
		Attributes: schema.AttributeBag{
			schema.AttrPrecision: float64(10),
			schema.AttrScale:     float64(2),
		},
		Rules: []*schema.ExpressionRule{
			{Field: "price", Expression: `attrs["precision"] > (`, Message: "broken"},
		},
	}
	violations := h.checkField(svc, field, true)
	if findFieldViolation(violations, "price", "expression") == nil {
		t.Fatalf("broken expression should violate, got %v", violations)
	}

	field.Rules = []*schema.ExpressionRule{
		{Field: "price", Expression: `attrs["precision"] > 0`, Message: "precision must be positive"},
	}
	if violations := h.checkField(svc, field, true); len(violations) != 0 {
		t.Fatalf("compilable expression should pass, got %v", violations)
	}
}

func TestCheckTableDefRequiresRelationshipName(t *testing.T) {
	h := &Handler{}
	svc := &metadata.Service{Name: "db", Type: schema.EnginePostgreSQL}
	def := &metadata.TableDef{
		Name: "contact",
		Relationships: []metadata.RelationshipDef{{
			Kind: schema.KindBelongsTo,
			Attributes: schema.RelationshipAttributes{
				LocalField:    "account_ref",
				TargetService: "db",
				TargetTable:   "account",
				TargetField:   "id",
			},
		}},
	}

	// A relationship stored without a name could never be addressed again.
	violations := h.checkTableDef(svc, def)
	if findFieldViolation(violations, "name", "required") == nil {
		t.Fatalf("nameless relationship should be rejected, got %v", violations)
	}

	def.Relationships[0].Attributes.Name = "owner"
	if violations := h.checkTableDef(svc, def); len(violations) != 0 {
		t.Fatalf("named relationship should pass, got %v", violations)
	}
}

func TestCheckTableDefRejectsDuplicateNames(t *testing.T) {
	h := &Handler{}
	svc := &metadata.Service{Name: "db", Type: schema.EnginePostgreSQL}
	rel := schema.RelationshipAttributes{
		Name:          "owner",
		LocalField:    "account_ref",
		TargetService: "db",
		TargetTable:   "account",
		TargetField:   "id",
	}
	def := &metadata.TableDef{
		Name: "contact",
		Fields: []metadata.FieldDef{
			{Name: "email", Type: schema.TypeString},
			{Name: "email", Type: schema.TypeText},
		},
		Relationships: []metadata.RelationshipDef{
			{Kind: schema.KindBelongsTo, Attributes: rel},
			{Kind: schema.KindBelongsTo, Attributes: rel},
		},
	}

	violations := h.checkTableDef(svc, def)
	if findFieldViolation(violations, "email", "duplicate") == nil {
		t.Fatalf("duplicate field name should violate, got %v", violations)
	}
	if findFieldViolation(violations, "owner", "duplicate") == nil {
		t.Fatalf("duplicate relationship name should violate, got %v", violations)
	}
}

func TestCheckTableDefValidPayload(t *testing.T) {
	h := &Handler{}
	svc := &metadata.Service{Name: "db", Type: schema.EnginePostgreSQL}
	def := &metadata.TableDef{
		Name: "contact",
		Fields: []metadata.FieldDef{
			{Name: "email", Type: schema.TypeString},
			{Name: "age", Type: schema.TypeInteger},
		},
		Relationships: []metadata.RelationshipDef{{
			Kind: schema.KindBelongsTo,
			Attributes: schema.RelationshipAttributes{
				Name:          "owner",
				LocalField:    "account_ref",
				TargetService: "db",
				TargetTable:   "account",
				TargetField:   "id",
			},
		}},
	}

	if violations := h.checkTableDef(svc, def); len(violations) != 0 {
		t.Fatalf("valid table definition should pass, got %v", violations)
	}
}
