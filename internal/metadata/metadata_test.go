package metadata

import (
	"testing"

	"dbforge-admin/internal/schema"
)

func TestTableDefFieldLookup(t *testing.T) {
	def := &TableDef{
		Name: "contact",
		Fields: []FieldDef{
			{Name: "first_name", Type: schema.TypeString},
			{Name: "age", Type: schema.TypeInteger},
		},
	}

	if !def.HasField("age") {
		t.Fatal("expected field age")
	}
	if def.HasField("salary") {
		t.Fatal("unexpected field salary")
	}
	if f := def.GetField("first_name"); f == nil || f.Type != schema.TypeString {
		t.Fatalf("wrong field lookup result: %+v", f)
	}

	names := def.FieldNames()
	if len(names) != 2 || names[0] != "first_name" || names[1] != "age" {
		t.Fatalf("field names out of order: %v", names)
	}
}

func TestFieldDefBagMergesName(t *testing.T) {
	f := FieldDef{
		Name: "price",
		Type: schema.TypeDecimal,
		Attributes: schema.AttributeBag{
			schema.AttrPrecision: 10,
			schema.AttrScale:     2,
		},
	}

	bag := f.Bag()
	if bag[schema.AttrName] != "price" {
		t.Fatalf("bag should carry the field name, got %v", bag[schema.AttrName])
	}
	if bag[schema.AttrPrecision] != 10 {
		t.Fatalf("bag lost precision: %v", bag[schema.AttrPrecision])
	}

	// The bag is a copy; mutating it must not touch the definition.
	bag[schema.AttrScale] = 9
	if f.Attributes[schema.AttrScale] != 2 {
		t.Fatalf("definition mutated through bag: %v", f.Attributes[schema.AttrScale])
	}
}

func TestServiceSupportsType(t *testing.T) {
	pg := &Service{Name: "db", Type: schema.EnginePostgreSQL}
	my := &Service{Name: "legacy", Type: schema.EngineMySQL}

	if !pg.SupportsType(schema.TypeGeometry) {
		t.Fatal("postgresql service should support geometry")
	}
	if my.SupportsType(schema.TypeGeometry) {
		t.Fatal("mysql service should not support geometry")
	}
}

func TestCorsRuleAllowsOrigin(t *testing.T) {
	rule := &CorsRule{
		Path:    "/api/v2",
		Origins: []string{"https://console.example.com"},
		Methods: []string{"GET"},
		Enabled: true,
	}

	if !rule.AllowsOrigin("https://console.example.com") {
		t.Fatal("listed origin should be allowed")
	}
	if rule.AllowsOrigin("https://evil.example.com") {
		t.Fatal("unlisted origin should be denied")
	}

	rule.Enabled = false
	if rule.AllowsOrigin("https://console.example.com") {
		t.Fatal("disabled rule should deny everything")
	}

	wildcard := &CorsRule{Path: "/", Origins: []string{"*"}, Methods: []string{"GET"}, Enabled: true}
	if !wildcard.AllowsOrigin("https://anything.example.com") {
		t.Fatal("wildcard rule should allow any origin")
	}
}

func TestScheduleValidVerb(t *testing.T) {
	s := &Schedule{Verb: "POST"}
	if !s.ValidVerb() {
		t.Fatal("POST should be valid")
	}
	s.Verb = "BREW"
	if s.ValidVerb() {
		t.Fatal("BREW should not be valid")
	}
}

func TestRegistryLoadAndLookup(t *testing.T) {
	reg := NewRegistry()
	services := []*Service{
		{Name: "db", Type: schema.EnginePostgreSQL},
		{Name: "legacy", Type: schema.EngineMySQL},
	}
	tables := map[string][]*TableDef{
		"db": {
			{Name: "contact"},
			{Name: "account"},
		},
	}
	cors := []*CorsRule{{Path: "/api/v2", Origins: []string{"*"}, Methods: []string{"GET"}, Enabled: true}}

	reg.Load(services, tables, cors)

	if reg.GetService("db") == nil {
		t.Fatal("service db should be registered")
	}
	if reg.GetService("missing") != nil {
		t.Fatal("unknown service should be nil")
	}
	if got := len(reg.AllServices()); got != 2 {
		t.Fatalf("expected 2 services, got %d", got)
	}
	if reg.GetTable("db", "contact") == nil {
		t.Fatal("table db/contact should be registered")
	}
	if reg.GetTable("legacy", "contact") != nil {
		t.Fatal("table lookup should be scoped by service")
	}
	if got := len(reg.TablesForService("db")); got != 2 {
		t.Fatalf("expected 2 tables for db, got %d", got)
	}
	if got := len(reg.CorsRules()); got != 1 {
		t.Fatalf("expected 1 cors rule, got %d", got)
	}

	// A reload replaces everything.
	reg.Load(nil, nil, nil)
	if reg.GetService("db") != nil {
		t.Fatal("reload should drop stale services")
	}
}
