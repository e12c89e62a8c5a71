package admin

import (
	"testing"

	"dbforge-admin/internal/metadata"
	"dbforge-admin/internal/schema"
)

func TestValidateService(t *testing.T) {
	svc := &metadata.Service{Name: "db", Type: schema.EnginePostgreSQL}
	if violations := validateService(svc); len(violations) != 0 {
		t.Fatalf("valid service should pass, got %v", violations)
	}

	svc = &metadata.Service{Name: "9db", Type: schema.EnginePostgreSQL}
	violations := validateService(svc)
	if len(violations) != 1 || violations[0].Field != "name" {
		t.Fatalf("bad name should violate, got %v", violations)
	}

	svc = &metadata.Service{Name: "db", Type: "dbase"}
	violations = validateService(svc)
	if len(violations) != 1 || violations[0].Field != "type" {
		t.Fatalf("unknown engine should violate, got %v", violations)
	}
}

func TestValidateCorsRule(t *testing.T) {
	rule := &metadata.CorsRule{
		Path:    "/api/v2",
		Origins: []string{"*"},
		Methods: []string{"GET", "POST"},
		Enabled: true,
	}
	if violations := validateCorsRule(rule); len(violations) != 0 {
		t.Fatalf("valid rule should pass, got %v", violations)
	}

	rule = &metadata.CorsRule{Path: "api", Methods: []string{"BREW"}}
	violations := validateCorsRule(rule)
	fields := map[string]bool{}
	for _, v := range violations {
		fields[v.Field] = true
	}
	for _, want := range []string{"path", "origins", "methods"} {
		if !fields[want] {
			t.Fatalf("missing violation for %s: %v", want, violations)
		}
	}
}

func TestMatchCorsRuleLongestPrefixWins(t *testing.T) {
	rules := []*metadata.CorsRule{
		{Path: "/api", Origins: []string{"*"}, Methods: []string{"GET"}, Enabled: true, MaxAge: 1},
		{Path: "/api/v2/system", Origins: []string{"*"}, Methods: []string{"GET"}, Enabled: true, MaxAge: 2},
	}

	rule := matchCorsRule(rules, "/api/v2/system/services", "https://console.example.com")
	if rule == nil || rule.MaxAge != 2 {
		t.Fatalf("expected the longer prefix to win, got %+v", rule)
	}

	rule = matchCorsRule(rules, "/health", "https://console.example.com")
	if rule != nil {
		t.Fatalf("no rule should match /health, got %+v", rule)
	}

	// Disabled rules never match.
	rules[1].Enabled = false
	rule = matchCorsRule(rules, "/api/v2/system/services", "https://console.example.com")
	if rule == nil || rule.MaxAge != 1 {
		t.Fatalf("disabled rule should be skipped, got %+v", rule)
	}
}

func TestValidateAdminPayload(t *testing.T) {
	body := &adminPayload{Email: "ops@example.com", Password: "longenough", Active: true}
	if violations := validateAdmin(body, true); len(violations) != 0 {
		t.Fatalf("valid payload should pass, got %v", violations)
	}

	body = &adminPayload{Email: "not-an-email", Password: "short"}
	violations := validateAdmin(body, true)
	if len(violations) != 2 {
		t.Fatalf("expected email and password violations, got %v", violations)
	}

	// Updates may omit the password entirely.
	body = &adminPayload{Email: "ops@example.com"}
	if violations := validateAdmin(body, false); len(violations) != 0 {
		t.Fatalf("update without password should pass, got %v", violations)
	}
}
