package schema

import "testing"

func TestExpressionRulePassAndViolate(t *testing.T) {
	rule, err := CompileExpressionRule("length", `attrs.length != nil && attrs.length > 100`, "length too large for this table")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if v := rule.Evaluate(AttributeBag{"length": 50}); v != nil {
		t.Fatalf("length 50 should pass, got %v", v)
	}

	v := rule.Evaluate(AttributeBag{"length": 500})
	if v == nil {
		t.Fatal("length 500 should violate")
	}
	if v.Field != "length" || v.Rule != "expression" {
		t.Fatalf("wrong violation scope: %v", v)
	}
	if v.Message != "length too large for this table" {
		t.Fatalf("wrong message: %s", v.Message)
	}
}

func TestExpressionRuleCompileError(t *testing.T) {
	if _, err := CompileExpressionRule("scale", `attrs.scale >`, ""); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestExpressionRuleLazyCompile(t *testing.T) {
	// Rules decoded from storage arrive without a compiled program.
	rule := &ExpressionRule{
		Field:      "precision",
		Expression: `attrs.precision != nil && attrs.precision > 30`,
	}
	v := rule.Evaluate(AttributeBag{"precision": 40})
	if v == nil {
		t.Fatal("precision 40 should violate")
	}
	if v.Message != "expression rule violated" {
		t.Fatalf("default message expected, got %s", v.Message)
	}
}

func TestEvaluateExpressionRulesAccumulate(t *testing.T) {
	first, err := CompileExpressionRule("length", `attrs.length != nil && attrs.length > 10`, "too long")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := CompileExpressionRule("scale", `attrs.scale != nil && attrs.scale > 2`, "too precise")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	violations := EvaluateExpressionRules([]*ExpressionRule{first, second}, AttributeBag{
		"length": 20,
		"scale":  5,
	})
	if len(violations) != 2 {
		t.Fatalf("expected both rules to fire, got %v", violations)
	}
}
