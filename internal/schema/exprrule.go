package schema

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExpressionRule is an admin-authored validation expression attached to a
// field definition, evaluated against the submitted attribute bag. The
// expression must evaluate to true when the rule is violated.
type ExpressionRule struct {
	Field      string `json:"field"`
	Expression string `json:"expression"`
	Message    string `json:"message,omitempty"`

	compiled *vm.Program
}

// CompileExpressionRule compiles the rule once so repeated validations
// reuse the program.
func CompileExpressionRule(field, expression, message string) (*ExpressionRule, error) {
	prog, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile expression rule for %s: %w", field, err)
	}
	return &ExpressionRule{
		Field:      field,
		Expression: expression,
		Message:    message,
		compiled:   prog,
	}, nil
}

// Evaluate runs the rule against an attribute bag. A nil result means the
// rule passes; evaluation errors are reported as violations on the rule's
// field so the console can surface them next to the offending input.
func (r *ExpressionRule) Evaluate(attrs AttributeBag) *Violation {
	prog := r.compiled
	if prog == nil {
		compiled, err := expr.Compile(r.Expression, expr.AsBool())
		if err != nil {
			return &Violation{
				Field: r.Field, Rule: "expression",
				Message: fmt.Sprintf("compile error: %v", err),
			}
		}
		r.compiled = compiled
		prog = compiled
	}

	env := map[string]any{"attrs": map[string]any(attrs)}
	result, err := expr.Run(prog, env)
	if err != nil {
		return &Violation{
			Field: r.Field, Rule: "expression",
			Message: fmt.Sprintf("rule evaluation error: %v", err),
		}
	}

	violated, ok := result.(bool)
	if !ok || !violated {
		return nil
	}

	msg := r.Message
	if msg == "" {
		msg = "expression rule violated"
	}
	return &Violation{Field: r.Field, Rule: "expression", Message: msg}
}

// EvaluateExpressionRules runs a list of rules, accumulating violations in
// rule order. Rules never short-circuit each other.
func EvaluateExpressionRules(rules []*ExpressionRule, attrs AttributeBag) []Violation {
	var out []Violation
	for _, r := range rules {
		if v := r.Evaluate(attrs); v != nil {
			out = append(out, *v)
		}
	}
	return out
}
