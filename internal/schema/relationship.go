package schema

// RelationshipKind names how two tables associate.
type RelationshipKind string

const (
	KindBelongsTo RelationshipKind = "belongs_to"
	KindHasOne    RelationshipKind = "has_one"
	KindHasMany   RelationshipKind = "has_many"
	KindManyMany  RelationshipKind = "many_many"
)

// RelationshipKinds lists every kind, in the order the console offers them.
var RelationshipKinds = []RelationshipKind{
	KindBelongsTo, KindHasOne, KindHasMany, KindManyMany,
}

// RelationshipAttributes is a candidate relationship record as submitted
// by the form layer. Junction fields are structurally optional; whether
// they must be present or absent depends on the kind. Empty string means
// absent throughout.
type RelationshipAttributes struct {
	Name        string `json:"name"`
	Alias       string `json:"alias,omitempty"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`

	LocalField    string `json:"local_field"`
	TargetService string `json:"target_service"`
	TargetTable   string `json:"target_table"`
	TargetField   string `json:"target_field"`

	JunctionService      string `json:"junction_service,omitempty"`
	JunctionTable        string `json:"junction_table,omitempty"`
	JunctionLocalField   string `json:"junction_local_field,omitempty"`
	JunctionForeignField string `json:"junction_foreign_field,omitempty"`
}

// junctionAttrs pairs each junction attribute id with an accessor, so the
// per-kind rule sets iterate the quartet instead of re-listing it.
var junctionAttrs = []struct {
	id  string
	get func(*RelationshipAttributes) string
}{
	{"junction_service", func(a *RelationshipAttributes) string { return a.JunctionService }},
	{"junction_table", func(a *RelationshipAttributes) string { return a.JunctionTable }},
	{"junction_local_field", func(a *RelationshipAttributes) string { return a.JunctionLocalField }},
	{"junction_foreign_field", func(a *RelationshipAttributes) string { return a.JunctionForeignField }},
}

// KnownKind reports whether k is one of the closed relationship kinds.
func KnownKind(k RelationshipKind) bool {
	switch k {
	case KindBelongsTo, KindHasOne, KindHasMany, KindManyMany:
		return true
	}
	return false
}

// RequiresJunctionTable reports whether the kind stores its links in a
// junction table. Call sites must use this instead of comparing kinds.
func RequiresJunctionTable(k RelationshipKind) bool {
	return k == KindManyMany
}

// DefaultRelationshipAttributes seeds a fresh attribute record for the
// kind. Junction fields start empty either way; the console decides
// whether to render the junction section via RequiresJunctionTable.
// Switching kinds in an editing session must go through this function so
// stale junction values from a previous many_many selection are dropped.
func DefaultRelationshipAttributes(k RelationshipKind) RelationshipAttributes {
	return RelationshipAttributes{}
}

// ValidateRelationship checks a candidate relationship against the rule
// set for its kind. The kind discrimination happens here and only here.
// The error return is reserved for an unknown kind, which is enumeration
// drift upstream, not user input.
func ValidateRelationship(k RelationshipKind, attrs RelationshipAttributes) ([]Violation, error) {
	if !KnownKind(k) {
		return nil, &UnknownKindError{Kind: k}
	}

	var out []Violation

	// Structural minimum shared by every kind.
	if attrs.Name != "" {
		if v := CheckIdentifier("name", attrs.Name); v != nil {
			out = append(out, *v)
		}
	}
	if attrs.Alias != "" {
		if v := CheckIdentifier("alias", attrs.Alias); v != nil {
			out = append(out, *v)
		}
	}
	for _, req := range []struct{ id, val string }{
		{"local_field", attrs.LocalField},
		{"target_service", attrs.TargetService},
		{"target_table", attrs.TargetTable},
		{"target_field", attrs.TargetField},
	} {
		if req.val == "" {
			out = append(out, Violation{
				Field: req.id, Rule: "required",
				Message: req.id + " is required",
			})
		}
	}

	// Kind-dependent junction rule.
	if RequiresJunctionTable(k) {
		for _, j := range junctionAttrs {
			if j.get(&attrs) == "" {
				out = append(out, Violation{
					Field: j.id, Rule: "required",
					Message: j.id + " is required for many-to-many relationships",
				})
			}
		}
	} else {
		for _, j := range junctionAttrs {
			if j.get(&attrs) != "" {
				out = append(out, Violation{
					Field: j.id, Rule: "not_applicable",
					Message: "junction configuration is not applicable to this relationship kind",
				})
			}
		}
	}

	return out, nil
}
