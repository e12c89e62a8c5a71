package admin

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"dbforge-admin/internal/metadata"
	"dbforge-admin/internal/schema"
	"dbforge-admin/internal/store"
)

// fieldTypeInfo is the catalog-driven UI metadata for one field type.
type fieldTypeInfo struct {
	Type         schema.FieldTypeID     `json:"type"`
	Label        string                 `json:"label"`
	Controls     schema.ControlSet      `json:"controls"`
	Defaults     schema.AttributeBag    `json:"defaults"`
	Capabilities schema.CapabilityFlags `json:"capabilities"`
	NativeType   string                 `json:"native_type,omitempty"`
}

// ListFieldTypes handles GET /api/v2/system/field-types[?engine=].
// Without an engine it lists the whole catalog; with one, only the types
// representable on that engine, each carrying its native type.
func (h *Handler) ListFieldTypes(c *fiber.Ctx) error {
	engine := schema.StorageEngine(c.Query("engine"))

	types := schema.AllFieldTypes
	if engine != "" {
		if !schema.KnownEngine(engine) {
			return NewAppError("UNKNOWN_ENGINE", 400, fmt.Sprintf("unknown storage engine %q", engine))
		}
		types = schema.TypesSupportedByEngine(engine)
	}

	out := make([]fieldTypeInfo, 0, len(types))
	for _, t := range types {
		cfg := schema.MustConfig(t)
		info := fieldTypeInfo{
			Type:         t,
			Label:        cfg.Label,
			Controls:     cfg.Controls,
			Defaults:     schema.DefaultAttributes(t),
			Capabilities: cfg.Capabilities,
		}
		if engine != "" {
			info.NativeType, _ = schema.NativeType(t, engine)
		}
		out = append(out, info)
	}
	return c.JSON(fiber.Map{"data": out})
}

// GetFieldType handles GET /api/v2/system/field-types/:type.
func (h *Handler) GetFieldType(c *fiber.Ctx) error {
	t := schema.FieldTypeID(c.Params("type"))
	cfg, err := schema.Config(t)
	if err != nil {
		return NotFoundError("field type", string(t))
	}
	return c.JSON(fiber.Map{"data": cfg})
}

// --- Table schema endpoints ---

func (h *Handler) ListTables(c *fiber.Ctx) error {
	service := c.Params("name")
	if h.registry.GetService(service) == nil {
		return NotFoundError("service", service)
	}
	tables := h.registry.TablesForService(service)
	if tables == nil {
		tables = []*metadata.TableDef{}
	}
	return c.JSON(fiber.Map{"data": tables})
}

func (h *Handler) GetTable(c *fiber.Ctx) error {
	service, table := c.Params("name"), c.Params("table")
	def := h.registry.GetTable(service, table)
	if def == nil {
		return NotFoundError("table", service+"/"+table)
	}
	return c.JSON(fiber.Map{"data": def})
}

func (h *Handler) CreateTable(c *fiber.Ctx) error {
	service := c.Params("name")
	svc := h.registry.GetService(service)
	if svc == nil {
		return NotFoundError("service", service)
	}

	var def metadata.TableDef
	if err := c.BodyParser(&def); err != nil {
		return InvalidPayloadError()
	}

	if violations := h.checkTableDef(svc, &def); len(violations) > 0 {
		return ValidationError(violations)
	}

	if h.registry.GetTable(service, def.Name) != nil {
		return ConflictError("table", service+"/"+def.Name)
	}

	defJSON, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal table: %w", err)
	}
	_, err = store.Exec(c.Context(), h.store.Pool,
		"INSERT INTO _service_tables (service, name, definition) VALUES ($1, $2, $3)",
		service, def.Name, defJSON)
	if err != nil {
		return fmt.Errorf("insert table: %w", err)
	}

	if err := h.reload(c); err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"data": def})
}

func (h *Handler) DeleteTable(c *fiber.Ctx) error {
	service, table := c.Params("name"), c.Params("table")
	if h.registry.GetTable(service, table) == nil {
		return NotFoundError("table", service+"/"+table)
	}

	_, err := store.Exec(c.Context(), h.store.Pool,
		"DELETE FROM _service_tables WHERE service = $1 AND name = $2", service, table)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}

	if err := h.reload(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Table deleted: " + table})
}

// --- Field endpoints ---

func (h *Handler) CreateField(c *fiber.Ctx) error {
	service, table := c.Params("name"), c.Params("table")
	svc := h.registry.GetService(service)
	if svc == nil {
		return NotFoundError("service", service)
	}
	def := h.registry.GetTable(service, table)
	if def == nil {
		return NotFoundError("table", service+"/"+table)
	}

	var field metadata.FieldDef
	if err := c.BodyParser(&field); err != nil {
		return InvalidPayloadError()
	}

	if violations := h.checkField(svc, &field, true); len(violations) > 0 {
		return ValidationError(violations)
	}
	if def.HasField(field.Name) {
		return ConflictError("field", field.Name)
	}

	updated := *def
	updated.Fields = append(append([]metadata.FieldDef{}, def.Fields...), field)
	if err := h.saveTable(c, service, &updated); err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"data": field})
}

func (h *Handler) UpdateField(c *fiber.Ctx) error {
	service, table, name := c.Params("name"), c.Params("table"), c.Params("field")
	svc := h.registry.GetService(service)
	if svc == nil {
		return NotFoundError("service", service)
	}
	def := h.registry.GetTable(service, table)
	if def == nil {
		return NotFoundError("table", service+"/"+table)
	}
	if !def.HasField(name) {
		return NotFoundError("field", name)
	}

	var field metadata.FieldDef
	if err := c.BodyParser(&field); err != nil {
		return InvalidPayloadError()
	}
	field.Name = name // the URL wins; renames go through delete + create

	// Reserved names only gate newly created fields.
	if violations := h.checkField(svc, &field, false); len(violations) > 0 {
		return ValidationError(violations)
	}

	updated := *def
	updated.Fields = append([]metadata.FieldDef{}, def.Fields...)
	for i := range updated.Fields {
		if updated.Fields[i].Name == name {
			updated.Fields[i] = field
		}
	}
	if err := h.saveTable(c, service, &updated); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": field})
}

func (h *Handler) DeleteField(c *fiber.Ctx) error {
	service, table, name := c.Params("name"), c.Params("table"), c.Params("field")
	def := h.registry.GetTable(service, table)
	if def == nil {
		return NotFoundError("table", service+"/"+table)
	}
	if !def.HasField(name) {
		return NotFoundError("field", name)
	}

	updated := *def
	updated.Fields = nil
	for _, f := range def.Fields {
		if f.Name != name {
			updated.Fields = append(updated.Fields, f)
		}
	}
	if err := h.saveTable(c, service, &updated); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Field deleted: " + name})
}

// ValidateField handles POST .../fields/validate: a dry run for the form
// layer, returning every violation at once without persisting anything.
func (h *Handler) ValidateField(c *fiber.Ctx) error {
	service := c.Params("name")
	svc := h.registry.GetService(service)
	if svc == nil {
		return NotFoundError("service", service)
	}

	var field metadata.FieldDef
	if err := c.BodyParser(&field); err != nil {
		return InvalidPayloadError()
	}

	violations := h.checkField(svc, &field, true)
	if violations == nil {
		violations = []schema.Violation{}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"valid":      len(violations) == 0,
		"violations": violations,
	}})
}

// checkField runs the full gate for one field declaration: known type,
// engine representability, catalog validation, expression-rule compile.
func (h *Handler) checkField(svc *metadata.Service, field *metadata.FieldDef, isNew bool) []schema.Violation {
	if !schema.KnownType(field.Type) {
		return []schema.Violation{{
			Field: "type", Rule: "enum",
			Message: fmt.Sprintf("unknown field type %q", field.Type),
		}}
	}

	var out []schema.Violation
	if !svc.SupportsType(field.Type) {
		out = append(out, schema.Violation{
			Field: "type", Rule: "engine",
			Message: fmt.Sprintf("type %s is not representable on %s", field.Type, svc.Type),
		})
	}

	bag := field.Bag()
	if isNew {
		out = append(out, schema.ValidateNewField(field.Type, bag)...)
	} else {
		if v := schema.CheckIdentifier(schema.AttrName, field.Name); v != nil {
			out = append(out, *v)
		}
		out = append(out, schema.Validate(field.Type, bag)...)
	}

	for _, rule := range field.Rules {
		if _, err := schema.CompileExpressionRule(rule.Field, rule.Expression, rule.Message); err != nil {
			out = append(out, schema.Violation{
				Field: rule.Field, Rule: "expression",
				Message: err.Error(),
			})
		}
	}
	return out
}

// --- Relationship endpoints ---

func (h *Handler) CreateRelationship(c *fiber.Ctx) error {
	service, table := c.Params("name"), c.Params("table")
	def := h.registry.GetTable(service, table)
	if def == nil {
		return NotFoundError("table", service+"/"+table)
	}

	var rel metadata.RelationshipDef
	if err := c.BodyParser(&rel); err != nil {
		return InvalidPayloadError()
	}

	if violations, appErr := h.checkRelationshipStrict(&rel); appErr != nil {
		return appErr
	} else if len(violations) > 0 {
		return ValidationError(violations)
	}
	if def.GetRelationship(rel.Attributes.Name) != nil {
		return ConflictError("relationship", rel.Attributes.Name)
	}

	updated := *def
	updated.Relationships = append(append([]metadata.RelationshipDef{}, def.Relationships...), rel)
	if err := h.saveTable(c, service, &updated); err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"data": rel})
}

func (h *Handler) UpdateRelationship(c *fiber.Ctx) error {
	service, table, name := c.Params("name"), c.Params("table"), c.Params("rel")
	def := h.registry.GetTable(service, table)
	if def == nil {
		return NotFoundError("table", service+"/"+table)
	}
	if def.GetRelationship(name) == nil {
		return NotFoundError("relationship", name)
	}

	var rel metadata.RelationshipDef
	if err := c.BodyParser(&rel); err != nil {
		return InvalidPayloadError()
	}
	rel.Attributes.Name = name

	if violations, appErr := h.checkRelationshipStrict(&rel); appErr != nil {
		return appErr
	} else if len(violations) > 0 {
		return ValidationError(violations)
	}

	updated := *def
	updated.Relationships = append([]metadata.RelationshipDef{}, def.Relationships...)
	for i := range updated.Relationships {
		if updated.Relationships[i].Attributes.Name == name {
			updated.Relationships[i] = rel
		}
	}
	if err := h.saveTable(c, service, &updated); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rel})
}

func (h *Handler) DeleteRelationship(c *fiber.Ctx) error {
	service, table, name := c.Params("name"), c.Params("table"), c.Params("rel")
	def := h.registry.GetTable(service, table)
	if def == nil {
		return NotFoundError("table", service+"/"+table)
	}
	if def.GetRelationship(name) == nil {
		return NotFoundError("relationship", name)
	}

	updated := *def
	updated.Relationships = nil
	for _, r := range def.Relationships {
		if r.Attributes.Name != name {
			updated.Relationships = append(updated.Relationships, r)
		}
	}
	if err := h.saveTable(c, service, &updated); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Relationship deleted: " + name})
}

// ValidateRelationshipCandidate handles POST .../relationships/validate,
// the dry-run twin of ValidateField.
func (h *Handler) ValidateRelationshipCandidate(c *fiber.Ctx) error {
	var rel metadata.RelationshipDef
	if err := c.BodyParser(&rel); err != nil {
		return InvalidPayloadError()
	}

	violations, appErr := h.checkRelationshipStrict(&rel)
	if appErr != nil {
		return appErr
	}
	if violations == nil {
		violations = []schema.Violation{}
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"valid":             len(violations) == 0,
		"violations":        violations,
		"requires_junction": schema.RequiresJunctionTable(rel.Kind),
	}})
}

// checkRelationshipStrict validates a candidate, turning an unknown kind
// into a 400 (the closed enumeration drifted, not a form error).
func (h *Handler) checkRelationshipStrict(rel *metadata.RelationshipDef) ([]schema.Violation, *AppError) {
	violations, err := schema.ValidateRelationship(rel.Kind, rel.Attributes)
	if err != nil {
		return nil, NewAppError("UNKNOWN_KIND", 400, err.Error())
	}
	if rel.Attributes.Name == "" {
		violations = append(violations, schema.Violation{
			Field: "name", Rule: "required", Message: "name is required",
		})
	}
	return violations, nil
}

// checkRelationship applies the same gate as the strict variant but keeps
// an unknown kind as a violation, so a whole-table payload reports every
// problem at once instead of aborting on the first bad relationship.
func (h *Handler) checkRelationship(rel *metadata.RelationshipDef) []schema.Violation {
	violations, err := schema.ValidateRelationship(rel.Kind, rel.Attributes)
	if err != nil {
		return []schema.Violation{{
			Field: "kind", Rule: "enum", Message: err.Error(),
		}}
	}
	if rel.Attributes.Name == "" {
		violations = append(violations, schema.Violation{
			Field: "name", Rule: "required", Message: "name is required",
		})
	}
	return violations
}

// checkTableDef gates a whole posted table definition: table name, every
// field, every relationship, and name uniqueness within the payload.
// Stored definitions are addressed by name, so duplicates are rejected up
// front rather than left for the update endpoints to trip over.
func (h *Handler) checkTableDef(svc *metadata.Service, def *metadata.TableDef) []schema.Violation {
	var out []schema.Violation
	if v := schema.CheckIdentifier("name", def.Name); v != nil {
		out = append(out, *v)
	}

	seenFields := make(map[string]bool, len(def.Fields))
	for i := range def.Fields {
		field := &def.Fields[i]
		out = append(out, h.checkField(svc, field, true)...)
		if field.Name == "" {
			continue
		}
		if seenFields[field.Name] {
			out = append(out, schema.Violation{
				Field: field.Name, Rule: "duplicate",
				Message: fmt.Sprintf("field %q is declared more than once", field.Name),
			})
		}
		seenFields[field.Name] = true
	}

	seenRels := make(map[string]bool, len(def.Relationships))
	for i := range def.Relationships {
		rel := &def.Relationships[i]
		out = append(out, h.checkRelationship(rel)...)
		name := rel.Attributes.Name
		if name == "" {
			continue
		}
		if seenRels[name] {
			out = append(out, schema.Violation{
				Field: name, Rule: "duplicate",
				Message: fmt.Sprintf("relationship %q is declared more than once", name),
			})
		}
		seenRels[name] = true
	}
	return out
}

// saveTable persists an updated table definition and reloads the registry.
func (h *Handler) saveTable(c *fiber.Ctx, service string, def *metadata.TableDef) error {
	defJSON, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal table: %w", err)
	}
	_, err = store.Exec(c.Context(), h.store.Pool,
		"UPDATE _service_tables SET definition = $1, updated_at = NOW() WHERE service = $2 AND name = $3",
		defJSON, service, def.Name)
	if err != nil {
		return fmt.Errorf("update table: %w", err)
	}
	return h.reload(c)
}
