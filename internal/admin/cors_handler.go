package admin

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"dbforge-admin/internal/metadata"
	"dbforge-admin/internal/schema"
	"dbforge-admin/internal/store"
)

func (h *Handler) ListCorsRules(c *fiber.Ctx) error {
	rules := h.registry.CorsRules()
	if rules == nil {
		rules = []*metadata.CorsRule{}
	}
	return c.JSON(fiber.Map{"data": rules})
}

func (h *Handler) GetCorsRule(c *fiber.Ctx) error {
	id := c.Params("id")
	for _, rule := range h.registry.CorsRules() {
		if rule.ID == id {
			return c.JSON(fiber.Map{"data": rule})
		}
	}
	return NotFoundError("cors rule", id)
}

func (h *Handler) CreateCorsRule(c *fiber.Ctx) error {
	var rule metadata.CorsRule
	if err := c.BodyParser(&rule); err != nil {
		return InvalidPayloadError()
	}

	if violations := validateCorsRule(&rule); len(violations) > 0 {
		return ValidationError(violations)
	}

	defJSON, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("marshal cors rule: %w", err)
	}

	row, err := store.QueryRow(c.Context(), h.store.Pool,
		"INSERT INTO _cors (path, definition) VALUES ($1, $2) RETURNING id",
		rule.Path, defJSON)
	if err != nil {
		return fmt.Errorf("insert cors rule: %w", err)
	}
	rule.ID, _ = row["id"].(string)

	if err := h.reload(c); err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"data": rule})
}

func (h *Handler) UpdateCorsRule(c *fiber.Ctx) error {
	id := c.Params("id")

	var rule metadata.CorsRule
	if err := c.BodyParser(&rule); err != nil {
		return InvalidPayloadError()
	}
	rule.ID = id

	if violations := validateCorsRule(&rule); len(violations) > 0 {
		return ValidationError(violations)
	}

	defJSON, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("marshal cors rule: %w", err)
	}

	n, err := store.Exec(c.Context(), h.store.Pool,
		"UPDATE _cors SET path = $1, definition = $2, updated_at = NOW() WHERE id = $3",
		rule.Path, defJSON, id)
	if err != nil {
		return fmt.Errorf("update cors rule: %w", err)
	}
	if n == 0 {
		return NotFoundError("cors rule", id)
	}

	if err := h.reload(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rule})
}

func (h *Handler) DeleteCorsRule(c *fiber.Ctx) error {
	id := c.Params("id")
	n, err := store.Exec(c.Context(), h.store.Pool,
		"DELETE FROM _cors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete cors rule: %w", err)
	}
	if n == 0 {
		return NotFoundError("cors rule", id)
	}

	if err := h.reload(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "CORS rule deleted: " + id})
}

var corsMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

func validateCorsRule(rule *metadata.CorsRule) []schema.Violation {
	var out []schema.Violation
	if rule.Path == "" || !strings.HasPrefix(rule.Path, "/") {
		out = append(out, schema.Violation{
			Field: "path", Rule: "format", Message: "path must start with /",
		})
	}
	if len(rule.Origins) == 0 {
		out = append(out, schema.Violation{
			Field: "origins", Rule: "required", Message: "at least one origin is required",
		})
	}
	if len(rule.Methods) == 0 {
		out = append(out, schema.Violation{
			Field: "methods", Rule: "required", Message: "at least one method is required",
		})
	}
	for _, m := range rule.Methods {
		if !corsMethods[m] {
			out = append(out, schema.Violation{
				Field: "methods", Rule: "enum",
				Message: fmt.Sprintf("unsupported method %q", m),
			})
		}
	}
	if rule.MaxAge < 0 {
		out = append(out, schema.Violation{
			Field: "max_age", Rule: "min", Message: "max_age cannot be negative",
		})
	}
	return out
}
