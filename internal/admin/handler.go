package admin

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"dbforge-admin/internal/metadata"
	"dbforge-admin/internal/schema"
	"dbforge-admin/internal/store"
)

type Handler struct {
	store    *store.Store
	registry *metadata.Registry
}

func NewHandler(s *store.Store, reg *metadata.Registry) *Handler {
	return &Handler{store: s, registry: reg}
}

// RegisterAdminRoutes registers the console resource routes. All of them
// sit behind the session and sys-admin middleware.
func RegisterAdminRoutes(app *fiber.App, h *Handler, mw ...fiber.Handler) {
	system := app.Group("/api/v2/system")
	for _, m := range mw {
		system.Use(m)
	}

	system.Get("/environment", h.Environment)

	system.Get("/field-types", h.ListFieldTypes)
	system.Get("/field-types/:type", h.GetFieldType)

	system.Get("/services", h.ListServices)
	system.Get("/services/:name", h.GetService)
	system.Post("/services", h.CreateService)
	system.Put("/services/:name", h.UpdateService)
	system.Delete("/services/:name", h.DeleteService)

	system.Get("/services/:name/schema", h.ListTables)
	system.Get("/services/:name/schema/:table", h.GetTable)
	system.Post("/services/:name/schema", h.CreateTable)
	system.Delete("/services/:name/schema/:table", h.DeleteTable)

	system.Post("/services/:name/schema/:table/fields", h.CreateField)
	system.Put("/services/:name/schema/:table/fields/:field", h.UpdateField)
	system.Delete("/services/:name/schema/:table/fields/:field", h.DeleteField)
	system.Post("/services/:name/schema/:table/fields/validate", h.ValidateField)

	system.Post("/services/:name/schema/:table/relationships", h.CreateRelationship)
	system.Put("/services/:name/schema/:table/relationships/:rel", h.UpdateRelationship)
	system.Delete("/services/:name/schema/:table/relationships/:rel", h.DeleteRelationship)
	system.Post("/services/:name/schema/:table/relationships/validate", h.ValidateRelationshipCandidate)

	system.Get("/schedules", h.ListSchedules)
	system.Get("/schedules/:id", h.GetSchedule)
	system.Post("/schedules", h.CreateSchedule)
	system.Put("/schedules/:id", h.UpdateSchedule)
	system.Delete("/schedules/:id", h.DeleteSchedule)

	system.Get("/cors", h.ListCorsRules)
	system.Get("/cors/:id", h.GetCorsRule)
	system.Post("/cors", h.CreateCorsRule)
	system.Put("/cors/:id", h.UpdateCorsRule)
	system.Delete("/cors/:id", h.DeleteCorsRule)

	system.Get("/admins", h.ListAdmins)
	system.Get("/admins/:id", h.GetAdmin)
	system.Post("/admins", h.CreateAdmin)
	system.Put("/admins/:id", h.UpdateAdmin)
	system.Delete("/admins/:id", h.DeleteAdmin)
}

// Environment handles GET /api/v2/system/environment: the static platform
// facts the console needs before any service is configured.
func (h *Handler) Environment(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"storage_engines":    schema.StorageEngines,
		"relationship_kinds": schema.RelationshipKinds,
	}})
}

// --- Service endpoints ---

func (h *Handler) ListServices(c *fiber.Ctx) error {
	rows, err := store.QueryRows(c.Context(), h.store.Pool,
		"SELECT name, type, definition, created_at, updated_at FROM _services ORDER BY name")
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *Handler) GetService(c *fiber.Ctx) error {
	name := c.Params("name")
	svc := h.registry.GetService(name)
	if svc == nil {
		return NotFoundError("service", name)
	}
	return c.JSON(fiber.Map{"data": svc})
}

func (h *Handler) CreateService(c *fiber.Ctx) error {
	var svc metadata.Service
	if err := c.BodyParser(&svc); err != nil {
		return InvalidPayloadError()
	}

	if violations := validateService(&svc); len(violations) > 0 {
		return ValidationError(violations)
	}
	if h.registry.GetService(svc.Name) != nil {
		return ConflictError("service", svc.Name)
	}

	defJSON, err := json.Marshal(svc)
	if err != nil {
		return fmt.Errorf("marshal service: %w", err)
	}

	_, err = store.Exec(c.Context(), h.store.Pool,
		"INSERT INTO _services (name, type, definition) VALUES ($1, $2, $3)",
		svc.Name, string(svc.Type), defJSON)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}

	if err := h.reload(c); err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"data": svc})
}

func (h *Handler) UpdateService(c *fiber.Ctx) error {
	name := c.Params("name")
	if h.registry.GetService(name) == nil {
		return NotFoundError("service", name)
	}

	var svc metadata.Service
	if err := c.BodyParser(&svc); err != nil {
		return InvalidPayloadError()
	}
	svc.Name = name // the URL wins

	if violations := validateService(&svc); len(violations) > 0 {
		return ValidationError(violations)
	}

	defJSON, err := json.Marshal(svc)
	if err != nil {
		return fmt.Errorf("marshal service: %w", err)
	}

	_, err = store.Exec(c.Context(), h.store.Pool,
		"UPDATE _services SET type = $1, definition = $2, updated_at = NOW() WHERE name = $3",
		string(svc.Type), defJSON, name)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}

	if err := h.reload(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": svc})
}

func (h *Handler) DeleteService(c *fiber.Ctx) error {
	name := c.Params("name")
	if h.registry.GetService(name) == nil {
		return NotFoundError("service", name)
	}

	_, err := store.Exec(c.Context(), h.store.Pool,
		"DELETE FROM _services WHERE name = $1", name)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}

	if err := h.reload(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Service deleted: " + name})
}

// validateService checks the declaration before it reaches storage.
func validateService(svc *metadata.Service) []schema.Violation {
	var out []schema.Violation
	if v := schema.CheckIdentifier("name", svc.Name); v != nil {
		out = append(out, *v)
	}
	if !schema.KnownEngine(svc.Type) {
		out = append(out, schema.Violation{
			Field: "type", Rule: "enum",
			Message: fmt.Sprintf("unknown storage engine %q", svc.Type),
		})
	}
	return out
}

// reload refreshes the registry after a mutation.
func (h *Handler) reload(c *fiber.Ctx) error {
	if err := metadata.Reload(c.Context(), h.store.Pool, h.registry); err != nil {
		return fmt.Errorf("reload registry: %w", err)
	}
	return nil
}
