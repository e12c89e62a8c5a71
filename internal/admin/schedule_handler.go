package admin

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"dbforge-admin/internal/metadata"
	"dbforge-admin/internal/schema"
	"dbforge-admin/internal/store"
)

func (h *Handler) ListSchedules(c *fiber.Ctx) error {
	rows, err := store.QueryRows(c.Context(), h.store.Pool,
		"SELECT id, name, service, definition, active, created_at, updated_at FROM _schedules ORDER BY name")
	if err != nil {
		return fmt.Errorf("list schedules: %w", err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *Handler) GetSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	row, err := store.QueryRow(c.Context(), h.store.Pool,
		"SELECT id, name, service, definition, active, created_at, updated_at FROM _schedules WHERE id = $1", id)
	if err != nil {
		return NotFoundError("schedule", id)
	}
	return c.JSON(fiber.Map{"data": row})
}

func (h *Handler) CreateSchedule(c *fiber.Ctx) error {
	var sched metadata.Schedule
	if err := c.BodyParser(&sched); err != nil {
		return InvalidPayloadError()
	}

	if violations := h.validateSchedule(&sched); len(violations) > 0 {
		return ValidationError(violations)
	}

	defJSON, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	row, err := store.QueryRow(c.Context(), h.store.Pool,
		"INSERT INTO _schedules (name, service, definition, active) VALUES ($1, $2, $3, $4) RETURNING id",
		sched.Name, sched.Service, defJSON, sched.Active)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	sched.ID, _ = row["id"].(string)

	return c.Status(201).JSON(fiber.Map{"data": sched})
}

func (h *Handler) UpdateSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := store.QueryRow(c.Context(), h.store.Pool,
		"SELECT id FROM _schedules WHERE id = $1", id); err != nil {
		return NotFoundError("schedule", id)
	}

	var sched metadata.Schedule
	if err := c.BodyParser(&sched); err != nil {
		return InvalidPayloadError()
	}
	sched.ID = id

	if violations := h.validateSchedule(&sched); len(violations) > 0 {
		return ValidationError(violations)
	}

	defJSON, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	_, err = store.Exec(c.Context(), h.store.Pool,
		"UPDATE _schedules SET name = $1, service = $2, definition = $3, active = $4, updated_at = NOW() WHERE id = $5",
		sched.Name, sched.Service, defJSON, sched.Active, id)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}

	return c.JSON(fiber.Map{"data": sched})
}

func (h *Handler) DeleteSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	n, err := store.Exec(c.Context(), h.store.Pool,
		"DELETE FROM _schedules WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if n == 0 {
		return NotFoundError("schedule", id)
	}
	return c.JSON(fiber.Map{"message": "Schedule deleted: " + id})
}

func (h *Handler) validateSchedule(sched *metadata.Schedule) []schema.Violation {
	var out []schema.Violation
	if v := schema.CheckIdentifier("name", sched.Name); v != nil {
		out = append(out, *v)
	}
	if sched.Service == "" {
		out = append(out, schema.Violation{
			Field: "service", Rule: "required", Message: "service is required",
		})
	} else if h.registry.GetService(sched.Service) == nil {
		out = append(out, schema.Violation{
			Field: "service", Rule: "exists",
			Message: fmt.Sprintf("unknown service %q", sched.Service),
		})
	}
	if !sched.ValidVerb() {
		out = append(out, schema.Violation{
			Field: "verb", Rule: "enum",
			Message: fmt.Sprintf("unsupported verb %q", sched.Verb),
		})
	}
	if sched.FrequencyMinutes <= 0 {
		out = append(out, schema.Violation{
			Field: "frequency_minutes", Rule: "min",
			Message: "frequency_minutes must be positive",
		})
	}
	return out
}
