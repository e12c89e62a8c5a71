package admin

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"dbforge-admin/internal/schema"
	"dbforge-admin/internal/store"
)

type adminPayload struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Password   string `json:"password,omitempty"`
	IsSysAdmin bool   `json:"is_sys_admin"`
	Active     bool   `json:"active"`
}

const adminColumns = "id, email, first_name, last_name, is_sys_admin, active, created_at, updated_at"

func (h *Handler) ListAdmins(c *fiber.Ctx) error {
	rows, err := store.QueryRows(c.Context(), h.store.Pool,
		"SELECT "+adminColumns+" FROM _admins ORDER BY email")
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return c.JSON(fiber.Map{"data": rows})
}

func (h *Handler) GetAdmin(c *fiber.Ctx) error {
	id := c.Params("id")
	row, err := store.QueryRow(c.Context(), h.store.Pool,
		"SELECT "+adminColumns+" FROM _admins WHERE id = $1", id)
	if err != nil {
		return NotFoundError("admin", id)
	}
	return c.JSON(fiber.Map{"data": row})
}

func (h *Handler) CreateAdmin(c *fiber.Ctx) error {
	var body adminPayload
	if err := c.BodyParser(&body); err != nil {
		return InvalidPayloadError()
	}

	if violations := validateAdmin(&body, true); len(violations) > 0 {
		return ValidationError(violations)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	row, err := store.QueryRow(c.Context(), h.store.Pool,
		`INSERT INTO _admins (email, first_name, last_name, password_hash, is_sys_admin, active)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+adminColumns,
		body.Email, body.FirstName, body.LastName, string(hash), body.IsSysAdmin, body.Active)
	if err != nil {
		return ConflictError("admin", body.Email)
	}

	return c.Status(201).JSON(fiber.Map{"data": row})
}

func (h *Handler) UpdateAdmin(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := store.QueryRow(c.Context(), h.store.Pool,
		"SELECT id FROM _admins WHERE id = $1", id); err != nil {
		return NotFoundError("admin", id)
	}

	var body adminPayload
	if err := c.BodyParser(&body); err != nil {
		return InvalidPayloadError()
	}

	if violations := validateAdmin(&body, false); len(violations) > 0 {
		return ValidationError(violations)
	}

	if body.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		_, err = store.Exec(c.Context(), h.store.Pool,
			"UPDATE _admins SET password_hash = $1, updated_at = NOW() WHERE id = $2",
			string(hash), id)
		if err != nil {
			return fmt.Errorf("update admin password: %w", err)
		}
	}

	row, err := store.QueryRow(c.Context(), h.store.Pool,
		`UPDATE _admins SET email = $1, first_name = $2, last_name = $3,
		 is_sys_admin = $4, active = $5, updated_at = NOW()
		 WHERE id = $6 RETURNING `+adminColumns,
		body.Email, body.FirstName, body.LastName, body.IsSysAdmin, body.Active, id)
	if err != nil {
		return fmt.Errorf("update admin: %w", err)
	}

	return c.JSON(fiber.Map{"data": row})
}

func (h *Handler) DeleteAdmin(c *fiber.Ctx) error {
	id := c.Params("id")

	// The last sys admin cannot be removed, or the console locks out.
	var sysAdmins int
	err := h.store.Pool.QueryRow(c.Context(),
		"SELECT COUNT(*) FROM _admins WHERE is_sys_admin AND active AND id != $1", id).Scan(&sysAdmins)
	if err != nil {
		return fmt.Errorf("count sys admins: %w", err)
	}
	if sysAdmins == 0 {
		return ForbiddenError("Cannot delete the last active sys admin")
	}

	n, err := store.Exec(c.Context(), h.store.Pool,
		"DELETE FROM _admins WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if n == 0 {
		return NotFoundError("admin", id)
	}
	return c.JSON(fiber.Map{"message": "Admin deleted: " + id})
}

func validateAdmin(body *adminPayload, isNew bool) []schema.Violation {
	var out []schema.Violation
	if body.Email == "" || !strings.Contains(body.Email, "@") {
		out = append(out, schema.Violation{
			Field: "email", Rule: "format", Message: "a valid email is required",
		})
	}
	if isNew && len(body.Password) < 8 {
		out = append(out, schema.Violation{
			Field: "password", Rule: "min_length",
			Message: "password must be at least 8 characters",
		})
	}
	if !isNew && body.Password != "" && len(body.Password) < 8 {
		out = append(out, schema.Violation{
			Field: "password", Rule: "min_length",
			Message: "password must be at least 8 characters",
		})
	}
	return out
}
