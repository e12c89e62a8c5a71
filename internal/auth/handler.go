package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"dbforge-admin/internal/admin"
	"dbforge-admin/internal/store"
)

// SessionHandler serves the console session endpoints.
type SessionHandler struct {
	store     *store.Store
	jwtSecret string
}

func NewSessionHandler(s *store.Store, jwtSecret string) *SessionHandler {
	return &SessionHandler{store: s, jwtSecret: jwtSecret}
}

// Login handles POST /api/v2/session.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return admin.InvalidPayloadError()
	}
	if body.Email == "" || body.Password == "" {
		return admin.UnauthorizedError("Email and password are required")
	}

	ctx := c.Context()

	row, err := h.findAdminByEmail(ctx, body.Email)
	if err != nil {
		return admin.UnauthorizedError("Invalid email or password")
	}

	active, _ := row["active"].(bool)
	if !active {
		return admin.UnauthorizedError("Account is disabled")
	}

	passwordHash, _ := row["password_hash"].(string)
	if !CheckPassword(body.Password, passwordHash) {
		return admin.UnauthorizedError("Invalid email or password")
	}

	adminID, _ := row["id"].(string)
	email, _ := row["email"].(string)
	sysAdmin, _ := row["is_sys_admin"].(bool)

	pair, err := h.generateTokenPair(ctx, adminID, email, sysAdmin)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": pair})
}

// Refresh handles PUT /api/v2/session.
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&body); err != nil {
		return admin.InvalidPayloadError()
	}
	if body.RefreshToken == "" {
		return admin.UnauthorizedError("Refresh token is required")
	}

	ctx := c.Context()

	row, err := store.QueryRow(ctx, h.store.Pool,
		`SELECT rt.id, rt.admin_id, rt.expires_at, a.email, a.is_sys_admin, a.active
		 FROM _refresh_tokens rt
		 JOIN _admins a ON a.id = rt.admin_id
		 WHERE rt.token = $1`, body.RefreshToken)
	if err != nil {
		return admin.UnauthorizedError("Invalid refresh token")
	}

	expiresAt, _ := row["expires_at"].(time.Time)
	if time.Now().After(expiresAt) {
		_, _ = store.Exec(ctx, h.store.Pool,
			"DELETE FROM _refresh_tokens WHERE token = $1", body.RefreshToken)
		return admin.UnauthorizedError("Refresh token expired")
	}

	active, _ := row["active"].(bool)
	if !active {
		return admin.UnauthorizedError("Account is disabled")
	}

	// Rotation: the used refresh token is spent either way.
	tokenID, _ := row["id"].(string)
	_, _ = store.Exec(ctx, h.store.Pool,
		"DELETE FROM _refresh_tokens WHERE id = $1", tokenID)

	adminID, _ := row["admin_id"].(string)
	email, _ := row["email"].(string)
	sysAdmin, _ := row["is_sys_admin"].(bool)

	pair, err := h.generateTokenPair(ctx, adminID, email, sysAdmin)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": pair})
}

// Logout handles DELETE /api/v2/session.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&body); err != nil {
		return admin.InvalidPayloadError()
	}
	if body.RefreshToken == "" {
		return admin.UnauthorizedError("Refresh token is required")
	}

	_, _ = store.Exec(c.Context(), h.store.Pool,
		"DELETE FROM _refresh_tokens WHERE token = $1", body.RefreshToken)

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /api/v2/session (requires session middleware).
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return admin.UnauthorizedError("Missing session token")
	}
	row, err := store.QueryRow(c.Context(), h.store.Pool,
		"SELECT id, email, first_name, last_name, is_sys_admin, active FROM _admins WHERE id = $1",
		sess.AdminID)
	if err != nil {
		return admin.UnauthorizedError("Session admin no longer exists")
	}
	return c.JSON(fiber.Map{"data": row})
}

// RegisterSessionRoutes registers the session endpoints. Login and refresh
// are open; Me requires a session.
func RegisterSessionRoutes(app *fiber.App, h *SessionHandler, sessionMW fiber.Handler) {
	session := app.Group("/api/v2/session")
	session.Post("/", h.Login)
	session.Put("/", h.Refresh)
	session.Delete("/", h.Logout)
	session.Get("/", sessionMW, h.Me)
}

// --- helpers ---

func (h *SessionHandler) findAdminByEmail(ctx context.Context, email string) (map[string]any, error) {
	return store.QueryRow(ctx, h.store.Pool,
		"SELECT id, email, password_hash, is_sys_admin, active FROM _admins WHERE email = $1", email)
}

func (h *SessionHandler) generateTokenPair(ctx context.Context, adminID, email string, sysAdmin bool) (*TokenPair, error) {
	accessToken, err := GenerateAccessToken(adminID, email, sysAdmin, h.jwtSecret)
	if err != nil {
		return nil, admin.NewAppError("INTERNAL_ERROR", 500, "Failed to generate access token")
	}

	refreshToken := GenerateRefreshToken()
	expiresAt := time.Now().Add(RefreshTokenTTL)

	_, err = store.Exec(ctx, h.store.Pool,
		`INSERT INTO _refresh_tokens (admin_id, token, expires_at) VALUES ($1, $2, $3)`,
		adminID, refreshToken, expiresAt)
	if err != nil {
		return nil, admin.NewAppError("INTERNAL_ERROR", 500, "Failed to store refresh token")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
