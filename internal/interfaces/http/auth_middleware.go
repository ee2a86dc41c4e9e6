package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/braian-rent/braian-api/internal/application/auth"
	"github.com/braian-rent/braian-api/internal/application/dto"
)

// Claves en c.Locals.
const (
	LocalSession   = "session"
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalRequestID = "request_id"
)

const loginPath = "/auth/login"

// SessionResolver verifica un token de sesión; nil si no es válido.
// Lo implementa *auth.AuthUseCase.
type SessionResolver interface {
	Session(token string) *auth.SessionIdentity
}

// LoadSession lee el token de la cookie de sesión o del header Authorization (Bearer)
// y, si es válido, deja la identidad en locals. No corta la cadena.
func LoadSession(resolver SessionResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c, cookieName)
		if token == "" {
			return c.Next()
		}
		if id := resolver.Session(token); id != nil {
			c.Locals(LocalSession, id)
			c.Locals(LocalUserID, id.UserID)
			c.Locals(LocalRole, id.Role)
		}
		return c.Next()
	}
}

// RequireSession exige sesión. Las rutas de API y de acciones reciben 401 JSON;
// las páginas se redirigen al login conservando la URL de retorno.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetSession(c) != nil {
			return c.Next()
		}
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(dto.CodeUnauthenticated, "Unauthorized"))
		}
		if isAPIRequest(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(dto.CodeUnauthenticated, MsgUnauthenticated))
		}
		return c.Redirect(loginPath+"?callbackUrl="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
	}
}

// RequireRole exige uno de los roles indicados. Debe ir después de RequireSession;
// sin sesión responde 401.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(dto.CodeUnauthenticated, MsgUnauthenticated))
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail(dto.CodeForbidden, MsgForbidden))
	}
}

// GetSession identidad de la sesión (nil si no hay).
func GetSession(c *fiber.Ctx) *auth.SessionIdentity {
	id, _ := c.Locals(LocalSession).(*auth.SessionIdentity)
	return id
}

// GetUserID helper para obtener user_id del contexto.
func GetUserID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserID).(string)
	return v
}

// GetRole helper para obtener el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// GetRequestID identificador de la petición en curso.
func GetRequestID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRequestID).(string)
	return v
}

func tokenFromRequest(c *fiber.Ctx, cookieName string) string {
	if cookieName != "" {
		if v := c.Cookies(cookieName); v != "" {
			return v
		}
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func isAPIRequest(c *fiber.Ctx) bool {
	p := c.Path()
	return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/actions/")
}

// safeCallback acepta solo rutas relativas del propio sitio.
func safeCallback(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.ContainsAny(raw, "\\\r\n") {
		return "/dashboard"
	}
	if strings.HasPrefix(raw, loginPath) || strings.HasPrefix(raw, "/auth/register") {
		return "/dashboard"
	}
	return raw
}
