package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/braian-rent/braian-api/internal/application/auth"
	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/domain"
)

// MsgRegisterFailed respuesta genérica cuando el registro falla por un error interno.
const MsgRegisterFailed = "Wystąpił błąd podczas rejestracji"

// SessionCookie atributos de la cookie de sesión.
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// AuthHandler maneja registro, login, logout y consulta de sesión.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie SessionCookie
	responder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie SessionCookie, r responder) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "braian_session"
	}
	return &AuthHandler{uc: uc, cookie: cookie, responder: r}
}

// LoginPage formulario de inicio de sesión. Con sesión activa redirige al panel.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if GetSession(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return c.Render("auth/login", fiber.Map{
		"Title":       "Logowanie",
		"CallbackURL": safeCallback(c.Query("callbackUrl")),
		"Registered":  c.Query("registered") != "",
		"Email":       "",
		"Error":       "",
	})
}

// RegisterPage formulario de registro. Con sesión activa redirige al panel.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	if GetSession(c) != nil {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return c.Render("auth/register", fiber.Map{
		"Title": "Rejestracja",
		"Error": "",
		"Email": "",
		"Name":  "",
		"Phone": "",
	})
}

// Register godoc
// @Summary      Registrar propietario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name, phone"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.Result
// @Failure      500   {object}  dto.Result
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	form := isFormRequest(c)
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return h.registerError(c, form, in, fiber.StatusBadRequest, auth.MsgAllFieldsRequired)
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			return h.registerError(c, form, in, fiber.StatusBadRequest, verr.Message)
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return h.registerError(c, form, in, fiber.StatusBadRequest, MsgEmailExists)
		}
		h.internal(c, err)
		return h.registerError(c, form, in, fiber.StatusInternalServerError, MsgRegisterFailed)
	}
	if form {
		return c.Redirect("/auth/login?registered=1", fiber.StatusSeeOther)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{Success: true, User: user})
}

func (h *AuthHandler) registerError(c *fiber.Ctx, form bool, in dto.RegisterRequest, status int, msg string) error {
	if form {
		return c.Status(status).Render("auth/register", fiber.Map{
			"Title": "Rejestracja",
			"Error": msg,
			"Email": in.Email,
			"Name":  in.Name,
			"Phone": in.Phone,
		})
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.Result
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	form := isFormRequest(c)
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.loginError(c, form, in, fiber.StatusBadRequest, MsgInvalidBody)
	}
	id, token, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return h.loginError(c, form, in, fiber.StatusUnauthorized, MsgInvalidCredential)
		}
		h.internal(c, err)
		return h.loginError(c, form, in, fiber.StatusInternalServerError, MsgInternal)
	}
	h.setSessionCookie(c, token)
	if form {
		return c.Redirect(safeCallback(in.CallbackURL), fiber.StatusSeeOther)
	}
	return c.JSON(dto.LoginResponse{
		Success: true,
		User:    toSessionResponse(id),
		Token:   token,
	})
}

func (h *AuthHandler) loginError(c *fiber.Ctx, form bool, in dto.LoginRequest, status int, msg string) error {
	if form {
		return c.Status(status).Render("auth/login", fiber.Map{
			"Title":       "Logowanie",
			"Error":       msg,
			"Email":       in.Email,
			"CallbackURL": safeCallback(in.CallbackURL),
		})
	}
	return c.Status(status).JSON(dto.Fail(dto.CodeUnauthenticated, msg))
}

// Logout borra la cookie de sesión y vuelve al login.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(loginPath, fiber.StatusSeeOther)
}

// Session godoc
// @Summary      Sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.Result
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	id := GetSession(c)
	if id == nil {
		return c.JSON(fiber.Map{"success": true, "data": nil})
	}
	return c.JSON(fiber.Map{"success": true, "data": toSessionResponse(id)})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	maxAge := h.cookie.MaxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(maxAge),
		MaxAge:   int(maxAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func toSessionResponse(id *auth.SessionIdentity) *dto.SessionResponse {
	if id == nil {
		return nil
	}
	return &dto.SessionResponse{ID: id.UserID, Email: id.Email, Name: id.Name, Role: id.Role}
}

func isFormRequest(c *fiber.Ctx) bool {
	ct := c.Get(fiber.HeaderContentType)
	return strings.HasPrefix(ct, fiber.MIMEApplicationForm) || strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}
