package http

import (
	"crypto/sha256"
	"embed"
	"encoding/base64"
	"errors"
	"io/fs"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog"

	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/ports"
)

//go:embed views
var viewsFS embed.FS

const layoutMain = "layouts/main"

// ServerConfig parámetros de la aplicación Fiber.
type ServerConfig struct {
	AppName         string
	SessionSecret   string
	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitWindow time.Duration
	Metrics         ports.MetricsSink
	Log             zerolog.Logger
	Reporter        ErrorReporter
}

// NewViewEngine motor de plantillas con las vistas embebidas en el binario.
func NewViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFunc("add", func(a, b int) int { return a + b })
	return engine
}

// NewApp construye la app con vistas, manejador de errores y middlewares globales.
// Las rutas se registran aparte con Router.
func NewApp(cfg ServerConfig) *fiber.App {
	if cfg.AppName == "" {
		cfg.AppName = "Braian.rent"
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		Views:        NewViewEngine(),
		ViewsLayout:  layoutMain,
		ErrorHandler: ErrorHandler(cfg.Log, cfg.Reporter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(RequestContext(cfg.Metrics, cfg.Log))
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(helmet.New())
	app.Use(corsMiddleware(cfg.AllowedOrigins))
	app.Use(encryptcookie.New(encryptcookie.Config{Key: CookieKey(cfg.SessionSecret)}))
	if cfg.RateLimitMax > 0 {
		app.Use(rateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))
	}
	return app
}

// CookieKey deriva la clave AES-256 de las cookies del secreto de sesión.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func corsMiddleware(origins []string) fiber.Handler {
	if len(origins) == 0 {
		return cors.New()
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID, X-Response-Time",
	})
}

// rateLimiter limita por IP las rutas de API, autenticación y acciones.
func rateLimiter(limit int, window time.Duration) fiber.Handler {
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			if strings.HasPrefix(p, "/api/health") {
				return true
			}
			return !(strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/auth/") || strings.HasPrefix(p, "/actions/"))
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail(dto.CodeRateLimited, MsgTooManyRequests))
		},
	})
}

// ErrorHandler errores no manejados por los handlers: JSON para API y acciones,
// página de error para el resto.
func ErrorHandler(log zerolog.Logger, reporter ErrorReporter) fiber.ErrorHandler {
	r := responder{log: log, reporter: reporter}
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := MsgInternal
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		switch code {
		case fiber.StatusNotFound:
			msg = MsgPageNotFound
		case fiber.StatusInternalServerError:
			msg = MsgInternal
			r.internal(c, err)
		}

		if isAPIRequest(c) {
			return c.Status(code).JSON(dto.Fail(codeFor(code), msg))
		}
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Błąd",
			"ErrorCode":    code,
			"ErrorMessage": msg,
		})
	}
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return dto.CodeValidation
	case fiber.StatusUnauthorized:
		return dto.CodeUnauthenticated
	case fiber.StatusForbidden:
		return dto.CodeForbidden
	case fiber.StatusNotFound:
		return dto.CodeNotFound
	case fiber.StatusConflict:
		return dto.CodeConflict
	case fiber.StatusTooManyRequests:
		return dto.CodeRateLimited
	}
	return dto.CodeInternal
}
