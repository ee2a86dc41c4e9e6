package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/braian-rent/braian-api/internal/application/auth"
	"github.com/braian-rent/braian-api/internal/application/usecase"
	"github.com/braian-rent/braian-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth       *auth.AuthUseCase
	Properties *usecase.PropertyUseCase
	Health     *usecase.HealthUseCase
	Features   *usecase.FeatureService
	Cookie     SessionCookie
	Location   *time.Location
	Log        zerolog.Logger
	Reporter   ErrorReporter
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	r := responder{log: deps.Log, reporter: deps.Reporter}
	var features featureChecker
	if deps.Features != nil {
		features = deps.Features
	}

	// La sesión se carga en todas las rutas; cada grupo decide si la exige.
	app.Use(LoadSession(deps.Auth, deps.Cookie.Name))

	// Salud (público)
	health := NewHealthHandler(deps.Health)
	app.Get("/api/health", health.Health)
	app.Get("/api/health/ready", health.Ready)

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth, deps.Cookie, r)
	authGroup := app.Group("/auth")
	authGroup.Get("/login", authHandler.LoginPage)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/register", authHandler.RegisterPage)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/logout", authHandler.Logout)
	app.Get("/api/auth/session", authHandler.Session)

	// Panel (requiere sesión)
	dashboard := NewDashboardHandler(deps.Properties, deps.Features, deps.Location, r)
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/dashboard", fiber.StatusFound) })
	app.Get("/dashboard", RequireSession(), dashboard.Index)

	// API v1 (requiere sesión)
	v1 := app.Group("/api/v1", RequireSession())
	propertyHandler := NewPropertyHandler(deps.Properties, r)
	properties := v1.Group("/properties")
	properties.Get("/", propertyHandler.List)
	properties.Get("/:id", propertyHandler.GetByID)
	properties.Get("/:id/statement.pdf", propertyHandler.Statement)
	v1.Get("/analytics/summary",
		RequireFeature(usecase.FeatureAnalytics, features),
		RequireRole(entity.RoleOwner),
		propertyHandler.Summary)

	// Acciones de formulario: cada una resuelve sesión y rol con su propio mensaje.
	actionHandler := NewActionHandler(deps.Properties, r)
	actions := app.Group("/actions/properties")
	actions.Post("/create", actionHandler.Create)
	actions.Post("/update", actionHandler.Update)
	actions.Post("/delete", actionHandler.Delete)
}
