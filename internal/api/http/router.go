package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte-service/internal/api/http/handlers"
	"github.com/spec-kit/soporte-service/internal/auth"
	"github.com/spec-kit/soporte-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Operators      *handlers.OperatorsHandler
	Tickets        *handlers.TicketsHandler
	Averias        *handlers.AveriasHandler
	Visitas        *handlers.VisitasHandler
	Derivaciones   *handlers.DerivacionesHandler
	Sesiones       *handlers.SesionesHandler
	PostVentas     *handlers.PostVentasHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Operators.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Operators.Me)
	authProtected.Post("/password/change", cfg.Operators.ChangePassword)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)

	api.Get("/debug/metrics", auth.RequireRole(domain.RoleAdmin, domain.RoleSupervisor), cfg.Metrics.Snapshot)

	tickets := api.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateTicket)
	tickets.Get("/:id/historial", cfg.Tickets.TicketHistory)
	tickets.Delete("/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleSupervisor), cfg.Tickets.DeleteTicket)

	averias := api.Group("/averias")
	averias.Post("", cfg.Averias.CreateAveria)
	averias.Get("", cfg.Averias.ListAverias)
	averias.Get("/:id", cfg.Averias.GetAveria)
	averias.Patch("/:id", cfg.Averias.UpdateAveria)
	averias.Get("/:id/historial", cfg.Averias.AveriaHistory)

	visitas := api.Group("/visitas")
	visitas.Post("", cfg.Visitas.CreateVisita)
	visitas.Get("", cfg.Visitas.ListVisitas)
	visitas.Get("/:id", cfg.Visitas.GetVisita)
	visitas.Patch("/:id", cfg.Visitas.UpdateVisita)
	visitas.Get("/:id/historial", cfg.Visitas.VisitaHistory)

	derivaciones := api.Group("/derivaciones")
	derivaciones.Post("", cfg.Derivaciones.CreateDerivacion)
	derivaciones.Get("", cfg.Derivaciones.ListDerivaciones)
	derivaciones.Get("/:id", cfg.Derivaciones.GetDerivacion)
	derivaciones.Patch("/:id", cfg.Derivaciones.UpdateDerivacion)
	derivaciones.Get("/:id/historial", cfg.Derivaciones.DerivacionHistory)

	sesiones := api.Group("/sesiones-remotas")
	sesiones.Post("", cfg.Sesiones.CreateSesion)
	sesiones.Get("", cfg.Sesiones.ListSesiones)
	sesiones.Get("/:id", cfg.Sesiones.GetSesion)
	sesiones.Patch("/:id", cfg.Sesiones.UpdateSesion)
	sesiones.Get("/:id/historial", cfg.Sesiones.SesionHistory)

	postventas := api.Group("/postventas")
	postventas.Post("", cfg.PostVentas.CreatePostVenta)
	postventas.Get("", cfg.PostVentas.ListPostVentas)
	postventas.Get("/:id", cfg.PostVentas.GetPostVenta)
	postventas.Patch("/:id", cfg.PostVentas.UpdatePostVenta)
	postventas.Get("/:id/historial", cfg.PostVentas.PostVentaHistory)
}
