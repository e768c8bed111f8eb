package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Behnamfe76/officedesk/internal/api/http/handlers"
	"github.com/Behnamfe76/officedesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Leave          *handlers.LeaveHandler
	Bookings       *handlers.BookingHandler
	Fleet          *handlers.FleetHandler
	Tickets        *handlers.TicketsHandler
	HelpdeskAdmin  *handlers.HelpdeskAdminHandler
	Notifications  *handlers.NotificationsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Get("/managers", cfg.Auth.Managers)

	protected.Post("/leave", cfg.Leave.Create)
	protected.Get("/leave", cfg.Leave.ListMine)
	protected.Get("/leave/:id", cfg.Leave.Get)
	protected.Put("/leave/:id", cfg.Leave.Edit)
	protected.Post("/leave/:id/print", cfg.Leave.Print)

	protected.Get("/cars", cfg.Fleet.List)
	protected.Get("/cars/:id", cfg.Fleet.Get)
	protected.Post("/bookings", cfg.Bookings.Create)
	protected.Get("/bookings", cfg.Bookings.ListMine)
	protected.Get("/bookings/:id", cfg.Bookings.Get)

	protected.Get("/categories", cfg.HelpdeskAdmin.ListCategories)
	protected.Get("/departments", cfg.HelpdeskAdmin.Departments)
	protected.Post("/tickets", cfg.Tickets.Create)
	protected.Get("/tickets", cfg.Tickets.ListMine)
	protected.Get("/tickets/:id", cfg.Tickets.Get)
	protected.Post("/tickets/:id/messages", cfg.Tickets.Reply)

	staff := protected.Group("/staff/tickets")
	staff.Get("", cfg.Tickets.Queue)
	staff.Post("/:id/messages", cfg.Tickets.StaffReply)
	staff.Post("/:id/status", cfg.Tickets.ChangeStatus)
	staff.Post("/:id/priority", cfg.Tickets.ChangePriority)
	staff.Post("/:id/assign", cfg.Tickets.Assign)

	protected.Get("/notifications", cfg.Notifications.List)
	protected.Get("/notifications/unread-count", cfg.Notifications.UnreadCount)
	protected.Post("/notifications/read-all", cfg.Notifications.MarkAllRead)
	protected.Post("/notifications/:id/read", cfg.Notifications.MarkRead)

	admin := protected.Group("/admin", auth.RequireAdmin())
	admin.Get("/leave", cfg.Leave.ListAll)
	admin.Post("/leave/:id/status", cfg.Leave.SetStatus)

	admin.Get("/bookings", cfg.Bookings.ListAll)
	admin.Post("/bookings/:id/borrow", cfg.Bookings.Borrow)
	admin.Post("/bookings/:id/return", cfg.Bookings.Return)
	admin.Post("/bookings/:id/status", cfg.Bookings.SetStatus)

	admin.Post("/cars", cfg.Fleet.Create)
	admin.Put("/cars/:id", cfg.Fleet.Update)
	admin.Post("/cars/:id/toggle", cfg.Fleet.Toggle)

	admin.Get("/tickets", cfg.Tickets.ListAll)
	admin.Post("/categories", cfg.HelpdeskAdmin.CreateCategory)
	admin.Put("/categories/:id", cfg.HelpdeskAdmin.UpdateCategory)
	admin.Post("/categories/:id/toggle", cfg.HelpdeskAdmin.ToggleCategory)
	admin.Get("/staff", cfg.HelpdeskAdmin.ListStaff)
	admin.Post("/staff", cfg.HelpdeskAdmin.AddStaff)
	admin.Post("/staff/:id/toggle", cfg.HelpdeskAdmin.ToggleStaff)

	admin.Get("/reports/:entity", cfg.Reports.Show)
	admin.Get("/reports/:entity/options", cfg.Reports.Options)
	admin.Get("/reports/:entity/export", cfg.Reports.Export)
}
