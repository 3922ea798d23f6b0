package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/aviso-pontos/internal/application/ports"
	"github.com/jhoicas/aviso-pontos/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	StoreName   string
	Balance     BalanceService
	Report      ReportService
	ReportPDF   ports.ReportPDFGenerator
	Messages    MessageLog
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Saldo (cualquier rol)
	balanceHandler := NewBalanceHandler(deps.Balance)
	api.Get("/customers/:cpf/balance", balanceHandler.Get)

	// Reportes y campañas (admin u operador)
	reportHandler := NewReportHandler(deps.Report, deps.ReportPDF, deps.StoreName)
	api.Get("/reports/expiring", RequireRole(jwt.RoleAdmin, jwt.RoleOperator), reportHandler.Expiring)

	campaignHandler := NewCampaignHandler(deps.Messages)
	api.Get("/campaigns/:name/messages", RequireRole(jwt.RoleAdmin, jwt.RoleOperator), campaignHandler.Messages)
}
