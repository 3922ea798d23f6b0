package cli

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	httpRouter "github.com/jhoicas/aviso-pontos/internal/interfaces/http"
)

const swaggerFile = "./docs/swagger.json"

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta la API HTTP (saldo, reporte, log de campaña)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	svc, err := buildServices(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Minute * 2,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Aviso Pontos API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		StoreName:   cfg.Campaign.StoreName,
		Balance:     svc.Balance,
		Report:      svc.Report,
		ReportPDF:   svc.PDF,
		Messages:    svc.FollowUp,
		JWTSecret:   cfg.JWT.Secret,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("servidor HTTP finalizado")
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
