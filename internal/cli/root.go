// Package cli implementa los comandos de aviso-pontos (cobra): servidor HTTP,
// consulta de saldo, reporte, campaña de aviso y seguimiento.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/pkg/config"
	"github.com/jhoicas/aviso-pontos/pkg/logger"
	"github.com/jhoicas/aviso-pontos/pkg/observability"
)

var (
	cfg           *config.Config
	log           zerolog.Logger
	shutdownTrace func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "aviso-pontos",
	Short: "Saldo y aviso de puntos por vencer del programa de fidelidad",
	Long: `aviso-pontos reconstruye el saldo de puntos de cada socio a partir del libro
de movimientos, lista los socios con puntos por vencer y les envía un aviso
por WhatsApp una sola vez por campaña.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
		shutdownTrace, err = observability.SetupTracing(cmd.Context(), cfg.App.Name, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			log.Warn().Err(err).Msg("trazas deshabilitadas")
			shutdownTrace = func(context.Context) error { return nil }
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		if shutdownTrace == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdownTrace(ctx)
	},
}

// Execute ejecuta el comando raíz con el contexto dado.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// addAsOfFlag registra --as-of (YYYY-MM-DD) en el comando.
func addAsOfFlag(cmd *cobra.Command) {
	cmd.Flags().String("as-of", "", "fecha de referencia YYYY-MM-DD (por defecto hoy)")
}

// asOfFlag lee --as-of; vacío = ahora, en la zona horaria local.
func asOfFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("as-of")
	return parseAsOf(raw, time.Now)
}

func parseAsOf(raw string, now func() time.Time) (time.Time, error) {
	if raw == "" {
		return now(), nil
	}
	t, err := time.ParseInLocation(dto.DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("--as-of %q: se espera YYYY-MM-DD", raw)
	}
	return t, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
