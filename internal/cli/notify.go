package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
)

func init() {
	rootCmd.AddCommand(notifyCmd)
	addAsOfFlag(notifyCmd)
	notifyCmd.Flags().Bool("dry-run", false, "muestra los mensajes sin enviarlos ni registrarlos")
	notifyCmd.Flags().IntP("limit", "n", 0, "máximo de mensajes a enviar (0 = sin límite)")
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Envía el aviso de puntos por vencer por WhatsApp",
	Long: `Envía el aviso a cada socio elegible que todavía no lo recibió en la campaña
configurada (CAMPAIGN_NAME). Cada envío exitoso queda en el log local y no se
repite en corridas posteriores.`,
	Args: cobra.NoArgs,
	RunE: runNotify,
}

func runNotify(cmd *cobra.Command, _ []string) error {
	asOf, err := asOfFlag(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit debe ser >= 0")
	}

	svc, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	res, err := svc.Notify.Execute(cmd.Context(), dto.NotifyRequest{AsOf: asOf, DryRun: dryRun, Limit: limit})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}
