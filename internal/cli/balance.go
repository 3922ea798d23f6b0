package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(balanceCmd)
	addAsOfFlag(balanceCmd)
}

var balanceCmd = &cobra.Command{
	Use:   "balance CPF",
	Short: "Muestra el saldo de puntos de un socio",
	Long: `Reconstruye el saldo del socio a partir de su libro de movimientos y muestra
créditos, débitos, puntos vencidos, puntos por vencer y sus fechas de vencimiento.`,
	Args: cobra.ExactArgs(1),
	RunE: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	asOf, err := asOfFlag(cmd)
	if err != nil {
		return err
	}
	svc, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	out, err := svc.Balance.GetBalance(cmd.Context(), args[0], asOf)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}
