package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	addAsOfFlag(reportCmd)
	reportCmd.Flags().String("pdf", "", "escribe el reporte en PDF en este archivo en lugar de JSON")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Lista los socios con puntos por vencer",
	Long: `Evalúa todas las cuentas con lotes de compra en la ventana de aviso y lista
los socios con puntos por vencer, ordenados por puntos de mayor a menor.
Las cuentas con datos inválidos se informan aparte y no detienen el reporte.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, _ []string) error {
	asOf, err := asOfFlag(cmd)
	if err != nil {
		return err
	}
	pdfPath, _ := cmd.Flags().GetString("pdf")

	svc, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	report, err := svc.Report.BuildReport(cmd.Context(), asOf)
	if err != nil {
		return err
	}
	if pdfPath == "" {
		return printJSON(cmd.OutOrStdout(), report)
	}

	body, err := svc.PDF.GenerateExpiringReportPDF(cmd.Context(), cfg.Campaign.StoreName, report)
	if err != nil {
		return fmt.Errorf("generar PDF: %w", err)
	}
	if err := os.WriteFile(pdfPath, body, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", pdfPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d socios con puntos por vencer, reporte en %s\n", len(report.Customers), pdfPath)
	return nil
}
