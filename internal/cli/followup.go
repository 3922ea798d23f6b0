package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(followupCmd)
	followupCmd.Flags().String("campaign", "", "campaña a revisar (por defecto CAMPAIGN_NAME)")
}

var followupCmd = &cobra.Command{
	Use:   "followup",
	Short: "Resultado de una campaña: entregas y rescates posteriores al aviso",
	Args:  cobra.NoArgs,
	RunE:  runFollowup,
}

func runFollowup(cmd *cobra.Command, _ []string) error {
	campaignName, _ := cmd.Flags().GetString("campaign")
	if campaignName == "" {
		campaignName = cfg.Campaign.Name
	}

	svc, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}
	defer svc.Close()

	report, err := svc.FollowUp.Report(cmd.Context(), campaignName)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), report)
}
