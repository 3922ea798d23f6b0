package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/aviso-pontos/pkg/jwt"
)

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringP("subject", "s", "", "identificador del operador")
	tokenCmd.Flags().StringP("role", "r", jwt.RoleOperator, "rol: admin, operador o consulta")
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un token JWT para un operador de la API",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func runToken(cmd *cobra.Command, _ []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	role, _ := cmd.Flags().GetString("role")
	if subject == "" {
		return errors.New("--subject es obligatorio")
	}
	switch role {
	case jwt.RoleAdmin, jwt.RoleOperator, jwt.RoleViewer:
	default:
		return fmt.Errorf("rol desconocido: %q", role)
	}
	if cfg.JWT.Secret == "" {
		return errors.New("JWT_SECRET no está configurado")
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, subject, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
