package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturador/pkg/jwt"
)

func newTokenCommand() *cobra.Command {
	var userID, role string
	var minutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Genera un token de acceso firmado con JWT_SECRET (desarrollo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer)
			if err != nil {
				return errors.New("JWT_SECRET no está configurado")
			}
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			id := jwt.Identity{UserID: userID, CompanyID: cfg.Company.ID, Role: role}
			tok, err := signer.Generate(id, time.Duration(minutes)*time.Minute)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "cli", "identificador del usuario (queda como creador de las facturas)")
	cmd.Flags().StringVar(&role, "role", "admin", "rol: admin, contador o vendedor")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}
