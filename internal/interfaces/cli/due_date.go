package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/domain/invoicing"
)

func newDueDateCommand() *cobra.Command {
	var issued, terms string
	cmd := &cobra.Command{
		Use:   "due-date",
		Short: "Calcula la fecha de vencimiento para unas condiciones de pago",
		Example: `  invoicectl due-date --issued 2024-01-01 --terms 30_days
  invoicectl due-date --terms immediate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now().UTC()
			if issued != "" {
				d, err := time.Parse(dto.DateLayout, issued)
				if err != nil {
					return fmt.Errorf("--issued debe tener formato YYYY-MM-DD: %w", err)
				}
				day = d
			}
			due, err := invoicing.DueDate(day, terms)
			if err != nil {
				return fmt.Errorf("%w (válidas: %v)", err, invoicing.TermCodes())
			}
			fmt.Fprintln(cmd.OutOrStdout(), due.Format(dto.DateLayout))
			return nil
		},
	}
	cmd.Flags().StringVar(&issued, "issued", "", "fecha de emisión YYYY-MM-DD (por defecto hoy)")
	cmd.Flags().StringVar(&terms, "terms", "", "condiciones de pago: immediate, 7_days, 14_days, 30_days, 60_days, 90_days")
	_ = cmd.MarkFlagRequired("terms")
	return cmd
}
