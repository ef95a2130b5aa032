// Package cli comandos de invoicectl: emisión y render local de facturas sin
// servidor ni base de datos.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturador/pkg/config"
	"github.com/jhoicas/facturador/pkg/logger"
)

var version = "1.0.0"

// NewRootCommand construye el árbol de comandos. out recibe la salida normal;
// los logs van a stderr.
func NewRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Herramientas de línea de comandos del motor de facturación",
		Long: `invoicectl ensambla y renderiza facturas a partir de un pedido en JSON
usando la misma configuración que la API (variables de entorno o .env).

El contador de numeración es local al proceso: cada ejecución emite el
primer número del día. Para numeración real use la API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().String("log-level", "warn", "nivel de log (debug, info, warn, error)")

	root.AddCommand(newRenderCommand(), newDueDateCommand(), newTokenCommand())
	return root
}

func loadEnv(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level, _ := cmd.Flags().GetString("log-level")
	log := logger.New(logger.Config{Env: "development", Level: level, Out: os.Stderr})
	return cfg, log, nil
}
