package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fecscope/fecscope/internal/server"
)

func newServeCommand() *cobra.Command {
	var addr string
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; flags take precedence over it.
			_ = godotenv.Load()
			if !cmd.Flags().Changed("addr") {
				if env := os.Getenv("FECSCOPE_ADDR"); env != "" {
					addr = env
				}
			}

			engine, err := newEngine(rulesPath)
			if err != nil {
				return err
			}
			return server.New(engine, addr).ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8456", "listen address")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "classification rule table (YAML); embedded defaults when empty")

	return cmd
}
