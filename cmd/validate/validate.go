// Package validate implements the command checking that a file is a CAMT.053 statement.
package validate

import (
	"fmt"

	"fjacquet/camt-ynab/cmd/convert"
	"fjacquet/camt-ynab/cmd/root"
	"fjacquet/camt-ynab/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check that a file is a CAMT.053 statement",
	Long: `Check that FILE is well-formed XML holding at least one CAMT.053 statement
with an account id. No config file is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := root.DefaultConfig()
		if err != nil {
			return err
		}
		c, err := container.NewContainer(cfg)
		if err != nil {
			return err
		}
		if err := c.GetPipeline().Validate(args[0], convert.ExpectedFormat); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: valid CAMT.053 statement\n", args[0])
		return err
	},
}
