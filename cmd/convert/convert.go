// Package convert implements the command turning a CAMT.053 statement into YNAB CSV.
package convert

import (
	"io"

	"fjacquet/camt-ynab/cmd/root"
	"fjacquet/camt-ynab/internal/categorizer"
	"fjacquet/camt-ynab/internal/container"

	"github.com/spf13/cobra"
)

// ExpectedFormat names the input format in validation errors.
const ExpectedFormat = "CAMT.053 XML (BkToCstmrStmt/Stmt with an account id)"

// Flags holds the convert command flags.
type Flags struct {
	Account        string
	ShowEmptyPayee bool
	Validate       bool
}

// Cmd represents the convert command
var Cmd = NewCmd()

// NewCmd builds a convert command with its own flag set.
func NewCmd() *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a CAMT.053 file to YNAB CSV on stdout",
		Long: `Convert a CAMT.053 XML statement to the YNAB CSV import layout.
Only entries of the selected account are written. Account aliases and payee
rules come from the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Account identifier or alias to export")
	cmd.Flags().BoolVarP(&flags.ShowEmptyPayee, "show-empty-payee", "s", false,
		"Only output entries without a payee, to find missing payee rules")
	cmd.Flags().BoolVar(&flags.Validate, "validate", false, "Check the file format before converting")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func run(out io.Writer, path string, flags *Flags) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	p := c.GetPipeline()

	if flags.Validate {
		if err := p.Validate(path, ExpectedFormat); err != nil {
			return err
		}
	}

	csv, err := p.Run(path, categorizer.Options{
		Account:        flags.Account,
		EmptyPayeeOnly: flags.ShowEmptyPayee,
	})
	if err != nil {
		return err
	}

	_, err = io.WriteString(out, csv)
	return err
}
