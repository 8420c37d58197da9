package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/camt-ynab/cmd/convert"
	"fjacquet/camt-ynab/cmd/root"
	"fjacquet/camt-ynab/cmd/validate"

	"github.com/joho/godotenv"
)

func init() {
	// TXPARSER_* overrides may come from .env
	loadEnvSilently()

	root.Init()
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	_ = godotenv.Load(envFile)
}

// run executes the root command and reports a failure on stderr. It returns
// the process exit code.
func run(args []string, stderr io.Writer) int {
	root.Cmd.SetArgs(args)
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
