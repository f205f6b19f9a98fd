// Command fairmeter is the operator CLI: run one-off assessments against an
// OAI-PMH endpoint and mint API access tokens.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "fairmeter",
	Short: "FAIR maturity assessment toolkit",
	Long: `fairmeter evaluates research data records against the RDA FAIR
maturity indicators, either as a standalone run or through the API server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fairmeter version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func main() {
	_ = godotenv.Load()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
