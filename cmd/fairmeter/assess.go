package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fairmeter/internal/assessment/models"
	"fairmeter/internal/assessment/service"
	"fairmeter/internal/assessment/store"
	"fairmeter/internal/discipline"
	"fairmeter/internal/harvest"
	"fairmeter/internal/identifier"
	"fairmeter/internal/indicator"
	"fairmeter/internal/platform/config"
	"fairmeter/internal/platform/logger"
)

var assessFlags struct {
	endpoint string
	profile  string
	catalog  string
	jsonOut  bool
	verbose  bool
}

var assessCmd = &cobra.Command{
	Use:   "assess <identifier>",
	Short: "Assess one record against the FAIR maturity indicators",
	Long: `Assess harvests the record's Dublin Core metadata from the OAI-PMH
endpoint, evaluates all maturity indicators, and prints the report.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().StringVar(&assessFlags.endpoint, "endpoint", "", "OAI-PMH endpoint (defaults to FAIRMETER_OAI_ENDPOINT)")
	assessCmd.Flags().StringVar(&assessFlags.profile, "profile", "", "discipline profile name")
	assessCmd.Flags().StringVar(&assessFlags.catalog, "catalog", "", "discipline catalog TOML path")
	assessCmd.Flags().BoolVar(&assessFlags.jsonOut, "json", false, "emit the report as JSON")
	assessCmd.Flags().BoolVarP(&assessFlags.verbose, "verbose", "v", false, "log evaluation progress")
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if assessFlags.endpoint != "" {
		cfg.Harvest.Endpoint = assessFlags.endpoint
	}
	if assessFlags.profile != "" {
		cfg.Discipline.Profile = assessFlags.profile
	}
	if assessFlags.catalog != "" {
		cfg.Discipline.CatalogPath = assessFlags.catalog
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if assessFlags.verbose {
		log = logger.New("debug", "text")
	}

	profiles, err := discipline.Load(cfg.Discipline.CatalogPath)
	if err != nil {
		return err
	}

	engine := indicator.New(
		indicator.Services{
			Liveness: identifier.NewHTTPChecker(cfg.Liveness.Timeout, identifier.WithLogger(log)),
			Profiles: profiles,
			Profile:  cfg.Discipline.Profile,
		},
		indicator.WithLogger(log),
		indicator.WithParallelism(cfg.Parallelism),
	)

	sources := func(endpoint string) (harvest.Source, error) {
		return harvest.NewClient(endpoint, cfg.Harvest.Timeout, harvest.WithLogger(log))
	}

	mem := store.NewMemory()
	defer mem.Close()
	svc := service.New(sources, engine, mem,
		service.WithLogger(log),
		service.WithDefaultEndpoint(cfg.Harvest.Endpoint),
	)

	a, err := svc.Assess(cmd.Context(), service.AssessRequest{Identifier: args[0]})
	if err != nil {
		return err
	}

	if assessFlags.jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	printReport(cmd.OutOrStdout(), a)
	return nil
}

func printReport(out io.Writer, a *models.Assessment) {
	fmt.Fprintf(out, "Subject:  %s\n", a.Subject)
	fmt.Fprintf(out, "Endpoint: %s\n", a.Endpoint)
	fmt.Fprintf(out, "Score:    %d (%s)\n\n", a.Summary.Score, a.Summary.Status)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDICATOR\tSCORE\tSTATUS\tCOLOR\tMESSAGE")
	for _, r := range a.Results {
		msg := r.Message
		if len(msg) > 96 {
			msg = msg[:93] + "..."
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", r.Code, r.Score, r.Status(), r.Color(), msg)
	}
	w.Flush()

	fmt.Fprintln(out)
	facets := []indicator.Facet{
		indicator.FacetFindable,
		indicator.FacetAccessible,
		indicator.FacetInteroperable,
		indicator.FacetReusable,
	}
	for _, facet := range facets {
		fmt.Fprintf(out, "%-14s %d\n", facet, a.Summary.Facets[facet])
	}
}
