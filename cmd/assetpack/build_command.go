package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"assetpack/internal/aggregate"
	"assetpack/internal/config"
	"assetpack/internal/history"
	"assetpack/internal/logging"
	"assetpack/internal/runner"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var strict bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "build [objects|shaders|templates|all]...",
		Short: "Regenerate asset manifests",
		Long: "Delete every *.json manifest in each selected asset directory and rebuild it\n" +
			"from the source files. With no arguments every pipeline runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseKinds(args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var opts []runner.Option
			if cmd.Flags().Changed("strict") {
				opts = append(opts, runner.WithStrictCardinality(strict))
			}
			if store := openHistory(cmd, cfg, logger); store != nil {
				defer store.Close()
				opts = append(opts, runner.WithHistory(store))
			}

			outcomes, runErr := runner.New(cfg, logger, opts...).Run(cmd.Context(), kinds...)
			if jsonOutput {
				if outcomes == nil {
					outcomes = []runner.Outcome{}
				}
				if err := writeJSON(cmd, outcomes); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				printBuildSummary(out, outcomes, shouldColorize(out))
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when shader .fsh/.vsh/.loc counts differ (overrides shaders.strict_cardinality)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print build outcomes as JSON")
	return cmd
}

// parseKinds resolves pipeline arguments. "all" or no arguments selects every
// pipeline; duplicates collapse while keeping the first position.
func parseKinds(args []string) ([]aggregate.Kind, error) {
	var kinds []aggregate.Kind
	seen := make(map[aggregate.Kind]struct{}, len(args))
	for _, arg := range args {
		if strings.EqualFold(strings.TrimSpace(arg), "all") {
			return aggregate.AllKinds(), nil
		}
		kind, err := aggregate.ParseKind(arg)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// openHistory opens the ledger when enabled. A ledger that cannot be opened
// is logged and the build proceeds without it.
func openHistory(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	if err := cfg.EnsureHistoryDir(); err != nil {
		logger.Warn("history ledger unavailable", logging.Error(err))
		return nil
	}
	store, err := history.Open(cmd.Context(), cfg.History.Path)
	if err != nil {
		logger.Warn("history ledger unavailable", logging.String(logging.FieldPath, cfg.History.Path), logging.Error(err))
		return nil
	}
	return store
}

var titleCaser = cases.Title(language.English)

func pipelineLabel(kind aggregate.Kind) string {
	return titleCaser.String(string(kind))
}

func printBuildSummary(out io.Writer, outcomes []runner.Outcome, colorize bool) {
	for _, line := range renderSectionHeader("Build", colorize) {
		fmt.Fprintln(out, line)
	}

	var rows [][]string
	totalRecords := 0
	for _, o := range outcomes {
		fmt.Fprintln(out, renderStatusLine(pipelineLabel(o.Kind), runStatusKind(o.Status), outcomeMessage(o), colorize))
		if o.Report == nil {
			continue
		}
		for _, d := range o.Report.Diagnostics {
			fmt.Fprintln(out, renderStatusLine(diagnosticLabel(o.Kind, d), diagnosticStatusKind(d.Severity), d.Message, colorize))
		}
		for _, m := range o.Report.Manifests {
			totalRecords += m.Records
			rows = append(rows, []string{
				pipelineLabel(o.Kind),
				m.Name,
				strconv.Itoa(m.Records),
				strconv.Itoa(m.Bytes),
				shortDigest(m.Digest),
			})
		}
	}
	if len(rows) == 0 {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]column{
			{header: "Pipeline"},
			{header: "Manifest"},
			{header: "Records", align: alignRight},
			{header: "Bytes", align: alignRight},
			{header: "Digest"},
		},
		rows,
		[]string{"", "Total", strconv.Itoa(totalRecords)},
	))
}

func outcomeMessage(o runner.Outcome) string {
	switch o.Status {
	case history.StatusSucceeded:
		msg := fmt.Sprintf("%d records", o.Report.Records())
		if o.Changed != nil {
			msg += ", changed since last build: " + yesNo(*o.Changed)
		}
		return msg
	default:
		return o.Message
	}
}

func diagnosticLabel(kind aggregate.Kind, d aggregate.Diagnostic) string {
	if d.Path == "" {
		return "  " + pipelineLabel(kind)
	}
	return "  " + filepath.Base(d.Path)
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
