package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-triangles/pkg/config"
	"github.com/dd0wney/cluso-triangles/pkg/report"
)

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// flagKeys maps each command-line flag to the setting it overrides once the
// user sets it.
var flagKeys = map[string]string{
	"format":        config.KeyFormat,
	"precision":     config.KeyPrecision,
	"workers":       config.KeyWorkers,
	"chunk-size":    config.KeyChunkSize,
	"top":           config.KeyTop,
	"per-node":      config.KeyPerNode,
	"log-level":     config.KeyLogLevel,
	"log-format":    config.KeyLogFormat,
	"metrics-file":  config.KeyMetricsFile,
	"mmap":          config.KeyMmap,
	"s3-region":     config.KeyS3Region,
	"s3-endpoint":   config.KeyS3Endpoint,
	"s3-path-style": config.KeyS3PathStyle,
	"pg-query":      config.KeyPGQuery,
}

func newRootCmd(s streams) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "cluso-triangles",
		Short: "Triangle counting and clustering analysis for undirected graphs",
		Long: `cluso-triangles loads an edge list (one "u v" pair per line) from a file,
stdin ("-"), an s3://bucket/key object or a postgres:// database, builds an
undirected simple graph, and reports triangle counts and clustering
coefficients. Gzip and snappy inputs are detected automatically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(s.in)
	rootCmd.SetOut(s.out)
	rootCmd.SetErr(s.err)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	pf.StringP("format", "f", config.DefaultFormat, "Report format: text, json, table or summary")
	pf.Int("precision", config.DefaultPrecision, "Decimals printed for coefficients")
	pf.IntP("workers", "w", 1, "Goroutines for the counting pass (1 = sequential, 0 = one per CPU)")
	pf.Int("chunk-size", 0, "Nodes per parallel task (0 = auto)")
	pf.Int("top", config.DefaultTop, "Nodes listed in the ranking of table and json reports")
	pf.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	pf.String("log-format", config.DefaultLogFormat, "Log format: text or json")
	pf.String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	pf.Bool("mmap", false, "Memory-map local input files")
	pf.String("s3-region", "", "AWS region for s3:// sources")
	pf.String("s3-endpoint", "", "Custom S3 endpoint URL (MinIO, LocalStack)")
	pf.Bool("s3-path-style", false, "Use path-style S3 addressing")
	pf.String("pg-query", "", "Query returning (source, target) rows for postgres:// sources")

	trianglesCmd := newCommand(s, &configPath, "triangles", "Count triangles in the graph", report.SectionsTriangles)
	trianglesCmd.Flags().Bool("per-node", false, "Also list every node's triangle count")

	rootCmd.AddCommand(
		newCommand(s, &configPath, "analyze", "Count triangles and compute clustering coefficients", report.SectionsAnalyze),
		trianglesCmd,
		newCommand(s, &configPath, "clustering", "Compute local and average clustering coefficients", report.SectionsClustering),
		newCommand(s, &configPath, "stats", "Print graph statistics and load diagnostics", report.SectionsStats),
	)
	return rootCmd
}

func newCommand(s streams, configPath *string, name, short string, sections report.Section) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <source>",
		Short: short,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			secs := sections
			if cfg.Output.PerNode {
				secs |= report.SectionPerNode
			}
			return run(cmd.Context(), s, cfg, args[0], secs)
		},
	}
}

// resolveConfig layers flags the user set over the environment and the file.
func resolveConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, err
	}
	if err := loader.BindFlags(cmd.Flags(), flagKeys); err != nil {
		return nil, err
	}
	cfg, err := loader.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
