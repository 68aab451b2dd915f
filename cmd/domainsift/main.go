package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"domainsift/internal/config"
	"domainsift/pkg/crawler"
	"domainsift/pkg/extractor"
	"domainsift/pkg/fetcher"
	"domainsift/pkg/reporter"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "domainsift [URL]",
	Short: "Extract the external domains a website links to",
	Long: `domainsift crawls a website breadth-first from a seed URL, follows its
internal links up to a page budget, and writes the unique external domains it
encountered to an output file.

With a URL argument, settings come from flags. Without one, settings are read
from a YAML config file (--config, default ./config.yaml) and the output
filename is derived from the crawled domain.`,
	Args:    cobra.MaximumNArgs(1),
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE:    run,
}

func run(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	configMode := len(args) == 0
	if !configMode {
		cfg.StartURL = args[0]
	}

	// Flags override whatever the config file said, but only when set.
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("max-pages") {
		cfg.MaxPages, _ = cmd.Flags().GetInt("max-pages")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("delay") {
		cfg.RequestDelay, _ = cmd.Flags().GetFloat64("delay")
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	}
	if cmd.Flags().Changed("no-counts") {
		noCounts, _ := cmd.Flags().GetBool("no-counts")
		cfg.Counts = !noCounts
	}
	if cmd.Flags().Changed("domain-policy") {
		cfg.DomainPolicy, _ = cmd.Flags().GetString("domain-policy")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	c, err := crawler.New(crawler.Options{
		StartURL:     cfg.StartURL,
		MaxPages:     cfg.MaxPages,
		Workers:      cfg.Workers,
		RequestDelay: cfg.Delay(),
		DomainPolicy: crawler.DomainPolicy(cfg.DomainPolicy),
		Fetcher:      fetcher.NewHTTP(cfg.HTTPTimeout()),
		Extractor:    extractor.New(),
		Logger:       &logger,
	})
	if err != nil {
		return err
	}

	result, err := c.Crawl(cmd.Context())
	if err != nil {
		return err
	}

	outputPath := cfg.Output
	if configMode {
		outputPath = reporter.OutputFilename(result.Domain)
	}

	if err := reporter.New(cfg.Counts).WriteFile(outputPath, result); err != nil {
		return err
	}

	logger.Info().
		Int("domains", len(result.Domains)).
		Str("output", outputPath).
		Msg("saved domain list")
	return nil
}

func init() {
	rootCmd.Flags().StringP("output", "o", "domains.txt", "Output file path")
	rootCmd.Flags().IntP("max-pages", "m", 100, "Maximum number of pages to crawl")
	rootCmd.Flags().IntP("workers", "w", 8, "Number of concurrent fetch workers")
	rootCmd.Flags().Float64("delay", 0.1, "Per-worker delay between requests, in seconds")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().Bool("no-counts", false, "List bare domains without occurrence counts")
	rootCmd.Flags().String("domain-policy", "host", `Domain comparison policy: "host" or "apex"`)
	rootCmd.Flags().String("config", "", "Config file path (used when no URL argument is given)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
