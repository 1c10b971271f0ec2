package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"ubersuggest-go/internal/config"
	"ubersuggest-go/pkg/logger"
	"ubersuggest-go/pkg/ubersuggest"
)

func main() {
	// Global panic recovery to prevent application crash
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application panic recovered: %v\n", r)
			os.Exit(1)
		}
	}()

	// Command line flags (override config file and environment variables)
	var (
		configPath = flag.String("config", "", "Path to a config file (yaml, json or toml)")
		keyword    = flag.String("keyword", "", "Keyword or phrase to look up (env: UBERSUGGEST_LOOKUP_KEYWORD)")
		locale     = flag.String("locale", "", "Locale as <language>-<country> (default: en-us, env: UBERSUGGEST_LOOKUP_LOCALE)")
		maxResults = flag.Int("max-results", 0, "Maximum records to print (default: 50, env: UBERSUGGEST_LOOKUP_MAX_RESULTS)")
		filter     = flag.String("filter", "", "Comma-separated words; print records containing any of them")
		negative   = flag.String("negative", "", "Comma-separated words; print records missing any of them")
		period     = flag.String("period", "", "Print monthly statistics for ALL or the first n months")
		related    = flag.Bool("related", false, "Print related keywords")
		csvOut     = flag.Bool("csv", false, "Write all results to ubersuggest_<keyword>.csv")
		monthlyCSV = flag.Bool("monthly-csv", false, "Write monthly statistics to ubersuggest_<keyword>_monthly_statistics.csv")
		outputDir  = flag.String("output-dir", "", "Directory for CSV files (env: UBERSUGGEST_EXPORT_OUTPUT_DIR)")
		encoding   = flag.String("encoding", "", "CSV charset (default: utf-8, env: UBERSUGGEST_EXPORT_ENCODING)")
		debug      = flag.Bool("debug", false, "Enable debug logging")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *help {
		printUsage()
		return
	}

	cfg, err := config.NewManager().Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	// Only flags given explicitly replace configured values
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "keyword":
			cfg.Lookup.Keyword = *keyword
		case "locale":
			cfg.Lookup.Locale = *locale
		case "max-results":
			cfg.Lookup.MaxResults = *maxResults
		case "output-dir":
			cfg.Export.OutputDir = *outputDir
		case "encoding":
			cfg.Export.Encoding = *encoding
		}
	})
	if *debug {
		cfg.Logger.Level = "debug"
	}

	logger.SetLogger(logger.New(cfg.Logger))
	log := logger.GetLogger().WithField("component", "main")

	if cfg.Lookup.Keyword == "" && flag.NArg() > 0 {
		cfg.Lookup.Keyword = strings.Join(flag.Args(), " ")
	}
	if cfg.Lookup.Keyword == "" {
		fmt.Fprintln(os.Stderr, "ERROR: "+ubersuggest.ErrNoKeywordSupplied.Error())
		fmt.Fprintln(os.Stderr, "Use -keyword flag or UBERSUGGEST_LOOKUP_KEYWORD environment variable.")
		fmt.Fprintln(os.Stderr, "")
		printUsage()
		os.Exit(1)
	}

	statsPeriod := ubersuggest.AllMonths
	if *period != "" {
		if statsPeriod, err = ubersuggest.ParsePeriod(*period); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(1)
		}
	}

	client, err := ubersuggest.New(cfg.Lookup.Keyword,
		ubersuggest.WithLocale(cfg.Lookup.Locale),
		ubersuggest.WithEndpoint(cfg.Lookup.Endpoint),
		ubersuggest.WithConnectionConfig(cfg.HTTP.ConnectionConfig()),
		ubersuggest.WithRetry(cfg.Lookup.MaxAttempts, cfg.Lookup.RetryDelay()),
		ubersuggest.WithOutputDir(cfg.Export.OutputDir),
		ubersuggest.WithCSVEncoding(cfg.Export.Encoding),
		ubersuggest.WithLogger(logger.GetLogger()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"keyword":     client.Keyword(),
		"language":    client.Language(),
		"country":     client.Country(),
		"max_results": cfg.Lookup.MaxResults,
	}).Debug("Configuration loaded")

	// Bound the whole run; each attempt is also capped by the HTTP timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	records, err := client.LookUp(ctx, ubersuggest.MaxResults(cfg.Lookup.MaxResults))
	if err != nil {
		if errors.Is(err, ubersuggest.ErrTimeout) {
			fmt.Fprintln(os.Stderr, err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}

	if err := report(client, records, reportOptions{
		filters:    splitList(*filter),
		negatives:  splitList(*negative),
		period:     *period != "",
		statsOf:    statsPeriod,
		related:    *related,
		csv:        *csvOut,
		monthlyCSV: *monthlyCSV,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

type reportOptions struct {
	filters    []string
	negatives  []string
	period     bool
	statsOf    int
	related    bool
	csv        bool
	monthlyCSV bool
}

func report(client *ubersuggest.Client, records []ubersuggest.KeywordRecord, opts reportOptions) error {
	volume, err := client.Volume()
	if err != nil {
		return err
	}
	cpc, err := client.CPC()
	if err != nil {
		return err
	}
	competition, err := client.Competition()
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Ubersuggest: %s (%s-%s) ===\n", strings.ReplaceAll(client.Keyword(), "%20", " "), client.Language(), client.Country())
	fmt.Printf("Volume: %d\n", volume)
	fmt.Printf("CPC: %.2f\n", cpc)
	fmt.Printf("Competition: %.2f\n", competition)

	fmt.Printf("\n=== Results (%d) ===\n", len(records))
	printRecords(records)

	if len(opts.filters) > 0 {
		filtered, err := client.FilterResults(opts.filters)
		if err != nil {
			return err
		}
		fmt.Printf("\n=== Containing %s (%d) ===\n", strings.Join(opts.filters, ", "), len(filtered))
		printRecords(filtered)
	}

	if len(opts.negatives) > 0 {
		filtered, err := client.FilterWithNegativeKeywords(opts.negatives)
		if err != nil {
			return err
		}
		fmt.Printf("\n=== Missing %s (%d) ===\n", strings.Join(opts.negatives, ", "), len(filtered))
		printRecords(filtered)
	}

	if opts.related {
		related, err := client.RelatedKeywords()
		if err != nil {
			return err
		}
		fmt.Printf("\n=== Related Keywords (%d) ===\n", len(related))
		for _, keyword := range related {
			fmt.Println(keyword)
		}
	}

	if opts.period {
		stats, err := client.MonthlyStatistics(opts.statsOf)
		if err != nil {
			return err
		}
		fmt.Printf("\n=== Monthly Statistics ===\n")
		for _, s := range stats {
			fmt.Printf("%s\n", s.Keyword)
			for _, m := range s.Months {
				fmt.Printf("    %04d-%02d  %d\n", m.Year, m.Month, m.Count)
			}
		}
	}

	if opts.csv {
		path, err := client.DownloadResultsAsCSV()
		if err != nil {
			return err
		}
		fmt.Printf("\nResults saved to %s\n", path)
	}

	if opts.monthlyCSV {
		path, err := client.DownloadMonthlyStatisticsAsCSV(opts.statsOf)
		if err != nil {
			return err
		}
		fmt.Printf("Monthly statistics saved to %s\n", path)
	}

	return nil
}

func printRecords(records []ubersuggest.KeywordRecord) {
	for _, r := range records {
		fmt.Printf("%-50s volume=%-8d cpc=%-6.2f competition=%.2f\n", r.Keyword, r.Volume, r.CPC, r.Competition)
	}
}

// splitList splits a comma-separated flag value, dropping empty items
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func printUsage() {
	fmt.Println("Ubersuggest keyword research")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./ubersuggest -keyword <KEYWORD> [OPTIONS]")
	fmt.Println("    ./ubersuggest [OPTIONS] <KEYWORD...>")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	fmt.Println("    -config string         Config file (yaml, json or toml)")
	fmt.Println("    -keyword string        Keyword or phrase (env: UBERSUGGEST_LOOKUP_KEYWORD)")
	fmt.Println("    -locale string         <language>-<country> (default: en-us, env: UBERSUGGEST_LOOKUP_LOCALE)")
	fmt.Println("    -max-results int       Records to print (default: 50, env: UBERSUGGEST_LOOKUP_MAX_RESULTS)")
	fmt.Println("    -filter string         Comma-separated words a record must contain one of")
	fmt.Println("    -negative string       Comma-separated words a record must lack one of")
	fmt.Println("    -period string         Monthly statistics: ALL or number of months")
	fmt.Println("    -related               Print related keywords")
	fmt.Println("    -csv                   Write results CSV")
	fmt.Println("    -monthly-csv           Write monthly statistics CSV (uses -period)")
	fmt.Println("    -output-dir string     CSV directory (default: current, env: UBERSUGGEST_EXPORT_OUTPUT_DIR)")
	fmt.Println("    -encoding string       CSV charset: utf-8, utf-8-bom, windows-1252, iso-8859-1, iso-8859-15")
	fmt.Println("    -debug                 Enable debug logging")
	fmt.Println("    -help                  Show this help message")
	fmt.Println("")
	fmt.Println("ENVIRONMENT VARIABLES (also read from .env):")
	fmt.Println("    UBERSUGGEST_LOOKUP_ENDPOINT       Keyword service base URL")
	fmt.Println("    UBERSUGGEST_LOOKUP_MAX_ATTEMPTS   Attempts before giving up (3)")
	fmt.Println("    UBERSUGGEST_LOOKUP_RETRY_DELAY_MS Pause between attempts (0)")
	fmt.Println("    UBERSUGGEST_HTTP_TIMEOUT_MS       Per-request timeout")
	fmt.Println("    UBERSUGGEST_LOGGER_LEVEL          debug, info, warn, error (warn)")
	fmt.Println("")
	fmt.Println("EXAMPLES:")
	fmt.Println("    ./ubersuggest -keyword \"big data\" -locale pt-br -max-results 10")
	fmt.Println("    ./ubersuggest -keyword python -filter tutorial,course -period 6 -monthly-csv")
}
