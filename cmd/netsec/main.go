package main

import (
	"bufio"
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	networksecurity "github.com/SaiBhavadeesh/network-security"
)

//go:embed assets/banner.txt
var banner string

func main() {
	fmt.Print(banner)
	fmt.Println()
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	var err error

	switch cmd {
	case "run":
		err = runCommand(os.Args[2:])
	case "validate":
		err = validateCommand(os.Args[2:])
	case "load":
		err = loadCommand(os.Args[2:])
	case "report":
		err = reportCommand(os.Args[2:])
	case "stats":
		err = statsCommand(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		printUsage()
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		log.Fatalf("netsec %s: %v", cmd, err)
	}
}

func loadConfig(path string) (*networksecurity.Config, error) {
	if path == "" {
		return networksecurity.DefaultConfig(), nil
	}
	return networksecurity.LoadConfig(path)
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "./configs/pipeline.yaml", "Path to pipeline configuration file (empty for defaults)")
	csvPath := fs.String("csv", "", "Ingest from a local CSV instead of the configured source")
	envFile := fs.String("env", ".env", "dotenv file holding the connection string")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flow, err := networksecurity.ConfFromConfig(cfg, networksecurity.WithFlowOptions(networksecurity.WithEnvFile(*envFile)))
	if err != nil {
		return err
	}
	if *csvPath != "" {
		flow.Ingest(networksecurity.IngestCSV(*csvPath))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := flow.Run(ctx)
	if res.Ingestion.TrainFilePath != "" {
		fmt.Println(res.Ingestion)
	}
	if res.Validation.DriftReportFilePath != "" {
		fmt.Println(res.Validation)
	}
	if res.Transformation.TransformedObjectFilePath != "" {
		fmt.Println(res.Transformation)
	}
	return err
}

func validateCommand(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cfgPath := fs.String("config", "./configs/pipeline.yaml", "Path to configuration file to validate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := networksecurity.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}
	sc, err := networksecurity.LoadSchema(cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	fmt.Printf("config %s looks good (%d schema columns, %d numerical)\n",
		*cfgPath, sc.ColumnCount(), len(sc.NumericalColumns()))
	return nil
}

func loadCommand(args []string) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	cfgPath := fs.String("config", "./configs/pipeline.yaml", "Path to pipeline configuration file (empty for defaults)")
	csvPath := fs.String("csv", "./Network_Data/phisingData.csv", "CSV file to insert")
	envFile := fs.String("env", ".env", "dotenv file holding the connection string")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	n, err := networksecurity.SeedCollection(context.Background(), cfg, *csvPath, *envFile)
	if err != nil {
		return err
	}
	fmt.Printf("inserted %d records into %s.%s\n", n, cfg.Source.Database, cfg.Source.Collection)
	return nil
}

func reportCommand(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	path := fs.String("path", "", "Drift report written by the validation stage")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("-path is required")
	}

	report, err := networksecurity.ReadDriftReport(*path)
	if err != nil {
		return err
	}
	cols := make([]string, 0, len(report))
	for c := range report {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	for _, c := range cols {
		mark := " "
		if report[c].DriftDetected {
			mark = "!"
		}
		fmt.Printf("%s %-32s p=%.6g\n", mark, c, report[c].PValue)
	}
	fmt.Printf("%d of %d columns drifted\n", report.Drifted(), len(report))
	return nil
}

// statsCommand prints the pipeline counters from a metrics textfile.
func statsCommand(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	path := fs.String("path", "", "metrics.prom file inside a run directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("-path is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	targets := map[string]float64{
		"netsec_rows_ingested_total":   0,
		"netsec_drifted_columns_total": 0,
		"netsec_values_imputed_total":  0,
		"netsec_stage_failures_total":  0,
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		for key := range targets {
			if strings.HasPrefix(line, key+" ") {
				var value float64
				if _, err := fmt.Sscanf(line, key+" %f", &value); err == nil {
					targets[key] = value
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Printf("rows=%.0f drifted=%.0f imputed=%.0f failures=%.0f\n",
		targets["netsec_rows_ingested_total"],
		targets["netsec_drifted_columns_total"],
		targets["netsec_values_imputed_total"],
		targets["netsec_stage_failures_total"],
	)
	return nil
}

func printUsage() {
	fmt.Printf(`NetworkSecurity CLI

Usage:
  netsec <command> [flags]

Commands:
  run        Run ingestion, validation and transformation once
  validate   Load and validate a config file and its schema
  load       Insert a CSV dataset into the configured MongoDB collection
  report     Summarize a drift report
  stats      Print the counters of a run's metrics textfile

Examples:
  netsec run -config ./configs/pipeline.yaml
  netsec run -config "" -csv ./Network_Data/phisingData.csv
  netsec load -csv ./Network_Data/phisingData.csv
  netsec report -path Artifacts/<run>/data_validation/drift_report/report.yaml
  netsec stats -path Artifacts/<run>/metrics.prom
`)
}
