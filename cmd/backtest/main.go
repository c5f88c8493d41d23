// Command backtest replays a recorded market-data stream through the
// Simple arbitrage strategy and one matcher per leg, printing an
// end-of-run fill summary.
//
// C++: none; flag set and banner/log shape grounded on
// golang/cmd/backtest/main.go.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/quantlink/algo/pkg/backtest"
	"github.com/quantlink/algo/pkg/config"
	"github.com/quantlink/algo/pkg/replay"
)

const (
	appName    = "AlgoBacktest"
	appVersion = "1.0.0"
)

var (
	legsFile    = flag.String("legs", "", "Leg table TOML file path (required)")
	matcherFile = flag.String("matcher", "", "Comma-separated matcher config TOML file paths, one per leg, e.g. -matcher a.toml,b.toml")
	paramsFlag  = flag.String("params", "", "Delimited parameter string, e.g. threshold=0.002;quantity_0=10")
	inputFile   = flag.String("in", "-", "Recorded event stream path (.gz/.zst auto-detected, - for stdin)")
	outFile     = flag.String("out", "-", "Summary output path (- for stdout)")
	outFormat   = flag.String("out-format", "text", "Summary format: text, json, csv")
	version     = flag.Bool("version", false, "Print version and exit")
	help        = flag.Bool("help", false, "Print help and exit")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("%s version %s\n", appName, appVersion)
		os.Exit(0)
	}
	if *help || *legsFile == "" || *matcherFile == "" {
		printHelp()
		if *legsFile == "" || *matcherFile == "" {
			os.Exit(1)
		}
		os.Exit(0)
	}

	printBanner()

	legTable, err := config.LoadLegTable(*legsFile)
	if err != nil {
		log.Fatalf("[Main] failed to load leg table: %v", err)
	}
	legs := legTable.Legs()
	log.Printf("[Main] loaded %d legs from %s", len(legs), *legsFile)

	matcherSpecs := strings.Split(*matcherFile, ",")
	if len(matcherSpecs) != len(legs) {
		log.Fatalf("[Main] expected %d matcher configs (one per leg), got %d", len(legs), len(matcherSpecs))
	}
	legConfigs := make([]backtest.LegConfig, len(legs))
	for i, path := range matcherSpecs {
		cfg, err := config.LoadMatcherConfig(path)
		if err != nil {
			log.Fatalf("[Main] failed to load matcher config %s: %v", path, err)
		}
		legConfigs[i] = backtest.LegConfig{Matcher: cfg}
	}

	params, err := config.ParseParameters(*paramsFlag)
	if err != nil {
		log.Fatalf("[Main] failed to parse parameters: %v", err)
	}
	if legTable.StrategyID != "" {
		params.StrategyID = legTable.StrategyID
	}

	engine, err := backtest.New(legs, legConfigs, params)
	if err != nil {
		log.Fatalf("[Main] failed to build engine: %v", err)
	}

	log.Printf("[Main] replaying %s", *inputFile)
	reader, closer, err := replay.OpenReader(*inputFile)
	if err != nil {
		log.Fatalf("[Main] failed to open input: %v", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	count, err := replay.NewReader(reader).All(engine)
	if err != nil {
		log.Fatalf("[Main] replay failed after %d records: %v", count, err)
	}
	log.Printf("[Main] replayed %d records", count)

	writer, outCloser, err := replay.OpenWriter(*outFile)
	if err != nil {
		log.Fatalf("[Main] failed to open output: %v", err)
	}
	if outCloser != nil {
		defer outCloser.Close()
	}

	summary := engine.Recorder().Summarize()
	switch *outFormat {
	case "text":
		err = summary.WriteText(writer)
	case "json":
		err = summary.WriteJSON(writer)
	case "csv":
		err = summary.WriteCSV(writer)
	default:
		log.Fatalf("[Main] unknown -out-format %q (want text, json, csv)", *outFormat)
	}
	if err != nil {
		log.Fatalf("[Main] failed to write summary: %v", err)
	}
	log.Println("[Main] backtest completed successfully")
}

func printBanner() {
	fmt.Println("========================================")
	fmt.Printf("%s v%s\n", appName, appVersion)
	fmt.Println("arbitrage strategy backtest runner")
	fmt.Println("========================================")
}

func printHelp() {
	fmt.Printf("Usage: %s -legs legs.toml -matcher a.toml,b.toml [options]\n\n", os.Args[0])
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("\nExample:")
	fmt.Println("  ./backtest -legs config/legs.toml -matcher config/leg0.toml,config/leg1.toml \\")
	fmt.Println("      -params 'threshold=0.002;quantity_0=10' -in recorded.jsonl.zst -out-format json")
}
