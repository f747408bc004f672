// Command comedo-check analyzes an ingredient list from the command line.
// Lists can be given directly (-ingredients or stdin) for fully offline use,
// or fetched by product name through the lookup service (-name, needs a
// config file with lookup credentials).
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/comedolab/comedo/pkg/comedo"
	"github.com/comedolab/comedo/pkg/comedo/classify"
	"github.com/comedolab/comedo/pkg/comedo/config"

	"github.com/comedolab/comedo/internal/lookup"
)

func main() {
	var (
		ingredients = flag.String("ingredients", "", "Comma-separated ingredient list (otherwise read lines from stdin)")
		name        = flag.String("name", "", "Product name to look up instead of a literal list")
		configPath  = flag.String("config", "comedobot.yaml", "Configuration file (only used with -name)")
		sourceURL   = flag.String("url", "", "Claimed source URL to sanitize and report")
		asJSON      = flag.Bool("json", false, "Emit the report as JSON")
	)
	flag.Parse()

	names, claimedURL, err := resolveNames(*ingredients, *name, *configPath, *sourceURL)
	if err != nil {
		log.Fatal(err)
	}
	if len(names) == 0 {
		log.Fatal("no ingredients found; use -ingredients, -name or pipe one per line on stdin")
	}

	analyzer := comedo.New(comedo.Options{})
	report := analyzer.Analyze(names, claimedURL)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Printf("Risk: %s\n\n", report.Risk)
	for _, rec := range report.Ingredients {
		fmt.Printf("%-4s %2d. %s\n", mark(rec), rec.Position, rec.Name)
	}
	if report.HasSourceURL {
		fmt.Printf("\nSource: %s\n", report.SourceURL)
	}
}

func resolveNames(ingredients, name, configPath, sourceURL string) ([]string, string, error) {
	if name != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, "", err
		}
		client := &lookup.Client{
			BaseURL:         cfg.Lookup.BaseURL,
			APIKey:          cfg.Lookup.APIKey,
			Model:           cfg.Lookup.Model,
			MaxOutputTokens: cfg.Lookup.MaxOutputTokens,
		}
		res, err := client.Ingredients(context.Background(), name, nil)
		if err != nil {
			return nil, "", err
		}
		if res.NoINCI() {
			return nil, "", fmt.Errorf("no composition found for %q", name)
		}
		return res.Ingredients, res.SourceURL, nil
	}

	if ingredients != "" {
		return strings.Split(ingredients, ","), sourceURL, nil
	}

	var names []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	return names, sourceURL, nil
}

func mark(rec classify.Record) string {
	switch {
	case rec.Hard:
		return "[!]"
	case rec.Conditional && rec.EarlyConditional:
		return "[~^]"
	case rec.Conditional:
		return "[~]"
	}
	return "[ ]"
}
