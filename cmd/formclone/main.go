package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formclone/pkg/export"
	"github.com/goliatone/go-formclone/pkg/orchestrator"
	"github.com/goliatone/go-formclone/pkg/renderers/tui"
	"github.com/goliatone/go-formclone/pkg/source"
)

// fileConfig holds defaults loadable from a YAML file; flags win over it.
type fileConfig struct {
	Renderer     string        `yaml:"renderer"`
	Output       string        `yaml:"output"`
	UserAgent    string        `yaml:"user_agent"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

func main() {
	src := flag.String("source", "", "form URL or saved document path")
	renderer := flag.String("renderer", "", "renderer to use: vanilla (HTML) or tui (interactive fill)")
	output := flag.String("output", "", "output file (stdout if empty; .xlsx for tui answers)")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg := loadFileConfig(*configPath)
	if *renderer == "" {
		*renderer = cfg.Renderer
	}
	if *renderer == "" {
		*renderer = "vanilla"
	}
	if *output == "" {
		*output = cfg.Output
	}

	if *src == "" {
		log.Fatal("a -source URL or path is required")
	}
	origin := parseSource(*src)
	if origin == nil {
		log.Fatalf("invalid source: %q", *src)
	}

	ctx := context.Background()
	gen := orchestrator.New(orchestrator.WithLoaderOptions(
		source.WithRequestTimeout(cfg.FetchTimeout),
		source.WithUserAgent(cfg.UserAgent),
	))

	switch *renderer {
	case "tui":
		runInteractive(ctx, gen, origin, *output)
	default:
		runClone(ctx, gen, origin, *renderer, *output)
	}
}

func runClone(ctx context.Context, gen *orchestrator.Orchestrator, origin source.Source, renderer, output string) {
	page, err := gen.Clone(ctx, orchestrator.Request{Source: origin, Renderer: renderer})
	if err != nil {
		log.Fatalf("Failed to rebuild form: %v", err)
	}
	writeOutput(output, page)
}

// runInteractive fills the form in the terminal, then exports the answers:
// a workbook when the output ends in .xlsx, tab-separated rows otherwise.
func runInteractive(ctx context.Context, gen *orchestrator.Orchestrator, origin source.Source, output string) {
	result, err := gen.Build(ctx, orchestrator.Request{Source: origin})
	if err != nil {
		log.Fatalf("Failed to rebuild form: %v", err)
	}
	for _, note := range result.Skipped {
		fmt.Fprintf(os.Stderr, "note: %s\n", note)
	}

	answers, err := tui.New().CollectAnswers(ctx, result.Form)
	if err != nil {
		log.Fatalf("Fill aborted: %v", err)
	}

	rows := export.Rows(result.Form, answers)

	if strings.HasSuffix(output, ".xlsx") {
		f, err := os.Create(output)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer f.Close()
		if err := export.WriteXLSX(f, rows); err != nil {
			log.Fatalf("Failed to write workbook: %v", err)
		}
		fmt.Printf("Answers written to %s\n", output)
		return
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(row.Label)
		sb.WriteByte('\t')
		sb.WriteString(row.Value)
		sb.WriteByte('\n')
	}
	writeOutput(output, []byte(sb.String()))
}

func writeOutput(path string, data []byte) {
	if path == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Written to %s\n", path)
}

func loadFileConfig(path string) fileConfig {
	cfg := fileConfig{}
	if path == "" {
		return cfg
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
	return cfg
}

func parseSource(raw string) source.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return source.FromURL(path)
	}
	return source.FromFile(path)
}
