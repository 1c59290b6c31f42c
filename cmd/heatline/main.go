package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/hqsteel/heatline/pkg/infrastructure/config"
	"github.com/hqsteel/heatline/pkg/infrastructure/logging"
	"github.com/hqsteel/heatline/pkg/interfaces/api"
	"github.com/hqsteel/heatline/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		inputFile   = flag.String("input", "", "Path to the production sheet (.csv, .xlsx, .xlsm)")
		optionsFile = flag.String("options", "", "Path to an optional YAML options file")
		outputDir   = flag.String("output", "", "Output directory for results (optional)")
		format      = flag.String("format", "text", "Output format: text, json, csv, svg")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		serve       = flag.Bool("serve", false, "Run the HTTP API instead of a one-shot parse")
		addr        = flag.String("addr", ":8080", "Listen address for -serve")
	)

	flag.Parse()

	log := logging.New(*verbose)

	if *serve {
		opts := config.Default()
		if *optionsFile != "" {
			loaded, err := config.Load(*optionsFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			opts = loaded
		}
		pipelineOpts, err := opts.PipelineOptions()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		server := api.NewServer(pipelineOpts, log)
		log.Info().Str("addr", *addr).Msg("listening")
		if err := http.ListenAndServe(*addr, server.Routes()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cmd := commands.NewParseCommand(commands.Config{
		InputFile:   *inputFile,
		OptionsFile: *optionsFile,
		OutputDir:   *outputDir,
		Format:      *format,
		Verbose:     *verbose,
	}, log)

	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
