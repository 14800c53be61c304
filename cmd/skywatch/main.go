package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/auroralab/skywatch/internal/app"
	"github.com/auroralab/skywatch/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfgFileName := flag.String("c", "", "Path to config file")
	output := flag.String("o", config.DefaultOutputFileName, "Output HTML filename")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	noWeather := flag.Bool("no-weather", false, "Skip the space weather fetch (offline mode)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] <target-directory>\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Generates a static HTML archive page for AuroraCam/CloudCam media files.")
		fmt.Fprintln(flag.CommandLine.Output(), "\nOptions:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()

		return 2
	}

	cfg, err := config.Load(*cfgFileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)

		return 1
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.Output = *output
		case "v":
			cfg.Verbose = *verbose
		case "no-weather":
			cfg.NoWeather = *noWeather
		}
	})

	targetDir, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)

		return 1
	}
	cfg.TargetDir = targetDir

	if err := app.New(cfg).Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)

		return 1
	}

	return 0
}
