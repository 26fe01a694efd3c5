package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/Amitc146/Assembler/assembler"
	"github.com/Amitc146/Assembler/config"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		address     = flag.Uint("address", 0, "Base address override (0 uses the config default)")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config path)")
		quiet       = flag.Bool("quiet", false, "Suppress the per-run summary line")
		workers     = flag.Int("workers", 1, "Number of files assembled concurrently")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("asm14 %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	baseNames := flag.Args()
	if len(baseNames) == 0 {
		printHelp()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asm14: %v\n", err)
		os.Exit(1)
	}
	if *address != 0 {
		cfg.Assembler.BaseAddress = uint32(*address)
	}

	successCount := assembleAll(baseNames, cfg, *workers)

	if !*quiet {
		fmt.Printf("successfully assembled %d files out of %d\n", successCount, len(baseNames))
	}
	if successCount != len(baseNames) {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// assembleAll runs the pipeline over every base name, up to workers at a
// time, and returns how many succeeded. Each file gets its own isolated
// symbol table and error list inside assembler.Assemble, so running them
// concurrently changes nothing about the per-file algorithm.
func assembleAll(baseNames []string, cfg *config.Config, workers int) int {
	if workers < 1 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		success int
		wg      sync.WaitGroup
		sem     = make(chan struct{}, workers)
	)

	for _, base := range baseNames {
		base := base
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := assembler.AssembleFile(base, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "asm14: %v\n", err)
				return
			}
			mu.Lock()
			success++
			mu.Unlock()
		}()
	}

	wg.Wait()
	return success
}

func printHelp() {
	fmt.Println(`asm14 - two-pass assembler for the 12-bit didactic instruction set

Usage:
  asm14 [flags] file1 file2 ...

Each file argument is a base name; ".as" is appended automatically.
Every file that assembles cleanly produces a ".ob" object listing, and
a ".ent"/".ext" listing when it declares entry points or external
references.

Flags:`)
	flag.PrintDefaults()
}
