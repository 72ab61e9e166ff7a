package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"mobility-urdf/internal/batch"
	"mobility-urdf/internal/config"
	"mobility-urdf/internal/convert"
	"mobility-urdf/internal/kinematics"
	"mobility-urdf/internal/logging"
	"mobility-urdf/internal/metrics"
	"mobility-urdf/internal/preview"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .yaml, .toml)")
	testN := flag.Int("test", 0, "Convert only first N assets for testing")
	asset := flag.String("asset", "", "Convert only this asset directory name")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	dataDir := flag.String("data", "", "Path to dataset directory (default: auto-detect)")
	validate := flag.Bool("validate", false, "Check every document against the URDF schema")
	withPreview := flag.Bool("preview", false, "Write a schematic preview image per asset")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	if err := cfg.Resolve(config.Flags{
		DataDir:  *dataDir,
		Asset:    *asset,
		Workers:  *workers,
		Validate: *validate,
		Preview:  *withPreview,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewOrDefault(cfg.Logging)
	defer logger.Sync()

	assets, err := batch.Discover(cfg.DataDir, cfg.Assets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(assets) {
		assets = assets[:*testN]
	}

	if len(assets) == 0 {
		fmt.Println("No assets to convert.")
		os.Exit(0)
	}

	// Print summary
	mode := ""
	if *asset != "" {
		mode = fmt.Sprintf(" (asset %s)", *asset)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("PartNet mobility -> URDF%s\n", mode)
	fmt.Printf("Assets: %d, Workers: %d, Validate: %v\n", len(assets), cfg.Workers, cfg.Validate)
	fmt.Printf("Data: %s\n", cfg.DataDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rec := metrics.New()
	start := time.Now()

	// Run batch
	report := batch.Run(ctx, batch.Config{
		Convert: convert.Options{
			Mesh:     kinematics.Options{MeshDir: cfg.MeshDir, MeshExt: cfg.MeshExt},
			Validate: cfg.Validate,
		},
		OutputName: cfg.OutputName,
		Preview: batch.Preview{
			Enabled:     cfg.Preview.Enabled,
			Format:      preview.Format(cfg.Preview.Format),
			FileName:    cfg.Preview.FileName,
			Size:        cfg.Preview.Size,
			Supersample: cfg.Preview.Supersample,
		},
		Workers: cfg.Workers,
		Logger:  logger,
		Metrics: rec,
	}, assets)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs (run %s)\n", elapsed.Seconds(), report.RunID)

	success, failed := report.Counts()
	fmt.Printf("Converted: %d/%d\n", success, len(assets))

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range report.Results {
			if r.Success {
				continue
			}
			if shown == 20 {
				fmt.Printf("  ... and %d more\n", failed-shown)
				break
			}
			fmt.Printf("  %s: %s\n", r.Name, r.Error)
			shown++
		}
	}

	// Write manifest
	if err := batch.WriteManifest(cfg.ManifestPath, report); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", cfg.ManifestPath)
	}

	if cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("metrics write failed", zap.Error(err))
		}
	}

	if failed > 0 {
		logger.Sync()
		os.Exit(1)
	}
}
