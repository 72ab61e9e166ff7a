package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mobility-urdf/internal/convert"
	"mobility-urdf/internal/failure"
	"mobility-urdf/internal/logging"
	"mobility-urdf/internal/metrics"
	"mobility-urdf/internal/preview"
)

// kindInternal labels failures that carry no failure kind.
const kindInternal = "internal"

// Preview configures the optional schematic image per asset.
type Preview struct {
	Enabled     bool
	Format      preview.Format
	FileName    string
	Size        int
	Supersample int
}

// Config holds all shared resources for a batch run.
type Config struct {
	Convert    convert.Options
	OutputName string // URDF file name inside each asset dir
	Preview    Preview
	Workers    int
	Logger     *zap.Logger
	Metrics    *metrics.Recorder
	Progress   time.Duration // progress log interval; 0 means 2s
}

// Result holds the outcome of processing one asset.
type Result struct {
	Asset      string
	Name       string
	Success    bool
	Error      string
	ErrorKind  string
	LinkID     *int
	URDF       string
	Preview    string
	Links      int
	Joints     int
	Connectors int
	Meshes     []string
	Duration   time.Duration
}

// Report is a finished run.
type Report struct {
	RunID   string
	Results []Result
	Elapsed time.Duration
}

// Counts returns the number of converted and failed assets.
func (r *Report) Counts() (ok, failed int) {
	for _, res := range r.Results {
		if res.Success {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}

// Discover lists asset directories under root: subdirectories holding
// mobility_v3.json or result.json, sorted by name. A non-empty names list
// keeps only those directories.
func Discover(root string, names []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", root, err)
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || (len(want) > 0 && !want[e.Name()]) {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if exists(filepath.Join(dir, convert.V3File)) || exists(filepath.Join(dir, convert.HierarchyFile)) {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Run processes all assets using a worker pool. Results are in asset order.
func Run(ctx context.Context, cfg Config, assets []string) *Report {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	if cfg.Progress <= 0 {
		cfg.Progress = 2 * time.Second
	}

	runID := uuid.NewString()
	log := cfg.Logger.With(zap.String("run_id", runID))

	total := len(assets)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Progress)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress",
						zap.Int64("processed", p),
						zap.Int("total", total),
						zap.Float64("assets_per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	assetChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range assetChan {
				results[idx] = processAsset(ctx, cfg, log, assets[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range assets {
		assetChan <- i
	}
	close(assetChan)

	wg.Wait()
	close(done)

	return &Report{RunID: runID, Results: results, Elapsed: time.Since(start)}
}

func processAsset(ctx context.Context, cfg Config, log *zap.Logger, dir string) Result {
	timer := metrics.NewTimer()
	res := Result{Asset: dir, Name: filepath.Base(dir)}

	fail := func(err error) Result {
		res.Duration = timer.Duration()
		res.Error = err.Error()
		res.ErrorKind = kindInternal
		if kind, ok := failure.KindOf(err); ok {
			res.ErrorKind = string(kind)
		} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			res.ErrorKind = "canceled"
		}
		fields := []zap.Field{
			zap.String("asset", res.Name),
			zap.String("error_kind", res.ErrorKind),
			zap.Duration("duration", res.Duration),
			zap.Error(err),
		}
		if id, ok := failure.LinkOf(err); ok {
			res.LinkID = &id
			fields = append(fields, zap.Int("link_id", id))
		}
		log.Warn("conversion failed", fields...)
		if cfg.Metrics != nil {
			cfg.Metrics.RecordFailure(res.ErrorKind, res.Duration)
		}
		return res
	}

	in, err := convert.LoadAsset(dir)
	if err != nil {
		return fail(err)
	}
	out, err := convert.Convert(ctx, in, cfg.Convert)
	if err != nil {
		return fail(err)
	}
	urdfPath, err := convert.WriteAsset(dir, out, cfg.OutputName)
	if err != nil {
		return fail(err)
	}
	res.URDF = urdfPath

	if cfg.Preview.Enabled {
		img := preview.Render(out.Tree, preview.Options{
			Size:        cfg.Preview.Size,
			Supersample: cfg.Preview.Supersample,
			Labels:      true,
		})
		name := cfg.Preview.FileName
		if name == "" {
			name = "preview." + string(cfg.Preview.Format)
		}
		path := filepath.Join(dir, name)
		if err := preview.WriteFile(path, img, cfg.Preview.Format); err != nil {
			return fail(err)
		}
		res.Preview = path
	}

	res.Success = true
	res.Links = out.Links()
	res.Joints = out.Joints()
	res.Connectors = out.Tree.Connectors()
	res.Meshes = out.MeshPaths
	res.Duration = timer.Duration()

	log.Info("converted",
		zap.String("asset", res.Name),
		zap.Int("links", res.Links),
		zap.Int("joints", res.Joints),
		zap.Int("connectors", res.Connectors),
		zap.Duration("duration", res.Duration))
	if cfg.Metrics != nil {
		cfg.Metrics.RecordSuccess(res.Links, res.Connectors, res.Duration)
	}
	return res
}
