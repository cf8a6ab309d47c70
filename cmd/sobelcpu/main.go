// Command sobelcpu runs the Sobel stencil over a raw greyscale image with
// the shared-memory sweep driver, timing one full-image pass per worker
// count in the doubling series 1..16, then writes the edge-magnitude image.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/edgebench/sobel"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	inputPath  string
	outputPath string
	cols       int
	rows       int
	logDir     string
)

var rootCmd = &cobra.Command{
	Use:   "sobelcpu",
	Short: "Sobel edge filter benchmark, CPU sweep driver",
	Long: `sobelcpu reads a flat 8-bit greyscale image, computes the Sobel
gradient magnitude at every pixel, and repeats the full-image sweep once per
worker count in the sequence 1, 2, 4, 8, 16, timing each pass independently.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	RunE:          runSweepSeries,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&inputPath, "input", "../data/zebra-gray-int8-4x", "Input raw image path")
	rootCmd.Flags().StringVar(&outputPath, "output", "../data/processed-raw-int8-4x-cpu.dat", "Output raw image path")
	rootCmd.Flags().IntVar(&cols, "cols", 7112, "Image width in pixels")
	rootCmd.Flags().IntVar(&rows, "rows", 5146, "Image height in pixels")
	rootCmd.Flags().StringVar(&logDir, "log-dir", "", "Directory for sweep result JSON (empty disables)")
}

func setupLogger() {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	slog.SetDefault(slog.New(handler))
}

func runSweepSeries(cmd *cobra.Command, args []string) error {
	cfg := sobel.Config{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Dims:       sobel.Dims{Cols: cols, Rows: rows},
	}

	slog.Info("starting sweep series", "input", cfg.InputPath, "cols", cfg.Dims.Cols, "rows", cfg.Dims.Rows)
	slog.Debug(sobel.CPUInfo())

	if logDir != "" {
		if err := sobel.InitSweepLogger("cpu_sweep", logDir); err != nil {
			return err
		}
	}

	raw, err := sobel.ReadRaw(cfg.InputPath, cfg.Dims)
	if err != nil {
		slog.Error("failed to read input", "err", err)
		return err
	}
	slog.Info("read input", "path", cfg.InputPath, "bytes", len(raw))

	n := cfg.Dims.N()
	src := make([]float32, n)
	dst := make([]float32, n)
	sobel.BytesToFloats(raw, src)

	results := sobel.SweepSeries(src, dst, cfg.Dims.Cols, cfg.Dims.Rows)
	for _, r := range results {
		slog.Info("sweep complete",
			"workers", r.Workers,
			"duration", r.Duration,
			"pixels_per_sec", r.PixelsPerSec)
		sobel.LogSweep(sobel.SweepRecord{
			Driver:       "cpu",
			Workers:      r.Workers,
			Pixels:       n,
			Duration:     r.Duration,
			PixelsPerSec: r.PixelsPerSec,
			Counters:     r.Counters,
		})
	}

	// The input bytes are no longer needed; the buffer is repurposed as the
	// output quantization buffer.
	out := raw
	sobel.FloatsToBytes(dst, out)

	if err := sobel.WriteRaw(cfg.OutputPath, out); err != nil {
		slog.Error("failed to write output", "err", err)
		return err
	}
	slog.Info("wrote output", "path", cfg.OutputPath, "bytes", len(out))

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
}
