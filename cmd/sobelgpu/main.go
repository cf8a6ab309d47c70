// Command sobelgpu runs the Sobel stencil over a raw greyscale image with a
// single grid-stride kernel dispatch at a configurable launch shape:
//
//	sobelgpu [blocks] [threadsPerBlock]
//
// Both positionals are optional; the defaults are 1 block of 256 threads.
// A companion sweep script invokes this binary repeatedly at varying shapes
// and collects the timing output per run.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

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
	Use:   "sobelgpu [blocks] [threadsPerBlock]",
	Short: "Sobel edge filter benchmark, device dispatch driver",
	Long: `sobelgpu reads a flat 8-bit greyscale image, migrates it to device
memory, and computes the Sobel gradient magnitude with one kernel launch of
blocks x threadsPerBlock execution units. Each unit covers a strided subset
of the pixel index space, so any launch shape covers the whole image.`,
	Args: cobra.MaximumNArgs(2),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	RunE:          runDispatch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&inputPath, "input", "../data/zebra-gray-int8-4x", "Input raw image path")
	rootCmd.Flags().StringVar(&outputPath, "output", "../data/processed-raw-int8-4x-gpu.dat", "Output raw image path")
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

// launchShape parses the optional [blocks] [threadsPerBlock] positionals.
func launchShape(args []string) (blocks, threadsPerBlock int, err error) {
	blocks = sobel.DefaultBlockCount
	threadsPerBlock = sobel.DefaultBlockSize

	if len(args) >= 1 {
		blocks, err = strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid block count %q: %w", args[0], err)
		}
	}
	if len(args) >= 2 {
		threadsPerBlock, err = strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid threads per block %q: %w", args[1], err)
		}
	}

	return blocks, threadsPerBlock, nil
}

func runDispatch(cmd *cobra.Command, args []string) error {
	blocks, threadsPerBlock, err := launchShape(args)
	if err != nil {
		return err
	}

	cfg := sobel.Config{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Dims:       sobel.Dims{Cols: cols, Rows: rows},
	}

	slog.Info("starting dispatch",
		"input", cfg.InputPath,
		"cols", cfg.Dims.Cols, "rows", cfg.Dims.Rows,
		"blocks", blocks, "threads_per_block", threadsPerBlock)
	slog.Debug(sobel.CPUInfo())

	if logDir != "" {
		if err := sobel.InitSweepLogger("device_dispatch", logDir); err != nil {
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

	// Device or allocation faults are fatal: report and abort, no retry.
	im, err := sobel.AcquireDeviceImage(src)
	if err != nil {
		slog.Error("device acquisition failed", "err", err)
		os.Exit(2)
	}
	defer im.Release()

	start := time.Now()
	if err := im.Run(cfg.Dims, blocks, threadsPerBlock); err != nil {
		if sobel.IsInvalidArgError(err) {
			return err
		}
		slog.Error("dispatch failed", "err", err)
		os.Exit(2)
	}
	elapsed := time.Since(start)

	if err := im.Result(dst); err != nil {
		slog.Error("device readback failed", "err", err)
		os.Exit(2)
	}

	pixelsPerSec := float64(n) / elapsed.Seconds()
	slog.Info("dispatch complete",
		"blocks", blocks,
		"threads_per_block", threadsPerBlock,
		"duration", elapsed,
		"pixels_per_sec", pixelsPerSec)
	sobel.LogSweep(sobel.SweepRecord{
		Driver:          "device",
		Blocks:          blocks,
		ThreadsPerBlock: threadsPerBlock,
		Pixels:          n,
		Duration:        elapsed,
		PixelsPerSec:    pixelsPerSec,
	})

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
