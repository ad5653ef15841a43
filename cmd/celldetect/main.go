package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	img "github.com/parasight/celldetect/internal/imaging"
	"github.com/parasight/celldetect/internal/pipeline"
	"github.com/parasight/celldetect/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to yaml configuration (required)")
		inPath      = flag.String("in", "", "smear image to analyze (required)")
		outPath     = flag.String("out", "", "write annotated image here (optional)")
		diagDir     = flag.String("diag", "", "dump intermediate masks into this directory (optional)")
		writeConfig = flag.Bool("write-config", false, "print a starting-point config to stdout and exit")
		showVersion = flag.Bool("version", false, "print version information and exit")
	)
	flag.BoolVar(showVersion, "v", false, "shorthand for -version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("celldetect %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	if *writeConfig {
		data, err := yaml.Marshal(pipeline.Default())
		if err != nil {
			fmt.Fprintf(os.Stderr, "celldetect: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	// Stdout carries the JSON summary; logs go to stderr.
	level := zerolog.InfoLevel
	if os.Getenv("CELLDETECT_LOG_LEVEL") == "debug" {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if *configPath == "" || *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, *inPath, *outPath, *diagDir, log); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(configPath, inPath, outPath, diagDir string, log zerolog.Logger) error {
	cfg, err := pipeline.Load(configPath)
	if err != nil {
		return err
	}

	info, err := img.Inspect(inPath)
	if err != nil {
		return err
	}
	log.Info().
		Str("image", inPath).
		Int("width", info.Width).
		Int("height", info.Height).
		Str("format", info.Format).
		Msg("analyzing smear")

	src, err := img.OpenFile(inPath)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return err
	}
	result, err := p.Run(src)
	if err != nil {
		return err
	}

	log.Info().
		Int("infected", result.InfectedCount).
		Int("normal", len(result.Normal)).
		Msg("detection complete")

	// Detections are in the analyzed region's coordinates; render against
	// the same view when an ROI restricted the run.
	view := src
	if cfg.ROI != nil {
		r := image.Rect(cfg.ROI.X, cfg.ROI.Y, cfg.ROI.X+cfg.ROI.Width, cfg.ROI.Y+cfg.ROI.Height)
		view, err = img.CropRegion(src, r)
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if outPath != "" {
		annotated := render.Annotate(view, result.Infected, result.Normal)
		if err := imaging.Save(annotated, outPath); err != nil {
			return fmt.Errorf("failed to save annotated image: %w", err)
		}
		log.Info().Str("path", outPath).Msg("annotated image written")
	}

	if diagDir != "" {
		if err := dumpDiagnostics(diagDir, view, result, log); err != nil {
			return err
		}
	}
	return nil
}

// dumpDiagnostics writes the intermediate masks as PNGs plus a translucent
// infection overlay, for threshold and color-band tuning.
func dumpDiagnostics(dir string, src image.Image, result *pipeline.Result, log zerolog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create diagnostics dir: %w", err)
	}

	diag := result.Diagnostics
	dumps := map[string][][]bool{
		"cell_mask.png":      diag.CellMask,
		"infection_mask.png": diag.InfectionMask,
		"infected_edges.png": diag.InfectedEdges,
		"normal_mask.png":    diag.NormalMask,
		"normal_edges.png":   diag.NormalEdges,
	}
	for name, mask := range dumps {
		path := filepath.Join(dir, name)
		if err := imaging.Save(render.MaskImage(mask), path); err != nil {
			return fmt.Errorf("failed to save %s: %w", name, err)
		}
	}

	overlay := render.OverlayMask(src, diag.InfectionMask, color.RGBA{R: 255, A: 255}, 0.4)
	if err := imaging.Save(overlay, filepath.Join(dir, "infection_overlay.png")); err != nil {
		return fmt.Errorf("failed to save infection overlay: %w", err)
	}

	log.Info().Str("dir", dir).Msg("diagnostics written")
	return nil
}
