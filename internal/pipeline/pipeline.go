package pipeline

import (
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"github.com/parasight/celldetect/internal/detection"
	img "github.com/parasight/celldetect/internal/imaging"
)

// Pipeline runs the full two-pass cell detection over single images.
//
// A Pipeline is immutable after New and safe for concurrent Run calls over
// different images; each run allocates its own intermediate state.
type Pipeline struct {
	cfg *Config
	log zerolog.Logger
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Infected are the parasitized-cell detections.
	Infected []detection.Circle `json:"infected"`

	// Normal are the red-blood-cell detections that survived cross-class
	// exclusion.
	Normal []detection.Circle `json:"normal"`

	// InfectedCount duplicates len(Infected) for summary consumers.
	InfectedCount int `json:"infected_count"`

	// Diagnostics holds every intermediate mask and plane. Excluded from
	// JSON output; the render collaborator consumes it directly.
	Diagnostics *Diagnostics `json:"-"`
}

// New validates the configuration and builds a pipeline. The logger is used
// for per-stage debug events; pass zerolog.Nop() to run silently.
func New(cfg *Config, log zerolog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, log: log.With().Str("component", "pipeline").Logger()}, nil
}

// Run executes the fixed stage sequence on one smear image.
//
// The infected pass runs first; its mask, dilated by the configured margin,
// is subtracted from the cell mask before the normal pass so infected pixels
// never contribute votes to normal-cell circles. Zero detections in either
// class is a normal outcome. Any stage failure aborts the run and names the
// stage.
//
// Runs are deterministic: the same image and configuration produce
// bit-identical results.
func (p *Pipeline) Run(src image.Image) (*Result, error) {
	cfg := p.cfg

	if cfg.ROI != nil {
		r := image.Rect(cfg.ROI.X, cfg.ROI.Y, cfg.ROI.X+cfg.ROI.Width, cfg.ROI.Y+cfg.ROI.Height)
		cropped, err := img.CropRegion(src, r)
		if err != nil {
			return nil, fmt.Errorf("crop: %w", err)
		}
		src = cropped
	}

	diag := &Diagnostics{}

	start := time.Now()
	diag.Gray = img.GrayPlane(src)
	p.stage("grayscale", start)

	start = time.Now()
	cellMask, edgeMap, err := img.Binarize(diag.Gray, cfg.ThresholdMultiplier)
	if err != nil {
		return nil, fmt.Errorf("binarize: %w", err)
	}
	diag.CellMask = cellMask
	diag.EdgeMap = edgeMap
	diag.EdgeHistogram = edgeHistogram(edgeMap, edgeHistogramBins)
	p.stage("binarize", start)
	p.log.Debug().Int("foreground_px", img.CountTrue(cellMask)).Msg("cell mask ready")

	start = time.Now()
	infectionMask, channels, err := detection.ClassifyInfection(src, cellMask, detection.InfectionOptions{
		HueMin:      cfg.HueMin,
		HueMax:      cfg.HueMax,
		SatMin:      cfg.SatMin,
		SatMax:      cfg.SatMax,
		ValMin:      cfg.ValMin,
		ValMax:      cfg.ValMax,
		CloseRadius: cfg.HSVMorphCloseRadius,
		OpenRadius:  cfg.HSVMorphOpenRadius,
		MinArea:     cfg.MinInfectionArea,
	})
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	diag.Infection = channels
	diag.InfectionMask = infectionMask
	p.stage("classify", start)

	// Infected pass.
	start = time.Now()
	infectedMask := img.Intersect(cellMask, infectionMask)
	infectedEdges := img.MaskEdges(infectedMask)
	diag.InfectedMask = infectedMask
	diag.InfectedEdges = infectedEdges

	rawInfected, err := detection.DetectCircles(infectedEdges, detection.HoughParams{
		RadiusMin:   cfg.InfectedRadiusMin,
		RadiusMax:   cfg.InfectedRadiusMax,
		RadiusStep:  cfg.InfectedRadiusStep,
		MinDistance: int(cfg.MinDistanceInfected),
		MaxPeaks:    cfg.MaxInfectedPeaks,
	})
	if err != nil {
		return nil, fmt.Errorf("detect-infected: %w", err)
	}
	infected := detection.ResolveOverlaps(rawInfected, cfg.MinDistanceInfected)
	p.stage("detect-infected", start)
	p.log.Debug().Int("raw", len(rawInfected)).Int("resolved", len(infected)).Msg("infected detections")

	// Normal pass: keep infected pixels (plus a safety margin) out of the
	// normal-cell evidence entirely.
	start = time.Now()
	grown := img.Dilate(infectedMask, cfg.MaskDilationRadius)
	normalMask := img.Subtract(cellMask, grown)
	normalEdges := img.MaskEdges(normalMask)
	diag.NormalMask = normalMask
	diag.NormalEdges = normalEdges

	rawNormal, err := detection.DetectCircles(normalEdges, detection.HoughParams{
		RadiusMin:   cfg.NormalRadiusMin,
		RadiusMax:   cfg.NormalRadiusMax,
		RadiusStep:  cfg.NormalRadiusStep,
		MinDistance: int(cfg.MinDistanceNormal),
		MaxPeaks:    cfg.MaxNormalPeaks,
	})
	if err != nil {
		return nil, fmt.Errorf("detect-normal: %w", err)
	}
	normal := detection.ResolveOverlaps(rawNormal, cfg.MinDistanceNormal)
	normal = detection.ExcludeOverlapping(normal, infected, cfg.CrossClassMargin)
	p.stage("detect-normal", start)
	p.log.Debug().Int("raw", len(rawNormal)).Int("final", len(normal)).Msg("normal detections")

	return &Result{
		Infected:      infected,
		Normal:        normal,
		InfectedCount: len(infected),
		Diagnostics:   diag,
	}, nil
}

func (p *Pipeline) stage(name string, start time.Time) {
	p.log.Debug().Str("stage", name).Dur("took", time.Since(start)).Msg("stage done")
}
