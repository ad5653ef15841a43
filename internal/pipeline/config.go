package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ROI restricts analysis to a rectangular region of the input image.
type ROI struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config holds every tunable parameter of one pipeline run.
//
// All values are required (ROI excepted) and read-only once a run starts; a
// Config can safely be shared by concurrent runs over different images. There
// are no silent defaults for core-altering values: an invalid or missing
// parameter fails validation instead of being substituted.
type Config struct {
	// ThresholdMultiplier scales the maximum edge magnitude into the
	// binarization threshold. Must be in (0,1).
	ThresholdMultiplier float64 `yaml:"threshold_multiplier"`

	// Infection color band, all channels in [0,1]. HueMin > HueMax means
	// the band wraps across the 0/1 hue boundary.
	HueMin float64 `yaml:"hue_min"`
	HueMax float64 `yaml:"hue_max"`
	SatMin float64 `yaml:"sat_min"`
	SatMax float64 `yaml:"sat_max"`
	ValMin float64 `yaml:"val_min"`
	ValMax float64 `yaml:"val_max"`

	// Disk radii for infection mask cleanup, closing then opening.
	HSVMorphCloseRadius int `yaml:"hsv_morph_close_radius"`
	HSVMorphOpenRadius  int `yaml:"hsv_morph_open_radius"`

	// MinInfectionArea is the smallest accepted stained region in pixels.
	MinInfectionArea int `yaml:"min_infection_area"`

	// Hough radius sweeps per class: min inclusive, max exclusive.
	InfectedRadiusMin  int `yaml:"infected_radius_min"`
	InfectedRadiusMax  int `yaml:"infected_radius_max"`
	InfectedRadiusStep int `yaml:"infected_radius_step"`
	NormalRadiusMin    int `yaml:"normal_radius_min"`
	NormalRadiusMax    int `yaml:"normal_radius_max"`
	NormalRadiusStep   int `yaml:"normal_radius_step"`

	// Caps on raw detections per class.
	MaxInfectedPeaks int `yaml:"max_infected_peaks"`
	MaxNormalPeaks   int `yaml:"max_normal_peaks"`

	// Overlap-resolution center distances per class.
	MinDistanceInfected float64 `yaml:"min_distance_infected"`
	MinDistanceNormal   float64 `yaml:"min_distance_normal"`

	// MaskDilationRadius grows the infected mask before it is subtracted
	// from the cell mask for the normal-cell pass.
	MaskDilationRadius int `yaml:"mask_dilation_radius"`

	// CrossClassMargin is the extra distance in the cross-class overlap
	// test between normal and infected detections.
	CrossClassMargin float64 `yaml:"cross_class_margin"`

	// ROI optionally restricts analysis to a sub-rectangle of the image.
	ROI *ROI `yaml:"roi,omitempty"`
}

// ConfigError reports an invalid configuration parameter with enough context
// to say which stage it belongs to.
type ConfigError struct {
	Stage  string
	Param  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s %s", e.Stage, e.Param, e.Reason)
}

// Default returns a starting-point configuration tuned for Giemsa-stained
// thin smear photographs at roughly 150px cell diameter. It is a convenience
// for generating a config file to edit, not a fallback the pipeline applies
// on its own.
func Default() *Config {
	return &Config{
		ThresholdMultiplier: 0.05,
		HueMin:              0.70,
		HueMax:              0.95,
		SatMin:              0.35,
		SatMax:              1.0,
		ValMin:              0.20,
		ValMax:              0.90,
		HSVMorphCloseRadius: 4,
		HSVMorphOpenRadius:  2,
		MinInfectionArea:    200,
		InfectedRadiusMin:   60,
		InfectedRadiusMax:   95,
		InfectedRadiusStep:  5,
		NormalRadiusMin:     60,
		NormalRadiusMax:     95,
		NormalRadiusStep:    5,
		MaxInfectedPeaks:    40,
		MaxNormalPeaks:      80,
		MinDistanceInfected: 100,
		MinDistanceNormal:   100,
		MaskDilationRadius:  10,
		CrossClassMargin:    15,
	}
}

// Load reads and validates a yaml configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every parameter and reports the first violation with its
// stage and parameter name.
func (c *Config) Validate() error {
	if c.ThresholdMultiplier <= 0 || c.ThresholdMultiplier >= 1 {
		return &ConfigError{"binarize", "threshold_multiplier",
			fmt.Sprintf("%g outside (0,1)", c.ThresholdMultiplier)}
	}

	unit := []struct {
		name string
		v    float64
	}{
		{"hue_min", c.HueMin}, {"hue_max", c.HueMax},
		{"sat_min", c.SatMin}, {"sat_max", c.SatMax},
		{"val_min", c.ValMin}, {"val_max", c.ValMax},
	}
	for _, p := range unit {
		if p.v < 0 || p.v > 1 {
			return &ConfigError{"classify", p.name, fmt.Sprintf("%g outside [0,1]", p.v)}
		}
	}
	// Saturation and value bands are plain intervals; only hue wraps.
	if c.SatMin > c.SatMax {
		return &ConfigError{"classify", "sat_min", "exceeds sat_max"}
	}
	if c.ValMin > c.ValMax {
		return &ConfigError{"classify", "val_min", "exceeds val_max"}
	}
	if c.HSVMorphCloseRadius < 0 {
		return &ConfigError{"classify", "hsv_morph_close_radius", "is negative"}
	}
	if c.HSVMorphOpenRadius < 0 {
		return &ConfigError{"classify", "hsv_morph_open_radius", "is negative"}
	}
	if c.MinInfectionArea < 0 {
		return &ConfigError{"classify", "min_infection_area", "is negative"}
	}

	sweeps := []struct {
		stage          string
		min, max, step int
		peaks          int
		peaksName      string
	}{
		{"detect-infected", c.InfectedRadiusMin, c.InfectedRadiusMax, c.InfectedRadiusStep,
			c.MaxInfectedPeaks, "max_infected_peaks"},
		{"detect-normal", c.NormalRadiusMin, c.NormalRadiusMax, c.NormalRadiusStep,
			c.MaxNormalPeaks, "max_normal_peaks"},
	}
	for _, s := range sweeps {
		if s.min < 1 {
			return &ConfigError{s.stage, "radius_min", fmt.Sprintf("%d below 1", s.min)}
		}
		if s.max <= s.min {
			return &ConfigError{s.stage, "radius_max",
				fmt.Sprintf("%d does not exceed radius_min %d", s.max, s.min)}
		}
		if s.step <= 0 {
			return &ConfigError{s.stage, "radius_step", fmt.Sprintf("%d not positive", s.step)}
		}
		if s.peaks < 1 {
			return &ConfigError{s.stage, s.peaksName, fmt.Sprintf("%d below 1", s.peaks)}
		}
	}

	if c.MinDistanceInfected < 0 {
		return &ConfigError{"resolve", "min_distance_infected", "is negative"}
	}
	if c.MinDistanceNormal < 0 {
		return &ConfigError{"resolve", "min_distance_normal", "is negative"}
	}
	if c.MaskDilationRadius < 0 {
		return &ConfigError{"exclude", "mask_dilation_radius", "is negative"}
	}
	if c.CrossClassMargin < 0 {
		return &ConfigError{"exclude", "cross_class_margin", "is negative"}
	}

	if c.ROI != nil && (c.ROI.Width <= 0 || c.ROI.Height <= 0) {
		return &ConfigError{"crop", "roi", "has non-positive dimensions"}
	}
	return nil
}
