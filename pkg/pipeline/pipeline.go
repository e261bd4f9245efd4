// Package pipeline provides the parse → layout → render pipeline of flowter.
//
// The CLI, the HTTP server and the file watcher all run documents through
// a [Runner], so every entry point validates, lays out and renders the same
// way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode a JSON, YAML or TOML document and validate it
//  2. Layout: Place nodes in rows and route every edge
//  3. Render: Produce SVG, PNG, PDF, JSON geometry, DOT or Mermaid output
//
// Layouts and SVG documents are cheap and always recomputed. Rasterised
// artifacts (PNG, PDF) go through rsvg-convert and are cached, keyed by the
// hash of the SVG they were converted from.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    InputPath: "chart.yaml",
//	    Formats:   []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowter/pkg/cache"
	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/render"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/errors"
	"github.com/matzehuels/flowter/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Watcher
// =============================================================================

// DefaultScale is the PNG pixel density relative to the SVG size.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
	FormatJSON:    true,
	FormatDOT:     true,
	FormatMermaid: true,
}

// Extensions maps output formats to file extensions.
var Extensions = map[string]string{
	FormatSVG:     ".svg",
	FormatPNG:     ".png",
	FormatPDF:     ".pdf",
	FormatJSON:    ".json",
	FormatDOT:     ".dot",
	FormatMermaid: ".mmd",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Input wins over InputPath.
	Input       []byte `json:"-"`
	InputPath   string `json:"-"`
	InputFormat string `json:"input_format,omitempty"`

	// Layout options, overriding the document.
	Mode      string `json:"mode,omitempty"`
	Namespace string `json:"namespace,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Background  string   `json:"background,omitempty"`
	NoEdges     bool     `json:"no_edges,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`
	ValidateDOT bool     `json:"validate_dot,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the decoded input.
	Document graph.Document

	// DocumentHash is the content hash of the raw input.
	DocumentHash string

	// Layout is the computed geometry.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks cache usage of the render stage.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	RowCount   int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit    bool // Whether every cacheable artifact came from cache
	ArtifactHits int  // Number of artifacts served from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot, mermaid)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// IsCacheable reports whether artifacts of format are cached. Only formats
// produced by the external converter are worth it.
func IsCacheable(format string) bool {
	return format == FormatPNG || format == FormatPDF
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the input source and resolves its format.
func (o *Options) ValidateForParse() error {
	if len(o.Input) == 0 && o.InputPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input or input path is required")
	}
	if o.InputFormat == "" {
		if o.InputPath == "" {
			return errors.New(errors.ErrCodeInvalidInput, "input format is required for inline input")
		}
		f, err := graph.DetectFormat(o.InputPath)
		if err != nil {
			return err
		}
		o.InputFormat = string(f)
	} else {
		f, err := graph.ParseFormat(o.InputFormat)
		if err != nil {
			return err
		}
		o.InputFormat = string(f)
	}
	o.setLogger()
	return nil
}

// ValidateForLayout checks the layout overrides.
func (o *Options) ValidateForLayout() error {
	o.setLogger()
	if o.Mode != "" {
		if _, err := flowchart.ParseMode(o.Mode); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return errors.ValidateColor(o.Background)
}

// ArtifactKeyOpts returns cache key options for a converted artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Converter: render.Converter}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
