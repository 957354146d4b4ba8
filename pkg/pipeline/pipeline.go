// Package pipeline turns tree descriptions into diagrams.
//
// This package implements the parse → prepare → render pipeline shared by
// the render, view and validate commands and by the HTTP server, so every
// entry point applies the same defaults, transforms and error codes.
//
// # Stages
//
//  1. Parse: decode the input with package io (edge list, JSON, YAML, TOML)
//  2. Prepare: optionally break cycles, reject remaining cycles, optionally
//     drop transitive edges, and resolve the root
//  3. Render: draw the tree as text (vertical or horizontal), or export the
//     graph as DOT, SVG or JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	res, err := runner.Execute(ctx, os.Stdin, pipeline.Options{
//	    Orientation: pipeline.OrientationHorizontal,
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Output)
//
// Errors returned by the runner carry codes from package errors, so callers
// can map them to exit codes or HTTP statuses with errors.GetCode.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxtree/pkg/dag"
	errs "github.com/matzehuels/boxtree/pkg/errors"
	bio "github.com/matzehuels/boxtree/pkg/io"
)

// Orientations.
const (
	OrientationVertical   = "vertical"
	OrientationHorizontal = "horizontal"
)

// Output formats.
const (
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Label modes select what a text diagram prints for each node.
const (
	LabelText = "label" // the node label, or the ID when unlabeled
	LabelID   = "id"    // always the ID
)

// Defaults shared by the CLI, the config file and the HTTP server.
const (
	DefaultOrientation  = OrientationVertical
	DefaultInputFormat  = string(bio.FormatAuto)
	DefaultOutputFormat = FormatText
	DefaultLabel        = LabelText

	// DefaultMaxNodes caps the expanded size of a text diagram. Shared
	// children are drawn once per parent, so a small DAG can expand
	// exponentially.
	DefaultMaxNodes = 100_000
)

// ValidOrientations is the set of supported orientations.
var ValidOrientations = map[string]bool{
	OrientationVertical:   true,
	OrientationHorizontal: true,
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidLabels is the set of supported label modes.
var ValidLabels = map[string]bool{
	LabelText: true,
	LabelID:   true,
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	InputFormat string `json:"input_format,omitempty"`
	Source      string `json:"-"` // file path or "-", for logs and hooks

	// Prepare options
	Root        string `json:"root,omitempty"`
	BreakCycles bool   `json:"break_cycles,omitempty"`
	Reduce      bool   `json:"reduce,omitempty"`

	// Render options
	Orientation  string `json:"orientation,omitempty"`
	OutputFormat string `json:"format,omitempty"`
	Label        string `json:"label,omitempty"`
	Trim         bool   `json:"trim,omitempty"`
	MaxNodes     int    `json:"max_nodes,omitempty"` // expanded tree cap for text output

	// Runtime options (not serialized)
	Logger  *log.Logger `json:"-"`
	NoCache bool        `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed graph after transforms.
	Graph *dag.DAG

	// Root is the ID of the node the text diagram starts from.
	Root string

	// Removed lists the edges dropped by cycle breaking.
	Removed []dag.Edge

	// Output is the rendered diagram or export.
	Output []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	TreeNodes    int // expanded size of the text diagram from Root
	CycleEdges   int // edges removed by cycle breaking
	ReducedEdges int // edges removed by transitive reduction
	Lines        int // text output only
	Bytes        int
	CacheHit     bool
	ParseTime    time.Duration
	PrepareTime  time.Duration
	RenderTime   time.Duration
}

// ValidateOrientation checks that an orientation is valid.
func ValidateOrientation(o string) error {
	if !ValidOrientations[o] {
		return errs.New(errs.ErrCodeInvalidOrientation, "invalid orientation: %q (must be one of: vertical, horizontal)", o)
	}
	return nil
}

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, dot, svg, json)", format)
	}
	return nil
}

// ValidateLabelMode checks that a label mode is valid.
func ValidateLabelMode(mode string) error {
	if !ValidLabels[mode] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid label mode: %q (must be one of: label, id)", mode)
	}
	return nil
}

// ValidateAndSetDefaults fills empty fields with defaults and validates the
// rest. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.InputFormat == "" {
		o.InputFormat = DefaultInputFormat
	}
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.OutputFormat == "" {
		o.OutputFormat = DefaultOutputFormat
	}
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.Source == "" {
		o.Source = "-"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	f, err := bio.ParseFormat(o.InputFormat)
	if err != nil {
		return err
	}
	o.InputFormat = string(f)
	if err := ValidateOrientation(o.Orientation); err != nil {
		return err
	}
	if err := ValidateFormat(o.OutputFormat); err != nil {
		return err
	}
	return ValidateLabelMode(o.Label)
}

// IsHorizontal reports whether the horizontal layout is selected.
func (o *Options) IsHorizontal() bool {
	return o.Orientation == OrientationHorizontal
}
