// Package config loads and validates the formatter's run configuration.
//
// Values are layered: defaults, then RAGWRAP_* environment variables, then an optional
// JSON file, then command-line flags (applied by the caller).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ByLCY/ragwrap/layout"
)

// ErrUnknownFormat is returned when the output format is not one of Formats.
var ErrUnknownFormat = errors.New("config: unknown output format")

// Formats lists the supported output formats.
var Formats = []string{"text", "preview", "pdf", "json"}

// Config is the complete run configuration.
type Config struct {
	Input    string `json:"input,omitempty"`  // "-" or empty means stdin
	Output   string `json:"output,omitempty"` // "-" or empty means stdout
	Format   string `json:"format,omitempty" validate:"required,oneof=text preview pdf json"`
	Strategy string `json:"strategy,omitempty" validate:"omitempty,oneof=optimal greedy"`
	Debug    string `json:"debug,omitempty"` // path of the debug JSON report
	Data     string `json:"data,omitempty"`  // inline JSON for ${} binding
	Quiet    bool   `json:"quiet,omitempty"`
	MaxLines int    `json:"max_lines,omitempty" validate:"gte=0"`

	PDF PDFConfig `json:"pdf"`
}

// PDFConfig holds author-style lengths for the PDF renderer.
type PDFConfig struct {
	FontSize   string `json:"font_size,omitempty" validate:"required"`
	LineHeight string `json:"line_height,omitempty" validate:"required"`
	Margin     string `json:"margin,omitempty" validate:"required"`
	Font       string `json:"font,omitempty"`
	Title      string `json:"title,omitempty"`
	Guides     bool   `json:"guides,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:    "-",
		Output:   "-",
		Format:   "text",
		Strategy: string(layout.StrategyOptimal),
		MaxLines: 250,
		PDF: PDFConfig{
			FontSize:   "10pt",
			LineHeight: "1.4x",
			Margin:     "18mm",
		},
	}
}

// ApplyEnv overrides fields from RAGWRAP_* variables that are set and non-empty.
func (c *Config) ApplyEnv() error {
	str := map[string]*string{
		"RAGWRAP_INPUT":           &c.Input,
		"RAGWRAP_OUTPUT":          &c.Output,
		"RAGWRAP_FORMAT":          &c.Format,
		"RAGWRAP_STRATEGY":        &c.Strategy,
		"RAGWRAP_DEBUG":           &c.Debug,
		"RAGWRAP_DATA":            &c.Data,
		"RAGWRAP_PDF_FONT_SIZE":   &c.PDF.FontSize,
		"RAGWRAP_PDF_LINE_HEIGHT": &c.PDF.LineHeight,
		"RAGWRAP_PDF_MARGIN":      &c.PDF.Margin,
		"RAGWRAP_PDF_FONT":        &c.PDF.Font,
		"RAGWRAP_PDF_TITLE":       &c.PDF.Title,
	}
	for key, dst := range str {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	if v := strings.TrimSpace(os.Getenv("RAGWRAP_MAX_LINES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: RAGWRAP_MAX_LINES must be an integer: %w", err)
		}
		c.MaxLines = n
	}
	for key, dst := range map[string]*bool{"RAGWRAP_QUIET": &c.Quiet, "RAGWRAP_PDF_GUIDES": &c.PDF.Guides} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("config: %s must be a boolean: %w", key, err)
			}
			*dst = b
		}
	}
	return nil
}

// LoadFile merges a JSON config file over c. Fields absent from the file keep their value.
func (c *Config) LoadFile(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return nil
}

// Validate normalizes Format and Strategy to lower case, then checks field constraints
// and that every PDF length parses.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Strategy = strings.ToLower(strings.TrimSpace(c.Strategy))

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.StructField() == "Format" && fe.Tag() == "oneof" {
					return fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, c.Format, strings.Join(Formats, ", "))
				}
			}
		}
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.PDFSettings(); err != nil {
		return err
	}
	if c.Data != "" && !json.Valid([]byte(c.Data)) {
		return fmt.Errorf("config: data is not valid JSON")
	}
	return nil
}

// PDFSettings is the parsed form of PDFConfig.
type PDFSettings struct {
	FontSize   layout.Length
	LineHeight layout.LineHeightSpec
	Margin     layout.Length
}

// PDFSettings parses the PDF lengths.
func (c *Config) PDFSettings() (PDFSettings, error) {
	var (
		s   PDFSettings
		err error
	)
	if s.FontSize, err = layout.ParseRawLengthStr(c.PDF.FontSize); err != nil {
		return s, fmt.Errorf("config: pdf font_size: %w", err)
	}
	if s.LineHeight, err = layout.ParseLineHeight(c.PDF.LineHeight); err != nil {
		return s, fmt.Errorf("config: pdf line_height: %w", err)
	}
	if s.Margin, err = layout.ParseRawLengthStr(c.PDF.Margin); err != nil {
		return s, fmt.Errorf("config: pdf margin: %w", err)
	}
	return s, nil
}

// ParsedData decodes the inline binding data; it returns nil when none is set.
func (c *Config) ParsedData() (any, error) {
	if c.Data == "" {
		return nil, nil
	}
	var data any
	if err := json.Unmarshal([]byte(c.Data), &data); err != nil {
		return nil, fmt.Errorf("config: failed to parse data JSON: %w", err)
	}
	return data, nil
}
