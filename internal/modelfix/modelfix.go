// Package modelfix rewrites a Keras model document exported for the browser
// so that the JavaScript runtime accepts its input layer.
package modelfix

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	layersPath      = "modelTopology.model_config.config.layers"
	inputConfigPath = layersPath + ".0.config"

	inputLayerClass = "InputLayer"
	legacyShapeKey  = "batch_shape"
	shapeKey        = "batchInputShape"
)

// unsupportedInputFields are rejected by the JavaScript runtime.
var unsupportedInputFields = []string{"sparse", "ragged"}

var (
	ErrInvalidJSON     = errors.New("model document is not valid JSON")
	ErrUnexpectedShape = errors.New("unexpected model document shape")
)

// Report describes the edits applied to a document.
type Report struct {
	InputLayer bool
	Converted  bool
	Removed    []string
}

func (r Report) Changed() bool {
	return r.Converted || len(r.Removed) > 0
}

// Lines renders the report the way the command line prints it.
func (r Report) Lines() []string {
	var lines []string
	if r.Converted {
		lines = append(lines, fmt.Sprintf("✓ Converted %s to %s", legacyShapeKey, shapeKey))
	}
	for _, field := range r.Removed {
		lines = append(lines, fmt.Sprintf("✓ Removed %s field", field))
	}
	return lines
}

// Fix applies the input layer corrections to doc and returns the document
// indented with two spaces. Key order is preserved; a converted
// batchInputShape is appended after the remaining keys.
func Fix(doc []byte) ([]byte, Report, error) {
	var report Report

	if !gjson.ValidBytes(doc) {
		return nil, report, ErrInvalidJSON
	}

	layers := gjson.GetBytes(doc, layersPath)
	if !layers.IsArray() {
		return nil, report, fmt.Errorf("%w: %s is not an array", ErrUnexpectedShape, layersPath)
	}

	out := doc
	first := layers.Get("0")
	if first.Exists() {
		if !first.IsObject() {
			return nil, report, fmt.Errorf("%w: first layer is not an object", ErrUnexpectedShape)
		}
		className := first.Get("class_name")
		if !className.Exists() {
			return nil, report, fmt.Errorf("%w: first layer has no class_name", ErrUnexpectedShape)
		}

		if className.String() == inputLayerClass {
			report.InputLayer = true

			var err error
			out, err = fixInputLayer(out, &report)
			if err != nil {
				return nil, report, err
			}
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return nil, report, fmt.Errorf("failed to format model document: %w", err)
	}

	return buf.Bytes(), report, nil
}

func fixInputLayer(doc []byte, report *Report) ([]byte, error) {
	config := gjson.GetBytes(doc, inputConfigPath)
	if !config.IsObject() {
		return nil, fmt.Errorf("%w: input layer has no config object", ErrUnexpectedShape)
	}

	var err error
	legacy := config.Get(legacyShapeKey)
	if legacy.Exists() && !config.Get(shapeKey).Exists() {
		if doc, err = sjson.DeleteBytes(doc, inputConfigPath+"."+legacyShapeKey); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", legacyShapeKey, err)
		}
		if doc, err = sjson.SetRawBytes(doc, inputConfigPath+"."+shapeKey, []byte(legacy.Raw)); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", shapeKey, err)
		}
		report.Converted = true
	}

	for _, field := range unsupportedInputFields {
		if !config.Get(field).Exists() {
			continue
		}
		if doc, err = sjson.DeleteBytes(doc, inputConfigPath+"."+field); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", field, err)
		}
		report.Removed = append(report.Removed, field)
	}

	return doc, nil
}

type Options struct {
	// DryRun writes the patched document to Output instead of path.
	DryRun bool
	Output io.Writer
}

// FixFile patches the document at path in place with a single write.
func FixFile(path string, opts Options) (Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to stat model file: %w", err)
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read model file: %w", err)
	}

	fixed, report, err := Fix(doc)
	if err != nil {
		return report, fmt.Errorf("%s: %w", path, err)
	}

	if opts.DryRun {
		if opts.Output == nil {
			return report, nil
		}
		if _, err := opts.Output.Write(append(fixed, '\n')); err != nil {
			return report, fmt.Errorf("failed to write patched document: %w", err)
		}
		return report, nil
	}

	if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
		return report, fmt.Errorf("failed to write model file: %w", err)
	}

	return report, nil
}
