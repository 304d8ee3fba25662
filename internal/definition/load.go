package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks JSON for .json files and YAML otherwise.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// FormatForContentType picks YAML for YAML media types and JSON otherwise.
func FormatForContentType(ct string) Format {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return FormatJSON
	}
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	}
	return FormatJSON
}

// Load reads, parses and normalizes a definition file.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read definition: %w", err)
	}
	def, err := Parse(data, FormatForPath(path))
	if err != nil {
		return Definition{}, err
	}
	return Normalize(def)
}

// Parse decodes a single document. Unknown keys are rejected.
func Parse(data []byte, format Format) (Definition, error) {
	if format == FormatJSON {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (Definition, error) {
	var def Definition
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Definition{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Definition{}, fmt.Errorf("parse json: %w", err)
	}
	return def, nil
}

func parseYAML(data []byte) (Definition, error) {
	var def Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Definition{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Definition{}, fmt.Errorf("parse yaml: %w", err)
	}
	return def, nil
}
