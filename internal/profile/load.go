package profile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/job-autofill/internal/schemas"
	"github.com/jonathan/job-autofill/internal/types"
)

// Format is the serialization of a profile document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a profile from path.
func Load(path string) (*types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImportError{Source: path, Message: "failed to read profile", Cause: err}
	}
	p, err := Decode(data, FormatFromPath(path))
	if err != nil {
		if ie, ok := err.(*ImportError); ok {
			ie.Source = path
		}
		return nil, err
	}
	return p, nil
}

// Decode parses a profile document. The document must satisfy the profile
// schema, which requires a personalInfo section, and the profile must pass
// field format validation.
func Decode(data []byte, format Format) (*types.Profile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ImportError{Source: string(format), Message: "empty profile document"}
	}

	jsonData := data
	if format == FormatYAML {
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, &ImportError{Source: string(format), Message: "failed to parse YAML", Cause: err}
		}
		stringifyScalars(&root)
		var doc map[string]any
		if err := root.Decode(&doc); err != nil {
			return nil, &ImportError{Source: string(format), Message: "failed to parse YAML", Cause: err}
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, &ImportError{Source: string(format), Message: "failed to convert YAML", Cause: err}
		}
		jsonData = converted
	}

	if err := schemas.ValidateProfile(jsonData); err != nil {
		return nil, &ImportError{Source: string(format), Message: "invalid profile format", Cause: err}
	}

	var p types.Profile
	if err := json.Unmarshal(jsonData, &p); err != nil {
		return nil, &ImportError{Source: string(format), Message: "failed to parse JSON", Cause: err}
	}
	if err := p.Validate(); err != nil {
		return nil, &ImportError{Source: string(format), Message: "profile validation failed", Cause: err}
	}
	return &p, nil
}

// DecodeString is Decode for inline documents, detecting YAML when the
// content does not start like JSON.
func DecodeString(s string) (*types.Profile, error) {
	format := FormatJSON
	if t := strings.TrimSpace(s); t != "" && t[0] != '{' {
		format = FormatYAML
	}
	return Decode([]byte(s), format)
}

// stringifyScalars retags numeric and boolean leaves as strings so that
// unquoted values such as "zipCode: 02139" keep their text. Every profile
// field is a string.
func stringifyScalars(n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			stringifyScalars(c)
		}
	case yaml.MappingNode:
		for i := 1; i < len(n.Content); i += 2 {
			stringifyScalars(n.Content[i])
		}
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float", "!!bool":
			n.Tag = "!!str"
		}
	}
}
