package job

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/ukaji3/ooxmltools-go/pkg/ooxml"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Load reads a job file. The format is chosen by extension: .json for
// JSON, .yaml or .yml for YAML. Unknown fields are rejected.
func Load(path string) (*Job, error) {
	data, err := ooxml.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading job file: %w", err)
	}

	var j *Job
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		j, err = loadJSON(data)
	case ".yaml", ".yml":
		j, err = loadYAML(data)
	default:
		return nil, errors.Errorf("unsupported job file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	j.location = path
	if err := j.Validate(); err != nil {
		return nil, errors.Errorf("validating job: %w", err)
	}
	return j, nil
}

func loadJSON(data []byte) (*Job, error) {
	var j Job
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&j); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &j, nil
}

func loadYAML(data []byte) (*Job, error) {
	var j Job
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&j); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &j, nil
}
