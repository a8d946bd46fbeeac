package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/linechart/pkg/dataset"
	"github.com/matzehuels/linechart/pkg/errors"
)

// Format names a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unrecognized dataset extension %q", filepath.Ext(path))
}

type document struct {
	Observations []dataset.RawObservation `json:"observations" yaml:"observations" toml:"observations"`
}

// Read decodes observations from r in the given format.
func Read(r io.Reader, format Format) ([]dataset.RawObservation, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatCSV:
		return ReadCSV(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
}

// ReadJSON decodes a JSON list of observations, or an object holding one
// under "observations".
func ReadJSON(r io.Reader) ([]dataset.RawObservation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read")
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var obs []dataset.RawObservation
		if err := json.Unmarshal(trimmed, &obs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
		return nonNil(obs), nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return nonNil(doc.Observations), nil
}

// ReadYAML decodes a YAML sequence of observations, or a mapping holding
// one under "observations".
func ReadYAML(r io.Reader) ([]dataset.RawObservation, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if stderrors.Is(err, io.EOF) {
			return []dataset.RawObservation{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.SequenceNode {
		var obs []dataset.RawObservation
		if err := root.Decode(&obs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
		return nonNil(obs), nil
	}
	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return nonNil(doc.Observations), nil
}

// ReadTOML decodes [[observations]] tables.
func ReadTOML(r io.Reader) ([]dataset.RawObservation, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	return nonNil(doc.Observations), nil
}

// ReadCSV decodes a CSV table whose header names the category, value and
// user columns. Header matching is case-insensitive.
func ReadCSV(r io.Reader) ([]dataset.RawObservation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []dataset.RawObservation{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv header")
	}

	cols := map[string]int{"category": -1, "value": -1, "user": -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := cols[key]; ok {
			cols[key] = i
		}
	}
	for _, name := range []string{"category", "value", "user"} {
		if cols[name] < 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "csv header missing %q column", name)
		}
	}

	obs := []dataset.RawObservation{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
		}
		o, err := parseRecord(rec, cols)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "csv line %d", line)
		}
		obs = append(obs, o)
	}
	return obs, nil
}

func parseRecord(rec []string, cols map[string]int) (dataset.RawObservation, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(rec) {
			return "", errors.New(errors.ErrCodeInvalidFormat, "missing %s field", name)
		}
		return strings.TrimSpace(rec[i]), nil
	}

	var o dataset.RawObservation
	s, err := field("category")
	if err != nil {
		return o, err
	}
	if o.Category, err = strconv.ParseFloat(s, 64); err != nil {
		return o, errors.Wrap(errors.ErrCodeInvalidFormat, err, "category %q", s)
	}
	if s, err = field("value"); err != nil {
		return o, err
	}
	if o.Value, err = strconv.ParseFloat(s, 64); err != nil {
		return o, errors.Wrap(errors.ErrCodeInvalidFormat, err, "value %q", s)
	}
	if o.User, err = field("user"); err != nil {
		return o, err
	}
	return o, nil
}

// Import reads the dataset file at path, choosing the decoder from its
// extension.
func Import(path string) ([]dataset.RawObservation, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

func nonNil(obs []dataset.RawObservation) []dataset.RawObservation {
	if obs == nil {
		return []dataset.RawObservation{}
	}
	return obs
}
