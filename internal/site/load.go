package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Bitlatte/sitenav/internal/model"
)

// Format is a serialization of the site configuration.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatTS is a renderer config module; it can be written but not loaded.
	FormatTS Format = "ts"
)

// ParseFormat accepts a format name as given on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "ts", "mts":
		return FormatTS, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml or ts)", name)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot tell the format of %s: no file extension", path)
	}
	return ParseFormat(ext)
}

// Load reads, decodes and validates the site configuration in filename.
func Load(filename string) (*model.Site, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading site config %s: %w", filename, err)
	}
	s, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("error loading site config %s: %w", filename, err)
	}
	return s, nil
}

// Decode parses one document and validates it. Unknown keys are rejected so
// the key names and nesting depth stay exactly what the renderer expects.
func Decode(r io.Reader, format Format) (*model.Site, error) {
	var s model.Site
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, shapeError(err)
		}
		if dec.More() {
			return nil, &model.ConfigurationError{Path: "$", Reason: "unexpected data after the configuration object"}
		}
		// encoding/json matches keys case-insensitively; the renderer does not.
		var tree any
		if err := json.Unmarshal(raw, &tree); err != nil {
			return nil, shapeError(err)
		}
		if err := errors.Join(checkKeys("", tree, reflect.TypeOf(s))...); err != nil {
			return nil, err
		}
		strict := json.NewDecoder(bytes.NewReader(raw))
		strict.DisallowUnknownFields()
		if err := strict.Decode(&s); err != nil {
			return nil, shapeError(err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, shapeError(err)
		}
		var extra yaml.Node
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return nil, &model.ConfigurationError{Path: "$", Reason: "unexpected document after the configuration"}
		}
	default:
		return nil, fmt.Errorf("format %q cannot be decoded", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	// Clone fills missing sections so they serialize as [] rather than null.
	return s.Clone(), nil
}

// checkKeys compares the keys of a decoded JSON tree with the json tags of t.
// Type mismatches are left to the struct decoder.
func checkKeys(path string, v any, t reflect.Type) []error {
	var errs []error
	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		fields := make(map[string]reflect.Type, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
				fields[name] = f.Type
			}
		}
		label, _ := obj["text"].(string)
		at := path
		if at == "" {
			at = "$"
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, key := range keys {
			ft, ok := fields[key]
			if !ok {
				reason := "unknown key"
				for name := range fields {
					if strings.EqualFold(name, key) {
						reason = fmt.Sprintf("unknown key (did you mean %q?)", name)
					}
				}
				errs = append(errs, &model.ConfigurationError{Path: at, Label: label, Field: key, Reason: reason})
				continue
			}
			child := key
			if path != "" {
				child = path + "." + key
			}
			errs = append(errs, checkKeys(child, obj[key], ft)...)
		}
	case reflect.Slice:
		arr, ok := v.([]any)
		if !ok {
			return nil
		}
		for i, e := range arr {
			errs = append(errs, checkKeys(fmt.Sprintf("%s[%d]", path, i), e, t.Elem())...)
		}
	}
	return errs
}

func shapeError(err error) error {
	if errors.Is(err, io.EOF) {
		return &model.ConfigurationError{Path: "$", Reason: "empty document"}
	}

	var jsonType *json.UnmarshalTypeError
	if errors.As(err, &jsonType) {
		path := "$"
		if jsonType.Field != "" {
			path = jsonType.Field
		}
		return &model.ConfigurationError{
			Path:   path,
			Reason: fmt.Sprintf("expected %s, got %s", jsonType.Type, jsonType.Value),
		}
	}

	var yamlType *yaml.TypeError
	if errors.As(err, &yamlType) {
		errs := make([]error, len(yamlType.Errors))
		for i, msg := range yamlType.Errors {
			ce := &model.ConfigurationError{Path: "$", Reason: msg}
			// yaml.v3 prefixes each message with "line N: "
			if at, reason, ok := strings.Cut(msg, ": "); ok && strings.HasPrefix(at, "line ") {
				ce.Path, ce.Reason = at, reason
			}
			errs[i] = ce
		}
		return errors.Join(errs...)
	}

	return &model.ConfigurationError{Path: "$", Reason: err.Error()}
}
