// Package manifest serializes discovered resources into the file consumed
// by downstream generators.
package manifest

import (
	"bytes"
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/broady/restdata"
	"github.com/broady/restdata/resource"
	"github.com/broady/restdata/sink"
	"github.com/broady/restdata/typeindex"
)

// Format is a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown manifest format %q (want json or yaml)", s)
	}
}

// Filename returns the default file name for the format.
func (f Format) Filename() string {
	return "restdata." + string(f)
}

// Manifest is the serialized result of a discovery run.
type Manifest struct {
	// Feature names the build feature that produced the manifest.
	Feature string `json:"feature" yaml:"feature"`

	// Resources are the discovered descriptors, kind-tagged.
	Resources []resource.Descriptor `json:"resources" yaml:"resources"`

	// Unremovable lists types that dead-code elimination must keep.
	Unremovable []typeindex.TypeRef `json:"unremovable" yaml:"unremovable"`
}

// New returns a manifest for descs and unremovable, in the given order.
// Both slices are copied.
func New(descs []resource.Descriptor, unremovable []typeindex.TypeRef) *Manifest {
	m := &Manifest{
		Feature:     restdata.Feature,
		Resources:   make([]resource.Descriptor, len(descs)),
		Unremovable: make([]typeindex.TypeRef, len(unremovable)),
	}
	copy(m.Resources, descs)
	copy(m.Unremovable, unremovable)
	return m
}

// Encode renders m in format f. The output depends only on m's content.
func (m *Manifest) Encode(f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode manifest: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("encode manifest: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode manifest: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown manifest format %q", f)
	}
}

// Write encodes m and writes it to s under the format's default file name.
// It returns the path written.
func (m *Manifest) Write(ctx context.Context, s sink.OutputSink, f Format) (string, error) {
	data, err := m.Encode(f)
	if err != nil {
		return "", err
	}
	path := f.Filename()
	if err := s.WriteFile(ctx, path, data); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// UnmarshalJSON decodes a JSON manifest, dispatching each resource on its
// kind.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Feature     string              `json:"feature"`
		Resources   []json.RawMessage   `json:"resources"`
		Unremovable []typeindex.TypeRef `json:"unremovable"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	resources := make([]resource.Descriptor, 0, len(raw.Resources))
	for i, r := range raw.Resources {
		d, err := resource.UnmarshalJSON(r)
		if err != nil {
			return fmt.Errorf("resources[%d]: %w", i, err)
		}
		resources = append(resources, d)
	}

	m.Feature = raw.Feature
	m.Resources = resources
	m.Unremovable = append([]typeindex.TypeRef{}, raw.Unremovable...)
	return nil
}

// Decode parses a JSON manifest and checks it: the feature must match and
// every descriptor must be complete.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Feature != restdata.Feature {
		return nil, fmt.Errorf("decode manifest: feature %q, want %q", m.Feature, restdata.Feature)
	}
	for _, d := range m.Resources {
		if err := resource.Validate(d); err != nil {
			return nil, fmt.Errorf("decode manifest: %w", err)
		}
	}
	return &m, nil
}
