package resource

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// JSON and YAML encodings include a "kind" field for type discrimination.

// MarshalJSON implements json.Marshaler for EntityAccess.
func (d *EntityAccess) MarshalJSON() ([]byte, error) {
	type Alias EntityAccess
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		*Alias
	}{
		Kind:  KindEntityAccess.String(),
		Alias: (*Alias)(d),
	})
}

// MarshalJSON implements json.Marshaler for RepositoryAccess.
func (d *RepositoryAccess) MarshalJSON() ([]byte, error) {
	type Alias RepositoryAccess
	return json.Marshal(&struct {
		Kind string `json:"kind"`
		*Alias
	}{
		Kind:  KindRepositoryAccess.String(),
		Alias: (*Alias)(d),
	})
}

// MarshalYAML implements yaml.Marshaler for EntityAccess.
func (d *EntityAccess) MarshalYAML() (any, error) {
	type Alias EntityAccess
	return &struct {
		Kind  string `yaml:"kind"`
		Alias `yaml:",inline"`
	}{
		Kind:  KindEntityAccess.String(),
		Alias: Alias(*d),
	}, nil
}

// MarshalYAML implements yaml.Marshaler for RepositoryAccess.
func (d *RepositoryAccess) MarshalYAML() (any, error) {
	type Alias RepositoryAccess
	return &struct {
		Kind  string `yaml:"kind"`
		Alias `yaml:",inline"`
	}{
		Kind:  KindRepositoryAccess.String(),
		Alias: Alias(*d),
	}, nil
}

// UnmarshalJSON decodes a kind-tagged descriptor.
func UnmarshalJSON(data []byte) (Descriptor, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var d Descriptor
	switch head.Kind {
	case KindEntityAccess.String():
		d = &EntityAccess{}
	case KindRepositoryAccess.String():
		d = &RepositoryAccess{}
	default:
		return nil, fmt.Errorf("unknown descriptor kind %q", head.Kind)
	}

	// Decode through a method-less alias so the "kind" field is ignored.
	switch d := d.(type) {
	case *EntityAccess:
		type Alias EntityAccess
		if err := json.Unmarshal(data, (*Alias)(d)); err != nil {
			return nil, err
		}
	case *RepositoryAccess:
		type Alias RepositoryAccess
		if err := json.Unmarshal(data, (*Alias)(d)); err != nil {
			return nil, err
		}
	}
	return d, nil
}
