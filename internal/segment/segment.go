package segment

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"inkwell/internal/services"
)

// Kind classifies a segment's origin within the source text.
type Kind string

const (
	KindChapter   Kind = "chapter"
	KindInterlude Kind = "interlude"
)

// Segment is the atomic unit of translation work. ID, Title, and Content form
// the interchange contract with every external collaborator; Kind, Number,
// and IsSpecial are derived from the title and re-computed on load.
type Segment struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`

	Kind      Kind `yaml:"-"`
	Number    *int `yaml:"-"`
	IsSpecial bool `yaml:"-"`
}

// LoadFile reads a segment list from a YAML file. Derived fields are
// populated from each title. Duplicate or empty ids violate the uniqueness
// invariant and fail the load.
func LoadFile(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrSourceNotFound, "segments", "load", fmt.Sprintf("segment file %s does not exist", path), err)
		}
		return nil, services.Wrap(services.ErrPersistence, "segments", "load", "read segment file", err)
	}
	segs, err := Decode(data)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "segments", "load", fmt.Sprintf("parse %s", path), err)
	}
	return segs, nil
}

// Decode parses a YAML segment list and validates id uniqueness.
func Decode(data []byte) ([]Segment, error) {
	var segs []Segment
	if err := yaml.Unmarshal(data, &segs); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(segs))
	for i := range segs {
		id := strings.TrimSpace(segs[i].ID)
		if id == "" {
			return nil, fmt.Errorf("segment %d has no id", i+1)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate segment id %q", id)
		}
		seen[id] = struct{}{}
		segs[i].ID = id

		cls := Classify(segs[i].Title)
		segs[i].Kind = cls.Kind
		segs[i].Number = cls.Number
		segs[i].IsSpecial = cls.IsSpecial
	}
	return segs, nil
}

// WriteFile writes a segment list as YAML, the interchange format consumed by
// the translator workflow and the retry selector.
func WriteFile(path string, segs []Segment) error {
	data, err := yaml.Marshal(segs)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "segments", "write", "marshal segments", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return services.Wrap(services.ErrPersistence, "segments", "write", fmt.Sprintf("write %s", path), err)
	}
	return nil
}
