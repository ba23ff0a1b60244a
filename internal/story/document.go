package story

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Document is the plain key/value form of a StoryConfig, used both for the optional input file
// and for the metadata written next to the chapters.
type Document struct {
	Title                 string           `json:"title"`
	Logline               string           `json:"logline"`
	Genre                 string           `json:"genre"`
	Theme                 string           `json:"theme"`
	POV                   string           `json:"pov"`
	Tone                  string           `json:"tone"`
	ChapterCount          int              `json:"chapter_count"`
	TargetWordsPerChapter int              `json:"target_words_per_chapter"`
	WorldRules            []string         `json:"world_rules"`
	Characters            []string         `json:"characters"`
	WriterDirectives      WriterDirectives `json:"writer_directives"`
	ExtraInstructions     *string          `json:"extra_instructions"`

	// Outline is only read on input, so a written metadata file can be loaded again.
	Outline []string `json:"outline,omitempty"`
}

// Metadata is the document written after a run: the config plus the final outline.
type Metadata struct {
	Document
	Outline []string `json:"outline"`
}

// Document converts the config to its serializable form.
func (c StoryConfig) Document() Document {
	doc := Document{
		Title:                 c.Title,
		Logline:               c.Logline,
		Genre:                 c.Genre,
		Theme:                 c.Theme,
		POV:                   c.POV,
		Tone:                  c.Tone,
		ChapterCount:          c.ChapterCount,
		TargetWordsPerChapter: c.TargetWordsPerChapter,
		WorldRules:            nonNil(c.WorldRules),
		Characters:            nonNil(c.Characters),
		WriterDirectives:      c.WriterDirectives,
	}
	if c.ExtraInstructions != "" {
		extra := c.ExtraInstructions
		doc.ExtraInstructions = &extra
	}
	return doc
}

// MarshalJSON encodes the config using its Document form.
func (c StoryConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Document())
}

// StoryConfig converts the document back into a config. It does not validate.
func (d Document) StoryConfig() StoryConfig {
	cfg := StoryConfig{
		Title:                 d.Title,
		Logline:               d.Logline,
		Genre:                 d.Genre,
		Theme:                 d.Theme,
		POV:                   d.POV,
		Tone:                  d.Tone,
		ChapterCount:          d.ChapterCount,
		TargetWordsPerChapter: d.TargetWordsPerChapter,
		WorldRules:            nonNil(d.WorldRules),
		Characters:            nonNil(d.Characters),
		WriterDirectives:      d.WriterDirectives,
	}
	if d.ExtraInstructions != nil {
		cfg.ExtraInstructions = *d.ExtraInstructions
	}
	return cfg
}

// ParseConfig decodes a JSON document over the defaults. Missing keys keep their default values
// and writer_directives keys are merged over the default directives. The returned outline is
// non-nil only when the document carries one (a previously written metadata file).
func ParseConfig(data []byte) (StoryConfig, []string, error) {
	doc := DefaultStoryConfig().Document()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return StoryConfig{}, nil, decodeError(err)
	}
	if dec.More() {
		return StoryConfig{}, nil, fmt.Errorf("%w: trailing data after config object", ErrInvalidConfig)
	}

	cfg := doc.StoryConfig()
	if err := cfg.Validate(); err != nil {
		return StoryConfig{}, nil, err
	}
	return cfg, doc.Outline, nil
}

// LoadConfig reads and parses a JSON config file.
func LoadConfig(path string) (StoryConfig, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StoryConfig{}, nil, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
	}
	return ParseConfig(data)
}

// EncodeMetadata writes the config and outline as indented JSON. Non-ASCII text is kept as is.
func EncodeMetadata(w io.Writer, cfg StoryConfig, outline []string) error {
	meta := Metadata{
		Document: cfg.Document(),
		Outline:  nonNil(outline),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(meta)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf("%w: field %q expects %s, got JSON %s", ErrInvalidConfig, typeErr.Field, typeErr.Type, typeErr.Value)
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty document", ErrInvalidConfig)
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
