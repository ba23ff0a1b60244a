package story

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultStoryConfig_Valid(t *testing.T) {
	cfg := DefaultStoryConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.ChapterCount != 6 {
		t.Errorf("expected 6 chapters, got %d", cfg.ChapterCount)
	}
	if cfg.WriterDirectives != DefaultWriterDirectives() {
		t.Error("default config should carry default directives")
	}
}

func TestDefaultStoryConfig_Text(t *testing.T) {
	cfg := DefaultStoryConfig()

	if cfg.Logline != "A relentless, high-energy narrative built for long-form improvisation." {
		t.Errorf("unexpected default logline %q", cfg.Logline)
	}
	wantRules := []string{"Technology and myth collide", "Every victory is paid for in full"}
	if len(cfg.WorldRules) != len(wantRules) {
		t.Fatalf("expected %d world rules, got %v", len(wantRules), cfg.WorldRules)
	}
	for i, rule := range wantRules {
		if cfg.WorldRules[i] != rule {
			t.Errorf("world rule %d = %q, want %q", i, cfg.WorldRules[i], rule)
		}
	}
	if cfg.Title != "Untitled Novel" || cfg.Tone != "Cinematic, maximalist, and fearless" {
		t.Errorf("unexpected title/tone %q / %q", cfg.Title, cfg.Tone)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StoryConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *StoryConfig) {}},
		{name: "zero chapters", mutate: func(c *StoryConfig) { c.ChapterCount = 0 }, wantErr: true},
		{name: "negative chapters", mutate: func(c *StoryConfig) { c.ChapterCount = -2 }, wantErr: true},
		{name: "zero words", mutate: func(c *StoryConfig) { c.TargetWordsPerChapter = 0 }, wantErr: true},
		{name: "one chapter", mutate: func(c *StoryConfig) { c.ChapterCount = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultStoryConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseConfig_MissingKeysKeepDefaults(t *testing.T) {
	cfg, outline, err := ParseConfig([]byte(`{"title": "Glass Harbor", "chapter_count": 3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outline != nil {
		t.Errorf("expected no outline, got %v", outline)
	}

	defaults := DefaultStoryConfig()
	if cfg.Title != "Glass Harbor" {
		t.Errorf("expected title Glass Harbor, got %s", cfg.Title)
	}
	if cfg.ChapterCount != 3 {
		t.Errorf("expected 3 chapters, got %d", cfg.ChapterCount)
	}
	if cfg.Genre != defaults.Genre {
		t.Errorf("expected default genre, got %s", cfg.Genre)
	}
	if len(cfg.Characters) != len(defaults.Characters) {
		t.Errorf("expected default characters, got %v", cfg.Characters)
	}
	if cfg.WriterDirectives != defaults.WriterDirectives {
		t.Error("expected default directives")
	}
	if cfg.ExtraInstructions != "" {
		t.Errorf("expected no extra instructions, got %q", cfg.ExtraInstructions)
	}
}

func TestParseConfig_WriterDirectives(t *testing.T) {
	defaults := DefaultWriterDirectives()

	tests := []struct {
		name string
		doc  string
		want WriterDirectives
	}{
		{name: "absent", doc: `{}`, want: defaults},
		{name: "null", doc: `{"writer_directives": null}`, want: defaults},
		{name: "empty object", doc: `{"writer_directives": {}}`, want: defaults},
		{
			name: "partial merge",
			doc:  `{"writer_directives": {"voice": "Clipped and wry."}}`,
			want: WriterDirectives{
				Style:      defaults.Style,
				Boundaries: defaults.Boundaries,
				Voice:      "Clipped and wry.",
				Continuity: defaults.Continuity,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _, err := ParseConfig([]byte(tt.doc))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.WriterDirectives != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, cfg.WriterDirectives)
			}
		})
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "string chapter count", doc: `{"chapter_count": "six"}`},
		{name: "fractional chapter count", doc: `{"chapter_count": 2.5}`},
		{name: "rules not a list", doc: `{"world_rules": "magic is real"}`},
		{name: "directives not an object", doc: `{"writer_directives": "be bold"}`},
		{name: "unknown key", doc: `{"subtitle": "A Tale"}`},
		{name: "unknown directive key", doc: `{"writer_directives": {"mood": "grim"}}`},
		{name: "zero chapters", doc: `{"chapter_count": 0}`},
		{name: "negative words", doc: `{"target_words_per_chapter": -10}`},
		{name: "not an object", doc: `["title"]`},
		{name: "malformed", doc: `{"title": `},
		{name: "empty", doc: ``},
		{name: "trailing data", doc: `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseConfig([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParseConfig_NullListsBecomeEmpty(t *testing.T) {
	cfg, _, err := ParseConfig([]byte(`{"world_rules": null, "characters": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorldRules == nil || len(cfg.WorldRules) != 0 {
		t.Errorf("expected empty world rules, got %#v", cfg.WorldRules)
	}
	if len(cfg.Characters) != 0 {
		t.Errorf("expected empty characters, got %v", cfg.Characters)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.json")
	doc := `{
  "title": "Saltwind",
  "chapter_count": 2,
  "extra_instructions": "End every chapter at sea."
}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Title != "Saltwind" || cfg.ChapterCount != 2 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.ExtraInstructions != "End every chapter at sea." {
		t.Errorf("unexpected extra instructions: %q", cfg.ExtraInstructions)
	}

	_, _, err = LoadConfig(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for missing file, got %v", err)
	}
}

func TestEncodeMetadata_RoundTrip(t *testing.T) {
	cfg := DefaultStoryConfig()
	cfg.Title = "Café Noir — Part One"
	cfg.ChapterCount = 2
	outline := []string{"Open in the rain.", "Close on a vow."}

	var buf bytes.Buffer
	if err := EncodeMetadata(&buf, cfg, outline); err != nil {
		t.Fatalf("encode: %v", err)
	}

	text := buf.String()
	if !strings.Contains(text, "Café Noir — Part One") {
		t.Error("non-ASCII title should be written unescaped")
	}
	if !strings.Contains(text, "\n  \"title\"") {
		t.Error("metadata should be indented with two spaces")
	}
	if !strings.Contains(text, `"extra_instructions": null`) {
		t.Error("missing extra instructions should be written as null")
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	for _, key := range []string{
		"title", "logline", "genre", "theme", "pov", "tone", "chapter_count",
		"target_words_per_chapter", "world_rules", "characters", "writer_directives",
		"extra_instructions", "outline",
	} {
		if _, ok := raw[key]; !ok {
			t.Errorf("metadata missing key %q", key)
		}
	}

	loaded, loadedOutline, err := ParseConfig(buf.Bytes())
	if err != nil {
		t.Fatalf("metadata should load as config: %v", err)
	}
	if loaded.Title != cfg.Title || loaded.ChapterCount != 2 {
		t.Errorf("unexpected reloaded config: %+v", loaded)
	}
	if len(loadedOutline) != 2 || loadedOutline[1] != "Close on a vow." {
		t.Errorf("unexpected reloaded outline: %v", loadedOutline)
	}
}

func TestEncodeMetadata_EmptyOutline(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeMetadata(&buf, DefaultStoryConfig(), nil); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"outline": []`) {
		t.Errorf("expected empty outline array, got %s", buf.String())
	}
}

func TestMarshalJSON_UsesSnakeCase(t *testing.T) {
	cfg := DefaultStoryConfig()
	cfg.ExtraInstructions = "Keep it tight."

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"target_words_per_chapter":900`) {
		t.Errorf("expected snake_case keys, got %s", text)
	}
	if !strings.Contains(text, `"extra_instructions":"Keep it tight."`) {
		t.Errorf("expected extra instructions, got %s", text)
	}
	if strings.Contains(text, `"outline"`) {
		t.Error("config alone should not carry an outline")
	}
}
