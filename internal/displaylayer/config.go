package displaylayer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/stlalpha/screenlayer/internal/screenline"
)

// Config holds everything the display layer needs from the outside
// world to render screen lines: tab width, substitution glyphs, and
// whether indent guides and automatic wrapping are active.
type Config struct {
	TabLength        int                                     `json:"tabLength"`
	FoldCharacter    string                                  `json:"foldCharacter"`
	Invisibles       screenline.Invisibles                   `json:"invisibles"`
	EOLInvisibles    map[screenline.LineEndingKind]string     `json:"eolInvisibles"`
	ShowIndentGuides bool                                     `json:"showIndentGuides"`
	WrapWidth        int                                      `json:"wrapWidth"` // 0 disables automatic wrapping
}

// DefaultConfig returns the settings a fresh display layer starts with.
func DefaultConfig() Config {
	return Config{
		TabLength:        4,
		FoldCharacter:    "⋯",
		Invisibles:       screenline.Invisibles{Tab: "→", Space: "·"},
		EOLInvisibles:    map[screenline.LineEndingKind]string{},
		ShowIndentGuides: true,
		WrapWidth:        0,
	}
}

// LoadConfig reads a JSON-encoded Config from path, falling back to
// DefaultConfig when the file does not exist.
func LoadConfig(path string) (Config, error) {
	log.Printf("INFO: Loading display layer configuration from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("WARN: %s not found, using default display layer configuration", path)
			return DefaultConfig(), nil
		}
		log.Printf("ERROR: Failed to read display layer config %s: %v", path, err)
		return Config{}, fmt.Errorf("failed to read display layer config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("ERROR: Failed to parse display layer config JSON from %s: %v", path, err)
		return Config{}, fmt.Errorf("failed to parse display layer config JSON from %s: %w", path, err)
	}

	log.Printf("INFO: Successfully loaded display layer configuration from %s", path)
	return cfg, nil
}

// Save writes c as JSON to path.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal display layer config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("ERROR: Failed to write display layer config %s: %v", path, err)
		return fmt.Errorf("failed to write display layer config %s: %w", path, err)
	}
	log.Printf("INFO: Saved display layer configuration to %s", path)
	return nil
}
