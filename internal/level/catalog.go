package level

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/creatorlimen/wordnaija/internal/model"
)

//go:embed levels.toml
var embeddedLevels []byte

// ErrLevelNotFound is returned for unknown level IDs.
var ErrLevelNotFound = errors.New("level not found")

// Definition is a configured level before generation.
type Definition struct {
	ID         int              `toml:"id" yaml:"id"`
	Title      string           `toml:"title" yaml:"title"`
	Difficulty string           `toml:"difficulty" yaml:"difficulty"`
	ExtraWords bool             `toml:"extra_words" yaml:"extra_words"`
	Letters    string           `toml:"letters" yaml:"letters"`
	Words      []model.WordSpec `toml:"words" yaml:"words"`
}

// Meta returns the assembly metadata for the definition.
func (d Definition) Meta() Meta {
	var letters []rune
	if s := strings.ToUpper(strings.TrimSpace(d.Letters)); s != "" {
		letters = []rune(s)
	}
	return Meta{
		ID:                d.ID,
		Title:             d.Title,
		Difficulty:        d.Difficulty,
		ExtraWordsAllowed: d.ExtraWords,
		Letters:           letters,
	}
}

type catalogFile struct {
	Levels []Definition `toml:"level" yaml:"levels"`
}

// Catalog is the level source used by sessions and the validator.
type Catalog struct {
	defs []Definition
	byID map[int]int
}

// DefaultCatalog returns the catalog bundled with the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(embeddedLevels, "toml")
}

// LoadCatalog reads a TOML or YAML catalog, chosen by file extension.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels: %w", err)
	}
	format := "toml"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	return ParseCatalog(data, format)
}

// ParseCatalog decodes catalog data in the given format ("toml" or "yaml").
func ParseCatalog(data []byte, format string) (*Catalog, error) {
	var file catalogFile
	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("failed to decode levels: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to decode levels: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	return NewCatalog(file.Levels)
}

// NewCatalog builds a catalog from definitions, ordered by ID.
func NewCatalog(defs []Definition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("catalog has no levels")
	}
	sorted := make([]Definition, len(defs))
	copy(sorted, defs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int]int, len(sorted))
	for i, def := range sorted {
		if def.ID <= 0 {
			return nil, fmt.Errorf("level id must be > 0, got %d", def.ID)
		}
		if _, ok := byID[def.ID]; ok {
			return nil, fmt.Errorf("duplicate level id %d", def.ID)
		}
		if len(def.Words) == 0 {
			return nil, fmt.Errorf("level %d has no words", def.ID)
		}
		byID[def.ID] = i
	}
	return &Catalog{defs: sorted, byID: byID}, nil
}

// LoadLevel generates and validates the level with the given ID.
func (c *Catalog) LoadLevel(id int) (*model.Level, error) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrLevelNotFound, id)
	}
	return Build(c.defs[idx])
}

// TotalLevels returns the number of configured levels.
func (c *Catalog) TotalLevels() int {
	return len(c.defs)
}

// Definitions returns a copy of the configured levels in ID order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// FirstID returns the lowest level ID.
func (c *Catalog) FirstID() int {
	return c.defs[0].ID
}

// NextID returns the level following id, if any.
func (c *Catalog) NextID(id int) (int, bool) {
	for _, def := range c.defs {
		if def.ID > id {
			return def.ID, true
		}
	}
	return 0, false
}

// Words returns every target word in the catalog, upper-cased.
func (c *Catalog) Words() []string {
	var out []string
	for _, def := range c.defs {
		for _, w := range def.Words {
			out = append(out, strings.ToUpper(strings.TrimSpace(w.Word)))
		}
	}
	return out
}
