package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted after flags and before the config file.
const (
	EnvLevelsFile     = "WORDNAIJA_LEVELS_FILE"
	EnvDictionaryFile = "WORDNAIJA_DICTIONARY_FILE"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing files
// are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnv overlays environment values onto the file config. Values already
// present in the environment win over the file.
func ApplyEnv(cfg *FileConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLevelsFile)); v != "" {
		cfg.Game.Levels = &v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDictionaryFile)); v != "" {
		cfg.Game.Dictionary = &v
	}
}

// Template returns the commented default config file.
func Template() string {
	return `# wordnaija configuration
# Uncomment a value to enable it. CLI flags and environment variables override config values.

[game]
# levels = "/path/to/levels.toml"     # Level catalog (TOML or YAML); default: bundled levels
# dictionary = "/path/to/words.txt"   # Word list (WORD or WORD,meaning per line); default: bundled list
# start-level = 1                     # Level to open on start; default: first unfinished level
# auto-submit = false                 # Submit as soon as the selection spells an unsolved target word
# sound = true                        # Persisted sound preference
`
}
