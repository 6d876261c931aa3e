// internal/i18n/i18n.go
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const defaultLang = "fr"

// catalog holds the loaded translations. All reads go through T; a nil
// catalog degrades to returning the key untranslated.
type catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
}

var (
	instance *catalog
	once     sync.Once
)

// Initialize loads every *.json catalog under internal/i18n/locales.
// The file name (without extension) is the language code.
func Initialize() error {
	var err error
	once.Do(func() {
		instance = &catalog{translations: make(map[string]map[string]string)}
		err = instance.load("./internal/i18n/locales")
	})
	return err
}

func (c *catalog) load(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read locales directory %s: %w", dir, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", name, err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to parse locale file %s: %w", name, err)
		}

		c.translations[strings.TrimSuffix(name, ".json")] = translations
	}

	if _, ok := c.translations[defaultLang]; !ok {
		return fmt.Errorf("default locale %q missing from %s", defaultLang, dir)
	}

	return nil
}

func (c *catalog) lookup(lang, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if text, ok := c.translations[lang][key]; ok {
		return text, true
	}
	if lang != defaultLang {
		if text, ok := c.translations[defaultLang][key]; ok {
			return text, true
		}
	}
	return "", false
}

// T translates key for lang, falling back to French, then to the raw
// key. Args are applied with Sprintf when present.
func T(lang, key string, args ...interface{}) string {
	if instance == nil {
		return key
	}

	text, ok := instance.lookup(lang, key)
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

func GetSupportedLanguages() []string {
	if instance == nil {
		return []string{defaultLang}
	}

	instance.mu.RLock()
	defer instance.mu.RUnlock()

	langs := make([]string, 0, len(instance.translations))
	for lang := range instance.translations {
		langs = append(langs, lang)
	}
	return langs
}
