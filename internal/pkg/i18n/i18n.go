package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
)

type Translations map[string]string

//go:embed locales
var embedded embed.FS

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
)

// LoadDefaults registers the locales bundled with the binary.
func LoadDefaults() error {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return err
	}
	return LoadFS(sub)
}

// LoadTranslations merges <localePath>/<locale>/messages.yaml over what is
// already loaded, so a deployment can override individual labels.
func LoadTranslations(localePath string) error {
	return LoadFS(os.DirFS(localePath))
}

func LoadFS(fsys fs.FS) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			locale := entry.Name()
			filePath := path.Join(locale, "messages.yaml")

			data, err := fs.ReadFile(fsys, filePath)
			if err != nil {
				continue
			}

			var config struct {
				Messages Translations `yaml:"MESSAGES"`
			}

			if err := yaml.Unmarshal(data, &config); err != nil {
				return fmt.Errorf("failed to parse %s: %w", filePath, err)
			}

			trans, ok := locales[locale]
			if !ok {
				trans = make(Translations, len(config.Messages))
				locales[locale] = trans
			}
			for key, val := range config.Messages {
				trans[key] = val
			}
		}
	}

	return nil
}

func Translate(locale, key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != "en" {
		if trans, ok := locales["en"]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}
