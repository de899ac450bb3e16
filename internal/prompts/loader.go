// Package prompts loads the LLM prompt templates embedded in the binary.
// Each JSON file maps prompt keys to template text with {{.Placeholder}} markers.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prompt by filename and key, e.g. Get("voice.json", "analyze-samples").
func Get(filename, key string) (string, error) {
	set, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// Format substitutes {{.Key}} placeholders. Unknown placeholders are left intact.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// ClearCache drops parsed files. Tests use it to force a reload.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	set, ok := cache[filename]
	cacheMu.RUnlock()
	if ok {
		return set, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = set
	cacheMu.Unlock()
	return set, nil
}
