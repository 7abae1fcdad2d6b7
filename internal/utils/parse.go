package utils

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes a TOML file into target.
func LoadTOMLFile(path string, target any) error {
	if _, err := toml.DecodeFile(path, target); err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	return nil
}

// ParseTOMLWithRecovery decodes path into a generic map. When the whole file
// does not parse, each [section] is decoded on its own and the broken ones are
// dropped. It fails only when nothing could be recovered.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	full := make(map[string]any)
	_, fullErr := toml.Decode(string(data), &full)
	if fullErr == nil {
		return full, nil
	}

	recovered := make(map[string]any)
	for name, body := range splitSections(string(data)) {
		section := make(map[string]any)
		if _, err := toml.Decode(body, &section); err != nil {
			log.Warnf("Dropping section [%s] of %s: %v", name, path, err)
			continue
		}
		if name == "" {
			for k, v := range section {
				recovered[k] = v
			}
			continue
		}
		recovered[name] = section
	}
	if len(recovered) == 0 {
		return nil, errors.Join(errors.New("no valid TOML sections"), fullErr)
	}
	return recovered, nil
}

// splitSections cuts a TOML document at top-level "[name]" headers.
// Keys before the first header are returned under "".
func splitSections(doc string) map[string]string {
	sections := make(map[string]string)
	var name string
	var body strings.Builder

	flush := func() {
		if body.Len() > 0 {
			sections[name] += body.String()
		}
		body.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(doc))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[[") && strings.HasSuffix(trimmed, "]") {
			flush()
			name = strings.TrimSpace(strings.Trim(trimmed, "[]"))
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()
	return sections
}

// ExtractSection returns a named table from decoded TOML data.
func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	section, ok := data[sectionName].(map[string]any)
	return section, ok
}

// ExtractInt reads an integer key; TOML decodes integers as int64.
func ExtractInt(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

func ExtractBool(data map[string]any, key string) (bool, bool) {
	val, ok := data[key].(bool)
	return val, ok
}

func ExtractString(data map[string]any, key string) (string, bool) {
	val, ok := data[key].(string)
	return val, ok
}
