package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source locates a credential such as the Gemini api key. File takes
// precedence over Value when both are set, so a mounted secret file always
// wins over an inline config value.
type Source struct {
	// Name gives error messages context about which credential failed.
	Name string
	// Value is an inline value from configuration or flags.
	Value string
	// File points to a file containing the value.
	File string
}

// Load resolves the credential described by src. The result is always
// trimmed, and an empty result is an error so callers never hand a blank
// credential to a collaborator.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		value := strings.TrimSpace(string(data))
		if value == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return value, nil
	}

	value := strings.TrimSpace(src.Value)
	if value == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return value, nil
}
