package shared

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

var dotenvLoadOnce sync.Once

// loadDotEnvIfPresent loads the first .env file found walking up from the
// working directory.
func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		current, err := os.Getwd()
		if err != nil {
			return
		}
		for {
			candidate := filepath.Join(current, ".env")
			if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
				loadDotEnvFile(candidate)
				return
			}
			parent := filepath.Dir(current)
			if parent == current {
				return
			}
			current = parent
		}
	})
}

// loadDotEnvFile sets the variables declared in path that are not already
// set. It reports whether any variable was set.
func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseDotEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}
		if os.Setenv(key, value) == nil {
			loadedAny = true
		}
	}
	return loadedAny
}

func parseDotEnvLine(raw string) (string, string, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if !isValidEnvKey(key) {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		quote := value[0]
		if (quote == '"' || quote == '\'') && value[len(value)-1] == quote {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		switch {
		case character == '_',
			character >= 'A' && character <= 'Z',
			character >= 'a' && character <= 'z':
		case index > 0 && character >= '0' && character <= '9':
		default:
			return false
		}
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

func envFloat(key string) (float64, bool, error) {
	raw := firstNonEmptyEnv(key)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	return value, true, err
}

func envInt(key string) (int, bool, error) {
	raw := firstNonEmptyEnv(key)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	return value, true, err
}
