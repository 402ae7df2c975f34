package scenario

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/louisbranch/stalinopoly/internal/game/rules"
)

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

// parseRules reads the inline TOML overrides of a scenario.
func parseRules(source string) (rules.Rules, error) {
	if strings.TrimSpace(source) == "" {
		return rules.Default(), nil
	}
	parsed, err := rules.Parse(source)
	if err != nil {
		return rules.Rules{}, fmt.Errorf("scenario rules: %w", err)
	}
	return parsed, nil
}

// scenarioGameID derives a stable game id from the scenario name.
func scenarioGameID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "scenario"
	}
	return "scenario-" + slug
}

func describe(step Step) string {
	if step.Kind == "op" {
		return "op " + requiredString(step.Args, "name")
	}
	return step.Kind
}

// requiredString returns the string at key, or "" when absent.
func requiredString(args map[string]any, key string) string {
	value, ok := args[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func optionalString(args map[string]any, key, fallback string) string {
	if value := requiredString(args, key); value != "" {
		return value
	}
	return fallback
}

func readInt(args map[string]any, key string) (int, bool) {
	switch value := args[key].(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	default:
		return 0, false
	}
}

func optionalInt(args map[string]any, key string, fallback int) int {
	if value, ok := readInt(args, key); ok {
		return value
	}
	return fallback
}

func readBool(args map[string]any, key string) (bool, bool) {
	value, ok := args[key].(bool)
	return value, ok
}

func optionalBool(args map[string]any, key string, fallback bool) bool {
	if value, ok := readBool(args, key); ok {
		return value
	}
	return fallback
}

func readIntSlice(args map[string]any, key string) []int {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	values := make([]int, 0, len(raw))
	for _, item := range raw {
		switch value := item.(type) {
		case int:
			values = append(values, value)
		case int64:
			values = append(values, int(value))
		case float64:
			values = append(values, int(value))
		}
	}
	return values
}

func readStringSlice(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values
}
