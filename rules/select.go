package rules

import (
	"slices"
	"strings"

	"github.com/erraggy/oascompat/oaserrors"
)

// SelectRules picks rules from registry by code. An empty include selects
// every registered rule; codes in exclude are dropped even when included.
// Unknown codes in either list are reported as an oaserrors.ConfigError.
// The result is sorted by code and free of duplicates.
func SelectRules(registry *Registry, include, exclude []string) ([]Rule, error) {
	if err := checkCodes(registry, "rules", include); err != nil {
		return nil, err
	}
	if err := checkCodes(registry, "blacklist-rules", exclude); err != nil {
		return nil, err
	}

	codes := include
	if len(codes) == 0 {
		codes = registry.Codes()
	}
	codes = slices.Clone(codes)
	slices.Sort(codes)
	codes = slices.Compact(codes)

	out := make([]Rule, 0, len(codes))
	for _, code := range codes {
		if slices.Contains(exclude, code) {
			continue
		}
		rule, _ := registry.Rule(code)
		out = append(out, rule)
	}
	return out, nil
}

func checkCodes(registry *Registry, option string, codes []string) error {
	var unknown []string
	for _, code := range codes {
		if !registry.Has(code) {
			unknown = append(unknown, code)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return &oaserrors.ConfigError{
		Option:  option,
		Value:   strings.Join(unknown, ","),
		Message: "unknown rule code, expected one of " + strings.Join(registry.Codes(), ", "),
	}
}

func sortedByCode(rules []Rule) []Rule {
	out := slices.Clone(rules)
	slices.SortStableFunc(out, func(a, b Rule) int {
		return strings.Compare(a.Info().Code, b.Info().Code)
	})
	return out
}
