package config

import (
	"fmt"
	"maps"
	"slices"

	"gopkg.in/ini.v1"
)

// Registry maps branch codes to display names. The interactive fan-out
// queries every branch in it; the watch list is independent of it.
type Registry map[string]string

// Branch codes as the catalog API knows the Bucheon municipal libraries.
var bucheonBranches = Registry{
	"141321": "상동도서관",
	"141535": "원미도서관",
	"141043": "심곡도서관",
	"141056": "북부도서관",
	"141065": "꿈빛도서관",
	"141115": "책마루도서관",
	"141151": "한울빛도서관",
	"141248": "꿈여울도서관",
	"141559": "송내도서관",
	"141584": "오정도서관",
	"141583": "도당도서관",
	"141315": "동화도서관",
	"141603": "역곡도서관",
	"141652": "별빛마루도서관",
	"141651": "수주도서관",
	"141660": "역곡밝은도서관",
}

// Default branch for newly added watch entries.
const (
	DefaultLibCode = "141652"
	DefaultLibName = "별빛마루도서관"
)

// DefaultRegistry returns a copy of the built-in Bucheon branch registry.
func DefaultRegistry() Registry {
	return maps.Clone(bucheonBranches)
}

// LoadRegistry replaces the built-in registry from an ini file with a
// [libraries] section of code = name pairs, for deployments outside
// Bucheon.
func LoadRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load registry %s: %w", path, err)
	}

	keys := cfg.Section("libraries").Keys()
	if len(keys) == 0 {
		return nil, fmt.Errorf("registry %s has no [libraries] entries", path)
	}

	r := make(Registry, len(keys))
	for _, k := range keys {
		r[k.Name()] = k.String()
	}
	return r, nil
}

// SortedCodes returns the branch codes in stable order, so fan-out replies
// don't reshuffle between invocations.
func (r Registry) SortedCodes() []string {
	codes := make([]string, 0, len(r))
	for k := range r {
		codes = append(codes, k)
	}
	slices.Sort(codes)
	return codes
}
