package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// LoadFromFile loads and validates a dataset from a JSON file.
func LoadFromFile(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %q: %w", path, err)
	}

	var d Dataset
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("dataset: parse %q: %w", path, err)
	}
	if err := Validate(&d); err != nil {
		return nil, fmt.Errorf("dataset: validate %q: %w", path, err)
	}

	return &d, nil
}

// Validate checks a dataset for consistency.
func Validate(d *Dataset) error {
	if d == nil {
		return fmt.Errorf("nil dataset")
	}
	if len(d.TestCases) == 0 {
		return fmt.Errorf("no test cases")
	}

	seenIDs := make(map[string]struct{}, len(d.TestCases))
	for i, tc := range d.TestCases {
		id := strings.TrimSpace(tc.ID)
		if id == "" {
			return fmt.Errorf("test_cases[%d]: missing id", i)
		}
		if _, ok := seenIDs[id]; ok {
			return fmt.Errorf("test_cases[%d] (%s): duplicate id", i, id)
		}
		seenIDs[id] = struct{}{}

		if strings.TrimSpace(tc.Category) == "" {
			return fmt.Errorf("test_cases[%d] (%s): missing category", i, id)
		}
	}
	return nil
}

// Filter returns the cases whose category is in the given set. Category
// matching is exact and case-sensitive. An empty set selects all cases.
func Filter(cases []TestCase, categories []string) []TestCase {
	if len(categories) == 0 {
		return cases
	}

	want := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		want[c] = struct{}{}
	}

	out := make([]TestCase, 0, len(cases))
	for _, tc := range cases {
		if _, ok := want[tc.Category]; ok {
			out = append(out, tc)
		}
	}
	return out
}

// Categories returns the distinct category labels with their case counts,
// sorted lexicographically.
func Categories(cases []TestCase) ([]string, map[string]int) {
	counts := make(map[string]int)
	for _, tc := range cases {
		counts[tc.Category]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, counts
}

// ParseCategoryFilter splits a comma-separated category list, trimming
// whitespace and dropping empty entries.
func ParseCategoryFilter(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
