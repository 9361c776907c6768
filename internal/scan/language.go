package scan

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownLanguage indicates a requested language tag has no suffix profile.
var ErrUnknownLanguage = errors.New("unknown language tag")

// LanguageAll expands to the union of every supported language profile.
const LanguageAll = "all"

// languageProfiles maps each supported language tag to its file suffixes.
// Defined once at startup and never mutated. Suffix matching is
// case-sensitive: .C and .c are distinct entries.
var languageProfiles = map[string][]string{
	"c_cpp":      {".c", ".h", ".cpp", ".hpp", ".cxx", ".hxx", ".cc", ".hh", ".C", ".H", ".S", ".s"},
	"python":     {".py", ".pyw", ".pyx", ".pxd", ".pxi"},
	"javascript": {".js", ".jsx", ".mjs", ".cjs"},
	"typescript": {".ts", ".tsx", ".mts", ".cts"},
}

// SupportedLanguages returns the sorted list of recognized language tags,
// not including the "all" pseudo-tag.
func SupportedLanguages() []string {
	tags := make([]string, 0, len(languageProfiles))
	for tag := range languageProfiles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// IsSupportedLanguage reports whether tag names a known language profile
// or the "all" pseudo-tag.
func IsSupportedLanguage(tag string) bool {
	if tag == LanguageAll {
		return true
	}
	_, ok := languageProfiles[tag]
	return ok
}

// SuffixesFor resolves a set of language tags to the union of their file
// suffixes. The "all" tag expands to every supported profile. An
// unrecognized tag returns ErrUnknownLanguage rather than being silently
// dropped.
func SuffixesFor(tags []string) (map[string]struct{}, error) {
	suffixes := make(map[string]struct{})

	for _, tag := range tags {
		if tag == LanguageAll {
			for _, exts := range languageProfiles {
				for _, ext := range exts {
					suffixes[ext] = struct{}{}
				}
			}
			continue
		}

		exts, ok := languageProfiles[tag]
		if !ok {
			return nil, fmt.Errorf("%w: %q (supported: %v, all)", ErrUnknownLanguage, tag, SupportedLanguages())
		}
		for _, ext := range exts {
			suffixes[ext] = struct{}{}
		}
	}

	return suffixes, nil
}
