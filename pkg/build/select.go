// pkg/build/select.go
package build

import (
	"regexp"
	"sort"
	"strings"
)

// SelectArtifact picks the library file to ship out of a backend output
// listing. Preference order:
//
//  1. a versioned name lib<name>.MAJOR.MINOR.PATCH.*
//  2. exactly lib<name>.<ext>
//  3. any name containing lib<name> and ending in .<ext>
//
// Names are examined in sorted order so the choice is deterministic
func SelectArtifact(names []string, library, ext string) (string, bool) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	prefix := "lib" + library
	versioned := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\.\d+\.\d+\.\d+\.`)
	for _, name := range sorted {
		if versioned.MatchString(name) {
			return name, true
		}
	}

	exact := prefix + "." + ext
	for _, name := range sorted {
		if name == exact {
			return name, true
		}
	}

	for _, name := range sorted {
		if strings.Contains(name, prefix) && strings.HasSuffix(name, "."+ext) {
			return name, true
		}
	}

	return "", false
}
