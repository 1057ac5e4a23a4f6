// pkg/platform/utils.go
package platform

import (
	"os"
)

// Prober reports whether a filesystem path exists
type Prober interface {
	Exists(path string) bool
}

// OSProber checks paths with os.Stat
type OSProber struct{}

// Exists reports whether path can be stat'ed
func (OSProber) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// contains checks if a string slice contains a value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
