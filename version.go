package syncalign

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// libraryVersion is the semantic version reported by Version/BuildInfo.
const libraryVersion = "0.1.0"

// Version returns the library's semantic version string.
func Version() string {
	v, err := goversion.NewVersion(libraryVersion)
	if err != nil {
		return libraryVersion
	}
	return v.String()
}

// BuildInfo returns a short human-readable build identification string.
func BuildInfo() string {
	return fmt.Sprintf("syncalign %s", Version())
}
