package build

import "fmt"

// Overridden at build time via -ldflags.
var (
	ShortVersion = "devel"
	GitRef       = "unknown"
)

var LongVersion = fmt.Sprintf("%s (%s)", ShortVersion, GitRef)
