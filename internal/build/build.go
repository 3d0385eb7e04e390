package build

import "fmt"

// Set at link time with -ldflags "-X github.com/bornholm/producthub/internal/build.Version=..."
var (
	Version   = "dev"
	GitRef    = "unknown"
	BuildDate = "unknown"
)

var LongVersion = fmt.Sprintf("%s (%s, %s)", Version, GitRef, BuildDate)
