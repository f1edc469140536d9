package version

import (
	"fmt"

	"github.com/mosaicnetworks/hepmc/src/ascii"
)

// Flag contains extra info about the version. It is helpul for tracking
// versions while developing. It should always be empty on the master branch.
const Flag = ""

var (
	// Version is the full version string
	Version = "0.1.0"

	// GitCommit is set with --ldflags "-X main.gitCommit=$(git rev-parse HEAD)"
	GitCommit string
)

func init() {
	if Flag != "" {
		Version += "-" + Flag
	}

	if len(GitCommit) >= 8 {
		Version += "-" + GitCommit[:8]
	}
}

// Banner returns the version line printed by the command line tools,
// including the listing version they read and write.
func Banner() string {
	return fmt.Sprintf("hepmc %s (%s)", Version, ascii.Version)
}
