// Command mocforge imports Live2D Cubism models into a project
// workspace, persisting each model as a moc asset and a prefab and
// reconciling user data across reimports.
package main

import (
	"github.com/mocforge/mocforge/cmd/mocforge/cmd"
)

// Build information set by the build system via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
