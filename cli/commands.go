package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Expand ExpandCmd `cmd:"" default:"withargs" help:"Expand a macro input file."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging macro input files."`
	Watch  WatchCmd  `cmd:"" help:"Watch a macro input file and re-expand on change."`
}
