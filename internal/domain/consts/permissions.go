package consts

// Recommended permissions for the files and directories vidpick might create.
const (
	// ** World Readable **
	// Thumbnail output - world readable
	PermsThumbsDir = 0o755
	PermsThumbFile = 0o644

	// Other files
	PermsLogFile = 0o644

	// ** Private **
	// Session state is owner only, folder names can reveal habits
	PermsHomeProgDir = 0o750
	PermsStateFile   = 0o600
)
