package version

// These variables are overridden at build time using -ldflags. The defaults
// identify a local development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
)
