package cudb

var (
	// Version of cudb, set during the build.
	Version = "v0.1.0"
	// Build is a timestamp of the build.
	Build = "n/a"
)
