package sigma

// Version is populated at build time via ldflags. In development it defaults
// to v0.0.0-in-progress.
var Version = "v0.0.0-in-progress"

// WireVersion identifies the message encoding produced by this module. It
// changes whenever an encoding or hash domain changes.
const WireVersion = 1

// ModuleVersion returns the semantic version of this module.
func ModuleVersion() string {
	return Version
}
