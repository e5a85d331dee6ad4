package lingocache

// Version information. GitCommit and BuildDate can be overridden at build
// time with ldflags.
var (
	Name      = "lingocache"
	Version   = "0.3.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
