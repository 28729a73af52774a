// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service" example:"solna-api"`
	Version string `json:"version" example:"v0.1.0"`
	Commit  string `json:"commit"  example:"abcd123"`
	Date    string `json:"date"    example:"2026-10-01"`
}

// Info returns the build information
// version, commit and date are set at build time through -ldflags, e.g.
// -X 'solna/internal/core/version.version=v0.1.0' -X 'solna/internal/core/version.commit=abcd'
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// Short renders the build for a single log field
func Short() string {
	if commit == "none" || commit == "" {
		return version
	}
	c := commit
	if len(c) > 7 {
		c = c[:7]
	}
	return version + "+" + c
}

var (
	service = "solna-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
