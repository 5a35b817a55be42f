package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

// Product names the client in User-Agent headers and telemetry.
const Product = "storefront"

// Info describes the running build.
type Info struct {
	Version   string    `json:"version" yaml:"version"`
	GitCommit string    `json:"gitCommit,omitempty" yaml:"gitCommit,omitempty"`
	GitBranch string    `json:"gitBranch,omitempty" yaml:"gitBranch,omitempty"`
	BuildDate time.Time `json:"buildDate" yaml:"buildDate"`
	GoVersion string    `json:"goVersion" yaml:"goVersion"`
	IsRelease bool      `json:"isRelease" yaml:"isRelease"`
	IsDirty   bool      `json:"isDirty" yaml:"isDirty"`
}

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get assembles Info from the link-time variables and embedded VCS data.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildDate = t
	}

	if bi, ok := readBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.modified":
				info.IsDirty = s.Value == "true"
			case "vcs.time":
				if info.BuildDate.IsZero() {
					if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
						info.BuildDate = t
					}
				}
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// Short returns version[-commit][-dirty].
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
	}
	if i.IsDirty {
		s += "-dirty"
	}
	return s
}

// String returns Short plus the branch when it is not a mainline branch
// and the build date when known.
func (i Info) String() string {
	s := i.Short()
	if i.GitBranch != "" && i.GitBranch != "main" && i.GitBranch != "master" {
		s += " (" + i.GitBranch + ")"
	}
	if !i.BuildDate.IsZero() {
		s += fmt.Sprintf(" built %s", i.BuildDate.UTC().Format(time.RFC3339))
	}
	return s
}

// UserAgent returns "storefront/<short version>".
func UserAgent() string {
	return Product + "/" + Get().Short()
}
