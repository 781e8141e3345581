package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths used by blackutility.
// Everything lives under fixed well-known locations; BLACKUTILITY_HOME
// relocates the whole tree, which is what the tests rely on.
type Paths struct {
	Home     string // base directory ("" means the fixed system paths below)
	VarLib   string // /var/lib/blackutility
	LogDir   string // /var/log

	// Key files
	Lock     string // /var/lock/blackutility.lock
	Log      string // /var/log/blackutility.log
	Capture  string // /var/log/blackutility-pkg.log
	Report   string // /var/log/blackutility-report.json
	State    string // /var/lib/blackutility/state.json
	WorkList string // /var/tmp/blackutility-worklist.txt
}

// ResolvePaths returns all paths, honoring the BLACKUTILITY_HOME override.
// With no override the fixed system locations of the installer are used.
func ResolvePaths() Paths {
	home := os.Getenv("BLACKUTILITY_HOME")
	if home == "" {
		return Paths{
			VarLib:   "/var/lib/blackutility",
			LogDir:   "/var/log",
			Lock:     "/var/lock/blackutility.lock",
			Log:      "/var/log/blackutility.log",
			Capture:  "/var/log/blackutility-pkg.log",
			Report:   "/var/log/blackutility-report.json",
			State:    "/var/lib/blackutility/state.json",
			WorkList: "/var/tmp/blackutility-worklist.txt",
		}
	}

	p := Paths{
		Home:   home,
		VarLib: filepath.Join(home, "lib"),
		LogDir: filepath.Join(home, "log"),
	}
	p.Lock = filepath.Join(home, "blackutility.lock")
	p.Log = filepath.Join(p.LogDir, "blackutility.log")
	p.Capture = filepath.Join(p.LogDir, "blackutility-pkg.log")
	p.Report = filepath.Join(p.LogDir, "blackutility-report.json")
	p.State = filepath.Join(p.VarLib, "state.json")
	p.WorkList = filepath.Join(home, "blackutility-worklist.txt")
	return p
}

// GetPaths is a convenience function that returns singleton paths
var cachedPaths *Paths

func GetPaths() Paths {
	if cachedPaths == nil {
		paths := ResolvePaths()
		cachedPaths = &paths
	}
	return *cachedPaths
}
