// Package catalog defines the fixed tool categories. The "all" category has
// no static member list; it is resolved dynamically from the package
// manager's group listing.
package catalog

import (
	"fmt"
	"sort"
)

// All is the dynamic category covering the whole tool group.
const All = "all"

// categories maps category names to their curated package sets.
var categories = map[string][]string{
	"information-gathering":  {"nmap", "maltego", "dmitry", "fierce"},
	"vulnerability-analysis": {"nmap", "openvas", "nikto", "sqlmap"},
	"web-applications":       {"burpsuite", "sqlmap", "zaproxy", "wpscan"},
	"exploitation":           {"metasploit", "exploitdb", "social-engineer-toolkit"},
	"password-attacks":       {"john", "hashcat", "hydra", "medusa"},
	"wireless-attacks":       {"aircrack-ng", "wireshark", "reaver"},
	"reverse-engineering":    {"radare2", "ida-free", "ghidra"},
	"forensics":              {"volatility", "autopsy", "binwalk"},
}

// Names returns every category name, "all" first, the rest sorted.
func Names() []string {
	names := make([]string, 0, len(categories)+1)
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{All}, names...)
}

// Lookup returns the static package list for a category. The "all" category
// returns (nil, true): its members come from the package manager.
func Lookup(name string) ([]string, bool) {
	if name == All {
		return nil, true
	}
	pkgs, ok := categories[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(pkgs))
	copy(out, pkgs)
	return out, true
}

// Validate returns an error naming the valid categories when name is unknown.
func Validate(name string) error {
	if _, ok := Lookup(name); !ok {
		return fmt.Errorf("invalid category %q (valid: %v)", name, Names())
	}
	return nil
}
