// Package browser implements Chromium-family profile discovery,
// bookmarks extraction, and lock-avoiding history extraction.
package browser

import (
	"os"
	"path/filepath"
	"runtime"
)

// Profile identifies one detected browser profile directory.
type Profile struct {
	Browser string // "chrome", "edge", "brave", "chromium"
	Path    string // profile directory containing Bookmarks/History
}

// candidatePaths returns the well-known per-user "Default" profile
// directory for each Chromium-family browser this package knows about,
// keyed by browser name, for the current OS.
func candidatePaths() map[string]string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Local")
		}
		return map[string]string{
			"chrome": filepath.Join(appData, "Google", "Chrome", "User Data", "Default"),
			"edge":   filepath.Join(appData, "Microsoft", "Edge", "User Data", "Default"),
			"brave":  filepath.Join(appData, "BraveSoftware", "Brave-Browser", "User Data", "Default"),
		}
	case "darwin":
		support := filepath.Join(home, "Library", "Application Support")
		return map[string]string{
			"chrome": filepath.Join(support, "Google", "Chrome", "Default"),
			"edge":   filepath.Join(support, "Microsoft Edge", "Default"),
			"brave":  filepath.Join(support, "BraveSoftware", "Brave-Browser", "Default"),
		}
	default: // linux and other unix-likes
		cfg := os.Getenv("XDG_CONFIG_HOME")
		if cfg == "" {
			cfg = filepath.Join(home, ".config")
		}
		return map[string]string{
			"chrome":   filepath.Join(cfg, "google-chrome", "Default"),
			"edge":     filepath.Join(cfg, "microsoft-edge", "Default"),
			"brave":    filepath.Join(cfg, "BraveSoftware", "Brave-Browser", "Default"),
			"chromium": filepath.Join(cfg, "chromium", "Default"),
		}
	}
}

// DetectProfiles probes well-known per-user profile paths and returns one
// Profile per browser whose directory exists. Detection never fails the
// caller: an inaccessible or absent path is simply not reported.
func DetectProfiles() []Profile {
	var out []Profile
	for name, path := range candidatePaths() {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			out = append(out, Profile{Browser: name, Path: path})
		}
	}
	return out
}

// Status reports the set of detected browsers.
func Status() []string {
	profiles := DetectProfiles()
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Browser)
	}
	return out
}
