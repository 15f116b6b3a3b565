// internal/ua/ua.go
//
// User-Agent parsing helpers.
//
// This wrapper isolates `github.com/avct/uasurfer` so the rest of the
// codebase never sees its enums.  Parsed results are memoised in a small
// LRU because a practice site sees the same handful of browsers all day.
package ua

import (
	"fmt"
	"strconv"

	surfer "github.com/avct/uasurfer"

	"github.com/yanizio/lumina/internal/cache"
)

// Info carries the UA attributes used by request logging and templates.
//
// Example (Chrome on macOS):
//
//	Browser   "BrowserChrome"
//	Version   "125.0.6422"
//	OS        "OSMacOSX"
//	Device    "Desktop"
//	IsBot     false
//
// Device is one of "Desktop", "Mobile", "Tablet", or "Other".
type Info struct {
	Browser   string
	Version   string
	OS        string
	OSVersion string
	Device    string
	Platform  string
	IsBot     bool
	Raw       string
}

// Mobile reports whether the booking widgets should use the compact layout.
func (i Info) Mobile() bool { return i.Device == "Mobile" || i.Device == "Tablet" }

var parsed = cache.New[string, Info](2048)

// Parse converts a raw header into an Info struct.
func Parse(raw string) Info {
	if info, ok := parsed.Get(raw); ok {
		return info
	}

	u := surfer.Parse(raw)
	info := Info{
		Browser:   u.Browser.Name.String(),
		Version:   versionToString(u.Browser.Version),
		OS:        u.OS.Name.String(),
		OSVersion: versionToString(u.OS.Version),
		Platform:  u.OS.Platform.String(),
		IsBot:     u.IsBot(),
		Raw:       raw,
	}
	switch u.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}

	parsed.Add(raw, info)
	return info
}

// versionToString renders 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func versionToString(v surfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor != 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}
