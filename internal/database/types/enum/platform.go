package enum

// Platform identifies a supported social-media platform.
//
//go:generate go tool enumer -type=Platform -trimprefix=Platform -transform=lower -text
type Platform int

const (
	// PlatformYouTube is accessed through the official Data API with metered quota.
	PlatformYouTube Platform = iota
	// PlatformTikTok has no usable comment API; scanning and actions run
	// through the browser agent.
	PlatformTikTok
	// PlatformInstagram is agent-assisted like TikTok.
	PlatformInstagram
)

// Metered reports whether calls to this platform consume API quota.
func (p Platform) Metered() bool {
	return p == PlatformYouTube
}
