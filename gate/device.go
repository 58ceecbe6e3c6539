package gate

import (
	"strings"

	"github.com/mssola/useragent"
)

// DeviceType is a coarse classification of the client.
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceBot     DeviceType = "bot"
)

// ClassifyDevice derives a device class from a User-Agent header.
func ClassifyDevice(userAgent string) DeviceType {
	if userAgent == "" {
		return DeviceDesktop
	}
	ua := useragent.New(userAgent)
	switch {
	case ua.Bot():
		return DeviceBot
	case isTablet(ua, userAgent):
		return DeviceTablet
	case ua.Mobile() || strings.Contains(userAgent, "Mobi"):
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

func isTablet(ua *useragent.UserAgent, raw string) bool {
	if ua.Platform() == "iPad" {
		return true
	}
	// Android tablets omit the "Mobile" token.
	return strings.Contains(raw, "Android") && !strings.Contains(raw, "Mobile")
}
