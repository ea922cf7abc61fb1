// Package enrichment derives coarse device and traffic-source dimensions
// from request metadata at ingestion time.
package enrichment

import (
	ua "github.com/mileusna/useragent"
)

// DeviceDetector classifies User-Agent strings into device types.
type DeviceDetector struct{}

func NewDeviceDetector() *DeviceDetector {
	return &DeviceDetector{}
}

// DetectDevice returns "Desktop", "Mobile", "Tablet", "Bot", or "Unknown".
// Clicks from bots are recorded but tagged so the dashboard can exclude them.
func (d *DeviceDetector) DetectDevice(userAgent string) string {
	if userAgent == "" {
		return "Unknown"
	}

	parsed := ua.Parse(userAgent)

	if parsed.Bot {
		return "Bot"
	}
	if parsed.Tablet {
		return "Tablet"
	}
	if parsed.Mobile {
		return "Mobile"
	}
	if parsed.Desktop {
		return "Desktop"
	}
	return "Unknown"
}
