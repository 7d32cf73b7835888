package platform

import "strings"

// Wheel event names.
const (
	EventMouseWheel     = "mousewheel"
	EventDOMMouseScroll = "DOMMouseScroll"
	EventWheel          = "wheel"
)

// Browser describes one detectable browser.
type Browser struct {
	// ID is the stable lowercase identifier used in configuration.
	ID string

	// Name is the token searched for in the user agent.
	Name string

	// Vendor is the navigator vendor string, empty if the browser is
	// matched by user agent.
	Vendor string

	// VendorPrefix is the CSS/DOM vendor prefix.
	VendorPrefix string

	// WheelEvent is the native wheel event name.
	WheelEvent string
}

var browsers = []Browser{
	{ID: "chrome", Name: "Chrome", Vendor: "Google Inc.", VendorPrefix: "webkit", WheelEvent: EventMouseWheel},
	{ID: "firefox", Name: "Firefox", VendorPrefix: "moz", WheelEvent: EventDOMMouseScroll},
	{ID: "ie", Name: "MSIE", VendorPrefix: "ms", WheelEvent: EventWheel},
	{ID: "opera", Name: "OPR", Vendor: "Opera Software ASA", VendorPrefix: "o", WheelEvent: EventMouseWheel},
	{ID: "safari", Name: "Safari", Vendor: "Apple Computer, Inc.", VendorPrefix: "webkit", WheelEvent: EventMouseWheel},
}

// Fallback is the browser assumed when nothing matches.
func Fallback() Browser {
	return browsers[0]
}

// Browsers returns the detection table in matching order.
func Browsers() []Browser {
	out := make([]Browser, len(browsers))
	copy(out, browsers)
	return out
}

// ByID returns the browser with the given identifier (case-insensitive).
func ByID(id string) (Browser, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, b := range browsers {
		if b.ID == id {
			return b, true
		}
	}
	return Browser{}, false
}

// Detect identifies the browser from its user agent and navigator vendor.
func Detect(userAgent, vendor string) Browser {
	for _, b := range browsers {
		if b.matches(userAgent, vendor) {
			return b
		}
	}
	return Fallback()
}

func (b Browser) matches(userAgent, vendor string) bool {
	if b.Vendor != "" {
		return b.Vendor == vendor
	}
	return strings.Contains(userAgent, b.Name)
}

// WheelEventName returns the wheel event name of the detected browser.
func WheelEventName(userAgent, vendor string) string {
	return Detect(userAgent, vendor).WheelEvent
}
