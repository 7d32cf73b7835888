package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	uaChrome  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaFirefox = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	uaIE      = "Mozilla/4.0 (compatible; MSIE 8.0; Windows NT 6.1; Trident/4.0)"
	uaOpera   = "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/38.0 Safari/537.36 OPR/25.0"
	uaSafari  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_9_5) AppleWebKit/600.1.17 (KHTML, like Gecko) Version/7.1 Safari/537.85.10"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		vendor    string
		wantID    string
		wantEvent string
	}{
		{"chrome", uaChrome, "Google Inc.", "chrome", EventMouseWheel},
		{"firefox", uaFirefox, "", "firefox", EventDOMMouseScroll},
		{"ie", uaIE, "", "ie", EventWheel},
		{"opera", uaOpera, "Opera Software ASA", "opera", EventMouseWheel},
		{"safari", uaSafari, "Apple Computer, Inc.", "safari", EventMouseWheel},
		{"unknown falls back to chrome", "curl/8.0", "", "chrome", EventMouseWheel},
		{"empty", "", "", "chrome", EventMouseWheel},
		// Vendor entries never look at the user agent.
		{"safari token without vendor", uaSafari, "", "chrome", EventMouseWheel},
		// Table order: a vendor match on chrome wins over the firefox token.
		{"vendor before user agent", uaFirefox, "Google Inc.", "chrome", EventMouseWheel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Detect(tt.userAgent, tt.vendor)
			assert.Equal(t, tt.wantID, b.ID)
			assert.Equal(t, tt.wantEvent, WheelEventName(tt.userAgent, tt.vendor))
		})
	}
}

func TestByID(t *testing.T) {
	b, ok := ByID(" Firefox ")
	require.True(t, ok)
	assert.Equal(t, "moz", b.VendorPrefix)
	assert.Equal(t, EventDOMMouseScroll, b.WheelEvent)

	_, ok = ByID("netscape")
	assert.False(t, ok)
}

func TestBrowsers_ReturnsCopy(t *testing.T) {
	list := Browsers()
	require.Len(t, list, 5)
	assert.Equal(t, "chrome", list[0].ID)

	list[0].WheelEvent = "changed"
	assert.Equal(t, EventMouseWheel, Fallback().WheelEvent)
}
