// Package platform maps a browser identity to the native name of its
// wheel event.
//
// Browsers deliver wheel input under different event names: "mousewheel"
// on WebKit and Blink, "DOMMouseScroll" on older Gecko and "wheel" on
// browsers that implement the standard WheelEvent. The wheel adapter
// registers its listener under the name returned by WheelEventName.
//
// Detection walks a fixed table in order. An entry with a vendor matches
// when the navigator vendor is equal to it; an entry without one matches
// when its name occurs in the user agent. Chrome is the fallback.
package platform
