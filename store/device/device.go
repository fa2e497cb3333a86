// Package device classifies a client's user-agent signature into the coarse
// device classes the order record carries. Pure string matching, no runtime
// probing, so it stays unit-testable.
package device

import "regexp"

type Type string

const (
	Mobile  Type = "Mobile"
	Tablet  Type = "Tablet"
	Desktop Type = "Desktop"
)

var (
	mobileRe = regexp.MustCompile(`Mobile|Android|iP(hone|od)|IEMobile|BlackBerry|Kindle|Silk-Accelerated|(hpw|web)OS|Opera M(obi|ini)`)
	tabletRe = regexp.MustCompile(`Tablet|iPad|PlayBook|Silk|Kindle|Nexus 7|Nexus 10|Xoom|SCH-I800`)
)

// Classify maps a user-agent string to a device class. Phones win over
// tablets when tokens overlap; anything unrecognized counts as Desktop.
func Classify(userAgent string) Type {
	if mobileRe.MatchString(userAgent) {
		return Mobile
	}
	if tabletRe.MatchString(userAgent) {
		return Tablet
	}
	return Desktop
}
