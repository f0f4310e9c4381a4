// Package xmlfield reads typed values from the children of an XML element.
// Missing or malformed children never fail: they read as zero or empty,
// since PBX exports are often filtered subsets of the full schema.
package xmlfield

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Text returns the trimmed text of the direct child tag, or "".
func Text(el *etree.Element, tag string) string {
	if el == nil {
		return ""
	}
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// Has reports whether the direct child tag exists.
func Has(el *etree.Element, tag string) bool {
	return el != nil && el.SelectElement(tag) != nil
}

// Int parses the child as a base-10 integer.
func Int(el *etree.Element, tag string) int {
	n, _ := ParseInt(Text(el, tag))
	return n
}

// Float parses the child as a float. NaN and infinities read as 0.
func Float(el *etree.Element, tag string) float64 {
	s := Text(el, tag)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// DurationSeconds parses HH:MM:SS, MM:SS or plain seconds.
func DurationSeconds(el *etree.Element, tag string) int {
	return ParseDuration(Text(el, tag))
}

// ParseInt is strconv.Atoi on trimmed input, reporting success.
func ParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseDuration converts a duration string to seconds, 0 when unparseable.
func ParseDuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !strings.Contains(s, ":") {
		n, _ := ParseInt(s)
		return n
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0
	}
	vals := make([]int, len(parts))
	for i, p := range parts {
		n, ok := ParseInt(p)
		if !ok {
			return 0
		}
		vals[i] = n
	}
	if len(vals) == 3 {
		return vals[0]*3600 + vals[1]*60 + vals[2]
	}
	return vals[0]*60 + vals[1]
}
