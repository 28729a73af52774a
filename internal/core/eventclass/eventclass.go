// Package eventclass derives the event label of an uploaded file from its path
//
// uploads land under <root>/upload/<event>/<file>, so the label is the
// segment directly after the first "upload" segment when that segment is a
// directory and not the file itself
package eventclass

import (
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Default is returned when no event can be derived from a path
const Default = "default"

// Anchor is the directory name the event segment follows
const Anchor = "upload"

// Classify returns the event label for p, never empty
// it is total: malformed input and internal panics yield Default
func Classify(p string) (event string) {
	defer func() {
		if recover() != nil {
			event = Default
		}
	}()

	segs := segments(p)
	for i, s := range segs {
		if s != Anchor {
			continue
		}
		// the event segment must be followed by at least the file name
		if i+2 >= len(segs) || !valid(segs[i+1]) {
			return Default
		}
		return segs[i+1]
	}
	return Default
}

// segments normalizes p and splits it into path segments
func segments(p string) []string {
	p = norm.NFC.String(p)
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.Trim(path.Clean(p), "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}

func valid(seg string) bool {
	return seg != "" && seg != "." && seg != ".."
}
