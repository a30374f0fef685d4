package export

import (
	"regexp"
	"strings"
	"time"
)

var unsafeFilename = regexp.MustCompile(`[<>:"/\\|?*\s-]+`)
var repeatedUnderscore = regexp.MustCompile(`_+`)

// SanitizeFilename reduces a human title to a filesystem-safe stem.
func SanitizeFilename(name string) string {
	out := unsafeFilename.ReplaceAllString(name, "_")
	out = repeatedUnderscore.ReplaceAllString(out, "_")
	out = strings.Trim(out, "_")
	if len(out) > 50 {
		out = out[:50]
	}
	return out
}

// BaseFilename returns the shared stem for a submission's artifacts, for
// example "Survey_Investment_Research_20240131_154500". Append ".pdf" or
// ".csv" for the concrete attachment names.
func BaseFilename(title string, at time.Time) string {
	return "Survey_" + SanitizeFilename(title) + "_" + at.Format("20060102_150405")
}
