package ai

import "regexp"

var (
	fenceOpen  = regexp.MustCompile("(?m)^```html\\s*")
	fenceClose = regexp.MustCompile("(?m)```\\s*$")
	emoji      = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2702}-\x{27B0}\x{24C2}-\x{1F251}]+`)
)

// CleanFeedback strips markdown fences and emoji from model output.
func CleanFeedback(s string) string {
	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceClose.ReplaceAllString(s, "")
	return emoji.ReplaceAllString(s, "")
}
