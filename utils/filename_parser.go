package utils

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var imageExtRegex = regexp.MustCompile(`(?i)\.(png|jpg|jpeg)$`)

// ParseProductCode extracts the product code from an image file name.
// The pattern is CODE.EXT, e.g. "001.png" -> "001".
func ParseProductCode(filename string) (string, error) {
	base := path.Base(strings.TrimSpace(filename))
	if !imageExtRegex.MatchString(base) {
		return "", fmt.Errorf("invalid image file name: %s", filename)
	}

	code := strings.TrimSpace(imageExtRegex.ReplaceAllString(base, ""))
	if code == "" {
		return "", fmt.Errorf("empty product code in file name: %s", filename)
	}
	return code, nil
}
