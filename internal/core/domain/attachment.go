package domain

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// Image files live in a flat directory and are named
// img_<timestamp>_<random><ext>. The random suffix avoids collisions
// for images attached within the same second; the repository still
// verifies uniqueness with an exclusive create and regenerates on a
// clash.

var (
	imageNamePattern = regexp.MustCompile(`^img_\d{8}_\d{6}_\d{4}\.[a-z0-9]+$`)
	imageExtPattern  = regexp.MustCompile(`^\.[a-z0-9]+$`)
)

// GenerateImageName produces a candidate filename for a new attachment.
func GenerateImageName(ext string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("img_%s_%04d%s", timestamp, rand.Intn(10000), NormalizeImageExt(ext))
}

// IsImageName reports whether a filename was produced by
// GenerateImageName. The orphan sweep only ever touches such files.
func IsImageName(name string) bool {
	return imageNamePattern.MatchString(name)
}

// NormalizeImageExt lowercases an extension and ensures a leading dot.
// Unknown or empty extensions fall back to .png so a generated name is
// always well-formed.
func NormalizeImageExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ".png"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if !imageExtPattern.MatchString(ext) {
		return ".png"
	}
	return ext
}
