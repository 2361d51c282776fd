package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// coverNames lists common artwork filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindArt looks for artwork next to a local audio file. Remote and
// placeholder locators have none.
func FindArt(locator string) string {
	path, ok := strings.CutPrefix(locator, "file://")
	if !ok && (locator == "" || strings.Contains(locator, "://") || strings.HasPrefix(locator, "placeholder:")) {
		return ""
	}
	dir := filepath.Dir(path)
	for _, name := range coverNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
