package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NextAvailableName returns base if it is free, otherwise name_1.ext, name_2.ext, ...
func NextAvailableName(existing map[string]struct{}, base string) string {
	if _, taken := existing[base]; !taken {
		return base
	}

	ext := filepath.Ext(base)
	if ext == base {
		ext = "" // ".hidden" не считаем расширением
	}
	stem := strings.TrimSuffix(base, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}

// cleanName strips any client-side directories from an uploaded filename.
func cleanName(filename string) string {
	name := strings.ReplaceAll(filename, `\`, "/")
	name = filepath.Base(filepath.FromSlash(name))
	switch name {
	case ".", "..", string(filepath.Separator):
		return ""
	}
	return strings.TrimSpace(name)
}

// safeName reports whether a requested filename stays inside its directory.
func safeName(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	if strings.ContainsAny(filename, `/\`) || strings.ContainsRune(filename, 0) {
		return false
	}
	return filepath.Base(filename) == filename
}

var extensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".ogg":  {},
	".webm": {},
}

func isAudio(name string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
