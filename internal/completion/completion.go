// Package completion suggests filesystem paths for partially typed input.
package completion

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Paths returns the entries that complete partial, sorted. Directory
// candidates end with a path separator. A leading "~" and $VARS are expanded
// before lookup; candidates are returned in the expanded form.
func Paths(partial string) []string {
	text := expand(partial)

	dir, prefix := ".", text
	if strings.ContainsRune(text, filepath.Separator) {
		dir, prefix = filepath.Split(text)
		if dir == "" {
			dir = "."
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		// Hidden entries only show when asked for.
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		candidate := name
		if dir != "." {
			candidate = joinKeep(dir, name)
		}
		if isDir(filepath.Join(dir, name), entry) {
			candidate += string(filepath.Separator)
		}
		out = append(out, candidate)
	}
	slices.Sort(out)
	return out
}

// Complete extends the last whitespace-separated word of line. With a single
// candidate the word is replaced outright; with several it grows to their
// longest common prefix. The bool is false when nothing changed.
func Complete(line string) (string, bool) {
	start := strings.LastIndexAny(line, " \t") + 1
	word := line[start:]
	candidates := Paths(word)
	if len(candidates) == 0 {
		return line, false
	}
	next := candidates[0]
	if len(candidates) > 1 {
		next = CommonPrefix(candidates)
	}
	if next == "" || next == word || len(next) < len(expand(word)) {
		return line, false
	}
	return line[:start] + next, true
}

// CommonPrefix returns the longest prefix shared by every value.
func CommonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}

// Expand applies the "~" and $VAR expansion used for lookups.
func Expand(value string) string {
	return expand(value)
}

func expand(value string) string {
	value = os.ExpandEnv(value)
	if value == "~" || strings.HasPrefix(value, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			value = home + value[1:]
		}
	}
	return value
}

// joinKeep joins dir and name without cleaning away a "./" prefix the user
// typed.
func joinKeep(dir, name string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
