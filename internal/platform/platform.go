package platform

import (
	"runtime"
	"sort"
	"strings"
)

// IsMac reports whether we run on macOS (darwin).
func IsMac() bool {
	return runtime.GOOS == "darwin"
}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"cmd":     "ctrl", // terminals deliver command as ctrl
	"command": "ctrl",
	"⌘":       "ctrl",
	"alt":     "alt",
	"option":  "alt",
	"opt":     "alt",
	"⌥":       "alt",
	"meta":    "alt",
	"shift":   "shift",
	"⇧":       "shift",
}

var modifierOrder = map[string]int{"ctrl": 0, "alt": 1, "shift": 2}

var mainAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdown",
	"del":      "delete",
	" ":        "space",
}

// CanonicalKey normalizes a key description into the form bubbletea reports from
// KeyMsg.String(): lower-case, modifiers ordered ctrl, alt, shift, aliases folded.
// "Cmd+S", "control+s" and "ctrl+S" all become "ctrl+s".
func CanonicalKey(key string) string {
	if key == " " {
		return " "
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	var mods []string
	var main string
	for _, part := range strings.Split(key, "+") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		if m, ok := modifierAliases[p]; ok {
			mods = appendUnique(mods, m)
			continue
		}
		if alias, ok := mainAliases[p]; ok {
			p = alias
		}
		main = p
	}
	sort.SliceStable(mods, func(i, j int) bool {
		return modifierOrder[mods[i]] < modifierOrder[mods[j]]
	})
	if main == "" {
		return strings.Join(mods, "+")
	}
	if main == "space" && len(mods) == 0 {
		return " "
	}
	return strings.Join(append(mods, main), "+")
}

// MatchesKey reports whether two key descriptions name the same key.
func MatchesKey(actual, binding string) bool {
	return CanonicalKey(actual) == CanonicalKey(binding)
}

// DisplayKey formats a key for hints: "ctrl+s" -> "Ctrl+S", alt shown as Option on macOS.
func DisplayKey(key string) string {
	canonical := CanonicalKey(key)
	if canonical == "" {
		return ""
	}
	if canonical == " " {
		return "Space"
	}
	parts := strings.Split(canonical, "+")
	for i, p := range parts {
		switch p {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			if IsMac() {
				parts[i] = "Option"
			} else {
				parts[i] = "Alt"
			}
		case "shift":
			parts[i] = "Shift"
		default:
			if len([]rune(p)) == 1 {
				parts[i] = strings.ToUpper(p)
			} else {
				parts[i] = strings.ToUpper(p[:1]) + p[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
