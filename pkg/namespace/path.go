package namespace

import "strings"

// ParentPath returns the parent path of p: the prefix up to the last '/'
// that is not the trailing character. A trailing slash is ignored when
// locating that separator. If the separator found is the root separator
// at index 0, the parent is "/".
func ParentPath(p string) string {
	trimmed := strings.TrimSuffix(p, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return "/"
	}
	if idx == 0 {
		return "/"
	}
	return trimmed[:idx]
}

// BaseName returns the trailing path component of p: the characters after
// the last '/' that is not the last character.
func BaseName(p string) string {
	trimmed := strings.TrimSuffix(p, "/")
	idx := strings.LastIndex(trimmed, "/")
	return trimmed[idx+1:]
}
