package varmap

import "strings"

// encodeLiteral mirrors the StringLiteral lookup-key rule: newlines are
// stripped and spaces are turned into '_' so that embedded whitespace
// can't be confused with the map file's '.'/'->' path separators while
// we form the lookup key. The actual text substituted into the
// statement still uses the literal's real spelling (see translate.go).
func encodeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	return strings.ReplaceAll(s, " ", "_")
}

// memberSep returns the separator text for a MemberExpr given its
// isArrow flag.
func memberSep(isArrow bool) string {
	if isArrow {
		return "->"
	}
	return "."
}
