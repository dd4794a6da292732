package pdooci

import (
	"strconv"
	"strings"
)

// MarkPrefix prefixes the bind names generated for positional placeholders.
const MarkPrefix = "pdooci_m"

// markName is the generated bind name for the 0-based positional placeholder n.
func markName(n int) string {
	return MarkPrefix + strconv.Itoa(n)
}

func isBindByte(c byte) bool {
	return c == '_' || c == '$' || c == '#' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// commentEnd returns the index just past the `--` or `/* */` comment starting at i, or i
// when no comment starts there. An unterminated comment runs to the end of query.
func commentEnd(query string, i int) int {
	switch {
	case strings.HasPrefix(query[i:], "--"):
		if n := strings.IndexByte(query[i:], '\n'); n >= 0 {
			return i + n + 1
		}
		return len(query)
	case strings.HasPrefix(query[i:], "/*"):
		if n := strings.Index(query[i+2:], "*/"); n >= 0 {
			return i + n + 4
		}
		return len(query)
	}
	return i
}

// InsertMarks replaces the Nth `?` outside single-quoted literals and comments with
// :pdooci_m<N>. A doubled quote inside a literal is an escaped quote and does not end
// it. Queries without positional placeholders are returned unchanged.
func InsertMarks(query string) string {
	if strings.IndexByte(query, '?') < 0 {
		return query
	}

	var (
		b       strings.Builder
		n       int
		literal bool
	)
	b.Grow(len(query) + 16)
	for i := 0; i < len(query); i++ {
		if !literal {
			if end := commentEnd(query, i); end > i {
				b.WriteString(query[i:end])
				i = end - 1
				continue
			}
		}
		c := query[i]
		switch {
		case c == '\'':
			if literal && i+1 < len(query) && query[i+1] == '\'' {
				b.WriteString("''")
				i++
				continue
			}
			literal = !literal
		case c == '?' && !literal:
			b.WriteByte(':')
			b.WriteString(markName(n))
			n++
			continue
		}
		b.WriteByte(c)
	}

	if n == 0 {
		return query
	}
	return b.String()
}

// markerNames lists the named bind markers of query, without their colon, in order of
// first appearance. Literals and comments are skipped. Names compare case-insensitively;
// `::` and `:=` are not markers.
func markerNames(query string) []string {
	var (
		names   []string
		seen    = map[string]bool{}
		literal bool
	)
	for i := 0; i < len(query); i++ {
		if !literal {
			if end := commentEnd(query, i); end > i {
				i = end - 1
				continue
			}
		}
		c := query[i]
		switch {
		case c == '\'':
			literal = !literal
		case c == ':' && !literal:
			if i > 0 && query[i-1] == ':' {
				continue
			}
			j := i + 1
			for j < len(query) && isBindByte(query[j]) {
				j++
			}
			if j == i+1 {
				continue
			}
			name := query[i+1 : j]
			if key := strings.ToUpper(name); !seen[key] {
				seen[key] = true
				names = append(names, name)
			}
			i = j - 1
		}
	}
	return names
}
