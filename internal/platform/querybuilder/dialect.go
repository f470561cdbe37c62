package querybuilder

import "strings"

// Dialect selects the placeholder style of the target database.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Rebind rewrites the "$N" placeholders produced by the builders into the
// style of d. Builders number arguments in order, so "?" keeps positions.
// Quoted literals are left untouched.
func Rebind(d Dialect, query string) string {
	if d != DialectSQLite || !strings.Contains(query, "$") {
		return query
	}

	var out strings.Builder
	out.Grow(len(query))
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '\'' {
			inQuote = !inQuote
			out.WriteByte(c)
			continue
		}
		if !inQuote && c == '$' && i+1 < len(query) && isDigit(query[i+1]) {
			out.WriteByte('?')
			for i+1 < len(query) && isDigit(query[i+1]) {
				i++
			}
			continue
		}
		out.WriteByte(c)
	}
	return out.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
