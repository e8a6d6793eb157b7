// internal/pkg/search/search.go
package search

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var termPattern = regexp.MustCompile(`"([^"]+)"|(\S+)`)

// Terms splits a keyword string into search terms. Words wrapped in double
// quotes are kept together as a single term.
func Terms(keyword string) []string {
	var terms []string
	for _, match := range termPattern.FindAllStringSubmatch(keyword, -1) {
		term := match[1]
		if term == "" {
			term = match[2]
		}
		term = strings.TrimSpace(term)
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// Apply narrows a query by a keyword over the given columns: every term must
// match at least one column, case-insensitive substring match.
func Apply(query *gorm.DB, keyword string, columns ...string) *gorm.DB {
	for _, term := range Terms(keyword) {
		pattern := "%" + strings.ToLower(term) + "%"

		var clauses []string
		var args []interface{}
		for _, column := range columns {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}

		query = query.Where(strings.Join(clauses, " OR "), args...)
	}
	return query
}
