// Package sqlgate decides whether model-produced text may be executed as a
// database query. It is a text-pattern policy, deliberately not a SQL parser:
// it may reject unusual but legal SELECT forms, and must never approve
// anything that is not a single read-only SELECT against the flights table.
package sqlgate

import (
	"regexp"
	"strings"
)

// Rejection explains why a candidate was not approved. It is a normal result,
// not an error: the orchestrator turns it into a clarification request.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return r.Reason
}

var bannedKeywords = []string{
	"DROP", "DELETE", "UPDATE", "INSERT", "CREATE", "ALTER",
	"TRUNCATE", "GRANT", "EXECUTE", "UNION",
}

var fromFlightsRe = regexp.MustCompile(`(?i)\bFROM\s+FLIGHTS\b`)

// LooksLikeQuery reports whether text is query-intent: trimmed, it begins with
// SELECT in any casing. This is the classification step; Validate is the
// safety step.
func LooksLikeQuery(text string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(text)), "SELECT")
}

// Validate runs the ordered allow-list checks over a candidate query and
// returns the sanitized query text on approval. Validating an approved query
// again approves it unchanged.
func Validate(text string) (string, *Rejection) {
	normalized := strings.TrimSpace(text)

	if !LooksLikeQuery(normalized) {
		return "", &Rejection{Reason: "not a query: must start with SELECT"}
	}

	if !fromFlightsRe.MatchString(normalized) {
		return "", &Rejection{Reason: "query must select from the flights table"}
	}

	// A semicolon is only allowed as the very last character.
	if i := strings.IndexByte(normalized, ';'); i != -1 && i != len(normalized)-1 {
		return "", &Rejection{Reason: "multiple SQL statements are not allowed"}
	}

	upper := strings.ToUpper(normalized)
	for _, kw := range bannedKeywords {
		if strings.Contains(upper, kw) {
			return "", &Rejection{Reason: "query contains disallowed keyword: " + kw}
		}
	}

	return strings.TrimSuffix(normalized, ";"), nil
}
