// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PARSER
// ═══════════════════════════════════════════════════════════════════════════════
// Parses one raw query line into a Query: either a free-text query (plain
// whitespace-separated terms) or a boolean/phrase query (clauses joined by
// the literal operator AND, each clause a bare term or a double-quoted
// phrase).
//
// VALIDATION RULES (each violation is a ParseError):
//  1. Single quotes (') are rejected outright.
//  2. The number of " characters must be even.
//  3. AND must appear strictly between clauses: never at the start or end,
//     never as an entire clause by itself, never inside an unquoted clause.
//  4. A bare (unquoted) clause may contain only one word.
//  5. Quotes must wrap a clause entirely, both ends — no partial/asymmetric
//     quoting.
//
// The scanner below is quote-aware: it lexes the line into WORD and QUOTED
// tokens first (so "AND" appearing inside a quoted phrase is never mistaken
// for the boolean operator), then groups those tokens into clauses on bare
// AND tokens, and finally validates each group's shape.
// ═══════════════════════════════════════════════════════════════════════════════

package caseindex

import "strings"

// andOperator is the literal boolean-query clause separator.
const andOperator = "AND"

// Query is the parsed form of one query line.
type Query struct {
	// Boolean is true when the line contained AND or quotes (the
	// boolean/phrase path); false for a plain free-text query.
	Boolean bool
	// FreeText holds, for a free-text query, every stemmed token in order;
	// for a boolean query, the stemmed terms of its bare (unquoted)
	// clauses, in the order they appeared.
	FreeText []string
	// Phrases holds, for a boolean query, the space-joined stemmed words
	// of each quoted clause, in the order they appeared. Always empty for
	// a free-text query.
	Phrases []string
}

// Clauses returns every boolean-query clause (bare terms and phrases alike)
// as a single ordered slice of space-joined stemmed strings, ready to be
// handed to BooleanModel.Retrieve.
func (q Query) Clauses() []string {
	clauses := make([]string, 0, len(q.FreeText)+len(q.Phrases))
	clauses = append(clauses, q.FreeText...)
	clauses = append(clauses, q.Phrases...)
	return clauses
}

// lexToken is one token produced by scanning a query line: either a bare
// word or a quoted run (quotes stripped).
type lexToken struct {
	text   string
	quoted bool
}

// ParseQuery validates and parses line, using stem to casefold/stem every
// bare term and every word of every phrase.
func ParseQuery(line string, stem func(string) string) (Query, error) {
	if strings.ContainsRune(line, '\'') {
		return Query{}, &ParseError{Msg: "single quotes are not allowed in a query"}
	}
	if strings.Count(line, "\"")%2 != 0 {
		return Query{}, &ParseError{Msg: "unbalanced double quotes in query"}
	}

	tokens, err := lexQueryLine(line)
	if err != nil {
		return Query{}, err
	}

	if !containsAND(tokens) && !anyQuoted(tokens) {
		return parseFreeText(tokens, stem), nil
	}
	return parseBoolean(tokens, stem)
}

func containsAND(tokens []lexToken) bool {
	for _, t := range tokens {
		if !t.quoted && t.text == andOperator {
			return true
		}
	}
	return false
}

func anyQuoted(tokens []lexToken) bool {
	for _, t := range tokens {
		if t.quoted {
			return true
		}
	}
	return false
}

func parseFreeText(tokens []lexToken, stem func(string) string) Query {
	q := Query{}
	for _, t := range tokens {
		q.FreeText = append(q.FreeText, stem(t.text))
	}
	return q
}

// parseBoolean groups tokens on bare AND tokens into clauses and validates
// each clause's shape.
func parseBoolean(tokens []lexToken, stem func(string) string) (Query, error) {
	var groups [][]lexToken
	var current []lexToken
	for _, t := range tokens {
		if !t.quoted && t.text == andOperator {
			groups = append(groups, current)
			current = nil
			continue
		}
		current = append(current, t)
	}
	groups = append(groups, current)

	q := Query{Boolean: true}
	for _, group := range groups {
		if len(group) == 0 {
			return Query{}, &ParseError{Msg: "AND must appear strictly between clauses"}
		}
		if len(group) == 1 && group[0].quoted {
			words := strings.Fields(group[0].text)
			stemmed := make([]string, len(words))
			for i, w := range words {
				stemmed[i] = stem(w)
			}
			q.Phrases = append(q.Phrases, strings.Join(stemmed, " "))
			continue
		}
		if len(group) == 1 && !group[0].quoted {
			q.FreeText = append(q.FreeText, stem(group[0].text))
			continue
		}
		// More than one token between ANDs with no quoting to unify them:
		// either two bare words glued into one clause (must be quoted) or
		// a mismatched quote boundary.
		return Query{}, &ParseError{Msg: "multi-word clause must be quoted: " + joinLex(group)}
	}
	return q, nil
}

func joinLex(tokens []lexToken) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.text
	}
	return strings.Join(parts, " ")
}

// lexQueryLine scans line into WORD/QUOTED tokens. A quote character seen
// anywhere other than the start of a token is a mismatched/asymmetric quote
// (rule 5) and produces a ParseError.
func lexQueryLine(line string) ([]lexToken, error) {
	var tokens []lexToken
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		for i < len(runes) && isSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}
		if runes[i] == '"' {
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				j++
			}
			if j >= len(runes) {
				return nil, &ParseError{Msg: "unterminated quoted clause"}
			}
			tokens = append(tokens, lexToken{text: string(runes[i+1 : j]), quoted: true})
			i = j + 1
			continue
		}

		j := i
		for j < len(runes) && !isSpace(runes[j]) && runes[j] != '"' {
			j++
		}
		if j < len(runes) && runes[j] == '"' {
			return nil, &ParseError{Msg: "mismatched quote inside clause: " + string(runes[i:j+1])}
		}
		tokens = append(tokens, lexToken{text: string(runes[i:j])})
		i = j
	}
	return tokens, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
