package rdf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteTurtle serializes the store as Turtle. Triples are grouped by subject
// in first-seen order, and IRIs inside a bound namespace are written as
// prefixed names. The serializer guarantees that every stored triple appears
// exactly once; pretty-printing beyond subject grouping is not attempted.
func WriteTurtle(w io.Writer, store *Store, prefixes map[string]Namespace) error {
	bw := bufio.NewWriter(w)

	names := make([]string, 0, len(prefixes))
	for name := range prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(bw, "@prefix %s: <%s> .\n", name, prefixes[name]); err != nil {
			return err
		}
	}
	if len(names) > 0 {
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	order, grouped := groupBySubject(store)
	for _, subject := range order {
		pairs := grouped[subject]
		if _, err := fmt.Fprintf(bw, "%s ", renderTerm(subject, names, prefixes)); err != nil {
			return err
		}
		for i, po := range pairs {
			sep := " ;\n    "
			if i == len(pairs)-1 {
				sep = " .\n\n"
			}
			_, err := fmt.Fprintf(bw, "%s %s%s",
				renderTerm(po.P, names, prefixes),
				renderTerm(po.O, names, prefixes),
				sep)
			if err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

type predicateObject struct {
	P Term
	O Term
}

func groupBySubject(store *Store) ([]Term, map[Term][]predicateObject) {
	var order []Term
	grouped := make(map[Term][]predicateObject)
	for _, t := range store.Triples() {
		if _, seen := grouped[t.S]; !seen {
			order = append(order, t.S)
		}
		grouped[t.S] = append(grouped[t.S], predicateObject{P: t.P, O: t.O})
	}
	return order, grouped
}

func renderTerm(t Term, names []string, prefixes map[string]Namespace) string {
	if t.Literal {
		escaped := strings.NewReplacer(
			`\`, `\\`,
			`"`, `\"`,
			"\n", `\n`,
			"\r", `\r`,
			"\t", `\t`,
		).Replace(t.Value)
		if t.Lang != "" {
			return `"` + escaped + `"@` + t.Lang
		}
		return `"` + escaped + `"`
	}
	for _, name := range names {
		if local, ok := prefixes[name].Contains(t); ok && isLocalName(local) {
			return name + ":" + local
		}
	}
	return "<" + t.Value + ">"
}

// isLocalName reports whether the local part can be written as a prefixed
// name without escaping. Slashes and other delimiters force the full IRI
// form instead.
func isLocalName(local string) bool {
	if local == "" {
		return false
	}
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return local[0] != '.' && local[len(local)-1] != '.'
}
