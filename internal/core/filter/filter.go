package filter

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// searchColumns are matched by every search token
var searchColumns = []string{"title", "description", "job"}

// Tokenize NFC-normalizes search and splits it on whitespace
func Tokenize(search string) []string {
	return strings.Fields(norm.NFC.String(search))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes s match literally inside a LIKE pattern
func EscapeLike(s string) string { return likeEscaper.Replace(s) }

// Filter is the row set every aggregate of one request is computed over
// from and to are the published_at bounds; zero values leave that side open
type Filter struct {
	Search string
	Period Period
	Now    time.Time

	tokens []string
	from   time.Time
	to     time.Time
}

// New captures now once so every query of a request sees the same window
func New(search string, period Period, now time.Time) Filter {
	f := Filter{Search: strings.TrimSpace(search), Period: period, Now: now, tokens: Tokenize(search)}
	if lb, ok := period.LowerBound(now); ok {
		f.from = lb
	}
	return f
}

// Tokens returns the search words
func (f Filter) Tokens() []string { return f.tokens }

// TextOnly drops the date bounds and keeps the search restriction
func (f Filter) TextOnly() Filter {
	f.from, f.to = time.Time{}, time.Time{}
	return f
}

// Previous is the text filter over the preceding window; ok=false for unbounded periods
func (f Filter) Previous() (Filter, bool) {
	from, to, ok := f.Period.PreviousWindow(f.Now)
	if !ok {
		return Filter{}, false
	}
	p := f.TextOnly()
	p.from, p.to = from, to
	return p, true
}

// Bounds exposes the published_at window for logging and tests
func (f Filter) Bounds() (from, to time.Time) { return f.from, f.to }

// Where renders "WHERE ..." with $1.. placeholders; extra conditions are ANDed verbatim
// an empty filter with no extras renders ""
func (f Filter) Where(extra ...string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	for _, tok := range f.tokens {
		ph := Arg(&args, "%"+EscapeLike(tok)+"%")
		ors := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			ors[i] = col + " ILIKE " + ph
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if !f.from.IsZero() {
		conds = append(conds, "published_at >= "+Arg(&args, f.from))
	}
	if !f.to.IsZero() {
		conds = append(conds, "published_at < "+Arg(&args, f.to))
	}
	conds = append(conds, extra...)
	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// Arg appends v and returns its positional placeholder
func Arg(args *[]any, v any) string {
	*args = append(*args, v)
	return "$" + strconv.Itoa(len(*args))
}

// CacheKey identifies the filter inputs for response caching
func (f Filter) CacheKey() []string {
	return []string{string(f.Period), strings.Join(f.tokens, " ")}
}
