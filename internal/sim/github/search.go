package github

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"mimic/internal/api"
)

// tokenize splits a search query on whitespace, honoring double quotes
// so that qualifiers like label:"bug fix" stay one token.
func tokenize(query string) ([]string, error) {
	var parts []string
	var cur strings.Builder
	inQuote := false
	for _, r := range query {
		switch {
		case r == '"':
			inQuote = !inQuote
		case unicode.IsSpace(r) && !inQuote:
			if cur.Len() > 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, api.NewInvalidInputError("invalid query syntax: mismatched quotes")
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts, nil
}

var qualifierRe = regexp.MustCompile(`^([a-zA-Z_]+):(.*)$`)

// parseQuery separates free-text search terms from key:value qualifiers.
// Terms come back lowercased; qualifier keys are lowercased, values kept.
func parseQuery(query string) (terms []string, qualifiers map[string]string, err error) {
	parts, err := tokenize(query)
	if err != nil {
		return nil, nil, err
	}
	qualifiers = map[string]string{}
	for _, part := range parts {
		if m := qualifierRe.FindStringSubmatch(part); m != nil {
			qualifiers[strings.ToLower(m[1])] = m[2]
		} else {
			terms = append(terms, strings.ToLower(part))
		}
	}
	return terms, qualifiers, nil
}

// termsMatch requires every term to appear as a whole word in text.
func termsMatch(terms []string, text string) bool {
	for _, term := range terms {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil || !re.MatchString(text) {
			return false
		}
	}
	return true
}

var (
	timeFloor = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	timeCeil  = time.Date(9998, 12, 31, 23, 59, 59, 0, time.UTC)
)

// parseQueryTime parses an ISO timestamp or bare date from a query
// value. A bare date resolves to midnight, or to end of day when
// endOfDay is set. Unparseable input reports ok=false.
func parseQueryTime(s string, endOfDay bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return timeFloor, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Second)
		}
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return timeFloor, false
}

func parseRecordTime(s string) time.Time {
	if t, ok := parseQueryTime(s, false); ok {
		return t
	}
	return timeFloor
}

// splitOperator peels a leading >=, <=, > or < comparison off a value.
func splitOperator(value string) (op, rest string) {
	switch {
	case strings.HasPrefix(value, ">="), strings.HasPrefix(value, "<="):
		return value[:2], value[2:]
	case strings.HasPrefix(value, ">"), strings.HasPrefix(value, "<"):
		return value[:1], value[1:]
	}
	return "", value
}

// matchNumber evaluates a numeric qualifier value: N, >N, >=N, <N, <=N,
// or a range like 10..50 where either end may be *.
func matchNumber(actual int, value string) bool {
	if strings.Contains(value, "..") {
		bounds := strings.SplitN(value, "..", 2)
		low, high := bounds[0], bounds[1]
		if low != "*" {
			n, err := strconv.Atoi(low)
			if err != nil || actual < n {
				return false
			}
		}
		if high != "*" {
			n, err := strconv.Atoi(high)
			if err != nil || actual > n {
				return false
			}
		}
		return true
	}
	op, rest := splitOperator(value)
	n, err := strconv.Atoi(rest)
	if err != nil {
		return false
	}
	switch op {
	case ">=":
		return actual >= n
	case "<=":
		return actual <= n
	case ">":
		return actual > n
	case "<":
		return actual < n
	}
	return actual == n
}

// matchDate evaluates a date qualifier against an RFC3339 record field.
// Exact values match anywhere on the named day; range ends may be *.
func matchDate(actual string, value string) bool {
	recorded := parseRecordTime(actual)
	if strings.Contains(value, "..") {
		bounds := strings.SplitN(value, "..", 2)
		start, end := timeFloor, timeCeil
		if bounds[0] != "*" {
			t, ok := parseQueryTime(bounds[0], false)
			if !ok {
				return false
			}
			start = t
		}
		if bounds[1] != "*" {
			t, ok := parseQueryTime(bounds[1], true)
			if !ok {
				return false
			}
			end = t
		}
		return !recorded.Before(start) && !recorded.After(end)
	}
	op, rest := splitOperator(value)
	qt, ok := parseQueryTime(rest, false)
	if !ok {
		return false
	}
	switch op {
	case ">=":
		return !recorded.Before(qt)
	case "<=":
		return !recorded.After(qt)
	case ">":
		return recorded.After(qt)
	case "<":
		return recorded.Before(qt)
	}
	dayStart := time.Date(qt.Year(), qt.Month(), qt.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)
	return !recorded.Before(dayStart) && !recorded.After(dayEnd)
}

// repoMatchesQualifier applies one key:value qualifier to a repository.
// Unrecognized keys do not constrain the result set.
func repoMatchesQualifier(repo *Repository, key, value string) bool {
	switch key {
	case "is":
		switch value {
		case "public":
			return !repo.Private
		case "private":
			return repo.Private
		case "archived":
			return repo.Archived
		case "template":
			return repo.IsTemplate
		}
		return false
	case "fork":
		switch value {
		case "true", "only":
			return repo.Fork
		case "false":
			return !repo.Fork
		}
		return true
	case "user", "org":
		return strings.EqualFold(repo.Owner.Login, value)
	case "language":
		return repo.Language != nil && strings.EqualFold(*repo.Language, value)
	case "stars":
		return matchNumber(repo.StargazersCount, value)
	case "forks":
		return matchNumber(repo.ForksCount, value)
	case "watchers":
		return matchNumber(repo.WatchersCount, value)
	case "size":
		return matchNumber(repo.Size, value)
	case "created":
		return matchDate(repo.CreatedAt, value)
	case "pushed":
		return matchDate(repo.PushedAt, value)
	case "updated":
		return matchDate(repo.UpdatedAt, value)
	}
	return true
}

// searchItem is the merged issue/pull-request view walked by
// searchIssues. repoFullName is resolved up front for repo: filtering.
type searchItem struct {
	isPR         bool
	repoFullName string
	issue        *Issue
	pr           *PullRequest
}

func (it searchItem) matchesQualifiers(qualifiers map[string]string) bool {
	for key, value := range qualifiers {
		switch key {
		case "is", "type":
			switch strings.ToLower(value) {
			case "pr":
				if !it.isPR {
					return false
				}
			case "issue":
				if it.isPR {
					return false
				}
			}
		case "repo":
			if !strings.EqualFold(it.repoFullName, value) {
				return false
			}
		case "author":
			user := it.user()
			if user == nil || !strings.EqualFold(user.Login, value) {
				return false
			}
		case "assignee":
			assignee := it.assignee()
			if assignee == nil || !strings.EqualFold(assignee.Login, value) {
				return false
			}
		case "label":
			found := false
			for _, l := range it.labels() {
				if strings.EqualFold(l.Name, value) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "state":
			if !strings.EqualFold(it.state(), value) {
				return false
			}
		}
	}
	return true
}

func (it searchItem) user() *UserRef {
	if it.isPR {
		return it.pr.User
	}
	return it.issue.User
}

func (it searchItem) assignee() *UserRef {
	if it.isPR {
		return it.pr.Assignee
	}
	return it.issue.Assignee
}

func (it searchItem) labels() []Label {
	if it.isPR {
		return it.pr.Labels
	}
	return it.issue.Labels
}

func (it searchItem) state() string {
	if it.isPR {
		return it.pr.State
	}
	return it.issue.State
}

func (it searchItem) title() string {
	if it.isPR {
		return it.pr.Title
	}
	return it.issue.Title
}

func (it searchItem) body() *string {
	if it.isPR {
		return it.pr.Body
	}
	return it.issue.Body
}

func (it searchItem) commentCount() int {
	if it.isPR {
		return it.pr.Comments
	}
	return it.issue.Comments
}

func (it searchItem) createdAt() string {
	if it.isPR {
		return it.pr.CreatedAt
	}
	return it.issue.CreatedAt
}

func (it searchItem) updatedAt() string {
	if it.isPR {
		return it.pr.UpdatedAt
	}
	return it.issue.UpdatedAt
}

func (it searchItem) score() float64 {
	if it.isPR {
		return it.pr.Score
	}
	return it.issue.Score
}

// searchText builds the haystack for free-text terms, constrained by
// an in: qualifier (default title,body).
func (it searchItem) searchText(searchIn string) string {
	var parts []string
	for _, field := range strings.Split(searchIn, ",") {
		switch strings.TrimSpace(field) {
		case "title":
			parts = append(parts, strings.ToLower(it.title()))
		case "body":
			if b := it.body(); b != nil {
				parts = append(parts, strings.ToLower(*b))
			}
		}
	}
	return strings.Join(parts, " ")
}

// paginate slices one page out of n results, returning start/end indexes.
func paginate(n, page, perPage int) (int, int) {
	start := (page - 1) * perPage
	if start > n {
		start = n
	}
	end := start + perPage
	if end > n {
		end = n
	}
	return start, end
}
