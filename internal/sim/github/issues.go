package github

import (
	"sort"
	"strings"
	"time"

	"mimic/internal/api"
	"mimic/internal/sim/args"
	"mimic/internal/store"
)

func resolveAssignees(st *State, logins []string) ([]*UserRef, error) {
	var refs []*UserRef
	seen := map[string]bool{}
	for _, login := range logins {
		if seen[strings.ToLower(login)] {
			continue
		}
		seen[strings.ToLower(login)] = true
		u := findUser(st, login)
		if u == nil {
			return nil, api.NewFieldValidationError("assignees", "user %q not found", login)
		}
		refs = append(refs, u.ref())
	}
	return refs, nil
}

func labelList(names []string) []Label {
	var labels []Label
	seen := map[string]bool{}
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		labels = append(labels, Label{Name: name, Color: defaultLabelHx})
	}
	return labels
}

func (s *Simulator) createIssue(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	title, err := args.RequiredString(a, "title")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, api.NewFieldValidationError("title", "must not be empty")
	}
	body, hasBody, err := args.String(a, "body")
	if err != nil {
		return nil, err
	}
	assignees, _, err := args.StringSlice(a, "assignees")
	if err != nil {
		return nil, err
	}
	labels, _, err := args.StringSlice(a, "labels")
	if err != nil {
		return nil, err
	}

	var created *Issue
	err = s.store.Update(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		creator, err := currentUser(st)
		if err != nil {
			return err
		}
		refs, err := resolveAssignees(st, assignees)
		if err != nil {
			return err
		}
		now := s.timestamp()
		created = &Issue{
			ID:           store.NextCounter(st.Counters, "issues"),
			RepositoryID: r.ID,
			Number:       nextIssueNumber(st, r.ID),
			Title:        title,
			State:        "open",
			User:         creator.ref(),
			Assignees:    refs,
			Labels:       labelList(labels),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if hasBody {
			created.Body = &body
		}
		if len(refs) > 0 {
			created.Assignee = refs[0]
		}
		st.Issues = append(st.Issues, created)
		r.OpenIssuesCount++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formatIssue(created), nil
}

func (s *Simulator) getIssue(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	number, _, err := args.Int(a, "issue_number")
	if err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, api.NewFieldValidationError("issue_number", "must be a positive integer")
	}

	var found *Issue
	err = s.store.View(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		found = findIssue(st, r.ID, number)
		if found == nil {
			return api.NewNotFoundErrorf("issue #%d not found in %q", number, r.FullName)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formatIssue(found), nil
}

// sortIssues orders issues by comment count or a timestamp field.
// Issues with unparseable timestamps sink to the end of the ordering.
func sortIssues(issues []*Issue, sortBy string, desc bool) {
	key := func(i *Issue) time.Time {
		field := i.CreatedAt
		if sortBy == "updated" {
			field = i.UpdatedAt
		}
		if t, ok := parseQueryTime(field, false); ok {
			return t
		}
		if desc {
			return timeCeil
		}
		return timeFloor
	}
	sort.SliceStable(issues, func(a, b int) bool {
		if sortBy == "comments" {
			if desc {
				return issues[a].Comments > issues[b].Comments
			}
			return issues[a].Comments < issues[b].Comments
		}
		ta, tb := key(issues[a]), key(issues[b])
		if desc {
			return ta.After(tb)
		}
		return ta.Before(tb)
	})
}

func (s *Simulator) listIssues(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	state, err := args.Enum(a, "state", "open", "open", "closed", "all")
	if err != nil {
		return nil, err
	}
	labels, _, err := args.StringSlice(a, "labels")
	if err != nil {
		return nil, err
	}
	sortBy, err := args.Enum(a, "sort", "created", "created", "updated", "comments")
	if err != nil {
		return nil, err
	}
	direction, err := args.Enum(a, "direction", "desc", "asc", "desc")
	if err != nil {
		return nil, err
	}
	since, hasSince, err := args.String(a, "since")
	if err != nil {
		return nil, err
	}
	var sinceTime time.Time
	if hasSince {
		t, ok := parseQueryTime(since, false)
		if !ok {
			return nil, api.NewFieldValidationError("since", "must be an ISO 8601 timestamp, got %q", since)
		}
		sinceTime = t
	}
	page, perPage, err := pageArgs(a)
	if err != nil {
		return nil, err
	}

	var matched []*Issue
	err = s.store.View(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		for _, issue := range st.Issues {
			if issue.RepositoryID != r.ID {
				continue
			}
			if state != "all" && issue.State != state {
				continue
			}
			if len(labels) > 0 {
				names := map[string]bool{}
				for _, l := range issue.Labels {
					names[l.Name] = true
				}
				ok := true
				for _, want := range labels {
					if !names[want] {
						ok = false
						break
					}
				}
				if !ok {
					continue
				}
			}
			if hasSince {
				updated, ok := parseQueryTime(issue.UpdatedAt, false)
				if !ok || updated.Before(sinceTime) {
					continue
				}
			}
			matched = append(matched, issue)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortIssues(matched, sortBy, direction == "desc")
	start, end := paginate(len(matched), page, perPage)
	items := make([]map[string]interface{}, 0, end-start)
	for _, issue := range matched[start:end] {
		items = append(items, formatIssue(issue))
	}
	return items, nil
}

func (s *Simulator) updateIssue(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	number, _, err := args.Int(a, "issue_number")
	if err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, api.NewFieldValidationError("issue_number", "must be a positive integer")
	}
	title, hasTitle, err := args.String(a, "title")
	if err != nil {
		return nil, err
	}
	if hasTitle && strings.TrimSpace(title) == "" {
		return nil, api.NewFieldValidationError("title", "must not be empty")
	}
	body, hasBody, err := args.String(a, "body")
	if err != nil {
		return nil, err
	}
	state, hasState, err := args.String(a, "state")
	if err != nil {
		return nil, err
	}
	if hasState && state != "open" && state != "closed" {
		return nil, api.NewFieldValidationError("state", "must be open or closed")
	}
	labels, hasLabels, err := args.StringSlice(a, "labels")
	if err != nil {
		return nil, err
	}
	assignees, hasAssignees, err := args.StringSlice(a, "assignees")
	if err != nil {
		return nil, err
	}
	if !hasTitle && !hasBody && !hasState && !hasLabels && !hasAssignees {
		return nil, api.NewInvalidInputError("at least one field to update must be provided")
	}

	var updated *Issue
	err = s.store.Update(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		issue := findIssue(st, r.ID, number)
		if issue == nil {
			return api.NewNotFoundErrorf("issue #%d not found in %q", number, r.FullName)
		}
		if hasTitle {
			issue.Title = title
		}
		if hasBody {
			issue.Body = &body
		}
		if hasLabels {
			issue.Labels = labelList(labels)
		}
		if hasAssignees {
			refs, err := resolveAssignees(st, assignees)
			if err != nil {
				return err
			}
			issue.Assignees = refs
			issue.Assignee = nil
			if len(refs) > 0 {
				issue.Assignee = refs[0]
			}
		}
		now := s.timestamp()
		if hasState && state != issue.State {
			issue.State = state
			if state == "closed" {
				closed := now
				issue.ClosedAt = &closed
				r.OpenIssuesCount--
			} else {
				issue.ClosedAt = nil
				r.OpenIssuesCount++
			}
		}
		issue.UpdatedAt = now
		updated = issue
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formatIssue(updated), nil
}

func (s *Simulator) addIssueComment(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	number, _, err := args.Int(a, "issue_number")
	if err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, api.NewFieldValidationError("issue_number", "must be a positive integer")
	}
	body, err := args.RequiredString(a, "body")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, api.NewFieldValidationError("body", "must not be empty")
	}

	var comment *IssueComment
	err = s.store.Update(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		issue := findIssue(st, r.ID, number)
		if issue == nil {
			return api.NewNotFoundErrorf("issue #%d not found in %q", number, r.FullName)
		}
		author, err := currentUser(st)
		if err != nil {
			return err
		}
		now := s.timestamp()
		comment = &IssueComment{
			ID:        store.NextCounter(st.Counters, "comments"),
			IssueID:   issue.ID,
			Body:      body,
			User:      author.ref(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		st.IssueComments = append(st.IssueComments, comment)
		issue.Comments++
		issue.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":         comment.ID,
		"node_id":    nodeID("IssueComment", comment.ID),
		"body":       comment.Body,
		"user":       userRefMap(comment.User),
		"created_at": comment.CreatedAt,
		"updated_at": comment.UpdatedAt,
	}, nil
}

func (s *Simulator) searchIssues(a map[string]interface{}) (interface{}, error) {
	query, err := args.RequiredString(a, "query")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, api.NewInvalidInputError("search query must be a non-empty string")
	}
	sortBy, _, err := args.String(a, "sort")
	if err != nil {
		return nil, err
	}
	order, err := args.StringOr(a, "order", "desc")
	if err != nil {
		return nil, err
	}
	page, perPage, err := pageArgs(a)
	if err != nil {
		return nil, err
	}

	terms, qualifiers, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	searchIn := qualifiers["in"]
	if searchIn == "" {
		searchIn = "title,body"
	}

	var matched []searchItem
	err = s.store.View(func(st *State) error {
		repoNames := map[int]string{}
		for _, r := range st.Repositories {
			repoNames[r.ID] = r.FullName
		}
		var candidates []searchItem
		for _, issue := range st.Issues {
			candidates = append(candidates, searchItem{repoFullName: repoNames[issue.RepositoryID], issue: issue})
		}
		for _, pr := range st.PullRequests {
			candidates = append(candidates, searchItem{isPR: true, repoFullName: repoNames[pr.RepositoryID], pr: pr})
		}
		for _, item := range candidates {
			if !item.matchesQualifiers(qualifiers) {
				continue
			}
			if len(terms) > 0 && !termsMatch(terms, item.searchText(searchIn)) {
				continue
			}
			matched = append(matched, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	desc := order != "asc"
	switch sortBy {
	case "comments":
		sort.SliceStable(matched, func(a, b int) bool {
			if desc {
				return matched[a].commentCount() > matched[b].commentCount()
			}
			return matched[a].commentCount() < matched[b].commentCount()
		})
	case "created", "updated":
		key := func(it searchItem) time.Time {
			field := it.createdAt()
			if sortBy == "updated" {
				field = it.updatedAt()
			}
			if t, ok := parseQueryTime(field, false); ok {
				return t
			}
			return timeFloor
		}
		sort.SliceStable(matched, func(a, b int) bool {
			ta, tb := key(matched[a]), key(matched[b])
			if desc {
				return ta.After(tb)
			}
			return ta.Before(tb)
		})
	default:
		sort.SliceStable(matched, func(a, b int) bool { return matched[a].score() > matched[b].score() })
	}

	start, end := paginate(len(matched), page, perPage)
	items := make([]map[string]interface{}, 0, end-start)
	for _, item := range matched[start:end] {
		var formatted map[string]interface{}
		if item.isPR {
			formatted = formatPullRequest(item.pr)
			formatted["pull_request"] = map[string]interface{}{}
		} else {
			formatted = formatIssue(item.issue)
		}
		items = append(items, formatted)
	}
	return map[string]interface{}{
		"total_count":        len(matched),
		"incomplete_results": false,
		"items":              items,
	}, nil
}
