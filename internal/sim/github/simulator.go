package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"mimic/internal/api"
	"mimic/internal/store"
)

// Simulator emulates a small slice of the GitHub REST surface:
// repositories, branches, file contents, issues, and pull requests,
// with qualifier-based search over repositories and issues.
type Simulator struct {
	store *store.Store[State]
	now   func() time.Time
}

func New() *Simulator {
	return &Simulator{
		store: store.New(seedState),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Simulator) Name() string { return "github" }

func (s *Simulator) SaveState(path string) error { return s.store.SaveState(path) }
func (s *Simulator) LoadState(path string) error { return s.store.LoadState(path) }
func (s *Simulator) ResetState()                 { s.store.Reset() }

func (s *Simulator) WatchState(ctx context.Context, path string) error {
	return s.store.Watch(ctx, path)
}

func (s *Simulator) Store() *store.Store[State] { return s.store }

func (s *Simulator) timestamp() string {
	return s.now().Format(time.RFC3339)
}

func nodeID(kind string, id interface{}) string {
	seed := fmt.Sprintf("%s:%v", kind, id)
	return strings.TrimRight(base64.StdEncoding.EncodeToString([]byte(seed)), "=")
}

func findUser(st *State, login string) *User {
	for _, u := range st.Users {
		if strings.EqualFold(u.Login, login) {
			return u
		}
	}
	return nil
}

func currentUser(st *State) (*User, error) {
	for _, u := range st.Users {
		if u.ID == st.CurrentUserID {
			return u, nil
		}
	}
	return nil, api.NewInvalidStateError("no authenticated user configured")
}

func findRepo(st *State, owner, repo string) (*Repository, error) {
	full := owner + "/" + repo
	for _, r := range st.Repositories {
		if strings.EqualFold(r.FullName, full) {
			return r, nil
		}
	}
	return nil, api.NewNotFoundError("repository", full)
}

func findBranch(st *State, repoID int, name string) *Branch {
	for _, b := range st.Branches {
		if b.RepositoryID == repoID && b.Name == name {
			return b
		}
	}
	return nil
}

func findIssue(st *State, repoID, number int) *Issue {
	for _, i := range st.Issues {
		if i.RepositoryID == repoID && i.Number == number {
			return i
		}
	}
	return nil
}

func findPullRequest(st *State, repoID, number int) *PullRequest {
	for _, pr := range st.PullRequests {
		if pr.RepositoryID == repoID && pr.Number == number {
			return pr
		}
	}
	return nil
}

func nextIssueNumber(st *State, repoID int) int {
	max := 0
	for _, i := range st.Issues {
		if i.RepositoryID == repoID && i.Number > max {
			max = i.Number
		}
	}
	return max + 1
}

func nextPullNumber(st *State, repoID int) int {
	max := 0
	for _, pr := range st.PullRequests {
		if pr.RepositoryID == repoID && pr.Number > max {
			max = pr.Number
		}
	}
	return max + 1
}

func userRefMap(u *UserRef) map[string]interface{} {
	if u == nil {
		return nil
	}
	return map[string]interface{}{"login": u.Login, "id": u.ID, "type": u.Type}
}

func labelMaps(labels []Label) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(labels))
	for _, l := range labels {
		out = append(out, map[string]interface{}{"name": l.Name, "color": l.Color})
	}
	return out
}

func formatRepository(r *Repository) map[string]interface{} {
	var language interface{}
	if r.Language != nil {
		language = *r.Language
	}
	var description interface{}
	if r.Description != nil {
		description = *r.Description
	}
	return map[string]interface{}{
		"id":                r.ID,
		"node_id":           nodeID("Repository", r.ID),
		"name":              r.Name,
		"full_name":         r.FullName,
		"private":           r.Private,
		"owner":             userRefMap(r.Owner),
		"description":       description,
		"fork":              r.Fork,
		"archived":          r.Archived,
		"created_at":        r.CreatedAt,
		"updated_at":        r.UpdatedAt,
		"pushed_at":         r.PushedAt,
		"size":              r.Size,
		"stargazers_count":  r.StargazersCount,
		"watchers_count":    r.WatchersCount,
		"forks_count":       r.ForksCount,
		"open_issues_count": r.OpenIssuesCount,
		"language":          language,
		"default_branch":    r.DefaultBranch,
		"visibility":        r.Visibility,
		"score":             r.Score,
	}
}

func formatIssue(i *Issue) map[string]interface{} {
	var body interface{}
	if i.Body != nil {
		body = *i.Body
	}
	var closedAt interface{}
	if i.ClosedAt != nil {
		closedAt = *i.ClosedAt
	}
	assignees := make([]map[string]interface{}, 0, len(i.Assignees))
	for _, a := range i.Assignees {
		assignees = append(assignees, userRefMap(a))
	}
	out := map[string]interface{}{
		"id":         i.ID,
		"node_id":    nodeID("Issue", i.ID),
		"number":     i.Number,
		"title":      i.Title,
		"user":       userRefMap(i.User),
		"labels":     labelMaps(i.Labels),
		"state":      i.State,
		"locked":     i.Locked,
		"assignees":  assignees,
		"comments":   i.Comments,
		"created_at": i.CreatedAt,
		"updated_at": i.UpdatedAt,
		"closed_at":  closedAt,
		"body":       body,
	}
	if i.Assignee != nil {
		out["assignee"] = userRefMap(i.Assignee)
	} else {
		out["assignee"] = nil
	}
	return out
}

func formatPullRequest(pr *PullRequest) map[string]interface{} {
	var body interface{}
	if pr.Body != nil {
		body = *pr.Body
	}
	var mergedAt interface{}
	if pr.MergedAt != nil {
		mergedAt = *pr.MergedAt
	}
	var closedAt interface{}
	if pr.ClosedAt != nil {
		closedAt = *pr.ClosedAt
	}
	var mergeSHA interface{}
	if pr.MergeCommitSHA != nil {
		mergeSHA = *pr.MergeCommitSHA
	}
	return map[string]interface{}{
		"id":         pr.ID,
		"node_id":    nodeID("PullRequest", pr.ID),
		"number":     pr.Number,
		"title":      pr.Title,
		"user":       userRefMap(pr.User),
		"labels":     labelMaps(pr.Labels),
		"state":      pr.State,
		"draft":      pr.Draft,
		"merged":     pr.Merged,
		"body":       body,
		"head":       map[string]interface{}{"label": pr.Head.Label, "ref": pr.Head.Ref, "sha": pr.Head.SHA},
		"base":       map[string]interface{}{"label": pr.Base.Label, "ref": pr.Base.Ref, "sha": pr.Base.SHA},
		"comments":   pr.Comments,
		"created_at": pr.CreatedAt,
		"updated_at": pr.UpdatedAt,
		"closed_at":  closedAt,
		"merged_at":  mergedAt,
		"merged_by":  userRefMap(pr.MergedBy),
		"merge_commit_sha": mergeSHA,
	}
}
