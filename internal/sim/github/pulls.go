package github

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"mimic/internal/api"
	"mimic/internal/sim/args"
	"mimic/internal/store"
)

func (s *Simulator) createPullRequest(a map[string]interface{}) (interface{}, error) {
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
	head, err := args.RequiredString(a, "head")
	if err != nil {
		return nil, err
	}
	base, err := args.RequiredString(a, "base")
	if err != nil {
		return nil, err
	}
	if head == base {
		return nil, api.NewFieldValidationError("head", "must differ from base")
	}
	body, hasBody, err := args.String(a, "body")
	if err != nil {
		return nil, err
	}
	draft, err := args.BoolOr(a, "draft", false)
	if err != nil {
		return nil, err
	}

	var created *PullRequest
	err = s.store.Update(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		headBranch := findBranch(st, r.ID, head)
		if headBranch == nil {
			return api.NewNotFoundErrorf("head branch %q not found in repository %q", head, r.FullName)
		}
		baseBranch := findBranch(st, r.ID, base)
		if baseBranch == nil {
			return api.NewNotFoundErrorf("base branch %q not found in repository %q", base, r.FullName)
		}
		if headBranch.SHA == baseBranch.SHA {
			return api.NewInvalidStateError("no commits between %q and %q", base, head)
		}
		for _, pr := range st.PullRequests {
			if pr.RepositoryID == r.ID && pr.State == "open" && pr.Head.Ref == head && pr.Base.Ref == base {
				return api.NewDuplicateErrorf("a pull request already exists for %s:%s into %s:%s",
					r.Owner.Login, head, r.Owner.Login, base)
			}
		}
		creator, err := currentUser(st)
		if err != nil {
			return err
		}
		now := s.timestamp()
		created = &PullRequest{
			ID:           store.NextCounter(st.Counters, "pull_requests"),
			RepositoryID: r.ID,
			Number:       nextPullNumber(st, r.ID),
			Title:        title,
			State:        "open",
			Draft:        draft,
			User:         creator.ref(),
			Head:         BranchRef{Label: r.Owner.Login + ":" + head, Ref: head, SHA: headBranch.SHA},
			Base:         BranchRef{Label: r.Owner.Login + ":" + base, Ref: base, SHA: baseBranch.SHA},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if hasBody {
			created.Body = &body
		}
		st.PullRequests = append(st.PullRequests, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formatPullRequest(created), nil
}

func (s *Simulator) getPullRequest(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	number, _, err := args.Int(a, "pull_number")
	if err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, api.NewFieldValidationError("pull_number", "must be a positive integer")
	}

	var found *PullRequest
	err = s.store.View(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		found = findPullRequest(st, r.ID, number)
		if found == nil {
			return api.NewNotFoundErrorf("pull request #%d not found in %q", number, r.FullName)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formatPullRequest(found), nil
}

func (s *Simulator) listPullRequests(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	state, err := args.Enum(a, "state", "open", "open", "closed", "all")
	if err != nil {
		return nil, err
	}
	head, _, err := args.String(a, "head")
	if err != nil {
		return nil, err
	}
	base, _, err := args.String(a, "base")
	if err != nil {
		return nil, err
	}
	direction, err := args.Enum(a, "direction", "desc", "asc", "desc")
	if err != nil {
		return nil, err
	}
	page, perPage, err := pageArgs(a)
	if err != nil {
		return nil, err
	}

	var matched []*PullRequest
	err = s.store.View(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		for _, pr := range st.PullRequests {
			if pr.RepositoryID != r.ID {
				continue
			}
			if state != "all" && pr.State != state {
				continue
			}
			if head != "" && pr.Head.Ref != head && pr.Head.Label != head {
				continue
			}
			if base != "" && pr.Base.Ref != base {
				continue
			}
			matched = append(matched, pr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	desc := direction == "desc"
	sortPullsByCreated(matched, desc)
	start, end := paginate(len(matched), page, perPage)
	items := make([]map[string]interface{}, 0, end-start)
	for _, pr := range matched[start:end] {
		items = append(items, formatPullRequest(pr))
	}
	return items, nil
}

func sortPullsByCreated(prs []*PullRequest, desc bool) {
	key := func(pr *PullRequest) time.Time { return parseRecordTime(pr.CreatedAt) }
	sort.SliceStable(prs, func(a, b int) bool {
		ta, tb := key(prs[a]), key(prs[b])
		if desc {
			return ta.After(tb)
		}
		return ta.Before(tb)
	})
}

func (s *Simulator) mergePullRequest(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	number, _, err := args.Int(a, "pull_number")
	if err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, api.NewFieldValidationError("pull_number", "must be a positive integer")
	}
	commitTitle, _, err := args.String(a, "commit_title")
	if err != nil {
		return nil, err
	}
	commitMessage, _, err := args.String(a, "commit_message")
	if err != nil {
		return nil, err
	}
	method, err := args.Enum(a, "merge_method", "merge", "merge", "squash", "rebase")
	if err != nil {
		return nil, err
	}

	var mergeSHA string
	err = s.store.Update(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		pr := findPullRequest(st, r.ID, number)
		if pr == nil {
			return api.NewNotFoundErrorf("pull request #%d not found in %q", number, r.FullName)
		}
		if pr.Merged {
			return api.NewInvalidStateError("pull request is already merged")
		}
		if pr.State != "open" {
			return api.NewInvalidStateError("pull request is not open")
		}
		if pr.Draft {
			return api.NewInvalidStateError("draft pull requests cannot be merged")
		}
		headBranch := findBranch(st, r.ID, pr.Head.Ref)
		if headBranch != nil && headBranch.SHA != pr.Head.SHA {
			return api.NewInvalidStateError(
				"head branch %q has been modified since this pull request was created", pr.Head.Ref)
		}

		merger, err := currentUser(st)
		if err != nil {
			return err
		}
		title := commitTitle
		if title == "" {
			title = fmt.Sprintf("Merge pull request #%d from %s", pr.Number, pr.Head.Label)
		}
		message := title
		if commitMessage != "" {
			message = title + "\n\n" + commitMessage
		} else {
			message = title + "\n\n" + pr.Title
		}

		now := s.timestamp()
		mergeSHA = sha1Hex(pr.Head.SHA, pr.Base.SHA, method, message)
		st.Commits = append(st.Commits, &Commit{
			SHA:          mergeSHA,
			RepositoryID: r.ID,
			Message:      message,
			AuthorLogin:  merger.Login,
			AuthorEmail:  merger.Email,
			Date:         now,
			ParentSHA:    pr.Base.SHA,
		})
		if baseBranch := findBranch(st, r.ID, pr.Base.Ref); baseBranch != nil {
			baseBranch.SHA = mergeSHA
		}
		pr.State = "closed"
		pr.Merged = true
		pr.MergedAt = &now
		pr.ClosedAt = &now
		pr.MergedBy = merger.ref()
		pr.MergeCommitSHA = &mergeSHA
		pr.UpdatedAt = now
		r.PushedAt = now
		r.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"sha":     mergeSHA,
		"merged":  true,
		"message": "Pull Request successfully merged",
	}, nil
}
