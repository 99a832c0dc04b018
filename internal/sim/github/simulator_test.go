package github

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimic/internal/api"
)

func call(t *testing.T, s *Simulator, tool string, arguments map[string]interface{}) interface{} {
	t.Helper()
	result, err := s.ExecuteTool(context.Background(), tool, arguments)
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	return result.Content[0]
}

func callErr(t *testing.T, s *Simulator, tool string, arguments map[string]interface{}) error {
	t.Helper()
	_, err := s.ExecuteTool(context.Background(), tool, arguments)
	require.Error(t, err)
	return err
}

func callMap(t *testing.T, s *Simulator, tool string, arguments map[string]interface{}) map[string]interface{} {
	t.Helper()
	payload, ok := call(t, s, tool, arguments).(map[string]interface{})
	require.True(t, ok)
	return payload
}

func searchRepos(t *testing.T, s *Simulator, query string, extra map[string]interface{}) []map[string]interface{} {
	t.Helper()
	arguments := map[string]interface{}{"query": query}
	for k, v := range extra {
		arguments[k] = v
	}
	payload := callMap(t, s, "search_repositories", arguments)
	results, ok := payload["search_results"].(map[string]interface{})
	require.True(t, ok)
	items, ok := results["items"].([]map[string]interface{})
	require.True(t, ok)
	return items
}

func repoNames(items []map[string]interface{}) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item["full_name"].(string))
	}
	return names
}

func TestSearchRepositoriesFreeText(t *testing.T) {
	s := New()

	// Terms match whole words in name and description.
	items := searchRepos(t, s, "hello", nil)
	require.Len(t, items, 1)
	assert.Equal(t, "octocat/hello-world", items[0]["full_name"])

	assert.Empty(t, searchRepos(t, s, "hell", nil))

	items = searchRepos(t, s, "scripts in:description", nil)
	require.Len(t, items, 1)
	assert.Equal(t, "octocat/legacy-scripts", items[0]["full_name"])
}

func TestSearchRepositoriesQualifiers(t *testing.T) {
	s := New()

	assert.Len(t, searchRepos(t, s, "user:octocat", nil), 2)
	assert.Equal(t, []string{"hubot/automation-kit"}, repoNames(searchRepos(t, s, "language:javascript", nil)))
	assert.Equal(t, []string{"hubot/automation-kit"}, repoNames(searchRepos(t, s, "stars:>=100", nil)))
	assert.Equal(t, []string{"octocat/hello-world"}, repoNames(searchRepos(t, s, "stars:10..50", nil)))
	assert.Equal(t, []string{"octocat/legacy-scripts"}, repoNames(searchRepos(t, s, "stars:*..5", nil)))
	assert.Equal(t, []string{"octocat/legacy-scripts"}, repoNames(searchRepos(t, s, "is:archived", nil)))
	assert.Equal(t, []string{"hubot/automation-kit"}, repoNames(searchRepos(t, s, "is:private", nil)))
	assert.Equal(t, []string{"hubot/automation-kit"}, repoNames(searchRepos(t, s, "fork:only", nil)))
	assert.Len(t, searchRepos(t, s, "fork:false", nil), 2)

	// A date with no time component matches the whole day.
	assert.Equal(t, []string{"octocat/hello-world"}, repoNames(searchRepos(t, s, "created:2023-06-01", nil)))
	assert.Equal(t, []string{"hubot/automation-kit"}, repoNames(searchRepos(t, s, "created:>=2024-01-01", nil)))
	assert.Equal(t, []string{"octocat/legacy-scripts"}, repoNames(searchRepos(t, s, "pushed:2022-01-01..2023-01-01", nil)))
	assert.Equal(t, []string{"hubot/automation-kit", "octocat/hello-world"},
		repoNames(searchRepos(t, s, "updated:2024-06-01..*", nil)))

	// Unparseable values match nothing, unknown keys do not filter.
	assert.Empty(t, searchRepos(t, s, "stars:abc", nil))
	assert.Empty(t, searchRepos(t, s, "created:not-a-date", nil))
	assert.Len(t, searchRepos(t, s, "topic:anything", nil), 3)
}

func TestSearchRepositoriesSortAndPaginate(t *testing.T) {
	s := New()

	byStars := searchRepos(t, s, "user:octocat user:octocat", map[string]interface{}{"sort": "stars"})
	// Qualifier map keeps one entry per key, so the query is just user:octocat.
	require.Len(t, byStars, 2)
	assert.Equal(t, "octocat/hello-world", byStars[0]["full_name"])

	asc := searchRepos(t, s, "user:octocat", map[string]interface{}{"sort": "stars", "order": "asc"})
	assert.Equal(t, "octocat/legacy-scripts", asc[0]["full_name"])

	// Default ordering is score descending.
	all := searchRepos(t, s, "fork:false is:public", nil)
	require.Len(t, all, 2)
	assert.Equal(t, "octocat/hello-world", all[0]["full_name"])

	paged := callMap(t, s, "search_repositories", map[string]interface{}{
		"query": "user:octocat", "sort": "stars", "per_page": 1, "page": 2,
	})
	results := paged["search_results"].(map[string]interface{})
	assert.Equal(t, 2, results["total_count"])
	items := results["items"].([]map[string]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "octocat/legacy-scripts", items[0]["full_name"])
}

func TestSearchRepositoriesValidation(t *testing.T) {
	s := New()
	assert.True(t, api.IsValidation(callErr(t, s, "search_repositories", map[string]interface{}{})))
	assert.True(t, api.IsInvalidInput(callErr(t, s, "search_repositories", map[string]interface{}{"query": "   "})))
	assert.True(t, api.IsInvalidInput(callErr(t, s, "search_repositories", map[string]interface{}{"query": `"unterminated`})))
	assert.True(t, api.IsInvalidInput(callErr(t, s, "search_repositories", map[string]interface{}{"query": "x", "per_page": 500})))
	assert.True(t, api.IsInvalidInput(callErr(t, s, "search_repositories", map[string]interface{}{"query": "x", "sort": "help-wanted"})))
}

func TestCreateRepository(t *testing.T) {
	s := New()
	created := callMap(t, s, "create_repository", map[string]interface{}{
		"name": "side-project", "description": "Scratch space", "private": true, "auto_init": true,
	})
	assert.Equal(t, "octocat/side-project", created["full_name"])
	assert.Equal(t, true, created["private"])
	assert.Equal(t, "private", created["visibility"])
	assert.Equal(t, "main", created["default_branch"])

	branches, ok := call(t, s, "list_branches", map[string]interface{}{
		"owner": "octocat", "repo": "side-project",
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, branches, 1)
	assert.Equal(t, "main", branches[0]["name"])

	err := callErr(t, s, "create_repository", map[string]interface{}{"name": "side-project"})
	assert.True(t, api.IsDuplicate(err))
	assert.True(t, api.IsValidation(callErr(t, s, "create_repository", map[string]interface{}{"name": "bad name"})))
}

func TestForkRepository(t *testing.T) {
	s := New()
	fork := callMap(t, s, "fork_repository", map[string]interface{}{
		"owner": "hubot", "repo": "automation-kit",
	})
	assert.Equal(t, "octocat/automation-kit", fork["full_name"])
	assert.Equal(t, true, fork["fork"])
	assert.Equal(t, 0, fork["stargazers_count"])

	// Branches come along with the fork.
	branches, ok := call(t, s, "list_branches", map[string]interface{}{
		"owner": "octocat", "repo": "automation-kit",
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, branches, 1)
	assert.Equal(t, shaAutomation, branches[0]["commit"].(map[string]interface{})["sha"])

	assert.True(t, api.IsDuplicate(callErr(t, s, "fork_repository", map[string]interface{}{
		"owner": "hubot", "repo": "automation-kit",
	})))

	orgFork := callMap(t, s, "fork_repository", map[string]interface{}{
		"owner": "hubot", "repo": "automation-kit", "organization": "acme",
	})
	assert.Equal(t, "acme/automation-kit", orgFork["full_name"])

	assert.True(t, api.IsNotFound(callErr(t, s, "fork_repository", map[string]interface{}{
		"owner": "hubot", "repo": "automation-kit", "organization": "octocat",
	})))
	assert.True(t, api.IsNotFound(callErr(t, s, "fork_repository", map[string]interface{}{
		"owner": "nobody", "repo": "nothing",
	})))
}

func TestCreateBranch(t *testing.T) {
	s := New()
	created := callMap(t, s, "create_branch", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "branch": "release-1.0", "sha": shaHelloMain,
	})
	assert.Equal(t, "refs/heads/release-1.0", created["ref"])
	assert.Equal(t, shaHelloMain, created["object"].(map[string]interface{})["sha"])

	assert.True(t, api.IsDuplicate(callErr(t, s, "create_branch", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "branch": "release-1.0", "sha": shaHelloMain,
	})))
	assert.True(t, api.IsValidation(callErr(t, s, "create_branch", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "branch": "x", "sha": "short",
	})))
	assert.True(t, api.IsNotFound(callErr(t, s, "create_branch", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "branch": "x",
		"sha": "0000000000000000000000000000000000000000",
	})))
}

func TestListBranches(t *testing.T) {
	s := New()
	branches, ok := call(t, s, "list_branches", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world",
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, branches, 2)
	assert.Equal(t, "main", branches[0]["name"])
	assert.Equal(t, "perf-tuning", branches[1]["name"])

	second, ok := call(t, s, "list_branches", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "per_page": 1, "page": 2,
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, second, 1)
	assert.Equal(t, "perf-tuning", second[0]["name"])

	assert.True(t, api.IsNotFound(callErr(t, s, "list_branches", map[string]interface{}{
		"owner": "octocat", "repo": "missing",
	})))
}

func TestCreateOrUpdateFile(t *testing.T) {
	s := New()
	// "package main\n"
	payload := callMap(t, s, "create_or_update_file", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "main.go",
		"message": "Add entrypoint", "content": "cGFja2FnZSBtYWluCg==",
	})
	content := payload["content"].(map[string]interface{})
	assert.Equal(t, "main.go", content["name"])
	assert.Equal(t, 13, content["size"])
	commitSHA := payload["commit"].(map[string]interface{})["sha"].(string)
	assert.Regexp(t, "^[0-9a-f]{40}$", commitSHA)

	// The target branch tip advances to the new commit.
	branches := call(t, s, "list_branches", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world",
	}).([]map[string]interface{})
	assert.Equal(t, commitSHA, branches[0]["commit"].(map[string]interface{})["sha"])

	fetched, ok := call(t, s, "get_file_contents", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "main.go",
	}).(*FileContent)
	require.True(t, ok)
	assert.Equal(t, "cGFja2FnZSBtYWluCg==", fetched.Content)
}

func TestUpdateFileRequiresMatchingSHA(t *testing.T) {
	s := New()
	base := map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "README.md",
		"message": "Rewrite readme", "content": "IyB1cGRhdGVkCg==",
	}
	assert.True(t, api.IsValidation(callErr(t, s, "create_or_update_file", base)))

	withWrong := map[string]interface{}{}
	for k, v := range base {
		withWrong[k] = v
	}
	withWrong["sha"] = "0000000000000000000000000000000000000000"
	assert.True(t, api.IsInvalidState(callErr(t, s, "create_or_update_file", withWrong)))

	current, ok := call(t, s, "get_file_contents", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "README.md",
	}).(*FileContent)
	require.True(t, ok)
	withRight := map[string]interface{}{}
	for k, v := range base {
		withRight[k] = v
	}
	withRight["sha"] = current.SHA
	payload := callMap(t, s, "create_or_update_file", withRight)
	assert.NotEqual(t, current.SHA, payload["content"].(map[string]interface{})["sha"])
}

func TestCreateOrUpdateFileValidation(t *testing.T) {
	s := New()
	assert.True(t, api.IsInvalidState(callErr(t, s, "create_or_update_file", map[string]interface{}{
		"owner": "octocat", "repo": "legacy-scripts", "path": "x.py",
		"message": "m", "content": "aGk=",
	})))
	assert.True(t, api.IsValidation(callErr(t, s, "create_or_update_file", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "../escape",
		"message": "m", "content": "aGk=",
	})))
	assert.True(t, api.IsValidation(callErr(t, s, "create_or_update_file", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "ok.txt",
		"message": "m", "content": "not base64!!!",
	})))
	assert.True(t, api.IsNotFound(callErr(t, s, "create_or_update_file", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "ok.txt",
		"message": "m", "content": "aGk=", "branch": "ghost",
	})))
}

func TestGetFileContentsDirectories(t *testing.T) {
	s := New()
	docs, ok := call(t, s, "get_file_contents", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "docs",
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, docs, 1)
	assert.Equal(t, "guide.md", docs[0]["name"])
	assert.Equal(t, "docs/guide.md", docs[0]["path"])

	root, ok := call(t, s, "get_file_contents", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "/",
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, root, 2)
	assert.Equal(t, "README.md", root[0]["name"])
	assert.Equal(t, "docs", root[1]["name"])
	assert.Equal(t, "dir", root[1]["type"])

	assert.True(t, api.IsNotFound(callErr(t, s, "get_file_contents", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "missing.txt",
	})))
	assert.True(t, api.IsNotFound(callErr(t, s, "get_file_contents", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "README.md", "ref": "ghost",
	})))

	// A branch tip SHA works as a ref.
	bySHA, ok := call(t, s, "get_file_contents", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "README.md", "ref": shaHelloMain,
	}).(*FileContent)
	require.True(t, ok)
	assert.Equal(t, "README.md", bySHA.Name)
}

func TestCreateIssue(t *testing.T) {
	s := New()
	created := callMap(t, s, "create_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "Flaky test on windows",
		"body": "Fails one run in ten.", "assignees": []interface{}{"hubot"},
		"labels": []interface{}{"bug", "help wanted"},
	})
	assert.Equal(t, 3, created["number"])
	assert.Equal(t, "open", created["state"])
	assert.Equal(t, "octocat", created["user"].(map[string]interface{})["login"])
	assert.Equal(t, "hubot", created["assignee"].(map[string]interface{})["login"])
	labels := created["labels"].([]map[string]interface{})
	require.Len(t, labels, 2)
	assert.Equal(t, "bug", labels[0]["name"])

	assert.True(t, api.IsValidation(callErr(t, s, "create_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "x",
		"assignees": []interface{}{"nobody"},
	})))
	assert.True(t, api.IsNotFound(callErr(t, s, "create_issue", map[string]interface{}{
		"owner": "octocat", "repo": "missing", "title": "x",
	})))
}

func TestGetIssue(t *testing.T) {
	s := New()
	issue := callMap(t, s, "get_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 1,
	})
	assert.Equal(t, "Parser crashes on empty input", issue["title"])
	assert.Equal(t, 1, issue["comments"])

	assert.True(t, api.IsNotFound(callErr(t, s, "get_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 99,
	})))
	assert.True(t, api.IsValidation(callErr(t, s, "get_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world",
	})))
}

func TestListIssues(t *testing.T) {
	s := New()

	open, ok := call(t, s, "list_issues", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world",
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, open, 1)
	assert.Equal(t, 1, open[0]["number"])

	all, ok := call(t, s, "list_issues", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "state": "all",
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, all, 2)
	// created desc: #1 (Jan 10) before #2 (Jan 5).
	assert.Equal(t, 1, all[0]["number"])
	assert.Equal(t, 2, all[1]["number"])

	labeled, ok := call(t, s, "list_issues", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "state": "all",
		"labels": []interface{}{"documentation"},
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, labeled, 1)
	assert.Equal(t, 2, labeled[0]["number"])

	since, ok := call(t, s, "list_issues", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "state": "all", "since": "2025-01-15T00:00:00Z",
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, since, 1)
	assert.Equal(t, 2, since[0]["number"])

	assert.True(t, api.IsValidation(callErr(t, s, "list_issues", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "since": "yesterday",
	})))
	assert.True(t, api.IsValidation(callErr(t, s, "list_issues", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "state": "stale",
	})))
}

func TestUpdateIssue(t *testing.T) {
	s := New()
	closed := callMap(t, s, "update_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 1, "state": "closed",
	})
	assert.Equal(t, "closed", closed["state"])
	assert.NotNil(t, closed["closed_at"])

	reopened := callMap(t, s, "update_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 1,
		"state": "open", "title": "Parser panics on empty input",
	})
	assert.Equal(t, "open", reopened["state"])
	assert.Nil(t, reopened["closed_at"])
	assert.Equal(t, "Parser panics on empty input", reopened["title"])

	assert.True(t, api.IsInvalidInput(callErr(t, s, "update_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 1,
	})))
	assert.True(t, api.IsValidation(callErr(t, s, "update_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 1, "state": "resolved",
	})))
	assert.True(t, api.IsNotFound(callErr(t, s, "update_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 42, "state": "closed",
	})))
}

func TestAddIssueComment(t *testing.T) {
	s := New()
	comment := callMap(t, s, "add_issue_comment", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 1,
		"body": "Bisected to the tokenizer rewrite.",
	})
	assert.Equal(t, 2, comment["id"])
	assert.Equal(t, "octocat", comment["user"].(map[string]interface{})["login"])

	issue := callMap(t, s, "get_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 1,
	})
	assert.Equal(t, 2, issue["comments"])

	assert.True(t, api.IsValidation(callErr(t, s, "add_issue_comment", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 1, "body": "   ",
	})))
	assert.True(t, api.IsNotFound(callErr(t, s, "add_issue_comment", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 77, "body": "x",
	})))
}

func searchIssueItems(t *testing.T, s *Simulator, query string) []map[string]interface{} {
	t.Helper()
	payload := callMap(t, s, "search_issues", map[string]interface{}{"query": query})
	items, ok := payload["items"].([]map[string]interface{})
	require.True(t, ok)
	return items
}

func TestSearchIssues(t *testing.T) {
	s := New()

	open := searchIssueItems(t, s, "is:issue state:open")
	require.Len(t, open, 1)
	assert.Equal(t, 1, open[0]["number"])
	assert.NotContains(t, open[0], "pull_request")

	byAuthor := searchIssueItems(t, s, "repo:octocat/hello-world author:hubot")
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Document the CLI flags", byAuthor[0]["title"])

	byLabel := searchIssueItems(t, s, "label:bug")
	require.Len(t, byLabel, 1)

	byAssignee := searchIssueItems(t, s, "assignee:hubot")
	require.Len(t, byAssignee, 1)

	prs := searchIssueItems(t, s, "is:pr")
	require.Len(t, prs, 1)
	assert.Contains(t, prs[0], "pull_request")
	assert.Equal(t, "Speed up the parser", prs[0]["title"])

	// Free text runs across issues and pull requests.
	parser := searchIssueItems(t, s, "parser")
	assert.Len(t, parser, 2)

	sorted := callMap(t, s, "search_issues", map[string]interface{}{
		"query": "parser", "sort": "comments",
	})
	items := sorted["items"].([]map[string]interface{})
	assert.Equal(t, 1, items[0]["comments"])
}

func TestCreatePullRequest(t *testing.T) {
	s := New()
	call(t, s, "create_branch", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "branch": "feature-x", "sha": shaHelloPerf,
	})
	created := callMap(t, s, "create_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "Add the feature",
		"head": "feature-x", "base": "main", "body": "Adds it.",
	})
	assert.Equal(t, 2, created["number"])
	assert.Equal(t, "open", created["state"])
	assert.Equal(t, "octocat:feature-x", created["head"].(map[string]interface{})["label"])
	assert.Equal(t, shaHelloPerf, created["head"].(map[string]interface{})["sha"])

	// One open PR per head/base pair.
	assert.True(t, api.IsDuplicate(callErr(t, s, "create_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "Again",
		"head": "perf-tuning", "base": "main",
	})))
	assert.True(t, api.IsValidation(callErr(t, s, "create_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "x", "head": "main", "base": "main",
	})))
	assert.True(t, api.IsNotFound(callErr(t, s, "create_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "x", "head": "ghost", "base": "main",
	})))

	// Identical tips mean there is nothing to merge.
	call(t, s, "create_branch", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "branch": "clone-main", "sha": shaHelloMain,
	})
	assert.True(t, api.IsInvalidState(callErr(t, s, "create_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "x", "head": "clone-main", "base": "main",
	})))
}

func TestListPullRequests(t *testing.T) {
	s := New()
	open, ok := call(t, s, "list_pull_requests", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world",
	}).([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, open, 1)
	assert.Equal(t, 1, open[0]["number"])

	byHead, ok := call(t, s, "list_pull_requests", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "head": "octocat:perf-tuning",
	}).([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, byHead, 1)

	none, ok := call(t, s, "list_pull_requests", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "base": "develop",
	}).([]map[string]interface{})
	require.True(t, ok)
	assert.Empty(t, none)
}

func TestMergePullRequest(t *testing.T) {
	s := New()
	merged := callMap(t, s, "merge_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "pull_number": 1,
	})
	assert.Equal(t, true, merged["merged"])
	mergeSHA := merged["sha"].(string)
	assert.Regexp(t, "^[0-9a-f]{40}$", mergeSHA)

	// The base branch advances to the merge commit.
	branches := call(t, s, "list_branches", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world",
	}).([]map[string]interface{})
	assert.Equal(t, mergeSHA, branches[0]["commit"].(map[string]interface{})["sha"])

	pr := callMap(t, s, "get_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "pull_number": 1,
	})
	assert.Equal(t, "closed", pr["state"])
	assert.Equal(t, true, pr["merged"])
	assert.Equal(t, mergeSHA, pr["merge_commit_sha"])
	assert.Equal(t, "octocat", pr["merged_by"].(map[string]interface{})["login"])

	assert.True(t, api.IsInvalidState(callErr(t, s, "merge_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "pull_number": 1,
	})))
}

func TestMergeDraftAndMovedHead(t *testing.T) {
	s := New()
	call(t, s, "create_branch", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "branch": "wip", "sha": shaHelloPerf,
	})
	draft := callMap(t, s, "create_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "WIP",
		"head": "wip", "base": "main", "draft": true,
	})
	assert.True(t, api.IsInvalidState(callErr(t, s, "merge_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "pull_number": draft["number"],
	})))

	// A head branch that moved after the PR was opened blocks the merge.
	call(t, s, "create_or_update_file", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "path": "notes.txt",
		"message": "Add notes", "content": "aGVsbG8K", "branch": "perf-tuning",
	})
	assert.True(t, api.IsInvalidState(callErr(t, s, "merge_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "pull_number": 1,
	})))

	assert.True(t, api.IsValidation(callErr(t, s, "merge_pull_request", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "pull_number": 1, "merge_method": "fast-forward",
	})))
}

func TestGitHubStatePersistence(t *testing.T) {
	s := New()
	call(t, s, "create_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "Survives restart",
	})

	path := filepath.Join(t.TempDir(), "github.json")
	require.NoError(t, s.SaveState(path))

	restored := New()
	require.NoError(t, restored.LoadState(path))
	issue := callMap(t, restored, "get_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 3,
	})
	assert.Equal(t, "Survives restart", issue["title"])

	restored.ResetState()
	assert.True(t, api.IsNotFound(callErr(t, restored, "get_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "issue_number": 3,
	})))
}

func TestUnknownGitHubTool(t *testing.T) {
	s := New()
	_, err := s.ExecuteTool(context.Background(), "delete_everything", nil)
	require.Error(t, err)
	assert.True(t, api.IsInvalidInput(err))
}

func TestSimulatorClockIsInjectable(t *testing.T) {
	s := New()
	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	created := callMap(t, s, "create_issue", map[string]interface{}{
		"owner": "octocat", "repo": "hello-world", "title": "Clock check",
	})
	assert.Equal(t, "2026-08-29T12:00:00Z", created["created_at"])
}
