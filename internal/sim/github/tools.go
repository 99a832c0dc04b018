package github

import (
	"context"

	"mimic/internal/api"
)

func (s *Simulator) GetTools() []api.ToolMetadata {
	stringListSchema := map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}
	ownerArg := api.ArgMetadata{Name: "owner", Type: "string", Required: true, Description: "Account owner of the repository"}
	repoArg := api.ArgMetadata{Name: "repo", Type: "string", Required: true, Description: "Repository name"}
	pageArg := api.ArgMetadata{Name: "page", Type: "number", Description: "Page of results to fetch", Default: 1}
	perPageArg := api.ArgMetadata{Name: "per_page", Type: "number", Description: "Results per page, max 100", Default: 30}

	return []api.ToolMetadata{
		{
			Name:        "search_repositories",
			Description: "Search repositories with free text and qualifiers like user:, language:, stars:>=100, created:2024-01-01..*, is:public, fork:true.",
			Args: []api.ArgMetadata{
				{Name: "query", Type: "string", Required: true, Description: "Search keywords and qualifiers"},
				{Name: "sort", Type: "string", Description: "stars, forks, or updated; best match when omitted"},
				{Name: "order", Type: "string", Description: "asc or desc", Default: "desc"},
				pageArg, perPageArg,
			},
		},
		{
			Name:        "create_repository",
			Description: "Create a repository for the authenticated user.",
			Args: []api.ArgMetadata{
				{Name: "name", Type: "string", Required: true, Description: "Repository name"},
				{Name: "description", Type: "string", Description: "Repository description"},
				{Name: "private", Type: "boolean", Description: "Create as private", Default: false},
				{Name: "auto_init", Type: "boolean", Description: "Create an initial commit and main branch", Default: false},
			},
		},
		{
			Name:        "fork_repository",
			Description: "Fork a repository to the authenticated user or an organization.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "organization", Type: "string", Description: "Organization to fork into instead of the user account"},
			},
		},
		{
			Name:        "create_branch",
			Description: "Create a branch pointing at an existing commit.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "branch", Type: "string", Required: true, Description: "Name of the new branch"},
				{Name: "sha", Type: "string", Required: true, Description: "Commit SHA the branch starts from"},
			},
		},
		{
			Name:        "list_branches",
			Description: "List branches in a repository, sorted by name.",
			Args:        []api.ArgMetadata{ownerArg, repoArg, pageArg, perPageArg},
		},
		{
			Name:        "create_or_update_file",
			Description: "Create or update a single file, committing to a branch. Updates require the current blob SHA.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "path", Type: "string", Required: true, Description: "File path in the repository"},
				{Name: "message", Type: "string", Required: true, Description: "Commit message"},
				{Name: "content", Type: "string", Required: true, Description: "New file content, base64 encoded"},
				{Name: "branch", Type: "string", Description: "Target branch; defaults to the default branch"},
				{Name: "sha", Type: "string", Description: "Blob SHA of the file being replaced, required for updates"},
			},
		},
		{
			Name:        "get_file_contents",
			Description: "Get a file's contents, or a directory listing when the path is a directory.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "path", Type: "string", Required: true, Description: "File or directory path; / for the repository root"},
				{Name: "ref", Type: "string", Description: "Branch name or tip commit SHA; defaults to the default branch"},
			},
		},
		{
			Name:        "create_issue",
			Description: "Open a new issue.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "title", Type: "string", Required: true, Description: "Issue title"},
				{Name: "body", Type: "string", Description: "Issue body"},
				{Name: "assignees", Type: "array", Description: "Logins to assign", Schema: stringListSchema},
				{Name: "labels", Type: "array", Description: "Label names to apply", Schema: stringListSchema},
			},
		},
		{
			Name:        "get_issue",
			Description: "Get a single issue by number.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "issue_number", Type: "number", Required: true, Description: "Issue number within the repository"},
			},
		},
		{
			Name:        "list_issues",
			Description: "List repository issues filtered by state, labels, and update time.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "state", Type: "string", Description: "open, closed, or all", Default: "open"},
				{Name: "labels", Type: "array", Description: "Labels every returned issue must carry", Schema: stringListSchema},
				{Name: "sort", Type: "string", Description: "created, updated, or comments", Default: "created"},
				{Name: "direction", Type: "string", Description: "asc or desc", Default: "desc"},
				{Name: "since", Type: "string", Description: "Only issues updated at or after this ISO 8601 timestamp"},
				pageArg, perPageArg,
			},
		},
		{
			Name:        "update_issue",
			Description: "Patch an issue's title, body, state, labels, or assignees.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "issue_number", Type: "number", Required: true, Description: "Issue number within the repository"},
				{Name: "title", Type: "string", Description: "New title"},
				{Name: "body", Type: "string", Description: "New body"},
				{Name: "state", Type: "string", Description: "open or closed"},
				{Name: "labels", Type: "array", Description: "Replacement label set", Schema: stringListSchema},
				{Name: "assignees", Type: "array", Description: "Replacement assignee logins", Schema: stringListSchema},
			},
		},
		{
			Name:        "add_issue_comment",
			Description: "Comment on an issue.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "issue_number", Type: "number", Required: true, Description: "Issue number within the repository"},
				{Name: "body", Type: "string", Required: true, Description: "Comment text"},
			},
		},
		{
			Name:        "search_issues",
			Description: "Search issues and pull requests with qualifiers like repo:, author:, assignee:, label:, state:, is:issue|pr.",
			Args: []api.ArgMetadata{
				{Name: "query", Type: "string", Required: true, Description: "Search keywords and qualifiers"},
				{Name: "sort", Type: "string", Description: "created, updated, or comments; best match when omitted"},
				{Name: "order", Type: "string", Description: "asc or desc", Default: "desc"},
				pageArg, perPageArg,
			},
		},
		{
			Name:        "create_pull_request",
			Description: "Open a pull request between two branches of a repository.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "title", Type: "string", Required: true, Description: "Pull request title"},
				{Name: "head", Type: "string", Required: true, Description: "Branch with the changes"},
				{Name: "base", Type: "string", Required: true, Description: "Branch to merge into"},
				{Name: "body", Type: "string", Description: "Pull request description"},
				{Name: "draft", Type: "boolean", Description: "Open as a draft", Default: false},
			},
		},
		{
			Name:        "get_pull_request",
			Description: "Get a single pull request by number.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "pull_number", Type: "number", Required: true, Description: "Pull request number within the repository"},
			},
		},
		{
			Name:        "list_pull_requests",
			Description: "List pull requests filtered by state, head, and base.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "state", Type: "string", Description: "open, closed, or all", Default: "open"},
				{Name: "head", Type: "string", Description: "Filter by head branch name or owner:branch label"},
				{Name: "base", Type: "string", Description: "Filter by base branch name"},
				{Name: "direction", Type: "string", Description: "asc or desc by creation time", Default: "desc"},
				pageArg, perPageArg,
			},
		},
		{
			Name:        "merge_pull_request",
			Description: "Merge an open pull request, advancing the base branch to a merge commit.",
			Args: []api.ArgMetadata{
				ownerArg, repoArg,
				{Name: "pull_number", Type: "number", Required: true, Description: "Pull request number within the repository"},
				{Name: "commit_title", Type: "string", Description: "Title for the merge commit"},
				{Name: "commit_message", Type: "string", Description: "Extra detail appended to the merge commit message"},
				{Name: "merge_method", Type: "string", Description: "merge, squash, or rebase", Default: "merge"},
			},
		},
	}
}

func (s *Simulator) ExecuteTool(ctx context.Context, name string, a map[string]interface{}) (*api.CallToolResult, error) {
	var (
		result interface{}
		err    error
	)
	switch name {
	case "search_repositories":
		result, err = s.searchRepositories(a)
	case "create_repository":
		result, err = s.createRepository(a)
	case "fork_repository":
		result, err = s.forkRepository(a)
	case "create_branch":
		result, err = s.createBranch(a)
	case "list_branches":
		result, err = s.listBranches(a)
	case "create_or_update_file":
		result, err = s.createOrUpdateFile(a)
	case "get_file_contents":
		result, err = s.getFileContents(a)
	case "create_issue":
		result, err = s.createIssue(a)
	case "get_issue":
		result, err = s.getIssue(a)
	case "list_issues":
		result, err = s.listIssues(a)
	case "update_issue":
		result, err = s.updateIssue(a)
	case "add_issue_comment":
		result, err = s.addIssueComment(a)
	case "search_issues":
		result, err = s.searchIssues(a)
	case "create_pull_request":
		result, err = s.createPullRequest(a)
	case "get_pull_request":
		result, err = s.getPullRequest(a)
	case "list_pull_requests":
		result, err = s.listPullRequests(a)
	case "merge_pull_request":
		result, err = s.mergePullRequest(a)
	default:
		return nil, api.NewInvalidInputError("unknown github tool: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return api.NewResult(result), nil
}
