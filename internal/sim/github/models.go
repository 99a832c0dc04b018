package github

// User is an account known to the simulation. The first user in the
// seed acts as the authenticated user for write operations.
type User struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Type      string `json:"type"`
	SiteAdmin bool   `json:"site_admin"`
}

// UserRef is the short owner/author projection embedded in other records.
type UserRef struct {
	Login string `json:"login"`
	ID    int    `json:"id"`
	Type  string `json:"type"`
}

func (u *User) ref() *UserRef {
	return &UserRef{Login: u.Login, ID: u.ID, Type: u.Type}
}

type Repository struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Private         bool     `json:"private"`
	Owner           *UserRef `json:"owner"`
	Description     *string  `json:"description"`
	Fork            bool     `json:"fork"`
	Archived        bool     `json:"archived"`
	IsTemplate      bool     `json:"is_template"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	PushedAt        string   `json:"pushed_at"`
	Size            int      `json:"size"`
	StargazersCount int      `json:"stargazers_count"`
	WatchersCount   int      `json:"watchers_count"`
	ForksCount      int      `json:"forks_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	Language        *string  `json:"language"`
	DefaultBranch   string   `json:"default_branch"`
	Visibility      string   `json:"visibility"`
	Score           float64  `json:"score"`
}

type Branch struct {
	RepositoryID int    `json:"repository_id"`
	Name         string `json:"name"`
	SHA          string `json:"sha"`
	Protected    bool   `json:"protected"`
}

type Commit struct {
	SHA          string `json:"sha"`
	RepositoryID int    `json:"repository_id"`
	Message      string `json:"message"`
	AuthorLogin  string `json:"author_login"`
	AuthorEmail  string `json:"author_email"`
	Date         string `json:"date"`
	ParentSHA    string `json:"parent_sha,omitempty"`
}

// FileContent is one versioned file, keyed in State.FileContents by
// "owner/repo:path:ref" where ref is a branch name.
type FileContent struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Content  string `json:"content"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
}

type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Issue struct {
	ID           int        `json:"id"`
	RepositoryID int        `json:"repository_id"`
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	Body         *string    `json:"body"`
	State        string     `json:"state"`
	Locked       bool       `json:"locked"`
	User         *UserRef   `json:"user"`
	Assignee     *UserRef   `json:"assignee"`
	Assignees    []*UserRef `json:"assignees"`
	Labels       []Label    `json:"labels"`
	Comments     int        `json:"comments"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
	ClosedAt     *string    `json:"closed_at"`
	Score        float64    `json:"score"`
}

type IssueComment struct {
	ID        int      `json:"id"`
	IssueID   int      `json:"issue_id"`
	Body      string   `json:"body"`
	User      *UserRef `json:"user"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// BranchRef names one side of a pull request.
type BranchRef struct {
	Label string `json:"label"`
	Ref   string `json:"ref"`
	SHA   string `json:"sha"`
}

type PullRequest struct {
	ID             int       `json:"id"`
	RepositoryID   int       `json:"repository_id"`
	Number         int       `json:"number"`
	Title          string    `json:"title"`
	Body           *string   `json:"body"`
	State          string    `json:"state"`
	Draft          bool      `json:"draft"`
	Merged         bool      `json:"merged"`
	User           *UserRef  `json:"user"`
	Assignee       *UserRef  `json:"assignee"`
	Labels         []Label   `json:"labels"`
	Head           BranchRef `json:"head"`
	Base           BranchRef `json:"base"`
	Comments       int       `json:"comments"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
	ClosedAt       *string   `json:"closed_at"`
	MergedAt       *string   `json:"merged_at"`
	MergedBy       *UserRef  `json:"merged_by"`
	MergeCommitSHA *string   `json:"merge_commit_sha"`
	Score          float64   `json:"score"`
}

type State struct {
	Users         []*User                 `json:"users"`
	Repositories  []*Repository           `json:"repositories"`
	Branches      []*Branch               `json:"branches"`
	Commits       []*Commit               `json:"commits"`
	FileContents  map[string]*FileContent `json:"file_contents"`
	Issues        []*Issue                `json:"issues"`
	IssueComments []*IssueComment         `json:"issue_comments"`
	PullRequests  []*PullRequest          `json:"pull_requests"`
	CurrentUserID int                     `json:"current_user_id"`
	Counters      map[string]int          `json:"counters"`
}

const (
	shaHelloMain   = "a1f5c3d9e2b84760aa315f9d2c8e4b6a7d901234"
	shaHelloPerf   = "b2e6d4f8c1a09573bb426e0d3c9f5b7a8e012345"
	shaLegacyHead  = "c3f7e5d9a2b18460cc537f1e4d0a6c8b9f123456"
	shaAutomation  = "d4a8f6e0b3c29571dd648a2f5e1b7d9c0a234567"
	defaultLabelHx = "ededed"
)

func seedState() *State {
	octocat := &User{ID: 1, Login: "octocat", Name: "Mona Lisa Octocat", Email: "octocat@example.com", Type: "User"}
	hubot := &User{ID: 2, Login: "hubot", Name: "Hubot", Email: "hubot@example.com", Type: "User"}
	acme := &User{ID: 3, Login: "acme", Name: "Acme Labs", Type: "Organization"}

	goLang := "Go"
	pyLang := "Python"
	jsLang := "JavaScript"
	helloDesc := "Greets the world in several languages"
	legacyDesc := "Old maintenance scripts, kept for reference"
	kitDesc := "Task automation toolkit"

	crashBody := "Running the parser with an empty file panics instead of returning an error."
	docsBody := "The CLI flags are undocumented."
	prBody := "Avoids re-tokenizing the input on every pass."
	commentBody := "Reproduced on the latest commit, the tokenizer assumes a non-empty buffer."
	issueClosed := "2025-01-20T16:00:00Z"

	return &State{
		Users: []*User{octocat, hubot, acme},
		Repositories: []*Repository{
			{
				ID: 1, Name: "hello-world", FullName: "octocat/hello-world",
				Owner: octocat.ref(), Description: &helloDesc,
				CreatedAt: "2023-06-01T10:00:00Z", UpdatedAt: "2025-02-10T08:00:00Z", PushedAt: "2025-02-10T08:00:00Z",
				Size: 128, StargazersCount: 42, WatchersCount: 42, ForksCount: 9, OpenIssuesCount: 2,
				Language: &goLang, DefaultBranch: "main", Visibility: "public", Score: 12.5,
			},
			{
				ID: 2, Name: "legacy-scripts", FullName: "octocat/legacy-scripts",
				Owner: octocat.ref(), Description: &legacyDesc, Archived: true,
				CreatedAt: "2021-01-15T09:00:00Z", UpdatedAt: "2022-07-01T12:00:00Z", PushedAt: "2022-07-01T12:00:00Z",
				Size: 12, StargazersCount: 3, WatchersCount: 3,
				Language: &pyLang, DefaultBranch: "master", Visibility: "public", Score: 2.0,
			},
			{
				ID: 3, Name: "automation-kit", FullName: "hubot/automation-kit",
				Private: true, Owner: hubot.ref(), Description: &kitDesc, Fork: true,
				CreatedAt: "2024-02-20T11:00:00Z", UpdatedAt: "2025-01-05T14:30:00Z", PushedAt: "2025-01-05T14:30:00Z",
				Size: 512, StargazersCount: 120, WatchersCount: 120, ForksCount: 30,
				Language: &jsLang, DefaultBranch: "main", Visibility: "private", Score: 30.0,
			},
		},
		Branches: []*Branch{
			{RepositoryID: 1, Name: "main", SHA: shaHelloMain},
			{RepositoryID: 1, Name: "perf-tuning", SHA: shaHelloPerf},
			{RepositoryID: 2, Name: "master", SHA: shaLegacyHead},
			{RepositoryID: 3, Name: "main", SHA: shaAutomation},
		},
		Commits: []*Commit{
			{SHA: shaHelloMain, RepositoryID: 1, Message: "Initial commit", AuthorLogin: "octocat", AuthorEmail: "octocat@example.com", Date: "2023-06-01T10:00:00Z"},
			{SHA: shaHelloPerf, RepositoryID: 1, Message: "Tune the parser hot path", AuthorLogin: "octocat", AuthorEmail: "octocat@example.com", Date: "2025-02-01T09:00:00Z", ParentSHA: shaHelloMain},
			{SHA: shaLegacyHead, RepositoryID: 2, Message: "Final cleanup", AuthorLogin: "octocat", AuthorEmail: "octocat@example.com", Date: "2022-07-01T12:00:00Z"},
			{SHA: shaAutomation, RepositoryID: 3, Message: "Wire the scheduler", AuthorLogin: "hubot", AuthorEmail: "hubot@example.com", Date: "2025-01-05T14:30:00Z"},
		},
		FileContents: map[string]*FileContent{
			"octocat/hello-world:README.md:main": {
				Type: "file", Encoding: "base64", Name: "README.md", Path: "README.md",
				// "# hello-world\n\nGreets the world.\n"
				Content: "IyBoZWxsby13b3JsZAoKR3JlZXRzIHRoZSB3b3JsZC4K",
				SHA:     "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", Size: 34,
			},
			"octocat/hello-world:docs/guide.md:main": {
				Type: "file", Encoding: "base64", Name: "guide.md", Path: "docs/guide.md",
				// "# Guide\n"
				Content: "IyBHdWlkZQo=",
				SHA:     "f70f10e4db19068f79bc43844b49f3eece45c4e8", Size: 8,
			},
		},
		Issues: []*Issue{
			{
				ID: 1, RepositoryID: 1, Number: 1, Title: "Parser crashes on empty input",
				Body: &crashBody, State: "open", User: octocat.ref(), Assignee: hubot.ref(),
				Assignees: []*UserRef{hubot.ref()}, Labels: []Label{{Name: "bug", Color: "d73a4a"}},
				Comments: 1, CreatedAt: "2025-01-10T10:00:00Z", UpdatedAt: "2025-01-12T10:00:00Z", Score: 5.0,
			},
			{
				ID: 2, RepositoryID: 1, Number: 2, Title: "Document the CLI flags",
				Body: &docsBody, State: "closed", User: hubot.ref(),
				Labels:   []Label{{Name: "documentation", Color: "0075ca"}},
				ClosedAt: &issueClosed,
				CreatedAt: "2025-01-05T08:00:00Z", UpdatedAt: "2025-01-20T16:00:00Z", Score: 3.0,
			},
		},
		IssueComments: []*IssueComment{
			{ID: 1, IssueID: 1, Body: commentBody, User: hubot.ref(), CreatedAt: "2025-01-12T10:00:00Z", UpdatedAt: "2025-01-12T10:00:00Z"},
		},
		PullRequests: []*PullRequest{
			{
				ID: 1, RepositoryID: 1, Number: 1, Title: "Speed up the parser",
				Body: &prBody, State: "open", User: octocat.ref(),
				Head: BranchRef{Label: "octocat:perf-tuning", Ref: "perf-tuning", SHA: shaHelloPerf},
				Base: BranchRef{Label: "octocat:main", Ref: "main", SHA: shaHelloMain},
				CreatedAt: "2025-02-01T09:30:00Z", UpdatedAt: "2025-02-02T09:30:00Z", Score: 4.0,
			},
		},
		CurrentUserID: 1,
		Counters: map[string]int{
			"repositories":  3,
			"issues":        2,
			"comments":      1,
			"pull_requests": 1,
		},
	}
}
