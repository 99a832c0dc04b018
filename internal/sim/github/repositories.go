package github

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"mimic/internal/api"
	"mimic/internal/sim/args"
	"mimic/internal/store"
)

var (
	shaRe      = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
	repoNameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
)

func sha1Hex(parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func blobSHA(content []byte) string {
	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", len(content))
	h.Write(content)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func pageArgs(a map[string]interface{}) (int, int, error) {
	page, err := args.PositiveIntOr(a, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	perPage, err := args.IntOr(a, "per_page", 30)
	if err != nil {
		return 0, 0, err
	}
	if perPage < 1 || perPage > 100 {
		return 0, 0, api.NewInvalidInputError("per_page must be between 1 and 100")
	}
	return page, perPage, nil
}

func repoArgs(a map[string]interface{}) (string, string, error) {
	owner, err := args.RequiredString(a, "owner")
	if err != nil {
		return "", "", err
	}
	repo, err := args.RequiredString(a, "repo")
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(owner) == "" || strings.ContainsAny(owner, " \t") {
		return "", "", api.NewFieldValidationError("owner", "must be a non-empty name without whitespace")
	}
	if strings.TrimSpace(repo) == "" || strings.ContainsAny(repo, " \t") {
		return "", "", api.NewFieldValidationError("repo", "must be a non-empty name without whitespace")
	}
	return owner, repo, nil
}

func fileKey(fullName, path, ref string) string {
	return fmt.Sprintf("%s:%s:%s", fullName, path, ref)
}

func (s *Simulator) searchRepositories(a map[string]interface{}) (interface{}, error) {
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
	if sortBy != "" && sortBy != "stars" && sortBy != "forks" && sortBy != "updated" {
		return nil, api.NewInvalidInputError("invalid sort option %q, use stars, forks, or updated", sortBy)
	}

	terms, qualifiers, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	searchIn := qualifiers["in"]
	if searchIn == "" {
		searchIn = "name,description"
	}

	var matched []*Repository
	err = s.store.View(func(st *State) error {
		for _, repo := range st.Repositories {
			ok := true
			for key, value := range qualifiers {
				if key == "in" {
					continue
				}
				if !repoMatchesQualifier(repo, key, value) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			if len(terms) > 0 {
				var parts []string
				for _, field := range strings.Split(searchIn, ",") {
					switch strings.TrimSpace(field) {
					case "name":
						parts = append(parts, strings.ToLower(repo.Name))
					case "description":
						if repo.Description != nil {
							parts = append(parts, strings.ToLower(*repo.Description))
						}
					}
				}
				if !termsMatch(terms, strings.Join(parts, " ")) {
					continue
				}
			}
			matched = append(matched, repo)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	desc := order != "asc"
	switch sortBy {
	case "stars":
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return matched[i].StargazersCount > matched[j].StargazersCount
			}
			return matched[i].StargazersCount < matched[j].StargazersCount
		})
	case "forks":
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return matched[i].ForksCount > matched[j].ForksCount
			}
			return matched[i].ForksCount < matched[j].ForksCount
		})
	case "updated":
		sort.SliceStable(matched, func(i, j int) bool {
			ti, tj := parseRecordTime(matched[i].UpdatedAt), parseRecordTime(matched[j].UpdatedAt)
			if desc {
				return ti.After(tj)
			}
			return ti.Before(tj)
		})
	default:
		// Best match: highest relevance score first.
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Score > matched[j].Score })
	}

	start, end := paginate(len(matched), page, perPage)
	items := make([]map[string]interface{}, 0, end-start)
	for _, repo := range matched[start:end] {
		items = append(items, formatRepository(repo))
	}
	return map[string]interface{}{
		"search_results": map[string]interface{}{
			"total_count":        len(matched),
			"incomplete_results": false,
			"items":              items,
		},
	}, nil
}

func (s *Simulator) createRepository(a map[string]interface{}) (interface{}, error) {
	name, err := args.RequiredString(a, "name")
	if err != nil {
		return nil, err
	}
	if !repoNameRe.MatchString(name) || name == "." || name == ".." {
		return nil, api.NewFieldValidationError("name", "must be 1-100 alphanumeric, dot, hyphen, or underscore characters")
	}
	description, hasDesc, err := args.String(a, "description")
	if err != nil {
		return nil, err
	}
	private, err := args.BoolOr(a, "private", false)
	if err != nil {
		return nil, err
	}
	autoInit, err := args.BoolOr(a, "auto_init", false)
	if err != nil {
		return nil, err
	}

	var created *Repository
	err = s.store.Update(func(st *State) error {
		owner, err := currentUser(st)
		if err != nil {
			return err
		}
		fullName := owner.Login + "/" + name
		for _, r := range st.Repositories {
			if strings.EqualFold(r.FullName, fullName) {
				return api.NewDuplicateError("repository", fullName)
			}
		}
		now := s.timestamp()
		visibility := "public"
		if private {
			visibility = "private"
		}
		created = &Repository{
			ID:         store.NextCounter(st.Counters, "repositories"),
			Name:       name,
			FullName:   fullName,
			Private:    private,
			Owner:      owner.ref(),
			CreatedAt:  now,
			UpdatedAt:  now,
			PushedAt:   now,
			Visibility: visibility,
		}
		if hasDesc {
			created.Description = &description
		}
		if autoInit {
			created.DefaultBranch = "main"
			created.Size = 1
			initialSHA := sha1Hex("commit", fullName, now, "Initial commit")
			st.Commits = append(st.Commits, &Commit{
				SHA:          initialSHA,
				RepositoryID: created.ID,
				Message:      "Initial commit",
				AuthorLogin:  owner.Login,
				AuthorEmail:  owner.Email,
				Date:         now,
			})
			st.Branches = append(st.Branches, &Branch{
				RepositoryID: created.ID,
				Name:         "main",
				SHA:          initialSHA,
			})
		}
		st.Repositories = append(st.Repositories, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formatRepository(created), nil
}

func (s *Simulator) forkRepository(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	organization, hasOrg, err := args.String(a, "organization")
	if err != nil {
		return nil, err
	}
	if hasOrg && strings.TrimSpace(organization) == "" {
		return nil, api.NewFieldValidationError("organization", "must not be empty")
	}

	var fork *Repository
	err = s.store.Update(func(st *State) error {
		source, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		target, err := currentUser(st)
		if err != nil {
			return err
		}
		if hasOrg {
			org := findUser(st, organization)
			if org == nil || org.Type != "Organization" {
				return api.NewNotFoundErrorf("organization %q not found", organization)
			}
			target = org
		}
		fullName := target.Login + "/" + source.Name
		for _, r := range st.Repositories {
			if strings.EqualFold(r.FullName, fullName) {
				return api.NewDuplicateErrorf("repository %q already exists for %q", source.Name, target.Login)
			}
		}
		now := s.timestamp()
		copied := *source
		fork = &copied
		fork.ID = store.NextCounter(st.Counters, "repositories")
		fork.FullName = fullName
		fork.Owner = target.ref()
		fork.Fork = true
		fork.CreatedAt = now
		fork.UpdatedAt = now
		fork.PushedAt = now
		fork.StargazersCount = 0
		fork.WatchersCount = 0
		fork.ForksCount = 0
		fork.OpenIssuesCount = 0
		fork.Score = 0
		st.Repositories = append(st.Repositories, fork)
		source.ForksCount++

		for _, b := range st.Branches {
			if b.RepositoryID == source.ID {
				st.Branches = append(st.Branches, &Branch{
					RepositoryID: fork.ID,
					Name:         b.Name,
					SHA:          b.SHA,
				})
			}
		}
		prefix := source.FullName + ":"
		for key, fc := range st.FileContents {
			if strings.HasPrefix(key, prefix) {
				copiedFile := *fc
				st.FileContents[fullName+":"+key[len(prefix):]] = &copiedFile
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return formatRepository(fork), nil
}

func (s *Simulator) createBranch(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	branch, err := args.RequiredString(a, "branch")
	if err != nil {
		return nil, err
	}
	sha, err := args.RequiredString(a, "sha")
	if err != nil {
		return nil, err
	}
	if !shaRe.MatchString(sha) {
		return nil, api.NewFieldValidationError("sha", "must be a 40-character hexadecimal string")
	}

	var fullName string
	err = s.store.Update(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		fullName = r.FullName
		found := false
		for _, c := range st.Commits {
			if c.RepositoryID == r.ID && strings.EqualFold(c.SHA, sha) {
				found = true
				break
			}
		}
		if !found {
			return api.NewNotFoundErrorf("commit %q not found in repository %q", sha, r.FullName)
		}
		if findBranch(st, r.ID, branch) != nil {
			return api.NewDuplicateError("branch", branch)
		}
		st.Branches = append(st.Branches, &Branch{
			RepositoryID: r.ID,
			Name:         branch,
			SHA:          strings.ToLower(sha),
		})
		r.UpdatedAt = s.timestamp()
		return nil
	})
	if err != nil {
		return nil, err
	}
	ref := "refs/heads/" + branch
	return map[string]interface{}{
		"ref":     ref,
		"node_id": nodeID("Ref", fullName+":"+ref),
		"object": map[string]interface{}{
			"type": "commit",
			"sha":  strings.ToLower(sha),
		},
	}, nil
}

func (s *Simulator) listBranches(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	page, perPage, err := pageArgs(a)
	if err != nil {
		return nil, err
	}

	var branches []*Branch
	err = s.store.View(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		for _, b := range st.Branches {
			if b.RepositoryID == r.ID {
				branches = append(branches, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })

	start, end := paginate(len(branches), page, perPage)
	items := make([]map[string]interface{}, 0, end-start)
	for _, b := range branches[start:end] {
		items = append(items, map[string]interface{}{
			"name":      b.Name,
			"commit":    map[string]interface{}{"sha": b.SHA},
			"protected": b.Protected,
		})
	}
	return items, nil
}

func validateFilePath(path string) (string, error) {
	cleaned := strings.Trim(strings.TrimSpace(path), "/")
	if cleaned == "" {
		return "", api.NewFieldValidationError("path", "must not be empty")
	}
	if strings.Contains(cleaned, "..") {
		return "", api.NewFieldValidationError("path", "must not contain parent directory references")
	}
	if strings.Contains(cleaned, `\`) {
		return "", api.NewFieldValidationError("path", "must not contain backslashes")
	}
	if strings.Contains(cleaned, "//") {
		return "", api.NewFieldValidationError("path", "must not contain consecutive slashes")
	}
	return cleaned, nil
}

func (s *Simulator) createOrUpdateFile(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	rawPath, err := args.RequiredString(a, "path")
	if err != nil {
		return nil, err
	}
	path, err := validateFilePath(rawPath)
	if err != nil {
		return nil, err
	}
	message, err := args.RequiredString(a, "message")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, api.NewFieldValidationError("message", "must not be empty")
	}
	content, err := args.RequiredString(a, "content")
	if err != nil {
		return nil, err
	}
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, api.NewFieldValidationError("content", "must be a valid base64 encoded string")
	}
	branch, _, err := args.String(a, "branch")
	if err != nil {
		return nil, err
	}
	blobArg, hasSHA, err := args.String(a, "sha")
	if err != nil {
		return nil, err
	}
	if hasSHA && !shaRe.MatchString(blobArg) {
		return nil, api.NewFieldValidationError("sha", "must be a 40-character hexadecimal string")
	}

	var response map[string]interface{}
	err = s.store.Update(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		if r.Archived {
			return api.NewInvalidStateError("repository %q is archived and cannot be modified", r.FullName)
		}
		target := branch
		if target == "" {
			target = r.DefaultBranch
		}
		if target == "" {
			return api.NewNotFoundErrorf("repository %q has no default branch and no branch was specified", r.FullName)
		}
		b := findBranch(st, r.ID, target)
		if b == nil {
			return api.NewNotFoundErrorf("branch %q not found in repository %q", target, r.FullName)
		}

		key := fileKey(r.FullName, path, target)
		existing := st.FileContents[key]
		if existing != nil {
			if !hasSHA {
				return api.NewFieldValidationError("sha", "required when updating an existing file")
			}
			if !strings.EqualFold(existing.SHA, blobArg) {
				return api.NewInvalidStateError("file sha does not match, the file has changed since the sha was obtained")
			}
		}

		author, err := currentUser(st)
		if err != nil {
			return err
		}
		now := s.timestamp()
		newBlob := blobSHA(decoded)
		commitSHA := sha1Hex("commit", key, newBlob, b.SHA, message, now)
		st.Commits = append(st.Commits, &Commit{
			SHA:          commitSHA,
			RepositoryID: r.ID,
			Message:      message,
			AuthorLogin:  author.Login,
			AuthorEmail:  author.Email,
			Date:         now,
			ParentSHA:    b.SHA,
		})
		name := path
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			name = path[idx+1:]
		}
		st.FileContents[key] = &FileContent{
			Type:     "file",
			Encoding: "base64",
			Name:     name,
			Path:     path,
			Content:  base64.StdEncoding.EncodeToString(decoded),
			SHA:      newBlob,
			Size:     len(decoded),
		}
		b.SHA = commitSHA
		r.PushedAt = now
		r.UpdatedAt = now

		actor := map[string]interface{}{"name": author.Name, "email": author.Email, "date": now}
		response = map[string]interface{}{
			"content": map[string]interface{}{
				"name": name,
				"path": path,
				"sha":  newBlob,
				"size": len(decoded),
				"type": "file",
			},
			"commit": map[string]interface{}{
				"sha":       commitSHA,
				"message":   message,
				"author":    actor,
				"committer": actor,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *Simulator) getFileContents(a map[string]interface{}) (interface{}, error) {
	owner, repo, err := repoArgs(a)
	if err != nil {
		return nil, err
	}
	path, err := args.RequiredString(a, "path")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, api.NewFieldValidationError("path", "must not be empty")
	}
	ref, _, err := args.String(a, "ref")
	if err != nil {
		return nil, err
	}

	var result interface{}
	err = s.store.View(func(st *State) error {
		r, err := findRepo(st, owner, repo)
		if err != nil {
			return err
		}
		target := ref
		if target == "" {
			target = r.DefaultBranch
		}
		if target == "" {
			return api.NewNotFoundErrorf("repository %q has no default branch and no ref was specified", r.FullName)
		}
		b := findBranch(st, r.ID, target)
		if b == nil {
			// A commit SHA at the tip of a branch also resolves.
			for _, cand := range st.Branches {
				if cand.RepositoryID == r.ID && strings.EqualFold(cand.SHA, target) {
					b = cand
					break
				}
			}
		}
		if b == nil {
			return api.NewNotFoundErrorf("ref %q not found in repository %q", target, r.FullName)
		}

		dirPath := strings.Trim(path, "/")
		if dirPath != "" {
			if fc, ok := st.FileContents[fileKey(r.FullName, dirPath, b.Name)]; ok {
				result = fc
				return nil
			}
		}

		// Fall back to a directory listing built from matching keys.
		prefix := r.FullName + ":"
		if dirPath != "" {
			prefix += dirPath + "/"
		}
		suffix := ":" + b.Name
		seen := map[string]bool{}
		var entries []map[string]interface{}
		for key, fc := range st.FileContents {
			if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, suffix) {
				continue
			}
			relative := key[len(prefix) : len(key)-len(suffix)]
			if idx := strings.Index(relative, "/"); idx >= 0 {
				dir := relative[:idx]
				if seen[dir] {
					continue
				}
				seen[dir] = true
				dirFull := dir
				if dirPath != "" {
					dirFull = dirPath + "/" + dir
				}
				entries = append(entries, map[string]interface{}{
					"type": "dir",
					"size": 0,
					"name": dir,
					"path": dirFull,
					"sha":  sha1Hex("tree", r.FullName, dirFull),
				})
			} else {
				entries = append(entries, map[string]interface{}{
					"type": fc.Type,
					"size": fc.Size,
					"name": fc.Name,
					"path": fc.Path,
					"sha":  fc.SHA,
				})
			}
		}
		if len(entries) == 0 {
			if dirPath == "" {
				result = []map[string]interface{}{}
				return nil
			}
			return api.NewNotFoundErrorf("path %q not found at ref %q in repository %q", path, b.Name, r.FullName)
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i]["name"].(string) < entries[j]["name"].(string)
		})
		result = entries
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
