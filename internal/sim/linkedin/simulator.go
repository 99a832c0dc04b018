// Package linkedin simulates the LinkedIn UGC posts resource: create,
// fetch with field projection, search by author, patch-style update, and
// delete. Posts are stored as loose JSON documents keyed by their URN so
// the optional content blocks (media, polls, carousels, ad context) pass
// through without a rigid schema.
package linkedin

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"mimic/internal/api"
	"mimic/internal/sim/args"
	"mimic/internal/store"
)

// Post documents are generic JSON objects; the validated top-level fields
// are enforced on the way in.
type Post = map[string]interface{}

// State is the posts database plus the sequential URN counter.
type State struct {
	Posts      map[string]Post `json:"posts"`
	NextPostID int             `json:"next_post_id"`
}

var (
	authorURNRe = regexp.MustCompile(`^urn:li:(person|organization):[0-9]+$`)
	postURNRe   = regexp.MustCompile(`^urn:li:ugcPost:[0-9]+$`)
)

var visibilityValues = map[string]bool{
	"CONNECTIONS": true, "PUBLIC": true, "LOGGED_IN": true, "CONTAINER": true,
}

var lifecycleValues = map[string]bool{
	"DRAFT": true, "PUBLISHED": true, "PUBLISH_REQUESTED": true, "PUBLISH_FAILED": true,
}

var feedDistributionValues = map[string]bool{
	"MAIN_FEED": true, "NONE": true,
}

var callToActionValues = map[string]bool{
	"APPLY": true, "DOWNLOAD": true, "VIEW_QUOTE": true, "LEARN_MORE": true,
	"SIGN_UP": true, "SUBSCRIBE": true, "REGISTER": true, "JOIN": true,
	"ATTEND": true, "REQUEST_DEMO": true, "SEE_MORE": true, "BUY_NOW": true,
	"SHOP_NOW": true,
}

func seedState() *State {
	return &State{
		Posts: map[string]Post{
			"urn:li:ugcPost:1": {
				"id":             "urn:li:ugcPost:1",
				"author":         "urn:li:person:1",
				"commentary":     "Excited to share that our team shipped the new release today.",
				"visibility":     "PUBLIC",
				"lifecycleState": "PUBLISHED",
				"distribution":   map[string]interface{}{"feedDistribution": "MAIN_FEED"},
				"createdAt":      int64(1717430400000),
				"lastModifiedAt": int64(1717430400000),
			},
			"urn:li:ugcPost:2": {
				"id":             "urn:li:ugcPost:2",
				"author":         "urn:li:organization:5",
				"commentary":     "We are hiring across the platform organization.",
				"visibility":     "PUBLIC",
				"lifecycleState": "PUBLISHED",
				"distribution":   map[string]interface{}{"feedDistribution": "MAIN_FEED"},
				"createdAt":      int64(1717516800000),
				"lastModifiedAt": int64(1717516800000),
			},
		},
		NextPostID: 3,
	}
}

// Simulator implements the LinkedIn posts tool surface.
type Simulator struct {
	store *store.Store[State]
}

func New() *Simulator {
	return &Simulator{store: store.New(seedState)}
}

func (s *Simulator) Name() string { return "linkedin" }

func (s *Simulator) SaveState(path string) error { return s.store.SaveState(path) }
func (s *Simulator) LoadState(path string) error { return s.store.LoadState(path) }
func (s *Simulator) ResetState()                 { s.store.Reset() }

func (s *Simulator) WatchState(ctx context.Context, path string) error {
	return s.store.Watch(ctx, path)
}

func validatePostURN(postID string) error {
	if !postURNRe.MatchString(postID) {
		return api.NewFieldValidationError("post_id",
			"must be in URN format (e.g., 'urn:li:ugcPost:1'), but got %q", postID)
	}
	return nil
}

// validateCreatePayload enforces the top-level contract of a new post:
// required author/commentary/visibility/distribution, PUBLISHED
// lifecycle, and the ad-context conditional requirements.
func validateCreatePayload(postData map[string]interface{}) error {
	author, err := args.RequiredString(postData, "author")
	if err != nil {
		return err
	}
	if !authorURNRe.MatchString(author) {
		return api.NewFieldValidationError("author",
			"invalid URN format %q, expected 'urn:li:person:1' or 'urn:li:organization:1'", author)
	}

	if _, err := args.RequiredString(postData, "commentary"); err != nil {
		return err
	}

	visibility, err := args.RequiredString(postData, "visibility")
	if err != nil {
		return err
	}
	if !visibilityValues[visibility] {
		return api.NewFieldValidationError("visibility", "invalid value %q", visibility)
	}

	lifecycle, err := args.RequiredString(postData, "lifecycleState")
	if err != nil {
		return err
	}
	if !lifecycleValues[lifecycle] {
		return api.NewFieldValidationError("lifecycleState", "invalid value %q", lifecycle)
	}
	if lifecycle != "PUBLISHED" {
		return api.NewInvalidStateError("lifecycleState must be PUBLISHED at creation time, got %q", lifecycle)
	}

	distribution, ok, err := args.Object(postData, "distribution")
	if err != nil {
		return err
	}
	if !ok {
		return api.NewFieldValidationError("distribution", "is required")
	}
	feedDistribution, err := args.RequiredString(distribution, "feedDistribution")
	if err != nil {
		return err
	}
	if !feedDistributionValues[feedDistribution] {
		return api.NewFieldValidationError("distribution.feedDistribution",
			"must be one of MAIN_FEED, NONE, got %q", feedDistribution)
	}

	if cta, ok, err := args.String(postData, "contentCallToActionLabel"); err != nil {
		return err
	} else if ok && !callToActionValues[cta] {
		return api.NewFieldValidationError("contentCallToActionLabel", "invalid value %q", cta)
	}

	if landing, ok, err := args.String(postData, "contentLandingPage"); err != nil {
		return err
	} else if ok {
		if u, err := url.Parse(landing); err != nil || u.Scheme == "" || u.Host == "" {
			return api.NewFieldValidationError("contentLandingPage", "must be a valid URL, got %q", landing)
		}
	}

	adContext, hasAdContext, err := args.Object(postData, "adContext")
	if err != nil {
		return err
	}
	if hasAdContext {
		if err := validateAdContext(adContext, postData); err != nil {
			return err
		}
	}
	return nil
}

func validateAdContext(adContext, postData map[string]interface{}) error {
	isDsc, _, err := args.Bool(adContext, "isDsc")
	if err != nil {
		return err
	}
	if isDsc {
		for _, required := range []string{"dscAdAccount", "dscAdType", "dscStatus"} {
			if _, err := args.RequiredString(adContext, required); err != nil {
				return api.NewFieldValidationError("adContext", "%s is required when isDsc is true", required)
			}
		}
	}
	objective, _, err := args.String(adContext, "objective")
	if err != nil {
		return err
	}
	if objective == "WEBSITE_VISIT" {
		if _, err := args.RequiredString(postData, "contentLandingPage"); err != nil {
			return api.NewFieldValidationError("contentLandingPage",
				"is required when the campaign objective is WEBSITE_VISIT")
		}
	}
	return nil
}

// createPost publishes a new UGC post and assigns the next sequential
// post URN.
func (s *Simulator) createPost(postData map[string]interface{}) (interface{}, error) {
	if err := validateCreatePayload(postData); err != nil {
		return nil, err
	}

	var created Post
	err := s.store.Update(func(st *State) error {
		postID := "urn:li:ugcPost:" + itoa(st.NextPostID)
		st.NextPostID++

		nowMs := time.Now().UTC().UnixMilli()
		post := Post{}
		for k, v := range postData {
			post[k] = v
		}
		post["id"] = postID
		post["createdAt"] = nowMs
		post["lastModifiedAt"] = nowMs

		st.Posts[postID] = post
		created = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// getPost fetches a post, optionally projecting a subset of fields.
// Projections accept "id,author" or "(id,author)".
func (s *Simulator) getPost(postID, projection string, start, count int) (interface{}, error) {
	if err := validatePostURN(postID); err != nil {
		return nil, err
	}
	if start < 0 {
		return nil, api.NewFieldValidationError("start", "must be a non-negative integer")
	}
	if count <= 0 {
		return nil, api.NewFieldValidationError("count", "must be a positive integer")
	}

	var post Post
	err := s.store.View(func(st *State) error {
		found, ok := st.Posts[postID]
		if !ok {
			return api.NewNotFoundErrorf("post not found with id: %s", postID)
		}
		post = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if projection != "" {
		trimmed := strings.NewReplacer("(", "", ")", "").Replace(projection)
		projected := Post{}
		for _, field := range strings.Split(trimmed, ",") {
			field = strings.TrimSpace(field)
			value, ok := post[field]
			if !ok {
				return nil, api.NewFieldValidationError("projection", "unknown field %q", field)
			}
			projected[field] = value
		}
		post = projected
	}

	return map[string]interface{}{"data": post}, nil
}

// findPostsByAuthor lists an author's posts with start/count pagination,
// ordered by creation time.
func (s *Simulator) findPostsByAuthor(author string, start, count int) (interface{}, error) {
	if strings.TrimSpace(author) == "" {
		return nil, api.NewFieldValidationError("author", "cannot be empty or whitespace-only")
	}
	if !authorURNRe.MatchString(author) {
		return nil, api.NewFieldValidationError("author",
			"must be in valid URN format (e.g., 'urn:li:person:1'), but got %q", author)
	}
	if start < 0 {
		return nil, api.NewFieldValidationError("start", "must be a non-negative integer")
	}
	if count < 0 {
		return nil, api.NewFieldValidationError("count", "must be a non-negative integer")
	}

	matched := []Post{}
	err := s.store.View(func(st *State) error {
		for _, post := range st.Posts {
			if post["author"] == author {
				matched = append(matched, post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matched, func(i, j int) bool {
		ci, cj := asInt64(matched[i]["createdAt"]), asInt64(matched[j]["createdAt"])
		if ci != cj {
			return ci < cj
		}
		return asString(matched[i]["id"]) < asString(matched[j]["id"])
	})

	if start >= len(matched) {
		matched = []Post{}
	} else {
		end := start + count
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return map[string]interface{}{"data": matched}, nil
}

// updatable is the patchable field set; anything else is rejected.
var updatable = map[string]bool{
	"commentary":               true,
	"lifecycleState":           true,
	"contentLandingPage":       true,
	"adContext":                true,
	"contentCallToActionLabel": true,
}

// updatePost applies a patch to an existing post and refreshes
// lastModifiedAt.
func (s *Simulator) updatePost(postID string, postData map[string]interface{}) (interface{}, error) {
	if err := validatePostURN(postID); err != nil {
		return nil, err
	}
	if len(postData) == 0 {
		return nil, api.NewFieldValidationError("post_data", "must contain at least one field to update")
	}
	for key := range postData {
		if !updatable[key] {
			return nil, api.NewFieldValidationError("post_data", "field %q cannot be updated", key)
		}
	}
	if lifecycle, ok, err := args.String(postData, "lifecycleState"); err != nil {
		return nil, err
	} else if ok && lifecycle != "PUBLISHED" {
		return nil, api.NewInvalidStateError("lifecycleState must be PUBLISHED for updates, got %q", lifecycle)
	}
	if cta, ok, err := args.String(postData, "contentCallToActionLabel"); err != nil {
		return nil, err
	} else if ok && !callToActionValues[cta] {
		return nil, api.NewFieldValidationError("contentCallToActionLabel", "invalid value %q", cta)
	}

	var updated Post
	err := s.store.Update(func(st *State) error {
		post, ok := st.Posts[postID]
		if !ok {
			return api.NewNotFoundErrorf("post not found with id: %s", postID)
		}
		for k, v := range postData {
			post[k] = v
		}
		post["lastModifiedAt"] = time.Now().UTC().UnixMilli()
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"data": updated}, nil
}

// deletePost removes a post by URN.
func (s *Simulator) deletePost(postID string) (interface{}, error) {
	err := s.store.Update(func(st *State) error {
		if _, ok := st.Posts[postID]; !ok {
			return api.NewNotFoundErrorf("post not found with id: %s", postID)
		}
		delete(st.Posts, postID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": "Post " + postID + " deleted."}, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
