package linkedin

import (
	"context"

	"mimic/internal/api"
	"mimic/internal/sim/args"
)

var postDataSchema = map[string]interface{}{
	"type":        "object",
	"description": "Dictionary containing UGC (User Generated Content) post fields.",
	"properties": map[string]interface{}{
		"author":     map[string]interface{}{"type": "string", "description": "URN of the post's author. Must be a person or organization URN."},
		"commentary": map[string]interface{}{"type": "string", "description": "User-generated commentary text for the post."},
		"distribution": map[string]interface{}{
			"type":        "object",
			"description": "Distribution settings, required.",
			"properties": map[string]interface{}{
				"feedDistribution":               map[string]interface{}{"type": "string", "description": "Where to distribute. One of: 'MAIN_FEED', 'NONE'"},
				"targetEntities":                 map[string]interface{}{"type": "array", "description": "Targeting facets like geoLocations, industries, etc.", "items": map[string]interface{}{"type": "object"}},
				"thirdPartyDistributionChannels": map[string]interface{}{"type": "array", "description": "External platforms.", "items": map[string]interface{}{"type": "object"}},
			},
			"required": []string{"feedDistribution"},
		},
		"lifecycleState":           map[string]interface{}{"type": "string", "description": "Content lifecycle state. Must be PUBLISHED for creation."},
		"visibility":               map[string]interface{}{"type": "string", "description": "Member network visibility. One of: 'CONNECTIONS', 'PUBLIC', 'LOGGED_IN', 'CONTAINER'"},
		"contentLandingPage":       map[string]interface{}{"type": "string", "description": "URL opened when the member clicks on the content."},
		"adContext":                map[string]interface{}{"type": "object", "description": "Advertising metadata for ads or viral tracking."},
		"container":                map[string]interface{}{"type": "string", "description": "URN of the container entity holding the post."},
		"content":                  map[string]interface{}{"type": "object", "description": "Media content details (media, poll, multiImage, article, carousel, celebration, reference)."},
		"contentCallToActionLabel": map[string]interface{}{"type": "string", "description": "Call-to-action label displayed on the creative."},
		"isReshareDisabledByAuthor": map[string]interface{}{"type": "boolean", "description": "If true, disables resharing of the post."},
		"publishedAt":              map[string]interface{}{"type": "integer", "description": "Epoch timestamp when the content was published."},
		"reshareContext":           map[string]interface{}{"type": "object", "description": "Context information for re-shares."},
	},
	"required": []string{"author", "commentary", "distribution", "lifecycleState", "visibility"},
}

var updateDataSchema = map[string]interface{}{
	"type":        "object",
	"description": "Dictionary containing updated UGC post fields (patch semantics).",
	"properties": map[string]interface{}{
		"commentary":               map[string]interface{}{"type": "string", "description": "User-generated commentary text for the post."},
		"lifecycleState":           map[string]interface{}{"type": "string", "description": "Content lifecycle state. Must be PUBLISHED for updates."},
		"contentLandingPage":       map[string]interface{}{"type": "string", "description": "URL opened when the member clicks on the content."},
		"adContext":                map[string]interface{}{"type": "object", "description": "Ads-specific metadata (dscName, dscStatus)."},
		"contentCallToActionLabel": map[string]interface{}{"type": "string", "description": "Call-to-action label displayed on the creative."},
	},
}

// GetTools describes the LinkedIn posts tool surface.
func (s *Simulator) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "create_post",
			Description: "Create a LinkedIn UGC (User Generated Content) post with commentary, media content, optional call-to-action labels, and visibility restrictions.",
			Args: []api.ArgMetadata{
				{Name: "post_data", Type: "object", Required: true, Description: "UGC post fields.", Schema: postDataSchema},
			},
		},
		{
			Name:        "get_post_by_id",
			Description: "Retrieve a UGC post by its URN with optional field projection.",
			Args: []api.ArgMetadata{
				{Name: "post_id", Type: "string", Required: true, Description: "Unique identifier of the post to retrieve (e.g., 'urn:li:ugcPost:1')."},
				{Name: "projection", Type: "string", Description: "Comma-separated list of fields to return, optionally in parentheses (e.g., '(id,author)')."},
				{Name: "start", Type: "integer", Description: "Starting index for pagination. Defaults to 0."},
				{Name: "count", Type: "integer", Description: "Number of items to return. Defaults to 10."},
			},
		},
		{
			Name:        "find_posts_by_author",
			Description: "List posts created by the given author URN, with pagination.",
			Args: []api.ArgMetadata{
				{Name: "author", Type: "string", Required: true, Description: "Author URN used to filter posts (e.g., 'urn:li:person:1' or 'urn:li:organization:1')."},
				{Name: "start", Type: "integer", Description: "Starting index for pagination. Defaults to 0."},
				{Name: "count", Type: "integer", Description: "Maximum number of posts to return. Defaults to 10."},
			},
		},
		{
			Name:        "update_post",
			Description: "Update an existing post. Only provided fields are changed; lastModifiedAt is refreshed automatically.",
			Args: []api.ArgMetadata{
				{Name: "post_id", Type: "string", Required: true, Description: "Unique identifier of the post to update."},
				{Name: "post_data", Type: "object", Required: true, Description: "Updated UGC post fields.", Schema: updateDataSchema},
			},
		},
		{
			Name:        "delete_post_by_id",
			Description: "Delete a post by its URN.",
			Args: []api.ArgMetadata{
				{Name: "post_id", Type: "string", Required: true, Description: "Unique identifier of the post to delete."},
			},
		},
	}
}

// ExecuteTool dispatches a tool call to its handler.
func (s *Simulator) ExecuteTool(ctx context.Context, name string, a map[string]interface{}) (*api.CallToolResult, error) {
	result, err := s.dispatch(name, a)
	if err != nil {
		return nil, err
	}
	return api.NewResult(result), nil
}

func (s *Simulator) dispatch(name string, a map[string]interface{}) (interface{}, error) {
	switch name {
	case "create_post":
		postData, ok, err := args.Object(a, "post_data")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, api.NewFieldValidationError("post_data", "is required")
		}
		return s.createPost(postData)

	case "get_post_by_id":
		postID, err := args.RequiredString(a, "post_id")
		if err != nil {
			return nil, err
		}
		projection, err := args.StringOr(a, "projection", "")
		if err != nil {
			return nil, err
		}
		start, err := args.IntOr(a, "start", 0)
		if err != nil {
			return nil, err
		}
		count, err := args.IntOr(a, "count", 10)
		if err != nil {
			return nil, err
		}
		return s.getPost(postID, projection, start, count)

	case "find_posts_by_author":
		author, err := args.RequiredString(a, "author")
		if err != nil {
			return nil, err
		}
		start, err := args.IntOr(a, "start", 0)
		if err != nil {
			return nil, err
		}
		count, err := args.IntOr(a, "count", 10)
		if err != nil {
			return nil, err
		}
		return s.findPostsByAuthor(author, start, count)

	case "update_post":
		postID, err := args.RequiredString(a, "post_id")
		if err != nil {
			return nil, err
		}
		postData, ok, err := args.Object(a, "post_data")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, api.NewFieldValidationError("post_data", "is required")
		}
		return s.updatePost(postID, postData)

	case "delete_post_by_id":
		postID, err := args.RequiredString(a, "post_id")
		if err != nil {
			return nil, err
		}
		return s.deletePost(postID)

	default:
		return nil, api.NewInvalidInputError("unknown linkedin tool: %s", name)
	}
}
