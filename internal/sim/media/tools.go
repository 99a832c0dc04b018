package media

import (
	"context"

	"mimic/internal/api"
)

func (s *Simulator) GetTools() []api.ToolMetadata {
	trackIDsSchema := map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}
	updateDataSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":        map[string]interface{}{"type": "string"},
			"track_ids":   trackIDsSchema,
			"is_personal": map[string]interface{}{"type": "boolean"},
			"provider":    map[string]interface{}{"type": "string"},
		},
	}

	return []api.ToolMetadata{
		{
			Name:        "search_media",
			Description: "Search the media catalog by title or artist name, constrained by a search intent.",
			Args: []api.ArgMetadata{
				{Name: "query", Type: "string", Required: true, Description: "Search text matched against titles and artist names"},
				{Name: "intent_type", Type: "string", Required: true, Description: "One of ALBUM, ARTIST, GENERIC_MUSIC, GENERIC_PODCAST, GENERIC_MUSIC_NEW, GENERIC_SOMETHING_ELSE, LIKED_SONGS, PERSONAL_PLAYLIST, PODCAST_EPISODE, PODCAST_SHOW, PUBLIC_PLAYLIST, TRACK"},
				{Name: "filtering_type", Type: "string", Description: "Optional content-type override: ALBUM, PLAYLIST, or TRACK"},
			},
		},
		{
			Name:        "resolve_media_uri",
			Description: "Look up the catalog item addressed by a provider:content_type:id URI.",
			Args: []api.ArgMetadata{
				{Name: "uri", Type: "string", Required: true, Description: "Media URI, e.g. spotify:track:t1"},
			},
		},
		{
			Name:        "play_media",
			Description: "Start playback of the item addressed by a media URI and record the playback action.",
			Args: []api.ArgMetadata{
				{Name: "uri", Type: "string", Required: true, Description: "Media URI, e.g. spotify:track:t1"},
			},
		},
		{
			Name:        "list_providers",
			Description: "List the configured content providers.",
		},
		{
			Name:        "create_playlist",
			Description: "Create a playlist. Track ids must reference existing tracks.",
			Args: []api.ArgMetadata{
				{Name: "name", Type: "string", Required: true, Description: "Playlist name, unique across playlists"},
				{Name: "track_ids", Type: "array", Description: "Track ids to include", Schema: trackIDsSchema},
				{Name: "is_personal", Type: "boolean", Description: "Whether the playlist is personal", Default: true},
				{Name: "provider", Type: "string", Description: "Content provider hosting the playlist", Default: "spotify"},
			},
		},
		{
			Name:        "update_playlist",
			Description: "Update a playlist's name, tracks, personal flag, or provider.",
			Args: []api.ArgMetadata{
				{Name: "playlist_id", Type: "string", Required: true, Description: "Id of the playlist to update"},
				{Name: "update_data", Type: "object", Required: true, Description: "Fields to change", Schema: updateDataSchema},
			},
		},
		{
			Name:        "delete_playlist",
			Description: "Delete a playlist by id.",
			Args: []api.ArgMetadata{
				{Name: "playlist_id", Type: "string", Required: true, Description: "Id of the playlist to delete"},
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
	case "search_media":
		result, err = s.searchMedia(a)
	case "resolve_media_uri":
		result, err = s.resolveMediaURI(a)
	case "play_media":
		result, err = s.playMedia(a)
	case "list_providers":
		result, err = s.listProviders(a)
	case "create_playlist":
		result, err = s.createPlaylist(a)
	case "update_playlist":
		result, err = s.updatePlaylist(a)
	case "delete_playlist":
		result, err = s.deletePlaylist(a)
	default:
		return nil, api.NewInvalidInputError("unknown media tool: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return api.NewResult(result), nil
}
