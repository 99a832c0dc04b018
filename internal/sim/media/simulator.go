package media

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"mimic/internal/api"
	"mimic/internal/sim/args"
	"mimic/internal/store"
)

// Simulator emulates a multi-provider media library: searching the
// catalog, resolving and playing items by URI, and managing playlists.
type Simulator struct {
	store *store.Store[State]
}

func New() *Simulator {
	return &Simulator{store: store.New(seedState)}
}

func (s *Simulator) Name() string { return "media" }

func (s *Simulator) SaveState(path string) error { return s.store.SaveState(path) }
func (s *Simulator) LoadState(path string) error { return s.store.LoadState(path) }
func (s *Simulator) ResetState()                 { s.store.Reset() }

func (s *Simulator) WatchState(ctx context.Context, path string) error {
	return s.store.Watch(ctx, path)
}

func (s *Simulator) Store() *store.Store[State] { return s.store }

// mediaURIRe matches the provider:content_type:id addressing scheme.
var mediaURIRe = regexp.MustCompile(`^\w+:\w+:\w+$`)

// entry is a normalized catalog row used by search and URI resolution.
type entry struct {
	id          string
	title       string
	containerID *string
	artistName  *string
	contentType string
	provider    string
	isLiked     bool
	isPersonal  bool
	raw         interface{}
}

func catalog(st *State) []entry {
	var out []entry
	for _, t := range st.Tracks {
		out = append(out, entry{id: t.ID, title: t.Title, containerID: t.AlbumID, artistName: &t.ArtistName, contentType: t.ContentType, provider: t.Provider, isLiked: t.IsLiked, raw: t})
	}
	for _, a := range st.Albums {
		out = append(out, entry{id: a.ID, title: a.Title, artistName: &a.ArtistName, contentType: a.ContentType, provider: a.Provider, raw: a})
	}
	for _, a := range st.Artists {
		out = append(out, entry{id: a.ID, title: a.Name, contentType: a.ContentType, provider: a.Provider, raw: a})
	}
	for _, p := range st.Playlists {
		out = append(out, entry{id: p.ID, title: p.Name, contentType: p.ContentType, provider: p.Provider, isPersonal: p.IsPersonal, raw: p})
	}
	for _, show := range st.Podcasts {
		out = append(out, entry{id: show.ID, title: show.Title, contentType: show.ContentType, provider: show.Provider, raw: show})
		for _, ep := range show.Episodes {
			showID := ep.ShowID
			out = append(out, entry{id: ep.ID, title: ep.Title, containerID: &showID, contentType: ep.ContentType, provider: ep.Provider, raw: ep})
		}
	}
	return out
}

func (e entry) uri() string {
	return fmt.Sprintf("%s:%s:%s", e.provider, strings.ToLower(e.contentType), e.id)
}

func (e entry) envelope() MediaItem {
	uri := e.uri()
	title := e.title
	contentType := e.contentType
	return MediaItem{
		URI: uri,
		Metadata: MediaItemMetadata{
			EntityTitle:    &title,
			ContainerTitle: e.containerID,
			ArtistName:     e.artistName,
			ContentType:    &contentType,
		},
		Provider:                     e.provider,
		ActionCardContentPassthrough: uri,
	}
}

func (s *Simulator) searchMedia(arguments map[string]interface{}) (interface{}, error) {
	query, err := args.RequiredString(arguments, "query")
	if err != nil {
		return nil, err
	}
	intent, err := args.RequiredString(arguments, "intent_type")
	if err != nil {
		return nil, err
	}
	if !searchIntents[intent] {
		return nil, api.NewFieldValidationError("intent_type", "unknown intent %q", intent)
	}
	filtering, _, err := args.String(arguments, "filtering_type")
	if err != nil {
		return nil, err
	}
	if filtering != "" && !filteringTypes[filtering] {
		return nil, api.NewFieldValidationError("filtering_type", "must be one of ALBUM, PLAYLIST, TRACK")
	}

	// Intent-derived constraints on the result set.
	var contentType string
	likedOnly := false
	personalOnly := false
	switch intent {
	case "LIKED_SONGS":
		likedOnly = true
		contentType = TypeTrack
	case "PERSONAL_PLAYLIST":
		personalOnly = true
		contentType = TypePlaylist
	case "PUBLIC_PLAYLIST":
		contentType = TypePlaylist
	case "GENERIC_MUSIC", "GENERIC_PODCAST", "GENERIC_MUSIC_NEW", "GENERIC_SOMETHING_ELSE":
		// no content-type constraint
	default:
		contentType = intent
	}
	if filtering != "" {
		contentType = filtering
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var items []MediaItem
	err = s.store.View(func(st *State) error {
		for _, e := range catalog(st) {
			if contentType != "" && e.contentType != contentType {
				continue
			}
			if likedOnly && !e.isLiked {
				continue
			}
			if personalOnly && !e.isPersonal {
				continue
			}
			if needle != "" && !entryMatches(e, needle) {
				continue
			}
			items = append(items, e.envelope())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].URI < items[j].URI })
	if items == nil {
		items = []MediaItem{}
	}
	return map[string]interface{}{"media_items": items}, nil
}

func entryMatches(e entry, needle string) bool {
	if strings.Contains(strings.ToLower(e.title), needle) {
		return true
	}
	return e.artistName != nil && strings.Contains(strings.ToLower(*e.artistName), needle)
}

// resolveURI looks up the catalog entry a URI addresses. The URI must
// have the shape provider:content_type:id.
func resolveURI(st *State, uri string) (*entry, error) {
	if !mediaURIRe.MatchString(uri) {
		return nil, api.NewFieldValidationError("uri", "must have the form provider:content_type:id, got %q", uri)
	}
	parts := strings.SplitN(uri, ":", 3)
	provider, contentType, id := parts[0], strings.ToUpper(parts[1]), parts[2]
	for _, e := range catalog(st) {
		if e.id == id && e.provider == provider && e.contentType == contentType {
			found := e
			return &found, nil
		}
	}
	return nil, api.NewNotFoundErrorf("no media item found for uri %q", uri)
}

func (s *Simulator) resolveMediaURI(arguments map[string]interface{}) (interface{}, error) {
	uri, err := args.RequiredString(arguments, "uri")
	if err != nil {
		return nil, err
	}
	var raw interface{}
	err = s.store.View(func(st *State) error {
		e, err := resolveURI(st, uri)
		if err != nil {
			return err
		}
		raw = e.raw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *Simulator) playMedia(arguments map[string]interface{}) (interface{}, error) {
	uri, err := args.RequiredString(arguments, "uri")
	if err != nil {
		return nil, err
	}
	var item MediaItem
	err = s.store.Update(func(st *State) error {
		e, err := resolveURI(st, uri)
		if err != nil {
			return err
		}
		item = e.envelope()
		st.Actions = append(st.Actions, &Action{
			ActionType: "play",
			Inputs:     map[string]interface{}{"uri": uri},
			Outputs:    []interface{}{item},
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status": "playing",
		"item":   item,
	}, nil
}

func (s *Simulator) listProviders(arguments map[string]interface{}) (interface{}, error) {
	var providers []*Provider
	err := s.store.View(func(st *State) error {
		providers = append([]*Provider{}, st.Providers...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"providers": providers}, nil
}

func (s *Simulator) findPlaylist(st *State, id string) (*Playlist, error) {
	for _, p := range st.Playlists {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, api.NewNotFoundError("playlist", id)
}

func validateTrackIDs(st *State, ids []string) error {
	known := make(map[string]bool, len(st.Tracks))
	for _, t := range st.Tracks {
		known[t.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return api.NewFieldValidationError("track_ids", "unknown track %q", id)
		}
	}
	return nil
}

func (s *Simulator) createPlaylist(arguments map[string]interface{}) (interface{}, error) {
	name, err := args.RequiredString(arguments, "name")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, api.NewFieldValidationError("name", "must not be empty")
	}
	trackIDs, _, err := args.StringSlice(arguments, "track_ids")
	if err != nil {
		return nil, err
	}
	isPersonal, err := args.BoolOr(arguments, "is_personal", true)
	if err != nil {
		return nil, err
	}
	provider, err := args.StringOr(arguments, "provider", "spotify")
	if err != nil {
		return nil, err
	}
	if trackIDs == nil {
		trackIDs = []string{}
	}

	var created *Playlist
	err = s.store.Update(func(st *State) error {
		for _, p := range st.Playlists {
			if strings.EqualFold(p.Name, name) {
				return api.NewDuplicateError("playlist", name)
			}
		}
		if err := validateTrackIDs(st, trackIDs); err != nil {
			return err
		}
		if st.Counters == nil {
			st.Counters = map[string]int{}
		}
		created = &Playlist{
			ID:          fmt.Sprintf("pl_%d", store.NextCounter(st.Counters, "playlists")),
			Name:        name,
			TrackIDs:    trackIDs,
			IsPersonal:  isPersonal,
			Provider:    provider,
			ContentType: TypePlaylist,
		}
		st.Playlists = append(st.Playlists, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Simulator) updatePlaylist(arguments map[string]interface{}) (interface{}, error) {
	id, err := args.RequiredString(arguments, "playlist_id")
	if err != nil {
		return nil, err
	}
	updates, _, err := args.Object(arguments, "update_data")
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, api.NewFieldValidationError("update_data", "must contain at least one field to update")
	}

	var updated Playlist
	err = s.store.Update(func(st *State) error {
		playlist, err := s.findPlaylist(st, id)
		if err != nil {
			return err
		}
		for field, value := range updates {
			switch field {
			case "name":
				name, ok := value.(string)
				if !ok || strings.TrimSpace(name) == "" {
					return api.NewFieldValidationError("update_data.name", "must be a non-empty string")
				}
				playlist.Name = name
			case "track_ids":
				list, ok := value.([]interface{})
				if !ok {
					return api.NewFieldValidationError("update_data.track_ids", "must be a list of track ids")
				}
				ids := make([]string, 0, len(list))
				for _, v := range list {
					idStr, ok := v.(string)
					if !ok {
						return api.NewFieldValidationError("update_data.track_ids", "must contain only strings")
					}
					ids = append(ids, idStr)
				}
				if err := validateTrackIDs(st, ids); err != nil {
					return err
				}
				playlist.TrackIDs = ids
			case "is_personal":
				b, ok := value.(bool)
				if !ok {
					return api.NewFieldValidationError("update_data.is_personal", "must be a boolean")
				}
				playlist.IsPersonal = b
			case "provider":
				p, ok := value.(string)
				if !ok || p == "" {
					return api.NewFieldValidationError("update_data.provider", "must be a non-empty string")
				}
				playlist.Provider = p
			default:
				return api.NewFieldValidationError("update_data", "field %q cannot be updated", field)
			}
		}
		updated = *playlist
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Simulator) deletePlaylist(arguments map[string]interface{}) (interface{}, error) {
	id, err := args.RequiredString(arguments, "playlist_id")
	if err != nil {
		return nil, err
	}
	err = s.store.Update(func(st *State) error {
		for i, p := range st.Playlists {
			if p.ID == id {
				st.Playlists = append(st.Playlists[:i], st.Playlists[i+1:]...)
				return nil
			}
		}
		return api.NewNotFoundError("playlist", id)
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": fmt.Sprintf("Playlist %s deleted.", id)}, nil
}
