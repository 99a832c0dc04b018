package media

// Content types stored in the library.
const (
	TypeTrack          = "TRACK"
	TypeAlbum          = "ALBUM"
	TypeArtist         = "ARTIST"
	TypePlaylist       = "PLAYLIST"
	TypePodcastShow    = "PODCAST_SHOW"
	TypePodcastEpisode = "PODCAST_EPISODE"
)

// Search intents accepted by search_media. The GENERIC_* intents do not
// constrain the content type.
var searchIntents = map[string]bool{
	TypeAlbum:                true,
	TypeArtist:               true,
	"GENERIC_MUSIC":          true,
	"GENERIC_PODCAST":        true,
	"GENERIC_MUSIC_NEW":      true,
	"GENERIC_SOMETHING_ELSE": true,
	"LIKED_SONGS":            true,
	"PERSONAL_PLAYLIST":      true,
	TypePodcastEpisode:       true,
	TypePodcastShow:          true,
	"PUBLIC_PLAYLIST":        true,
	TypeTrack:                true,
}

var filteringTypes = map[string]bool{
	TypeAlbum:    true,
	TypePlaylist: true,
	TypeTrack:    true,
}

type Provider struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
}

type Track struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	ArtistName       string  `json:"artist_name"`
	AlbumID          *string `json:"album_id"`
	Rank             int     `json:"rank"`
	ReleaseTimestamp string  `json:"release_timestamp"`
	IsLiked          bool    `json:"is_liked"`
	Provider         string  `json:"provider"`
	ContentType      string  `json:"content_type"`
}

type Album struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ArtistName  string   `json:"artist_name"`
	TrackIDs    []string `json:"track_ids"`
	Provider    string   `json:"provider"`
	ContentType string   `json:"content_type"`
}

type Artist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Provider    string `json:"provider"`
	ContentType string `json:"content_type"`
}

type Playlist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	TrackIDs    []string `json:"track_ids"`
	IsPersonal  bool     `json:"is_personal"`
	Provider    string   `json:"provider"`
	ContentType string   `json:"content_type"`
}

type PodcastEpisode struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ShowID      string `json:"show_id"`
	Provider    string `json:"provider"`
	ContentType string `json:"content_type"`
}

type PodcastShow struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Episodes    []*PodcastEpisode `json:"episodes"`
	Provider    string            `json:"provider"`
	ContentType string            `json:"content_type"`
}

// Action is one entry in the append-only log of playback and search
// activity.
type Action struct {
	ActionType string                 `json:"action_type"`
	Inputs     map[string]interface{} `json:"inputs"`
	Outputs    []interface{}          `json:"outputs"`
	Timestamp  string                 `json:"timestamp"`
}

// MediaItemMetadata describes an item inside a search result envelope.
type MediaItemMetadata struct {
	EntityTitle    *string `json:"entity_title"`
	ContainerTitle *string `json:"container_title"`
	ArtistName     *string `json:"artist_name"`
	ContentType    *string `json:"content_type"`
}

// MediaItem is the envelope returned by search_media and play_media.
type MediaItem struct {
	URI                          string            `json:"uri"`
	Metadata                     MediaItemMetadata `json:"media_item_metadata"`
	Provider                     string            `json:"provider"`
	ActionCardContentPassthrough string            `json:"action_card_content_passthrough"`
}

// State is the media simulator database.
type State struct {
	Providers []*Provider    `json:"providers"`
	Tracks    []*Track       `json:"tracks"`
	Albums    []*Album       `json:"albums"`
	Artists   []*Artist      `json:"artists"`
	Playlists []*Playlist    `json:"playlists"`
	Podcasts  []*PodcastShow `json:"podcasts"`
	Actions   []*Action      `json:"actions"`
	Counters  map[string]int `json:"counters"`
}

func idPtr(s string) *string { return &s }

func seedState() *State {
	return &State{
		Providers: []*Provider{
			{Name: "spotify", BaseURL: "https://api.spotify.com/v1"},
			{Name: "youtube_music", BaseURL: "https://music.youtube.com/api"},
		},
		Tracks: []*Track{
			{ID: "t1", Title: "Northern Lights", ArtistName: "Aurora Field", AlbumID: idPtr("al1"), Rank: 3, ReleaseTimestamp: "2021-05-14T00:00:00Z", IsLiked: true, Provider: "spotify", ContentType: TypeTrack},
			{ID: "t2", Title: "Harbor Song", ArtistName: "Aurora Field", AlbumID: idPtr("al1"), Rank: 12, ReleaseTimestamp: "2021-05-14T00:00:00Z", Provider: "spotify", ContentType: TypeTrack},
			{ID: "t3", Title: "Midnight Transit", ArtistName: "The Slow Commute", AlbumID: idPtr("al2"), Rank: 7, ReleaseTimestamp: "2019-11-02T00:00:00Z", IsLiked: true, Provider: "youtube_music", ContentType: TypeTrack},
			{ID: "t4", Title: "Paper Maps", ArtistName: "The Slow Commute", Rank: 40, ReleaseTimestamp: "2023-02-20T00:00:00Z", Provider: "youtube_music", ContentType: TypeTrack},
		},
		Albums: []*Album{
			{ID: "al1", Title: "Latitude", ArtistName: "Aurora Field", TrackIDs: []string{"t1", "t2"}, Provider: "spotify", ContentType: TypeAlbum},
			{ID: "al2", Title: "Rush Hour Ghosts", ArtistName: "The Slow Commute", TrackIDs: []string{"t3"}, Provider: "youtube_music", ContentType: TypeAlbum},
		},
		Artists: []*Artist{
			{ID: "ar1", Name: "Aurora Field", Provider: "spotify", ContentType: TypeArtist},
			{ID: "ar2", Name: "The Slow Commute", Provider: "youtube_music", ContentType: TypeArtist},
		},
		Playlists: []*Playlist{
			{ID: "pl1", Name: "Morning Focus", TrackIDs: []string{"t1", "t3"}, IsPersonal: true, Provider: "spotify", ContentType: TypePlaylist},
			{ID: "pl2", Name: "Global Top Tracks", TrackIDs: []string{"t1", "t2", "t3", "t4"}, Provider: "spotify", ContentType: TypePlaylist},
		},
		Podcasts: []*PodcastShow{
			{
				ID:    "pod1",
				Title: "Signals and Noise",
				Episodes: []*PodcastEpisode{
					{ID: "ep1", Title: "The Cold Start Problem", ShowID: "pod1", Provider: "spotify", ContentType: TypePodcastEpisode},
					{ID: "ep2", Title: "Interview: Shipping Under Load", ShowID: "pod1", Provider: "spotify", ContentType: TypePodcastEpisode},
				},
				Provider:    "spotify",
				ContentType: TypePodcastShow,
			},
		},
		Actions:  []*Action{},
		Counters: map[string]int{},
	}
}
