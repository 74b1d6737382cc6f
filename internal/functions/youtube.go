package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/m2tx/answer_agent/internal/agent"
)

const (
	youtubeBaseURL      = "https://www.youtube.com"
	playerResponseToken = "ytInitialPlayerResponse"
)

var (
	ErrInvalidVideoURL = errors.New("invalid YouTube video URL")
	ErrNoCaptions      = errors.New("no captions available")
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

type transcriptInput struct {
	VideoURL string `json:"video_url" validate:"required,url"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// YouTubeTranscript retrieves the caption track of a video as plain text.
type YouTubeTranscript struct {
	language string
	*options
}

func NewYouTubeTranscript(language string, opts ...Option) *YouTubeTranscript {
	if language == "" {
		language = "en"
	}
	return &YouTubeTranscript{
		language: language,
		options:  newOptions(youtubeBaseURL, opts),
	}
}

// VideoID extracts the 11 character video ID from the usual YouTube URL forms.
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidVideoURL, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtube-nocookie.com":
		switch {
		case segments[0] == "watch":
			id = u.Query().Get("v")
		case len(segments) >= 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live" || segments[0] == "v"):
			id = segments[1]
		}
	}

	if !videoIDRe.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, rawURL)
	}

	return id, nil
}

func (y *YouTubeTranscript) Transcript(ctx context.Context, videoURL string) (string, error) {
	id, err := VideoID(videoURL)
	if err != nil {
		return "", fmt.Errorf("youtube_transcript: %w", err)
	}

	player, err := y.playerResponse(ctx, id)
	if err != nil {
		return "", fmt.Errorf("youtube_transcript: %s: %w", id, err)
	}

	track, ok := y.pickTrack(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks)
	if !ok {
		if reason := player.PlayabilityStatus.Reason; reason != "" {
			return "", fmt.Errorf("youtube_transcript: %s: %w (%s)", id, ErrNoCaptions, reason)
		}
		return "", fmt.Errorf("youtube_transcript: %s: %w", id, ErrNoCaptions)
	}

	text, err := y.captions(ctx, track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("youtube_transcript: %s: %w", id, err)
	}

	if text == "" {
		return "", fmt.Errorf("youtube_transcript: %s: %w", id, ErrNoCaptions)
	}

	return text, nil
}

func (y *YouTubeTranscript) playerResponse(ctx context.Context, id string) (*playerResponse, error) {
	req, err := http.NewRequest(http.MethodGet, y.baseURL+"/watch?v="+url.QueryEscape(id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", y.language)

	body, err := y.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var player *playerResponse
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		script := s.Text()
		i := strings.Index(script, playerResponseToken)
		if i < 0 {
			return true
		}
		start := strings.Index(script[i:], "{")
		if start < 0 {
			return true
		}

		var p playerResponse
		if err := json.NewDecoder(strings.NewReader(script[i+start:])).Decode(&p); err != nil {
			return true
		}
		player = &p
		return false
	})

	if player == nil {
		return nil, fmt.Errorf("%w: player response not found", ErrNoCaptions)
	}

	return player, nil
}

// pickTrack prefers a manual track in the configured language, then an
// auto-generated one, then whatever comes first.
func (y *YouTubeTranscript) pickTrack(tracks []captionTrack) (captionTrack, bool) {
	if len(tracks) == 0 {
		return captionTrack{}, false
	}

	var generated *captionTrack
	for i, t := range tracks {
		if !strings.HasPrefix(t.LanguageCode, y.language) {
			continue
		}
		if t.Kind != "asr" {
			return t, true
		}
		if generated == nil {
			generated = &tracks[i]
		}
	}

	if generated != nil {
		return *generated, true
	}

	return tracks[0], true
}

func (y *YouTubeTranscript) captions(ctx context.Context, trackURL string) (string, error) {
	if strings.HasPrefix(trackURL, "/") {
		trackURL = y.baseURL + trackURL
	}

	req, err := http.NewRequest(http.MethodGet, trackURL, nil)
	if err != nil {
		return "", err
	}

	body, err := y.fetch(ctx, req)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse captions: %w", err)
	}

	cues := doc.Find("text")
	if cues.Length() == 0 {
		cues = doc.Find("p")
	}

	lines := make([]string, 0, cues.Length())
	cues.Each(func(_ int, s *goquery.Selection) {
		// cue text is entity-encoded twice
		line := strings.TrimSpace(html.UnescapeString(s.Text()))
		if line != "" {
			lines = append(lines, line)
		}
	})

	return strings.Join(lines, " "), nil
}

func CreateYouTubeTranscriptFunctionDeclaration(y *YouTubeTranscript) *agent.FunctionDeclaration {
	return &agent.FunctionDeclaration{
		Name: "youtube_transcript",
		Description: "Retrieve the transcript (captions) of a YouTube video, if available. " +
			"Returns the full spoken text of the video. It does not interpret visual elements, only spoken audio with captions.",
		ParametersSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"video_url": map[string]any{
					"type":        "string",
					"description": "The YouTube video URL, e.g. https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				},
			},
			"required": []string{"video_url"},
		},
		FunctionCall: func(ctx context.Context, args map[string]any) (any, error) {
			var in transcriptInput
			if err := decodeArgs("youtube_transcript", args, &in); err != nil {
				return nil, err
			}
			return y.Transcript(ctx, in.VideoURL)
		},
	}
}
