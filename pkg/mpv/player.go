package mpv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/speednorm/pkg/engine"
)

// observed property ids
const (
	obsMediaTitle int64 = iota + 1
	obsMetadata
	obsSpeed
	obsPause
	obsMinimized
	obsIdle
)

var observed = []struct {
	id   int64
	name string
}{
	{obsMediaTitle, "media-title"},
	{obsMetadata, "metadata"},
	{obsSpeed, "speed"},
	{obsPause, "pause"},
	{obsMinimized, "window-minimized"},
	{obsIdle, "idle-active"},
}

// metadata keys tried in order for the channel, matched case-insensitively
var channelKeys = []string{"artist", "uploader", "channel", "album_artist"}

// Player adapts an mpv connection to the controller's collaborators
type Player struct {
	client *Client
}

// NewPlayer wraps a connected client
func NewPlayer(client *Client) *Player {
	return &Player{client: client}
}

// ContentPage reports whether a file is loaded and mpv is not idle
func (p *Player) ContentPage(ctx context.Context) bool {
	var idle bool
	if err := p.client.GetProperty(ctx, "idle-active", &idle); err != nil || idle {
		return false
	}
	return p.path(ctx) != ""
}

// Title returns media-title, empty when unavailable
func (p *Player) Title(ctx context.Context) string {
	var title string
	if err := p.client.GetProperty(ctx, "media-title", &title); err != nil {
		return ""
	}
	return strings.TrimSpace(title)
}

// Channel returns the first non-empty creator field of the file metadata
func (p *Player) Channel(ctx context.Context) string {
	return channelOf(p.metadata(ctx))
}

// AuxSignal reports auxiliary classification signals. mpv has no notion of an
// official artist badge; the music section comes from chapter titles and genre.
func (p *Player) AuxSignal(ctx context.Context, kind engine.AuxKind) bool {
	if kind != engine.AuxMusicSection {
		return false
	}
	var chapters []struct {
		Title string `json:"title"`
	}
	if err := p.client.GetProperty(ctx, "chapter-list", &chapters); err != nil && !errors.Is(err, ErrUnavailable) {
		lgr.Printf("[DEBUG] chapter list unavailable: %v", err)
	}
	headers := make([]string, 0, len(chapters)+1)
	for _, ch := range chapters {
		headers = append(headers, ch.Title)
	}
	if genre := lookup(p.metadata(ctx), "genre"); genre != "" {
		headers = append(headers, genre)
	}
	return engine.HasMusicSection(headers)
}

// CurrentContentID identifies the loaded file, empty when idle
func (p *Player) CurrentContentID(ctx context.Context) string {
	if !p.ContentPage(ctx) {
		return ""
	}
	return ContentID(p.path(ctx))
}

// Rate returns the playback speed
func (p *Player) Rate(ctx context.Context) (float64, error) {
	var speed float64
	if err := p.client.GetProperty(ctx, "speed", &speed); err != nil {
		return 0, fmt.Errorf("get speed: %w", err)
	}
	return speed, nil
}

// SetRate sets the playback speed
func (p *Player) SetRate(ctx context.Context, rate float64) error {
	if err := p.client.SetProperty(ctx, "speed", rate); err != nil {
		return fmt.Errorf("set speed %.2f: %w", rate, err)
	}
	return nil
}

// Watch subscribes to mpv events and delivers them as engine events until the
// context ends or the connection drops
func (p *Player) Watch(ctx context.Context, sink func(ctx context.Context, ev engine.Event) error) error {
	for _, o := range observed {
		if err := p.client.ObserveProperty(ctx, o.id, o.name); err != nil {
			return fmt.Errorf("observe %s: %w", o.name, err)
		}
	}
	lgr.Printf("[DEBUG] watching %d mpv properties", len(observed))

	// observe_property echoes the current speed first, that is not a rate change
	speedEchoed := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-p.client.Events():
			if !ok {
				return ErrClosed
			}
			if ev.Name == "shutdown" {
				lgr.Printf("[INFO] mpv is shutting down")
				return ErrClosed
			}
			if ev.Name == "property-change" && ev.ID == obsSpeed && !speedEchoed {
				speedEchoed = true
				continue
			}
			var path string
			if ev.Name == "file-loaded" {
				path = p.path(ctx)
			}
			out, ok := translate(ev, path)
			if !ok {
				continue
			}
			if err := sink(ctx, out); err != nil {
				return fmt.Errorf("deliver %T: %w", out, err)
			}
		}
	}
}

// translate maps an mpv event to an engine event. path is the loaded file for file-loaded.
func translate(ev Event, path string) (engine.Event, bool) {
	switch ev.Name {
	case "start-file":
		return engine.NavigationStarted{}, true
	case "file-loaded":
		return engine.NavigationFinished{ContentID: ContentID(path)}, true
	case "playback-restart":
		return engine.SurfaceAttached{}, true
	case "property-change":
	default:
		return nil, false
	}

	switch ev.ID {
	case obsMediaTitle, obsMetadata:
		return engine.ContentMutated{}, true
	case obsSpeed:
		var rate float64
		if err := json.Unmarshal(ev.Data, &rate); err != nil || rate <= 0 {
			return nil, false
		}
		return engine.RateChanged{Rate: rate}, true
	case obsPause, obsMinimized:
		var on bool
		if err := json.Unmarshal(ev.Data, &on); err != nil || on {
			return nil, false
		}
		return engine.VisibilityRegained{}, true
	case obsIdle:
		var idle bool
		if err := json.Unmarshal(ev.Data, &idle); err != nil || !idle {
			return nil, false
		}
		return engine.NavigationFinished{}, true
	}
	return nil, false
}

// ContentID identifies a media path. URLs carrying a "v" query parameter
// (youtube watch pages) use it, anything else is identified by the path itself.
func ContentID(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		if v := u.Query().Get("v"); v != "" {
			return v
		}
	}
	return path
}

func (p *Player) path(ctx context.Context) string {
	var path string
	if err := p.client.GetProperty(ctx, "path", &path); err != nil {
		return ""
	}
	return path
}

func (p *Player) metadata(ctx context.Context) map[string]any {
	md := map[string]any{}
	if err := p.client.GetProperty(ctx, "metadata", &md); err != nil {
		return nil
	}
	return md
}

func channelOf(md map[string]any) string {
	for _, key := range channelKeys {
		if v := lookup(md, key); v != "" {
			return v
		}
	}
	return ""
}

func lookup(md map[string]any, key string) string {
	for k, v := range md {
		if !strings.EqualFold(k, key) {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
