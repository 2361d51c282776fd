package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tflash/internal/playback"
)

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter over the
// playback service. Every getter reads a fresh snapshot.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	return p.service.Advance()
}

// Previous restarts the current briefing; there is no history.
func (p *playerAdapter) Previous() error {
	p.service.Seek(0)
	return nil
}

func (p *playerAdapter) Pause() error {
	p.service.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	return p.service.TogglePlayPause()
}

func (p *playerAdapter) Stop() error {
	p.service.Pause()
	p.service.Seek(0)
	return nil
}

// Play resumes, or starts the queue head when nothing is current.
func (p *playerAdapter) Play() error {
	err := p.service.Play()
	if errors.Is(err, playback.ErrNoTrack) {
		return p.service.Advance()
	}
	return err
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	cur := p.service.Snapshot().CurrentTime
	p.service.Seek(cur + time.Duration(offset)*time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	st := p.service.Snapshot()
	// stale requests for another track are ignored per MPRIS
	if st.CurrentTrack == nil || formatTrackID(st.CurrentTrack.ID) != trackID {
		return nil
	}
	p.service.Seek(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	st := p.service.Snapshot()
	switch {
	case st.IsPlaying:
		return types.PlaybackStatusPlaying, nil
	case st.HasTrack():
		return types.PlaybackStatusPaused, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return p.service.Snapshot().PlaybackRate, nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	p.service.SetPlaybackRate(rate)
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.service.Snapshot()
	track := st.CurrentTrack
	if track == nil {
		return types.Metadata{}, nil
	}

	length := track.Duration
	if st.Duration > 0 {
		length = st.Duration
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(length.Microseconds()),
		Title:   track.Title,
		Album:   track.Date,
	}
	if len(track.Topics) > 0 {
		meta.Artist = []string{track.TopicLine()}
	}
	if artPath := FindArt(track.AudioURL); artPath != "" {
		meta.ArtUrl = "file://" + artPath
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.service.Snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.service.SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Snapshot().CurrentTime.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return playback.MinPlaybackRate, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return playback.MaxPlaybackRate, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.service.Snapshot().Queue) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.service.Snapshot().HasTrack(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	st := p.service.Snapshot()
	return st.HasTrack() || len(st.Queue) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.service.Snapshot().HasTrack(), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/tflash/Briefing/%x", h.Sum64())
}
