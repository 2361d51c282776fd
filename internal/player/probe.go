package player

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
)

// ProbeInfo describes an audio locator without playing it.
type ProbeInfo struct {
	Locator    string
	Format     string
	SampleRate int
	Channels   int
	Duration   time.Duration
	Title      string
	Artist     string
	Album      string
}

// Probe decodes the header of locator and reads its tags.
func Probe(ctx context.Context, locator string) (*ProbeInfo, error) {
	src, err := parseLocator(locator)
	if err != nil {
		return nil, err
	}
	if src.kind == sourceSilence {
		return &ProbeInfo{Locator: locator, Format: "SILENCE", Duration: src.silence}, nil
	}

	f, ext, err := src.open(ctx, http.DefaultClient)
	if err != nil {
		return nil, err
	}

	info := &ProbeInfo{Locator: locator}
	if m, err := tag.ReadFrom(f); err == nil {
		info.Title = m.Title()
		info.Artist = m.Artist()
		info.Album = m.Album()
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "rewind after tags")
	}

	stream, format, name, err := decode(f, ext)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	defer stream.Close()

	info.Format = name
	info.SampleRate = int(format.SampleRate)
	info.Channels = format.NumChannels
	info.Duration = format.SampleRate.D(stream.Len())
	return info, nil
}
