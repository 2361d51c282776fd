package player

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		kind    sourceKind
		ext     string
		silence time.Duration
		wantErr bool
	}{
		{name: "plain path", in: "/audio/brief.mp3", kind: sourceFile, ext: ".mp3"},
		{name: "file url", in: "file:///audio/brief.FLAC", kind: sourceFile, ext: ".flac"},
		{name: "https", in: "https://cdn.example/a/b.wav?sig=1", kind: sourceHTTP, ext: ".wav"},
		{name: "placeholder default", in: "placeholder:", kind: sourceSilence, silence: 30 * time.Second},
		{name: "placeholder length", in: "placeholder:5s", kind: sourceSilence, silence: 5 * time.Second},
		{name: "bad placeholder", in: "placeholder:soon", wantErr: true},
		{name: "unknown scheme", in: "ftp://host/a.mp3", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := parseLocator(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedLocator))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, src.kind)
			assert.Equal(t, tt.ext, src.ext)
			assert.Equal(t, tt.silence, src.silence)
		})
	}
}

func TestExtFromContentType(t *testing.T) {
	assert.Equal(t, extMP3, extFromContentType("audio/mpeg"))
	assert.Equal(t, extFLAC, extFromContentType("audio/x-flac; charset=binary"))
	assert.Equal(t, extWAV, extFromContentType("audio/wav"))
	assert.Empty(t, extFromContentType("text/html"))
}

func TestFetch_ContentTypeFillsExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3"))
	}))
	defer srv.Close()

	f, ext, err := fetch(context.Background(), srv.Client(), srv.URL+"/stream", "")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, extMP3, ext)
}

func TestFetch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := fetch(context.Background(), srv.Client(), srv.URL+"/a.mp3", ".mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDecode_UnsupportedExtension(t *testing.T) {
	_, _, _, err := decode(memFile{}, ".ogg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestSilence_StreamAndSeek(t *testing.T) {
	s := newSilence(10)
	buf := make([][2]float64, 4)
	buf[0] = [2]float64{1, 1}

	n, ok := s.Stream(buf)
	assert.Equal(t, 4, n)
	assert.True(t, ok)
	assert.Equal(t, [2]float64{0, 0}, buf[0])

	require.NoError(t, s.Seek(8))
	n, ok = s.Stream(buf)
	assert.Equal(t, 2, n)
	assert.True(t, ok)

	n, ok = s.Stream(buf)
	assert.Equal(t, 0, n)
	assert.False(t, ok)

	require.NoError(t, s.Seek(99))
	assert.Equal(t, 10, s.Position())
}

func TestLevelToVolume(t *testing.T) {
	assert.InDelta(t, 0.0, levelToVolume(1), 1e-9)
	assert.InDelta(t, -1.0, levelToVolume(0.5), 1e-9)
	assert.InDelta(t, -2.0, levelToVolume(0.25), 1e-9)
	assert.InDelta(t, -10.0, levelToVolume(0), 1e-9)
}

func TestSpeaker_OpenRejectsBadLocator(t *testing.T) {
	sp := NewSpeaker(SpeakerConfig{}, nil)
	_, err := sp.Open("gopher://x")
	assert.True(t, errors.Is(err, ErrUnsupportedLocator))
}

func TestSpeakerResource_UnloadedState(t *testing.T) {
	sp := NewSpeaker(SpeakerConfig{}, nil)
	res, err := sp.Open("placeholder:2s")
	require.NoError(t, err)

	res.SetVolume(3)
	assert.InDelta(t, 1.0, res.Volume(), 1e-9)
	res.SetVolume(math.NaN())
	assert.InDelta(t, 0.0, res.Volume(), 1e-9)
	res.SetRate(1.5)
	assert.InDelta(t, 1.5, res.Rate(), 1e-9)
	res.SetRate(math.NaN())
	res.SetRate(math.Inf(1))
	res.SetRate(-1)
	assert.InDelta(t, 1.5, res.Rate(), 1e-9)

	// no device needed before Play
	res.SeekTo(time.Second)
	require.NoError(t, res.Close())
	require.NoError(t, res.Close())
}

func TestProbe_Placeholder(t *testing.T) {
	info, err := Probe(context.Background(), "placeholder:45s")
	require.NoError(t, err)
	assert.Equal(t, "SILENCE", info.Format)
	assert.Equal(t, 45*time.Second, info.Duration)
}
