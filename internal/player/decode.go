package player

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
	"github.com/llehouerou/go-mp3"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
)

// audioFile is what decoders read from: local files and fetched bodies.
type audioFile interface {
	io.ReadSeeker
	io.Closer
}

// decode picks a decoder for ext. The returned streamer owns f.
func decode(f audioFile, ext string) (beep.StreamSeekCloser, beep.Format, string, error) {
	switch ext {
	case extMP3:
		s, format, err := decodeMP3(f)
		return s, format, "MP3", err
	case extFLAC:
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, "", err
		}
		s, format, err := flac.Decode(f)
		return s, format, "FLAC", err
	case extWAV:
		s, format, err := wav.Decode(f)
		return s, format, "WAV", err
	default:
		return nil, beep.Format{}, "", errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
	}
}

// mp3Stream adapts go-mp3's byte reader to beep.StreamSeekCloser.
type mp3Stream struct {
	dec  *mp3.Decoder
	src  io.Closer
	buf  []byte
	err  error
	done bool
}

func decodeMP3(f audioFile) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "mp3")
	}
	if dec.SampleRate() == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}
	// go-mp3 always yields 16-bit stereo
	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{dec: dec, src: f}, format, nil
}

func (s *mp3Stream) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil || s.done {
		return 0, false
	}
	want := len(samples) * 4
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	buf := s.buf[:want]

	read, err := io.ReadFull(s.dec, buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.done = true
	case err != nil:
		s.err = err
		return 0, false
	}

	n := read / 4
	for i := range n {
		frame := buf[i*4:]
		left := int16(binary.LittleEndian.Uint16(frame))     //nolint:gosec // pcm samples
		right := int16(binary.LittleEndian.Uint16(frame[2:])) //nolint:gosec // pcm samples
		samples[i][0] = float64(left) / 32768
		samples[i][1] = float64(right) / 32768
	}
	return n, n > 0
}

func (s *mp3Stream) Err() error { return s.err }

func (s *mp3Stream) Len() int {
	return int(max(s.dec.SampleCount(), 0))
}

func (s *mp3Stream) Position() int {
	return int(s.dec.SamplePosition())
}

func (s *mp3Stream) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	s.done = false
	return nil
}

func (s *mp3Stream) Close() error { return s.src.Close() }

// skipID3v2 moves r past a leading ID3v2 tag, which the flac decoder
// cannot parse, or rewinds it when there is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}
	// syncsafe integer: 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

// silence is a seekable stream of zero samples, used for placeholders.
type silence struct {
	length int
	pos    int
}

func newSilence(length int) *silence {
	return &silence{length: length}
}

func (s *silence) Stream(samples [][2]float64) (int, bool) {
	n := min(len(samples), s.length-s.pos)
	if n <= 0 {
		return 0, false
	}
	clear(samples[:n])
	s.pos += n
	return n, true
}

func (s *silence) Err() error    { return nil }
func (s *silence) Len() int      { return s.length }
func (s *silence) Position() int { return s.pos }
func (s *silence) Close() error  { return nil }

func (s *silence) Seek(p int) error {
	s.pos = min(max(p, 0), s.length)
	return nil
}
