package player

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// SpeakerConfig configures the audio output backend.
type SpeakerConfig struct {
	SampleRate   int           // output sample rate in Hz
	FetchTimeout time.Duration // limit for downloading remote audio
	TickInterval time.Duration // period of position events while playing
}

func (c SpeakerConfig) withDefaults() SpeakerConfig {
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.TickInterval <= 0 {
		c.TickInterval = 250 * time.Millisecond
	}
	return c
}

// device is the audio output resources are mixed into.
type device interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Lock()
	Unlock()
	Play(s ...beep.Streamer)
}

// systemDevice is the process-wide beep speaker.
type systemDevice struct{}

func (systemDevice) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (systemDevice) Lock()                   { speaker.Lock() }
func (systemDevice) Unlock()                 { speaker.Unlock() }
func (systemDevice) Play(s ...beep.Streamer) { speaker.Play(s...) }

// Speaker plays resources on the system audio device through beep.
// The device is initialized on the first Play and shared by all resources.
type Speaker struct {
	cfg    SpeakerConfig
	rate   beep.SampleRate
	client *http.Client
	logger *log.Logger
	dev    device

	initOnce sync.Once
	initErr  error
}

// NewSpeaker creates the audio output backend.
func NewSpeaker(cfg SpeakerConfig, logger *log.Logger) *Speaker {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = log.Default()
	}
	return &Speaker{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		client: &http.Client{Timeout: cfg.FetchTimeout},
		logger: logger.WithPrefix("speaker"),
		dev:    systemDevice{},
	}
}

// Open validates locator and returns an unloaded resource for it.
func (s *Speaker) Open(locator string) (Resource, error) {
	src, err := parseLocator(locator)
	if err != nil {
		return nil, err
	}
	return &speakerResource{
		sp:          s,
		src:         src,
		volumeLevel: 1,
		rate:        1,
		pendingSeek: -1,
	}, nil
}

func (s *Speaker) init() error {
	s.initOnce.Do(func() {
		s.initErr = s.dev.Init(s.rate, s.rate.N(time.Second/10))
		if s.initErr != nil {
			s.initErr = errors.Wrap(s.initErr, "initialize audio device")
		}
	})
	return s.initErr
}

// Verify Speaker implements Backend at compile time.
var _ Backend = (*Speaker)(nil)

type speakerResource struct {
	sp        *Speaker
	src       source
	listeners listeners

	mu          sync.Mutex
	loading     bool
	loaded      bool
	wantPlay    bool
	playing     bool
	ended       bool
	closed      bool
	volumeLevel float64
	rate        float64
	pendingSeek time.Duration

	stream    beep.StreamSeekCloser
	format    beep.Format
	ctrl      *beep.Ctrl
	resampler *beep.Resampler
	volume    *effects.Volume
	stopTick  chan struct{}
}

func (r *speakerResource) Listen(fn Listener) func() {
	return r.listeners.add(fn)
}

func (r *speakerResource) Play() error {
	if err := r.sp.init(); err != nil {
		return err
	}

	r.mu.Lock()
	switch {
	case r.closed:
		r.mu.Unlock()
		return ErrClosed
	case r.loading:
		r.wantPlay = true
		r.mu.Unlock()
		return nil
	case !r.loaded:
		r.loading = true
		r.wantPlay = true
		r.mu.Unlock()
		go r.load()
		return nil
	case r.playing:
		r.mu.Unlock()
		return nil
	}

	if r.ended {
		// the sequence was drained; rewind and queue a new chain
		r.sp.dev.Lock()
		err := r.stream.Seek(0)
		r.ctrl.Paused = false
		r.sp.dev.Unlock()
		if err != nil {
			r.mu.Unlock()
			return errors.Wrap(err, "rewind")
		}
		r.ended = false
		r.queueChainLocked()
	} else {
		r.sp.dev.Lock()
		r.ctrl.Paused = false
		r.sp.dev.Unlock()
	}
	r.playing = true
	r.startTickerLocked()
	r.mu.Unlock()

	r.listeners.emit(Event{Type: EventStarted})
	return nil
}

// queueChainLocked builds the rate and volume stages over ctrl and hands
// them to the device, followed by the end-of-stream callback. A drained
// resampler never reads again, so every queued chain gets fresh stages.
func (r *speakerResource) queueChainLocked() {
	r.resampler = beep.ResampleRatio(4, r.ratioLocked(), r.ctrl)
	r.volume = &effects.Volume{
		Streamer: r.resampler,
		Base:     2,
		Volume:   levelToVolume(r.volumeLevel),
		Silent:   r.volumeLevel <= 0,
	}
	r.sp.dev.Play(beep.Seq(r.volume, beep.Callback(func() {
		// runs on the device goroutine with the device locked
		go r.finished()
	})))
}

// load opens and decodes the source, then hands the chain to the speaker.
func (r *speakerResource) load() {
	stream, format, err := r.openStream()
	if err != nil {
		r.mu.Lock()
		r.loading = false
		closed := r.closed
		r.mu.Unlock()
		if !closed {
			r.sp.logger.Warn("load failed", "locator", r.src.raw, "err", err)
			r.listeners.emit(Event{Type: EventError, Err: err})
		}
		return
	}

	r.mu.Lock()
	r.loading = false
	if r.closed {
		r.mu.Unlock()
		_ = stream.Close()
		return
	}

	r.stream = stream
	r.format = format
	if r.pendingSeek >= 0 {
		_ = stream.Seek(r.clampSampleLocked(format.SampleRate.N(r.pendingSeek)))
		r.pendingSeek = -1
	}
	r.ctrl = &beep.Ctrl{Streamer: stream, Paused: !r.wantPlay}
	r.loaded = true
	r.playing = r.wantPlay
	if r.playing {
		r.startTickerLocked()
	}
	playing := r.playing
	duration := format.SampleRate.D(stream.Len())
	r.queueChainLocked()
	r.mu.Unlock()

	r.sp.logger.Debug("loaded", "locator", r.src.raw, "duration", duration, "rate", format.SampleRate)
	r.listeners.emit(Event{Type: EventDurationKnown, Duration: duration})
	if playing {
		r.listeners.emit(Event{Type: EventStarted})
	}
}

func (r *speakerResource) openStream() (beep.StreamSeekCloser, beep.Format, error) {
	if r.src.kind == sourceSilence {
		format := beep.Format{SampleRate: r.sp.rate, NumChannels: 2, Precision: 2}
		return newSilence(format.SampleRate.N(r.src.silence)), format, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.sp.cfg.FetchTimeout)
	defer cancel()

	f, ext, err := r.src.open(ctx, r.sp.client)
	if err != nil {
		return nil, beep.Format{}, err
	}
	stream, format, _, err := decode(f, ext)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", r.src.raw)
	}
	return stream, format, nil
}

func (r *speakerResource) finished() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.playing = false
	r.ended = true
	r.stopTickerLocked()
	r.mu.Unlock()

	r.listeners.emit(Event{Type: EventEnded})
}

func (r *speakerResource) Pause() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if r.loading {
		r.wantPlay = false
		r.mu.Unlock()
		r.listeners.emit(Event{Type: EventPaused})
		return
	}
	if !r.loaded || !r.playing {
		r.mu.Unlock()
		return
	}

	r.sp.dev.Lock()
	r.ctrl.Paused = true
	pos := r.format.SampleRate.D(r.stream.Position())
	r.sp.dev.Unlock()
	r.playing = false
	r.stopTickerLocked()
	r.mu.Unlock()

	r.listeners.emit(Event{Type: EventPaused, Position: pos})
}

func (r *speakerResource) SeekTo(pos time.Duration) {
	pos = max(pos, 0)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if !r.loaded {
		r.pendingSeek = pos
		r.mu.Unlock()
		return
	}

	r.sp.dev.Lock()
	err := r.stream.Seek(r.clampSampleLocked(r.format.SampleRate.N(pos)))
	actual := r.format.SampleRate.D(r.stream.Position())
	if err == nil && r.ended {
		r.ctrl.Paused = true
	}
	r.sp.dev.Unlock()
	if err == nil && r.ended {
		// seeking a finished stream re-arms it paused at the new position
		r.ended = false
		r.queueChainLocked()
	}
	r.mu.Unlock()

	if err != nil {
		r.sp.logger.Warn("seek failed", "locator", r.src.raw, "pos", pos, "err", err)
		return
	}
	r.listeners.emit(Event{Type: EventPositionChanged, Position: actual})
}

// clampSampleLocked keeps a seek target inside the stream.
func (r *speakerResource) clampSampleLocked(n int) int {
	return min(max(n, 0), max(r.stream.Len()-1, 0))
}

func (r *speakerResource) Volume() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.volumeLevel
}

// SetVolume sets the level in [0,1]; values outside are clamped.
func (r *speakerResource) SetVolume(v float64) {
	v = clampUnit(v)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.volumeLevel = v
	if r.volume != nil {
		r.sp.dev.Lock()
		r.volume.Volume = levelToVolume(v)
		r.volume.Silent = v <= 0
		r.sp.dev.Unlock()
	}
}

func (r *speakerResource) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rate
}

// SetRate changes the playback speed multiplier. Non-positive and
// non-finite rates are ignored.
func (r *speakerResource) SetRate(rate float64) {
	if !validRate(rate) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rate = rate
	if r.resampler != nil {
		r.sp.dev.Lock()
		r.resampler.SetRatio(r.ratioLocked())
		r.sp.dev.Unlock()
	}
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0)
}

// ratioLocked combines sample-rate conversion with the speed multiplier.
func (r *speakerResource) ratioLocked() float64 {
	return float64(r.format.SampleRate) / float64(r.sp.rate) * r.rate
}

func (r *speakerResource) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.playing = false
	r.stopTickerLocked()
	stream := r.stream
	if r.ctrl != nil {
		// a nil streamer drains the sequence into its callback
		r.sp.dev.Lock()
		r.ctrl.Streamer = nil
		r.sp.dev.Unlock()
	}
	r.mu.Unlock()

	r.listeners.clear()
	if stream != nil {
		return stream.Close()
	}
	return nil
}

func (r *speakerResource) startTickerLocked() {
	if r.stopTick != nil {
		return
	}
	stop := make(chan struct{})
	r.stopTick = stop
	go r.tick(stop)
}

func (r *speakerResource) stopTickerLocked() {
	if r.stopTick != nil {
		close(r.stopTick)
		r.stopTick = nil
	}
}

func (r *speakerResource) tick(stop <-chan struct{}) {
	t := time.NewTicker(r.sp.cfg.TickInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			r.mu.Lock()
			if r.closed || r.stream == nil {
				r.mu.Unlock()
				return
			}
			r.sp.dev.Lock()
			pos := r.format.SampleRate.D(r.stream.Position())
			r.sp.dev.Unlock()
			r.mu.Unlock()
			r.listeners.emit(Event{Type: EventPositionChanged, Position: pos})
		}
	}
}

// levelToVolume maps a linear 0..1 level onto beep's base-2 volume scale:
// 1 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
