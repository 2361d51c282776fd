// internal/playback/service_impl.go
package playback

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/player"
	"github.com/llehouerou/tflash/internal/playlist"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	backend player.Backend
	cfg     Config
	logger  *log.Logger

	mu sync.Mutex
	// gen tags the current binding; events carrying another gen are stale
	gen       uint64
	res       player.Resource
	detach    func()
	current   *briefing.Track
	cueAt     time.Duration
	isPlaying bool
	position  time.Duration
	duration  time.Duration
	volume    float64
	rate      float64
	queue     *playlist.Queue
	err       error
	version   uint64
	closed    bool

	subsMu sync.Mutex
	subs   map[string]*subscriber
}

// New creates a playback service that opens resources through backend.
func New(backend player.Backend, cfg Config) Service {
	cfg = cfg.withDefaults()
	return &serviceImpl{
		backend: backend,
		cfg:     cfg,
		logger:  cfg.Logger.WithPrefix("playback"),
		volume:  ClampVolume(cfg.Volume),
		rate:    ClampPlaybackRate(cfg.PlaybackRate),
		queue:   playlist.NewQueue(),
		subs:    make(map[string]*subscriber),
	}
}

// binding is a detached resource waiting to be released outside the lock.
type binding struct {
	res player.Resource
}

func (b binding) release(logger *log.Logger) error {
	if b.res == nil {
		return nil
	}
	err := b.res.Close()
	if err != nil {
		logger.Warn("release resource", "err", err)
	}
	return err
}

// unbindLocked detaches the current resource's listener and forgets it.
// The caller releases the returned binding after unlocking.
func (s *serviceImpl) unbindLocked() binding {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	old := binding{res: s.res}
	s.res = nil
	return old
}

// bindLocked supersedes the current binding with a fresh resource for t.
func (s *serviceImpl) bindLocked(t briefing.Track) (player.Resource, uint64, binding, error) {
	s.gen++
	gen := s.gen
	old := s.unbindLocked()

	s.current = t.Ptr()
	s.cueAt = 0
	s.isPlaying = false
	s.position = 0
	s.duration = 0
	s.err = nil

	locator := t.Locator(s.cfg.Placeholder)
	res, err := s.backend.Open(locator)
	if err != nil {
		err = errors.Wrapf(err, "open %q", locator)
		s.err = err
		return nil, gen, old, err
	}

	s.res = res
	s.detach = res.Listen(func(e player.Event) { s.handleEvent(gen, e) })
	res.SetVolume(s.volume)
	res.SetRate(s.rate)
	s.logger.Debug("bound", "track", t.ID, "locator", locator, "gen", gen)
	return res, gen, old, nil
}

// start asks res to play. A failure only touches state while res is still
// the current binding.
func (s *serviceImpl) start(res player.Resource, gen uint64) error {
	err := res.Play()
	if err == nil {
		return nil
	}

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug("superseded resource failed to start", "gen", gen, "err", err)
		return nil
	}
	s.isPlaying = false
	s.err = err
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)
	s.logger.Warn("start playback", "err", err)
	return errors.Wrap(err, "start playback")
}

// switchToLocked binds t and starts it. It returns with s.mu released.
func (s *serviceImpl) switchToLocked(t briefing.Track, seek time.Duration) error {
	res, gen, old, err := s.bindLocked(t)
	if err == nil && seek > 0 {
		s.position = seek
	}
	st := s.commitLocked()
	s.mu.Unlock()

	_ = old.release(s.logger)
	s.publish(st)
	if err != nil {
		return err
	}
	if seek > 0 {
		res.SeekTo(seek)
	}
	return s.start(res, gen)
}

func (s *serviceImpl) PlayTrack(t briefing.Track) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	return s.switchToLocked(t, 0)
}

func (s *serviceImpl) Play() error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.res != nil:
		res, gen := s.res, s.gen
		s.mu.Unlock()
		return s.start(res, gen)
	case s.current != nil:
		return s.switchToLocked(*s.current, s.cueAt)
	default:
		s.mu.Unlock()
		return ErrNoTrack
	}
}

func (s *serviceImpl) Pause() {
	s.mu.Lock()
	res := s.res
	s.mu.Unlock()
	if res != nil {
		res.Pause()
	}
}

func (s *serviceImpl) TogglePlayPause() error {
	s.mu.Lock()
	playing := s.isPlaying
	s.mu.Unlock()

	if playing {
		s.Pause()
		return nil
	}
	return s.Play()
}

// Seek moves to pos, clamped to [0,Duration] (only bounded below while the
// duration is unknown). No-op when nothing is bound.
func (s *serviceImpl) Seek(pos time.Duration) {
	s.seek(func(time.Duration) time.Duration { return pos })
}

func (s *serviceImpl) SkipForward() {
	s.seek(func(cur time.Duration) time.Duration { return cur + s.cfg.SkipInterval })
}

func (s *serviceImpl) SkipBackward() {
	s.seek(func(cur time.Duration) time.Duration { return cur - s.cfg.SkipInterval })
}

func (s *serviceImpl) seek(target func(cur time.Duration) time.Duration) {
	s.mu.Lock()
	if s.closed || s.res == nil {
		s.mu.Unlock()
		return
	}
	pos := clampPosition(target(s.position), s.duration)
	s.position = pos
	res := s.res
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)
	res.SeekTo(pos)
}

// SetVolume ignores NaN and keeps the current volume.
func (s *serviceImpl) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}
	v = ClampVolume(v)

	s.mu.Lock()
	s.volume = v
	if s.res != nil {
		s.res.SetVolume(v)
	}
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)
}

// SetPlaybackRate ignores NaN and keeps the current rate.
func (s *serviceImpl) SetPlaybackRate(r float64) {
	if math.IsNaN(r) {
		return
	}
	r = ClampPlaybackRate(r)

	s.mu.Lock()
	s.rate = r
	if s.res != nil {
		s.res.SetRate(r)
	}
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)
}

func (s *serviceImpl) Cue(t briefing.Track, at time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.gen++
	old := s.unbindLocked()
	s.current = t.Ptr()
	s.cueAt = max(at, 0)
	s.isPlaying = false
	s.position = s.cueAt
	s.duration = 0
	s.err = nil
	st := s.commitLocked()
	s.mu.Unlock()

	_ = old.release(s.logger)
	s.publish(st)
}

func (s *serviceImpl) AddToQueue(t briefing.Track) string {
	s.mu.Lock()
	e := s.queue.Add(t)
	autoStart := s.cfg.AutoPlay && !s.closed && s.current == nil
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)
	if autoStart {
		if err := s.Advance(); err != nil {
			s.logger.Warn("auto-play", "err", err)
		}
	}
	return e.Key
}

func (s *serviceImpl) RemoveFromQueue(id string) {
	s.mu.Lock()
	if !s.queue.RemoveFirst(id) {
		s.mu.Unlock()
		return
	}
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)
}

func (s *serviceImpl) RemoveEntry(key string) bool {
	s.mu.Lock()
	if !s.queue.RemoveEntry(key) {
		s.mu.Unlock()
		return false
	}
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)
	return true
}

func (s *serviceImpl) RestoreQueue(entries []playlist.Entry) {
	if len(entries) == 0 {
		return
	}
	s.mu.Lock()
	s.queue.Restore(entries...)
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)
}

func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	s.queue.Clear()
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)
}

// Advance plays the head of the queue. With an empty queue it does nothing.
func (s *serviceImpl) Advance() error {
	return s.advance(func() bool { return true })
}

// advance pops the queue head if still valid() and switches to it.
func (s *serviceImpl) advance(valid func() bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !valid() {
		s.mu.Unlock()
		return nil
	}
	next, ok := s.queue.PopFront()
	if !ok {
		s.mu.Unlock()
		return nil
	}
	return s.switchToLocked(next.Track, 0)
}

// handleEvent folds a resource event into state. Events from superseded
// bindings are dropped.
func (s *serviceImpl) handleEvent(gen uint64, e player.Event) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug("stale event dropped", "event", e.Type, "gen", gen)
		return
	}

	switch e.Type {
	case player.EventPositionChanged:
		s.position = clampPosition(e.Position, s.duration)
	case player.EventDurationKnown:
		s.duration = max(e.Duration, 0)
		s.position = clampPosition(s.position, s.duration)
	case player.EventStarted:
		s.isPlaying = true
		s.err = nil
	case player.EventPaused:
		s.isPlaying = false
	case player.EventEnded:
		s.isPlaying = false
		if s.duration > 0 {
			s.position = s.duration
		}
	case player.EventError:
		s.isPlaying = false
		s.err = e.Err
		s.logger.Warn("resource error", "gen", gen, "err", e.Err)
	}
	st := s.commitLocked()
	s.mu.Unlock()

	s.publish(st)

	if e.Type == player.EventEnded {
		err := s.advance(func() bool { return gen == s.gen })
		if err != nil && !errors.Is(err, ErrClosed) {
			s.logger.Warn("advance after end", "err", err)
		}
	}
}

func (s *serviceImpl) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// commitLocked bumps the version and returns the new snapshot.
func (s *serviceImpl) commitLocked() State {
	s.version++
	return s.stateLocked()
}

func (s *serviceImpl) stateLocked() State {
	var current *briefing.Track
	if s.current != nil {
		current = s.current.Ptr()
	}
	return State{
		Version:      s.version,
		CurrentTrack: current,
		IsPlaying:    s.isPlaying,
		CurrentTime:  s.position,
		Duration:     s.duration,
		Volume:       s.volume,
		PlaybackRate: s.rate,
		Queue:        s.queue.Entries(),
		Err:          s.err,
	}
}

// publish hands st to every subscriber. It must be called without s.mu.
func (s *serviceImpl) publish(st State) {
	s.subsMu.Lock()
	subs := make([]*subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.deliver(st)
	}
}

func (s *serviceImpl) Subscribe(fn func(State)) func() {
	return s.addSubscriber(&subscriber{fn: fn})
}

func (s *serviceImpl) Watch() *Subscription {
	sub := newSubscription()
	sub.cancel = s.addSubscriber(&subscriber{fn: sub.offer, onClose: sub.close})
	return sub
}

func (s *serviceImpl) addSubscriber(sub *subscriber) func() {
	id := uuid.NewString()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.close()
		return func() {}
	}
	s.subsMu.Lock()
	s.subs[id] = sub
	s.subsMu.Unlock()
	st := s.stateLocked()
	s.mu.Unlock()

	// a newer state may already have been delivered; deliver drops older ones
	sub.deliver(st)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			sub.close()
		})
	}
}

// Close releases the resource and ends every subscription.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.gen++
	old := s.unbindLocked()
	s.isPlaying = false
	s.mu.Unlock()

	err := old.release(s.logger)

	s.subsMu.Lock()
	subs := s.subs
	s.subs = make(map[string]*subscriber)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	return err
}
