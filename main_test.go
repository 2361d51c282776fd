package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/logging"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/player"
)

func newHeadless(t *testing.T) (*runtime, *player.MockBackend, chan error) {
	t.Helper()
	b := player.NewMockBackend()
	rt := &runtime{logger: logging.Discard(), svc: playback.New(b, playback.Config{})}
	rt.push(rt.svc)
	t.Cleanup(func() { _ = rt.Close() })

	done := make(chan error, 1)
	unsub := rt.svc.Subscribe(headlessObserver(rt, done))
	t.Cleanup(unsub)
	return rt, b, done
}

func requireNotDone(t *testing.T, done chan error) {
	t.Helper()
	select {
	case err := <-done:
		t.Fatalf("finished early: %v", err)
	default:
	}
}

func TestResolveTrack(t *testing.T) {
	got := resolveTrack("1")
	want, ok := briefing.Find("1")
	require.True(t, ok)
	assert.Equal(t, want, got)

	bare := resolveTrack("/tmp/news.mp3")
	assert.Equal(t, "/tmp/news.mp3", bare.AudioURL)
	assert.Equal(t, "/tmp/news.mp3", bare.Title)
}

func TestHeadless_FinishesAfterLastTrack(t *testing.T) {
	rt, b, done := newHeadless(t)

	rt.svc.AddToQueue(resolveTrack("2"))
	require.NoError(t, rt.svc.PlayTrack(resolveTrack("1")))
	b.Last().Start(time.Minute)
	requireNotDone(t, done)

	b.Last().Emit(player.Event{Type: player.EventEnded})
	require.Len(t, b.Resources(), 2)

	// the second track is loading, not finished
	requireNotDone(t, done)
	b.Last().Start(time.Minute)
	b.Last().Emit(player.Event{Type: player.EventEnded})

	select {
	case err := <-done:
		assert.NoError(t, err)
	default:
		t.Fatal("not finished after the last track ended")
	}
}

func TestHeadless_PauseIsNotTheEnd(t *testing.T) {
	rt, b, done := newHeadless(t)

	require.NoError(t, rt.svc.PlayTrack(resolveTrack("1")))
	b.Last().Start(time.Minute)
	b.Last().Emit(player.Event{Type: player.EventPositionChanged, Position: 20 * time.Second})
	b.Last().Emit(player.Event{Type: player.EventPaused})

	requireNotDone(t, done)
}

func TestHeadless_ErrorSkipsToNext(t *testing.T) {
	rt, b, done := newHeadless(t)

	rt.svc.AddToQueue(resolveTrack("2"))
	require.NoError(t, rt.svc.PlayTrack(resolveTrack("1")))
	b.Last().Emit(player.Event{Type: player.EventError, Err: errors.New("decode failed")})

	requireNotDone(t, done)
	require.Len(t, b.Resources(), 2)
	st := rt.svc.Snapshot()
	require.True(t, st.HasTrack())
	assert.Equal(t, "2", st.CurrentTrack.ID)
}

func TestHeadless_ErrorOnLastTrackFails(t *testing.T) {
	rt, b, done := newHeadless(t)

	require.NoError(t, rt.svc.PlayTrack(resolveTrack("1")))
	boom := errors.New("decode failed")
	b.Last().Emit(player.Event{Type: player.EventError, Err: boom})

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	default:
		t.Fatal("error not reported")
	}
}

func TestStartHeadless_FailedFirstTrackPlaysQueue(t *testing.T) {
	rt, b, done := newHeadless(t)
	b.FailOpen("/tmp/missing.mp3", errors.New("no such file"))

	require.NoError(t, startHeadless(rt, []string{"/tmp/missing.mp3", "2"}))

	requireNotDone(t, done)
	st := rt.svc.Snapshot()
	require.True(t, st.HasTrack())
	assert.Equal(t, "2", st.CurrentTrack.ID)
	assert.Empty(t, st.Queue)
	require.Len(t, b.Resources(), 1)

	b.Last().Start(time.Minute)
	b.Last().Emit(player.Event{Type: player.EventEnded})
	select {
	case err := <-done:
		assert.NoError(t, err)
	default:
		t.Fatal("not finished after the queued track ended")
	}
}

func TestStartHeadless_FailedOnlyTrackEndsRun(t *testing.T) {
	rt, b, done := newHeadless(t)
	boom := errors.New("no such file")
	b.FailOpen("/tmp/missing.mp3", boom)

	require.NoError(t, startHeadless(rt, []string{"/tmp/missing.mp3"}))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	default:
		t.Fatal("failure not reported")
	}
}

func TestStartHeadless_AutoPlayKeepsQueue(t *testing.T) {
	b := player.NewMockBackend()
	rt := &runtime{logger: logging.Discard(), svc: playback.New(b, playback.Config{AutoPlay: true})}
	rt.push(rt.svc)
	t.Cleanup(func() { _ = rt.Close() })

	require.NoError(t, startHeadless(rt, []string{"1", "2", "3"}))

	st := rt.svc.Snapshot()
	assert.Equal(t, "1", st.CurrentTrack.ID)
	require.Len(t, st.Queue, 2)
	assert.Equal(t, "2", st.Queue[0].Track.ID)
	assert.Len(t, b.Resources(), 1)
}
