package library

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/playback"
	"github.com/llehouerou/tflash/internal/ui/action"
	"github.com/llehouerou/tflash/internal/ui/testutil"
)

func newTestLibrary() Model {
	m := New(briefing.Catalog())
	m.SetSize(100, 12)
	return m
}

func lineWith(t *testing.T, view, needle string) string {
	t.Helper()
	for _, l := range testutil.Lines(view) {
		if strings.Contains(l, needle) {
			return l
		}
	}
	t.Fatalf("no line contains %q:\n%s", needle, testutil.StripANSI(view))
	return ""
}

func TestView_ListsCatalog(t *testing.T) {
	view := newTestLibrary().View()
	plain := testutil.StripANSI(view)

	assert.Contains(t, plain, "Library (4)")
	for _, want := range []string{"Evening Digest", "Yesterday, 6:00 PM", "Technology · Science", "15:22", "played", "scheduled"} {
		assert.Contains(t, plain, want)
	}
}

func TestView_MarksCurrentTrack(t *testing.T) {
	m := newTestLibrary()
	tr, ok := briefing.Find("2")
	require.True(t, ok)

	m.SetState(playback.State{CurrentTrack: tr.Ptr(), IsPlaying: true})
	assert.True(t, strings.HasPrefix(strings.TrimPrefix(lineWith(t, m.View(), "Afternoon Update"), "│"), "▶ "))

	m.SetState(playback.State{CurrentTrack: tr.Ptr()})
	assert.True(t, strings.HasPrefix(strings.TrimPrefix(lineWith(t, m.View(), "Afternoon Update"), "│"), "⏸ "))

	m.SetState(playback.State{})
	assert.True(t, strings.HasPrefix(strings.TrimPrefix(lineWith(t, m.View(), "Afternoon Update"), "│"), "  "))
}

func TestUpdate_PlayAndEnqueue(t *testing.T) {
	m := newTestLibrary()
	m.SetFocused(true)
	m, _ = m.Update(testutil.Key("down"))

	_, cmd := m.Update(testutil.Key("enter"))
	require.NotNil(t, cmd)
	msg := cmd().(action.Msg)
	assert.Equal(t, "library", msg.Source)
	play, ok := msg.Action.(Play)
	require.True(t, ok)
	assert.Equal(t, "2", play.Track.ID)

	_, cmd = m.Update(testutil.Key("a"))
	require.NotNil(t, cmd)
	enq, ok := cmd().(action.Msg).Action.(Enqueue)
	require.True(t, ok)
	assert.Equal(t, "2", enq.Track.ID)
}

func TestUpdate_DeleteIsIgnored(t *testing.T) {
	m := newTestLibrary()
	m.SetFocused(true)

	_, cmd := m.Update(testutil.Key("d"))

	assert.Nil(t, cmd)
}

func TestUpdate_PlayedTrackIsIsolated(t *testing.T) {
	m := newTestLibrary()
	m.SetFocused(true)

	_, cmd := m.Update(testutil.Key("enter"))
	play := cmd().(action.Msg).Action.(Play)
	play.Track.Topics[0] = "changed"

	assert.Equal(t, "Technology", m.Items()[0].Topics[0])
}
