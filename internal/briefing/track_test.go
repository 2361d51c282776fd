package briefing

import (
	"testing"
	"time"
)

func TestTrack_Clone_DoesNotShareTopics(t *testing.T) {
	orig := Track{ID: "1", Topics: []string{"Technology", "World"}}

	c := orig.Clone()
	c.Topics[0] = "Sports"

	if orig.Topics[0] != "Technology" {
		t.Errorf("orig.Topics[0] = %q, want Technology", orig.Topics[0])
	}
}

func TestTrack_Locator(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  string
	}{
		{"uses own url", Track{AudioURL: "https://cdn.example/a.mp3"}, "https://cdn.example/a.mp3"},
		{"falls back when absent", Track{}, "placeholder:30s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.Locator("placeholder:30s"); got != tt.want {
				t.Errorf("Locator() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := Track{ID: "1", Title: "Morning Briefing", Duration: time.Minute, Topics: []string{"World"}}
	b := a.Clone()

	if !Equal(a, b) {
		t.Error("Equal(a, clone) = false, want true")
	}

	b.Topics = append(b.Topics, "Health")
	if Equal(a, b) {
		t.Error("Equal should compare topics")
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Catalog()
	if len(c) != 4 {
		t.Fatalf("len(Catalog()) = %d, want 4", len(c))
	}
	c[0].Topics[0] = "mutated"

	again := Catalog()
	if again[0].Topics[0] != "Technology" {
		t.Errorf("catalog mutated through returned copy: %q", again[0].Topics[0])
	}
}

func TestFind(t *testing.T) {
	tr, ok := Find("3")
	if !ok {
		t.Fatal("Find(3) not found")
	}
	if tr.Title != "Evening Digest" || tr.Duration != 922*time.Second {
		t.Errorf("Find(3) = %+v", tr)
	}

	if _, ok := Find("missing"); ok {
		t.Error("Find(missing) should report false")
	}
}

func TestTopicByID(t *testing.T) {
	topic, ok := TopicByID("climate")
	if !ok || topic.Label != "Climate" {
		t.Errorf("TopicByID(climate) = %+v, %v", topic, ok)
	}
	if len(Topics()) != 10 {
		t.Errorf("len(Topics()) = %d, want 10", len(Topics()))
	}
}
