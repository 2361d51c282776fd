package briefing

import (
	"slices"
	"time"
)

// Status is the listening status of a catalog briefing.
type Status string

const (
	StatusNew       Status = "new"
	StatusScheduled Status = "scheduled"
	StatusPlayed    Status = "played"
)

// Entry is a catalog briefing with its listening status.
type Entry struct {
	Track
	Status Status
}

// Playlist is a saved collection summary.
type Playlist struct {
	ID       string
	Name     string
	Count    int
	Duration time.Duration
}

// Topic is a selectable news topic.
type Topic struct {
	ID          string
	Label       string
	Description string
}

// Slot is the time of day an upcoming briefing is delivered in.
type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotEvening   Slot = "evening"
)

// Upcoming is a scheduled future briefing.
type Upcoming struct {
	ID        string
	Title     string
	Day       string
	Time      string
	Slot      Slot
	Topics    []string
	Enabled   bool
	Recurring string
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

var catalog = []Entry{
	{
		Track: Track{
			ID:       "1",
			Title:    "Morning Briefing",
			Date:     "Today, 7:00 AM",
			Duration: seconds(754),
			Topics:   []string{"Technology", "Business", "World"},
		},
		Status: StatusNew,
	},
	{
		Track: Track{
			ID:       "2",
			Title:    "Afternoon Update",
			Date:     "Today, 2:00 PM",
			Duration: seconds(525),
			Topics:   []string{"Politics", "Sports"},
		},
		Status: StatusScheduled,
	},
	{
		Track: Track{
			ID:       "3",
			Title:    "Evening Digest",
			Date:     "Yesterday, 6:00 PM",
			Duration: seconds(922),
			Topics:   []string{"Technology", "Science", "Health"},
		},
		Status: StatusPlayed,
	},
	{
		Track: Track{
			ID:       "4",
			Title:    "Morning Briefing",
			Date:     "Yesterday, 7:00 AM",
			Duration: seconds(678),
			Topics:   []string{"Business", "World"},
		},
		Status: StatusPlayed,
	},
}

var playlists = []Playlist{
	{ID: "p1", Name: "Tech Deep Dive", Count: 12, Duration: 2*time.Hour + 34*time.Minute},
	{ID: "p2", Name: "Weekly Highlights", Count: 7, Duration: time.Hour + 15*time.Minute},
	{ID: "p3", Name: "Favorites", Count: 24, Duration: 4*time.Hour + 52*time.Minute},
}

var topics = []Topic{
	{ID: "technology", Label: "Technology", Description: "Latest tech news and innovations"},
	{ID: "politics", Label: "Politics", Description: "Global political developments"},
	{ID: "business", Label: "Business", Description: "Markets, finance, and economy"},
	{ID: "sports", Label: "Sports", Description: "Scores, highlights, and analysis"},
	{ID: "entertainment", Label: "Entertainment", Description: "Movies, music, and pop culture"},
	{ID: "science", Label: "Science", Description: "Research and discoveries"},
	{ID: "health", Label: "Health", Description: "Wellness and medical news"},
	{ID: "world", Label: "World", Description: "International news and events"},
	{ID: "climate", Label: "Climate", Description: "Environment and climate change"},
	{ID: "culture", Label: "Culture", Description: "Arts, books, and society"},
}

var upcoming = []Upcoming{
	{ID: "1", Title: "Morning Briefing", Day: "Today", Time: "7:00 AM", Slot: SlotMorning,
		Topics: []string{"Technology", "Business", "World"}, Enabled: true, Recurring: "Daily"},
	{ID: "2", Title: "Evening Digest", Day: "Today", Time: "6:00 PM", Slot: SlotEvening,
		Topics: []string{"Technology", "Science", "Health"}, Enabled: true, Recurring: "Daily"},
	{ID: "3", Title: "Morning Briefing", Day: "Tomorrow", Time: "7:00 AM", Slot: SlotMorning,
		Topics: []string{"Technology", "Business", "World"}, Enabled: true, Recurring: "Daily"},
	{ID: "4", Title: "Afternoon Update", Day: "Tomorrow", Time: "2:00 PM", Slot: SlotAfternoon,
		Topics: []string{"Politics", "Sports"}, Enabled: true, Recurring: "Weekdays"},
	{ID: "5", Title: "Evening Digest", Day: "Tomorrow", Time: "6:00 PM", Slot: SlotEvening,
		Topics: []string{"Technology", "Science", "Health"}, Enabled: true, Recurring: "Daily"},
}

// Catalog returns the library briefings, newest first.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	for i, e := range catalog {
		out[i] = Entry{Track: e.Track.Clone(), Status: e.Status}
	}
	return out
}

// Find returns the catalog briefing with the given id.
func Find(id string) (Track, bool) {
	for _, e := range catalog {
		if e.ID == id {
			return e.Track.Clone(), true
		}
	}
	return Track{}, false
}

// Playlists returns the saved playlist summaries.
func Playlists() []Playlist {
	return slices.Clone(playlists)
}

// Topics returns every selectable topic.
func Topics() []Topic {
	return slices.Clone(topics)
}

// TopicByID looks a topic up by its id.
func TopicByID(id string) (Topic, bool) {
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Schedule returns the upcoming briefings.
func Schedule() []Upcoming {
	out := make([]Upcoming, len(upcoming))
	for i, u := range upcoming {
		u.Topics = slices.Clone(u.Topics)
		out[i] = u
	}
	return out
}
