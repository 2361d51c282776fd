package cursor

import "testing"

func TestNew(t *testing.T) {
	c := New(3)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("New(3) = pos %d offset %d, want 0 0", c.Pos(), c.Offset())
	}
	if c.margin != 3 {
		t.Errorf("margin = %d, want 3", c.margin)
	}
	if New(-1).margin != 0 {
		t.Error("negative margin not clamped")
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		delta      int
		listLen    int
		wantPos    int
		wantOffset int
	}{
		{"down one", 0, 1, 10, 1, 0},
		{"up at top stays", 0, -1, 10, 0, 0},
		{"past the end clamps", 8, 5, 10, 9, 5},
		{"into margin scrolls", 3, 1, 10, 4, 1},
		{"empty list is a no-op", 0, 1, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1)
			c.pos = tt.start
			c.Move(tt.delta, tt.listLen, 5)
			if c.Pos() != tt.wantPos || c.Offset() != tt.wantOffset {
				t.Errorf("pos %d offset %d, want %d %d", c.Pos(), c.Offset(), tt.wantPos, tt.wantOffset)
			}
		})
	}
}

func TestJump(t *testing.T) {
	c := New(0)
	c.Jump(7, 10, 4)
	if c.Pos() != 7 || c.Offset() != 4 {
		t.Errorf("Jump(7) = pos %d offset %d, want 7 4", c.Pos(), c.Offset())
	}

	c.Jump(0, 10, 4)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("Jump(0) = pos %d offset %d, want 0 0", c.Pos(), c.Offset())
	}

	c.Jump(-3, 10, 4)
	if c.Pos() != 0 {
		t.Errorf("Jump(-3) pos = %d, want 0", c.Pos())
	}
}

func TestScroll_MarginShrinksInShortViewports(t *testing.T) {
	// margin 5 in a 6-row panel leaves room for (6-1)/2 = 2 rows of context
	c := New(5)
	for range 4 {
		c.Move(1, 20, 6)
	}
	if c.Pos() != 4 || c.Offset() != 1 {
		t.Errorf("pos %d offset %d, want 4 1", c.Pos(), c.Offset())
	}

	start, end := c.VisibleRange(20, 6)
	if c.Pos()-start < 2 || end-1-c.Pos() < 2 {
		t.Errorf("selection %d not centered in [%d, %d)", c.Pos(), start, end)
	}
}

func TestSync(t *testing.T) {
	tests := []struct {
		name        string
		pos, offset int
		listLen     int
		height      int
		wantPos     int
		wantOffset  int
		wantChanged bool
	}{
		{"within bounds", 2, 0, 10, 5, 2, 0, false},
		{"list shrank", 8, 5, 3, 5, 2, 0, true},
		{"list emptied", 4, 2, 0, 5, 0, 0, true},
		{"viewport grew", 9, 7, 10, 8, 9, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(0)
			c.pos, c.offset = tt.pos, tt.offset
			changed := c.Sync(tt.listLen, tt.height)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if c.Pos() != tt.wantPos || c.Offset() != tt.wantOffset {
				t.Errorf("pos %d offset %d, want %d %d", c.Pos(), c.Offset(), tt.wantPos, tt.wantOffset)
			}
		})
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		listLen   int
		height    int
		wantStart int
		wantEnd   int
	}{
		{"full page", 0, 10, 4, 0, 4},
		{"short list", 0, 3, 4, 0, 3},
		{"scrolled", 6, 10, 4, 6, 10},
		{"empty", 0, 0, 4, 0, 0},
		{"no height", 0, 10, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{offset: tt.offset}
			start, end := c.VisibleRange(tt.listLen, tt.height)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("VisibleRange = [%d, %d), want [%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		key     string
		start   int
		wantPos int
		handled bool
	}{
		{"j", 0, 1, true},
		{"down", 0, 1, true},
		{"k", 3, 2, true},
		{"up", 0, 0, true},
		{"home", 7, 0, true},
		{"G", 0, 9, true},
		{"end", 0, 9, true},
		{"pgdown", 0, 2, true},
		{"ctrl+u", 5, 3, true},
		{"x", 4, 4, false},
		{"enter", 4, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := New(0)
			c.pos = tt.start
			handled := c.HandleKey(tt.key, 10, 4)
			if handled != tt.handled {
				t.Errorf("handled = %v, want %v", handled, tt.handled)
			}
			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}
}
