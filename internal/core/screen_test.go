package core

import "testing"

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 4x2", s.Width(), s.Height())
	}
	if got := s.String(); got != "    \n    " {
		t.Errorf("String() = %q", got)
	}
	if c := s.GetCell(3, 1); c != blankCell {
		t.Errorf("cell = %+v, expected blank", c)
	}
}

func TestScreenSetGetCell(t *testing.T) {
	s := NewScreen(3, 3)
	want := Cell{Rune: '▀', FG: ColorShip, BG: ColorRock}
	s.SetCell(1, 2, want)

	if got := s.GetCell(1, 2); got != want {
		t.Errorf("GetCell = %+v, expected %+v", got, want)
	}

	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"right", 3, 0},
		{"above", 0, -1},
		{"below", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetCell(tt.x, tt.y, want) // must not panic
			if got := s.GetCell(tt.x, tt.y); got != blankCell {
				t.Errorf("out of bounds GetCell = %+v, expected blank", got)
			}
		})
	}
}

func TestScreenDrawTextColorKeepsBackground(t *testing.T) {
	s := NewScreen(6, 1)
	s.SetCell(1, 0, Cell{Rune: ' ', BG: ColorRock})
	s.DrawTextColor(0, 0, "héllo world", ColorText)

	if got := s.String(); got != "héllo " {
		t.Errorf("String() = %q, expected text clipped to the width", got)
	}
	c := s.GetCell(1, 0)
	if c.Rune != 'é' || c.FG != ColorText || c.BG != ColorRock {
		t.Errorf("cell = %+v, expected é on rock", c)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(2, 2)
	s.SetCell(0, 0, Cell{Rune: 'x'})

	s.Resize(3, 1)
	if s.Width() != 3 || s.Height() != 1 {
		t.Fatalf("size = %dx%d, expected 3x1", s.Width(), s.Height())
	}
	if got := s.String(); got != "   " {
		t.Errorf("resize should blank the screen, got %q", got)
	}

	s.Resize(-1, 5)
	if s.Width() != 0 || s.String() != "\n\n\n\n" {
		t.Errorf("negative width should clamp to 0, got %dx%d", s.Width(), s.Height())
	}
}
