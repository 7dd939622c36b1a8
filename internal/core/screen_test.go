package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColored(1, 1, "64", ColorOrange)

	cell := s.GetCell(1, 1)
	if cell.Rune != '6' || cell.Color != ColorOrange {
		t.Errorf("GetCell(1, 1) = %+v, expected '6' in orange", cell)
	}
	if s.GetCell(0, 1).Color != ColorDefault {
		t.Error("Untouched cell should keep the default color")
	}

	s.Clear()
	if s.GetCell(1, 1) != (Cell{Rune: ' '}) {
		t.Errorf("After Clear, expected blank cell, got %+v", s.GetCell(1, 1))
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'A')
	s.Set(4, 4, 'B')

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize: got %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != 'A' {
		t.Errorf("Resize should keep content inside the new bounds, got %q", s.Get(1, 1))
	}

	s.Resize(6, 6)
	if s.Get(4, 4) != ' ' {
		t.Error("Content clipped by a shrink must not reappear after growing")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4))

	expected := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	if got := s.String(); got != strings.Join(expected, "\n") {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", got, strings.Join(expected, "\n"))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "2048")

	if got := s.Row(0); got != "   2048    " {
		t.Errorf("Row(0) = %q", got)
	}
}
