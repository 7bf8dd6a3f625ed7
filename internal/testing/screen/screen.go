// Package screen emulates enough of a terminal to check what a user would
// actually see after the dashboard has drawn over previous frames.
package screen

import (
	"strings"
	"sync"
)

// Screen is a virtual terminal. It implements io.Writer so a display can
// draw into it directly.
type Screen struct {
	mu      sync.Mutex
	rows    int
	cols    int
	buffer  [][]rune
	cursorX int
	cursorY int
	pending []rune // an escape sequence split across writes
}

// New creates a blank rows x cols screen
func New(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols, buffer: make([][]rune, rows)}
	for i := range s.buffer {
		s.buffer[i] = blankRow(cols)
	}
	return s
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for j := range row {
		row[j] = ' '
	}
	return row
}

// Write interprets p as terminal output
func (s *Screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runes := append(s.pending, []rune(string(p))...)
	s.pending = nil

	i := 0
	for i < len(runes) {
		switch runes[i] {
		case '\x1b':
			next, complete := s.handleEscape(runes, i)
			if !complete {
				s.pending = append([]rune(nil), runes[i:]...)
				return len(p), nil
			}
			i = next
		case '\r':
			s.cursorX = 0
			i++
		case '\n':
			s.lineFeed()
			i++
		case '\b':
			if s.cursorX > 0 {
				s.cursorX--
			}
			i++
		default:
			s.putChar(runes[i])
			i++
		}
	}
	return len(p), nil
}

// handleEscape processes a CSI sequence starting at runes[start] and returns
// the index after it. Colors and private modes are accepted and ignored.
func (s *Screen) handleEscape(runes []rune, start int) (int, bool) {
	if start+1 >= len(runes) {
		return start, false
	}
	if runes[start+1] != '[' {
		return start + 2, true
	}

	i := start + 2
	if i < len(runes) && runes[i] == '?' {
		i++
	}

	var params []int
	current := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
		case r == ';':
			params = append(params, current)
			current = 0
		default:
			params = append(params, current)
			s.command(r, params)
			return i + 1, true
		}
		i++
	}
	return start, false
}

func param(params []int, i, def int) int {
	if i < len(params) && params[i] > 0 {
		return params[i]
	}
	return def
}

func (s *Screen) command(cmd rune, params []int) {
	switch cmd {
	case 'H', 'f':
		s.cursorY = min(param(params, 0, 1), s.rows) - 1
		s.cursorX = min(param(params, 1, 1), s.cols) - 1
	case 'J':
		switch param(params, 0, 0) {
		case 0:
			s.clearFromCursor()
		case 2, 3:
			for i := range s.buffer {
				s.buffer[i] = blankRow(s.cols)
			}
		}
	case 'K':
		if s.cursorY < s.rows {
			for j := s.cursorX; j < s.cols; j++ {
				s.buffer[s.cursorY][j] = ' '
			}
		}
	case 'A':
		s.cursorY = max(0, s.cursorY-param(params, 0, 1))
	case 'B':
		s.cursorY = min(s.rows-1, s.cursorY+param(params, 0, 1))
	}
}

func (s *Screen) putChar(ch rune) {
	if s.cursorX >= s.cols {
		// no autowrap: the display never writes past the width
		return
	}
	s.buffer[s.cursorY][s.cursorX] = ch
	s.cursorX++
}

func (s *Screen) lineFeed() {
	s.cursorX = 0
	s.cursorY++
	if s.cursorY >= s.rows {
		copy(s.buffer, s.buffer[1:])
		s.buffer[s.rows-1] = blankRow(s.cols)
		s.cursorY = s.rows - 1
	}
}

func (s *Screen) clearFromCursor() {
	for j := s.cursorX; j < s.cols; j++ {
		s.buffer[s.cursorY][j] = ' '
	}
	for i := s.cursorY + 1; i < s.rows; i++ {
		s.buffer[i] = blankRow(s.cols)
	}
}

// Lines returns every row with trailing blanks removed
func (s *Screen) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, s.rows)
	for i, row := range s.buffer {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return lines
}

// Text renders the screen without trailing empty rows
func (s *Screen) Text() string {
	return strings.TrimRight(strings.Join(s.Lines(), "\n"), "\n")
}

// Contains checks if the screen shows text on a single row
func (s *Screen) Contains(text string) bool {
	for _, line := range s.Lines() {
		if strings.Contains(line, text) {
			return true
		}
	}
	return false
}
