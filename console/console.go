// Package console is the client's scrollback: a fixed block of text cells
// cut into rows of the current width, written by Print and by anything
// that logs through it as an io.Writer.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	DefaultTextSize = 32768
	DefaultWidth    = 78
	NotifyTimes     = 5 // lines remembered for the notify overlay

	skipNotifyPrefix = "[skipnotify]"
	colorEscape      = '^'
	colorWhite       = 7
	pageLines        = 2
)

// Cell is one character and its color index (0-7).
type Cell struct {
	Ch    byte
	Color uint8
}

var blank = Cell{Ch: ' ', Color: colorWhite}

// Line is one row of cells.
type Line []Cell

// String returns the row with trailing blanks removed.
func (l Line) String() string {
	b := make([]byte, len(l))
	for i, c := range l {
		b[i] = c.Ch
	}
	return strings.TrimRight(string(b), " ")
}

// Console is safe for concurrent use; log output may arrive from any
// goroutine.
type Console struct {
	mu sync.Mutex

	text       []Cell
	current    int // row the next print goes to
	x          int // column in the current row
	display    int // bottom row shown when scrolled back
	lineWidth  int
	totalLines int

	times [NotifyTimes]int
	clock func() int // real time in ms, stamps notify lines
}

// New returns a console of size cells at DefaultWidth. clock may be nil,
// in which case notify times are never stamped.
func New(size int, clock func() int) *Console {
	if size <= 0 {
		size = DefaultTextSize
	}
	if clock == nil {
		clock = func() int { return 0 }
	}
	c := &Console{text: make([]Cell, size), clock: clock, lineWidth: -1}
	c.CheckResize(0)
	return c
}

// CheckResize reflows the buffer for a new row width, keeping the most
// recent rows. Columns beyond a narrower width are cut. A width below 1
// resets the console to DefaultWidth and clears it.
func (c *Console) CheckResize(width int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	width = min(width, len(c.text))
	if width == c.lineWidth {
		return
	}
	if width < 1 {
		c.lineWidth = min(DefaultWidth, len(c.text))
		c.totalLines = len(c.text) / c.lineWidth
		c.fill(c.text)
		c.x = 0
	} else {
		old := make([]Cell, len(c.text))
		copy(old, c.text)
		oldWidth, oldTotal := c.lineWidth, c.totalLines

		c.lineWidth = width
		c.totalLines = len(c.text) / width
		numLines := min(oldTotal, c.totalLines)
		numChars := min(oldWidth, width)

		c.fill(c.text)
		for i := 0; i < numLines; i++ {
			src := ((c.current - i + oldTotal) % oldTotal) * oldWidth
			dst := (c.totalLines - 1 - i) * width
			copy(c.text[dst:dst+numChars], old[src:src+numChars])
		}
		c.clearNotify()
		if c.x >= width {
			c.x = width - 1
		}
	}

	c.current = c.totalLines - 1
	c.display = c.current
}

func (c *Console) fill(cells []Cell) {
	for i := range cells {
		cells[i] = blank
	}
}

func (c *Console) row(n int) Line {
	start := (n % c.totalLines) * c.lineWidth
	return Line(c.text[start : start+c.lineWidth])
}

func (c *Console) linefeed(skipNotify bool) {
	if skipNotify {
		c.times[c.current%NotifyTimes] = 0
	} else {
		c.times[c.current%NotifyTimes] = c.clock()
	}
	c.x = 0
	if c.display == c.current {
		c.display++
	}
	c.current++
	c.fill(c.row(c.current))
}

// Print appends txt. ^N selects color N for the following characters,
// words that would cross the right edge start a new row, and a leading
// [skipnotify] keeps the text out of the notify overlay.
func (c *Console) Print(txt string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	skipNotify := false
	if strings.HasPrefix(txt, skipNotifyPrefix) {
		skipNotify = true
		txt = txt[len(skipNotifyPrefix):]
	}

	color := uint8(colorWhite)
	wordStart := true
	for i := 0; i < len(txt); {
		ch := txt[i]
		if isColorString(txt[i:]) {
			color = (txt[i+1] - '0') & 7
			i += 2
			continue
		}

		// a word that fits on a row is not split across two
		if wordStart && ch > ' ' {
			l := 0
			for l < c.lineWidth && i+l < len(txt) && txt[i+l] > ' ' {
				l++
			}
			if l != c.lineWidth && c.x+l > c.lineWidth {
				c.linefeed(skipNotify)
			}
		}
		wordStart = ch <= ' '

		i++
		switch ch {
		case '\n':
			c.linefeed(skipNotify)
		case '\r':
			c.x = 0
		default:
			c.row(c.current)[c.x] = Cell{Ch: ch, Color: color}
			c.x++
			if c.x >= c.lineWidth {
				c.linefeed(skipNotify)
			}
		}
	}

	if skipNotify {
		prev := c.current%NotifyTimes - 1
		if prev < 0 {
			prev = NotifyTimes - 1
		}
		c.times[prev] = 0
	} else {
		c.times[c.current%NotifyTimes] = c.clock()
	}
}

// Printf formats and prints.
func (c *Console) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

// Write makes the console an io.Writer for log output.
func (c *Console) Write(p []byte) (int, error) {
	c.Print(string(p))
	return len(p), nil
}

func isColorString(s string) bool {
	if len(s) < 2 || s[0] != colorEscape || s[1] == colorEscape {
		return false
	}
	ch := s[1]
	return ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

// ClearNotify hides every line from the notify overlay.
func (c *Console) ClearNotify() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearNotify()
}

func (c *Console) clearNotify() {
	c.times = [NotifyTimes]int{}
}

// NotifyLines returns the recent lines printed within notifyTime ms of
// now, oldest first.
func (c *Console) NotifyLines(now, notifyTime int) []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Line
	for i := c.current - NotifyTimes + 1; i <= c.current; i++ {
		if i < 0 {
			continue
		}
		t := c.times[i%NotifyTimes]
		if t == 0 || now-t > notifyTime {
			continue
		}
		out = append(out, append(Line(nil), c.row(i)...))
	}
	return out
}

// Lines returns up to rows rows ending at the display row, oldest first,
// and whether the view is scrolled back from the newest text.
func (c *Console) Lines(rows int) ([]Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	first := max(c.display-rows+1, c.current-c.totalLines+1)
	var out []Line
	for i := first; i <= c.display; i++ {
		out = append(out, append(Line(nil), c.row(i)...))
	}
	return out, c.display != c.current
}

func (c *Console) PageUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display -= pageLines
	c.clampTop()
}

func (c *Console) PageDown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display = min(c.display+pageLines, c.current)
}

func (c *Console) Top() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display = c.totalLines
	c.clampTop()
}

func (c *Console) Bottom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.display = c.current
}

func (c *Console) clampTop() {
	if c.current-c.display >= c.totalLines {
		c.display = c.current - c.totalLines + 1
	}
}

// Clear blanks the whole buffer and scrolls to the bottom.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fill(c.text)
	c.display = c.current
}

// Dump writes the scrollback to w, skipping leading empty rows and
// trimming trailing blanks.
func (c *Console) Dump(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	l := c.current - c.totalLines + 1
	for ; l <= c.current; l++ {
		if c.row(l).String() != "" {
			break
		}
	}

	bw := bufio.NewWriter(w)
	for ; l <= c.current; l++ {
		if _, err := bw.WriteString(c.row(l).String() + "\n"); err != nil {
			return fmt.Errorf("dump console: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("dump console: %w", err)
	}
	return nil
}

// Width is the current row width in characters.
func (c *Console) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lineWidth
}
