package console

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"
)

func newTestConsole(width int) (*Console, *int) {
	now := 1000
	c := New(width*10, func() int { return now })
	c.CheckResize(width)
	return c, &now
}

func lastLines(c *Console, n int) []string {
	lines, _ := c.Lines(n)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

func TestPrintLines(t *testing.T) {
	c, _ := newTestConsole(20)
	c.Print("hello\nworld\n")
	got := lastLines(c, 3)
	want := []string{"hello", "world", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintWordWrap(t *testing.T) {
	c, _ := newTestConsole(10)
	c.Print("aaaa bbbbbb\n")
	got := lastLines(c, 3)
	if got[0] != "aaaa" || got[1] != "bbbbbb" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintLongWordBreaks(t *testing.T) {
	c, _ := newTestConsole(4)
	c.Print("abcdefgh")
	got := lastLines(c, 3)
	if got[0] != "abcd" || got[1] != "efgh" {
		t.Fatalf("got %q", got)
	}
}

func TestPrintColors(t *testing.T) {
	c, _ := newTestConsole(20)
	c.Print("^1red^7 white ^^\n")
	lines, _ := c.Lines(2)
	l := lines[0]
	if l.String() != "red white ^^" {
		t.Fatalf("got %q", l.String())
	}
	if l[0].Color != 1 || l[4].Color != colorWhite {
		t.Fatalf("colors %d %d", l[0].Color, l[4].Color)
	}
}

func TestCarriageReturn(t *testing.T) {
	c, _ := newTestConsole(20)
	c.Print("12345\rab\n")
	if got := lastLines(c, 2)[0]; got != "ab345" {
		t.Fatalf("got %q", got)
	}
}

func TestNotifyLines(t *testing.T) {
	c, now := newTestConsole(20)
	c.Print("one\n")
	*now = 3000
	c.Print("two\n")
	c.Print("[skipnotify]quiet\n")

	got := c.NotifyLines(4000, 2500)
	if len(got) != 1 || got[0].String() != "two" {
		t.Fatalf("got %v", got)
	}

	c.ClearNotify()
	if got := c.NotifyLines(3000, 6000); len(got) != 0 {
		t.Fatalf("lines after clear %v", got)
	}
}

func TestReflowKeepsNewestLines(t *testing.T) {
	c, _ := newTestConsole(20) // 10 rows
	for i := 0; i < 15; i++ {
		c.Printf("line %d\n", i)
	}

	c.CheckResize(40) // 5 rows
	got := lastLines(c, 5)
	want := []string{"line 11", "line 12", "line 13", "line 14", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q, want %q", got, want)
	}

	c.CheckResize(3)
	if got := lastLines(c, 2)[0]; got != "lin" {
		t.Fatalf("narrowed row %q", got)
	}
}

func TestScrolling(t *testing.T) {
	c, _ := newTestConsole(20)
	for i := 0; i < 30; i++ {
		c.Printf("%d\n", i)
	}

	c.PageUp()
	if _, back := c.Lines(1); !back {
		t.Fatalf("page up did not scroll back")
	}
	got := lastLines(c, 1)[0]
	if got != "28" {
		t.Fatalf("after page up got %q", got)
	}

	c.Top()
	if got := lastLines(c, 1)[0]; got != "21" {
		t.Fatalf("top shows %q", got)
	}

	for i := 0; i < 20; i++ {
		c.PageDown()
	}
	if _, back := c.Lines(1); back {
		t.Fatalf("still scrolled back")
	}

	c.PageUp()
	c.Print("new\n")
	if _, back := c.Lines(1); !back {
		t.Fatalf("printing moved a scrolled back view")
	}
	c.Bottom()
	if got := lastLines(c, 2)[0]; got != "new" {
		t.Fatalf("bottom shows %q", got)
	}
}

func TestDump(t *testing.T) {
	c, _ := newTestConsole(20)
	c.Print("first   \nsecond\n")
	var buf bytes.Buffer
	if err := c.Dump(&buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "first\nsecond\n\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	c.Clear()
	buf.Reset()
	c.Dump(&buf)
	if buf.Len() != 0 {
		t.Fatalf("dump after clear %q", buf.String())
	}
}

func TestLogOutput(t *testing.T) {
	c, _ := newTestConsole(40)
	l := log.New(c, "", 0)
	l.Printf("[net] connected: server=%d", 3)
	if got := lastLines(c, 2)[0]; got != "[net] connected: server=3" {
		t.Fatalf("got %q", got)
	}
}

func TestSlide(t *testing.T) {
	s := NewSlide(2)
	s.SetFrac(0.01)
	if !s.Toggle() {
		t.Fatalf("toggle did not open")
	}
	if got := s.Run(0.025); got <= 0 || got >= minUserFrac {
		t.Fatalf("mid slide %v", got)
	}
	if got := s.Run(1); math.Abs(got-minUserFrac) > 1e-6 {
		t.Fatalf("open frac %v", got)
	}

	s.SetFrac(5)
	if got := s.Run(10); math.Abs(got-1) > 1e-6 {
		t.Fatalf("clamped frac %v", got)
	}

	s.Toggle()
	if got := s.Run(10); got != 0 {
		t.Fatalf("closed frac %v", got)
	}
}
