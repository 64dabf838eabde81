package main

import (
	"bytes"

	"github.com/gdamore/tcell/v2"
)

const (
	viewHeader   = " showevs: press q or Ctrl-C to quit "
	viewMaxLines = 512
)

// eventView shows the most recent lines written to it below a header.
type eventView struct {
	screen tcell.Screen
	lines  []string
	buf    []byte
}

func newEventView(screen tcell.Screen) *eventView {
	return &eventView{screen: screen}
}

func (v *eventView) Write(p []byte) (int, error) {
	v.buf = append(v.buf, p...)
	for {
		idx := bytes.IndexByte(v.buf, '\n')
		if idx < 0 {
			break
		}
		v.lines = append(v.lines, string(v.buf[:idx]))
		v.buf = v.buf[idx+1:]
	}
	if len(v.lines) > viewMaxLines {
		v.lines = v.lines[len(v.lines)-viewMaxLines:]
	}
	v.draw()
	return len(p), nil
}

func (v *eventView) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	v.put(0, width, viewHeader, tcell.StyleDefault.Reverse(true))

	visible := v.lines
	if rows := height - 1; rows >= 0 && len(visible) > rows {
		visible = visible[len(visible)-rows:]
	}
	for i, line := range visible {
		v.put(i+1, width, line, tcell.StyleDefault)
	}
	v.screen.Show()
}

func (v *eventView) put(y, width int, s string, style tcell.Style) {
	x := 0
	for _, r := range s {
		if x >= width {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
