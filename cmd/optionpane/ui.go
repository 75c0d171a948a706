package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/optionpane/internal/catalog"
	"github.com/dshills/optionpane/internal/editor"
	"github.com/dshills/optionpane/internal/store"
)

// ui renders the editor on a tcell screen. It is presentation only: every
// state transition goes through the editor core.
type ui struct {
	screen tcell.Screen
	ed     *editor.Editor

	// Form view state.
	cursor      int
	filterFocus bool

	// Text view state.
	textBuf    []rune
	textCursor int
}

func newUI(ed *editor.Editor) (*ui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &ui{screen: screen, ed: ed}, nil
}

// Run drives the event loop until the user closes the editor, then returns
// the committed values.
func (u *ui) Run() (store.Values, error) {
	if err := u.screen.Init(); err != nil {
		return nil, err
	}
	defer u.screen.Fini()
	u.screen.SetStyle(tcell.StyleDefault)

	for {
		u.draw()

		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if done := u.handleKey(ev); done {
				return u.ed.Close(), nil
			}
		}
	}
}

// handleKey processes one key event. Returns true when the editor should
// close and commit.
func (u *ui) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		if u.filterFocus {
			u.filterFocus = false
			return false
		}
		return true
	case tcell.KeyTab:
		u.switchMode()
		return false
	}

	if u.ed.Mode() == editor.ModeText {
		u.handleTextKey(ev)
		return false
	}
	u.handleFormKey(ev)
	return false
}

func (u *ui) switchMode() {
	if u.ed.Mode() == editor.ModeText {
		// Fold the text buffer into the view before switching back.
		u.ed.SetRaw(string(u.textBuf))
	}
	u.filterFocus = false
	if u.ed.SwitchMode() == editor.ModeText {
		u.textBuf = []rune(u.ed.RawText())
		u.textCursor = len(u.textBuf)
	}
}

func (u *ui) handleFormKey(ev *tcell.EventKey) {
	if u.filterFocus {
		switch ev.Key() {
		case tcell.KeyEnter:
			u.filterFocus = false
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			q := u.ed.Filter()
			if q != "" {
				u.ed.SetFilter(q[:len(q)-1])
			}
			u.cursor = 0
		case tcell.KeyRune:
			u.ed.SetFilter(u.ed.Filter() + string(ev.Rune()))
			u.cursor = 0
		}
		return
	}

	fields := visibleFields(u.ed)
	switch ev.Key() {
	case tcell.KeyUp:
		if u.cursor > 0 {
			u.cursor--
		}
	case tcell.KeyDown:
		if u.cursor < len(fields)-1 {
			u.cursor++
		}
	case tcell.KeyEnter:
		u.toggleCursor(fields)
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			u.toggleCursor(fields)
		case '/':
			u.filterFocus = true
		}
	}
}

func (u *ui) toggleCursor(fields []catalog.Field) {
	if u.cursor < 0 || u.cursor >= len(fields) {
		return
	}
	key := fields[u.cursor].Key
	checked := u.ed.FieldState(key) != catalog.Unchecked
	u.ed.Toggle(key, !checked)
}

func (u *ui) handleTextKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyLeft:
		if u.textCursor > 0 {
			u.textCursor--
		}
	case tcell.KeyRight:
		if u.textCursor < len(u.textBuf) {
			u.textCursor++
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if u.textCursor > 0 {
			u.textBuf = append(u.textBuf[:u.textCursor-1], u.textBuf[u.textCursor:]...)
			u.textCursor--
			u.ed.SetRaw(string(u.textBuf))
		}
	case tcell.KeyEnter:
		u.insertRune('\n')
	case tcell.KeyRune:
		u.insertRune(ev.Rune())
	}
}

func (u *ui) insertRune(r rune) {
	u.textBuf = append(u.textBuf[:u.textCursor], append([]rune{r}, u.textBuf[u.textCursor:]...)...)
	u.textCursor++
	u.ed.SetRaw(string(u.textBuf))
}

func (u *ui) draw() {
	u.screen.Clear()
	width, height := u.screen.Size()

	header := " optionpane — Tab: switch view   Esc: save & close "
	if u.ed.Mode() == editor.ModeForm {
		header += "  /: filter"
	}
	drawText(u.screen, 0, 0, width, tcell.StyleDefault.Reverse(true), header)

	if u.ed.Mode() == editor.ModeText {
		u.drawTextView(width, height)
	} else {
		u.drawForm(width, height)
	}
	u.screen.Show()
}

func (u *ui) drawForm(width, height int) {
	filterStyle := tcell.StyleDefault
	if u.filterFocus {
		filterStyle = filterStyle.Bold(true)
	}
	drawText(u.screen, 0, 1, width, filterStyle, "Filter: "+u.ed.Filter())

	y := 3
	idx := 0
	for _, g := range u.ed.VisibleGroups() {
		if y >= height {
			break
		}
		drawText(u.screen, 0, y, width, tcell.StyleDefault.Bold(true), g.Heading)
		y++
		for _, f := range g.Fields {
			if y >= height {
				break
			}
			style := tcell.StyleDefault
			if idx == u.cursor && !u.filterFocus {
				style = style.Reverse(true)
			}
			drawText(u.screen, 2, y, width-2, style, checkbox(u.ed.FieldState(f.Key))+" "+f.DisplayName())
			y++
			idx++
		}
		y++
	}
}

func (u *ui) drawTextView(width, height int) {
	note := "editing raw JSON; comments and unquoted keys are tolerated"
	if err := u.ed.LastAbsorbError(); err != nil {
		note = "last parse failed: " + err.Error()
	}
	drawText(u.screen, 0, 1, width, tcell.StyleDefault.Dim(true), note)

	lines := strings.Split(string(u.textBuf), "\n")
	for i, line := range lines {
		y := i + 3
		if y >= height {
			break
		}
		drawText(u.screen, 0, y, width, tcell.StyleDefault, line)
	}

	// Cursor position within the buffer.
	cx, cy := 0, 3
	for i := 0; i < u.textCursor && i < len(u.textBuf); i++ {
		if u.textBuf[i] == '\n' {
			cy++
			cx = 0
		} else {
			cx++
		}
	}
	u.screen.ShowCursor(cx, cy)
}

func checkbox(s catalog.State) string {
	switch s {
	case catalog.Checked:
		return "[x]"
	case catalog.Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

func visibleFields(ed *editor.Editor) []catalog.Field {
	var fields []catalog.Field
	for _, g := range ed.VisibleGroups() {
		fields = append(fields, g.Fields...)
	}
	return fields
}

func drawText(s tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
}
