package cli

import (
	"bufio"
	"io"
	"os"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

// maxInputLength caps what the text input accepts; longer answers are
// rejected by the session anyway.
const maxInputLength = 500

// lineReader reads one line of user input after showing prompt. ok is
// false when the input ends or the user cancels.
type lineReader interface {
	ReadLine(prompt string) (line string, ok bool)
}

// lineReader picks a bubbles text input on an interactive terminal and a
// plain scanner for pipes, tests and --plain.
func (o *options) lineReader(cmd *cobra.Command, p printer) lineReader {
	if f, ok := cmd.InOrStdin().(*os.File); ok && !o.plain && term.IsTerminal(f.Fd()) {
		return teaReader{in: f, out: cmd.OutOrStdout()}
	}
	return scanReader{p: p, s: bufio.NewScanner(cmd.InOrStdin())}
}

type scanReader struct {
	p printer
	s *bufio.Scanner
}

func (r scanReader) ReadLine(prompt string) (string, bool) {
	r.p.prompt(prompt)
	if !r.s.Scan() {
		r.p.line("")
		return "", false
	}
	return r.s.Text(), true
}

// teaReader runs a short inline Bubble Tea program per line.
type teaReader struct {
	in  io.Reader
	out io.Writer
}

func (r teaReader) ReadLine(prompt string) (string, bool) {
	p := tea.NewProgram(newPromptModel(prompt), tea.WithInput(r.in), tea.WithOutput(r.out))
	final, err := p.Run()
	if err != nil {
		return "", false
	}
	m, ok := final.(promptModel)
	if !ok {
		return "", false
	}
	return m.value, m.submitted
}

// promptModel is a single-line answer input. Enter submits; Esc, Ctrl+C
// and Ctrl+D cancel.
type promptModel struct {
	input     textinput.Model
	value     string
	submitted bool
}

func newPromptModel(prompt string) promptModel {
	ti := textinput.New()
	ti.Prompt = labelStyle.Render(prompt)
	ti.CharLimit = maxInputLength
	ti.Focus()
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return m.input.Focus()
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			m.value = m.input.Value()
			m.submitted = true
			return m, tea.Quit
		case "esc", "ctrl+c", "ctrl+d":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() tea.View {
	return tea.NewView(m.input.View())
}
