package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"redline/internal/markup"
	"redline/internal/store"
)

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if config.Debug {
		f, err := tea.LogToFile(debugLogFile, "redline")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		markup.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var st *store.Store
	if config.Database != "" {
		st, err = store.Open(config.Database)
		if err != nil {
			log.Fatal(err)
		}
		defer st.Close()
	}

	var initial string
	if len(os.Args) > 1 {
		initial = os.Args[1]
	}
	m := initialModel(config, st, initial)
	defer m.surface.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config, st *store.Store, initial string) model {
	m := model{
		mode: ModeStartup,
		surface: markup.New(
			markup.WithHistoryLimit(config.HistoryLimit),
			markup.WithColor(config.PenColor()),
		),
		loader: markup.NewLoader(config.LoadTimeout),
		config: config,
		store:  st,
		savers: newSavers(config, st),
	}
	if ref := markup.ParseRef(initial); !ref.IsZero() {
		m.pendingRef = ref
		m.mode = ModeNormal
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.pendingRef.IsZero() {
		return nil
	}
	return m.open(m.pendingRef)
}

// open starts loading ref. Decoding runs as a command; its result comes
// back as an imageLoadedMsg carrying the load ticket.
func (m *model) open(ref markup.Ref) tea.Cmd {
	ticket := m.surface.Begin(ref)
	m.mode = ModeNormal
	m.view = viewRect{}
	m.errorMessage = ""
	m.successMessage = ""
	return loadCmd(m.loader, ticket)
}

func loadCmd(loader *markup.Loader, ticket markup.Ticket) tea.Cmd {
	return func() tea.Msg {
		img, err := loader.Load(context.Background(), ticket.Ref())
		return imageLoadedMsg{ticket: ticket, img: img, err: err}
	}
}

// requestOpen asks before discarding unsaved strokes.
func (m *model) requestOpen(ref markup.Ref) tea.Cmd {
	if ref.IsZero() {
		m.errorMessage = "No image location given"
		return nil
	}
	if m.config.Confirmations && m.surface.CanUndo() {
		m.pendingRef = ref
		m.confirmAction = ConfirmReplaceImage
		m.mode = ModeConfirm
		return nil
	}
	return m.open(ref)
}

// restMode is the mode to return to after a prompt is dismissed.
func (m *model) restMode() Mode {
	if m.surface.State() == markup.Unloaded && m.surface.Source().IsZero() {
		return ModeStartup
	}
	return ModeNormal
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case imageLoadedMsg:
		if !m.surface.Complete(msg.ticket, msg.img, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			log.Printf("load %s: %v", msg.ticket.Ref(), msg.err)
			m.errorMessage = fmt.Sprintf("Could not load %s: %v", msg.ticket.Ref().Name(), msg.err)
			return m, nil
		}
		b := m.surface.Bounds()
		m.successMessage = fmt.Sprintf("Loaded %s (%dx%d)", msg.ticket.Ref().Name(), b.Dx(), b.Dy())
		m.layout()
		return m, nil

	case savedListMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			m.mode = m.restMode()
			return m, nil
		}
		m.saved = msg.items
		m.selectedSaved = 0
		m.mode = ModeBrowse
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m model) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.help {
		switch key {
		case "j", "down":
			if m.helpScroll < max(len(helpLines)-(m.height-1), 0) {
				m.helpScroll++
			}
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		default:
			m.help = false
			m.helpScroll = 0
		}
		return m, nil
	}

	switch m.mode {
	case ModeFileInput:
		switch key {
		case "enter":
			ref := markup.ParseRef(m.filename)
			m.mode = m.restMode()
			return m, m.requestOpen(ref)
		case "esc":
			m.mode = m.restMode()
			m.errorMessage = ""
		case "backspace":
			if len(m.filename) > 0 {
				runes := []rune(m.filename)
				m.filename = string(runes[:len(runes)-1])
			}
		case "ctrl+u":
			m.filename = ""
		default:
			if len(key) == 1 || key == " " {
				m.filename += key
			} else if strings.HasPrefix(key, "[") && strings.HasSuffix(key, "]") {
				m.filename += strings.Trim(key, "[]")
			}
		}
		return m, nil

	case ModeConfirm:
		switch key {
		case "y", "Y":
			m.mode = m.restMode()
			switch m.confirmAction {
			case ConfirmClear:
				m.clear()
			case ConfirmQuit:
				return m, tea.Quit
			case ConfirmReplaceImage:
				ref := m.pendingRef
				m.pendingRef = markup.Ref{}
				return m, m.open(ref)
			}
		case "n", "N", "esc":
			m.mode = m.restMode()
			m.pendingRef = markup.Ref{}
		}
		return m, nil

	case ModeBrowse:
		switch key {
		case "j", "down":
			if m.selectedSaved < len(m.saved)-1 {
				m.selectedSaved++
			}
		case "k", "up":
			if m.selectedSaved > 0 {
				m.selectedSaved--
			}
		case "enter":
			if m.selectedSaved >= 0 && m.selectedSaved < len(m.saved) {
				return m, m.reopenSaved(m.saved[m.selectedSaved].ID)
			}
		case "esc", "q", "b":
			m.mode = m.restMode()
		}
		return m, nil
	}

	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "?":
		m.help = true
		return m, nil
	case "q":
		if m.config.Confirmations && m.surface.CanUndo() {
			m.confirmAction = ConfirmQuit
			m.mode = ModeConfirm
			return m, nil
		}
		return m, tea.Quit
	case "o":
		m.filename = ""
		m.mode = ModeFileInput
		return m, nil
	case "v":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
			return m, nil
		}
		return m, m.requestOpen(refFromText(text))
	case "m":
		return m, m.requestOpen(markup.URLRef(sampleImageURL))
	case "b":
		if m.store == nil {
			m.errorMessage = "No database configured"
			return m, nil
		}
		return m, listSavedCmd(m.store)
	}

	if m.mode != ModeNormal {
		return m, nil
	}

	if m.handleToolKey(key) {
		return m, nil
	}
	switch key {
	case "u", "ctrl+z":
		m.undo()
	case "x":
		if m.surface.State() != markup.Ready {
			return m, nil
		}
		if m.config.Confirmations {
			m.confirmAction = ConfirmClear
			m.mode = ModeConfirm
			return m, nil
		}
		m.clear()
	case "s":
		m.save(SavePNG)
	case "S":
		m.save(SavePDF)
	case "d":
		m.save(SaveDatabase)
	case "esc":
		m.surface.PointerUp()
	}
	return m, nil
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	width := max(m.width, 1)
	rows := max(m.height-toolbarRows-statusRows, 1)

	var body []string
	switch {
	case m.mode == ModeBrowse:
		body = m.browseLines(width, rows)
	case m.surface.State() == markup.Ready:
		body = renderRaster(m.surface.Raster(), m.view, width, rows, toolbarRows)
	default:
		body = strings.Split(m.placeholder(width, rows), "\n")
	}

	var result strings.Builder
	result.WriteString(m.toolbar(width))
	for _, line := range body {
		result.WriteString("\n")
		result.WriteString(line)
	}
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		status := fmt.Sprintf("Mode: OPEN | Image path or URL: %s█ | Enter=open, Esc=cancel", m.filename)
		if m.errorMessage != "" {
			status = fmt.Sprintf("Mode: OPEN | ERROR: %s | %s█", m.errorMessage, m.filename)
		}
		return status
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmClear:
			message = "Clear all markup? (y/n)"
		case ConfirmQuit:
			message = "Quit with unsaved markup? (y/n)"
		case ConfirmReplaceImage:
			message = fmt.Sprintf("Open %s and discard current markup? (y/n)", m.pendingRef.Name())
		}
		return fmt.Sprintf("Mode: CONFIRM | %s", message)
	case ModeBrowse:
		return "Mode: BROWSE | j/k=select, Enter=open, Esc=back"
	}

	status := fmt.Sprintf("Mode: %s", m.modeString())
	if m.surface.State() == markup.Ready {
		b := m.surface.Bounds()
		status += fmt.Sprintf(" | %s %dx%d", m.surface.Source().Name(), b.Dx(), b.Dy())
	}
	if m.successMessage != "" {
		status += fmt.Sprintf(" | %s", m.successMessage)
	}
	if m.errorMessage != "" {
		status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	switch m.mode {
	case ModeStartup:
		return "START"
	case ModeNormal:
		switch m.surface.State() {
		case markup.Loading:
			return "LOADING"
		case markup.Unloaded:
			return "EMPTY"
		}
		if m.surface.Stroking() {
			return "DRAW"
		}
		return "MARKUP"
	case ModeFileInput:
		return "OPEN"
	case ModeConfirm:
		return "CONFIRM"
	case ModeBrowse:
		return "BROWSE"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"Redline Help",
	"============",
	"",
	"Drawing:",
	"--------",
	"  mouse drag       Draw with the pen over the image",
	"  p / 1            Pen tool",
	"  r / 2            Rectangle tool (not drawable yet)",
	"  t / 3            Text tool (not drawable yet)",
	"  c / Tab          Next color (red, blue, green, black)",
	"  C / Shift+Tab    Previous color",
	"  u / Ctrl+Z       Undo last stroke or clear",
	"  x                Clear all markup back to the original image",
	"",
	"Images:",
	"-------",
	"  o                Open an image by path or URL",
	"  v                Open the path or URL on the clipboard",
	"  m                Open the sample blueprint",
	"  b                Browse markups saved to the database",
	"",
	"Saving:",
	"-------",
	"  s                Save as PNG",
	"  S                Save as PDF",
	"  d                Save to the database",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visible := max(m.height-1, 1)
	start := min(m.helpScroll, max(len(helpLines)-visible, 0))
	end := min(start+visible, len(helpLines))
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(helpLines[start:end], "\n"))
}
