package ui

import (
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"crateseek/internal/clipboard"
	"crateseek/internal/domain"
)

// cursorBlinkInterval controls the query editor's cursor animation.
const cursorBlinkInterval = 500 * time.Millisecond

// Searcher issues asynchronous registry searches. Results come back to the
// model as EventMsg-wrapped SearchCompletedEvents, one per issued search.
type Searcher interface {
	SearchAsync(query string, page int, sort domain.SortOrder)
}

// appMode identifies the active UI sub-state. Exactly one is active at a
// time and it governs how key events are interpreted.
type appMode int

const (
	modeNormal appMode = iota
	modeInput
	modeSorting
)

// inputState is the query editor: the in-progress buffer and a tick counter
// whose parity drives cursor visibility.
type inputState struct {
	buffer string
	ticks  uint64
}

// sortingState is the sort picker: an index into the fixed option set.
type sortingState struct {
	selection int
	options   []domain.SortOrder
}

// Model owns all mutable session state. It is the single consumer of the
// merged message stream; nothing else mutates it.
type Model struct {
	searcher Searcher
	clip     clipboard.Writer

	// Search parameters
	query string
	page  int
	sort  domain.SortOrder

	// Results and selection. crates stays nil until the first result event;
	// selection is -1 exactly when crates is nil or empty.
	crates    []domain.Crate
	selection int

	// Mode state
	mode     appMode
	input    inputState
	sorting  sortingState
	blinkSeq int // current editing session; stale ticks are dropped

	// Transient UI state
	styles    *Styles
	searching int // in-flight search count, drives the spinner
	spinner   spinner.Model
	lastErr   error
	statusMsg string
	width     int
	height    int
	quitting  bool
}

// NewModel creates the initial session state: empty query, page 1, default
// sort, and the query editor open so the user can type immediately.
func NewModel(searcher Searcher, clip clipboard.Writer) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		searcher:  searcher,
		clip:      clip,
		page:      1,
		sort:      domain.SortRelevance,
		selection: -1,
		mode:      modeInput,
		styles:    NewStyles(),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return blinkTick(m.blinkSeq)
}

func blinkTick(seq int) tea.Cmd {
	return tea.Tick(cursorBlinkInterval, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// Update implements tea.Model. It is the application's transition table:
// one message in, a new state and an optional command out.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.mode != modeInput || msg.seq != m.blinkSeq {
			return m, nil
		}
		m.input.ticks++
		return m, blinkTick(msg.seq)

	case spinner.TickMsg:
		if m.searching == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		return m.handleEvent(msg)
	}

	return m, nil
}

// handleKey applies the per-mode key bindings.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C quits from any mode.
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeNormal:
		return m.handleNormalKey(msg)
	case modeInput:
		return m.handleInputKey(msg)
	case modeSorting:
		return m.handleSortingKey(msg)
	}
	return m, nil
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f", "F":
		m.enterInputMode()
		return m, blinkTick(m.blinkSeq)

	case "q", "Q":
		m.quitting = true
		return m, tea.Quit

	case "n", "N":
		if len(m.crates) > 0 {
			m.page++
			return m, m.issueSearch()
		}

	case "p", "P":
		if m.page > 1 {
			m.page--
			return m, m.issueSearch()
		}

	case "j", "J":
		if m.selection >= 0 && m.selection < len(m.crates)-1 {
			m.selection++
		}

	case "k", "K":
		if m.selection > 0 {
			m.selection--
		}

	case "s", "S":
		m.enterSortingMode()

	case "c", "C":
		m.copySelection()
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Cancel; the typed buffer is discarded.
		m.mode = modeNormal
		return m, nil

	case tea.KeyEnter:
		m.query = m.input.buffer
		m.page = 1
		m.mode = modeNormal
		return m, m.issueSearch()

	case tea.KeyBackspace:
		if m.input.buffer != "" {
			_, size := utf8.DecodeLastRuneInString(m.input.buffer)
			m.input.buffer = m.input.buffer[:len(m.input.buffer)-size]
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		m.input.buffer += msg.String()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleSortingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		// Cancel; any in-progress change is discarded.
		m.mode = modeNormal
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.sort = m.sorting.options[m.sorting.selection]
		m.page = 1
		m.mode = modeNormal
		return m, m.issueSearch()

	case msg.String() == "j" || msg.String() == "J":
		if m.sorting.selection < len(m.sorting.options)-1 {
			m.sorting.selection++
		}

	case msg.String() == "k" || msg.String() == "K":
		if m.sorting.selection > 0 {
			m.sorting.selection--
		}
	}
	return m, nil
}

// handleEvent applies domain events. A search completion is honored in every
// mode: a search may finish while the user is in the query editor or the
// sort picker.
func (m *Model) handleEvent(msg EventMsg) (tea.Model, tea.Cmd) {
	switch event := msg.Event.(type) {
	case domain.SearchCompletedEvent:
		if m.searching > 0 {
			m.searching--
		}
		if event.Err != nil {
			log.Printf("search %q (page %d) failed: %v", event.Query, event.Page, event.Err)
			m.lastErr = event.Err
			return m, nil
		}
		m.lastErr = nil
		m.crates = event.Crates
		if m.crates == nil {
			m.crates = []domain.Crate{}
		}
		if len(m.crates) > 0 {
			m.selection = 0
		} else {
			m.selection = -1
		}
		return m, nil

	case domain.ErrorEvent:
		log.Printf("%s: %v", event.Message, event.Err)
		m.lastErr = event.Err
		return m, nil
	}
	return m, nil
}

func (m *Model) enterInputMode() {
	m.mode = modeInput
	m.input = inputState{}
	m.blinkSeq++
}

func (m *Model) enterSortingMode() {
	options := domain.SortOrders()
	selection := 0
	for i, opt := range options {
		if opt == m.sort {
			selection = i
			break
		}
	}
	m.mode = modeSorting
	m.sorting = sortingState{selection: selection, options: options}
}

// issueSearch starts one asynchronous search carrying the session's query,
// page, and sort order as of this instant.
func (m *Model) issueSearch() tea.Cmd {
	m.searching++
	m.statusMsg = ""
	m.searcher.SearchAsync(m.query, m.page, m.sort)
	return m.spinner.Tick
}

// copySelection copies the highlighted crate's dependency line. It is a
// no-op when the clipboard is disabled or nothing is selected; failures are
// surfaced in the status line and never touch session state.
func (m *Model) copySelection() {
	if m.clip == nil {
		return
	}
	crate, ok := m.selectedCrate()
	if !ok {
		return
	}
	if err := m.clip.Set(crate.DependencyLine()); err != nil {
		log.Printf("clipboard copy failed: %v", err)
		m.lastErr = err
		return
	}
	m.statusMsg = fmt.Sprintf("copied %s", crate.DependencyLine())
}

func (m *Model) selectedCrate() (domain.Crate, bool) {
	if m.selection < 0 || m.selection >= len(m.crates) {
		return domain.Crate{}, false
	}
	return m.crates[m.selection], true
}
