package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crateseek/internal/domain"
)

func TestViewNormalShowsResultsAndPage(t *testing.T) {
	m := newNormalModel(t, &fakeSearcher{}, testCrates(3))
	m.page = 2

	out := m.View()

	assert.Contains(t, out, "crate-0")
	assert.Contains(t, out, "crate-2")
	assert.Contains(t, out, "Page 2")
}

func TestViewNormalBeforeFirstSearch(t *testing.T) {
	m := newNormalModel(t, &fakeSearcher{}, nil)

	out := m.View()

	assert.Contains(t, out, "No results yet")
	assert.Contains(t, out, "Page 1")
}

func TestViewNormalEmptyResultSet(t *testing.T) {
	m := newNormalModel(t, &fakeSearcher{}, []domain.Crate{})
	m.query = "zzzz"

	assert.Contains(t, m.View(), `No crates matched "zzzz"`)
}

func TestViewInputOverlayShowsBufferAndBlinks(t *testing.T) {
	m := NewModel(&fakeSearcher{}, nil)
	for _, r := range "tokio" {
		m.Update(keyRunes(string(r)))
	}

	shown := m.View()
	assert.Contains(t, shown, "tokio")
	assert.Contains(t, shown, "Enter your search term")

	// Odd tick parity hides the cursor.
	m.Update(tickMsg{seq: m.blinkSeq})
	hidden := m.View()
	assert.Contains(t, hidden, "tokio")
	assert.NotEqual(t, shown, hidden)
}

func TestViewSortingOverlayListsAllOptions(t *testing.T) {
	m := newNormalModel(t, &fakeSearcher{}, nil)
	m.Update(keyRunes("s"))

	out := m.View()

	for _, opt := range domain.SortOrders() {
		assert.Contains(t, out, opt.Label())
	}
	assert.Contains(t, out, "> Relevance")
}

func TestViewAfterQuitIsEmpty(t *testing.T) {
	m := newNormalModel(t, &fakeSearcher{}, nil)
	m.Update(keyRunes("q"))

	assert.Empty(t, m.View())
}

func TestViewShowsSearchError(t *testing.T) {
	m := newNormalModel(t, &fakeSearcher{}, nil)
	m.Update(EventMsg{Event: domain.SearchCompletedEvent{Err: assertErr}})

	assert.Contains(t, m.View(), "search failed")
}

var assertErr = errTest{}

type errTest struct{}

func (errTest) Error() string { return "connection refused" }

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "longer th…", truncate("longer than ten", 10))
}

func TestWrapLineCount(t *testing.T) {
	out := wrap("an event driven non blocking io platform for writing async apps", 16, 4)
	lines := 1
	for _, r := range out {
		if r == '\n' {
			lines++
		}
	}
	require.Equal(t, 4, lines)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "999", formatCount(999))
	assert.Equal(t, "1.5k", formatCount(1500))
	assert.Equal(t, "2.3M", formatCount(2_300_000))
}
