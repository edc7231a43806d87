package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"crateseek/internal/clipboard"
	"crateseek/internal/config"
	"crateseek/internal/domain"
	"crateseek/internal/eventbus"
	"crateseek/internal/registry"
	"crateseek/internal/ui"
)

var version = "0.1.0"

var (
	findTerm  string
	sortFlag  string
	countFlag int
)

var rootCmd = &cobra.Command{
	Use:   "crateseek",
	Short: "A TUI for searching crates.io in the terminal",
	Long: `crateseek is a quick-search TUI for crates.io.

Run without arguments to start the interactive search. Alternatively the
find option bypasses the TUI, performs one search, and prints the results.

Examples:
  crateseek                          # interactive search
  crateseek -f tokio                 # print the top 5 matches for "tokio"
  crateseek -f serde -s downloads    # sort by all-time downloads
  crateseek -f axum -c 10            # print 10 results`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		sort, err := domain.ParseSortOrder(sortFlag)
		if err != nil {
			return err
		}
		if findTerm != "" {
			return runFind(findTerm, sort, countFlag)
		}
		return runTUI()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&findTerm, "find", "f", "", "search term; bypasses the TUI and prints results")
	rootCmd.Flags().StringVarP(&sortFlag, "sort", "s", "relevance", "sort order: relevance, downloads, recent-downloads, recent-updates, new")
	rootCmd.Flags().IntVarP(&countFlag, "count", "c", 5, "number of results to print with --find")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires the event bus, registry client, and UI model together and
// runs the interactive loop until quit.
func runTUI() error {
	// Bubble Tea owns the terminal; log to a file instead of stderr.
	logFile, err := os.OpenFile("crateseek.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	cfg, err := config.NewService().Load()
	if err != nil {
		log.Printf("error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	bus := eventbus.New()
	defer bus.Close()

	client := registry.NewClient(bus, registry.Options{
		BaseURL: cfg.RegistryURL,
		PerPage: cfg.PerPage,
		Timeout: cfg.Timeout(),
	})

	var clip clipboard.Writer
	if cfg.ClipboardEnabled {
		clip = clipboard.System{}
	}

	model := ui.NewModel(client, clip)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Forward bus events into the program's message stream. The channel is
	// the single merge point for search results; bus.Close before close()
	// guarantees no publisher is left mid-send.
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventSearchCompleted, forward)
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchRequestedEvent); ok {
			log.Printf("search requested: q=%q page=%d sort=%s", event.Query, event.Page, event.Sort)
		}
	})

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	bus.Close()
	close(eventChan)
	return nil
}

// runFind performs one synchronous search and prints the results.
func runFind(term string, sort domain.SortOrder, count int) error {
	if count <= 0 {
		count = 5
	}

	client := registry.NewClient(nil, registry.Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	crates, total, err := client.Search(ctx, term, 1, count, sort)
	if err != nil {
		return err
	}

	printCrates(os.Stdout, term, sort, crates, total)
	return nil
}

var (
	findNameStyle  = lipgloss.NewStyle().Bold(true)
	findMetaStyle  = lipgloss.NewStyle().Faint(true)
	findTotalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
)

// printCrates renders the non-interactive search output as one line per
// crate: the Cargo.toml dependency string, downloads, and description.
func printCrates(w io.Writer, term string, sort domain.SortOrder, crates []domain.Crate, total int) {
	if len(crates) == 0 {
		fmt.Fprintf(w, "No crates matched %q.\n", term)
		return
	}

	fmt.Fprintln(w, findTotalStyle.Render(
		fmt.Sprintf("%d crates matched %q (showing %d, sorted by %s)", total, term, len(crates), sort.Label())))
	fmt.Fprintln(w)

	width := 0
	for _, c := range crates {
		if n := len(c.DependencyLine()); n > width {
			width = n
		}
	}

	for _, c := range crates {
		desc := c.Description
		if len(desc) > 72 {
			desc = desc[:71] + "…"
		}
		fmt.Fprintf(w, "%s  %s\n",
			findNameStyle.Render(fmt.Sprintf("%-*s", width, c.DependencyLine())),
			findMetaStyle.Render(fmt.Sprintf("%10d downloads  %s", c.Downloads, desc)))
	}
}
