// Package tui drives the interactive analyze loop: prompt for a URL, fetch
// and analyze with progress feedback, render the report, repeat.
package tui

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mia/internal/insight"
	"mia/internal/report"
	"mia/internal/scrape"
)

// Scraper fetches a page and extracts its text content.
type Scraper interface {
	Extract(ctx context.Context, rawURL string) (scrape.Content, error)
}

// Analyzer scores extracted content.
type Analyzer interface {
	Analyze(ctx context.Context, hookText, fullText string) insight.Insights
}

// Options configures the interactive session.
type Options struct {
	Scraper       Scraper
	Analyzer      Analyzer
	ReportsDir    string
	Timeout       time.Duration
	APIKeyPresent bool
}

type state int

const (
	stateInput state = iota
	stateFetching
	stateAnalyzing
	stateResult
	stateError
)

type fetchedMsg struct{ content scrape.Content }

type analyzedMsg struct{ insights insight.Insights }

type failedMsg struct{ err error }

type savedMsg struct {
	path string
	err  error
}

type model struct {
	opts  Options
	input textinput.Model
	spin  spinner.Model

	state     state
	url       string
	content   scrape.Content
	rep       report.Report
	err       error
	status    string
	statusErr bool
	fromCache bool
	memo      map[string]insight.Insights
	width     int
	height    int
	quitting  bool
}

func newModel(opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "https://www.yourcompanyblog.com/post-title"
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}

	return model{
		opts:  opts,
		input: ti,
		spin:  sp,
		memo:  map[string]insight.Insights{},
	}
}

// memoKey hashes the extracted content, not the URL: a page edited between
// two fetches must not serve a stale result.
func memoKey(c scrape.Content) string {
	h := sha256.New()
	h.Write([]byte(c.HookText))
	h.Write([]byte{0})
	h.Write([]byte(c.FullText))
	return hex.EncodeToString(h.Sum(nil))
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case spinner.TickMsg:
		if m.state == stateFetching || m.state == stateAnalyzing {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case fetchedMsg:
		m.content = msg.content
		if ins, ok := m.memo[memoKey(msg.content)]; ok {
			m.rep = report.New(m.url, ins)
			m.fromCache = true
			m.state = stateResult
			return m, nil
		}
		m.state = stateAnalyzing
		return m, m.analyzeCmd()

	case analyzedMsg:
		m.memo[memoKey(m.content)] = msg.insights
		m.rep = report.New(m.url, msg.insights)
		m.fromCache = false
		m.state = stateResult
		return m, nil

	case failedMsg:
		m.err = msg.err
		m.state = stateError
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not save report: %v", msg.err)
			m.statusErr = true
		} else {
			m.status = "Report saved to " + msg.path
			m.statusErr = false
		}
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case stateInput:
		switch msg.String() {
		case "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			url := strings.TrimSpace(m.input.Value())
			if url == "" {
				m.status = "Please enter a valid URL."
				m.statusErr = true
				return m, nil
			}
			m.url = url
			m.status = ""
			m.state = stateFetching
			return m, tea.Batch(m.spin.Tick, m.fetchCmd())
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

	case stateResult:
		switch msg.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "n":
			return m.reset()
		case "s":
			return m, m.saveCmd()
		}

	case stateError:
		switch msg.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "n":
			return m.reset()
		}
	}

	return m, nil
}

func (m model) reset() (tea.Model, tea.Cmd) {
	m.state = stateInput
	m.input.Reset()
	m.status = ""
	m.statusErr = false
	m.err = nil
	m.fromCache = false
	return m, m.input.Focus()
}

func (m model) fetchCmd() tea.Cmd {
	scraper, url, timeout := m.opts.Scraper, m.url, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		content, err := scraper.Extract(ctx, url)
		if err != nil {
			return failedMsg{err}
		}
		return fetchedMsg{content}
	}
}

func (m model) analyzeCmd() tea.Cmd {
	analyzer, content, timeout := m.opts.Analyzer, m.content, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return analyzedMsg{analyzer.Analyze(ctx, content.HookText, content.FullText)}
	}
}

func (m model) saveCmd() tea.Cmd {
	rep, dir := m.rep, m.opts.ReportsDir
	return func() tea.Msg {
		path, err := rep.Save(dir)
		return savedMsg{path: path, err: err}
	}
}

func (m model) View() string {
	if m.quitting {
		return "Goodbye.\n"
	}

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	helpStyle := lipgloss.NewStyle().Faint(true)
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	var b strings.Builder

	switch m.state {
	case stateInput:
		b.WriteString(titleStyle.Render("Marketing Messaging Analyzer"))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("Enter a public website URL to extract core content and generate marketing insights using AI."))
		b.WriteString("\n\n")
		if !m.opts.APIKeyPresent {
			b.WriteString(warnStyle.Render("GEMINI_API_KEY / GOOGLE_API_KEY not set. Analysis will fall back to local heuristics."))
			b.WriteString("\n\n")
		}
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.status != "" {
			b.WriteString(errStyle.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("[enter] Analyze | [esc] Quit"))

	case stateFetching:
		b.WriteString(fmt.Sprintf("%s Fetching page content from %s...", m.spin.View(), m.url))

	case stateAnalyzing:
		b.WriteString(okStyle.Render("✓ Content fetched and cleaned successfully."))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s Analyzing messaging strategy (this might take a few seconds)...", m.spin.View()))

	case stateResult:
		b.WriteString(report.Render(m.rep))
		if m.fromCache {
			b.WriteString(helpStyle.Render("Served from this session's cache (content unchanged)."))
			b.WriteString("\n")
		}
		if m.status != "" {
			style := okStyle
			if m.statusErr {
				style = errStyle
			}
			b.WriteString(style.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("[n] New analysis | [s] Save report | [q] Quit"))

	case stateError:
		b.WriteString(errStyle.Render("Scraping Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("Analysis could not be completed due to the error above."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("[n] Try another URL | [q] Quit"))
	}

	b.WriteString("\n")
	return docStyle.Render(b.String())
}

// Start runs the interactive loop until the user quits.
func Start(opts Options) error {
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
