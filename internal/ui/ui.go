package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytsrc/internal/formatter"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResolvingView ViewState = iota
	CandidateListView
	FeedsView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.Resolver
	query        models.SearchQuery
	width        int
	height       int
	candidates   list.Model
	result       *tasks.ResolveResult
	progressChan chan tasks.ProgressUpdate
	done         chan resolveComplete
	progress     tasks.ProgressUpdate
	selected     *models.Candidate
	feeds        *models.FeedInfo
	loadingFeeds bool
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model that resolves q with engine.
func NewModel(ctx context.Context, engine tasks.Resolver, q models.SearchQuery) *Model {
	return &Model{
		ctx:    ctx,
		view:   ResolvingView,
		engine: engine,
		query:  q,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts resolving the query.
func (m *Model) Init() tea.Cmd {
	return m.startResolve()
}

// Selected returns the last candidate whose feeds were resolved and the feeds themselves.
func (m *Model) Selected() (*models.Candidate, *models.FeedInfo) {
	return m.selected, m.feeds
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error { return m.err }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.view != ResolvingView && m.result != nil && m.err == nil {
			m.resizeList()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ResolvingView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
			return m, nil
		case CandidateListView:
			return m.handleCandidateKeys(msg)
		case FeedsView:
			return m.handleFeedsKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgResolveComplete:
		data := msg.data.(resolveComplete)
		m.progressChan, m.done = nil, nil
		m.result, m.err = data.result, data.err
		if m.err != nil {
			m.view = ResultView
			return m, nil
		}

		cands := data.result.Candidates()
		if len(cands) == 0 {
			m.view = ResultView
			return m, nil
		}
		m.candidates = list.New(candidateItems(cands), list.NewDefaultDelegate(), 0, 0)
		m.candidates.Title = fmt.Sprintf("Candidates for %s", m.query.Text())
		m.resizeList()
		m.view = CandidateListView
		return m, nil

	case MsgFeedsFetched:
		data := msg.data.(feedsFetched)
		m.loadingFeeds = false
		if m.selected == nil || m.selected.VideoID != data.videoID {
			return m, nil
		}
		m.feeds, m.err = data.info, data.err
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ResolvingView:
		return m.renderResolving()
	case CandidateListView:
		return m.renderCandidates()
	case FeedsView:
		return m.renderFeeds()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleCandidateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.candidates.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		return m, m.restart()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.candidates.SelectedItem().(candidateItem); ok {
			c := item.candidate
			m.selected, m.feeds, m.err = &c, nil, nil
			m.loadingFeeds = true
			m.view = FeedsView
			return m, m.fetchFeeds(c)
		}
		return m, nil
	}
	return m.updateList(msg)
}

func (m *Model) handleFeedsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = CandidateListView
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		return m, m.restart()
	}
	return m, nil
}

func (m *Model) resizeList() {
	if len(m.candidates.Items()) == 0 {
		return
	}
	m.candidates.SetSize(max(m.width-4, 0), max(m.height-8, 0))
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != CandidateListView {
		return m, nil
	}
	var cmd tea.Cmd
	m.candidates, cmd = m.candidates.Update(msg)
	return m, cmd
}

func (m *Model) restart() tea.Cmd {
	m.view = ResolvingView
	m.result, m.selected, m.feeds, m.err = nil, nil, nil, nil
	m.progress = tasks.ProgressUpdate{}
	return m.startResolve()
}

func (m *Model) startResolve() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan resolveComplete, 1)
	m.progressChan, m.done = progress, done

	go func() {
		result, err := m.engine.Resolve(m.ctx, m.query, progress)
		done <- resolveComplete{result: result, err: err}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressChan, m.done
	return func() tea.Msg {
		if progress == nil {
			return nil
		}
		update, ok := <-progress
		if !ok {
			r := <-done
			return resolveCompleteMsg(r.result, r.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) fetchFeeds(c models.Candidate) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if c.GetFeeds == nil {
			return feedsFetchedMsg(c.VideoID, nil, fmt.Errorf("no feed resolver for %s", c.VideoID))
		}
		info, err := c.GetFeeds(ctx)
		return feedsFetchedMsg(c.VideoID, info, err)
	}
}

func (m *Model) renderResolving() string {
	title := styles.title.Render(fmt.Sprintf("Resolving %s", m.query.Text()))
	status := "Starting..."
	if m.progress.Message != "" {
		status = fmt.Sprintf("(%d/%d) %s", m.progress.Step, m.progress.Total, m.progress.Message)
	}
	return fmt.Sprintf("%s\n%s\n\n%s", title, status, m.help.ShortHelpView([]key.Binding{m.keys.quit}))
}

func (m *Model) renderCandidates() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.restart, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.candidates.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderFeeds() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	if m.selected == nil {
		return helpView
	}
	title := styles.title.Render(fmt.Sprintf("Feeds for %s", m.selected.Title))

	switch {
	case m.loadingFeeds:
		return fmt.Sprintf("%s\nResolving feeds for %s...\n\n%s", title, m.selected.VideoID, helpView)
	case m.err != nil:
		return fmt.Sprintf("%s\n%s\n\n%s", title, styles.err.Render(fmt.Sprintf("Failed to resolve feeds: %v", m.err)), helpView)
	case m.feeds != nil:
		return fmt.Sprintf("%s\n%s\n%s", title, formatter.FeedInfoToText(m.feeds), helpView)
	default:
		return fmt.Sprintf("%s\n\n%s", title, helpView)
	}
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})
	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Search failed: %v", m.err)), helpView)
	}

	msg := styles.warn.Render(fmt.Sprintf("No candidates found for %s", m.query.Text()))
	if m.result != nil {
		for _, b := range m.result.Backends {
			if b.Err != nil {
				msg += "\n" + styles.help.Render(fmt.Sprintf("  • %s: %v", b.Source, b.Err))
			}
		}
	}
	return fmt.Sprintf("%s\n\n%s", msg, helpView)
}
