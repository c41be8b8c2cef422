// Package tui hosts the Pokédex views in a bubbletea terminal program.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/BielosX/wombat/pokedex/src/router"
	"github.com/BielosX/wombat/pokedex/src/views"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	chromeHeight  = 4
)

type page interface {
	Activate(ctx context.Context)
	Deactivate()
	Render() *html.Node
}

type pageLoadedMsg struct {
	version uint64
}

type Options struct {
	List   views.ListOptions
	Detail views.DetailOptions
	Start  string
}

// Model is the root bubbletea model. It owns one page at a time and swaps
// it whenever the history version moves.
type Model struct {
	ctx     context.Context
	api     views.PokemonAPI
	sugar   *zap.SugaredLogger
	opts    Options
	history *router.History
	styles  Styles

	version uint64
	route   router.Route
	page    page
	detail  *views.DetailView
	loading bool

	cursor   int
	links    []string
	viewport viewport.Model
}

func NewModel(ctx context.Context, api views.PokemonAPI, sugar *zap.SugaredLogger, opts Options) Model {
	m := Model{
		ctx:      ctx,
		api:      api,
		sugar:    sugar,
		opts:     opts,
		history:  router.NewHistory(opts.Start),
		styles:   DefaultStyles(),
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
	}
	m.openRoute()
	return m
}

func (m Model) Init() tea.Cmd {
	return loadPage(m.ctx, m.page, m.version)
}

func loadPage(ctx context.Context, p page, version uint64) tea.Cmd {
	return func() tea.Msg {
		p.Activate(ctx)
		return pageLoadedMsg{version: version}
	}
}

func (m *Model) openRoute() {
	route, version := m.history.Current()
	if m.page != nil {
		m.page.Deactivate()
	}
	m.version = version
	m.route = route
	m.cursor = 0
	m.detail = nil
	m.loading = true
	switch route.Name {
	case router.RouteDetail:
		m.detail = views.NewDetailView(m.api, m.history.At(route), m.sugar, m.opts.Detail)
		m.page = m.detail
	default:
		m.page = views.NewListView(m.api, m.sugar, m.opts.List)
	}
	m.viewport.GotoTop()
	m.refresh()
}

// syncRoute swaps pages when the history moved since the last call.
func (m *Model) syncRoute() tea.Cmd {
	if _, version := m.history.Current(); version == m.version {
		return nil
	}
	m.openRoute()
	m.sugar.Debugf("Opened route %s", m.route.Path)
	return loadPage(m.ctx, m.page, m.version)
}

func (m *Model) refresh() {
	tree := m.page.Render()
	m.links = boxLinks(tree)
	if m.cursor >= len(m.links) {
		m.cursor = max(len(m.links)-1, 0)
	}
	m.viewport.SetContent(renderText(tree, m.styles, m.cursor))
}

func (m *Model) followCursor() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.refresh()
		return m, nil
	case pageLoadedMsg:
		if msg.version == m.version {
			m.loading = false
			m.refresh()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.page.Deactivate()
		return m, tea.Quit
	}
	if m.route.Name == router.RouteDetail {
		switch msg.String() {
		case "b", "esc", "backspace":
			m.detail.GoBack()
			return m, m.syncRoute()
		}
	} else {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.refresh()
			m.followCursor()
			return m, nil
		case "down", "j":
			if m.cursor < len(m.links)-1 {
				m.cursor++
			}
			m.refresh()
			m.followCursor()
			return m, nil
		case "enter":
			if m.cursor < len(m.links) && m.links[m.cursor] != "#" {
				m.history.Navigate(m.links[m.cursor])
			}
			return m, m.syncRoute()
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := "Pokédex"
	if m.route.Name == router.RouteDetail {
		title += " › " + m.route.Path
	}
	if m.loading {
		title += " (loading…)"
	}
	help := "↑/↓ select • enter open • q quit"
	if m.route.Name == router.RouteDetail {
		help = "b back • pgup/pgdown scroll • q quit"
	}
	return m.styles.Header.Render(title) + "\n" +
		m.viewport.View() + "\n" +
		m.styles.Help.Render(help)
}

func (m Model) Route() router.Route {
	return m.route
}

func Run(ctx context.Context, api views.PokemonAPI, sugar *zap.SugaredLogger, opts Options) error {
	program := tea.NewProgram(NewModel(ctx, api, sugar, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
