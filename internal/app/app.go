// Package app boots the dashboard for the configured role and runs the
// Bubble Tea program.
package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/config"
	"github.com/abhisek/tutordesk/internal/refresh"
	"github.com/abhisek/tutordesk/internal/router"
	"github.com/abhisek/tutordesk/internal/screen"
	"github.com/abhisek/tutordesk/internal/screens/coach"
	"github.com/abhisek/tutordesk/internal/screens/learner"
	"github.com/abhisek/tutordesk/internal/screens/notice"
	"github.com/abhisek/tutordesk/internal/ui/layout"
)

// Options configure a dashboard run.
type Options struct {
	Role   config.RoleContext
	Client *api.Client // nil builds one that logs each request at debug
	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	user   string
	width  int
	height int
}

// NewClient creates an API client whose requests are logged at debug.
func NewClient(logger *slog.Logger, opts ...api.Option) *api.Client {
	observe := api.WithObserver(func(info api.RequestInfo) {
		logger.Debug("api request", "id", info.ID, "method", info.Method, "endpoint", info.Endpoint)
	})
	return api.NewClient(append([]api.Option{observe}, opts...)...)
}

// newAppModel creates the root model with the dashboard for the role.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Client == nil {
		opts.Client = NewClient(opts.Logger)
	}
	rc := opts.Role

	openLearner := func() screen.Screen {
		l := api.NewLearner(opts.Client, rc)
		cascade := refresh.NewCoordinator(l, refresh.NewStore(), opts.Logger)
		return learner.New(l, cascade, opts.Logger)
	}
	openCoach := func() screen.Screen {
		return coach.New(api.NewCoach(opts.Client, rc), opts.Logger)
	}

	var initial screen.Screen
	switch rc.Role() {
	case config.RoleLearner:
		initial = openLearner()
	case config.RoleCoach:
		initial = openCoach()
	default:
		opts.Logger.Warn("unknown role", "role", rc.Role())
		initial = notice.New("Choose a dashboard",
			fmt.Sprintf("Role %q has no dashboard.", rc.Role()),
			notice.Choice{Label: "Learner dashboard", Open: openLearner},
			notice.Choice{Label: "Coach dashboard", Open: openCoach},
		)
	}

	return AppModel{
		router: router.New(initial),
		user:   rc.UserName(),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 && !capturing(m.router.Active()) {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func capturing(s screen.Screen) bool {
	c, ok := s.(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func roleOf(s screen.Screen) string {
	switch s.(type) {
	case *learner.Screen:
		return string(config.RoleLearner)
	case *coach.Screen:
		return string(config.RoleCoach)
	}
	return ""
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = m.router.Breadcrumb()
	}

	header := layout.RenderHeader(title, roleOf(active), m.user, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
