package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutordesk/internal/config"
	"github.com/abhisek/tutordesk/internal/screens/coach"
	"github.com/abhisek/tutordesk/internal/screens/learner"
	"github.com/abhisek/tutordesk/internal/screens/notice"
)

func model(role config.Role) AppModel {
	return newAppModel(Options{Role: config.NewRoleContext(role, "Asha", "http://127.0.0.1:1")})
}

func TestNewAppModel_SelectsScreenByRole(t *testing.T) {
	if _, ok := model(config.RoleLearner).router.Active().(*learner.Screen); !ok {
		t.Error("expected the learner dashboard")
	}
	if _, ok := model(config.RoleCoach).router.Active().(*coach.Screen); !ok {
		t.Error("expected the coach dashboard")
	}
	if _, ok := model("admin").router.Active().(*notice.Screen); !ok {
		t.Error("expected the notice screen for an unknown role")
	}
}

func TestCtrlCQuits(t *testing.T) {
	_, cmd := model(config.RoleCoach).Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}

func TestEscAtRootStaysPut(t *testing.T) {
	m := model(config.RoleCoach)
	updated, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if updated.(AppModel).router.Depth() != 1 {
		t.Error("expected the dashboard to stay")
	}
}

func TestNoticeChoiceOpensDashboardAndEscReturns(t *testing.T) {
	m := model("admin")

	updated, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ = updated.Update(cmd())
	m = updated.(AppModel)
	if m.router.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", m.router.Depth())
	}
	if _, ok := m.router.Active().(*learner.Screen); !ok {
		t.Fatalf("expected the learner dashboard, got %T", m.router.Active())
	}

	updated, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected esc to pop")
	}
	updated, _ = updated.Update(cmd())
	m = updated.(AppModel)
	if m.router.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", m.router.Depth())
	}
	if _, ok := m.router.Active().(*notice.Screen); !ok {
		t.Errorf("expected the notice screen, got %T", m.router.Active())
	}
}

func TestViewBeforeSize(t *testing.T) {
	v := model(config.RoleLearner).View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}

func TestRoleOfActiveScreen(t *testing.T) {
	if got := roleOf(model(config.RoleCoach).router.Active()); got != "coach" {
		t.Errorf("expected coach, got %q", got)
	}
	if got := roleOf(model("admin").router.Active()); got != "" {
		t.Errorf("expected no role for the notice, got %q", got)
	}

	m := model(config.RoleLearner)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated.(AppModel).View()
}
