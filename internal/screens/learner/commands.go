package learner

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/quiz"
)

func (s *Screen) generateCmd(req quiz.GenerateRequest) tea.Cmd {
	return func() tea.Msg {
		return generatedMsg{Result: quiz.Generate(context.Background(), s.backend, req)}
	}
}

func (s *Screen) submitCmd(req quiz.SubmitRequest) tea.Cmd {
	return func() tea.Msg {
		return submittedMsg{Result: quiz.Submit(context.Background(), s.backend, req)}
	}
}

// cascadeCmd refreshes progress, learning path and recommendations in order.
func (s *Screen) cascadeCmd() tea.Cmd {
	return func() tea.Msg {
		return cascadeMsg{Result: s.cascade.Run(context.Background())}
	}
}

func (s *Screen) loadFixedSetsCmd() tea.Cmd {
	return func() tea.Msg {
		sets, err := s.backend.ListFixedSets(context.Background())
		return fixedSetsMsg{Sets: sets, Err: err}
	}
}

// loadPanelsCmd fetches the panels that do not depend on each other.
func (s *Screen) loadPanelsCmd() tea.Cmd {
	return func() tea.Msg {
		var msg panelsMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			msg.Lessons, msg.LessonsErr = s.backend.ListLessons(ctx)
			return nil
		})
		g.Go(func() error {
			msg.Assignments, msg.AssignmentsErr = s.backend.ListAssignments(ctx)
			return nil
		})
		_ = g.Wait()
		return msg
	}
}

func (s *Screen) loadAssignmentsCmd() tea.Cmd {
	return func() tea.Msg {
		as, err := s.backend.ListAssignments(context.Background())
		return assignmentsMsg{Assignments: as, Err: err}
	}
}

func (s *Screen) submitAssignmentCmd(id int, content string) tea.Cmd {
	return func() tea.Msg {
		err := s.backend.SubmitAssignment(context.Background(), api.AssignmentAnswer{AssignmentID: id, Content: content})
		return assignmentSubmittedMsg{ID: id, Err: err}
	}
}

func (s *Screen) askAICmd(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := s.backend.AskAIMentor(context.Background(), text)
		return aiReplyMsg{Reply: reply, Err: err}
	}
}

func (s *Screen) messageCoachCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return messageSentMsg{Text: text, Err: s.backend.MessageMentor(context.Background(), text)}
	}
}
