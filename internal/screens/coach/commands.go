package coach

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tutordesk/internal/api"
)

// loadDashboardCmd fetches every list concurrently. Each list keeps its own
// error so one failure does not blank the others.
func (s *Screen) loadDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		var msg dashboardMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			msg.Students, msg.StudentsErr = s.backend.ListStudents(ctx)
			return nil
		})
		g.Go(func() error {
			msg.Lessons, msg.LessonsErr = s.backend.ListLessons(ctx)
			return nil
		})
		g.Go(func() error {
			msg.Assignments, msg.AssignmentsErr = s.backend.ListAssignments(ctx)
			return nil
		})
		g.Go(func() error {
			msg.Messages, msg.MessagesErr = s.backend.ListMessages(ctx)
			return nil
		})
		g.Go(func() error {
			msg.Quizzes, msg.QuizzesErr = s.backend.ListQuizzes(ctx)
			return nil
		})
		_ = g.Wait()
		return msg
	}
}

func (s *Screen) loadLessonsCmd() tea.Cmd {
	return func() tea.Msg {
		ls, err := s.backend.ListLessons(context.Background())
		return lessonsMsg{Lessons: ls, Err: err}
	}
}

func (s *Screen) loadAssignmentsCmd() tea.Cmd {
	return func() tea.Msg {
		as, err := s.backend.ListAssignments(context.Background())
		return assignmentsMsg{Assignments: as, Err: err}
	}
}

func (s *Screen) loadSubmissionsCmd(assignmentID int) tea.Cmd {
	return func() tea.Msg {
		subs, err := s.backend.ListSubmissions(context.Background(), assignmentID)
		return submissionsMsg{AssignmentID: assignmentID, Submissions: subs, Err: err}
	}
}

func (s *Screen) loadMessagesCmd() tea.Cmd {
	return func() tea.Msg {
		ms, err := s.backend.ListMessages(context.Background())
		return messagesMsg{Messages: ms, Err: err}
	}
}

func (s *Screen) loadQuizzesCmd() tea.Cmd {
	return func() tea.Msg {
		qs, err := s.backend.ListQuizzes(context.Background())
		return quizzesMsg{Quizzes: qs, Err: err}
	}
}

func (s *Screen) loadQuestionsCmd(quizID int) tea.Cmd {
	return func() tea.Msg {
		qs, err := s.backend.ListQuizQuestions(context.Background(), quizID)
		return questionsMsg{QuizID: quizID, Questions: qs, Err: err}
	}
}

// saveCmd runs a write and reports it as a savedMsg.
func (s *Screen) saveCmd(act action, target int, write func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{Action: act, Target: target, Err: write(context.Background())}
	}
}

func (s *Screen) createLessonCmd(l api.NewLesson) tea.Cmd {
	return s.saveCmd(actCreateLesson, 0, func(ctx context.Context) error {
		return s.backend.CreateLesson(ctx, l)
	})
}

func (s *Screen) createAssignmentCmd(a api.NewAssignment) tea.Cmd {
	return s.saveCmd(actCreateAssignment, 0, func(ctx context.Context) error {
		return s.backend.CreateAssignment(ctx, a)
	})
}

func (s *Screen) saveFeedbackCmd(assignmentID int, req api.FeedbackRequest) tea.Cmd {
	return s.saveCmd(actSaveFeedback, assignmentID, func(ctx context.Context) error {
		return s.backend.SaveFeedback(ctx, req)
	})
}

func (s *Screen) answerMessageCmd(req api.MessageAnswer) tea.Cmd {
	return s.saveCmd(actAnswerMessage, 0, func(ctx context.Context) error {
		return s.backend.AnswerMessage(ctx, req)
	})
}

func (s *Screen) createQuizCmd(q api.NewQuiz) tea.Cmd {
	return s.saveCmd(actCreateQuiz, 0, func(ctx context.Context) error {
		return s.backend.CreateQuiz(ctx, q)
	})
}

func (s *Screen) addQuestionCmd(quizID int, q api.AuthoredQuestion) tea.Cmd {
	return s.saveCmd(actAddQuestion, quizID, func(ctx context.Context) error {
		return s.backend.AddQuizQuestion(ctx, quizID, q)
	})
}
