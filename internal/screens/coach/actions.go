package coach

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/quiz"
	"github.com/abhisek/tutordesk/internal/ui/components"
	"github.com/abhisek/tutordesk/internal/ui/view"
)

// Prompts shown when an authoring form is incomplete.
const (
	PromptTitleRequired     = "Title is required"
	PromptQuizTitleRequired = "Quiz title is required"
	PromptSelectQuiz        = "Select a quiz first"
	PromptQuestionRequired  = "Question and correct option (a/b/c/d) required"
	PromptRatingRange       = "Rating must be between 0 and 10"
	PromptAnswerRequired    = "Type an answer first"
)

func invalid(field, prompt string) error {
	return &quiz.ValidationError{Field: field, Prompt: prompt}
}

func (s *Screen) onCreateLesson(view.Control) tea.Cmd {
	s.openForm(components.NewForm("New lesson",
		components.TextField("title", "Title", ""),
		components.TextField("topic", "Topic", ""),
		components.TextField("video_url", "Video URL", ""),
		components.TextField("description", "Description", ""),
	), func(v map[string]string) (tea.Cmd, error) {
		if v["title"] == "" {
			return nil, invalid("title", PromptTitleRequired)
		}
		return s.createLessonCmd(api.NewLesson{
			Title:       v["title"],
			Topic:       v["topic"],
			VideoURL:    v["video_url"],
			Description: v["description"],
		}), nil
	})
	return nil
}

func (s *Screen) onAssignmentAction(ctrl view.Control) tea.Cmd {
	if ctrl.Name == "view-submissions" {
		id, err := strconv.Atoi(ctrl.Data["id"])
		if err != nil {
			return nil
		}
		s.selectedAssignment = id
		view.Empty(s.submissions, "Loading submissions...")
		return s.loadSubmissionsCmd(id)
	}

	s.openForm(components.NewForm("New assignment",
		components.TextField("title", "Title", ""),
		components.TextField("description", "Description", ""),
		components.TextField("due_date", "Due date (YYYY-MM-DD)", ""),
	), func(v map[string]string) (tea.Cmd, error) {
		if v["title"] == "" {
			return nil, invalid("title", PromptTitleRequired)
		}
		return s.createAssignmentCmd(api.NewAssignment{
			Title:       v["title"],
			Description: v["description"],
			DueDate:     v["due_date"],
		}), nil
	})
	return nil
}

func (s *Screen) onSaveFeedback(ctrl view.Control) tea.Cmd {
	sid := ctrl.Data["sid"]
	assignmentID := s.selectedAssignment
	s.openForm(components.NewForm("Feedback for "+ctrl.Data["student"],
		components.TextField("feedback", "Feedback", ctrl.Data["feedback"]),
		components.NumberField("rating", "Rating (0-10)", ctrl.Data["rating"]),
	), func(v map[string]string) (tea.Cmd, error) {
		req := api.FeedbackRequest{SubmissionID: sid, Feedback: v["feedback"]}
		if raw := v["rating"]; raw != "" {
			rating, err := strconv.Atoi(raw)
			if err != nil || rating < 0 || rating > 10 {
				return nil, invalid("rating", PromptRatingRange)
			}
			req.Rating = &rating
		}
		return s.saveFeedbackCmd(assignmentID, req), nil
	})
	return nil
}

func (s *Screen) onAnswerMessage(ctrl view.Control) tea.Cmd {
	id, err := strconv.Atoi(ctrl.Data["id"])
	if err != nil {
		return nil
	}
	s.openForm(components.NewForm("Answer "+ctrl.Data["student"],
		components.TextField("answer", "Answer", ctrl.Data["answer"]),
	), func(v map[string]string) (tea.Cmd, error) {
		if v["answer"] == "" {
			return nil, invalid("answer", PromptAnswerRequired)
		}
		return s.answerMessageCmd(api.MessageAnswer{MessageID: id, AnswerText: v["answer"]}), nil
	})
	return nil
}

func (s *Screen) onQuizAction(ctrl view.Control) tea.Cmd {
	switch ctrl.Name {
	case "select-quiz":
		id, err := strconv.Atoi(ctrl.Data["id"])
		if err != nil {
			return nil
		}
		s.selectedQuiz = id
		s.notice = ""
		for ci := range s.quizzes.Cards {
			for i, c := range s.quizzes.Cards[ci].Controls {
				classes := []string{"select-quiz-btn"}
				if c.Data["id"] == ctrl.Data["id"] {
					classes = append(classes, "selected")
				}
				s.quizzes.Cards[ci].Controls[i].Classes = classes
			}
		}
		view.Empty(s.quizQuestions, "Loading questions...")
		return s.loadQuestionsCmd(id)

	case "create-quiz":
		s.openForm(components.NewForm("New fixed set",
			components.TextField("title", "Title", ""),
			components.TextField("description", "Description", ""),
		), func(v map[string]string) (tea.Cmd, error) {
			if v["title"] == "" {
				return nil, invalid("title", PromptQuizTitleRequired)
			}
			return s.createQuizCmd(api.NewQuiz{Title: v["title"], Description: v["description"]}), nil
		})

	case "add-question":
		if s.selectedQuiz == 0 {
			s.notice = PromptSelectQuiz
			return nil
		}
		quizID := s.selectedQuiz
		s.openForm(components.NewForm("Add question",
			components.TextField("question", "Question", ""),
			components.TextField("a", "Option A", ""),
			components.TextField("b", "Option B", ""),
			components.TextField("c", "Option C", ""),
			components.TextField("d", "Option D", ""),
			components.TextField("correct", "Correct option (a/b/c/d)", ""),
			components.TextField("topic", "Topic", ""),
		), func(v map[string]string) (tea.Cmd, error) {
			correct, ok := quiz.ParseOption(v["correct"])
			if v["question"] == "" || !ok {
				return nil, invalid("question", PromptQuestionRequired)
			}
			return s.addQuestionCmd(quizID, api.AuthoredQuestion{
				Question:      v["question"],
				OptionA:       v["a"],
				OptionB:       v["b"],
				OptionC:       v["c"],
				OptionD:       v["d"],
				CorrectOption: string(correct),
				Topic:         v["topic"],
			}), nil
		})
	}
	return nil
}

// handleSaved reports a write and reloads the list it changed.
func (s *Screen) handleSaved(msg savedMsg) tea.Cmd {
	if msg.Err != nil {
		s.warn("coach save failed", string(msg.Action), msg.Err)
		s.notice = "Could not " + string(msg.Action) + ". Try again."
		return nil
	}
	s.notice = "Saved."
	switch msg.Action {
	case actCreateLesson:
		return s.loadLessonsCmd()
	case actCreateAssignment:
		return s.loadAssignmentsCmd()
	case actSaveFeedback:
		return s.loadSubmissionsCmd(msg.Target)
	case actAnswerMessage:
		return s.loadMessagesCmd()
	case actCreateQuiz:
		return s.loadQuizzesCmd()
	case actAddQuestion:
		return s.loadQuestionsCmd(msg.Target)
	}
	return nil
}
