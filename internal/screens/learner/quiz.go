package learner

import (
	"errors"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/quiz"
	"github.com/abhisek/tutordesk/internal/ui/components"
	"github.com/abhisek/tutordesk/internal/ui/view"
)

const noticeSubmitFailed = "Could not submit answer. Try again."

func (s *Screen) renderModeControl() {
	s.quizControls.Static[0].Label = "Mode: " + s.machine.Mode().String()
	s.quizControls.Static[0].Data = map[string]string{"mode": s.machine.Mode().Wire()}
}

// rebuildQuizPanel lays out the quiz tab. The fixed-set list only shows in
// FixedSet mode.
func (s *Screen) rebuildQuizPanel() {
	if s.machine.Mode() == quiz.FixedSet {
		s.panels[tabQuiz] = components.NewPanel(s.quizControls, s.fixedSets, s.questions)
		return
	}
	s.panels[tabQuiz] = components.NewPanel(s.quizControls, s.questions)
}

func (s *Screen) onQuizControl(ctrl view.Control) tea.Cmd {
	switch ctrl.Name {
	case "mode":
		return s.toggleMode()
	case "generate":
		return s.generate()
	}
	return nil
}

func (s *Screen) toggleMode() tea.Cmd {
	next := quiz.FixedSet
	if s.machine.Mode() == quiz.FixedSet {
		next = quiz.Adaptive
	}
	fetch := s.machine.SetMode(next)
	s.renderModeControl()
	s.rebuildQuizPanel()
	s.notice = ""
	if !fetch {
		return nil
	}
	view.Empty(s.fixedSets, "Loading fixed sets...")
	return s.loadFixedSetsCmd()
}

func (s *Screen) generate() tea.Cmd {
	req, err := s.machine.RequestGeneration(s.machine.Mode(), s.machine.FixedSetID())
	if err != nil {
		var ve *quiz.ValidationError
		if errors.As(err, &ve) {
			s.notice = ve.Prompt
		}
		return nil
	}
	s.notice = ""
	view.Empty(s.questions, "Loading quiz...")
	return s.generateCmd(req)
}

func (s *Screen) handleGenerated(msg generatedMsg) tea.Cmd {
	if !s.machine.ApplyGeneration(msg.Result) {
		s.logger.Debug("stale quiz generation dropped", "token", msg.Result.Token, "current", s.machine.Token())
		return nil
	}
	if msg.Result.Err != nil {
		s.warn("quiz generation failed", idQuestions, msg.Result.Err)
		s.notice = "Could not load quiz. Try again."
	}
	s.renderQuestions()
	return nil
}

func (s *Screen) handleFixedSets(msg fixedSetsMsg) {
	if msg.Err != nil {
		s.warn("fixed sets load failed", idFixedSets, msg.Err)
		view.Empty(s.fixedSets, "Could not load fixed sets.")
		return
	}
	s.sets = msg.Sets
	s.renderFixedSets()
}

func (s *Screen) renderFixedSets() {
	if len(s.sets) == 0 {
		view.Empty(s.fixedSets, "No quizzes created by mentor yet")
		return
	}
	selected := s.machine.FixedSetID()
	view.Render(s.fixedSets, s.sets, func(fs api.FixedSet) view.Card {
		id := strconv.Itoa(fs.ID)
		lines := []string{fmt.Sprintf("%d questions", fs.QuestionCount)}
		if fs.Description != "" {
			lines = append([]string{fs.Description}, lines...)
		}
		if fs.MentorName != "" {
			lines = append(lines, "By "+fs.MentorName)
		}
		ctrl := view.Control{
			Name:    "select-set",
			Label:   "Select",
			Classes: []string{"select-set"},
			Data:    map[string]string{"id": id},
		}
		if id == selected {
			ctrl.Classes = append(ctrl.Classes, "selected")
			ctrl.Label = "Selected"
		}
		return view.Card{Key: id, Title: fs.Title, Lines: lines, Controls: []view.Control{ctrl}}
	})
}

func (s *Screen) onSelectSet(ctrl view.Control) tea.Cmd {
	s.machine.SelectFixedSet(ctrl.Data["id"])
	s.notice = ""
	s.renderFixedSets()
	return nil
}

// renderQuestions redraws the quiz container from the live session.
func (s *Screen) renderQuestions() {
	sess := s.machine.Session()
	switch sess.Status {
	case quiz.StatusLoading:
		view.Empty(s.questions, "Loading quiz...")
		return
	case quiz.StatusEmpty:
		view.Empty(s.questions, "No questions available.")
		return
	}
	if len(sess.Questions) == 0 {
		if sess.Status == quiz.StatusFailed {
			view.Empty(s.questions, "Could not load quiz.")
		}
		return
	}

	n := 0
	view.Render(s.questions, sess.Questions, func(q quiz.Question) view.Card {
		n++
		return questionCard(n, q)
	})
}

func questionCard(n int, q quiz.Question) view.Card {
	qid := strconv.Itoa(q.ID)
	card := view.Card{Key: qid, Title: fmt.Sprintf("Q%d. %s", n, q.Prompt)}

	for _, k := range quiz.OptionKeys {
		text, ok := q.Options[k]
		if !ok {
			continue
		}
		ctrl := view.Control{
			Name:     "option",
			Label:    k.Upper() + ". " + text,
			Classes:  []string{"quiz-opt"},
			Data:     map[string]string{"qid": qid, "opt": string(k)},
			Disabled: q.State != quiz.Unanswered,
		}
		if k == q.Selected {
			ctrl.Classes = append(ctrl.Classes, "selected")
		}
		card.Controls = append(card.Controls, ctrl)
	}

	switch q.State {
	case quiz.Submitting:
		card.Lines = append(card.Lines, "Checking...")
	case quiz.Answered:
		card.Lines = append(card.Lines, feedbackLines(q.Feedback)...)
	}
	return card
}

func feedbackLines(f *quiz.Feedback) []string {
	if f == nil {
		return nil
	}
	verdict := "Correct"
	if !f.IsCorrect {
		verdict = fmt.Sprintf("Wrong (Correct: %s)", f.CorrectOption.Upper())
	}
	lines := []string{verdict}
	if f.Explanation != "" {
		lines = append(lines, f.Explanation)
	}
	if f.Recommendation != "" {
		lines = append(lines, f.Recommendation)
	}
	return lines
}

func (s *Screen) onOption(ctrl view.Control) tea.Cmd {
	qid, err := strconv.Atoi(ctrl.Data["qid"])
	if err != nil {
		return nil
	}
	req, err := s.machine.BeginSubmit(qid, quiz.OptionKey(ctrl.Data["opt"]))
	if err != nil {
		var ve *quiz.ValidationError
		if errors.As(err, &ve) {
			s.notice = ve.Prompt
		}
		s.logger.Debug("answer ignored", "question", qid, "err", err)
		return nil
	}
	s.notice = ""
	s.renderQuestions()
	return s.submitCmd(req)
}

func (s *Screen) handleSubmitted(msg submittedMsg) tea.Cmd {
	res := msg.Result
	if !s.machine.ApplySubmit(res) {
		s.logger.Debug("stale answer result dropped", "question", res.QuestionID, "token", res.Token)
		return nil
	}
	s.renderQuestions()
	if res.Err != nil {
		s.warn("answer submission failed", idQuestions, res.Err)
		s.notice = noticeSubmitFailed
		return nil
	}
	return s.cascadeCmd()
}
