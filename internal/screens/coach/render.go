package coach

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/ui/view"
)

func (s *Screen) handleDashboard(msg dashboardMsg) {
	s.renderStudents(msg.Students, msg.StudentsErr)
	s.renderLessons(msg.Lessons, msg.LessonsErr)
	s.renderAssignments(msg.Assignments, msg.AssignmentsErr)
	s.renderMessages(msg.Messages, msg.MessagesErr)
	s.renderQuizzes(msg.Quizzes, msg.QuizzesErr)
}

// failed logs err and, if c has nothing better to show, says so. A list
// that loaded before keeps its cards.
func (s *Screen) failed(c *view.Container, err error) bool {
	if err == nil {
		return false
	}
	s.warn("coach list load failed", c.ID, err)
	if _, placeholder := view.Message(c); placeholder || c.Len() == 0 {
		view.Empty(c, "Could not load. Try again later.")
	}
	return true
}

func (s *Screen) renderStudents(students []api.StudentPerformance, err error) {
	if s.failed(s.students, err) {
		return
	}
	if len(students) == 0 {
		view.Empty(s.students, "No students yet.")
		return
	}
	view.Render(s.students, students, func(st api.StudentPerformance) view.Card {
		weak := "None"
		if len(st.Weaknesses) > 0 {
			weak = strings.Join(st.Weaknesses, ", ")
		}
		return view.Card{
			Key:   strconv.Itoa(st.ID),
			Title: st.Name,
			Lines: []string{
				fmt.Sprintf("Accuracy: %g%%", st.OverallAccuracy),
				fmt.Sprintf("Attempts: %d", st.TotalAttempts),
				"Weak: " + weak,
			},
		}
	})
}

func (s *Screen) renderLessons(lessons []api.Lesson, err error) {
	if s.failed(s.lessons, err) {
		return
	}
	if len(lessons) == 0 {
		view.Empty(s.lessons, "No lessons yet.")
		return
	}
	view.Render(s.lessons, lessons, func(l api.Lesson) view.Card {
		var lines []string
		for _, v := range []string{l.Topic, l.Description} {
			if v != "" {
				lines = append(lines, v)
			}
		}
		if l.VideoURL != "" {
			lines = append(lines, "Video: "+l.VideoURL)
		}
		return view.Card{Key: strconv.Itoa(l.ID), Title: l.Title, Lines: lines}
	})
}

func (s *Screen) renderAssignments(assignments []api.Assignment, err error) {
	if s.failed(s.assignments, err) {
		return
	}
	if len(assignments) == 0 {
		view.Empty(s.assignments, "No assignments yet.")
		return
	}
	view.Render(s.assignments, assignments, func(a api.Assignment) view.Card {
		due := a.DueDate
		if due == "" {
			due = "N/A"
		}
		id := strconv.Itoa(a.ID)
		return view.Card{
			Key:   id,
			Title: a.Title,
			Lines: []string{a.Description, "Due: " + due},
			Controls: []view.Control{{
				Name:    "view-submissions",
				Label:   "View submissions",
				Classes: []string{"view-submissions-btn"},
				Data:    map[string]string{"id": id},
			}},
		}
	})
}

func (s *Screen) handleSubmissions(msg submissionsMsg) {
	if msg.AssignmentID != s.selectedAssignment {
		return
	}
	if s.failed(s.submissions, msg.Err) {
		return
	}
	if len(msg.Submissions) == 0 {
		view.Empty(s.submissions, "No submissions yet.")
		return
	}
	view.Render(s.submissions, msg.Submissions, func(sub api.StudentSubmission) view.Card {
		lines := []string{sub.Content, "Submitted at: " + sub.SubmittedAt}
		if sub.Feedback != "" {
			lines = append(lines, "Feedback: "+sub.Feedback)
		}
		rating := ""
		if sub.Rating != nil {
			rating = strconv.Itoa(*sub.Rating)
			lines = append(lines, fmt.Sprintf("Rating: %d/10", *sub.Rating))
		}
		return view.Card{
			Key:   sub.SubmissionID,
			Title: sub.StudentName,
			Lines: lines,
			Controls: []view.Control{{
				Name:    "save-feedback",
				Label:   "Feedback",
				Classes: []string{"save-feedback-btn"},
				Data: map[string]string{
					"sid":      sub.SubmissionID,
					"feedback": sub.Feedback,
					"rating":   rating,
					"student":  sub.StudentName,
				},
			}},
		}
	})
}

func (s *Screen) renderMessages(messages []api.Message, err error) {
	if s.failed(s.messages, err) {
		return
	}
	if len(messages) == 0 {
		view.Empty(s.messages, "No messages yet.")
		return
	}
	view.Render(s.messages, messages, func(m api.Message) view.Card {
		lines := []string{m.QuestionText, "Asked at: " + m.CreatedAt}
		if m.AnswerText != "" {
			lines = append(lines, "Answer: "+m.AnswerText)
		}
		if m.AnsweredAt != "" {
			lines = append(lines, "Answered at: "+m.AnsweredAt)
		}
		id := strconv.Itoa(m.ID)
		return view.Card{
			Key:   id,
			Title: m.StudentName,
			Lines: lines,
			Controls: []view.Control{{
				Name:    "answer-message",
				Label:   "Send answer",
				Classes: []string{"answer-msg-btn"},
				Data:    map[string]string{"id": id, "answer": m.AnswerText, "student": m.StudentName},
			}},
		}
	})
}

func (s *Screen) renderQuizzes(quizzes []api.CoachQuiz, err error) {
	if s.failed(s.quizzes, err) {
		return
	}
	if len(quizzes) == 0 {
		view.Empty(s.quizzes, "No fixed sets yet.")
		return
	}
	selected := strconv.Itoa(s.selectedQuiz)
	view.Render(s.quizzes, quizzes, func(q api.CoachQuiz) view.Card {
		id := strconv.Itoa(q.ID)
		var lines []string
		if q.Description != "" {
			lines = append(lines, q.Description)
		}
		lines = append(lines, "Created at: "+q.CreatedAt)
		ctrl := view.Control{
			Name:    "select-quiz",
			Label:   "Select",
			Classes: []string{"select-quiz-btn"},
			Data:    map[string]string{"id": id},
		}
		if id == selected {
			ctrl.Classes = append(ctrl.Classes, "selected")
		}
		return view.Card{Key: id, Title: q.Title, Lines: lines, Controls: []view.Control{ctrl}}
	})
}

func (s *Screen) handleQuestions(msg questionsMsg) {
	if msg.QuizID != s.selectedQuiz {
		return
	}
	if s.failed(s.quizQuestions, msg.Err) {
		return
	}
	if len(msg.Questions) == 0 {
		view.Empty(s.quizQuestions, "No questions in this set yet.")
		return
	}
	view.Render(s.quizQuestions, msg.Questions, func(q api.AuthoredQuestion) view.Card {
		return view.Card{
			Key:   strconv.Itoa(q.ID),
			Title: q.Question,
			Lines: []string{
				"A: " + q.OptionA,
				"B: " + q.OptionB,
				"C: " + q.OptionC,
				"D: " + q.OptionD,
				"Correct: " + strings.ToUpper(q.CorrectOption),
			},
		}
	})
}
