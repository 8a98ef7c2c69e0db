package demo

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/abhisek/tutordesk/internal/api"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	p := s.data.progress(LearnerID)
	s.data.mu.Unlock()
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleLearningPath(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	path := s.data.learningPath(LearnerID)
	s.data.mu.Unlock()
	s.respondJSON(w, http.StatusOK, path)
}

// handleFixedSets lists only the sets that have at least one question,
// newest first.
func (s *Server) handleFixedSets(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	sets := []api.FixedSet{}
	for i := len(s.data.quizzes) - 1; i >= 0; i-- {
		q := s.data.quizzes[i]
		n := len(s.data.quizQs[q.ID])
		if n == 0 {
			continue
		}
		sets = append(sets, api.FixedSet{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			CreatedAt:     q.CreatedAt,
			MentorName:    s.data.userName(q.createdBy),
			QuestionCount: n,
		})
	}
	s.respondJSON(w, http.StatusOK, sets)
}

// generatedQuestion is the wire shape of a generated question. The answer key
// is included, as the original backend does; clients ignore it.
type generatedQuestion struct {
	ID            int    `json:"id"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
}

func toGenerated(q api.AuthoredQuestion) generatedQuestion {
	return generatedQuestion{
		ID: q.ID, Question: q.Question,
		OptionA: q.OptionA, OptionB: q.OptionB, OptionC: q.OptionC, OptionD: q.OptionD,
		CorrectOption: q.CorrectOption,
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req api.GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	var picked []api.AuthoredQuestion
	if req.Mode == api.ModeManual && req.QuizID != nil && *req.QuizID != 0 {
		picked = s.data.quizQs[*req.QuizID]
	} else {
		picked = append([]api.AuthoredQuestion(nil), s.data.bank...)
		s.shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
		if len(picked) > smartQuizSize {
			picked = picked[:smartQuizSize]
		}
	}

	out := make([]generatedQuestion, 0, len(picked))
	for _, q := range picked {
		out = append(out, toGenerated(q))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req api.SubmitAnswerRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	source := sourceBank
	lookup := s.data.bankQuestion
	if req.Mode == api.ModeManual {
		source = sourceManual
		lookup = s.data.manualQuestion
	}
	q, ok := lookup(req.QuestionID)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "Question not found")
		return
	}

	correct := req.SelectedOption == q.CorrectOption
	s.data.attempts = append(s.data.attempts, attempt{
		userID: LearnerID, questionID: q.ID, correct: correct, source: source,
	})

	s.respondJSON(w, http.StatusOK, api.AnswerResult{
		IsCorrect:      correct,
		CorrectOption:  q.CorrectOption,
		Explanation:    explain(q, req.SelectedOption),
		Recommendation: "Focus on the concept mentioned in the explanation.",
	})
}

func optionText(q api.AuthoredQuestion, key string) string {
	switch key {
	case "a":
		return q.OptionA
	case "b":
		return q.OptionB
	case "c":
		return q.OptionC
	case "d":
		return q.OptionD
	}
	return ""
}

func explain(q api.AuthoredQuestion, selected string) string {
	answer := optionText(q, q.CorrectOption)
	if selected == q.CorrectOption {
		return fmt.Sprintf("%q is right.", answer)
	}
	return fmt.Sprintf("The answer is %q, not %q.", answer, optionText(q, selected))
}

func (s *Server) handleLessons(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	out := []api.Lesson{}
	for i := len(s.data.lessons) - 1; i >= 0; i-- {
		l := s.data.lessons[i].Lesson
		if l.MentorName == "" {
			l.MentorName = "Mentor"
		}
		out = append(out, l)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAssignments(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	out := make([]api.Assignment, 0, len(s.data.assignments))
	for _, a := range s.data.assignments {
		if sub, ok := s.data.submissions[submissionKey{a.ID, LearnerID}]; ok {
			cp := *sub
			a.Submission = &cp
		} else {
			a.Submission = &api.Submission{}
		}
		out = append(out, a)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSubmitAssignment(w http.ResponseWriter, r *http.Request) {
	var req api.AssignmentAnswer
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	found := false
	for _, a := range s.data.assignments {
		if a.ID == req.AssignmentID {
			found = true
			break
		}
	}
	if !found {
		s.respondError(w, http.StatusBadRequest, "Assignment not found")
		return
	}

	key := submissionKey{req.AssignmentID, LearnerID}
	sub, ok := s.data.submissions[key]
	if !ok {
		sub = &api.Submission{}
		s.data.submissions[key] = sub
	}
	sub.Content = req.Content
	sub.SubmittedAt = s.data.stamp()
	s.respondStatus(w, "ok")
}

func (s *Server) handleMessageMentor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionText string `json:"question_text"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	s.data.messages = append(s.data.messages, messageRow{
		Message: api.Message{
			ID:           s.data.id(),
			StudentName:  s.data.userName(LearnerID),
			QuestionText: strings.TrimSpace(req.QuestionText),
			CreatedAt:    s.data.stamp(),
		},
		studentID: LearnerID,
	})
	s.respondStatus(w, "sent")
}

func (s *Server) handleAIMentor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply := "Type a question so I can actually help you."
	if msg := strings.TrimSpace(req.Message); msg != "" {
		reply = fmt.Sprintf("Break %q into the smallest piece you can test, try it in the REPL, then build up from there.", msg)
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
