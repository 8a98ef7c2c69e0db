package demo

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/tutordesk/internal/api"
)

func (s *Server) handleStudents(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	out := make([]api.StudentPerformance, 0, len(s.data.students))
	for _, u := range s.data.students {
		p := s.data.progress(u.id)
		out = append(out, api.StudentPerformance{
			ID:              u.id,
			Name:            u.name,
			OverallAccuracy: p.OverallAccuracy,
			TotalAttempts:   p.TotalAttempts,
			Weaknesses:      p.Weaknesses,
		})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCoachLessons(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	out := []api.Lesson{}
	for i := len(s.data.lessons) - 1; i >= 0; i-- {
		l := s.data.lessons[i]
		if l.createdBy != CoachID {
			continue
		}
		lesson := l.Lesson
		lesson.MentorName = ""
		out = append(out, lesson)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	var req api.NewLesson
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	s.data.lessons = append(s.data.lessons, lessonRow{
		Lesson: api.Lesson{
			ID:          s.data.id(),
			Title:       strings.TrimSpace(req.Title),
			Topic:       strings.TrimSpace(req.Topic),
			Description: strings.TrimSpace(req.Description),
			VideoURL:    strings.TrimSpace(req.VideoURL),
			CreatedAt:   s.data.stamp(),
			MentorName:  s.data.coach.name,
		},
		createdBy: CoachID,
	})
	s.respondStatus(w, "created")
}

func (s *Server) handleCoachAssignments(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.respondJSON(w, http.StatusOK, append([]api.Assignment{}, s.data.assignments...))
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req api.NewAssignment
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	s.data.assignments = append(s.data.assignments, api.Assignment{
		ID:          s.data.id(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	s.respondStatus(w, "created")
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	aid, ok := pathID(r)
	if !ok {
		s.respondError(w, http.StatusNotFound, "Assignment not found")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	out := []api.StudentSubmission{}
	for _, u := range s.data.students {
		sub, ok := s.data.submissions[submissionKey{aid, u.id}]
		if !ok {
			continue
		}
		out = append(out, api.StudentSubmission{
			SubmissionID: submissionID(aid, u.id),
			StudentID:    u.id,
			StudentName:  u.name,
			Content:      sub.Content,
			SubmittedAt:  sub.SubmittedAt,
			Feedback:     sub.Feedback,
			Rating:       sub.Rating,
		})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req api.FeedbackRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	key, ok := parseSubmissionID(req.SubmissionID)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "Invalid submission id")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	sub, ok := s.data.submissions[key]
	if !ok {
		s.respondError(w, http.StatusBadRequest, "Submission not found")
		return
	}
	sub.Feedback = req.Feedback
	sub.Rating = req.Rating
	s.respondStatus(w, "updated")
}

// handleMessages lists every learner message, newest first.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	out := make([]api.Message, 0, len(s.data.messages))
	for i := len(s.data.messages) - 1; i >= 0; i-- {
		out = append(out, s.data.messages[i].Message)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAnswerMessage(w http.ResponseWriter, r *http.Request) {
	var req api.MessageAnswer
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	for i := range s.data.messages {
		if s.data.messages[i].ID == req.MessageID {
			s.data.messages[i].AnswerText = req.AnswerText
			s.data.messages[i].AnsweredAt = s.data.stamp()
		}
	}
	s.respondStatus(w, "answered")
}

func (s *Server) handleCoachQuizzes(w http.ResponseWriter, r *http.Request) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	out := []api.CoachQuiz{}
	for i := len(s.data.quizzes) - 1; i >= 0; i-- {
		if q := s.data.quizzes[i]; q.createdBy == CoachID {
			out = append(out, q.CoachQuiz)
		}
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req api.NewQuiz
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	s.data.quizzes = append(s.data.quizzes, quizRow{
		CoachQuiz: api.CoachQuiz{
			ID:          s.data.id(),
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			CreatedAt:   s.data.stamp(),
		},
		createdBy: CoachID,
	})
	s.respondStatus(w, "created")
}

func (s *Server) handleQuizQuestions(w http.ResponseWriter, r *http.Request) {
	qid, ok := pathID(r)
	if !ok {
		s.respondError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.respondJSON(w, http.StatusOK, append([]api.AuthoredQuestion{}, s.data.quizQs[qid]...))
}

func (s *Server) handleAddQuizQuestion(w http.ResponseWriter, r *http.Request) {
	qid, ok := pathID(r)
	if !ok {
		s.respondError(w, http.StatusNotFound, "Quiz not found")
		return
	}
	var req api.AuthoredQuestion
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	req.ID = s.data.id()
	req.Question = strings.TrimSpace(req.Question)
	req.CorrectOption = strings.ToLower(strings.TrimSpace(req.CorrectOption))
	s.data.quizQs[qid] = append(s.data.quizQs[qid], req)
	s.respondStatus(w, "created")
}
