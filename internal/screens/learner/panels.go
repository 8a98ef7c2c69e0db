package learner

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutordesk/internal/api"
	"github.com/abhisek/tutordesk/internal/quiz"
	"github.com/abhisek/tutordesk/internal/refresh"
	"github.com/abhisek/tutordesk/internal/ui/components"
	"github.com/abhisek/tutordesk/internal/ui/view"
)

const promptEmptyMessage = "Type a message first."

type chatEntry struct {
	Author string
	Text   string
}

// handleCascade applies a finished cascade unless a later one already landed.
func (s *Screen) handleCascade(msg cascadeMsg) {
	res := msg.Result
	if res.Seq < s.appliedSeq {
		s.logger.Debug("stale refresh dropped", "seq", res.Seq, "applied", s.appliedSeq)
		return
	}
	s.appliedSeq = res.Seq

	switch {
	case res.Progress != nil:
		s.hasProgress = true
		s.renderProgress(res.Progress)
	case !s.hasProgress:
		view.Empty(s.summary, "Could not load progress.")
		s.topics.Clear()
	}

	switch {
	case res.PathOK:
		s.renderPath(res.Path)
	case s.path.Len() == 0 || isPlaceholder(s.path):
		view.Empty(s.path, "Could not load learning path.")
	}

	s.recs = res.Recommendations
	s.renderLessons()
}

func isPlaceholder(c *view.Container) bool {
	_, ok := view.Message(c)
	return ok
}

func (s *Screen) renderProgress(p *api.Progress) {
	tiles := []struct{ label, value string }{
		{"Overall Accuracy", fmt.Sprintf("%g%%", p.OverallAccuracy)},
		{"Total Attempts", strconv.Itoa(p.TotalAttempts)},
		{"Time Spent", fmt.Sprintf("%d mins", p.TimeSpentMinutes)},
		{"Strong Topics", joinOr(p.Strengths, "None yet")},
		{"Weak Topics", joinOr(p.Weaknesses, "None yet")},
	}
	view.Render(s.summary, tiles, func(t struct{ label, value string }) view.Card {
		return view.Card{Key: t.label, Title: t.label, Lines: []string{t.value}}
	})

	names := make([]string, 0, len(p.TopicStats))
	for name := range p.TopicStats {
		names = append(names, name)
	}
	slices.Sort(names)
	view.Render(s.topics, names, func(name string) view.Card {
		st := p.TopicStats[name]
		title := st.Name
		if title == "" {
			title = name
		}
		return view.Card{
			Key:   name,
			Title: title,
			Lines: []string{
				fmt.Sprintf("Accuracy: %g%% (%d/%d)", st.Accuracy, st.Correct, st.Total),
				components.NewAccuracyBar("", st.Accuracy, 30).View(),
			},
		}
	})
	if len(names) == 0 {
		view.Empty(s.topics, "Take a quiz to see topic accuracy.")
	}
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

func (s *Screen) renderPath(items []api.PathItem) {
	if len(items) == 0 {
		view.Empty(s.path, "No learning path yet.")
		return
	}
	view.Render(s.path, items, func(it api.PathItem) view.Card {
		return view.Card{
			Key:   it.TopicName,
			Title: it.TopicName,
			Lines: []string{"Mastery: " + it.Mastery, it.Action},
		}
	})
}

// renderLessons shows the recommendations derived from progress followed by
// the coach's lessons. Both sources survive each other's refresh.
func (s *Screen) renderLessons() {
	s.lessons.Clear()
	for _, r := range s.recs {
		s.lessons.Append(recommendationCard(r))
	}
	for _, l := range s.serverLessons {
		s.lessons.Append(lessonCard(l))
	}
	if s.lessons.Len() == 0 {
		view.Empty(s.lessons, "No lessons yet.")
	}
}

func recommendationCard(r refresh.Recommendation) view.Card {
	return view.Card{
		Key:   "rec-" + r.Title,
		Title: r.Title,
		Lines: []string{r.Lead, r.Summary(), r.Advice},
	}
}

func lessonCard(l api.Lesson) view.Card {
	var lines []string
	if l.Topic != "" {
		lines = append(lines, l.Topic)
	}
	if l.Description != "" {
		lines = append(lines, l.Description)
	}
	if l.VideoURL != "" {
		lines = append(lines, "Video: "+l.VideoURL)
	}
	if l.MentorName != "" {
		lines = append(lines, "By "+l.MentorName)
	}
	return view.Card{Key: "lesson-" + strconv.Itoa(l.ID), Title: l.Title, Lines: lines}
}

func (s *Screen) handlePanels(msg panelsMsg) {
	if msg.LessonsErr != nil {
		s.warn("lessons load failed", idLessons, msg.LessonsErr)
	} else {
		s.serverLessons = msg.Lessons
	}
	s.renderLessons()
	s.handleAssignments(assignmentsMsg{Assignments: msg.Assignments, Err: msg.AssignmentsErr})
}

func (s *Screen) handleAssignments(msg assignmentsMsg) {
	if msg.Err != nil {
		s.warn("assignments load failed", idAssignments, msg.Err)
		if s.assignments.Len() == 0 || isPlaceholder(s.assignments) {
			view.Empty(s.assignments, "Could not load assignments.")
		}
		return
	}
	if len(msg.Assignments) == 0 {
		view.Empty(s.assignments, "No assignments yet.")
		return
	}
	view.Render(s.assignments, msg.Assignments, assignmentCard)
}

func assignmentCard(a api.Assignment) view.Card {
	due := a.DueDate
	if due == "" {
		due = "N/A"
	}
	lines := []string{a.Description, "Due: " + due}
	content := ""
	if sub := a.Submission; sub != nil {
		content = sub.Content
		if sub.Content != "" {
			lines = append(lines, "Your answer: "+sub.Content)
		}
		if sub.SubmittedAt != "" {
			lines = append(lines, "Submitted at: "+sub.SubmittedAt)
		}
		if sub.Feedback != "" {
			lines = append(lines, "Feedback: "+sub.Feedback)
		}
		if sub.Rating != nil {
			lines = append(lines, fmt.Sprintf("Rating: %d/10", *sub.Rating))
		}
	}
	id := strconv.Itoa(a.ID)
	return view.Card{
		Key:   id,
		Title: a.Title,
		Lines: lines,
		Controls: []view.Control{{
			Name:    "submit-assignment",
			Label:   "Submit",
			Classes: []string{"submit-assignment-btn"},
			Data:    map[string]string{"id": id, "content": content, "title": a.Title},
		}},
	}
}

func (s *Screen) onAssignment(ctrl view.Control) tea.Cmd {
	id, err := strconv.Atoi(ctrl.Data["id"])
	if err != nil {
		return nil
	}
	form := components.NewForm(ctrl.Data["title"],
		components.TextField("content", "Your answer", ctrl.Data["content"]))
	s.openForm(form, func(v map[string]string) (tea.Cmd, error) {
		return s.submitAssignmentCmd(id, v["content"]), nil
	})
	return nil
}

func (s *Screen) handleAssignmentSubmitted(msg assignmentSubmittedMsg) tea.Cmd {
	if msg.Err != nil {
		s.warn("assignment submit failed", idAssignments, msg.Err)
		s.notice = "Could not submit assignment. Try again."
		return nil
	}
	s.notice = "Assignment submitted."
	return s.loadAssignmentsCmd()
}

func (s *Screen) onMentorAction(ctrl view.Control) tea.Cmd {
	switch ctrl.Name {
	case "ask-ai":
		s.openForm(components.NewForm("AI Mentor", components.TextField("message", "Your question", "")),
			func(v map[string]string) (tea.Cmd, error) {
				text := v["message"]
				if text == "" {
					return nil, &quiz.ValidationError{Field: "message", Prompt: promptEmptyMessage}
				}
				s.appendChat("You", text)
				return s.askAICmd(text), nil
			})
	case "message-coach":
		s.openForm(components.NewForm("Message your mentor", components.TextField("message", "Message", "")),
			func(v map[string]string) (tea.Cmd, error) {
				text := v["message"]
				if text == "" {
					return nil, &quiz.ValidationError{Field: "message", Prompt: promptEmptyMessage}
				}
				return s.messageCoachCmd(text), nil
			})
	}
	return nil
}

func (s *Screen) handleAIReply(msg aiReplyMsg) {
	reply := msg.Reply
	switch {
	case msg.Err != nil:
		s.warn("ai mentor failed", idMentor, msg.Err)
		reply = "Error talking to AI mentor."
	case reply == "":
		reply = "I couldn't generate a reply."
	}
	s.appendChat("AI Mentor", reply)
}

func (s *Screen) handleMessageSent(msg messageSentMsg) {
	if msg.Err != nil {
		s.warn("mentor message failed", idMentor, msg.Err)
		s.notice = "Could not send message. Try again."
		return
	}
	s.appendChat("", "Message sent to mentor: "+msg.Text)
}

func (s *Screen) appendChat(author, text string) {
	s.chat = append(s.chat, chatEntry{Author: author, Text: text})
	n := 0
	view.Render(s.mentor, s.chat, func(e chatEntry) view.Card {
		n++
		line := e.Text
		if e.Author != "" {
			line = e.Author + ": " + e.Text
		}
		return view.Card{Key: strconv.Itoa(n), Lines: []string{line}}
	})
}
