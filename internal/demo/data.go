package demo

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/tutordesk/internal/api"
)

// Fixed identities of the single-user demo.
const (
	LearnerID = 1
	CoachID   = 2
	peerID    = 3
)

// Attempt sources. Fixed-set answers are recorded but excluded from analytics.
const (
	sourceBank   = "bank"
	sourceManual = "manual"
)

type user struct {
	id   int
	name string
}

type attempt struct {
	userID     int
	questionID int
	correct    bool
	source     string
}

type lessonRow struct {
	api.Lesson
	createdBy int
}

type quizRow struct {
	api.CoachQuiz
	createdBy int
}

type messageRow struct {
	api.Message
	studentID int
}

type submissionKey struct {
	assignment int
	student    int
}

// store is the in-memory state behind the demo server.
type store struct {
	mu  sync.Mutex
	now func() time.Time

	students    []user
	coach       user
	bank        []api.AuthoredQuestion
	attempts    []attempt
	lessons     []lessonRow
	assignments []api.Assignment
	submissions map[submissionKey]*api.Submission
	messages    []messageRow
	quizzes     []quizRow
	quizQs      map[int][]api.AuthoredQuestion

	nextID int
}

func (s *store) id() int {
	s.nextID++
	return s.nextID
}

func (s *store) stamp() string {
	return s.now().UTC().Format("2006-01-02T15:04:05")
}

func (s *store) userName(id int) string {
	for _, u := range s.students {
		if u.id == id {
			return u.name
		}
	}
	if id == s.coach.id {
		return s.coach.name
	}
	return ""
}

func (s *store) bankQuestion(id int) (api.AuthoredQuestion, bool) {
	for _, q := range s.bank {
		if q.ID == id {
			return q, true
		}
	}
	return api.AuthoredQuestion{}, false
}

func (s *store) manualQuestion(id int) (api.AuthoredQuestion, bool) {
	for _, qs := range s.quizQs {
		for _, q := range qs {
			if q.ID == id {
				return q, true
			}
		}
	}
	return api.AuthoredQuestion{}, false
}

type topicTally struct {
	correct int
	total   int
}

// topicStats aggregates bank attempts of a learner per topic, sorted by topic.
func (s *store) topicStats(userID int) ([]string, map[string]topicTally) {
	tallies := make(map[string]topicTally)
	for _, a := range s.attempts {
		if a.userID != userID || a.source != sourceBank {
			continue
		}
		q, ok := s.bankQuestion(a.questionID)
		if !ok {
			continue
		}
		t := tallies[q.Topic]
		t.total++
		if a.correct {
			t.correct++
		}
		tallies[q.Topic] = t
	}
	topics := make([]string, 0, len(tallies))
	for name := range tallies {
		topics = append(topics, name)
	}
	sort.Strings(topics)
	return topics, tallies
}

func percent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return correct * 100 / total
}

// progress computes the learner aggregate the dashboards show.
func (s *store) progress(userID int) api.Progress {
	topics, tallies := s.topicStats(userID)
	p := api.Progress{
		Strengths:  []string{},
		Weaknesses: []string{},
		TopicStats: make(map[string]api.TopicStat, len(topics)),
	}
	var correct int
	for _, name := range topics {
		t := tallies[name]
		acc := percent(t.correct, t.total)
		p.TopicStats[name] = api.TopicStat{Name: name, Accuracy: float64(acc), Correct: t.correct, Total: t.total}
		p.TotalAttempts += t.total
		correct += t.correct
		if acc >= 80 {
			p.Strengths = append(p.Strengths, name)
		}
		if acc <= 50 {
			p.Weaknesses = append(p.Weaknesses, name)
		}
	}
	p.OverallAccuracy = float64(percent(correct, p.TotalAttempts))
	p.TimeSpentMinutes = p.TotalAttempts * 2
	return p
}

func (s *store) learningPath(userID int) []api.PathItem {
	topics, tallies := s.topicStats(userID)
	path := make([]api.PathItem, 0, len(topics))
	for _, name := range topics {
		t := tallies[name]
		item := api.PathItem{TopicName: name}
		switch acc := percent(t.correct, t.total); {
		case acc >= 80:
			item.Mastery = "strong"
			item.Action = "Move to tougher problems and mixed-topic quizzes."
		case acc <= 50:
			item.Mastery = "weak"
			item.Action = "Revisit basics and complete easy-level quizzes."
		default:
			item.Mastery = "medium"
			item.Action = "Do a mix of revision and moderate problems."
		}
		path = append(path, item)
	}
	if len(path) == 0 {
		path = append(path, api.PathItem{
			TopicName: "No data yet",
			Mastery:   "unknown",
			Action:    "Start by taking your first smart quiz.",
		})
	}
	return path
}

func submissionID(assignmentID, studentID int) string {
	return strconv.Itoa(assignmentID) + "_" + strconv.Itoa(studentID)
}

func parseSubmissionID(id string) (submissionKey, bool) {
	a, st, ok := strings.Cut(id, "_")
	if !ok {
		return submissionKey{}, false
	}
	aid, err := strconv.Atoi(a)
	if err != nil {
		return submissionKey{}, false
	}
	sid, err := strconv.Atoi(st)
	if err != nil {
		return submissionKey{}, false
	}
	return submissionKey{assignment: aid, student: sid}, true
}
