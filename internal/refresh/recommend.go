package refresh

import (
	"strings"

	"github.com/abhisek/tutordesk/internal/api"
)

// Recommendation is a lesson suggestion derived from a progress snapshot.
type Recommendation struct {
	Title   string
	Lead    string
	Topics  []string
	Advice  string
	Focused bool // true for weaknesses
}

// Summary joins the topics for display.
func (r Recommendation) Summary() string {
	return strings.Join(r.Topics, ", ")
}

// Recommend derives lesson suggestions from p: a focus card when there are
// weaknesses, then a strength card when there are strengths.
func Recommend(p *api.Progress) []Recommendation {
	if p == nil {
		return nil
	}
	var out []Recommendation
	if len(p.Weaknesses) > 0 {
		out = append(out, Recommendation{
			Title:   "Focus Zone",
			Lead:    "These topics need revision:",
			Topics:  append([]string(nil), p.Weaknesses...),
			Advice:  "Recommended: Revisit basics and do smart quizzes focusing on these topics.",
			Focused: true,
		})
	}
	if len(p.Strengths) > 0 {
		out = append(out, Recommendation{
			Title:  "Strength Boost",
			Lead:   "You are good at:",
			Topics: append([]string(nil), p.Strengths...),
			Advice: "Recommended: Try mixed-topic smart quizzes and mentor-created manual quizzes.",
		})
	}
	return out
}
