package demo

import (
	"time"

	"github.com/abhisek/tutordesk/internal/api"
)

func bankQ(id int, topic, question, a, b, c, d, correct string) api.AuthoredQuestion {
	return api.AuthoredQuestion{
		ID: id, Topic: topic, Question: question,
		OptionA: a, OptionB: b, OptionC: c, OptionD: d,
		CorrectOption: correct,
	}
}

// newStore seeds the demo data: a Python question bank, three assignments,
// one coach-authored fixed set and a peer learner with some history.
func newStore(now func() time.Time) *store {
	s := &store{
		now:         now,
		coach:       user{id: CoachID, name: "Demo Coach"},
		students:    []user{{id: LearnerID, name: "Demo Learner"}, {id: peerID, name: "Riya"}},
		submissions: make(map[submissionKey]*api.Submission),
		quizQs:      make(map[int][]api.AuthoredQuestion),
		nextID:      100,
	}

	s.bank = []api.AuthoredQuestion{
		bankQ(1, "Variables", "What is the correct way to declare a variable in Python?", "int x = 5", "x := 5", "x = 5", "declare x = 5", "c"),
		bankQ(2, "Variables", "Which of these is a valid variable name in Python?", "2value", "value_2", "value-2", "value 2", "b"),
		bankQ(3, "Loops", "Which loop is commonly used to iterate over a sequence in Python?", "for", "while", "repeat", "loop", "a"),
		bankQ(4, "Loops", "What does range(5) generate?", "0 to 4", "1 to 5", "0 to 5", "1 to 4", "a"),
		bankQ(5, "Functions", "Which keyword is used to define a function in Python?", "func", "function", "def", "lambda", "c"),
		bankQ(6, "Functions", "What is the correct way to call a function named foo with no arguments?", "call foo()", "foo", "foo()", "foo[]", "c"),
		bankQ(7, "Conditions", "Which keyword is used for conditional branching in Python?", "if", "when", "case", "switch", "a"),
		bankQ(8, "Lists", "How do you append an element to a list in Python?", "list.add(x)", "list.append(x)", "add(list, x)", "push(list, x)", "b"),
		bankQ(9, "OOP", "What does OOP stand for?", "Object-Oriented Programming", "Open Operational Process", "Object Original Protocol", "Optional Object Processing", "a"),
	}

	s.assignments = []api.Assignment{
		{ID: 1, Title: "M1: Variables Practice", Description: "Write 5 Python programs using variables and print their values.", DueDate: "2025-12-31"},
		{ID: 2, Title: "M2: Loops Practice", Description: "Solve 3 problems using for and while loops.", DueDate: "2025-12-31"},
		{ID: 3, Title: "M3: Functions Mini-Project", Description: "Create a small menu-driven program using functions.", DueDate: "2025-12-31"},
	}

	quizID := s.id()
	s.quizzes = append(s.quizzes, quizRow{
		CoachQuiz: api.CoachQuiz{ID: quizID, Title: "Python Basics Check", Description: "Warm-up set", CreatedAt: s.stamp()},
		createdBy: CoachID,
	})
	s.quizQs[quizID] = []api.AuthoredQuestion{
		{ID: s.id(), Question: "What is 2 + 2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectOption: "b", Topic: "Arithmetic"},
		{ID: s.id(), Question: "Which type is [1, 2, 3]?", OptionA: "tuple", OptionB: "set", OptionC: "list", OptionD: "dict", CorrectOption: "c", Topic: "Lists"},
	}

	s.lessons = append(s.lessons, lessonRow{
		Lesson: api.Lesson{
			ID: s.id(), Title: "Loops in 10 minutes", Topic: "Loops",
			Description: "for, while and range() with examples.",
			VideoURL:    "https://example.com/loops",
			CreatedAt:   s.stamp(), MentorName: s.coach.name,
		},
		createdBy: CoachID,
	})

	s.attempts = append(s.attempts,
		attempt{userID: peerID, questionID: 3, correct: true, source: sourceBank},
		attempt{userID: peerID, questionID: 4, correct: false, source: sourceBank},
		attempt{userID: peerID, questionID: 5, correct: false, source: sourceBank},
	)

	s.messages = append(s.messages, messageRow{
		Message: api.Message{
			ID: s.id(), StudentName: "Riya",
			QuestionText: "When should I use a while loop instead of for?",
			CreatedAt:    s.stamp(),
		},
		studentID: peerID,
	})
	return s
}
