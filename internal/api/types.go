package api

// Generation modes on the wire.
const (
	ModeSmart  = "smart"
	ModeManual = "manual"
)

// QuizQuestion is one generated question. The backend may include the
// correct option; the client never reads it.
type QuizQuestion struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	OptionA  string `json:"option_a"`
	OptionB  string `json:"option_b"`
	OptionC  string `json:"option_c"`
	OptionD  string `json:"option_d"`
}

// GenerateRequest is the body of a quiz generation call.
type GenerateRequest struct {
	Mode   string `json:"mode"`
	QuizID *int   `json:"quiz_id,omitempty"`
}

// SubmitAnswerRequest is the body of an answer submission.
type SubmitAnswerRequest struct {
	QuestionID     int    `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	Mode           string `json:"mode"`
}

// AnswerResult is the server's verdict on a submitted answer.
type AnswerResult struct {
	IsCorrect      bool   `json:"is_correct"`
	CorrectOption  string `json:"correct_option"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation,omitempty"`
}

// FixedSet is a coach-authored quiz available to learners.
type FixedSet struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	MentorName    string `json:"mentor_name,omitempty"`
	QuestionCount int    `json:"question_count"`
}

// Progress is the server-derived learner aggregate.
type Progress struct {
	OverallAccuracy  float64              `json:"overall_accuracy"`
	TotalAttempts    int                  `json:"total_attempts"`
	TimeSpentMinutes int                  `json:"time_spent_minutes"`
	Strengths        []string             `json:"strengths"`
	Weaknesses       []string             `json:"weaknesses"`
	TopicStats       map[string]TopicStat `json:"topic_stats"`
}

// TopicStat is per-topic accuracy inside Progress.
type TopicStat struct {
	Name     string  `json:"name"`
	Accuracy float64 `json:"accuracy"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
}

// PathItem is one learning-path recommendation.
type PathItem struct {
	TopicName string `json:"topic_name"`
	Mastery   string `json:"mastery"`
	Action    string `json:"action"`
}

// Lesson is a coach-authored lesson.
type Lesson struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	CreatedAt   string `json:"created_at,omitempty"`
	MentorName  string `json:"mentor_name,omitempty"`
}

// NewLesson is the body for creating a lesson.
type NewLesson struct {
	Title       string `json:"title"`
	Topic       string `json:"topic"`
	VideoURL    string `json:"video_url"`
	Description string `json:"description"`
}

// Assignment as seen by a learner (with their own submission) or a coach.
type Assignment struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DueDate     string      `json:"due_date"`
	Submission  *Submission `json:"submission,omitempty"`
}

// Submission is a learner's answer to an assignment.
type Submission struct {
	Content     string `json:"content"`
	SubmittedAt string `json:"submitted_at"`
	Feedback    string `json:"feedback"`
	Rating      *int   `json:"rating"`
}

// NewAssignment is the body for creating an assignment.
type NewAssignment struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// AssignmentAnswer is the body a learner posts to submit an assignment.
type AssignmentAnswer struct {
	AssignmentID int    `json:"assignment_id"`
	Content      string `json:"content"`
}

// StudentSubmission is one learner's submission as seen by a coach.
type StudentSubmission struct {
	SubmissionID string `json:"submission_id"`
	StudentID    int    `json:"student_id"`
	StudentName  string `json:"student_name"`
	Content      string `json:"content"`
	SubmittedAt  string `json:"submitted_at"`
	Feedback     string `json:"feedback"`
	Rating       *int   `json:"rating"`
}

// FeedbackRequest grades a submission.
type FeedbackRequest struct {
	SubmissionID string `json:"submission_id"`
	Feedback     string `json:"feedback"`
	Rating       *int   `json:"rating"`
}

// StudentPerformance summarizes a learner for the coach.
type StudentPerformance struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	OverallAccuracy float64  `json:"overall_accuracy"`
	TotalAttempts   int      `json:"total_attempts"`
	Weaknesses      []string `json:"weaknesses"`
}

// Message is a learner question addressed to the coach.
type Message struct {
	ID           int    `json:"id"`
	StudentName  string `json:"student_name"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
	CreatedAt    string `json:"created_at"`
	AnsweredAt   string `json:"answered_at"`
}

// MessageAnswer is the body a coach posts to answer a message.
type MessageAnswer struct {
	MessageID  int    `json:"message_id"`
	AnswerText string `json:"answer_text"`
}

// CoachQuiz is a fixed set as listed on the coach dashboard.
type CoachQuiz struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// NewQuiz is the body for creating a fixed set.
type NewQuiz struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AuthoredQuestion is a fixed-set question including its answer key.
type AuthoredQuestion struct {
	ID            int    `json:"id,omitempty"`
	Question      string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
	Topic         string `json:"topic,omitempty"`
}

// Status is the generic {"status": "..."} write acknowledgement.
type Status struct {
	Status string `json:"status"`
}
