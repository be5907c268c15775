package course

import (
	"time"

	"github.com/google/uuid"
)

// ContentType discriminates the deliverable kinds a lesson can carry.
type ContentType string

const (
	ContentImage   ContentType = "image"
	ContentVideo   ContentType = "video"
	ContentPodcast ContentType = "podcast"
	ContentPDF     ContentType = "pdf"
	ContentLink    ContentType = "link"
	ContentQuiz    ContentType = "quiz"
)

// DeliveryPeriod is the slot of day a content is delivered in.
type DeliveryPeriod string

const (
	PeriodMorning   DeliveryPeriod = "Morning"
	PeriodAfternoon DeliveryPeriod = "Afternoon"
	PeriodEvening   DeliveryPeriod = "Evening"
)

type QuizType string

const (
	QuizEvaluation QuizType = "evaluation"
	QuizSurvey     QuizType = "survey"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multipleChoice"
	QuestionOpenText       QuestionType = "openText"
	QuestionNPS            QuestionType = "nps"
)

// NPSScale is only meaningful for NPS questions.
type NPSScale string

const (
	NPSScale1To5  NPSScale = "1-5"
	NPSScale1To10 NPSScale = "1-10"
)

const (
	// MinOptions and MaxOptions bound the option list of a multiple-choice draft.
	MinOptions = 2
	MaxOptions = 5

	defaultDeliveryDelay = "1 day after enrollment"
)

type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"question_type"`
	NPSScale NPSScale     `json:"nps_scale,omitempty"`
	Options  []Option     `json:"options"`
}

// QuizDetails is present on a Content if and only if its type is quiz, which
// makes the "questions only on quizzes" rule structural instead of implied.
type QuizDetails struct {
	Type      QuizType   `json:"quiz_type"`
	Questions []Question `json:"questions"`
}

type Content struct {
	ID             string         `json:"id"`
	Type           ContentType    `json:"type"`
	Name           string         `json:"name"`
	UploadDate     time.Time      `json:"upload_date"`
	DeliveryDelay  string         `json:"delivery_delay"`
	DeliveryPeriod DeliveryPeriod `json:"delivery_period"`
	Quiz           *QuizDetails   `json:"quiz,omitempty"`
}

// IsQuiz reports whether the content carries quiz details.
func (c Content) IsQuiz() bool {
	return c.Type == ContentQuiz && c.Quiz != nil
}

type Lesson struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Contents []Content `json:"contents"`
}

// NewMediaContent builds a committed non-quiz content with the default
// delivery schedule the authoring flow assigns on save.
func NewMediaContent(contentType ContentType, name string) Content {
	return Content{
		ID:             NewID(),
		Type:           contentType,
		Name:           name,
		UploadDate:     time.Now().UTC(),
		DeliveryDelay:  defaultDeliveryDelay,
		DeliveryPeriod: PeriodMorning,
	}
}

// NewQuizContent builds a committed quiz content with an empty question list.
func NewQuizContent(name string, quizType QuizType) Content {
	return Content{
		ID:             NewID(),
		Type:           ContentQuiz,
		Name:           name,
		UploadDate:     time.Now().UTC(),
		DeliveryDelay:  defaultDeliveryDelay,
		DeliveryPeriod: PeriodMorning,
		Quiz: &QuizDetails{
			Type:      quizType,
			Questions: []Question{},
		},
	}
}

// NewQuestionDraft is the working draft every question authoring session
// starts from: multiple choice, default NPS scale, exactly two blank options.
func NewQuestionDraft() Question {
	return Question{
		Type:     QuestionMultipleChoice,
		NPSScale: NPSScale1To10,
		Options: []Option{
			{ID: NewID()},
			{ID: NewID()},
		},
	}
}

// NewID returns a fresh entity identity.
func NewID() string {
	return uuid.NewString()
}
