package course

import (
	"errors"
	"strings"
)

var (
	ErrQuestionTextRequired = errors.New("describe the question")
	ErrTooFewOptions        = errors.New("at least 2 options required")
	ErrNoCorrectOption      = errors.New("select the correct option for an evaluative quiz")
)

// ValidateQuestion gates the commit of a question draft into a quiz of the
// given type. Rules run in order and the first failure wins, so the modal
// shows a single message at a time.
func ValidateQuestion(question Question, quizType QuizType) error {
	if strings.TrimSpace(question.Text) == "" {
		return ErrQuestionTextRequired
	}

	if question.Type != QuestionMultipleChoice {
		// Open-text and NPS questions only need a prompt.
		return nil
	}

	filled := 0
	for _, option := range question.Options {
		if strings.TrimSpace(option.Text) != "" {
			filled++
		}
	}
	if filled < MinOptions {
		return ErrTooFewOptions
	}

	if quizType == QuizEvaluation {
		hasCorrect := false
		for _, option := range question.Options {
			if option.IsCorrect {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			return ErrNoCorrectOption
		}
	}

	return nil
}
