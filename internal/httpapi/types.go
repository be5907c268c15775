package httpapi

import (
	"course-studio/internal/catalog"
)

type errorResponse struct {
	Error string `json:"error"`
}

type addLessonRequest struct {
	Name string `json:"name"`
}

type addLessonResponse struct {
	LessonID string `json:"lesson_id,omitempty"`
}

type openContentModalRequest struct {
	LessonID string `json:"lesson_id"`
}

type openQuestionModalRequest struct {
	ContentID string `json:"content_id"`
}

// modalEventRequest mirrors the modal state machine's event table: an action
// plus the selection the action carries, if any.
type modalEventRequest struct {
	Action   string `json:"action"`
	Kind     string `json:"kind,omitempty"`
	QuizType string `json:"quiz_type,omitempty"`
}

type saveContentRequest struct {
	Name string `json:"name"`
}

type saveQuizRequest struct {
	Name string `json:"name"`
}

type questionDraftRequest struct {
	Text     *string `json:"text,omitempty"`
	Type     *string `json:"question_type,omitempty"`
	NPSScale *string `json:"nps_scale,omitempty"`
}

type optionUpdateRequest struct {
	Text    *string `json:"text,omitempty"`
	Correct *bool   `json:"correct,omitempty"`
}

type deepLinkRequest struct {
	Target string `json:"target"`
}

type coursesResponse struct {
	Courses []catalog.Course `json:"courses"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
	Total   int              `json:"total"`
}
