package wizard

import (
	"errors"
	"strings"
	"time"

	"course-studio/internal/course"
)

// ModalState names the creation-dialog states. ModalClosed means no dialog is
// visible; every draft field is void once the modal closes.
type ModalState string

const (
	ModalClosed      ModalState = ""
	ModalType        ModalState = "type"
	ModalArchiveType ModalState = "archiveType"
	ModalUpload      ModalState = "upload"
	ModalQuizType    ModalState = "quizType"
	ModalQuizName    ModalState = "quizName"
	ModalAddQuestion ModalState = "addQuestion"
)

var (
	ErrInvalidModalState = errors.New("action not valid in the current modal state")
	ErrNameRequired      = errors.New("name is required")
)

// OpenContentModal opens the creation dialog at the category-selection state
// for the given lesson.
func (s *Session) OpenContentModal(lessonID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetDraftsLocked()
	s.targetLessonID = lessonID
	s.modal = ModalType
}

// OpenQuestionModal opens the question-authoring dialog for the given quiz
// content. Unknown or non-quiz ids are ignored; a stale id means the caller
// rendered from an already superseded snapshot.
func (s *Session) OpenQuestionModal(contentID string) {
	content, ok := s.store.FindContent(contentID)
	if !ok || !content.IsQuiz() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetDraftsLocked()
	s.editingContentID = content.ID
	s.editingQuizType = content.Quiz.Type
	s.questionDraft = course.NewQuestionDraft()
	s.modal = ModalAddQuestion
}

// ChooseFile moves from category selection to file-kind selection.
func (s *Session) ChooseFile() error {
	return s.transition(ModalType, ModalArchiveType)
}

// ChooseQuiz moves from category selection to quiz-type selection.
func (s *Session) ChooseQuiz() error {
	return s.transition(ModalType, ModalQuizType)
}

// ChooseArchiveKind records the selected file kind and moves to the upload
// form.
func (s *Session) ChooseArchiveKind(kind course.ContentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalArchiveType {
		return ErrInvalidModalState
	}
	switch kind {
	case course.ContentVideo, course.ContentImage, course.ContentPodcast, course.ContentPDF:
	default:
		return ErrInvalidModalState
	}

	s.archiveKind = kind
	s.modal = ModalUpload
	return nil
}

// ChooseQuizType records evaluation/survey and moves to the quiz-name form.
func (s *Session) ChooseQuizType(quizType course.QuizType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalQuizType {
		return ErrInvalidModalState
	}
	if quizType != course.QuizEvaluation && quizType != course.QuizSurvey {
		return ErrInvalidModalState
	}

	s.quizType = quizType
	s.modal = ModalQuizName
	return nil
}

// Back returns to the immediately preceding modal state. Each state has a
// single predecessor; addQuestion is entered directly and has none.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.modal {
	case ModalArchiveType, ModalQuizType:
		s.modal = ModalType
	case ModalUpload:
		s.modal = ModalArchiveType
	case ModalQuizName:
		s.modal = ModalQuizType
	}
}

// CloseModal discards the working draft. No partial state survives a close.
func (s *Session) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetDraftsLocked()
}

// SetContentName updates the upload-form draft name.
func (s *Session) SetContentName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal == ModalUpload {
		s.contentName = name
	}
}

// SetQuizName updates the quiz-name draft.
func (s *Session) SetQuizName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal == ModalQuizName {
		s.quizName = name
	}
}

// SaveContent commits the upload form: the modal closes immediately and the
// content lands in the lesson after the simulated upload delay. If the
// session is torn down or the lesson disappears before the delay elapses the
// completion is a harmless no-op.
func (s *Session) SaveContent() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalUpload {
		return ErrInvalidModalState
	}

	name := strings.TrimSpace(s.contentName)
	if name == "" {
		return ErrNameRequired
	}
	if s.targetLessonID == "" {
		return ErrInvalidModalState
	}

	lessonID := s.targetLessonID
	kind := s.archiveKind
	if kind == "" {
		kind = course.ContentImage
	}

	s.uploading = true
	s.resetDraftsLocked()

	time.AfterFunc(s.uploadDelay, func() {
		s.completeUpload(lessonID, kind, name)
	})
	return nil
}

func (s *Session) completeUpload(lessonID string, kind course.ContentType, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploading = false
	if s.closed {
		return
	}

	content := course.NewMediaContent(kind, name)
	// The store ignores stale lesson ids, so a lesson removed mid-upload
	// cannot crash the completion.
	s.store.AppendContent(lessonID, content)
	s.tracker.Track("content_saved", map[string]any{
		"lesson_id":    lessonID,
		"content_id":   content.ID,
		"content_type": string(kind),
	})
	s.log.Debug("upload completed", "lesson_id", lessonID, "content_id", content.ID)
}

// SaveQuiz commits a quiz content with an empty question list and closes the
// modal.
func (s *Session) SaveQuiz() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalQuizName {
		return ErrInvalidModalState
	}

	name := strings.TrimSpace(s.quizName)
	if name == "" {
		return ErrNameRequired
	}
	if s.targetLessonID == "" || s.quizType == "" {
		return ErrInvalidModalState
	}

	content := course.NewQuizContent(name, s.quizType)
	s.store.AppendContent(s.targetLessonID, content)
	s.tracker.Track("quiz_created", map[string]any{
		"lesson_id": s.targetLessonID,
		"quiz_id":   content.ID,
		"quiz_type": string(s.quizType),
	})
	s.resetDraftsLocked()
	return nil
}

// SetQuestionText updates the question draft prompt.
func (s *Session) SetQuestionText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.modal == ModalAddQuestion {
		s.questionDraft.Text = text
	}
}

// SetQuestionType switches the draft between multiple choice, open text and
// NPS.
func (s *Session) SetQuestionType(questionType course.QuestionType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalAddQuestion {
		return
	}
	switch questionType {
	case course.QuestionMultipleChoice, course.QuestionOpenText, course.QuestionNPS:
		s.questionDraft.Type = questionType
	}
}

// SetNPSScale selects the NPS scale; only meaningful on NPS questions.
func (s *Session) SetNPSScale(scale course.NPSScale) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalAddQuestion {
		return
	}
	if scale == course.NPSScale1To5 || scale == course.NPSScale1To10 {
		s.questionDraft.NPSScale = scale
	}
}

// SetOptionText updates one option of the draft.
func (s *Session) SetOptionText(optionID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalAddQuestion {
		return
	}
	for idx := range s.questionDraft.Options {
		if s.questionDraft.Options[idx].ID == optionID {
			s.questionDraft.Options[idx].Text = text
			return
		}
	}
}

// MarkCorrectOption marks exactly one option as correct.
func (s *Session) MarkCorrectOption(optionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalAddQuestion {
		return
	}
	for idx := range s.questionDraft.Options {
		s.questionDraft.Options[idx].IsCorrect = s.questionDraft.Options[idx].ID == optionID
	}
}

// AddOption appends a blank option up to the maximum of five.
func (s *Session) AddOption() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalAddQuestion {
		return
	}
	if len(s.questionDraft.Options) >= course.MaxOptions {
		return
	}
	s.questionDraft.Options = append(s.questionDraft.Options, course.Option{ID: course.NewID()})
}

// RemoveOption deletes an option down to the minimum of two.
func (s *Session) RemoveOption(optionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalAddQuestion {
		return
	}
	if len(s.questionDraft.Options) <= course.MinOptions {
		return
	}
	for idx := range s.questionDraft.Options {
		if s.questionDraft.Options[idx].ID == optionID {
			s.questionDraft.Options = append(
				s.questionDraft.Options[:idx],
				s.questionDraft.Options[idx+1:]...,
			)
			return
		}
	}
}

// SaveQuestion validates the draft and, on success, commits it to the owning
// quiz and closes the modal. On failure the modal stays open with a single
// error message and the store is untouched.
func (s *Session) SaveQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != ModalAddQuestion {
		return ErrInvalidModalState
	}

	s.questionErr = nil
	if err := course.ValidateQuestion(s.questionDraft, s.editingQuizType); err != nil {
		s.questionErr = err
		return err
	}

	question := s.questionDraft
	question.ID = course.NewID()
	s.store.AppendQuestion(s.editingContentID, question)
	s.tracker.Track("question_saved", map[string]any{
		"content_id":    s.editingContentID,
		"question_id":   question.ID,
		"question_type": string(question.Type),
	})
	s.resetDraftsLocked()
	return nil
}

func (s *Session) transition(from, to ModalState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.modal != from {
		return ErrInvalidModalState
	}
	s.modal = to
	return nil
}

// resetDraftsLocked closes the modal and voids every draft field. Callers
// must hold s.mu.
func (s *Session) resetDraftsLocked() {
	s.modal = ModalClosed
	s.targetLessonID = ""
	s.archiveKind = ""
	s.contentName = ""
	s.quizName = ""
	s.quizType = ""
	s.editingContentID = ""
	s.editingQuizType = ""
	s.questionDraft = course.NewQuestionDraft()
	s.questionErr = nil
}
