// Package wizard implements the course-creation wizard state machine: the
// three-step orchestrator, the modal-driven content/quiz/question authoring
// flows, and the deep-link targeting that lets the handoff surface drive the
// wizard into a specific sub-state.
package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator"

	"course-studio/internal/analytics"
	"course-studio/internal/course"
	"course-studio/internal/logger"
)

// Step is one of the three linear wizard steps.
type Step int

const (
	StepInfo    Step = 1
	StepContent Step = 2
	StepReview  Step = 3
)

var (
	ErrCourseInfoIncomplete = errors.New("course info is incomplete")
	ErrSessionClosed        = errors.New("wizard session is closed")
)

// CourseInfo is the step-1 form. The four required fields gate forward
// navigation from the Info step.
type CourseInfo struct {
	Name               string `json:"name" validate:"required"`
	Category           string `json:"category" validate:"required"`
	Language           string `json:"language" validate:"required"`
	Description        string `json:"description" validate:"required"`
	Active             bool   `json:"active"`
	AllowQuit          bool   `json:"allow_quit"`
	AllowSkip          bool   `json:"allow_skip"`
	DisableCertificate bool   `json:"disable_certificate"`
}

var infoValidate = validator.New()

// Config carries the session dependencies and tunables.
type Config struct {
	Logger       *logger.Logger
	Tracker      analytics.Tracker
	UploadDelay  time.Duration
	HighlightTTL time.Duration
}

const (
	defaultUploadDelay  = 1500 * time.Millisecond
	defaultHighlightTTL = 5 * time.Second
)

// Session is one in-progress course draft. All exported methods are safe for
// concurrent use; a single mutex serializes every dispatch so draft mutations
// apply in dispatch order and a commit always observes the latest draft.
type Session struct {
	mu sync.Mutex

	id      string
	log     *logger.Logger
	tracker analytics.Tracker
	store   *course.Store

	uploadDelay  time.Duration
	highlightTTL time.Duration

	step      Step
	info      CourseInfo
	published bool
	closed    bool

	modal          ModalState
	targetLessonID string
	archiveKind    course.ContentType
	contentName    string
	quizName       string
	quizType       course.QuizType

	editingContentID string
	editingQuizType  course.QuizType
	questionDraft    course.Question
	questionErr      error

	uploading bool

	highlight    string
	highlightGen int
	lastTarget   string
}

// NewSession builds a session starting at the Info step with an empty store.
func NewSession(id string, cfg Config) *Session {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	var tracker analytics.Tracker = cfg.Tracker
	if tracker == nil {
		tracker = analytics.NopTracker{}
	}
	uploadDelay := cfg.UploadDelay
	if uploadDelay <= 0 {
		uploadDelay = defaultUploadDelay
	}
	highlightTTL := cfg.HighlightTTL
	if highlightTTL <= 0 {
		highlightTTL = defaultHighlightTTL
	}

	return &Session{
		id:           id,
		log:          log.With("session_id", id),
		tracker:      tracker,
		store:        course.NewStore(),
		uploadDelay:  uploadDelay,
		highlightTTL: highlightTTL,
		step:         StepInfo,
		info: CourseInfo{
			Active:    true,
			AllowQuit: true,
			AllowSkip: true,
		},
		questionDraft: course.NewQuestionDraft(),
	}
}

// ID returns the session identity.
func (s *Session) ID() string {
	return s.id
}

// Store exposes the authoring state store, mainly for tests and the CLI.
func (s *Session) Store() *course.Store {
	return s.store
}

// SetCourseInfo replaces the step-1 form values.
func (s *Session) SetCourseInfo(info CourseInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = info
}

// NextStep advances the wizard. Leaving the Info step requires the four
// required fields to be filled; leaving the Content step is never gated.
func (s *Session) NextStep() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case StepInfo:
		if err := infoValidate.Struct(s.info); err != nil {
			return ErrCourseInfoIncomplete
		}
		s.step = StepContent
	case StepContent:
		s.step = StepReview
	}
	return nil
}

// BackStep returns to the previous step, stopping at Info.
func (s *Session) BackStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > StepInfo {
		s.step--
	}
}

// JumpToStep moves directly to a step without re-validating earlier steps.
// The stepper control allows free navigation.
func (s *Session) JumpToStep(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if step < StepInfo {
		step = StepInfo
	}
	if step > StepReview {
		step = StepReview
	}
	s.step = step
}

// AddLesson appends a named lesson. Blank names are silently ignored.
func (s *Session) AddLesson(name string) string {
	id, ok := s.store.AddLesson(name)
	if !ok {
		return ""
	}
	s.tracker.Track("lesson_added", map[string]any{"lesson_id": id})
	return id
}

// Publish marks the draft as published. Review-step content is always
// publishable; there is no gating beyond reaching the step.
func (s *Session) Publish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.published = true
	s.tracker.Track("course_published", map[string]any{
		"session_id": s.id,
		"lessons":    s.store.LessonCount(),
	})
	return nil
}

// Close tears the session down. Outstanding deferred upload completions
// become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// State is a point-in-time snapshot of the session for rendering.
type State struct {
	SessionID      string             `json:"session_id"`
	Step           Step               `json:"step"`
	Info           CourseInfo         `json:"info"`
	Published      bool               `json:"published"`
	Lessons        []course.Lesson    `json:"lessons"`
	ModalOpen      bool               `json:"modal_open"`
	Modal          ModalState         `json:"modal_state,omitempty"`
	TargetLessonID string             `json:"target_lesson_id,omitempty"`
	ArchiveKind    course.ContentType `json:"archive_kind,omitempty"`
	ContentName    string             `json:"content_name,omitempty"`
	QuizName       string             `json:"quiz_name,omitempty"`
	QuizType       course.QuizType    `json:"quiz_type,omitempty"`
	EditingContent string             `json:"editing_content_id,omitempty"`
	QuestionDraft  course.Question    `json:"question_draft"`
	QuestionError  string             `json:"question_error,omitempty"`
	Uploading      bool               `json:"uploading"`
	Highlight      string             `json:"highlight,omitempty"`
}

// Snapshot returns the current wizard state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		SessionID:      s.id,
		Step:           s.step,
		Info:           s.info,
		Published:      s.published,
		Lessons:        s.store.Lessons(),
		ModalOpen:      s.modal != ModalClosed,
		Modal:          s.modal,
		TargetLessonID: s.targetLessonID,
		ArchiveKind:    s.archiveKind,
		ContentName:    s.contentName,
		QuizName:       s.quizName,
		QuizType:       s.quizType,
		EditingContent: s.editingContentID,
		QuestionDraft:  s.questionDraft,
		Uploading:      s.uploading,
		Highlight:      s.highlight,
	}
	if s.questionErr != nil {
		state.QuestionError = s.questionErr.Error()
	}
	return state
}
