package wizard

import (
	"time"

	"course-studio/internal/course"
)

// Deep-link tokens emitted by the handoff documentation surface.
const (
	TargetQuizEval      = "quiz-eval"
	TargetNPS           = "nps"
	TargetWhatsApp      = "whatsapp"
	TargetAddQuestion   = "add-question"
	TargetNextStep2     = "next-step2"
	TargetPublishCourse = "publish-course"
	TargetResult        = "result"
)

// ApplyTarget translates a deep-link token into a wizard jump plus a
// transient highlight. Application is edge-triggered: while a token stays the
// current one its effects never fire twice, regardless of how often the
// surface repeats it, so concurrent lesson additions cannot retrigger the
// jump. Once the highlight decays the same token may be applied again.
func (s *Session) ApplyTarget(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if target == "" || target == s.lastTarget || s.closed {
		return
	}
	s.lastTarget = target

	switch target {
	case TargetQuizEval:
		s.step = StepContent
		// Jump straight to naming an evaluation quiz, one save away from a
		// committed quiz. Needs a lesson to attach to.
		if lessonID, ok := s.store.FirstLessonID(); ok {
			s.resetDraftsLocked()
			s.targetLessonID = lessonID
			s.quizType = course.QuizEvaluation
			s.modal = ModalQuizName
		}
		s.setHighlightLocked(target)

	case TargetNPS:
		s.step = StepContent
		if lessonID, ok := s.store.FirstLessonID(); ok {
			s.resetDraftsLocked()
			s.targetLessonID = lessonID
			s.quizType = course.QuizSurvey
			s.modal = ModalQuizName
		}
		s.setHighlightLocked(target)

	case TargetWhatsApp:
		s.step = StepContent
		// The highlight lands on the "Add Content" affordance, so the modal
		// must be out of the way.
		s.resetDraftsLocked()
		s.setHighlightLocked(target)

	case TargetAddQuestion:
		s.step = StepContent
		// No specific quiz instance is addressable from a token, so stop one
		// level short at quiz-type selection. Never steal an open modal.
		if s.modal == ModalClosed {
			if lessonID, ok := s.store.FirstLessonID(); ok {
				s.targetLessonID = lessonID
				s.modal = ModalQuizType
			}
		}

	case TargetNextStep2, TargetPublishCourse, TargetResult:
		s.step = StepReview
		if target == TargetResult {
			s.setHighlightLocked(target)
		}

	default:
		s.log.Debug("ignoring unknown deep-link target", "target", target)
		return
	}

	s.tracker.Track("deep_link_applied", map[string]any{"target": target})
}

// Highlight returns the current transient highlight marker, if any.
func (s *Session) Highlight() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlight
}

// setHighlightLocked assigns the highlight and schedules its decay. Every
// assignment bumps a generation number; an expiring timer only clears the
// highlight while its captured generation is still current, so a stale timer
// can never wipe a newer highlight. Callers must hold s.mu.
func (s *Session) setHighlightLocked(target string) {
	s.highlight = target
	s.highlightGen++
	gen := s.highlightGen

	time.AfterFunc(s.highlightTTL, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.highlightGen != gen {
			return
		}
		s.highlight = ""
		// Re-arm the token so the surface can apply it again later.
		s.lastTarget = ""
	})
}
