package wizard

import (
	"errors"
	"testing"
	"time"

	"course-studio/internal/course"
)

func sessionWithLesson(t *testing.T, tracker *fakeTracker) (*Session, string) {
	t.Helper()
	session := newTestSession(tracker)
	lessonID := session.AddLesson("Week 1")
	if lessonID == "" {
		t.Fatalf("failed to seed a lesson")
	}
	return session, lessonID
}

func sessionWithQuiz(t *testing.T, tracker *fakeTracker, quizType course.QuizType) (*Session, string) {
	t.Helper()
	session, lessonID := sessionWithLesson(t, tracker)

	session.OpenContentModal(lessonID)
	if err := session.ChooseQuiz(); err != nil {
		t.Fatalf("ChooseQuiz = %v", err)
	}
	if err := session.ChooseQuizType(quizType); err != nil {
		t.Fatalf("ChooseQuizType = %v", err)
	}
	session.SetQuizName("Checkpoint")
	if err := session.SaveQuiz(); err != nil {
		t.Fatalf("SaveQuiz = %v", err)
	}

	quizID := session.Store().Lessons()[0].Contents[0].ID
	return session, quizID
}

func waitForUpload(t *testing.T, session *Session) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if !session.Snapshot().Uploading {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("upload never completed")
}

func TestContentCreationFlow(t *testing.T) {
	tracker := &fakeTracker{}
	session, lessonID := sessionWithLesson(t, tracker)

	session.OpenContentModal(lessonID)
	if got := session.Snapshot().Modal; got != ModalType {
		t.Fatalf("modal after open = %q, want %q", got, ModalType)
	}

	if err := session.ChooseFile(); err != nil {
		t.Fatalf("ChooseFile = %v", err)
	}
	if err := session.ChooseArchiveKind(course.ContentVideo); err != nil {
		t.Fatalf("ChooseArchiveKind = %v", err)
	}
	session.SetContentName("  Orientation  ")

	if err := session.SaveContent(); err != nil {
		t.Fatalf("SaveContent = %v", err)
	}

	state := session.Snapshot()
	if state.ModalOpen {
		t.Fatalf("modal still open after save")
	}
	if !state.Uploading {
		t.Fatalf("expected an in-flight upload right after save")
	}
	if len(state.Lessons[0].Contents) != 0 {
		t.Fatalf("content committed before the upload delay elapsed")
	}

	waitForUpload(t, session)

	contents := session.Store().Lessons()[0].Contents
	if len(contents) != 1 {
		t.Fatalf("contents after upload = %d, want 1", len(contents))
	}
	if contents[0].Type != course.ContentVideo || contents[0].Name != "Orientation" {
		t.Fatalf("content = %+v, want the chosen kind and trimmed name", contents[0])
	}
	if tracker.count("content_saved") != 1 {
		t.Fatalf("content_saved events = %d, want 1", tracker.count("content_saved"))
	}
}

func TestSaveContentRequiresName(t *testing.T) {
	session, lessonID := sessionWithLesson(t, nil)

	session.OpenContentModal(lessonID)
	if err := session.ChooseFile(); err != nil {
		t.Fatalf("ChooseFile = %v", err)
	}
	if err := session.ChooseArchiveKind(course.ContentPDF); err != nil {
		t.Fatalf("ChooseArchiveKind = %v", err)
	}
	session.SetContentName("   ")

	if err := session.SaveContent(); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("SaveContent = %v, want ErrNameRequired", err)
	}
	if got := session.Snapshot().Modal; got != ModalUpload {
		t.Fatalf("modal after rejected save = %q, want %q", got, ModalUpload)
	}
}

func TestUploadCompletionIsNoOpAfterClose(t *testing.T) {
	tracker := &fakeTracker{}
	session, lessonID := sessionWithLesson(t, tracker)

	session.OpenContentModal(lessonID)
	if err := session.ChooseFile(); err != nil {
		t.Fatalf("ChooseFile = %v", err)
	}
	if err := session.ChooseArchiveKind(course.ContentImage); err != nil {
		t.Fatalf("ChooseArchiveKind = %v", err)
	}
	session.SetContentName("Diagram")
	if err := session.SaveContent(); err != nil {
		t.Fatalf("SaveContent = %v", err)
	}

	session.Close()
	waitForUpload(t, session)

	if got := len(session.Store().Lessons()[0].Contents); got != 0 {
		t.Fatalf("closed session still committed %d contents", got)
	}
	if tracker.count("content_saved") != 0 {
		t.Fatalf("closed session still tracked content_saved")
	}
}

func TestChooseArchiveKindRejectsNonMediaKinds(t *testing.T) {
	session, lessonID := sessionWithLesson(t, nil)
	session.OpenContentModal(lessonID)
	if err := session.ChooseFile(); err != nil {
		t.Fatalf("ChooseFile = %v", err)
	}

	for _, kind := range []course.ContentType{course.ContentLink, course.ContentQuiz, "archive"} {
		if err := session.ChooseArchiveKind(kind); !errors.Is(err, ErrInvalidModalState) {
			t.Fatalf("ChooseArchiveKind(%q) = %v, want ErrInvalidModalState", kind, err)
		}
	}
	if got := session.Snapshot().Modal; got != ModalArchiveType {
		t.Fatalf("modal after rejected kinds = %q, want %q", got, ModalArchiveType)
	}
}

func TestModalBackWalksSinglePredecessors(t *testing.T) {
	session, lessonID := sessionWithLesson(t, nil)

	session.OpenContentModal(lessonID)
	if err := session.ChooseFile(); err != nil {
		t.Fatalf("ChooseFile = %v", err)
	}
	if err := session.ChooseArchiveKind(course.ContentPodcast); err != nil {
		t.Fatalf("ChooseArchiveKind = %v", err)
	}

	session.Back()
	if got := session.Snapshot().Modal; got != ModalArchiveType {
		t.Fatalf("back from upload = %q, want %q", got, ModalArchiveType)
	}
	session.Back()
	if got := session.Snapshot().Modal; got != ModalType {
		t.Fatalf("back from archiveType = %q, want %q", got, ModalType)
	}

	if err := session.ChooseQuiz(); err != nil {
		t.Fatalf("ChooseQuiz = %v", err)
	}
	if err := session.ChooseQuizType(course.QuizSurvey); err != nil {
		t.Fatalf("ChooseQuizType = %v", err)
	}
	session.Back()
	if got := session.Snapshot().Modal; got != ModalQuizType {
		t.Fatalf("back from quizName = %q, want %q", got, ModalQuizType)
	}
	session.Back()
	if got := session.Snapshot().Modal; got != ModalType {
		t.Fatalf("back from quizType = %q, want %q", got, ModalType)
	}

	// Back on a closed modal stays closed.
	session.CloseModal()
	session.Back()
	if got := session.Snapshot().Modal; got != ModalClosed {
		t.Fatalf("back on closed modal = %q, want closed", got)
	}
}

func TestTransitionsRejectWrongStates(t *testing.T) {
	session, _ := sessionWithLesson(t, nil)

	if err := session.ChooseFile(); !errors.Is(err, ErrInvalidModalState) {
		t.Fatalf("ChooseFile with closed modal = %v, want ErrInvalidModalState", err)
	}
	if err := session.ChooseQuizType(course.QuizSurvey); !errors.Is(err, ErrInvalidModalState) {
		t.Fatalf("ChooseQuizType with closed modal = %v, want ErrInvalidModalState", err)
	}
	if err := session.SaveContent(); !errors.Is(err, ErrInvalidModalState) {
		t.Fatalf("SaveContent with closed modal = %v, want ErrInvalidModalState", err)
	}
	if err := session.SaveQuiz(); !errors.Is(err, ErrInvalidModalState) {
		t.Fatalf("SaveQuiz with closed modal = %v, want ErrInvalidModalState", err)
	}
	if err := session.SaveQuestion(); !errors.Is(err, ErrInvalidModalState) {
		t.Fatalf("SaveQuestion with closed modal = %v, want ErrInvalidModalState", err)
	}
}

func TestQuizCreationFlow(t *testing.T) {
	tracker := &fakeTracker{}
	session, quizID := sessionWithQuiz(t, tracker, course.QuizEvaluation)

	content, ok := session.Store().FindContent(quizID)
	if !ok || !content.IsQuiz() {
		t.Fatalf("quiz content missing after save")
	}
	if content.Quiz.Type != course.QuizEvaluation {
		t.Fatalf("quiz type = %q, want evaluation", content.Quiz.Type)
	}
	if len(content.Quiz.Questions) != 0 {
		t.Fatalf("new quiz has %d questions, want 0", len(content.Quiz.Questions))
	}
	if session.Snapshot().ModalOpen {
		t.Fatalf("modal still open after quiz save")
	}
	if tracker.count("quiz_created") != 1 {
		t.Fatalf("quiz_created events = %d, want 1", tracker.count("quiz_created"))
	}
}

func TestSaveQuizRequiresName(t *testing.T) {
	session, lessonID := sessionWithLesson(t, nil)

	session.OpenContentModal(lessonID)
	if err := session.ChooseQuiz(); err != nil {
		t.Fatalf("ChooseQuiz = %v", err)
	}
	if err := session.ChooseQuizType(course.QuizSurvey); err != nil {
		t.Fatalf("ChooseQuizType = %v", err)
	}
	session.SetQuizName("  ")

	if err := session.SaveQuiz(); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("SaveQuiz = %v, want ErrNameRequired", err)
	}
	if got := session.Snapshot().Modal; got != ModalQuizName {
		t.Fatalf("modal after rejected save = %q, want %q", got, ModalQuizName)
	}
}

func TestCloseModalDiscardsDraft(t *testing.T) {
	session, lessonID := sessionWithLesson(t, nil)

	session.OpenContentModal(lessonID)
	if err := session.ChooseFile(); err != nil {
		t.Fatalf("ChooseFile = %v", err)
	}
	if err := session.ChooseArchiveKind(course.ContentVideo); err != nil {
		t.Fatalf("ChooseArchiveKind = %v", err)
	}
	session.SetContentName("Orientation")

	session.CloseModal()

	state := session.Snapshot()
	if state.ModalOpen || state.ContentName != "" || state.ArchiveKind != "" || state.TargetLessonID != "" {
		t.Fatalf("drafts survived close: %+v", state)
	}

	// Reopening starts from scratch.
	session.OpenContentModal(lessonID)
	if got := session.Snapshot().Modal; got != ModalType {
		t.Fatalf("modal after reopen = %q, want %q", got, ModalType)
	}
}

func TestOpenQuestionModalIgnoresNonQuizTargets(t *testing.T) {
	session, lessonID := sessionWithLesson(t, nil)

	session.OpenContentModal(lessonID)
	if err := session.ChooseFile(); err != nil {
		t.Fatalf("ChooseFile = %v", err)
	}
	if err := session.ChooseArchiveKind(course.ContentImage); err != nil {
		t.Fatalf("ChooseArchiveKind = %v", err)
	}
	session.SetContentName("Diagram")
	if err := session.SaveContent(); err != nil {
		t.Fatalf("SaveContent = %v", err)
	}
	waitForUpload(t, session)

	mediaID := session.Store().Lessons()[0].Contents[0].ID
	session.OpenQuestionModal(mediaID)
	if session.Snapshot().ModalOpen {
		t.Fatalf("question modal opened for a media content")
	}

	session.OpenQuestionModal("missing")
	if session.Snapshot().ModalOpen {
		t.Fatalf("question modal opened for an unknown id")
	}
}

func TestQuestionAuthoringFlow(t *testing.T) {
	tracker := &fakeTracker{}
	session, quizID := sessionWithQuiz(t, tracker, course.QuizEvaluation)

	session.OpenQuestionModal(quizID)
	if got := session.Snapshot().Modal; got != ModalAddQuestion {
		t.Fatalf("modal after open = %q, want %q", got, ModalAddQuestion)
	}

	session.SetQuestionText("Which layer handles routing?")
	draft := session.Snapshot().QuestionDraft
	session.SetOptionText(draft.Options[0].ID, "Transport")
	session.SetOptionText(draft.Options[1].ID, "Network")
	session.MarkCorrectOption(draft.Options[1].ID)

	if err := session.SaveQuestion(); err != nil {
		t.Fatalf("SaveQuestion = %v", err)
	}

	content, _ := session.Store().FindContent(quizID)
	if len(content.Quiz.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(content.Quiz.Questions))
	}
	question := content.Quiz.Questions[0]
	if question.ID == "" {
		t.Fatalf("committed question has no id")
	}
	if !question.Options[1].IsCorrect || question.Options[0].IsCorrect {
		t.Fatalf("correct marker = %+v, want only the second option", question.Options)
	}

	state := session.Snapshot()
	if state.ModalOpen {
		t.Fatalf("modal still open after successful save")
	}
	if state.QuestionDraft.Text != "" || len(state.QuestionDraft.Options) != 2 {
		t.Fatalf("draft not reset after save: %+v", state.QuestionDraft)
	}
	if tracker.count("question_saved") != 1 {
		t.Fatalf("question_saved events = %d, want 1", tracker.count("question_saved"))
	}
}

func TestSaveQuestionFailureKeepsModalOpen(t *testing.T) {
	session, quizID := sessionWithQuiz(t, nil, course.QuizEvaluation)

	session.OpenQuestionModal(quizID)
	session.SetQuestionText("Which layer handles routing?")
	draft := session.Snapshot().QuestionDraft
	session.SetOptionText(draft.Options[0].ID, "Transport")
	session.SetOptionText(draft.Options[1].ID, "Network")

	if err := session.SaveQuestion(); !errors.Is(err, course.ErrNoCorrectOption) {
		t.Fatalf("SaveQuestion = %v, want ErrNoCorrectOption", err)
	}

	state := session.Snapshot()
	if state.Modal != ModalAddQuestion {
		t.Fatalf("modal after rejected save = %q, want %q", state.Modal, ModalAddQuestion)
	}
	if state.QuestionDraft.Text != "Which layer handles routing?" {
		t.Fatalf("draft text lost after rejected save: %q", state.QuestionDraft.Text)
	}
	if content, _ := session.Store().FindContent(quizID); len(content.Quiz.Questions) != 0 {
		t.Fatalf("store changed by a rejected save")
	}

	// Fixing the draft clears the error on the next save.
	session.MarkCorrectOption(draft.Options[0].ID)
	if err := session.SaveQuestion(); err != nil {
		t.Fatalf("SaveQuestion after fix = %v", err)
	}
	if got := session.Snapshot().QuestionError; got != "" {
		t.Fatalf("question error not cleared: %q", got)
	}
}

func TestCancelledQuestionLeavesQuizUnchanged(t *testing.T) {
	session, quizID := sessionWithQuiz(t, nil, course.QuizEvaluation)

	session.OpenQuestionModal(quizID)
	session.SetQuestionText("Never committed")
	draft := session.Snapshot().QuestionDraft
	session.SetOptionText(draft.Options[0].ID, "A")
	session.SetOptionText(draft.Options[1].ID, "B")

	session.CloseModal()

	content, _ := session.Store().FindContent(quizID)
	if len(content.Quiz.Questions) != 0 {
		t.Fatalf("cancelled draft reached the store: %+v", content.Quiz.Questions)
	}
	state := session.Snapshot()
	if state.ModalOpen || state.QuestionDraft.Text != "" {
		t.Fatalf("draft survived cancel: %+v", state.QuestionDraft)
	}
}

func TestSurveyQuizSkipsCorrectnessRule(t *testing.T) {
	session, quizID := sessionWithQuiz(t, nil, course.QuizSurvey)

	session.OpenQuestionModal(quizID)
	session.SetQuestionText("How useful was this module?")
	draft := session.Snapshot().QuestionDraft
	session.SetOptionText(draft.Options[0].ID, "Very")
	session.SetOptionText(draft.Options[1].ID, "Not at all")

	if err := session.SaveQuestion(); err != nil {
		t.Fatalf("survey SaveQuestion = %v, want nil", err)
	}
}

func TestOptionListBounds(t *testing.T) {
	session, quizID := sessionWithQuiz(t, nil, course.QuizEvaluation)
	session.OpenQuestionModal(quizID)

	for i := 0; i < 10; i++ {
		session.AddOption()
	}
	draft := session.Snapshot().QuestionDraft
	if len(draft.Options) != course.MaxOptions {
		t.Fatalf("options after repeated add = %d, want %d", len(draft.Options), course.MaxOptions)
	}

	for _, option := range draft.Options {
		session.RemoveOption(option.ID)
	}
	draft = session.Snapshot().QuestionDraft
	if len(draft.Options) != course.MinOptions {
		t.Fatalf("options after repeated remove = %d, want %d", len(draft.Options), course.MinOptions)
	}
}

func TestMarkCorrectOptionIsExclusive(t *testing.T) {
	session, quizID := sessionWithQuiz(t, nil, course.QuizEvaluation)
	session.OpenQuestionModal(quizID)

	draft := session.Snapshot().QuestionDraft
	session.MarkCorrectOption(draft.Options[0].ID)
	session.MarkCorrectOption(draft.Options[1].ID)

	draft = session.Snapshot().QuestionDraft
	if draft.Options[0].IsCorrect {
		t.Fatalf("first option still marked correct")
	}
	if !draft.Options[1].IsCorrect {
		t.Fatalf("second option not marked correct")
	}
}

func TestDraftSettersIgnoredOutsideQuestionModal(t *testing.T) {
	session, _ := sessionWithQuiz(t, nil, course.QuizEvaluation)

	session.SetQuestionText("orphan edit")
	session.AddOption()

	draft := session.Snapshot().QuestionDraft
	if draft.Text != "" || len(draft.Options) != 2 {
		t.Fatalf("draft mutated while modal closed: %+v", draft)
	}
}
