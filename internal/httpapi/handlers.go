package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"

	"course-studio/internal/course"
	"course-studio/internal/wizard"
)

const (
	defaultPerPage     = 10
	defaultEventsLimit = 50
)

// HandleState returns the full wizard snapshot for the caller's session.
func (a *API) HandleState(w http.ResponseWriter, r *http.Request) {
	session := a.wizardSession(w, r)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleCourseInfo replaces the step-1 form values.
func (a *API) HandleCourseInfo(w http.ResponseWriter, r *http.Request) {
	var info wizard.CourseInfo
	if !decodeJSON(w, r, &info) {
		return
	}

	session := a.wizardSession(w, r)
	session.SetCourseInfo(info)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleStepNext(w http.ResponseWriter, r *http.Request) {
	session := a.wizardSession(w, r)
	if err := session.NextStep(); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleStepBack(w http.ResponseWriter, r *http.Request) {
	session := a.wizardSession(w, r)
	session.BackStep()
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleStepJump moves directly to a step without re-validating earlier
// steps; the stepper control allows free navigation.
func (a *API) HandleStepJump(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "step must be a number"})
		return
	}

	session := a.wizardSession(w, r)
	session.JumpToStep(wizard.Step(step))
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleAddLesson(w http.ResponseWriter, r *http.Request) {
	var request addLessonRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	session := a.wizardSession(w, r)
	lessonID := session.AddLesson(request.Name)
	writeJSON(w, http.StatusOK, addLessonResponse{LessonID: lessonID})
}

func (a *API) HandlePublish(w http.ResponseWriter, r *http.Request) {
	session := a.wizardSession(w, r)
	if err := session.Publish(); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleOpenContentModal(w http.ResponseWriter, r *http.Request) {
	var request openContentModalRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	session := a.wizardSession(w, r)
	session.OpenContentModal(request.LessonID)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleOpenQuestionModal(w http.ResponseWriter, r *http.Request) {
	var request openQuestionModalRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	session := a.wizardSession(w, r)
	session.OpenQuestionModal(request.ContentID)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleModalEvent dispatches one event of the modal state machine.
func (a *API) HandleModalEvent(w http.ResponseWriter, r *http.Request) {
	var request modalEventRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	session := a.wizardSession(w, r)

	var err error
	switch request.Action {
	case "chooseFile":
		err = session.ChooseFile()
	case "chooseQuiz":
		err = session.ChooseQuiz()
	case "chooseArchive":
		err = session.ChooseArchiveKind(course.ContentType(request.Kind))
	case "chooseQuizType":
		err = session.ChooseQuizType(course.QuizType(request.QuizType))
	case "back":
		session.Back()
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown modal action"})
		return
	}

	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleCloseModal(w http.ResponseWriter, r *http.Request) {
	session := a.wizardSession(w, r)
	session.CloseModal()
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleSaveContent(w http.ResponseWriter, r *http.Request) {
	var request saveContentRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	session := a.wizardSession(w, r)
	session.SetContentName(request.Name)
	if err := session.SaveContent(); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleSaveQuiz(w http.ResponseWriter, r *http.Request) {
	var request saveQuizRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	session := a.wizardSession(w, r)
	session.SetQuizName(request.Name)
	if err := session.SaveQuiz(); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleQuestionDraft applies partial edits to the question draft.
func (a *API) HandleQuestionDraft(w http.ResponseWriter, r *http.Request) {
	var request questionDraftRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	session := a.wizardSession(w, r)
	if request.Text != nil {
		session.SetQuestionText(*request.Text)
	}
	if request.Type != nil {
		session.SetQuestionType(course.QuestionType(*request.Type))
	}
	if request.NPSScale != nil {
		session.SetNPSScale(course.NPSScale(*request.NPSScale))
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleAddOption(w http.ResponseWriter, r *http.Request) {
	session := a.wizardSession(w, r)
	session.AddOption()
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleUpdateOption(w http.ResponseWriter, r *http.Request) {
	var request optionUpdateRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	optionID := chi.URLParam(r, "optionID")
	session := a.wizardSession(w, r)
	if request.Text != nil {
		session.SetOptionText(optionID, *request.Text)
	}
	if request.Correct != nil && *request.Correct {
		session.MarkCorrectOption(optionID)
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleRemoveOption(w http.ResponseWriter, r *http.Request) {
	session := a.wizardSession(w, r)
	session.RemoveOption(chi.URLParam(r, "optionID"))
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (a *API) HandleSaveQuestion(w http.ResponseWriter, r *http.Request) {
	session := a.wizardSession(w, r)
	if err := session.SaveQuestion(); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleDeepLink is the inbound callback of the handoff surface: it applies
// a symbolic target to the caller's wizard session.
func (a *API) HandleDeepLink(w http.ResponseWriter, r *http.Request) {
	var request deepLinkRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	target := strings.TrimSpace(request.Target)
	if target == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "target is required"})
		return
	}

	session := a.wizardSession(w, r)
	session.ApplyTarget(target)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// HandleStoryMap loads and parses the roadmap document. A fetch failure is a
// page-level error of the handoff surface; the wizard is untouched.
func (a *API) HandleStoryMap(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("path"))
	if ref == "" {
		ref = a.roadmap
	}

	storyMap, err := a.loader.LoadStoryMap(r.Context(), ref)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, storyMap)
}

func (a *API) HandleCourses(w http.ResponseWriter, r *http.Request) {
	page, err := parseIntParam(r, "page", 1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	perPage, err := parseIntParam(r, "per_page", defaultPerPage)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	courses, total := a.catalog.Page(page, perPage)
	writeJSON(w, http.StatusOK, coursesResponse{
		Courses: courses,
		Page:    page,
		PerPage: perPage,
		Total:   total,
	})
}

func (a *API) HandleCourseSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.catalog.Summary())
}

// HandleEvents lists recently captured analytics events, newest first.
func (a *API) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if a.recorder == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "event recording is disabled"})
		return
	}

	limit, err := parseIntParam(r, "limit", defaultEventsLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	events, err := a.recorder.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
