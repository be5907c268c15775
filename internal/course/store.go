package course

import (
	"strings"
	"sync"
)

// Store holds the ordered lessons of the course being authored. All state is
// in memory and scoped to a single editing session.
//
// Mutations replace the lesson slice instead of editing it in place, so a
// snapshot handed out before a mutation never changes under the caller.
// Append targets that no longer exist are ignored: the authoring UI is the
// sole writer and a stale id means the reference came from an already
// superseded render, not from corrupted state.
type Store struct {
	mu      sync.RWMutex
	lessons []Lesson
}

func NewStore() *Store {
	return &Store{lessons: []Lesson{}}
}

// AddLesson appends a new empty lesson and returns its id. Blank or
// whitespace-only names are ignored and return ok=false.
func (s *Store) AddLesson(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}

	lesson := Lesson{
		ID:       NewID(),
		Name:     name,
		Contents: []Content{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Lesson, 0, len(s.lessons)+1)
	next = append(next, s.lessons...)
	next = append(next, lesson)
	s.lessons = next

	return lesson.ID, true
}

// AppendContent appends content to the lesson with the given id. Unknown
// lesson ids are a no-op.
func (s *Store) AppendContent(lessonID string, content Content) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Lesson, len(s.lessons))
	copy(next, s.lessons)

	for idx := range next {
		if next[idx].ID != lessonID {
			continue
		}
		contents := make([]Content, 0, len(next[idx].Contents)+1)
		contents = append(contents, next[idx].Contents...)
		contents = append(contents, content)
		next[idx].Contents = contents
		s.lessons = next
		return
	}
}

// AppendQuestion locates the quiz content with the given id across all
// lessons and appends the question to it. Unknown ids and non-quiz contents
// are a no-op.
func (s *Store) AppendQuestion(contentID string, question Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Lesson, len(s.lessons))
	copy(next, s.lessons)

	for lessonIdx := range next {
		for contentIdx, content := range next[lessonIdx].Contents {
			if content.ID != contentID || !content.IsQuiz() {
				continue
			}

			contents := make([]Content, len(next[lessonIdx].Contents))
			copy(contents, next[lessonIdx].Contents)

			questions := make([]Question, 0, len(content.Quiz.Questions)+1)
			questions = append(questions, content.Quiz.Questions...)
			questions = append(questions, question)

			quiz := *content.Quiz
			quiz.Questions = questions
			contents[contentIdx].Quiz = &quiz

			next[lessonIdx].Contents = contents
			s.lessons = next
			return
		}
	}
}

// Lessons returns the current lesson snapshot.
func (s *Store) Lessons() []Lesson {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lessons
}

// LessonCount reports how many lessons exist.
func (s *Store) LessonCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lessons)
}

// FirstLessonID returns the id of the first lesson, if any. Deep-link jumps
// that need a concrete lesson target use it.
func (s *Store) FirstLessonID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.lessons) == 0 {
		return "", false
	}
	return s.lessons[0].ID, true
}

// FindContent looks a content up by id across all lessons.
func (s *Store) FindContent(contentID string) (Content, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, lesson := range s.lessons {
		for _, content := range lesson.Contents {
			if content.ID == contentID {
				return content, true
			}
		}
	}
	return Content{}, false
}
