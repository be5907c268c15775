// Package cli is an interactive terminal walkthrough of the authoring
// wizard, driving the same state machine the HTTP service exposes.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"course-studio/internal/course"
	"course-studio/internal/logger"
	"course-studio/internal/wizard"
)

const cliUploadDelay = 200 * time.Millisecond

func Run(in io.Reader, out io.Writer) error {
	session := wizard.NewSession(course.NewID(), wizard.Config{
		Logger:      logger.NewNop(),
		UploadDelay: cliUploadDelay,
	})
	reader := bufio.NewReader(in)

	fmt.Fprintln(out, "course-studio authoring walkthrough")
	fmt.Fprintln(out)

	if err := runInfoStep(reader, out, session); err != nil {
		return err
	}
	if err := runContentStep(reader, out, session); err != nil {
		return err
	}
	return runReviewStep(reader, out, session)
}

func runInfoStep(reader *bufio.Reader, out io.Writer, session *wizard.Session) error {
	fmt.Fprintln(out, "Step 1 - Course info")

	for {
		info := wizard.CourseInfo{
			Active:    true,
			AllowQuit: true,
			AllowSkip: true,
		}
		info.Name = prompt(reader, out, "Course name: ")
		info.Category = prompt(reader, out, "Category: ")
		info.Language = prompt(reader, out, "Language: ")
		info.Description = prompt(reader, out, "Description: ")
		session.SetCourseInfo(info)

		if err := session.NextStep(); err == nil {
			return nil
		}
		fmt.Fprintln(out, "All four fields are required, let's try again.")
		fmt.Fprintln(out)
	}
}

func runContentStep(reader *bufio.Reader, out io.Writer, session *wizard.Session) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Step 2 - Content")

	var firstLessonID string
	for {
		name := prompt(reader, out, "Lesson name (empty to continue): ")
		if strings.TrimSpace(name) == "" {
			break
		}
		lessonID := session.AddLesson(name)
		if firstLessonID == "" {
			firstLessonID = lessonID
		}
		fmt.Fprintf(out, "Added lesson %q\n", strings.TrimSpace(name))
	}

	if firstLessonID == "" {
		fmt.Fprintln(out, "No lessons added, skipping content authoring.")
		session.JumpToStep(wizard.StepReview)
		return nil
	}

	quizID, err := authorQuiz(reader, out, session, firstLessonID)
	if err != nil {
		return err
	}
	if quizID != "" {
		if err := authorQuestion(reader, out, session, quizID); err != nil {
			return err
		}
	}

	return session.NextStep()
}

func authorQuiz(reader *bufio.Reader, out io.Writer, session *wizard.Session, lessonID string) (string, error) {
	answer := prompt(reader, out, "Add a quiz to the first lesson? [y/N] ")
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return "", nil
	}

	session.OpenContentModal(lessonID)
	if err := session.ChooseQuiz(); err != nil {
		return "", err
	}

	quizType := course.QuizEvaluation
	kind := prompt(reader, out, "Quiz type - 1Evaluation 2Survey [1]: ")
	if strings.TrimSpace(kind) == "2" {
		quizType = course.QuizSurvey
	}
	if err := session.ChooseQuizType(quizType); err != nil {
		return "", err
	}

	session.SetQuizName(prompt(reader, out, "Quiz name: "))
	if err := session.SaveQuiz(); err != nil {
		return "", err
	}

	for _, lesson := range session.Store().Lessons() {
		for _, content := range lesson.Contents {
			if content.IsQuiz() {
				fmt.Fprintf(out, "Created %s quiz %q\n", content.Quiz.Type, content.Name)
				return content.ID, nil
			}
		}
	}
	return "", nil
}

func authorQuestion(reader *bufio.Reader, out io.Writer, session *wizard.Session, quizID string) error {
	session.OpenQuestionModal(quizID)
	session.SetQuestionText(prompt(reader, out, "Question text: "))

	draft := session.Snapshot().QuestionDraft
	for idx, option := range draft.Options {
		text := prompt(reader, out, fmt.Sprintf("Option %d: ", idx+1))
		session.SetOptionText(option.ID, text)
	}

	correct := strings.TrimSpace(prompt(reader, out, "Correct option number (empty for none): "))
	if correct != "" {
		for idx, option := range draft.Options {
			if fmt.Sprintf("%d", idx+1) == correct {
				session.MarkCorrectOption(option.ID)
			}
		}
	}

	if err := session.SaveQuestion(); err != nil {
		fmt.Fprintf(out, "Question rejected: %v\n", err)
		session.CloseModal()
		return nil
	}
	fmt.Fprintln(out, "Question saved.")
	return nil
}

func runReviewStep(reader *bufio.Reader, out io.Writer, session *wizard.Session) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Step 3 - Course timeline")

	lessons := session.Store().Lessons()
	if len(lessons) == 0 {
		fmt.Fprintln(out, "  (no content added yet)")
	}
	for _, lesson := range lessons {
		fmt.Fprintf(out, "  %s\n", lesson.Name)
		for _, content := range lesson.Contents {
			fmt.Fprintf(out, "    [%s] %s - %s, %s\n",
				content.Type, content.Name, content.DeliveryPeriod, content.DeliveryDelay)
			if content.IsQuiz() {
				for idx, question := range content.Quiz.Questions {
					fmt.Fprintf(out, "      Q%d: %s\n", idx+1, question.Text)
				}
			}
		}
	}

	answer := prompt(reader, out, "\nPublish the course? [y/N] ")
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		if err := session.Publish(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Course published.")
	}
	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	line, _ := reader.ReadString('\n')
	return strings.TrimRight(line, "\n")
}
