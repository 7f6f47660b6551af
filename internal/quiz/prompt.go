package quiz

import (
	"fmt"
	"strings"
)

const quizSystemPrompt = `You are an expert educator writing short quizzes that check whether a learner understood a lesson.
Questions are specific, practical, and answerable from the lesson alone.`

func buildQuizUserMessage(req Request) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Course: %s\n", req.Topic))
	b.WriteString(fmt.Sprintf("Lesson: %s\n\n", req.LessonTitle))

	if req.LessonContent != "" {
		b.WriteString("Lesson content:\n")
		b.WriteString(req.LessonContent)
		b.WriteString("\n\n")
	}

	b.WriteString("Write 3-5 questions on the most important ideas of this lesson. ")
	b.WriteString("Use multiple choice (mcq) questions, and add coding questions when the lesson involves programming. ")
	b.WriteString("Give each a one-sentence explanation and a difficulty.")
	return b.String()
}
