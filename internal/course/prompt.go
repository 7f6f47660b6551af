package course

import (
	"fmt"
	"strings"
)

func buildLessonPrompt(topic string, index int, title string) string {
	var b strings.Builder
	b.WriteString("You are an expert teacher running a thorough one-on-one lesson.\n\n")
	b.WriteString(fmt.Sprintf("Course: %s\n", topic))
	b.WriteString(fmt.Sprintf("Lesson %d: %q\n\n", index+1, title))
	b.WriteString("Structure the lesson as:\n")
	b.WriteString("1. Why this matters, with a concrete real-world scenario.\n")
	b.WriteString("2. Learning objectives.\n")
	b.WriteString("3. Core concepts with definitions, analogies and small diagrams where useful.\n")
	b.WriteString("4. A step-by-step deep dive, including common misconceptions and edge cases.\n")
	b.WriteString("5. Worked examples; for programming topics, complete runnable code with input and output.\n")
	b.WriteString("6. Practice problems from easy to challenging, with hints and solutions.\n")
	b.WriteString("7. Troubleshooting: frequent mistakes and how to fix them.\n")
	b.WriteString(fmt.Sprintf("8. Summary and how this prepares for lesson %d.\n\n", index+2))
	b.WriteString("Assume no prior knowledge. Use Markdown with headings, lists and fenced code blocks.")
	return b.String()
}

func buildConceptPrompt(concept string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("You are an expert teacher. Explain the concept %q so that a beginner understands it completely.\n\n", concept))
	b.WriteString("Cover:\n")
	b.WriteString("- A precise definition and where it is used.\n")
	b.WriteString("- A step-by-step explanation with two or three analogies.\n")
	b.WriteString("- Examples of increasing complexity; for programming concepts, runnable code with comments.\n")
	b.WriteString("- Common pitfalls and how to avoid them.\n")
	b.WriteString("- A few practice exercises with solutions.\n")
	b.WriteString("- A short key-points summary.\n\n")
	b.WriteString("Use Markdown with headings, lists and fenced code blocks.")
	return b.String()
}

func buildDoubtPrompt(topic, lessonContext, question string) string {
	var b strings.Builder
	b.WriteString("You are an expert teacher helping a student with a doubt.\n")
	b.WriteString(fmt.Sprintf("The student is currently learning about: %s\n\n", topic))
	if lessonContext != "" {
		b.WriteString("Current lesson content:\n")
		b.WriteString(lessonContext)
		b.WriteString("\n\n")
	}
	b.WriteString(fmt.Sprintf("Student's doubt: %s\n\n", question))
	b.WriteString("Answer the doubt directly, refer to the lesson content when relevant, ")
	b.WriteString("and use a clear example if it helps. Keep the answer focused and practical.")
	return b.String()
}
