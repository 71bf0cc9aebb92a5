package generator

import (
	"fmt"
	"strings"

	"github.com/studymate/backend/internal/models"
)

// Max output tokens per content type.
const (
	FlashcardMaxTokens = 3000
	NotesMaxTokens     = 4000
)

// BuildFlashcardPrompt asks for exactly count varied cards in the
// {"flashcards":[...]} JSON shape ParseFlashcards expects.
func BuildFlashcardPrompt(topic, subject string, difficulty models.Difficulty, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %d diverse and natural flashcards for the topic %q in %s.\n\n", count, topic, subject)
	b.WriteString("Generate flashcards that reflect actual key points, facts, or concepts from the topic. ")
	b.WriteString("Do NOT follow a fixed question pattern or template. Make each flashcard unique and context-aware.\n\n")

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Create exactly %d flashcards\n", count)
	fmt.Fprintf(&b, "- Pitch them at a %s level overall, mixing easy, medium and hard cards\n", difficulty)
	b.WriteString("- Include different types: factual, conceptual, comparison-based, or example-based questions\n")
	b.WriteString("- Keep questions and answers concise and learner-friendly\n")
	b.WriteString("- Make them topic-relevant and realistic like real educational flashcards\n")
	b.WriteString("- Vary the question formats naturally\n\n")

	b.WriteString("Return the flashcards in this exact JSON format:\n")
	b.WriteString(`{
  "flashcards": [
    {
      "front": "Question text here",
      "back": "Answer text here",
      "hint": "Optional brief hint",
      "difficulty": "easy|medium|hard",
      "tags": ["tag1", "tag2"]
    }
  ]
}`)
	b.WriteString("\n\nEnsure the questions are varied and don't repeat similar patterns. ")
	b.WriteString("Focus on creating engaging, educational flashcards that would actually help students learn the topic effectively.")

	return b.String()
}

// exampleRange is how many examples and exercises the notes ask for.
func exampleRange(difficulty models.Difficulty) string {
	switch models.NormalizeDifficulty(difficulty) {
	case models.DifficultyEasy:
		return "3-4"
	case models.DifficultyIntermediate:
		return "4-5"
	default:
		return "5-6"
	}
}

// BuildNotesPrompt asks for markdown notes following the fixed section skeleton.
func BuildNotesPrompt(topic, subject string, difficulty models.Difficulty) string {
	n := exampleRange(difficulty)
	var b strings.Builder

	fmt.Fprintf(&b, "Create complete study notes for %q in %s.\n\n", topic, subject)
	fmt.Fprintf(&b, "For %s learners, provide a clear and structured response using markdown formatting:\n\n", models.NormalizeDifficulty(difficulty))

	fmt.Fprintf(&b, "# %s (%s)\n\n", topic, subject)
	b.WriteString("## Overview\nBrief introduction and importance (2-3 sentences).\n\n")
	b.WriteString("## Key Concepts\n")
	b.WriteString("- **Core definition**: [definition here]\n")
	b.WriteString("- **Essential terms**: 4-6 key terms with brief explanations\n")
	b.WriteString("- **Fundamental principles**: Main principles explained\n\n")
	b.WriteString("## Detailed Explanation\n")
	b.WriteString("Break down into 2-4 logical sections with step-by-step explanations and examples.\n\n")
	b.WriteString("### Section 1: [First major concept]\n[Step-by-step explanation with examples]\n\n")
	b.WriteString("### Section 2: [Second major concept]\n[Step-by-step explanation with examples]\n\n")
	fmt.Fprintf(&b, "## Practical Examples\n%s real-world examples with clear explanations.\n\n", n)
	fmt.Fprintf(&b, "## Practice Exercises\n%s practice problems/questions with detailed solutions.\n\n", n)
	b.WriteString("## Key Takeaways\n- [Main point 1]\n- [Main point 2]\n- [Main point 3]\n\n")

	b.WriteString("## Additional Resources\n")
	b.WriteString("Here are some recommended resources to deepen your understanding:\n\n")
	b.WriteString("### 📚 Related Topics to Explore\n")
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&b, "- **Topic %d**: Brief description of why this related topic is important\n", i)
	}
	b.WriteString("\n### 🔍 Further Reading\n")
	for i := 1; i <= 2; i++ {
		fmt.Fprintf(&b, "- **Book/Article %d**: \"Title of recommended book or article\" - Brief explanation of its relevance\n", i)
	}
	b.WriteString("\n### 🌐 Online Resources\n")
	for i := 1; i <= 2; i++ {
		fmt.Fprintf(&b, "- **Website/Resource %d**: Brief description and why it's helpful\n", i)
	}

	b.WriteString("\nUse proper markdown formatting with headings, bold text for emphasis, bullet points, ")
	b.WriteString("numbered lists, and code blocks where appropriate. Make it educational and easy to follow for students.")

	return b.String()
}
