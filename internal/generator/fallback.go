package generator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/studymate/backend/internal/models"
)

type cardTemplate struct {
	front      string
	back       string
	hint       string
	difficulty string
	tags       []string
}

// fallbackTemplates hold {topic} and {subject} placeholders.
var fallbackTemplates = [...]cardTemplate{
	{
		front:      "What is the definition of {topic} in {subject}?",
		back:       "{topic} is a fundamental concept in {subject} that involves key principles and applications.",
		hint:       "Think about the core meaning",
		difficulty: models.CardEasy,
		tags:       []string{"definition", "basic"},
	},
	{
		front:      "What are the main components of {topic}?",
		back:       "The main components include: 1) Core principles, 2) Key applications, 3) Related concepts in {subject}.",
		hint:       "Consider the building blocks",
		difficulty: models.CardMedium,
		tags:       []string{"components", "structure"},
	},
	{
		front:      "How does {topic} relate to other concepts in {subject}?",
		back:       "{topic} connects with broader themes in {subject} through fundamental relationships and applications.",
		hint:       "Look for connections",
		difficulty: models.CardHard,
		tags:       []string{"relationships", "advanced"},
	},
	{
		front:      "What are practical applications of {topic} in {subject}?",
		back:       "{topic} has numerous real-world applications including problem-solving and implementation in {subject}.",
		hint:       "Think about real-world use",
		difficulty: models.CardMedium,
		tags:       []string{"applications", "practical"},
	},
	{
		front:      "What are the key benefits of understanding {topic}?",
		back:       "Understanding {topic} provides deeper insight into {subject} and enables better problem-solving capabilities.",
		hint:       "Consider the advantages",
		difficulty: models.CardEasy,
		tags:       []string{"benefits", "importance"},
	},
}

func (t cardTemplate) render(r *strings.Replacer) models.Flashcard {
	return models.Flashcard{
		Front:      r.Replace(t.front),
		Back:       r.Replace(t.back),
		Hint:       t.hint,
		Difficulty: t.difficulty,
		Tags:       slices.Clone(t.tags),
	}
}

// FallbackFlashcards returns count template cards, cycling the five templates.
func FallbackFlashcards(topic, subject string, count int) []models.Flashcard {
	if count < 0 {
		count = 0
	}
	r := strings.NewReplacer("{topic}", topic, "{subject}", subject)
	cards := make([]models.Flashcard, count)
	for i := range cards {
		cards[i] = fallbackTemplates[i%len(fallbackTemplates)].render(r)
	}
	return cards
}

// FallbackNotes returns generic markdown notes in the standard section layout.
func FallbackNotes(topic, subject string) string {
	sections := []string{
		fmt.Sprintf("# %s (%s)", topic, subject),
		"",
		"## Overview",
		fmt.Sprintf("This section provides an introduction to %s in %s. %s is an important concept that helps in understanding broader principles in the field.", topic, subject, topic),
		"",
		"## Key Concepts",
		fmt.Sprintf("- **Definition**: %s refers to fundamental aspects within %s", topic, subject),
		fmt.Sprintf("- **Importance**: Understanding %s is crucial for mastering %s", topic, subject),
		fmt.Sprintf("- **Applications**: %s has practical applications in real-world scenarios", topic),
		"",
		"## Detailed Explanation",
		"### Core Principles",
		fmt.Sprintf("The core principles of %s include:", topic),
		"- Basic understanding of the concept",
		"- Application in different contexts",
		fmt.Sprintf("- Relationship with other topics in %s", subject),
		"",
		"### Step-by-Step Breakdown",
		"1. **Step 1**: Start with the fundamentals",
		"2. **Step 2**: Build upon the basic concepts",
		"3. **Step 3**: Apply the knowledge practically",
		"",
		"## Practical Examples",
		fmt.Sprintf("- **Example 1**: Basic application of %s", topic),
		fmt.Sprintf("- **Example 2**: Advanced use case in %s", subject),
		fmt.Sprintf("- **Example 3**: Real-world scenario demonstrating %s", topic),
		"",
		"## Practice Exercises",
		"1. **Exercise 1**: Basic practice problem",
		"2. **Exercise 2**: Intermediate application",
		"3. **Exercise 3**: Advanced problem-solving",
		"",
		"## Key Takeaways",
		fmt.Sprintf("- %s is fundamental to %s", topic, subject),
		"- Practice and application are key to mastery",
		"- Understanding context is important for real-world application",
		"",
		"## Additional Resources",
		"### Related Topics to Explore",
		"- Related Topic 1: Brief description",
		"- Related Topic 2: Brief description",
		"",
		"### Further Reading",
		"- Recommended Book/Article 1: Brief explanation",
		"- Recommended Book/Article 2: Brief explanation",
		"",
		"### Online Resources",
		"- Resource 1: Brief description",
		"- Resource 2: Brief description",
	}
	return strings.Join(sections, "\n")
}
