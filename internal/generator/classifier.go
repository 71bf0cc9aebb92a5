package generator

import (
	"context"
	"fmt"
	"strings"
)

// BuildClassificationPrompt asks for exactly one taxonomy label for topic.
func BuildClassificationPrompt(topic string) string {
	return fmt.Sprintf(
		`Classify the following topic into one of these subjects: %s. Topic: "%s". Respond with only the subject name that best fits. If it doesn't fit any, respond with "%s".`,
		strings.Join(subjects[:], ", "), topic, GeneralSubject,
	)
}

// ResolveSubject returns subject unchanged when it is non-blank. Otherwise it
// asks the responder to classify topic and accepts only an exact taxonomy
// match, falling back to GeneralSubject. It never fails.
func ResolveSubject(ctx context.Context, r Responder, topic, subject string) string {
	if strings.TrimSpace(subject) != "" {
		return subject
	}

	resp := r.GenerateResponse(ctx, BuildClassificationPrompt(topic), nil, GenerationOptions{})
	if resp.Metadata.Error || resp.Message == "" {
		return GeneralSubject
	}

	if classified := strings.TrimSpace(resp.Message); IsSubject(classified) {
		return classified
	}
	return GeneralSubject
}
