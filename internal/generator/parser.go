package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studymate/backend/internal/models"
)

// DecodeStage records which strategy recovered the JSON object.
type DecodeStage string

const (
	// StageDirect: the whole response, minus code fences, was one JSON object.
	StageDirect DecodeStage = "direct"
	// StageExtracted: the object was found embedded in surrounding prose.
	StageExtracted DecodeStage = "extracted"
)

type ParseResult struct {
	Flashcards []models.Flashcard
	Stage      DecodeStage
}

// ParseFlashcards recovers up to count flashcards from raw model output.
// Missing or falsy card fields are back-filled; the list is never padded.
// It fails with ErrParse when no JSON object can be decoded and with
// ErrEmptyResult when the object has no non-empty "flashcards" list.
func ParseFlashcards(text string, count int) (*ParseResult, error) {
	obj, stage, ok := decodeObject(text)
	if !ok {
		return nil, ErrParse
	}

	raw, present := obj["flashcards"]
	if !present {
		return nil, fmt.Errorf("%w: response has no flashcards key", ErrEmptyResult)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: flashcards is not a list", ErrEmptyResult)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyResult
	}

	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}

	cards := make([]models.Flashcard, len(entries))
	for i, entry := range entries {
		cards[i] = backfillCard(entry, i)
	}
	return &ParseResult{Flashcards: cards, Stage: stage}, nil
}

// decodeObject tries the direct stage, then the extracted stage.
func decodeObject(text string) (map[string]json.RawMessage, DecodeStage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &obj); err == nil && obj != nil {
		return obj, StageDirect, true
	}
	if obj, ok := extractObject(text); ok {
		return obj, StageExtracted, true
	}
	return nil, "", false
}

// extractObject scans text for balanced JSON objects in order. The first one
// carrying a "flashcards" key wins; otherwise the first that decodes at all.
// Objects that decode are skipped over whole, so nested cards are not
// considered separately from their enclosing object.
func extractObject(text string) (map[string]json.RawMessage, bool) {
	var first map[string]json.RawMessage

	for i := 0; i < len(text); {
		start := strings.IndexByte(text[i:], '{')
		if start < 0 {
			break
		}
		start += i

		dec := json.NewDecoder(strings.NewReader(text[start:]))
		var obj map[string]json.RawMessage
		if err := dec.Decode(&obj); err != nil {
			i = start + 1
			continue
		}

		if _, ok := obj["flashcards"]; ok {
			return obj, true
		}
		if first == nil {
			first = obj
		}
		i = start + int(dec.InputOffset())
	}

	return first, first != nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// ── Back-fill ──────────────────────────────────────────

func backfillCard(entry json.RawMessage, index int) models.Flashcard {
	// Entries that are not objects keep every default.
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(entry, &fields)

	return models.Flashcard{
		Front:      truthyText(fields["front"], fmt.Sprintf("Question %d", index+1)),
		Back:       truthyText(fields["back"], "Answer not available"),
		Hint:       truthyText(fields["hint"], ""),
		Difficulty: truthyText(fields["difficulty"], models.CardMedium),
		Tags:       tagList(fields["tags"]),
	}
}

// truthyText returns def for missing, null, false, zero and "" values. Other
// strings are returned as-is; any other truthy value as its compact JSON.
func truthyText(raw json.RawMessage, def string) string {
	if len(raw) == 0 {
		return def
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return def
	}

	switch val := v.(type) {
	case nil:
		return def
	case string:
		if val == "" {
			return def
		}
		return val
	case bool:
		if !val {
			return def
		}
		return "true"
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return def
		}
		return val.String()
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return def
		}
		return buf.String()
	}
}

// tagList keeps string and scalar entries of a JSON array. Anything that is
// not an array yields an empty, non-nil list.
func tagList(raw json.RawMessage) []string {
	tags := []string{}
	if len(raw) == 0 {
		return tags
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return tags
	}

	for _, item := range items {
		trimmed := bytes.TrimSpace(item)
		if len(trimmed) == 0 {
			continue
		}
		switch trimmed[0] {
		case 'n', '{', '[':
			// null, objects and arrays carry no usable label.
		case '"':
			var s string
			if err := json.Unmarshal(trimmed, &s); err == nil {
				tags = append(tags, s)
			}
		default:
			tags = append(tags, string(trimmed))
		}
	}
	return tags
}
