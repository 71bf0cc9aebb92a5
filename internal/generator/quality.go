package generator

import (
	"fmt"
	"strings"

	"github.com/studymate/backend/internal/models"
)

// similarityThreshold is the front-text keyword overlap above which two
// cards count as near-duplicates.
const similarityThreshold = 0.60

// StructuralScore holds the individual structural checks for a card set.
type StructuralScore struct {
	FrontsPresent   bool
	BacksPresent    bool
	HintsPresent    bool
	DifficultyValid bool
}

type SimilarPair struct {
	A, B    int
	Overlap float64
}

// QualityReport is advisory: it is logged and stored with the generation but
// never rejects a set.
type QualityReport struct {
	Structural     StructuralScore
	Similar        []SimilarPair
	Score          float64
	Classification string
}

// ReviewFlashcards scores a parsed card set.
func ReviewFlashcards(cards []models.Flashcard) QualityReport {
	structural := ComputeStructuralScore(cards)
	similar := FindSimilarCards(cards)
	score := ComputeQualityScore(structural, len(similar), len(cards))
	return QualityReport{
		Structural:     structural,
		Similar:        similar,
		Score:          score,
		Classification: ClassifyQuality(score),
	}
}

// ComputeStructuralScore flags cards whose fields had to be back-filled.
func ComputeStructuralScore(cards []models.Flashcard) StructuralScore {
	s := StructuralScore{FrontsPresent: true, BacksPresent: true, HintsPresent: true, DifficultyValid: true}
	for i, c := range cards {
		if c.Front == fmt.Sprintf("Question %d", i+1) {
			s.FrontsPresent = false
		}
		if c.Back == "Answer not available" {
			s.BacksPresent = false
		}
		if c.Hint == "" {
			s.HintsPresent = false
		}
		switch c.Difficulty {
		case models.CardEasy, models.CardMedium, models.CardHard:
		default:
			s.DifficultyValid = false
		}
	}
	return s
}

// FindSimilarCards returns every pair whose fronts share more than 60% of
// their keywords.
func FindSimilarCards(cards []models.Flashcard) []SimilarPair {
	if len(cards) < 2 {
		return nil
	}

	tokenSets := make([]map[string]bool, len(cards))
	for i, c := range cards {
		tokenSets[i] = tokenize(c.Front)
	}

	var pairs []SimilarPair
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if overlap := jaccardSimilarity(tokenSets[i], tokenSets[j]); overlap > similarityThreshold {
				pairs = append(pairs, SimilarPair{A: i, B: j, Overlap: overlap})
			}
		}
	}
	return pairs
}

// ComputeQualityScore calculates a composite quality score (0.0-1.0).
//
// Formula: structural * 0.60 + diversity * 0.40
func ComputeQualityScore(structural StructuralScore, similarPairs, cardCount int) float64 {
	structuralScore := 0.0
	if structural.FrontsPresent {
		structuralScore += 0.25
	}
	if structural.BacksPresent {
		structuralScore += 0.25
	}
	if structural.HintsPresent {
		structuralScore += 0.25
	}
	if structural.DifficultyValid {
		structuralScore += 0.25
	}

	diversityScore := 1.0
	if totalPairs := cardCount * (cardCount - 1) / 2; totalPairs > 0 {
		diversityScore = 1 - float64(similarPairs)/float64(totalPairs)
	}

	return structuralScore*0.60 + diversityScore*0.40
}

// ClassifyQuality returns a classification based on the quality score.
// Returns: "reject" (< 0.50), "flagged" (0.50-0.70), "passed" (> 0.70)
func ClassifyQuality(score float64) string {
	if score < 0.50 {
		return "reject"
	}
	if score <= 0.70 {
		return "flagged"
	}
	return "passed"
}

func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		// Skip very short words (articles, prepositions)
		if len(word) > 3 {
			tokens[word] = true
		}
	}
	return tokens
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}
