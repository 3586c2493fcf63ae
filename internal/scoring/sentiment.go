package scoring

import (
	"strings"
)

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

var positiveWords = wordSet(
	"good", "great", "excellent", "amazing", "wonderful", "fantastic",
	"love", "awesome", "perfect", "outstanding", "brilliant", "superb",
	"happy", "satisfied", "pleased", "impressed",
)

var negativeWords = wordSet(
	"bad", "terrible", "awful", "horrible", "hate", "worst",
	"disappointing", "poor", "unsatisfied", "angry", "frustrated",
	"annoying", "useless", "waste", "problem", "issue",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// AnalyzeSentiment maps free text to a sentiment label and a score in
// [-1, 1]. The label is derived from keyword hit counts (ties are neutral)
// so label and score never disagree in sign. Empty or blank text is neutral
// with score 0.
func AnalyzeSentiment(text string) Sentiment {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return Sentiment{Label: SentimentNeutral, Score: 0}
	}

	var positive, negative int
	for _, w := range words {
		if _, ok := positiveWords[w]; ok {
			positive++
		}
		if _, ok := negativeWords[w]; ok {
			negative++
		}
	}

	// Normalize by text length so a single keyword in a long message
	// counts for less than in a short one.
	norm := float64(len(words)) / 10.0
	if norm < 1 {
		norm = 1
	}
	score := float64(positive-negative) / norm
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}

	label := SentimentNeutral
	if positive > negative {
		label = SentimentPositive
	} else if negative > positive {
		label = SentimentNegative
	}

	return Sentiment{Label: label, Score: score}
}
