package sentiment

import (
	"errors"
	"fmt"
	"math"

	"github.com/mentiontracker/brand-mentions/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// PositiveThreshold is the polarity a text must exceed to count as positive
	PositiveThreshold = 0.1
	// NegativeThreshold is the polarity a text must fall below to count as negative
	NegativeThreshold = -0.1
)

// ErrEmptyText is returned by scorers when there is nothing to score
var ErrEmptyText = errors.New("sentiment: empty text")

// Scorer computes a polarity in [-1, 1] for a piece of text
type Scorer interface {
	Polarity(text string) (float64, error)
}

// Classifier buckets text into positive, negative or neutral
type Classifier struct {
	scorer Scorer
}

// NewClassifier creates a classifier backed by the given scorer. A nil scorer
// falls back to the built-in lexicon.
func NewClassifier(scorer Scorer) *Classifier {
	if scorer == nil {
		scorer = NewLexiconScorer()
	}
	return &Classifier{scorer: scorer}
}

// Classify never fails: any scorer error degrades to neutral.
func (c *Classifier) Classify(text string) models.Sentiment {
	polarity, err := c.polarity(text)
	if err != nil {
		logrus.WithError(err).Debug("Sentiment scoring failed, defaulting to neutral")
		return models.SentimentNeutral
	}
	return Bucket(polarity)
}

func (c *Classifier) polarity(text string) (polarity float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sentiment scorer panicked: %v", r)
		}
	}()

	polarity, err = c.scorer.Polarity(text)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(polarity) {
		return 0, fmt.Errorf("sentiment scorer returned NaN")
	}
	return polarity, nil
}

// Bucket maps a polarity score to a sentiment. Both thresholds are exclusive.
func Bucket(polarity float64) models.Sentiment {
	switch {
	case polarity > PositiveThreshold:
		return models.SentimentPositive
	case polarity < NegativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
