package sentiment

import (
	"strings"
	"unicode"
)

const negationFactor = -0.5

// negation lookback, in tokens
const negationWindow = 2

var defaultLexicon = map[string]float64{
	// positive
	"amazing":     0.6,
	"awesome":     1.0,
	"beautiful":   0.85,
	"best":        1.0,
	"better":      0.5,
	"brilliant":   0.9,
	"love":        0.5,
	"loved":       0.7,
	"loves":       0.5,
	"excellent":   1.0,
	"exciting":    0.3,
	"fantastic":   0.4,
	"fast":        0.2,
	"good":        0.7,
	"great":       0.8,
	"happy":       0.8,
	"helpful":     0.5,
	"impressive":  1.0,
	"improved":    0.4,
	"innovative":  0.5,
	"nice":        0.6,
	"perfect":     1.0,
	"perfectly":   1.0,
	"popular":     0.6,
	"powerful":    0.3,
	"reliable":    0.5,
	"smooth":      0.4,
	"solved":      0.4,
	"strong":      0.43,
	"success":     0.6,
	"successful":  0.75,
	"superb":      1.0,
	"win":         0.8,
	"wins":        0.8,
	"wonderful":   1.0,
	"works":       0.3,
	"record":      0.2,
	"growth":      0.3,
	"praised":     0.6,
	"beloved":     0.7,
	"delighted":   0.9,
	"incredible":  0.9,
	"outstanding": 0.9,

	// negative
	"angry":         -0.5,
	"awful":         -1.0,
	"bad":           -0.7,
	"broken":        -0.4,
	"bug":           -0.4,
	"bugs":          -0.4,
	"crash":         -0.6,
	"crashes":       -0.6,
	"decline":       -0.4,
	"disappointed":  -0.75,
	"disappointing": -0.6,
	"error":         -0.4,
	"errors":        -0.4,
	"fail":          -0.5,
	"failed":        -0.5,
	"failure":       -0.6,
	"fails":         -0.5,
	"hate":          -0.8,
	"horrible":      -1.0,
	"issue":         -0.4,
	"issues":        -0.4,
	"lawsuit":       -0.5,
	"outage":        -0.6,
	"poor":          -0.4,
	"problem":       -0.4,
	"problems":      -0.4,
	"recall":        -0.4,
	"slow":          -0.3,
	"terrible":      -1.0,
	"worse":         -0.6,
	"worst":         -1.0,
	"wrong":         -0.5,
	"complaints":    -0.5,
	"backlash":      -0.6,
	"vulnerability": -0.5,
	"scandal":       -0.7,
	"sad":           -0.5,
}

var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.2,
	"extremely":  1.5,
	"incredibly": 1.4,
	"so":         1.2,
	"super":      1.3,
	"totally":    1.2,
	"quite":      1.1,
}

var negations = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"isn't":   true,
	"wasn't":  true,
	"aren't":  true,
	"don't":   true,
	"doesn't": true,
	"didn't":  true,
	"can't":   true,
	"won't":   true,
	"cannot":  true,
	"without": true,
}

// LexiconScorer averages word-level polarities, with intensifiers scaling a
// word and a nearby negation flipping and halving it.
type LexiconScorer struct {
	lexicon map[string]float64
}

// NewLexiconScorer creates a scorer over the built-in lexicon
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{lexicon: defaultLexicon}
}

// NewLexiconScorerWith creates a scorer over a caller-supplied lexicon
func NewLexiconScorerWith(lexicon map[string]float64) *LexiconScorer {
	return &LexiconScorer{lexicon: lexicon}
}

// Polarity returns 0 for text with no lexicon hits and ErrEmptyText when the
// text has no words at all.
func (l *LexiconScorer) Polarity(text string) (float64, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0, ErrEmptyText
	}

	var sum float64
	hits := 0

	for i, token := range tokens {
		score, ok := l.lexicon[token]
		if !ok {
			continue
		}

		if i > 0 {
			if mult, ok := intensifiers[tokens[i-1]]; ok {
				score *= mult
			}
		}

		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			if negations[tokens[j]] {
				score *= negationFactor
				break
			}
		}

		sum += clamp(score)
		hits++
	}

	if hits == 0 {
		return 0, nil
	}

	return clamp(sum / float64(hits)), nil
}

// tokenize lowercases text and splits it into words, keeping inner
// apostrophes so contractions like "don't" survive. A trailing possessive
// "'s" is dropped.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.ReplaceAll(field, "’", "'")
		field = strings.Trim(field, "'")
		field = strings.TrimSuffix(field, "'s")
		if field != "" {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
