package sentiment

import (
	"context"
	"strings"
	"unicode"
)

var _ Scorer = (*Lexicon)(nil)

const negationFactor = -0.5

var polarities = map[string]float64{
	"amazing": 0.6, "awesome": 1.0, "beautiful": 0.85, "best": 1.0, "better": 0.5,
	"brilliant": 0.9, "calm": 0.3, "cheerful": 0.7, "cool": 0.35, "delighted": 0.7,
	"excellent": 1.0, "excited": 0.4, "fantastic": 0.4, "fine": 0.4, "fun": 0.3,
	"glad": 0.5, "good": 0.7, "grateful": 0.6, "great": 0.8, "happy": 0.8,
	"hopeful": 0.5, "joy": 0.8, "joyful": 0.8, "love": 0.5, "loved": 0.7,
	"lovely": 0.5, "lucky": 0.5, "nice": 0.6, "okay": 0.5, "perfect": 1.0,
	"pleased": 0.5, "positive": 0.23, "proud": 0.8, "relaxed": 0.4, "super": 0.33,
	"thankful": 0.5, "well": 0.2, "wonderful": 1.0,

	"alone": -0.4, "angry": -0.5, "annoyed": -0.4, "anxious": -0.25, "awful": -1.0,
	"bad": -0.7, "bored": -0.5, "broken": -0.4, "depressed": -0.6, "disappointed": -0.75,
	"down": -0.16, "exhausted": -0.4, "frustrated": -0.7, "furious": -1.0, "hate": -0.8,
	"horrible": -1.0, "hurt": -0.5, "lonely": -0.5, "mad": -0.6, "miserable": -1.0,
	"nervous": -0.3, "pain": -0.6, "poor": -0.4, "sad": -0.5, "scared": -0.5,
	"sick": -0.71, "stressed": -0.5, "terrible": -1.0, "tired": -0.4, "ugly": -0.7,
	"unhappy": -0.6, "upset": -0.5, "worried": -0.4, "worse": -0.4, "worst": -1.0,
}

var intensifiers = map[string]float64{
	"absolutely": 1.5, "extremely": 1.5, "incredibly": 1.4, "quite": 1.1,
	"really": 1.3, "slightly": 0.5, "so": 1.3, "somewhat": 0.7, "too": 1.2,
	"totally": 1.4, "very": 1.3,
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "isn't": true, "don't": true,
	"didn't": true, "doesn't": true, "wasn't": true, "can't": true, "won't": true,
	"aren't": true, "nothing": true,
}

// Lexicon scores text by averaging the polarity of known words. An intensifier
// scales the next sentiment word, a negator flips and halves it.
type Lexicon struct{}

func NewLexicon() *Lexicon {
	return &Lexicon{}
}

func (l *Lexicon) Polarity(_ context.Context, text string) (float64, error) {
	words := tokenize(text)

	var (
		sum       float64
		count     int
		intensity = 1.0
		negated   bool
	)

	for _, w := range words {
		if factor, ok := intensifiers[w]; ok {
			intensity *= factor
			continue
		}

		if negators[w] {
			negated = true
			continue
		}

		p, ok := polarities[w]
		if !ok {
			continue
		}

		p = clamp(p * intensity)
		if negated {
			p *= negationFactor
		}

		sum += p
		count++
		intensity = 1.0
		negated = false
	}

	if count == 0 {
		return 0, nil
	}

	return clamp(sum / float64(count)), nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
