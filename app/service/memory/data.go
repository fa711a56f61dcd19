package memory

import (
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var ErrNotFound = errors.New("not found")

// Responses maps a normalized question to its taught answer, in teaching order.
type Responses = orderedmap.OrderedMap[string, string]

type Pair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type identityDocument struct {
	Name string `json:"name,omitempty"`
}

func NewResponses() *Responses {
	return orderedmap.New[string, string]()
}

func pairsOf(responses *Responses) []Pair {
	result := make([]Pair, 0, responses.Len())
	for p := responses.Oldest(); p != nil; p = p.Next() {
		result = append(result, Pair{Question: p.Key, Answer: p.Value})
	}

	return result
}

func cloneResponses(responses *Responses) *Responses {
	result := NewResponses()
	for p := responses.Oldest(); p != nil; p = p.Next() {
		result.Set(p.Key, p.Value)
	}

	return result
}
