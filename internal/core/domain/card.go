package domain

import (
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Card is a single question/answer pair. Either side may carry an
// image reference pointing into the vault's images directory.
type Card struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	QuestionImage string    `json:"question_image,omitempty"`
	AnswerImage   string    `json:"answer_image,omitempty"`
	Tags          []string  `json:"tags"`
	Created       time.Time `json:"created"`
	Modified      time.Time `json:"modified"`
	ReviewCount   int       `json:"review_count"`
}

// cardIDLength keeps IDs short enough to type on the command line.
const cardIDLength = 10

// NewCardID generates a fresh card identifier.
func NewCardID() string {
	return gonanoid.Must(cardIDLength)
}

// ValidateCardText checks that a question is usable.
func ValidateCardText(question string) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("%w: question cannot be empty", ErrValidation)
	}
	return nil
}

// NewCard creates a card with a fresh identifier and timestamps.
// The answer may be empty; the question may not.
func NewCard(question, answer string, tags []string) (*Card, error) {
	if err := ValidateCardText(question); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	return &Card{
		ID:       NewCardID(),
		Question: question,
		Answer:   answer,
		Tags:     tags,
		Created:  now,
		Modified: now,
	}, nil
}

// Touch updates the modification timestamp. Every mutating operation
// on a card goes through here.
func (c *Card) Touch() {
	c.Modified = time.Now()
}

// HasTag checks if the card carries a specific tag (case-insensitive).
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Matches reports whether the card matches a lowercase search query
// against its question, answer or any tag.
func (c *Card) Matches(query string) bool {
	if strings.Contains(strings.ToLower(c.Question), query) ||
		strings.Contains(strings.ToLower(c.Answer), query) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// ImageRefs returns the non-empty image references of the card.
func (c *Card) ImageRefs() []string {
	var refs []string
	if c.QuestionImage != "" {
		refs = append(refs, c.QuestionImage)
	}
	if c.AnswerImage != "" {
		refs = append(refs, c.AnswerImage)
	}
	return refs
}

// HasImages reports whether either side carries an image.
func (c *Card) HasImages() bool {
	return c.QuestionImage != "" || c.AnswerImage != ""
}

// Preview returns a shortened question for list views.
func (c *Card) Preview(max int) string {
	q := strings.TrimSpace(c.Question)
	q = strings.ReplaceAll(q, "\n", " ")
	if len(q) > max && max > 3 {
		return q[:max-3] + "..."
	}
	return q
}
