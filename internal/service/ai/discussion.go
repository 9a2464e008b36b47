package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// DiscussionPoints is the structured result of discussion-point extraction:
// a generated title and exactly three questions.
type DiscussionPoints struct {
	Title     string   `json:"title"`
	Questions []string `json:"questions"`
}

// articleExcerptLimit caps how much article text is sent for extraction.
const articleExcerptLimit = 20000

// FallbackDiscussionPoints is the deterministic value used whenever the
// model's response fails validation.
func FallbackDiscussionPoints() DiscussionPoints {
	return DiscussionPoints{
		Title: "Title Could Not Be Generated",
		Questions: []string{
			"What is the main argument of the article?",
			"What evidence does the author provide?",
			"What are the potential implications of the author's conclusions?",
		},
	}
}

// GenerateDiscussionPoints asks the model for a title and three discussion
// questions for the article. Validation is strict: a missing title, missing
// questions, or a question count other than three counts as malformed, and
// the fallback is returned instead. The error is informational only; the
// returned value is always usable.
func GenerateDiscussionPoints(ctx context.Context, gw Gateway, articleText string) (DiscussionPoints, error) {
	excerpt := articleText
	if len(excerpt) > articleExcerptLimit {
		excerpt = excerpt[:articleExcerptLimit]
	}

	prompt := fmt.Sprintf(`Based on the following article, please generate a concise, engaging title and three thought-provoking discussion questions to facilitate a Socratic dialogue.

ARTICLE:
---
%s
---

Respond with only a JSON object of the form {"title": string, "questions": [string, string, string]}. Do not output any other text.`, excerpt)

	raw, err := gw.GenerateOnce(ctx, prompt)
	if err != nil {
		log.Printf("[ai] discussion point generation failed, using fallback: %v", err)
		return FallbackDiscussionPoints(), err
	}

	points, err := parseDiscussionPoints(raw)
	if err != nil {
		log.Printf("[ai] discussion point parse failed, using fallback: %v", err)
		return FallbackDiscussionPoints(), err
	}
	return points, nil
}

// parseDiscussionPoints extracts and validates the JSON object from the
// model output. Strict policy: exactly three non-empty questions.
func parseDiscussionPoints(content string) (DiscussionPoints, error) {
	obj, err := extractJSONObject(content)
	if err != nil {
		return DiscussionPoints{}, err
	}

	var points DiscussionPoints
	if err := json.Unmarshal(obj, &points); err != nil {
		return DiscussionPoints{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if strings.TrimSpace(points.Title) == "" {
		return DiscussionPoints{}, fmt.Errorf("%w: missing title", ErrMalformedResponse)
	}
	if len(points.Questions) != 3 {
		return DiscussionPoints{}, fmt.Errorf("%w: expected 3 questions, got %d", ErrMalformedResponse, len(points.Questions))
	}
	for _, q := range points.Questions {
		if strings.TrimSpace(q) == "" {
			return DiscussionPoints{}, fmt.Errorf("%w: empty question", ErrMalformedResponse)
		}
	}
	return points, nil
}

// extractJSONObject scans for the outermost braces so prose or code fences
// around the object do not break parsing.
func extractJSONObject(content string) ([]byte, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("%w: missing json object", ErrMalformedResponse)
	}
	return []byte(trimmed[start : end+1]), nil
}
