package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrNoCandidate  = errors.New("Could not get a response from the AI.")
	ErrEmptyProblem = errors.New("Please enter a problem to solve.")
)

// WordProblemPrompt is the system instruction for SolveWordProblem.
const WordProblemPrompt = "You are a world-class math problem solver. When given a word problem, " +
	"your task is to identify the mathematical question, extract the relevant numbers, " +
	"determine the correct operations, provide a step-by-step solution, and finally, " +
	"present the final numerical answer. Your response should be structured clearly with a " +
	"'Problem Analysis', 'Step-by-step Solution', and 'Final Answer' section."

const candidateTextPath = "candidates.0.content.parts.0.text"

// GenerateContent sends req and returns the first candidate's text.
func (c *Client) GenerateContent(ctx context.Context, req GenerateContentRequest) (string, error) {
	path := "/v1beta/models/" + url.PathEscape(c.model) + ":generateContent"
	body, err := c.do(ctx, http.MethodPost, path, req)
	if err != nil {
		return "", err
	}
	text := gjson.GetBytes(body, candidateTextPath)
	if !text.Exists() || text.String() == "" {
		return "", ErrNoCandidate
	}
	return text.String(), nil
}

// SolveWordProblem asks the model for a worked solution to problem, with
// Google Search grounding enabled.
func (c *Client) SolveWordProblem(ctx context.Context, problem string) (string, error) {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return "", ErrEmptyProblem
	}
	system := TextContent(WordProblemPrompt)
	return c.GenerateContent(ctx, GenerateContentRequest{
		Contents:          []Content{TextContent(problem)},
		Tools:             []Tool{{GoogleSearch: &GoogleSearch{}}},
		SystemInstruction: &system,
	})
}
