package api

// Part is one piece of message content.
type Part struct {
	Text string `json:"text"`
}

// Content is a message made of parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GoogleSearch enables grounding with Google Search. It has no options.
type GoogleSearch struct{}

// Tool is a tool the model may call.
type Tool struct {
	GoogleSearch *GoogleSearch `json:"google_search,omitempty"`
}

// GenerateContentRequest is the request body for
// POST /v1beta/models/{model}:generateContent.
type GenerateContentRequest struct {
	Contents          []Content `json:"contents"`
	Tools             []Tool    `json:"tools,omitempty"`
	SystemInstruction *Content  `json:"systemInstruction,omitempty"`
}

// TextContent wraps text as a single-part message.
func TextContent(text string) Content {
	return Content{Parts: []Part{{Text: text}}}
}
