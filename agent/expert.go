// Package agent provides the interactive trading assistant, a Gemini chat
// session primed with the day's portfolio report.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the model used when the expert does not name one.
const DefaultModel = "gemini-2.5-flash"

// Expert represents a chat with one specialized assistant.
type Expert struct {
	Name        string
	Description string
	ModelName   string
	Config      *genai.GenerateContentConfig
	chat        *genai.Chat
}

// NewTrader returns the portfolio trader expert, primed with the daily
// report so its answers refer to the actual book.
func NewTrader(report string) *Expert {
	instruction := "You are a portfolio strategist for a small equities and ETF account. " +
		"You decide buys, sells and stop-loss levels within the cash available. " +
		"Orders fill against the next session's bar; there is no intraday trading. " +
		"Here is today's report:\n\n" + report

	return &Expert{
		Name:        "trader",
		Description: "Decides portfolio moves from the daily report.",
		ModelName:   DefaultModel,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: instruction}},
			},
		},
	}
}

// Start creates the underlying chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	model := e.ModelName
	if model == "" {
		model = DefaultModel
	}
	chat, err := client.Chats.Create(ctx, model, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends the parts to the expert and returns its first real answer.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from expert %s", e.Name)
	}
	return resp.Candidates[0].Content, nil
}
