package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent runs the interactive chat session with the trader expert.
type Agent struct {
	w      io.Writer
	r      *bufio.Reader
	Trader *Expert
}

// New creates a new Agent writing its output to w and reading user input
// from r.
func New(w io.Writer, r io.Reader, trader *Expert) *Agent {
	return &Agent{w: w, r: bufio.NewReader(r), Trader: trader}
}

const prompt = "assist> "

// Run starts the REPL. Any prompts given are consumed before reading from
// the input, which keeps scripted sessions possible.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Trader.chat == nil {
		if err := a.Trader.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to ygt assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Trader.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
