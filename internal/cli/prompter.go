package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/calllog/internal/model"
	"golang.org/x/text/cases"
)

// ErrInputTerminated is returned when input ends in the middle of a call.
var ErrInputTerminated = errors.New("input terminated")

// CallAppender is the part of a call log the prompter writes to.
type CallAppender interface {
	NextNumber() int
	Append(call model.Call)
}

// Prompter collects new calls from an interactive user.
type Prompter struct {
	writer   io.Writer
	reader   *LineReader
	stopWord string
	yesWord  string
}

// NewPrompter creates a prompter. Entering stopWord as the phone ends the
// add loop; yesWord confirms yes/no questions. Both are matched ignoring case.
func NewPrompter(reader io.Reader, writer io.Writer, stopWord, yesWord string) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader:   NewLineReader(reader),
		writer:   writer,
		stopWord: stopWord,
		yesWord:  yesWord,
	}
}

// Confirm asks a yes/no question. Anything other than the yes word, including
// end of input, is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.ask(ctx, fmt.Sprintf("%s (%s/%s)", question, p.yesWord, model.ResolvedNo))
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return equalFold(answer, p.yesWord), nil
}

// PromptCall reads the phone, reason and resolved flag of one call. It
// returns false when the user enters the stop word or input ends before a
// phone is given.
func (p *Prompter) PromptCall(ctx context.Context) (phone, reason, resolved string, ok bool, err error) {
	phone, err = p.ask(ctx, fmt.Sprintf("Phone (or '%s')", p.stopWord))
	if errors.Is(err, io.EOF) {
		return "", "", "", false, nil
	}
	if err != nil {
		return "", "", "", false, err
	}
	if equalFold(phone, p.stopWord) {
		return "", "", "", false, nil
	}

	if reason, err = p.ask(ctx, "Reason for the call"); err != nil {
		return "", "", "", false, midCallError(err)
	}
	prompt := fmt.Sprintf("Problem resolved (%s/%s)", p.yesWord, model.ResolvedNo)
	if resolved, err = p.ask(ctx, prompt); err != nil {
		return "", "", "", false, midCallError(err)
	}

	return phone, reason, resolved, true, nil
}

// CollectCalls prompts for calls until the stop word, numbering each with
// the log's next number and appending it. It returns the calls added.
func (p *Prompter) CollectCalls(ctx context.Context, log CallAppender) ([]model.Call, error) {
	var added []model.Call
	for {
		phone, reason, resolved, ok, err := p.PromptCall(ctx)
		if err != nil {
			return added, err
		}
		if !ok {
			return added, nil
		}

		call := model.NewCall(log.NextNumber(), phone, reason, resolved)
		log.Append(call)
		added = append(added, call)

		slog.Debug("added call", "number", call.Number)
		if _, err := fmt.Fprintln(p.writer, FormatSuccess(fmt.Sprintf("Added %s", call))); err != nil {
			slog.Warn("Failed to write confirmation", "error", err)
		}
	}
}

func (p *Prompter) ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return p.reader.ReadLine(ctx)
}

func midCallError(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrInputTerminated
	}
	return err
}

// equalFold matches control words ignoring case and surrounding spaces.
func equalFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}
