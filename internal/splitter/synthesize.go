package splitter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pders01/git-split/internal/models"
)

const synthesisSystemPrompt = "You are an expert at writing clear, descriptive commit messages " +
	"following the conventional commit format (feat:, fix:, docs:, refactor:, etc.). " +
	"Focus on the intent and user impact of a change, not just the mechanics."

// synthesizeAll fills in every group's commit title and message. Language
// model calls are strictly sequential with a fixed delay between them to
// respect upstream rate limits; any failure is recovered locally with the
// deterministic fallback message, never propagated.
func (s *Splitter) synthesizeAll(ctx context.Context, groups []*models.CommitGroup) {
	for i, group := range groups {
		if i > 0 && s.opts.RequestDelay > 0 {
			select {
			case <-time.After(s.opts.RequestDelay):
			case <-ctx.Done():
			}
		}
		s.synthesize(ctx, group)
		s.report(models.ProgressInfo, "Group %d/%d: %s", i+1, len(groups), group.CommitTitle)
	}
}

// synthesize asks the language model for a title/message pair for one
// group and falls back to templated text when the model is unavailable,
// errors, or returns an unparseable response.
func (s *Splitter) synthesize(ctx context.Context, group *models.CommitGroup) {
	title, message := fallbackMessage(group.FeatureName)
	defer func() {
		group.CommitTitle = title
		group.CommitMessage = message
	}()

	generator, err := s.lazyGenerator()
	if err != nil {
		s.report(models.ProgressWarning, "Using fallback message for %s: %v", group.FeatureName, err)
		return
	}

	response, err := generator.Generate(ctx, synthesisSystemPrompt, buildPrompt(group, s.maxImportantLines()))
	if err != nil {
		s.report(models.ProgressWarning, "Message synthesis failed for %s: %v", group.FeatureName, err)
		return
	}

	parsedTitle, parsedMessage := parseResponse(response)
	if parsedTitle != "" {
		title = parsedTitle
	}
	if parsedMessage != "" {
		message = parsedMessage
	}
}

func (s *Splitter) maxImportantLines() int {
	if s.opts.MaxImportantLines > 0 {
		return s.opts.MaxImportantLines
	}
	return defaultMaxImportantLines
}

// buildPrompt assembles the user prompt: summarized per-file diff content,
// the cluster evidence string, and strict two-line format instructions.
func buildPrompt(group *models.CommitGroup, maxLines int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Group: %s (%s)\n\nFiles changed:\n", group.FeatureName, group.Description)
	for _, fc := range group.Files {
		b.WriteString(summarizeDiff(fc, maxLines))
		b.WriteString("\n")
	}

	b.WriteString("Respond with exactly two lines:\n")
	b.WriteString("TITLE: <conventional commit title, max 50 characters>\n")
	b.WriteString("MESSAGE: <one paragraph explaining what changed and why>\n")

	return b.String()
}

// parseResponse scans the model output line by line for the TITLE: and
// MESSAGE: markers. Missing or empty fields are returned as empty strings
// so the caller can substitute the fallback.
func parseResponse(response string) (title, message string) {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "TITLE:"); ok && title == "" {
			title = strings.TrimSpace(rest)
		} else if rest, ok := strings.CutPrefix(line, "MESSAGE:"); ok && message == "" {
			message = strings.TrimSpace(rest)
		}
	}
	return title, message
}

// fallbackMessage is the deterministic message used whenever synthesis
// cannot produce one.
func fallbackMessage(featureName string) (title, message string) {
	return "feat: " + featureName, "Changes related to " + featureName
}
