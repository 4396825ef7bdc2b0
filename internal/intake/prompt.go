package intake

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// DefaultSentinel ends interactive input.
const DefaultSentinel = "END"

// ReadInteractive prompts on w and reads lines from r until a line equal to
// sentinel or EOF. Blank input yields INPUT_EMPTY.
func ReadInteractive(r io.Reader, w io.Writer, sentinel string) (string, error) {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	fmt.Fprintf(w, "Paste the ticket text. Finish with a line containing only %s (or Ctrl-D).\n", sentinel)

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == sentinel {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read ticket: %w", err)
	}

	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewInputEmpty("no ticket text entered")
	}
	return text, nil
}

// ReadAll reads piped ticket text from r.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read ticket: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", apperrors.NewInputEmpty("no ticket text on stdin")
	}
	return string(data), nil
}
