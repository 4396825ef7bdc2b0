// Command triage classifies support tickets and shows the most recent ones.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/spec-kit/ticket-triage/internal/app"
	"github.com/spec-kit/ticket-triage/internal/config"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/intake"
	"github.com/spec-kit/ticket-triage/internal/observability"
	"github.com/spec-kit/ticket-triage/internal/render"
	"github.com/spec-kit/ticket-triage/internal/service"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// Exit codes follow sysexits.h.
const (
	exitOK          = 0
	exitFailure     = 1
	exitDataErr     = 65
	exitNoInput     = 66
	exitUnavailable = 69
	exitIOErr       = 74
	exitConfig      = 78
)

type options struct {
	ticket      string
	interactive bool
	allSamples  bool
	limit       int
	args        []string
}

type ticketProcessor interface {
	Process(ctx context.Context, input service.TicketInput) (*service.ProcessResult, error)
	RecentTickets(ctx context.Context, limit int) ([]domain.TicketView, error)
}

type job struct {
	label   string
	content string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		reportError(stderr, "configuration", err)
		return exitCode(err)
	}
	if opts.limit <= 0 {
		opts.limit = cfg.App.RecentLimit
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(stderr, "failed to init logger: %v\n", err)
		return exitFailure
	}
	defer logger.Sync() //nolint:errcheck

	jobs, err := collectJobs(opts, stdin, stdout, isTerminal(stdin))
	if err != nil {
		reportError(stderr, "input", err)
		return exitCode(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		reportError(stderr, "startup", err)
		return exitCode(err)
	}
	defer a.Close()

	code := exitOK
	for _, j := range jobs {
		if c := processJob(ctx, a.Triage, j, opts.limit, stdout, stderr, logger); c != exitOK {
			code = c
		}
		if ctx.Err() != nil {
			break
		}
	}
	return code
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("triage", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.ticket, "ticket", "t", "", "ticket text to classify")
	fs.BoolVarP(&opts.interactive, "interactive", "i", false, "type or paste a ticket, ending with a line containing END")
	fs.BoolVarP(&opts.allSamples, "all-samples", "a", false, "process every built-in sample ticket")
	fs.IntVarP(&opts.limit, "limit", "n", 0, "number of recent tickets to show (default from RECENT_TICKETS_LIMIT)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: triage [flags] [ticket text]\n\n%s", fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.limit < 0 {
		return opts, apperrors.NewValidationError("--limit must not be negative", nil)
	}
	opts.args = fs.Args()
	return opts, nil
}

// collectJobs applies the input precedence: samples, then explicit text, then
// the interactive prompt, then piped stdin, then the default sample.
func collectJobs(opts options, stdin io.Reader, prompt io.Writer, stdinIsTTY bool) ([]job, error) {
	switch {
	case opts.allSamples:
		samples := intake.Samples()
		jobs := make([]job, 0, len(samples))
		for _, s := range samples {
			jobs = append(jobs, job{label: s.Description, content: s.Content})
		}
		return jobs, nil
	case opts.ticket != "" || len(opts.args) > 0:
		text := opts.ticket
		if text == "" {
			text = strings.Join(opts.args, " ")
		}
		if strings.TrimSpace(text) == "" {
			return nil, apperrors.NewInputEmpty("ticket text is empty")
		}
		return []job{{label: "ticket", content: text}}, nil
	case opts.interactive:
		text, err := intake.ReadInteractive(stdin, prompt, intake.DefaultSentinel)
		if err != nil {
			return nil, err
		}
		return []job{{label: "interactive ticket", content: text}}, nil
	case !stdinIsTTY && stdin != nil:
		text, err := intake.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return []job{{label: "stdin", content: text}}, nil
	default:
		s := intake.DefaultSample()
		return []job{{label: s.Description, content: s.Content}}, nil
	}
}

// processJob runs one ticket and then shows the recent tickets, whether or
// not the ticket made it to storage.
func processJob(ctx context.Context, triage ticketProcessor, j job, limit int, stdout, stderr io.Writer, logger *zap.Logger) int {
	heading := lipgloss.NewRenderer(stdout).NewStyle().Bold(true)
	fmt.Fprintln(stdout, heading.Render("Processing: "+j.label))

	code := exitOK
	var highlight int64
	contact := intake.ExtractContact(j.content)
	res, err := triage.Process(ctx, service.TicketInput{Content: j.content, Email: contact.Email, Name: contact.Name})
	if err != nil {
		reportError(stderr, j.label, err)
		code = exitCode(err)
	} else {
		c := res.Classification
		highlight = res.TicketID
		fmt.Fprintf(stdout, "Ticket #%d: %s / %s, sentiment %.2f\n%s\n\n",
			res.TicketID, c.Category(), c.Priority(), c.SentimentScore(), c.Summary())
	}

	views, err := triage.RecentTickets(ctx, limit)
	if err != nil {
		reportError(stderr, "recent tickets", err)
		if code == exitOK {
			code = exitCode(err)
		}
		return code
	}
	if err := render.TicketTable(stdout, views, highlight); err != nil {
		logger.Warn("render table", zap.Error(err))
	}
	fmt.Fprintln(stdout)
	return code
}

func reportError(w io.Writer, label string, err error) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	msg := fmt.Sprintf("%s failed [%s]: %v", label, apperrors.CodeOf(err), err)
	var stageErr *service.StageError
	if errors.As(err, &stageErr) {
		msg += fmt.Sprintf(" (last stage: %s)", stageErr.LastStage)
	}
	fmt.Fprintln(w, style.Render(msg))
}

func exitCode(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeConfigurationMissing:
		return exitConfig
	case apperrors.CodeInputEmpty:
		return exitNoInput
	case apperrors.CodeOracleUnavailable:
		return exitUnavailable
	case apperrors.CodeOracleMalformed, apperrors.CodeConstraintViolation:
		return exitDataErr
	case apperrors.CodeStorageFailure:
		return exitIOErr
	default:
		return exitFailure
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
