package migration

import (
	"fmt"
	"io"
	"os"

	"github.com/temirov/pagemove/internal/utils"
)

const (
	createdOutcomeLineTemplateConstant = "created  %s (destination id %s)\n"
	skippedOutcomeLineTemplateConstant = "skipped  %s: %s\n"
	failedOutcomeLineTemplateConstant  = "failed   %s: %v\n"
	summaryLineTemplateConstant        = "Migration finished: %d created, %d skipped, %d failed (%d total)\n"
)

// Reporter emits per-project outcome lines to an underlying sink. Output is advisory; the
// authoritative record is the returned Report.
type Reporter interface {
	Printf(format string, arguments ...any)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes flushed output to the provided io.Writer.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil || writer == io.Discard {
		writer = os.Stdout
	}
	return writerReporter{writer: utils.NewFlushingWriter(writer)}
}

func (reporter writerReporter) Printf(format string, arguments ...any) {
	if reporter.writer == nil {
		return
	}
	fmt.Fprintf(reporter.writer, format, arguments...)
}

type discardReporter struct{}

// NewDiscardReporter constructs a Reporter that drops all output.
func NewDiscardReporter() Reporter {
	return discardReporter{}
}

func (discardReporter) Printf(string, ...any) {}

func (service *Service) reportOutcome(projectResult ProjectResult) {
	switch projectResult.Outcome {
	case OutcomeCreated:
		service.reporter.Printf(createdOutcomeLineTemplateConstant, projectResult.ProjectName, projectResult.CreatedID)
	case OutcomeSkipped:
		service.reporter.Printf(skippedOutcomeLineTemplateConstant, projectResult.ProjectName, projectResult.Reason)
	case OutcomeFailed:
		service.reporter.Printf(failedOutcomeLineTemplateConstant, projectResult.ProjectName, projectResult.Err)
	}
}

func (service *Service) reportSummary(report Report) {
	service.reporter.Printf(summaryLineTemplateConstant, report.Created, report.Skipped, report.Failed, len(report.Results))
}
