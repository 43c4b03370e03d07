package migration

const (
	outcomeCreatedStringConstant = "created"
	outcomeSkippedStringConstant = "skipped"
	outcomeFailedStringConstant  = "failed"
)

// Outcome enumerates terminal per-project migration states.
type Outcome string

// Terminal outcome enumerations.
const (
	OutcomeCreated Outcome = Outcome(outcomeCreatedStringConstant)
	OutcomeSkipped Outcome = Outcome(outcomeSkippedStringConstant)
	OutcomeFailed  Outcome = Outcome(outcomeFailedStringConstant)
)

// SkipReason describes an expected, non-error reason a project was not migrated.
type SkipReason string

// Skip reason enumerations.
const (
	SkipReasonNoGitIntegration       SkipReason = "project is not linked to a git repository"
	SkipReasonUnsupportedGitProvider SkipReason = "project git provider is not supported for Pages creation"
	SkipReasonAlreadyExists          SkipReason = "destination project already exists"
	SkipReasonSourceProjectVanished  SkipReason = "source project no longer exists"
)

// ProjectResult records one project's terminal outcome. It is the only state that outlives an iteration.
type ProjectResult struct {
	ProjectID   string
	ProjectName string
	Outcome     Outcome
	Reason      string
	CreatedID   string
	Err         error
}

// Report accumulates per-project results plus outcome counts for a whole run.
type Report struct {
	Results []ProjectResult
	Created int
	Skipped int
	Failed  int
}

func (report *Report) record(result ProjectResult) {
	report.Results = append(report.Results, result)
	switch result.Outcome {
	case OutcomeCreated:
		report.Created++
	case OutcomeSkipped:
		report.Skipped++
	case OutcomeFailed:
		report.Failed++
	}
}
