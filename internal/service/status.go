package service

import (
	"strings"
	"time"

	"github.com/noah-isme/classroom-report-api/internal/models"
)

// DeriveStatus computes the display status of one coursework item for one
// student. submission may be nil when the student has no record for the item.
// effectiveEnd is the cutoff used to decide whether the due date has passed:
// the end of the report's end-date filter when one is given, otherwise the
// instant the report is generated.
func DeriveStatus(item models.CourseworkItem, submission *models.Submission, effectiveEnd time.Time) models.StatusDescriptor {
	dueHasPassed := false
	if due, ok := item.DueInstant(); ok && !due.After(effectiveEnd) {
		dueHasPassed = true
	}

	if submission == nil {
		return unsubmittedStatus(dueHasPassed, false)
	}

	status := models.StatusDescriptor{
		Code:  models.StatusCode(submission.State),
		Label: humanizeState(string(submission.State)),
		Late:  submission.Late,
	}

	switch submission.State {
	case models.SubmissionReturned:
		status.Code = models.StatusReturned
		status.Label = "Returned"
		if status.Late {
			status.Label = "Returned (late)"
		}
	case models.SubmissionTurnedIn:
		status.Code = models.StatusTurnedIn
		status.Label = "Turned in"
		if status.Late {
			status.Label = "Turned in (late)"
		}
	case models.SubmissionReclaimed, models.SubmissionCreated, models.SubmissionNew, models.SubmissionDraft:
		// The late flag is retained on purpose: an item reclaimed after a
		// late turn-in still counts as late even though its status reverts
		// to Missing/Assigned.
		return unsubmittedStatus(dueHasPassed, status.Late)
	}

	return status
}

func unsubmittedStatus(dueHasPassed, late bool) models.StatusDescriptor {
	if dueHasPassed {
		return models.StatusDescriptor{Code: models.StatusMissing, Label: "Missing", Late: late}
	}
	return models.StatusDescriptor{Code: models.StatusAssigned, Label: "Assigned", Late: late}
}

// humanizeState turns a raw submission state into a display label:
// lower-cased, underscore-split, each word capitalized.
func humanizeState(state string) string {
	words := strings.Split(strings.ToLower(state), "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// AccumulateStatus folds one derived status into the aggregate counters.
// Graded counts only a present assignedGrade; a draft grade never does.
// TotalAssigned is set once by the assembler, not incremented here.
func AccumulateStatus(m *models.ReportMetrics, status models.StatusDescriptor, submission *models.Submission) {
	switch status.Code {
	case models.StatusTurnedIn:
		m.TurnedIn++
	case models.StatusReturned:
		m.Returned++
	case models.StatusMissing:
		m.Missing++
	}
	if status.Late {
		m.Late++
	}
	if submission != nil && submission.AssignedGrade != nil {
		m.Graded++
	}
}
