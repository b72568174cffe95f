package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/classroom-report-api/internal/models"
)

var statusNow = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func workDue(date *models.Date, tod *models.TimeOfDay) models.CourseworkItem {
	return models.CourseworkItem{
		ID:         "cw-1",
		Title:      "Essay",
		DueDate:    date,
		DueTime:    tod,
		UpdateTime: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestDeriveStatusNoSubmissionNoDueDate(t *testing.T) {
	status := DeriveStatus(workDue(nil, nil), nil, statusNow)

	assert.Equal(t, models.StatusAssigned, status.Code)
	assert.Equal(t, "Assigned", status.Label)
	assert.False(t, status.Late)
}

func TestDeriveStatusNoSubmissionPastDue(t *testing.T) {
	status := DeriveStatus(workDue(&models.Date{Year: 2024, Month: 3, Day: 1}, nil), nil, statusNow)

	assert.Equal(t, models.StatusMissing, status.Code)
	assert.Equal(t, "Missing", status.Label)
	assert.False(t, status.Late)
}

func TestDeriveStatusNoSubmissionFutureDue(t *testing.T) {
	status := DeriveStatus(workDue(&models.Date{Year: 2024, Month: 3, Day: 10}, nil), nil, statusNow)

	assert.Equal(t, models.StatusAssigned, status.Code)
}

func TestDeriveStatusDueInstantEqualToCutoffHasPassed(t *testing.T) {
	// A due instant exactly at the cutoff counts as passed.
	due := &models.Date{Year: 2024, Month: 3, Day: 5}
	tod := &models.TimeOfDay{Hours: 12}
	status := DeriveStatus(workDue(due, tod), nil, statusNow)

	assert.Equal(t, models.StatusMissing, status.Code)
}

func TestDeriveStatusTurnedIn(t *testing.T) {
	sub := &models.Submission{State: models.SubmissionTurnedIn}
	status := DeriveStatus(workDue(nil, nil), sub, statusNow)

	assert.Equal(t, models.StatusTurnedIn, status.Code)
	assert.Equal(t, "Turned in", status.Label)
	assert.False(t, status.Late)
}

func TestDeriveStatusTurnedInLate(t *testing.T) {
	sub := &models.Submission{State: models.SubmissionTurnedIn, Late: true}
	status := DeriveStatus(workDue(nil, nil), sub, statusNow)

	assert.Equal(t, models.StatusTurnedIn, status.Code)
	assert.Equal(t, "Turned in (late)", status.Label)
	assert.True(t, status.Late)
}

func TestDeriveStatusReturned(t *testing.T) {
	sub := &models.Submission{State: models.SubmissionReturned}
	status := DeriveStatus(workDue(nil, nil), sub, statusNow)

	assert.Equal(t, models.StatusReturned, status.Code)
	assert.Equal(t, "Returned", status.Label)
}

func TestDeriveStatusReturnedLate(t *testing.T) {
	sub := &models.Submission{State: models.SubmissionReturned, Late: true}
	status := DeriveStatus(workDue(nil, nil), sub, statusNow)

	assert.Equal(t, "Returned (late)", status.Label)
	assert.True(t, status.Late)
}

func TestDeriveStatusDraftRevertsToMissingWhenPastDue(t *testing.T) {
	sub := &models.Submission{State: models.SubmissionDraft}
	status := DeriveStatus(workDue(&models.Date{Year: 2024, Month: 3, Day: 1}, nil), sub, statusNow)

	assert.Equal(t, models.StatusMissing, status.Code)
	assert.Equal(t, "Missing", status.Label)
}

// An item reclaimed after a late turn-in keeps late=true even though its
// status reverts to Assigned. This mirrors observed behaviour and must not
// be "corrected".
func TestDeriveStatusReclaimedKeepsLateFlag(t *testing.T) {
	sub := &models.Submission{State: models.SubmissionReclaimed, Late: true}
	status := DeriveStatus(workDue(&models.Date{Year: 2024, Month: 3, Day: 10}, nil), sub, statusNow)

	assert.Equal(t, models.StatusAssigned, status.Code)
	assert.Equal(t, "Assigned", status.Label)
	assert.True(t, status.Late)
}

func TestDeriveStatusUnknownStatePassesThrough(t *testing.T) {
	sub := &models.Submission{State: "SUBMISSION_STATE_UNSPECIFIED"}
	status := DeriveStatus(workDue(nil, nil), sub, statusNow)

	assert.Equal(t, models.StatusCode("SUBMISSION_STATE_UNSPECIFIED"), status.Code)
	assert.Equal(t, "Submission State Unspecified", status.Label)
}

func TestAccumulateStatusCounters(t *testing.T) {
	grade := 95.0
	m := models.ReportMetrics{}

	AccumulateStatus(&m, models.StatusDescriptor{Code: models.StatusTurnedIn, Late: true}, &models.Submission{})
	AccumulateStatus(&m, models.StatusDescriptor{Code: models.StatusReturned}, &models.Submission{AssignedGrade: &grade})
	AccumulateStatus(&m, models.StatusDescriptor{Code: models.StatusMissing}, nil)
	AccumulateStatus(&m, models.StatusDescriptor{Code: models.StatusAssigned}, nil)

	assert.Equal(t, 1, m.TurnedIn)
	assert.Equal(t, 1, m.Returned)
	assert.Equal(t, 1, m.Missing)
	assert.Equal(t, 1, m.Late)
	assert.Equal(t, 1, m.Graded)
}

func TestAccumulateStatusDraftGradeDoesNotCount(t *testing.T) {
	draft := 80.0
	m := models.ReportMetrics{}

	AccumulateStatus(&m, models.StatusDescriptor{Code: models.StatusTurnedIn}, &models.Submission{DraftGrade: &draft})

	assert.Equal(t, 0, m.Graded)
}
