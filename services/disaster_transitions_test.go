package services

import (
	"context"
	"testing"

	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitted(t *testing.T, f *fixture) *entity.Disaster {
	t.Helper()
	in := report("Sintang", "Kelam")
	in.Status = string(entity.StatusSubmitted)
	return f.create(t, f.kelam, in)
}

func (f *fixture) status(t *testing.T, id string) entity.DisasterStatus {
	t.Helper()
	d, err := f.svc.Get(context.Background(), f.agency, id)
	require.NoError(t, err)
	return d.Status
}

func TestOnlyAgencyCanVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := submitted(t, f)

	for _, a := range []entity.Actor{f.kelam, f.sintang} {
		_, err := f.svc.UpdateStatus(ctx, a, d.ID, UpdateStatusInput{Status: "verified"})
		requireKind(t, err, apperr.KindAuthorization, apperr.CodeInsufficientPermissions)
		assert.Equal(t, entity.StatusSubmitted, f.status(t, d.ID))
	}

	verified, err := f.svc.UpdateStatus(ctx, f.agency, d.ID, UpdateStatusInput{Status: "verified"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusVerified, verified.Status)
	require.NotNil(t, verified.VerifiedBy)
	assert.Equal(t, f.agency.ID, *verified.VerifiedBy)
	require.NotNil(t, verified.VerifiedAt)
	assert.Nil(t, verified.RejectionReason)
	require.NotNil(t, verified.Verifier)
}

func TestRejectRequiresReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := submitted(t, f)

	_, err := f.svc.UpdateStatus(ctx, f.agency, d.ID, UpdateStatusInput{Status: "rejected", RejectionReason: "   "})
	requireKind(t, err, apperr.KindValidation, apperr.CodeValidation)
	assert.Equal(t, entity.StatusSubmitted, f.status(t, d.ID))

	rejected, err := f.svc.UpdateStatus(ctx, f.agency, d.ID, UpdateStatusInput{Status: "rejected", RejectionReason: "foto tidak jelas"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "foto tidak jelas", *rejected.RejectionReason)
}

func TestReopenClearsReviewMetadata(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := submitted(t, f)

	_, err := f.svc.UpdateStatus(ctx, f.agency, d.ID, UpdateStatusInput{Status: "rejected", RejectionReason: "data kurang"})
	require.NoError(t, err)

	// the reporter fixes the report and resubmits
	reopened, err := f.svc.UpdateStatus(ctx, f.kelam, d.ID, UpdateStatusInput{Status: "submitted"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSubmitted, reopened.Status)
	assert.Nil(t, reopened.VerifiedBy)
	assert.Nil(t, reopened.VerifiedAt)
	assert.Nil(t, reopened.RejectionReason)

	logs, err := f.svc.ActivityLog(ctx, f.agency, d.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestIllegalTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.create(t, f.kelam, report("Sintang", "Kelam"))
	_, err := f.svc.UpdateStatus(ctx, f.agency, draft.ID, UpdateStatusInput{Status: "verified"})
	requireKind(t, err, apperr.KindValidation, apperr.CodeInvalidStatusTransition)
	assert.Equal(t, entity.StatusDraft, f.status(t, draft.ID))

	d := submitted(t, f)
	_, err = f.svc.UpdateStatus(ctx, f.agency, d.ID, UpdateStatusInput{Status: "verified"})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, f.agency, d.ID, UpdateStatusInput{Status: "rejected", RejectionReason: "duplikat"})
	requireKind(t, err, apperr.KindValidation, apperr.CodeInvalidStatusTransition)
	assert.Equal(t, entity.StatusVerified, f.status(t, d.ID))

	_, err = f.svc.UpdateStatus(ctx, f.agency, d.ID, UpdateStatusInput{Status: "archived"})
	requireKind(t, err, apperr.KindValidation, apperr.CodeInvalidStatus)
}

func TestStatusChangeNeedsMutationRights(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.create(t, f.kelam, report("Sintang", "Kelam"))

	_, err := f.svc.UpdateStatus(ctx, f.kelamOther, d.ID, UpdateStatusInput{Status: "submitted"})
	requireKind(t, err, apperr.KindAuthorization, apperr.CodeDisasterAccessDenied)

	_, err = f.svc.UpdateStatus(ctx, f.dedai, d.ID, UpdateStatusInput{Status: "submitted"})
	requireKind(t, err, apperr.KindNotFound, apperr.CodeDisasterNotFound)

	assert.Equal(t, entity.StatusDraft, f.status(t, d.ID))
}

func TestStatusGuardDetectsConcurrentChange(t *testing.T) {
	f := newFixture(t)
	d := submitted(t, f)

	// another reviewer already moved the report on
	require.NoError(t, f.db.Model(&entity.Disaster{}).Where("id = ?", d.ID).Update("status", entity.StatusVerified).Error)

	affected, err := f.svc.Repo.UpdateStatusGuard(f.db, d.ID, entity.StatusSubmitted, map[string]any{"status": entity.StatusRejected})
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.Equal(t, entity.StatusVerified, f.status(t, d.ID))
}
