package services

import (
	"context"
	"testing"
	"time"

	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTooShortFailsBeforeStorage(t *testing.T) {
	// zero-value service: any storage access would panic
	svc := &DisasterService{}
	agency := entity.Actor{ID: "a", Role: entity.RoleAgency}

	_, err := svc.Search(context.Background(), agency, " ab ")
	requireKind(t, err, apperr.KindValidation, apperr.CodeValidation)
}

func TestSearchRanksAndScopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	withDesc := func(a entity.Actor, district, village, desc string) *entity.Disaster {
		in := report(district, village)
		in.Description = &desc
		return f.create(t, a, in)
	}
	once := withDesc(f.kelam, "Sintang", "Kelam", "Jalan desa tergenang banjir")
	twice := withDesc(f.kelam, "Sintang", "Kelam", "Banjir besar, banjir susulan malam hari")
	withDesc(f.kelam, "Sintang", "Kelam", "Angin kencang merobohkan pohon")
	elsewhere := withDesc(f.agency, "Dedai", "Dedai", "Banjir 50_% rumah")

	hits, err := f.svc.Search(ctx, f.kelam, "BANJIR")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, twice.ID, hits[0].ID)
	assert.Equal(t, once.ID, hits[1].ID)
	assert.Greater(t, hits[0].Rank, hits[1].Rank)

	hits, err = f.svc.Search(ctx, f.agency, "banjir")
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	// LIKE wildcards in the term are literal
	hits, err = f.svc.Search(ctx, f.agency, "50_%")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, elsewhere.ID, hits[0].ID)

	hits, err = f.svc.Search(ctx, f.agency, "kelam")
	require.NoError(t, err)
	assert.Len(t, hits, 3, "location fields are searchable")
}

func TestSearchCapsResults(t *testing.T) {
	f := newFixture(t)
	desc := "longsor menutup jalan"
	for i := 0; i < MaxSearchResults+5; i++ {
		in := report("Sintang", "Kelam")
		in.Description = &desc
		f.create(t, f.kelam, in)
	}
	hits, err := f.svc.Search(context.Background(), f.agency, "longsor")
	require.NoError(t, err)
	assert.Len(t, hits, MaxSearchResults)
}

func TestSearchRanksWholeScopeNotJustRecent(t *testing.T) {
	f := newFixture(t)
	clock := fixedNow
	f.svc.Now = func() time.Time { clock = clock.Add(time.Minute); return clock }

	strong := "kebakaran lahan, kebakaran meluas ke kebakaran kebun"
	in := report("Sintang", "Kelam")
	in.Description = &strong
	oldest := f.create(t, f.kelam, in)

	weak := "sisa kebakaran kecil"
	for i := 0; i < MaxSearchResults+5; i++ {
		in := report("Sintang", "Kelam")
		in.Description = &weak
		f.create(t, f.kelam, in)
	}

	hits, err := f.svc.Search(context.Background(), f.agency, "kebakaran")
	require.NoError(t, err)
	require.Len(t, hits, MaxSearchResults)
	assert.Equal(t, oldest.ID, hits[0].ID)
	assert.Equal(t, 3*2, hits[0].Rank)
	for _, h := range hits[1:] {
		assert.Equal(t, 2, h.Rank)
		assert.NotNil(t, h.Reporter)
	}
	// equal scores: newest first
	assert.True(t, !hits[1].ReportedAt.Before(hits[2].ReportedAt))
}
