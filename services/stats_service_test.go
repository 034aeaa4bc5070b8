package services

import (
	"context"
	"testing"

	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStats(t *testing.T, f *fixture) {
	t.Helper()
	in := report("Sintang", "Kelam")
	in.PeopleAffected = 10
	in.HouseholdsAffected = 3
	in.Status = "submitted"
	f.create(t, f.kelam, in)

	in = report("Sintang", "Ladang")
	in.DisasterType = string(entity.DisasterFire)
	in.DisasterDate = "2024-03-02"
	in.PeopleAffected = 4
	in.Dead = 1
	f.create(t, f.ladang, in)

	in = report("Dedai", "Dedai")
	in.DisasterDate = "2023-12-31"
	in.PeopleAffected = 100
	f.create(t, f.agency, in)
}

func TestStatisticsAreScoped(t *testing.T) {
	f := newFixture(t)
	seedStats(t, f)
	ctx := context.Background()

	sum, err := f.svc.Statistics(ctx, f.sintang, StatsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, sum.Total)
	assert.EqualValues(t, 1, sum.Draft)
	assert.EqualValues(t, 1, sum.Submitted)
	assert.EqualValues(t, 14, sum.JiwaAffected)
	assert.EqualValues(t, 1, sum.Dead)

	sum, err = f.svc.Statistics(ctx, f.kelam, StatsQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, sum.Total)
	assert.EqualValues(t, 3, sum.KKAffected)

	sum, err = f.svc.Statistics(ctx, f.agency, StatsQuery{DisasterType: "banjir"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, sum.Total)
	assert.EqualValues(t, 110, sum.JiwaAffected)

	sum, err = f.svc.Statistics(ctx, f.agency, StatsQuery{StartDate: "2024-01-01"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, sum.Total)
}

func TestCountsByTypeIsGlobal(t *testing.T) {
	f := newFixture(t)
	seedStats(t, f)

	types, err := f.svc.CountsByType(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, entity.DisasterFlood, types[0].DisasterType)
	assert.EqualValues(t, 2, types[0].Count)
	assert.EqualValues(t, 110, types[0].JiwaAffected)
	assert.Equal(t, entity.DisasterFire, types[1].DisasterType)
}

func TestCountsByMonth(t *testing.T) {
	f := newFixture(t)
	seedStats(t, f)
	ctx := context.Background()

	months, err := f.svc.CountsByMonth(ctx, f.agency, 0)
	require.NoError(t, err)
	require.Len(t, months, 12)
	assert.Equal(t, 1, months[0].Month)
	assert.EqualValues(t, 1, months[0].Count)
	assert.EqualValues(t, 1, months[2].Count)
	assert.EqualValues(t, 0, months[1].Count)
	assert.Equal(t, 2, months[1].Month)

	months, err = f.svc.CountsByMonth(ctx, f.agency, 2023)
	require.NoError(t, err)
	assert.EqualValues(t, 1, months[11].Count)
	assert.EqualValues(t, 100, months[11].JiwaAffected)

	months, err = f.svc.CountsByMonth(ctx, f.dedai, 2024)
	require.NoError(t, err)
	for _, m := range months {
		assert.Zero(t, m.Count)
	}

	_, err = f.svc.CountsByMonth(ctx, f.agency, 20240)
	assert.Error(t, err)
}

func TestCountsByArea(t *testing.T) {
	f := newFixture(t)
	seedStats(t, f)

	rows, err := f.svc.CountsByArea(context.Background(), f.sintang)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Kelam", rows[0].Village)
	assert.Equal(t, "Ladang", rows[1].Village)

	rows, err = f.svc.CountsByArea(context.Background(), f.agency)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Dedai", rows[0].District)
}
