package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ilhamriadi/projects.co.id/areas"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/ilhamriadi/projects.co.id/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)

type published struct {
	ev    DisasterEvent
	rooms []string
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) Publish(ev DisasterEvent, rooms ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{ev: ev, rooms: rooms})
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, p := range r.events {
		out = append(out, p.ev.Event)
	}
	return out
}

type fixture struct {
	db     *gorm.DB
	svc    *DisasterService
	events *recorder

	agency     entity.Actor
	sintang    entity.Actor
	dedai      entity.Actor
	kelam      entity.Actor
	kelamOther entity.Actor
	ladang     entity.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	h, err := areas.Default()
	require.NoError(t, err)

	rec := &recorder{}
	svc := NewDisasterService(db, h, rec, 5*time.Second)
	svc.Now = func() time.Time { return fixedNow }

	return &fixture{
		db:         db,
		svc:        svc,
		events:     rec,
		agency:     testutil.NewUser(t, db, entity.RoleAgency, "", ""),
		sintang:    testutil.NewUser(t, db, entity.RoleDistrict, "Sintang", ""),
		dedai:      testutil.NewUser(t, db, entity.RoleDistrict, "Dedai", ""),
		kelam:      testutil.NewUser(t, db, entity.RoleVillage, "Sintang", "Kelam"),
		kelamOther: testutil.NewUser(t, db, entity.RoleVillage, "Sintang", "Kelam"),
		ladang:     testutil.NewUser(t, db, entity.RoleVillage, "Sintang", "Ladang"),
	}
}

func report(district, village string) CreateDisasterInput {
	return CreateDisasterInput{
		District:     district,
		Village:      village,
		DisasterType: string(entity.DisasterFlood),
		DisasterDate: "2024-01-15",
	}
}

func (f *fixture) create(t *testing.T, a entity.Actor, in CreateDisasterInput) *entity.Disaster {
	t.Helper()
	d, err := f.svc.Create(context.Background(), a, in)
	require.NoError(t, err)
	return d
}

func requireKind(t *testing.T, err error, kind apperr.Kind, code string) {
	t.Helper()
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %T: %v", err, err)
	require.Equal(t, kind, e.Kind, e.Error())
	if code != "" {
		require.Equal(t, code, e.Code)
	}
}

func ids(ds []entity.Disaster) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}
