package services

import (
	"context"
	"time"

	"github.com/ilhamriadi/projects.co.id/access"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/ilhamriadi/projects.co.id/repository"
)

type StatsQuery struct {
	District     string
	Village      string
	DisasterType string
	StartDate    string
	EndDate      string
}

// Statistics คือ summary ตาม scope (ทำงานบน DisasterService เดียวกัน)
func (s *DisasterService) Statistics(ctx context.Context, a entity.Actor, q StatsQuery) (*repository.DisasterSummary, error) {
	if err := checkActor(a); err != nil {
		return nil, err
	}
	district, village := s.canonicalArea(q.District, q.Village)
	c := repository.StatsCriteria{District: district, Village: village}
	if q.DisasterType != "" {
		c.DisasterType = entity.DisasterType(q.DisasterType)
		if !c.DisasterType.Valid() {
			return nil, apperr.Validation(apperr.CodeInvalidDisasterType, "Invalid disaster type")
		}
	}
	if q.StartDate != "" {
		t, err := parseDate(q.StartDate, "start_date")
		if err != nil {
			return nil, err
		}
		c.From = &t
	}
	if q.EndDate != "" {
		t, err := parseDate(q.EndDate, "end_date")
		if err != nil {
			return nil, err
		}
		c.To = &t
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.Summary(ctx, access.ScopeFilter(a), c)
}

// CountsByType นับทั้งระบบ ไม่ผ่าน scope
func (s *DisasterService) CountsByType(ctx context.Context) ([]repository.TypeCount, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.Repo.CountByType(ctx)
	if out == nil && err == nil {
		out = []repository.TypeCount{}
	}
	return out, err
}

// CountsByMonth คืนครบ 12 เดือน (เดือนที่ไม่มีรายงาน = 0); year 0 = ปีปัจจุบัน
func (s *DisasterService) CountsByMonth(ctx context.Context, a entity.Actor, year int) ([]repository.MonthCount, error) {
	if err := checkActor(a); err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.Now().Year()
	}
	if year < 1900 || year > 2100 {
		return nil, apperr.Validation(apperr.CodeValidation, "year must be between 1900 and 2100")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.Repo.CountByMonth(ctx, access.ScopeFilter(a), year)
	if err != nil {
		return nil, err
	}
	out := make([]repository.MonthCount, 12)
	for i := range out {
		out[i].Month = int(time.January) + i
	}
	for _, r := range rows {
		if r.Month >= 1 && r.Month <= 12 {
			out[r.Month-1] = r
		}
	}
	return out, nil
}

func (s *DisasterService) CountsByArea(ctx context.Context, a entity.Actor) ([]repository.AreaCount, error) {
	if err := checkActor(a); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.Repo.CountByArea(ctx, access.ScopeFilter(a))
	if out == nil && err == nil {
		out = []repository.AreaCount{}
	}
	return out, err
}
