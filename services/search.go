package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ilhamriadi/projects.co.id/access"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
)

const (
	MinSearchLen     = 3
	MaxSearchResults = 20
)

// SearchHit คือรายงานพร้อมคะแนนความเกี่ยวข้อง
type SearchHit struct {
	entity.Disaster
	Rank int `json:"rank"`
}

// Search ค้นข้อความใน scope ของผู้เรียก คืนไม่เกิน 20 รายการเรียงตามคะแนน
func (s *DisasterService) Search(ctx context.Context, a entity.Actor, term string) ([]SearchHit, error) {
	if err := checkActor(a); err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if utf8.RuneCountInString(term) < MinSearchLen {
		return nil, apperr.Validation(apperr.CodeValidation, "Search term must be at least 3 characters")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.Repo.Search(ctx, access.ScopeFilter(a), strings.Fields(term), MaxSearchResults)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(rows))
	for _, r := range rows {
		hits = append(hits, SearchHit{Disaster: r.Disaster, Rank: r.Rank})
	}
	return hits, nil
}
