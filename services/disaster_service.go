package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilhamriadi/projects.co.id/access"
	"github.com/ilhamriadi/projects.co.id/areas"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/ilhamriadi/projects.co.id/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultPageSize   = 10
	MaxPageSize       = 100
	MaxDescriptionLen = 1000
	dateLayout        = "2006-01-02"
	activityPageLimit = 50
)

// DisasterService รวม business logic ของรายงานภัยพิบัติ
type DisasterService struct {
	DB       *gorm.DB
	Repo     *repository.DisasterRepository
	Activity *repository.ActivityRepository
	// Areas = nil ข้ามการตรวจ hierarchy
	Areas   *areas.Hierarchy
	Events  Publisher
	Timeout time.Duration

	Now   func() time.Time
	NewID func() string
}

func NewDisasterService(db *gorm.DB, hierarchy *areas.Hierarchy, events Publisher, timeout time.Duration) *DisasterService {
	if events == nil {
		events = nopPublisher{}
	}
	return &DisasterService{
		DB:       db,
		Repo:     repository.NewDisasterRepository(db),
		Activity: repository.NewActivityRepository(db),
		Areas:    hierarchy,
		Events:   events,
		Timeout:  timeout,
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    uuid.NewString,
	}
}

func (s *DisasterService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func checkActor(a entity.Actor) error {
	if err := a.Validate(); err != nil {
		return apperr.Unauthenticated(apperr.CodeInvalidToken, err.Error())
	}
	return nil
}

// ---------- DTO ----------

type CreateDisasterInput struct {
	District         string                  `json:"kecamatan"`
	Village          string                  `json:"desa"`
	SubVillage       *string                 `json:"dusun"`
	NeighborhoodUnit *string                 `json:"rt_rw"`
	Latitude         *float64                `json:"latitude"`
	Longitude        *float64                `json:"longitude"`
	DisasterType     string                  `json:"disaster_type"`
	DisasterDate     string                  `json:"disaster_date"`
	Description      *string                 `json:"description"`
	Impact                                   // counters
	PublicFacilities entity.PublicFacilities `json:"public_facilities"`
	Status           string                  `json:"status"`
}

// Impact คือ counter ผลกระทบ; ไม่ส่งมา = 0
type Impact struct {
	HouseholdsAffected int `json:"kk_affected"`
	PeopleAffected     int `json:"jiwa_affected"`
	Dead               int `json:"dead"`
	Injured            int `json:"injured"`
	Missing            int `json:"missing"`
	Evacuated          int `json:"evacuated"`
	HousesHeavy        int `json:"house_heavily_damaged"`
	HousesModerate     int `json:"house_moderately_damaged"`
	HousesLight        int `json:"house_lightly_damaged"`
}

func (m Impact) validate() error {
	for _, v := range []int{
		m.HouseholdsAffected, m.PeopleAffected, m.Dead, m.Injured, m.Missing,
		m.Evacuated, m.HousesHeavy, m.HousesModerate, m.HousesLight,
	} {
		if v < 0 {
			return apperr.Validation(apperr.CodeInvalidNumericValue, "Impact counts must be non-negative integers")
		}
	}
	return nil
}

// UpdateDisasterInput: field ที่แก้ได้หลังสร้าง; nil = ไม่แก้
type UpdateDisasterInput struct {
	Description        *string                  `json:"description"`
	Latitude           *float64                 `json:"latitude"`
	Longitude          *float64                 `json:"longitude"`
	HouseholdsAffected *int                     `json:"kk_affected"`
	PeopleAffected     *int                     `json:"jiwa_affected"`
	Dead               *int                     `json:"dead"`
	Injured            *int                     `json:"injured"`
	Missing            *int                     `json:"missing"`
	Evacuated          *int                     `json:"evacuated"`
	HousesHeavy        *int                     `json:"house_heavily_damaged"`
	HousesModerate     *int                     `json:"house_moderately_damaged"`
	HousesLight        *int                     `json:"house_lightly_damaged"`
	PublicFacilities   *entity.PublicFacilities `json:"public_facilities"`
}

type ListQuery struct {
	District     string
	Village      string
	DisasterType string
	Status       string
	StartDate    string
	EndDate      string
	Search       string
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type DisasterPage struct {
	Disasters  []entity.Disaster `json:"disasters"`
	Pagination Pagination        `json:"pagination"`
}

// ---------- validation ----------

func parseDate(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{dateLayout, time.RFC3339} {
		// วันที่ตามปฏิทินของ offset ที่ส่งมา ไม่แปลงเป็น UTC ก่อน
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, apperr.Validation(apperr.CodeInvalidDate, field+" must be a date (YYYY-MM-DD)")
}

func validateCoordinates(lat, lon *float64) error {
	if lat != nil && (math.IsNaN(*lat) || *lat < -90 || *lat > 90) {
		return apperr.Validation(apperr.CodeInvalidCoordinates, "Latitude must be between -90 and 90")
	}
	if lon != nil && (math.IsNaN(*lon) || *lon < -180 || *lon > 180) {
		return apperr.Validation(apperr.CodeInvalidCoordinates, "Longitude must be between -180 and 180")
	}
	return nil
}

func validateDescription(d *string) error {
	if d != nil && len([]rune(*d)) > MaxDescriptionLen {
		return apperr.Validation(apperr.CodeValidation, "Description must not exceed 1000 characters")
	}
	return nil
}

func validateFacilities(p entity.PublicFacilities) error {
	if err := p.Validate(); err != nil {
		return apperr.Validation(apperr.CodeInvalidNumericValue, err.Error())
	}
	return nil
}

// canonicalArea คืนชื่อพื้นที่ตามข้อมูลอ้างอิง; ชื่อที่ไม่รู้จักคืนตามที่ส่งมา
func (s *DisasterService) canonicalArea(district, village string) (string, string) {
	district, village = strings.TrimSpace(district), strings.TrimSpace(village)
	if s.Areas == nil {
		return district, village
	}
	if village == "" {
		if d, ok := s.Areas.CanonicalDistrict(district); ok {
			return d, village
		}
		return district, village
	}
	if d, v, ok := s.Areas.Canonical(district, village); ok {
		return d, v
	}
	return district, village
}

func (s *DisasterService) validateArea(district, village string) error {
	if s.Areas == nil {
		return nil
	}
	if !s.Areas.Contains(district, village) {
		return apperr.Validation(apperr.CodeInvalidArea, "Village "+village+" is not part of district "+district)
	}
	return nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func (s *DisasterService) buildDisaster(a entity.Actor, in CreateDisasterInput) (*entity.Disaster, error) {
	district := strings.TrimSpace(in.District)
	village := strings.TrimSpace(in.Village)
	if district == "" || village == "" || strings.TrimSpace(in.DisasterType) == "" || strings.TrimSpace(in.DisasterDate) == "" {
		return nil, apperr.Validation(apperr.CodeValidation, "kecamatan, desa, disaster_type and disaster_date are required")
	}
	dt := entity.DisasterType(strings.TrimSpace(in.DisasterType))
	if !dt.Valid() {
		return nil, apperr.Validation(apperr.CodeInvalidDisasterType, "Invalid disaster type")
	}
	if err := in.Impact.validate(); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	date, err := parseDate(in.DisasterDate, "disaster_date")
	if err != nil {
		return nil, err
	}
	if err := validateFacilities(in.PublicFacilities); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	status := entity.StatusDraft
	if in.Status != "" {
		status = entity.DisasterStatus(in.Status)
		if !status.Initial() {
			return nil, apperr.Validation(apperr.CodeInvalidStatus, "New reports must be draft or submitted")
		}
	}
	if err := s.validateArea(district, village); err != nil {
		return nil, err
	}

	facilities := in.PublicFacilities
	if facilities == nil {
		facilities = entity.PublicFacilities{}
	}
	now := s.Now()
	return &entity.Disaster{
		ID:                 s.NewID(),
		ReporterID:         a.ID,
		District:           district,
		Village:            village,
		SubVillage:         trimmed(in.SubVillage),
		NeighborhoodUnit:   trimmed(in.NeighborhoodUnit),
		Latitude:           in.Latitude,
		Longitude:          in.Longitude,
		DisasterType:       dt,
		DisasterDate:       date,
		Description:        trimmed(in.Description),
		HouseholdsAffected: in.HouseholdsAffected,
		PeopleAffected:     in.PeopleAffected,
		Dead:               in.Dead,
		Injured:            in.Injured,
		Missing:            in.Missing,
		Evacuated:          in.Evacuated,
		HousesHeavy:        in.HousesHeavy,
		HousesModerate:     in.HousesModerate,
		HousesLight:        in.HousesLight,
		PublicFacilities:   datatypes.NewJSONType(facilities),
		Status:             status,
		ReportedAt:         now,
		UpdatedAt:          now,
	}, nil
}

func (s *DisasterService) logActivity(tx *gorm.DB, a entity.Actor, disasterID, action string, details map[string]any) error {
	return s.Activity.Create(tx, &entity.ActivityLog{
		ID:         s.NewID(),
		UserID:     a.ID,
		DisasterID: disasterID,
		Action:     action,
		Details:    datatypes.JSONMap(details),
		CreatedAt:  s.Now(),
	})
}

func (s *DisasterService) publish(event string, a entity.Actor, d *entity.Disaster) {
	s.Events.Publish(DisasterEvent{Event: event, Disaster: d, Actor: a}, access.RoomsFor(d.District, d.Village)...)
}

// reload อ่านรายงานหลัง commit ด้วย scope เดียวกับผู้เรียก
func (s *DisasterService) reload(ctx context.Context, a entity.Actor, id string) (*entity.Disaster, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.FindByID(ctx, id, access.ScopeFilter(a))
}

// ---------- operations ----------

// Create ตรวจสิทธิ์พื้นที่ก่อน แล้วค่อยตรวจ field
func (s *DisasterService) Create(ctx context.Context, a entity.Actor, in CreateDisasterInput) (*entity.Disaster, error) {
	if err := checkActor(a); err != nil {
		return nil, err
	}
	in.District, in.Village = s.canonicalArea(in.District, in.Village)
	if !access.CanCreate(a, in.District, in.Village) {
		return nil, apperr.Forbidden(apperr.CodeAreaAccessDenied, "You can only create reports for your own area")
	}
	d, err := s.buildDisaster(a, in)
	if err != nil {
		return nil, err
	}

	tctx, cancel := s.withTimeout(ctx)
	defer cancel()
	err = s.DB.WithContext(tctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, d); err != nil {
			return err
		}
		return s.logActivity(tx, a, d.ID, entity.ActionDisasterCreated, map[string]any{
			"disaster_type": d.DisasterType,
			"kecamatan":     d.District,
			"desa":          d.Village,
			"status":        d.Status,
		})
	})
	if err != nil {
		return nil, apperr.Infra(err)
	}

	created, err := s.reload(ctx, a, d.ID)
	if err != nil {
		return nil, err
	}
	s.publish(EventDisasterCreated, a, created)
	return created, nil
}

// Get: นอก scope ตอบเหมือนไม่มีรายงานนี้
func (s *DisasterService) Get(ctx context.Context, a entity.Actor, id string) (*entity.Disaster, error) {
	if err := checkActor(a); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound(apperr.CodeDisasterNotFound, "Disaster report not found")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.FindByID(ctx, id, access.ScopeFilter(a))
}

func (s *DisasterService) criteria(q ListQuery) (repository.DisasterCriteria, error) {
	district, village := s.canonicalArea(q.District, q.Village)
	c := repository.DisasterCriteria{
		District: district,
		Village:  village,
		Search:   strings.TrimSpace(q.Search),
		Page:     q.Page,
		Limit:    q.Limit,
		SortBy:   q.SortBy,
		Asc:      strings.EqualFold(q.SortOrder, "asc"),
	}
	if c.Page == 0 {
		c.Page = 1
	}
	if c.Limit == 0 {
		c.Limit = DefaultPageSize
	}
	if c.Page < 1 {
		return c, apperr.Validation(apperr.CodeValidation, "page must be at least 1")
	}
	if c.Limit < 1 || c.Limit > MaxPageSize {
		return c, apperr.Validation(apperr.CodeValidation, "limit must be between 1 and 100")
	}
	if !repository.IsSortable(c.SortBy) {
		c.SortBy = repository.DefaultSort
	}
	if q.DisasterType != "" {
		c.DisasterType = entity.DisasterType(q.DisasterType)
		if !c.DisasterType.Valid() {
			return c, apperr.Validation(apperr.CodeInvalidDisasterType, "Invalid disaster type")
		}
	}
	if q.Status != "" {
		c.Status = entity.DisasterStatus(q.Status)
		if !c.Status.Valid() {
			return c, apperr.Validation(apperr.CodeInvalidStatus, "Invalid status")
		}
	}
	if q.StartDate != "" {
		t, err := parseDate(q.StartDate, "start_date")
		if err != nil {
			return c, err
		}
		c.From = &t
	}
	if q.EndDate != "" {
		t, err := parseDate(q.EndDate, "end_date")
		if err != nil {
			return c, err
		}
		c.To = &t
	}
	return c, nil
}

// List คืนรายงานใน scope แบบแบ่งหน้า
func (s *DisasterService) List(ctx context.Context, a entity.Actor, q ListQuery) (*DisasterPage, error) {
	if err := checkActor(a); err != nil {
		return nil, err
	}
	c, err := s.criteria(q)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, total, err := s.Repo.FindAll(ctx, access.ScopeFilter(a), c)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []entity.Disaster{}
	}
	totalPages := int((total + int64(c.Limit) - 1) / int64(c.Limit))
	return &DisasterPage{
		Disasters: rows,
		Pagination: Pagination{
			Page:       c.Page,
			Limit:      c.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    c.Page < totalPages,
			HasPrev:    c.Page > 1,
		},
	}, nil
}

// loadForMutation: หาไม่เจอ/นอก scope = NotFound, เจอแต่ไม่มีสิทธิ์แก้ = Authorization
func (s *DisasterService) loadForMutation(ctx context.Context, a entity.Actor, id string) (*entity.Disaster, error) {
	d, err := s.Get(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(a, d) {
		return nil, apperr.Forbidden(apperr.CodeDisasterAccessDenied, "You do not have permission to modify this report")
	}
	return d, nil
}

func (in UpdateDisasterInput) updates() (map[string]any, error) {
	u := map[string]any{}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if err := validateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	if in.Description != nil {
		u["description"] = trimmed(in.Description)
	}
	if in.Latitude != nil {
		u["latitude"] = *in.Latitude
	}
	if in.Longitude != nil {
		u["longitude"] = *in.Longitude
	}
	counters := []struct {
		col string
		v   *int
	}{
		{"kk_affected", in.HouseholdsAffected},
		{"jiwa_affected", in.PeopleAffected},
		{"dead", in.Dead},
		{"injured", in.Injured},
		{"missing", in.Missing},
		{"evacuated", in.Evacuated},
		{"house_heavily_damaged", in.HousesHeavy},
		{"house_moderately_damaged", in.HousesModerate},
		{"house_lightly_damaged", in.HousesLight},
	}
	for _, c := range counters {
		if c.v == nil {
			continue
		}
		if *c.v < 0 {
			return nil, apperr.Validation(apperr.CodeInvalidNumericValue, c.col+" must be a non-negative integer")
		}
		u[c.col] = *c.v
	}
	if in.PublicFacilities != nil {
		if err := validateFacilities(*in.PublicFacilities); err != nil {
			return nil, err
		}
		u["public_facilities"] = datatypes.NewJSONType(*in.PublicFacilities)
	}
	if len(u) == 0 {
		return nil, apperr.Validation(apperr.CodeValidation, "No valid fields to update")
	}
	return u, nil
}

// Update แก้เฉพาะ field ใน allow-list
func (s *DisasterService) Update(ctx context.Context, a entity.Actor, id string, in UpdateDisasterInput) (*entity.Disaster, error) {
	d, err := s.loadForMutation(ctx, a, id)
	if err != nil {
		return nil, err
	}
	updates, err := in.updates()
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	updates["updated_at"] = s.Now()

	tctx, cancel := s.withTimeout(ctx)
	defer cancel()
	err = s.DB.WithContext(tctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateFields(tx, d.ID, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.NotFound(apperr.CodeDisasterNotFound, "Disaster report not found")
		}
		return s.logActivity(tx, a, d.ID, entity.ActionDisasterUpdated, map[string]any{"fields": fields})
	})
	if err != nil {
		return nil, apperr.Infra(err)
	}

	updated, err := s.reload(ctx, a, d.ID)
	if err != nil {
		return nil, err
	}
	s.publish(EventDisasterUpdated, a, updated)
	return updated, nil
}

// Delete เป็น soft delete; รายงานหายจากทุก read
func (s *DisasterService) Delete(ctx context.Context, a entity.Actor, id string) error {
	d, err := s.loadForMutation(ctx, a, id)
	if err != nil {
		return err
	}

	tctx, cancel := s.withTimeout(ctx)
	defer cancel()
	err = s.DB.WithContext(tctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.SoftDelete(tx, d.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.NotFound(apperr.CodeDisasterNotFound, "Disaster report not found")
		}
		return s.logActivity(tx, a, d.ID, entity.ActionDisasterDeleted, map[string]any{
			"kecamatan": d.District,
			"desa":      d.Village,
		})
	})
	if err != nil {
		return apperr.Infra(err)
	}
	s.publish(EventDisasterDeleted, a, d)
	return nil
}

// Activity คืนประวัติของรายงานที่ผู้เรียกมองเห็น
func (s *DisasterService) ActivityLog(ctx context.Context, a entity.Actor, id string) ([]entity.ActivityLog, error) {
	d, err := s.Get(ctx, a, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Activity.ListByDisaster(ctx, d.ID, activityPageLimit)
}
