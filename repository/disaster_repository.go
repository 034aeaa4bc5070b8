package repository

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ilhamriadi/projects.co.id/access"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DisasterRepository คุยกับตาราง disasters; ทุก read ต้องผ่าน access.Filter
type DisasterRepository struct {
	DB *gorm.DB
}

func NewDisasterRepository(db *gorm.DB) *DisasterRepository {
	return &DisasterRepository{DB: db}
}

// คอลัมน์ที่อนุญาตให้ sort (กัน injection)
var sortColumns = map[string]string{
	"reported_at":   "reported_at",
	"created_at":    "reported_at",
	"disaster_date": "disaster_date",
	"kecamatan":     "kecamatan",
	"desa":          "desa",
	"disaster_type": "disaster_type",
	"status":        "status",
}

const DefaultSort = "reported_at"

func IsSortable(key string) bool {
	_, ok := sortColumns[key]
	return ok
}

// DisasterCriteria คือ filter + pagination ของ FindAll
type DisasterCriteria struct {
	District     string
	Village      string
	DisasterType entity.DisasterType
	Status       entity.DisasterStatus
	From         *time.Time
	To           *time.Time
	Search       string

	SortBy string
	Asc    bool
	Page   int
	Limit  int
}

const reporterJoin = "LEFT JOIN users AS reporter ON reporter.id = disasters.reporter_id"

const searchText = "LOWER(COALESCE(disasters.description, '') || ' ' || disasters.kecamatan || ' ' || " +
	"disasters.desa || ' ' || COALESCE(disasters.dusun, '') || ' ' || COALESCE(reporter.full_name, ''))"

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

func matchWords(db *gorm.DB, words []string) *gorm.DB {
	for _, w := range words {
		db = db.Where(searchText+" LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(w))+"%")
	}
	return db
}

func (r *DisasterRepository) Create(tx *gorm.DB, d *entity.Disaster) error {
	return dbErr(tx.Create(d).Error)
}

// FindByID คืนรายงานถ้าอยู่ใน scope; นอก scope หรือถูกลบแล้ว = not found
func (r *DisasterRepository) FindByID(ctx context.Context, id string, f access.Filter) (*entity.Disaster, error) {
	var d entity.Disaster
	err := r.DB.WithContext(ctx).
		Scopes(areaScope(f)).
		Preload("Reporter").Preload("Verifier").
		Where("disasters.id = ?", id).
		First(&d).Error
	if isNotFound(err) {
		return nil, apperr.NotFound(apperr.CodeDisasterNotFound, "Disaster report not found")
	}
	if err != nil {
		return nil, dbErr(err)
	}
	return &d, nil
}

func (r *DisasterRepository) filtered(ctx context.Context, f access.Filter, c DisasterCriteria) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&entity.Disaster{}).Scopes(areaScope(f))
	if c.District != "" {
		q = q.Where("disasters.kecamatan = ?", c.District)
	}
	if c.Village != "" {
		q = q.Where("disasters.desa = ?", c.Village)
	}
	if c.DisasterType != "" {
		q = q.Where("disasters.disaster_type = ?", c.DisasterType)
	}
	if c.Status != "" {
		q = q.Where("disasters.status = ?", c.Status)
	}
	if c.From != nil {
		q = q.Where("disasters.disaster_date >= ?", *c.From)
	}
	if c.To != nil {
		q = q.Where("disasters.disaster_date <= ?", *c.To)
	}
	if words := strings.Fields(c.Search); len(words) > 0 {
		q = matchWords(q.Joins(reporterJoin), words)
	}
	return q
}

// FindAll คืนหน้าที่ขอ + จำนวนทั้งหมดที่ตรงเงื่อนไข
func (r *DisasterRepository) FindAll(ctx context.Context, f access.Filter, c DisasterCriteria) ([]entity.Disaster, int64, error) {
	var total int64
	if err := r.filtered(ctx, f, c).Count(&total).Error; err != nil {
		return nil, 0, dbErr(err)
	}

	col, ok := sortColumns[c.SortBy]
	if !ok {
		col = sortColumns[DefaultSort]
	}
	var out []entity.Disaster
	err := r.filtered(ctx, f, c).
		Select("disasters.*").
		Preload("Reporter").Preload("Verifier").
		Order(clause.OrderByColumn{Column: clause.Column{Table: "disasters", Name: col}, Desc: !c.Asc}).
		// id เป็นตัวตัดสินลำดับสุดท้าย ให้แบ่งหน้าได้คงที่
		Order(clause.OrderByColumn{Column: clause.Column{Table: "disasters", Name: "id"}, Desc: !c.Asc}).
		Offset((c.Page - 1) * c.Limit).
		Limit(c.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, dbErr(err)
	}
	return out, total, nil
}

// คำที่เจอใน description ได้คะแนนมากกว่าคำที่เจอในชื่อพื้นที่/ผู้รายงาน
const DescriptionWeight = 2

const (
	descText  = "LOWER(COALESCE(disasters.description, ''))"
	placeText = "LOWER(disasters.kecamatan || ' ' || disasters.desa || ' ' || " +
		"COALESCE(disasters.dusun, '') || ' ' || COALESCE(reporter.full_name, ''))"
)

// occurrences = จำนวนครั้งที่คำปรากฏใน text (ใช้ได้ทั้ง sqlite และ postgres)
func occurrences(text string) string {
	return "((LENGTH(" + text + ") - LENGTH(REPLACE(" + text + ", ?, ''))) / ?)"
}

func rankExpr(words []string) (string, []any) {
	parts := make([]string, 0, len(words))
	args := make([]any, 0, 4*len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		n := utf8.RuneCountInString(w)
		parts = append(parts, fmt.Sprintf("%d * %s + %s", DescriptionWeight, occurrences(descText), occurrences(placeText)))
		args = append(args, w, n, w, n)
	}
	return strings.Join(parts, " + "), args
}

// SearchResult คือรายงานพร้อมคะแนนที่คำนวณใน DB
type SearchResult struct {
	Disaster entity.Disaster
	Rank     int
}

type searchRank struct {
	ID   string `gorm:"column:id"`
	Rank int    `gorm:"column:search_rank"`
}

// Search จัดอันดับรายงานที่มีทุกคำทั้งชุดใน DB แล้วคืน limit อันดับแรก
func (r *DisasterRepository) Search(ctx context.Context, f access.Filter, words []string, limit int) ([]SearchResult, error) {
	if len(words) == 0 {
		return nil, nil
	}
	expr, args := rankExpr(words)

	var ranked []searchRank
	err := matchWords(r.DB.WithContext(ctx).Model(&entity.Disaster{}).Scopes(areaScope(f)).Joins(reporterJoin), words).
		Where("disasters.deleted_at IS NULL").
		Select("disasters.id AS id, "+expr+" AS search_rank", args...).
		Order("search_rank DESC").
		Order("disasters.reported_at DESC").
		Order("disasters.id DESC").
		Limit(limit).
		Scan(&ranked).Error
	if err != nil {
		return nil, dbErr(err)
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(ranked))
	for _, rk := range ranked {
		ids = append(ids, rk.ID)
	}
	var rows []entity.Disaster
	if err := r.DB.WithContext(ctx).Preload("Reporter").Where("disasters.id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, dbErr(err)
	}
	byID := make(map[string]entity.Disaster, len(rows))
	for _, d := range rows {
		byID[d.ID] = d
	}

	out := make([]SearchResult, 0, len(ranked))
	for _, rk := range ranked {
		if d, ok := byID[rk.ID]; ok {
			out = append(out, SearchResult{Disaster: d, Rank: rk.Rank})
		}
	}
	return out, nil
}

// UpdateFields อัปเดตเฉพาะแถวที่ยังไม่ถูกลบ
func (r *DisasterRepository) UpdateFields(tx *gorm.DB, id string, updates map[string]any) (int64, error) {
	res := tx.Model(&entity.Disaster{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, dbErr(res.Error)
}

// UpdateStatusGuard เปลี่ยนสถานะเมื่อสถานะปัจจุบันยังเป็น from เท่านั้น
func (r *DisasterRepository) UpdateStatusGuard(tx *gorm.DB, id string, from entity.DisasterStatus, updates map[string]any) (int64, error) {
	res := tx.Model(&entity.Disaster{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, dbErr(res.Error)
}

func (r *DisasterRepository) SoftDelete(tx *gorm.DB, id string) (int64, error) {
	res := tx.Where("id = ?", id).Delete(&entity.Disaster{})
	return res.RowsAffected, dbErr(res.Error)
}
