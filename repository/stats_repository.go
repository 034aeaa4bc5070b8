package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ilhamriadi/projects.co.id/access"
	"github.com/ilhamriadi/projects.co.id/entity"
)

// ImpactTotals คือผลรวมผลกระทบที่ใช้ในทุก aggregate
type ImpactTotals struct {
	KKAffected     int64 `gorm:"column:total_kk_affected" json:"total_kk_affected"`
	JiwaAffected   int64 `gorm:"column:total_jiwa_affected" json:"total_jiwa_affected"`
	Dead           int64 `gorm:"column:total_dead" json:"total_dead"`
	Injured        int64 `gorm:"column:total_injured" json:"total_injured"`
	Missing        int64 `gorm:"column:total_missing" json:"total_missing"`
	Evacuated      int64 `gorm:"column:total_evacuated" json:"total_evacuated"`
	HousesHeavy    int64 `gorm:"column:total_house_heavily_damaged" json:"total_house_heavily_damaged"`
	HousesModerate int64 `gorm:"column:total_house_moderately_damaged" json:"total_house_moderately_damaged"`
	HousesLight    int64 `gorm:"column:total_house_lightly_damaged" json:"total_house_lightly_damaged"`
}

const impactSums = `COALESCE(SUM(disasters.kk_affected), 0) AS total_kk_affected,
	COALESCE(SUM(disasters.jiwa_affected), 0) AS total_jiwa_affected,
	COALESCE(SUM(disasters.dead), 0) AS total_dead,
	COALESCE(SUM(disasters.injured), 0) AS total_injured,
	COALESCE(SUM(disasters.missing), 0) AS total_missing,
	COALESCE(SUM(disasters.evacuated), 0) AS total_evacuated,
	COALESCE(SUM(disasters.house_heavily_damaged), 0) AS total_house_heavily_damaged,
	COALESCE(SUM(disasters.house_moderately_damaged), 0) AS total_house_moderately_damaged,
	COALESCE(SUM(disasters.house_lightly_damaged), 0) AS total_house_lightly_damaged`

type DisasterSummary struct {
	Total        int64 `gorm:"column:total" json:"total_disasters"`
	Draft        int64 `gorm:"column:draft_count" json:"draft_count"`
	Submitted    int64 `gorm:"column:submitted_count" json:"submitted_count"`
	Verified     int64 `gorm:"column:verified_count" json:"verified_count"`
	Rejected     int64 `gorm:"column:rejected_count" json:"rejected_count"`
	ImpactTotals `gorm:"embedded"`
}

type TypeCount struct {
	DisasterType entity.DisasterType `gorm:"column:disaster_type" json:"disaster_type"`
	Count        int64               `gorm:"column:total" json:"count"`
	ImpactTotals `gorm:"embedded"`
}

type MonthCount struct {
	Month        int   `gorm:"column:month" json:"month"`
	Count        int64 `gorm:"column:total" json:"count"`
	ImpactTotals `gorm:"embedded"`
}

type AreaCount struct {
	District     string `gorm:"column:kecamatan" json:"kecamatan"`
	Village      string `gorm:"column:desa" json:"desa"`
	Count        int64  `gorm:"column:total" json:"count"`
	ImpactTotals `gorm:"embedded"`
}

// StatsCriteria คือ filter เสริมของ Summary
type StatsCriteria struct {
	District     string
	Village      string
	DisasterType entity.DisasterType
	From         *time.Time
	To           *time.Time
}

func statusCount(s entity.DisasterStatus, alias string) string {
	return fmt.Sprintf("COALESCE(SUM(CASE WHEN disasters.status = '%s' THEN 1 ELSE 0 END), 0) AS %s", s, alias)
}

func (r *DisasterRepository) Summary(ctx context.Context, f access.Filter, c StatsCriteria) (*DisasterSummary, error) {
	q := r.filtered(ctx, f, DisasterCriteria{
		District: c.District, Village: c.Village, DisasterType: c.DisasterType, From: c.From, To: c.To,
	})
	var out DisasterSummary
	err := q.Select("COUNT(*) AS total, " +
		statusCount(entity.StatusDraft, "draft_count") + ", " +
		statusCount(entity.StatusSubmitted, "submitted_count") + ", " +
		statusCount(entity.StatusVerified, "verified_count") + ", " +
		statusCount(entity.StatusRejected, "rejected_count") + ", " +
		impactSums).
		Scan(&out).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return &out, nil
}

// CountByType เป็น aggregate ทั้งระบบ (ไม่ผ่าน scope)
func (r *DisasterRepository) CountByType(ctx context.Context) ([]TypeCount, error) {
	var out []TypeCount
	err := r.DB.WithContext(ctx).Model(&entity.Disaster{}).
		Select("disasters.disaster_type AS disaster_type, COUNT(*) AS total, " + impactSums).
		Group("disasters.disaster_type").
		Order("total DESC, disaster_type ASC").
		Scan(&out).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return out, nil
}

func (r *DisasterRepository) monthExpr() string {
	if r.DB.Dialector.Name() == "postgres" {
		return "CAST(EXTRACT(MONTH FROM disasters.disaster_date) AS INTEGER)"
	}
	return "CAST(strftime('%m', disasters.disaster_date) AS INTEGER)"
}

// CountByMonth นับตามเดือนของ disaster_date ภายในปีที่ระบุ
func (r *DisasterRepository) CountByMonth(ctx context.Context, f access.Filter, year int) ([]MonthCount, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	month := r.monthExpr()

	var out []MonthCount
	err := r.DB.WithContext(ctx).Model(&entity.Disaster{}).
		Scopes(areaScope(f)).
		Where("disasters.disaster_date >= ? AND disasters.disaster_date < ?", from, to).
		Select(month + " AS month, COUNT(*) AS total, " + impactSums).
		Group(month).
		Order("month ASC").
		Scan(&out).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return out, nil
}

func (r *DisasterRepository) CountByArea(ctx context.Context, f access.Filter) ([]AreaCount, error) {
	var out []AreaCount
	err := r.DB.WithContext(ctx).Model(&entity.Disaster{}).
		Scopes(areaScope(f)).
		Select("disasters.kecamatan AS kecamatan, disasters.desa AS desa, COUNT(*) AS total, " + impactSums).
		Group("disasters.kecamatan, disasters.desa").
		Order("kecamatan ASC, desa ASC").
		Scan(&out).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return out, nil
}
