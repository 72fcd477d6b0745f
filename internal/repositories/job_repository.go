package repositories

import (
	"errors"
	"strings"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	// Update writes the mutable fields. The owner check is the caller's
	// job; PostedBy is never written.
	Update(job *models.Job) error
	// DeleteOwned removes the job only when ownerID matches; a non-owner
	// gets ErrJobNotFound, indistinguishable from a missing job.
	DeleteOwned(id, ownerID string) error
	ListByPoster(posterID string) ([]models.Job, error)
	ListActive() ([]models.Job, error)
	// Browse returns active jobs the applicant has not applied to, newest
	// first, narrowed by the filter when one is given.
	Browse(applicantID string, filter *BrowseFilter) ([]models.Job, error)
}

// BrowseFilter is an ordered set of AND-combined clauses plus one OR-group
// for the multi-value preference fields (locations, roles). Building the
// query this way keeps the conditional clause assembly in one place
// instead of scattering query mutation across the service.
type BrowseFilter struct {
	clauses []browseClause
	orGroup []browseClause
}

type browseClause struct {
	expr string
	args []interface{}
}

func (f *BrowseFilter) Equals(column, value string) *BrowseFilter {
	f.clauses = append(f.clauses, browseClause{expr: column + " = ?", args: []interface{}{value}})
	return f
}

// MatchAny adds case-insensitive substring alternatives to the OR-group.
func (f *BrowseFilter) MatchAny(column string, values []string) *BrowseFilter {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		f.orGroup = append(f.orGroup, browseClause{
			expr: "LOWER(" + column + ") LIKE ?",
			args: []interface{}{"%" + strings.ToLower(v) + "%"},
		})
	}
	return f
}

func (f *BrowseFilter) Empty() bool {
	return f == nil || (len(f.clauses) == 0 && len(f.orGroup) == 0)
}

func (f *BrowseFilter) apply(q *gorm.DB) *gorm.DB {
	for _, c := range f.clauses {
		q = q.Where(c.expr, c.args...)
	}
	if len(f.orGroup) > 0 {
		exprs := make([]string, 0, len(f.orGroup))
		var args []interface{}
		for _, c := range f.orGroup {
			exprs = append(exprs, c.expr)
			args = append(args, c.args...)
		}
		q = q.Where("("+strings.Join(exprs, " OR ")+")", args...)
	}
	return q
}

// PreferenceFilter maps seeker preferences onto job columns: equality for
// work type and level, substring OR-group over location and title.
func PreferenceFilter(prefs models.Preferences) *BrowseFilter {
	f := &BrowseFilter{}
	if strings.TrimSpace(prefs.JobType) != "" {
		f.Equals("work_type", prefs.JobType)
	}
	if strings.TrimSpace(prefs.JobLevel) != "" {
		f.Equals("job_level", prefs.JobLevel)
	}
	f.MatchAny("location", prefs.PreferredLocations)
	f.MatchAny("title", prefs.JobRoles)
	return f
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Poster").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Model(job).Updates(map[string]interface{}{
		"title":           job.Title,
		"description":     job.Description,
		"required_skills": job.RequiredSkills,
		"job_type":        job.JobType,
		"work_type":       job.WorkType,
		"job_level":       job.JobLevel,
		"company_name":    job.CompanyName,
		"location":        job.Location,
		"salary_min":      job.SalaryMin,
		"salary_max":      job.SalaryMax,
		"salary_currency": job.SalaryCurrency,
		"is_active":       job.IsActive,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) DeleteOwned(id, ownerID string) error {
	result := r.db.Where("id = ? AND posted_by = ?", id, ownerID).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ListByPoster(posterID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Applications").
		Where("posted_by = ?", posterID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) ListActive() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Poster").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Browse(applicantID string, filter *BrowseFilter) ([]models.Job, error) {
	applied := r.db.Model(&models.Application{}).
		Select("job_id").
		Where("applicant_id = ?", applicantID)

	q := r.db.Preload("Poster").
		Where("is_active = ?", true).
		Where("id NOT IN (?)", applied)

	if !filter.Empty() {
		q = filter.apply(q)
	}

	var jobs []models.Job
	err := q.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}
