package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

type ApplicationRepository interface {
	// Create inserts the application. A second application for the same
	// job and applicant trips the composite unique index and comes back as
	// ErrDuplicateApplication, so the invariant holds under concurrency.
	Create(app *models.Application) error
	FindByID(id string) (*models.Application, error)
	UpdateStatus(id string, status models.ApplicationStatus, notes string) error
	ListByApplicant(applicantID string) ([]models.Application, error)
	ListByJob(jobID string) ([]models.Application, error)
	// ListByPoster returns applications across every job the poster owns.
	ListByPoster(posterID string) ([]models.Application, error)
	CountByApplicant(applicantID string) (int64, error)
	CountByApplicantSince(applicantID string, since time.Time) (int64, error)
	CountByApplicantPerStatus(applicantID string) (map[models.ApplicationStatus]int64, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(app *models.Application) error {
	err := r.db.Create(app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var app models.Application
	err := r.db.Preload("Job").Preload("Applicant").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(id string, status models.ApplicationStatus, notes string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != "" {
		updates["notes"] = notes
	}
	result := r.db.Model(&models.Application{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) ListByApplicant(applicantID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) ListByJob(jobID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) ListByPoster(posterID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Job").Preload("Applicant").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.posted_by = ?", posterID).
		Order("applications.applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) CountByApplicant(applicantID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("applicant_id = ?", applicantID).
		Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) CountByApplicantSince(applicantID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("applicant_id = ? AND applied_at >= ?", applicantID, since).
		Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) CountByApplicantPerStatus(applicantID string) (map[models.ApplicationStatus]int64, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Count  int64
	}
	err := r.db.Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Where("applicant_id = ?", applicantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
