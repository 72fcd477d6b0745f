package services

import (
	"time"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"
)

type ApplicationService interface {
	Apply(applicantID, jobID string) (*models.Application, error)
	// UpdateStatus is poster-only and checks ownership through the job the
	// application belongs to.
	UpdateStatus(posterID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	ListMine(applicantID string) ([]models.Application, error)
	ListForJob(posterID, jobID string) ([]models.Application, error)
	ListForPoster(posterID string) ([]models.Application, error)
	Stats(applicantID string) (*dto.ApplicationStats, error)
}

type ApplicationServiceImpl struct {
	appRepo  repositories.ApplicationRepository
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	notifier *email.Notifier
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notifier *email.Notifier,
) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *ApplicationServiceImpl) Apply(applicantID, jobID string) (*models.Application, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	// An inactive posting is indistinguishable from a missing one.
	if !job.IsActive {
		return nil, apperrors.ErrJobNotFound
	}

	app := &models.Application{
		JobID:       job.ID,
		ApplicantID: applicantID,
		Status:      models.ApplicationStatusPending,
		AppliedAt:   time.Now(),
	}
	if err := s.appRepo.Create(app); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, apperrors.InternalError(err)
	}

	poster, posterErr := s.userRepo.FindByID(job.PostedBy)
	applicant, applicantErr := s.userRepo.FindByID(applicantID)
	if posterErr == nil && applicantErr == nil && poster.EmailOrEmpty() != "" {
		s.notifier.SendNewApplication(
			poster.EmailOrEmpty(), poster.Name, job.Title,
			applicant.Name, applicant.EmailOrEmpty())
	}

	app.Job = job
	return app, nil
}

func (s *ApplicationServiceImpl) UpdateStatus(posterID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	status := models.ApplicationStatus(req.Status)
	if !models.ValidApplicationStatus(status) {
		return nil, apperrors.ErrInvalidStatus("applications", "Unknown application status")
	}

	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if app.Job == nil || app.Job.PostedBy != posterID {
		return nil, apperrors.ErrNotJobOwner
	}

	if err := s.appRepo.UpdateStatus(app.ID, status, req.Notes); err != nil {
		return nil, apperrors.InternalError(err)
	}
	app.Status = status
	if req.Notes != "" {
		app.Notes = req.Notes
	}

	if app.Applicant != nil && app.Applicant.EmailOrEmpty() != "" {
		s.notifier.SendApplicationStatus(
			app.Applicant.EmailOrEmpty(), app.Applicant.Name,
			app.Job.Title, app.Job.CompanyName, status, req.Notes)
	}

	return app, nil
}

func (s *ApplicationServiceImpl) ListMine(applicantID string) ([]models.Application, error) {
	apps, err := s.appRepo.ListByApplicant(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) ListForJob(posterID, jobID string) ([]models.Application, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.PostedBy != posterID {
		return nil, apperrors.ErrNotJobOwner
	}

	apps, err := s.appRepo.ListByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) ListForPoster(posterID string) ([]models.Application, error) {
	apps, err := s.appRepo.ListByPoster(posterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) Stats(applicantID string) (*dto.ApplicationStats, error) {
	total, err := s.appRepo.CountByApplicant(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// "Today" starts at local midnight, not 24 hours ago.
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.appRepo.CountByApplicantSince(applicantID, midnight)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	perStatus, err := s.appRepo.CountByApplicantPerStatus(applicantID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	byStatus := map[string]int64{
		string(models.ApplicationStatusPending):  0,
		string(models.ApplicationStatusReviewed): 0,
		string(models.ApplicationStatusAccepted): 0,
		string(models.ApplicationStatusRejected): 0,
	}
	for status, count := range perStatus {
		byStatus[string(status)] = count
	}

	return &dto.ApplicationStats{
		Total:    total,
		Today:    today,
		ByStatus: byStatus,
	}, nil
}
