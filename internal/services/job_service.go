package services

import (
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"
)

type JobService interface {
	Create(posterID string, req *dto.CreateJobRequest) (*models.Job, error)
	Get(id string) (*models.Job, error)
	Update(posterID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(posterID, jobID string) error
	ListMine(posterID string) ([]models.Job, error)
	ListActive() ([]models.Job, error)
	// Browse returns active jobs the seeker has not applied to. Preference
	// filtering applies unless showAll is set; an empty filtered result
	// falls back to the full list rather than showing nothing.
	Browse(applicantID string, showAll bool) (*dto.BrowseResult, error)
}

type JobServiceImpl struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
}

func NewJobService(jobRepo repositories.JobRepository, userRepo repositories.UserRepository) JobService {
	return &JobServiceImpl{jobRepo: jobRepo, userRepo: userRepo}
}

func (s *JobServiceImpl) Create(posterID string, req *dto.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		JobType:        req.JobType,
		WorkType:       req.WorkType,
		JobLevel:       req.JobLevel,
		CompanyName:    req.CompanyName,
		Location:       req.Location,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		PostedBy:       posterID,
		IsActive:       true,
	}
	if req.SalaryCurrency != "" {
		job.SalaryCurrency = req.SalaryCurrency
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Get(id string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Update(posterID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownedJob(posterID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = req.RequiredSkills
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.WorkType != nil {
		job.WorkType = *req.WorkType
	}
	if req.JobLevel != nil {
		job.JobLevel = *req.JobLevel
	}
	if req.CompanyName != nil {
		job.CompanyName = *req.CompanyName
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.SalaryCurrency != nil {
		job.SalaryCurrency = *req.SalaryCurrency
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Delete(posterID, jobID string) error {
	if _, err := s.ownedJob(posterID, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.DeleteOwned(jobID, posterID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) ListMine(posterID string) ([]models.Job, error) {
	jobs, err := s.jobRepo.ListByPoster(posterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *JobServiceImpl) ListActive() ([]models.Job, error) {
	jobs, err := s.jobRepo.ListActive()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *JobServiceImpl) Browse(applicantID string, showAll bool) (*dto.BrowseResult, error) {
	user, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	prefs := user.Preferences.Data()
	if showAll || prefs.Empty() {
		jobs, err := s.jobRepo.Browse(applicantID, nil)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return &dto.BrowseResult{Jobs: jobs, Filtered: false}, nil
	}

	jobs, err := s.jobRepo.Browse(applicantID, repositories.PreferenceFilter(prefs))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(jobs) > 0 {
		return &dto.BrowseResult{Jobs: jobs, Filtered: true}, nil
	}

	// Nothing matched the preferences; an empty board helps nobody.
	jobs, err = s.jobRepo.Browse(applicantID, nil)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.BrowseResult{Jobs: jobs, Filtered: false}, nil
}

func (s *JobServiceImpl) ownedJob(posterID, jobID string) (*models.Job, error) {
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
	return job, nil
}
