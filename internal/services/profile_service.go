package services

import (
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"
)

type ProfileService interface {
	Get(userID string) (*dto.UserDTO, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	UpdatePreferences(userID string, req *dto.UpdatePreferencesRequest) (*dto.UserDTO, error)
	UpdateResume(userID string, req *dto.UpdateResumeRequest) (*dto.UserDTO, error)
}

type ProfileServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{userRepo: userRepo}
}

func (s *ProfileServiceImpl) Get(userID string) (*dto.UserDTO, error) {
	return s.fetch(userID)
}

func (s *ProfileServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		normalized, err := NormalizePhone(*req.Phone)
		if err != nil {
			return nil, err
		}
		user.Phone = &normalized
	}
	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}
	if req.ProfilePhoto != nil {
		user.ProfilePhoto = *req.ProfilePhoto
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	u := dto.NewUserDTO(user)
	return &u, nil
}

// UpdatePreferences overlays the request onto the stored preferences.
// Omitted fields keep their value; a field sent explicitly (including an
// empty list) replaces the stored one.
func (s *ProfileServiceImpl) UpdatePreferences(userID string, req *dto.UpdatePreferencesRequest) (*dto.UserDTO, error) {
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}

	prefs := user.Preferences.Data()
	if req.JobRoles != nil {
		prefs.JobRoles = req.JobRoles
	}
	if req.JobType != "" {
		prefs.JobType = req.JobType
	}
	if req.JobLevel != "" {
		prefs.JobLevel = req.JobLevel
	}
	if req.PreferredLocations != nil {
		prefs.PreferredLocations = req.PreferredLocations
	}
	if req.Skills != nil {
		prefs.Skills = req.Skills
	}

	if err := s.userRepo.UpdatePreferences(userID, prefs); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.fetch(userID)
}

func (s *ProfileServiceImpl) UpdateResume(userID string, req *dto.UpdateResumeRequest) (*dto.UserDTO, error) {
	if _, err := s.find(userID); err != nil {
		return nil, err
	}

	now := time.Now()
	resume := models.Resume{
		Filename:   req.Filename,
		Path:       req.Path,
		UploadedAt: &now,
	}
	if err := s.userRepo.UpdateResume(userID, resume); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.fetch(userID)
}

func (s *ProfileServiceImpl) find(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *ProfileServiceImpl) fetch(userID string) (*dto.UserDTO, error) {
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}
	u := dto.NewUserDTO(user)
	return &u, nil
}
