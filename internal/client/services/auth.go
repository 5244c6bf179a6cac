package services

import (
	"context"

	"github.com/dmitrijs2005/insider/internal/client/client"
	"github.com/dmitrijs2005/insider/internal/client/models"
)

// AuthService covers the auth/* and profile/* endpoints.
type AuthService interface {
	// Register and Login ask the backend to email a one-time code.
	Register(ctx context.Context, email string) (*models.EmailVerification, error)
	Login(ctx context.Context, email string) (*models.EmailVerification, error)
	// VerifyCode exchanges a one-time code for a token pair.
	VerifyCode(ctx context.Context, email, code string) (*models.AuthToken, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthToken, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error

	UserProfile(ctx context.Context) (*models.UserWithProfile, error)
	CompleteProfile(ctx context.Context, form models.ProfileCompletionForm) error
	Interests(ctx context.Context) ([]models.Interest, error)
	Expertise(ctx context.Context) ([]models.ExpertiseArea, error)
}

type authService struct {
	client client.Client
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

type emailRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *authService) Register(ctx context.Context, email string) (*models.EmailVerification, error) {
	var out models.EmailVerification
	if err := s.client.Post(ctx, client.AuthRegisterPath, emailRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *authService) Login(ctx context.Context, email string) (*models.EmailVerification, error) {
	var out models.EmailVerification
	if err := s.client.Post(ctx, client.AuthLoginPath, emailRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *authService) VerifyCode(ctx context.Context, email, code string) (*models.AuthToken, error) {
	var out models.AuthToken
	if err := s.client.Post(ctx, client.AuthVerifyPath, verifyRequest{Email: email, Code: code}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthToken, error) {
	var out models.AuthToken
	if err := s.client.Post(ctx, client.AuthRefreshPath, refreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := s.client.Get(ctx, client.AuthMePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.client.Post(ctx, client.AuthLogoutPath, nil, nil)
}

func (s *authService) UserProfile(ctx context.Context) (*models.UserWithProfile, error) {
	var out models.UserWithProfile
	if err := s.client.Get(ctx, client.ProfileMePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteProfile posts the form; the response body is not used.
func (s *authService) CompleteProfile(ctx context.Context, form models.ProfileCompletionForm) error {
	if form.InterestIDs == nil {
		form.InterestIDs = []string{}
	}
	if form.ExpertiseIDs == nil {
		form.ExpertiseIDs = []string{}
	}
	if form.ProfessionalBackground == nil {
		form.ProfessionalBackground = []models.ProfessionalBackgroundInput{}
	}
	return s.client.Post(ctx, client.ProfileCompletePath, form, nil)
}

func (s *authService) Interests(ctx context.Context) ([]models.Interest, error) {
	var out []models.Interest
	if err := s.client.Get(ctx, client.ProfileInterestsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *authService) Expertise(ctx context.Context) ([]models.ExpertiseArea, error) {
	var out []models.ExpertiseArea
	if err := s.client.Get(ctx, client.ProfileExpertisePath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
