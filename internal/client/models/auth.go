package models

// Role of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity record owned by the backend and cached locally.
type User struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	EmailVerified bool    `json:"email_verified"`
	Role          Role    `json:"role"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	LastLogin     *string `json:"last_login"`
}

type Interest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  *string `json:"category"`
	CreatedAt string  `json:"created_at"`
}

type ExpertiseArea struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type ProfessionalBackground struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	CompanyName string  `json:"company_name"`
	Position    *string `json:"position"`
	StartYear   int     `json:"start_year"`
	EndYear     *int    `json:"end_year"`
	IsCurrent   bool    `json:"is_current"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// UserProfile is the optional 1:1 extension of User filled during onboarding.
type UserProfile struct {
	ID                     string                   `json:"id"`
	UserID                 string                   `json:"user_id"`
	FirstName              string                   `json:"first_name"`
	LastName               string                   `json:"last_name"`
	About                  *string                  `json:"about"`
	LinkedInURL            *string                  `json:"linkedin_url"`
	ProfileImageURL        *string                  `json:"profile_image_url"`
	ProfileCompleted       bool                     `json:"profile_completed"`
	CreatedAt              string                   `json:"created_at"`
	UpdatedAt              string                   `json:"updated_at"`
	Interests              []Interest               `json:"interests"`
	Expertise              []ExpertiseArea          `json:"expertise"`
	ProfessionalBackground []ProfessionalBackground `json:"professional_background"`
}

// UserWithProfile is the profile/me document: the user plus its profile.
type UserWithProfile struct {
	User
	Profile *UserProfile `json:"profile"`
}

// NeedsCompletion reports whether onboarding still has to be done.
func (u *UserWithProfile) NeedsCompletion() bool {
	return u == nil || u.Profile == nil || !u.Profile.ProfileCompleted
}

// AuthToken is returned by auth/verify and auth/refresh.
type AuthToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}

// EmailVerification confirms that a one-time code was dispatched.
type EmailVerification struct {
	Email            string `json:"email"`
	Message          string `json:"message"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

// ProfessionalBackgroundInput is one work-history row of the completion form.
type ProfessionalBackgroundInput struct {
	CompanyName string `json:"company_name" validate:"required"`
	Position    string `json:"position,omitempty"`
	StartYear   int    `json:"start_year" validate:"required,gte=1900,lte=2100"`
	EndYear     *int   `json:"end_year,omitempty"`
	IsCurrent   bool   `json:"is_current"`
	Description string `json:"description,omitempty"`
}

// ProfileCompletionForm is posted to profile/complete.
type ProfileCompletionForm struct {
	FirstName              string                        `json:"first_name" validate:"required"`
	LastName               string                        `json:"last_name" validate:"required"`
	About                  string                        `json:"about,omitempty"`
	LinkedInURL            string                        `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	ProfileImageURL        string                        `json:"profile_image_url,omitempty" validate:"omitempty,url"`
	InterestIDs            []string                      `json:"interest_ids"`
	ExpertiseIDs           []string                      `json:"expertise_ids"`
	ProfessionalBackground []ProfessionalBackgroundInput `json:"professional_background" validate:"dive"`
}
