package models

type InvestmentStatus string

const (
	InvestmentStatusActive   InvestmentStatus = "active"
	InvestmentStatusClosed   InvestmentStatus = "closed"
	InvestmentStatusDraft    InvestmentStatus = "draft"
	InvestmentStatusArchived InvestmentStatus = "archived"
	InvestmentStatusAll      InvestmentStatus = "all"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type Investment struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	ShortDescription  string           `json:"short_description"`
	CardImageURL      *string          `json:"card_image_url"`
	Category          *string          `json:"category"`
	InvestmentType    *string          `json:"investment_type"`
	Featured          bool             `json:"featured"`
	MinimumInvestment *float64         `json:"minimum_investment"`
	ExpectedReturn    *float64         `json:"expected_return"`
	RiskLevel         *RiskLevel       `json:"risk_level"`
	Status            InvestmentStatus `json:"status"`
	InterestCount     int              `json:"interest_count"`
	CreatedBy         *string          `json:"created_by"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
	PublishedAt       *string          `json:"published_at"`
}

type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size *int64 `json:"size,omitempty"`
}

type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Bio   string `json:"bio,omitempty"`
	Image string `json:"image,omitempty"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city,omitempty"`
	State       string       `json:"state,omitempty"`
	Country     string       `json:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// InvestmentDetail holds the long-form content of an investment.
// Free-form sections are kept as decoded JSON maps.
type InvestmentDetail struct {
	ID                  string         `json:"id"`
	InvestmentID        string         `json:"investment_id"`
	DetailedDescription string         `json:"detailed_description"`
	Images              []string       `json:"images"`
	Documents           []Document     `json:"documents"`
	FinancialData       map[string]any `json:"financial_data"`
	TermsConditions     map[string]any `json:"terms_conditions"`
	Timeline            map[string]any `json:"timeline"`
	TeamMembers         []TeamMember   `json:"team_members"`
	FAQs                []FAQ          `json:"faqs"`
	ContactInfo         *ContactInfo   `json:"contact_info"`
	Location            *Location      `json:"location"`
	CreatedAt           string         `json:"created_at"`
	UpdatedAt           string         `json:"updated_at"`
}

// InvestmentWithDetails is the investment detail document.
type InvestmentWithDetails struct {
	Investment
	Details        *InvestmentDetail `json:"details"`
	UserInterested bool              `json:"user_interested"`
}

type InvestmentListResponse = Page[Investment]

// InvestmentFilters narrows investments. Featured is tri-state: nil means
// "don't filter".
type InvestmentFilters struct {
	Status   InvestmentStatus
	Category string
	Featured *bool
	Page     int
	PageSize int
}
