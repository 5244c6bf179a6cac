package stores

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/insider/internal/client/models"
	"github.com/dmitrijs2005/insider/internal/client/services"
	"github.com/dmitrijs2005/insider/internal/client/validation"
	"github.com/dmitrijs2005/insider/internal/logging"
)

// InvestmentsState is a snapshot of the investment store.
type InvestmentsState struct {
	Featured        []models.Investment
	FeaturedLoading bool
	FeaturedError   string

	Investments           []models.Investment
	InvestmentsLoading    bool
	InvestmentsError      string
	InvestmentsPagination models.Pagination

	SelectedInvestment        *models.InvestmentWithDetails
	SelectedInvestmentLoading bool
	SelectedInvestmentError   string

	Categories []string
}

type InvestmentStore struct {
	svc services.InvestmentService
	log logging.Logger

	mu          sync.Mutex
	state       InvestmentsState
	featuredReq tracker
	listReq     tracker
	selectedReq tracker
}

func NewInvestmentStore(svc services.InvestmentService, pageSize int, log logging.Logger) *InvestmentStore {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if log == nil {
		log = logging.Discard()
	}
	return &InvestmentStore{
		svc:   svc,
		log:   log.With("store", "investments"),
		state: InvestmentsState{InvestmentsPagination: models.Pagination{Page: 1, PageSize: pageSize}},
	}
}

func (s *InvestmentStore) State() InvestmentsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// FetchFeaturedInvestments loads the active featured investments.
func (s *InvestmentStore) FetchFeaturedInvestments(ctx context.Context) error {
	s.mu.Lock()
	n := s.featuredReq.issue()
	s.state.FeaturedLoading = true
	s.state.FeaturedError = ""
	s.mu.Unlock()

	items, err := s.svc.Featured(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.featuredReq.latest(n) {
		return ErrStale
	}
	s.state.FeaturedLoading = false
	if err != nil {
		de := displayError(err, "Failed to fetch featured investments")
		s.state.FeaturedError = de.Message
		return de
	}
	s.state.Featured = items
	return nil
}

// FetchInvestments replaces the list with the requested page of active,
// non-featured investments. Status and Featured in filters are overridden.
func (s *InvestmentStore) FetchInvestments(ctx context.Context, page int, filters models.InvestmentFilters) error {
	if page < 1 {
		page = 1
	}
	notFeatured := false

	s.mu.Lock()
	n := s.listReq.issue()
	s.state.InvestmentsLoading = true
	s.state.InvestmentsError = ""
	filters.Page = page
	filters.PageSize = s.state.InvestmentsPagination.PageSize
	filters.Featured = &notFeatured
	filters.Status = models.InvestmentStatusActive
	s.mu.Unlock()

	resp, err := s.svc.Investments(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.listReq.latest(n) {
		return ErrStale
	}
	s.state.InvestmentsLoading = false
	if err != nil {
		de := displayError(err, "Failed to fetch investments")
		s.state.InvestmentsError = de.Message
		return de
	}

	meta := resp.Meta()
	if meta.PageSize <= 0 {
		meta.PageSize = filters.PageSize
	}
	s.state.Investments = resp.Items
	s.state.InvestmentsPagination = meta
	return nil
}

func (s *InvestmentStore) FetchInvestmentByID(ctx context.Context, id string) error {
	s.mu.Lock()
	n := s.selectedReq.issue()
	s.state.SelectedInvestmentLoading = true
	s.state.SelectedInvestmentError = ""
	s.mu.Unlock()

	var (
		inv *models.InvestmentWithDetails
		err = validation.ResourceID(id)
	)
	if err == nil {
		inv, err = s.svc.Investment(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selectedReq.latest(n) {
		return ErrStale
	}
	s.state.SelectedInvestmentLoading = false
	if err != nil {
		de := displayError(err, "Failed to fetch investment details")
		s.state.SelectedInvestmentError = de.Message
		return de
	}
	s.state.SelectedInvestment = inv
	return nil
}

// ToggleInterest sets the user's interest flag. The selected investment is
// patched only after the backend accepted the change.
func (s *InvestmentStore) ToggleInterest(ctx context.Context, id string, interested bool) error {
	if err := validation.ResourceID(id); err != nil {
		return displayError(err, "")
	}

	if err := s.svc.SetInterest(ctx, id, interested); err != nil {
		s.log.Warn(ctx, "failed to toggle interest", "investment_id", id, "error", err)
		return displayError(err, "Failed to update interest")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedInvestment != nil && s.state.SelectedInvestment.ID == id {
		inv := *s.state.SelectedInvestment
		inv.UserInterested = interested
		s.state.SelectedInvestment = &inv
	}
	return nil
}

// FetchCategories loads the category names used to filter the list.
func (s *InvestmentStore) FetchCategories(ctx context.Context) ([]string, error) {
	cats, err := s.svc.Categories(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to fetch categories", "error", err)
		return nil, displayError(err, "Failed to fetch categories")
	}

	s.mu.Lock()
	s.state.Categories = cats
	s.mu.Unlock()
	return cats, nil
}

func (s *InvestmentStore) ResetSelectedInvestment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedReq.issue()
	s.state.SelectedInvestment = nil
	s.state.SelectedInvestmentError = ""
	s.state.SelectedInvestmentLoading = false
}
