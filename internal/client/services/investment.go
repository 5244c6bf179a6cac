package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/insider/internal/client/client"
	"github.com/dmitrijs2005/insider/internal/client/models"
)

// FeaturedPageSize is how many featured investments are requested.
const FeaturedPageSize = 10

type InvestmentService interface {
	Investments(ctx context.Context, filters models.InvestmentFilters) (*models.InvestmentListResponse, error)
	// Featured returns the active featured investments, first page only.
	Featured(ctx context.Context) ([]models.Investment, error)
	Investment(ctx context.Context, id string) (*models.InvestmentWithDetails, error)
	SetInterest(ctx context.Context, id string, interested bool) error
	Categories(ctx context.Context) ([]string, error)
}

type investmentService struct {
	client client.Client
}

func NewInvestmentService(c client.Client) InvestmentService {
	return &investmentService{client: c}
}

func investmentQuery(f models.InvestmentFilters) url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status_filter", string(f.Status))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Featured != nil {
		q.Set("featured", strconv.FormatBool(*f.Featured))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return q
}

func (s *investmentService) Investments(ctx context.Context, filters models.InvestmentFilters) (*models.InvestmentListResponse, error) {
	var out models.InvestmentListResponse
	if err := s.client.Get(ctx, client.InvestmentsPath, investmentQuery(filters), &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []models.Investment{}
	}
	return &out, nil
}

func (s *investmentService) Featured(ctx context.Context) ([]models.Investment, error) {
	featured := true
	page, err := s.Investments(ctx, models.InvestmentFilters{
		Status:   models.InvestmentStatusActive,
		Featured: &featured,
		PageSize: FeaturedPageSize,
	})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (s *investmentService) Investment(ctx context.Context, id string) (*models.InvestmentWithDetails, error) {
	var out models.InvestmentWithDetails
	if err := s.client.Get(ctx, client.InvestmentPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type interestRequest struct {
	IsInterested bool `json:"is_interested"`
}

func (s *investmentService) SetInterest(ctx context.Context, id string, interested bool) error {
	return s.client.Post(ctx, client.InvestmentInterestPath(id), interestRequest{IsInterested: interested}, nil)
}

func (s *investmentService) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := s.client.Get(ctx, client.InvestmentCategoriesPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
