package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/insider/internal/client/models"
	"golang.org/x/sync/errgroup"
)

var errUsage = errors.New("usage")

// Home loads the featured carousel and the first page of investments
// concurrently, like the app's home screen.
func (a *App) Home(ctx context.Context) error {
	ctx = a.auth.Session(ctx)

	// no shared cancellation: one failing slice must not abort the other
	var g errgroup.Group
	g.Go(func() error { return a.investments.FetchFeaturedInvestments(ctx) })
	g.Go(func() error { return a.investments.FetchInvestments(ctx, 1, models.InvestmentFilters{}) })
	err := g.Wait()

	st := a.investments.State()
	fmt.Fprintln(a.out, "== Featured ==")
	if st.FeaturedError != "" {
		fmt.Fprintln(a.out, "Error:", st.FeaturedError)
	} else {
		renderInvestments(a.out, st.Featured, nil)
	}
	fmt.Fprintln(a.out, "== Opportunities ==")
	if st.InvestmentsError != "" {
		fmt.Fprintln(a.out, "Error:", st.InvestmentsError)
	} else {
		renderInvestments(a.out, st.Investments, &st.InvestmentsPagination)
	}
	return err
}

// Investments lists active, non-featured investments: investments [page] [category].
func (a *App) Investments(ctx context.Context, args []string) error {
	page, rest, err := pageArg(args)
	if err != nil {
		return a.usage("investments [page] [category]")
	}

	var filters models.InvestmentFilters
	if len(rest) > 0 {
		filters.Category = strings.Join(rest, " ")
	}

	if err := a.investments.FetchInvestments(a.auth.Session(ctx), page, filters); err != nil {
		return a.report(err)
	}
	st := a.investments.State()
	renderInvestments(a.out, st.Investments, &st.InvestmentsPagination)
	return nil
}

// Featured lists the featured investments.
func (a *App) Featured(ctx context.Context) error {
	if err := a.investments.FetchFeaturedInvestments(a.auth.Session(ctx)); err != nil {
		return a.report(err)
	}
	renderInvestments(a.out, a.investments.State().Featured, nil)
	return nil
}

// Investment shows one investment with its details.
func (a *App) Investment(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("investment <id>")
	}
	if err := a.investments.FetchInvestmentByID(a.auth.Session(ctx), args[0]); err != nil {
		return a.report(err)
	}
	renderInvestment(a.out, a.investments.State().SelectedInvestment)
	return nil
}

// Interest records or withdraws interest: interest <id> <on|off>.
func (a *App) Interest(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return a.usage("interest <id> <on|off>")
	}
	interested := args[1] == "on"
	if err := a.investments.ToggleInterest(a.auth.Session(ctx), args[0], interested); err != nil {
		return a.report(err)
	}
	if interested {
		fmt.Fprintln(a.out, "Interest recorded")
	} else {
		fmt.Fprintln(a.out, "Interest withdrawn")
	}
	return nil
}

// Categories lists the investment categories.
func (a *App) Categories(ctx context.Context) error {
	cats, err := a.investments.FetchCategories(a.auth.Session(ctx))
	if err != nil {
		return a.report(err)
	}
	if len(cats) == 0 {
		fmt.Fprintln(a.out, "No categories")
		return nil
	}
	for _, c := range cats {
		fmt.Fprintln(a.out, " -", c)
	}
	return nil
}
