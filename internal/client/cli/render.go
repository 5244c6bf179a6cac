package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/insider/internal/client/models"
	"github.com/dmitrijs2005/insider/internal/format"
)

const titleWidth = 40

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return format.NotAvailable
	}
	return *s
}

func renderPagination(w io.Writer, p models.Pagination) {
	more := ""
	if p.HasMore {
		more = ", more available"
	}
	fmt.Fprintf(w, "Page %d (%d per page), %d total%s\n", p.Page, p.PageSize, p.Total, more)
}

func renderEvents(w io.Writer, events []models.Event, p models.Pagination) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTITLE\tSTARTS\tSTATUS\tATTENDEES")
	for _, ev := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			ev.ID, format.Truncate(ev.Title, titleWidth), format.DateTime(ev.StartDatetime), ev.Status, ev.AttendeeCount)
	}
	tw.Flush()
	renderPagination(w, p)
}

func renderEvent(w io.Writer, ev *models.EventWithUserStatus, now time.Time) {
	if ev == nil {
		fmt.Fprintln(w, "No event selected")
		return
	}
	fmt.Fprintln(w, ev.Title)
	fmt.Fprintln(w, strings.Repeat("-", len([]rune(ev.Title))))
	if ev.Description != "" {
		fmt.Fprintln(w, ev.Description)
	}

	tw := table(w)
	fmt.Fprintf(tw, "When:\t%s to %s (%s)\n", format.DateTime(ev.StartDatetime), format.DateTime(ev.EndDatetime), ev.Timezone)
	if ev.LocationType != nil {
		fmt.Fprintf(tw, "Where:\t%s %s\n", *ev.LocationType, orNA(ev.LocationAddress))
	}
	if ev.VirtualMeetingURL != nil {
		fmt.Fprintf(tw, "Meeting:\t%s\n", *ev.VirtualMeetingURL)
	}
	fmt.Fprintf(tw, "Category:\t%s\n", orNA(ev.Category))
	capacity := format.NotAvailable
	if ev.Capacity != nil {
		capacity = fmt.Sprint(*ev.Capacity)
	}
	fmt.Fprintf(tw, "Attendees:\t%d / %s\n", ev.AttendeeCount, capacity)
	fmt.Fprintf(tw, "Status:\t%s\n", ev.Status)
	if ev.PublishedAt != nil {
		fmt.Fprintf(tw, "Published:\t%s\n", format.RelativeTime(*ev.PublishedAt, now))
	}
	rsvp := "not answered"
	if ev.UserStatus != nil {
		rsvp = string(*ev.UserStatus)
	}
	fmt.Fprintf(tw, "Your RSVP:\t%s\n", rsvp)
	switch {
	case ev.UserJoinedGroup:
		fmt.Fprintf(tw, "Group:\tjoined\n")
	case ev.CanJoinGroup:
		fmt.Fprintf(tw, "Group:\topen, run 'join %s'\n", ev.ID)
	}
	tw.Flush()
}

func renderInvestments(w io.Writer, items []models.Investment, p *models.Pagination) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No investments")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tMINIMUM\tRETURN\tRISK")
	for _, inv := range items {
		risk := format.NotAvailable
		if inv.RiskLevel != nil {
			risk = string(*inv.RiskLevel)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.ID, format.Truncate(inv.Title, titleWidth), orNA(inv.Category),
			format.Currency(inv.MinimumInvestment, ""), format.Percentage(inv.ExpectedReturn), risk)
	}
	tw.Flush()
	if p != nil {
		renderPagination(w, *p)
	}
}

func renderInvestment(w io.Writer, inv *models.InvestmentWithDetails) {
	if inv == nil {
		fmt.Fprintln(w, "No investment selected")
		return
	}
	fmt.Fprintln(w, inv.Title)
	fmt.Fprintln(w, strings.Repeat("-", len([]rune(inv.Title))))
	fmt.Fprintln(w, inv.ShortDescription)

	risk := format.NotAvailable
	if inv.RiskLevel != nil {
		risk = string(*inv.RiskLevel)
	}
	tw := table(w)
	fmt.Fprintf(tw, "Category:\t%s\n", orNA(inv.Category))
	fmt.Fprintf(tw, "Type:\t%s\n", orNA(inv.InvestmentType))
	fmt.Fprintf(tw, "Minimum:\t%s\n", format.Currency(inv.MinimumInvestment, ""))
	fmt.Fprintf(tw, "Expected return:\t%s\n", format.Percentage(inv.ExpectedReturn))
	fmt.Fprintf(tw, "Risk:\t%s\n", risk)
	fmt.Fprintf(tw, "Interested:\t%d people\n", inv.InterestCount)
	if inv.UserInterested {
		fmt.Fprintf(tw, "You:\tinterested\n")
	} else {
		fmt.Fprintf(tw, "You:\tnot interested, run 'interest %s on'\n", inv.ID)
	}
	tw.Flush()

	d := inv.Details
	if d == nil {
		return
	}
	if d.DetailedDescription != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, d.DetailedDescription)
	}
	if d.Location != nil {
		parts := make([]string, 0, 4)
		for _, p := range []string{d.Location.Address, d.Location.City, d.Location.State, d.Location.Country} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			fmt.Fprintln(w, "Location:", strings.Join(parts, ", "))
		}
	}
	if len(d.TeamMembers) > 0 {
		fmt.Fprintln(w, "Team:")
		for _, m := range d.TeamMembers {
			fmt.Fprintf(w, "  %s, %s\n", m.Name, m.Role)
		}
	}
	if len(d.Documents) > 0 {
		fmt.Fprintln(w, "Documents:")
		for _, doc := range d.Documents {
			fmt.Fprintf(w, "  %s <%s>\n", doc.Name, doc.URL)
		}
	}
	if len(d.FAQs) > 0 {
		fmt.Fprintln(w, "FAQ:")
		for _, f := range d.FAQs {
			fmt.Fprintf(w, "  Q: %s\n  A: %s\n", f.Question, f.Answer)
		}
	}
	if c := d.ContactInfo; c != nil {
		for _, v := range []string{c.Email, c.Phone, c.Website} {
			if v != "" {
				fmt.Fprintln(w, "Contact:", v)
			}
		}
	}
}

func renderProfile(w io.Writer, user *models.User, p *models.UserWithProfile) {
	if user != nil {
		fmt.Fprintf(w, "%s (%s), member since %s\n", user.Email, user.Role, format.Date(user.CreatedAt))
	}
	if p == nil || p.Profile == nil {
		fmt.Fprintln(w, "Profile not created yet, run 'complete-profile'")
		return
	}
	pr := p.Profile
	fmt.Fprintf(w, "%s %s\n", pr.FirstName, pr.LastName)
	if pr.About != nil && *pr.About != "" {
		fmt.Fprintln(w, *pr.About)
	}
	if pr.LinkedInURL != nil {
		fmt.Fprintln(w, "LinkedIn:", *pr.LinkedInURL)
	}
	if len(pr.Interests) > 0 {
		names := make([]string, len(pr.Interests))
		for i, in := range pr.Interests {
			names[i] = in.Name
		}
		fmt.Fprintln(w, "Interests:", strings.Join(names, ", "))
	}
	if len(pr.Expertise) > 0 {
		names := make([]string, len(pr.Expertise))
		for i, ex := range pr.Expertise {
			names[i] = ex.Name
		}
		fmt.Fprintln(w, "Expertise:", strings.Join(names, ", "))
	}
	for _, bg := range pr.ProfessionalBackground {
		end := "present"
		if bg.EndYear != nil {
			end = fmt.Sprint(*bg.EndYear)
		}
		fmt.Fprintf(w, "  %s, %s (%d-%s)\n", bg.CompanyName, orNA(bg.Position), bg.StartYear, end)
	}
	if !pr.ProfileCompleted {
		fmt.Fprintln(w, "Profile incomplete, run 'complete-profile'")
	}
}
