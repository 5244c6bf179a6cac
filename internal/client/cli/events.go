package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/insider/internal/client/models"
)

// Events lists a page of events: events [page] [status] [category].
func (a *App) Events(ctx context.Context, args []string) error {
	page, rest, err := pageArg(args)
	if err != nil {
		return a.usage("events [page] [status] [category]")
	}

	var filters models.EventFilters
	if len(rest) > 0 {
		filters.Status = models.EventStatus(rest[0])
	}
	if len(rest) > 1 {
		filters.Category = rest[1]
	}

	if err := a.events.FetchEvents(a.auth.Session(ctx), page, filters); err != nil {
		return a.report(err)
	}
	st := a.events.State()
	renderEvents(a.out, st.Events, st.EventsPagination)
	return nil
}

// Event shows one event with the caller's attendance.
func (a *App) Event(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("event <id>")
	}
	if err := a.events.FetchEventByID(a.auth.Session(ctx), args[0]); err != nil {
		return a.report(err)
	}
	renderEvent(a.out, a.events.State().SelectedEvent, a.now())
	return nil
}

// Attend sets the caller's RSVP: attend <id> <attending|not_attending>.
func (a *App) Attend(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("attend <id> <attending|not_attending>")
	}
	status := models.AttendanceStatus(args[1])
	if !status.Valid() {
		return a.usage("attend <id> <attending|not_attending>")
	}
	if err := a.events.AttendEvent(a.auth.Session(ctx), args[0], status); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Attendance updated: %s\n", status)
	return nil
}

// Join joins the event's community group.
func (a *App) Join(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("join <id>")
	}
	if err := a.events.JoinEventGroup(a.auth.Session(ctx), args[0]); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Joined the event group")
	return nil
}

// pageArg takes an optional leading page number off args.
func pageArg(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 1, nil, nil
	}
	page, err := strconv.Atoi(args[0])
	if err != nil {
		// no page given, the first argument is a filter
		return 1, args, nil
	}
	if page < 1 {
		return 0, nil, fmt.Errorf("invalid page %d", page)
	}
	return page, args[1:], nil
}

func (a *App) usage(u string) error {
	fmt.Fprintln(a.out, "Usage:", u)
	return errUsage
}
