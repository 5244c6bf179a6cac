package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/insider/internal/client/authflow"
	"github.com/dmitrijs2005/insider/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// getSimpleText and getCode are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getCode       = GetCode
)

// switchWord toggles between login and signup on the email prompt.
const switchWord = "switch"

// Signup runs the one-time-code flow in sign-up mode.
func (a *App) Signup(ctx context.Context) error {
	return a.otp(ctx, authflow.ModeSignup)
}

// Login runs the one-time-code flow in login mode.
func (a *App) Login(ctx context.Context) error {
	return a.otp(ctx, authflow.ModeLogin)
}

// otp drives authflow.Flow until a code is verified or the user gives up
// (an empty email). On the code step an empty entry goes back to the email
// prompt; a rejected code may be retried.
func (a *App) otp(ctx context.Context, mode authflow.Mode) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already signed in, run 'logout' first")
		return nil
	}

	flow := authflow.New(mode)
	for {
		var err error
		switch flow.Step {
		case authflow.StepEmail:
			flow, err = a.otpEmail(ctx, flow)
		case authflow.StepCode:
			var done bool
			flow, done, err = a.otpCode(ctx, flow)
			if done {
				return nil
			}
		}
		if errors.Is(err, errCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) otpEmail(ctx context.Context, flow authflow.Flow) (authflow.Flow, error) {
	prompt := fmt.Sprintf("Enter email to %s (%q to %s instead, empty to cancel)", flow.Mode, switchWord, other(flow.Mode))
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return flow, err
	}
	switch email {
	case "":
		return flow, errCancelled
	case switchWord:
		return flow.Next(authflow.ToggleMode{})
	}

	send := a.auth.Login
	if flow.Mode == authflow.ModeSignup {
		send = a.auth.Register
	}
	msg, err := send(ctx, email)
	if err != nil {
		a.report(err)
		a.auth.ClearError()
		return flow, nil
	}
	if msg == "" {
		msg = "Verification code sent"
	}
	fmt.Fprintln(a.out, msg)
	return flow.Next(authflow.CodeSent(strings.TrimSpace(email)))
}

func (a *App) otpCode(ctx context.Context, flow authflow.Flow) (authflow.Flow, bool, error) {
	code, err := getCode(a.reader, a.out)
	if err != nil {
		return flow, false, err
	}
	if code == "" {
		next, err := flow.Next(authflow.ChangeEmail{})
		return next, false, err
	}

	needsProfile, err := a.auth.VerifyCode(ctx, flow.Email, code)
	if err != nil {
		a.report(err)
		a.auth.ClearError()
		return flow, false, nil
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", flow.Email)
	if needsProfile {
		fmt.Fprintln(a.out, "Your profile is incomplete, run 'complete-profile'")
	}
	return flow, true, nil
}

var errCancelled = errors.New("cancelled")

func other(m authflow.Mode) authflow.Mode {
	if m == authflow.ModeLogin {
		return authflow.ModeSignup
	}
	return authflow.ModeLogin
}

// Logout ends the session and drops the cached resource views.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.events.ResetSelectedEvent()
	a.investments.ResetSelectedInvestment()
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Status prints the local view of the session.
func (a *App) Status(ctx context.Context) error {
	st := a.auth.State()
	fmt.Fprintf(a.out, "Phase:   %s\n", st.Phase())
	if st.User != nil {
		fmt.Fprintf(a.out, "Account: %s (%s)\n", st.User.Email, st.User.Role)
	}
	if exp, ok := a.auth.TokenExpiry(); ok {
		left := exp.Sub(a.now()).Round(time.Second)
		if left > 0 {
			fmt.Fprintf(a.out, "Session: expires in %s\n", left)
		} else {
			fmt.Fprintln(a.out, "Session: expired, run 'refresh'")
		}
	}
	return nil
}

// Refresh trades the refresh token for a new pair.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.auth.RefreshSession(ctx); err != nil {
		a.auth.ClearError()
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Session refreshed")
	return nil
}

// Profile reloads the account and its profile concurrently and prints them.
func (a *App) Profile(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := a.auth.FetchCurrentUser(gctx)
		return err
	})
	g.Go(func() error {
		return a.auth.CheckProfileStatus(gctx)
	})
	if err := g.Wait(); err != nil {
		return a.report(err)
	}

	st := a.auth.State()
	renderProfile(a.out, st.User, st.UserProfile)
	return nil
}

// CompleteProfile collects the onboarding form interactively and submits it.
func (a *App) CompleteProfile(ctx context.Context) error {
	if err := a.auth.FetchInterestsAndExpertise(ctx); err != nil {
		a.report(err)
	}

	form, err := a.readProfileForm()
	if err != nil {
		return a.report(err)
	}

	if err := a.auth.CompleteProfile(ctx, form); err != nil {
		a.auth.ClearError()
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Profile completed")
	return nil
}

func (a *App) readProfileForm() (models.ProfileCompletionForm, error) {
	var form models.ProfileCompletionForm
	var err error

	text := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &form.FirstName},
		{"Last name", &form.LastName},
		{"About you (optional)", &form.About},
		{"LinkedIn URL (optional)", &form.LinkedInURL},
		{"Profile image URL (optional)", &form.ProfileImageURL},
	}
	for _, f := range text {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return form, err
		}
	}

	st := a.auth.State()
	if len(st.Interests) > 0 {
		names := make([]string, len(st.Interests))
		for i, in := range st.Interests {
			names[i] = in.Name
		}
		picked, err := GetSelection(a.reader, "Interests", names, a.out)
		if err != nil {
			return form, err
		}
		for _, i := range picked {
			form.InterestIDs = append(form.InterestIDs, st.Interests[i].ID)
		}
	}
	if len(st.Expertise) > 0 {
		names := make([]string, len(st.Expertise))
		for i, ex := range st.Expertise {
			names[i] = ex.Name
		}
		picked, err := GetSelection(a.reader, "Expertise", names, a.out)
		if err != nil {
			return form, err
		}
		for _, i := range picked {
			form.ExpertiseIDs = append(form.ExpertiseIDs, st.Expertise[i].ID)
		}
	}

	for {
		company, err := getSimpleText(a.reader, "Company (empty to finish work history)", a.out)
		if err != nil {
			return form, err
		}
		if company == "" {
			break
		}
		entry := models.ProfessionalBackgroundInput{CompanyName: company}
		if entry.Position, err = getSimpleText(a.reader, "Position (optional)", a.out); err != nil {
			return form, err
		}
		start, err := GetOptionalInt(a.reader, "Start year", a.out)
		if err != nil {
			return form, err
		}
		if start != nil {
			entry.StartYear = *start
		}
		if entry.EndYear, err = GetOptionalInt(a.reader, "End year (empty if current)", a.out); err != nil {
			return form, err
		}
		entry.IsCurrent = entry.EndYear == nil
		form.ProfessionalBackground = append(form.ProfessionalBackground, entry)
	}
	return form, nil
}

var _ execIface = (*App)(nil)
