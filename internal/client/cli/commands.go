package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/legalchicks/lcen-portal/internal/client/models"
	"github.com/legalchicks/lcen-portal/internal/client/notifications"
	"github.com/legalchicks/lcen-portal/internal/client/router"
	"github.com/legalchicks/lcen-portal/internal/client/settings"
	"github.com/legalchicks/lcen-portal/internal/common"
)

var errNotANumber = errors.New("amount must be a number")

// enter navigates to path and reports whether the router landed on want.
// A guard redirect is announced and the redirected view is not rendered.
func (a *App) enter(path string, want router.View) (bool, error) {
	if err := a.router.Navigate(path); err != nil {
		return false, err
	}
	if v := a.router.CurrentView(); v != want {
		fmt.Fprintf(a.out, "Redirected to %s.\n", a.router.Current())
		return false, nil
	}
	return true, nil
}

func (a *App) Login(ctx context.Context) error {
	if ok, err := a.enter("/login", router.ViewLogin); !ok {
		return err
	}
	email, err := GetRequiredText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	res := a.session.Login(ctx, email, password)
	fmt.Fprintln(a.out, res.Message)
	if res.Success {
		a.renderCurrent(ctx)
	}
	return nil
}

func (a *App) Register(ctx context.Context) error {
	if ok, err := a.enter("/register", router.ViewRegister); !ok {
		return err
	}
	name, err := GetRequiredText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := GetRequiredText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	res := a.session.Register(ctx, name, email, password)
	fmt.Fprintln(a.out, res.Message)
	if res.Success {
		fmt.Fprintln(a.out, "Complete your profile with 'edit'.")
		a.renderCurrent(ctx)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Fprintf(a.out, "Not signed in (%s).\n", a.session.State())
		return nil
	}
	printUser(a.out, u)
	return nil
}

// Go navigates to path and renders the view the router settles on.
func (a *App) Go(ctx context.Context, path string) error {
	if err := a.router.Navigate(path); err != nil {
		return err
	}
	a.renderCurrent(ctx)
	return nil
}

func (a *App) Members(ctx context.Context, term string) error {
	if ok, err := a.enter("/dashboard/directory", router.ViewDirectory); !ok {
		return err
	}
	members, err := a.api.Members(ctx)
	if err != nil {
		return err
	}
	printMembers(a.out, filterDirectory(members, term))
	return nil
}

func (a *App) Profile(ctx context.Context, id string) error {
	if ok, err := a.enter("/dashboard/profile", router.ViewProfile); !ok {
		return err
	}
	self := a.session.CurrentUser()
	if id == "" || id == self.ID {
		printUser(a.out, self)
		return nil
	}
	u, err := a.api.Profile(ctx, id)
	if err != nil {
		return err
	}
	printUser(a.out, u)
	return nil
}

// Edit updates a profile. Members edit their own; other ids need the
// admin-only page.
func (a *App) Edit(ctx context.Context, id string) error {
	self := a.session.CurrentUser()
	path, view := "/dashboard/profile", router.ViewProfile
	if id != "" && (self == nil || id != self.ID) {
		path, view = "/dashboard/admin/profile", router.ViewAdminProfile
	}
	if ok, err := a.enter(path, view); !ok {
		return err
	}

	target := self
	if id != "" && id != self.ID {
		u, err := a.api.Profile(ctx, id)
		if err != nil {
			return err
		}
		target = u
	}

	var upd models.ProfileUpdate
	var err error
	if upd.Name, err = GetSimpleText(a.reader, fmt.Sprintf("Name [%s]", target.Name), a.out); err != nil {
		return err
	}
	if upd.Email, err = GetSimpleText(a.reader, fmt.Sprintf("Email [%s]", target.Email), a.out); err != nil {
		return err
	}
	vis, err := GetSimpleText(a.reader, fmt.Sprintf("Visibility public|private [%s]", target.Visibility), a.out)
	if err != nil {
		return err
	}
	upd.Visibility = common.Visibility(vis)
	if upd == (models.ProfileUpdate{}) {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	updated, err := a.session.UpdateProfile(ctx, target.ID, upd)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	printUser(a.out, updated)
	return nil
}

func (a *App) Invoices(ctx context.Context) error {
	if ok, err := a.enter("/dashboard/business", router.ViewBusiness); !ok {
		return err
	}
	inv, err := a.api.Invoices(ctx)
	if err != nil {
		return err
	}
	printInvoices(a.out, inv)
	return nil
}

func (a *App) Expenses(ctx context.Context) error {
	if ok, err := a.enter("/dashboard/business", router.ViewBusiness); !ok {
		return err
	}
	exp, err := a.api.Expenses(ctx)
	if err != nil {
		return err
	}
	printExpenses(a.out, exp)
	return nil
}

func (a *App) AddExpense(ctx context.Context) error {
	if ok, err := a.enter("/dashboard/business", router.ViewBusiness); !ok {
		return err
	}
	category, err := GetRequiredText(a.reader, "Category", a.out)
	if err != nil {
		return err
	}
	description, err := GetRequiredText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	raw, err := GetRequiredText(a.reader, "Amount", a.out)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errNotANumber
	}

	e, err := a.api.AddExpense(ctx, models.NewExpense{Category: category, Description: description, Amount: amount})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Expense %s recorded.\n", e.ID)
	a.notifications.Add(ctx, notifications.New{
		Type:        models.NotificationSuccess,
		Title:       "Expense recorded",
		Message:     fmt.Sprintf("%s: %s (%.2f)", e.Category, e.Description, e.Amount),
		ActionURL:   "/dashboard/business",
		ActionLabel: "View Business Suite",
	})
	return nil
}

func (a *App) Profit(ctx context.Context) error {
	if ok, err := a.enter("/dashboard/business", router.ViewBusiness); !ok {
		return err
	}
	p, err := a.api.Profitability(ctx)
	if err != nil {
		return err
	}
	printProfitability(a.out, p)
	return nil
}

func (a *App) Analytics(ctx context.Context) error {
	if ok, err := a.enter("/dashboard/analytics", router.ViewAnalytics); !ok {
		return err
	}
	an, err := a.api.Analytics(ctx)
	if err != nil {
		return err
	}
	printAnalytics(a.out, an)
	return nil
}

// Settings shows the settings, or with "set <key> <value>" changes one.
func (a *App) Settings(ctx context.Context, args []string) error {
	if ok, err := a.enter("/dashboard/settings", router.ViewSettings); !ok {
		return err
	}
	if len(args) == 0 {
		printSettings(a.out, a.settings.Current().Get())
		return nil
	}
	if args[0] != "set" || len(args) < 3 {
		fmt.Fprintf(a.out, "Usage: settings set <key> <value>\nKeys: %s\n", strings.Join(settings.Keys, ", "))
		return nil
	}

	v, err := settings.With(a.settings.Current().Get(), args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	if err := a.settings.Save(ctx, v); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Settings saved.")
	return nil
}

// Notifications lists recent notifications or changes them:
// all, read <id>, readall, remove <id>, clear.
func (a *App) Notifications(ctx context.Context, args []string) error {
	if d := router.AuthGuard(a.session); !d.Allow {
		fmt.Fprintln(a.out, "Sign in to see notifications.")
		return nil
	}

	sub, id := "", ""
	if len(args) > 0 {
		sub = args[0]
	}
	if len(args) > 1 {
		id = args[1]
	}

	switch sub {
	case "":
		fmt.Fprintf(a.out, "%d unread\n", a.notifications.UnreadCount())
		printNotifications(a.out, a.notifications.Recent())
	case "all":
		printNotifications(a.out, a.notifications.All())
	case "read":
		if !a.notifications.MarkAsRead(ctx, id) {
			fmt.Fprintf(a.out, "No notification %q.\n", id)
		}
	case "readall":
		a.notifications.MarkAllAsRead(ctx)
	case "remove":
		if !a.notifications.Remove(ctx, id) {
			fmt.Fprintf(a.out, "No notification %q.\n", id)
		}
	case "clear":
		a.notifications.ClearAll(ctx)
	default:
		fmt.Fprintln(a.out, "Usage: notifications [all|read <id>|readall|remove <id>|clear]")
	}
	return nil
}

// renderCurrent prints the view the router currently shows.
func (a *App) renderCurrent(ctx context.Context) {
	var err error
	switch a.router.CurrentView() {
	case router.ViewLogin:
		fmt.Fprintln(a.out, "Sign in with 'login'. New here? Use 'register'.")
	case router.ViewRegister:
		fmt.Fprintln(a.out, "Create an account with 'register'.")
	case router.ViewForgotPassword:
		fmt.Fprintln(a.out, "Password reset is handled by the LCEN office.")
	case router.ViewOverview:
		u := a.session.CurrentUser()
		fmt.Fprintf(a.out, "Welcome back, %s. You have %d unread notifications.\n", u.Name, a.notifications.UnreadCount())
	case router.ViewProfile:
		printUser(a.out, a.session.CurrentUser())
	case router.ViewDirectory:
		var members []models.User
		if members, err = a.api.Members(ctx); err == nil {
			printMembers(a.out, filterDirectory(members, ""))
		}
	case router.ViewBusiness:
		var p *models.Profitability
		if p, err = a.api.Profitability(ctx); err == nil {
			printProfitability(a.out, p)
		}
	case router.ViewAnalytics:
		var an *models.Analytics
		if an, err = a.api.Analytics(ctx); err == nil {
			printAnalytics(a.out, an)
		}
	case router.ViewMembership:
		fmt.Fprintf(a.out, "Membership: %s\n", a.session.CurrentUser().Role)
	case router.ViewSupplies:
		fmt.Fprintln(a.out, "Supply ordering is not available in the terminal client yet.")
	case router.ViewSettings:
		printSettings(a.out, a.settings.Current().Get())
	case router.ViewAdminProfile:
		fmt.Fprintln(a.out, "Use 'edit <id>' to update a member's profile.")
	}
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}
}
