package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/legalchicks/lcen-portal/internal/client/models"
	"github.com/legalchicks/lcen-portal/internal/common"
)

// filterDirectory keeps public members whose name or email contains term,
// case-insensitively.
func filterDirectory(members []models.User, term string) []models.User {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.User, 0, len(members))
	for _, m := range members {
		if m.Visibility != common.VisibilityPublic {
			continue
		}
		if term == "" || strings.Contains(strings.ToLower(m.Name), term) || strings.Contains(strings.ToLower(m.Email), term) {
			out = append(out, m)
		}
	}
	return out
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printUser(w io.Writer, u *models.User) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%s\n", u.ID)
	fmt.Fprintf(tw, "Name\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role\t%s\n", u.Role)
	fmt.Fprintf(tw, "Visibility\t%s\n", u.Visibility)
	_ = tw.Flush()
}

func printMembers(w io.Writer, members []models.User) {
	if len(members) == 0 {
		fmt.Fprintln(w, "No members found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	for _, m := range members {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, m.Role)
	}
	_ = tw.Flush()
}

func printInvoices(w io.Writer, inv []models.Invoice) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCLIENT\tAMOUNT\tSTATUS\tISSUED\tDUE")
	for _, v := range inv {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\n", v.ID, v.ClientName, v.Amount, v.Status, v.IssuedDate, v.DueDate)
	}
	_ = tw.Flush()
}

func printExpenses(w io.Writer, exp []models.Expense) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tDESCRIPTION\tAMOUNT")
	for _, e := range exp {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n", e.ID, e.Date, e.Category, e.Description, e.Amount)
	}
	_ = tw.Flush()
}

func printProfitability(w io.Writer, p *models.Profitability) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total revenue\t%.2f\n", p.TotalRevenue)
	fmt.Fprintf(tw, "Total expenses\t%.2f\n", p.TotalExpenses)
	fmt.Fprintf(tw, "Net profit\t%.2f\n", p.NetProfit)
	fmt.Fprintln(tw, "\t")
	fmt.Fprintln(tw, "MONTH\tREVENUE\tEXPENSES")
	for _, m := range p.RevenueVsExpenses {
		fmt.Fprintf(tw, "%s\t%.0f\t%.0f\n", m.Month, m.Revenue, m.Expenses)
	}
	_ = tw.Flush()
}

func printAnalytics(w io.Writer, a *models.Analytics) {
	tw := newTable(w)
	fmt.Fprintln(tw, "DAY\tPREDICTED EGGS")
	for _, d := range a.EggYieldForecast {
		fmt.Fprintf(tw, "%s\t%d\n", d.Day, d.PredictedYield)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "Feed efficiency: %.2f\n", a.FeedEfficiencyScore)
	fmt.Fprintf(w, "Mortality risk: %s (%s)\n", a.MortalityRisk.Level, a.MortalityRisk.Reason)
}

func printSettings(w io.Writer, s models.Settings) {
	tw := newTable(w)
	fmt.Fprintf(tw, "language\t%s\n", s.Language)
	fmt.Fprintf(tw, "darkMode\t%t\n", s.DarkMode)
	fmt.Fprintf(tw, "notifications.newMembers\t%t\n", s.Notifications.NewMembers)
	fmt.Fprintf(tw, "notifications.weeklySummary\t%t\n", s.Notifications.WeeklySummary)
	fmt.Fprintf(tw, "notifications.supplyUpdates\t%t\n", s.Notifications.SupplyUpdates)
	fmt.Fprintf(tw, "notifications.emailNotifications\t%t\n", s.Notifications.EmailNotifications)
	_ = tw.Flush()
}

func printNotifications(w io.Writer, list []models.Notification) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No notifications.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "\tID\tTYPE\tTITLE\tWHEN\tACTION")
	for _, n := range list {
		mark := "*"
		if n.Read {
			mark = " "
		}
		action := ""
		if n.ActionURL != "" {
			action = n.ActionLabel + " (go " + n.ActionURL + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", mark, n.ID, n.Type, n.Title, n.Timestamp.Local().Format("2006-01-02 15:04"), action)
	}
	_ = tw.Flush()
}
