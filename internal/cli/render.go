package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/qkart/storefront/internal/storefront/app"
	"github.com/qkart/storefront/internal/storefront/cart"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/qkart/storefront/internal/storefront/notify"
)

var styles = struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Price   lipgloss.Style
	Header  lipgloss.Style
	Box     lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00A278")),
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Price:   lipgloss.NewStyle().Bold(true),
	Header:  lipgloss.NewStyle().Bold(true).Underline(true),
	Box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#00A278")).Padding(0, 1),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#00A278")),
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

func renderNotification(v notify.Variant, msg string) string {
	switch v {
	case notify.Success:
		return styles.Success.Render("✔ " + msg)
	case notify.Warning:
		return styles.Warning.Render("! " + msg)
	case notify.Error:
		return styles.Error.Render("✘ " + msg)
	default:
		return styles.Info.Render("i " + msg)
	}
}

func renderProducts(products []model.Product) string {
	if len(products) == 0 {
		return styles.Muted.Render("No products found")
	}

	rows := make([]string, 0, len(products)+1)
	rows = append(rows, styles.Header.Render(fmt.Sprintf("%-16s  %-36s  %-12s  %6s  %s", "ID", "NAME", "CATEGORY", "COST", "RATING")))
	for _, p := range products {
		rows = append(rows, fmt.Sprintf("%-16s  %-36s  %-12s  %s  %s",
			p.ID,
			truncate(p.Name, 36),
			truncate(p.Category, 12),
			styles.Price.Render(fmt.Sprintf("%6s", "$"+fmt.Sprint(p.Cost))),
			stars(p.Rating),
		))
	}
	return strings.Join(rows, "\n")
}

// renderCart renders the cart panel. Without a session there is no cart to show.
func renderCart(st app.State) string {
	if !st.Session.Active() {
		return styles.Muted.Render("Log in to see your cart")
	}
	items := cart.Visible(st.Items)
	if len(items) == 0 {
		return styles.Box.Render("Cart is empty. Add more items to the cart to checkout.")
	}

	rows := make([]string, 0, len(items)+2)
	for _, it := range items {
		rows = append(rows, fmt.Sprintf("%-36s  x%-3d  %s",
			truncate(it.Name, 36),
			it.Quantity,
			styles.Price.Render(fmt.Sprintf("$%d", it.Subtotal())),
		))
	}
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("%d item(s)   Order total %s",
		cart.TotalItemCount(items),
		styles.Price.Render(fmt.Sprintf("$%d", cart.TotalValue(items))),
	))
	return styles.Box.Render(strings.Join(rows, "\n"))
}

func renderSummary(sum model.OrderSummary, sess model.Session) string {
	lines := []string{
		styles.Title.Render("Order Details"),
		fmt.Sprintf("Products   %d", sum.Products),
		fmt.Sprintf("Subtotal   $%d", sum.Subtotal),
		fmt.Sprintf("Shipping   $%d", sum.Shipping),
		styles.Price.Render(fmt.Sprintf("Total      $%d", sum.Total)),
		styles.Muted.Render(fmt.Sprintf("Wallet balance $%d", sess.Balance)),
	}
	return styles.Box.Render(strings.Join(lines, "\n"))
}

func renderSession(sess model.Session) string {
	if !sess.Active() {
		return styles.Muted.Render("Not logged in")
	}
	return fmt.Sprintf("%s  %s", styles.Title.Render(sess.Username), styles.Muted.Render(fmt.Sprintf("balance $%d", sess.Balance)))
}

func stars(rating float64) string {
	n := int(rating + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
