package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qkart/storefront/internal/storefront/app"
	"github.com/qkart/storefront/internal/storefront/model"
	"github.com/qkart/storefront/internal/storefront/notify"
	logx "github.com/qkart/storefront/pkg/logger"
	"github.com/spf13/cobra"
)

const noticeBuffer = 16

func (rt *runtime) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive storefront with search-as-you-type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			f := newFeed(ctx)
			store, release, err := rt.build(ctx, f)
			if err != nil {
				return err
			}
			defer release()
			store.OnChange(f.onChange)

			restore := logx.Redirect(io.Discard)
			defer restore()

			_, err = tea.NewProgram(newBrowseModel(ctx, store, f), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}

// feed carries store changes and notifications into the program's event loop. Both
// sides are non-blocking for the store, so store calls are safe from inside Update.
type feed struct {
	ctx     context.Context
	changed chan struct{}
	notices chan noticeMsg
}

type stateChangedMsg struct{}

type noticeMsg struct {
	variant notify.Variant
	text    string
}

type mountedMsg struct{}

type opDoneMsg struct{ err error }

type checkoutMsg struct {
	summary model.OrderSummary
	err     error
}

func newFeed(ctx context.Context) *feed {
	return &feed{
		ctx:     ctx,
		changed: make(chan struct{}, 1),
		notices: make(chan noticeMsg, noticeBuffer),
	}
}

// onChange only signals; the model reads a fresh Snapshot so out-of-order listener
// calls cannot roll the view back.
func (f *feed) onChange(app.State) {
	select {
	case f.changed <- struct{}{}:
	default:
	}
}

func (f *feed) Notify(v notify.Variant, msg string) {
	select {
	case f.notices <- noticeMsg{variant: v, text: msg}:
	default:
		logx.Warn().Str("message", msg).Msg("dropping notification")
	}
}

func (f *feed) waitChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.changed:
			return stateChangedMsg{}
		case <-f.ctx.Done():
			return nil
		}
	}
}

func (f *feed) waitNotice() tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-f.notices:
			return n
		case <-f.ctx.Done():
			return nil
		}
	}
}

type focus int

const (
	focusSearch focus = iota
	focusProducts
)

type browseModel struct {
	ctx   context.Context
	store *app.Store
	feed  *feed

	input   textinput.Model
	state   app.State
	focus   focus
	cursor  int
	notice  *noticeMsg
	summary *model.OrderSummary
	width   int
	height  int
}

func newBrowseModel(ctx context.Context, store *app.Store, f *feed) browseModel {
	in := textinput.New()
	in.Placeholder = "Search for items/categories"
	in.Prompt = "🔍 "
	in.CharLimit = 64
	in.Focus()

	return browseModel{
		ctx:   ctx,
		store: store,
		feed:  f,
		input: in,
		state: store.Snapshot(),
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.feed.waitChange(),
		m.feed.waitNotice(),
		func() tea.Msg {
			_ = m.store.Mount(m.ctx)
			return mountedMsg{}
		},
	)
}

// run executes a blocking store operation off the event loop.
func (m browseModel) run(op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: op(m.ctx)}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case stateChangedMsg:
		m.state = m.store.Snapshot()
		m.clampCursor()
		return m, m.feed.waitChange()

	case noticeMsg:
		m.notice = &msg
		return m, m.feed.waitNotice()

	case mountedMsg:
		m.state = m.store.Snapshot()
		return m, nil

	case opDoneMsg:
		return m, nil

	case checkoutMsg:
		if msg.err == nil {
			m.summary = &msg.summary
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.toggleFocus()
		return m, nil
	}

	if m.summary != nil {
		if msg.String() == "esc" || msg.String() == "q" {
			m.summary = nil
			m.store.Navigate(app.ViewHome)
		}
		return m, nil
	}

	if m.focus == focusSearch {
		if msg.String() == "down" || msg.String() == "enter" {
			m.toggleFocus()
			return m, nil
		}
		prev := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != prev {
			m.store.SearchInput(m.ctx, v)
		}
		return m, cmd
	}

	selected, ok := m.selected()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "/":
		m.toggleFocus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Filtered)-1 {
			m.cursor++
		}
	case "enter", "a":
		if ok {
			return m, m.run(func(ctx context.Context) error { return m.store.AddToCart(ctx, selected.ID) })
		}
	case "+", "=":
		if ok {
			return m, m.run(func(ctx context.Context) error { return m.store.Increment(ctx, selected.ID) })
		}
	case "-":
		if ok {
			return m, m.run(func(ctx context.Context) error { return m.store.Decrement(ctx, selected.ID) })
		}
	case "c":
		return m, func() tea.Msg {
			sum, err := m.store.Checkout(m.ctx)
			return checkoutMsg{summary: sum, err: err}
		}
	}
	return m, nil
}

func (m *browseModel) toggleFocus() {
	if m.focus == focusSearch {
		m.focus = focusProducts
		m.input.Blur()
		return
	}
	m.focus = focusSearch
	m.input.Focus()
}

func (m *browseModel) clampCursor() {
	if m.cursor >= len(m.state.Filtered) {
		m.cursor = len(m.state.Filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m browseModel) selected() (model.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Filtered) {
		return model.Product{}, false
	}
	return m.state.Filtered[m.cursor], true
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("QKart"))
	b.WriteString("  ")
	b.WriteString(renderSession(m.state.Session))
	b.WriteString("\n\n")

	if m.summary != nil {
		b.WriteString(renderCart(m.state))
		b.WriteString("\n")
		b.WriteString(renderSummary(*m.summary, m.state.Session))
		b.WriteString("\n\n")
		b.WriteString(styles.Muted.Render("esc back"))
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	left := m.productList()
	if m.state.Session.Active() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", renderCart(m.state)))
	} else {
		b.WriteString(left)
	}
	b.WriteString("\n\n")

	if m.notice != nil {
		b.WriteString(renderNotification(m.notice.variant, m.notice.text))
		b.WriteString("\n")
	}
	b.WriteString(styles.Muted.Render("tab switch focus • ↑/↓ move • enter add • +/- quantity • c checkout • ctrl+c quit"))
	return b.String()
}

func (m browseModel) productList() string {
	if m.state.Loading {
		return styles.Muted.Render("Loading Products...")
	}
	if len(m.state.Filtered) == 0 {
		return styles.Muted.Render("No products found")
	}

	rows := m.visibleRows()
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.state.Filtered))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := m.state.Filtered[i]
		marker := "  "
		if m.focus == focusProducts && i == m.cursor {
			marker = styles.Title.Render("> ")
		}
		inCart := ""
		if model.ContainsProduct(m.state.Items, p.ID) {
			inCart = styles.Success.Render(" (in cart)")
		}
		lines = append(lines, fmt.Sprintf("%s%-32s %s %s%s",
			marker,
			truncate(p.Name, 32),
			styles.Price.Render(fmt.Sprintf("$%d", p.Cost)),
			stars(p.Rating),
			inCart,
		))
	}
	return strings.Join(lines, "\n")
}

func (m browseModel) visibleRows() int {
	if m.height <= 0 {
		return 12
	}
	return max(m.height-10, 3)
}
