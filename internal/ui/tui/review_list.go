package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tracksync/internal/model"
)

// ReviewAction represents the action to perform after change review.
type ReviewAction int

const (
	// ReviewActionNone means no action was taken (user quit).
	ReviewActionNone ReviewAction = iota
	// ReviewActionApply means the user wants to apply selected changes.
	ReviewActionApply
)

// ReviewResult contains the result of the change review TUI interaction.
type ReviewResult struct {
	Action   ReviewAction
	Accepted []model.ActivityChange
}

// reviewKeyMap defines the key bindings for the review list.
type reviewKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "tab"),
			key.WithHelp("space/tab", "toggle"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "apply selected"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles for the review list TUI.
var reviewStyles = struct {
	Title   lipgloss.Style
	Help    lipgloss.Style
	Confirm lipgloss.Style
	Status  lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Confirm: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Padding(1, 2),
	Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
}

const (
	reviewCheckboxWidth = 3
	reviewTypeWidth     = 18
	reviewProviderWidth = 12
	reviewDetailWidth   = 46
	reviewColumnPadding = 2
	reviewColumnCount   = 4
)

func reviewColumns(totalWidth int) ([]table.Column, int) {
	detail := reviewDetailWidth
	if totalWidth > 0 {
		base := reviewCheckboxWidth + reviewTypeWidth + reviewProviderWidth + detail +
			(reviewColumnPadding * reviewColumnCount)
		if extra := totalWidth - base; extra > 0 {
			detail += extra
		}
	}
	columns := []table.Column{
		{Title: " ", Width: reviewCheckboxWidth},
		{Title: "Change", Width: reviewTypeWidth},
		{Title: "Provider", Width: reviewProviderWidth},
		{Title: "Detail", Width: detail},
	}
	return columns, detail
}

// ReviewModel is the BubbleTea model for interactive change review. Every
// change starts selected; the user deselects what should not be applied
// and confirms.
type ReviewModel struct {
	table       table.Model
	changes     []model.ActivityChange
	selected    map[int]bool
	keys        reviewKeyMap
	result      ReviewResult
	showHelp    bool
	confirmMode bool
	detailWidth int
	width       int
	height      int
	quitting    bool
	period      string
}

// NewReviewModel creates a review model over the proposed changes.
func NewReviewModel(changes []model.ActivityChange, period string) ReviewModel {
	columns, detailWidth := reviewColumns(0)

	selected := make(map[int]bool, len(changes))
	for i := range changes {
		selected[i] = true
	}

	m := ReviewModel{
		changes:     changes,
		selected:    selected,
		keys:        defaultReviewKeyMap(),
		detailWidth: detailWidth,
		period:      period,
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.changesToRows()),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	return m
}

func (m ReviewModel) changesToRows() []table.Row {
	rows := make([]table.Row, len(m.changes))
	for i, c := range m.changes {
		checkbox := "[ ]"
		if m.selected[i] {
			checkbox = "[✓]"
		}
		rows[i] = table.Row{
			checkbox,
			string(c.Type),
			string(c.Provider),
			truncateReviewValue(changeDetail(c), m.detailWidth),
		}
	}
	return rows
}

// changeDetail summarizes the value transition for the detail column.
func changeDetail(c model.ActivityChange) string {
	switch c.Type {
	case model.AddActivity:
		return fmt.Sprintf("%q from %s %s", c.NewValue, c.SourceProvider, c.ActivityID)
	case model.LinkActivity:
		return fmt.Sprintf("%s <-> %s %s", c.ActivityID, c.SourceProvider, c.NewValue)
	default:
		return fmt.Sprintf("%s: %q -> %q", c.ActivityID, c.OldValue, c.NewValue)
	}
}

func truncateReviewValue(value string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func (m *ReviewModel) updateColumns(totalWidth int) {
	columns, detailWidth := reviewColumns(totalWidth)
	m.detailWidth = detailWidth
	m.table.SetColumns(columns)
}

func (m ReviewModel) acceptedChanges() []model.ActivityChange {
	var accepted []model.ActivityChange
	for i, c := range m.changes {
		if m.selected[i] {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

func (m ReviewModel) selectedCount() int {
	n := 0
	for _, on := range m.selected {
		if on {
			n++
		}
	}
	return n
}

// Init implements tea.Model.
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-8, 5))
		m.updateColumns(msg.Width)
		m.table.SetRows(m.changesToRows())

	case tea.KeyMsg:
		if m.confirmMode {
			switch msg.String() {
			case "y", "Y":
				m.result = ReviewResult{
					Action:   ReviewActionApply,
					Accepted: m.acceptedChanges(),
				}
				m.quitting = true
				return m, tea.Quit
			case "n", "N", "esc":
				m.confirmMode = false
				return m, nil
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.changes) {
				m.selected[idx] = !m.selected[idx]
				m.table.SetRows(m.changesToRows())
			}
			return m, nil

		case key.Matches(msg, m.keys.ToggleAll):
			allOn := m.selectedCount() == len(m.changes)
			for i := range m.changes {
				m.selected[i] = !allOn
			}
			m.table.SetRows(m.changesToRows())
			return m, nil

		case key.Matches(msg, m.keys.Confirm):
			if m.selectedCount() > 0 {
				m.confirmMode = true
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ReviewModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("Review changes for %s", m.period)
	b.WriteString(reviewStyles.Title.Render(title))
	b.WriteString("\n\n")

	if m.confirmMode {
		b.WriteString(reviewStyles.Confirm.Render(
			fmt.Sprintf("Apply %d change(s)? (y/n)", m.selectedCount())))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	b.WriteString(reviewStyles.Status.Render(
		fmt.Sprintf("%d of %d selected", m.selectedCount(), len(m.changes))))
	b.WriteString("\n")

	if m.showHelp {
		help := []string{
			"↑/k up", "↓/j down", "space/tab toggle", "a toggle all",
			"y apply selected", "? help", "q quit",
		}
		b.WriteString(reviewStyles.Help.Render(strings.Join(help, " • ")))
	} else {
		b.WriteString(reviewStyles.Help.Render("space toggle • y apply • ? help • q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// Result returns the outcome of the interaction after the program exits.
func (m ReviewModel) Result() ReviewResult {
	return m.result
}

// ReviewChanges runs the interactive review list and returns the accepted
// changes, or an empty result if the user quit without confirming.
func ReviewChanges(changes []model.ActivityChange, period string) (ReviewResult, error) {
	if len(changes) == 0 {
		return ReviewResult{}, nil
	}
	final, err := Run(NewReviewModel(changes, period))
	if err != nil {
		return ReviewResult{}, err
	}
	if m, ok := final.(ReviewModel); ok {
		return m.Result(), nil
	}
	return ReviewResult{}, nil
}
