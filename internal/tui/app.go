package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tablelab/tablelab/internal/chart"
	"github.com/tablelab/tablelab/internal/database"
	"github.com/tablelab/tablelab/internal/notebook"
	"github.com/tablelab/tablelab/internal/stats"
)

// Focus represents which pane is focused
type Focus int

const (
	FocusTables Focus = iota
	FocusPreview
	FocusAnalysis
)

// AnalysisMode represents what the analysis pane shows.
type AnalysisMode int

const (
	AnalysisNone AnalysisMode = iota
	AnalysisStats
	AnalysisPie
	AnalysisBox
)

func (m AnalysisMode) String() string {
	switch m {
	case AnalysisStats:
		return "stats"
	case AnalysisPie:
		return "pie"
	case AnalysisBox:
		return "box"
	default:
		return ""
	}
}

// App is the main TUI application model.
type App struct {
	// Dependencies
	conn    *database.Connection
	catalog *database.Catalog
	nb      *notebook.Notebook
	dbName  string

	// Window size
	width, height int

	// State
	focus         Focus
	tables        []database.TableInfo
	selectedTable int

	// Analysis state
	mode           AnalysisMode
	analysis       string
	analysisErr    error
	analysisScroll int
	boxOnValue     bool // arrows drive the box value selector instead of category

	// Preview scrolling
	previewScroll int

	// Schema modal
	schema *database.TableInfo

	// UI state
	showHelp   bool
	showSchema bool
	err        error

	// Key bindings
	keys KeyMap
}

// NewApp creates a new TUI application over an open connection.
func NewApp(conn *database.Connection, dbName string, previewLimit, width, height int) *App {
	app := &App{
		conn:    conn,
		catalog: database.NewCatalog(conn),
		nb:      notebook.New(notebook.ConnFetcher{Conn: conn}, previewLimit),
		dbName:  dbName,
		width:   width,
		height:  height,
		focus:   FocusTables,
		keys:    DefaultKeyMap(),
	}

	// Any table change discards whatever analysis was on screen.
	app.nb.OnSelect("clear-analysis", func(table string) {
		app.mode = AnalysisNone
		app.analysis = ""
		app.analysisErr = nil
		app.analysisScroll = 0
		app.previewScroll = 0
	})

	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.loadCatalog
}

// loadCatalog loads the table catalog.
func (a *App) loadCatalog() tea.Msg {
	names, err := a.catalog.ListTables()
	if err != nil {
		return CatalogLoadedMsg{Error: err}
	}

	tables := make([]database.TableInfo, 0, len(names))
	for _, name := range names {
		count, err := a.catalog.GetRowCount(name)
		if err != nil {
			return CatalogLoadedMsg{Error: err}
		}
		tables = append(tables, database.TableInfo{Name: name, RowCount: count})
	}
	return CatalogLoadedMsg{Tables: tables}
}

// loadSchema loads column details for the selected table.
func (a *App) loadSchema() tea.Msg {
	if a.selectedTable >= len(a.tables) {
		return SchemaLoadedMsg{Error: fmt.Errorf("no table selected")}
	}
	info, err := a.catalog.GetTableInfo(a.tables[a.selectedTable].Name)
	return SchemaLoadedMsg{Info: info, Error: err}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case CatalogLoadedMsg:
		if msg.Error != nil {
			a.err = msg.Error
			return a, nil
		}
		current := a.currentTableName()
		a.tables = msg.Tables
		a.selectedTable = 0
		// Keep the selection on the same table across a refresh when it
		// still exists.
		for i, t := range a.tables {
			if t.Name == current {
				a.selectedTable = i
				break
			}
		}
		if len(a.tables) > 0 {
			a.selectTable(a.selectedTable)
		}
		return a, nil

	case SchemaLoadedMsg:
		if msg.Error != nil {
			a.err = msg.Error
		} else {
			a.schema = msg.Info
			a.showSchema = true
		}
		return a, nil

	case ErrorMsg:
		a.err = msg.Error
		return a, nil
	}

	return a, nil
}

func (a *App) currentTableName() string {
	if a.selectedTable < len(a.tables) {
		return a.tables[a.selectedTable].Name
	}
	return ""
}

// selectTable moves the cursor and selects the table in one step. The
// preview fetch happens here, before the next frame is drawn, so the
// panes can never show data from a previously selected table.
func (a *App) selectTable(i int) {
	if i < 0 || i >= len(a.tables) {
		return
	}
	a.selectedTable = i
	if err := a.nb.SelectTable(a.tables[i].Name); err != nil {
		a.err = err
		return
	}
	a.err = nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle help overlay
	if a.showHelp {
		if key.Matches(msg, a.keys.Back) || key.Matches(msg, a.keys.Help) {
			a.showHelp = false
		}
		return a, nil
	}

	// Handle schema modal
	if a.showSchema {
		if key.Matches(msg, a.keys.Back) || key.Matches(msg, a.keys.Schema) {
			a.showSchema = false
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		a.nb.Cache().Invalidate()
		return a, a.loadCatalog

	case key.Matches(msg, a.keys.Schema):
		if a.selectedTable < len(a.tables) {
			return a, a.loadSchema
		}
		return a, nil

	case key.Matches(msg, a.keys.NextPane):
		a.focus = (a.focus + 1) % 3
		return a, nil

	case key.Matches(msg, a.keys.PrevPane):
		a.focus = (a.focus + 2) % 3
		return a, nil

	case key.Matches(msg, a.keys.Back):
		if a.mode != AnalysisNone {
			a.mode = AnalysisNone
			a.analysis = ""
			a.analysisErr = nil
			a.analysisScroll = 0
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		return a.handleUp()

	case key.Matches(msg, a.keys.Down):
		return a.handleDown()

	case key.Matches(msg, a.keys.Left):
		return a.handleLeft()

	case key.Matches(msg, a.keys.Right):
		return a.handleRight()

	case key.Matches(msg, a.keys.Stats):
		a.runStats()
		return a, nil

	case key.Matches(msg, a.keys.Pie):
		a.runPie()
		return a, nil

	case key.Matches(msg, a.keys.Box):
		a.runBox()
		return a, nil

	case key.Matches(msg, a.keys.SwitchSelector):
		a.boxOnValue = !a.boxOnValue
		return a, nil
	}

	return a, nil
}

func (a *App) handleUp() (tea.Model, tea.Cmd) {
	switch a.focus {
	case FocusTables:
		if a.selectedTable > 0 {
			a.selectTable(a.selectedTable - 1)
		}
	case FocusPreview:
		if a.previewScroll > 0 {
			a.previewScroll--
		}
	case FocusAnalysis:
		if a.analysisScroll > 0 {
			a.analysisScroll--
		}
	}
	return a, nil
}

func (a *App) handleDown() (tea.Model, tea.Cmd) {
	switch a.focus {
	case FocusTables:
		if a.selectedTable < len(a.tables)-1 {
			a.selectTable(a.selectedTable + 1)
		}
	case FocusPreview:
		if preview := a.nb.Preview(); preview != nil && a.previewScroll < preview.RowCount()-1 {
			a.previewScroll++
		}
	case FocusAnalysis:
		if a.analysisScroll < strings.Count(a.analysis, "\n") {
			a.analysisScroll++
		}
	}
	return a, nil
}

// handleLeft cycles the active column selector backwards when a chart is
// showing, and moves pane focus otherwise.
func (a *App) handleLeft() (tea.Model, tea.Cmd) {
	switch a.mode {
	case AnalysisPie:
		a.nb.PieColumn.Prev()
		a.runPie()
	case AnalysisBox:
		a.activeBoxSelector().Prev()
		a.runBox()
	default:
		if a.focus > 0 {
			a.focus--
		}
	}
	return a, nil
}

func (a *App) handleRight() (tea.Model, tea.Cmd) {
	switch a.mode {
	case AnalysisPie:
		a.nb.PieColumn.Next()
		a.runPie()
	case AnalysisBox:
		a.activeBoxSelector().Next()
		a.runBox()
	default:
		if a.focus < FocusAnalysis {
			a.focus++
		}
	}
	return a, nil
}

func (a *App) activeBoxSelector() *notebook.ColumnSelector {
	if a.boxOnValue {
		return a.nb.BoxValue
	}
	return a.nb.BoxCategory
}

func (a *App) runStats() {
	summaries, err := a.nb.Describe()
	a.mode = AnalysisStats
	a.analysisScroll = 0
	a.analysisErr = err
	if err != nil {
		a.analysis = ""
		return
	}
	a.analysis = renderSummaries(a.currentTableName(), summaries)
}

func (a *App) runPie() {
	counts, err := a.nb.PieCounts()
	a.mode = AnalysisPie
	a.analysisScroll = 0
	a.analysisErr = err
	if err != nil {
		a.analysis = ""
		return
	}
	pie := chart.NewPie(a.nb.PieColumn.Value(), counts)
	a.analysis = pie.Render(a.analysisInnerWidth())
}

func (a *App) runBox() {
	groups, err := a.nb.BoxGroups()
	a.mode = AnalysisBox
	a.analysisScroll = 0
	a.analysisErr = err
	if err != nil {
		a.analysis = ""
		return
	}
	box := chart.NewBox(a.nb.BoxCategory.Value(), a.nb.BoxValue.Value(), groups)
	a.analysis = box.Render(a.analysisInnerWidth())
}

// renderSummaries renders per-column descriptive statistics as text.
func renderSummaries(table string, summaries []stats.ColumnSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s summary (%d columns)\n\n", table, len(summaries)))

	nameW := 6
	for _, s := range summaries {
		if len(s.Name) > nameW {
			nameW = len(s.Name)
		}
	}

	b.WriteString(fmt.Sprintf("%-*s  %8s  %6s  %8s  %10s  %10s  %10s\n",
		nameW, "column", "non-null", "nulls", "distinct", "min", "mean", "max"))

	for _, s := range summaries {
		if s.Numeric {
			b.WriteString(fmt.Sprintf("%-*s  %8d  %6d  %8d  %10.4g  %10.4g  %10.4g\n",
				nameW, s.Name, s.NonNull, s.Nulls, s.Distinct, s.Min, s.Mean, s.Max))
		} else {
			b.WriteString(fmt.Sprintf("%-*s  %8d  %6d  %8d  %10s  %10s  %10s\n",
				nameW, s.Name, s.NonNull, s.Nulls, s.Distinct, "-", "-", "-"))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width < 60 || a.height < 10 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			errorStyle.Render("Terminal too small\nMin: 60x10"))
	}

	if a.showHelp {
		return a.renderHelp()
	}

	if a.showSchema {
		return a.renderSchema()
	}

	tablesWidth := a.tablesPaneWidth()
	analysisWidth := a.analysisPaneWidth()
	previewWidth := a.width - tablesWidth - analysisWidth - 2 // gaps between panes
	contentHeight := a.height - 2                             // selector bar (1) + status bar (1)

	var b strings.Builder

	tablesPane := a.renderTablesPane(tablesWidth, contentHeight)
	previewPane := a.renderPreviewPane(previewWidth, contentHeight)
	analysisPane := a.renderAnalysisPane(analysisWidth, contentHeight)

	content := lipgloss.JoinHorizontal(lipgloss.Top, tablesPane, previewPane, analysisPane)
	b.WriteString(content)
	b.WriteString("\n")

	b.WriteString(a.renderSelectorBar())
	b.WriteString("\n")

	b.WriteString(a.renderStatusBar())

	return b.String()
}

// tablesPaneWidth sizes the catalog pane to its longest table name.
func (a *App) tablesPaneWidth() int {
	maxLen := 6 // "Tables"
	for _, t := range a.tables {
		if len(t.Name) > maxLen {
			maxLen = len(t.Name)
		}
	}
	w := maxLen + 7 // cursor prefix, padding, borders
	if w > a.width/3 {
		w = a.width / 3
	}
	if w < 14 {
		w = 14
	}
	return w
}

func (a *App) analysisPaneWidth() int {
	w := a.width * 2 / 5
	if w < 30 {
		w = 30
	}
	return w
}

// analysisInnerWidth is the text width available to chart renderers.
func (a *App) analysisInnerWidth() int {
	w := a.analysisPaneWidth() - 4 // borders and padding
	if w < 20 {
		w = 20
	}
	return w
}

func (a *App) renderTablesPane(width, height int) string {
	focused := a.focus == FocusTables

	visibleHeight := height - 2
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	var content strings.Builder

	if len(a.tables) == 0 {
		content.WriteString(dimItemStyle.Render(" No tables"))
	} else {
		offset := 0
		if a.selectedTable >= visibleHeight {
			offset = a.selectedTable - visibleHeight + 1
		}
		end := offset + visibleHeight
		if end > len(a.tables) {
			end = len(a.tables)
		}

		if offset > 0 {
			content.WriteString(dimItemStyle.Render(" ↑ more\n"))
			visibleHeight--
			end = offset + visibleHeight
			if end > len(a.tables) {
				end = len(a.tables)
			}
		}

		for i := offset; i < end; i++ {
			item := truncateString(a.tables[i].Name, width-6)
			if i == a.selectedTable {
				item = selectedItemStyle.Render("> " + item)
			} else {
				item = normalItemStyle.Render("  " + item)
			}
			content.WriteString(item)
			if i < end-1 || end < len(a.tables) {
				content.WriteString("\n")
			}
		}

		if end < len(a.tables) {
			content.WriteString(dimItemStyle.Render(" ↓ more"))
		}
	}

	return a.renderPaneWithTitle(content.String(), width, height, "Tables", focused)
}

func (a *App) renderPreviewPane(width, height int) string {
	focused := a.focus == FocusPreview

	if a.err != nil {
		return a.renderPaneWithTitle(errorStyle.Render(a.err.Error()), width, height, "Preview", focused)
	}

	preview := a.nb.Preview()
	if preview == nil || len(preview.Columns) == 0 {
		return a.renderPaneWithTitle(dimItemStyle.Render("No table selected"), width, height, "Preview", focused)
	}

	innerWidth := width - 4
	innerHeight := height - 2

	var content strings.Builder
	content.WriteString(a.renderGrid(preview, innerWidth, innerHeight))

	title := fmt.Sprintf("Preview: %s", preview.Table)
	return a.renderPaneWithTitle(content.String(), width, height, title, focused)
}

// renderGrid renders a frame as a fixed-width text grid, vertically
// scrolled by previewScroll.
func (a *App) renderGrid(frame *database.Frame, width, height int) string {
	widths := make([]int, len(frame.Columns))
	for i, col := range frame.Columns {
		widths[i] = len(col)
	}
	for _, row := range frame.Rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			if l := len(database.FormatValue(v)); l > widths[i] {
				widths[i] = l
			}
		}
	}
	for i := range widths {
		if widths[i] > 24 {
			widths[i] = 24
		}
	}

	formatLine := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], truncateString(c, widths[i]))
		}
		return truncateString(strings.Join(parts, "  "), width)
	}

	var b strings.Builder
	b.WriteString(gridHeaderStyle.Render(formatLine(frame.Columns)))
	b.WriteString("\n")
	ruleWidth := 0
	for _, w := range widths {
		ruleWidth += w + 2
	}
	if ruleWidth > width {
		ruleWidth = width
	}
	b.WriteString(gridRuleStyle.Render(strings.Repeat("─", ruleWidth)))
	b.WriteString("\n")

	dataRows := height - 2 // header and rule
	if dataRows < 1 {
		dataRows = 1
	}

	start := a.previewScroll
	if start > len(frame.Rows)-1 {
		start = len(frame.Rows) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + dataRows
	if end > len(frame.Rows) {
		end = len(frame.Rows)
	}

	for i := start; i < end; i++ {
		b.WriteString(formatLine(database.FormatRow(frame.Rows[i])))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (a *App) renderAnalysisPane(width, height int) string {
	focused := a.focus == FocusAnalysis

	title := "Analysis"
	if a.mode != AnalysisNone {
		title = "Analysis: " + a.mode.String()
	}

	var content string
	switch {
	case a.analysisErr != nil:
		content = errorStyle.Render(a.analysisErr.Error())
	case a.mode == AnalysisNone:
		content = dimItemStyle.Render("s: statistics\np: pie chart\nb: box plot")
	default:
		lines := strings.Split(a.analysis, "\n")
		if a.analysisScroll > 0 && a.analysisScroll < len(lines) {
			lines = lines[a.analysisScroll:]
		}
		content = strings.Join(lines, "\n")
	}

	return a.renderPaneWithTitle(content, width, height, title, focused)
}

// renderSelectorBar shows the pie and box column selectors. The selector
// the arrow keys currently drive is highlighted.
func (a *App) renderSelectorBar() string {
	pie := a.nb.PieColumn.Value()
	cat := a.nb.BoxCategory.Value()
	val := a.nb.BoxValue.Value()
	if pie == "" {
		return selectorLabelStyle.Render(" no columns")
	}

	style := func(active bool, s string) string {
		if active {
			return selectorActiveStyle.Render("‹" + s + "›")
		}
		return selectorValueStyle.Render(s)
	}

	var parts []string
	parts = append(parts, selectorLabelStyle.Render("pie:"))
	parts = append(parts, style(a.mode == AnalysisPie, pie))
	parts = append(parts, selectorLabelStyle.Render("box:"))
	parts = append(parts, style(a.mode == AnalysisBox && !a.boxOnValue, cat))
	parts = append(parts, selectorLabelStyle.Render("×"))
	parts = append(parts, style(a.mode == AnalysisBox && a.boxOnValue, val))

	return " " + strings.Join(parts, " ")
}

func (a *App) renderStatusBar() string {
	var leftParts []string
	var rightParts []string

	leftParts = append(leftParts, titleStyle.Render("tablelab"))
	leftParts = append(leftParts, dimItemStyle.Render(a.dbName))

	if a.selectedTable < len(a.tables) {
		t := a.tables[a.selectedTable]
		rightParts = append(rightParts, statusKeyStyle.Render(t.Name))
		rightParts = append(rightParts, dimItemStyle.Render(fmt.Sprintf("| %s rows", humanize.Comma(t.RowCount))))
	}

	if a.mode != AnalysisNone {
		rightParts = append(rightParts, statusValueStyle.Render("["+a.mode.String()+"]"))
	}

	rightParts = append(rightParts, dimItemStyle.Render("| ?:help q:quit"))

	leftContent := strings.Join(leftParts, " ")
	rightContent := strings.Join(rightParts, " ")

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(rightContent)
	padding := a.width - leftWidth - rightWidth - 2
	if padding < 1 {
		padding = 1
	}

	content := leftContent + strings.Repeat(" ", padding) + rightContent
	return statusBarStyle.Width(a.width).Render(content)
}

// buildBorderTitle builds a top border line with an embedded title.
func (a *App) buildBorderTitle(width int, title string, focused bool) string {
	border := lipgloss.RoundedBorder()
	var borderColor lipgloss.Color
	var style lipgloss.Style
	if focused {
		borderColor = primaryColor
		style = focusedBorderTitleStyle
	} else {
		borderColor = mutedColor
		style = borderTitleStyle
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	titleRendered := style.Render(truncateString(title, width-6))
	titleWidth := lipgloss.Width(titleRendered)

	// ╭─ Title ───────╮
	remainingWidth := width - 5 - titleWidth
	if remainingWidth < 0 {
		remainingWidth = 0
	}

	var b strings.Builder
	b.WriteString(borderStyle.Render(border.TopLeft))
	b.WriteString(borderStyle.Render(border.Top))
	b.WriteString(" ")
	b.WriteString(titleRendered)
	b.WriteString(" ")
	b.WriteString(borderStyle.Render(strings.Repeat(border.Top, remainingWidth)))
	b.WriteString(borderStyle.Render(border.TopRight))

	return b.String()
}

// renderPaneWithTitle renders content in a pane with a title in the top border
func (a *App) renderPaneWithTitle(content string, width, height int, title string, focused bool) string {
	border := lipgloss.RoundedBorder()
	var borderColor lipgloss.Color
	if focused {
		borderColor = primaryColor
	} else {
		borderColor = mutedColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	innerWidth := width - 2
	innerHeight := height - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}

	contentLines := strings.Split(content, "\n")
	for len(contentLines) < innerHeight {
		contentLines = append(contentLines, "")
	}
	if len(contentLines) > innerHeight {
		contentLines = contentLines[:innerHeight]
	}

	var result strings.Builder

	result.WriteString(a.buildBorderTitle(width, title, focused))
	result.WriteString("\n")

	for _, line := range contentLines {
		result.WriteString(borderStyle.Render(border.Left))
		paddedLine := " " + line // left padding
		lineWidth := lipgloss.Width(paddedLine)
		if lineWidth < innerWidth {
			paddedLine += strings.Repeat(" ", innerWidth-lineWidth)
		}
		result.WriteString(paddedLine)
		result.WriteString(borderStyle.Render(border.Right))
		result.WriteString("\n")
	}

	result.WriteString(borderStyle.Render(border.BottomLeft))
	result.WriteString(borderStyle.Render(strings.Repeat(border.Bottom, innerWidth)))
	result.WriteString(borderStyle.Render(border.BottomRight))

	return result.String()
}

func (a *App) renderHelp() string {
	var b strings.Builder

	bindings := []struct {
		key  string
		desc string
	}{
		{"↑/k, ↓/j", "Navigate tables / scroll"},
		{"Tab", "Next pane"},
		{"s", "Summary statistics"},
		{"p", "Pie chart of selected column"},
		{"b", "Box plot (value by category)"},
		{"←/h, →/l", "Cycle chart column"},
		{"v", "Switch box category/value selector"},
		{"d", "Show table schema"},
		{"r", "Refresh catalog"},
		{"Esc", "Clear analysis"},
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit"},
	}

	for _, binding := range bindings {
		b.WriteString(helpKeyStyle.Render(fmt.Sprintf("%-12s", binding.key)))
		b.WriteString(helpDescStyle.Render(binding.desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimItemStyle.Render("Press ? or Esc to close"))

	modal := modalStyle.Render(titleStyle.Render("Help") + "\n\n" + b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

func (a *App) renderSchema() string {
	var b strings.Builder

	if a.schema == nil {
		b.WriteString(dimItemStyle.Render("Loading..."))
	} else {
		b.WriteString(borderTitleStyle.Render(a.schema.Name))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Rows: %s\n\n", humanize.Comma(a.schema.RowCount)))

		nameW, typeW := 6, 4
		for _, col := range a.schema.Columns {
			if len(col.Name) > nameW {
				nameW = len(col.Name)
			}
			if len(col.Type) > typeW {
				typeW = len(col.Type)
			}
		}

		b.WriteString(gridHeaderStyle.Render(fmt.Sprintf("%-*s  %-*s  PK  NotNull", nameW, "Column", typeW, "Type")))
		b.WriteString("\n")

		for _, col := range a.schema.Columns {
			pk := "  "
			if col.PrimaryKey > 0 {
				pk = "✓ "
			}
			nn := "  "
			if col.NotNull {
				nn = "✓"
			}
			b.WriteString(fmt.Sprintf("%-*s  %-*s  %s  %s\n", nameW, col.Name, typeW, col.Type, pk, nn))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimItemStyle.Render("Press Esc to close"))

	modal := modalStyle.Render(titleStyle.Render("Schema") + "\n\n" + b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// truncateString truncates a string to maxLen, adding ellipsis if needed
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}
