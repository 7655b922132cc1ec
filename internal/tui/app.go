package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/serabi/organized-glitter-sub007/internal/config"
	"github.com/serabi/organized-glitter-sub007/internal/database/repository"
	"github.com/serabi/organized-glitter-sub007/internal/filters"
	"github.com/serabi/organized-glitter-sub007/internal/service"
	"github.com/serabi/organized-glitter-sub007/internal/session"
)

// App ties together views. All filter changes flow through the session
// actions layer; the app never mutates filter state directly.
type App struct {
	ctx      context.Context
	repos    Repos
	services Services
	cfg      config.Config
	device   filters.DeviceClass
	userID   string

	store   *session.Store
	actions *session.Actions
	stats   *session.StatsProjector

	state   appState
	modal   modalState
	status  string
	cursor  int
	scroll  atomic.Int32
	page    repository.PageResult
	tags    []repository.Tag
	notes   []repository.ProgressNote
	detail  *repository.Project
	tagCur  int
	input   string
	lastRun *service.ImportResult
}

type Repos struct {
	Projects *repository.ProjectRepo
	Tags     *repository.TagRepo
	Notes    *repository.ProgressNoteRepo
}

type Services struct {
	Importer *service.ImportService
	Exporter *service.ExportService
}

type appState string

const (
	viewDashboard appState = "dashboard"
	viewDetail    appState = "detail"
	viewFilters   appState = "filters"
	viewImport    appState = "import"
)

type modalState string

const (
	modalNone      modalState = ""
	modalSearch    modalState = "search"
	modalTagPicker modalState = "tagPicker"
	modalNewNote   modalState = "newNote"
	modalExport    modalState = "export"
)

func New(ctx context.Context, cfg config.Config, device filters.DeviceClass, userID string,
	repos Repos, services Services, store *session.Store, stats *session.StatsProjector) *App {
	return &App{
		ctx:      ctx,
		repos:    repos,
		services: services,
		cfg:      cfg,
		device:   device,
		userID:   userID,
		store:    store,
		actions:  session.NewActions(store),
		stats:    stats,
		state:    viewDashboard,
	}
}

// ScrollPosition is read by the snapshot auto-saver; it tracks the list
// cursor and is safe to call from other goroutines.
func (a *App) ScrollPosition() int { return int(a.scroll.Load()) }

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadProjects(), a.loadTags(), a.refreshStatsCmd())
}

func (a *App) loadProjects() tea.Cmd {
	return func() tea.Msg {
		res, err := a.repos.Projects.Page(a.ctx, a.userID, a.store.State())
		if err != nil {
			return errMsg{err}
		}
		return projectsMsg(res)
	}
}

func (a *App) loadTags() tea.Cmd {
	return func() tea.Msg {
		tags, err := a.repos.Tags.List(a.ctx, a.userID)
		if err != nil {
			return errMsg{err}
		}
		return tagListMsg(tags)
	}
}

func (a *App) loadNotes(projectID string) tea.Cmd {
	return func() tea.Msg {
		notes, err := a.repos.Notes.ForProject(a.ctx, projectID)
		if err != nil {
			return errMsg{err}
		}
		return notesMsg(notes)
	}
}

func (a *App) refreshStatsCmd() tea.Cmd {
	return func() tea.Msg {
		a.stats.Refresh(a.ctx)
		return statsMsg{}
	}
}

func (a *App) retryStatsCmd() tea.Cmd {
	return func() tea.Msg {
		a.stats.Retry(a.ctx)
		return statsMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewImport:
			return a.handleImportKey(m)
		case viewFilters:
			return a.handleFiltersKey(m)
		case viewDetail:
			return a.handleDetailKey(m)
		}
		return a.handleDashboardKey(m)
	case projectsMsg:
		a.page = repository.PageResult(m)
		if a.cursor >= len(a.page.Projects) {
			a.cursor = 0
		}
		a.scroll.Store(int32(a.cursor))
	case tagListMsg:
		a.tags = []repository.Tag(m)
		if a.tagCur >= len(a.tags) {
			a.tagCur = 0
		}
	case notesMsg:
		a.notes = []repository.ProgressNote(m)
	case statsMsg:
		// projector already holds the result; re-render picks it up
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	case importDoneMsg:
		a.lastRun = &m.Result
		summary := fmt.Sprintf("imported %d, skipped %d, tags created %d",
			m.Result.Imported, m.Result.Skipped, m.Result.TagsCreated)
		if len(m.Result.Errors) > 0 {
			summary += fmt.Sprintf(", errors %d", len(m.Result.Errors))
		}
		a.status = summary
		a.state = viewDashboard
		return a, tea.Batch(a.loadProjects(), a.loadTags(), a.refreshStatsCmd())
	}
	return a, nil
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab", "right":
		a.actions.UpdateStatus(nextStatus(a.store.State().ActiveStatus, 1))
		return a, a.loadProjects()
	case "shift+tab", "left":
		a.actions.UpdateStatus(nextStatus(a.store.State().ActiveStatus, -1))
		return a, a.loadProjects()
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
			a.scroll.Store(int32(a.cursor))
		}
	case "down", "j":
		if a.cursor < len(a.page.Projects)-1 {
			a.cursor++
			a.scroll.Store(int32(a.cursor))
		}
	case "n":
		if a.hasNextPage() {
			a.actions.UpdatePage(a.store.State().CurrentPage + 1)
			return a, a.loadProjects()
		}
	case "p":
		if a.store.State().CurrentPage > 1 {
			a.actions.UpdatePage(a.store.State().CurrentPage - 1)
			return a, a.loadProjects()
		}
	case "v":
		if a.store.State().ViewType == filters.ViewGrid {
			a.actions.UpdateViewType(filters.ViewList)
		} else {
			a.actions.UpdateViewType(filters.ViewGrid)
		}
	case "/":
		a.modal = modalSearch
		a.input = a.store.State().SearchTerm
	case "t":
		a.modal = modalTagPicker
	case "f":
		a.state = viewFilters
		a.status = ""
	case "i":
		a.state = viewImport
		a.status = ""
		a.input = ""
	case "e":
		a.modal = modalExport
		a.input = "glitter-export.csv"
	case "s":
		if _, st := a.stats.CountsForTabs(); st == session.StatsError {
			a.status = "refetching counts..."
			return a, a.retryStatsCmd()
		}
	case "r":
		a.actions.ResetFilters()
		return a, a.loadProjects()
	case "enter":
		if len(a.page.Projects) == 0 {
			return a, nil
		}
		p := a.page.Projects[a.cursor]
		a.detail = &p
		a.state = viewDetail
		return a, a.loadNotes(p.ID)
	}
	return a, nil
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "d":
		a.state = viewDashboard
		a.detail = nil
		a.notes = nil
	case "a":
		a.modal = modalNewNote
		a.input = ""
	}
	return a, nil
}

func (a *App) handleFiltersKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	reload := func() (tea.Model, tea.Cmd) { return a, a.loadProjects() }
	s := a.store.State()
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "d":
		a.state = viewDashboard
		a.status = ""
	case "m":
		a.actions.UpdateIncludeMiniKits(!s.IncludeMiniKits)
		return reload()
	case "w":
		a.actions.UpdateIncludeWishlist(!s.IncludeWishlist)
		return reload()
	case "x":
		a.actions.UpdateIncludeDestashed(!s.IncludeDestashed)
		return reload()
	case "h":
		a.actions.UpdateIncludeArchived(!s.IncludeArchived)
		return reload()
	case "o":
		a.actions.UpdateIncludeOnHold(!s.IncludeOnHold)
		return reload()
	case "c":
		a.actions.UpdateCompany(cycleOption(a.companyOptions(), s.SelectedCompany))
		return reload()
	case "y":
		a.actions.UpdateYearFinished(cycleOption(a.yearOptions(), s.SelectedYearFinished))
		return reload()
	case "+", "=":
		a.actions.UpdatePageSize(s.PageSize + 5)
		return reload()
	case "-":
		if s.PageSize > 5 {
			a.actions.UpdatePageSize(s.PageSize - 5)
			return reload()
		}
	case "S":
		return a, a.saveDefaultPageSizeCmd()
	case "1":
		a.actions.UpdateSort(filters.SortLastUpdated, filters.SortDesc)
		return reload()
	case "2":
		a.actions.UpdateSort(filters.SortTitle, filters.SortAsc)
		return reload()
	case "3":
		a.actions.UpdateSort(filters.SortDatePurchased, filters.SortDesc)
		return reload()
	case "4":
		a.actions.UpdateSort(filters.SortDateCompleted, filters.SortDesc)
		return reload()
	case "r":
		a.actions.ResetFilters()
		return reload()
	}
	return a, nil
}

func (a *App) handleImportKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	}
	switch m.Type {
	case tea.KeyEsc:
		a.state = viewDashboard
		a.status = ""
	case tea.KeyEnter:
		path := strings.TrimSpace(a.input)
		if path == "" {
			a.status = "enter a CSV path"
			return a, nil
		}
		return a, a.importCmd(path)
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	case tea.KeySpace:
		a.input += " "
	case tea.KeyRunes:
		a.input += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalSearch:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.input = ""
		case tea.KeyEnter:
			a.modal = modalNone
			a.actions.UpdateSearchTerm(strings.TrimSpace(a.input))
			a.input = ""
			return a, a.loadProjects()
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.input) > 0 {
				a.input = a.input[:len(a.input)-1]
			}
		case tea.KeySpace:
			a.input += " "
		case tea.KeyRunes:
			a.input += string(m.Runes)
		}
	case modalTagPicker:
		switch m.String() {
		case "esc":
			a.modal = modalNone
		case "up", "k":
			if a.tagCur > 0 {
				a.tagCur--
			}
		case "down", "j":
			if a.tagCur < len(a.tags)-1 {
				a.tagCur++
			}
		case "c":
			a.modal = modalNone
			a.actions.ClearAllTags()
			return a, a.loadProjects()
		case "enter", " ":
			if len(a.tags) == 0 {
				a.modal = modalNone
				return a, nil
			}
			a.actions.ToggleTag(a.tags[a.tagCur].ID)
			return a, a.loadProjects()
		}
	case modalNewNote:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.input = ""
		case tea.KeyEnter:
			text := strings.TrimSpace(a.input)
			a.modal = modalNone
			a.input = ""
			if text == "" || a.detail == nil {
				return a, nil
			}
			return a, a.addNoteCmd(a.detail.ID, text)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.input) > 0 {
				a.input = a.input[:len(a.input)-1]
			}
		case tea.KeySpace:
			a.input += " "
		case tea.KeyRunes:
			a.input += string(m.Runes)
		}
	case modalExport:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.input = ""
		case tea.KeyEnter:
			path := strings.TrimSpace(a.input)
			a.modal = modalNone
			a.input = ""
			if path == "" {
				return a, nil
			}
			return a, a.exportCmd(path)
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.input) > 0 {
				a.input = a.input[:len(a.input)-1]
			}
		case tea.KeyRunes:
			a.input += string(m.Runes)
		}
	}
	return a, nil
}

// commands
func (a *App) importCmd(path string) tea.Cmd {
	abs := path
	if !filepath.IsAbs(path) {
		if p, err := filepath.Abs(path); err == nil {
			abs = p
		}
	}
	a.status = "importing..."
	return func() tea.Msg {
		f, err := os.Open(abs)
		if err != nil {
			return errMsg{fmt.Errorf("open %s: %w", abs, err)}
		}
		defer f.Close()

		res, err := a.services.Importer.ImportCSV(a.ctx, f, a.userID, service.DefaultFormat())
		if err != nil {
			return errMsg{err}
		}
		return importDoneMsg{Result: res}
	}
}

func (a *App) exportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return errMsg{fmt.Errorf("create %s: %w", path, err)}
		}
		defer f.Close()

		n, err := a.services.Exporter.ExportCSV(a.ctx, f, a.userID)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("exported %d projects to %s", n, path))
	}
}

func (a *App) addNoteCmd(projectID, content string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			now := time.Now().UTC()
			note := repository.ProgressNote{
				ID:        uuid.NewString(),
				ProjectID: projectID,
				Date:      now,
				Content:   content,
				CreatedAt: now,
			}
			if err := a.repos.Notes.Add(a.ctx, note); err != nil {
				return errMsg{err}
			}
			return statusMsg("note added")
		},
		a.loadNotes(projectID),
	)
}

// saveDefaultPageSizeCmd persists the current page size as this
// device's default for future sessions.
func (a *App) saveDefaultPageSizeCmd() tea.Cmd {
	return func() tea.Msg {
		size := a.store.State().PageSize
		if a.device == filters.DevicePhone {
			a.cfg.UI.PageSizePhone = size
		} else {
			a.cfg.UI.PageSizeDesktop = size
		}
		if err := config.Save(a.cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("page size %d saved as default", size))
	}
}

func (a *App) hasNextPage() bool {
	s := a.store.State()
	return s.CurrentPage*s.PageSize < a.page.TotalCount
}

func (a *App) companyOptions() []string {
	opts := []string{filters.SelectAll}
	companies, err := a.repos.Projects.Companies(a.ctx, a.userID)
	if err != nil {
		return opts
	}
	return append(opts, companies...)
}

func (a *App) yearOptions() []string {
	opts := []string{filters.SelectAll}
	years, err := a.repos.Projects.YearsFinished(a.ctx, a.userID)
	if err != nil {
		return opts
	}
	return append(opts, years...)
}

// cycleOption returns the entry after current, wrapping around.
func cycleOption(opts []string, current string) string {
	for i, o := range opts {
		if o == current {
			return opts[(i+1)%len(opts)]
		}
	}
	if len(opts) > 0 {
		return opts[0]
	}
	return current
}

// tabOrder is the dashboard tab row: All first, then project statuses.
var tabOrder = append([]filters.Status{filters.StatusAll}, filters.ProjectStatuses...)

func nextStatus(current filters.Status, step int) filters.Status {
	for i, st := range tabOrder {
		if st == current {
			return tabOrder[(i+step+len(tabOrder))%len(tabOrder)]
		}
	}
	return filters.StatusAll
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewDetail:
		body = a.renderDetail()
	case viewFilters:
		body = a.renderFilters()
	case viewImport:
		body = a.renderImport()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

// messages
type projectsMsg repository.PageResult

type tagListMsg []repository.Tag

type notesMsg []repository.ProgressNote

type statsMsg struct{}

type statusMsg string

type errMsg struct{ error }

type importDoneMsg struct {
	Result service.ImportResult
}

// styles
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
)

var tabLabels = map[filters.Status]string{
	filters.StatusAll:       "All",
	filters.StatusWishlist:  "Wishlist",
	filters.StatusPurchased: "Purchased",
	filters.StatusStash:     "Stash",
	filters.StatusProgress:  "In Progress",
	filters.StatusOnHold:    "On Hold",
	filters.StatusCompleted: "Completed",
	filters.StatusDestashed: "Destashed",
	filters.StatusArchived:  "Archived",
}

func (a *App) renderTabs() string {
	counts, st := a.stats.CountsForTabs()
	badge := func(n int) string {
		switch st {
		case session.StatsLoading:
			return "…"
		case session.StatsError:
			return "!"
		}
		return fmt.Sprintf("%d", n)
	}
	byTab := map[filters.Status]int{
		filters.StatusAll:       counts.All,
		filters.StatusWishlist:  counts.Wishlist,
		filters.StatusPurchased: counts.Purchased,
		filters.StatusStash:     counts.Stash,
		filters.StatusProgress:  counts.Progress,
		filters.StatusOnHold:    counts.OnHold,
		filters.StatusCompleted: counts.Completed,
		filters.StatusDestashed: counts.Destashed,
		filters.StatusArchived:  counts.Archived,
	}
	active := a.store.State().ActiveStatus
	var parts []string
	for _, tab := range tabOrder {
		label := fmt.Sprintf("%s (%s)", tabLabels[tab], badge(byTab[tab]))
		if tab == active {
			label = activeTabStyle.Render(label)
		}
		parts = append(parts, label)
	}
	row := strings.Join(parts, "  ")
	if st == session.StatsError {
		row += "\ncounts unavailable - [s] retry"
	}
	return row
}

func (a *App) renderDashboard() string {
	s := a.store.State()
	title := titleStyle.Render("Organized Glitter")
	header := a.renderTabs()

	filterBadge := ""
	if n := a.actions.ActiveFilterCount(); n > 0 {
		filterBadge = fmt.Sprintf("  filters: %d", n)
	}
	searchNote := ""
	if s.SearchTerm != "" {
		searchNote = fmt.Sprintf("  search: %q", s.SearchTerm)
	}
	totalPages := (a.page.TotalCount + s.PageSize - 1) / s.PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	meta := fmt.Sprintf("%d projects  page %d/%d  view: %s%s%s",
		a.page.TotalCount, s.CurrentPage, totalPages, s.ViewType, filterBadge, searchNote)

	var list string
	if len(a.page.Projects) == 0 {
		list = "  (no projects match)"
	} else if s.ViewType == filters.ViewGrid {
		list = a.renderGrid()
	} else {
		list = a.renderList()
	}

	out := fmt.Sprintf("%s\n%s\n%s\n\n%s\n", title, header, meta, list)
	out += "\n[tab] Status  [/] Search  [t] Tags  [f] Filters  [v] View  [n/p] Page  [enter] Detail  [i] Import  [e] Export  [r] Reset  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderList() string {
	var b strings.Builder
	for i, p := range a.page.Projects {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		company := ""
		if p.Company != nil {
			company = *p.Company
		}
		tagText := ""
		if len(p.Tags) > 0 {
			var names []string
			for _, t := range p.Tags {
				names = append(names, t.Name)
			}
			tagText = " [" + strings.Join(names, ", ") + "]"
		}
		fmt.Fprintf(&b, "%s %-36s %-12s %-20s%s\n", marker, p.Title, p.Status, company, tagText)
	}
	return b.String()
}

func (a *App) renderGrid() string {
	const cols = 3
	var b strings.Builder
	for i, p := range a.page.Projects {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s %-28s", marker, truncate(p.Title, 26))
		if (i+1)%cols == 0 {
			b.WriteString("\n")
		}
	}
	if len(a.page.Projects)%cols != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderDetail() string {
	if a.detail == nil {
		return "no project selected"
	}
	p := a.detail
	title := titleStyle.Render(p.Title)
	out := title + "\n"
	out += fmt.Sprintf("Status: %s  Kit: %s\n", p.Status, p.KitCategory)
	if p.Company != nil {
		out += "Company: " + *p.Company + "\n"
	}
	if p.Artist != nil {
		out += "Artist: " + *p.Artist + "\n"
	}
	if p.DrillShape != nil {
		out += "Drill shape: " + *p.DrillShape + "\n"
	}
	if p.Width != nil && p.Height != nil {
		out += fmt.Sprintf("Size: %dx%d cm\n", *p.Width, *p.Height)
	}
	if p.DateCompleted != nil {
		out += "Completed: " + p.DateCompleted.Format("2006-01-02") + "\n"
	}
	if p.Notes != "" {
		out += "Notes: " + p.Notes + "\n"
	}
	out += "\nProgress notes:\n"
	if len(a.notes) == 0 {
		out += "  (none yet)\n"
	}
	for _, n := range a.notes {
		out += fmt.Sprintf("  %s  %s\n", n.Date.Format("2006-01-02"), n.Content)
	}
	out += "\n[a] Add note  [esc] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderFilters() string {
	s := a.store.State()
	title := titleStyle.Render("Filters")
	check := func(v bool) string {
		if v {
			return "[x]"
		}
		return "[ ]"
	}
	out := title + "\n"
	out += fmt.Sprintf("%s [m] Include mini kits\n", check(s.IncludeMiniKits))
	out += fmt.Sprintf("%s [w] Include wishlist\n", check(s.IncludeWishlist))
	out += fmt.Sprintf("%s [x] Include destashed\n", check(s.IncludeDestashed))
	out += fmt.Sprintf("%s [h] Include archived\n", check(s.IncludeArchived))
	out += fmt.Sprintf("%s [o] Include on hold\n", check(s.IncludeOnHold))
	out += fmt.Sprintf("\n[c] Company: %s\n", s.SelectedCompany)
	out += fmt.Sprintf("[y] Year finished: %s\n", s.SelectedYearFinished)
	out += fmt.Sprintf("\n[+/-] Page size: %d  [S] Save as default\n", s.PageSize)
	out += fmt.Sprintf("\nSort: %s %s\n", s.SortField, s.SortDirection)
	out += "[1] Last updated  [2] Title  [3] Date purchased  [4] Date completed\n"
	out += "\n[r] Reset filters  [esc] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderImport() string {
	title := titleStyle.Render("Import CSV")
	body := fmt.Sprintf("CSV path: %s\nType a path and press Enter to import projects.\n[enter] Import  [esc] Back  [q] Quit", a.input)
	if a.lastRun != nil {
		body += fmt.Sprintf("\nLast import: %d imported, %d skipped, %d tags created, %d merged",
			a.lastRun.Imported, a.lastRun.Skipped, a.lastRun.TagsCreated, a.lastRun.TagsMerged)
		if len(a.lastRun.Errors) > 0 {
			body += "\nFirst error: " + a.lastRun.Errors[0].Error()
			if len(a.lastRun.Errors) > 1 {
				body += fmt.Sprintf(" (+%d more)", len(a.lastRun.Errors)-1)
			}
		}
	}
	if a.status != "" {
		body += "\n" + a.status
	}
	return fmt.Sprintf("%s\n%s", title, body)
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalSearch:
		return titleStyle.Render("Search title, notes, company, artist") +
			fmt.Sprintf("\n%s\n[enter] Apply  [esc] Cancel", a.input)
	case modalTagPicker:
		out := titleStyle.Render("Filter by tag") + "\n"
		if len(a.tags) == 0 {
			out += "(no tags yet)\n"
		}
		selected := a.store.State()
		for i, t := range a.tags {
			marker := " "
			if i == a.tagCur {
				marker = "▶"
			}
			mark := "[ ]"
			if selected.HasTag(t.ID) {
				mark = "[x]"
			}
			out += fmt.Sprintf("%s %s %s\n", marker, mark, t.Name)
		}
		out += "[enter] Toggle  [c] Clear all  [esc] Close"
		return out
	case modalNewNote:
		return titleStyle.Render("New progress note") +
			fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.input)
	case modalExport:
		return titleStyle.Render("Export collection to CSV") +
			fmt.Sprintf("\npath: %s\n[enter] Export  [esc] Cancel", a.input)
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
