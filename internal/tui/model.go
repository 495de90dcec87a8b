package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/glabrego/inkbook/internal/gallery"
	"github.com/glabrego/inkbook/internal/ratelimit"
	"github.com/glabrego/inkbook/internal/storage"
	"github.com/glabrego/inkbook/internal/tui/actions"
	"github.com/glabrego/inkbook/internal/tui/platform"
	tuistate "github.com/glabrego/inkbook/internal/tui/state"
	tuitheme "github.com/glabrego/inkbook/internal/tui/theme"
	"github.com/glabrego/inkbook/internal/tui/view"
)

type Service = actions.Service

const reloadLimitKey = "reload"

type Options struct {
	PageSize  int
	Initial   gallery.State
	SiteURL   string
	ImageRoot string
	Changes   <-chan struct{}
	Logger    *zap.Logger
}

type Model struct {
	service  Service
	gallery  *gallery.Gallery
	sentinel *sentinel
	changes  <-chan struct{}
	logger   *zap.Logger

	search    textinput.Model
	searching bool
	keys      keyMap
	help      help.Model
	theme     tuitheme.Theme

	cursor      int
	showNumbers bool
	showHelp    bool
	inDetail    bool
	detailTop   int
	width       int
	height      int
	loading     bool
	status      string
	statusID    int
	err         error

	siteURL   string
	imageRoot string

	limiter ratelimit.Limiter
	limits  ratelimit.Store
	nowFn   func() time.Time

	openURLFn      func(string) error
	copyURLFn      func(string) error
	renderImageFn  func(string, int) (string, error)
	preview        map[string]string
	previewErr     map[string]string
	previewLoading map[string]bool
}

func NewModel(service Service, images []gallery.Image, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g := gallery.New(images, opts.Initial, opts.PageSize)
	s := newSentinel(sentinelDistance)
	g.Reveal().Attach(s)
	g.Reveal().OnStateChange(func(st gallery.RevealState) {
		logger.Debug("reveal state changed", zap.String("state", st.String()))
	})

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title, description or style"
	search.CharLimit = 0
	search.SetValue(g.Store().State().Search)

	return Model{
		service:        service,
		gallery:        g,
		sentinel:       s,
		changes:        opts.Changes,
		logger:         logger,
		search:         search,
		keys:           defaultKeyMap(),
		help:           help.New(),
		theme:          tuitheme.Default(),
		siteURL:        opts.SiteURL,
		imageRoot:      opts.ImageRoot,
		limiter:        ratelimit.New(3, time.Minute),
		limits:         ratelimit.Store{},
		nowFn:          time.Now,
		openURLFn:      platform.OpenURLInBrowser,
		copyURLFn:      platform.CopyToClipboard,
		renderImageFn:  view.RenderImagePreview,
		preview:        make(map[string]string),
		previewErr:     make(map[string]string),
		previewLoading: make(map[string]bool),
	}
}

func (m Model) Init() tea.Cmd {
	return actions.WaitForCatalogChangeCmd(m.changes)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(10, m.contentWidth()-4)
		m.observeSentinel()
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = !m.showHelp
			return m, nil
		}
		if m.showHelp {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.Back):
				m.showHelp = false
			}
			return m, nil
		}
		if m.inDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	case actions.ReloadSuccessMsg:
		m.loading = false
		m.err = nil
		m.gallery.SetCollection(msg.Images)
		m.cursor = 0
		m.inDetail = false
		m.status = fmt.Sprintf("Loaded %d images", len(msg.Images))
		m.logger.Info("catalog reloaded",
			zap.String("source", msg.Source),
			zap.Int("images", len(msg.Images)),
			zap.Duration("duration", msg.Duration))
		m.observeSentinel()
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 3*time.Second)
	case actions.ReloadErrorMsg:
		m.loading = false
		m.status = ""
		m.err = msg.Err
		m.logger.Warn("catalog reload failed", zap.String("source", msg.Source), zap.Error(msg.Err))
		return m, nil
	case actions.CatalogChangedMsg:
		wait := actions.WaitForCatalogChangeCmd(m.changes)
		if m.service == nil {
			return m, wait
		}
		m.loading = true
		return m, tea.Batch(actions.ReloadCmd(m.service, "watch"), wait)
	case actions.PreviewSuccessMsg:
		delete(m.previewLoading, msg.ImageID)
		delete(m.previewErr, msg.ImageID)
		m.preview[msg.ImageID] = msg.Preview
		return m, nil
	case actions.PreviewErrorMsg:
		delete(m.previewLoading, msg.ImageID)
		m.previewErr[msg.ImageID] = msg.Err.Error()
		return m, nil
	case actions.OpenURLSuccessMsg:
		m.err = nil
		m.status = msg.Status
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 3*time.Second)
	case actions.OpenURLErrorMsg:
		m.status = msg.Err.Error()
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 4*time.Second)
	case actions.PreferenceSaveErrorMsg:
		m.err = msg.Err
		m.status = "Could not persist preferences"
		m.logger.Warn("preferences not saved", zap.Error(msg.Err))
		return m, nil
	case actions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		m.observeSentinel()
		return m, m.persistPreferences()
	case "ctrl+u":
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	if m.gallery.Store().SetSearch(m.search.Value()) {
		m.cursor = 0
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursorBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursorBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursorBy(-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursorBy(m.listHeight())
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		visible := len(m.gallery.Snapshot().Visible)
		m.cursor = tuistate.ClampCursor(visible-1, visible)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextStyle):
		return m.cycleStyle(1)
	case key.Matches(msg, m.keys.PrevStyle):
		return m.cycleStyle(-1)
	case key.Matches(msg, m.keys.Reset):
		return m.resetFilters()
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Numbers):
		m.showNumbers = !m.showNumbers
		return m, nil
	case key.Matches(msg, m.keys.Details):
		img, ok := m.currentImage()
		if !ok {
			return m, nil
		}
		m.inDetail = true
		m.detailTop = 0
		cmd := m.ensurePreviewCmd(img)
		return m, cmd
	default:
		return m, nil
	}
	m.observeSentinel()
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.inDetail = false
		m.detailTop = 0
		m.observeSentinel()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.detailTop > 0 {
			m.detailTop--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.detailTop < m.maxDetailTop() {
			m.detailTop++
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevImage), key.Matches(msg, m.keys.NextImage):
		delta := 1
		if key.Matches(msg, m.keys.PrevImage) {
			delta = -1
		}
		before := m.cursor
		m.moveCursorBy(delta)
		m.observeSentinel()
		if m.cursor == before {
			return m, nil
		}
		m.detailTop = 0
		img, _ := m.currentImage()
		cmd := m.ensurePreviewCmd(img)
		return m, cmd
	case key.Matches(msg, m.keys.Open):
		url, err := m.currentImageURL()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, actions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
	case key.Matches(msg, m.keys.Copy):
		url, err := m.currentImageURL()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, actions.CopyURLCmd(url, m.copyURLFn)
	}
	return m, nil
}

func (m Model) cycleStyle(delta int) (tea.Model, tea.Cmd) {
	store := m.gallery.Store()
	next := gallery.NextOption(m.gallery.Options(), store.State().Style, delta)
	if !store.UpdateFilter(gallery.DimensionStyle, next) {
		return m, nil
	}
	m.cursor = 0
	m.err = nil
	m.status = "Style: " + next
	m.observeSentinel()
	return m, m.persistPreferences()
}

func (m Model) resetFilters() (tea.Model, tea.Cmd) {
	store := m.gallery.Store()
	if !store.HasActiveFilters() {
		return m, nil
	}
	store.ResetFilters()
	m.search.SetValue("")
	m.cursor = 0
	m.status = "Filters cleared"
	m.observeSentinel()
	return m, m.persistPreferences()
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	now := m.nowFn()
	if !m.limiter.Allow(m.limits, reloadLimitKey, now) {
		wait := m.limiter.RetryAfter(m.limits, reloadLimitKey, now).Round(time.Second)
		m.status = fmt.Sprintf("Reload throttled, try again in %s", wait)
		m.statusID++
		return m, actions.ClearStatusCmd(m.statusID, 3*time.Second)
	}
	m.loading = true
	m.status = ""
	m.err = nil
	return m, actions.ReloadCmd(m.service, "manual")
}

func (m *Model) moveCursorBy(delta int) {
	visible := len(m.gallery.Snapshot().Visible)
	m.cursor = tuistate.ClampCursor(m.cursor+delta, visible)
}

// observeSentinel reports the rendered window to the sentinel. Once the
// reveal controller is exhausted the sentinel is no longer rendered.
func (m *Model) observeSentinel() {
	if m.inDetail {
		return
	}
	snap := m.gallery.Snapshot()
	if snap.Exhausted {
		return
	}
	_, end := tuistate.CenteredWindow(len(snap.Visible), m.cursor, m.listHeight())
	m.sentinel.observe(end, len(snap.Visible))
}

func (m Model) persistPreferences() tea.Cmd {
	if m.service == nil {
		return nil
	}
	st := m.gallery.Store().State()
	return actions.SavePreferencesCmd(m.service, storage.Preferences{
		PageSize:   m.gallery.Reveal().PageSize(),
		LastStyle:  st.Style,
		LastSearch: st.Search,
	})
}

func (m Model) currentImage() (gallery.Image, bool) {
	visible := m.gallery.Snapshot().Visible
	if len(visible) == 0 {
		return gallery.Image{}, false
	}
	return visible[tuistate.ClampCursor(m.cursor, len(visible))], true
}

func (m Model) currentImageURL() (string, error) {
	img, ok := m.currentImage()
	if !ok {
		return "", fmt.Errorf("no image selected")
	}
	return platform.ImageURL(m.siteURL, img.Src)
}

// previewSource picks where to read image bytes from: the local image root
// when configured, otherwise the published URL.
func (m Model) previewSource(img gallery.Image) string {
	if strings.HasPrefix(img.Src, "http://") || strings.HasPrefix(img.Src, "https://") {
		return img.Src
	}
	if m.imageRoot != "" {
		return filepath.Join(m.imageRoot, filepath.FromSlash(strings.TrimLeft(img.Src, "/")))
	}
	if url, err := platform.ImageURL(m.siteURL, img.Src); err == nil {
		return url
	}
	return img.Src
}

func (m *Model) ensurePreviewCmd(img gallery.Image) tea.Cmd {
	if img.ID == "" || m.renderImageFn == nil {
		return nil
	}
	if _, ok := m.preview[img.ID]; ok || m.previewLoading[img.ID] {
		return nil
	}
	m.previewLoading[img.ID] = true
	return actions.PreviewCmd(img.ID, m.previewSource(img), m.contentWidth(), m.renderImageFn)
}

func (m Model) listHeight() int {
	return tuistate.ListHeight(m.height, m.status != "" || m.err != nil)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) detailLines() []string {
	img, ok := m.currentImage()
	if !ok {
		return []string{"No image selected."}
	}
	lines := view.DetailLines(img, m.previewSource(img), m.contentWidth(), view.Wrap)
	switch {
	case m.previewLoading[img.ID]:
		lines = append(lines, "", "Preview: loading...")
	case strings.TrimSpace(m.preview[img.ID]) != "":
		lines = append(lines, "")
		lines = append(lines, strings.Split(m.preview[img.ID], "\n")...)
	case m.previewErr[img.ID] != "":
		lines = append(lines, "", "Preview unavailable: "+m.previewErr[img.ID])
	}
	return lines
}

func (m Model) detailBodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	return max(3, m.height-6)
}

func (m Model) maxDetailTop() int {
	return max(0, len(m.detailLines())-m.detailBodyHeight())
}

func (m Model) View() string {
	snap := m.gallery.Snapshot()
	th := m.theme

	var b strings.Builder
	mode := "gallery"
	switch {
	case m.showHelp:
		mode = "help"
	case m.inDetail:
		mode = "detail"
	case m.searching:
		mode = "search"
	}
	b.WriteString(th.Title.Render("inkbook") + " " + th.ModePill.Render(mode) + "\n")

	if m.showHelp {
		m.help.ShowAll = true
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n\n")
		b.WriteString(view.Message(m.loading, m.status, m.err, th))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(view.Toolbar(m.inDetail, m.searching, snap.HasActiveFilters))
	b.WriteString("\n\n")

	if m.inDetail {
		lines := m.detailLines()
		top := min(m.detailTop, max(0, len(lines)-1))
		end := min(len(lines), top+m.detailBodyHeight())
		b.WriteString(strings.Join(lines[top:end], "\n"))
		b.WriteString("\n\n")
		b.WriteString(view.Message(m.loading, m.status, m.err, th))
		b.WriteString("\n")
		return b.String()
	}

	if m.searching {
		b.WriteString(m.search.View())
	} else if snap.State.Search != "" {
		b.WriteString(th.MetaLabel.Render("search") + " " + th.MetaValue.Render(snap.State.Search))
	} else {
		b.WriteString(th.MetaLabel.Render("press / to search"))
	}
	b.WriteString("\n")
	b.WriteString(view.StyleBar(snap.Options, snap.State.Style, th))
	if snap.HasActiveFilters {
		b.WriteString("  " + th.ResetHint.Render("x: reset filters"))
	}
	b.WriteString("\n\n")

	if m.loading && snap.Total == 0 {
		b.WriteString("Loading gallery...\n")
	} else if len(snap.Visible) > 0 {
		start, end := tuistate.CenteredWindow(len(snap.Visible), m.cursor, m.listHeight())
		for i := start; i < end; i++ {
			b.WriteString(view.RenderImageLine(view.ImageLineParams{
				Image:       snap.Visible[i],
				Position:    i,
				ShowNumbers: m.showNumbers,
				Active:      i == m.cursor,
				Width:       m.contentWidth(),
			}, th))
			b.WriteString("\n")
		}
	}
	b.WriteString(view.ListFooter(snap, th))
	b.WriteString("\n\n")
	b.WriteString(view.Footer(snap, th))
	b.WriteString("\n")
	b.WriteString(view.Message(m.loading, m.status, m.err, th))
	b.WriteString("\n")
	return b.String()
}

// Snapshot exposes the gallery state the view is rendered from.
func (m Model) Snapshot() gallery.Snapshot {
	return m.gallery.Snapshot()
}
