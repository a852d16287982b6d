package ui

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mateusoliveiradev1/weather-app/internal/geo"
	"github.com/mateusoliveiradev1/weather-app/internal/search"
	"github.com/mateusoliveiradev1/weather-app/internal/view"
)

// Messages produced by async commands. Suggestion and search responses
// carry the sequence that requested them; stale ones are dropped so a late
// response never overwrites a newer one.
type (
	startupMsg struct {
		result search.Result
		err    error
	}
	searchMsg struct {
		seq    int
		result search.Result
		err    error
	}
	suggestionsMsg struct {
		seq   int
		items []geo.Place
	}
	debounceMsg struct {
		seq int
	}
)

// App is the root Bubble Tea model: a single-line city input with debounced
// autocomplete driving the weather panels.
type App struct {
	svc      *search.Service
	timeout  time.Duration
	debounce time.Duration

	input   textinput.Model
	spinner spinner.Model

	suggestions  []geo.Place
	showDropdown bool
	active       int

	model    view.Model
	hasData  bool
	openDays map[int]bool

	busy    bool
	errText string

	// inputSeq advances on every edit; only the newest debounce tick and
	// suggestion response survive. searchSeq does the same for searches.
	inputSeq  int
	searchSeq int

	width  int
	height int
	ready  bool
}

func New(svc *search.Service, debounce, timeout time.Duration) App {
	ti := textinput.New()
	ti.Placeholder = "Buscar cidade..."
	ti.CharLimit = 80
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return App{
		svc:      svc,
		timeout:  timeout,
		debounce: debounce,
		input:    ti,
		spinner:  sp,
		active:   -1,
		openDays: make(map[int]bool),
		busy:     true, // startup load is in flight
	}
}

// Init kicks off the startup flow: stored place, else the default city.
func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.spinner.Tick, doStartup(a.svc, a.timeout))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		if a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case debounceMsg:
		if msg.seq != a.inputSeq {
			// a newer keystroke superseded this tick
			return a, nil
		}
		q := strings.TrimSpace(a.input.Value())
		if utf8.RuneCountInString(q) < 2 {
			return a.hideDropdown(), nil
		}
		return a, doSuggest(a.svc, q, msg.seq, a.timeout)

	case suggestionsMsg:
		if msg.seq != a.inputSeq {
			return a, nil
		}
		a.suggestions = msg.items
		a.showDropdown = true
		a.active = -1
		return a, nil

	case startupMsg:
		a.busy = false
		if msg.err != nil {
			a.errText = friendlyError(msg.err)
			return a, nil
		}
		return a.applyResult(msg.result), nil

	case searchMsg:
		if msg.seq != a.searchSeq {
			return a, nil
		}
		a.busy = false
		if msg.err != nil {
			a.errText = friendlyError(msg.err)
			return a, nil
		}
		return a.applyResult(msg.result), nil
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit

	case tea.KeyEsc:
		return a.hideDropdown(), nil

	case tea.KeyDown:
		if a.showDropdown && a.active < len(a.suggestions)-1 {
			a.active++
		}
		return a, nil

	case tea.KeyUp:
		if a.showDropdown && a.active > 0 {
			a.active--
		}
		return a, nil

	case tea.KeyEnter:
		if a.showDropdown && a.active >= 0 && a.active < len(a.suggestions) {
			return a.commitSuggestion(a.suggestions[a.active])
		}
		q := strings.TrimSpace(a.input.Value())
		if q == "" {
			return a, nil
		}
		a = a.hideDropdown()
		a.busy = true
		a.searchSeq++
		return a, tea.Batch(a.spinner.Tick, doSearch(a.svc, q, a.searchSeq, a.timeout))
	}

	// Digits toggle the weekly detail rows, independently per row.
	if a.hasData {
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '7' {
			i := int(s[0] - '1')
			if i < len(a.model.Weekly) {
				a.openDays[i] = !a.openDays[i]
			}
			return a, nil
		}
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.input.Value() == before {
		return a, cmd
	}

	// Edit: restart the debounce window. Only the newest tick fires.
	a.inputSeq++
	seq := a.inputSeq
	tick := tea.Tick(a.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
	return a, tea.Batch(cmd, tick)
}

// commitSuggestion renders a chosen candidate without re-resolving it.
func (a App) commitSuggestion(place geo.Place) (tea.Model, tea.Cmd) {
	a = a.hideDropdown()
	a.input.SetValue(placeLabel(place))
	a.input.CursorEnd()
	a.busy = true
	a.searchSeq++
	return a, tea.Batch(a.spinner.Tick, doCommit(a.svc, place, a.searchSeq, a.timeout))
}

func (a App) hideDropdown() App {
	a.showDropdown = false
	a.suggestions = nil
	a.active = -1
	return a
}

func (a App) applyResult(res search.Result) App {
	a.errText = ""
	a.hasData = true
	a.openDays = make(map[int]bool)
	a.model = view.Build(res.Place.Name, res.Snapshot, res.Snapshot.Current.Time)
	a.input.SetValue(placeLabel(res.Place))
	a.input.CursorEnd()
	return a
}

func placeLabel(p geo.Place) string {
	if p.Admin1 != "" {
		return p.Name + " - " + p.Admin1
	}
	return p.Name
}

func friendlyError(err error) string {
	if errors.Is(err, geo.ErrNotFound) {
		return "Cidade não encontrada"
	}
	return "Falha ao buscar dados do tempo"
}

func doStartup(svc *search.Service, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := svc.Startup(ctx)
		return startupMsg{result: res, err: err}
	}
}

func doSearch(svc *search.Service, query string, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := svc.SearchByName(ctx, query)
		return searchMsg{seq: seq, result: res, err: err}
	}
}

func doCommit(svc *search.Service, place geo.Place, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := svc.Commit(ctx, place)
		return searchMsg{seq: seq, result: res, err: err}
	}
}

func doSuggest(svc *search.Service, query string, seq int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return suggestionsMsg{seq: seq, items: svc.Suggest(ctx, query)}
	}
}
