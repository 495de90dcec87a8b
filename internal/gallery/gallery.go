package gallery

// Snapshot is everything the rendering layer needs for one frame.
type Snapshot struct {
	Visible          []Image
	Matched          int
	Total            int
	Options          []string
	State            State
	HasActiveFilters bool
	Reveal           RevealState
	Exhausted        bool
}

// Gallery ties the collection, filter store and reveal controller together.
// The visible set is recomputed whenever the filter state or the collection
// changes, and every recomputation resets the reveal controller.
type Gallery struct {
	images  []Image
	options []string
	store   *Store
	reveal  *RevealController
	matched []Image
}

func New(images []Image, initial State, pageSize int) *Gallery {
	g := &Gallery{
		store:  NewStore(initial),
		reveal: NewRevealController(pageSize),
	}
	g.store.Subscribe(func(State) { g.recompute() })
	g.SetCollection(images)
	return g
}

// SetCollection replaces the source collection and re-derives style options.
func (g *Gallery) SetCollection(images []Image) {
	g.images = append([]Image(nil), images...)
	g.options = StyleOptions(g.images)
	g.recompute()
}

func (g *Gallery) recompute() {
	g.matched = Select(g.images, g.store.State())
	g.reveal.Reset(len(g.matched))
}

func (g *Gallery) Store() *Store {
	return g.store
}

func (g *Gallery) Reveal() *RevealController {
	return g.reveal
}

func (g *Gallery) Options() []string {
	return append([]string(nil), g.options...)
}

func (g *Gallery) Images() []Image {
	return g.images
}

// Matched returns the full filtered set, revealed or not.
func (g *Gallery) Matched() []Image {
	return g.matched
}

func (g *Gallery) Snapshot() Snapshot {
	state := g.store.State()
	return Snapshot{
		Visible:          g.matched[:g.reveal.Exposed():g.reveal.Exposed()],
		Matched:          len(g.matched),
		Total:            len(g.images),
		Options:          g.Options(),
		State:            state,
		HasActiveFilters: state.HasActiveFilters(),
		Reveal:           g.reveal.State(),
		Exhausted:        g.reveal.IsExhausted(),
	}
}
