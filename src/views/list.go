package views

import (
	"context"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/BielosX/wombat/pokedex/src/render"
	"github.com/BielosX/wombat/pokedex/src/router"
)

const (
	DefaultPageSize    = 20
	DefaultConcurrency = 8
)

type ListOptions struct {
	Offset      int32
	Limit       int32
	Concurrency int
}

// Box is one creature summary in the grid. Number is 0 when the entry URL
// carries no identifier.
type Box struct {
	Number    int
	Name      string
	Url       string
	Thumbnail *string
	Err       error
}

type ListState struct {
	Phase Phase
	Boxes []Box
	Err   error
}

func (s ListState) clone() ListState {
	s.Boxes = append([]Box(nil), s.Boxes...)
	return s
}

type ListView struct {
	lifecycle
	api   PokemonAPI
	sugar *zap.SugaredLogger
	opts  ListOptions
	state ListState
}

func NewListView(api PokemonAPI, sugar *zap.SugaredLogger, opts ListOptions) *ListView {
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &ListView{
		api:   api,
		sugar: sugar,
		opts:  opts,
	}
}

// Activate loads one page and its thumbnails. It returns once every fetch
// of this activation has settled; failures end up in the state.
func (v *ListView) Activate(ctx context.Context) {
	ctx, token := v.start(ctx)
	v.guarded(token, func() {
		v.state = ListState{Phase: PhaseLoading}
	})

	page, err := v.api.ListPokemons(ctx, v.opts.Offset, v.opts.Limit)
	if err != nil {
		v.sugar.Errorf("Failed to list Pokemons: %s", err)
		v.guarded(token, func() {
			v.state.Phase = PhaseFailed
			v.state.Err = err
		})
		return
	}

	boxes := make([]Box, len(page.Results))
	for i, entry := range page.Results {
		number, err := ParseIdentifier(entry.Url)
		if err != nil {
			v.sugar.Warnf("No identifier in %s", entry.Url)
		}
		boxes[i] = Box{Number: number, Name: entry.Name, Url: entry.Url}
	}
	if !v.guarded(token, func() { v.state.Boxes = boxes }) {
		return
	}

	var group errgroup.Group
	group.SetLimit(v.opts.Concurrency)
	for i, entry := range page.Results {
		group.Go(func() error {
			v.resolveThumbnail(ctx, token, i, entry.Url)
			return nil
		})
	}
	_ = group.Wait()

	v.guarded(token, func() {
		v.state.Phase = PhaseReady
	})
}

func (v *ListView) resolveThumbnail(ctx context.Context, token string, index int, url string) {
	pokemon, err := v.api.GetPokemonByUrl(ctx, url)
	if err != nil {
		v.sugar.Warnf("Failed to fetch thumbnail %s: %s", url, err)
	}
	v.guarded(token, func() {
		if err != nil {
			v.state.Boxes[index].Err = err
			return
		}
		v.state.Boxes[index].Thumbnail = pokemon.Sprites.FrontDefault
	})
}

func (v *ListView) Deactivate() {
	v.stop()
}

func (v *ListView) State() ListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.clone()
}

func (v *ListView) Render() *html.Node {
	return RenderList(v.State())
}

func RenderList(state ListState) *html.Node {
	root := render.El("div", render.Attrs(render.Class("pokemon-list")))
	switch {
	case state.Phase == PhaseFailed:
		root.AppendChild(render.El("p", render.Attrs(render.Class("error")),
			render.Text("Could not load the Pokémon list.")))
		return root
	case len(state.Boxes) == 0 && state.Phase == PhaseReady:
		root.AppendChild(render.El("p", render.Attrs(render.Class("empty")),
			render.Text("No Pokémon found.")))
		return root
	case len(state.Boxes) == 0:
		root.AppendChild(render.El("p", render.Attrs(render.Class("loading")),
			render.Text("Loading…")))
		return root
	}
	grid := render.El("div", render.Attrs(render.Class("pokemon-grid")))
	for _, box := range state.Boxes {
		grid.AppendChild(renderBox(box))
	}
	root.AppendChild(grid)
	return root
}

func renderBox(box Box) *html.Node {
	href := "#"
	label := box.Name
	if box.Number > 0 {
		href = router.DetailPath(box.Number)
		label = strconv.Itoa(box.Number) + " " + box.Name
	}
	var img *html.Node
	if box.Thumbnail != nil && *box.Thumbnail != "" {
		img = render.El("img", render.Attrs(
			render.Class("pokemon-image"),
			render.A("src", *box.Thumbnail),
			render.A("alt", box.Name),
		))
	} else {
		img = render.El("img", render.Attrs(
			render.Class("pokemon-image missing"),
			render.A("alt", box.Name),
		))
	}
	return render.El("a", render.Attrs(render.Class("pokemon-box"), render.A("href", href)),
		img,
		render.El("p", render.Attrs(render.Class("pokemon-label")), render.Text(label)),
	)
}
