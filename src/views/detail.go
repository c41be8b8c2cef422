package views

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/render"
	"github.com/BielosX/wombat/pokedex/src/router"
)

const DefaultLanguage = "es"

type DetailOptions struct {
	Language string
}

type Stat struct {
	Name  string
	Value int
}

type CreatureDetail struct {
	Id          int
	Name        string
	FrontSprite *string
	BackSprite  *string
	Artwork     *string
	Types       []string
	Abilities   []string
	Stats       []Stat
	Moves       []string
	SpeciesUrl  string
}

type Description struct {
	Text string
}

type DetailState struct {
	Phase  Phase
	Param  string
	Detail *CreatureDetail
	Err    error

	DescriptionLoaded bool
	Description       *Description
	DescriptionErr    error
}

type DetailView struct {
	lifecycle
	api    PokemonAPI
	router router.Router
	sugar  *zap.SugaredLogger
	opts   DetailOptions
	state  DetailState
}

func NewDetailView(api PokemonAPI, r router.Router, sugar *zap.SugaredLogger, opts DetailOptions) *DetailView {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	return &DetailView{
		api:    api,
		router: r,
		sugar:  sugar,
		opts:   opts,
	}
}

// Activate loads the record for the route's id, then its description.
func (v *DetailView) Activate(ctx context.Context) {
	param := v.router.CurrentParam(router.IdParam)
	ctx, token := v.start(ctx)
	v.guarded(token, func() {
		v.state = DetailState{Phase: PhaseLoading, Param: param}
	})

	id, err := parsePositive(param)
	if err != nil {
		v.sugar.Warnf("Invalid Pokemon id %q", param)
		v.fail(token, err)
		return
	}

	pokemon, err := v.api.GetPokemon(ctx, id)
	if err == nil {
		err = pokemon.Validate()
	}
	if err != nil {
		v.sugar.Errorf("Failed to fetch Pokemon %d: %s", id, err)
		v.fail(token, err)
		return
	}
	detail := ToCreatureDetail(pokemon)
	if !v.guarded(token, func() {
		v.state.Phase = PhaseReady
		v.state.Detail = &detail
	}) {
		return
	}

	description, err := v.fetchDescription(ctx, detail.SpeciesUrl)
	if err != nil {
		v.sugar.Warnf("No description for Pokemon %d: %s", id, err)
	}
	v.guarded(token, func() {
		v.state.DescriptionLoaded = true
		v.state.Description = description
		v.state.DescriptionErr = err
	})
}

func (v *DetailView) fetchDescription(ctx context.Context, speciesUrl string) (*Description, error) {
	if speciesUrl == "" {
		return nil, pokeapi.ErrMalformedResponse
	}
	species, err := v.api.GetPokemonSpecies(ctx, speciesUrl)
	if err != nil {
		return nil, err
	}
	description, ok := SelectDescription(species.FlavorTextEntries, v.opts.Language)
	if !ok {
		return nil, ErrNoDescription
	}
	return &description, nil
}

func (v *DetailView) fail(token string, err error) {
	v.guarded(token, func() {
		v.state.Phase = PhaseFailed
		v.state.Err = err
	})
}

// GoBack always navigates to the list, whatever the state.
func (v *DetailView) GoBack() {
	v.router.Navigate(router.ListPath)
}

func (v *DetailView) Deactivate() {
	v.stop()
}

func (v *DetailView) State() DetailState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := v.state
	if state.Detail != nil {
		detail := *state.Detail
		state.Detail = &detail
	}
	return state
}

func (v *DetailView) Render() *html.Node {
	return RenderDetail(v.State())
}

func ToCreatureDetail(p pokeapi.PokemonResponse) CreatureDetail {
	detail := CreatureDetail{
		Id:          int(p.Id),
		Name:        p.Name,
		FrontSprite: p.Sprites.FrontDefault,
		BackSprite:  p.Sprites.BackDefault,
		Artwork:     p.Sprites.Other.OfficialArtwork.FrontDefault,
		SpeciesUrl:  p.Species.Url,
	}
	for _, t := range p.Types {
		detail.Types = append(detail.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		detail.Abilities = append(detail.Abilities, a.Ability.Name)
	}
	for _, s := range p.Stats {
		detail.Stats = append(detail.Stats, Stat{Name: s.Stat.Name, Value: int(s.BaseStat)})
	}
	for _, m := range p.Moves {
		detail.Moves = append(detail.Moves, m.Move.Name)
	}
	return detail
}

// SelectDescription picks the first flavor text written in language.
func SelectDescription(entries []pokeapi.FlavorTextEntry, language string) (Description, bool) {
	for _, entry := range entries {
		if entry.Language.Name == language {
			return Description{Text: cleanFlavorText(entry.FlavorText)}, true
		}
	}
	return Description{}, false
}

// Flavor texts carry the line breaks and form feeds of the game text boxes.
func cleanFlavorText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func RenderDetail(state DetailState) *html.Node {
	root := render.El("div", render.Attrs(render.Class("pokemon-detail")),
		render.El("form", render.Attrs(render.A("method", "post"), render.A("action", router.BackPath(state.Param))),
			render.El("button", render.Attrs(render.Class("back-button"), render.A("type", "submit")),
				render.Text("Back"))),
	)
	switch {
	case state.Phase == PhaseFailed:
		root.AppendChild(render.El("p", render.Attrs(render.Class("error")),
			render.Text("Could not load this Pokémon.")))
		return root
	case state.Detail == nil:
		root.AppendChild(render.El("p", render.Attrs(render.Class("loading")),
			render.Text("Loading…")))
		return root
	}

	d := state.Detail
	root.AppendChild(render.El("div", render.Attrs(render.Class("pokemon-header")),
		render.El("span", render.Attrs(render.Class("pokemon-id")), render.Text("#"+strconv.Itoa(d.Id))),
		render.El("h1", render.Attrs(render.Class("pokemon-name")), render.Text(Capitalize(d.Name))),
	))

	sprites := render.El("div", render.Attrs(render.Class("sprites")))
	for _, sprite := range []struct {
		class string
		src   *string
	}{
		{"sprite-front", d.FrontSprite},
		{"sprite-back", d.BackSprite},
		{"artwork", d.Artwork},
	} {
		if sprite.src == nil || *sprite.src == "" {
			continue
		}
		sprites.AppendChild(render.El("img", render.Attrs(
			render.Class(sprite.class),
			render.A("src", *sprite.src),
			render.A("alt", d.Name),
		)))
	}
	root.AppendChild(sprites)

	if state.Description != nil {
		root.AppendChild(render.El("p", render.Attrs(render.Class("description")),
			render.Text(state.Description.Text)))
	}

	root.AppendChild(renderList("types", "Types", d.Types))
	root.AppendChild(renderList("abilities", "Abilities", d.Abilities))

	stats := render.El("table", nil)
	for _, s := range d.Stats {
		stats.AppendChild(render.El("tr", nil,
			render.El("th", nil, render.Text(s.Name)),
			render.El("td", nil, render.Text(strconv.Itoa(s.Value))),
		))
	}
	root.AppendChild(render.El("section", render.Attrs(render.Class("stats")),
		render.El("h2", nil, render.Text("Stats")),
		stats,
	))

	root.AppendChild(renderList("moves", "Moves", d.Moves))
	return root
}

func renderList(class, title string, items []string) *html.Node {
	list := render.El("ul", nil)
	for _, item := range items {
		list.AppendChild(render.El("li", nil, render.Text(item)))
	}
	return render.El("section", render.Attrs(render.Class(class)),
		render.El("h2", nil, render.Text(title)),
		list,
	)
}
