// Package views holds the list and detail views of the Pokédex.
//
// A view is a small state machine. Activate runs the fetches for one
// activation and moves the state through loading, ready and failed; every
// transition after a fetch goes through lifecycle.guarded so a view that
// was deactivated in the meantime is never written to. Render functions are
// pure: they map a state snapshot to an html.Node tree.
package views

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
)

// PokemonAPI is the subset of the PokeAPI client the views use.
type PokemonAPI interface {
	ListPokemons(ctx context.Context, offset, limit int32) (pokeapi.PokemonListResult, error)
	GetPokemon(ctx context.Context, id int) (pokeapi.PokemonResponse, error)
	GetPokemonByUrl(ctx context.Context, url string) (pokeapi.PokemonResponse, error)
	GetPokemonSpecies(ctx context.Context, url string) (pokeapi.PokemonSpecies, error)
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrNoDescription     = errors.New("no description for language")
)

// ParseIdentifier reads the trailing numeric segment of a resource URL,
// so ".../pokemon/1/" gives 1.
func ParseIdentifier(ref string) (int, error) {
	trimmed := strings.TrimRight(ref, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return parsePositive(trimmed)
}

func parsePositive(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, ErrInvalidIdentifier
	}
	return id, nil
}

func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
