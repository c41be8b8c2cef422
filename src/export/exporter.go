// Package export snapshots pages of PokeAPI creatures into Parquet and CSV
// files, locally or on S3, and exposes the same pipeline as Lambda handlers.
package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BielosX/wombat/pokedex/src/csv"
	"github.com/BielosX/wombat/pokedex/src/parquet"
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
)

const generationConcurrency = 4

// PokemonSource is the part of the PokeAPI client an export needs.
type PokemonSource interface {
	ListPokemons(ctx context.Context, offset, limit int32) (pokeapi.PokemonListResult, error)
	FetchPokemons(ctx context.Context, entries []pokeapi.PokemonListResultEntry) ([]pokeapi.PokemonResponse, error)
	GetPokemonGeneration(ctx context.Context, species pokeapi.PokemonResponseSpecies) (int32, error)
}

type Result struct {
	ParquetFileName string `json:"parquetFileName"`
	CsvFileName     string `json:"csvFileName"`
	Rows            int    `json:"rows"`
}

type Exporter struct {
	source PokemonSource
	store  Store
	sugar  *zap.SugaredLogger
}

func NewExporter(source PokemonSource, store Store, sugar *zap.SugaredLogger) *Exporter {
	return &Exporter{source: source, store: store, sugar: sugar}
}

// FileNames returns the keys for a page holding count creatures.
func FileNames(offset, count int32) (parquetName, csvName string) {
	first := offset + 1
	last := offset + count
	return fmt.Sprintf("pokemons/%d_%d.parquet", first, last),
		fmt.Sprintf("pokemons/%d_%d.csv", first, last)
}

// Run exports one page. Any fetch or write failure aborts the export and
// nothing is stored. An empty page returns a nil Result.
func (e *Exporter) Run(ctx context.Context, schedule Schedule) (*Result, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	e.sugar.Infof("Starting export, limit: %d offset: %d", schedule.Limit, schedule.Offset)
	page, err := e.source.ListPokemons(ctx, schedule.Offset, schedule.Limit)
	if err != nil {
		return nil, err
	}
	count := int32(len(page.Results))
	e.sugar.Infof("Got %d Pokemon results", count)
	if count == 0 {
		return nil, nil
	}
	pokemons, err := e.source.FetchPokemons(ctx, page.Results)
	if err != nil {
		return nil, err
	}
	generations, err := e.generations(ctx, pokemons)
	if err != nil {
		return nil, err
	}

	pokemonWriter, err := parquet.NewPokemonWriter(e.sugar)
	if err != nil {
		e.sugar.Errorf("Failed to create Pokemon Parquet Writer: %s", err)
		return nil, err
	}
	csvWriter := csv.NewPokemonWriter()
	if err := csvWriter.WriteHeader(); err != nil {
		return nil, err
	}
	for i, pokemon := range pokemons {
		entries, err := parquet.ToPokemon(pokemon, generations[i])
		if err != nil {
			e.sugar.Errorf("Failed to parse Pokemon response: %s", err)
			return nil, err
		}
		for _, entry := range entries {
			e.sugar.Debugf("Writing Pokemon %s (%s)", entry.Name, entry.Type)
			if err := pokemonWriter.WritePokemon(&entry); err != nil {
				e.sugar.Errorf("Error writing Pokemon to Parquet: %s", err)
				return nil, err
			}
			if err := csvWriter.Write(entry); err != nil {
				e.sugar.Errorf("Error writing Pokemon to CSV: %s", err)
				return nil, err
			}
		}
	}
	if err := pokemonWriter.Finish(); err != nil {
		return nil, err
	}
	if err := csvWriter.Finish(); err != nil {
		return nil, err
	}

	parquetFileName, csvFileName := FileNames(schedule.Offset, count)
	e.sugar.Infof("Storing parquet file %s of size %d", parquetFileName, pokemonWriter.Size())
	if err := e.store.Put(ctx, parquetFileName, pokemonWriter.BufferReader(), "application/vnd.apache.parquet"); err != nil {
		return nil, err
	}
	e.sugar.Infof("Storing CSV file %s of size %d", csvFileName, csvWriter.Size())
	if err := e.store.Put(ctx, csvFileName, csvWriter.BufferReader(), "text/csv"); err != nil {
		return nil, err
	}
	return &Result{
		ParquetFileName: parquetFileName,
		CsvFileName:     csvFileName,
		Rows:            csvWriter.Rows(),
	}, nil
}

// generations resolves the generation of every creature, keeping order.
func (e *Exporter) generations(ctx context.Context, pokemons []pokeapi.PokemonResponse) ([]int32, error) {
	result := make([]int32, len(pokemons))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(generationConcurrency)
	for i, pokemon := range pokemons {
		group.Go(func() error {
			generation, err := e.source.GetPokemonGeneration(ctx, pokemon.Species)
			if err != nil {
				e.sugar.Errorf("Failed to get Pokemon Generation: %s", err)
				return err
			}
			result[i] = generation
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
