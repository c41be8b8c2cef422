package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
)

type fakeSource struct {
	entries       []pokeapi.PokemonListResultEntry
	listErr       error
	fetchErr      error
	generationErr error
	generations   map[string]int32
}

func (f *fakeSource) ListPokemons(_ context.Context, offset, limit int32) (pokeapi.PokemonListResult, error) {
	if f.listErr != nil {
		return pokeapi.PokemonListResult{}, f.listErr
	}
	end := min(int(offset+limit), len(f.entries))
	if int(offset) >= end {
		return pokeapi.PokemonListResult{Count: len(f.entries), Results: []pokeapi.PokemonListResultEntry{}}, nil
	}
	return pokeapi.PokemonListResult{Count: len(f.entries), Results: f.entries[offset:end]}, nil
}

func (f *fakeSource) FetchPokemons(_ context.Context, entries []pokeapi.PokemonListResultEntry) ([]pokeapi.PokemonResponse, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	result := make([]pokeapi.PokemonResponse, 0, len(entries))
	for i, entry := range entries {
		result = append(result, pokeapi.PokemonResponse{
			Id:      int32(i + 1),
			Name:    entry.Name,
			Weight:  10,
			Height:  3,
			Types:   []pokeapi.PokemonType{{Slot: 1, Type: pokeapi.PokemonTypeEntry{Name: "normal"}}},
			Species: pokeapi.PokemonResponseSpecies{Name: entry.Name, Url: "species/" + entry.Name},
		})
	}
	return result, nil
}

func (f *fakeSource) GetPokemonGeneration(_ context.Context, species pokeapi.PokemonResponseSpecies) (int32, error) {
	if f.generationErr != nil {
		return 0, f.generationErr
	}
	return f.generations[species.Name], nil
}

type memoryStore struct {
	mu    sync.Mutex
	files map[string]string
	types map[string]string
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: map[string]string{}, types: map[string]string{}}
}

func (m *memoryStore) Put(_ context.Context, key string, body io.Reader, contentType string) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = string(data)
	m.types[key] = contentType
	return nil
}

func newSource(names ...string) *fakeSource {
	source := &fakeSource{generations: map[string]int32{}}
	for i, name := range names {
		source.entries = append(source.entries, pokeapi.PokemonListResultEntry{
			Name: name,
			Url:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", i+1),
		})
		source.generations[name] = int32(i%2 + 1)
	}
	return source
}

func TestExporter_Run(t *testing.T) {
	store := newMemoryStore()
	exporter := NewExporter(newSource("bulbasaur", "ivysaur", "venusaur"), store, zaptest.NewLogger(t).Sugar())

	result, err := exporter.Run(context.Background(), Schedule{Limit: 2, Offset: 1})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, &Result{
		ParquetFileName: "pokemons/2_3.parquet",
		CsvFileName:     "pokemons/2_3.csv",
		Rows:            2,
	}, result)
	assert.Equal(t,
		"id,name,weight,height,type,generation,thumbnail\n"+
			"1,ivysaur,10,3,normal,2,\n"+
			"2,venusaur,10,3,normal,1,\n",
		store.files["pokemons/2_3.csv"])
	assert.Equal(t, "text/csv", store.types["pokemons/2_3.csv"])
	assert.True(t, bytes.HasPrefix([]byte(store.files["pokemons/2_3.parquet"]), []byte("PAR1")))
}

func TestExporter_RunEmptyPage(t *testing.T) {
	store := newMemoryStore()
	exporter := NewExporter(newSource("bulbasaur"), store, zaptest.NewLogger(t).Sugar())

	result, err := exporter.Run(context.Background(), Schedule{Limit: 20, Offset: 40})

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, store.files)
}

func TestExporter_RunFailures(t *testing.T) {
	boom := errors.New("boom")
	testCases := []struct {
		name   string
		modify func(source *fakeSource, store *memoryStore)
	}{
		{name: "list", modify: func(s *fakeSource, _ *memoryStore) { s.listErr = boom }},
		{name: "fetch", modify: func(s *fakeSource, _ *memoryStore) { s.fetchErr = boom }},
		{name: "generation", modify: func(s *fakeSource, _ *memoryStore) { s.generationErr = boom }},
		{name: "store", modify: func(_ *fakeSource, m *memoryStore) { m.err = boom }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := newSource("bulbasaur", "ivysaur")
			store := newMemoryStore()
			tc.modify(source, store)
			exporter := NewExporter(source, store, zaptest.NewLogger(t).Sugar())

			result, err := exporter.Run(context.Background(), Schedule{Limit: 2})

			assert.ErrorIs(t, err, boom)
			assert.Nil(t, result)
			assert.Empty(t, store.files)
		})
	}
}

func TestExporter_RunInvalidSchedule(t *testing.T) {
	exporter := NewExporter(newSource(), newMemoryStore(), zaptest.NewLogger(t).Sugar())

	_, err := exporter.Run(context.Background(), Schedule{Limit: 0})

	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestDirStore(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(newSource("bulbasaur"), NewDirStore(dir), zaptest.NewLogger(t).Sugar())

	result, err := exporter.Run(context.Background(), Schedule{Limit: 20})

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "pokemons", "1_1.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,bulbasaur,10,3,normal,1,")
	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(result.ParquetFileName)))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestFileNames(t *testing.T) {
	parquetName, csvName := FileNames(0, 20)
	assert.Equal(t, "pokemons/1_20.parquet", parquetName)
	assert.Equal(t, "pokemons/1_20.csv", csvName)
}
