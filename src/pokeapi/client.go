package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const DefaultBaseUrl = "https://pokeapi.co/api/v2/"

type Client struct {
	baseUrl string
	client  *http.Client
	cache   *Cache
	sugar   *zap.SugaredLogger
}

type Option func(*Client)

func WithBaseUrl(baseUrl string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseUrl, "/") {
			baseUrl += "/"
		}
		c.baseUrl = baseUrl
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithCache(cache *Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

func NewClient(sugar *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseUrl: DefaultBaseUrl,
		client:  &http.Client{},
		sugar:   sugar,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			c.sugar.Debugf("Cache hit %s", url)
			return body, nil
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", url, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{Url: url, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if c.cache != nil {
		c.cache.Set(url, body)
	}
	return body, nil
}

func (c *Client) getAndDecode(ctx context.Context, url string, target any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrMalformedResponse, url, err)
	}
	return nil
}

func (c *Client) ListPokemons(ctx context.Context, offset, limit int32) (PokemonListResult, error) {
	url := fmt.Sprintf("%spokemon?offset=%d&limit=%d", c.baseUrl, offset, limit)
	c.sugar.Infof("Fetching PokemonListResult %s", url)
	var raw struct {
		Count   int                       `json:"count"`
		Results *[]PokemonListResultEntry `json:"results"`
	}
	if err := c.getAndDecode(ctx, url, &raw); err != nil {
		return PokemonListResult{}, err
	}
	if raw.Results == nil {
		return PokemonListResult{}, fmt.Errorf("%s: %w", url, missingField("results"))
	}
	return PokemonListResult{Count: raw.Count, Results: *raw.Results}, nil
}

func (c *Client) GetPokemon(ctx context.Context, id int) (PokemonResponse, error) {
	return c.GetPokemonByUrl(ctx, c.baseUrl+"pokemon/"+strconv.Itoa(id))
}

func (c *Client) GetPokemonByUrl(ctx context.Context, url string) (PokemonResponse, error) {
	c.sugar.Infof("Fetching PokemonResponse %s", url)
	var pokemon PokemonResponse
	if err := c.getAndDecode(ctx, url, &pokemon); err != nil {
		return PokemonResponse{}, err
	}
	return pokemon, nil
}

func (c *Client) GetPokemonSpecies(ctx context.Context, url string) (PokemonSpecies, error) {
	c.sugar.Infof("Fetching PokemonSpecies %s", url)
	var species PokemonSpecies
	if err := c.getAndDecode(ctx, url, &species); err != nil {
		return PokemonSpecies{}, err
	}
	return species, nil
}

func (c *Client) GetPokemonGeneration(ctx context.Context, species PokemonResponseSpecies) (int32, error) {
	pokemonSpecies, err := c.GetPokemonSpecies(ctx, species.Url)
	if err != nil {
		return 0, err
	}
	if pokemonSpecies.Generation.Url == "" {
		return 0, fmt.Errorf("%s: %w", species.Url, missingField("generation"))
	}
	var generation PokemonGeneration
	if err := c.getAndDecode(ctx, pokemonSpecies.Generation.Url, &generation); err != nil {
		return 0, err
	}
	return generation.Id, nil
}

func (c *Client) fetchPokemon(ctx context.Context,
	index int,
	url string,
	errChan chan<- error,
	results []PokemonResponse,
	waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()
	pokemon, err := c.GetPokemonByUrl(ctx, url)
	if err != nil {
		errChan <- err
		return
	}
	results[index] = pokemon
}

// FetchPokemons resolves every entry of a page. Any failure fails the whole
// call; results keep the page order.
func (c *Client) FetchPokemons(ctx context.Context, entries []PokemonListResultEntry) ([]PokemonResponse, error) {
	var waitGroup sync.WaitGroup
	errChan := make(chan error, len(entries))
	results := make([]PokemonResponse, len(entries))
	for i, entry := range entries {
		waitGroup.Add(1)
		go c.fetchPokemon(ctx, i, entry.Url, errChan, results, &waitGroup)
	}
	waitGroup.Wait()
	close(errChan)
	var errs []error
	for e := range errChan {
		if e != nil {
			errs = append(errs, e)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}
