package pokeapi

type NamedResource struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type PokemonListResultEntry struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type PokemonListResult struct {
	Count   int                      `json:"count"`
	Results []PokemonListResultEntry `json:"results"`
}

type PokemonTypeEntry struct {
	Name string `json:"name"`
}

type PokemonType struct {
	Slot int32            `json:"slot"`
	Type PokemonTypeEntry `json:"type"`
}

type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int32         `json:"slot"`
}

type PokemonStat struct {
	Stat     NamedResource `json:"stat"`
	BaseStat int32         `json:"base_stat"`
	Effort   int32         `json:"effort"`
}

type PokemonMove struct {
	Move NamedResource `json:"move"`
}

type OfficialArtwork struct {
	FrontDefault *string `json:"front_default"`
}

type OtherSprites struct {
	OfficialArtwork OfficialArtwork `json:"official-artwork"`
}

type PokemonSprites struct {
	FrontDefault *string      `json:"front_default"`
	BackDefault  *string      `json:"back_default"`
	Other        OtherSprites `json:"other"`
}

type PokemonResponseSpecies struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type PokemonResponse struct {
	Id        int32                  `json:"id"`
	Name      string                 `json:"name"`
	Weight    int32                  `json:"weight"`
	Height    int32                  `json:"height"`
	Sprites   PokemonSprites         `json:"sprites"`
	Types     []PokemonType          `json:"types"`
	Abilities []PokemonAbility       `json:"abilities"`
	Stats     []PokemonStat          `json:"stats"`
	Moves     []PokemonMove          `json:"moves"`
	Species   PokemonResponseSpecies `json:"species"`
}

// Validate reports ErrMalformedResponse when the fields every detail record
// carries are missing.
func (p PokemonResponse) Validate() error {
	if p.Id <= 0 {
		return missingField("id")
	}
	if p.Name == "" {
		return missingField("name")
	}
	return nil
}

type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

type PokemonSpecies struct {
	Id                int32             `json:"id"`
	Name              string            `json:"name"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
	Generation        NamedResource     `json:"generation"`
}

type PokemonGeneration struct {
	Id   int32  `json:"id"`
	Name string `json:"name"`
}
