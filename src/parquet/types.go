package parquet

import (
	"github.com/BielosX/wombat/pokedex/src/pokeapi"
)

// Pokemon is one exported row. A creature with several types yields one
// row per type.
type Pokemon struct {
	Id         int32  `parquet:"name=id, type=INT32"`
	Name       string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Weight     int32  `parquet:"name=weight, type=INT32"`
	Height     int32  `parquet:"name=height, type=INT32"`
	Type       string `parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Generation int32  `parquet:"name=generation, type=INT32"`
	Thumbnail  string `parquet:"name=thumbnail, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func ToPokemon(response pokeapi.PokemonResponse, generation int32) ([]Pokemon, error) {
	if err := response.Validate(); err != nil {
		return nil, err
	}
	base := Pokemon{
		Id:         response.Id,
		Name:       response.Name,
		Weight:     response.Weight,
		Height:     response.Height,
		Generation: generation,
	}
	if response.Sprites.FrontDefault != nil {
		base.Thumbnail = *response.Sprites.FrontDefault
	}
	if len(response.Types) == 0 {
		return []Pokemon{base}, nil
	}
	result := make([]Pokemon, 0, len(response.Types))
	for _, t := range response.Types {
		entry := base
		entry.Type = t.Type.Name
		result = append(result, entry)
	}
	return result, nil
}
