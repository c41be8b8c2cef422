package csv

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BielosX/wombat/pokedex/src/parquet"
)

func TestPokemonWriter(t *testing.T) {
	w := NewPokemonWriter()
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(parquet.Pokemon{
		Id: 1, Name: "bulbasaur", Weight: 69, Height: 7, Type: "grass", Generation: 1, Thumbnail: "https://img/1.png",
	}))
	require.NoError(t, w.Write(parquet.Pokemon{
		Id: 122, Name: "mr, mime", Weight: 545, Height: 13, Type: "psychic", Generation: 1,
	}))
	require.NoError(t, w.Finish())

	data, err := io.ReadAll(w.BufferReader())
	require.NoError(t, err)
	assert.Equal(t,
		"id,name,weight,height,type,generation,thumbnail\n"+
			"1,bulbasaur,69,7,grass,1,https://img/1.png\n"+
			"122,\"mr, mime\",545,13,psychic,1,\n",
		string(data))
	assert.Equal(t, 2, w.Rows())
	assert.Equal(t, len(data), w.Size())
}
