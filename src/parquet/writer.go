package parquet

import (
	"io"

	"go.uber.org/zap"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// PokemonWriter buffers a Parquet file in memory until Finish.
type PokemonWriter struct {
	buffer *buffer.BufferFile
	writer *writer.ParquetWriter
	sugar  *zap.SugaredLogger
	rows   int
}

const (
	InitialCapacity = 1024 * 1024
	parallelNumber  = 4
)

func NewPokemonWriter(sugar *zap.SugaredLogger) (*PokemonWriter, error) {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	w, err := writer.NewParquetWriter(bufferFile, new(Pokemon), parallelNumber)
	if err != nil {
		return nil, err
	}
	w.CompressionType = parquet.CompressionCodec_SNAPPY
	return &PokemonWriter{
		buffer: bufferFile,
		writer: w,
		sugar:  sugar,
	}, nil
}

func (w *PokemonWriter) WritePokemon(pokemon *Pokemon) error {
	if err := w.writer.Write(pokemon); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Finish closes the file and rewinds the buffer for reading.
func (w *PokemonWriter) Finish() error {
	if err := w.writer.WriteStop(); err != nil {
		return err
	}
	w.sugar.Debugf("Finished Parquet file with %d rows", w.rows)
	_, err := w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *PokemonWriter) Rows() int {
	return w.rows
}

func (w *PokemonWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *PokemonWriter) BufferReader() io.Reader {
	return w.buffer
}
