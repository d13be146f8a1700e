package heightfield

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/cdlod/coreerr"
)

// The chunk file carries no version field (§6 gives its header only the
// tree depth, the max base error and the chunk count). WriteChunkFile
// writes chunks in the order it is given; Mesh's output is in depth-first
// nw, ne, sw, se pre-order, which lets a reader rebuild the quadtree
// without explicit parent links.

// WriteChunkFile serializes treeDepth, maxBaseError, and chunks to path in
// the §6 binary layout. It writes to a temporary file and renames into
// place so a crash mid-write never leaves a partial chunk file (§4.1
// "Failure semantics"; SPEC_FULL supplement 5 — the source writes
// directly, this module takes the spec's suggested safer alternative).
func WriteChunkFile(path string, treeDepth int, maxBaseError float32, chunks []*Chunk) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cdlod: create chunk file %q: %w", tmp, err)
	}

	w := bufio.NewWriter(f)
	writeErr := writeChunkFile(w, treeDepth, maxBaseError, chunks)
	if writeErr == nil {
		writeErr = w.Flush()
	}
	closeErr := f.Close()
	if writeErr != nil {
		os.Remove(tmp)
		return fmt.Errorf("cdlod: write chunk file %q: %w", tmp, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmp)
		return fmt.Errorf("cdlod: close chunk file %q: %w", tmp, closeErr)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cdlod: rename chunk file into place %q: %w", path, err)
	}
	return nil
}

func writeChunkFile(w io.Writer, treeDepth int, maxBaseError float32, chunks []*Chunk) error {
	if err := binary.Write(w, binary.LittleEndian, int32(treeDepth)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, maxBaseError); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, NodeCount(treeDepth)); err != nil {
		return err
	}
	for _, c := range chunks {
		if err := writeChunk(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writeChunk(w io.Writer, c *Chunk) error {
	fields := []any{
		int32(c.NodeIndex),
		int32(c.Level),
		c.BBoxMin,
		c.BBoxMax,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(c.Vertices))); err != nil {
		return err
	}
	for _, v := range c.Vertices {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(c.Indices))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, c.Indices)
}

// ChunkFile is the parsed result of ReadChunkFile.
type ChunkFile struct {
	TreeDepth    int
	MaxBaseError float32
	Chunks       []*Chunk
}

// ReadChunkFile parses a §6 chunk file. Traversal order in the file matches
// the recursive nw, ne, sw, se descent, so Chunks is returned in the same
// depth-first pre-order WriteChunkFile wrote it in.
func ReadChunkFile(path string) (*ChunkFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &coreerr.NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("cdlod: open chunk file %q: %w", path, err)
	}
	defer f.Close()
	return readChunkFile(bufio.NewReader(f))
}

func readChunkFile(r io.Reader) (*ChunkFile, error) {
	var treeDepth int32
	if err := binary.Read(r, binary.LittleEndian, &treeDepth); err != nil {
		return nil, fmt.Errorf("cdlod: read tree depth: %w", err)
	}
	var maxBaseError float32
	if err := binary.Read(r, binary.LittleEndian, &maxBaseError); err != nil {
		return nil, fmt.Errorf("cdlod: read max base error: %w", err)
	}
	var chunkCount uint32
	if err := binary.Read(r, binary.LittleEndian, &chunkCount); err != nil {
		return nil, fmt.Errorf("cdlod: read chunk count: %w", err)
	}

	want := NodeCount(int(treeDepth))
	if chunkCount != want {
		return nil, fmt.Errorf("%w: chunk count %d, expected %d for tree depth %d", coreerr.ErrFormatMismatch, chunkCount, want, treeDepth)
	}

	chunks := make([]*Chunk, 0, chunkCount)
	for i := uint32(0); i < chunkCount; i++ {
		c, err := readChunk(r)
		if err != nil {
			return nil, fmt.Errorf("cdlod: read chunk %d: %w", i, err)
		}
		chunks = append(chunks, c)
	}

	return &ChunkFile{TreeDepth: int(treeDepth), MaxBaseError: maxBaseError, Chunks: chunks}, nil
}

func readChunk(r io.Reader) (*Chunk, error) {
	var nodeIndex, level int32
	if err := binary.Read(r, binary.LittleEndian, &nodeIndex); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &level); err != nil {
		return nil, err
	}
	var bboxMin, bboxMax [3]float32
	if err := binary.Read(r, binary.LittleEndian, &bboxMin); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &bboxMax); err != nil {
		return nil, err
	}

	var vertexCount uint32
	if err := binary.Read(r, binary.LittleEndian, &vertexCount); err != nil {
		return nil, err
	}
	vertices := make([][3]float32, vertexCount)
	for i := range vertices {
		if err := binary.Read(r, binary.LittleEndian, &vertices[i]); err != nil {
			return nil, err
		}
	}

	var indexCount uint32
	if err := binary.Read(r, binary.LittleEndian, &indexCount); err != nil {
		return nil, err
	}
	indices := make([]uint32, indexCount)
	if err := binary.Read(r, binary.LittleEndian, &indices); err != nil {
		return nil, err
	}

	return &Chunk{
		NodeIndex: uint32(nodeIndex),
		Level:     int(level),
		BBoxMin:   bboxMin,
		BBoxMax:   bboxMax,
		Vertices:  vertices,
		Indices:   indices,
	}, nil
}
