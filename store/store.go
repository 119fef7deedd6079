// Package store persists chunks and their mesh statistics in a bolt file,
// keyed by chunk coordinate.
package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/voxelsplace/chunkmesh/voxel"
)

var ErrNotFound = errors.New("store: chunk not found")

var (
	chunkBucket = []byte("chunk")
	statsBucket = []byte("stats")
)

type Store struct {
	db *bolt.DB
}

// Open creates or opens the store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o666, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(chunkBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(statsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// PutChunk stores c at coord, replacing any previous chunk and dropping its
// mesh stats.
func (s *Store) PutChunk(coord voxel.Position, c *voxel.Chunk) error {
	key := encodeCoord(coord)
	value := voxel.MarshalChunk(c)
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(statsBucket).Delete(key); err != nil {
			return err
		}
		return tx.Bucket(chunkBucket).Put(key, value)
	})
}

// GetChunk loads the chunk at coord.
func (s *Store) GetChunk(coord voxel.Position) (*voxel.Chunk, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(chunkBucket).Get(encodeCoord(coord))
		if v == nil {
			return fmt.Errorf("%w: %v", ErrNotFound, coord)
		}
		// bolt values are only valid inside the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return voxel.UnmarshalChunk(data)
}

// DeleteChunk removes the chunk and its stats. Missing chunks are ignored.
func (s *Store) DeleteChunk(coord voxel.Position) error {
	key := encodeCoord(coord)
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(statsBucket).Delete(key); err != nil {
			return err
		}
		return tx.Bucket(chunkBucket).Delete(key)
	})
}

// RangeChunks calls f for every stored chunk in key order. Iteration stops
// at the first error.
func (s *Store) RangeChunks(f func(coord voxel.Position, c *voxel.Chunk) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(chunkBucket).ForEach(func(k, v []byte) error {
			coord, err := decodeCoord(k)
			if err != nil {
				return err
			}
			c, err := voxel.UnmarshalChunk(v)
			if err != nil {
				return fmt.Errorf("chunk %v: %w", coord, err)
			}
			return f(coord, c)
		})
	})
}

// PutStats records the mesh stats of the chunk at coord.
func (s *Store) PutStats(coord voxel.Position, st voxel.MeshStats) error {
	value := make([]byte, 0, 16)
	value = binary.LittleEndian.AppendUint32(value, uint32(st.Vertices))
	value = binary.LittleEndian.AppendUint32(value, uint32(st.Triangles))
	value = binary.LittleEndian.AppendUint64(value, st.Sum)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(statsBucket).Put(encodeCoord(coord), value)
	})
}

// GetStats returns the stats recorded for coord.
func (s *Store) GetStats(coord voxel.Position) (voxel.MeshStats, error) {
	var st voxel.MeshStats
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(statsBucket).Get(encodeCoord(coord))
		if v == nil {
			return fmt.Errorf("%w: no stats for %v", ErrNotFound, coord)
		}
		if len(v) != 16 {
			return fmt.Errorf("bad stats value length: %d", len(v))
		}
		st.Vertices = int(binary.LittleEndian.Uint32(v[0:4]))
		st.Triangles = int(binary.LittleEndian.Uint32(v[4:8]))
		st.Sum = binary.LittleEndian.Uint64(v[8:16])
		return nil
	})
	return st, err
}

func (s *Store) Close() error {
	if err := s.db.Sync(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

// Keys are big endian with the sign bit flipped so byte order matches
// numeric order.
func encodeCoord(p voxel.Position) []byte {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.BigEndian, [...]uint32{flip(p.X), flip(p.Y), flip(p.Z)})
	return buf.Bytes()
}

func decodeCoord(b []byte) (voxel.Position, error) {
	if len(b) != 12 {
		return voxel.Position{}, fmt.Errorf("bad chunk key length: %d", len(b))
	}
	return voxel.Position{
		X: unflip(binary.BigEndian.Uint32(b[0:4])),
		Y: unflip(binary.BigEndian.Uint32(b[4:8])),
		Z: unflip(binary.BigEndian.Uint32(b[8:12])),
	}, nil
}

func flip(v int) uint32   { return uint32(int32(v)) ^ 0x80000000 }
func unflip(v uint32) int { return int(int32(v ^ 0x80000000)) }
