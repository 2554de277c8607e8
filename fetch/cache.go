// Package fetch provides a block-cached code reader modeled on the EE
// instruction cache, built on the Akita cache directory.
package fetch

import (
	"encoding/binary"
	"errors"
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// ErrOutOfRange is returned when a read falls outside the backing image.
var ErrOutOfRange = errors.New("read out of range")

// Config holds cache geometry.
type Config struct {
	// Size in bytes
	Size int
	// Associativity (number of ways)
	Associativity int
	// BlockSize in bytes (cache line size)
	BlockSize int
}

// DefaultConfig returns the EE instruction cache geometry: 16 KiB,
// 2-way, 64-byte lines.
func DefaultConfig() Config {
	return Config{
		Size:          16 * 1024,
		Associativity: 2,
		BlockSize:     64,
	}
}

// Statistics holds cache counters.
type Statistics struct {
	Reads     uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
	// Bypasses counts reads served directly because the enclosing block
	// is only partly mapped.
	Bypasses uint64
}

// Backing is the image a cache fills from. ReadAt must leave buf untouched
// on error. *loader.Program satisfies it.
type Backing interface {
	ReadAt(buf []byte, addr uint32) error
}

// Cache is a read-only set-associative cache of code bytes. It is not
// safe for concurrent use.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	// indexed by setID*associativity + wayID
	dataStore [][]byte
	stats     Statistics
	backing   Backing
}

// New creates a cache in front of backing.
func New(config Config, backing Backing) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]byte, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]byte, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		backing:   backing,
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func (c *Cache) blockAddr(addr uint32) uint32 {
	return addr / uint32(c.config.BlockSize) * uint32(c.config.BlockSize)
}

// ReadU32 reads a little-endian word at addr.
func (c *Cache) ReadU32(addr uint32) (uint32, error) {
	var buf [4]byte
	if err := c.Read(buf[:], addr); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Read fills buf with the bytes at addr, crossing lines as needed.
func (c *Cache) Read(buf []byte, addr uint32) error {
	c.stats.Reads++

	for done := 0; done < len(buf); {
		cur := addr + uint32(done)
		offset := int(cur - c.blockAddr(cur))
		n := min(len(buf)-done, c.config.BlockSize-offset)

		if err := c.readLine(buf[done:done+n], cur, offset); err != nil {
			return err
		}
		done += n
	}
	return nil
}

func (c *Cache) readLine(dst []byte, addr uint32, offset int) error {
	blockAddr := c.blockAddr(addr)

	block := c.directory.Lookup(0, uint64(blockAddr))
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)
		copy(dst, c.dataStore[c.blockIndex(block)][offset:])
		return nil
	}

	c.stats.Misses++

	data, err := c.fill(blockAddr)
	if err != nil {
		// The line straddles the end of the image. Serve the bytes
		// directly and leave the line unfilled.
		c.stats.Bypasses++
		if err := c.backing.ReadAt(dst, addr); err != nil {
			return fmt.Errorf("%w: 0x%08x: %w", ErrOutOfRange, addr, err)
		}
		return nil
	}

	copy(dst, data[offset:])
	return nil
}

// fill loads the line at blockAddr into a victim way.
func (c *Cache) fill(blockAddr uint32) ([]byte, error) {
	victim := c.directory.FindVictim(uint64(blockAddr))
	if victim == nil {
		return nil, fmt.Errorf("no victim for line 0x%08x", blockAddr)
	}

	data := c.dataStore[c.blockIndex(victim)]
	if err := c.backing.ReadAt(data, blockAddr); err != nil {
		return nil, err
	}

	if victim.IsValid {
		c.stats.Evictions++
	}

	victim.Tag = uint64(blockAddr)
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)

	return data, nil
}

// Invalidate drops the line holding addr.
func (c *Cache) Invalidate(addr uint32) {
	block := c.directory.Lookup(0, uint64(c.blockAddr(addr)))
	if block != nil && block.IsValid {
		block.IsValid = false
	}
}

// Reset invalidates all lines and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}
