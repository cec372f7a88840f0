package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// IDGenerator produces task identifiers. Implementations should return
// distinct values on every call; the store still guards against repeats.
type IDGenerator interface {
	NextID() string
}

// Generator kinds accepted by NewGenerator and the store.id_generator
// config key.
const (
	GeneratorCounter = "counter"
	GeneratorUUID    = "uuid"
	GeneratorHash    = "hash"
)

// ErrUnknownGenerator is returned by NewGenerator for an unrecognized kind.
var ErrUnknownGenerator = errors.New("unknown id generator")

// GeneratorKinds returns every kind accepted by NewGenerator.
func GeneratorKinds() []string {
	return []string{GeneratorCounter, GeneratorUUID, GeneratorHash}
}

// NewGenerator builds the generator named by kind. prefix is only used by
// the counter generator. An empty kind selects the counter generator.
func NewGenerator(kind, prefix string) (IDGenerator, error) {
	switch kind {
	case "", GeneratorCounter:
		return NewCounterGenerator(prefix), nil
	case GeneratorUUID:
		return NewUUIDGenerator(), nil
	case GeneratorHash:
		return NewHashGenerator(uint64(time.Now().UnixNano()), nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, kind)
	}
}

// CounterGenerator issues prefix1, prefix2, ... in order. It is the default
// because it makes ids predictable in tests and scripts.
type CounterGenerator struct {
	prefix string
	n      atomic.Uint64
}

// NewCounterGenerator returns a CounterGenerator starting at 1.
func NewCounterGenerator(prefix string) *CounterGenerator {
	return &CounterGenerator{prefix: prefix}
}

// NextID implements IDGenerator.
func (g *CounterGenerator) NextID() string {
	return g.prefix + strconv.FormatUint(g.n.Add(1), 10)
}

// UUIDGenerator issues random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewUUIDGenerator returns a UUIDGenerator.
func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

// NextID implements IDGenerator.
func (UUIDGenerator) NextID() string {
	return uuid.NewString()
}

// HashGenerator derives short hex ids from an xxhash64 digest of a seed, the
// current clock reading and a sequence number. The sequence number keeps ids
// distinct when the clock does not advance between calls.
type HashGenerator struct {
	seed  uint64
	clock Clock
	seq   atomic.Uint64
}

// NewHashGenerator returns a HashGenerator. A nil clock means time.Now.
func NewHashGenerator(seed uint64, clock Clock) *HashGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &HashGenerator{seed: seed, clock: clock}
}

// NextID implements IDGenerator.
func (g *HashGenerator) NextID() string {
	buf := make([]byte, 0, 24)
	buf = binary.LittleEndian.AppendUint64(buf, g.seed)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(g.clock().UnixNano()))
	buf = binary.LittleEndian.AppendUint64(buf, g.seq.Add(1))
	return fmt.Sprintf("%016x", xxhash.Sum64(buf))
}
