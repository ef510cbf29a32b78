package game

import (
	"crypto/sha256"
	"encoding/binary"

	"lukechampine.com/frand"
)

// zobristSeedName names the key stream. Changing it changes every hash.
const zobristSeedName = "arimaa_go/zobrist/v1"

var (
	// HashPiece[owner][piece][square]; the Empty row is all zero.
	HashPiece [2][NumPieceTypes][64]uint64
	HashPla   [2]uint64
	HashStep  [4]uint64
)

// NewSeededRand returns a deterministic generator keyed by name.
func NewSeededRand(name string) *frand.RNG {
	seed := sha256.Sum256([]byte(name))
	return frand.NewCustom(seed[:], 1024, 12)
}

func nonZero64(rng *frand.RNG) uint64 {
	var buf [8]byte
	for {
		rng.Read(buf[:])
		if v := binary.LittleEndian.Uint64(buf[:]); v != 0 {
			return v
		}
	}
}

func initZobrist() {
	rng := NewSeededRand(zobristSeedName)
	for pla := 0; pla < 2; pla++ {
		for p := Rabbit; p < NumPieceTypes; p++ {
			for k := 0; k < 64; k++ {
				HashPiece[pla][p][k] = nonZero64(rng)
			}
		}
		HashPla[pla] = nonZero64(rng)
	}
	for s := range HashStep {
		HashStep[s] = nonZero64(rng)
	}
}
