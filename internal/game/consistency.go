package game

import "github.com/pkg/errors"

// TestConsistency cross-checks every redundant piece of board state and returns
// the first disagreement found, nil if the board is sound.
func (b *Board) TestConsistency() error {
	for k := 0; k < 64; k++ {
		owner, piece := b.Owners[k], b.Pieces[k]
		if (owner == NoPlayer) != (piece == Empty) {
			return errors.Errorf("owner %d and piece %d disagree at %s", owner, piece, SquareName(k))
		}
		if owner != NoPlayer && owner != Silver && owner != Gold {
			return errors.Errorf("bad owner %d at %s", owner, SquareName(k))
		}
		if piece < Empty || piece >= NumPieceTypes {
			return errors.Errorf("bad piece %d at %s", piece, SquareName(k))
		}
		for pla := Silver; pla <= Gold; pla++ {
			for p := Empty; p < NumPieceTypes; p++ {
				want := owner == pla && (p == 0 || p == piece)
				if b.PieceMaps[pla][p].Has(k) != want {
					return errors.Errorf("piece map [%v][%d] wrong at %s", pla, p, SquareName(k))
				}
			}
		}
	}

	for pla := Silver; pla <= Gold; pla++ {
		total := 0
		for p := Rabbit; p < NumPieceTypes; p++ {
			n := b.PieceCounts[pla][p]
			if n != b.PieceMaps[pla][p].Count() {
				return errors.Errorf("%v count of %d is %d, map has %d", pla, p, n, b.PieceMaps[pla][p].Count())
			}
			if n < 0 || n > MaxPieceCounts[p] {
				return errors.Errorf("%v count of %d out of range: %d", pla, p, n)
			}
			total += n
		}
		if total != b.PieceCounts[pla][0] || total > MaxPieceCounts[0] {
			return errors.Errorf("%v total %d, stored %d", pla, total, b.PieceCounts[pla][0])
		}
	}

	for k := 0; k < 64; k++ {
		frozen := b.FrozenMap.Has(k)
		if frozen != b.IsFrozenC(k) {
			return errors.Errorf("frozen map wrong at %s", SquareName(k))
		}
		if b.Owners[k] != NoPlayer && frozen != (b.IsDominated(k) && !b.IsGuarded(b.Owners[k], k)) {
			return errors.Errorf("frozen disagrees with domination at %s", SquareName(k))
		}
	}

	for ti, kt := range TrapLocs {
		if owner := b.Owners[kt]; owner != NoPlayer && !b.IsGuarded(owner, kt) {
			return errors.Errorf("unguarded piece left on trap %s", SquareName(kt))
		}
		for pla := Silver; pla <= Gold; pla++ {
			if b.TrapGuardCounts[pla][ti] != b.GuardCount(pla, kt) {
				return errors.Errorf("%v guard count at %s is %d, want %d",
					pla, SquareName(kt), b.TrapGuardCounts[pla][ti], b.GuardCount(pla, kt))
			}
			if b.IsGuarded2(pla, kt) != b.IsTrapSafe2(pla, kt) {
				return errors.Errorf("%v trap safety disagrees at %s", pla, SquareName(kt))
			}
		}
	}

	var h uint64
	for k := 0; k < 64; k++ {
		if b.Owners[k] != NoPlayer {
			h ^= HashPiece[b.Owners[k]][b.Pieces[k]][k]
		}
	}
	if h != b.PosCurrentHash {
		return errors.Errorf("position hash %x, recomputed %x", b.PosCurrentHash, h)
	}
	if sit := h ^ HashPla[b.Player] ^ HashStep[b.Step]; sit != b.SitCurrentHash {
		return errors.Errorf("situation hash %x, recomputed %x", b.SitCurrentHash, sit)
	}
	if b.Player != Silver && b.Player != Gold {
		return errors.Errorf("bad side to move %d", b.Player)
	}
	if b.Step < 0 || b.Step > 3 {
		return errors.Errorf("bad step %d", b.Step)
	}
	return nil
}
