package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// 金方大写，银方小写
const pieceLetters = ".RCDHME"

// PieceLetter returns the notation letter for a piece, upper case for gold.
func PieceLetter(owner Player, piece Piece) byte {
	c := pieceLetters[piece]
	if owner == Silver && piece != Empty {
		c += 'a' - 'A'
	}
	return c
}

// ParsePieceLetter is the inverse of PieceLetter for non-empty pieces.
func ParsePieceLetter(c byte) (Player, Piece, bool) {
	owner := Gold
	if c >= 'a' && c <= 'z' {
		owner = Silver
		c -= 'a' - 'A'
	}
	i := strings.IndexByte(pieceLetters, c)
	if i <= 0 {
		return NoPlayer, Empty, false
	}
	return owner, Piece(i), true
}

func (p Piece) String() string {
	if p < Empty || p >= NumPieceTypes {
		return "?"
	}
	return string(pieceLetters[p])
}

// MoveString writes m in standard notation as played from b, for example
// "Ed4n Ed5n rd6w rc6x". Captures appear as extra tokens.
func (b *Board) MoveString(m Move) string {
	c := *b
	var parts []string
	for i := 0; i < 4; i++ {
		s := m.StepAt(i)
		if s == ErrStep || s == QPassStep {
			break
		}
		if s == PassStep {
			if len(parts) == 0 {
				parts = append(parts, "pass")
			}
			break
		}
		k0 := s.K0()
		parts = append(parts, string(PieceLetter(c.Owners[k0], c.Pieces[k0]))+s.String())
		rec := c.TempStep(k0, s.K1())
		if rec.Captured() {
			parts = append(parts, string(PieceLetter(rec.CapOwner, rec.CapPiece))+SquareName(rec.CapLoc)+"x")
		}
	}
	return strings.Join(parts, " ")
}

// ParseMove reads a move in standard notation. Piece letters are accepted but
// not checked against any board; capture tokens are skipped.
func ParseMove(text string) (Move, error) {
	m := ErrorMove
	n := 0
	for _, tok := range strings.Fields(text) {
		if tok == "pass" {
			if n >= 4 {
				return ErrorMove, errors.Errorf("too many steps in %q", text)
			}
			m = m.SetStep(n, PassStep)
			n++
			continue
		}
		if len(tok) != 4 {
			return ErrorMove, errors.Errorf("bad step token %q", tok)
		}
		if _, _, ok := ParsePieceLetter(tok[0]); !ok {
			return ErrorMove, errors.Errorf("bad piece letter in %q", tok)
		}
		k, ok := ParseSquare(tok[1:3])
		if !ok {
			return ErrorMove, errors.Errorf("bad square in %q", tok)
		}
		if tok[3] == 'x' {
			continue
		}
		dir := strings.IndexByte(string(dirNames[:]), tok[3])
		if dir < 0 {
			return ErrorMove, errors.Errorf("bad direction in %q", tok)
		}
		if !HasNeighbor(k, dir) {
			return ErrorMove, errors.Errorf("step %q leaves the board", tok)
		}
		if n >= 4 {
			return ErrorMove, errors.Errorf("too many steps in %q", text)
		}
		m = m.SetStep(n, MakeStep(k, dir))
		n++
	}
	if n == 0 {
		return ErrorMove, errors.New("empty move")
	}
	return m, nil
}

// String draws the board rank 8 first, '.' for empty squares and 'x' for
// empty traps, followed by a line naming the side to move and the step.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 7; y >= 0; y-- {
		for x := 0; x < 8; x++ {
			k := y*8 + x
			switch {
			case b.Owners[k] != NoPlayer:
				sb.WriteByte(PieceLetter(b.Owners[k], b.Pieces[k]))
			case TrapIndex[k] >= 0:
				sb.WriteByte('x')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(b.Player.String())
	if b.Step != 0 {
		sb.WriteString(" " + strconv.Itoa(b.Step))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// ParseBoard reads the diagram format written by Board.String. The side line
// is optional and defaults to gold at step 0. Blank lines are ignored.
func ParseBoard(text string) (*Board, error) {
	b := NewBoard()
	rank := 7
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rank < 0 {
			if err := parseSideLine(b, line); err != nil {
				return nil, err
			}
			continue
		}
		if len(line) != 8 {
			return nil, errors.Errorf("rank %d: want 8 squares, got %q", rank+1, line)
		}
		for x := 0; x < 8; x++ {
			c := line[x]
			if c == '.' || c == 'x' || c == 'X' {
				continue
			}
			owner, piece, ok := ParsePieceLetter(c)
			if !ok {
				return nil, errors.Errorf("rank %d: bad square %q", rank+1, c)
			}
			b.SetPiece(rank*8+x, owner, piece)
		}
		rank--
	}
	if rank >= 0 {
		return nil, errors.Errorf("diagram has only %d ranks", 7-rank)
	}
	b.RecalcFrozen()
	b.RefreshStartHash()
	if err := b.TestConsistency(); err != nil {
		return nil, errors.Wrap(err, "parsed board")
	}
	return b, nil
}

func parseSideLine(b *Board, line string) error {
	f := strings.Fields(line)
	var pla Player
	switch strings.ToLower(f[0]) {
	case "g", "gold":
		pla = Gold
	case "s", "silver":
		pla = Silver
	default:
		return errors.Errorf("bad side line %q", line)
	}
	step := 0
	if len(f) > 1 {
		n, err := strconv.Atoi(f[1])
		if err != nil || n < 0 || n > 3 {
			return errors.Errorf("bad step in side line %q", line)
		}
		step = n
	}
	b.SetPlaStep(pla, step)
	return nil
}

// MustParseBoard is ParseBoard for fixed diagrams; a bad diagram is a contract
// violation.
func MustParseBoard(text string) *Board {
	b, err := ParseBoard(text)
	if err != nil {
		Violation("%v", err)
	}
	return b
}

// ParseMoveList reads one turn per line. A leading turn label such as "12g"
// or "3s" is skipped, as are blank lines and lines starting with '#'.
func ParseMoveList(text string) ([]Move, error) {
	var out []Move
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if f := strings.Fields(line); isTurnLabel(f[0]) {
			line = strings.Join(f[1:], " ")
			if line == "" {
				continue
			}
		}
		m, err := ParseMove(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		out = append(out, m)
	}
	return out, nil
}

func isTurnLabel(tok string) bool {
	n := len(tok)
	if n < 2 {
		return false
	}
	switch tok[n-1] {
	case 'g', 'w', 's', 'b':
	default:
		return false
	}
	_, err := strconv.Atoi(tok[:n-1])
	return err == nil
}
