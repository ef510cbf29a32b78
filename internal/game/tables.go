package game

import "sync"

// Player identifies a side. Gold starts on ranks 1-2 and moves north.
type Player int8

const (
	Silver   Player = 0
	Gold     Player = 1
	NoPlayer Player = 2
)

// Opp returns the other side.
func (p Player) Opp() Player { return 1 - p }

func (p Player) String() string {
	switch p {
	case Silver:
		return "silver"
	case Gold:
		return "gold"
	}
	return "none"
}

// Piece is a rank, Empty below everything.
type Piece int8

const (
	Empty Piece = iota
	Rabbit
	Cat
	Dog
	Horse
	Camel
	Elephant
	NumPieceTypes
)

// MaxPieceCounts is the standard army.
var MaxPieceCounts = [NumPieceTypes]int{16, 8, 2, 2, 2, 1, 1}

// Directions in step encoding order.
const (
	DirS = 0
	DirW = 1
	DirE = 2
	DirN = 3
)

// ErrSquare is the "no square" sentinel.
const ErrSquare = 255

// DirOffset is the square delta for each direction.
var DirOffset = [4]int{-8, -1, 1, 8}

var dirNames = [4]byte{'s', 'w', 'e', 'n'}

// OppDir reverses a direction.
func OppDir(dir int) int { return 3 - dir }

// Forward is the direction pla's rabbits advance in.
func Forward(pla Player) int {
	if pla == Gold {
		return DirN
	}
	return DirS
}

// Backward is the direction pla's rabbits may never step.
func Backward(pla Player) int { return OppDir(Forward(pla)) }

func HasS(k int) bool { return k >= 8 }
func HasW(k int) bool { return k&7 != 0 }
func HasE(k int) bool { return k&7 != 7 }
func HasN(k int) bool { return k < 56 }

// HasNeighbor reports whether k has a square in direction dir.
func HasNeighbor(k, dir int) bool {
	switch dir {
	case DirS:
		return HasS(k)
	case DirW:
		return HasW(k)
	case DirE:
		return HasE(k)
	case DirN:
		return HasN(k)
	}
	return false
}

// Neighbor returns the square next to k in direction dir, or ErrSquare.
func Neighbor(k, dir int) int {
	if !HasNeighbor(k, dir) {
		return ErrSquare
	}
	return k + DirOffset[dir]
}

// DirTo returns the direction from k0 to an adjacent k1, or -1.
func DirTo(k0, k1 int) int {
	switch k1 - k0 {
	case -8:
		return DirS
	case -1:
		if HasW(k0) {
			return DirW
		}
	case 1:
		if HasE(k0) {
			return DirE
		}
	case 8:
		return DirN
	}
	return -1
}

func X(k int) int { return k & 7 }
func Y(k int) int { return k >> 3 }

// Traps in index order c3, f3, c6, f6.
var TrapLocs = [4]int{18, 21, 42, 45}

// TrapDefLocs lists the four guard squares of each trap.
var TrapDefLocs = [4][4]int{
	{10, 17, 19, 26},
	{13, 20, 22, 29},
	{34, 41, 43, 50},
	{37, 44, 46, 53},
}

// PlaTrapLocs are the two traps on each player's home side.
var PlaTrapLocs = [2][2]int{{42, 45}, {18, 21}}

// IsPlaTrap[pla][trapIndex] is true for pla's home traps.
var IsPlaTrap = [2][4]bool{{false, false, true, true}, {true, true, false, false}}

// SymTrapIndex maps a trap index through PSymLoc.
var SymTrapIndex = [2][4]int{{2, 3, 0, 1}, {0, 1, 2, 3}}

// PSymDir maps a direction through PSymLoc.
var PSymDir = [2][4]int{{DirN, DirW, DirE, DirS}, {DirS, DirW, DirE, DirN}}

var (
	// Radius[r][k] holds the squares at exact distance r from k, Disk[r][k] those within r.
	Radius [16][64]Bitmap
	Disk   [16][64]Bitmap

	Manhattan [64][64]int

	TrapIndex         [64]int // -1 off traps
	AdjacentTrap      [64]int // ErrSquare when not next to a trap
	AdjacentTrapIndex [64]int // -1 when not next to a trap
	Rad2Trap          [64]int // trap at distance 2, ErrSquare if none

	ClosestTrap      [64]int
	ClosestTrapIndex [64]int
	ClosestTDist     [64]int

	EdgeDist   [64]int
	Centrality [64]int
	IsEdge     [64]bool

	GoalYDist [2][64]int
	IsGoal    [2][64]bool
	GoalMask  [2]Bitmap

	// PGoalMasks[n][pla] covers the rows within n rows of pla's goal.
	PGoalMasks [8][2]Bitmap

	// SymLoc folds the board onto its left half, oriented for pla.
	// PSymLoc mirrors ranks for silver and is the identity for gold.
	SymLoc  [2][64]int
	PSymLoc [2][64]int
)

var onceTables sync.Once

// InitTables builds every derived table. It is safe to call more than once.
func InitTables() {
	onceTables.Do(func() {
		initGeometry()
		initZobrist()
	})
}

func init() {
	InitTables()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func initGeometry() {
	for k := 0; k < 64; k++ {
		for j := 0; j < 64; j++ {
			Manhattan[k][j] = abs(X(k)-X(j)) + abs(Y(k)-Y(j))
		}
	}

	// 逐层膨胀
	for k := 0; k < 64; k++ {
		disk := BitmapOf(k)
		Radius[0][k] = disk
		Disk[0][k] = disk
		for r := 1; r < 16; r++ {
			next := disk.Dilate()
			Radius[r][k] = next &^ disk
			Disk[r][k] = next
			disk = next
		}
	}

	for k := 0; k < 64; k++ {
		TrapIndex[k] = -1
		AdjacentTrap[k] = ErrSquare
		AdjacentTrapIndex[k] = -1
		Rad2Trap[k] = ErrSquare
	}
	for i, t := range TrapLocs {
		TrapIndex[t] = i
		for _, d := range TrapDefLocs[i] {
			AdjacentTrap[d] = t
			AdjacentTrapIndex[d] = i
		}
	}

	for k := 0; k < 64; k++ {
		x, y := X(k), Y(k)
		ti := 0
		if x >= 4 {
			ti++
		}
		if y >= 4 {
			ti += 2
		}
		ClosestTrapIndex[k] = ti
		ClosestTrap[k] = TrapLocs[ti]
		ClosestTDist[k] = Manhattan[k][TrapLocs[ti]]
		for _, t := range TrapLocs {
			if Manhattan[k][t] == 2 {
				Rad2Trap[k] = t
			}
		}

		ex := x
		if 7-x < ex {
			ex = 7 - x
		}
		ey := y
		if 7-y < ey {
			ey = 7 - y
		}
		EdgeDist[k] = ex
		if ey < ex {
			EdgeDist[k] = ey
		}
		IsEdge[k] = EdgeDist[k] == 0

		cx := 3 - x
		if x >= 4 {
			cx = x - 4
		}
		cy := 3 - y
		if y >= 4 {
			cy = y - 4
		}
		Centrality[k] = cx + cy

		GoalYDist[Silver][k] = y
		GoalYDist[Gold][k] = 7 - y
		IsGoal[Silver][k] = y == 0
		IsGoal[Gold][k] = y == 7

		hx := x
		if x >= 4 {
			hx = 7 - x
		}
		SymLoc[Gold][k] = y*4 + hx
		SymLoc[Silver][k] = (7-y)*4 + hx
		PSymLoc[Gold][k] = k
		PSymLoc[Silver][k] = (7-y)*8 + x
	}
	GoalMask[Silver] = BmpYMin
	GoalMask[Gold] = BmpYMax
	for n := 0; n < 8; n++ {
		rows := 8 * uint(n+1)
		if rows >= 64 {
			PGoalMasks[n][Silver] = BmpAll
			PGoalMasks[n][Gold] = BmpAll
			continue
		}
		PGoalMasks[n][Silver] = Bitmap(1)<<rows - 1
		PGoalMasks[n][Gold] = ^(Bitmap(1)<<(64-rows) - 1)
	}
}

// RabbitValid reports whether a rabbit of pla may step in direction dir.
func RabbitValid(pla Player, dir int) bool {
	return dir != Backward(pla)
}

// SquareName formats a square as file and rank, e.g. c3.
func SquareName(k int) string {
	if k < 0 || k >= 64 {
		return "--"
	}
	return string([]byte{byte('a' + X(k)), byte('1' + Y(k))})
}

// ParseSquare is the inverse of SquareName.
func ParseSquare(s string) (int, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return ErrSquare, false
	}
	return int(s[0]-'a') + 8*int(s[1]-'1'), true
}
