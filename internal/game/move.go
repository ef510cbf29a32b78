package game

import "strings"

// Step packs a source square and a direction: k0 + 64*dir.
// Values 0 and 1 are reserved for pass tokens (they would leave the board).
type Step uint8

const (
	PassStep  Step = 0
	QPassStep Step = 1 // ends nothing, used to pad searches
	ErrStep   Step = 255
)

// MakeStep builds the step moving the piece on k0 in direction dir.
func MakeStep(k0, dir int) Step { return Step(k0 + 64*dir) }

// StepBetween builds the step from k0 to the adjacent square k1.
func StepBetween(k0, k1 int) Step {
	dir := DirTo(k0, k1)
	if dir < 0 {
		return ErrStep
	}
	return MakeStep(k0, dir)
}

func (s Step) K0() int  { return int(s & 63) }
func (s Step) Dir() int { return int(s >> 6) }
func (s Step) K1() int  { return s.K0() + DirOffset[s.Dir()] }

func (s Step) IsPass() bool { return s == PassStep || s == QPassStep }
func (s Step) IsReal() bool { return s != PassStep && s != QPassStep && s != ErrStep }

// Valid reports whether a non-pass step stays on the board.
func (s Step) Valid() bool {
	if !s.IsReal() {
		return false
	}
	return HasNeighbor(s.K0(), s.Dir())
}

func (s Step) String() string {
	switch s {
	case PassStep:
		return "pass"
	case QPassStep:
		return "qpass"
	case ErrStep:
		return "error"
	}
	return SquareName(s.K0()) + string(dirNames[s.Dir()])
}

// Move packs up to four steps, first step in the low byte. Unused bytes are 0xFF.
type Move uint32

const (
	PassMove  Move = 0xFFFFFF00
	QPassMove Move = 0xFFFFFF01
	ErrorMove Move = 0xFFFFFFFF
)

// MoveOf packs the given steps, ignoring any past the fourth.
func MoveOf(steps ...Step) Move {
	m := ErrorMove
	for i, s := range steps {
		if i >= 4 {
			break
		}
		m = m.SetStep(i, s)
	}
	return m
}

// StepAt returns the i-th step, ErrStep past the end.
func (m Move) StepAt(i int) Step { return Step(m >> (8 * uint(i))) }

// SetStep replaces the i-th step.
func (m Move) SetStep(i int, s Step) Move {
	sh := 8 * uint(i)
	return m&^(0xFF<<sh) | Move(s)<<sh
}

// NumSteps counts steps including passes.
func (m Move) NumSteps() int {
	for i := 0; i < 4; i++ {
		if m.StepAt(i) == ErrStep {
			return i
		}
	}
	return 4
}

// NumRealSteps counts steps excluding passes.
func (m Move) NumRealSteps() int {
	n := 0
	for i := 0; i < 4; i++ {
		s := m.StepAt(i)
		if s == ErrStep {
			break
		}
		if s.IsReal() {
			n++
		}
	}
	return n
}

// Steps unpacks the move.
func (m Move) Steps() []Step {
	n := m.NumSteps()
	out := make([]Step, n)
	for i := 0; i < n; i++ {
		out[i] = m.StepAt(i)
	}
	return out
}

// Append adds s after the last step. A full move is returned unchanged.
func (m Move) Append(s Step) Move {
	n := m.NumSteps()
	if n >= 4 {
		return m
	}
	return m.SetStep(n, s)
}

// Prepend puts s in front, dropping a fourth step if there was one.
func (m Move) Prepend(s Step) Move {
	return m<<8 | Move(s)
}

// Concat returns m followed by the steps of o, truncated to four.
func (m Move) Concat(o Move) Move {
	n := m.NumSteps()
	for i := 0; i < 4 && n < 4; i++ {
		s := o.StepAt(i)
		if s == ErrStep {
			break
		}
		m = m.SetStep(n, s)
		n++
	}
	return m
}

// Prefix keeps the first n steps.
func (m Move) Prefix(n int) Move {
	if n >= 4 {
		return m
	}
	if n <= 0 {
		return ErrorMove
	}
	return m | ErrorMove<<(8*uint(n))
}

// Suffix drops the first n steps.
func (m Move) Suffix(n int) Move {
	if n <= 0 {
		return m
	}
	if n >= 4 {
		return ErrorMove
	}
	return m>>(8*uint(n)) | ErrorMove<<(8*uint(4-n))
}

// HasPrefix reports whether p's steps begin m.
func (m Move) HasPrefix(p Move) bool {
	n := p.NumSteps()
	return m.NumSteps() >= n && m.Prefix(n) == p.Prefix(n)
}

// CompleteTurn appends a pass when the move neither fills the turn nor ends in one.
func (m Move) CompleteTurn() Move {
	n := m.NumSteps()
	if n == 0 || n >= 4 || m.StepAt(n-1) == PassStep {
		return m
	}
	return m.SetStep(n, PassStep)
}

// StripPasses drops pass tokens.
func (m Move) StripPasses() Move {
	out := ErrorMove
	j := 0
	for i := 0; i < 4; i++ {
		s := m.StepAt(i)
		if s == ErrStep {
			break
		}
		if s.IsPass() {
			continue
		}
		out = out.SetStep(j, s)
		j++
	}
	return out
}

func (m Move) String() string {
	if m == ErrorMove {
		return "errormove"
	}
	steps := m.Steps()
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
