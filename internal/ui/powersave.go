package ui

import "github.com/hajimehoshi/ebiten/v2"

const (
	activeTPS = 30
	idleTPS   = 10
	// 没有动静多少帧后降档；回合走到一半时多等一会
	idleFrames    = 45
	midTurnFrames = 150
)

// powerState throttles the viewer between frames. It runs at the full rate
// while the user is clicking or the threat report is waiting to be rebuilt,
// and drops to idleTPS after a quiet spell. The spell is longer while steps
// are pending, since the next click usually follows soon.
type powerState struct {
	fast   bool
	booted bool
	quiet  int
	// apply switches the ebiten frame rate; nil uses setFrameRate
	apply func(fast bool)
}

func setFrameRate(fast bool) {
	if fast {
		ebiten.SetFPSMode(ebiten.FPSModeVsyncOn)
		ebiten.SetMaxTPS(activeTPS)
		return
	}
	ebiten.SetFPSMode(ebiten.FPSModeVsyncOffMinimum)
	ebiten.SetMaxTPS(idleTPS)
}

func (p *powerState) set(fast bool) {
	if p.booted && p.fast == fast {
		return
	}
	p.fast = fast
	if p.apply != nil {
		p.apply(fast)
	} else {
		setFrameRate(fast)
	}
}

// tick is called once per Update. refreshing means a report rebuild is due
// this frame; pendingSteps is how many steps of the turn are not committed.
func (p *powerState) tick(input, refreshing bool, pendingSteps int) {
	if input || refreshing {
		p.quiet = 0
		p.set(true)
		p.booted = true
		return
	}
	if !p.booted {
		// 首帧：直接降档
		p.set(false)
		p.booted = true
		return
	}
	limit := idleFrames
	if pendingSteps > 0 {
		limit = midTurnFrames
	}
	if p.quiet++; p.quiet >= limit {
		p.set(false)
	}
}
