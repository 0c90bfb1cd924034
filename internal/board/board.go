// Package board seats stems, stars, gates and deities on the nine palaces.
//
// Build lays out the rotating-plate (轉盤) board of an hour or minute chart
// from a bureau and the pillar that drives it; BuildDay lays out the
// 金函玉鏡 day board. Both are pure functions over package-level tables.
package board

import (
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/ganzhi"
)

// Layout is a built board together with its lead star and gate.
type Layout struct {
	Board      domain.Board
	LeadPalace int    // palace holding the decad's 儀 on the earth plate
	LeadStar   string // 值符
	LeadGate   string // 值使
	StarPalace int    // palace the lead star moved to
	GatePalace int    // palace the lead gate moved to
}

// EarthPlate returns the earth stem of every palace for a bureau.
func EarthPlate(b domain.Bureau) [10]ganzhi.Stem {
	var plate [10]ganzhi.Stem
	palace := b.Number
	for _, s := range earthOrder {
		plate[palace] = s
		palace = fly(palace, 1, b.Polarity == domain.Yang)
	}
	return plate
}

// Build lays out the board of bureau b driven by pillar p.
func Build(b domain.Bureau, p ganzhi.Pillar) Layout {
	earth := EarthPlate(b)
	yang := b.Polarity == domain.Yang

	stemPalace := func(s ganzhi.Stem) int {
		for n := 1; n <= 9; n++ {
			if earth[n] == s {
				return n
			}
		}
		return Centre
	}

	lead := stemPalace(p.Yi())
	out := Layout{
		LeadPalace: lead,
		LeadStar:   HomeStar(lead),
		LeadGate:   HomeGate(lead),
	}

	var board domain.Board
	for n := 1; n <= 9; n++ {
		board.Set(n, domain.PalaceEntry{
			Palace:    n,
			Trigram:   Trigram(n),
			EarthStem: earth[n].String(),
		})
	}
	centre := board.Palace(Centre)
	centre.Star = HomeStar(Centre)
	board.Set(Centre, centre)

	// Gates: the lead gate walks one palace per pillar of the decad.
	out.GatePalace = lodge(fly(lead, p.DecadOffset(), yang))
	gateShift := ringPos[out.GatePalace] - ringPos[lodge(lead)]
	for _, home := range ring {
		e := board.Palace(turn(home, gateShift))
		e.Gate = homeGates[home]
		board.Set(e.Palace, e)
	}

	// Stars: the lead star flies to the palace of the pillar's stem; the
	// ring turns with it and 禽 rides with 芮.
	out.StarPalace = lodge(stemPalace(p.EffectiveStem()))
	starShift := ringPos[out.StarPalace] - ringPos[lodge(lead)]
	for _, home := range ring {
		e := board.Palace(turn(home, starShift))
		e.Star = homeStars[home]
		e.HeavenStem = earth[home].String()
		if home == Kun {
			e.LodgedStem = earth[Centre].String()
		}
		board.Set(e.Palace, e)
	}

	// Deities follow the lead star, clockwise in 陽遁.
	pos := ringPos[out.StarPalace]
	for i, name := range deities {
		step := i
		if !yang {
			step = -i
		}
		e := board.Palace(ring[mod(pos+step, 8)])
		e.Deity = name
		board.Set(e.Palace, e)
	}

	markVoidAndHorse(&board, p)
	out.Board = board
	return out
}

func markVoidAndHorse(board *domain.Board, p ganzhi.Pillar) {
	for _, b := range p.Void() {
		e := board.Palace(BranchPalace(b))
		e.Void = true
		board.Set(e.Palace, e)
	}
	e := board.Palace(BranchPalace(Horse(p.Branch())))
	e.Horse = true
	board.Set(e.Palace, e)
}
