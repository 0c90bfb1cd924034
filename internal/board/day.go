package board

import (
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/ganzhi"
)

// BuildDay lays out the 金函玉鏡 day board of bureau b for day pillar p.
// The nine day stars fly through the palaces in Lo Shu order from the lead
// palace; the eight gates turn around the ring from it.
func BuildDay(b domain.Bureau, p ganzhi.Pillar) Layout {
	yang := b.Polarity == domain.Yang
	lead := fly(b.Number, p.Index()%9, yang)

	var board domain.Board
	for n := 1; n <= 9; n++ {
		board.Set(n, domain.PalaceEntry{Palace: n, Trigram: Trigram(n)})
	}

	palace := lead
	for _, star := range dayStars {
		e := board.Palace(palace)
		e.Star = star
		board.Set(palace, e)
		palace = fly(palace, 1, yang)
	}

	gateStart := ringPos[lodge(lead)]
	for i, gate := range dayGates {
		step := i
		if !yang {
			step = -i
		}
		e := board.Palace(ring[mod(gateStart+step, 8)])
		e.Gate = gate
		board.Set(e.Palace, e)
	}

	markVoidAndHorse(&board, p)
	return Layout{
		Board:      board,
		LeadPalace: lead,
		LeadStar:   dayStars[0],
		LeadGate:   dayGates[0],
		StarPalace: lead,
		GatePalace: lodge(lead),
	}
}
