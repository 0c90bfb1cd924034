package board

import (
	"testing"

	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/ganzhi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPillar(t *testing.T, label string) ganzhi.Pillar {
	t.Helper()
	p, err := ganzhi.ParsePillar(label)
	require.NoError(t, err)
	return p
}

var yang5 = domain.Bureau{Number: 5, Polarity: domain.Yang, Yuan: domain.LowerYuan}

func TestEarthPlate(t *testing.T) {
	t.Run("yang ascends", func(t *testing.T) {
		plate := EarthPlate(yang5)
		got := ""
		for n := 1; n <= 9; n++ {
			got += plate[n].String()
		}
		assert.Equal(t, "癸丁丙乙戊己庚辛壬", got)
	})

	t.Run("yin descends", func(t *testing.T) {
		plate := EarthPlate(domain.Bureau{Number: 9, Polarity: domain.Yin})
		got := ""
		for n := 1; n <= 9; n++ {
			got += plate[n].String()
		}
		assert.Equal(t, "乙丙丁癸壬辛庚己戊", got)
	})
}

func TestBuildHourGolden(t *testing.T) {
	layout := Build(yang5, createTestPillar(t, "壬子"))

	assert.Equal(t, 9, layout.LeadPalace)
	assert.Equal(t, "英", layout.LeadStar)
	assert.Equal(t, "景", layout.LeadGate)
	assert.Equal(t, 8, layout.GatePalace)
	assert.Equal(t, 9, layout.StarPalace)

	b := layout.Board
	assert.Equal(t, map[int]string{1: "杜", 2: "休", 3: "死", 4: "驚", 6: "傷", 7: "生", 8: "景", 9: "開"},
		b.Layer(func(e domain.PalaceEntry) string { return e.Gate }))
	assert.Equal(t, map[int]string{1: "白虎", 2: "螣蛇", 3: "九地", 4: "九天", 6: "六合", 7: "太陰", 8: "玄武", 9: "值符"},
		b.Layer(func(e domain.PalaceEntry) string { return e.Deity }))

	// The hour stem is the decad's own 儀, so every star stays home.
	for n := 1; n <= 9; n++ {
		assert.Equal(t, HomeStar(n), b.Palace(n).Star, "palace %d", n)
	}
	assert.Equal(t, "丁", b.Palace(2).HeavenStem)
	assert.Equal(t, "戊", b.Palace(2).LodgedStem)

	assert.True(t, b.Palace(8).Void)
	assert.True(t, b.Palace(3).Void)
	assert.True(t, b.Palace(8).Horse)
	assert.False(t, b.Palace(1).Void)
}

func TestBuildMovesStarsAndGates(t *testing.T) {
	layout := Build(yang5, createTestPillar(t, "壬寅"))

	assert.Equal(t, 8, layout.LeadPalace)
	assert.Equal(t, "任", layout.LeadStar)
	assert.Equal(t, "生", layout.LeadGate)
	assert.Equal(t, 7, layout.GatePalace)
	assert.Equal(t, 9, layout.StarPalace)

	b := layout.Board
	assert.Equal(t, map[int]string{1: "芮", 2: "沖", 3: "心", 4: "蓬", 5: "禽", 6: "英", 7: "輔", 8: "柱", 9: "任"},
		b.Layer(func(e domain.PalaceEntry) string { return e.Star }))
	assert.Equal(t, map[int]string{1: "丁", 2: "丙", 3: "己", 4: "癸", 6: "壬", 7: "乙", 8: "庚", 9: "辛"},
		b.Layer(func(e domain.PalaceEntry) string { return e.HeavenStem }))
	assert.Equal(t, "戊", b.Palace(1).LodgedStem)
	assert.Equal(t, "值符", b.Palace(9).Deity)

	// 甲午 decad: 辰巳 are void, both in Xun.
	assert.True(t, b.Palace(4).Void)
	assert.True(t, b.Palace(2).Horse)
}

func TestBuildYinCounterClockwise(t *testing.T) {
	layout := Build(domain.Bureau{Number: 3, Polarity: domain.Yin}, createTestPillar(t, "己丑"))

	assert.Equal(t, 1, layout.LeadPalace)
	assert.Equal(t, "蓬", layout.LeadStar)
	assert.Equal(t, "休", layout.LeadGate)
	assert.Equal(t, 2, layout.GatePalace)
	assert.Equal(t, 2, layout.StarPalace)

	b := layout.Board
	assert.Equal(t, map[int]string{1: "玄武", 2: "值符", 3: "六合", 4: "太陰", 6: "九地", 7: "九天", 8: "白虎", 9: "螣蛇"},
		b.Layer(func(e domain.PalaceEntry) string { return e.Deity }))
	assert.Equal(t, "己丙", b.Palace(3).HeavenStem+b.Palace(3).LodgedStem)
}

func TestBuildFuyin(t *testing.T) {
	layout := Build(domain.Bureau{Number: 9, Polarity: domain.Yin}, createTestPillar(t, "甲子"))
	for n := 1; n <= 9; n++ {
		e := layout.Board.Palace(n)
		assert.Equal(t, HomeStar(n), e.Star)
		if n != Centre {
			assert.Equal(t, HomeGate(n), e.Gate)
			assert.Equal(t, e.EarthStem, e.HeavenStem)
		}
	}
}

func TestBuildCentreLead(t *testing.T) {
	// 陽遁五局 seats 戊 in the centre, so the 甲子 decad leads from 5.
	layout := Build(yang5, createTestPillar(t, "乙丑"))
	assert.Equal(t, Centre, layout.LeadPalace)
	assert.Equal(t, "禽", layout.LeadStar)
	assert.Equal(t, "死", layout.LeadGate)
	assert.NotEqual(t, Centre, layout.GatePalace)
	assert.NotEqual(t, Centre, layout.StarPalace)
}

func TestBuildInvariants(t *testing.T) {
	for _, pol := range []domain.Polarity{domain.Yang, domain.Yin} {
		for num := 1; num <= 9; num++ {
			for i := 0; i < 60; i++ {
				b := domain.Bureau{Number: num, Polarity: pol}
				layout := Build(b, ganzhi.New(i))

				gates := layout.Board.Layer(func(e domain.PalaceEntry) string { return e.Gate })
				stars := layout.Board.Layer(func(e domain.PalaceEntry) string { return e.Star })
				deities := layout.Board.Layer(func(e domain.PalaceEntry) string { return e.Deity })
				require.Len(t, gates, 8)
				require.Len(t, stars, 9)
				require.Len(t, deities, 8)
				assert.Empty(t, gates[Centre])
				assert.Equal(t, "值符", deities[layout.StarPalace])
				assert.Equal(t, layout.LeadGate, gates[layout.GatePalace])
			}
		}
	}
}

func TestBuildDay(t *testing.T) {
	b := domain.Bureau{Number: 4, Polarity: domain.Yang}
	layout := BuildDay(b, ganzhi.New(52))

	assert.Equal(t, 2, layout.LeadPalace)
	assert.Equal(t, map[int]string{2: "太乙", 3: "攝提", 4: "軒轅", 5: "招搖", 6: "天符", 7: "青龍", 8: "咸池", 9: "太陰", 1: "天乙"},
		layout.Board.Layer(func(e domain.PalaceEntry) string { return e.Star }))
	assert.Equal(t, map[int]string{2: "休", 7: "生", 6: "傷", 1: "杜", 8: "景", 3: "死", 4: "驚", 9: "開"},
		layout.Board.Layer(func(e domain.PalaceEntry) string { return e.Gate }))
}

func TestBuildDayYinRunsBackward(t *testing.T) {
	b := domain.Bureau{Number: 6, Polarity: domain.Yin}
	layout := BuildDay(b, ganzhi.New(55))

	// 55 mod 9 = 1 step backward from 6.
	assert.Equal(t, 5, layout.LeadPalace)
	assert.Equal(t, "太乙", layout.Board.Palace(5).Star)
	assert.Equal(t, "攝提", layout.Board.Palace(4).Star)
	assert.Equal(t, "休", layout.Board.Palace(2).Gate)
	assert.Equal(t, "生", layout.Board.Palace(9).Gate)
}

func TestLookups(t *testing.T) {
	assert.Equal(t, 1, BranchPalace(0))
	assert.Equal(t, 8, BranchPalace(2))
	assert.Equal(t, 6, BranchPalace(11))
	assert.Equal(t, ganzhi.Branch(2), Horse(0))
	assert.Equal(t, ganzhi.Branch(5), Horse(11))
	assert.Equal(t, "乾", Trigram(6))
	assert.Equal(t, "西南", Direction(2))
}
