package board

import "github.com/h0rv/qimen/internal/ganzhi"

// Centre is the middle palace. It lodges in Kun (2) whenever something has
// to move out of it.
const (
	Centre = 5
	Kun    = 2
)

// ring lists the eight outer palaces clockwise, starting from Kan.
var ring = [8]int{1, 8, 3, 4, 9, 2, 7, 6}

// ringPos is the inverse of ring; the centre has no position.
var ringPos = map[int]int{1: 0, 8: 1, 3: 2, 4: 3, 9: 4, 2: 5, 7: 6, 6: 7}

var trigrams = [10]string{"", "坎", "坤", "震", "巽", "中", "乾", "兌", "艮", "離"}

// homeStars and homeGates give the resident star and gate of each palace.
var (
	homeStars = [10]string{"", "蓬", "芮", "沖", "輔", "禽", "心", "柱", "任", "英"}
	homeGates = [10]string{"", "休", "死", "傷", "杜", "", "開", "驚", "生", "景"}
)

// earthOrder is the seating order of the six 儀 and three 奇 on the earth plate.
var earthOrder = [9]ganzhi.Stem{4, 5, 6, 7, 8, 9, 3, 2, 1} // 戊己庚辛壬癸丁丙乙

var deities = [8]string{"值符", "螣蛇", "太陰", "六合", "白虎", "玄武", "九地", "九天"}

// Day-chart stars and the gate order of the 金函玉鏡 board.
var (
	dayStars = [9]string{"太乙", "攝提", "軒轅", "招搖", "天符", "青龍", "咸池", "太陰", "天乙"}
	dayGates = [8]string{"休", "生", "傷", "杜", "景", "死", "驚", "開"}
)

// branchPalace maps each earthly branch to the palace it sits in.
var branchPalace = [12]int{
	1, // 子
	8, // 丑
	8, // 寅
	3, // 卯
	4, // 辰
	4, // 巳
	9, // 午
	2, // 未
	2, // 申
	7, // 酉
	6, // 戌
	6, // 亥
}

// horseBranch is the 驛馬 of each branch's triad: 申子辰→寅, 寅午戌→申,
// 巳酉丑→亥, 亥卯未→巳.
var horseBranch = [12]ganzhi.Branch{2, 11, 8, 5, 2, 11, 8, 5, 2, 11, 8, 5}

// Trigram returns the trigram name of palace n.
func Trigram(n int) string { return trigrams[n] }

// HomeStar returns the resident star of palace n.
func HomeStar(n int) string { return homeStars[n] }

// HomeGate returns the resident gate of palace n; the centre borrows Kun's 死.
func HomeGate(n int) string {
	if n == Centre {
		return homeGates[Kun]
	}
	return homeGates[n]
}

// BranchPalace returns the palace a branch sits in.
func BranchPalace(b ganzhi.Branch) int {
	return branchPalace[int(b)%12]
}

// Horse returns the post-horse branch for b.
func Horse(b ganzhi.Branch) ganzhi.Branch {
	return horseBranch[int(b)%12]
}

// Direction returns the compass direction of palace n.
func Direction(n int) string {
	return directions[n]
}

var directions = [10]string{"", "北", "西南", "東", "東南", "中", "西北", "西", "東北", "南"}

// lodge moves the centre to Kun.
func lodge(n int) int {
	if n == Centre {
		return Kun
	}
	return n
}

// fly steps n palaces through the Lo Shu order 1..9, forward or backward.
func fly(from, n int, forward bool) int {
	if !forward {
		n = -n
	}
	return mod(from-1+n, 9) + 1
}

// turn moves an outer palace steps positions around the ring.
func turn(palace, steps int) int {
	return ring[mod(ringPos[palace]+steps, 8)]
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
