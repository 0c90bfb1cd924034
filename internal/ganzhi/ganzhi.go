// Package ganzhi implements arithmetic over the sixty-term stem-branch cycle:
// pillar lookup, decad heads and void branches.
package ganzhi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLabel indicates a string that is not a stem-branch label.
	ErrUnknownLabel = errors.New("unknown stem-branch label")
	// ErrParity indicates a stem and branch of different parity, which never pair.
	ErrParity = errors.New("stem and branch parity differ")
)

// Stem is one of the ten Heavenly Stems, 甲=0 .. 癸=9.
type Stem int

// Branch is one of the twelve Earthly Branches, 子=0 .. 亥=11.
type Branch int

var (
	stemNames   = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
	branchNames = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
)

// Jia is 甲, the stem that hides behind the 六儀 on a chart.
const Jia Stem = 0

// String returns the stem character.
func (s Stem) String() string { return stemNames[mod(int(s), 10)] }

// String returns the branch character.
func (b Branch) String() string { return branchNames[mod(int(b), 12)] }

// ParseStem looks up a stem by character.
func ParseStem(s string) (Stem, error) {
	for i, name := range stemNames {
		if name == s {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("%w: stem %q", ErrUnknownLabel, s)
}

// ParseBranch looks up a branch by character.
func ParseBranch(s string) (Branch, error) {
	for i, name := range branchNames {
		if name == s {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("%w: branch %q", ErrUnknownLabel, s)
}

// Pillar is a position in the sixty-term cycle, 甲子=0 .. 癸亥=59.
type Pillar int

// New returns the pillar for a cycle index, reduced modulo 60.
func New(index int) Pillar { return Pillar(mod(index, 60)) }

// FromStemBranch returns the pillar pairing stem s with branch b.
func FromStemBranch(s Stem, b Branch) (Pillar, error) {
	si, bi := mod(int(s), 10), mod(int(b), 12)
	if si%2 != bi%2 {
		return 0, fmt.Errorf("%w: %s%s", ErrParity, Stem(si), Branch(bi))
	}
	// Solve i ≡ si (mod 10), i ≡ bi (mod 12).
	for i := si; i < 60; i += 10 {
		if i%12 == bi {
			return Pillar(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s%s", ErrParity, Stem(si), Branch(bi))
}

// ParsePillar looks up a two-character label such as 甲子.
func ParsePillar(label string) (Pillar, error) {
	r := []rune(label)
	if len(r) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	s, err := ParseStem(string(r[0]))
	if err != nil {
		return 0, err
	}
	b, err := ParseBranch(string(r[1]))
	if err != nil {
		return 0, err
	}
	return FromStemBranch(s, b)
}

// Index returns the cycle index in [0,60).
func (p Pillar) Index() int { return int(p) }

// Stem returns the heavenly stem of the pillar.
func (p Pillar) Stem() Stem { return Stem(int(p) % 10) }

// Branch returns the earthly branch of the pillar.
func (p Pillar) Branch() Branch { return Branch(int(p) % 12) }

// String returns the two-character label.
func (p Pillar) String() string { return p.Stem().String() + p.Branch().String() }

// Add steps n positions around the cycle (n may be negative).
func (p Pillar) Add(n int) Pillar { return New(int(p) + n) }

// DecadHead returns the 甲 pillar opening the decad (旬首) p belongs to.
func (p Pillar) DecadHead() Pillar { return Pillar(int(p) - int(p)%10) }

// DecadOffset returns the position of p inside its decad, 0-9.
func (p Pillar) DecadOffset() int { return int(p) % 10 }

// voidByDecad lists the void branches of each decad, in cycle order
// 甲子 甲戌 甲申 甲午 甲辰 甲寅.
var voidByDecad = [6][2]Branch{
	{10, 11}, // 戌亥
	{8, 9},   // 申酉
	{6, 7},   // 午未
	{4, 5},   // 辰巳
	{2, 3},   // 寅卯
	{0, 1},   // 子丑
}

// Void returns the two branches (旬空) absent from p's decad.
func (p Pillar) Void() [2]Branch {
	return voidByDecad[int(p)/10]
}

// yiByDecad is the 六儀 stem hiding each decad head: 甲子戊 甲戌己 甲申庚 甲午辛 甲辰壬 甲寅癸.
var yiByDecad = [6]Stem{4, 5, 6, 7, 8, 9}

// Yi returns the stem that stands in for the hidden 甲 of p's decad.
func (p Pillar) Yi() Stem {
	return yiByDecad[int(p)/10]
}

// DecadLabel formats the decad head with its 儀, e.g. 甲辰壬.
func (p Pillar) DecadLabel() string {
	return p.DecadHead().String() + p.Yi().String()
}

// EffectiveStem returns the pillar's stem, replacing 甲 with its hiding 儀.
func (p Pillar) EffectiveStem() Stem {
	if p.Stem() == Jia {
		return p.Yi()
	}
	return p.Stem()
}

// BranchesOfDecad returns the ten branches used by p's decad, in order.
func (p Pillar) BranchesOfDecad() []Branch {
	head := p.DecadHead()
	out := make([]Branch, 10)
	for i := range out {
		out[i] = head.Add(i).Branch()
	}
	return out
}

// HourBranch maps a clock hour to its two-hour branch; 23:00 opens 子.
func HourBranch(hour int) Branch {
	return Branch(mod((hour+1)/2, 12))
}

// HourPillar returns the hour pillar for a day pillar and a clock hour.
// The day pillar must already be the day the 子 hour belongs to.
func HourPillar(day Pillar, hour int) Pillar {
	b := HourBranch(hour)
	// 甲己 days start at 甲子, 乙庚 at 丙子, 丙辛 at 戊子, 丁壬 at 庚子, 戊癸 at 壬子.
	first := Stem((int(day.Stem()) % 5) * 2)
	p, _ := FromStemBranch(Stem(mod(int(first)+int(b), 10)), b)
	return p
}

// MonthPillar returns the month pillar for a year stem and a month branch.
func MonthPillar(yearStem Stem, monthBranch Branch) Pillar {
	// 甲己 years start 寅 month at 丙寅, then 戊寅 庚寅 壬寅 甲寅.
	first := Stem(mod((int(yearStem)%5)*2+2, 10))
	steps := mod(int(monthBranch)-2, 12)
	p, _ := FromStemBranch(Stem(mod(int(first)+steps, 10)), monthBranch)
	return p
}

// YearPillar returns the pillar of a solar year; 4 CE is 甲子.
func YearPillar(year int) Pillar {
	return New(year - 4)
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
