package ganzhi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePillar(t *testing.T) {
	t.Run("known labels", func(t *testing.T) {
		cases := map[string]int{"甲子": 0, "乙丑": 1, "甲戌": 10, "丁丑": 13, "壬子": 48, "癸亥": 59}
		for label, want := range cases {
			p, err := ParsePillar(label)
			require.NoError(t, err, label)
			assert.Equal(t, want, p.Index(), label)
			assert.Equal(t, label, p.String())
		}
	})

	t.Run("parity mismatch", func(t *testing.T) {
		_, err := ParsePillar("甲丑")
		assert.ErrorIs(t, err, ErrParity)
	})

	t.Run("unknown characters", func(t *testing.T) {
		_, err := ParsePillar("天地")
		assert.ErrorIs(t, err, ErrUnknownLabel)

		_, err = ParsePillar("甲")
		assert.ErrorIs(t, err, ErrUnknownLabel)
	})
}

func TestPillarRoundTripsThroughStemAndBranch(t *testing.T) {
	for i := 0; i < 60; i++ {
		p := New(i)
		assert.Equal(t, Stem(i%10), p.Stem())
		assert.Equal(t, Branch(i%12), p.Branch())

		back, err := FromStemBranch(p.Stem(), p.Branch())
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}
}

func TestDecadHead(t *testing.T) {
	p, err := ParsePillar("壬子")
	require.NoError(t, err)

	assert.Equal(t, "甲辰", p.DecadHead().String())
	assert.Equal(t, 8, p.DecadOffset())
	assert.Equal(t, "壬", p.Yi().String())
	assert.Equal(t, "甲辰壬", p.DecadLabel())
}

// Every decad's void pair must be exactly the branches its ten pillars skip.
func TestVoidBranchesAreAbsentFromDecad(t *testing.T) {
	for i := 0; i < 60; i++ {
		p := New(i)
		used := map[Branch]bool{}
		for _, b := range p.BranchesOfDecad() {
			used[b] = true
		}
		require.Len(t, used, 10)

		void := p.Void()
		assert.NotEqual(t, void[0], void[1])
		for _, b := range void {
			assert.False(t, used[b], "pillar %s: void branch %s used in decad", p, b)
		}
	}
}

func TestVoidTable(t *testing.T) {
	tests := []struct {
		head string
		want string
	}{
		{"甲子", "戌亥"},
		{"甲戌", "申酉"},
		{"甲申", "午未"},
		{"甲午", "辰巳"},
		{"甲辰", "寅卯"},
		{"甲寅", "子丑"},
	}
	for _, tt := range tests {
		t.Run(tt.head, func(t *testing.T) {
			p, err := ParsePillar(tt.head)
			require.NoError(t, err)
			v := p.Void()
			assert.Equal(t, tt.want, v[0].String()+v[1].String())
		})
	}
}

func TestEffectiveStem(t *testing.T) {
	jiaWu, _ := ParsePillar("甲午")
	assert.Equal(t, "辛", jiaWu.EffectiveStem().String())

	bingYin, _ := ParsePillar("丙寅")
	assert.Equal(t, "丙", bingYin.EffectiveStem().String())
}

func TestAddWraps(t *testing.T) {
	assert.Equal(t, "甲子", New(59).Add(1).String())
	assert.Equal(t, "癸亥", New(0).Add(-1).String())
	assert.Equal(t, New(5), New(-55))
}

func TestHourBranch(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{23, "子"}, {0, "子"}, {1, "丑"}, {2, "丑"}, {11, "午"}, {12, "午"}, {21, "亥"}, {22, "亥"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HourBranch(tt.hour).String(), "hour %d", tt.hour)
	}
}

func TestHourPillar(t *testing.T) {
	tests := []struct {
		day  string
		hour int
		want string
	}{
		{"甲子", 0, "甲子"},
		{"己巳", 0, "甲子"},
		{"乙丑", 0, "丙子"},
		{"戊寅", 23, "壬子"},
		{"戊寅", 12, "戊午"},
		{"癸亥", 21, "癸亥"},
	}
	for _, tt := range tests {
		day, err := ParsePillar(tt.day)
		require.NoError(t, err)
		assert.Equal(t, tt.want, HourPillar(day, tt.hour).String(), "%s day hour %d", tt.day, tt.hour)
	}
}

func TestMonthAndYearPillar(t *testing.T) {
	// 2024 is 甲辰; its 寅 month is 丙寅 and its 子 month 丙子.
	year := YearPillar(2024)
	assert.Equal(t, "甲辰", year.String())
	assert.Equal(t, "丙寅", MonthPillar(year.Stem(), 2).String())
	assert.Equal(t, "丙子", MonthPillar(year.Stem(), 0).String())

	// 戊癸 years open with 甲寅.
	assert.Equal(t, "甲寅", MonthPillar(YearPillar(2023).Stem(), 2).String())
}
