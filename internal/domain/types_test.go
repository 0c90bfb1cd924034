package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoment(t *testing.T) {
	t.Run("round trips through String", func(t *testing.T) {
		m, err := ParseMoment("2024-01-14 23:20")
		require.NoError(t, err)
		assert.Equal(t, Moment{Year: 2024, Month: 1, Day: 14, Hour: 23, Minute: 20}, m)
		assert.Equal(t, "2024-01-14 23:20", m.String())
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		_, err := ParseMoment("2024-02-30 10:00")
		assert.Error(t, err)
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		_, err := ParseMoment("2024/01/14 23:20")
		assert.Error(t, err)
	})
}

func TestMomentOf(t *testing.T) {
	utc := time.Date(2024, 1, 14, 15, 20, 0, 0, time.UTC)
	m := MomentOf(utc)
	assert.Equal(t, Moment{Year: 2024, Month: 1, Day: 14, Hour: 23, Minute: 20}, m)
	assert.True(t, m.Time().Equal(utc))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "拆補", PatchMethod.Label())
	assert.Equal(t, "置閏", IntercalaryMethod.Label())
	assert.Empty(t, Method(3).Label())
	assert.False(t, Method(0).Valid())

	b := Bureau{Number: 5, Polarity: Yang, Yuan: LowerYuan}
	assert.Equal(t, "陽遁五局", b.Label())
	assert.Equal(t, "陽遁五局下元", b.FullLabel())
	assert.Equal(t, "陰遁九局上元", Bureau{Number: 9, Polarity: Yin, Yuan: UpperYuan}.FullLabel())
	assert.Empty(t, Bureau{}.Label())

	assert.Equal(t, "下元八運", YearOrigin{Yuan: LowerYuan, Period: 8}.Label())
	assert.Equal(t, "中元", YearOrigin{Yuan: MiddleYuan}.Label())
}
