// Package domain defines the normalized types for Qimen Dunjia charts.
// These types carry the results of chart construction independent of how the
// calendar data was obtained or how the chart is rendered.
package domain

import (
	"fmt"
	"time"
)

// ChinaStandardTime is the zone every Moment is interpreted in.
var ChinaStandardTime = time.FixedZone("CST", 8*60*60)

// Moment is the calendar instant a chart is cast for.
type Moment struct {
	Year   int `json:"year" yaml:"year" toml:"year"`
	Month  int `json:"month" yaml:"month" toml:"month"`
	Day    int `json:"day" yaml:"day" toml:"day"`
	Hour   int `json:"hour" yaml:"hour" toml:"hour"`
	Minute int `json:"minute" yaml:"minute" toml:"minute"`
}

// MomentOf converts a time into a Moment in China Standard Time.
func MomentOf(t time.Time) Moment {
	t = t.In(ChinaStandardTime)
	return Moment{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Hour: t.Hour(), Minute: t.Minute()}
}

// Time returns the Moment as a time.Time in China Standard Time.
func (m Moment) Time() time.Time {
	return time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, 0, 0, ChinaStandardTime)
}

// String formats the moment as "2006-01-02 15:04".
func (m Moment) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", m.Year, m.Month, m.Day, m.Hour, m.Minute)
}

// MomentLayout is the text form of a Moment.
const MomentLayout = "2006-01-02 15:04"

// ParseMoment parses a moment written as "2006-01-02 15:04" in China
// Standard Time.
func ParseMoment(s string) (Moment, error) {
	t, err := time.ParseInLocation(MomentLayout, s, ChinaStandardTime)
	if err != nil {
		return Moment{}, fmt.Errorf("parse moment %q: %w", s, err)
	}
	return MomentOf(t), nil
}

// Method selects the bureau placement method for hour and minute charts.
type Method int

const (
	// PatchMethod is 拆補: the calendar solar term governs the bureau.
	PatchMethod Method = 1
	// IntercalaryMethod is 置閏: the term is aligned to the Upper-Yuan head day.
	IntercalaryMethod Method = 2
)

// Valid reports whether m is one of the two known methods.
func (m Method) Valid() bool {
	return m == PatchMethod || m == IntercalaryMethod
}

// Label returns the traditional name of the method.
func (m Method) Label() string {
	switch m {
	case PatchMethod:
		return "拆補"
	case IntercalaryMethod:
		return "置閏"
	default:
		return ""
	}
}

// Polarity is the yin/yang half of the solar year a bureau belongs to.
type Polarity int

const (
	Yang Polarity = iota // 陽遁: 冬至 to 芒種
	Yin                  // 陰遁: 夏至 to 大雪
)

// Label returns 陽遁 or 陰遁.
func (p Polarity) Label() string {
	if p == Yin {
		return "陰遁"
	}
	return "陽遁"
}

// Yuan is one of the three five-day bands of a solar term.
type Yuan int

const (
	UpperYuan Yuan = iota
	MiddleYuan
	LowerYuan
)

var yuanLabels = [3]string{"上元", "中元", "下元"}

// Label returns 上元, 中元 or 下元.
func (y Yuan) Label() string {
	if y < UpperYuan || y > LowerYuan {
		return ""
	}
	return yuanLabels[y]
}

// Bureau is the numbered starting configuration of a chart.
type Bureau struct {
	Number   int      `json:"number" yaml:"number" toml:"number"`
	Polarity Polarity `json:"polarity" yaml:"polarity" toml:"polarity"`
	Yuan     Yuan     `json:"yuan" yaml:"yuan" toml:"yuan"`
}

var chineseNumerals = [10]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// Label formats the bureau without yuan, e.g. 陽遁五局.
func (b Bureau) Label() string {
	if b.Number < 1 || b.Number > 9 {
		return ""
	}
	return b.Polarity.Label() + chineseNumerals[b.Number] + "局"
}

// FullLabel formats the bureau with its yuan, e.g. 陽遁五局下元.
func (b Bureau) FullLabel() string {
	return b.Label() + b.Yuan.Label()
}

// SolarTerm is a named solar term and the instant it begins.
type SolarTerm struct {
	Name  string    `json:"name" yaml:"name" toml:"name"`
	Start time.Time `json:"start" yaml:"start" toml:"start"`
}

// GanZhi holds the four pillars of a moment plus the 刻 pillar.
type GanZhi struct {
	Year   string `json:"year" yaml:"year" toml:"year"`
	Month  string `json:"month" yaml:"month" toml:"month"`
	Day    string `json:"day" yaml:"day" toml:"day"`
	Hour   string `json:"hour" yaml:"hour" toml:"hour"`
	Minute string `json:"minute" yaml:"minute" toml:"minute"`
}

// String joins the year, month, day and hour pillars, e.g. 甲辰年丙子月戊寅日壬子時.
func (g GanZhi) String() string {
	return g.Year + "年" + g.Month + "月" + g.Day + "日" + g.Hour + "時"
}

// PalaceEntry is everything seated on one palace of the board.
type PalaceEntry struct {
	Palace     int    `json:"palace" yaml:"palace" toml:"palace"`
	Trigram    string `json:"trigram" yaml:"trigram" toml:"trigram"`
	HeavenStem string `json:"heaven_stem,omitempty" yaml:"heaven_stem,omitempty" toml:"heaven_stem,omitempty"`
	LodgedStem string `json:"lodged_stem,omitempty" yaml:"lodged_stem,omitempty" toml:"lodged_stem,omitempty"` // centre stem riding with 天芮
	EarthStem  string `json:"earth_stem,omitempty" yaml:"earth_stem,omitempty" toml:"earth_stem,omitempty"`
	Star       string `json:"star,omitempty" yaml:"star,omitempty" toml:"star,omitempty"`
	Gate       string `json:"gate,omitempty" yaml:"gate,omitempty" toml:"gate,omitempty"`
	Deity      string `json:"deity,omitempty" yaml:"deity,omitempty" toml:"deity,omitempty"`
	Void       bool   `json:"void,omitempty" yaml:"void,omitempty" toml:"void,omitempty"`
	Horse      bool   `json:"horse,omitempty" yaml:"horse,omitempty" toml:"horse,omitempty"`
}

// Board holds the nine palaces in numeric order: palace n lives at index n-1.
type Board [9]PalaceEntry

// Palace returns the entry of palace n (1-9).
func (b Board) Palace(n int) PalaceEntry {
	return b[n-1]
}

// Set replaces the entry of palace n (1-9).
func (b *Board) Set(n int, e PalaceEntry) {
	b[n-1] = e
}

// Layer projects one field of every palace into a palace -> value map.
// Palaces with an empty value are omitted.
func (b Board) Layer(field func(PalaceEntry) string) map[int]string {
	out := make(map[int]string, 9)
	for i, e := range b {
		if v := field(e); v != "" {
			out[i+1] = v
		}
	}
	return out
}

// HourChart is the 時家奇門 chart (`pan`).
type HourChart struct {
	Method    string    `json:"method" yaml:"method" toml:"method"` // 拆補 or 置閏
	Moment    Moment    `json:"moment" yaml:"moment" toml:"moment"`
	GanZhi    GanZhi    `json:"ganzhi" yaml:"ganzhi" toml:"ganzhi"`
	Pillar    string    `json:"pillar" yaml:"pillar" toml:"pillar"`             // pillar driving the board
	DecadHead string    `json:"decad_head" yaml:"decad_head" toml:"decad_head"` // e.g. 甲辰壬
	Void      [2]string `json:"void" yaml:"void" toml:"void"`
	BureauDay string    `json:"bureau_day" yaml:"bureau_day" toml:"bureau_day"` // 符頭 + yuan
	Bureau    Bureau    `json:"bureau" yaml:"bureau" toml:"bureau"`
	SolarTerm SolarTerm `json:"solar_term" yaml:"solar_term" toml:"solar_term"`
	LeadStar  string    `json:"lead_star" yaml:"lead_star" toml:"lead_star"` // 值符
	LeadGate  string    `json:"lead_gate" yaml:"lead_gate" toml:"lead_gate"` // 值使
	Board     Board     `json:"board" yaml:"board" toml:"board"`
}

// BureauLabel returns the bureau with its yuan, e.g. 陽遁五局下元.
func (c HourChart) BureauLabel() string { return c.Bureau.FullLabel() }

// HeavenPlate returns the heaven stem of every palace.
func (c HourChart) HeavenPlate() map[int]string {
	return c.Board.Layer(func(e PalaceEntry) string { return e.HeavenStem + e.LodgedStem })
}

// EarthPlate returns the earth stem of every palace.
func (c HourChart) EarthPlate() map[int]string {
	return c.Board.Layer(func(e PalaceEntry) string { return e.EarthStem })
}

// Gates returns the gate seated on every palace.
func (c HourChart) Gates() map[int]string {
	return c.Board.Layer(func(e PalaceEntry) string { return e.Gate })
}

// Stars returns the star seated on every palace.
func (c HourChart) Stars() map[int]string {
	return c.Board.Layer(func(e PalaceEntry) string { return e.Star })
}

// Deities returns the deity seated on every palace.
func (c HourChart) Deities() map[int]string {
	return c.Board.Layer(func(e PalaceEntry) string { return e.Deity })
}

// MinuteChart is the 刻家奇門 chart (`pan_minute`). It has the shape of an
// hour chart with the 刻 pillar driving the board.
type MinuteChart struct {
	HourChart `yaml:",inline"`
}

// DayChart is the 金函玉鏡 day chart (`gpan`).
type DayChart struct {
	Moment    Moment    `json:"moment" yaml:"moment" toml:"moment"`
	GanZhi    GanZhi    `json:"ganzhi" yaml:"ganzhi" toml:"ganzhi"`
	Pillar    string    `json:"pillar" yaml:"pillar" toml:"pillar"`
	Void      [2]string `json:"void" yaml:"void" toml:"void"`
	Bureau    Bureau    `json:"bureau" yaml:"bureau" toml:"bureau"`
	SolarTerm SolarTerm `json:"solar_term" yaml:"solar_term" toml:"solar_term"`
	Board     Board     `json:"board" yaml:"board" toml:"board"`
}

// BureauLabel returns the bureau without yuan, e.g. 陽遁四局.
func (c DayChart) BureauLabel() string { return c.Bureau.Label() }

// Stars returns the day star seated on every palace.
func (c DayChart) Stars() map[int]string {
	return c.Board.Layer(func(e PalaceEntry) string { return e.Star })
}

// Gates returns the gate seated on every palace.
func (c DayChart) Gates() map[int]string {
	return c.Board.Layer(func(e PalaceEntry) string { return e.Gate })
}

// Overall bundles the three chart variants for one moment.
type Overall struct {
	Day    DayChart    `json:"day" yaml:"day" toml:"day"`          // 金函玉鏡(日家奇門)
	Hour   HourChart   `json:"hour" yaml:"hour" toml:"hour"`       // 時家奇門
	Minute MinuteChart `json:"minute" yaml:"minute" toml:"minute"` // 刻家奇門
}

// Tianyi is the 天乙貴人 marker for the moment.
type Tianyi struct {
	Branch    string `json:"branch" yaml:"branch" toml:"branch"`
	Palace    int    `json:"palace" yaml:"palace" toml:"palace"`
	Direction string `json:"direction" yaml:"direction" toml:"direction"`
	Daytime   bool   `json:"daytime" yaml:"daytime" toml:"daytime"` // 陽貴 when true, 陰貴 otherwise
}

// YearOrigin places the solar year in the 180-year 三元 cycle.
type YearOrigin struct {
	Index  int    `json:"index" yaml:"index" toml:"index"`    // 0-179 within the cycle
	Yuan   Yuan   `json:"yuan" yaml:"yuan" toml:"yuan"`       // 上元 / 中元 / 下元
	Period int    `json:"period" yaml:"period" toml:"period"` // 九運 period 1-9
	Pillar string `json:"pillar" yaml:"pillar" toml:"pillar"` // year pillar
}

// Label formats the origin, e.g. 下元九運.
func (y YearOrigin) Label() string {
	if y.Period < 1 || y.Period > 9 {
		return y.Yuan.Label()
	}
	return y.Yuan.Label() + chineseNumerals[y.Period] + "運"
}
