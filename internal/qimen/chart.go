package qimen

import (
	"fmt"

	"github.com/h0rv/qimen/internal/board"
	"github.com/h0rv/qimen/internal/calendar"
	"github.com/h0rv/qimen/internal/domain"
	"github.com/h0rv/qimen/internal/ganzhi"
	"github.com/h0rv/qimen/internal/ju"
	"go.uber.org/zap"
)

// HourChart builds the 時家奇門 chart, driven by the hour pillar.
func (e *Engine) HourChart(method domain.Method) (domain.HourChart, error) {
	return e.rotatingChart(method, e.snap.Hour, "hour")
}

// MinuteChart builds the 刻家奇門 chart. It uses the bureau of the hour chart
// and the ten-minute 刻 pillar to drive the board.
func (e *Engine) MinuteChart(method domain.Method) (domain.MinuteChart, error) {
	c, err := e.rotatingChart(method, e.snap.Ke, "minute")
	if err != nil {
		return domain.MinuteChart{}, err
	}
	return domain.MinuteChart{HourChart: c}, nil
}

func (e *Engine) rotatingChart(method domain.Method, p ganzhi.Pillar, kind string) (domain.HourChart, error) {
	if !method.Valid() {
		return domain.HourChart{}, fmt.Errorf("%w: %d", ErrInvalidMethod, int(method))
	}

	sel, err := ju.Select(ju.InputOf(e.snap), method)
	if err != nil {
		return domain.HourChart{}, fmt.Errorf("failed to select bureau: %w", err)
	}
	layout := board.Build(sel.Bureau, p)

	e.logger.Debug("chart built",
		zap.String("kind", kind),
		zap.String("method", method.Label()),
		zap.String("pillar", p.String()),
		zap.String("bureau", sel.Bureau.FullLabel()),
	)

	return domain.HourChart{
		Method:    method.Label(),
		Moment:    e.moment,
		GanZhi:    e.ganZhi(),
		Pillar:    p.String(),
		DecadHead: p.DecadLabel(),
		Void:      voidLabels(p),
		BureauDay: ju.HeadLabel(e.snap.Day),
		Bureau:    sel.Bureau,
		SolarTerm: sel.Term.Domain(),
		LeadStar:  layout.LeadStar,
		LeadGate:  layout.LeadGate,
		Board:     layout.Board,
	}, nil
}

// DayChart builds the 金函玉鏡 day chart.
func (e *Engine) DayChart() (domain.DayChart, error) {
	b, err := ju.DayBureau(calendar.ChartDay(e.snap.Instant), e.snap.Terms)
	if err != nil {
		return domain.DayChart{}, fmt.Errorf("failed to select day bureau: %w", err)
	}
	layout := board.BuildDay(b, e.snap.Day)

	e.logger.Debug("chart built",
		zap.String("kind", "day"),
		zap.String("pillar", e.snap.Day.String()),
		zap.String("bureau", b.Label()),
	)

	return domain.DayChart{
		Moment:    e.moment,
		GanZhi:    e.ganZhi(),
		Pillar:    e.snap.Day.String(),
		Void:      voidLabels(e.snap.Day),
		Bureau:    b,
		SolarTerm: e.snap.Term.Domain(),
		Board:     layout.Board,
	}, nil
}

// Overall builds the day, hour and minute charts, in that order.
func (e *Engine) Overall(method domain.Method) (domain.Overall, error) {
	if !method.Valid() {
		return domain.Overall{}, fmt.Errorf("%w: %d", ErrInvalidMethod, int(method))
	}
	day, err := e.DayChart()
	if err != nil {
		return domain.Overall{}, err
	}
	hour, err := e.HourChart(method)
	if err != nil {
		return domain.Overall{}, err
	}
	minute, err := e.MinuteChart(method)
	if err != nil {
		return domain.Overall{}, err
	}
	return domain.Overall{Day: day, Hour: hour, Minute: minute}, nil
}

func (e *Engine) ganZhi() domain.GanZhi {
	return domain.GanZhi{
		Year:   e.snap.Year.String(),
		Month:  e.snap.Month.String(),
		Day:    e.snap.Day.String(),
		Hour:   e.snap.Hour.String(),
		Minute: e.snap.Ke.String(),
	}
}

func voidLabels(p ganzhi.Pillar) [2]string {
	v := p.Void()
	return [2]string{v[0].String(), v[1].String()}
}
