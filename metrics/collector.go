package metrics

import (
	"sync/atomic"
	"time"

	"autopylot/game"
)

type MatchMetric struct {
	StartTime  time.Time
	Duration   time.Duration
	Turns      int
	Launches   [2]int // Per player, player 1 first
	Rejections [2]int // Per player, player 1 first
}

type Collector interface {
	Start()
	AddLaunch(player game.Player)
	AddRejection(player game.Player)
	Complete(turns int) MatchMetric
}

type collector struct {
	startTime  time.Time
	launches   [2]atomic.Int32
	rejections [2]atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	for i := range m.launches {
		m.launches[i].Store(0)
		m.rejections[i].Store(0)
	}
}

func (m *collector) AddLaunch(player game.Player) {
	if player.IsPlayer() {
		m.launches[player-1].Add(1)
	}
}

func (m *collector) AddRejection(player game.Player) {
	if player.IsPlayer() {
		m.rejections[player-1].Add(1)
	}
}

func (m *collector) Complete(turns int) MatchMetric {
	metric := MatchMetric{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Turns:     turns,
	}
	for i := range m.launches {
		metric.Launches[i] = int(m.launches[i].Load())
		metric.Rejections[i] = int(m.rejections[i].Load())
	}
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                          {}
func (m *dummyCollector) AddLaunch(player game.Player)    {}
func (m *dummyCollector) AddRejection(player game.Player) {}
func (m *dummyCollector) Complete(turns int) MatchMetric  { return MatchMetric{Turns: turns} }
