// Package progress はファイル単位の検査進捗と残り時間の見積もりを扱います。
package progress

import (
	"math"
	"sync"
	"time"
)

type Stage string

const (
	StageDiscover Stage = "discover"
	StageLint     Stage = "lint"
)

type Snapshot struct {
	Stage     Stage         `json:"stage"`
	Total     int           `json:"total"`
	Done      int           `json:"done"`
	Remaining int           `json:"remaining"`
	Findings  int           `json:"findings"`
	RateEMA   float64       `json:"rate_per_sec"`
	ETA       time.Duration `json:"eta"`
	Warmup    bool          `json:"warmup"`
	StartedAt time.Time     `json:"started_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

type Config struct {
	Alpha          float64
	WarmupSamples  int
	WarmupDuration time.Duration
	NotifyInterval time.Duration
}

// Estimator tracks an EMA of the completion rate. Safe for concurrent use.
type Estimator struct {
	mu         sync.Mutex
	cfg        Config
	now        func() time.Time
	start      time.Time
	lastUpdate time.Time
	lastNotify time.Time
	stage      Stage
	total      int
	done       int
	findings   int
	ema        float64
}

func DefaultConfig() Config {
	return Config{
		Alpha:          0.2,
		WarmupSamples:  20,
		WarmupDuration: time.Second,
		NotifyInterval: 100 * time.Millisecond,
	}
}

func NewEstimator(total int, cfg Config) *Estimator {
	base := DefaultConfig()
	if cfg.Alpha > 0 {
		base.Alpha = cfg.Alpha
	}
	if cfg.WarmupSamples > 0 {
		base.WarmupSamples = cfg.WarmupSamples
	}
	if cfg.WarmupDuration > 0 {
		base.WarmupDuration = cfg.WarmupDuration
	}
	if cfg.NotifyInterval > 0 {
		base.NotifyInterval = cfg.NotifyInterval
	}
	now := time.Now()
	return &Estimator{
		cfg:        base,
		now:        time.Now,
		start:      now,
		lastUpdate: now,
		stage:      StageDiscover,
		total:      total,
	}
}

func (e *Estimator) SetTotal(total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.total = total
}

func (e *Estimator) Stage(stage Stage) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	if stage == e.stage {
		return e.snapshotLocked(now), false
	}
	e.stage = stage
	e.ema = 0
	e.lastUpdate = now
	e.lastNotify = now
	return e.snapshotLocked(now), true
}

// Advance records delta finished files. notify is true once the publish
// interval has passed or the last file is done.
func (e *Estimator) Advance(delta, findings int) (Snapshot, bool) {
	if delta <= 0 {
		return e.Snapshot(), false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	if now.Before(e.lastUpdate) {
		now = e.lastUpdate
	}
	dt := now.Sub(e.lastUpdate).Seconds()
	if dt <= 0 {
		dt = 1e-6
	}
	e.done += delta
	if findings > 0 {
		e.findings += findings
	}
	instant := float64(delta) / dt
	if math.IsNaN(instant) || math.IsInf(instant, 0) || instant < 0 {
		instant = 0
	}
	if e.ema == 0 {
		e.ema = instant
	} else {
		e.ema = e.cfg.Alpha*instant + (1-e.cfg.Alpha)*e.ema
	}
	e.lastUpdate = now
	snap := e.snapshotLocked(now)
	notify := now.Sub(e.lastNotify) >= e.cfg.NotifyInterval || snap.Remaining == 0
	if notify {
		e.lastNotify = now
	}
	return snap, notify
}

func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(e.now())
}

func (e *Estimator) Complete() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.total >= 0 && e.done < e.total {
		e.done = e.total
	}
	now := e.now()
	e.lastNotify = now
	return e.snapshotLocked(now)
}

func (e *Estimator) snapshotLocked(now time.Time) Snapshot {
	remain := e.total - e.done
	if remain < 0 {
		remain = 0
	}
	elapsed := now.Sub(e.start)
	warmReady := e.done >= e.cfg.WarmupSamples && elapsed >= e.cfg.WarmupDuration
	var eta time.Duration
	if warmReady && remain > 0 {
		eta = durationFrom(float64(remain), e.ema)
	}
	return Snapshot{
		Stage:     e.stage,
		Total:     e.total,
		Done:      e.done,
		Remaining: remain,
		Findings:  e.findings,
		RateEMA:   e.ema,
		ETA:       eta,
		Warmup:    !warmReady,
		StartedAt: e.start,
		UpdatedAt: now,
		Elapsed:   elapsed,
	}
}

func durationFrom(count, rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	seconds := count / rate
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}
	if seconds > float64(math.MaxInt64/int64(time.Second)) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}
