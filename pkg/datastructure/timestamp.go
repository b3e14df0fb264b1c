package datastructure

import "time"

// Timestamp. unix time with seconds resolution
type Timestamp int64

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// Add. sub-second parts of d are truncated
func (ts Timestamp) Add(d time.Duration) Timestamp {
	return ts + Timestamp(d/time.Second)
}

func (ts Timestamp) AddSeconds(seconds int64) Timestamp {
	return ts + Timestamp(seconds)
}

func (ts Timestamp) Sub(other Timestamp) time.Duration {
	return time.Duration(ts-other) * time.Second
}

func (ts Timestamp) Before(other Timestamp) bool {
	return ts < other
}

func (ts Timestamp) Seconds() int64 {
	return int64(ts)
}

func (ts Timestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

func (ts Timestamp) String() string {
	return ts.Time().Format("2006-01-02 15:04:05")
}
