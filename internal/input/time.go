package input

import (
	"sync/atomic"
	"time"
)

var (
	processStart     = time.Now()
	processStartUsec = processStart.UnixMicro()
	lastStamp        atomic.Int64
)

// NowTimeMicroseconds returns the current time in microseconds since the
// epoch. Successive calls never decrease: the value is derived from the
// monotonic clock reading taken at process start.
func NowTimeMicroseconds() int64 {
	return processStartUsec + time.Since(processStart).Microseconds()
}

// UniqueTimeStamp returns a process-wide strictly increasing positive value.
// Device managers stamp listener additions and opening events with it to
// decide whether a listener saw the opening of some state.
func UniqueTimeStamp() int64 {
	return lastStamp.Add(1)
}
