package sender

import "time"

// Period is the Transport's commit cadence: 1/240 s.
const Period = time.Second / 240

// spinThreshold and sleepMargin implement the hybrid wait described in
// spec.md §4.1: while more than spinThreshold remains, sleep for
// remaining-sleepMargin and re-check; once within spinThreshold, busy-poll
// the clock to close the final interval with microsecond accuracy.
const (
	spinThreshold = 200 * time.Microsecond
	sleepMargin   = 100 * time.Microsecond
)

// hybridWait blocks until deadline (a [Clock.Now] value), using a timed
// sleep to amortize CPU over most of the period and a closing spin to
// bypass kernel-scheduler granularity for the final interval.
func hybridWait(clk Clock, deadline time.Duration) {
	for {
		remaining := deadline - clk.Now()
		if remaining <= 0 {
			return
		}
		if remaining > spinThreshold {
			clk.Sleep(remaining - sleepMargin)
			continue
		}
		// Busy-poll the clock for the closing interval.
		for clk.Now() < deadline {
		}
		return
	}
}
