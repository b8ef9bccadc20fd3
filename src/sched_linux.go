//go:build linux

package dsdneo

import (
	"golang.org/x/sys/unix"
)

// PinDemodThread raises the calling goroutine's OS thread to SCHED_FIFO
// and restricts it to the given CPU set, the same real-time scheduling
// posture the teacher's audio-callback thread wants but never had a
// library for; golang.org/x/sys/unix provides the raw syscalls directly.
//
// Callers must wrap the goroutine in runtime.LockOSThread first so the
// scheduling change stays attached to the same OS thread.
func PinDemodThread(priority int, cpus []int) error {
	if err := unix.Sched_setscheduler(0, unix.SCHED_FIFO, &unix.SchedParam{Priority: int32(priority)}); err != nil {
		return err
	}
	var set unix.CPUSet
	set.Zero()
	for _, c := range cpus {
		set.Set(c)
	}
	return unix.SchedSetaffinity(0, &set)
}
