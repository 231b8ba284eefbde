package source

import (
	"context"

	"golang.org/x/sys/unix"
)

// UnixPoller implements seat.Poller over golang.org/x/sys/unix.Poll,
// woken periodically to notice context cancellation (poll itself has no
// cancellation primitive on Linux without an eventfd, which the demo
// harness doesn't need).
type UnixPoller struct {
	pollTimeoutMS int
}

// NewUnixPoller returns a poller that checks ctx every pollTimeoutMS
// milliseconds while waiting for the fd to become readable.
func NewUnixPoller(pollTimeoutMS int) *UnixPoller {
	if pollTimeoutMS <= 0 {
		pollTimeoutMS = 250
	}
	return &UnixPoller{pollTimeoutMS: pollTimeoutMS}
}

func (p *UnixPoller) Wait(ctx context.Context, fd int) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, p.pollTimeoutMS)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return false, err
		}
		if n > 0 && fds[0].Revents&unix.POLLIN != 0 {
			return true, nil
		}
	}
}
