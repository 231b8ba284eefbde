// Command seatdemo is a minimal CLI harness wiring the seat engine to a
// real evdev event source and uinput virtual-device factory, for manual
// smoke-testing on a Linux box with /dev/input access. It is not a
// compositor: it only prints the outbound event stream.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/seatengine/internal/config"
	"github.com/bnema/seatengine/internal/logger"
	"github.com/bnema/seatengine/internal/seat"
	"github.com/bnema/seatengine/internal/source"
	"github.com/bnema/seatengine/internal/vinput"
	"github.com/spf13/cobra"
)

var (
	uinputPath string
	pollTimeoutMS int
)

func main() {
	root := &cobra.Command{
		Use: "seatdemo",
		Short: "Run the seat engine against real input devices and print outbound events",
		RunE: run,
	}
	root.Flags().StringVar(&uinputPath, "uinput-path", "/dev/uinput", "path to the uinput device node")
	root.Flags().IntVar(&pollTimeoutMS, "poll-timeout-ms", 250, "poller wakeup interval for context cancellation checks")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "seatdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	src, err := source.Open()
	if err != nil {
		return fmt.Errorf("open event source: %w", err)
	}
	defer src.Close()

	added, err := src.ScanExisting()
	if err != nil {
		return fmt.Errorf("scan /dev/input: %w", err)
	}
	for _, dev := range added {
		if config.ExcludeDevice(dev.Path()) {
			continue
		}
		logger.Infof("seatdemo: registered device %s (%s)", dev.Path(), dev.Kind())
	}

	s := seat.New(seat.Config{
		ID: "seat0",
		Source: src,
		Poller: source.NewUnixPoller(pollTimeoutMS),
		XKB: nil, // simulated xkb state; a real compositor supplies its own xkbcommon binding
		VDevFactory: vinput.NewUinputFactory(uinputPath),
		Observer: &demoObserver{},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go drainEvents(ctx, s)

	logger.Info("seatdemo: dispatch loop starting, ctrl-C to stop")
	if err := s.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dispatch loop: %w", err)
	}
	return nil
}

// drainEvents periodically empties the seat's outbound queue and logs a
// one-line summary per event, standing in for a real compositor's event
// consumer.
func drainEvents(ctx context.Context, s *seat.Seat) {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, ev := range s.Events() {
				logger.Debugf("seatdemo: event kind=%v", ev.EventKind())
			}
		}
	}
}

// demoObserver logs the signals the outbound queue doesn't carry.
// Embedding NoopObserver picks up ToolChanged, whose payload type is
// unexported by design (its opaque-collaborator treatment extends to
// this notification).
type demoObserver struct {
	seat.NoopObserver
}

func (demoObserver) ModsStateChanged(mods uint32) {
	logger.Debugf("seatdemo: mods changed: %#x", mods)
}

func (demoObserver) TouchModeChanged(touchMode bool) {
	logger.Infof("seatdemo: touch mode changed: %v", touchMode)
}

func (demoObserver) Bell() {
	logger.Info("seatdemo: bell")
}

func (demoObserver) A11yToggleKey(key uint32, held bool) {
	logger.Infof("seatdemo: accessibility toggle key %d held=%v", key, held)
}
