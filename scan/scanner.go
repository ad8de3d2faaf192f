// Package scan runs a BLE advertisement scan on top of the external BLE
// stack and turns every received advertisement into a Report.
package scan

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/ble"

	"github.com/ganwell/microscan/dev"
)

// Sink receives reports as they arrive. Emit is called from the scan
// callback goroutine.
type Sink interface {
	Emit(Report) error
	Close() error
}

// Recorder tracks devices seen during the scan.
type Recorder interface {
	Observe(addr string, rssi int, name string, at time.Time)
}

// Device is the slice of the BLE stack's device surface the scanner drives.
type Device interface {
	Scan(ctx context.Context, allowDup bool, h ble.AdvHandler) error
	Stop() error
}

// Scanner owns the scan loop: it opens the device, subscribes to
// advertisements and forwards reports to the sink.
type Scanner struct {
	deviceOpts []ble.Option
	filter     ble.AdvFilter
	sink       Sink
	recorder   Recorder
	log        Logger
	dup        bool
	newDevice  func(...ble.Option) (Device, error)

	reports uint64
}

// New builds a Scanner. A sink must be configured before Run.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		dup:       true,
		log:       NewLogger(false),
		newDevice: defaultDevice,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run opens the device and scans until the context ends. Context
// cancellation and deadline expiry are a clean stop, not an error.
func (s *Scanner) Run(ctx context.Context) error {
	if s.sink == nil {
		return errors.New("scanner: no sink configured")
	}

	d, err := s.newDevice(s.deviceOpts...)
	if err != nil {
		return errors.Wrap(err, "can't init device")
	}
	defer func() {
		if err := d.Stop(); err != nil {
			s.log.Warnf("stop device: %v", err)
		}
	}()

	s.log.Info("scanning...")
	err = d.Scan(ctx, s.dup, s.handle)
	switch errors.Cause(err) {
	case nil, context.Canceled, context.DeadlineExceeded:
		return nil
	default:
		return errors.Wrap(err, "scan")
	}
}

func defaultDevice(opts ...ble.Option) (Device, error) {
	return dev.DefaultDevice(opts...)
}

// Reports returns the number of reports emitted so far.
func (s *Scanner) Reports() uint64 {
	return atomic.LoadUint64(&s.reports)
}

// handle is the advertisement callback. It must never take the process down:
// a panic in report building or in the sink is logged and dropped.
func (s *Scanner) handle(a ble.Advertisement) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("advertisement handler panic: %v", r)
		}
	}()

	if s.filter != nil && !s.filter(a) {
		return
	}

	rep := NewReport(a, time.Now())
	if s.recorder != nil {
		s.recorder.Observe(rep.Addr, rep.RSSI, rep.Name, rep.Time)
	}
	atomic.AddUint64(&s.reports, 1)

	if err := s.sink.Emit(rep); err != nil {
		s.log.Warnf("emit report for %s: %v", rep.Addr, err)
	}
}
