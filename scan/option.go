package scan

import (
	"github.com/rigado/ble"
)

// An Option configures the Scanner.
type Option func(*Scanner)

// WithDeviceOptions passes options through to the BLE stack when the device
// is opened (transport, scan parameters, roles).
func WithDeviceOptions(opts ...ble.Option) Option {
	return func(s *Scanner) {
		s.deviceOpts = append(s.deviceOpts, opts...)
	}
}

// WithFilter installs the advertisement filter. A nil filter allows
// everything.
func WithFilter(f ble.AdvFilter) Option {
	return func(s *Scanner) {
		s.filter = f
	}
}

// WithSink sets the report sink.
func WithSink(sink Sink) Option {
	return func(s *Scanner) {
		s.sink = sink
	}
}

// WithRecorder sets the device recorder fed on every report.
func WithRecorder(r Recorder) Option {
	return func(s *Scanner) {
		s.recorder = r
	}
}

// WithLogger overrides the default logger.
func WithLogger(l Logger) Option {
	return func(s *Scanner) {
		s.log = l
	}
}

// WithDuplicates controls whether the controller reports duplicate
// advertisements. On by default.
func WithDuplicates(dup bool) Option {
	return func(s *Scanner) {
		s.dup = dup
	}
}

// WithDeviceFunc overrides how the BLE device is opened.
func WithDeviceFunc(f func(...ble.Option) (Device, error)) Option {
	return func(s *Scanner) {
		s.newDevice = f
	}
}
