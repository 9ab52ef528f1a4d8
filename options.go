package grib2

import (
	"io"

	"github.com/golang/glog"
)

// Option configures a Stream or RandomAccessStream, the way
// mmp-squall/options.go's ReadOption configures ReadWithOptions.
type Option func(*config)

type config struct {
	logf         func(format string, args ...any)
	discardLevel int
	byteSource   io.ReaderAt
}

func defaultConfig() config {
	return config{
		logf:         glog.Infof,
		discardLevel: 0,
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger overrides where the per-message summary line goes. The default
// logs through glog.Infof; passing nil silences it. The verbose traces in
// Submessage.Decode (glog.V(2)) and scan.HTTPByteSource (glog.V(1)) always
// go through glog and are not affected by this option.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(c *config) {
		if logf == nil {
			logf = func(string, ...any) {}
		}
		c.logf = logf
	}
}

// WithDiscardLevel sets the JPEG 2000 reduced-resolution decode level for
// every submessage using a template 40 (JPEG 2000) data representation. 0
// (the default) decodes at full resolution.
func WithDiscardLevel(level int) Option {
	return func(c *config) {
		c.discardLevel = level
	}
}

// WithByteSource overrides the io.ReaderAt OpenAt scans, letting a caller
// build a RandomAccessStream against, say, a scan.HTTPByteSource while
// keeping the rest of the Open/OpenAt call sites uniform.
func WithByteSource(src io.ReaderAt) Option {
	return func(c *config) {
		c.byteSource = src
	}
}
