package iscc

import (
	"log/slog"

	"golang.org/x/text/encoding"

	"github.com/hupe1980/iscc/cdc"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	textEncoding     encoding.Encoding
	imageDecoder     ImageDecoder
	trimTitle        int
	trimExtra        int
	chunkerOptions   []cdc.Option
}

// Option configures Generator behavior.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &iscc.BasicMetricsCollector{}
//	gen, _ := iscc.New(iscc.WithMetricsCollector(metrics))
//	// ... use gen ...
//	stats := metrics.GetStats()
//	fmt.Printf("Data codes: %d, Avg latency: %dns\n", stats.DataCount, stats.DataAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := iscc.NewJSONLogger(slog.LevelInfo)
//	gen, _ := iscc.New(iscc.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets
// it. Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithTextEncoding configures the character encoding assumed by the
// byte-based text entry points (MetaIDBytes, ContentIDTextBytes). The
// default, nil, means strict UTF-8.
func WithTextEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.textEncoding = enc
	}
}

// WithImageDecoder configures the decoder behind ContentIDImageBytes.
// Without one, only the image.Image entry point is available.
//
// Wiring the standard library decoders:
//
//	import _ "image/png"
//
//	gen, _ := iscc.New(iscc.WithImageDecoder(iscc.ImageDecoderFunc(
//	    func(data []byte) (image.Image, error) {
//	        img, _, err := image.Decode(bytes.NewReader(data))
//	        return img, err
//	    },
//	)))
func WithImageDecoder(d ImageDecoder) Option {
	return func(o *options) {
		o.imageDecoder = d
	}
}

// WithMetaTrim overrides the byte budgets applied to the title and
// extra metadata fields. Changing them changes derived meta codes.
func WithMetaTrim(title, extra int) Option {
	return func(o *options) {
		o.trimTitle = title
		o.trimExtra = extra
	}
}

// WithChunkerOptions forwards options to the content-defined chunker
// behind DataID. Changing chunking parameters changes derived data
// codes.
func WithChunkerOptions(optFns ...cdc.Option) Option {
	return func(o *options) {
		o.chunkerOptions = optFns
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		trimTitle:        DefaultTrimTitle,
		trimExtra:        DefaultTrimExtra,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o *options) validate() error {
	if o.trimTitle < 1 || o.trimExtra < 1 {
		return ErrInvalidTrim
	}
	return nil
}
