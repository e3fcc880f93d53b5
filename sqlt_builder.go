package sqlt

import (
	"time"

	"go.uber.org/zap"
)

/*
Builds queries from templates with a fixed escaper. Usually one `Builder` is
made per database connection, with the connection's escaping rules:

	bui := sqlt.New(sqlt.MySQLEscaper{})

	query, err := bui.Build(
		`SELECT name FROM users WHERE ?# IN ?a ?{AND block = ?d}`,
		`user_id`, []int{1, 2, 3}, bui.Skip(),
	)

Safe for concurrent use when the escaper is.
*/
type Builder struct {
	esc            Escaper
	log            *zap.Logger
	metrics        *Metrics
	cache          *Cache
	disallowUnused bool
}

// Configures a `Builder`. See `New`.
type Option func(*Builder)

// Logs built queries and failures at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(self *Builder) {
		if log != nil {
			self.log = log
		}
	}
}

// Reports builds to the given collectors.
func WithMetrics(metrics *Metrics) Option {
	return func(self *Builder) { self.metrics = metrics }
}

/*
Gives the builder its own template cache of the given size instead of the
package-wide one used by `Preparse`. Zero or negative size disables caching.
*/
func WithCacheSize(size int) Option {
	return func(self *Builder) { self.cache = NewCache(size) }
}

/*
When enabled, arguments left over after all placeholders are bound cause
`ErrUnusedArgument` instead of being ignored.
*/
func DisallowUnused(val bool) Option {
	return func(self *Builder) { self.disallowUnused = val }
}

// Makes a builder. A nil escaper is replaced with `StandardEscaper`.
func New(esc Escaper, opts ...Option) *Builder {
	if esc == nil {
		esc = StandardEscaper{}
	}

	out := &Builder{
		esc:   esc,
		log:   zap.NewNop(),
		cache: prepCache,
	}
	for _, opt := range opts {
		opt(out)
	}
	return out
}

// Returns the builder's escaper.
func (self *Builder) Escaper() Escaper { return self.esc }

// Returns the skip sentinel. Same as the package-level `Skip`.
func (self *Builder) Skip() any { return Skip() }

/*
Builds a query from the template and arguments. Placeholders bind arguments
from left to right, including placeholders inside conditional blocks. Returns
an `Err` on failure; there is no partial output.
*/
func (self *Builder) Build(src string, args ...any) (out string, err error) {
	start := time.Now()
	defer func() { self.done(src, out, len(args), err, time.Since(start)) }()

	prep, err := self.cache.Get(src)
	if err != nil {
		return ``, err
	}
	if self.disallowUnused {
		return prep.BuildStrict(self.esc, args...)
	}
	return prep.Build(self.esc, args...)
}

// Variant of `(*Builder).Build` that panics on error.
func (self *Builder) TryBuild(src string, args ...any) string {
	return try1(self.Build(src, args...))
}

func (self *Builder) done(src, out string, args int, err error, elapsed time.Duration) {
	self.metrics.observe(err, elapsed.Seconds())

	if err != nil {
		self.log.Debug(`query build failed`,
			zap.String(`template`, src),
			zap.Int(`args`, args),
			zap.String(`code`, string(CodeOf(err))),
			zap.Error(err),
		)
		return
	}

	self.log.Debug(`built query`,
		zap.String(`template`, src),
		zap.String(`query`, out),
		zap.Int(`args`, args),
		zap.Duration(`elapsed`, elapsed),
	)
}
