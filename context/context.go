// Package context implements the hierarchical variable store the
// expression evaluator resolves identifiers against: a nested
// name -> Value tree, the default zone, the date style, and the
// current instant.
package context

import (
	"time"

	"github.com/go-chrono/chrono"
	"github.com/rapidpro/expressions/dates"
	"github.com/rapidpro/expressions/types"
)

// Config carries the settings that parameterize resolution and
// formatting: the default zone, the day-first/month-first date style, and
// the instant "now" resolves to. It follows the same DefaultConfig/Apply
// overlay shape as aretext/config.Config, generalized from
// (SyntaxLanguage, TabSize) to (Zone, DateStyle, Now).
type Config struct {
	Zone      *time.Location
	DateStyle types.DateStyle
	Now       time.Time
}

// DefaultConfig returns a Config with UTC, day-first, and the real
// current time.
func DefaultConfig() Config {
	return Config{
		Zone:      time.UTC,
		DateStyle: types.DateStyleDayFirst,
		Now:       time.Now(),
	}
}

// Apply overrides the base config's Zone and Now with overlay's when
// those are non-zero; DateStyle is always taken from overlay.
func (c *Config) Apply(overlay Config) {
	if overlay.Zone != nil {
		c.Zone = overlay.Zone
	}
	if !overlay.Now.IsZero() {
		c.Now = overlay.Now
	}
	c.DateStyle = overlay.DateStyle
}

// Context is a hierarchical, case-insensitive variable store plus the
// zone/date-style/now settings the evaluator needs for coercion. The
// zero value is not usable; construct with New.
type Context struct {
	cfg  Config
	root *types.Container
}

// New constructs a Context with the given settings and an empty root
// container. Use Set/SetPath to populate it.
func New(cfg Config) *Context {
	return &Context{cfg: cfg, root: types.NewContainer()}
}

// Root returns the top-level container, for callers that want to build
// the variable tree directly rather than through SetPath.
func (c *Context) Root() *types.Container { return c.root }

// Zone returns the context's default zone.
func (c *Context) Zone() *time.Location { return c.cfg.Zone }

// DateStyle returns the context's date style.
func (c *Context) DateStyle() types.DateStyle { return c.cfg.DateStyle }

// Now returns the current instant as a DateTime Value in the context's
// zone.
func (c *Context) Now() types.Value {
	t := c.cfg.Now
	if c.cfg.Zone != nil {
		t = t.In(c.cfg.Zone)
	}
	_, offsetSecs := t.Zone()
	offHours := offsetSecs / 3600
	offMins := (offsetSecs - offHours*3600) / 60
	if offMins < 0 {
		offMins = -offMins
	}
	dt := chrono.OffsetDateTimeOf(t.Year(), chrono.Month(int(t.Month())), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), offHours, offMins)
	return types.NewDateTime(dt, c.cfg.Zone)
}

// DateParser returns a date parser configured with this context's now,
// zone, and date style.
func (c *Context) DateParser() *dates.Parser {
	return dates.NewParser(c.cfg.Now, c.cfg.Zone, c.cfg.DateStyle == types.DateStyleDayFirst)
}

// DateFormat returns the layout string used by FORMAT_DATE: "dd-MM-yyyy"
// or "MM-dd-yyyy", with " HH:mm" appended when includeTime is true.
func (c *Context) DateFormat(includeTime bool) string {
	layout := "dd-MM-yyyy"
	if c.cfg.DateStyle == types.DateStyleMonthFirst {
		layout = "MM-dd-yyyy"
	}
	if includeTime {
		layout += " HH:mm"
	}
	return layout
}

// Set inserts or overwrites a top-level variable.
func (c *Context) Set(name string, v types.Value) {
	c.root.Set(name, v)
}

// SetPath inserts a variable at a dotted path, creating intermediate
// containers as needed (a convenience for building nested test fixtures;
// resolution itself only ever reads the tree).
func (c *Context) SetPath(path []string, v types.Value) {
	node := c.root
	for _, segment := range path[:len(path)-1] {
		existing, ok := node.Get(segment)
		if ok && existing.IsContainer() {
			node = existing.AsContainer()
			continue
		}
		child := types.NewContainer()
		node.Set(segment, types.NewContainer(child))
		node = child
	}
	node.Set(path[len(path)-1], v)
}
