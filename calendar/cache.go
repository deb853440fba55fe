package calendar

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Loader locates and opens the holiday file for a calendar name. The
// default used by the package-level cache reads "<dir>/<name>.hol" from
// the directory named by the CDSMODEL_CALENDAR_DIR environment variable,
// falling back to the current working directory.
type Loader func(name string) (*Calendar, error)

// Cache is a process-wide, lazily-populated registry of holiday
// calendars, keyed by name. NONE and NO_WEEKENDS are pre-seeded and
// cannot be overwritten or purged. Concurrent first-references to the
// same uncached name are coalesced through a singleflight.Group so a
// calendar file is only ever read from disk once, no matter how many
// goroutines ask for it at the same time.
type Cache struct {
	mu     sync.RWMutex
	byName map[string]*Calendar
	group  singleflight.Group
	load   Loader
	log    *logrus.Entry
}

// NewCache builds a Cache that loads uncached calendars via load. If load
// is nil, DefaultLoader is used.
func NewCache(load Loader, log *logrus.Entry) *Cache {
	if load == nil {
		load = DefaultLoader
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Cache{
		byName: map[string]*Calendar{
			NameNone:       None(),
			NameNoWeekends: NoWeekends(),
		},
		load: load,
		log:  log.WithField("component", "calendar.Cache"),
	}
}

// globalCache backs the package-level Get/Purge convenience functions.
var globalCache = NewCache(nil, nil)

// Get returns the named calendar, loading and caching it on first
// reference. NONE and NO_WEEKENDS are always available without touching
// disk.
func Get(name string) (*Calendar, error) {
	return globalCache.Get(name)
}

// Purge evicts every cached calendar except NONE and NO_WEEKENDS,
// forcing the next Get for any other name to re-read its file.
func Purge() {
	globalCache.Purge()
}

// Get returns the named calendar from c, loading it via c.load on a
// cache miss. Concurrent misses for the same name share a single load.
func (c *Cache) Get(name string) (*Calendar, error) {
	c.mu.RLock()
	cal, ok := c.byName[name]
	c.mu.RUnlock()
	if ok {
		return cal, nil
	}

	result, err, shared := c.group.Do(name, func() (any, error) {
		loaded, err := c.load(name)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.byName[name] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		c.log.WithError(err).WithField("calendar", name).Warn("failed to load holiday calendar")
		return nil, err
	}
	if shared {
		c.log.WithField("calendar", name).Debug("coalesced concurrent calendar load")
	}
	return result.(*Calendar), nil
}

// Purge evicts every cached calendar except NONE and NO_WEEKENDS.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byName = map[string]*Calendar{
		NameNone:       c.byName[NameNone],
		NameNoWeekends: c.byName[NameNoWeekends],
	}
}

// calendarDirEnv names the environment variable giving the directory that
// holds "<name>.hol" holiday files.
const calendarDirEnv = "CDSMODEL_CALENDAR_DIR"

// DefaultLoader reads "<CDSMODEL_CALENDAR_DIR>/<name>.hol", falling back
// to "./<name>.hol" when the environment variable is unset.
func DefaultLoader(name string) (*Calendar, error) {
	dir := os.Getenv(calendarDirEnv)
	if dir == "" {
		dir = "."
	}
	path := dir + string(os.PathSeparator) + name + ".hol"
	f, err := os.Open(path)
	if err != nil {
		return nil, newErr(FileError, "DefaultLoader", "opening %s: %v", path, err)
	}
	defer f.Close()
	return ParseHolidayFile(name, f)
}
