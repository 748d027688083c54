package ephemeris

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/soniakeys/meeus/v3/base"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"golang.org/x/sync/singleflight"
)

var errEmptyTable = errors.New("table has no series")

// tableCache лениво загружает таблицы VSOP87 из каталога эфемерид.
// Ошибки не кэшируются: файл, подложенный позже, подхватится следующим запросом.
type tableCache struct {
	dir    string
	mu     sync.RWMutex
	loaded map[int]*pp.V87Planet
	group  singleflight.Group
}

func newTableCache(dir string) *tableCache {
	return &tableCache{
		dir:    dir,
		loaded: make(map[int]*pp.V87Planet),
	}
}

func (c *tableCache) planet(ibody int) (*pp.V87Planet, error) {
	c.mu.RLock()
	p, ok := c.loaded[ibody]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	v, err, _ := c.group.Do(strconv.Itoa(ibody), func() (interface{}, error) {
		p, err := pp.LoadPlanetPath(ibody, c.dir)
		if err != nil {
			return nil, err
		}
		// файл без серий читается без ошибки и даёт R = 0
		if _, _, r := p.Position2000(base.J2000); r <= 0 {
			return nil, errEmptyTable
		}
		c.mu.Lock()
		c.loaded[ibody] = p
		c.mu.Unlock()
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load VSOP87 table %d from %s: %w", ibody, c.dir, err)
	}

	return v.(*pp.V87Planet), nil
}

// count число загруженных таблиц
func (c *tableCache) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.loaded)
}
