package memory

import (
	"fmt"

	"github.com/pkg/errors"
)

// census keeps track of the lifecycle of counted elements.
var census struct {
	live        int
	constructed int
	destroyed   int
	assigned    int
	failAt      int   // fail construction after this many successful ones; -1 for never
	order       []int // ids of assignment sources, in order of assignment
}

var errRefused = errors.New("construction refused")

func resetCensus() {
	census.live, census.constructed, census.destroyed, census.assigned = 0, 0, 0, 0
	census.failAt = -1
	census.order = nil
}

// counted is a non-trivial element type which implements every lifecycle hook
// and reports to census.
type counted struct {
	id    int
	tags  []string
	alive bool
}

func (c *counted) Construct() error {
	if census.failAt >= 0 && census.constructed == census.failAt {
		return errRefused
	}
	census.constructed++
	census.live++
	c.alive = true
	c.tags = []string{}
	return nil
}

func (c *counted) CopyConstruct(src *counted) error {
	if err := c.Construct(); err != nil {
		return err
	}
	c.id = src.id
	c.tags = append(c.tags, src.tags...)
	return nil
}

func (c *counted) Assign(src *counted) {
	census.assigned++
	census.order = append(census.order, src.id)
	c.id = src.id
	c.tags = append([]string(nil), src.tags...)
}

func (c *counted) Destruct() {
	census.destroyed++
	census.live--
	c.alive = false
}

func (c counted) String() string {
	return fmt.Sprintf("#%d", c.id)
}

// point is trivial.
type point struct {
	X, Y int32
}

// handle is pointer-free, but made non-trivial by its hook.
type handle struct {
	fd int
}

func (h *handle) Destruct() {
	h.fd = -1
}

func ids(buf []counted) []int {
	r := make([]int, len(buf))
	for i, c := range buf {
		r[i] = c.id
	}
	return r
}

// numbered allocates and constructs n counted elements with ids 0…n-1.
func numbered(m Manager[counted], n int) []counted {
	buf, err := m.Allocate(n)
	if err != nil {
		panic(err)
	}
	if err = m.Construct(buf); err != nil {
		panic(err)
	}
	for i := range buf {
		buf[i].id = i
	}
	return buf
}

// resource has a default constructor and custom assignment, but no copy
// constructor.
type resource struct {
	id    int
	alive bool
}

func (r *resource) Construct() error {
	if census.failAt >= 0 && census.constructed == census.failAt {
		return errRefused
	}
	census.constructed++
	census.live++
	r.alive = true
	return nil
}

func (r *resource) Assign(src *resource) {
	census.assigned++
	r.id = src.id
}

func (r *resource) Destruct() {
	census.destroyed++
	census.live--
	r.alive = false
}
