package ecs

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

type borrowSite struct {
	mutable  bool
	location string
}

// borrowState counts live guards of one storage. Every guard records the
// location it was taken from so that conflicts can name both sides.
type borrowState struct {
	nextID uint64
	mut    int
	shared int
	sites  map[uint64]borrowSite
}

func (b *borrowState) live() []string {
	ids := make([]uint64, 0, len(b.sites))
	for id := range b.sites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]string, len(ids))
	for i, id := range ids {
		site := b.sites[id]
		if site.mutable {
			out[i] = "mut " + site.location
		} else {
			out[i] = "ref " + site.location
		}
	}
	return out
}

func (b *borrowState) acquire(component string, mutable bool, location string) uint64 {
	conflict := b.mut > 0 || (mutable && b.shared > 0)
	if conflict {
		panic(&BorrowError{
			Component: component,
			Mutable:   mutable,
			Site:      location,
			Live:      b.live(),
		})
	}
	if b.sites == nil {
		b.sites = make(map[uint64]borrowSite)
	}
	b.nextID++
	b.sites[b.nextID] = borrowSite{mutable: mutable, location: location}
	if mutable {
		b.mut++
	} else {
		b.shared++
	}
	return b.nextID
}

// release returns true when the released guard was the last mutable one.
func (b *borrowState) release(id uint64) bool {
	site, ok := b.sites[id]
	if !ok {
		return false
	}
	delete(b.sites, id)
	if site.mutable {
		b.mut--
		return b.mut == 0
	}
	b.shared--
	return false
}

// callerLocation returns the first frame outside of this package's sources.
func callerLocation() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var fallback string
	for {
		frame, more := frames.Next()
		loc := fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		if fallback == "" {
			fallback = loc
		}
		if !isECSFrame(frame) {
			return loc
		}
		if !more {
			return fallback
		}
	}
}

const ecsPackage = "github.com/zeusync/zeusui/internal/core/ecs."

func isECSFrame(frame runtime.Frame) bool {
	return strings.HasPrefix(frame.Function, ecsPackage) && !strings.HasSuffix(frame.File, "_test.go")
}
