/*
 * Copyright 2017 yubo. All rights reserved.
 * Use of this source code is governed by a BSD-style
 * license that can be found in the LICENSE file.
 */

// Package ratelimits caps the request rate per key (client host) with a
// small ring of timestamps per key.
package ratelimits

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"k8s.io/klog/v2"
)

const (
	RL_MAX_BITS = 8
	RL_MIN_GC   = 1024
)

type entry struct {
	ts   []time.Time
	i    uint32
	dead bool // evicted from members
	sync.Mutex
}

type RateLimits struct {
	members map[string]*entry
	hz      uint32 //  HZ
	bits    uint32 //  slices per cycle
	size    uint32
	mask    uint32
	offset  time.Duration
	now     func() time.Time
	gcSize  int // sweep idle members once the map reaches this size
	sync.RWMutex
}

/* find first set bit */
func ffs(mask uint32) uint32 {
	var bit uint32

	if mask == 0 {
		return 0
	}
	for bit = 1; mask&1 == 0; bit++ {
		mask = mask >> 1
	}
	return bit
}

// New allows hz requests per second for every key. accuracy picks how
// many slots (1<<accuracy) the window is split into.
func New(hz, accuracy uint32) (*RateLimits, error) {
	if hz == 0 {
		return nil, errors.New("hz must be greater than zero")
	}
	if accuracy == 0 || accuracy > RL_MAX_BITS {
		return nil, fmt.Errorf("accuracy must be [1, %d]", RL_MAX_BITS)
	}
	if ffs(hz) < accuracy {
		accuracy = ffs(hz)
	}

	rl := &RateLimits{
		members: make(map[string]*entry),
		hz:      hz,
		bits:    accuracy,
		size:    1 << accuracy,
		now:     time.Now,
		gcSize:  RL_MIN_GC,
	}
	rl.mask = rl.size - 1
	rl.offset = time.Duration(rl.size) * time.Second / time.Duration(hz)

	return rl, nil
}

func (rl *RateLimits) add(key string) *entry {
	rl.Lock()
	defer rl.Unlock()

	e, ok := rl.members[key]
	if !ok {
		if len(rl.members) >= rl.gcSize {
			rl.gc()
		}
		e = &entry{ts: make([]time.Time, rl.size)}
		rl.members[key] = e
	}

	return e
}

// gc drops the members whose every slot has expired, they would pass
// their next Update anyway. Called with rl locked.
func (rl *RateLimits) gc() {
	now := rl.now()
	for key, e := range rl.members {
		e.Lock()
		if e.i == 0 || now.Sub(e.ts[(e.i-1)&rl.mask]) > rl.offset {
			e.dead = true
			delete(rl.members, key)
		}
		e.Unlock()
	}

	rl.gcSize = 2 * len(rl.members)
	if rl.gcSize < RL_MIN_GC {
		rl.gcSize = RL_MIN_GC
	}
	klog.V(4).Infof("ratelimits gc, %d members left", len(rl.members))
}

func (rl *RateLimits) Len() int {
	rl.RLock()
	defer rl.RUnlock()
	return len(rl.members)
}

// Update records a hit for key and reports whether it is within the limit.
func (rl *RateLimits) Update(key string) bool {
	for {
		rl.RLock()
		e, ok := rl.members[key]
		rl.RUnlock()

		if !ok {
			e = rl.add(key)
		}

		if allowed, evicted := rl.update(e); !evicted {
			return allowed
		}
	}
}

func (rl *RateLimits) update(e *entry) (allowed, evicted bool) {
	e.Lock()
	defer e.Unlock()
	if e.dead {
		return false, true
	}

	now := rl.now()
	if now.Sub(e.ts[e.i&rl.mask]) <= rl.offset {
		return false, false
	}

	e.ts[e.i&rl.mask] = now
	e.i++
	return true, false
}

// Handler rejects requests with 429 once the client host is over the limit.
func (rl *RateLimits) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		if !rl.Update(host) {
			klog.V(3).Infof("rate limited %s %s", host, r.URL.Path)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
