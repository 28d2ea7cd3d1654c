// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package notify broadcasts staging progress events to observers.
package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📣 Event names a progress notification
type Event string

const (
	ProjectCopyStarted  Event = "projectCopyStarted"  // no payload
	ProjectCopyFinished Event = "projectCopyFinished" // payload: staged directory path
)

// 📨 Notification is a single posted event
type Notification struct {
	Event  Event
	Object string
}

// 👂 Observer receives notifications
type Observer interface {
	Notify(ctx context.Context, n Notification)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(ctx context.Context, n Notification)

func (f ObserverFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// 🏢 Center fans notifications out to every subscribed observer in subscription order
type Center struct {
	mu        sync.RWMutex
	observers []Observer
}

// 🏭 NewCenter creates a center with the given observers already subscribed
func NewCenter(observers ...Observer) *Center {
	return &Center{observers: append([]Observer(nil), observers...)}
}

// Subscribe adds an observer
func (c *Center) Subscribe(o Observer) {
	if o == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// 📤 Post delivers n to all observers synchronously
func (c *Center) Post(ctx context.Context, n Notification) {
	if c == nil {
		return
	}

	c.mu.RLock()
	observers := append([]Observer(nil), c.observers...)
	c.mu.RUnlock()

	zerolog.Ctx(ctx).Debug().
		Str("event", string(n.Event)).
		Str("object", n.Object).
		Int("observers", len(observers)).
		Msg("posting notification")

	for _, o := range observers {
		o.Notify(ctx, n)
	}
}

// 📼 Recorder keeps every notification it receives
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Notifications returns a copy of everything recorded so far
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Events returns the recorded event names in order
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]Event, 0, len(r.items))
	for _, n := range r.items {
		events = append(events, n.Event)
	}
	return events
}
