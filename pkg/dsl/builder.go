package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/fxforge"
)

// ErrIncompleteJob is returned by Build when a job misses a required field.
var ErrIncompleteJob = errors.New("incomplete job")

// Builder collects jobs in declaration order.
type Builder struct {
	entries []entry
	byKey   map[string]entry
}

type entry interface {
	key() string
	build() (fxforge.Job, error)
}

// New creates a new job builder.
func New() *Builder {
	return &Builder{byKey: make(map[string]entry)}
}

func (b *Builder) lookup(key string) entry {
	return b.byKey[key]
}

func (b *Builder) add(e entry) {
	b.entries = append(b.entries, e)
	b.byKey[e.key()] = e
}

// Bool declares a boolean layer. Declaring the same layer again returns the
// existing builder.
func (b *Builder) Bool(layer string) *BoolBuilder {
	key := "bool:" + layer
	if e, ok := b.lookup(key).(*BoolBuilder); ok {
		return e
	}
	bb := &BoolBuilder{job: &fxforge.BoolJob{Layer: layer}}
	b.add(bb)
	return bb
}

// PerClip declares one boolean layer per clip added to the returned builder.
func (b *Builder) PerClip(name string) *BoolBuilder {
	key := "perclip:" + name
	if e, ok := b.lookup(key).(*BoolBuilder); ok {
		return e
	}
	bb := &BoolBuilder{job: &fxforge.BoolJob{PerClip: true}, name: name}
	b.add(bb)
	return bb
}

// Int declares an integer-selected layer.
func (b *Builder) Int(layer string) *IntBuilder {
	key := "int:" + layer
	if e, ok := b.lookup(key).(*IntBuilder); ok {
		return e
	}
	ib := &IntBuilder{job: &fxforge.IntJob{Layer: layer}}
	b.add(ib)
	return ib
}

// Overlay declares an indexed overlay layer.
func (b *Builder) Overlay(layer string) *OverlayBuilder {
	key := "overlay:" + layer
	if e, ok := b.lookup(key).(*OverlayBuilder); ok {
		return e
	}
	ob := &OverlayBuilder{job: &fxforge.OverlayJob{Layer: layer}}
	b.add(ob)
	return ob
}

// Control declares a single menu toggle. Controls are never merged: two
// declarations produce two jobs.
func (b *Builder) Control(name string) *ControlBuilder {
	cb := &ControlBuilder{job: &fxforge.ControlJob{Control: name}, seq: len(b.entries)}
	b.add(cb)
	return cb
}

// Build returns the declared jobs in order.
func (b *Builder) Build() ([]fxforge.Job, error) {
	jobs := make([]fxforge.Job, 0, len(b.entries))
	var errs []error
	for _, e := range b.entries {
		j, err := e.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.key(), err))
			continue
		}
		jobs = append(jobs, j)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return jobs, nil
}
