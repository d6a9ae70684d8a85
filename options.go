package main

import (
	"io"

	"github.com/jcorbin/libb/internal/flushio"
	"github.com/jcorbin/libb/internal/linkage"
	"github.com/jcorbin/libb/internal/mem"
)

// Option configures a Runtime.
type Option interface{ apply(rt *Runtime) }

var defaults = []Option{
	withOutput(io.Discard),
	withScheme(linkage.HostScheme()),
	withTextBase(defaultTextBase),
}

// defaultTextBase leaves the first page of memory unused, so that small word
// addresses, and 0 in particular, never name an entry point.
const defaultTextBase = 0x1000

func (rt *Runtime) apply(opts ...Option) {
	for _, opt := range defaults {
		if opt != nil {
			opt.apply(rt)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(rt)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(rt *Runtime) {
	rt.logfn = logfn
}

type inputOption []io.Reader
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type memLimitOption uint
type pageSizeOption uint
type textBaseOption uint
type schemeOption linkage.Scheme
type interactiveOption bool
type memoryOption struct{ mem.Memory }
type closerOption struct{ io.Closer }

func withInputs(rs ...io.Reader) inputOption    { return inputOption(rs) }
func withOutput(w io.Writer) outputOption       { return outputOption{w} }
func withTee(w io.Writer) teeOption             { return teeOption{w} }
func withMemLimit(limit uint) memLimitOption    { return memLimitOption(limit) }
func withPageSize(size uint) pageSizeOption     { return pageSizeOption(size) }
func withTextBase(addr uint) textBaseOption     { return textBaseOption(addr) }
func withScheme(sc linkage.Scheme) schemeOption { return schemeOption(sc) }

func (rs inputOption) apply(rt *Runtime) {
	rt.input.Queue = append(rt.input.Queue, rs...)
}

func (o outputOption) apply(rt *Runtime) {
	if rt.out != nil {
		rt.out.Flush()
	}
	rt.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(rt *Runtime) {
	rt.out = flushio.WriteFlushers(rt.out, flushio.NewWriteFlusher(o.Writer))
}

func (lim memLimitOption) apply(rt *Runtime)   { rt.core.Limit = uint(lim) }
func (size pageSizeOption) apply(rt *Runtime)  { rt.core.PageSize = uint(size) }
func (addr textBaseOption) apply(rt *Runtime)  { rt.textBase = uint(addr) }
func (sc schemeOption) apply(rt *Runtime)      { rt.scheme = linkage.Scheme(sc) }
func (on interactiveOption) apply(rt *Runtime) { rt.interactive = bool(on) }
func (m memoryOption) apply(rt *Runtime)       { rt.mem = m.Memory }
func (c closerOption) apply(rt *Runtime)       { rt.closers = append(rt.closers, c.Closer) }
