package loader

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/nevisdale/m6502/internal/cpu"
)

// scriptBuilder collects the segments written by a script.
type scriptBuilder struct {
	img Image
	cur uint16 // next address for emit
	// index of the segment emit appends to, -1 when a new one is needed
	open int
}

// RunScript executes a Starlark program that assigns memory inline.
//
// Builtins:
//
//	org(addr)          move the emit cursor
//	emit(b, ...)       write bytes at the cursor and advance it
//	poke(addr, b, ...) write bytes at addr, the cursor is not moved
//	vector(addr)       set the reset vector
//
// Every opcode is predeclared as MNEMONIC_MODE, for example LDA_ABSX.
// The cursor and the vector both start at origin.
func RunScript(name string, src []byte, origin uint16) (*Image, error) {
	b := &scriptBuilder{
		img:  Image{Vector: origin},
		cur:  origin,
		open: -1,
	}

	predeclared := starlark.StringDict{
		"org":    starlark.NewBuiltin("org", b.org),
		"emit":   starlark.NewBuiltin("emit", b.emit),
		"poke":   starlark.NewBuiltin("poke", b.poke),
		"vector": starlark.NewBuiltin("vector", b.vector),
	}
	for _, in := range cpu.Instructions() {
		predeclared[in.Mnemonic+"_"+in.Mode] = starlark.MakeInt(int(in.Opcode))
	}

	thread := &starlark.Thread{Name: name}
	opts := syntax.FileOptions{TopLevelControl: true, GlobalReassign: true, While: true}
	if _, err := starlark.ExecFileOptions(&opts, thread, name, src, predeclared); err != nil {
		return nil, fmt.Errorf("couldn't run script: %w", err)
	}
	if b.img.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyImage)
	}
	return &b.img, nil
}

func (b *scriptBuilder) org(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	addr, err := toAddr(fn.Name(), v)
	if err != nil {
		return nil, err
	}
	b.cur = addr
	b.open = -1
	return starlark.None, nil
}

func (b *scriptBuilder) vector(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	addr, err := toAddr(fn.Name(), v)
	if err != nil {
		return nil, err
	}
	b.img.Vector = addr
	return starlark.None, nil
}

func (b *scriptBuilder) emit(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	data, err := toBytes(fn.Name(), args)
	if err != nil {
		return nil, err
	}
	if b.open < 0 {
		b.img.Segments = append(b.img.Segments, Segment{Addr: b.cur})
		b.open = len(b.img.Segments) - 1
	}
	seg := &b.img.Segments[b.open]
	seg.Data = append(seg.Data, data...)
	b.cur = uint16(int(b.cur) + len(data))
	return starlark.None, nil
}

func (b *scriptBuilder) poke(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("%s: want an address and at least one byte", fn.Name())
	}
	addr, err := toAddr(fn.Name(), args[0])
	if err != nil {
		return nil, err
	}
	data, err := toBytes(fn.Name(), args[1:])
	if err != nil {
		return nil, err
	}
	b.img.Segments = append(b.img.Segments, Segment{Addr: addr, Data: data})
	// a poke between two emits starts a new emit segment so order is kept
	b.open = -1
	return starlark.None, nil
}

func toAddr(fnName string, v starlark.Value) (uint16, error) {
	n, err := starlark.AsInt32(v)
	if err != nil {
		return 0, fmt.Errorf("%s: address: %w", fnName, err)
	}
	if n < 0 || n > 0xffff {
		return 0, fmt.Errorf("%s: address %d out of range", fnName, n)
	}
	return uint16(n), nil
}

func toBytes(fnName string, args starlark.Tuple) ([]uint8, error) {
	data := make([]uint8, 0, len(args))
	for i, v := range args {
		n, err := starlark.AsInt32(v)
		if err != nil {
			return nil, fmt.Errorf("%s: byte %d: %w", fnName, i, err)
		}
		if n < 0 || n > 0xff {
			return nil, fmt.Errorf("%s: byte %d: value %d out of range", fnName, i, n)
		}
		data = append(data, uint8(n))
	}
	return data, nil
}
