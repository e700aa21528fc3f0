// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

var (
	errSettingType  = errors.New("invalid type")
	errSettingRange = errors.New("value out of range")
)

// Monitor settings, changed with the set command. Each field's doc tag is
// shown next to its value.
type settings struct {
	HexMode         bool   `doc:"hexadecimal input mode"`
	CompactMode     bool   `doc:"compact disassembly output"`
	TraceMode       bool   `doc:"print a trace line after each step"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump"`
	DisasmLines     int    `doc:"default number of lines to disassemble"`
	MaxStepLines    int    `doc:"max lines to disassemble when stepping"`
	NextDisasmAddr  uint16 `doc:"address of next disassembly"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		MemDumpBytes: 64,
		DisasmLines:  10,
		MaxStepLines: 20,
	}
}

type settingsField struct {
	name  string
	index int
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeFor[settings]()
	settingsFields = make([]settingsField, t.NumField())
	for i := range settingsFields {
		f := t.Field(i)
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			typ:   f.Type,
			doc:   f.Tag.Get("doc"),
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

// Display writes every setting, its current value and a short description
// to w. Addresses are shown in hex.
func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for _, f := range settingsFields {
		v := value.Field(f.index)

		var line string
		if f.typ.Kind() == reflect.Uint16 {
			line = fmt.Sprintf("    %-16s $%04X", f.name, v.Uint())
		} else {
			line = fmt.Sprintf("    %-16s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", line, f.doc)
	}
}

// Kind returns the reflected kind of the setting matching the key prefix,
// or reflect.Invalid if there is no unique match.
func (s *settings) Kind(key string) reflect.Kind {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.typ.Kind()
}

// Set assigns a bool or integer value to the setting matching the key
// prefix. Integers must fit the setting without truncation; counts may not
// be negative.
func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	out := reflect.ValueOf(s).Elem().Field(f.index)
	switch v := value.(type) {
	case bool:
		if f.typ.Kind() != reflect.Bool {
			return errSettingType
		}
		out.SetBool(v)

	case int64:
		switch f.typ.Kind() {
		case reflect.Int:
			if v < 0 || out.OverflowInt(v) {
				return errSettingRange
			}
			out.SetInt(v)
		case reflect.Uint16:
			if v < 0 || out.OverflowUint(uint64(v)) {
				return errSettingRange
			}
			out.SetUint(uint64(v))
		default:
			return errSettingType
		}

	default:
		return errSettingType
	}
	return nil
}
