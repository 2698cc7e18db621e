// Copyright 2026, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package simpletable

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SchemaFile is the YAML representation of a Schema.
//
//	columns:
//	  - name: amount
//	    display: Amount
//	    type: float
//	    min: 1.0
//	    max: 1000.0
//	    format: "#,##0.0000"
//	  - name: code
//	    min_len: 3
//	    max_len: 10
//
// Column IDs are positional, starting from 1.
type SchemaFile struct {
	Columns []ColumnSpec `yaml:"columns"`
}

// ColumnSpec is one column of a SchemaFile.
type ColumnSpec struct {
	Min     *yaml.Node `yaml:"min,omitempty"`
	Max     *yaml.Node `yaml:"max,omitempty"`
	MinLen  *int       `yaml:"min_len,omitempty"`
	MaxLen  *int       `yaml:"max_len,omitempty"`
	Name    string     `yaml:"name"`
	Display string     `yaml:"display,omitempty"`
	Format  string     `yaml:"format,omitempty"`
	Type    string     `yaml:"type,omitempty"`
	Bold    bool       `yaml:"bold,omitempty"`
}

// LoadSchemaFile reads the YAML schema from the named file.
func LoadSchemaFile(path string) (*Schema, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	sch, err := LoadSchema(fh)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return sch, nil
}

// LoadSchema reads a YAML schema.
func LoadSchema(r io.Reader) (*Schema, error) {
	var sf SchemaFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return sf.Schema()
}

// Schema builds the Schema, with a Descriptor for each column that has constraints.
func (sf SchemaFile) Schema() (*Schema, error) {
	cols := make([]Column, 0, len(sf.Columns))
	for i, cs := range sf.Columns {
		c := Column{
			ID: ColumnID(i + 1), Name: cs.Name, Display: cs.Display,
			Format: cs.Format, Header: Style{FontBold: cs.Bold},
		}
		d, err := cs.descriptor()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", cs.Name, err)
		}
		c.Constraint = d
		cols = append(cols, c)
	}
	return NewSchema(cols...)
}

func (cs ColumnSpec) descriptor() (*Descriptor, error) {
	var opts []DescriptorOption
	kind := KindNull
	if cs.Type != "" {
		var err error
		if kind, err = ParseKind(cs.Type); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
		}
		opts = append(opts, WithType(kind))
	}
	for _, b := range []struct {
		node *yaml.Node
		with func(Value) DescriptorOption
	}{{cs.Min, WithMin}, {cs.Max, WithMax}} {
		if b.node == nil {
			continue
		}
		v, err := nodeValue(b.node, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
		}
		opts = append(opts, b.with(v))
	}
	if cs.MinLen != nil {
		opts = append(opts, WithMinLen(*cs.MinLen))
	}
	if cs.MaxLen != nil {
		opts = append(opts, WithMaxLen(*cs.MaxLen))
	}
	if len(opts) == 0 {
		return nil, nil
	}
	return NewDescriptor(opts...)
}

// nodeValue parses a YAML scalar as kind,
// or by its YAML tag when kind is KindNull.
func nodeValue(n *yaml.Node, kind Kind) (Value, error) {
	if n.Kind != yaml.ScalarNode {
		return Value{}, fmt.Errorf("line %d: bound must be a scalar", n.Line)
	}
	if kind == KindNull {
		switch n.ShortTag() {
		case "!!int":
			kind = KindInt
		case "!!float":
			kind = KindFloat
		case "!!bool":
			kind = KindBool
		case "!!timestamp":
			kind = KindTime
		default:
			kind = KindText
		}
	}
	if kind == KindTime {
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return Time(t), nil
		}
	}
	v, err := ParseValue(kind, n.Value)
	if err != nil {
		return Value{}, fmt.Errorf("line %d: %q as %s: %w", n.Line, n.Value, kind, err)
	}
	return v, nil
}
