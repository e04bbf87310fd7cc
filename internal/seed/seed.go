// Package seed loads a family described in YAML into the genealogy graph.
//
//	people:
//	  - key: anna
//	    name: Anna
//	    gender: female
//	  - key: jan
//	    name: Jan
//	    gender: male
//	  - key: ola
//	    name: Ola
//	    gender: female
//	marriages:
//	  - [anna, jan]
//	children:
//	  - {child: ola, mother: anna, father: jan}
//
// Keys are local to the file; the store assigns the real identities.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/yungbote/genealogy-backend/internal/domain"
)

type Person struct {
	Key                    string `yaml:"key"`
	types.PersonAttributes `yaml:",inline"`
}

type ParentEdge struct {
	Child  string `yaml:"child"`
	Mother string `yaml:"mother"`
	Father string `yaml:"father"`
}

type File struct {
	People    []Person     `yaml:"people"`
	Marriages [][2]string  `yaml:"marriages"`
	Children  []ParentEdge `yaml:"children"`
}

// Target is the subset of the genealogy service the seeder drives.
type Target interface {
	AddPerson(ctx context.Context, attrs types.PersonAttributes) (*types.PersonSummary, error)
	AddMarriage(ctx context.Context, spouse1ID, spouse2ID types.PersonID) ([]types.SpousePair, error)
	AddParentChild(ctx context.Context, motherID, fatherID, childID types.PersonID) error
}

type Result struct {
	IDs         map[string]types.PersonID
	Marriages   int
	ParentEdges int
}

// Parse decodes a seed file. Unknown fields are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Validate checks every entry and reports all problems at once.
func Validate(f *File) error {
	if f == nil {
		return types.ValidationError("seed file is empty")
	}
	var errs []error
	keys := make(map[string]struct{}, len(f.People))
	for i, p := range f.People {
		key := strings.TrimSpace(p.Key)
		switch {
		case key == "":
			errs = append(errs, fmt.Errorf("people[%d]: key is required", i))
		default:
			if _, dup := keys[key]; dup {
				errs = append(errs, fmt.Errorf("people[%d]: duplicate key %q", i, key))
			}
			keys[key] = struct{}{}
		}
		if _, err := types.ValidatePerson(p.PersonAttributes); err != nil {
			errs = append(errs, fmt.Errorf("people[%d] (%s): %s", i, key, detail(err)))
		}
	}

	known := func(where, key string) {
		if _, ok := keys[strings.TrimSpace(key)]; !ok {
			errs = append(errs, fmt.Errorf("%s: unknown person %q", where, key))
		}
	}
	for i, m := range f.Marriages {
		where := fmt.Sprintf("marriages[%d]", i)
		known(where, m[0])
		known(where, m[1])
		if strings.TrimSpace(m[0]) == strings.TrimSpace(m[1]) {
			errs = append(errs, fmt.Errorf("%s: a person cannot marry themselves", where))
		}
	}
	for i, c := range f.Children {
		where := fmt.Sprintf("children[%d]", i)
		known(where, c.Child)
		known(where, c.Mother)
		known(where, c.Father)
		child, mother, father := strings.TrimSpace(c.Child), strings.TrimSpace(c.Mother), strings.TrimSpace(c.Father)
		if mother == father {
			errs = append(errs, fmt.Errorf("%s: mother and father must differ", where))
		}
		if child == mother || child == father {
			errs = append(errs, fmt.Errorf("%s: a person cannot be their own parent", where))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{types.ErrInvalidInput}, errs...)...)
}

// Apply validates f and then writes people, marriages and parent edges in
// that order. It stops at the first failed write; earlier writes remain.
func Apply(ctx context.Context, target Target, f *File) (*Result, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	res := &Result{IDs: make(map[string]types.PersonID, len(f.People))}
	for _, p := range f.People {
		created, err := target.AddPerson(ctx, p.PersonAttributes)
		if err != nil {
			return res, fmt.Errorf("add person %q: %w", p.Key, err)
		}
		id, err := types.ParsePersonID(created.ID)
		if err != nil {
			return res, fmt.Errorf("add person %q: %w", p.Key, err)
		}
		res.IDs[strings.TrimSpace(p.Key)] = id
	}
	lookup := func(key string) types.PersonID { return res.IDs[strings.TrimSpace(key)] }

	for _, m := range f.Marriages {
		if _, err := target.AddMarriage(ctx, lookup(m[0]), lookup(m[1])); err != nil {
			return res, fmt.Errorf("marry %q and %q: %w", m[0], m[1], err)
		}
		res.Marriages++
	}
	for _, c := range f.Children {
		if err := target.AddParentChild(ctx, lookup(c.Mother), lookup(c.Father), lookup(c.Child)); err != nil {
			return res, fmt.Errorf("parents of %q: %w", c.Child, err)
		}
		res.ParentEdges++
	}
	return res, nil
}

// detail drops the sentinel line from a joined validation error.
func detail(err error) string {
	lines := strings.Split(err.Error(), "\n")
	if len(lines) > 1 && lines[0] == types.ErrInvalidInput.Error() {
		lines = lines[1:]
	}
	return strings.Join(lines, "; ")
}
