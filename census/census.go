// Package census synthesises a population of individuals in two memory
// layouts and builds an age histogram over it.
//
// Records stores one struct per individual (array of structures), Columns
// stores one slice per field (structure of arrays). Both satisfy Population
// so callers can benchmark them without knowing which layout they hold.
package census

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Sex of an individual.
type Sex uint8

const (
	Male Sex = iota
	Female
)

// HousingStatus of an individual.
type HousingStatus uint8

const (
	Renter HousingStatus = iota
	Owner
)

type (
	Age     uint8
	Country uint8
	Income  uint32
)

// AgeBound is the number of representable ages and therefore the smallest
// histogram size BucketizeByAge accepts for every possible population.
const AgeBound = 1 << 8

// Person is the composite record describing one individual.
type Person struct {
	Age     Age
	Country Country
	Income  Income
	Housing HousingStatus
	Sex     Sex
}

// Population is the capability shared by both layouts.
type Population interface {
	// Len returns the number of individuals.
	Len() int
	// At reassembles the i-th individual.
	At(i int) Person
	// BucketizeByAge counts individuals per age. numBuckets must exceed the
	// largest age present, an age outside the histogram panics.
	BucketizeByAge(numBuckets int) Histogram
}

// ErrUnknownLayout is returned by LayoutByName for unsupported names.
var ErrUnknownLayout = errors.New("unknown layout")

// Layout names a population representation and knows how to synthesise it.
type Layout struct {
	Name         string
	Description  string
	CreateRandom func(rng *rand.Rand, size int) Population
}

// Layouts lists the supported representations, baseline first.
var Layouts = []Layout{
	{
		Name:        "records",
		Description: "one struct per individual (array of structures)",
		CreateRandom: func(rng *rand.Rand, size int) Population {
			return NewRandomRecords(rng, size)
		},
	},
	{
		Name:        "columns",
		Description: "one slice per field (structure of arrays)",
		CreateRandom: func(rng *rand.Rand, size int) Population {
			return NewRandomColumns(rng, size)
		},
	},
}

// LayoutByName looks up one of Layouts.
func LayoutByName(name string) (Layout, error) {
	for _, l := range Layouts {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// LayoutNames returns the names of all supported layouts.
func LayoutNames() []string {
	names := make([]string, 0, len(Layouts))
	for _, l := range Layouts {
		names = append(names, l.Name)
	}
	return names
}
