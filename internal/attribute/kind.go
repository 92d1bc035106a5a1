// Package attribute aggregates attribute resources across the data hierarchy.
package attribute

import (
	"fmt"
	"strings"
)

// Kind identifies a category of data stored at a node.
type Kind string

const (
	Demographics Kind = "cia"
	Cities       Kind = "cities"
	Colleges     Kind = "colleges"
	Counties     Kind = "counties"
	Landmarks    Kind = "landmarks"
	FirstNames   Kind = "fnames"
	LastNames    Kind = "lnames"
	Other        Kind = "other"
	AreaCodes    Kind = "areacodes"
	Roads        Kind = "roads"
	Sports       Kind = "sports"
	ZipCodes     Kind = "zipcodes"

	// Religion and Language are gathered per country and processed once
	// for the whole run.
	Religion Kind = "religion"
	Language Kind = "language"
)

// NodeKinds lists the per-node kinds in collection order.
var NodeKinds = []Kind{
	Demographics, Cities, Colleges, Counties, Landmarks, FirstNames,
	LastNames, Other, AreaCodes, Roads, Sports, ZipCodes,
}

// tagged are the kinds backed by a fixed file name.
var tagged = map[Kind]bool{
	AreaCodes: true, Demographics: true, Cities: true, Colleges: true,
	Counties: true, FirstNames: true, Landmarks: true, LastNames: true,
	Roads: true, Sports: true, ZipCodes: true,
}

// FileName is the resource file backing a tagged kind.
func (k Kind) FileName() string {
	return string(k) + ".txt"
}

// Tagged reports whether k is backed by a fixed file name.
func (k Kind) Tagged() bool {
	return tagged[k]
}

// CrossCutting reports whether k is collected once per run.
func (k Kind) CrossCutting() bool {
	return k == Religion || k == Language
}

var aliases = map[string]Kind{
	"demographics": Demographics,
	"first-names":  FirstNames,
	"last-names":   LastNames,
	"area-codes":   AreaCodes,
	"phone":        AreaCodes,
	"zip-codes":    ZipCodes,
	"zip":          ZipCodes,
	"teams":        Sports,
	"languages":    Language,
}

// ParseKind converts a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := aliases[s]; ok {
		return k, nil
	}
	k := Kind(s)
	if k.Tagged() || k == Other || k.CrossCutting() {
		return k, nil
	}
	return "", fmt.Errorf("unknown attribute %q", s)
}
