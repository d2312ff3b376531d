package service

import (
	"fmt"
	"math/rand/v2"
)

// Word lists for pseudonymous handles assigned to anonymous submitters.
var (
	handleAdjectives = []string{
		"Amber", "Brisk", "Clever", "Daring", "Eager", "Fuzzy",
		"Gentle", "Hasty", "Ivory", "Jolly", "Keen", "Lively",
		"Mellow", "Nimble", "Opal", "Plucky", "Quiet", "Rustic",
		"Sly", "Tidy", "Umber", "Vivid", "Witty", "Zesty",
	}
	handleNouns = []string{
		"Badger", "Comet", "Dune", "Ember", "Falcon", "Glade",
		"Heron", "Inkpot", "Juniper", "Kelp", "Lantern", "Marmot",
		"Nettle", "Otter", "Pebble", "Quill", "Raven", "Sparrow",
		"Thistle", "Urchin", "Vole", "Walnut", "Yarrow", "Zephyr",
	}
)

// RandomUsername returns a pseudonymous Adjective-Noun-Number handle.
func RandomUsername() string {
	return fmt.Sprintf("%s-%s-%d",
		handleAdjectives[rand.IntN(len(handleAdjectives))],
		handleNouns[rand.IntN(len(handleNouns))],
		1+rand.IntN(99),
	)
}
