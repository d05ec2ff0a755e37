package config

import "log"

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustPair fails when exactly one of two settings that only work together is set.
func MustPair(a, aName, b, bName string) {
	if (a == "") != (b == "") {
		log.Fatalf("%s and %s must be set together", aName, bName)
	}
}
