package huffpack

import "errors"

func errorIs(err, target error) bool {
	return err != nil && errors.Is(err, target)
}

func equalSymbols(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for index := range a {
		if a[index] != b[index] {
			return false
		}
	}
	return true
}
