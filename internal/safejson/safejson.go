// Package safejson reads untrusted saved JSON through gjson without any error
// path: wrong types, NaN and out-of-range numbers all collapse to safe values.
package safejson

import (
	"math"

	"github.com/tidwall/gjson"
)

// MaxInt caps counters so every value fits an int on any platform.
const MaxInt = math.MaxInt32

// MaxInt64 caps timestamps at the largest integer float64 holds exactly.
const MaxInt64 = 1<<53 - 1

// ForEachField calls fn for every member of obj. Non-objects are skipped.
func ForEachField(obj gjson.Result, fn func(key string, v gjson.Result)) {
	if !obj.IsObject() {
		return
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		fn(k.String(), v)
		return true
	})
}

// TrueSet keeps only the members of obj whose value is literally true.
func TrueSet(obj gjson.Result) map[string]bool {
	set := make(map[string]bool)
	ForEachField(obj, func(key string, v gjson.Result) {
		if v.Type == gjson.True {
			set[key] = true
		}
	})
	return set
}

// StringList returns the string elements of arr, at most limit of them.
// The result is never nil.
func StringList(arr gjson.Result, limit int) []string {
	out := []string{}
	if !arr.IsArray() {
		return out
	}
	for _, v := range arr.Array() {
		if len(out) == limit {
			break
		}
		if v.Type == gjson.String {
			out = append(out, v.Str)
		}
	}
	return out
}

// NonNegativeInt floors v into [0, MaxInt]. Non-numbers yield 0.
func NonNegativeInt(v gjson.Result) int {
	return int(clampFloor(v, MaxInt))
}

// NonNegativeInt64 floors v into [0, MaxInt64]. Non-numbers yield 0.
func NonNegativeInt64(v gjson.Result) int64 {
	return int64(clampFloor(v, MaxInt64))
}

func clampFloor(v gjson.Result, limit float64) float64 {
	if v.Type != gjson.Number {
		return 0
	}
	f := math.Floor(v.Num)
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return math.Min(f, limit)
}
