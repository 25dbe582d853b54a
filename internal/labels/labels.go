// Package labels holds the closed set of fruit classes the model predicts and
// the mapping from a raw label to its fruit and condition.
package labels

import (
	"strings"

	"fruitd/pkg/types"
)

// classNames is in model output order; index i is output neuron i.
var classNames = [...]string{
	"freshapples", "freshbanana", "freshoranges", "freshrambutan",
	"rottenapples", "rottenbanana", "rottenoranges", "rottenrambutan",
	"unripe apple", "unripe banana", "unripe oranges", "unripe rambutan",
}

// Count is the number of supported classes.
const Count = len(classNames)

// Fruit identifies the fruit part of a label.
type Fruit string

const (
	FruitUnknown  Fruit = ""
	FruitApple    Fruit = "apple"
	FruitBanana   Fruit = "banana"
	FruitOrange   Fruit = "orange"
	FruitRambutan Fruit = "rambutan"
)

// Condition identifies the ripeness part of a label.
type Condition string

const (
	ConditionUnknown Condition = ""
	ConditionFresh   Condition = "fresh"
	ConditionRotten  Condition = "rotten"
	ConditionUnripe  Condition = "unripe"
)

// Display names shown to end users.
var (
	fruitNames = map[Fruit]string{
		FruitApple:    "Apel",
		FruitBanana:   "Pisang",
		FruitOrange:   "Jeruk",
		FruitRambutan: "Rambutan",
	}
	conditionNames = map[Condition]string{
		ConditionFresh:  "Matang",
		ConditionRotten: "Busuk",
		ConditionUnripe: "Belum Matang",
	}
)

// All returns a copy of the supported labels in model output order.
func All() []string {
	out := make([]string, Count)
	copy(out, classNames[:])
	return out
}

// At returns the label for output index i.
func At(i int) (string, bool) {
	if i < 0 || i >= Count {
		return "", false
	}
	return classNames[i], true
}

// Contains reports whether label is one of the supported classes.
func Contains(label string) bool {
	for _, c := range classNames {
		if c == label {
			return true
		}
	}
	return false
}

// Parse splits a label into fruit and condition. Unrecognized parts are
// returned as FruitUnknown / ConditionUnknown.
func Parse(label string) (Fruit, Condition) {
	l := strings.ToLower(label)
	fruit := FruitUnknown
	for _, f := range []Fruit{FruitApple, FruitBanana, FruitOrange, FruitRambutan} {
		if strings.Contains(l, string(f)) {
			fruit = f
			break
		}
	}
	cond := ConditionUnknown
	switch {
	case strings.Contains(l, "unripe"):
		cond = ConditionUnripe
	case strings.Contains(l, "rotten"):
		cond = ConditionRotten
	case strings.Contains(l, "fresh"):
		cond = ConditionFresh
	}
	return fruit, cond
}

// DisplayName returns the localized fruit name.
func (f Fruit) DisplayName() string {
	if n, ok := fruitNames[f]; ok {
		return n
	}
	return "Buah"
}

// DisplayName returns the localized condition name.
func (c Condition) DisplayName() string { return conditionNames[c] }

// Describe returns the wire description of every supported class.
func Describe() []types.ClassInfo {
	out := make([]types.ClassInfo, 0, Count)
	for _, l := range classNames {
		f, c := Parse(l)
		out = append(out, types.ClassInfo{
			Label:         l,
			Fruit:         string(f),
			FruitName:     f.DisplayName(),
			Condition:     string(c),
			ConditionName: c.DisplayName(),
		})
	}
	return out
}
