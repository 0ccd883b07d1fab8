package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/BlakeDanielson/SoloRelms-sub001/internal/errors"
)

// AdvantageMode selects how a single d20 roll is evaluated
type AdvantageMode int

const (
	// Normal evaluates the expression once
	Normal AdvantageMode = iota

	// Advantage evaluates the expression twice and keeps the higher total
	Advantage

	// Disadvantage evaluates the expression twice and keeps the lower total
	Disadvantage
)

// String returns a human-readable name for the mode
func (m AdvantageMode) String() string {
	switch m {
	case Advantage:
		return "advantage"
	case Disadvantage:
		return "disadvantage"
	default:
		return "normal"
	}
}

// KeepDrop describes a kh/kl/dh/dl suffix on a dice expression
type KeepDrop struct {
	// Highest selects dice from the top of the sorted faces; false selects from the bottom
	Highest bool

	// Drop discards the selected dice instead of keeping them
	Drop bool

	// Count is how many dice the suffix selects
	Count int
}

func (kd *KeepDrop) String() string {
	op := "k"
	if kd.Drop {
		op = "d"
	}
	dir := "h"
	if !kd.Highest {
		dir = "l"
	}
	return fmt.Sprintf("%s%s%d", op, dir, kd.Count)
}

// Expression is a parsed dice notation such as "2d6+3" or "4d6kh3"
type Expression struct {
	Count    int
	Sides    int
	Modifier int
	KeepDrop *KeepDrop
}

// String re-renders the expression as canonical notation
func (e *Expression) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dd%d", e.Count, e.Sides)
	if e.KeepDrop != nil {
		sb.WriteString(e.KeepDrop.String())
	}
	if e.Modifier > 0 {
		fmt.Fprintf(&sb, "+%d", e.Modifier)
	} else if e.Modifier < 0 {
		fmt.Fprintf(&sb, "%d", e.Modifier)
	}
	return sb.String()
}

// WithoutModifier returns a copy of the expression with the flat modifier
// removed. Critical hits reroll only this dice portion.
func (e *Expression) WithoutModifier() *Expression {
	copied := *e
	copied.Modifier = 0
	return &copied
}

// The keep/drop suffix is accepted either directly after the dice term or
// after the modifier; carrying suffixes in both positions is malformed.
var notationRegex = regexp.MustCompile(`(?i)^(\d*)d(\d+)([kd][hl]\d+)?([+-]\d+)?([kd][hl]\d+)?$`)

// Parse turns dice notation into an Expression. Whitespace is ignored and
// matching is case-insensitive. The grammar is
// [count]d<sides>[{+|-}modifier][kh<n>|kl<n>|dh<n>|dl<n>].
func Parse(notation string) (*Expression, error) {
	raw := strings.ReplaceAll(notation, " ", "")

	matches := notationRegex.FindStringSubmatch(raw)
	if matches == nil {
		return nil, errors.InvalidNotationf("invalid dice notation: %q", notation)
	}

	countStr, sidesStr, kdBefore, modStr, kdAfter := matches[1], matches[2], matches[3], matches[4], matches[5]

	count := 1
	if countStr != "" {
		parsed, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, errors.InvalidNotationf("invalid dice count in %q", notation)
		}
		count = parsed
	}
	if count < 1 {
		return nil, errors.InvalidNotationf("dice count must be positive in %q", notation)
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil || sides < 1 {
		return nil, errors.InvalidNotationf("die sides must be positive in %q", notation)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return nil, errors.InvalidNotationf("invalid modifier in %q", notation)
		}
	}

	if kdBefore != "" && kdAfter != "" {
		return nil, errors.InvalidNotationf("duplicate keep/drop suffix in %q", notation)
	}

	expr := &Expression{
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
	}

	if suffix := kdBefore + kdAfter; suffix != "" {
		kd, err := parseKeepDrop(suffix, count, notation)
		if err != nil {
			return nil, err
		}
		expr.KeepDrop = kd
	}

	return expr, nil
}

func parseKeepDrop(suffix string, diceCount int, notation string) (*KeepDrop, error) {
	lower := strings.ToLower(suffix)

	n, err := strconv.Atoi(lower[2:])
	if err != nil || n < 1 {
		return nil, errors.InvalidNotationf("keep/drop count must be positive in %q", notation)
	}

	// Keeping or dropping every die leaves nothing meaningful behind;
	// that is always caller error, so it fails at parse time.
	if n >= diceCount {
		return nil, errors.InvalidNotationf("keep/drop count %d must be less than dice count %d in %q", n, diceCount, notation)
	}

	return &KeepDrop{
		Highest: lower[1] == 'h',
		Drop:    lower[0] == 'd',
		Count:   n,
	}, nil
}
