package ast

import (
	"strconv"
	"strings"
)

// Render turns a parsed score back into source notation. For trees produced
// by the parser it is a one-to-one inverse: parsing the output yields an
// equivalent tree.
func (s *Score) Render() string {
	var b strings.Builder
	for _, item := range s.Items {
		switch item.Kind {
		case ItemComment:
			b.WriteString("#")
			b.WriteString(item.Comment)
			b.WriteString("\n")
		case ItemMeasure:
			parts := make([]string, 0, len(item.Measure.Nodes))
			for _, n := range item.Measure.Nodes {
				parts = append(parts, n.String())
			}
			b.WriteString(strings.Join(parts, " "))
			if item.Measure.Break {
				b.WriteString("\n")
			} else {
				b.WriteString(" | ")
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (n Node) String() string {
	switch n.Kind {
	case NodeRest:
		return "N.C."
	case NodeSustain:
		return "="
	case NodeRepeat:
		return "%"
	case NodeChord:
		return n.Chord.String()
	}
	return ""
}

func (c *ChordNode) String() string {
	var b strings.Builder
	b.WriteString(c.Key.String())
	for _, m := range c.Modifiers {
		b.WriteString(m.String())
	}
	if len(c.Tensions) > 0 {
		parts := make([]string, 0, len(c.Tensions))
		for _, t := range c.Tensions {
			parts = append(parts, t.String())
		}
		b.WriteString("(")
		b.WriteString(strings.Join(parts, ","))
		b.WriteString(")")
	}
	if c.On != nil {
		b.WriteString("/")
		b.WriteString(c.On.String())
	}
	return b.String()
}

func (m Modifier) String() string {
	switch m.Kind {
	case ModMajor:
		if m.Degree == 5 {
			return ""
		}
		return strconv.Itoa(m.Degree)
	case ModMinor:
		if m.Degree == 5 {
			return "m"
		}
		return "m" + strconv.Itoa(m.Degree)
	case ModMinorMajor7:
		return "mM7"
	case ModSus2:
		return "sus2"
	case ModSus4:
		return "sus4"
	case ModFlat5th:
		return "b5"
	case ModAug:
		return "aug"
	case ModAug7:
		return "aug7"
	case ModDim:
		return "dim"
	case ModDim7:
		return "dim7"
	case ModOmit:
		return "omit" + strconv.Itoa(m.Degree)
	case ModAdd:
		return "add" + strconv.Itoa(m.Degree)
	case ModTension:
		return m.Acc.String() + strconv.Itoa(m.Degree)
	}
	return ""
}
