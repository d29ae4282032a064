// Package hdl reads the facts the synthesis drivers need out of a VHDL design description: the
// declared entities and the generator header FloPoCo writes in front of each of them.
package hdl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/daedaleanai/runsyn/util"
)

// ErrNoEntity is returned for descriptions that declare no entity at all.
var ErrNoEntity = errors.New("no entity declaration found")

// ErrNoTarget is returned when the description carries no generator header naming a target.
var ErrNoTarget = errors.New("no '-- VHDL generated for <target>' header found")

// MalformedEntityError reports an entity declaration that is closed by the wrong `end`, or a
// lone declaration that is never closed.
type MalformedEntityError struct {
	Name   string
	Line   int
	Reason string
}

func (e *MalformedEntityError) Error() string {
	return fmt.Sprintf("entity '%s' declared on line %d %s", e.Name, e.Line, e.Reason)
}

// Entity is one `entity <name> is ... end;` declaration.
type Entity struct {
	Name string
	Line int

	offset int
}

// Design is what is known about a VHDL file.
type Design struct {
	// Entities in declaration order.
	Entities []Entity
	// Target is the synthesis target named by the generator header of the top entity.
	// Empty if there is no such header.
	Target string
	// FrequencyMHz is the target frequency of the same header, zero if absent.
	FrequencyMHz float64
}

var (
	declarationRegexp = regexp.MustCompile(`(?i)\bentity\s+([a-z][a-z0-9_]*)\s+is\b`)
	endRegexp         = regexp.MustCompile(`(?i)\bend\b`)
	headerRegexp      = regexp.MustCompile(
		`(?im)^[ \t]*--[ \t]*VHDL generated for[ \t]+([A-Za-z0-9_]+)(?:[ \t]*@[ \t]*([0-9]+(?:\.[0-9]+)?)[ \t]*MHz)?`)
)

// Top returns the top-level entity. Generated files declare sub-components first, so it is
// the last declared one.
func (d *Design) Top() Entity {
	return d.Entities[len(d.Entities)-1]
}

// TargetName returns the target named in the generator header or ErrNoTarget.
func (d *Design) TargetName() (string, error) {
	if d.Target == "" {
		return "", ErrNoTarget
	}
	return d.Target, nil
}

// ReadDesign parses the VHDL file at `filePath`.
func ReadDesign(filePath string) (*Design, error) {
	text, err := util.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	design, err := ParseDesign(text)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid design description '%s'", filePath)
	}
	return design, nil
}

// ParseDesign parses VHDL source text.
func ParseDesign(text string) (*Design, error) {
	code := blankComments(text)

	matches := declarationRegexp.FindAllStringSubmatchIndex(code, -1)
	if len(matches) == 0 {
		return nil, ErrNoEntity
	}

	// Each declaration extends to the next one. A declaration and its closing `end` are two
	// markers, and so are two declarations; a single unclosed declaration is not enough to
	// trust the name.
	design := &Design{}
	markers := 0
	for idx, m := range matches {
		entity := Entity{
			Name:   code[m[2]:m[3]],
			Line:   lineOf(text, m[0]),
			offset: m[0],
		}
		bodyEnd := len(code)
		if idx+1 < len(matches) {
			bodyEnd = matches[idx+1][0]
		}
		closed, err := checkClosing(entity, code[m[1]:bodyEnd])
		if err != nil {
			return nil, err
		}
		markers++
		if closed {
			markers++
		}
		design.Entities = append(design.Entities, entity)
	}
	if markers < 2 {
		top := design.Top()
		return nil, &MalformedEntityError{Name: top.Name, Line: top.Line, Reason: "is never terminated"}
	}

	top := design.Top()
	for _, h := range headerRegexp.FindAllStringSubmatchIndex(text, -1) {
		if h[0] > top.offset {
			break
		}
		design.Target = text[h[2]:h[3]]
		design.FrequencyMHz = 0
		if h[4] >= 0 {
			freq, err := strconv.ParseFloat(text[h[4]:h[5]], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid frequency on line %d", lineOf(text, h[0]))
			}
			design.FrequencyMHz = freq
		}
	}
	return design, nil
}

// checkClosing reports whether the declaration body is closed. The first `end` of the body, if
// any, must close this entity.
func checkClosing(entity Entity, body string) (bool, error) {
	loc := endRegexp.FindStringIndex(body)
	if loc == nil {
		return false, nil
	}
	closing := regexp.MustCompile(`(?i)^end(?:\s+entity)?(?:\s+` + regexp.QuoteMeta(entity.Name) + `)?\s*;`)
	if !closing.MatchString(body[loc[0]:]) {
		return false, &MalformedEntityError{Name: entity.Name, Line: entity.Line, Reason: "is not closed by 'end entity;'"}
	}
	return true, nil
}

// blankComments replaces `--` comments with spaces, keeping offsets intact.
func blankComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inString, inComment := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\n':
			inString, inComment = false, false
		case inComment:
			c = ' '
		case c == '"':
			inString = !inString
		case !inString && c == '-' && i+1 < len(text) && text[i+1] == '-':
			inComment = true
			c = ' '
		}
		b.WriteByte(c)
	}
	return b.String()
}

func lineOf(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
