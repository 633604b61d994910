package lc3

import (
	"fmt"
	"regexp"
	"strings"
)

// Regs holds the eight general-purpose registers R0-R7.
type Regs struct {
	R0, R1, R2, R3, R4, R5, R6, R7 Value
}

// regDumpPattern matches NAME=xHHHH pairs, the shape lc3sim uses both
// in its post-halt status and in printregs output.
var regDumpPattern = regexp.MustCompile(`(\w+)=(x[0-9a-fA-F]+)`)

// ParseRegs extracts R0-R7 from a register dump. All eight must be
// present or it fails with a *ResponseParseError. Non-register pairs in
// the dump (PC, IR, PSR) are ignored.
func ParseRegs(dump string) (Regs, error) {
	found := map[string]Value{}
	for _, m := range regDumpPattern.FindAllStringSubmatch(dump, -1) {
		v, err := ParseValue(m[2])
		if err != nil {
			return Regs{}, &ResponseParseError{Detail: "bad register value", Raw: m[0]}
		}
		found[strings.ToUpper(m[1])] = v
	}
	var regs Regs
	slots := []*Value{&regs.R0, &regs.R1, &regs.R2, &regs.R3, &regs.R4, &regs.R5, &regs.R6, &regs.R7}
	for i, slot := range slots {
		name := fmt.Sprintf("R%d", i)
		v, ok := found[name]
		if !ok {
			return Regs{}, &ResponseParseError{Detail: "missing register " + name, Raw: dump}
		}
		*slot = v
	}
	return regs, nil
}

// Reg returns register i (0-7) by index.
func (r Regs) Reg(i int) Value {
	switch i {
	case 0:
		return r.R0
	case 1:
		return r.R1
	case 2:
		return r.R2
	case 3:
		return r.R3
	case 4:
		return r.R4
	case 5:
		return r.R5
	case 6:
		return r.R6
	case 7:
		return r.R7
	}
	panic(fmt.Sprintf("register index %d out of range", i))
}

func (r Regs) String() string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&sb, "R%d: %s\n", i, r.Reg(i))
	}
	return sb.String()
}
