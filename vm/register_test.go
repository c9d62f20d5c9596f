package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFileReset(t *testing.T) {
	rf := newRegisterFile()

	assert.Equal(t, Word(UserSpaceStart), rf.Get(PC))
	assert.Equal(t, FLAG_ZRO, rf.Flag())
	for r := R0; r <= R7; r++ {
		assert.Zero(t, rf.Get(r), r.String())
	}
}

func TestRegisterFileFlags(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value Word
		flag  Flag
	}){
		{0x0000, FLAG_ZRO},
		{0x0001, FLAG_POS},
		{0x7FFF, FLAG_POS},
		{0x8000, FLAG_NEG},
		{0xFFFF, FLAG_NEG},
	}

	for r := R0; r <= R7; r++ {
		for _, entry := range table {
			rf := newRegisterFile()
			rf.Set(r, entry.value)
			assert.Equal(entry.value, rf.Get(r))
			assert.Equal(entry.flag, rf.Flag(), "%v=0x%04x", r, entry.value)
		}
	}
}

func TestRegisterFilePCKeepsFlags(t *testing.T) {
	rf := newRegisterFile()
	rf.Set(R1, 0x8000)
	rf.Set(PC, 0)

	assert.Equal(t, Word(0), rf.Get(PC))
	assert.Equal(t, FLAG_NEG, rf.Flag())
}

func TestRegisterFileLinkKeepsFlags(t *testing.T) {
	rf := newRegisterFile()
	rf.link(0x3001)

	assert.Equal(t, Word(0x3001), rf.Get(R7))
	assert.Equal(t, FLAG_ZRO, rf.Flag())
}

func TestRegisterFileCondOnlyTakesOneFlag(t *testing.T) {
	rf := newRegisterFile()

	rf.Set(COND, Word(FLAG_POS))
	assert.Equal(t, FLAG_POS, rf.Flag())

	rf.Set(COND, Word(FLAG_POS|FLAG_NEG))
	assert.Equal(t, FLAG_POS, rf.Flag())

	rf.Set(COND, 0)
	assert.Equal(t, FLAG_POS, rf.Flag())
}

func TestRegisterFileUnknownRegister(t *testing.T) {
	rf := newRegisterFile()
	rf.Set(Register(42), 7)

	assert.Zero(t, rf.Get(Register(42)))
	assert.Equal(t, FLAG_ZRO, rf.Flag())
	assert.Equal(t, "R?42", Register(42).String())
}

func TestRegisterNames(t *testing.T) {
	assert.Equal(t, "R7", R7.String())
	assert.Equal(t, "PC", PC.String())
	assert.Equal(t, "COND", COND.String())
	assert.Equal(t, "N", FLAG_NEG.String())
}
