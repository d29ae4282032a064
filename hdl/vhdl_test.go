package hdl

import (
	"os"
	"path"
	"testing"

	"github.com/pkg/errors"
)

const generated = `--------------------------------------------------------------------------------
--                      LeftShifter_Freq400_uid4
-- VHDL generated for Kintex7 @ 400MHz
-- This operator is part of the Infinite Virtual Library FloPoCoLib
--------------------------------------------------------------------------------
library ieee;
use ieee.std_logic_1164.all;

entity LeftShifter_Freq400_uid4 is
    port (clk : in std_logic;
          X : in  std_logic_vector(23 downto 0);
          R : out  std_logic_vector(47 downto 0)   );
end entity;

architecture arch of LeftShifter_Freq400_uid4 is
begin
   R <= X & (23 downto 0 => '0');
end architecture;

--------------------------------------------------------------------------------
--                           FPAdd_8_23_Freq400_uid2
-- VHDL generated for Kintex7 @ 400MHz
--------------------------------------------------------------------------------
library ieee;
use ieee.std_logic_1164.all;

entity FPAdd_8_23_Freq400_uid2 is
    port (clk : in std_logic;
          end_flag : out std_logic;
          R : out  std_logic_vector(8+23+2 downto 0)   );
end entity;

architecture arch of FPAdd_8_23_Freq400_uid2 is
begin
   shifter: entity work.LeftShifter_Freq400_uid4
      port map ( clk  => clk, X => X, R => R);
end architecture;
`

func TestTopEntityIsLastDeclared(t *testing.T) {
	design, err := ParseDesign("entity foo is port (a : in bit); end entity;\nentity bar is port (b : in bit); end entity;\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(design.Entities) != 2 {
		t.Fatalf("unexpected entity count %d", len(design.Entities))
	}
	if design.Top().Name != "bar" {
		t.Fatalf("unexpected top entity %q", design.Top().Name)
	}
	if design.Entities[0].Name != "foo" || design.Entities[1].Line != 2 {
		t.Fatalf("unexpected entities %+v", design.Entities)
	}
}

func TestLastOfTwoDeclarations(t *testing.T) {
	design, err := ParseDesign("...entity foo is...entity bar is...")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if design.Top().Name != "bar" {
		t.Fatalf("unexpected top entity %q", design.Top().Name)
	}
}

func TestUnclosedDeclarationsAreBoundedByTheNext(t *testing.T) {
	design, err := ParseDesign("entity foo is port (a : in bit);\nentity bar is port (b : in bit);\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(design.Entities) != 2 || design.Top().Name != "bar" || design.Top().Line != 2 {
		t.Fatalf("unexpected entities %+v", design.Entities)
	}
}

func TestGeneratedDesign(t *testing.T) {
	design, err := ParseDesign(generated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(design.Entities) != 2 {
		t.Fatalf("instantiations or end markers were taken for declarations: %+v", design.Entities)
	}
	if design.Top().Name != "FPAdd_8_23_Freq400_uid2" {
		t.Fatalf("unexpected top entity %q", design.Top().Name)
	}
	target, err := design.TargetName()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target != "Kintex7" {
		t.Fatalf("unexpected target %q", target)
	}
	if design.FrequencyMHz != 400 {
		t.Fatalf("unexpected frequency %v", design.FrequencyMHz)
	}
}

func TestClosingVariants(t *testing.T) {
	for _, text := range []string{
		"ENTITY Foo IS END ENTITY Foo;",
		"entity foo is end foo ;",
		"entity foo is end;",
		"entity foo is\n  port (x : in bit);\nend entity foo;",
	} {
		design, err := ParseDesign(text)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", text, err)
		}
		if design.Top().Name != "foo" && design.Top().Name != "Foo" {
			t.Fatalf("%q: unexpected top entity %q", text, design.Top().Name)
		}
	}
}

func TestCommentedDeclarationsAreIgnored(t *testing.T) {
	design, err := ParseDesign("-- entity ghost is\nentity real_one is end entity; -- entity other is\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(design.Entities) != 1 || design.Top().Name != "real_one" {
		t.Fatalf("unexpected entities %+v", design.Entities)
	}
}

func TestNoEntity(t *testing.T) {
	_, err := ParseDesign("library ieee;\n-- entity foo is\n")
	if !errors.Is(err, ErrNoEntity) {
		t.Fatalf("expected ErrNoEntity, got %v", err)
	}
}

func TestSingleMarkerIsAnError(t *testing.T) {
	_, err := ParseDesign("entity foo is\n  port (x : in bit);\n")
	var malformed *MalformedEntityError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedEntityError, got %v", err)
	}
	if malformed.Name != "foo" || malformed.Line != 1 {
		t.Fatalf("unexpected error details %+v", malformed)
	}
}

func TestMismatchedEndName(t *testing.T) {
	for _, text := range []string{
		"entity foo is end entity bar;",
		"entity foo is end entity bar;\nentity baz is end entity;",
	} {
		_, err := ParseDesign(text)
		var malformed *MalformedEntityError
		if !errors.As(err, &malformed) {
			t.Fatalf("%q: expected MalformedEntityError, got %v", text, err)
		}
		if malformed.Name != "foo" {
			t.Fatalf("%q: unexpected error details %+v", text, malformed)
		}
	}
}

func TestMissingTarget(t *testing.T) {
	design, err := ParseDesign("entity foo is end entity;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := design.TargetName(); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("expected ErrNoTarget, got %v", err)
	}
	if design.FrequencyMHz != 0 {
		t.Fatalf("unexpected frequency %v", design.FrequencyMHz)
	}
}

func TestHeaderWithoutFrequency(t *testing.T) {
	design, err := ParseDesign("-- VHDL generated for StratixV\nentity foo is end entity;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if design.Target != "StratixV" || design.FrequencyMHz != 0 {
		t.Fatalf("unexpected header %q %v", design.Target, design.FrequencyMHz)
	}
}

func TestReadDesign(t *testing.T) {
	file := path.Join(t.TempDir(), "flopoco.vhdl")
	if _, err := ReadDesign(file); err == nil {
		t.Fatal("reading a missing file should fail")
	}
	if err := os.WriteFile(file, []byte(generated), 0664); err != nil {
		t.Fatal(err)
	}
	design, err := ReadDesign(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if design.Top().Name != "FPAdd_8_23_Freq400_uid2" {
		t.Fatalf("unexpected top entity %q", design.Top().Name)
	}
}
