package clipboard

import "testing"

func TestCommand(t *testing.T) {
	cmd, err := command()
	if err != nil && cmd != nil {
		t.Error("command returned both a command and an error")
	}
	if err == nil && cmd == nil {
		t.Error("command returned neither a command nor an error")
	}
}

func TestCopy(t *testing.T) {
	if !Available() {
		t.Skip("no clipboard tool on this system")
	}
	if err := Copy("bartholdi2012.pdf, p. 3"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
}
