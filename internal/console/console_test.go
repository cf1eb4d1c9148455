package console

import (
	"strings"
	"testing"
)

func TestWriterNotifierLevels(t *testing.T) {
	var b strings.Builder
	n := WriterNotifier{W: &b}

	n.Notify(LevelError, "server returned 500")
	n.Notify(LevelSuccess, "trope created")
	n.Notify(LevelInfo, "loading")

	out := b.String()
	if !strings.Contains(out, "Error: server returned 500") {
		t.Errorf("error notice missing prefix: %q", out)
	}
	if !strings.Contains(out, "trope created") || !strings.Contains(out, "loading") {
		t.Errorf("notices missing: %q", out)
	}
}

// scriptedConfirmer is the headless stand-in used by workflow tests.
type scriptedConfirmer struct {
	answer bool
	asked  []string
}

func (s *scriptedConfirmer) Confirm(message string) (bool, error) {
	s.asked = append(s.asked, message)
	return s.answer, nil
}

func TestConfirmerInterface(t *testing.T) {
	var c Confirmer = &scriptedConfirmer{answer: true}
	ok, err := c.Confirm(`Delete Trope "MacGuffin"?`)
	if err != nil || !ok {
		t.Errorf("Confirm = %v, %v", ok, err)
	}
	sc := c.(*scriptedConfirmer)
	if len(sc.asked) != 1 || !strings.Contains(sc.asked[0], "MacGuffin") {
		t.Errorf("confirmation must name the entity: %v", sc.asked)
	}
}
