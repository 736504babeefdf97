package commands

import (
	"errors"
	"testing"

	"todotui/internal/model"
)

func parseOK(t *testing.T, input string) Command {
	t.Helper()
	cmd, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", input, err)
	}
	return cmd
}

func parseCode(t *testing.T, input string) ErrorCode {
	t.Helper()
	_, err := Parse(input)
	if err == nil {
		t.Fatalf("Parse(%q): expected error, got nil", input)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Parse(%q): expected CommandError, got: %v", input, err)
	}
	return cmdErr.Code
}

func TestParseAdd(t *testing.T) {
	cmd := parseOK(t, "add Buy milk")
	if cmd.Type != TypeAdd || cmd.Add == nil {
		t.Fatalf("unexpected command: %#v", cmd)
	}
	if cmd.Add.Text != "Buy milk" {
		t.Fatalf("unexpected text: %q", cmd.Add.Text)
	}
	if cmd.Add.Priority != "" {
		t.Fatalf("expected no explicit priority, got %q", cmd.Add.Priority)
	}
}

func TestParseAddWithPriority(t *testing.T) {
	cmd := parseOK(t, "add Walk dog !high")
	if cmd.Add.Text != "Walk dog" {
		t.Fatalf("unexpected text: %q", cmd.Add.Text)
	}
	if cmd.Add.Priority != model.PriorityHigh {
		t.Fatalf("unexpected priority: %q", cmd.Add.Priority)
	}
}

func TestParseAddBadPriority(t *testing.T) {
	if code := parseCode(t, "add Walk dog !urgent"); code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %q", code)
	}
}

func TestParseColonPrefixAndCase(t *testing.T) {
	cmd := parseOK(t, ":ADD Buy milk")
	if cmd.Type != TypeAdd {
		t.Fatalf("unexpected type: %q", cmd.Type)
	}
}

func TestParseIDCommands(t *testing.T) {
	cmd := parseOK(t, "toggle 3")
	if cmd.Type != TypeToggle || cmd.Toggle.ID != 3 {
		t.Fatalf("unexpected command: %#v", cmd)
	}

	cmd = parseOK(t, "del 7")
	if cmd.Type != TypeDelete || cmd.Delete.ID != 7 {
		t.Fatalf("unexpected command: %#v", cmd)
	}

	cmd = parseOK(t, "update 2 Buy oat milk")
	if cmd.Type != TypeUpdate || cmd.Update.ID != 2 || cmd.Update.Text != "Buy oat milk" {
		t.Fatalf("unexpected command: %#v", cmd)
	}
}

func TestParseInvalidIDs(t *testing.T) {
	for _, input := range []string{"toggle abc", "toggle 0", "toggle -1", "delete", "update 1"} {
		if code := parseCode(t, input); code != ErrCodeInvalidArgument {
			t.Fatalf("Parse(%q): expected invalid_argument, got %q", input, code)
		}
	}
}

func TestParseClear(t *testing.T) {
	if cmd := parseOK(t, "clear completed"); cmd.Type != TypeClearCompleted {
		t.Fatalf("unexpected type: %q", cmd.Type)
	}
	if cmd := parseOK(t, "clear all"); cmd.Type != TypeClearAll {
		t.Fatalf("unexpected type: %q", cmd.Type)
	}
	if code := parseCode(t, "clear done"); code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %q", code)
	}
}

func TestParseSearch(t *testing.T) {
	cmd := parseOK(t, "search walk the dog")
	if cmd.Type != TypeSearch || cmd.Search.Query != "walk the dog" {
		t.Fatalf("unexpected command: %#v", cmd)
	}
	// Empty query is valid: it means "show everything".
	cmd = parseOK(t, "search")
	if cmd.Search.Query != "" {
		t.Fatalf("expected empty query, got %q", cmd.Search.Query)
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	if code := parseCode(t, "   "); code != ErrCodeEmptyInput {
		t.Fatalf("expected empty_input, got %q", code)
	}
	if code := parseCode(t, ":"); code != ErrCodeEmptyInput {
		t.Fatalf("expected empty_input, got %q", code)
	}
	if code := parseCode(t, "frobnicate 1"); code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown_command, got %q", code)
	}
}

func TestExecuteDispatch(t *testing.T) {
	var got AddArgs
	handlers := Handlers{
		Add: func(args AddArgs) (Result, error) {
			got = args
			return Result{Message: "added"}, nil
		},
	}

	cmd := parseOK(t, "add Buy milk !low")
	res, err := Execute(cmd, handlers)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res.Message != "added" {
		t.Fatalf("unexpected result: %#v", res)
	}
	if got.Text != "Buy milk" || got.Priority != model.PriorityLow {
		t.Fatalf("handler received wrong args: %#v", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd := parseOK(t, "clear all")
	_, err := Execute(cmd, Handlers{})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler_missing, got: %v", err)
	}
}
