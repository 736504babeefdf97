// Package commands parses the textual command surface the view layer accepts
// and dispatches parsed commands through a handler table.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"todotui/internal/model"
)

type Type string

const (
	TypeAdd            Type = "add"
	TypeToggle         Type = "toggle"
	TypeDelete         Type = "delete"
	TypeUpdate         Type = "update"
	TypeClearCompleted Type = "clear-completed"
	TypeClearAll       Type = "clear-all"
	TypeSearch         Type = "search"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text     string
	Priority model.Priority
}

type ToggleArgs struct {
	ID int64
}

type DeleteArgs struct {
	ID int64
}

type UpdateArgs struct {
	ID   int64
	Text string
}

type SearchArgs struct {
	Query string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Toggle *ToggleArgs
	Delete *DeleteArgs
	Update *UpdateArgs
	Search *SearchArgs
}

// Parse turns a palette line like "add Buy milk !high" or "clear completed"
// into a typed command. A trailing !low/!medium/!high token on add sets the
// priority; everything else is the task text.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch head {
	case "add":
		return parseAdd(input, args)
	case "toggle":
		return parseToggle(input, args)
	case "delete", "del":
		return parseDelete(input, args)
	case "update":
		return parseUpdate(input, args)
	case "clear":
		return parseClear(input, args)
	case "search":
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: strings.Join(args, " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	priority := model.Priority("")
	if n := len(args); n > 0 && strings.HasPrefix(args[n-1], "!") {
		p, err := model.ParsePriority(strings.TrimPrefix(args[n-1], "!"))
		if err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority: %s", args[n-1])}
		}
		priority = p
		args = args[:n-1]
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text, Priority: priority}}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	id, err := parseID("toggle", args)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{ID: id}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	id, err := parseID("delete", args)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{ID: id}}, nil
}

func parseUpdate(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "update requires an id and new text"}
	}
	id, err := parseID("update", args[:1])
	if err != nil {
		return Command{}, err
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "update requires new text"}
	}
	return Command{Type: TypeUpdate, Raw: raw, Update: &UpdateArgs{ID: id, Text: text}}, nil
}

func parseClear(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear requires 'completed' or 'all'"}
	}
	switch strings.ToLower(args[0]) {
	case "completed":
		return Command{Type: TypeClearCompleted, Raw: raw}, nil
	case "all":
		return Command{Type: TypeClearAll, Raw: raw}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("clear: unknown target %q", args[0])}
	}
}

func parseID(verb string, args []string) (int64, error) {
	if len(args) == 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", verb)}
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: invalid task id %q", verb, args[0])}
	}
	return id, nil
}
