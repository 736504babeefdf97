package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add            func(AddArgs) (Result, error)
	Toggle         func(ToggleArgs) (Result, error)
	Delete         func(DeleteArgs) (Result, error)
	Update         func(UpdateArgs) (Result, error)
	ClearCompleted func() (Result, error)
	ClearAll       func() (Result, error)
	Search         func(SearchArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "toggle handler not configured"}
		}
		return handlers.Toggle(*cmd.Toggle)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeUpdate:
		if handlers.Update == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "update handler not configured"}
		}
		return handlers.Update(*cmd.Update)
	case TypeClearCompleted:
		if handlers.ClearCompleted == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear completed handler not configured"}
		}
		return handlers.ClearCompleted()
	case TypeClearAll:
		if handlers.ClearAll == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear all handler not configured"}
		}
		return handlers.ClearAll()
	case TypeSearch:
		if handlers.Search == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "search handler not configured"}
		}
		return handlers.Search(*cmd.Search)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
