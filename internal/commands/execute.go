package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Expand   func() (Result, error)
	Collapse func() (Result, error)
	Toggle   func(ToggleArgs) (Result, error)
	Refresh  func() (Result, error)
	Theme    func(ThemeArgs) (Result, error)
	Export   func(ExportArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeExpand:
		if handlers.Expand == nil {
			return Result{}, missing("expand")
		}
		return handlers.Expand()
	case TypeCollapse:
		if handlers.Collapse == nil {
			return Result{}, missing("collapse")
		}
		return handlers.Collapse()
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, missing("toggle")
		}
		return handlers.Toggle(*cmd.Toggle)
	case TypeRefresh:
		if handlers.Refresh == nil {
			return Result{}, missing("refresh")
		}
		return handlers.Refresh()
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing("theme")
		}
		return handlers.Theme(*cmd.Theme)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, missing("export")
		}
		return handlers.Export(*cmd.Export)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}
