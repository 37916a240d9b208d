package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeExpand   Type = "expand"
	TypeCollapse Type = "collapse"
	TypeToggle   Type = "toggle"
	TypeRefresh  Type = "refresh"
	TypeTheme    Type = "theme"
	TypeExport   Type = "export"
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

type ToggleArgs struct {
	Title string
}

type ThemeArgs struct {
	// Name is empty when the command should cycle to the next theme.
	Name string
}

type ExportArgs struct {
	Format string
}

type Command struct {
	Type   Type
	Raw    string
	Toggle *ToggleArgs
	Theme  *ThemeArgs
	Export *ExportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeExpand, TypeCollapse, TypeRefresh:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeToggle:
		return parseToggle(input, raw)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeExport:
		return parseExport(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseToggle keeps the title's inner spacing, since titles are matched
// exactly.
func parseToggle(input string, raw string) (Command, error) {
	title := strings.TrimSpace(raw[len(TypeToggle):])
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires a section title"}
	}
	return Command{Type: TypeToggle, Raw: input, Toggle: &ToggleArgs{Title: title}}, nil
}

func parseTheme(input string, args []string) (Command, error) {
	if len(args) > 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme takes at most one argument"}
	}
	name := ""
	if len(args) == 1 {
		name = strings.ToLower(args[0])
		switch name {
		case "light", "dark", "system":
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme: %s", args[0])}
		}
	}
	return Command{Type: TypeTheme, Raw: input, Theme: &ThemeArgs{Name: name}}, nil
}

func parseExport(input string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a format: md or pdf"}
	}
	format := strings.ToLower(args[0])
	if format != "md" && format != "pdf" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unsupported export format: %s", args[0])}
	}
	return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Format: format}}, nil
}
