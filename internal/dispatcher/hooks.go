package dispatcher

import "github.com/dshills/richtext/internal/dispatcher/handler"

// PreDispatchHook runs before the handler. It may rewrite the command;
// returning false cancels it with a StatusCancelled result.
type PreDispatchHook interface {
	PreDispatch(cmd *handler.Command) bool
}

// PostDispatchHook runs after the handler and may rewrite the result.
type PostDispatchHook interface {
	PostDispatch(cmd *handler.Command, result *handler.Result)
}

type PreDispatchFunc func(cmd *handler.Command) bool

func (f PreDispatchFunc) PreDispatch(cmd *handler.Command) bool { return f(cmd) }

type PostDispatchFunc func(cmd *handler.Command, result *handler.Result)

func (f PostDispatchFunc) PostDispatch(cmd *handler.Command, result *handler.Result) {
	f(cmd, result)
}

// maxLoggedArgs bounds the argument JSON written per command; setContents
// can carry a whole document.
const maxLoggedArgs = 120

// LoggingHook traces every command and its outcome through a printf-style
// function. Register it as both a pre and a post hook.
type LoggingHook struct {
	LogFunc func(format string, args ...any)
}

func NewLoggingHook(logFunc func(format string, args ...any)) *LoggingHook {
	return &LoggingHook{LogFunc: logFunc}
}

func (h *LoggingHook) PreDispatch(cmd *handler.Command) bool {
	if h.LogFunc == nil {
		return true
	}
	args := cmd.Args.Raw
	if len(args) > maxLoggedArgs {
		args = args[:maxLoggedArgs] + "..."
	}
	h.LogFunc("dispatching %s %s", cmd.Name, args)
	return true
}

func (h *LoggingHook) PostDispatch(cmd *handler.Command, result *handler.Result) {
	switch {
	case h.LogFunc == nil:
	case result.Error != nil:
		h.LogFunc("%s -> %s: %v", cmd.Name, result.Status, result.Error)
	default:
		h.LogFunc("%s -> %s", cmd.Name, result.Status)
	}
}
