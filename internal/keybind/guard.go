package keybind

import "imgmanage/internal/logging"

// BlockedBy wraps fn so that it does nothing while blocked reports true.
// Key actions are wrapped with the input box's focus check so typing is
// never taken as a command.
func BlockedBy(blocked func() bool, log *logging.Logger, name string, fn Action) Action {
	if log == nil {
		log = logging.Nop()
	}
	return func(args ...any) error {
		if blocked() {
			log.Debug("input has focus; blocking call", "action", name)
			return nil
		}
		log.Trace("call", "action", name, "args", args)
		return fn(args...)
	}
}
