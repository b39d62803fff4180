package shell

import (
	"fmt"
	"io"
	"sort"
)

const bashInit = `# daybook shell integration
__daybook_prompt_hook() {
  eval "$(command daybook status --env 2>/dev/null)"
}

daybook_prompt_info() {
  command daybook status 2>/dev/null
}

if [[ -z "$PROMPT_COMMAND" ]]; then
  PROMPT_COMMAND="__daybook_prompt_hook"
else
  PROMPT_COMMAND="__daybook_prompt_hook;${PROMPT_COMMAND}"
fi

eval "$(command daybook completion bash 2>/dev/null)"
`

const zshInit = `# daybook shell integration
__daybook_prompt_hook() {
  eval "$(command daybook status --env 2>/dev/null)"
}

daybook_prompt_info() {
  command daybook status 2>/dev/null
}

autoload -Uz add-zsh-hook
add-zsh-hook precmd __daybook_prompt_hook

eval "$(command daybook completion zsh 2>/dev/null)"
`

const fishInit = `# daybook shell integration
function __daybook_prompt_hook --on-event fish_prompt
  command daybook status --env 2>/dev/null | string replace -r '^export ' 'set -gx ' | string replace '=' ' ' | source
end

function daybook_prompt_info
  command daybook status 2>/dev/null
end

command daybook completion fish 2>/dev/null | source
`

var scripts = map[string]string{
	"bash": bashInit,
	"zsh":  zshInit,
	"fish": fishInit,
}

// Shells lists the supported shells in sorted order.
func Shells() []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteInit writes the integration script for the named shell.
func WriteInit(w io.Writer, shell string) error {
	script, ok := scripts[shell]
	if !ok {
		return fmt.Errorf("unsupported shell %q (supported: %v)", shell, Shells())
	}
	_, err := io.WriteString(w, script)
	return err
}
