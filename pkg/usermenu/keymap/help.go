package keymap

import (
	"fmt"
	"strings"
)

// HelpMarkdown renders the bindings of the given contexts as a markdown
// table. Keys bound to the same command are merged into one row.
func (r *Registry) HelpMarkdown(contexts ...Context) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("# Account menu\n\n")
	sb.WriteString("Hover the avatar to open the menu. Moving away closes it after a short delay.\n")
	for _, ctx := range contexts {
		bindings := r.bindings[ctx]
		if len(bindings) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n| Keys | Action |\n|---|---|\n", title(ctx))

		var order []Command
		keys := make(map[Command][]string)
		desc := make(map[Command]string)
		for _, b := range bindings {
			if _, seen := keys[b.Command]; !seen {
				order = append(order, b.Command)
				desc[b.Command] = b.Description
			}
			keys[b.Command] = append(keys[b.Command], "`"+b.Key+"`")
		}
		for _, cmd := range order {
			fmt.Fprintf(&sb, "| %s | %s |\n", strings.Join(keys[cmd], " / "), desc[cmd])
		}
	}
	return sb.String()
}

func title(ctx Context) string {
	s := string(ctx)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
