package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/figmark/internal/ui/pretty"
)

// helpGroupAnnotation places a flag in a named help section instead of the
// command's plain "Flags:" list.
const helpGroupAnnotation = "figmark_help_group"

const renderingFlagsGroup = "Rendering Flags"

// setFlagGroup annotates the named flags. Unknown names are ignored.
func setFlagGroup(flags *pflag.FlagSet, group string, names ...string) {
	for _, name := range names {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if flag.Annotations == nil {
			flag.Annotations = make(map[string][]string)
		}
		flag.Annotations[helpGroupAnnotation] = []string{group}
	}
}

// installHelp replaces cobra's help and usage output on root and, through
// inheritance, on every subcommand.
func installHelp(root *cobra.Command) {
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		printer := newHelpPrinter(cmd)
		if err := printer.help(cmd.OutOrStdout(), cmd); err != nil {
			cmd.PrintErrln(err)
		}
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return newHelpPrinter(cmd).usage(cmd.OutOrStderr(), cmd)
	})
}

type helpPrinter struct {
	styles *pretty.Styles
}

// newHelpPrinter resolves --color when help is printed, after flag parsing.
func newHelpPrinter(cmd *cobra.Command) *helpPrinter {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return &helpPrinter{styles: pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))}
}

func (p *helpPrinter) help(w io.Writer, cmd *cobra.Command) error {
	var b strings.Builder

	b.WriteString(p.styles.Bold.Render(cmd.CommandPath()))
	if cmd.Version != "" {
		b.WriteString(" " + p.styles.Dim.Render(cmd.Version))
	}
	b.WriteString("\n\n")

	text := cmd.Long
	if text == "" {
		text = cmd.Short
	}
	if text != "" {
		b.WriteString(trimLines(text) + "\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write help: %w", err)
	}
	return p.usage(w, cmd)
}

func (p *helpPrinter) usage(w io.Writer, cmd *cobra.Command) error {
	var b strings.Builder

	p.heading(&b, "Usage:")
	if cmd.Runnable() {
		b.WriteString("  " + p.styles.Bold.Render(cmd.UseLine()) + "\n")
	}
	if cmd.HasAvailableSubCommands() {
		b.WriteString("  " + p.styles.Bold.Render(cmd.CommandPath()+" [command]") + "\n")
	}

	if len(cmd.Aliases) > 0 {
		p.heading(&b, "Aliases:")
		b.WriteString("  " + p.styles.Dim.Render(strings.Join(cmd.Aliases, ", ")) + "\n")
	}

	if cmd.HasExample() {
		p.heading(&b, "Examples:")
		b.WriteString(p.styles.Dim.Render(cmd.Example) + "\n")
	}

	if cmd.HasAvailableSubCommands() {
		p.heading(&b, "Available Commands:")
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() && sub.Name() != "help" {
				continue
			}
			name := sub.Name() + strings.Repeat(" ", max(0, cmd.NamePadding()-len(sub.Name())))
			b.WriteString("  " + p.styles.FilePath.Render(name) + " " + sub.Short + "\n")
		}
	}

	groups, order := groupFlags(cmd.LocalFlags())
	for _, title := range order {
		p.heading(&b, title+":")
		b.WriteString(p.flagUsages(groups[title]) + "\n")
	}

	if cmd.HasAvailableInheritedFlags() {
		p.heading(&b, "Global Flags:")
		b.WriteString(p.flagUsages(cmd.InheritedFlags()) + "\n")
	}

	if hasEnvOverrides(cmd) {
		p.heading(&b, "Environment:")
		b.WriteString("  Settings can also be given as FIGMARK_* variables; run " +
			p.styles.Bold.Render("figmark env") + " to list them.\n")
	}

	if cmd.HasAvailableSubCommands() {
		b.WriteString("\nUse \"" + p.styles.Bold.Render(cmd.CommandPath()+" [command] --help") +
			"\" for more information about a command.\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}

func (p *helpPrinter) heading(b *strings.Builder, title string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(p.styles.SummaryTitle.Render(title) + "\n")
}

// groupFlags splits visible flags by their help group. "Flags" comes first,
// the other groups follow in first-seen order.
func groupFlags(flags *pflag.FlagSet) (map[string]*pflag.FlagSet, []string) {
	groups := make(map[string]*pflag.FlagSet)
	var order []string

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		title := "Flags"
		if group := flag.Annotations[helpGroupAnnotation]; len(group) > 0 {
			title = group[0]
		}
		set, ok := groups[title]
		if !ok {
			set = pflag.NewFlagSet(title, pflag.ContinueOnError)
			set.SortFlags = flags.SortFlags
			groups[title] = set
			order = append(order, title)
		}
		set.AddFlag(flag)
	})

	for i, title := range order {
		if title == "Flags" && i > 0 {
			copy(order[1:i+1], order[:i])
			order[0] = title
			break
		}
	}
	return groups, order
}

// flagUsages styles pflag's aligned usage lines: flag names in one color, the
// value type dimmed, the description plain.
func (p *helpPrinter) flagUsages(flags *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = p.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (p *helpPrinter) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	split := strings.Index(body, "  ")
	if split < 0 {
		return line
	}
	names, desc := body[:split], body[split:]

	fields := strings.Fields(names)
	for i, field := range fields {
		if strings.HasPrefix(field, "-") {
			name, comma := strings.CutSuffix(field, ",")
			field = p.styles.TokenTag.Render(name)
			if comma {
				field += ","
			}
		} else {
			field = p.styles.Dim.Render(field)
		}
		fields[i] = field
	}

	// The padding before desc keeps pflag's column alignment.
	return indent + strings.Join(fields, " ") + desc
}

// hasEnvOverrides reports whether cmd reads FIGMARK_* variables: every
// command that takes the rendering flags does.
func hasEnvOverrides(cmd *cobra.Command) bool {
	return cmd.Flags().Lookup("flavor") != nil
}

func trimLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
