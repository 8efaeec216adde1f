package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

// A commandDoc holds the help text for one command, keyed by its full
// path in the tree. The docs are kept here rather than queried from the
// tree so the help command can render them in a stable order.
type commandDoc struct {
	brief       string
	usage       string
	description string
}

var cmdOrder = []string{
	"help",
	"assemble",
	"load",
	"disassemble",
	"sections",
	"symbols",
	"memory dump",
	"set",
	"quit",
}

var cmdDocs = map[string]commandDoc{
	"help": {
		brief: "Display help for a command",
		usage: "help [<command>]",
		description: "Display a summary of all commands, or detailed help" +
			" for a single command.",
	},
	"assemble": {
		brief: "Assemble a file and load the result",
		usage: "assemble <filename> [<origin>]",
		description: "Run the assembler on the specified file, producing a" +
			" binary file and a source map file if successful. The assembled" +
			" image is also loaded into the host so it can be inspected with" +
			" the disassemble and memory commands.",
	},
	"load": {
		brief: "Load a binary image",
		usage: "load <filename> [<origin>]",
		description: "Load the contents of a binary image file into the" +
			" host. If the file has an associated source map, it is loaded" +
			" too and provides the image's origin, sections and symbols." +
			" Without a source map the origin defaults to 0 unless given.",
	},
	"disassemble": {
		brief: "Disassemble code",
		usage: "disassemble [<address>] [<lines>]",
		description: "Disassemble machine code starting at the requested" +
			" address. The number of lines to disassemble may be specified" +
			" as an option. If no address is specified, the disassembly" +
			" continues from where the last disassembly left off.",
	},
	"sections": {
		brief: "List image sections",
		usage: "sections",
		description: "Display the name, base address and size of every" +
			" section in the loaded image. Requires a loaded source map.",
	},
	"symbols": {
		brief: "List image symbols",
		usage: "symbols",
		description: "Display the resolved address of every label in the" +
			" loaded image. Requires a loaded source map.",
	},
	"memory dump": {
		brief: "Dump memory at address",
		usage: "memory dump [<address>] [<bytes>]",
		description: "Dump the contents of the loaded image starting from" +
			" the specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the dump" +
			" continues from where the last dump left off.",
	},
	"set": {
		brief: "Set a configuration variable",
		usage: "set [<var> <value>]",
		description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
	},
	"quit": {
		brief:       "Quit the program",
		usage:       "quit",
		description: "Quit the program.",
	},
}

func descriptor(name, path string, fn func(*Host, cmd.Selection) error) cmd.CommandDescriptor {
	d := cmdDocs[path]
	return cmd.CommandDescriptor{
		Name:        name,
		Brief:       d.brief,
		Usage:       d.usage,
		Description: d.description,
		Data:        fn,
	}
}

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "sarchasm"})
	root.AddCommand(descriptor("help", "help", (*Host).cmdHelp))
	root.AddCommand(descriptor("assemble", "assemble", (*Host).cmdAssemble))
	root.AddCommand(descriptor("load", "load", (*Host).cmdLoad))
	root.AddCommand(descriptor("disassemble", "disassemble", (*Host).cmdDisassemble))
	root.AddCommand(descriptor("sections", "sections", (*Host).cmdSections))
	root.AddCommand(descriptor("symbols", "symbols", (*Host).cmdSymbols))
	root.AddCommand(descriptor("set", "set", (*Host).cmdSet))
	root.AddCommand(descriptor("quit", "quit", (*Host).cmdQuit))

	me := root.AddSubtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	me.AddCommand(descriptor("dump", "memory dump", (*Host).cmdMemoryDump))

	root.AddShortcut("a", "assemble")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("l", "load")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("q", "quit")
	root.AddShortcut("?", "help")

	cmds = root
}
