package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/pflag"

	"css-layout-builder/internal/catalog"
	"css-layout-builder/internal/config"
	"css-layout-builder/internal/editor"
	"css-layout-builder/internal/export"
	"css-layout-builder/internal/history"
	"css-layout-builder/internal/library"
	"css-layout-builder/internal/model"
	"css-layout-builder/internal/storage"
	"css-layout-builder/internal/templating"
	"css-layout-builder/internal/tui"
	"css-layout-builder/pkg/fsutils"
)

var errUsage = errors.New("invalid usage")

// cli carries the streams and services shared by all commands. Services are
// set up by open once the command's flags are parsed.
type cli struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	cfg        *config.Config
	logger     *slog.Logger
	catalog    *catalog.Catalog
	library    *library.Manager
	preview    *templating.Engine
	exporter   *export.Exporter
	closeStore func() error

	clipboard   export.Clipboard
	openBrowser func(path string) error
	runTUI      func(tui.Deps) error
}

func newCLI(in io.Reader, out, errOut io.Writer) *cli {
	return &cli{
		in:          bufio.NewReader(in),
		out:         out,
		errOut:      errOut,
		closeStore:  func() error { return nil },
		openBrowser: openBrowser,
		runTUI:      tui.Run,
	}
}

func main() {
	c := newCLI(os.Stdin, os.Stdout, os.Stderr)
	err := c.run(os.Args[1:])
	if cerr := c.closeStore(); cerr != nil && err == nil {
		err = cerr
	}
	switch {
	case errors.Is(err, errUsage):
		os.Exit(2)
	case err != nil:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (c *cli) printUsage() {
	fmt.Fprintln(c.out, "Usage: layout-cli <command> [options]")
	fmt.Fprintln(c.out, "Available commands:")
	fmt.Fprintln(c.out, "  templates     List the starting templates")
	fmt.Fprintln(c.out, "  generate [--template <id> | --saved <id>] [--type flexbox|grid] [--part html|css|both] [--write] [--copy]")
	fmt.Fprintln(c.out, "                Print, copy or write the generated markup and stylesheet")
	fmt.Fprintln(c.out, "  saved list | save --name <name> | rename --id <id> --name <name> | delete --id <id> [--yes] | export --id <id>")
	fmt.Fprintln(c.out, "                Manage saved layouts")
	fmt.Fprintln(c.out, "  preview [--template <id> | --saved <id>] [--mode desktop|mobile] [--out <file>] [--open]")
	fmt.Fprintln(c.out, "                Write a standalone preview page")
	fmt.Fprintln(c.out, "  edit [--template <id> | --saved <id>]")
	fmt.Fprintln(c.out, "                Open the interactive terminal editor")
	fmt.Fprintln(c.out, "Every command also accepts the configuration flags, see <command> --help.")
}

func (c *cli) run(args []string) error {
	if len(args) < 1 {
		c.printUsage()
		return errUsage
	}

	switch args[0] {
	case "templates":
		return c.handleTemplates(args[1:])
	case "generate":
		return c.handleGenerate(args[1:])
	case "saved":
		return c.handleSaved(args[1:])
	case "preview":
		return c.handlePreview(args[1:])
	case "edit":
		return c.handleEdit(args[1:])
	case "help", "-h", "--help":
		c.printUsage()
		return nil
	default:
		fmt.Fprintf(c.out, "Unknown command: %s\n", args[0])
		c.printUsage()
		return errUsage
	}
}

// --- setup ---

func (c *cli) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.errOut)
	config.RegisterFlags(fs)
	return fs
}

// open parses args into fs, resolves the configuration and opens the store.
func (c *cli) open(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return errUsage
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = cfg.NewLogger(c.errOut)

	store, closeStore, err := storage.Open(cfg.Store, cfg.DataDir, cfg.StoreName, c.logger)
	c.closeStore = closeStore
	if err != nil {
		return fmt.Errorf("failed to open layout store: %w", err)
	}
	if c.catalog, err = catalog.Open(cfg.TemplatesFile); err != nil {
		return err
	}
	c.library = library.NewManager(store, c.logger)
	c.preview = templating.NewEngine(store)
	c.exporter = export.New(c.clipboard, c.logger)
	return nil
}

// source holds the --template/--saved/--type flags shared by several
// commands.
type source struct {
	template   string
	saved      string
	layoutType string
}

func (s *source) register(fs *pflag.FlagSet, withType bool) {
	fs.StringVar(&s.template, "template", "", "start from the template with this id")
	fs.StringVar(&s.saved, "saved", "", "start from the saved layout with this id")
	if withType {
		fs.StringVar(&s.layoutType, "type", "", "switch to this layout type (flexbox or grid)")
	}
}

// session builds an editor session positioned on the requested layout. The
// name describes where the layout came from.
func (c *cli) session(src source) (*editor.Session, string, error) {
	var opts []history.Option
	if c.cfg.HistoryLimit > 0 {
		opts = append(opts, history.WithLimit(c.cfg.HistoryLimit))
	}
	s := editor.NewSession(c.logger, nil, opts...)
	name := "Default layout"

	switch {
	case src.template != "" && src.saved != "":
		return nil, "", fmt.Errorf("%w: use either --template or --saved", errUsage)
	case src.template != "":
		tpl, err := c.catalog.Get(src.template)
		if err != nil {
			return nil, "", err
		}
		if err := s.LoadTemplate(tpl); err != nil {
			return nil, "", err
		}
		name = tpl.Name
	case src.saved != "":
		saved, err := c.library.Get(src.saved)
		if err != nil {
			return nil, "", err
		}
		if err := s.LoadLayout(*saved); err != nil {
			return nil, "", err
		}
		name = saved.Name
	}

	if src.layoutType != "" {
		if err := s.SetLayoutType(model.LayoutType(src.layoutType)); err != nil {
			return nil, "", err
		}
	}
	return s, name, nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// --- commands ---

func (c *cli) handleTemplates(args []string) error {
	fs := c.newFlagSet("templates")
	if err := c.open(fs, args); err != nil {
		return err
	}

	t := newTable("ID", "NAME", "TYPE", "ITEMS", "DESCRIPTION")
	for _, tpl := range c.catalog.List() {
		t.Row(tpl.ID, tpl.Name, string(tpl.State.LayoutType),
			fmt.Sprint(tpl.State.ActiveItemCount()), tpl.Description)
	}
	fmt.Fprintln(c.out, t.String())
	return nil
}

func (c *cli) handleGenerate(args []string) error {
	fs := c.newFlagSet("generate")
	var src source
	src.register(fs, true)
	partFlag := fs.String("part", string(export.PartBoth), "what to output: html, css or both")
	write := fs.Bool("write", false, "write the files into --export-dir instead of printing")
	copyCode := fs.Bool("copy", false, "copy the selected part to the clipboard")
	if err := c.open(fs, args); err != nil {
		return err
	}

	part, err := export.ParsePart(*partFlag)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	s, _, err := c.session(src)
	if err != nil {
		return err
	}
	code := s.Code()

	if *write {
		paths, err := c.exporter.Download(c.cfg.ExportDir, s.Present().LayoutType, code)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(c.out, "Wrote %s\n", p)
		}
	}
	if *copyCode {
		if err := c.exporter.Copy(code, part); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Copied %s to the clipboard.\n", part)
	}
	if !*write && !*copyCode {
		fmt.Fprintln(c.out, part.Text(code))
	}
	return nil
}

func (c *cli) handleSaved(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: layout-cli saved list|save|rename|delete|export [options]")
		return errUsage
	}

	fs := c.newFlagSet("saved " + args[0])
	switch args[0] {
	case "list":
		if err := c.open(fs, args[1:]); err != nil {
			return err
		}
		return c.listSaved()

	case "save":
		var src source
		src.register(fs, true)
		name := fs.String("name", "", "name of the new saved layout (required)")
		if err := c.open(fs, args[1:]); err != nil {
			return err
		}
		s, _, err := c.session(src)
		if err != nil {
			return err
		}
		saved, err := c.library.Save(*name, s.Present().Clone())
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Saved %q with ID %s\n", saved.Name, saved.ID)
		return nil

	case "rename":
		id := fs.String("id", "", "ID of the saved layout (required)")
		name := fs.String("name", "", "new name (required)")
		if err := c.open(fs, args[1:]); err != nil {
			return err
		}
		saved, err := c.library.Rename(*id, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Renamed %s to %q\n", saved.ID, saved.Name)
		return nil

	case "delete":
		id := fs.String("id", "", "ID of the saved layout (required)")
		yes := fs.Bool("yes", false, "do not ask for confirmation")
		if err := c.open(fs, args[1:]); err != nil {
			return err
		}
		saved, err := c.library.Get(*id)
		if err != nil {
			return err
		}
		if !*yes && !c.askForConfirmation(fmt.Sprintf("Delete saved layout %q?", saved.Name)) {
			fmt.Fprintln(c.out, "Deletion cancelled.")
			return nil
		}
		if err := c.library.Delete(saved.ID); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Deleted %q\n", saved.Name)
		return nil

	case "export":
		id := fs.String("id", "", "ID of the saved layout (required)")
		if err := c.open(fs, args[1:]); err != nil {
			return err
		}
		saved, err := c.library.Get(*id)
		if err != nil {
			return err
		}
		paths, err := c.exporter.DownloadSaved(c.cfg.ExportDir, saved)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(c.out, "Wrote %s\n", p)
		}
		return nil

	default:
		fmt.Fprintf(c.out, "Unknown saved command: %s\n", args[0])
		return errUsage
	}
}

func (c *cli) listSaved() error {
	layouts, err := c.library.List()
	if err != nil {
		return err
	}
	if len(layouts) == 0 {
		fmt.Fprintln(c.out, "No saved layouts.")
		return nil
	}
	t := newTable("ID", "NAME", "TYPE", "SAVED")
	for _, l := range layouts {
		t.Row(l.ID, l.Name, string(l.State.LayoutType), l.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(c.out, t.String())
	return nil
}

func (c *cli) handlePreview(args []string) error {
	fs := c.newFlagSet("preview")
	var src source
	src.register(fs, true)
	mode := fs.String("mode", string(model.PreviewDesktop), "preview width: desktop or mobile")
	outPath := fs.String("out", "", "file to write (default: a temporary file)")
	open := fs.Bool("open", false, "open the preview in the default browser")
	if err := c.open(fs, args); err != nil {
		return err
	}

	pm := model.PreviewMode(*mode)
	if !pm.Valid() {
		return fmt.Errorf("%w: unknown preview mode %q", errUsage, *mode)
	}
	s, name, err := c.session(src)
	if err != nil {
		return err
	}
	doc, err := c.preview.RenderDocument(name, s.Code(), pm)
	if err != nil {
		return err
	}

	path := *outPath
	if path == "" {
		tempFile, err := os.CreateTemp("", "layout-preview-*.html")
		if err != nil {
			return fmt.Errorf("error creating temporary preview file: %w", err)
		}
		path = tempFile.Name()
		tempFile.Close()
	}
	if err := fsutils.WriteToFile(path, []byte(doc)); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Preview HTML saved to: %s\n", path)

	if *open {
		if err := c.openBrowser(path); err != nil {
			c.logger.Warn("Failed to open preview in browser", "error", err)
			fmt.Fprintln(c.out, "Please open the file manually in your browser.")
		}
	}
	return nil
}

func (c *cli) handleEdit(args []string) error {
	fs := c.newFlagSet("edit")
	var src source
	src.register(fs, false)
	if err := c.open(fs, args); err != nil {
		return err
	}

	s, _, err := c.session(src)
	if err != nil {
		return err
	}
	return c.runTUI(tui.Deps{
		Session:   s,
		Catalog:   c.catalog,
		Library:   c.library,
		Exporter:  c.exporter,
		ExportDir: c.cfg.ExportDir,
		Logger:    c.logger,
	})
}

// askForConfirmation reads y/N from the input; anything unreadable is no.
func (c *cli) askForConfirmation(prompt string) bool {
	for {
		fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
		response, err := c.in.ReadString('\n')
		if err != nil && response == "" {
			return false
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response == "y" || response == "yes" {
			return true
		} else if response == "n" || response == "no" || response == "" {
			return false
		}
	}
}

// openBrowser tries to open the given file path in the default browser.
func openBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
