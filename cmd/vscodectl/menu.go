package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	vscodemcp "github.com/vscodemcp/vscode-mcp-sdk-go"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

const menuText = ` 1. Open a file
 2. Create a new file
 3. Get file content
 4. Save current file
 5. Close file
 6. Type text at cursor
 7. Type text at specific position
 8. Run VS Code command
 9. Exit`

// menu drives the interactive command loop. Commands are issued one at a
// time; the SDK underneath supports concurrent commands, the menu just has
// no use for them.
type menu struct {
	client vscodemcp.Client
	in     *bufio.Scanner
	out    io.Writer
}

func newMenu(client vscodemcp.Client, in io.Reader, out io.Writer) *menu {
	return &menu{
		client: client,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run shows the menu until the user exits or input ends.
func (m *menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, titleStyle.Render("VS Code MCP Client - Available Commands:"))
		fmt.Fprintln(m.out, menuText)

		choice, ok := m.prompt("Enter command number: ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.openFile(ctx)
		case "2":
			m.createFile(ctx)
		case "3":
			m.getFileContent(ctx)
		case "4":
			m.report("Save current file")(m.client.SaveFile(ctx))
		case "5":
			m.closeFile(ctx)
		case "6":
			m.typeText(ctx)
		case "7":
			m.typeTextAtPosition(ctx)
		case "8":
			m.runCommand(ctx)
		case "9":
			fmt.Fprintln(m.out, "Exiting...")

			return nil
		default:
			fmt.Fprintln(m.out, errorStyle.Render("Invalid option"))
		}
	}
}

func (m *menu) openFile(ctx context.Context) {
	path, ok := m.prompt("Enter file path to open: ")
	if !ok {
		return
	}

	m.report("Open file: " + path)(m.client.OpenFile(ctx, path))
}

func (m *menu) createFile(ctx context.Context) {
	path, ok := m.prompt("Enter file path to create: ")
	if !ok {
		return
	}

	content, ok := m.prompt("Enter initial content (or press Enter for empty file): ")
	if !ok {
		return
	}

	m.report("Create file: " + path)(m.client.CreateFile(ctx, path, content))
}

func (m *menu) getFileContent(ctx context.Context) {
	path, ok := m.prompt("Enter file path (or press Enter for active file): ")
	if !ok {
		return
	}

	target := path
	if target == "" {
		target = "active file"
	}

	m.report("Get content of "+target)(m.client.GetFileContent(ctx, path))
}

func (m *menu) closeFile(ctx context.Context) {
	path, ok := m.prompt("Enter file path (or press Enter for active file): ")
	if !ok {
		return
	}

	target := path
	if target == "" {
		target = "active file"
	}

	m.report("Close "+target)(m.client.CloseFile(ctx, path))
}

func (m *menu) typeText(ctx context.Context) {
	text, ok := m.prompt("Enter text to type: ")
	if !ok {
		return
	}

	opts := vscodemcp.TypeOptions{}

	if speed, ok := m.promptInt("Typing speed (ms per char, default: 50): "); ok {
		opts.Speed = speed
	}

	if variation, ok := m.promptFloat("Variation (0-1, default: 0.2): "); ok {
		opts.Variation = variation
	}

	m.report("Type text")(m.client.TypeText(ctx, text, opts))
}

func (m *menu) typeTextAtPosition(ctx context.Context) {
	text, ok := m.prompt("Enter text to type: ")
	if !ok {
		return
	}

	line, ok := m.promptInt("Line number: ")
	if !ok {
		fmt.Fprintln(m.out, errorStyle.Render("Line and character must be numbers."))

		return
	}

	character, ok := m.promptInt("Character position: ")
	if !ok {
		fmt.Fprintln(m.out, errorStyle.Render("Line and character must be numbers."))

		return
	}

	opts := vscodemcp.TypeOptions{
		Position: &vscodemcp.Position{Line: line, Character: character},
		Quick:    true, // no animation for positioned typing
	}

	m.report(fmt.Sprintf("Type text at position %d:%d", line, character))(
		m.client.TypeText(ctx, text, opts))
}

func (m *menu) runCommand(ctx context.Context) {
	command, ok := m.prompt("Enter VS Code command to run: ")
	if !ok {
		return
	}

	argsStr, ok := m.prompt("Enter arguments as JSON array (or press Enter for none): ")
	if !ok {
		return
	}

	var args []any

	if argsStr != "" {
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			fmt.Fprintln(m.out, errorStyle.Render(
				"Invalid JSON arguments. Using command without arguments."))

			args = nil
		}
	}

	m.report("Run command: " + command)(m.client.RunCommand(ctx, command, args))
}

// prompt reads one line of input. Returns false when input ends.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)

	if !m.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(m.in.Text()), true
}

// promptInt reads an optional integer; blank or invalid input returns false.
func (m *menu) promptInt(label string) (int, bool) {
	s, ok := m.prompt(label)
	if !ok || s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

// promptFloat reads an optional float; blank or invalid input returns false.
func (m *menu) promptFloat(label string) (float64, bool) {
	s, ok := m.prompt(label)
	if !ok || s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// report prints a command outcome: the description on success, the error
// otherwise, and any structured result pretty-printed underneath.
func (m *menu) report(description string) func(result any, err error) {
	return func(result any, err error) {
		if err != nil {
			fmt.Fprintln(m.out, errorStyle.Render("Error: "+err.Error()))

			return
		}

		fmt.Fprintln(m.out, successStyle.Render("Success: "+description))

		switch v := result.(type) {
		case nil:
		case map[string]any:
			pretty, err := json.MarshalIndent(v, "", "  ")
			if err == nil {
				fmt.Fprintln(m.out, faintStyle.Render(string(pretty)))
			}
		default:
			fmt.Fprintln(m.out, faintStyle.Render(fmt.Sprint(v)))
		}
	}
}
