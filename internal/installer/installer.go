// Package installer merges ccnotify hook entries into the Claude Code
// settings file, and removes them again. It is an offline tool with no
// shared state with the tracker.
package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/thebtf/ccnotify/pkg/hooks"
)

// marker identifies hook commands managed by ccnotify. Install and
// uninstall only ever touch entries carrying it.
const marker = "ccnotify"

// Installer rewrites one settings.json.
type Installer struct {
	settingsPath string
	command      string
	out          io.Writer
}

// New creates an Installer. command is the absolute path of the ccnotify
// binary to register; output goes to out.
func New(settingsPath, command string, out io.Writer) *Installer {
	return &Installer{settingsPath: settingsPath, command: command, out: out}
}

// hookEntry is one command entry inside a hook group.
type hookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// hookGroup is one element of a hook-type array in settings.json.
type hookGroup struct {
	Hooks []hookEntry `json:"hooks"`
}

// Install merges the three hook entries into settings.json, backing the
// file up first. Re-running is idempotent: already-installed hooks are
// skipped. Invalid JSON in the existing file aborts without changes.
func (i *Installer) Install(dryRun bool) error {
	settings, err := i.load()
	if err != nil {
		return err
	}

	hooksMap := asMap(settings["hooks"])

	added := 0
	for _, event := range hooks.Events {
		groups := asSlice(hooksMap[string(event)])
		if i.installed(groups, event) {
			fmt.Fprintf(i.out, "  %s: already installed, skipping\n", event)
			continue
		}

		group := hookGroup{Hooks: []hookEntry{{
			Type:    "command",
			Command: fmt.Sprintf("%s %s", i.command, event),
		}}}
		hooksMap[string(event)] = append(groups, toRaw(group))
		added++
		fmt.Fprintf(i.out, "  %s: added\n", event)
	}

	if added == 0 {
		fmt.Fprintln(i.out, "all hooks are already installed")
		return nil
	}
	settings["hooks"] = hooksMap

	if dryRun {
		fmt.Fprintf(i.out, "[dry run] would configure %d hook(s)\n", added)
		return nil
	}

	if err := i.backup(); err != nil {
		return fmt.Errorf("backup settings: %w", err)
	}
	if err := i.save(settings); err != nil {
		return err
	}
	fmt.Fprintf(i.out, "configured %d hook(s) in %s\n", added, i.settingsPath)
	return nil
}

// Uninstall removes ccnotify-managed hook groups, leaving everything
// else in the file untouched.
func (i *Installer) Uninstall(dryRun bool) error {
	if _, err := os.Stat(i.settingsPath); os.IsNotExist(err) {
		fmt.Fprintln(i.out, "no settings file found, nothing to remove")
		return nil
	}

	settings, err := i.load()
	if err != nil {
		return err
	}

	hooksMap := asMap(settings["hooks"])
	if len(hooksMap) == 0 {
		fmt.Fprintln(i.out, "no hooks configured, nothing to remove")
		return nil
	}

	removed := 0
	for _, event := range hooks.Events {
		groups := asSlice(hooksMap[string(event)])
		if len(groups) == 0 {
			continue
		}
		kept := groups[:0]
		for _, g := range groups {
			if groupIsOurs(g) {
				removed++
				continue
			}
			kept = append(kept, g)
		}
		if len(kept) == 0 {
			delete(hooksMap, string(event))
		} else {
			hooksMap[string(event)] = kept
		}
	}

	if removed == 0 {
		fmt.Fprintln(i.out, "no ccnotify hooks found")
		return nil
	}
	settings["hooks"] = hooksMap

	if dryRun {
		fmt.Fprintf(i.out, "[dry run] would remove %d hook(s)\n", removed)
		return nil
	}

	if err := i.backup(); err != nil {
		return fmt.Errorf("backup settings: %w", err)
	}
	if err := i.save(settings); err != nil {
		return err
	}
	fmt.Fprintf(i.out, "removed %d hook(s)\n", removed)
	return nil
}

// load reads settings.json. A missing or empty file yields an empty
// document; malformed JSON is an error so we never clobber a file the
// user needs to fix.
func (i *Installer) load() (map[string]interface{}, error) {
	data, err := os.ReadFile(i.settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]interface{}{}, nil
	}

	var settings map[string]interface{}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("settings file contains invalid JSON, fix it before proceeding: %w", err)
	}
	return settings, nil
}

func (i *Installer) save(settings map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(i.settingsPath), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(i.settingsPath, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// backup copies the current settings file aside with a timestamp suffix.
func (i *Installer) backup() error {
	data, err := os.ReadFile(i.settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	backupPath := fmt.Sprintf("%s.backup.%s", i.settingsPath, time.Now().Format("20060102_150405"))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(i.out, "backed up settings to %s\n", backupPath)
	return nil
}

// installed reports whether a ccnotify command for the event already
// exists in the hook-type array.
func (i *Installer) installed(groups []interface{}, event hooks.Event) bool {
	for _, g := range groups {
		for _, entry := range groupEntries(g) {
			if entry.Type == "command" &&
				strings.Contains(entry.Command, marker) &&
				strings.Contains(entry.Command, string(event)) {
				return true
			}
		}
	}
	return false
}

// groupIsOurs reports whether any command in the group is ccnotify-managed.
func groupIsOurs(g interface{}) bool {
	for _, entry := range groupEntries(g) {
		if entry.Type == "command" && strings.Contains(entry.Command, marker) {
			return true
		}
	}
	return false
}

func groupEntries(g interface{}) []hookEntry {
	m, ok := g.(map[string]interface{})
	if !ok {
		return nil
	}
	raw, ok := m["hooks"].([]interface{})
	if !ok {
		return nil
	}
	var entries []hookEntry
	for _, h := range raw {
		hm, ok := h.(map[string]interface{})
		if !ok {
			continue
		}
		entry := hookEntry{}
		entry.Type, _ = hm["type"].(string)
		entry.Command, _ = hm["command"].(string)
		entries = append(entries, entry)
	}
	return entries
}

func asMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func asSlice(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}
	return nil
}

// toRaw round-trips a typed group through JSON so the settings document
// stays homogeneous (maps and slices only).
func toRaw(g hookGroup) interface{} {
	data, _ := json.Marshal(g)
	var raw interface{}
	_ = json.Unmarshal(data, &raw)
	return raw
}
