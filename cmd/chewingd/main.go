package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"

	"github.com/chewing/zhuyin-core/internal/engine"
	"github.com/chewing/zhuyin-core/internal/layout"
)

const (
	serviceName = "org.chewing.ZhuyinCore"
	objectPath  = "/Engine"
)

// layoutNames maps the -layout flag's accepted values to layout.ID, since
// layout.ID has no flag.Value parser of its own.
var layoutNames = map[string]layout.ID{
	"default":     layout.Default,
	"hsu":         layout.Hsu,
	"ibm":         layout.IBM,
	"ginyieh":     layout.GinYieh,
	"et":          layout.Et,
	"et26":        layout.Et26,
	"dvorak":      layout.Dvorak,
	"dvorakhsu":   layout.DvorakHsu,
	"dachencp26":  layout.DachenCP26,
	"hanyupinyin": layout.HanyuPinyin,
	"thlpinyin":   layout.THLPinyin,
	"mps2pinyin":  layout.MPS2Pinyin,
	"carpalx":     layout.Carpalx,
}

// InputEngine is the D-Bus object a frontend (e.g. an IBus or Fcitx5 shim)
// drives: one phonetic Session for the daemon's lifetime, shared by every
// caller of the exported object.
type InputEngine struct {
	session *engine.Session
	logger  *log.Logger
}

// ProcessKey feeds one ASCII key code into the session and reports what
// happened: the Behavior's name, the committed buffer so far, and the
// in-progress preedit text.
func (e *InputEngine) ProcessKey(key uint32) (behavior string, commitText string, preeditText string, dbusErr *dbus.Error) {
	b := e.session.Input(byte(key))

	if e.logger != nil {
		e.logger.Printf("key=%q behavior=%s preedit=%q buffer=%q", rune(key), b, e.session.Preedit(), e.session.Buffer())
	}

	return b.String(), e.session.Buffer(), e.session.Preedit(), nil
}

// Backspace removes the most recent contribution from the session.
func (e *InputEngine) Backspace() *dbus.Error {
	e.session.Backspace()
	return nil
}

// Reset clears the session's composition and committed-syllable state.
func (e *InputEngine) Reset() *dbus.Error {
	e.session.Clear()
	return nil
}

// GetPreedit returns the session's current in-progress text.
func (e *InputEngine) GetPreedit() (string, *dbus.Error) {
	return e.session.Preedit(), nil
}

// GetCandidates returns the phrase candidates for the syllables committed so
// far, as plain text, most frequent first.
func (e *InputEngine) GetCandidates() ([]string, *dbus.Error) {
	cands := e.session.Candidates()
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Text
	}
	return out, nil
}

func main() {
	dataDir := flag.String("datadir", "", "directory holding phrase.tree and phrase.dict")
	layoutFlag := flag.String("layout", "default", "keyboard layout: default, hsu, ibm, ginyieh, et, et26, dvorak, dvorakhsu, dachencp26, hanyupinyin, thlpinyin, mps2pinyin, carpalx")
	logPath := flag.String("log", "chewingd.log", "path to the key-event log file")
	flag.Parse()

	layoutID, ok := layoutNames[*layoutFlag]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown layout %q\n", *layoutFlag)
		os.Exit(1)
	}

	if *dataDir == "" {
		fmt.Fprintln(os.Stderr, "missing -datadir")
		os.Exit(1)
	}

	logFile, err := os.OpenFile(*logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	var logger *log.Logger
	if err == nil {
		logger = log.New(logFile, "", log.LstdFlags)
		defer logFile.Close()
	} else {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
	}

	cfg := engine.DefaultConfig(*dataDir)
	cfg.VerifyOnOpen = true
	eng, err := engine.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open engine:", err)
		os.Exit(1)
	}
	defer eng.Close()
	if w := eng.Warning(); w != "" && logger != nil {
		logger.Printf("engine open warning: %s", w)
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect to session bus:", err)
		os.Exit(1)
	}
	defer conn.Close()

	reply, err := conn.RequestName(serviceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to request name:", err)
		os.Exit(1)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		fmt.Fprintln(os.Stderr, "name already taken - another instance may be running")
		os.Exit(1)
	}

	inputEngine := &InputEngine{
		session: eng.NewSession(layoutID),
		logger:  logger,
	}

	if err := conn.Export(inputEngine, dbus.ObjectPath(objectPath), serviceName); err != nil {
		fmt.Fprintln(os.Stderr, "failed to export object:", err)
		os.Exit(1)
	}

	fmt.Println("================================================")
	fmt.Println("chewingd is running")
	fmt.Println("================================================")
	fmt.Printf("  Service:     %s\n", serviceName)
	fmt.Printf("  Object Path: %s\n", objectPath)
	fmt.Printf("  Layout:      %s\n", *layoutFlag)
	fmt.Printf("  Data dir:    %s\n", *dataDir)
	fmt.Println("------------------------------------------------")
	fmt.Println("Waiting for key events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("shutting down")
}
